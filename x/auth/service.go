// Package auth authenticates requests and owns the access decision
// shared by every resource route.
package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"golang.org/x/crypto/bcrypt"

	"github.com/pokecamp/backend/x/audit"
	"github.com/pokecamp/backend/x/core"
	"github.com/pokecamp/backend/x/token"
	"github.com/pokecamp/backend/x/util"
)

var tracer = otel.Tracer("auth")

// maxLoginFailures locks a username out until the redis counter expires.
const maxLoginFailures = 10

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrThrottled          = errors.New("too many failed login attempts")
)

// Service is the interface for auth service
type Service interface {
	Login(ctx context.Context, username, password string) (string, core.Trainer, error)
	IdentifyTrainer(next echo.HandlerFunc) echo.HandlerFunc
}

type service struct {
	repository Repository
	token      token.Service
	audit      audit.Service
	config     util.Config
}

// NewService creates a new auth service
func NewService(repository Repository, token token.Service, audit audit.Service, config util.Config) Service {
	return &service{repository, token, audit, config}
}

// Login verifies credentials and issues a bearer token. Failed
// attempts feed the throttle counter; ten failures lock the username
// until the counter expires.
func (s *service) Login(ctx context.Context, username, password string) (string, core.Trainer, error) {
	ctx, span := tracer.Start(ctx, "Auth.Service.Login")
	defer span.End()

	count, err := s.repository.FailureCount(ctx, username)
	if err != nil {
		// The throttle is an extra guard, not a dependency: if redis
		// is down, logins still work.
		span.RecordError(err)
		slog.ErrorContext(ctx, "failed to read login throttle",
			slog.String("error", err.Error()),
		)
	}
	if count >= maxLoginFailures {
		return "", core.Trainer{}, ErrThrottled
	}

	trainer, err := s.repository.GetTrainerByUsername(ctx, username)
	if err != nil {
		s.noteFailure(ctx, username)
		return "", core.Trainer{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(trainer.Password), []byte(password)); err != nil {
		s.noteFailure(ctx, username)
		return "", core.Trainer{}, ErrInvalidCredentials
	}

	signed, err := s.token.Issue(trainer)
	if err != nil {
		span.RecordError(err)
		return "", core.Trainer{}, errors.Wrap(err, "failed to issue token")
	}

	if err := s.repository.ClearFailures(ctx, username); err != nil {
		slog.ErrorContext(ctx, "failed to clear login throttle",
			slog.String("error", err.Error()),
		)
	}

	s.audit.Record(ctx, &trainer.ID, audit.ActionLogin, fmt.Sprintf("Trainer '%s' logged in.", trainer.Username))

	return signed, trainer, nil
}

func (s *service) noteFailure(ctx context.Context, username string) {
	if err := s.repository.RecordFailure(ctx, username); err != nil {
		slog.ErrorContext(ctx, "failed to record login failure",
			slog.String("error", err.Error()),
		)
	}
}

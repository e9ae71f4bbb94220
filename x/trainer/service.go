// Package trainer manages user accounts: registration, profiles, and
// the cascading removal of everything an account owns.
package trainer

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/pkg/errors"
	"github.com/xinguang/go-recaptcha"
	"go.opentelemetry.io/otel"
	"golang.org/x/crypto/bcrypt"

	"github.com/pokecamp/backend/x/audit"
	"github.com/pokecamp/backend/x/core"
	"github.com/pokecamp/backend/x/storage"
	"github.com/pokecamp/backend/x/util"
)

var tracer = otel.Tracer("trainer")

var ErrCaptcha = errors.New("captcha verification failed")

// Service is the interface for trainer service
type Service interface {
	Register(ctx context.Context, username, password, captchaToken string, image *multipart.FileHeader) (core.Trainer, error)
	Get(ctx context.Context, id uint) (core.Trainer, error)
	ListTrainers(ctx context.Context) ([]core.Trainer, error)
	Update(ctx context.Context, actorID, id uint, req updateRequest, image *multipart.FileHeader) (core.Trainer, error)
	Delete(ctx context.Context, actorID, id uint) error
}

type service struct {
	repository Repository
	storage    storage.Service
	audit      audit.Service
	config     util.Config
	captcha    *recaptcha.ReCAPTCHA
}

// NewService creates a new trainer service
func NewService(repository Repository, storage storage.Service, audit audit.Service, config util.Config) Service {
	var captcha *recaptcha.ReCAPTCHA
	if config.Site.CaptchaSecret != "" {
		created, err := recaptcha.NewWithSecert(config.Site.CaptchaSecret)
		if err == nil {
			captcha = created
		}
	}
	return &service{repository, storage, audit, config, captcha}
}

// Register creates a new trainer account with a hashed password.
func (s *service) Register(ctx context.Context, username, password, captchaToken string, image *multipart.FileHeader) (core.Trainer, error) {
	ctx, span := tracer.Start(ctx, "Trainer.Service.Register")
	defer span.End()

	if s.captcha != nil {
		if err := s.captcha.Verify(captchaToken); err != nil {
			span.RecordError(err)
			return core.Trainer{}, ErrCaptcha
		}
	}

	if _, err := s.repository.GetByUsername(ctx, username); err == nil {
		return core.Trainer{}, core.NewErrorAlreadyExists()
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		span.RecordError(err)
		return core.Trainer{}, errors.Wrap(err, "failed to hash password")
	}

	imageURL := s.config.Site.DefaultTrainerImage
	if image != nil {
		imageURL, err = s.storage.Save(ctx, image)
		if err != nil {
			span.RecordError(err)
			return core.Trainer{}, err
		}
	}

	created, err := s.repository.Create(ctx, core.Trainer{
		Username: username,
		Password: string(hashed),
		Role:     core.RoleTrainer,
		ImageURL: imageURL,
	})
	if err != nil {
		span.RecordError(err)
		return core.Trainer{}, err
	}

	s.audit.Record(ctx, nil, audit.ActionRegisterTrainer,
		fmt.Sprintf("Trainer '%s' (ID: %d) was created.", created.Username, created.ID))

	return created, nil
}

func (s *service) Get(ctx context.Context, id uint) (core.Trainer, error) {
	ctx, span := tracer.Start(ctx, "Trainer.Service.Get")
	defer span.End()

	return s.repository.GetByID(ctx, id)
}

func (s *service) ListTrainers(ctx context.Context) ([]core.Trainer, error) {
	ctx, span := tracer.Start(ctx, "Trainer.Service.ListTrainers")
	defer span.End()

	return s.repository.ListTrainers(ctx)
}

// Update applies a partial profile edit: only supplied fields change.
// A request carrying nothing recognizable is rejected.
func (s *service) Update(ctx context.Context, actorID, id uint, req updateRequest, image *multipart.FileHeader) (core.Trainer, error) {
	ctx, span := tracer.Start(ctx, "Trainer.Service.Update")
	defer span.End()

	current, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return core.Trainer{}, err
	}

	changes := map[string]interface{}{}
	var details []string

	if req.Username != "" && req.Username != current.Username {
		changes["username"] = req.Username
		details = append(details, fmt.Sprintf("Name: '%s' -> '%s'", current.Username, req.Username))
	}
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			span.RecordError(err)
			return core.Trainer{}, errors.Wrap(err, "failed to hash password")
		}
		changes["password"] = string(hashed)
		details = append(details, "Password changed.")
	}
	if image != nil {
		newURL, err := s.storage.Save(ctx, image)
		if err != nil {
			span.RecordError(err)
			return core.Trainer{}, err
		}
		changes["image_url"] = newURL
		details = append(details, "Image changed.")
		s.storage.Remove(ctx, current.ImageURL)
	}

	if len(changes) == 0 {
		return core.Trainer{}, core.NewErrorNoChanges()
	}

	updated, err := s.repository.Update(ctx, id, changes)
	if err != nil {
		span.RecordError(err)
		return core.Trainer{}, err
	}

	s.audit.Record(ctx, &actorID, audit.ActionEditTrainer,
		fmt.Sprintf("Updated profile of '%s' (ID: %d). Details: %s", current.Username, id, strings.Join(details, "; ")))

	return updated, nil
}

// Delete removes the account and everything it owns, then cleans up
// uploaded avatar files best-effort.
func (s *service) Delete(ctx context.Context, actorID, id uint) error {
	ctx, span := tracer.Start(ctx, "Trainer.Service.Delete")
	defer span.End()

	deleted, pokemons, err := s.repository.DeleteCascade(ctx, id)
	if err != nil {
		span.RecordError(err)
		return err
	}

	s.storage.Remove(ctx, deleted.ImageURL)
	for _, p := range pokemons {
		s.storage.Remove(ctx, p.ImageURL)
	}

	s.audit.Record(ctx, &actorID, audit.ActionDeleteTrainer,
		fmt.Sprintf("Trainer '%s' (ID: %d) was deleted.", deleted.Username, id))

	return nil
}

// Package audit appends an immutable trail entry for every
// state-changing operation.
package audit

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"

	"github.com/pokecamp/backend/x/core"
)

var tracer = otel.Tracer("audit")

var auditWrites = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "pokecamp_audit_writes_total",
		Help: "Audit trail write attempts by outcome.",
	},
	[]string{"status"},
)

// Service is the interface for audit service
type Service interface {
	Record(ctx context.Context, actorID *uint, action string, details string)
	List(ctx context.Context) ([]core.AuditLog, error)
}

type service struct {
	repository Repository
}

// NewService creates a new audit service
func NewService(repository Repository) Service {
	return &service{repository}
}

// Record writes one audit entry with the actor's current username
// snapshotted. It deliberately returns nothing: a failed audit write
// must never fail the operation that triggered it, so errors are
// logged and swallowed here.
func (s *service) Record(ctx context.Context, actorID *uint, action string, details string) {
	ctx, span := tracer.Start(ctx, "Audit.Service.Record")
	defer span.End()

	username := SystemUsername
	if actorID != nil {
		resolved, err := s.repository.ResolveUsername(ctx, *actorID)
		if err == nil {
			username = resolved
		}
	}

	entry := core.AuditLog{
		UserID:   actorID,
		Username: username,
		Action:   action,
		Details:  details,
	}

	if err := s.repository.Insert(ctx, entry); err != nil {
		span.RecordError(err)
		auditWrites.WithLabelValues("error").Inc()
		slog.ErrorContext(ctx, "failed to record audit entry",
			slog.String("action", action),
			slog.String("error", err.Error()),
		)
		return
	}

	auditWrites.WithLabelValues("ok").Inc()
}

// List returns the newest entries, capped at ListLimit.
func (s *service) List(ctx context.Context) ([]core.AuditLog, error) {
	ctx, span := tracer.Start(ctx, "Audit.Service.List")
	defer span.End()

	return s.repository.List(ctx, ListLimit)
}

// Package pokedex records which species each trainer has discovered.
package pokedex

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"

	"github.com/pokecamp/backend/x/audit"
	"github.com/pokecamp/backend/x/core"
)

var tracer = otel.Tracer("pokedex")

// Service is the interface for pokedex service
type Service interface {
	List(ctx context.Context, userID uint) ([]core.PokedexEntry, error)
	Add(ctx context.Context, actorID uint, entry core.PokedexEntry) (bool, error)
}

type service struct {
	repository Repository
	audit      audit.Service
}

// NewService creates a new pokedex service
func NewService(repository Repository, audit audit.Service) Service {
	return &service{repository, audit}
}

func (s *service) List(ctx context.Context, userID uint) ([]core.PokedexEntry, error) {
	ctx, span := tracer.Start(ctx, "Pokedex.Service.List")
	defer span.End()

	return s.repository.List(ctx, userID)
}

// Add registers a discovery. A duplicate is a no-op, not an error, and
// only a fresh discovery is audited.
func (s *service) Add(ctx context.Context, actorID uint, entry core.PokedexEntry) (bool, error) {
	ctx, span := tracer.Start(ctx, "Pokedex.Service.Add")
	defer span.End()

	added, err := s.repository.Add(ctx, entry)
	if err != nil {
		span.RecordError(err)
		return false, err
	}

	if added {
		s.audit.Record(ctx, &actorID, audit.ActionAddPokedex,
			fmt.Sprintf("Added '%s' to their pokedex.", entry.Name))
	}

	return added, nil
}

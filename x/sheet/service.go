// Package sheet stores the free-form character sheets of trainers and
// pokemons.
package sheet

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"

	"github.com/pokecamp/backend/x/audit"
	"github.com/pokecamp/backend/x/core"
)

var tracer = otel.Tracer("sheet")

// Service is the interface for sheet service
type Service interface {
	GetTrainerSheet(ctx context.Context, userID uint) (core.TrainerSheet, error)
	SaveTrainerSheet(ctx context.Context, actorID uint, sheet core.TrainerSheet) (core.TrainerSheet, error)
	GetPokemonSheet(ctx context.Context, pokemonID uint) (core.PokemonSheet, error)
	SavePokemonSheet(ctx context.Context, actorID uint, sheet core.PokemonSheet) (core.PokemonSheet, error)
}

type service struct {
	repository Repository
	audit      audit.Service
}

// NewService creates a new sheet service
func NewService(repository Repository, audit audit.Service) Service {
	return &service{repository, audit}
}

func (s *service) GetTrainerSheet(ctx context.Context, userID uint) (core.TrainerSheet, error) {
	ctx, span := tracer.Start(ctx, "Sheet.Service.GetTrainerSheet")
	defer span.End()

	return s.repository.GetTrainerSheet(ctx, userID)
}

// SaveTrainerSheet upserts the whole sheet row.
func (s *service) SaveTrainerSheet(ctx context.Context, actorID uint, sheet core.TrainerSheet) (core.TrainerSheet, error) {
	ctx, span := tracer.Start(ctx, "Sheet.Service.SaveTrainerSheet")
	defer span.End()

	saved, err := s.repository.UpsertTrainerSheet(ctx, sheet)
	if err != nil {
		span.RecordError(err)
		return core.TrainerSheet{}, err
	}

	s.audit.Record(ctx, &actorID, audit.ActionSaveSheet,
		fmt.Sprintf("Saved character sheet of trainer ID %d.", sheet.UserID))

	return saved, nil
}

func (s *service) GetPokemonSheet(ctx context.Context, pokemonID uint) (core.PokemonSheet, error) {
	ctx, span := tracer.Start(ctx, "Sheet.Service.GetPokemonSheet")
	defer span.End()

	return s.repository.GetPokemonSheet(ctx, pokemonID)
}

func (s *service) SavePokemonSheet(ctx context.Context, actorID uint, sheet core.PokemonSheet) (core.PokemonSheet, error) {
	ctx, span := tracer.Start(ctx, "Sheet.Service.SavePokemonSheet")
	defer span.End()

	saved, err := s.repository.UpsertPokemonSheet(ctx, sheet)
	if err != nil {
		span.RecordError(err)
		return core.PokemonSheet{}, err
	}

	s.audit.Record(ctx, &actorID, audit.ActionSaveSheet,
		fmt.Sprintf("Saved sheet of pokemon ID %d.", sheet.PokemonID))

	return saved, nil
}

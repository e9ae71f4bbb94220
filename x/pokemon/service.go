// Package pokemon manages a trainer's creatures: the six-slot active
// party, the box, stat updates, and deletion.
package pokemon

import (
	"context"
	"fmt"
	"mime/multipart"

	"go.opentelemetry.io/otel"

	"github.com/pokecamp/backend/x/audit"
	"github.com/pokecamp/backend/x/core"
	"github.com/pokecamp/backend/x/storage"
	"github.com/pokecamp/backend/x/util"
)

var tracer = otel.Tracer("pokemon")

// Service is the interface for pokemon service
type Service interface {
	Create(ctx context.Context, actorID uint, req createRequest, image *multipart.FileHeader) (core.Pokemon, error)
	Get(ctx context.Context, id uint) (core.Pokemon, error)
	ListParty(ctx context.Context, trainerID uint) ([]core.Pokemon, error)
	ListBox(ctx context.Context, trainerID uint) ([]core.Pokemon, error)
	UpdateStats(ctx context.Context, actorID uint, current core.Pokemon, req statsRequest) (core.Pokemon, error)
	Deposit(ctx context.Context, actorID, id uint) (core.Pokemon, error)
	Withdraw(ctx context.Context, actorID, id uint) (core.Pokemon, error)
	Delete(ctx context.Context, actorID, id uint) error
}

type service struct {
	repository Repository
	storage    storage.Service
	audit      audit.Service
	config     util.Config
}

// NewService creates a new pokemon service
func NewService(repository Repository, storage storage.Service, audit audit.Service, config util.Config) Service {
	return &service{repository, storage, audit, config}
}

func defaultInt(v, fallback int) int {
	if v == 0 {
		return fallback
	}
	return v
}

// Create adds a new pokemon to a trainer's party. The capacity check
// happens inside the repository transaction.
func (s *service) Create(ctx context.Context, actorID uint, req createRequest, image *multipart.FileHeader) (core.Pokemon, error) {
	ctx, span := tracer.Start(ctx, "Pokemon.Service.Create")
	defer span.End()

	imageURL := req.ImageURL
	if image != nil {
		saved, err := s.storage.Save(ctx, image)
		if err != nil {
			span.RecordError(err)
			return core.Pokemon{}, err
		}
		imageURL = saved
	}
	if imageURL == "" {
		imageURL = s.config.Site.DefaultPokemonImage
	}

	created, err := s.repository.CreateInParty(ctx, core.Pokemon{
		Name:          req.Name,
		Type:          req.Type,
		Level:         defaultInt(req.Level, 1),
		XP:            req.XP,
		MaxHP:         defaultInt(req.MaxHP, 10),
		CurrentHP:     defaultInt(req.CurrentHP, 10),
		Especial:      defaultInt(req.Especial, 10),
		EspecialTotal: defaultInt(req.EspecialTotal, 10),
		Vigor:         defaultInt(req.Vigor, 10),
		VigorTotal:    defaultInt(req.VigorTotal, 10),
		ImageURL:      imageURL,
		TrainerID:     req.TrainerID,
	})
	if err != nil {
		span.RecordError(err)
		return core.Pokemon{}, err
	}

	s.audit.Record(ctx, &actorID, audit.ActionAddPokemon,
		fmt.Sprintf("Added '%s' to the party of trainer ID %d.", created.Name, created.TrainerID))

	return created, nil
}

func (s *service) Get(ctx context.Context, id uint) (core.Pokemon, error) {
	ctx, span := tracer.Start(ctx, "Pokemon.Service.Get")
	defer span.End()

	return s.repository.GetByID(ctx, id)
}

func (s *service) ListParty(ctx context.Context, trainerID uint) ([]core.Pokemon, error) {
	ctx, span := tracer.Start(ctx, "Pokemon.Service.ListParty")
	defer span.End()

	return s.repository.ListParty(ctx, trainerID)
}

func (s *service) ListBox(ctx context.Context, trainerID uint) ([]core.Pokemon, error) {
	ctx, span := tracer.Start(ctx, "Pokemon.Service.ListBox")
	defer span.End()

	return s.repository.ListBox(ctx, trainerID)
}

// UpdateStats merges the supplied stats over the current row: fields
// left out of the request keep their values.
func (s *service) UpdateStats(ctx context.Context, actorID uint, current core.Pokemon, req statsRequest) (core.Pokemon, error) {
	ctx, span := tracer.Start(ctx, "Pokemon.Service.UpdateStats")
	defer span.End()

	changes := map[string]interface{}{
		"level":          current.Level,
		"xp":             current.XP,
		"max_hp":         current.MaxHP,
		"current_hp":     current.CurrentHP,
		"especial":       current.Especial,
		"especial_total": current.EspecialTotal,
		"vigor":          current.Vigor,
		"vigor_total":    current.VigorTotal,
	}
	if req.Level != nil {
		changes["level"] = *req.Level
	}
	if req.XP != nil {
		changes["xp"] = *req.XP
	}
	if req.MaxHP != nil {
		changes["max_hp"] = *req.MaxHP
	}
	if req.CurrentHP != nil {
		changes["current_hp"] = *req.CurrentHP
	}
	if req.Especial != nil {
		changes["especial"] = *req.Especial
	}
	if req.EspecialTotal != nil {
		changes["especial_total"] = *req.EspecialTotal
	}
	if req.Vigor != nil {
		changes["vigor"] = *req.Vigor
	}
	if req.VigorTotal != nil {
		changes["vigor_total"] = *req.VigorTotal
	}

	updated, err := s.repository.UpdateStats(ctx, current.ID, changes)
	if err != nil {
		span.RecordError(err)
		return core.Pokemon{}, err
	}

	s.audit.Record(ctx, &actorID, audit.ActionEditPokemon,
		fmt.Sprintf("Stats of '%s' (ID: %d) updated.", current.Name, current.ID))

	return updated, nil
}

// Deposit moves a pokemon into the box.
func (s *service) Deposit(ctx context.Context, actorID, id uint) (core.Pokemon, error) {
	ctx, span := tracer.Start(ctx, "Pokemon.Service.Deposit")
	defer span.End()

	deposited, err := s.repository.Deposit(ctx, id)
	if err != nil {
		span.RecordError(err)
		return core.Pokemon{}, err
	}

	s.audit.Record(ctx, &actorID, audit.ActionDepositPokemon,
		fmt.Sprintf("Deposited '%s' (ID: %d) into the box.", deposited.Name, deposited.ID))

	return deposited, nil
}

// Withdraw moves a boxed pokemon back into the party if there is room.
func (s *service) Withdraw(ctx context.Context, actorID, id uint) (core.Pokemon, error) {
	ctx, span := tracer.Start(ctx, "Pokemon.Service.Withdraw")
	defer span.End()

	withdrawn, err := s.repository.Withdraw(ctx, id)
	if err != nil {
		span.RecordError(err)
		return core.Pokemon{}, err
	}

	s.audit.Record(ctx, &actorID, audit.ActionWithdrawPokemon,
		fmt.Sprintf("Withdrew '%s' (ID: %d) from the box.", withdrawn.Name, withdrawn.ID))

	return withdrawn, nil
}

// Delete removes a pokemon, its sheet, and its avatar file.
func (s *service) Delete(ctx context.Context, actorID, id uint) error {
	ctx, span := tracer.Start(ctx, "Pokemon.Service.Delete")
	defer span.End()

	deleted, err := s.repository.DeleteCascade(ctx, id)
	if err != nil {
		span.RecordError(err)
		return err
	}

	s.storage.Remove(ctx, deleted.ImageURL)

	s.audit.Record(ctx, &actorID, audit.ActionDeletePokemon,
		fmt.Sprintf("Pokemon '%s' (ID: %d) was deleted.", deleted.Name, id))

	return nil
}

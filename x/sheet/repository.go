package sheet

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pokecamp/backend/x/core"
)

// Repository is the interface for sheet repository
type Repository interface {
	GetTrainerSheet(ctx context.Context, userID uint) (core.TrainerSheet, error)
	UpsertTrainerSheet(ctx context.Context, sheet core.TrainerSheet) (core.TrainerSheet, error)
	GetPokemonSheet(ctx context.Context, pokemonID uint) (core.PokemonSheet, error)
	UpsertPokemonSheet(ctx context.Context, sheet core.PokemonSheet) (core.PokemonSheet, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new sheet repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) GetTrainerSheet(ctx context.Context, userID uint) (core.TrainerSheet, error) {
	ctx, span := tracer.Start(ctx, "Sheet.Repository.GetTrainerSheet")
	defer span.End()

	var sheet core.TrainerSheet
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&sheet).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return core.TrainerSheet{}, core.NewErrorNotFound()
		}
		span.RecordError(err)
		return core.TrainerSheet{}, err
	}
	return sheet, nil
}

// UpsertTrainerSheet replaces the whole row keyed on the owning
// account: there is no field-by-field merge.
func (r *repository) UpsertTrainerSheet(ctx context.Context, sheet core.TrainerSheet) (core.TrainerSheet, error) {
	ctx, span := tracer.Start(ctx, "Sheet.Repository.UpsertTrainerSheet")
	defer span.End()

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(&sheet).Error
	if err != nil {
		span.RecordError(err)
		return core.TrainerSheet{}, err
	}

	return r.GetTrainerSheet(ctx, sheet.UserID)
}

func (r *repository) GetPokemonSheet(ctx context.Context, pokemonID uint) (core.PokemonSheet, error) {
	ctx, span := tracer.Start(ctx, "Sheet.Repository.GetPokemonSheet")
	defer span.End()

	var sheet core.PokemonSheet
	if err := r.db.WithContext(ctx).Where("pokemon_id = ?", pokemonID).First(&sheet).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return core.PokemonSheet{}, core.NewErrorNotFound()
		}
		span.RecordError(err)
		return core.PokemonSheet{}, err
	}
	return sheet, nil
}

func (r *repository) UpsertPokemonSheet(ctx context.Context, sheet core.PokemonSheet) (core.PokemonSheet, error) {
	ctx, span := tracer.Start(ctx, "Sheet.Repository.UpsertPokemonSheet")
	defer span.End()

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "pokemon_id"}},
		UpdateAll: true,
	}).Create(&sheet).Error
	if err != nil {
		span.RecordError(err)
		return core.PokemonSheet{}, err
	}

	return r.GetPokemonSheet(ctx, sheet.PokemonID)
}

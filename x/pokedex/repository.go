package pokedex

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pokecamp/backend/x/core"
)

// Repository is the interface for pokedex repository
type Repository interface {
	List(ctx context.Context, userID uint) ([]core.PokedexEntry, error)
	Add(ctx context.Context, entry core.PokedexEntry) (bool, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new pokedex repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

// List returns a trainer's discovered species ordered by species id.
func (r *repository) List(ctx context.Context, userID uint) ([]core.PokedexEntry, error) {
	ctx, span := tracer.Start(ctx, "Pokedex.Repository.List")
	defer span.End()

	var entries []core.PokedexEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&entries).Error
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if entries == nil {
		entries = []core.PokedexEntry{}
	}
	return entries, nil
}

// Add is insert-or-ignore on the (species id, trainer) key. The bool
// reports whether a row was actually inserted, so the caller can tell
// a fresh discovery from a repeat.
func (r *repository) Add(ctx context.Context, entry core.PokedexEntry) (bool, error) {
	ctx, span := tracer.Start(ctx, "Pokedex.Repository.Add")
	defer span.End()

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(&entry)
	if result.Error != nil {
		span.RecordError(result.Error)
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

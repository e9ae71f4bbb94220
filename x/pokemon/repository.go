package pokemon

import (
	"context"

	"gorm.io/gorm"

	"github.com/pokecamp/backend/x/core"
)

// Repository is the interface for pokemon repository
type Repository interface {
	CreateInParty(ctx context.Context, pokemon core.Pokemon) (core.Pokemon, error)
	GetByID(ctx context.Context, id uint) (core.Pokemon, error)
	ListParty(ctx context.Context, trainerID uint) ([]core.Pokemon, error)
	ListBox(ctx context.Context, trainerID uint) ([]core.Pokemon, error)
	UpdateStats(ctx context.Context, id uint, changes map[string]interface{}) (core.Pokemon, error)
	Deposit(ctx context.Context, id uint) (core.Pokemon, error)
	Withdraw(ctx context.Context, id uint) (core.Pokemon, error)
	DeleteCascade(ctx context.Context, id uint) (core.Pokemon, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new pokemon repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func partyCount(tx *gorm.DB, trainerID uint) (int64, error) {
	var count int64
	err := tx.Model(&core.Pokemon{}).
		Where("trainer_id = ? AND status = ?", trainerID, core.PlacementParty).
		Count(&count).Error
	return count, err
}

// CreateInParty inserts a new party pokemon. The capacity check and
// the insert share one transaction so concurrent creates cannot push
// a party past the limit.
func (r *repository) CreateInParty(ctx context.Context, pokemon core.Pokemon) (core.Pokemon, error) {
	ctx, span := tracer.Start(ctx, "Pokemon.Repository.CreateInParty")
	defer span.End()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		count, err := partyCount(tx, pokemon.TrainerID)
		if err != nil {
			return err
		}
		if count >= core.PartyLimit {
			return core.NewErrorPartyFull()
		}
		pokemon.Status = core.PlacementParty
		return tx.Create(&pokemon).Error
	})
	if err != nil {
		span.RecordError(err)
		return core.Pokemon{}, err
	}
	return pokemon, nil
}

func (r *repository) GetByID(ctx context.Context, id uint) (core.Pokemon, error) {
	ctx, span := tracer.Start(ctx, "Pokemon.Repository.GetByID")
	defer span.End()

	var pokemon core.Pokemon
	if err := r.db.WithContext(ctx).First(&pokemon, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return core.Pokemon{}, core.NewErrorNotFound()
		}
		span.RecordError(err)
		return core.Pokemon{}, err
	}
	return pokemon, nil
}

// ListParty returns a trainer's active party ordered by id.
func (r *repository) ListParty(ctx context.Context, trainerID uint) ([]core.Pokemon, error) {
	ctx, span := tracer.Start(ctx, "Pokemon.Repository.ListParty")
	defer span.End()

	var pokemons []core.Pokemon
	err := r.db.WithContext(ctx).
		Where("trainer_id = ? AND status = ?", trainerID, core.PlacementParty).
		Order("id ASC").
		Find(&pokemons).Error
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if pokemons == nil {
		pokemons = []core.Pokemon{}
	}
	return pokemons, nil
}

// ListBox returns a trainer's boxed pokemons ordered by name.
func (r *repository) ListBox(ctx context.Context, trainerID uint) ([]core.Pokemon, error) {
	ctx, span := tracer.Start(ctx, "Pokemon.Repository.ListBox")
	defer span.End()

	var pokemons []core.Pokemon
	err := r.db.WithContext(ctx).
		Where("trainer_id = ? AND status = ?", trainerID, core.PlacementBox).
		Order("name ASC").
		Find(&pokemons).Error
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if pokemons == nil {
		pokemons = []core.Pokemon{}
	}
	return pokemons, nil
}

// UpdateStats applies the merged stat columns and returns the fresh row.
func (r *repository) UpdateStats(ctx context.Context, id uint, changes map[string]interface{}) (core.Pokemon, error) {
	ctx, span := tracer.Start(ctx, "Pokemon.Repository.UpdateStats")
	defer span.End()

	if err := r.db.WithContext(ctx).Model(&core.Pokemon{}).Where("id = ?", id).Updates(changes).Error; err != nil {
		span.RecordError(err)
		return core.Pokemon{}, err
	}

	var pokemon core.Pokemon
	if err := r.db.WithContext(ctx).First(&pokemon, id).Error; err != nil {
		span.RecordError(err)
		return core.Pokemon{}, err
	}
	return pokemon, nil
}

// Deposit moves a pokemon to the box. No precondition.
func (r *repository) Deposit(ctx context.Context, id uint) (core.Pokemon, error) {
	ctx, span := tracer.Start(ctx, "Pokemon.Repository.Deposit")
	defer span.End()

	var pokemon core.Pokemon
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&pokemon, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return core.NewErrorNotFound()
			}
			return err
		}
		pokemon.Status = core.PlacementBox
		return tx.Model(&pokemon).Update("status", core.PlacementBox).Error
	})
	if err != nil {
		span.RecordError(err)
		return core.Pokemon{}, err
	}
	return pokemon, nil
}

// Withdraw moves a boxed pokemon back into the party, guarded by the
// capacity check inside the same transaction.
func (r *repository) Withdraw(ctx context.Context, id uint) (core.Pokemon, error) {
	ctx, span := tracer.Start(ctx, "Pokemon.Repository.Withdraw")
	defer span.End()

	var pokemon core.Pokemon
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&pokemon, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return core.NewErrorNotFound()
			}
			return err
		}
		if pokemon.Status == core.PlacementParty {
			return nil
		}
		count, err := partyCount(tx, pokemon.TrainerID)
		if err != nil {
			return err
		}
		if count >= core.PartyLimit {
			return core.NewErrorPartyFull()
		}
		pokemon.Status = core.PlacementParty
		return tx.Model(&pokemon).Update("status", core.PlacementParty).Error
	})
	if err != nil {
		span.RecordError(err)
		return core.Pokemon{}, err
	}
	return pokemon, nil
}

// DeleteCascade removes a pokemon and its sheet in one transaction and
// returns the deleted row so the caller can unlink the avatar file.
func (r *repository) DeleteCascade(ctx context.Context, id uint) (core.Pokemon, error) {
	ctx, span := tracer.Start(ctx, "Pokemon.Repository.DeleteCascade")
	defer span.End()

	var pokemon core.Pokemon
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&pokemon, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return core.NewErrorNotFound()
			}
			return err
		}
		if err := tx.Where("pokemon_id = ?", id).Delete(&core.PokemonSheet{}).Error; err != nil {
			return err
		}
		return tx.Delete(&core.Pokemon{}, id).Error
	})
	if err != nil {
		span.RecordError(err)
		return core.Pokemon{}, err
	}
	return pokemon, nil
}

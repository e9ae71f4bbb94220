package trainer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/pokecamp/backend/x/core"
)

// Repository is the interface for trainer repository
type Repository interface {
	Create(ctx context.Context, trainer core.Trainer) (core.Trainer, error)
	GetByID(ctx context.Context, id uint) (core.Trainer, error)
	GetByUsername(ctx context.Context, username string) (core.Trainer, error)
	ListTrainers(ctx context.Context) ([]core.Trainer, error)
	Update(ctx context.Context, id uint, changes map[string]interface{}) (core.Trainer, error)
	DeleteCascade(ctx context.Context, id uint) (core.Trainer, []core.Pokemon, error)
}

type repository struct {
	db *gorm.DB
	mc *memcache.Client
}

// NewRepository creates a new trainer repository
func NewRepository(db *gorm.DB, mc *memcache.Client) Repository {
	return &repository{db, mc}
}

func cacheKey(id uint) string {
	return fmt.Sprintf("trainer:%d", id)
}

func (r *repository) invalidate(ctx context.Context, id uint) {
	if err := r.mc.Delete(cacheKey(id)); err != nil && err != memcache.ErrCacheMiss {
		slog.ErrorContext(ctx, "failed to invalidate trainer cache",
			slog.String("error", err.Error()),
		)
	}
}

// Create inserts a new account row. A concurrent registration of the
// same handle loses the race on the unique index and reports the
// duplicate, same as the pre-insert check.
func (r *repository) Create(ctx context.Context, trainer core.Trainer) (core.Trainer, error) {
	ctx, span := tracer.Start(ctx, "Trainer.Repository.Create")
	defer span.End()

	if err := r.db.WithContext(ctx).Create(&trainer).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return core.Trainer{}, core.NewErrorAlreadyExists()
		}
		span.RecordError(err)
		return core.Trainer{}, err
	}
	return trainer, nil
}

// GetByID returns a trainer by id, read through the cache.
func (r *repository) GetByID(ctx context.Context, id uint) (core.Trainer, error) {
	ctx, span := tracer.Start(ctx, "Trainer.Repository.GetByID")
	defer span.End()

	item, err := r.mc.Get(cacheKey(id))
	if err == nil {
		var cached core.Trainer
		if err := json.Unmarshal(item.Value, &cached); err == nil {
			return cached, nil
		}
	}

	var trainer core.Trainer
	if err := r.db.WithContext(ctx).First(&trainer, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return core.Trainer{}, core.NewErrorNotFound()
		}
		span.RecordError(err)
		return core.Trainer{}, err
	}

	if data, err := json.Marshal(trainer); err == nil {
		r.mc.Set(&memcache.Item{Key: cacheKey(id), Value: data})
	}

	return trainer, nil
}

// GetByUsername returns a trainer by its unique handle.
func (r *repository) GetByUsername(ctx context.Context, username string) (core.Trainer, error) {
	ctx, span := tracer.Start(ctx, "Trainer.Repository.GetByUsername")
	defer span.End()

	var trainer core.Trainer
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&trainer).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return core.Trainer{}, core.NewErrorNotFound()
		}
		span.RecordError(err)
		return core.Trainer{}, err
	}
	return trainer, nil
}

// ListTrainers returns all regular trainer accounts ordered by handle.
// Master accounts are not listed.
func (r *repository) ListTrainers(ctx context.Context) ([]core.Trainer, error) {
	ctx, span := tracer.Start(ctx, "Trainer.Repository.ListTrainers")
	defer span.End()

	var trainers []core.Trainer
	err := r.db.WithContext(ctx).
		Where("tipo_usuario = ?", core.RoleTrainer).
		Order("username ASC").
		Find(&trainers).Error
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if trainers == nil {
		trainers = []core.Trainer{}
	}
	return trainers, nil
}

// Update applies the supplied column changes and returns the fresh row.
func (r *repository) Update(ctx context.Context, id uint, changes map[string]interface{}) (core.Trainer, error) {
	ctx, span := tracer.Start(ctx, "Trainer.Repository.Update")
	defer span.End()

	if err := r.db.WithContext(ctx).Model(&core.Trainer{}).Where("id = ?", id).Updates(changes).Error; err != nil {
		span.RecordError(err)
		return core.Trainer{}, err
	}

	r.invalidate(ctx, id)

	var trainer core.Trainer
	if err := r.db.WithContext(ctx).First(&trainer, id).Error; err != nil {
		span.RecordError(err)
		return core.Trainer{}, err
	}
	return trainer, nil
}

// DeleteCascade removes the account and everything it owns in one
// transaction, in dependency order: pokemon sheets, pokemons, trainer
// sheet, pokedex, backpack, then the account row. The deleted trainer
// and its pokemons are returned so the caller can clean up avatar files.
func (r *repository) DeleteCascade(ctx context.Context, id uint) (core.Trainer, []core.Pokemon, error) {
	ctx, span := tracer.Start(ctx, "Trainer.Repository.DeleteCascade")
	defer span.End()

	var trainer core.Trainer
	var pokemons []core.Pokemon

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&trainer, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return core.NewErrorNotFound()
			}
			return err
		}

		if err := tx.Where("trainer_id = ?", id).Find(&pokemons).Error; err != nil {
			return err
		}

		if err := tx.Where("pokemon_id IN (?)",
			tx.Model(&core.Pokemon{}).Select("id").Where("trainer_id = ?", id),
		).Delete(&core.PokemonSheet{}).Error; err != nil {
			return err
		}
		if err := tx.Where("trainer_id = ?", id).Delete(&core.Pokemon{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&core.TrainerSheet{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&core.PokedexEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&core.BackpackItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&core.Trainer{}, id).Error
	})
	if err != nil {
		span.RecordError(err)
		return core.Trainer{}, nil, err
	}

	r.invalidate(ctx, id)

	return trainer, pokemons, nil
}

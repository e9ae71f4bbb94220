package backpack

import (
	"context"

	"gorm.io/gorm"

	"github.com/pokecamp/backend/x/core"
)

// Repository is the interface for backpack repository
type Repository interface {
	List(ctx context.Context, userID uint) ([]core.BackpackItem, error)
	GetItem(ctx context.Context, id, userID uint) (core.BackpackItem, error)
	AddOrIncrement(ctx context.Context, userID uint, itemName string, quantity int) (core.BackpackItem, error)
	SetQuantity(ctx context.Context, id uint, quantity int) (core.BackpackItem, error)
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new backpack repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

// List returns a trainer's items ordered by name.
func (r *repository) List(ctx context.Context, userID uint) ([]core.BackpackItem, error) {
	ctx, span := tracer.Start(ctx, "Backpack.Repository.List")
	defer span.End()

	var items []core.BackpackItem
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("item_nome ASC").
		Find(&items).Error
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if items == nil {
		items = []core.BackpackItem{}
	}
	return items, nil
}

// GetItem fetches one stack, scoped to its owner.
func (r *repository) GetItem(ctx context.Context, id, userID uint) (core.BackpackItem, error) {
	ctx, span := tracer.Start(ctx, "Backpack.Repository.GetItem")
	defer span.End()

	var item core.BackpackItem
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&item).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return core.BackpackItem{}, core.NewErrorNotFound()
		}
		span.RecordError(err)
		return core.BackpackItem{}, err
	}
	return item, nil
}

// AddOrIncrement adds quantity to an existing stack or creates a new
// one. Lookup and write share a transaction so two concurrent adds of
// the same item cannot produce two rows.
func (r *repository) AddOrIncrement(ctx context.Context, userID uint, itemName string, quantity int) (core.BackpackItem, error) {
	ctx, span := tracer.Start(ctx, "Backpack.Repository.AddOrIncrement")
	defer span.End()

	var item core.BackpackItem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND item_nome = ?", userID, itemName).First(&item).Error
		if err == gorm.ErrRecordNotFound {
			item = core.BackpackItem{
				UserID:   userID,
				ItemName: itemName,
				Quantity: quantity,
			}
			return tx.Create(&item).Error
		}
		if err != nil {
			return err
		}

		item.Quantity += quantity
		return tx.Model(&item).Update("quantidade", item.Quantity).Error
	})
	if err != nil {
		span.RecordError(err)
		return core.BackpackItem{}, err
	}
	return item, nil
}

// SetQuantity overwrites a stack's quantity and returns the fresh row.
func (r *repository) SetQuantity(ctx context.Context, id uint, quantity int) (core.BackpackItem, error) {
	ctx, span := tracer.Start(ctx, "Backpack.Repository.SetQuantity")
	defer span.End()

	if err := r.db.WithContext(ctx).Model(&core.BackpackItem{}).Where("id = ?", id).Update("quantidade", quantity).Error; err != nil {
		span.RecordError(err)
		return core.BackpackItem{}, err
	}

	var item core.BackpackItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		span.RecordError(err)
		return core.BackpackItem{}, err
	}
	return item, nil
}

// Delete removes a stack entirely.
func (r *repository) Delete(ctx context.Context, id uint) error {
	ctx, span := tracer.Start(ctx, "Backpack.Repository.Delete")
	defer span.End()

	if err := r.db.WithContext(ctx).Delete(&core.BackpackItem{}, id).Error; err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

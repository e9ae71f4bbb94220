package backpack

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pokecamp/backend/internal/testutil"
	"github.com/pokecamp/backend/x/audit"
	"github.com/pokecamp/backend/x/core"
)

var ctx = context.Background()

func TestAddStacks(t *testing.T) {

	db, cleanup := testutil.CreateDB()
	defer cleanup()

	trainer := core.Trainer{Username: "ash", Password: "x", Role: core.RoleTrainer}
	assert.NoError(t, db.Create(&trainer).Error)

	service := NewService(NewRepository(db), audit.NewService(audit.NewRepository(db)))

	item, err := service.Add(ctx, trainer.ID, "Pokeball", 5)
	if assert.NoError(t, err) {
		assert.Equal(t, 5, item.Quantity)
	}

	// adding the same item again stacks instead of creating a row
	item, err = service.Add(ctx, trainer.ID, "Pokeball", 3)
	if assert.NoError(t, err) {
		assert.Equal(t, 8, item.Quantity)
	}

	var count int64
	db.Model(&core.BackpackItem{}).Where("user_id = ?", trainer.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	// the same item in another backpack is its own stack
	rival := core.Trainer{Username: "gary", Password: "x", Role: core.RoleTrainer}
	assert.NoError(t, db.Create(&rival).Error)

	item, err = service.Add(ctx, rival.ID, "Pokeball", 2)
	if assert.NoError(t, err) {
		assert.Equal(t, 2, item.Quantity)
	}
}

func TestSetQuantityFloorsToDelete(t *testing.T) {

	db, cleanup := testutil.CreateDB()
	defer cleanup()

	trainer := core.Trainer{Username: "misty", Password: "x", Role: core.RoleTrainer}
	assert.NoError(t, db.Create(&trainer).Error)

	service := NewService(NewRepository(db), audit.NewService(audit.NewRepository(db)))

	item, err := service.Add(ctx, trainer.ID, "Potion", 4)
	assert.NoError(t, err)

	// a plain quantity change keeps the row
	updated, deleted, err := service.SetQuantity(ctx, trainer.ID, item.ID, 2)
	if assert.NoError(t, err) {
		assert.False(t, deleted)
		assert.Equal(t, 2, updated.Quantity)
	}

	// zero removes the stack entirely
	_, deleted, err = service.SetQuantity(ctx, trainer.ID, item.ID, 0)
	if assert.NoError(t, err) {
		assert.True(t, deleted)
	}

	var count int64
	db.Model(&core.BackpackItem{}).Where("id = ?", item.ID).Count(&count)
	assert.Zero(t, count)

	// and both edits left their audit marks
	db.Model(&core.AuditLog{}).Where("action = ?", audit.ActionEditItem).Count(&count)
	assert.Equal(t, int64(1), count)
	db.Model(&core.AuditLog{}).Where("action = ?", audit.ActionRemoveItem).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestOwnershipScoping(t *testing.T) {

	db, cleanup := testutil.CreateDB()
	defer cleanup()

	trainer := core.Trainer{Username: "brock", Password: "x", Role: core.RoleTrainer}
	rival := core.Trainer{Username: "gary", Password: "x", Role: core.RoleTrainer}
	assert.NoError(t, db.Create(&trainer).Error)
	assert.NoError(t, db.Create(&rival).Error)

	service := NewService(NewRepository(db), audit.NewService(audit.NewRepository(db)))

	item, err := service.Add(ctx, trainer.ID, "Rock Badge", 1)
	assert.NoError(t, err)

	// another trainer cannot see or touch the stack
	_, _, err = service.SetQuantity(ctx, rival.ID, item.ID, 3)
	assert.ErrorIs(t, err, core.ErrorNotFound{})

	err = service.Remove(ctx, rival.ID, item.ID)
	assert.ErrorIs(t, err, core.ErrorNotFound{})

	// the owner can
	assert.NoError(t, service.Remove(ctx, trainer.ID, item.ID))

	items, err := service.List(ctx, trainer.ID)
	assert.NoError(t, err)
	assert.Len(t, items, 0)
}

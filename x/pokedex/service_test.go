package pokedex

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pokecamp/backend/internal/testutil"
	"github.com/pokecamp/backend/x/audit"
	"github.com/pokecamp/backend/x/core"
)

var ctx = context.Background()

func TestAddIsIdempotent(t *testing.T) {

	db, cleanup := testutil.CreateDB()
	defer cleanup()

	trainer := core.Trainer{Username: "ash", Password: "x", Role: core.RoleTrainer}
	assert.NoError(t, db.Create(&trainer).Error)

	service := NewService(NewRepository(db), audit.NewService(audit.NewRepository(db)))

	entry := core.PokedexEntry{
		SpeciesID: 25,
		UserID:    trainer.ID,
		Name:      "Pikachu",
		Type:      "Electric",
	}

	// first sighting inserts
	added, err := service.Add(ctx, trainer.ID, entry)
	assert.NoError(t, err)
	assert.True(t, added)

	// the repeat is a quiet no-op
	added, err = service.Add(ctx, trainer.ID, entry)
	assert.NoError(t, err)
	assert.False(t, added)

	// only the fresh discovery was audited
	var count int64
	db.Model(&core.AuditLog{}).Where("action = ?", audit.ActionAddPokedex).Count(&count)
	assert.Equal(t, int64(1), count)

	// another trainer may discover the same species
	rival := core.Trainer{Username: "gary", Password: "x", Role: core.RoleTrainer}
	assert.NoError(t, db.Create(&rival).Error)

	entry.UserID = rival.ID
	added, err = service.Add(ctx, rival.ID, entry)
	assert.NoError(t, err)
	assert.True(t, added)

	// both sightings of species 25 coexist, one per trainer
	var total int64
	db.Model(&core.PokedexEntry{}).Where("id = ?", entry.SpeciesID).Count(&total)
	assert.Equal(t, int64(2), total)
}

func TestListOrdersBySpecies(t *testing.T) {

	db, cleanup := testutil.CreateDB()
	defer cleanup()

	trainer := core.Trainer{Username: "misty", Password: "x", Role: core.RoleTrainer}
	assert.NoError(t, db.Create(&trainer).Error)

	service := NewService(NewRepository(db), audit.NewService(audit.NewRepository(db)))

	for _, id := range []uint{121, 54, 120} {
		_, err := service.Add(ctx, trainer.ID, core.PokedexEntry{
			SpeciesID: id,
			UserID:    trainer.ID,
			Name:      "Water-thing",
			Type:      "Water",
		})
		assert.NoError(t, err)
	}

	entries, err := service.List(ctx, trainer.ID)
	if assert.NoError(t, err) {
		assert.Len(t, entries, 3)
		assert.Equal(t, uint(54), entries[0].SpeciesID)
		assert.Equal(t, uint(120), entries[1].SpeciesID)
		assert.Equal(t, uint(121), entries[2].SpeciesID)
	}
}

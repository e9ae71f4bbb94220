package pokemon

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pokecamp/backend/internal/testutil"
	"github.com/pokecamp/backend/x/audit"
	"github.com/pokecamp/backend/x/core"
	"github.com/pokecamp/backend/x/storage"
	"github.com/pokecamp/backend/x/util"
)

var ctx = context.Background()

func intptr(v int) *int {
	return &v
}

func TestPartyCapacity(t *testing.T) {

	db, cleanup := testutil.CreateDB()
	defer cleanup()

	config := util.Config{
		Server: util.Server{UploadDir: t.TempDir()},
		Site:   util.Site{DefaultPokemonImage: "https://example.com/default-pokemon.png"},
	}

	trainer := core.Trainer{Username: "ash", Password: "x", Role: core.RoleTrainer}
	assert.NoError(t, db.Create(&trainer).Error)

	auditService := audit.NewService(audit.NewRepository(db))
	service := NewService(NewRepository(db), storage.NewService(config), auditService, config)

	// fill the party
	for i := 0; i < core.PartyLimit; i++ {
		created, err := service.Create(ctx, trainer.ID, createRequest{
			Name:      fmt.Sprintf("Pidgey %d", i),
			Type:      "Flying",
			TrainerID: trainer.ID,
		}, nil)
		if assert.NoError(t, err) {
			assert.Equal(t, core.PlacementParty, created.Status)
			assert.Equal(t, 1, created.Level)
			assert.Equal(t, 10, created.MaxHP)
			assert.Equal(t, config.Site.DefaultPokemonImage, created.ImageURL)
		}
	}

	// the seventh is rejected
	_, err := service.Create(ctx, trainer.ID, createRequest{
		Name:      "One Too Many",
		Type:      "Normal",
		TrainerID: trainer.ID,
	}, nil)
	assert.ErrorIs(t, err, core.ErrorPartyFull{})

	// depositing one makes room again
	party, err := service.ListParty(ctx, trainer.ID)
	assert.NoError(t, err)
	assert.Len(t, party, core.PartyLimit)

	_, err = service.Deposit(ctx, trainer.ID, party[0].ID)
	assert.NoError(t, err)

	created, err := service.Create(ctx, trainer.ID, createRequest{
		Name:      "Fits Now",
		Type:      "Normal",
		TrainerID: trainer.ID,
	}, nil)
	if assert.NoError(t, err) {
		assert.Equal(t, core.PlacementParty, created.Status)
	}

	// and the box holds the deposited one, so withdrawing is blocked
	box, err := service.ListBox(ctx, trainer.ID)
	assert.NoError(t, err)
	assert.Len(t, box, 1)

	_, err = service.Withdraw(ctx, trainer.ID, box[0].ID)
	assert.ErrorIs(t, err, core.ErrorPartyFull{})

	// withdrawing a pokemon already in the party is a no-op
	withdrawn, err := service.Withdraw(ctx, trainer.ID, created.ID)
	if assert.NoError(t, err) {
		assert.Equal(t, core.PlacementParty, withdrawn.Status)
	}
}

func TestUpdateStatsMerges(t *testing.T) {

	db, cleanup := testutil.CreateDB()
	defer cleanup()

	config := util.Config{Server: util.Server{UploadDir: t.TempDir()}}

	trainer := core.Trainer{Username: "misty", Password: "x", Role: core.RoleTrainer}
	assert.NoError(t, db.Create(&trainer).Error)

	auditService := audit.NewService(audit.NewRepository(db))
	service := NewService(NewRepository(db), storage.NewService(config), auditService, config)

	created, err := service.Create(ctx, trainer.ID, createRequest{
		Name:      "Staryu",
		Type:      "Water",
		Level:     12,
		XP:        340,
		MaxHP:     28,
		CurrentHP: 28,
		TrainerID: trainer.ID,
	}, nil)
	assert.NoError(t, err)

	// only the supplied fields change
	updated, err := service.UpdateStats(ctx, trainer.ID, created, statsRequest{
		Level:     intptr(13),
		CurrentHP: intptr(9),
	})
	if assert.NoError(t, err) {
		assert.Equal(t, 13, updated.Level)
		assert.Equal(t, 9, updated.CurrentHP)
		assert.Equal(t, 340, updated.XP)
		assert.Equal(t, 28, updated.MaxHP)
	}

	var entry core.AuditLog
	if assert.NoError(t, db.Where("action = ?", audit.ActionEditPokemon).First(&entry).Error) {
		assert.Contains(t, entry.Details, "Staryu")
	}
}

func TestDeleteCascadeRemovesSheet(t *testing.T) {

	db, cleanup := testutil.CreateDB()
	defer cleanup()

	config := util.Config{Server: util.Server{UploadDir: t.TempDir()}}

	trainer := core.Trainer{Username: "brock", Password: "x", Role: core.RoleTrainer}
	assert.NoError(t, db.Create(&trainer).Error)

	auditService := audit.NewService(audit.NewRepository(db))
	service := NewService(NewRepository(db), storage.NewService(config), auditService, config)

	created, err := service.Create(ctx, trainer.ID, createRequest{
		Name:      "Onix",
		Type:      "Rock",
		TrainerID: trainer.ID,
	}, nil)
	assert.NoError(t, err)

	assert.NoError(t, db.Create(&core.PokemonSheet{PokemonID: created.ID, Notes: "likes tunnels"}).Error)

	assert.NoError(t, service.Delete(ctx, trainer.ID, created.ID))

	var count int64
	db.Model(&core.Pokemon{}).Where("id = ?", created.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&core.PokemonSheet{}).Where("pokemon_id = ?", created.ID).Count(&count)
	assert.Zero(t, count)

	err = service.Delete(ctx, trainer.ID, created.ID)
	assert.ErrorIs(t, err, core.ErrorNotFound{})
}

package trainer

import (
	"context"
	"testing"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/pokecamp/backend/internal/testutil"
	"github.com/pokecamp/backend/x/audit"
	"github.com/pokecamp/backend/x/core"
	"github.com/pokecamp/backend/x/storage"
	"github.com/pokecamp/backend/x/util"
)

var ctx = context.Background()

func TestRegister(t *testing.T) {

	db, cleanup := testutil.CreateDB()
	defer cleanup()

	config := util.Config{
		Server: util.Server{UploadDir: t.TempDir()},
		Site:   util.Site{DefaultTrainerImage: "https://example.com/default-trainer.png"},
	}

	mc := memcache.New("localhost:11211")
	auditService := audit.NewService(audit.NewRepository(db))
	service := NewService(NewRepository(db, mc), storage.NewService(config), auditService, config)

	created, err := service.Register(ctx, "ash", "pikachu123", "", nil)
	if assert.NoError(t, err) {
		assert.NotZero(t, created.ID)
		assert.Equal(t, "ash", created.Username)
		assert.Equal(t, core.RoleTrainer, created.Role)
		assert.Equal(t, config.Site.DefaultTrainerImage, created.ImageURL)

		// the password is stored hashed, never verbatim
		assert.NotEqual(t, "pikachu123", created.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("pikachu123")))
	}

	// registration has no actor, so the audit snapshot falls back
	var entry core.AuditLog
	if assert.NoError(t, db.Where("action = ?", audit.ActionRegisterTrainer).First(&entry).Error) {
		assert.Equal(t, audit.SystemUsername, entry.Username)
		assert.Nil(t, entry.UserID)
	}

	// the handle is unique
	_, err = service.Register(ctx, "ash", "other", "", nil)
	assert.ErrorIs(t, err, core.ErrorAlreadyExists{})
}

func TestCreateDuplicateHandle(t *testing.T) {

	db, cleanup := testutil.CreateDB()
	defer cleanup()

	repository := NewRepository(db, memcache.New("localhost:11211"))

	_, err := repository.Create(ctx, core.Trainer{Username: "ash", Password: "x", Role: core.RoleTrainer})
	assert.NoError(t, err)

	// an insert that loses the race to the unique index reports the
	// duplicate, not a bare database error
	_, err = repository.Create(ctx, core.Trainer{Username: "ash", Password: "y", Role: core.RoleTrainer})
	assert.ErrorIs(t, err, core.ErrorAlreadyExists{})
}

func TestUpdate(t *testing.T) {

	db, cleanup := testutil.CreateDB()
	defer cleanup()

	config := util.Config{
		Server: util.Server{UploadDir: t.TempDir()},
		Site:   util.Site{DefaultTrainerImage: "https://example.com/default-trainer.png"},
	}

	mc := memcache.New("localhost:11211")
	auditService := audit.NewService(audit.NewRepository(db))
	service := NewService(NewRepository(db, mc), storage.NewService(config), auditService, config)

	created, err := service.Register(ctx, "brock", "onix456", "", nil)
	assert.NoError(t, err)

	// partial update: only the username changes
	updated, err := service.Update(ctx, created.ID, created.ID, updateRequest{Username: "brock2"}, nil)
	if assert.NoError(t, err) {
		assert.Equal(t, "brock2", updated.Username)
		assert.Equal(t, created.Password, updated.Password)
	}

	// a request carrying nothing is rejected
	_, err = service.Update(ctx, created.ID, created.ID, updateRequest{}, nil)
	assert.ErrorIs(t, err, core.ErrorNoChanges{})

	// sending the current username counts as no change
	_, err = service.Update(ctx, created.ID, created.ID, updateRequest{Username: "brock2"}, nil)
	assert.ErrorIs(t, err, core.ErrorNoChanges{})

	// unknown account
	_, err = service.Update(ctx, created.ID, created.ID+100, updateRequest{Username: "ghost"}, nil)
	assert.ErrorIs(t, err, core.ErrorNotFound{})
}

func TestDeleteCascade(t *testing.T) {

	db, cleanup := testutil.CreateDB()
	defer cleanup()

	config := util.Config{
		Server: util.Server{UploadDir: t.TempDir()},
		Site:   util.Site{DefaultTrainerImage: "https://example.com/default-trainer.png"},
	}

	mc := memcache.New("localhost:11211")
	auditService := audit.NewService(audit.NewRepository(db))
	service := NewService(NewRepository(db, mc), storage.NewService(config), auditService, config)

	created, err := service.Register(ctx, "gary", "eevee789", "", nil)
	assert.NoError(t, err)

	// give the account one of everything it can own
	pokemon := core.Pokemon{Name: "Eevee", Type: "Normal", TrainerID: created.ID, Status: core.PlacementParty}
	assert.NoError(t, db.Create(&pokemon).Error)
	assert.NoError(t, db.Create(&core.PokemonSheet{PokemonID: pokemon.ID, Notes: "stubborn"}).Error)
	assert.NoError(t, db.Create(&core.TrainerSheet{UserID: created.ID, Nome: "Gary"}).Error)
	assert.NoError(t, db.Create(&core.PokedexEntry{SpeciesID: 133, UserID: created.ID, Name: "Eevee", Type: "Normal"}).Error)
	assert.NoError(t, db.Create(&core.BackpackItem{UserID: created.ID, ItemName: "Pokeball", Quantity: 5}).Error)

	assert.NoError(t, service.Delete(ctx, created.ID, created.ID))

	var count int64
	db.Model(&core.Trainer{}).Where("id = ?", created.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&core.Pokemon{}).Where("trainer_id = ?", created.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&core.PokemonSheet{}).Where("pokemon_id = ?", pokemon.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&core.TrainerSheet{}).Where("user_id = ?", created.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&core.PokedexEntry{}).Where("user_id = ?", created.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&core.BackpackItem{}).Where("user_id = ?", created.ID).Count(&count)
	assert.Zero(t, count)

	// but the audit trail keeps the name
	var entry core.AuditLog
	if assert.NoError(t, db.Where("action = ?", audit.ActionDeleteTrainer).First(&entry).Error) {
		assert.Contains(t, entry.Details, "gary")
	}

	// deleting again reports not found
	err = service.Delete(ctx, created.ID, created.ID)
	assert.ErrorIs(t, err, core.ErrorNotFound{})
}

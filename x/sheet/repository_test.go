package sheet

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pokecamp/backend/internal/testutil"
	"github.com/pokecamp/backend/x/core"
)

var ctx = context.Background()

func TestTrainerSheetUpsert(t *testing.T) {

	db, cleanup := testutil.CreateDB()
	defer cleanup()

	repo := NewRepository(db)

	_, err := repo.GetTrainerSheet(ctx, 1)
	assert.ErrorIs(t, err, core.ErrorNotFound{})

	// first save creates the row
	saved, err := repo.UpsertTrainerSheet(ctx, core.TrainerSheet{
		UserID:        1,
		Nome:          "Ash Ketchum",
		Idade:         "10",
		VantagensJSON: `["determined"]`,
	})
	if assert.NoError(t, err) {
		assert.Equal(t, "Ash Ketchum", saved.Nome)
		assert.Equal(t, `["determined"]`, saved.VantagensJSON)
	}

	// second save replaces the whole row, it does not merge
	saved, err = repo.UpsertTrainerSheet(ctx, core.TrainerSheet{
		UserID: 1,
		Nome:   "Ash",
	})
	if assert.NoError(t, err) {
		assert.Equal(t, "Ash", saved.Nome)
		assert.Equal(t, "", saved.Idade)
		assert.Equal(t, "", saved.VantagensJSON)
	}

	// still exactly one row per trainer
	var count int64
	db.Model(&core.TrainerSheet{}).Where("user_id = ?", 1).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestPokemonSheetUpsert(t *testing.T) {

	db, cleanup := testutil.CreateDB()
	defer cleanup()

	repo := NewRepository(db)

	_, err := repo.GetPokemonSheet(ctx, 5)
	assert.ErrorIs(t, err, core.ErrorNotFound{})

	saved, err := repo.UpsertPokemonSheet(ctx, core.PokemonSheet{PokemonID: 5, Notes: "shy"})
	if assert.NoError(t, err) {
		assert.Equal(t, "shy", saved.Notes)
	}

	saved, err = repo.UpsertPokemonSheet(ctx, core.PokemonSheet{PokemonID: 5, Notes: "bold now"})
	if assert.NoError(t, err) {
		assert.Equal(t, "bold now", saved.Notes)
	}

	var count int64
	db.Model(&core.PokemonSheet{}).Where("pokemon_id = ?", 5).Count(&count)
	assert.Equal(t, int64(1), count)
}

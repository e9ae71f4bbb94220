//go:build wireinject

package main

import (
	"github.com/bradfitz/gomemcache/memcache"
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pokecamp/backend/x/audit"
	"github.com/pokecamp/backend/x/auth"
	"github.com/pokecamp/backend/x/backpack"
	"github.com/pokecamp/backend/x/pokedex"
	"github.com/pokecamp/backend/x/pokemon"
	"github.com/pokecamp/backend/x/sheet"
	"github.com/pokecamp/backend/x/storage"
	"github.com/pokecamp/backend/x/token"
	"github.com/pokecamp/backend/x/trainer"
	"github.com/pokecamp/backend/x/util"
)

var auditProvider = wire.NewSet(audit.NewService, audit.NewRepository)
var authHandlerProvider = wire.NewSet(auth.NewHandler, auth.NewService, auth.NewRepository, token.NewService)
var trainerHandlerProvider = wire.NewSet(trainer.NewHandler, trainer.NewService, trainer.NewRepository)
var pokemonHandlerProvider = wire.NewSet(pokemon.NewHandler, pokemon.NewService, pokemon.NewRepository)
var sheetHandlerProvider = wire.NewSet(sheet.NewHandler, sheet.NewService, sheet.NewRepository, pokemon.NewService, pokemon.NewRepository)
var pokedexHandlerProvider = wire.NewSet(pokedex.NewHandler, pokedex.NewService, pokedex.NewRepository)
var backpackHandlerProvider = wire.NewSet(backpack.NewHandler, backpack.NewService, backpack.NewRepository)

func SetupAuthService(db *gorm.DB, rdb *redis.Client, config util.Config) auth.Service {
	wire.Build(auth.NewService, auth.NewRepository, token.NewService, auditProvider)
	return nil
}

func SetupAuthHandler(db *gorm.DB, rdb *redis.Client, config util.Config) auth.Handler {
	wire.Build(authHandlerProvider, auditProvider)
	return nil
}

func SetupTrainerHandler(db *gorm.DB, mc *memcache.Client, config util.Config) trainer.Handler {
	wire.Build(trainerHandlerProvider, auditProvider, storage.NewService)
	return nil
}

func SetupPokemonHandler(db *gorm.DB, config util.Config) pokemon.Handler {
	wire.Build(pokemonHandlerProvider, auditProvider, storage.NewService)
	return nil
}

func SetupSheetHandler(db *gorm.DB, config util.Config) sheet.Handler {
	wire.Build(sheetHandlerProvider, auditProvider, storage.NewService)
	return nil
}

func SetupPokedexHandler(db *gorm.DB) pokedex.Handler {
	wire.Build(pokedexHandlerProvider, auditProvider)
	return nil
}

func SetupBackpackHandler(db *gorm.DB) backpack.Handler {
	wire.Build(backpackHandlerProvider, auditProvider)
	return nil
}

func SetupAuditHandler(db *gorm.DB) audit.Handler {
	wire.Build(audit.NewHandler, auditProvider)
	return nil
}

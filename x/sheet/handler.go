package sheet

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/pokecamp/backend/x/auth"
	"github.com/pokecamp/backend/x/core"
	"github.com/pokecamp/backend/x/pokemon"
)

// Handler is the interface for handling HTTP requests
type Handler interface {
	GetTrainerSheet(c echo.Context) error
	SaveTrainerSheet(c echo.Context) error
	GetPokemonSheet(c echo.Context) error
	SavePokemonSheet(c echo.Context) error
}

type handler struct {
	service Service
	pokemon pokemon.Service
}

// NewHandler creates a new handler
func NewHandler(service Service, pokemon pokemon.Service) Handler {
	return &handler{service: service, pokemon: pokemon}
}

// sheetOwner resolves which trainer's sheet the request targets: the
// path id when present, the requester otherwise.
func sheetOwner(c echo.Context) (uint, uint, core.Role, bool) {
	requesterID, role, ok := auth.Requester(c)
	if !ok {
		return 0, 0, role, false
	}
	ownerID := requesterID
	if c.Param("userId") != "" {
		parsed, err := strconv.ParseUint(c.Param("userId"), 10, 32)
		if err != nil {
			return 0, 0, role, false
		}
		ownerID = uint(parsed)
	}
	return requesterID, ownerID, role, true
}

// GetTrainerSheet returns the character sheet, 404 when none was saved.
func (h handler) GetTrainerSheet(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Sheet.Handler.GetTrainerSheet")
	defer span.End()

	requesterID, ownerID, role, ok := sheetOwner(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
	}
	if !auth.Authorize(role, requesterID, ownerID) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "you are not allowed to view this sheet"})
	}

	sheet, err := h.service.GetTrainerSheet(ctx, ownerID)
	if err != nil {
		if errors.Is(err, core.ErrorNotFound{}) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "no sheet saved yet"})
		}
		span.RecordError(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal server error"})
	}

	return c.JSON(http.StatusOK, toResponse(sheet))
}

// SaveTrainerSheet replaces the whole sheet row.
func (h handler) SaveTrainerSheet(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Sheet.Handler.SaveTrainerSheet")
	defer span.End()

	requesterID, ownerID, role, ok := sheetOwner(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
	}
	if !auth.Authorize(role, requesterID, ownerID) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "you are not allowed to edit this sheet"})
	}

	var request trainerSheetRequest
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}

	saved, err := h.service.SaveTrainerSheet(ctx, requesterID, core.TrainerSheet{
		UserID:        ownerID,
		Nome:          request.Nome,
		Peso:          request.Peso,
		Idade:         request.Idade,
		Altura:        request.Altura,
		Cidade:        request.Cidade,
		Regiao:        request.Regiao,
		XP:            request.XP,
		HP:            request.HP,
		Level:         request.Level,
		VantagensJSON: string(request.Vantagens),
		AtributosJSON: string(request.Atributos),
		PericiasJSON:  string(request.Pericias),
	})
	if err != nil {
		span.RecordError(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal server error"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "sheet saved successfully",
		"sheet":   toResponse(saved),
	})
}

// pokemonSheetTarget loads the pokemon and authorizes against its owner.
func (h handler) pokemonSheetTarget(c echo.Context) (uint, uint, int, string) {
	pokemonID, err := strconv.ParseUint(c.Param("pokemonId"), 10, 32)
	if err != nil {
		return 0, 0, http.StatusBadRequest, "invalid pokemon id"
	}

	target, err := h.pokemon.Get(c.Request().Context(), uint(pokemonID))
	if err != nil {
		if errors.Is(err, core.ErrorNotFound{}) {
			return 0, 0, http.StatusNotFound, "pokemon not found"
		}
		return 0, 0, http.StatusInternalServerError, "internal server error"
	}

	requesterID, role, ok := auth.Requester(c)
	if !ok || !auth.Authorize(role, requesterID, target.TrainerID) {
		return 0, 0, http.StatusForbidden, "you are not allowed to access this pokemon's sheet"
	}

	return uint(pokemonID), requesterID, 0, ""
}

func (h handler) GetPokemonSheet(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Sheet.Handler.GetPokemonSheet")
	defer span.End()

	pokemonID, _, status, msg := h.pokemonSheetTarget(c)
	if status != 0 {
		return c.JSON(status, echo.Map{"message": msg})
	}

	sheet, err := h.service.GetPokemonSheet(ctx, pokemonID)
	if err != nil {
		if errors.Is(err, core.ErrorNotFound{}) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "no sheet saved yet"})
		}
		span.RecordError(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal server error"})
	}

	return c.JSON(http.StatusOK, sheet)
}

func (h handler) SavePokemonSheet(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Sheet.Handler.SavePokemonSheet")
	defer span.End()

	pokemonID, requesterID, status, msg := h.pokemonSheetTarget(c)
	if status != 0 {
		return c.JSON(status, echo.Map{"message": msg})
	}

	var request pokemonSheetRequest
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}

	saved, err := h.service.SavePokemonSheet(ctx, requesterID, core.PokemonSheet{
		PokemonID: pokemonID,
		Notes:     request.Notes,
	})
	if err != nil {
		span.RecordError(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal server error"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "sheet saved successfully",
		"sheet":   saved,
	})
}

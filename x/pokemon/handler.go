package pokemon

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/pokecamp/backend/x/auth"
	"github.com/pokecamp/backend/x/core"
)

// Handler is the interface for handling HTTP requests
type Handler interface {
	Create(c echo.Context) error
	ListParty(c echo.Context) error
	ListBox(c echo.Context) error
	UpdateStats(c echo.Context) error
	Deposit(c echo.Context) error
	Withdraw(c echo.Context) error
	Delete(c echo.Context) error
}

type handler struct {
	service Service
}

// NewHandler creates a new handler
func NewHandler(service Service) Handler {
	return &handler{service: service}
}

func paramID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// Create adds a pokemon to a trainer's party. Masters may create for
// anyone, trainers only for themselves.
func (h handler) Create(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Pokemon.Handler.Create")
	defer span.End()

	var request createRequest
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	if request.Name == "" || request.Type == "" || request.TrainerID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "name, type and trainer id are required"})
	}

	requesterID, role, ok := auth.Requester(c)
	if !ok || !auth.Authorize(role, requesterID, request.TrainerID) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "you are not allowed to add pokemon to this trainer"})
	}

	image, err := c.FormFile("imageFile")
	if err != nil {
		image = nil
	}

	created, err := h.service.Create(ctx, requesterID, request, image)
	if err != nil {
		if errors.Is(err, core.ErrorPartyFull{}) {
			return c.JSON(http.StatusForbidden, echo.Map{"message": "party limit of 6 pokemon reached"})
		}
		span.RecordError(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal server error"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "pokemon registered successfully",
		"pokemon": created,
	})
}

// ListParty returns a trainer's active party.
func (h handler) ListParty(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Pokemon.Handler.ListParty")
	defer span.End()

	trainerID, err := paramID(c, "trainerId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid trainer id"})
	}

	requesterID, role, ok := auth.Requester(c)
	if !ok || !auth.Authorize(role, requesterID, trainerID) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "not authorized to view this trainer's pokemon"})
	}

	pokemons, err := h.service.ListParty(ctx, trainerID)
	if err != nil {
		span.RecordError(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal server error"})
	}

	return c.JSON(http.StatusOK, pokemons)
}

// ListBox returns boxed pokemons. Without a path id it lists the
// requester's own box.
func (h handler) ListBox(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Pokemon.Handler.ListBox")
	defer span.End()

	requesterID, role, ok := auth.Requester(c)
	if !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "requester not found"})
	}

	trainerID := requesterID
	if c.Param("trainerId") != "" {
		id, err := paramID(c, "trainerId")
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid trainer id"})
		}
		trainerID = id
	}

	if !auth.Authorize(role, requesterID, trainerID) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "not authorized to view this trainer's box"})
	}

	pokemons, err := h.service.ListBox(ctx, trainerID)
	if err != nil {
		span.RecordError(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal server error"})
	}

	return c.JSON(http.StatusOK, pokemons)
}

// UpdateStats merges new stat values into a pokemon.
func (h handler) UpdateStats(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Pokemon.Handler.UpdateStats")
	defer span.End()

	id, err := paramID(c, "pokemonId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid pokemon id"})
	}

	current, err := h.service.Get(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrorNotFound{}) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "pokemon not found"})
		}
		span.RecordError(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal server error"})
	}

	requesterID, role, ok := auth.Requester(c)
	if !ok || !auth.Authorize(role, requesterID, current.TrainerID) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "you are not allowed to edit this pokemon"})
	}

	var request statsRequest
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}

	updated, err := h.service.UpdateStats(ctx, requesterID, current, request)
	if err != nil {
		span.RecordError(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal server error"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "pokemon stats updated",
		"pokemon": updated,
	})
}

// Deposit moves a pokemon into the box.
func (h handler) Deposit(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Pokemon.Handler.Deposit")
	defer span.End()

	id, err := paramID(c, "pokemonId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid pokemon id"})
	}

	current, err := h.service.Get(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrorNotFound{}) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "pokemon not found"})
		}
		span.RecordError(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal server error"})
	}

	requesterID, role, ok := auth.Requester(c)
	if !ok || !auth.Authorize(role, requesterID, current.TrainerID) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "you are not allowed to move this pokemon"})
	}

	deposited, err := h.service.Deposit(ctx, requesterID, id)
	if err != nil {
		span.RecordError(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal server error"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "pokemon deposited",
		"pokemon": deposited,
	})
}

// Withdraw moves a boxed pokemon back into the party.
func (h handler) Withdraw(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Pokemon.Handler.Withdraw")
	defer span.End()

	id, err := paramID(c, "pokemonId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid pokemon id"})
	}

	current, err := h.service.Get(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrorNotFound{}) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "pokemon not found"})
		}
		span.RecordError(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal server error"})
	}

	requesterID, role, ok := auth.Requester(c)
	if !ok || !auth.Authorize(role, requesterID, current.TrainerID) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "you are not allowed to move this pokemon"})
	}

	withdrawn, err := h.service.Withdraw(ctx, requesterID, id)
	if err != nil {
		if errors.Is(err, core.ErrorPartyFull{}) {
			return c.JSON(http.StatusForbidden, echo.Map{"message": "party limit of 6 pokemon reached"})
		}
		span.RecordError(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal server error"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "pokemon withdrawn",
		"pokemon": withdrawn,
	})
}

// Delete removes a pokemon and its sheet.
func (h handler) Delete(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Pokemon.Handler.Delete")
	defer span.End()

	id, err := paramID(c, "pokemonId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid pokemon id"})
	}

	current, err := h.service.Get(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrorNotFound{}) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "pokemon not found"})
		}
		span.RecordError(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal server error"})
	}

	requesterID, role, ok := auth.Requester(c)
	if !ok || !auth.Authorize(role, requesterID, current.TrainerID) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "you are not allowed to delete this pokemon"})
	}

	if err := h.service.Delete(ctx, requesterID, id); err != nil {
		span.RecordError(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal server error"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "pokemon deleted"})
}

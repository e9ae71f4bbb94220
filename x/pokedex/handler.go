package pokedex

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pokecamp/backend/x/auth"
	"github.com/pokecamp/backend/x/core"
)

// Handler is the interface for handling HTTP requests
type Handler interface {
	List(c echo.Context) error
	Add(c echo.Context) error
}

type handler struct {
	service Service
}

// NewHandler creates a new handler
func NewHandler(service Service) Handler {
	return &handler{service: service}
}

type addRequest struct {
	SpeciesID uint   `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	ImageURL  string `json:"image_url"`
}

// List returns the requester's own pokedex.
func (h handler) List(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Pokedex.Handler.List")
	defer span.End()

	requesterID, _, ok := auth.Requester(c)
	if !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "requester not found"})
	}

	entries, err := h.service.List(ctx, requesterID)
	if err != nil {
		span.RecordError(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal server error"})
	}

	return c.JSON(http.StatusOK, entries)
}

// Add registers a discovery for the requester. 201 on a new entry,
// 200 when the species was already present.
func (h handler) Add(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Pokedex.Handler.Add")
	defer span.End()

	requesterID, _, ok := auth.Requester(c)
	if !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "requester not found"})
	}

	var request addRequest
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	if request.SpeciesID == 0 || request.Name == "" || request.Type == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "incomplete data for a pokedex entry"})
	}

	added, err := h.service.Add(ctx, requesterID, core.PokedexEntry{
		SpeciesID: request.SpeciesID,
		UserID:    requesterID,
		Name:      request.Name,
		Type:      request.Type,
		ImageURL:  request.ImageURL,
	})
	if err != nil {
		span.RecordError(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal server error"})
	}

	if added {
		return c.JSON(http.StatusCreated, echo.Map{"message": fmt.Sprintf("%s added to the pokedex!", request.Name)})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": fmt.Sprintf("%s was already in the pokedex", request.Name)})
}

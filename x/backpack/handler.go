package backpack

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
	List(c echo.Context) error
	Add(c echo.Context) error
	Update(c echo.Context) error
	Delete(c echo.Context) error
}

type handler struct {
	service Service
}

// NewHandler creates a new handler
func NewHandler(service Service) Handler {
	return &handler{service: service}
}

type addItemRequest struct {
	ItemName string `json:"item_nome"`
	Quantity int    `json:"quantidade"`
}

type updateItemRequest struct {
	Quantity *int `json:"quantidade"`
}

// List returns the requester's backpack.
func (h handler) List(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Backpack.Handler.List")
	defer span.End()

	requesterID, _, ok := auth.Requester(c)
	if !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "requester not found"})
	}

	items, err := h.service.List(ctx, requesterID)
	if err != nil {
		span.RecordError(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal server error"})
	}

	return c.JSON(http.StatusOK, items)
}

// Add stacks quantity of an item into the requester's backpack.
func (h handler) Add(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Backpack.Handler.Add")
	defer span.End()

	requesterID, _, ok := auth.Requester(c)
	if !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "requester not found"})
	}

	var request addItemRequest
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	if request.ItemName == "" || request.Quantity <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "item name and a positive quantity are required"})
	}

	item, err := h.service.Add(ctx, requesterID, request.ItemName, request.Quantity)
	if err != nil {
		span.RecordError(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal server error"})
	}

	return c.JSON(http.StatusCreated, item)
}

// Update overwrites a stack's quantity; zero removes the stack.
func (h handler) Update(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Backpack.Handler.Update")
	defer span.End()

	requesterID, _, ok := auth.Requester(c)
	if !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "requester not found"})
	}

	itemID, err := strconv.ParseUint(c.Param("itemId"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid item id"})
	}

	var request updateItemRequest
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	if request.Quantity == nil || *request.Quantity < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid quantity"})
	}

	item, deleted, err := h.service.SetQuantity(ctx, requesterID, uint(itemID), *request.Quantity)
	if err != nil {
		if errors.Is(err, core.ErrorNotFound{}) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "item not found in your backpack"})
		}
		span.RecordError(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal server error"})
	}

	if deleted {
		return c.JSON(http.StatusOK, echo.Map{"message": "item removed from the backpack"})
	}
	return c.JSON(http.StatusOK, item)
}

// Delete removes a stack regardless of quantity.
func (h handler) Delete(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Backpack.Handler.Delete")
	defer span.End()

	requesterID, _, ok := auth.Requester(c)
	if !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "requester not found"})
	}

	itemID, err := strconv.ParseUint(c.Param("itemId"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid item id"})
	}

	if err := h.service.Remove(ctx, requesterID, uint(itemID)); err != nil {
		if errors.Is(err, core.ErrorNotFound{}) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "item not found in your backpack"})
		}
		span.RecordError(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal server error"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "item removed from the backpack"})
}

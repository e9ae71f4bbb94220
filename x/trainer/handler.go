package trainer

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
	Register(c echo.Context) error
	Get(c echo.Context) error
	List(c echo.Context) error
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

func paramID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// Register creates a new trainer account. Anonymous route.
func (h handler) Register(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Trainer.Handler.Register")
	defer span.End()

	var request registerRequest
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	if request.Username == "" || request.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "username and password are required"})
	}

	image, err := c.FormFile("imageFile")
	if err != nil {
		image = nil
	}

	created, err := h.service.Register(ctx, request.Username, request.Password, request.Captcha, image)
	if err != nil {
		if errors.Is(err, core.ErrorAlreadyExists{}) {
			return c.JSON(http.StatusConflict, echo.Map{"message": "this username is already taken"})
		}
		if errors.Is(err, ErrCaptcha) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "captcha verification failed"})
		}
		span.RecordError(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal server error"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "trainer registered successfully",
		"userId":  created.ID,
	})
}

// Get returns a single account profile. Masters may view anyone,
// trainers only themselves.
func (h handler) Get(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Trainer.Handler.Get")
	defer span.End()

	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	requesterID, role, ok := auth.Requester(c)
	if !ok || !auth.Authorize(role, requesterID, id) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "you are not allowed to view this profile"})
	}

	trainer, err := h.service.Get(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrorNotFound{}) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "user not found"})
		}
		span.RecordError(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal server error"})
	}

	return c.JSON(http.StatusOK, trainer)
}

// List returns every trainer account. Masters only; the Restrict
// middleware enforces that.
func (h handler) List(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Trainer.Handler.List")
	defer span.End()

	trainers, err := h.service.ListTrainers(ctx)
	if err != nil {
		span.RecordError(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal server error"})
	}

	return c.JSON(http.StatusOK, trainers)
}

// Update edits a profile partially: only supplied fields change.
func (h handler) Update(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Trainer.Handler.Update")
	defer span.End()

	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	requesterID, role, ok := auth.Requester(c)
	if !ok || !auth.Authorize(role, requesterID, id) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "you are not allowed to edit this profile"})
	}

	var request updateRequest
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	image, err := c.FormFile("imageFile")
	if err != nil {
		image = nil
	}

	updated, err := h.service.Update(ctx, requesterID, id, request, image)
	if err != nil {
		if errors.Is(err, core.ErrorNotFound{}) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "user not found"})
		}
		if errors.Is(err, core.ErrorNoChanges{}) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "no data provided for update"})
		}
		span.RecordError(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal server error"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "trainer updated successfully",
		"user":    updated,
	})
}

// Delete removes an account and cascades to everything it owns.
// Masters only.
func (h handler) Delete(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Trainer.Handler.Delete")
	defer span.End()

	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	requesterID, _, _ := auth.Requester(c)

	if err := h.service.Delete(ctx, requesterID, id); err != nil {
		if errors.Is(err, core.ErrorNotFound{}) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "user not found"})
		}
		span.RecordError(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal server error"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "trainer and all their data were deleted"})
}

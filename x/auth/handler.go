package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Handler is the interface for handling HTTP requests
type Handler interface {
	Login(c echo.Context) error
}

type handler struct {
	service Service
}

// NewHandler creates a new handler
func NewHandler(service Service) Handler {
	return &handler{service: service}
}

// Login authenticates a trainer and returns a bearer token with an
// account summary.
func (h handler) Login(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Auth.Handler.Login")
	defer span.End()

	var request loginRequest
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	if request.Username == "" || request.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "username and password are required"})
	}

	signed, trainer, err := h.service.Login(ctx, request.Username, request.Password)
	if err != nil {
		if errors.Is(err, ErrThrottled) {
			return c.JSON(http.StatusTooManyRequests, echo.Map{"message": "too many failed attempts, try again later"})
		}
		if errors.Is(err, ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid credentials"})
		}
		span.RecordError(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal server error"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "login successful",
		"token":   signed,
		"user": trainerSummary{
			ID:       trainer.ID,
			Username: trainer.Username,
			Role:     trainer.Role,
		},
	})
}

package audit

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handler is the interface for handling HTTP requests
type Handler interface {
	List(c echo.Context) error
}

type handler struct {
	service Service
}

// NewHandler creates a new handler
func NewHandler(service Service) Handler {
	return &handler{service: service}
}

// List returns the most recent audit entries, newest first. The route
// is restricted to masters.
func (h handler) List(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Audit.Handler.List")
	defer span.End()

	entries, err := h.service.List(ctx)
	if err != nil {
		span.RecordError(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal server error"})
	}

	return c.JSON(http.StatusOK, entries)
}

// Package handler contains the Echo HTTP handlers.  Every success body is
// wrapped in an envelope carrying the correlation id; every failure becomes
// a problem object whose HTTP status mirrors the business error.
package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"cineman/internal/domain"
)

type envelope struct {
	Result        any    `json:"result"`
	CorrelationID string `json:"correlation_id"`
}

type problem struct {
	Type          string `json:"type"`
	Status        int    `json:"status"`
	Title         string `json:"title"`
	Detail        string `json:"detail"`
	Instance      string `json:"instance"`
	CorrelationID string `json:"correlation_id"`
}

func correlationID(c echo.Context) string {
	if v, ok := c.Get("correlation_id").(string); ok {
		return v
	}
	return ""
}

// respond writes a success envelope.
func respond(c echo.Context, status int, result any) error {
	return c.JSON(status, envelope{Result: result, CorrelationID: correlationID(c)})
}

// fail maps a service error onto a problem response.  Catalog errors carry
// their own status; anything else is an opaque 500 so internals never leak.
func fail(c echo.Context, err error) error {
	var derr *domain.Error
	if !errors.As(err, &derr) {
		c.Logger().Error(err)
		derr = &domain.Error{Code: "internal", Detail: "Something went wrong on our side", Status: http.StatusInternalServerError}
	}
	return c.JSON(derr.Status, problem{
		Type:          derr.Code,
		Status:        derr.Status,
		Title:         derr.Code,
		Detail:        derr.Detail,
		Instance:      c.Request().URL.Path,
		CorrelationID: correlationID(c),
	})
}

// userID returns the authenticated subject placed by the JWT middleware.
func userID(c echo.Context) string {
	if v, ok := c.Get("user_id").(string); ok {
		return v
	}
	return ""
}

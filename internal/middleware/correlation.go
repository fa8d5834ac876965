package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CorrelationHeader is the header clients may use to tie a request to
// their own tracing; when absent a fresh id is generated.  The id is
// echoed on the response and embedded in every success and problem body.
const CorrelationHeader = "X-Correlation-ID"

// CorrelationID ensures every request carries a correlation id.
func CorrelationID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(CorrelationHeader)
			if id == "" {
				id = uuid.NewString()
			}
			c.Set("correlation_id", id)
			c.Response().Header().Set(CorrelationHeader, id)
			return next(c)
		}
	}
}

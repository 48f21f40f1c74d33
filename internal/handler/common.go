// Package handler contains the HTTP layer: request binding, payload
// validation and translation of repository errors into status codes.
// Handlers depend on small store interfaces rather than the concrete
// repositories so that the transport logic can be tested against
// in-memory fakes.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// dbTimeout bounds every database call made on behalf of one request.
const dbTimeout = 5 * time.Second

func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// errJSON writes the uniform error body.
func errJSON(c echo.Context, code int, msg string) error {
	return c.JSON(code, echo.Map{"error": msg})
}

// bindPayload decodes the JSON request body into a map so field presence
// can be checked explicitly. Only keys present in the payload are ever
// applied during partial updates.
func bindPayload(c echo.Context) (map[string]any, error) {
	payload := map[string]any{}
	if err := c.Bind(&payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// Health is a simple health-check endpoint used by load balancers and
// monitoring systems to verify that the service is running.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

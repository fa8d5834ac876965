package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cineman/internal/domain"
)

func newTestContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/bookings/abc", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("correlation_id", "corr-123")
	return c, rec
}

func TestFailMapsCatalogError(t *testing.T) {
	c, rec := newTestContext(t)

	require.NoError(t, fail(c, domain.ErrBookingNotFound))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var p problem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, "booking.id.notfound", p.Type)
	assert.Equal(t, http.StatusNotFound, p.Status)
	assert.Equal(t, "/v1/bookings/abc", p.Instance)
	assert.Equal(t, "corr-123", p.CorrelationID)
	assert.NotEmpty(t, p.Detail)
}

func TestFailHidesInternalErrors(t *testing.T) {
	c, rec := newTestContext(t)

	require.NoError(t, fail(c, errors.New("pq: connection reset")))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var p problem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, "internal", p.Type)
	assert.NotContains(t, p.Detail, "connection reset")
}

func TestRespondWrapsResult(t *testing.T) {
	c, rec := newTestContext(t)

	require.NoError(t, respond(c, http.StatusOK, echo.Map{"message": "ok"}))
	assert.Equal(t, http.StatusOK, rec.Code)

	var env struct {
		Result        map[string]string `json:"result"`
		CorrelationID string            `json:"correlation_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "ok", env.Result["message"])
	assert.Equal(t, "corr-123", env.CorrelationID)
}

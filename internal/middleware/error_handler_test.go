package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"budgetbook/internal/validation"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errorEnvelope struct {
	Error   string   `json:"error"`
	Code    string   `json:"code"`
	Details []string `json:"details"`
	TraceID string   `json:"trace_id"`
}

func serveError(t *testing.T, handler echo.HandlerFunc) (*httptest.ResponseRecorder, errorEnvelope) {
	t.Helper()

	e := echo.New()
	e.HTTPErrorHandler = CustomHTTPErrorHandler
	e.Use(RequestID())
	e.GET("/", handler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var envelope errorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope), rec.Body.String())
	return rec, envelope
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	rec, envelope := serveError(t, func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "no such route")
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "USER_001", envelope.Code)
	assert.Equal(t, "no such route", envelope.Error)
	assert.NotEmpty(t, envelope.TraceID)
}

func TestErrorHandler_ValidationErrors(t *testing.T) {
	type payload struct {
		Email string `json:"email" validate:"required,email"`
		Month int    `json:"month" validate:"zero_based_month"`
	}

	rec, envelope := serveError(t, func(c echo.Context) error {
		return validation.GetValidator().GetValidate().Struct(payload{Email: "nope", Month: 13})
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_001", envelope.Code)
	assert.Len(t, envelope.Details, 2)

	joined := ""
	for _, detail := range envelope.Details {
		joined += detail + "\n"
	}
	assert.Contains(t, joined, "email")
	assert.Contains(t, joined, "month")
}

func TestErrorHandler_UnknownErrorIsWrapped(t *testing.T) {
	rec, envelope := serveError(t, func(c echo.Context) error {
		return errors.New("pq: connection refused")
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "SYSTEM_001", envelope.Code)
	// Internal failure details stay out of the response body
	assert.NotContains(t, envelope.Error, "connection refused")
}

func TestErrorHandler_CommittedResponseUntouched(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = CustomHTTPErrorHandler
	e.GET("/", func(c echo.Context) error {
		if err := c.String(http.StatusOK, "done"); err != nil {
			return err
		}
		return errors.New("late failure")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "done", rec.Body.String())
}

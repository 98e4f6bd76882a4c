package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPanicRecovery(t *testing.T) {
	e := echo.New()
	e.Use(RequestID(), PanicRecovery())
	e.GET("/boom", func(c echo.Context) error {
		panic("something went badly wrong")
	})

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var envelope struct {
		Error   string `json:"error"`
		Code    string `json:"code"`
		TraceID string `json:"trace_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

	assert.Equal(t, "SYSTEM_001", envelope.Code)
	assert.NotEmpty(t, envelope.TraceID)
	// Internal details never leak to the client
	assert.NotContains(t, envelope.Error, "something went badly wrong")
}

func TestPanicRecovery_PassThrough(t *testing.T) {
	e := echo.New()
	e.Use(PanicRecovery())
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "fine")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "fine", rec.Body.String())
}

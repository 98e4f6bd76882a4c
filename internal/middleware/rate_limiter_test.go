package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rateLimitedServer(rps, burst int) *echo.Echo {
	e := echo.New()
	e.Use(RateLimiterWithConfig(rps, burst))
	e.GET("/", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return e
}

func hit(e *echo.Echo, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Real-IP", ip)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiter_AllowsWithinBurst(t *testing.T) {
	e := rateLimitedServer(1, 3)

	for i := 0; i < 3; i++ {
		rec := hit(e, "10.0.0.1")
		assert.Equal(t, http.StatusOK, rec.Code, "request %d", i)
	}
}

func TestRateLimiter_RejectsOverBurst(t *testing.T) {
	e := rateLimitedServer(1, 3)

	for i := 0; i < 3; i++ {
		hit(e, "10.0.0.2")
	}
	rec := hit(e, "10.0.0.2")

	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	var envelope struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "SYSTEM_004", envelope.Code)
}

func TestRateLimiter_TracksPerIP(t *testing.T) {
	e := rateLimitedServer(1, 2)

	for i := 0; i < 2; i++ {
		hit(e, "10.0.1.1")
	}
	require.Equal(t, http.StatusTooManyRequests, hit(e, "10.0.1.1").Code)

	// A different client is unaffected
	assert.Equal(t, http.StatusOK, hit(e, "10.0.1.2").Code)
}

func TestRateLimiter_XForwardedForTakesPrecedence(t *testing.T) {
	e := rateLimitedServer(1, 1)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.7")
		req.Header.Set("X-Real-IP", fmt.Sprintf("10.9.9.%d", i))
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		if i == 0 {
			assert.Equal(t, http.StatusOK, rec.Code)
		} else {
			assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		}
	}
}

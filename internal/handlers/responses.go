package handlers

import (
	"net/http"

	"budgetbook/internal/errors"

	"github.com/labstack/echo/v4"
)

// All handlers use the standardized error response helpers:
//
// 1. SendError - client errors and business rule violations (4xx responses)
// 2. SendSystemError - internal errors (500 responses); the original error is
//    never exposed to the client
//
// echo.NewHTTPError and direct c.JSON error bodies are not used, so every
// failure shares the same {error, code, details?, trace_id} envelope.

const (
	// TraceIDContextKey is the context key for storing the trace ID
	TraceIDContextKey = "trace_id"
)

// ErrorResponse is an alias for the standardized error response type
type ErrorResponse = errors.ErrorResponse

// getTraceID extracts the trace ID from the Echo context
func getTraceID(c echo.Context) string {
	traceID, ok := c.Get(TraceIDContextKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// SendError sends a standardized error response with trace ID from context
func SendError(c echo.Context, code errors.ErrorCode, opts ...errors.ErrorOption) error {
	traceID := getTraceID(c)
	errorResponse := errors.NewErrorResponse(code, traceID, opts...)
	return c.JSON(errorResponse.GetHTTPStatus(), errorResponse)
}

// SendSystemError wraps a system error with a generic message. The internal
// error stays server-side.
func SendSystemError(c echo.Context, err error) error {
	traceID := getTraceID(c)
	errorResponse, _ := errors.WrapSystemError(err, traceID)
	return c.JSON(http.StatusInternalServerError, errorResponse)
}

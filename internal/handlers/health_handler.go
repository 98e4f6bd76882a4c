package handlers

import (
	"net/http"
	"time"

	"budgetbook/internal/database"

	"github.com/labstack/echo/v4"
)

// HealthResponse reports API liveness and database connectivity
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
}

// HealthCheckHandler handles the health check endpoint. The server can run
// without a database connection; the health endpoint is how operators see
// that degraded state.
type HealthCheckHandler struct {
	db *database.DB
}

// NewHealthCheckHandler creates a new health check handler. A nil db means
// the server started in degraded mode.
func NewHealthCheckHandler(db *database.DB) *HealthCheckHandler {
	return &HealthCheckHandler{db: db}
}

// HealthCheck reports service status. It always responds 200 so load
// balancers keep routing to a degraded instance that can still serve the
// health and auth-failure paths.
func (h *HealthCheckHandler) HealthCheck(c echo.Context) error {
	response := HealthResponse{
		Status:    "ok",
		Database:  "connected",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if h.db == nil || h.db.HealthCheck() != nil {
		response.Status = "degraded"
		response.Database = "disconnected"
	}

	return c.JSON(http.StatusOK, response)
}

package handlers

import (
	"net/http"
	"strconv"
	"time"

	apierrors "budgetbook/internal/errors"
	"budgetbook/internal/services"

	"github.com/labstack/echo/v4"
)

// SummaryHandler handles the monthly spend-vs-budget aggregation endpoints.
// Months are zero-based in the API (0=January ... 11=December).
type SummaryHandler struct {
	summaryService services.SummaryServiceInterface
}

// NewSummaryHandler creates a new summary handler
func NewSummaryHandler(summaryService services.SummaryServiceInterface) *SummaryHandler {
	return &SummaryHandler{
		summaryService: summaryService,
	}
}

// GetMonthly handles GET /summary/:year/:month
func (h *SummaryHandler) GetMonthly(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	year, month, ok := parseYearMonth(c)
	if !ok {
		return SendError(c, apierrors.ValidationInvalidMonth,
			apierrors.WithDetails("year must be a 4-digit number and month must be between 0 and 11"))
	}

	summary, err := h.summaryService.GetMonthlySummary(userID, year, month)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, summary)
}

// GetCurrent handles GET /summary/current using the server's local clock
func (h *SummaryHandler) GetCurrent(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	now := time.Now()
	summary, err := h.summaryService.GetMonthlySummary(userID, now.Year(), int(now.Month())-1)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, summary)
}

// parseYearMonth validates the :year/:month path parameters. Year must be a
// 4-digit number, month a zero-based index.
func parseYearMonth(c echo.Context) (int, int, bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1000 || year > 9999 {
		return 0, 0, false
	}

	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 0 || month > 11 {
		return 0, 0, false
	}

	return year, month, true
}

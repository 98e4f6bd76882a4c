package handlers

import (
	"errors"
	"net/http"

	"budgetbook/internal/dto"
	apierrors "budgetbook/internal/errors"
	"budgetbook/internal/services"

	"github.com/labstack/echo/v4"
)

// ExpenseHandler handles expense endpoints. Creation responds with the
// stored expense plus the advisory budget status for its category.
type ExpenseHandler struct {
	expenseService services.ExpenseServiceInterface
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(expenseService services.ExpenseServiceInterface) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
	}
}

// Create handles POST /expenses
func (h *ExpenseHandler) Create(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	var req dto.CreateExpenseRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	expense, budgetStatus, err := h.expenseService.Create(userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			return SendError(c, apierrors.CategoryNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.CreateExpenseResponse{
		Expense:      dto.NewExpenseResponse(expense),
		BudgetStatus: budgetStatus,
	})
}

// List handles GET /expenses with optional year, month and categoryId query
// parameters. Year and month only take effect together.
func (h *ExpenseHandler) List(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	var filter dto.ExpenseFilter
	if err := c.Bind(&filter); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid query parameters"))
	}

	if filter.Month != nil && (*filter.Month < 0 || *filter.Month > 11) {
		return SendError(c, apierrors.ValidationInvalidMonth)
	}

	expenses, err := h.expenseService.List(userID, &filter)
	if err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			return SendError(c, apierrors.CategoryNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, expenses)
}

// Get handles GET /expenses/:id
func (h *ExpenseHandler) Get(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	id, ok := parseIDParam(c)
	if !ok {
		return SendError(c, apierrors.ExpenseNotFound)
	}

	expense, err := h.expenseService.Get(id, userID)
	if err != nil {
		if errors.Is(err, services.ErrExpenseNotFound) {
			return SendError(c, apierrors.ExpenseNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewExpenseResponse(expense))
}

// Update handles PUT /expenses/:id
func (h *ExpenseHandler) Update(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	id, ok := parseIDParam(c)
	if !ok {
		return SendError(c, apierrors.ExpenseNotFound)
	}

	var req dto.UpdateExpenseRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	expense, err := h.expenseService.Update(id, userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrExpenseNotFound) {
			return SendError(c, apierrors.ExpenseNotFound)
		}
		if errors.Is(err, services.ErrCategoryNotFound) {
			return SendError(c, apierrors.CategoryNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewExpenseResponse(expense))
}

// Delete handles DELETE /expenses/:id
func (h *ExpenseHandler) Delete(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	id, ok := parseIDParam(c)
	if !ok {
		return SendError(c, apierrors.ExpenseNotFound)
	}

	if err := h.expenseService.Delete(id, userID); err != nil {
		if errors.Is(err, services.ErrExpenseNotFound) {
			return SendError(c, apierrors.ExpenseNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.DeleteResponse{
		Message: "Expense deleted successfully",
	})
}

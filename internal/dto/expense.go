package dto

import (
	"time"

	"budgetbook/internal/models"
)

const expenseDateLayout = "2006-01-02"

// CreateExpenseRequest contains the fields for a new expense. Amount is a
// pointer so that an explicit zero is distinguishable from an omitted field.
// A non-numeric amount fails JSON binding and is rejected before validation.
type CreateExpenseRequest struct {
	CategoryID  string   `json:"categoryId" validate:"required,uuid"`
	Amount      *float64 `json:"amount" validate:"required,money_amount"`
	Description string   `json:"description"`
	Date        string   `json:"date" validate:"required,expense_date"`
}

// UpdateExpenseRequest contains a partial expense update; only supplied
// fields are changed. A changed categoryId is re-validated for ownership.
type UpdateExpenseRequest struct {
	CategoryID  *string  `json:"categoryId" validate:"omitempty,uuid"`
	Amount      *float64 `json:"amount" validate:"omitempty,money_amount"`
	Description *string  `json:"description"`
	Date        *string  `json:"date" validate:"omitempty,expense_date"`
}

// ExpenseFilter carries the optional list query parameters
type ExpenseFilter struct {
	Year       *int   `query:"year"`
	Month      *int   `query:"month"`
	CategoryID string `query:"categoryId"`
}

// ExpenseResponse is the wire representation of an expense, enriched with
// the owning category's display fields for the dashboard list view.
type ExpenseResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	CategoryID    string    `json:"categoryId"`
	Amount        float64   `json:"amount"`
	Description   string    `json:"description"`
	Date          string    `json:"date"`
	CategoryName  string    `json:"categoryName,omitempty"`
	CategoryEmoji string    `json:"categoryEmoji,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// NewExpenseResponse converts an expense model to its wire representation
func NewExpenseResponse(expense *models.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          expense.ID.String(),
		UserID:      expense.UserID.String(),
		CategoryID:  expense.CategoryID.String(),
		Amount:      models.MoneyFloat(expense.Amount),
		Description: expense.Description,
		Date:        expense.Date.Format(expenseDateLayout),
		CreatedAt:   expense.CreatedAt,
		UpdatedAt:   expense.UpdatedAt,
	}
}

// NewEnrichedExpenseResponse attaches the category display fields. A nil
// category (deleted concurrently) degrades to placeholder values rather
// than failing the listing.
func NewEnrichedExpenseResponse(expense *models.Expense, category *models.Category) ExpenseResponse {
	response := NewExpenseResponse(expense)
	if category != nil {
		response.CategoryName = category.Name
		response.CategoryEmoji = category.Emoji
	} else {
		response.CategoryName = "Unknown"
		response.CategoryEmoji = models.DefaultCategoryEmoji
	}
	return response
}

// CreateExpenseResponse pairs the stored expense with its advisory budget status
type CreateExpenseResponse struct {
	Expense      ExpenseResponse      `json:"expense"`
	BudgetStatus *models.BudgetStatus `json:"budgetStatus"`
}

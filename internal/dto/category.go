package dto

import (
	"time"

	"budgetbook/internal/models"
)

// CreateCategoryRequest contains the fields for a new category.
// MonthlyBudget is a pointer so that an explicit zero budget is
// distinguishable from an omitted field.
type CreateCategoryRequest struct {
	Name          string   `json:"name" validate:"required,min=1,max=100"`
	MonthlyBudget *float64 `json:"monthlyBudget" validate:"required,money_amount"`
	Emoji         string   `json:"emoji" validate:"omitempty,max=16"`
}

// UpdateCategoryRequest contains a partial category update; only supplied
// fields are changed.
type UpdateCategoryRequest struct {
	Name          *string  `json:"name" validate:"omitempty,min=1,max=100"`
	MonthlyBudget *float64 `json:"monthlyBudget" validate:"omitempty,money_amount"`
	Emoji         *string  `json:"emoji" validate:"omitempty,max=16"`
}

// CategoryResponse is the wire representation of a category
type CategoryResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	Name          string    `json:"name"`
	MonthlyBudget float64   `json:"monthlyBudget"`
	Emoji         string    `json:"emoji"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// NewCategoryResponse converts a category model to its wire representation
func NewCategoryResponse(category *models.Category) CategoryResponse {
	return CategoryResponse{
		ID:            category.ID.String(),
		UserID:        category.UserID.String(),
		Name:          category.Name,
		MonthlyBudget: models.MoneyFloat(category.MonthlyBudget),
		Emoji:         category.Emoji,
		CreatedAt:     category.CreatedAt,
		UpdatedAt:     category.UpdatedAt,
	}
}

// NewCategoryListResponse converts a list of category models
func NewCategoryListResponse(categories []models.Category) []CategoryResponse {
	responses := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, NewCategoryResponse(&categories[i]))
	}
	return responses
}

// DeleteResponse confirms a successful delete
type DeleteResponse struct {
	Message string `json:"message"`
}

package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCategoryValidate(t *testing.T) {
	valid := Category{
		UserID:        uuid.New(),
		Name:          "Food",
		MonthlyBudget: decimal.NewFromInt(500),
	}
	assert.NoError(t, valid.Validate())
}

func TestCategoryValidate_ZeroBudgetAllowed(t *testing.T) {
	category := Category{
		UserID:        uuid.New(),
		Name:          "Misc",
		MonthlyBudget: decimal.Zero,
	}
	assert.NoError(t, category.Validate())
}

func TestCategoryValidate_NegativeBudget(t *testing.T) {
	category := Category{
		UserID:        uuid.New(),
		Name:          "Food",
		MonthlyBudget: decimal.NewFromInt(-1),
	}
	assert.Error(t, category.Validate())
}

func TestCategoryValidate_MissingFields(t *testing.T) {
	assert.Error(t, (&Category{Name: "Food"}).Validate())
	assert.Error(t, (&Category{UserID: uuid.New()}).Validate())
}

func TestExpenseValidate(t *testing.T) {
	expense := Expense{
		UserID:     uuid.New(),
		CategoryID: uuid.New(),
		Amount:     decimal.NewFromFloat(45.50),
	}
	// Date is required
	assert.Error(t, expense.Validate())
}

func TestExpenseValidate_NegativeAmount(t *testing.T) {
	expense := Expense{
		UserID:     uuid.New(),
		CategoryID: uuid.New(),
		Amount:     decimal.NewFromInt(-1),
	}
	assert.Error(t, expense.Validate())
}

func TestUserLocking(t *testing.T) {
	user := User{}

	for i := 0; i < MaxFailedLoginAttempts-1; i++ {
		user.IncrementFailedAttempts()
		assert.False(t, user.IsLocked())
	}

	user.IncrementFailedAttempts()
	assert.True(t, user.IsLocked())

	user.Unlock()
	assert.False(t, user.IsLocked())
	assert.Equal(t, 0, user.FailedLoginAttempts)
}

package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type monthInput struct {
	Month int `json:"month" validate:"zero_based_month"`
}

type amountInput struct {
	Amount float64 `json:"amount" validate:"money_amount"`
}

type dateInput struct {
	Date string `json:"date" validate:"expense_date"`
}

func TestZeroBasedMonth(t *testing.T) {
	v := NewValidator().GetValidate()

	assert.NoError(t, v.Struct(monthInput{Month: 0}))
	assert.NoError(t, v.Struct(monthInput{Month: 11}))
	assert.Error(t, v.Struct(monthInput{Month: 12}))
	assert.Error(t, v.Struct(monthInput{Month: -1}))
}

func TestMoneyAmount(t *testing.T) {
	v := NewValidator().GetValidate()

	assert.NoError(t, v.Struct(amountInput{Amount: 45.50}))
	assert.NoError(t, v.Struct(amountInput{Amount: 0}))
	assert.Error(t, v.Struct(amountInput{Amount: -1}))
}

func TestMoneyAmount_MaxTwoDecimalPlaces(t *testing.T) {
	v := NewValidator().GetValidate()

	assert.NoError(t, v.Struct(amountInput{Amount: 10.55}))
	assert.NoError(t, v.Struct(amountInput{Amount: 100}))
	assert.Error(t, v.Struct(amountInput{Amount: 10.555}))
	assert.Error(t, v.Struct(amountInput{Amount: 0.001}))
}

func TestExpenseDate(t *testing.T) {
	v := NewValidator().GetValidate()

	assert.NoError(t, v.Struct(dateInput{Date: "2025-11-05"}))
	assert.NoError(t, v.Struct(dateInput{Date: "2025-11-05T10:30:00Z"}))
	assert.Error(t, v.Struct(dateInput{Date: "05/11/2025"}))
	assert.Error(t, v.Struct(dateInput{Date: "not-a-date"}))
	assert.Error(t, v.Struct(dateInput{Date: ""}))
}

func TestParseExpenseDate_CalendarDay(t *testing.T) {
	parsed, err := ParseExpenseDate("2025-11-05")
	require.NoError(t, err)

	assert.Equal(t, 2025, parsed.Year())
	assert.Equal(t, time.November, parsed.Month())
	assert.Equal(t, 5, parsed.Day())
	assert.Equal(t, time.Local, parsed.Location())
}

func TestParseExpenseDate_RFC3339(t *testing.T) {
	parsed, err := ParseExpenseDate("2025-11-05T10:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 5, parsed.UTC().Day())
}

func TestParseExpenseDate_Invalid(t *testing.T) {
	_, err := ParseExpenseDate("November 5th")
	assert.Error(t, err)
}

func TestValidator_UsesJSONFieldNames(t *testing.T) {
	v := NewValidator().GetValidate()

	type input struct {
		MonthlyBudget float64 `json:"monthlyBudget" validate:"money_amount"`
	}

	err := v.Struct(input{MonthlyBudget: -5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "monthlyBudget")
}

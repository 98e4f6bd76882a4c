package validation

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Validator wraps the go-playground validator with custom rules and error formatting
type Validator struct {
	validate *validator.Validate
}

// GetValidate returns the underlying validator.Validate instance for use with Echo
func (v *Validator) GetValidate() *validator.Validate {
	return v.validate
}

// singleton instance of the validator
var instance *Validator

// GetValidator returns the singleton validator instance
func GetValidator() *Validator {
	if instance == nil {
		instance = NewValidator()
	}
	return instance
}

// NewValidator creates a new validator instance with custom rules and configuration
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("money_amount", validateMoneyAmount)
	_ = v.RegisterValidation("zero_based_month", validateZeroBasedMonth)
	_ = v.RegisterValidation("expense_date", validateExpenseDate)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// ExpenseDateLayouts are the accepted wire formats for expense dates.
// The dashboard sends plain calendar days; RFC3339 is accepted for clients
// that serialize full timestamps.
var ExpenseDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
}

// ParseExpenseDate parses a date string using the accepted layouts
func ParseExpenseDate(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range ExpenseDateLayouts {
		t, err := time.ParseInLocation(layout, value, time.Local)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// Custom validation functions

// validateMoneyAmount validates that a monetary amount is non-negative with
// at most 2 decimal places. Zero is permitted: a zero budget means
// "unbounded" and a zero expense is a valid no-cost record.
func validateMoneyAmount(fl validator.FieldLevel) bool {
	var amount float64
	switch fl.Field().Kind() {
	case reflect.Float32, reflect.Float64:
		amount = fl.Field().Float()
	case reflect.Ptr:
		return true // nil pointer means "field not supplied" in partial updates
	default:
		return false
	}

	if amount < 0 {
		return false
	}

	// Sub-cent precision is rejected rather than silently rounded
	d := decimal.NewFromFloat(amount)
	return d.Equal(d.Round(2))
}

// validateZeroBasedMonth validates a zero-based calendar month (0=January ... 11=December)
func validateZeroBasedMonth(fl validator.FieldLevel) bool {
	month := fl.Field().Int()
	return month >= 0 && month <= 11
}

// validateExpenseDate validates that a date string parses with one of the accepted layouts
func validateExpenseDate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return false
	}

	_, err := ParseExpenseDate(value)
	return err == nil
}

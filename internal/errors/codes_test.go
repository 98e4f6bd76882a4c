package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetErrorMessage_KnownCodes(t *testing.T) {
	assert.Equal(t, "Invalid credentials", GetErrorMessage(AuthInvalidCredentials))
	assert.Equal(t, "Category not found", GetErrorMessage(CategoryNotFound))
	assert.Equal(t, "Email already registered", GetErrorMessage(UserAlreadyExists))
	assert.Equal(t, "Invalid year or month", GetErrorMessage(ValidationInvalidMonth))
}

func TestGetErrorMessage_UnknownCode(t *testing.T) {
	assert.Equal(t, "An error occurred", GetErrorMessage(ErrorCode("NOPE_123")))
}

func TestIsValidErrorCode(t *testing.T) {
	assert.True(t, IsValidErrorCode(ExpenseNotFound))
	assert.True(t, IsValidErrorCode(SystemRateLimitExceeded))
	assert.False(t, IsValidErrorCode(ErrorCode("NOPE_123")))
}

func TestErrorCodes_AllHaveMessages(t *testing.T) {
	codes := []ErrorCode{
		AuthInvalidCredentials, AuthMissingToken, AuthExpiredToken,
		AuthInvalidTokenFormat, AuthAccountLocked,
		ValidationGeneral, ValidationRequiredField, ValidationInvalidFormat,
		ValidationInvalidEmail, ValidationInvalidDate, ValidationInvalidMonth,
		ValidationInvalidAmount,
		UserNotFound, UserAlreadyExists,
		CategoryNotFound, CategoryInvalidBudget,
		ExpenseNotFound, ExpenseInvalidAmount,
		SystemInternalError, SystemDatabaseError, SystemServiceUnavailable,
		SystemRateLimitExceeded, SystemUnexpectedError,
	}

	for _, code := range codes {
		assert.True(t, IsValidErrorCode(code), "code %s has no message", code)
	}
}

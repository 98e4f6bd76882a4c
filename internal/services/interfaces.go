package services

import (
	"time"

	"budgetbook/internal/dto"
	"budgetbook/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PasswordServiceInterface defines the contract for password hashing operations
type PasswordServiceInterface interface {
	ValidatePassword(password string) error
	HashPassword(password string) (string, error)
	ComparePassword(password, hash string) bool
}

// TokenServiceInterface defines the contract for JWT operations
type TokenServiceInterface interface {
	GenerateAccessToken(user *models.User) (string, time.Time, error)
	GenerateRefreshToken(userID uuid.UUID) (string, time.Time, error)
	ValidateAccessToken(tokenString string) (*models.CustomClaims, error)
	ValidateRefreshToken(tokenString string) (*models.CustomClaims, error)
	ExtractTokenFromHeader(authHeader string) (string, error)
	GetJTI(tokenString string) (string, error)
	GetTokenExpiry(tokenString string) (time.Time, error)
}

// AuthServiceInterface defines the contract for authentication operations
type AuthServiceInterface interface {
	Register(req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(req *dto.LoginRequest) (*dto.AuthResponse, error)
	RefreshTokens(refreshToken string) (*dto.AuthResponse, error)
	Logout(accessToken string) error
	Me(userID uuid.UUID) (*dto.MeResponse, error)
}

// CategoryServiceInterface defines the contract for category operations.
// Every operation is scoped to the requesting user.
type CategoryServiceInterface interface {
	Create(userID uuid.UUID, req *dto.CreateCategoryRequest) (*models.Category, error)
	List(userID uuid.UUID) ([]models.Category, error)
	Get(id, userID uuid.UUID) (*models.Category, error)
	Update(id, userID uuid.UUID, req *dto.UpdateCategoryRequest) (*models.Category, error)
	// Delete removes the category and every expense assigned to it.
	Delete(id, userID uuid.UUID) error
}

// ExpenseServiceInterface defines the contract for expense operations.
// Create returns the advisory budget status alongside the stored expense.
type ExpenseServiceInterface interface {
	Create(userID uuid.UUID, req *dto.CreateExpenseRequest) (*models.Expense, *models.BudgetStatus, error)
	List(userID uuid.UUID, filter *dto.ExpenseFilter) ([]dto.ExpenseResponse, error)
	Get(id, userID uuid.UUID) (*models.Expense, error)
	Update(id, userID uuid.UUID, req *dto.UpdateExpenseRequest) (*models.Expense, error)
	Delete(id, userID uuid.UUID) error
}

// SummaryServiceInterface defines the contract for spend-vs-budget aggregation.
// Months are zero-based throughout (0=January ... 11=December).
type SummaryServiceInterface interface {
	CalculateCategorySpending(category *models.Category, year, month int) (models.CategorySummary, error)
	GetMonthlySummary(userID uuid.UUID, year, month int) (*models.MonthlySummary, error)
	// CheckBudget projects the category's month-to-date spending after adding
	// amount on the given date. Advisory only: it never blocks the write.
	CheckBudget(category *models.Category, amount decimal.Decimal, date time.Time) (*models.BudgetStatus, error)
}

// MetricsRecorderInterface abstracts metric collection so services do not
// depend on a concrete backend
type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}

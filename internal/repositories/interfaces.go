package repositories

import (
	"time"

	"budgetbook/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	UpdateFailedLoginAttempts(user *models.User) error
	ResetFailedLoginAttempts(userID uuid.UUID) error
}

// CategoryRepositoryInterface defines the contract for category repository
// operations. Every read and mutation is scoped to an owning user: an ID
// belonging to another user behaves exactly like a missing record, so no
// handler can forget the ownership filter.
type CategoryRepositoryInterface interface {
	Create(category *models.Category) error
	GetForUser(id, userID uuid.UUID) (*models.Category, error)
	FindForUser(userID uuid.UUID) ([]models.Category, error)
	Update(category *models.Category) error
	// DeleteForUser removes a category and all expenses referencing it in a
	// single transaction.
	DeleteForUser(id, userID uuid.UUID) error
}

// ExpenseFilter narrows an expense listing. Zero values mean "no filter".
type ExpenseFilter struct {
	CategoryID uuid.UUID
	From       time.Time
	To         time.Time
}

// ExpenseRepositoryInterface defines the contract for expense repository
// operations, ownership-scoped like the category repository.
type ExpenseRepositoryInterface interface {
	Create(expense *models.Expense) error
	GetForUser(id, userID uuid.UUID) (*models.Expense, error)
	FindForUser(userID uuid.UUID, filter ExpenseFilter) ([]models.Expense, error)
	Update(expense *models.Expense) error
	DeleteForUser(id, userID uuid.UUID) error
	// SumForCategory totals expense amounts for (category, user) within the
	// inclusive date range. Returns zero for no matches.
	SumForCategory(categoryID, userID uuid.UUID, from, to time.Time) (decimal.Decimal, error)
}

type RefreshTokenRepositoryInterface interface {
	Create(token *models.RefreshToken) error
	GetByTokenHash(tokenHash string) (*models.RefreshToken, error)
	Update(token *models.RefreshToken) error
	RevokeAllForUser(userID uuid.UUID) error
	DeleteExpired() (int64, error)
}

// BlacklistedTokenRepositoryInterface defines the contract for blacklisted token repository operations
type BlacklistedTokenRepositoryInterface interface {
	Create(token *models.BlacklistedToken) error
	GetByJTI(jti string) (*models.BlacklistedToken, error)
	DeleteExpired() (int64, error)
}

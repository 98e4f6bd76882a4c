package repositories

import (
	"errors"
	"fmt"
	"time"

	"budgetbook/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrExpenseNotFound = errors.New("expense not found")
)

// expenseRepository implements ExpenseRepositoryInterface
type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) ExpenseRepositoryInterface {
	return &expenseRepository{
		db: db,
	}
}

// Create creates a new expense
func (r *expenseRepository) Create(expense *models.Expense) error {
	if err := r.db.Create(expense).Error; err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

// GetForUser retrieves an expense by ID, scoped to its owning user
func (r *expenseRepository) GetForUser(id, userID uuid.UUID) (*models.Expense, error) {
	var expense models.Expense
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return &expense, nil
}

// FindForUser lists a user's expenses, newest first, narrowed by the
// optional filter fields.
func (r *expenseRepository) FindForUser(userID uuid.UUID, filter ExpenseFilter) ([]models.Expense, error) {
	query := r.db.Where("user_id = ?", userID)

	if filter.CategoryID != uuid.Nil {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if !filter.From.IsZero() && !filter.To.IsZero() {
		query = query.Where("date BETWEEN ? AND ?", filter.From, filter.To)
	}

	var expenses []models.Expense
	if err := query.Order("date DESC").Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nil
}

// Update saves a modified expense
func (r *expenseRepository) Update(expense *models.Expense) error {
	if err := r.db.Save(expense).Error; err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	return nil
}

// DeleteForUser removes an expense owned by the user
func (r *expenseRepository) DeleteForUser(id, userID uuid.UUID) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Expense{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete expense: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrExpenseNotFound
	}
	return nil
}

// SumForCategory totals expense amounts for a category within the inclusive
// date range. The aggregation happens in the database so listing a month
// never pulls every expense row into memory.
func (r *expenseRepository) SumForCategory(categoryID, userID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.NullDecimal

	err := r.db.Model(&models.Expense{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("category_id = ? AND user_id = ?", categoryID, userID).
		Where("date BETWEEN ? AND ?", from, to).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum expenses: %w", err)
	}

	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"budgetbook/internal/dto"
	"budgetbook/internal/models"
	"budgetbook/internal/repositories"
	"budgetbook/internal/validation"

	"github.com/google/uuid"
)

var (
	ErrExpenseNotFound = errors.New("expense not found")
)

// ExpenseService handles expense business logic. Creating an expense runs the
// advisory budget check against the category before the write; the check
// never blocks the expense from being recorded.
type ExpenseService struct {
	expenseRepo    repositories.ExpenseRepositoryInterface
	categoryRepo   repositories.CategoryRepositoryInterface
	summaryService SummaryServiceInterface
	metrics        MetricsRecorderInterface
	logger         *slog.Logger
}

// NewExpenseService creates a new expense service
func NewExpenseService(
	expenseRepo repositories.ExpenseRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	summaryService SummaryServiceInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) ExpenseServiceInterface {
	return &ExpenseService{
		expenseRepo:    expenseRepo,
		categoryRepo:   categoryRepo,
		summaryService: summaryService,
		metrics:        metrics,
		logger:         logger,
	}
}

// Create records a new expense and returns it with the advisory budget
// status. The target category must exist and belong to the user.
func (s *ExpenseService) Create(userID uuid.UUID, req *dto.CreateExpenseRequest) (*models.Expense, *models.BudgetStatus, error) {
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, nil, ErrCategoryNotFound
	}

	category, err := s.categoryRepo.GetForUser(categoryID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, nil, ErrCategoryNotFound
		}
		return nil, nil, fmt.Errorf("failed to get category: %w", err)
	}

	date, err := validation.ParseExpenseDate(req.Date)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid expense date: %w", err)
	}

	amount := moneyDecimal(*req.Amount)

	// Snapshot month-to-date spending before the write so PreviousSpending
	// excludes the expense being created.
	budgetStatus, err := s.summaryService.CheckBudget(category, amount, date)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check budget: %w", err)
	}

	expense := &models.Expense{
		UserID:      userID,
		CategoryID:  category.ID,
		Amount:      amount,
		Description: req.Description,
		Date:        date,
	}

	if err := s.expenseRepo.Create(expense); err != nil {
		return nil, nil, fmt.Errorf("failed to create expense: %w", err)
	}

	s.logger.Info("expense created",
		"expense_id", expense.ID,
		"category_id", category.ID,
		"user_id", userID,
		"over_budget", budgetStatus.IsOverBudget)
	if s.metrics != nil {
		s.metrics.IncrementCounter("expense_created", nil)
		s.metrics.RecordGauge("expense_amount", *req.Amount, nil)
	}

	return expense, budgetStatus, nil
}

// List returns the user's expenses, newest first, narrowed by the optional
// filter and enriched with category display fields.
func (s *ExpenseService) List(userID uuid.UUID, filter *dto.ExpenseFilter) ([]dto.ExpenseResponse, error) {
	repoFilter := repositories.ExpenseFilter{}

	if filter != nil {
		if filter.Year != nil && filter.Month != nil {
			repoFilter.From, repoFilter.To = MonthRange(*filter.Year, *filter.Month)
		}
		if filter.CategoryID != "" {
			categoryID, err := uuid.Parse(filter.CategoryID)
			if err != nil {
				return nil, ErrCategoryNotFound
			}
			repoFilter.CategoryID = categoryID
		}
	}

	expenses, err := s.expenseRepo.FindForUser(userID, repoFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	categories, err := s.categoryRepo.FindForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	categoriesByID := make(map[uuid.UUID]*models.Category, len(categories))
	for i := range categories {
		categoriesByID[categories[i].ID] = &categories[i]
	}

	responses := make([]dto.ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		expense := &expenses[i]
		responses = append(responses, dto.NewEnrichedExpenseResponse(expense, categoriesByID[expense.CategoryID]))
	}

	return responses, nil
}

// Get returns a single expense owned by the user
func (s *ExpenseService) Get(id, userID uuid.UUID) (*models.Expense, error) {
	expense, err := s.expenseRepo.GetForUser(id, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrExpenseNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, err
	}
	return expense, nil
}

// Update applies a partial update to an expense owned by the user. A changed
// category is re-verified for ownership.
func (s *ExpenseService) Update(id, userID uuid.UUID, req *dto.UpdateExpenseRequest) (*models.Expense, error) {
	expense, err := s.Get(id, userID)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, ErrCategoryNotFound
		}
		if _, err := s.categoryRepo.GetForUser(categoryID, userID); err != nil {
			if errors.Is(err, repositories.ErrCategoryNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, fmt.Errorf("failed to get category: %w", err)
		}
		expense.CategoryID = categoryID
	}
	if req.Amount != nil {
		expense.Amount = moneyDecimal(*req.Amount)
	}
	if req.Description != nil {
		expense.Description = *req.Description
	}
	if req.Date != nil {
		date, err := validation.ParseExpenseDate(*req.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid expense date: %w", err)
		}
		expense.Date = date
	}
	expense.UpdatedAt = time.Now()

	if err := s.expenseRepo.Update(expense); err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	return expense, nil
}

// Delete removes an expense owned by the user
func (s *ExpenseService) Delete(id, userID uuid.UUID) error {
	if err := s.expenseRepo.DeleteForUser(id, userID); err != nil {
		if errors.Is(err, repositories.ErrExpenseNotFound) {
			return ErrExpenseNotFound
		}
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	if s.metrics != nil {
		s.metrics.IncrementCounter("expense_deleted", nil)
	}

	return nil
}

package services

import (
	"fmt"
	"log/slog"
	"time"

	"budgetbook/internal/models"
	"budgetbook/internal/repositories"

	"github.com/google/uuid"
	"github.com/jinzhu/now"
	"github.com/shopspring/decimal"
)

// SummaryService computes spend-vs-budget aggregations. Spending is always
// recomputed from the raw expense rows; no running totals are stored, so a
// summary can never drift from the underlying data.
type SummaryService struct {
	categoryRepo repositories.CategoryRepositoryInterface
	expenseRepo  repositories.ExpenseRepositoryInterface
	metrics      MetricsRecorderInterface
	logger       *slog.Logger
}

// NewSummaryService creates a new summary service
func NewSummaryService(
	categoryRepo repositories.CategoryRepositoryInterface,
	expenseRepo repositories.ExpenseRepositoryInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) SummaryServiceInterface {
	return &SummaryService{
		categoryRepo: categoryRepo,
		expenseRepo:  expenseRepo,
		metrics:      metrics,
		logger:       logger,
	}
}

// MonthRange returns the inclusive bounds of a zero-based calendar month
// (0=January ... 11=December) in the server's local time zone.
func MonthRange(year, month int) (time.Time, time.Time) {
	ref := now.New(time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.Local))
	return ref.BeginningOfMonth(), ref.EndOfMonth()
}

// monthRangeOf returns the inclusive bounds of the month containing t.
func monthRangeOf(t time.Time) (time.Time, time.Time) {
	ref := now.New(t)
	return ref.BeginningOfMonth(), ref.EndOfMonth()
}

// CalculateCategorySpending computes the spend-vs-budget report for one
// category over one zero-based month.
func (s *SummaryService) CalculateCategorySpending(category *models.Category, year, month int) (models.CategorySummary, error) {
	from, to := MonthRange(year, month)

	spent, err := s.expenseRepo.SumForCategory(category.ID, category.UserID, from, to)
	if err != nil {
		return models.CategorySummary{}, fmt.Errorf("failed to sum category spending: %w", err)
	}

	budget := category.MonthlyBudget
	remaining := budget.Sub(spent)

	return models.CategorySummary{
		CategoryID:   category.ID,
		CategoryName: category.Name,
		Emoji:        category.Emoji,
		Budget:       models.MoneyFloat(budget),
		Spent:        models.MoneyFloat(spent),
		Remaining:    models.MoneyFloat(remaining),
		Percentage:   models.BudgetPercentage(spent, budget),
		IsOverBudget: spent.GreaterThan(budget),
	}, nil
}

// GetMonthlySummary aggregates every category of a user for one zero-based
// month. Totals are accumulated in exact decimal and only rounded at the
// response boundary.
func (s *SummaryService) GetMonthlySummary(userID uuid.UUID, year, month int) (*models.MonthlySummary, error) {
	started := time.Now()

	categories, err := s.categoryRepo.FindForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	from, to := MonthRange(year, month)

	summaries := make([]models.CategorySummary, 0, len(categories))
	totalBudget := decimal.Zero
	totalSpent := decimal.Zero

	for i := range categories {
		category := &categories[i]

		spent, err := s.expenseRepo.SumForCategory(category.ID, userID, from, to)
		if err != nil {
			return nil, fmt.Errorf("failed to sum spending for category %s: %w", category.ID, err)
		}

		budget := category.MonthlyBudget
		summaries = append(summaries, models.CategorySummary{
			CategoryID:   category.ID,
			CategoryName: category.Name,
			Emoji:        category.Emoji,
			Budget:       models.MoneyFloat(budget),
			Spent:        models.MoneyFloat(spent),
			Remaining:    models.MoneyFloat(budget.Sub(spent)),
			Percentage:   models.BudgetPercentage(spent, budget),
			IsOverBudget: spent.GreaterThan(budget),
		})

		totalBudget = totalBudget.Add(budget)
		totalSpent = totalSpent.Add(spent)
	}

	summary := &models.MonthlySummary{
		Year:       year,
		Month:      month,
		Categories: summaries,
		Totals: models.SummaryTotals{
			Budget:     models.MoneyFloat(totalBudget),
			Spent:      models.MoneyFloat(totalSpent),
			Remaining:  models.MoneyFloat(totalBudget.Sub(totalSpent)),
			Percentage: models.BudgetPercentage(totalSpent, totalBudget),
		},
	}

	if s.metrics != nil {
		s.metrics.RecordProcessingTime("monthly_summary", time.Since(started))
	}

	return summary, nil
}

// CheckBudget projects the category's month-to-date spending after adding
// amount on the given date. The result is advisory; callers record the
// expense regardless of the outcome.
func (s *SummaryService) CheckBudget(category *models.Category, amount decimal.Decimal, date time.Time) (*models.BudgetStatus, error) {
	from, to := monthRangeOf(date)

	previous, err := s.expenseRepo.SumForCategory(category.ID, category.UserID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to sum previous spending: %w", err)
	}

	budget := category.MonthlyBudget
	newTotal := previous.Add(amount)
	isOverBudget := newTotal.GreaterThan(budget)

	if isOverBudget {
		s.logger.Info("category over budget",
			"category_id", category.ID,
			"user_id", category.UserID,
			"budget", budget,
			"new_total", newTotal)
		if s.metrics != nil {
			s.metrics.IncrementCounter("budget_exceeded", nil)
		}
	}

	return &models.BudgetStatus{
		CategoryName:     category.Name,
		Budget:           models.MoneyFloat(budget),
		PreviousSpending: models.MoneyFloat(previous),
		NewTotal:         models.MoneyFloat(newTotal),
		Remaining:        models.MoneyFloat(budget.Sub(newTotal)),
		IsOverBudget:     isOverBudget,
		Percentage:       models.BudgetPercentage(newTotal, budget),
	}, nil
}

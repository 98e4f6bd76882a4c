package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"budgetbook/internal/dto"
	"budgetbook/internal/models"
	"budgetbook/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
)

// CategoryService handles category business logic
type CategoryService struct {
	categoryRepo repositories.CategoryRepositoryInterface
	metrics      MetricsRecorderInterface
	logger       *slog.Logger
}

// NewCategoryService creates a new category service
func NewCategoryService(
	categoryRepo repositories.CategoryRepositoryInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) CategoryServiceInterface {
	return &CategoryService{
		categoryRepo: categoryRepo,
		metrics:      metrics,
		logger:       logger,
	}
}

// Create creates a new category owned by the user
func (s *CategoryService) Create(userID uuid.UUID, req *dto.CreateCategoryRequest) (*models.Category, error) {
	category := &models.Category{
		UserID:        userID,
		Name:          req.Name,
		MonthlyBudget: moneyDecimal(*req.MonthlyBudget),
		Emoji:         req.Emoji,
	}

	if err := s.categoryRepo.Create(category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.logger.Info("category created",
		"category_id", category.ID,
		"user_id", userID)
	if s.metrics != nil {
		s.metrics.IncrementCounter("category_created", nil)
	}

	return category, nil
}

// List returns all categories owned by the user
func (s *CategoryService) List(userID uuid.UUID) ([]models.Category, error) {
	return s.categoryRepo.FindForUser(userID)
}

// Get returns a single category owned by the user
func (s *CategoryService) Get(id, userID uuid.UUID) (*models.Category, error) {
	category, err := s.categoryRepo.GetForUser(id, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

// Update applies a partial update to a category owned by the user
func (s *CategoryService) Update(id, userID uuid.UUID, req *dto.UpdateCategoryRequest) (*models.Category, error) {
	category, err := s.Get(id, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.MonthlyBudget != nil {
		category.MonthlyBudget = moneyDecimal(*req.MonthlyBudget)
	}
	if req.Emoji != nil {
		category.Emoji = *req.Emoji
	}
	category.UpdatedAt = time.Now()

	if err := s.categoryRepo.Update(category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return category, nil
}

// Delete removes a category owned by the user along with every expense
// assigned to it
func (s *CategoryService) Delete(id, userID uuid.UUID) error {
	if err := s.categoryRepo.DeleteForUser(id, userID); err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.logger.Info("category deleted",
		"category_id", id,
		"user_id", userID)
	if s.metrics != nil {
		s.metrics.IncrementCounter("category_deleted", nil)
	}

	return nil
}

// moneyDecimal converts a request amount to the exact decimal representation
// used in storage, normalized to 2 places.
func moneyDecimal(amount float64) decimal.Decimal {
	return decimal.NewFromFloat(amount).Round(2)
}

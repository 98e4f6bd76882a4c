package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DefaultCategoryEmoji is applied when a category is created without an icon.
const DefaultCategoryEmoji = "📁"

// Category is a user-defined spending bucket with a monthly budget ceiling.
type Category struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"userId"`
	Name          string          `gorm:"type:varchar(100);not null" json:"name"`
	MonthlyBudget decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"monthlyBudget"`
	Emoji         string          `gorm:"type:varchar(16);not null;default:''" json:"emoji"`
	CreatedAt     time.Time       `gorm:"not null" json:"createdAt"`
	UpdatedAt     time.Time       `gorm:"not null" json:"updatedAt"`

	User     User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Expenses []Expense `gorm:"foreignKey:CategoryID" json:"-"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	if c.Emoji == "" {
		c.Emoji = DefaultCategoryEmoji
	}

	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = now
	}

	return c.Validate()
}

func (c *Category) Validate() error {
	if c.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}

	if c.Name == "" {
		return errors.New("name is required")
	}

	if c.MonthlyBudget.IsNegative() {
		return errors.New("monthly budget must be non-negative")
	}

	return nil
}

func (c *Category) TableName() string {
	return "categories"
}

package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategorySummary is the spend-vs-budget report for one category over one
// month. Monetary figures are rounded to 2 decimal places for display; the
// underlying sums are always recomputed from raw expense rows.
type CategorySummary struct {
	CategoryID   uuid.UUID `json:"categoryId"`
	CategoryName string    `json:"categoryName"`
	Emoji        string    `json:"emoji"`
	Budget       float64   `json:"budget"`
	Spent        float64   `json:"spent"`
	Remaining    float64   `json:"remaining"`
	Percentage   float64   `json:"percentage"`
	IsOverBudget bool      `json:"isOverBudget"`
}

// SummaryTotals aggregates all categories of a monthly summary.
type SummaryTotals struct {
	Budget     float64 `json:"budget"`
	Spent      float64 `json:"spent"`
	Remaining  float64 `json:"remaining"`
	Percentage float64 `json:"percentage"`
}

// MonthlySummary is the full aggregation payload for one calendar month.
// Month is zero-based (0=January ... 11=December).
type MonthlySummary struct {
	Year       int               `json:"year"`
	Month      int               `json:"month"`
	Categories []CategorySummary `json:"categories"`
	Totals     SummaryTotals     `json:"totals"`
}

// BudgetStatus is the advisory over/under-budget snapshot returned after
// recording a new expense. It never blocks the write.
type BudgetStatus struct {
	CategoryName     string  `json:"categoryName"`
	Budget           float64 `json:"budget"`
	PreviousSpending float64 `json:"previousSpending"`
	NewTotal         float64 `json:"newTotal"`
	Remaining        float64 `json:"remaining"`
	IsOverBudget     bool    `json:"isOverBudget"`
	Percentage       float64 `json:"percentage"`
}

// MoneyFloat rounds a decimal to 2 places and returns it as a float64 for
// JSON serialization as a plain number.
func MoneyFloat(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

// BudgetPercentage computes spent/budget*100 rounded to 2 places. A zero
// budget yields 0: percentage against an unbounded budget is undefined and
// must never surface as Inf or NaN.
func BudgetPercentage(spent, budget decimal.Decimal) float64 {
	if !budget.IsPositive() {
		return 0
	}
	f, _ := spent.Div(budget).Mul(decimal.NewFromInt(100)).Round(2).Float64()
	return f
}

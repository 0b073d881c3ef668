// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// DefaultGoalIcon is the default icon for savings goals.
	DefaultGoalIcon = "piggy-bank"
	// DefaultGoalColor is the default color for savings goals.
	DefaultGoalColor = "#6366F1"
)

// Goal represents a savings goal.
type Goal struct {
	ID           uuid.UUID
	Name         string
	Icon         string
	Color        string
	TargetAmount decimal.Decimal
	SavedAmount  decimal.Decimal
	StartDate    time.Time
	TargetDate   *time.Time
	Owner        Owner
	UpdatedByID  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time // Soft-delete support
}

// NewGoal creates a new Goal owned by the given user.
func NewGoal(
	name, icon, color string,
	targetAmount, savedAmount decimal.Decimal,
	targetDate *time.Time,
	createdBy string,
) *Goal {
	now := time.Now().UTC()

	return &Goal{
		ID:           uuid.New(),
		Name:         name,
		Icon:         icon,
		Color:        color,
		TargetAmount: targetAmount,
		SavedAmount:  savedAmount,
		StartDate:    now,
		TargetDate:   targetDate,
		Owner:        UserOwner(createdBy),
		UpdatedByID:  createdBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// IsReached reports whether the saved amount has met the target.
func (g *Goal) IsReached() bool {
	return g.SavedAmount.GreaterThanOrEqual(g.TargetAmount)
}

// ReachedBy reports whether adding the given contribution is what made the
// goal reach its target. SavedAmount must already include the contribution.
func (g *Goal) ReachedBy(contribution decimal.Decimal) bool {
	before := g.SavedAmount.Sub(contribution)
	return before.LessThan(g.TargetAmount) && g.IsReached()
}

// Progress returns the saved fraction of the target, capped at 1.
func (g *Goal) Progress() decimal.Decimal {
	if !g.TargetAmount.IsPositive() {
		return decimal.Zero
	}
	p := g.SavedAmount.Div(g.TargetAmount)
	if p.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.NewFromInt(1)
	}
	return p
}

// Touch records a modification by the given user.
func (g *Goal) Touch(userID string, at time.Time) {
	g.UpdatedByID = userID
	g.UpdatedAt = at
}

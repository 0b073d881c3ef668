// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Contribution is a deposit towards a savings goal.
type Contribution struct {
	ID          uuid.UUID
	GoalID      uuid.UUID
	Amount      decimal.Decimal
	Description *string
	CreatedByID string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewContribution creates a new Contribution for a goal.
func NewContribution(goalID uuid.UUID, amount decimal.Decimal, description *string, createdBy string) *Contribution {
	now := time.Now().UTC()

	return &Contribution{
		ID:          uuid.New(),
		GoalID:      goalID,
		Amount:      amount,
		Description: description,
		CreatedByID: createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

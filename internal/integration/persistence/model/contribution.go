package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spendly/backend/internal/domain/entity"
)

// ContributionModel represents the goal_contributions table in the database.
type ContributionModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	GoalID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Goal        *GoalModel      `gorm:"foreignKey:GoalID;constraint:OnDelete:CASCADE"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Description *string         `gorm:"type:varchar(255)"`
	CreatedByID string          `gorm:"type:varchar(255);not null"`
	CreatedAt   time.Time       `gorm:"not null;index"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for the ContributionModel.
func (ContributionModel) TableName() string {
	return "goal_contributions"
}

// ToEntity converts a ContributionModel to a domain Contribution entity.
func (m *ContributionModel) ToEntity() *entity.Contribution {
	return &entity.Contribution{
		ID:          m.ID,
		GoalID:      m.GoalID,
		Amount:      m.Amount,
		Description: m.Description,
		CreatedByID: m.CreatedByID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ContributionFromEntity creates a ContributionModel from a domain Contribution entity.
func ContributionFromEntity(c *entity.Contribution) *ContributionModel {
	return &ContributionModel{
		ID:          c.ID,
		GoalID:      c.GoalID,
		Amount:      c.Amount,
		Description: c.Description,
		CreatedByID: c.CreatedByID,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/spendly/backend/internal/domain/entity"
)

// GoalModel represents the goals table in the database.
type GoalModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name         string          `gorm:"type:varchar(50);not null"`
	Icon         string          `gorm:"type:varchar(50);not null;default:'piggy-bank'"`
	Color        string          `gorm:"type:varchar(7);not null;default:'#6366F1'"`
	TargetAmount decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	SavedAmount  decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	StartDate    time.Time       `gorm:"not null"`
	TargetDate   *time.Time
	CreatedByID  string         `gorm:"type:varchar(255);not null;index"`
	UpdatedByID  string         `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time      `gorm:"not null"`
	UpdatedAt    time.Time      `gorm:"not null"`
	DeletedAt    gorm.DeletedAt `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the GoalModel.
func (GoalModel) TableName() string {
	return "goals"
}

// ToEntity converts a GoalModel to a domain Goal entity.
func (m *GoalModel) ToEntity() *entity.Goal {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.Goal{
		ID:           m.ID,
		Name:         m.Name,
		Icon:         m.Icon,
		Color:        m.Color,
		TargetAmount: m.TargetAmount,
		SavedAmount:  m.SavedAmount,
		StartDate:    m.StartDate,
		TargetDate:   m.TargetDate,
		Owner:        ownerFromColumn(m.CreatedByID),
		UpdatedByID:  m.UpdatedByID,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
		DeletedAt:    deletedAt,
	}
}

// GoalFromEntity creates a GoalModel from a domain Goal entity.
func GoalFromEntity(goal *entity.Goal) *GoalModel {
	var deletedAt gorm.DeletedAt
	if goal.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *goal.DeletedAt, Valid: true}
	}

	return &GoalModel{
		ID:           goal.ID,
		Name:         goal.Name,
		Icon:         goal.Icon,
		Color:        goal.Color,
		TargetAmount: goal.TargetAmount,
		SavedAmount:  goal.SavedAmount,
		StartDate:    goal.StartDate,
		TargetDate:   goal.TargetDate,
		CreatedByID:  ownerToColumn(goal.Owner),
		UpdatedByID:  goal.UpdatedByID,
		CreatedAt:    goal.CreatedAt,
		UpdatedAt:    goal.UpdatedAt,
		DeletedAt:    deletedAt,
	}
}

package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/spendly/backend/internal/domain/entity"
)

// SpendModel represents the spends table in the database.
type SpendModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Description   string          `gorm:"type:varchar(255);not null"`
	CategoryID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Category      *CategoryModel  `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
	PaymentMethod string          `gorm:"type:varchar(20);not null"`
	Date          time.Time       `gorm:"not null;index"`
	Notes         string          `gorm:"type:text"`
	CreatedByID   string          `gorm:"type:varchar(255);not null;index"`
	UpdatedByID   string          `gorm:"type:varchar(255);not null"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
	DeletedAt     gorm.DeletedAt  `gorm:"index"`
}

// TableName returns the table name for the SpendModel.
func (SpendModel) TableName() string {
	return "spends"
}

// ToEntity converts a SpendModel to a domain Spend entity.
func (m *SpendModel) ToEntity() *entity.Spend {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	var category *entity.Category
	if m.Category != nil {
		category = m.Category.ToEntity()
	}

	return &entity.Spend{
		ID:            m.ID,
		Amount:        m.Amount,
		Description:   m.Description,
		CategoryID:    m.CategoryID,
		Category:      category,
		PaymentMethod: entity.PaymentMethod(m.PaymentMethod),
		Date:          m.Date,
		Notes:         m.Notes,
		Owner:         ownerFromColumn(m.CreatedByID),
		UpdatedByID:   m.UpdatedByID,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
		DeletedAt:     deletedAt,
	}
}

// SpendFromEntity creates a SpendModel from a domain Spend entity.
// The category association is never written through the spend.
func SpendFromEntity(spend *entity.Spend) *SpendModel {
	var deletedAt gorm.DeletedAt
	if spend.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *spend.DeletedAt, Valid: true}
	}

	return &SpendModel{
		ID:            spend.ID,
		Amount:        spend.Amount,
		Description:   spend.Description,
		CategoryID:    spend.CategoryID,
		PaymentMethod: string(spend.PaymentMethod),
		Date:          spend.Date,
		Notes:         spend.Notes,
		CreatedByID:   ownerToColumn(spend.Owner),
		UpdatedByID:   spend.UpdatedByID,
		CreatedAt:     spend.CreatedAt,
		UpdatedAt:     spend.UpdatedAt,
		DeletedAt:     deletedAt,
	}
}

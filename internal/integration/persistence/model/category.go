// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/spendly/backend/internal/domain/entity"
)

// SystemOwnerID is the created_by_id value stored for system-owned records.
const SystemOwnerID = entity.SystemOwnerID

// CategoryModel represents the categories table in the database.
type CategoryModel struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name        string         `gorm:"type:varchar(50);not null"`
	Icon        string         `gorm:"type:varchar(50);not null;default:'tag'"`
	Color       string         `gorm:"type:varchar(7);not null;default:'#6366F1'"`
	CreatedByID string         `gorm:"type:varchar(255);not null;index"`
	UpdatedByID string         `gorm:"type:varchar(255);not null"`
	CreatedAt   time.Time      `gorm:"not null"`
	UpdatedAt   time.Time      `gorm:"not null"`
	DeletedAt   gorm.DeletedAt `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the CategoryModel.
func (CategoryModel) TableName() string {
	return "categories"
}

// ToEntity converts a CategoryModel to a domain Category entity.
func (m *CategoryModel) ToEntity() *entity.Category {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.Category{
		ID:          m.ID,
		Name:        m.Name,
		Icon:        m.Icon,
		Color:       m.Color,
		Owner:       ownerFromColumn(m.CreatedByID),
		UpdatedByID: m.UpdatedByID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		DeletedAt:   deletedAt,
	}
}

// CategoryFromEntity creates a CategoryModel from a domain Category entity.
func CategoryFromEntity(category *entity.Category) *CategoryModel {
	var deletedAt gorm.DeletedAt
	if category.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *category.DeletedAt, Valid: true}
	}

	return &CategoryModel{
		ID:          category.ID,
		Name:        category.Name,
		Icon:        category.Icon,
		Color:       category.Color,
		CreatedByID: ownerToColumn(category.Owner),
		UpdatedByID: category.UpdatedByID,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
		DeletedAt:   deletedAt,
	}
}

func ownerFromColumn(createdByID string) entity.Owner {
	if createdByID == SystemOwnerID {
		return entity.SystemOwner()
	}
	return entity.UserOwner(createdByID)
}

func ownerToColumn(owner entity.Owner) string {
	if owner.IsSystem() {
		return SystemOwnerID
	}
	return owner.UserID()
}

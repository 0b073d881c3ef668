package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/spendly/backend/internal/application/adapter"
	"github.com/spendly/backend/internal/domain/entity"
	domainerror "github.com/spendly/backend/internal/domain/error"
	"github.com/spendly/backend/internal/integration/persistence/model"
)

// spendRepository implements the adapter.SpendRepository interface.
type spendRepository struct {
	db *gorm.DB
}

// NewSpendRepository creates a new spend repository instance.
func NewSpendRepository(db *gorm.DB) adapter.SpendRepository {
	return &spendRepository{
		db: db,
	}
}

// Create inserts a spend. The category association is not upserted.
func (r *spendRepository) Create(ctx context.Context, spend *entity.Spend) error {
	spendModel := model.SpendFromEntity(spend)
	result := r.db.WithContext(ctx).Omit(clause.Associations).Create(spendModel)
	if result.Error != nil {
		return translate(result.Error)
	}
	return nil
}

// FindByID retrieves a live spend with its category.
func (r *spendRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Spend, error) {
	var spendModel model.SpendModel
	result := r.db.WithContext(ctx).
		Preload("Category").
		Where("id = ?", id).
		First(&spendModel)
	if result.Error != nil {
		return nil, translate(result.Error)
	}
	return spendModel.ToEntity(), nil
}

// FindByOwner lists the user's spends, most recent first.
func (r *spendRepository) FindByOwner(ctx context.Context, userID string, filter entity.SpendFilter) ([]*entity.Spend, error) {
	query := r.db.WithContext(ctx).
		Preload("Category").
		Where("created_by_id = ?", userID)

	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.PaymentMethod != nil {
		query = query.Where("payment_method = ?", string(*filter.PaymentMethod))
	}
	if filter.From != nil {
		query = query.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("date <= ?", *filter.To)
	}

	var spendModels []model.SpendModel
	if err := query.Order("date DESC").Order("created_at DESC").Find(&spendModels).Error; err != nil {
		return nil, translate(err)
	}

	spends := make([]*entity.Spend, len(spendModels))
	for i := range spendModels {
		spends[i] = spendModels[i].ToEntity()
	}
	return spends, nil
}

// Update writes the mutable spend fields.
func (r *spendRepository) Update(ctx context.Context, spend *entity.Spend) error {
	result := r.db.WithContext(ctx).
		Model(&model.SpendModel{}).
		Where("id = ?", spend.ID).
		Updates(map[string]interface{}{
			"amount":         spend.Amount,
			"description":    spend.Description,
			"category_id":    spend.CategoryID,
			"payment_method": string(spend.PaymentMethod),
			"date":           spend.Date,
			"notes":          spend.Notes,
			"updated_by_id":  spend.UpdatedByID,
			"updated_at":     spend.UpdatedAt,
		})
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrRecordNotFound
	}
	return nil
}

// Delete soft-deletes a spend.
func (r *spendRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.SpendModel{}, "id = ?", id)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrRecordNotFound
	}
	return nil
}

// CountByCategory counts live spends referencing the category.
func (r *spendRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.SpendModel{}).
		Where("category_id = ?", categoryID).
		Count(&count)
	if result.Error != nil {
		return 0, translate(result.Error)
	}
	return count, nil
}

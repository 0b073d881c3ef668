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

// goalRepository implements the adapter.GoalRepository interface.
type goalRepository struct {
	db *gorm.DB
}

// NewGoalRepository creates a new goal repository instance.
func NewGoalRepository(db *gorm.DB) adapter.GoalRepository {
	return &goalRepository{
		db: db,
	}
}

// Create creates a new goal in the database.
func (r *goalRepository) Create(ctx context.Context, goal *entity.Goal) error {
	goalModel := model.GoalFromEntity(goal)
	result := r.db.WithContext(ctx).Create(goalModel)
	if result.Error != nil {
		return translate(result.Error)
	}
	return nil
}

// FindByID retrieves a live goal by its ID.
func (r *goalRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error) {
	return findGoal(ctx, r.db, id)
}

// FindByOwner retrieves all goals for a given user, newest first.
func (r *goalRepository) FindByOwner(ctx context.Context, userID string) ([]*entity.Goal, error) {
	var goalModels []model.GoalModel
	result := r.db.WithContext(ctx).
		Where("created_by_id = ?", userID).
		Order("created_at DESC").
		Find(&goalModels)
	if result.Error != nil {
		return nil, translate(result.Error)
	}

	goals := make([]*entity.Goal, len(goalModels))
	for i := range goalModels {
		goals[i] = goalModels[i].ToEntity()
	}
	return goals, nil
}

// ExistsByName checks, ignoring case, whether the user already has a goal with this name.
func (r *goalRepository) ExistsByName(ctx context.Context, name, userID string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&model.GoalModel{}).
		Where("LOWER(name) = LOWER(?)", name).
		Where("created_by_id = ?", userID)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}

// Update writes the mutable goal fields. The saved amount only moves through contributions.
func (r *goalRepository) Update(ctx context.Context, goal *entity.Goal) error {
	result := r.db.WithContext(ctx).
		Model(&model.GoalModel{}).
		Where("id = ?", goal.ID).
		Updates(map[string]interface{}{
			"name":          goal.Name,
			"icon":          goal.Icon,
			"color":         goal.Color,
			"target_amount": goal.TargetAmount,
			"target_date":   goal.TargetDate,
			"updated_by_id": goal.UpdatedByID,
			"updated_at":    goal.UpdatedAt,
		})
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrRecordNotFound
	}
	return nil
}

// Delete soft-deletes a goal and removes its contributions in one transaction.
func (r *goalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&model.GoalModel{}, "id = ?", id)
		if result.Error != nil {
			return translate(result.Error)
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrRecordNotFound
		}

		if err := tx.Where("goal_id = ?", id).Delete(&model.ContributionModel{}).Error; err != nil {
			return translate(err)
		}
		return nil
	})
}

// AddContribution records the contribution and increments the goal's saved
// amount atomically, returning the goal as stored after the increment.
func (r *goalRepository) AddContribution(ctx context.Context, contribution *entity.Contribution) (*entity.Goal, error) {
	var updated *entity.Goal

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.GoalModel{}).
			Where("id = ?", contribution.GoalID).
			Updates(map[string]interface{}{
				"saved_amount":  gorm.Expr("saved_amount + ?", contribution.Amount),
				"updated_by_id": contribution.CreatedByID,
				"updated_at":    contribution.CreatedAt,
			})
		if result.Error != nil {
			return translate(result.Error)
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrRecordNotFound
		}

		contributionModel := model.ContributionFromEntity(contribution)
		if err := tx.Omit(clause.Associations).Create(contributionModel).Error; err != nil {
			return translate(err)
		}

		goal, err := findGoal(ctx, tx, contribution.GoalID)
		if err != nil {
			return err
		}
		updated = goal
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// FindContributions lists a goal's contributions, newest first.
func (r *goalRepository) FindContributions(ctx context.Context, goalID uuid.UUID) ([]*entity.Contribution, error) {
	var contributionModels []model.ContributionModel
	result := r.db.WithContext(ctx).
		Where("goal_id = ?", goalID).
		Order("created_at DESC").
		Find(&contributionModels)
	if result.Error != nil {
		return nil, translate(result.Error)
	}

	contributions := make([]*entity.Contribution, len(contributionModels))
	for i := range contributionModels {
		contributions[i] = contributionModels[i].ToEntity()
	}
	return contributions, nil
}

func findGoal(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Goal, error) {
	var goalModel model.GoalModel
	result := db.WithContext(ctx).Where("id = ?", id).First(&goalModel)
	if result.Error != nil {
		return nil, translate(result.Error)
	}
	return goalModel.ToEntity(), nil
}

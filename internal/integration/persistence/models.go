package persistence

import "github.com/spendly/backend/internal/integration/persistence/model"

// Models lists every table managed by auto-migration, parents first.
func Models() []interface{} {
	return []interface{}{
		&model.CategoryModel{},
		&model.SpendModel{},
		&model.GoalModel{},
		&model.ContributionModel{},
		&model.EmailQueueModel{},
	}
}

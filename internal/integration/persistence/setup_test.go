package persistence

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/spendly/backend/config"
	"github.com/spendly/backend/internal/domain/entity"
	"github.com/spendly/backend/internal/infra/db"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := db.NewSQLiteConnection(&config.DatabaseConfig{Driver: "sqlite"})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(Models()...))
	t.Cleanup(func() { _ = database.Close() })

	return database.DB()
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d.UTC()
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func systemCategory(name string) *entity.Category {
	c := entity.NewCategory(name, "tag", "#6366F1", "")
	c.Owner = entity.SystemOwner()
	c.UpdatedByID = "system"
	return c
}

func newSpend(userID string, categoryID uuid.UUID, amount, date string) *entity.Spend {
	return entity.NewSpend(money(amount), "Coffee", categoryID, entity.PaymentMethodCard, day(date), "", userID)
}

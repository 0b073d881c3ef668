package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendly/backend/internal/domain/entity"
	domainerror "github.com/spendly/backend/internal/domain/error"
)

func TestSpendRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	gdb := newTestDB(t)
	categories := NewCategoryRepository(gdb)
	repo := NewSpendRepository(gdb)

	food := entity.NewCategory("Food", "utensils", "#FF0000", "user_a")
	require.NoError(t, categories.Create(ctx, food))

	spend := newSpend("user_a", food.ID, "12.50", "2024-03-01")
	require.NoError(t, repo.Create(ctx, spend))

	stored, err := repo.FindByID(ctx, spend.ID)
	require.NoError(t, err)
	assert.True(t, stored.Amount.Equal(money("12.5")))
	assert.Equal(t, entity.PaymentMethodCard, stored.PaymentMethod)
	assert.True(t, stored.Date.Equal(day("2024-03-01")))
	assert.True(t, stored.Owner.IsUser("user_a"))
	require.NotNil(t, stored.Category)
	assert.Equal(t, "Food", stored.Category.Name)
}

func TestSpendRepository_UpdateEmbedsCurrentCategory(t *testing.T) {
	ctx := context.Background()
	gdb := newTestDB(t)
	categories := NewCategoryRepository(gdb)
	repo := NewSpendRepository(gdb)

	food := entity.NewCategory("Food", "utensils", "#FF0000", "user_a")
	travel := entity.NewCategory("Travel", "plane", "#00FF00", "user_a")
	require.NoError(t, categories.Create(ctx, food))
	require.NoError(t, categories.Create(ctx, travel))

	spend := newSpend("user_a", food.ID, "20", "2024-03-01")
	require.NoError(t, repo.Create(ctx, spend))

	spend.CategoryID = travel.ID
	spend.Amount = money("25.75")
	spend.Touch("user_a", time.Now().UTC())
	require.NoError(t, repo.Update(ctx, spend))

	stored, err := repo.FindByID(ctx, spend.ID)
	require.NoError(t, err)
	assert.True(t, stored.Amount.Equal(money("25.75")))
	require.NotNil(t, stored.Category)
	assert.Equal(t, "Travel", stored.Category.Name)
}

func TestSpendRepository_FindByOwner(t *testing.T) {
	ctx := context.Background()
	gdb := newTestDB(t)
	categories := NewCategoryRepository(gdb)
	repo := NewSpendRepository(gdb)

	food := entity.NewCategory("Food", "utensils", "#FF0000", "user_a")
	travel := entity.NewCategory("Travel", "plane", "#00FF00", "user_a")
	require.NoError(t, categories.Create(ctx, food))
	require.NoError(t, categories.Create(ctx, travel))

	march := newSpend("user_a", food.ID, "10", "2024-03-10")
	april := newSpend("user_a", travel.ID, "200", "2024-04-02")
	april.PaymentMethod = entity.PaymentMethodBankTransfer
	january := newSpend("user_a", food.ID, "5", "2024-01-15")
	foreign := newSpend("user_b", food.ID, "99", "2024-03-11")
	for _, s := range []*entity.Spend{march, april, january, foreign} {
		require.NoError(t, repo.Create(ctx, s))
	}

	ids := func(spends []*entity.Spend) []uuid.UUID {
		out := make([]uuid.UUID, len(spends))
		for i, s := range spends {
			out[i] = s.ID
		}
		return out
	}

	t.Run("owner scoped and most recent first", func(t *testing.T) {
		spends, err := repo.FindByOwner(ctx, "user_a", entity.SpendFilter{})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{april.ID, march.ID, january.ID}, ids(spends))
	})

	t.Run("category filter", func(t *testing.T) {
		spends, err := repo.FindByOwner(ctx, "user_a", entity.SpendFilter{CategoryID: &food.ID})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{march.ID, january.ID}, ids(spends))
	})

	t.Run("payment method filter", func(t *testing.T) {
		method := entity.PaymentMethodBankTransfer
		spends, err := repo.FindByOwner(ctx, "user_a", entity.SpendFilter{PaymentMethod: &method})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{april.ID}, ids(spends))
	})

	t.Run("date range filter", func(t *testing.T) {
		from, to := day("2024-02-01"), day("2024-03-31")
		spends, err := repo.FindByOwner(ctx, "user_a", entity.SpendFilter{From: &from, To: &to})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{march.ID}, ids(spends))
	})
}

func TestSpendRepository_DeleteAndCount(t *testing.T) {
	ctx := context.Background()
	gdb := newTestDB(t)
	categories := NewCategoryRepository(gdb)
	repo := NewSpendRepository(gdb)

	food := entity.NewCategory("Food", "utensils", "#FF0000", "user_a")
	require.NoError(t, categories.Create(ctx, food))

	first := newSpend("user_a", food.ID, "10", "2024-03-10")
	second := newSpend("user_a", food.ID, "15", "2024-03-12")
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	count, err := repo.CountByCategory(ctx, food.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, repo.Delete(ctx, first.ID))
	assert.ErrorIs(t, repo.Delete(ctx, first.ID), domainerror.ErrRecordNotFound)

	_, err = repo.FindByID(ctx, first.ID)
	assert.ErrorIs(t, err, domainerror.ErrRecordNotFound)

	count, err = repo.CountByCategory(ctx, food.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

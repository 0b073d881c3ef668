package category

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendly/backend/internal/domain/entity"
	domainerror "github.com/spendly/backend/internal/domain/error"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type memCategoryRepo struct {
	rows    map[uuid.UUID]*entity.Category
	updates int
}

func newMemCategoryRepo(seed ...*entity.Category) *memCategoryRepo {
	r := &memCategoryRepo{rows: map[uuid.UUID]*entity.Category{}}
	for _, c := range seed {
		r.rows[c.ID] = c
	}
	return r
}

func (r *memCategoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.rows[c.ID] = c
	return nil
}

func (r *memCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	c, ok := r.rows[id]
	if !ok {
		return nil, domainerror.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *memCategoryRepo) FindAccessible(_ context.Context, userID string) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range r.rows {
		if c.IsAccessibleBy(userID) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memCategoryRepo) ExistsByName(_ context.Context, name, userID string, excludeID *uuid.UUID) (bool, error) {
	for _, c := range r.rows {
		if excludeID != nil && c.ID == *excludeID {
			continue
		}
		if c.IsAccessibleBy(userID) && strings.EqualFold(c.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memCategoryRepo) Update(_ context.Context, c *entity.Category) error {
	if _, ok := r.rows[c.ID]; !ok {
		return domainerror.ErrRecordNotFound
	}
	r.updates++
	r.rows[c.ID] = c
	return nil
}

func (r *memCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.rows[id]; !ok {
		return domainerror.ErrRecordNotFound
	}
	delete(r.rows, id)
	return nil
}

type countingSpendRepo struct {
	counts map[uuid.UUID]int64
}

func (r *countingSpendRepo) Create(context.Context, *entity.Spend) error { return nil }
func (r *countingSpendRepo) FindByID(context.Context, uuid.UUID) (*entity.Spend, error) {
	return nil, domainerror.ErrRecordNotFound
}
func (r *countingSpendRepo) FindByOwner(context.Context, string, entity.SpendFilter) ([]*entity.Spend, error) {
	return nil, nil
}
func (r *countingSpendRepo) Update(context.Context, *entity.Spend) error { return nil }
func (r *countingSpendRepo) Delete(context.Context, uuid.UUID) error { return nil }
func (r *countingSpendRepo) CountByCategory(_ context.Context, id uuid.UUID) (int64, error) {
	return r.counts[id], nil
}

func ptr(s string) *string { return &s }

func systemCategory(name string) *entity.Category {
	return &entity.Category{ID: uuid.New(), Name: name, Icon: "tag", Color: "#000", Owner: entity.SystemOwner()}
}

func requireKind(t *testing.T, err error, kind domainerror.Kind, message string) {
	t.Helper()
	de, ok := domainerror.As(err)
	require.True(t, ok, "expected DomainError, got %v", err)
	assert.Equal(t, kind, de.Kind)
	assert.Equal(t, message, de.Message)
}

func TestCreateCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("creates trimmed category", func(t *testing.T) {
		repo := newMemCategoryRepo()
		out, err := NewCreateCategoryUseCase(repo).Execute(ctx, CreateCategoryInput{
			Name: ptr("  Food "), Icon: ptr(" utensils "), Color: ptr("#ff0000"), UserID: "user_1",
		})
		require.NoError(t, err)

		assert.Equal(t, "Food", out.Category.Name)
		assert.Equal(t, "utensils", out.Category.Icon)
		assert.True(t, out.Category.Owner.IsUser("user_1"))
		assert.Equal(t, "user_1", out.Category.UpdatedByID)
		assert.Len(t, repo.rows, 1)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := NewCreateCategoryUseCase(newMemCategoryRepo()).Execute(ctx, CreateCategoryInput{Name: ptr("Food"), UserID: "user_1"})
		requireKind(t, err, domainerror.KindValidation, "Missing required fields: name, icon, and color are required")
	})

	t.Run("invalid color writes nothing", func(t *testing.T) {
		repo := newMemCategoryRepo()
		_, err := NewCreateCategoryUseCase(repo).Execute(ctx, CreateCategoryInput{
			Name: ptr("Food"), Icon: ptr("utensils"), Color: ptr("red"), UserID: "user_1",
		})
		requireKind(t, err, domainerror.KindValidation, domainerror.MsgInvalidColor)
		assert.Empty(t, repo.rows)
	})

	t.Run("duplicate of system category ignoring case", func(t *testing.T) {
		repo := newMemCategoryRepo(systemCategory("Groceries"))
		_, err := NewCreateCategoryUseCase(repo).Execute(ctx, CreateCategoryInput{
			Name: ptr("groceries"), Icon: ptr("cart"), Color: ptr("#0f0"), UserID: "user_1",
		})
		requireKind(t, err, domainerror.KindConflict, domainerror.MsgCategoryNameExists)
		assert.Len(t, repo.rows, 1)
	})

	t.Run("another user's name is free", func(t *testing.T) {
		other := entity.NewCategory("Pets", "paw", "#123", "user_2")
		repo := newMemCategoryRepo(other)
		_, err := NewCreateCategoryUseCase(repo).Execute(ctx, CreateCategoryInput{
			Name: ptr("Pets"), Icon: ptr("paw"), Color: ptr("#123"), UserID: "user_1",
		})
		require.NoError(t, err)
		assert.Len(t, repo.rows, 2)
	})
}

func TestUpdateCategory(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	clock := fixedClock{now: now}

	t.Run("partial update keeps absent fields", func(t *testing.T) {
		own := entity.NewCategory("Food", "utensils", "#FF0000", "user_1")
		repo := newMemCategoryRepo(own)

		out, err := NewUpdateCategoryUseCase(repo, clock).Execute(ctx, UpdateCategoryInput{
			CategoryID: own.ID.String(), Color: ptr("#00F"), UserID: "user_1",
		})
		require.NoError(t, err)

		assert.Equal(t, "Food", out.Category.Name)
		assert.Equal(t, "utensils", out.Category.Icon)
		assert.Equal(t, "#00F", out.Category.Color)
		assert.Equal(t, now, out.Category.UpdatedAt)
	})

	t.Run("renaming to same name with different case is allowed", func(t *testing.T) {
		own := entity.NewCategory("Food", "utensils", "#FF0000", "user_1")
		repo := newMemCategoryRepo(own)

		out, err := NewUpdateCategoryUseCase(repo, clock).Execute(ctx, UpdateCategoryInput{
			CategoryID: own.ID.String(), Name: ptr("FOOD"), UserID: "user_1",
		})
		require.NoError(t, err)
		assert.Equal(t, "FOOD", out.Category.Name)
	})

	t.Run("system category cannot be modified", func(t *testing.T) {
		sys := systemCategory("Bills")
		repo := newMemCategoryRepo(sys)

		_, err := NewUpdateCategoryUseCase(repo, clock).Execute(ctx, UpdateCategoryInput{
			CategoryID: sys.ID.String(), Name: ptr("Mine"), UserID: "user_1",
		})
		requireKind(t, err, domainerror.KindForbidden, "Cannot modify system categories.")
		assert.Zero(t, repo.updates)
	})

	t.Run("ownership is checked before fields", func(t *testing.T) {
		foreign := entity.NewCategory("Food", "utensils", "#FF0000", "user_2")
		repo := newMemCategoryRepo(foreign)

		_, err := NewUpdateCategoryUseCase(repo, clock).Execute(ctx, UpdateCategoryInput{
			CategoryID: foreign.ID.String(), Color: ptr("red"), UserID: "user_1",
		})
		requireKind(t, err, domainerror.KindForbidden, "You are not authorized to update this category.")
	})

	t.Run("bad id", func(t *testing.T) {
		_, err := NewUpdateCategoryUseCase(newMemCategoryRepo(), clock).Execute(ctx, UpdateCategoryInput{CategoryID: "", UserID: "user_1"})
		requireKind(t, err, domainerror.KindValidation, "Category ID is required")

		_, err = NewUpdateCategoryUseCase(newMemCategoryRepo(), clock).Execute(ctx, UpdateCategoryInput{CategoryID: "abc", UserID: "user_1"})
		requireKind(t, err, domainerror.KindValidation, "Invalid category ID format")
	})
}

func TestDeleteCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes unused category", func(t *testing.T) {
		own := entity.NewCategory("Food", "utensils", "#FF0000", "user_1")
		repo := newMemCategoryRepo(own)
		uc := NewDeleteCategoryUseCase(repo, &countingSpendRepo{})

		out, err := uc.Execute(ctx, DeleteCategoryInput{CategoryID: own.ID.String(), UserID: "user_1"})
		require.NoError(t, err)
		assert.Equal(t, own.ID, out.Category.ID)
		assert.Empty(t, repo.rows)

		_, err = uc.Execute(ctx, DeleteCategoryInput{CategoryID: own.ID.String(), UserID: "user_1"})
		requireKind(t, err, domainerror.KindNotFound, domainerror.MsgCategoryNotFound)
	})

	t.Run("category with spends is kept", func(t *testing.T) {
		own := entity.NewCategory("Food", "utensils", "#FF0000", "user_1")
		repo := newMemCategoryRepo(own)
		spends := &countingSpendRepo{counts: map[uuid.UUID]int64{own.ID: 2}}

		_, err := NewDeleteCategoryUseCase(repo, spends).Execute(ctx, DeleteCategoryInput{CategoryID: own.ID.String(), UserID: "user_1"})
		requireKind(t, err, domainerror.KindConflict, domainerror.MsgCategoryInUse)
		assert.Len(t, repo.rows, 1)
	})

	t.Run("system category", func(t *testing.T) {
		sys := systemCategory("Bills")
		_, err := NewDeleteCategoryUseCase(newMemCategoryRepo(sys), &countingSpendRepo{}).Execute(ctx,
			DeleteCategoryInput{CategoryID: sys.ID.String(), UserID: "user_1"})
		requireKind(t, err, domainerror.KindForbidden, "Cannot delete system categories.")
	})
}

func TestListCategories(t *testing.T) {
	repo := newMemCategoryRepo(
		systemCategory("Bills"),
		entity.NewCategory("Food", "utensils", "#FF0000", "user_1"),
		entity.NewCategory("Hidden", "eye", "#FF0000", "user_2"),
	)

	out, err := NewListCategoriesUseCase(repo).Execute(context.Background(), ListCategoriesInput{UserID: "user_1"})
	require.NoError(t, err)
	assert.Equal(t, 2, out.TotalCount)
	assert.Len(t, out.Categories, 2)
}

package guard

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendly/backend/internal/domain/entity"
	domainerror "github.com/spendly/backend/internal/domain/error"
)

func TestPolicy_Check(t *testing.T) {
	tests := []struct {
		name    string
		policy  Policy
		owner   entity.Owner
		action  Action
		code    domainerror.Code
		message string
	}{
		{
			name:   "owner passes",
			policy: SpendPolicy,
			owner:  entity.UserOwner("user_1"),
			action: ActionUpdate,
		},
		{
			name:    "other user updating spend",
			policy:  SpendPolicy,
			owner:   entity.UserOwner("user_2"),
			action:  ActionUpdate,
			code:    domainerror.CodeNotAuthorizedSpend,
			message: "You are not authorized to update this spend.",
		},
		{
			name:    "other user deleting goal",
			policy:  GoalPolicy,
			owner:   entity.UserOwner("user_2"),
			action:  ActionDelete,
			code:    domainerror.CodeNotAuthorizedGoal,
			message: "You are not authorized to delete this goal.",
		},
		{
			name:    "deleting system category",
			policy:  CategoryPolicy,
			owner:   entity.SystemOwner(),
			action:  ActionDelete,
			code:    domainerror.CodeSystemCategory,
			message: "Cannot delete system categories.",
		},
		{
			name:    "updating system category",
			policy:  CategoryPolicy,
			owner:   entity.SystemOwner(),
			action:  ActionUpdate,
			code:    domainerror.CodeSystemCategory,
			message: "Cannot modify system categories.",
		},
		{
			name:    "other user deleting category",
			policy:  CategoryPolicy,
			owner:   entity.UserOwner("user_2"),
			action:  ActionDelete,
			code:    domainerror.CodeNotAuthorizedCategory,
			message: "You are not authorized to delete this category.",
		},
		{
			name:    "system owner on resource without system messages",
			policy:  GoalPolicy,
			owner:   entity.SystemOwner(),
			action:  ActionAccess,
			code:    domainerror.CodeNotAuthorizedGoal,
			message: "You are not authorized to access this goal.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.policy.Check(tt.owner, "user_1", tt.action)
			if tt.code == "" {
				assert.NoError(t, err)
				return
			}

			de, ok := domainerror.As(err)
			require.True(t, ok)
			assert.Equal(t, domainerror.KindForbidden, de.Kind)
			assert.Equal(t, tt.code, de.Code)
			assert.Equal(t, tt.message, de.Message)
		})
	}
}

func TestOwned(t *testing.T) {
	goal := &entity.Goal{ID: uuid.New(), Owner: entity.UserOwner("user_1")}
	find := func(_ context.Context, id uuid.UUID) (*entity.Goal, error) {
		if id == goal.ID {
			return goal, nil
		}
		return nil, domainerror.ErrRecordNotFound
	}
	ctx := context.Background()

	t.Run("returns owned record", func(t *testing.T) {
		got, err := Owned(ctx, GoalPolicy, goal.ID, "user_1", ActionUpdate, find, GoalOwner)
		require.NoError(t, err)
		assert.Same(t, goal, got)
	})

	t.Run("missing record is not found", func(t *testing.T) {
		_, err := Owned(ctx, GoalPolicy, uuid.New(), "user_1", ActionUpdate, find, GoalOwner)
		assert.True(t, domainerror.IsKind(err, domainerror.KindNotFound))
		assert.ErrorIs(t, err, domainerror.ErrRecordNotFound)
	})

	t.Run("foreign record is forbidden", func(t *testing.T) {
		_, err := Owned(ctx, GoalPolicy, goal.ID, "user_2", ActionUpdate, find, GoalOwner)
		assert.True(t, domainerror.IsKind(err, domainerror.KindForbidden))
	})

	t.Run("other failures pass through", func(t *testing.T) {
		boom := errors.New("connection reset")
		failing := func(context.Context, uuid.UUID) (*entity.Goal, error) { return nil, boom }

		_, err := Owned(ctx, GoalPolicy, goal.ID, "user_1", ActionUpdate, failing, GoalOwner)
		assert.ErrorIs(t, err, boom)
		_, isDomain := domainerror.As(err)
		assert.False(t, isDomain)
	})
}

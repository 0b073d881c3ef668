// Package guard authorizes access to existing records by their owner.
package guard

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/spendly/backend/internal/domain/entity"
	domainerror "github.com/spendly/backend/internal/domain/error"
)

// Action names the operation being authorized.
type Action string

const (
	ActionAccess Action = "access"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Policy describes one resource type for the guard.
type Policy struct {
	// Resource is the lower-case resource name used in messages, e.g. "spend".
	Resource        string
	NotFoundCode    domainerror.Code
	NotFoundMessage string
	ForbiddenCode   domainerror.Code

	// SystemCode and the system messages apply to resources that can be system-owned.
	SystemCode          domainerror.Code
	SystemUpdateMessage string
	SystemDeleteMessage string
}

// CategoryPolicy guards categories, which may be system-owned.
var CategoryPolicy = Policy{
	Resource:            "category",
	NotFoundCode:        domainerror.CodeCategoryNotFound,
	NotFoundMessage:     domainerror.MsgCategoryNotFound,
	ForbiddenCode:       domainerror.CodeNotAuthorizedCategory,
	SystemCode:          domainerror.CodeSystemCategory,
	SystemUpdateMessage: domainerror.MsgModifySystemCategory,
	SystemDeleteMessage: domainerror.MsgDeleteSystemCategory,
}

// SpendPolicy guards spends.
var SpendPolicy = Policy{
	Resource:        "spend",
	NotFoundCode:    domainerror.CodeSpendNotFound,
	NotFoundMessage: domainerror.MsgSpendNotFound,
	ForbiddenCode:   domainerror.CodeNotAuthorizedSpend,
}

// GoalPolicy guards goals and, through them, contributions.
var GoalPolicy = Policy{
	Resource:        "goal",
	NotFoundCode:    domainerror.CodeGoalNotFound,
	NotFoundMessage: domainerror.MsgGoalNotFound,
	ForbiddenCode:   domainerror.CodeNotAuthorizedGoal,
}

// Check returns nil when userID owns the record, and a forbidden error otherwise.
func (p Policy) Check(owner entity.Owner, userID string, action Action) error {
	if owner.IsUser(userID) {
		return nil
	}

	if owner.IsSystem() && p.SystemCode != "" {
		switch action {
		case ActionDelete:
			return domainerror.Forbidden(p.SystemCode, p.SystemDeleteMessage)
		case ActionUpdate:
			return domainerror.Forbidden(p.SystemCode, p.SystemUpdateMessage)
		}
	}

	return domainerror.Forbidden(p.ForbiddenCode,
		fmt.Sprintf("You are not authorized to %s this %s.", action, p.Resource))
}

// NotFound wraps a missing-record error in the policy's not found error.
func (p Policy) NotFound(err error) error {
	return domainerror.NotFound(p.NotFoundCode, p.NotFoundMessage, err)
}

// Owned loads the record with find and checks that userID owns it.
// A missing record yields the policy's not found error.
func Owned[T any](
	ctx context.Context,
	p Policy,
	id uuid.UUID,
	userID string,
	action Action,
	find func(context.Context, uuid.UUID) (T, error),
	owner func(T) entity.Owner,
) (T, error) {
	var zero T

	record, err := find(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrRecordNotFound) {
			return zero, p.NotFound(err)
		}
		return zero, fmt.Errorf("failed to load %s: %w", p.Resource, err)
	}

	if err := p.Check(owner(record), userID, action); err != nil {
		return zero, err
	}

	return record, nil
}

// CategoryOwner returns a category's owner.
func CategoryOwner(c *entity.Category) entity.Owner { return c.Owner }

// SpendOwner returns a spend's owner.
func SpendOwner(s *entity.Spend) entity.Owner { return s.Owner }

// GoalOwner returns a goal's owner.
func GoalOwner(g *entity.Goal) entity.Owner { return g.Owner }

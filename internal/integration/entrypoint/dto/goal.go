package dto

import (
	"time"

	"github.com/spendly/backend/internal/domain/entity"
)

// CreateGoalRequest represents the request body for goal creation.
type CreateGoalRequest struct {
	Name         *string  `json:"name"`
	TargetAmount *float64 `json:"targetAmount"`
	SavedAmount  *float64 `json:"savedAmount,omitempty"`
	TargetDate   *string  `json:"targetDate,omitempty"`
	Icon         *string  `json:"icon,omitempty"`
	Color        *string  `json:"color,omitempty"`
}

// UpdateGoalRequest represents the request body for goal update.
// savedAmount only changes through contributions. Absent fields are left
// unchanged; explicit nulls are rejected.
type UpdateGoalRequest struct {
	Name         *string  `json:"name,omitempty"`
	TargetAmount *float64 `json:"targetAmount,omitempty"`
	TargetDate   *string  `json:"targetDate,omitempty"`
	Icon         *string  `json:"icon,omitempty"`
	Color        *string  `json:"color,omitempty"`
}

// AddContributionRequest represents the request body for a goal contribution.
type AddContributionRequest struct {
	Amount      *float64 `json:"amount"`
	Description *string  `json:"description,omitempty"`
}

// GoalResponse represents a single goal in API responses.
type GoalResponse struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Icon         string     `json:"icon"`
	Color        string     `json:"color"`
	TargetAmount float64    `json:"targetAmount"`
	SavedAmount  float64    `json:"savedAmount"`
	Progress     float64    `json:"progress"`
	IsReached    bool       `json:"isReached"`
	StartDate    time.Time  `json:"startDate"`
	TargetDate   *time.Time `json:"targetDate"`
	CreatedByID  string     `json:"createdById"`
	UpdatedByID  string     `json:"updatedById"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// GoalEnvelope wraps a goal for single-resource endpoints.
type GoalEnvelope struct {
	Goal GoalResponse `json:"goal"`
}

// GoalListResponse represents the response for listing goals.
type GoalListResponse struct {
	Goals      []GoalResponse `json:"goals"`
	TotalCount int            `json:"totalCount"`
}

// ContributionResponse represents a single contribution in API responses.
type ContributionResponse struct {
	ID          string    `json:"id"`
	GoalID      string    `json:"goalId"`
	Amount      float64   `json:"amount"`
	Description *string   `json:"description"`
	CreatedByID string    `json:"createdById"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ContributionCreatedResponse is returned after a contribution is recorded,
// together with the goal's new totals.
type ContributionCreatedResponse struct {
	Contribution ContributionResponse `json:"contribution"`
	Goal         GoalResponse         `json:"goal"`
}

// ContributionListResponse represents the response for listing contributions.
type ContributionListResponse struct {
	Contributions []ContributionResponse `json:"contributions"`
	TotalCount    int                    `json:"totalCount"`
}

// ToGoalResponse converts a domain Goal entity to a GoalResponse DTO.
func ToGoalResponse(g *entity.Goal) GoalResponse {
	return GoalResponse{
		ID:           g.ID.String(),
		Name:         g.Name,
		Icon:         g.Icon,
		Color:        g.Color,
		TargetAmount: g.TargetAmount.InexactFloat64(),
		SavedAmount:  g.SavedAmount.InexactFloat64(),
		Progress:     g.Progress().Round(4).InexactFloat64(),
		IsReached:    g.IsReached(),
		StartDate:    g.StartDate,
		TargetDate:   g.TargetDate,
		CreatedByID:  g.Owner.UserID(),
		UpdatedByID:  g.UpdatedByID,
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}
}

// ToGoalListResponse converts a list of goals to GoalListResponse.
func ToGoalListResponse(list []*entity.Goal) GoalListResponse {
	goals := make([]GoalResponse, len(list))
	for i, g := range list {
		goals[i] = ToGoalResponse(g)
	}
	return GoalListResponse{
		Goals:      goals,
		TotalCount: len(goals),
	}
}

// ToContributionResponse converts a domain Contribution entity to a ContributionResponse DTO.
func ToContributionResponse(c *entity.Contribution) ContributionResponse {
	return ContributionResponse{
		ID:          c.ID.String(),
		GoalID:      c.GoalID.String(),
		Amount:      c.Amount.InexactFloat64(),
		Description: c.Description,
		CreatedByID: c.CreatedByID,
		CreatedAt:   c.CreatedAt,
	}
}

// ToContributionListResponse converts a list of contributions to ContributionListResponse.
func ToContributionListResponse(list []*entity.Contribution) ContributionListResponse {
	contributions := make([]ContributionResponse, len(list))
	for i, c := range list {
		contributions[i] = ToContributionResponse(c)
	}
	return ContributionListResponse{
		Contributions: contributions,
		TotalCount:    len(contributions),
	}
}

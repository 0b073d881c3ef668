package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spendly/backend/internal/application/usecase/goal"
	"github.com/spendly/backend/internal/application/validation"
	domainerror "github.com/spendly/backend/internal/domain/error"
	"github.com/spendly/backend/internal/integration/entrypoint/dto"
	"github.com/spendly/backend/internal/integration/entrypoint/middleware"
)

var (
	listGoalsEndpoint = endpoint{
		resource:        "goals",
		collection:      true,
		internalMessage: "Failed to load goals",
	}
	getGoalEndpoint = endpoint{
		resource:        "goal",
		notFound:        domainerror.CodeGoalNotFound,
		notFoundMessage: domainerror.MsgGoalNotFound,
		internalMessage: "Failed to load goal",
	}
	createGoalEndpoint = endpoint{
		resource:        "goal",
		internalMessage: "Failed to create goal",
	}
	updateGoalEndpoint = endpoint{
		resource:        "goal",
		notFound:        domainerror.CodeGoalNotFound,
		notFoundMessage: domainerror.MsgGoalNotFoundOrDeleted,
		internalMessage: "Failed to update goal due to an internal server error",
	}
	deleteGoalEndpoint = endpoint{
		resource:        "goal",
		notFound:        domainerror.CodeGoalNotFound,
		notFoundMessage: domainerror.MsgGoalNotFoundOrDeleted,
		internalMessage: "Failed to delete goal",
	}
	listContributionsEndpoint = endpoint{
		resource:        "contributions",
		collection:      true,
		notFound:        domainerror.CodeGoalNotFound,
		notFoundMessage: domainerror.MsgGoalNotFound,
		internalMessage: "Failed to fetch contributions",
	}
	addContributionEndpoint = endpoint{
		resource:        "contribution",
		notFound:        domainerror.CodeGoalNotFound,
		notFoundMessage: domainerror.MsgGoalNotFoundOrDeleted,
		internalMessage: "Failed to add contribution",
	}
)

var goalFieldErrors = fieldErrors{
	"name":         domainerror.Validation(domainerror.CodeGoalNameRequired, "Name must be a non-empty string"),
	"targetAmount": domainerror.Validation(domainerror.CodeGoalTargetInvalid, validation.AmountMessage("Target amount")),
	"savedAmount":  domainerror.Validation(domainerror.CodeGoalSavedInvalid, "Saved amount must be a non-negative number"),
	"targetDate":   domainerror.Validation(domainerror.CodeGoalTargetDateInvalid, "Target Date must be a valid date and in the future."),
	"icon":         domainerror.Validation(domainerror.CodeGoalIconInvalid, "Icon must be a non-empty string"),
	"color":        domainerror.Validation(domainerror.CodeGoalColorInvalid, domainerror.MsgInvalidColor),
}

var contributionFieldErrors = fieldErrors{
	"amount":      domainerror.Validation(domainerror.CodeContributionAmount, validation.AmountMessage("Amount")),
	"description": domainerror.Validation(domainerror.CodeContributionDescTooLong, "Description must be a string"),
}

// GoalController handles savings goal and contribution endpoints.
type GoalController struct {
	listUseCase              *goal.ListGoalsUseCase
	getUseCase               *goal.GetGoalUseCase
	createUseCase            *goal.CreateGoalUseCase
	updateUseCase            *goal.UpdateGoalUseCase
	deleteUseCase            *goal.DeleteGoalUseCase
	addContributionUseCase   *goal.AddContributionUseCase
	listContributionsUseCase *goal.ListContributionsUseCase
}

// NewGoalController creates a new goal controller instance.
func NewGoalController(
	listUseCase *goal.ListGoalsUseCase,
	getUseCase *goal.GetGoalUseCase,
	createUseCase *goal.CreateGoalUseCase,
	updateUseCase *goal.UpdateGoalUseCase,
	deleteUseCase *goal.DeleteGoalUseCase,
	addContributionUseCase *goal.AddContributionUseCase,
	listContributionsUseCase *goal.ListContributionsUseCase,
) *GoalController {
	return &GoalController{
		listUseCase:              listUseCase,
		getUseCase:               getUseCase,
		createUseCase:            createUseCase,
		updateUseCase:            updateUseCase,
		deleteUseCase:            deleteUseCase,
		addContributionUseCase:   addContributionUseCase,
		listContributionsUseCase: listContributionsUseCase,
	}
}

// List handles GET /goals requests. With ?id= it returns that single goal.
func (c *GoalController) List(ctx *gin.Context) {
	if _, hasID := ctx.GetQuery("id"); hasID {
		c.Get(ctx)
		return
	}

	user, ok := middleware.GetUserFromContext(ctx)
	if !ok {
		respondError(ctx, listGoalsEndpoint, errNotAuthenticated)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), goal.ListGoalsInput{
		UserID: user.ID,
	})
	if err != nil {
		respondError(ctx, listGoalsEndpoint, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalListResponse(output.Goals))
}

// Get handles GET /goals?id= requests.
func (c *GoalController) Get(ctx *gin.Context) {
	user, ok := middleware.GetUserFromContext(ctx)
	if !ok {
		respondError(ctx, getGoalEndpoint, errNotAuthenticated)
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), goal.GetGoalInput{
		GoalID: ctx.Query("id"),
		UserID: user.ID,
	})
	if err != nil {
		respondError(ctx, getGoalEndpoint, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.GoalEnvelope{Goal: dto.ToGoalResponse(output.Goal)})
}

// Create handles POST /goals requests.
func (c *GoalController) Create(ctx *gin.Context) {
	user, ok := middleware.GetUserFromContext(ctx)
	if !ok {
		respondError(ctx, createGoalEndpoint, errNotAuthenticated)
		return
	}

	var req dto.CreateGoalRequest
	if err := bindJSON(ctx, &req, goalFieldErrors); err != nil {
		respondError(ctx, createGoalEndpoint, err)
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), goal.CreateGoalInput{
		Name:         req.Name,
		TargetAmount: req.TargetAmount,
		SavedAmount:  req.SavedAmount,
		TargetDate:   req.TargetDate,
		Icon:         req.Icon,
		Color:        req.Color,
		UserID:       user.ID,
	})
	if err != nil {
		respondError(ctx, createGoalEndpoint, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.GoalEnvelope{Goal: dto.ToGoalResponse(output.Goal)})
}

// Update handles PUT /goals?id= requests.
func (c *GoalController) Update(ctx *gin.Context) {
	user, ok := middleware.GetUserFromContext(ctx)
	if !ok {
		respondError(ctx, updateGoalEndpoint, errNotAuthenticated)
		return
	}

	var req dto.UpdateGoalRequest
	if err := bindPartialJSON(ctx, &req, goalFieldErrors); err != nil {
		respondError(ctx, updateGoalEndpoint, err)
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), goal.UpdateGoalInput{
		GoalID:       ctx.Query("id"),
		Name:         req.Name,
		TargetAmount: req.TargetAmount,
		TargetDate:   req.TargetDate,
		Icon:         req.Icon,
		Color:        req.Color,
		UserID:       user.ID,
	})
	if err != nil {
		respondError(ctx, updateGoalEndpoint, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.GoalEnvelope{Goal: dto.ToGoalResponse(output.Goal)})
}

// Delete handles DELETE /goals?id= requests. Contributions go with the goal.
func (c *GoalController) Delete(ctx *gin.Context) {
	user, ok := middleware.GetUserFromContext(ctx)
	if !ok {
		respondError(ctx, deleteGoalEndpoint, errNotAuthenticated)
		return
	}

	output, err := c.deleteUseCase.Execute(ctx.Request.Context(), goal.DeleteGoalInput{
		GoalID: ctx.Query("id"),
		UserID: user.ID,
	})
	if err != nil {
		respondError(ctx, deleteGoalEndpoint, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.GoalEnvelope{Goal: dto.ToGoalResponse(output.Goal)})
}

// ListContributions handles GET /goals/contributions/:goalId requests.
func (c *GoalController) ListContributions(ctx *gin.Context) {
	user, ok := middleware.GetUserFromContext(ctx)
	if !ok {
		respondError(ctx, listContributionsEndpoint, errNotAuthenticated)
		return
	}

	output, err := c.listContributionsUseCase.Execute(ctx.Request.Context(), goal.ListContributionsInput{
		GoalID: ctx.Param("goalId"),
		UserID: user.ID,
	})
	if err != nil {
		respondError(ctx, listContributionsEndpoint, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToContributionListResponse(output.Contributions))
}

// AddContribution handles POST /goals/contributions/:goalId requests.
// Reaching the target queues a goal reached email for the caller.
func (c *GoalController) AddContribution(ctx *gin.Context) {
	user, ok := middleware.GetUserFromContext(ctx)
	if !ok {
		respondError(ctx, addContributionEndpoint, errNotAuthenticated)
		return
	}

	var req dto.AddContributionRequest
	if err := bindJSON(ctx, &req, contributionFieldErrors); err != nil {
		respondError(ctx, addContributionEndpoint, err)
		return
	}

	output, err := c.addContributionUseCase.Execute(ctx.Request.Context(), goal.AddContributionInput{
		GoalID:      ctx.Param("goalId"),
		Amount:      req.Amount,
		Description: req.Description,
		UserID:      user.ID,
		UserEmail:   user.Email,
		UserName:    user.DisplayName(),
	})
	if err != nil {
		respondError(ctx, addContributionEndpoint, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ContributionCreatedResponse{
		Contribution: dto.ToContributionResponse(output.Contribution),
		Goal:         dto.ToGoalResponse(output.Goal),
	})
}

package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spendly/backend/internal/application/usecase/spend"
	"github.com/spendly/backend/internal/application/validation"
	domainerror "github.com/spendly/backend/internal/domain/error"
	"github.com/spendly/backend/internal/integration/entrypoint/dto"
	"github.com/spendly/backend/internal/integration/entrypoint/middleware"
)

var (
	listSpendsEndpoint = endpoint{
		resource:        "spends",
		collection:      true,
		internalMessage: "Failed to load expenses",
	}
	getSpendEndpoint = endpoint{
		resource:        "spend",
		notFound:        domainerror.CodeSpendNotFound,
		notFoundMessage: domainerror.MsgSpendNotFound,
		internalMessage: "Failed to load expense",
	}
	createSpendEndpoint = endpoint{
		resource:        "spend",
		internalMessage: "Failed to create spend",
	}
	updateSpendEndpoint = endpoint{
		resource:        "spend",
		notFound:        domainerror.CodeSpendNotFound,
		notFoundMessage: domainerror.MsgSpendNotFoundOrDeleted,
		internalMessage: "Failed to update spend due to an internal server error",
	}
	deleteSpendEndpoint = endpoint{
		resource:        "spend",
		notFound:        domainerror.CodeSpendNotFound,
		notFoundMessage: domainerror.MsgSpendNotFoundOrDeleted,
		internalMessage: "Failed to delete spend due to an internal server error",
	}
	suggestCategoryEndpoint = endpoint{
		resource:        "suggestion",
		internalMessage: "Failed to suggest a category",
	}
)

var spendFieldErrors = fieldErrors{
	"amount":        domainerror.Validation(domainerror.CodeSpendAmountInvalid, validation.AmountMessage("Amount")),
	"description":   domainerror.Validation(domainerror.CodeSpendDescriptionRequired, "Description must be a non-empty string"),
	"categoryId":    domainerror.Validation(domainerror.CodeSpendCategoryInvalid, domainerror.MsgInvalidCategory),
	"paymentMethod": domainerror.Validation(domainerror.CodeSpendPaymentMethodInvalid, validation.PaymentMethodMessage()),
	"date":          domainerror.Validation(domainerror.CodeSpendDateInvalid, "Invalid date"),
	"notes":         domainerror.Validation(domainerror.CodeSpendNotesTooLong, "Notes must be a string"),
}

var suggestionFieldErrors = fieldErrors{
	"description": domainerror.Validation(domainerror.CodeSuggestionDescriptionRequired, "Description must be a non-empty string"),
	"amount":      domainerror.Validation(domainerror.CodeSpendAmountInvalid, validation.AmountMessage("Amount")),
}

// SpendController handles spend endpoints.
type SpendController struct {
	listUseCase    *spend.ListSpendsUseCase
	getUseCase     *spend.GetSpendUseCase
	createUseCase  *spend.CreateSpendUseCase
	updateUseCase  *spend.UpdateSpendUseCase
	deleteUseCase  *spend.DeleteSpendUseCase
	suggestUseCase *spend.SuggestCategoryUseCase
}

// NewSpendController creates a new spend controller instance.
func NewSpendController(
	listUseCase *spend.ListSpendsUseCase,
	getUseCase *spend.GetSpendUseCase,
	createUseCase *spend.CreateSpendUseCase,
	updateUseCase *spend.UpdateSpendUseCase,
	deleteUseCase *spend.DeleteSpendUseCase,
	suggestUseCase *spend.SuggestCategoryUseCase,
) *SpendController {
	return &SpendController{
		listUseCase:    listUseCase,
		getUseCase:     getUseCase,
		createUseCase:  createUseCase,
		updateUseCase:  updateUseCase,
		deleteUseCase:  deleteUseCase,
		suggestUseCase: suggestUseCase,
	}
}

// List handles GET /spends requests. With ?id= it returns that single spend.
// Optional filters: categoryId, paymentMethod, from, to.
func (c *SpendController) List(ctx *gin.Context) {
	if _, hasID := ctx.GetQuery("id"); hasID {
		c.Get(ctx)
		return
	}

	user, ok := middleware.GetUserFromContext(ctx)
	if !ok {
		respondError(ctx, listSpendsEndpoint, errNotAuthenticated)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), spend.ListSpendsInput{
		UserID:        user.ID,
		CategoryID:    ctx.Query("categoryId"),
		PaymentMethod: ctx.Query("paymentMethod"),
		From:          ctx.Query("from"),
		To:            ctx.Query("to"),
	})
	if err != nil {
		respondError(ctx, listSpendsEndpoint, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSpendListResponse(output.Spends))
}

// Get handles GET /spends?id= requests.
func (c *SpendController) Get(ctx *gin.Context) {
	user, ok := middleware.GetUserFromContext(ctx)
	if !ok {
		respondError(ctx, getSpendEndpoint, errNotAuthenticated)
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), spend.GetSpendInput{
		SpendID: ctx.Query("id"),
		UserID:  user.ID,
	})
	if err != nil {
		respondError(ctx, getSpendEndpoint, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SpendEnvelope{Spend: dto.ToSpendResponse(output.Spend)})
}

// Create handles POST /spends requests.
func (c *SpendController) Create(ctx *gin.Context) {
	user, ok := middleware.GetUserFromContext(ctx)
	if !ok {
		respondError(ctx, createSpendEndpoint, errNotAuthenticated)
		return
	}

	var req dto.CreateSpendRequest
	if err := bindJSON(ctx, &req, spendFieldErrors); err != nil {
		respondError(ctx, createSpendEndpoint, err)
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), spend.CreateSpendInput{
		Amount:        req.Amount,
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		PaymentMethod: req.PaymentMethod,
		Date:          req.Date,
		Notes:         req.Notes,
		UserID:        user.ID,
	})
	if err != nil {
		respondError(ctx, createSpendEndpoint, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.SpendEnvelope{Spend: dto.ToSpendResponse(output.Spend)})
}

// Update handles PUT /spends?id= requests.
func (c *SpendController) Update(ctx *gin.Context) {
	user, ok := middleware.GetUserFromContext(ctx)
	if !ok {
		respondError(ctx, updateSpendEndpoint, errNotAuthenticated)
		return
	}

	var req dto.UpdateSpendRequest
	if err := bindPartialJSON(ctx, &req, spendFieldErrors); err != nil {
		respondError(ctx, updateSpendEndpoint, err)
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), spend.UpdateSpendInput{
		SpendID:       ctx.Query("id"),
		Amount:        req.Amount,
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		PaymentMethod: req.PaymentMethod,
		Date:          req.Date,
		Notes:         req.Notes,
		UserID:        user.ID,
	})
	if err != nil {
		respondError(ctx, updateSpendEndpoint, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SpendEnvelope{Spend: dto.ToSpendResponse(output.Spend)})
}

// Delete handles DELETE /spends?id= requests.
func (c *SpendController) Delete(ctx *gin.Context) {
	user, ok := middleware.GetUserFromContext(ctx)
	if !ok {
		respondError(ctx, deleteSpendEndpoint, errNotAuthenticated)
		return
	}

	output, err := c.deleteUseCase.Execute(ctx.Request.Context(), spend.DeleteSpendInput{
		SpendID: ctx.Query("id"),
		UserID:  user.ID,
	})
	if err != nil {
		respondError(ctx, deleteSpendEndpoint, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SpendEnvelope{Spend: dto.ToSpendResponse(output.Spend)})
}

// SuggestCategory handles POST /spends/suggest-category requests.
func (c *SpendController) SuggestCategory(ctx *gin.Context) {
	user, ok := middleware.GetUserFromContext(ctx)
	if !ok {
		respondError(ctx, suggestCategoryEndpoint, errNotAuthenticated)
		return
	}

	var req dto.SuggestCategoryRequest
	if err := bindJSON(ctx, &req, suggestionFieldErrors); err != nil {
		respondError(ctx, suggestCategoryEndpoint, err)
		return
	}

	output, err := c.suggestUseCase.Execute(ctx.Request.Context(), spend.SuggestCategoryInput{
		Description: req.Description,
		Amount:      req.Amount,
		UserID:      user.ID,
	})
	if err != nil {
		respondError(ctx, suggestCategoryEndpoint, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuggestionEnvelope{
		Suggestion: dto.ToSuggestionResponse(output.Category, output.Confidence, output.Reasoning),
	})
}

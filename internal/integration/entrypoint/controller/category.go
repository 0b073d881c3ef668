package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spendly/backend/internal/application/usecase/category"
	domainerror "github.com/spendly/backend/internal/domain/error"
	"github.com/spendly/backend/internal/integration/entrypoint/dto"
	"github.com/spendly/backend/internal/integration/entrypoint/middleware"
)

var (
	listCategoriesEndpoint = endpoint{
		resource:        "categories",
		collection:      true,
		internalMessage: "Failed to load categories",
	}
	createCategoryEndpoint = endpoint{
		resource:        "category",
		internalMessage: "Failed to create category",
	}
	updateCategoryEndpoint = endpoint{
		resource:        "category",
		notFound:        domainerror.CodeCategoryNotFound,
		notFoundMessage: domainerror.MsgCategoryNotFoundOrDeleted,
		internalMessage: "Failed to update category",
	}
	deleteCategoryEndpoint = endpoint{
		resource:        "category",
		notFound:        domainerror.CodeCategoryNotFound,
		notFoundMessage: domainerror.MsgCategoryNotFoundOrDeleted,
		internalMessage: "Failed to delete category",
	}
)

var categoryFieldErrors = fieldErrors{
	"name":  domainerror.Validation(domainerror.CodeCategoryNameRequired, "Name must be a non-empty string"),
	"icon":  domainerror.Validation(domainerror.CodeCategoryIconRequired, "Icon must be a non-empty string"),
	"color": domainerror.Validation(domainerror.CodeInvalidColorFormat, domainerror.MsgInvalidColor),
}

// CategoryController handles category endpoints.
type CategoryController struct {
	listUseCase   *category.ListCategoriesUseCase
	createUseCase *category.CreateCategoryUseCase
	updateUseCase *category.UpdateCategoryUseCase
	deleteUseCase *category.DeleteCategoryUseCase
}

// NewCategoryController creates a new category controller instance.
func NewCategoryController(
	listUseCase *category.ListCategoriesUseCase,
	createUseCase *category.CreateCategoryUseCase,
	updateUseCase *category.UpdateCategoryUseCase,
	deleteUseCase *category.DeleteCategoryUseCase,
) *CategoryController {
	return &CategoryController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /categories requests.
// The caller's own categories and the system categories, by name.
func (c *CategoryController) List(ctx *gin.Context) {
	user, ok := middleware.GetUserFromContext(ctx)
	if !ok {
		respondError(ctx, listCategoriesEndpoint, errNotAuthenticated)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), category.ListCategoriesInput{
		UserID: user.ID,
	})
	if err != nil {
		respondError(ctx, listCategoriesEndpoint, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryListResponse(output.Categories))
}

// Create handles POST /categories requests.
func (c *CategoryController) Create(ctx *gin.Context) {
	user, ok := middleware.GetUserFromContext(ctx)
	if !ok {
		respondError(ctx, createCategoryEndpoint, errNotAuthenticated)
		return
	}

	var req dto.CreateCategoryRequest
	if err := bindJSON(ctx, &req, categoryFieldErrors); err != nil {
		respondError(ctx, createCategoryEndpoint, err)
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), category.CreateCategoryInput{
		Name:   req.Name,
		Icon:   req.Icon,
		Color:  req.Color,
		UserID: user.ID,
	})
	if err != nil {
		respondError(ctx, createCategoryEndpoint, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.CategoryEnvelope{Category: dto.ToCategoryResponse(output.Category)})
}

// Update handles PUT /categories?id= requests.
func (c *CategoryController) Update(ctx *gin.Context) {
	user, ok := middleware.GetUserFromContext(ctx)
	if !ok {
		respondError(ctx, updateCategoryEndpoint, errNotAuthenticated)
		return
	}

	var req dto.UpdateCategoryRequest
	if err := bindPartialJSON(ctx, &req, categoryFieldErrors); err != nil {
		respondError(ctx, updateCategoryEndpoint, err)
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), category.UpdateCategoryInput{
		CategoryID: ctx.Query("id"),
		Name:       req.Name,
		Icon:       req.Icon,
		Color:      req.Color,
		UserID:     user.ID,
	})
	if err != nil {
		respondError(ctx, updateCategoryEndpoint, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CategoryEnvelope{Category: dto.ToCategoryResponse(output.Category)})
}

// Delete handles DELETE /categories?id= requests.
func (c *CategoryController) Delete(ctx *gin.Context) {
	user, ok := middleware.GetUserFromContext(ctx)
	if !ok {
		respondError(ctx, deleteCategoryEndpoint, errNotAuthenticated)
		return
	}

	output, err := c.deleteUseCase.Execute(ctx.Request.Context(), category.DeleteCategoryInput{
		CategoryID: ctx.Query("id"),
		UserID:     user.ID,
	})
	if err != nil {
		respondError(ctx, deleteCategoryEndpoint, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CategoryEnvelope{Category: dto.ToCategoryResponse(output.Category)})
}

package controllers

import (
	"net/http"

	"hospital-maintenance/internal/dto"
	"hospital-maintenance/internal/services"
	"hospital-maintenance/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type CategoryController struct {
	categoryService *services.CategoryService
	logger          *zap.Logger
}

func NewCategoryController(categoryService *services.CategoryService, logger *zap.Logger) *CategoryController {
	return &CategoryController{categoryService: categoryService, logger: logger}
}

func (c *CategoryController) GetCategories(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	categories, total, err := c.categoryService.GetCategories(reqCtx, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, categories, "categories fetched", http.StatusOK, total)
}

func (c *CategoryController) FindCategory(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	category, err := c.categoryService.FindCategory(reqCtx, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, category, "category found", http.StatusOK)
}

func (c *CategoryController) CreateCategory(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.CreateCategoryDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	created, err := c.categoryService.CreateCategory(reqCtx, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, created, "category created", http.StatusCreated)
}

func (c *CategoryController) UpdateCategory(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateCategoryDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	updated, err := c.categoryService.UpdateCategory(reqCtx, id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, updated, "category updated", http.StatusOK)
}

func (c *CategoryController) DeleteCategory(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.categoryService.DeleteCategory(reqCtx, id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "category deleted", http.StatusOK)
}

package controllers

import (
	"net/http"

	"hospital-maintenance/internal/dto"
	"hospital-maintenance/internal/services"
	"hospital-maintenance/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type LocationController struct {
	locationService *services.LocationService
	logger          *zap.Logger
}

func NewLocationController(locationService *services.LocationService, logger *zap.Logger) *LocationController {
	return &LocationController{locationService: locationService, logger: logger}
}

func (c *LocationController) GetLocations(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	locations, total, err := c.locationService.GetLocations(reqCtx, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, locations, "locations fetched", http.StatusOK, total)
}

func (c *LocationController) FindLocation(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	location, err := c.locationService.FindLocation(reqCtx, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, location, "location found", http.StatusOK)
}

func (c *LocationController) CreateLocation(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.CreateLocationDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	created, err := c.locationService.CreateLocation(reqCtx, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, created, "location created", http.StatusCreated)
}

func (c *LocationController) UpdateLocation(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateLocationDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	updated, err := c.locationService.UpdateLocation(reqCtx, id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, updated, "location updated", http.StatusOK)
}

func (c *LocationController) DeleteLocation(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.locationService.DeleteLocation(reqCtx, id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "location deleted", http.StatusOK)
}

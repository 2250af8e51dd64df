package controllers

import (
	"net/http"
	"strconv"

	"hospital-maintenance/internal/services"
	"hospital-maintenance/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ActivityController struct {
	activityService *services.ActivityService
	logger          *zap.Logger
}

func NewActivityController(activityService *services.ActivityService, logger *zap.Logger) *ActivityController {
	return &ActivityController{activityService: activityService, logger: logger}
}

func (c *ActivityController) GetRecentActivity(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	limit := 0
	if limitStr := ctx.QueryParam("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil {
			limit = parsed
		}
	}

	activities, err := c.activityService.GetRecentActivity(reqCtx, limit)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, activities, "recent activity fetched", http.StatusOK)
}

func (c *ActivityController) GetActivityByEquipment(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	equipmentID, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	limit := 0
	if limitStr := ctx.QueryParam("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil {
			limit = parsed
		}
	}

	activities, err := c.activityService.GetActivityByEquipment(reqCtx, equipmentID, limit)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, activities, "equipment activity fetched", http.StatusOK)
}

package controllers

import (
	"net/http"

	"hospital-maintenance/internal/dto"
	"hospital-maintenance/internal/services"
	apperrors "hospital-maintenance/pkg/errors"
	"hospital-maintenance/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type MaintenanceController struct {
	maintenanceService *services.MaintenanceService
	logger             *zap.Logger
}

func NewMaintenanceController(maintenanceService *services.MaintenanceService, logger *zap.Logger) *MaintenanceController {
	return &MaintenanceController{maintenanceService: maintenanceService, logger: logger}
}

func (c *MaintenanceController) GetMaintenanceRecords(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	records, total, err := c.maintenanceService.GetMaintenanceRecords(reqCtx, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, records, "maintenance records fetched", http.StatusOK, total)
}

func (c *MaintenanceController) GetByStatus(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	status := dto.MaintenanceStatus(ctx.Param("status"))
	switch status {
	case dto.MaintenanceScheduled, dto.MaintenanceInProgress, dto.MaintenanceCompleted, dto.MaintenanceCancelled:
	default:
		return utils.ErrorResponse(ctx,
			apperrors.NewInvalidInputError("unknown maintenance status %q", status), c.logger)
	}

	records, err := c.maintenanceService.GetByStatus(reqCtx, status)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, records, "maintenance records fetched", http.StatusOK)
}

func (c *MaintenanceController) GetByEquipment(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	equipmentID, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	records, err := c.maintenanceService.GetByEquipment(reqCtx, equipmentID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, records, "maintenance records fetched", http.StatusOK)
}

func (c *MaintenanceController) FindMaintenanceRecord(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	record, err := c.maintenanceService.FindMaintenanceRecord(reqCtx, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, record, "maintenance record found", http.StatusOK)
}

func (c *MaintenanceController) ScheduleMaintenance(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.ScheduleMaintenanceDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	created, err := c.maintenanceService.ScheduleMaintenance(reqCtx, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, created, "maintenance scheduled", http.StatusCreated)
}

func (c *MaintenanceController) UpdateMaintenance(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateMaintenanceDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	updated, err := c.maintenanceService.UpdateMaintenance(reqCtx, id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, updated, "maintenance record updated", http.StatusOK)
}

func (c *MaintenanceController) StartMaintenance(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.StartMaintenanceDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	started, err := c.maintenanceService.StartMaintenance(reqCtx, id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, started, "maintenance started", http.StatusOK)
}

func (c *MaintenanceController) CompleteMaintenance(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.CompleteMaintenanceDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	completed, err := c.maintenanceService.CompleteMaintenance(reqCtx, id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, completed, "maintenance completed", http.StatusOK)
}

func (c *MaintenanceController) CancelMaintenance(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.CancelMaintenanceDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	cancelled, err := c.maintenanceService.CancelMaintenance(reqCtx, id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, cancelled, "maintenance cancelled", http.StatusOK)
}

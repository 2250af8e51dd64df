package routes

import (
	"hospital-maintenance/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runMaintenanceRouter(api *echo.Group, ctrl *controllers.MaintenanceController) {
	api.GET("/maintenance", ctrl.GetMaintenanceRecords)
	api.GET("/maintenance/status/:status", ctrl.GetByStatus)
	api.GET("/maintenance/:id", ctrl.FindMaintenanceRecord)
	api.POST("/maintenance", ctrl.ScheduleMaintenance)
	api.PUT("/maintenance/:id", ctrl.UpdateMaintenance)
	api.PATCH("/maintenance/:id/start", ctrl.StartMaintenance)
	api.PATCH("/maintenance/:id/complete", ctrl.CompleteMaintenance)
	api.PATCH("/maintenance/:id/cancel", ctrl.CancelMaintenance)
}

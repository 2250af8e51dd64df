package routes

import (
	"hospital-maintenance/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runEquipmentRouter(
	api *echo.Group,
	ctrl *controllers.EquipmentController,
	maintenanceCtrl *controllers.MaintenanceController,
	issueCtrl *controllers.IssueController,
	activityCtrl *controllers.ActivityController,
) {
	api.GET("/equipment", ctrl.GetEquipment)
	api.GET("/equipment/maintenance-due", ctrl.GetMaintenanceDue)
	api.GET("/equipment/code/:code", ctrl.FindEquipmentByCode)
	api.GET("/equipment/:id", ctrl.FindEquipment)
	api.GET("/equipment/:id/overlay", ctrl.GetEquipmentOverlay)
	api.GET("/equipment/:id/issues", issueCtrl.GetIssuesByEquipment)
	api.GET("/equipment/:id/maintenance", maintenanceCtrl.GetByEquipment)
	api.GET("/equipment/:id/activity", activityCtrl.GetActivityByEquipment)
	api.POST("/equipment", ctrl.CreateEquipment)
	api.PUT("/equipment/:id", ctrl.UpdateEquipment)
	api.PATCH("/equipment/:id/status", ctrl.UpdateEquipmentStatus)
	api.DELETE("/equipment/:id", ctrl.DeleteEquipment)
}

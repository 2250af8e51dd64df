package routes

import (
	"hospital-maintenance/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runLocationRouter(api *echo.Group, ctrl *controllers.LocationController, equipmentCtrl *controllers.EquipmentController) {
	api.GET("/locations", ctrl.GetLocations)
	api.GET("/locations/:id", ctrl.FindLocation)
	api.GET("/locations/:id/equipment", equipmentCtrl.GetEquipmentByLocation)
	api.POST("/locations", ctrl.CreateLocation)
	api.PUT("/locations/:id", ctrl.UpdateLocation)
	api.DELETE("/locations/:id", ctrl.DeleteLocation)
}

package routes

import (
	"hospital-maintenance/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runActivityRouter(api *echo.Group, ctrl *controllers.ActivityController) {
	api.GET("/activity/recent", ctrl.GetRecentActivity)
	api.GET("/activity/equipment/:id", ctrl.GetActivityByEquipment)
}

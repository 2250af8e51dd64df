package routes

import (
	"hospital-maintenance/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runCategoryRouter(api *echo.Group, ctrl *controllers.CategoryController) {
	api.GET("/categories", ctrl.GetCategories)
	api.GET("/categories/:id", ctrl.FindCategory)
	api.POST("/categories", ctrl.CreateCategory)
	api.PUT("/categories/:id", ctrl.UpdateCategory)
	api.DELETE("/categories/:id", ctrl.DeleteCategory)
}

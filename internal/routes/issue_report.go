package routes

import (
	"hospital-maintenance/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runIssueReportRouter(api *echo.Group, ctrl *controllers.IssueReportController) {
	api.POST("/issue-reports", ctrl.ReportIssue)
	api.GET("/issue-reports", ctrl.GetIssueReports)
	api.GET("/issue-reports/:id", ctrl.GetIssueReport)
	api.GET("/equipment/:id/photos", ctrl.GetEquipmentPhotos)
}

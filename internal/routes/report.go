package routes

import (
	"hospital-maintenance/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runReportRouter(api *echo.Group, ctrl *controllers.ReportController) {
	api.GET("/reports/issues", ctrl.GetIssuesReport)
	api.GET("/reports/issues/stats", ctrl.GetIssueStats)
	api.GET("/reports/issues/open-by-hospital", ctrl.GetOpenIssuesByHospital)
}

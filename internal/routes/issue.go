package routes

import (
	"hospital-maintenance/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runIssueRouter(api *echo.Group, ctrl *controllers.IssueController, reportCtrl *controllers.IssueReportController) {
	api.GET("/issues", ctrl.GetIssues)
	api.GET("/issues/open", ctrl.GetOpenIssues)
	api.GET("/issues/:id", ctrl.FindIssue)
	api.GET("/issues/:id/whatsapp-link", reportCtrl.GetWhatsAppLink)
	api.POST("/issues", ctrl.CreateIssue)
	api.POST("/issues/:id/photos", reportCtrl.AddPhotosToIssue)
	api.PUT("/issues/:id", ctrl.UpdateIssue)
	api.PATCH("/issues/:id/status", ctrl.UpdateIssueStatus)
	api.PATCH("/issues/:id/assign", ctrl.AssignIssue)
	api.PATCH("/issues/:id/resolve", ctrl.ResolveIssue)
	api.DELETE("/issues/:id", ctrl.DeleteIssue)
}

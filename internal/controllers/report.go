package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"hospital-maintenance/internal/dto"
	"hospital-maintenance/internal/services"
	"hospital-maintenance/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type ReportController struct {
	reportService *services.ReportService
	logger        *zap.Logger
}

func NewReportController(reportService *services.ReportService, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

func (c *ReportController) GetIssuesReport(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	format := strings.ToLower(ctx.QueryParam("format"))

	issues, err := c.reportService.GetIssuesReport(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if format == "xlsx" {
		return c.respondWithXLSX(ctx, issues)
	}
	return utils.SuccessResponse(ctx, issues, "issues report built", http.StatusOK)
}

func (c *ReportController) GetIssueStats(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	stats, err := c.reportService.GetIssueStatsByHospital(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, stats, "issue statistics built", http.StatusOK)
}

func (c *ReportController) GetOpenIssuesByHospital(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	groups, err := c.reportService.GetOpenIssuesByHospital(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, groups, "open issues grouped", http.StatusOK)
}

var issueReportHeaders = []string{
	"Hospital", "Equipment", "Code", "Title", "Severity", "Status",
	"Reported By", "Reported At", "Assigned To", "Resolved At", "Resolution Notes",
}

func issueRowToSlice(issue dto.IssueDetailsDTO) []interface{} {
	formatTime := func(t *time.Time) string {
		if t != nil {
			return t.Format("2006-01-02 15:04")
		}
		return ""
	}
	return []interface{}{
		utils.SafeDeref(issue.HospitalName), utils.SafeDeref(issue.EquipmentName), utils.SafeDeref(issue.EquipmentCode),
		issue.Title, string(issue.Severity), string(issue.Status),
		issue.ReportedBy, issue.ReportedAt.Format("2006-01-02 15:04"),
		utils.SafeDeref(issue.AssignedTo), formatTime(issue.ResolvedAt), utils.SafeDeref(issue.ResolutionNotes),
	}
}

func (c *ReportController) respondWithXLSX(ctx echo.Context, issues []dto.IssueDetailsDTO) error {
	f := excelize.NewFile()
	sheet := "Issues"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &issueReportHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "K1", style)

	for i, issue := range issues {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := issueRowToSlice(issue)
		f.SetSheetRow(sheet, cell, &row)
	}
	f.SetColWidth(sheet, "A", "B", 25)
	f.SetColWidth(sheet, "D", "D", 40)
	f.SetColWidth(sheet, "G", "J", 20)
	f.SetColWidth(sheet, "K", "K", 50)

	fileName := fmt.Sprintf("issues_report_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}

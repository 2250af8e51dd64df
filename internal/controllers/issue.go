package controllers

import (
	"net/http"

	"hospital-maintenance/internal/dto"
	"hospital-maintenance/internal/services"
	"hospital-maintenance/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type IssueController struct {
	issueService *services.IssueService
	logger       *zap.Logger
}

func NewIssueController(issueService *services.IssueService, logger *zap.Logger) *IssueController {
	return &IssueController{issueService: issueService, logger: logger}
}

func (c *IssueController) GetIssues(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	issues, total, err := c.issueService.GetIssues(reqCtx, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, issues, "issues fetched", http.StatusOK, total)
}

func (c *IssueController) GetOpenIssues(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	issues, err := c.issueService.GetOpenIssues(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, issues, "open issues fetched", http.StatusOK)
}

func (c *IssueController) GetIssuesByEquipment(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	equipmentID, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	issues, err := c.issueService.GetIssuesByEquipment(reqCtx, equipmentID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, issues, "issues fetched", http.StatusOK)
}

func (c *IssueController) FindIssue(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	issue, err := c.issueService.FindIssue(reqCtx, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, issue, "issue found", http.StatusOK)
}

func (c *IssueController) CreateIssue(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.CreateIssueDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if payload.Status == "" {
		payload.Status = dto.IssueReported
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	created, err := c.issueService.CreateIssue(reqCtx, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, created, "issue created", http.StatusCreated)
}

func (c *IssueController) UpdateIssue(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateIssueDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	updated, err := c.issueService.UpdateIssue(reqCtx, id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, updated, "issue updated", http.StatusOK)
}

func (c *IssueController) UpdateIssueStatus(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateIssueStatusDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	updated, err := c.issueService.UpdateIssueStatus(reqCtx, id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, updated, "issue status updated", http.StatusOK)
}

func (c *IssueController) AssignIssue(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.AssignIssueDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	updated, err := c.issueService.AssignIssue(reqCtx, id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, updated, "issue assigned", http.StatusOK)
}

func (c *IssueController) ResolveIssue(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.ResolveIssueDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	resolved, err := c.issueService.ResolveIssue(reqCtx, id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, resolved, "issue resolved", http.StatusOK)
}

func (c *IssueController) DeleteIssue(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.issueService.DeleteIssue(reqCtx, id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "issue deleted", http.StatusOK)
}

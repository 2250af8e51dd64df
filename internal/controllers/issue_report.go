package controllers

import (
	"mime/multipart"
	"net/http"

	"hospital-maintenance/internal/dto"
	"hospital-maintenance/internal/services"
	apperrors "hospital-maintenance/pkg/errors"
	"hospital-maintenance/pkg/photostorage"
	"hospital-maintenance/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// IssueReportController handles the multipart walk-up report: form fields plus
// zero or more photos under the "photos" key.
type IssueReportController struct {
	issueReportService *services.IssueReportService
	logger             *zap.Logger
}

func NewIssueReportController(issueReportService *services.IssueReportService, logger *zap.Logger) *IssueReportController {
	return &IssueReportController{issueReportService: issueReportService, logger: logger}
}

// openPhotos turns the uploaded form files into storage files. The returned
// closer must run after the upload finished.
func openPhotos(ctx echo.Context) ([]photostorage.File, func(), error) {
	form, err := ctx.MultipartForm()
	if err != nil {
		if err == http.ErrNotMultipart {
			return nil, func() {}, nil
		}
		return nil, nil, apperrors.NewHttpError(http.StatusBadRequest, "malformed multipart form", err, nil)
	}

	headers := form.File["photos"]
	files := make([]photostorage.File, 0, len(headers))
	opened := make([]multipart.File, 0, len(headers))
	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}

	for _, header := range headers {
		src, err := header.Open()
		if err != nil {
			closeAll()
			return nil, nil, apperrors.NewHttpError(http.StatusBadRequest, "unreadable photo upload", err, nil)
		}
		opened = append(opened, src)
		files = append(files, photostorage.File{Name: header.Filename, Content: src})
	}
	return files, closeAll, nil
}

func (c *IssueReportController) ReportIssue(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.CreateIssueReportDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	photos, closePhotos, err := openPhotos(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	defer closePhotos()

	issue, err := c.issueReportService.ReportIssue(reqCtx, payload, photos)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, issue, "issue reported", http.StatusCreated)
}

func (c *IssueReportController) AddPhotosToIssue(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	photos, closePhotos, err := openPhotos(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	defer closePhotos()

	issue, err := c.issueReportService.AddPhotosToIssue(reqCtx, id, photos)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, issue, "photos added", http.StatusOK)
}

func (c *IssueReportController) GetEquipmentPhotos(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	urls, err := c.issueReportService.ListEquipmentPhotos(reqCtx, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, urls, "photos fetched", http.StatusOK)
}

func (c *IssueReportController) GetIssueReports(ctx echo.Context) error {
	reports, err := c.issueReportService.GetAllIssueReportsWithDetails(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, reports, "issue reports fetched", http.StatusOK)
}

func (c *IssueReportController) GetIssueReport(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	report, err := c.issueReportService.GetIssueReportWithDetails(reqCtx, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, report, "issue report fetched", http.StatusOK)
}

func (c *IssueReportController) GetWhatsAppLink(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	link, err := c.issueReportService.WhatsAppLinkForIssue(reqCtx, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, map[string]string{"link": link}, "notification link built", http.StatusOK)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"hospital-maintenance/internal/dto"
	"hospital-maintenance/internal/repositories"
	apperrors "hospital-maintenance/pkg/errors"
	"hospital-maintenance/pkg/notifier"
	"hospital-maintenance/pkg/photostorage"

	"go.uber.org/zap"
)

// DeriveEquipmentStatus maps the severity of a fresh issue onto the equipment
// status it forces: critical and major take the unit out for repair, anything
// lighter schedules maintenance.
func DeriveEquipmentStatus(severity dto.IssueSeverity) dto.EquipmentStatus {
	switch severity {
	case dto.SeverityCritical, dto.SeverityMajor:
		return dto.EquipmentRepair
	default:
		return dto.EquipmentMaintenance
	}
}

// reportStep is one stage of the issue-report workflow. A critical step that
// fails aborts the whole report; a best-effort step only logs.
type reportStep struct {
	name     string
	critical bool
	run      func(ctx context.Context) error
}

// IssueReportService runs the walk-up reporting flow: a nurse scans the
// equipment label, attaches photos and describes the problem in one request.
type IssueReportService struct {
	equipmentRepository repositories.EquipmentRepositoryInterface
	issueRepository     repositories.IssueRepositoryInterface
	activityService     *ActivityService
	photoStorage        photostorage.PhotoStorageInterface
	notifierService     notifier.ServiceInterface
	logger              *zap.Logger
}

func NewIssueReportService(
	equipmentRepository repositories.EquipmentRepositoryInterface,
	issueRepository repositories.IssueRepositoryInterface,
	activityService *ActivityService,
	photoStorage photostorage.PhotoStorageInterface,
	notifierService notifier.ServiceInterface,
	logger *zap.Logger,
) *IssueReportService {
	return &IssueReportService{
		equipmentRepository: equipmentRepository,
		issueRepository:     issueRepository,
		activityService:     activityService,
		photoStorage:        photoStorage,
		notifierService:     notifierService,
		logger:              logger,
	}
}

func (s *IssueReportService) runSteps(ctx context.Context, steps []reportStep) error {
	for _, step := range steps {
		if err := step.run(ctx); err != nil {
			if step.critical {
				return err
			}
			s.logger.Warn("issue report step failed, continuing", zap.String("step", step.name), zap.Error(err))
		}
	}
	return nil
}

// ReportIssue executes the workflow. Photo upload, equipment lookup and issue
// creation must all succeed; the status derivation, activity entry and
// engineer notification never fail the report.
func (s *IssueReportService) ReportIssue(ctx context.Context, payload dto.CreateIssueReportDTO, photos []photostorage.File) (*dto.IssueDTO, error) {
	severity := dto.IssueSeverity(payload.Severity)
	if severity == "" {
		severity = dto.SeverityModerate
	}

	var (
		photoURLs []string
		equipment *dto.EquipmentDTO
		issue     *dto.IssueDTO
	)

	steps := []reportStep{
		{
			name:     "upload photos",
			critical: true,
			run: func(ctx context.Context) error {
				if len(photos) == 0 {
					photoURLs = []string{}
					return nil
				}
				urls, err := s.photoStorage.UploadMany(ctx, photos, payload.EquipmentCode)
				if err != nil {
					return apperrors.NewHttpError(http.StatusBadGateway, "failed to store photos", err, nil)
				}
				photoURLs = urls
				return nil
			},
		},
		{
			name:     "resolve equipment",
			critical: true,
			run: func(ctx context.Context) error {
				found, err := s.equipmentRepository.FindEquipmentByCode(ctx, payload.EquipmentCode)
				if err != nil {
					s.cleanupPhotos(ctx, photoURLs)
					if errors.Is(err, apperrors.ErrNotFound) {
						return apperrors.NewHttpError(http.StatusNotFound,
							fmt.Sprintf("no equipment registered with code %s", payload.EquipmentCode), err, nil)
					}
					return err
				}
				equipment = found
				return nil
			},
		},
		{
			name:     "create issue",
			critical: true,
			run: func(ctx context.Context) error {
				created, err := s.issueRepository.CreateIssue(ctx, dto.CreateIssueDTO{
					EquipmentID: equipment.ID,
					Title:       fmt.Sprintf("Issue reported for %s", equipment.Name),
					Description: payload.Description,
					Severity:    severity,
					Status:      dto.IssueReported,
					ReportedBy:  payload.ReportedBy,
					Attachments: photoURLs,
				})
				if err != nil {
					s.cleanupPhotos(ctx, photoURLs)
					return err
				}
				issue = created
				return nil
			},
		},
		{
			name:     "derive equipment status",
			critical: false,
			run: func(ctx context.Context) error {
				return s.equipmentRepository.UpdateEquipmentStatus(ctx, equipment.ID, DeriveEquipmentStatus(severity))
			},
		},
		{
			name:     "append activity log",
			critical: false,
			run: func(ctx context.Context) error {
				s.activityService.LogIssueReported(ctx, *issue, equipment.Name)
				return nil
			},
		},
		{
			name:     "notify engineer",
			critical: false,
			run: func(ctx context.Context) error {
				return s.notifierService.SendIssueAlert(ctx, s.buildAlert(*equipment, *issue))
			},
		},
	}

	if err := s.runSteps(ctx, steps); err != nil {
		return nil, err
	}

	s.logger.Info("issue reported",
		zap.String("issue_id", issue.ID),
		zap.String("equipment_code", equipment.EquipmentCode),
		zap.String("severity", string(severity)),
	)
	return issue, nil
}

// AddPhotosToIssue uploads more photos and appends their URLs to the issue's
// attachments.
func (s *IssueReportService) AddPhotosToIssue(ctx context.Context, issueID string, photos []photostorage.File) (*dto.IssueDTO, error) {
	if len(photos) == 0 {
		return nil, apperrors.NewInvalidInputError("no photos supplied")
	}

	current, err := s.issueRepository.FindIssue(ctx, issueID)
	if err != nil {
		return nil, err
	}

	code := "unassigned"
	if current.EquipmentCode != nil {
		code = *current.EquipmentCode
	}
	urls, err := s.photoStorage.UploadMany(ctx, photos, code)
	if err != nil {
		return nil, apperrors.NewHttpError(http.StatusBadGateway, "failed to store photos", err, nil)
	}

	attachments := append(current.Attachments, urls...)
	updated, err := s.issueRepository.UpdateIssue(ctx, issueID, dto.UpdateIssueDTO{Attachments: &attachments})
	if err != nil {
		s.cleanupPhotos(ctx, urls)
		return nil, err
	}
	return updated, nil
}

// ListEquipmentPhotos returns every stored photo URL under the equipment's
// namespace, including ones whose issues were deleted.
func (s *IssueReportService) ListEquipmentPhotos(ctx context.Context, equipmentID string) ([]string, error) {
	equipment, err := s.equipmentRepository.FindEquipment(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	return s.photoStorage.ListForEquipment(ctx, equipment.EquipmentCode)
}

func (s *IssueReportService) GetIssueReportWithDetails(ctx context.Context, issueID string) (*dto.IssueDetailsDTO, error) {
	return s.issueRepository.FindIssue(ctx, issueID)
}

func (s *IssueReportService) GetAllIssueReportsWithDetails(ctx context.Context) ([]dto.IssueDetailsDTO, error) {
	return s.issueRepository.GetIssuesWithDetails(ctx)
}

// WhatsAppLinkForIssue rebuilds the wa.me deep link for an existing issue so
// the frontend can re-offer the manual send action.
func (s *IssueReportService) WhatsAppLinkForIssue(ctx context.Context, issueID string) (string, error) {
	details, err := s.issueRepository.FindIssue(ctx, issueID)
	if err != nil {
		return "", err
	}

	alert := notifier.IssueAlert{
		LocationName:  "Unknown",
		EquipmentName: "Unknown",
		EquipmentCode: "",
		Description:   details.Description,
		ReportedBy:    details.ReportedBy,
		ReportedAt:    details.ReportedAt,
	}
	if details.HospitalName != nil {
		alert.LocationName = *details.HospitalName
	}
	if details.EquipmentName != nil {
		alert.EquipmentName = *details.EquipmentName
	}
	if details.EquipmentCode != nil {
		alert.EquipmentCode = *details.EquipmentCode
	}
	return s.notifierService.WhatsAppLink(alert), nil
}

func (s *IssueReportService) buildAlert(equipment dto.EquipmentDTO, issue dto.IssueDTO) notifier.IssueAlert {
	locationName := "Unknown"
	if equipment.LocationName != nil {
		locationName = *equipment.LocationName
	}
	return notifier.IssueAlert{
		LocationName:  locationName,
		EquipmentName: equipment.Name,
		EquipmentCode: equipment.EquipmentCode,
		Description:   issue.Description,
		ReportedBy:    issue.ReportedBy,
		ReportedAt:    issue.ReportedAt,
	}
}

// cleanupPhotos removes uploads left behind by an aborted report.
func (s *IssueReportService) cleanupPhotos(ctx context.Context, urls []string) {
	if len(urls) == 0 {
		return
	}
	if err := s.photoStorage.DeleteMany(ctx, urls); err != nil {
		s.logger.Warn("failed to clean up orphaned photos", zap.Error(err))
	}
}

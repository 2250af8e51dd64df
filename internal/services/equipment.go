package services

import (
	"context"
	"errors"
	"time"

	"hospital-maintenance/internal/dto"
	"hospital-maintenance/internal/repositories"
	apperrors "hospital-maintenance/pkg/errors"
	"hospital-maintenance/pkg/types"

	"go.uber.org/zap"
)

const defaultMaintenanceDueDays = 7

type EquipmentService struct {
	equipmentRepository repositories.EquipmentRepositoryInterface
	issueRepository     repositories.IssueRepositoryInterface
	activityService     *ActivityService
	logger              *zap.Logger
}

func NewEquipmentService(
	equipmentRepository repositories.EquipmentRepositoryInterface,
	issueRepository repositories.IssueRepositoryInterface,
	activityService *ActivityService,
	logger *zap.Logger,
) *EquipmentService {
	return &EquipmentService{
		equipmentRepository: equipmentRepository,
		issueRepository:     issueRepository,
		activityService:     activityService,
		logger:              logger,
	}
}

func (s *EquipmentService) GetEquipment(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, uint64, error) {
	return s.equipmentRepository.GetEquipment(ctx, filter)
}

func (s *EquipmentService) FindEquipment(ctx context.Context, id string) (*dto.EquipmentDTO, error) {
	return s.equipmentRepository.FindEquipment(ctx, id)
}

func (s *EquipmentService) FindEquipmentByCode(ctx context.Context, code string) (*dto.EquipmentDTO, error) {
	return s.equipmentRepository.FindEquipmentByCode(ctx, code)
}

func (s *EquipmentService) GetEquipmentByLocation(ctx context.Context, locationID string) ([]dto.EquipmentDTO, error) {
	return s.equipmentRepository.GetEquipmentByLocation(ctx, locationID)
}

// GetMaintenanceDue lists equipment whose next maintenance falls within the
// given number of days from now.
func (s *EquipmentService) GetMaintenanceDue(ctx context.Context, days int) ([]dto.EquipmentDTO, error) {
	if days <= 0 {
		days = defaultMaintenanceDueDays
	}
	until := time.Now().AddDate(0, 0, days)
	return s.equipmentRepository.GetMaintenanceDue(ctx, until)
}

// GetEquipmentOverlay enriches the equipment record with its latest open
// issue, when one exists. Equipment with no open issue is returned as-is.
func (s *EquipmentService) GetEquipmentOverlay(ctx context.Context, id string) (*dto.EquipmentWithIssueDTO, error) {
	equipment, err := s.equipmentRepository.FindEquipment(ctx, id)
	if err != nil {
		return nil, err
	}

	overlay := dto.EquipmentWithIssueDTO{
		EquipmentDTO: *equipment,
		Images:       []string{},
	}

	issue, err := s.issueRepository.FindLatestOpenByEquipment(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &overlay, nil
		}
		return nil, err
	}

	overlay.IssueDescription = &issue.Description
	overlay.ReportedBy = &issue.ReportedBy
	if len(issue.Attachments) > 0 {
		overlay.Images = issue.Attachments
	}
	return &overlay, nil
}

func (s *EquipmentService) CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error) {
	created, err := s.equipmentRepository.CreateEquipment(ctx, payload)
	if err != nil {
		s.logger.Error("failed to create equipment", zap.Error(err), zap.String("equipment_code", payload.EquipmentCode))
		return nil, err
	}
	s.activityService.LogEquipmentAdded(ctx, *created)
	s.logger.Info("equipment created", zap.String("id", created.ID), zap.String("equipment_code", created.EquipmentCode))
	return created, nil
}

func (s *EquipmentService) UpdateEquipment(ctx context.Context, id string, payload dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, error) {
	updated, err := s.equipmentRepository.UpdateEquipment(ctx, id, payload)
	if err != nil {
		return nil, err
	}
	s.activityService.LogEquipmentUpdated(ctx, *updated)
	return updated, nil
}

func (s *EquipmentService) UpdateEquipmentStatus(ctx context.Context, id string, payload dto.UpdateEquipmentStatusDTO) (*dto.EquipmentDTO, error) {
	current, err := s.equipmentRepository.FindEquipment(ctx, id)
	if err != nil {
		return nil, err
	}

	target := dto.EquipmentStatus(payload.Status)
	if current.Status == target {
		return current, nil
	}

	if err := s.equipmentRepository.UpdateEquipmentStatus(ctx, id, target); err != nil {
		return nil, err
	}
	s.activityService.LogEquipmentStatusChange(ctx, id, current.Status, target)

	return s.equipmentRepository.FindEquipment(ctx, id)
}

func (s *EquipmentService) DeleteEquipment(ctx context.Context, id string) error {
	return s.equipmentRepository.SoftDeleteEquipment(ctx, id)
}

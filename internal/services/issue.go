package services

import (
	"context"
	"time"

	"hospital-maintenance/internal/dto"
	"hospital-maintenance/internal/repositories"
	apperrors "hospital-maintenance/pkg/errors"
	"hospital-maintenance/pkg/photostorage"
	"hospital-maintenance/pkg/types"

	"go.uber.org/zap"
)

// issueTransitions is the allowed forward edge set of the issue lifecycle.
// Timestamps stamped on the way are never cleared, so backward moves are
// rejected outright.
var issueTransitions = map[dto.IssueStatus][]dto.IssueStatus{
	dto.IssueReported:     {dto.IssueAcknowledged, dto.IssueResolved},
	dto.IssueAcknowledged: {dto.IssueInProgress},
	dto.IssueInProgress:   {dto.IssueResolved},
	dto.IssueResolved:     {dto.IssueClosed},
	dto.IssueClosed:       {},
}

func canTransition(from, to dto.IssueStatus) bool {
	for _, allowed := range issueTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

type IssueService struct {
	issueRepository     repositories.IssueRepositoryInterface
	equipmentRepository repositories.EquipmentRepositoryInterface
	activityService     *ActivityService
	photoStorage        photostorage.PhotoStorageInterface
	logger              *zap.Logger
}

func NewIssueService(
	issueRepository repositories.IssueRepositoryInterface,
	equipmentRepository repositories.EquipmentRepositoryInterface,
	activityService *ActivityService,
	photoStorage photostorage.PhotoStorageInterface,
	logger *zap.Logger,
) *IssueService {
	return &IssueService{
		issueRepository:     issueRepository,
		equipmentRepository: equipmentRepository,
		activityService:     activityService,
		photoStorage:        photoStorage,
		logger:              logger,
	}
}

func (s *IssueService) GetIssues(ctx context.Context, filter types.Filter) ([]dto.IssueDetailsDTO, uint64, error) {
	return s.issueRepository.GetIssues(ctx, filter)
}

func (s *IssueService) GetOpenIssues(ctx context.Context) ([]dto.IssueDetailsDTO, error) {
	return s.issueRepository.GetOpenIssues(ctx)
}

func (s *IssueService) GetIssuesByEquipment(ctx context.Context, equipmentID string) ([]dto.IssueDTO, error) {
	return s.issueRepository.GetIssuesByEquipment(ctx, equipmentID)
}

func (s *IssueService) FindIssue(ctx context.Context, id string) (*dto.IssueDetailsDTO, error) {
	return s.issueRepository.FindIssue(ctx, id)
}

func (s *IssueService) CreateIssue(ctx context.Context, payload dto.CreateIssueDTO) (*dto.IssueDTO, error) {
	created, err := s.issueRepository.CreateIssue(ctx, payload)
	if err != nil {
		s.logger.Error("failed to create issue", zap.Error(err), zap.String("equipment_id", payload.EquipmentID))
		return nil, err
	}
	return created, nil
}

func (s *IssueService) UpdateIssue(ctx context.Context, id string, payload dto.UpdateIssueDTO) (*dto.IssueDTO, error) {
	return s.issueRepository.UpdateIssue(ctx, id, payload)
}

func (s *IssueService) UpdateIssueStatus(ctx context.Context, id string, payload dto.UpdateIssueStatusDTO) (*dto.IssueDTO, error) {
	current, err := s.issueRepository.FindIssue(ctx, id)
	if err != nil {
		return nil, err
	}

	target := dto.IssueStatus(payload.Status)
	if current.Status == target {
		return &current.IssueDTO, nil
	}
	if !canTransition(current.Status, target) {
		return nil, apperrors.NewInvalidInputError("cannot move issue from %s to %s", current.Status, target)
	}

	updated, err := s.issueRepository.UpdateIssueStatus(ctx, id, target, time.Now())
	if err != nil {
		return nil, err
	}

	s.activityService.LogIssueStatusChange(ctx, *updated, current.Status)
	if target == dto.IssueResolved {
		s.markEquipmentOperational(ctx, updated.EquipmentID)
	}
	return updated, nil
}

func (s *IssueService) AssignIssue(ctx context.Context, id string, payload dto.AssignIssueDTO) (*dto.IssueDTO, error) {
	return s.issueRepository.AssignIssue(ctx, id, payload.AssignedTo)
}

// ResolveIssue is the explicit resolution action: it stamps resolution notes
// and resolved_at, then returns the equipment to service. The equipment update
// and the activity entry are best-effort.
func (s *IssueService) ResolveIssue(ctx context.Context, id string, payload dto.ResolveIssueDTO) (*dto.IssueDTO, error) {
	current, err := s.issueRepository.FindIssue(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status == dto.IssueResolved || current.Status == dto.IssueClosed {
		return nil, apperrors.NewInvalidInputError("issue is already %s", current.Status)
	}

	resolved, err := s.issueRepository.ResolveIssue(ctx, id, payload.ResolutionNotes, payload.ResolvedBy, time.Now())
	if err != nil {
		return nil, err
	}

	s.activityService.LogIssueStatusChange(ctx, *resolved, current.Status)
	s.markEquipmentOperational(ctx, resolved.EquipmentID)
	return resolved, nil
}

func (s *IssueService) DeleteIssue(ctx context.Context, id string) error {
	current, err := s.issueRepository.FindIssue(ctx, id)
	if err != nil {
		return err
	}

	if err := s.issueRepository.DeleteIssue(ctx, id); err != nil {
		return err
	}

	if len(current.Attachments) > 0 {
		if err := s.photoStorage.DeleteMany(ctx, current.Attachments); err != nil {
			s.logger.Warn("failed to delete issue attachments", zap.String("issue_id", id), zap.Error(err))
		}
	}
	return nil
}

func (s *IssueService) markEquipmentOperational(ctx context.Context, equipmentID *string) {
	if equipmentID == nil {
		return
	}
	if err := s.equipmentRepository.UpdateEquipmentStatus(ctx, *equipmentID, dto.EquipmentOperational); err != nil {
		s.logger.Warn("failed to return equipment to operational",
			zap.String("equipment_id", *equipmentID),
			zap.Error(err),
		)
	}
}

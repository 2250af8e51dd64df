package services

import (
	"context"
	"fmt"

	"hospital-maintenance/internal/dto"
	"hospital-maintenance/internal/repositories"
	"hospital-maintenance/pkg/utils"

	"go.uber.org/zap"
)

const defaultActivityLimit = 20

// ActivityService records and serves the append-only activity feed. Entries
// are never updated or deleted.
type ActivityService struct {
	activityRepository repositories.ActivityRepositoryInterface
	logger             *zap.Logger
}

func NewActivityService(activityRepository repositories.ActivityRepositoryInterface, logger *zap.Logger) *ActivityService {
	return &ActivityService{
		activityRepository: activityRepository,
		logger:             logger,
	}
}

func (s *ActivityService) GetRecentActivity(ctx context.Context, limit int) ([]dto.RecentActivityDTO, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	return s.activityRepository.GetRecentActivity(ctx, limit)
}

func (s *ActivityService) GetActivityByEquipment(ctx context.Context, equipmentID string, limit int) ([]dto.ActivityLogDTO, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	return s.activityRepository.GetActivityByEquipment(ctx, equipmentID, limit)
}

// log writes an entry and only reports failure to the logger. Activity is a
// best-effort side channel: callers never fail their operation over it.
func (s *ActivityService) log(ctx context.Context, payload dto.CreateActivityDTO) {
	if _, err := s.activityRepository.CreateActivity(ctx, payload); err != nil {
		s.logger.Warn("failed to append activity log",
			zap.String("activity_type", string(payload.ActivityType)),
			zap.Error(err),
		)
	}
}

func (s *ActivityService) LogIssueReported(ctx context.Context, issue dto.IssueDTO, equipmentName string) {
	s.log(ctx, dto.CreateActivityDTO{
		ActivityType: dto.ActivityIssueReported,
		EquipmentID:  issue.EquipmentID,
		IssueID:      &issue.ID,
		Title:        fmt.Sprintf("Issue reported for %s", equipmentName),
		Description:  &issue.Description,
		PerformedBy:  &issue.ReportedBy,
		Metadata:     map[string]interface{}{"severity": string(issue.Severity)},
	})
}

func (s *ActivityService) LogIssueStatusChange(ctx context.Context, issue dto.IssueDTO, from dto.IssueStatus) {
	activityType := dto.ActivityStatusChanged
	switch issue.Status {
	case dto.IssueAcknowledged:
		activityType = dto.ActivityIssueAcknowledged
	case dto.IssueResolved:
		activityType = dto.ActivityIssueResolved
	}
	s.log(ctx, dto.CreateActivityDTO{
		ActivityType: activityType,
		EquipmentID:  issue.EquipmentID,
		IssueID:      &issue.ID,
		Title:        fmt.Sprintf("Issue %s", issue.Status),
		PerformedBy:  issue.AssignedTo,
		Metadata: map[string]interface{}{
			"from": string(from),
			"to":   string(issue.Status),
		},
	})
}

func (s *ActivityService) LogMaintenanceScheduled(ctx context.Context, record dto.MaintenanceRecordDTO) {
	s.log(ctx, dto.CreateActivityDTO{
		ActivityType:  dto.ActivityMaintenanceScheduled,
		EquipmentID:   record.EquipmentID,
		MaintenanceID: &record.ID,
		Title:         "Maintenance scheduled",
		Description:   &record.Description,
		Metadata:      map[string]interface{}{"priority": string(record.Priority)},
	})
}

func (s *ActivityService) LogMaintenanceCompleted(ctx context.Context, record dto.MaintenanceRecordDTO) {
	s.log(ctx, dto.CreateActivityDTO{
		ActivityType:  dto.ActivityMaintenanceCompleted,
		EquipmentID:   record.EquipmentID,
		MaintenanceID: &record.ID,
		Title:         "Maintenance completed",
		Description:   &record.Description,
		PerformedBy:   record.PerformedBy,
	})
}

func (s *ActivityService) LogEquipmentAdded(ctx context.Context, equipment dto.EquipmentDTO) {
	s.log(ctx, dto.CreateActivityDTO{
		ActivityType: dto.ActivityEquipmentAdded,
		EquipmentID:  &equipment.ID,
		Title:        fmt.Sprintf("Equipment %s added", equipment.Name),
		Metadata:     map[string]interface{}{"equipment_code": equipment.EquipmentCode},
	})
}

func (s *ActivityService) LogEquipmentUpdated(ctx context.Context, equipment dto.EquipmentDTO) {
	s.log(ctx, dto.CreateActivityDTO{
		ActivityType: dto.ActivityEquipmentUpdated,
		EquipmentID:  &equipment.ID,
		Title:        fmt.Sprintf("Equipment %s updated", equipment.Name),
		Metadata:     map[string]interface{}{"equipment_code": equipment.EquipmentCode},
	})
}

func (s *ActivityService) LogEquipmentStatusChange(ctx context.Context, equipmentID string, from, to dto.EquipmentStatus) {
	s.log(ctx, dto.CreateActivityDTO{
		ActivityType: dto.ActivityStatusChanged,
		EquipmentID:  utils.ToPtr(equipmentID),
		Title:        fmt.Sprintf("Equipment status changed to %s", to),
		Metadata: map[string]interface{}{
			"from": string(from),
			"to":   string(to),
		},
	})
}

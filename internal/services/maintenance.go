package services

import (
	"context"
	"time"

	"hospital-maintenance/internal/dto"
	"hospital-maintenance/internal/repositories"
	apperrors "hospital-maintenance/pkg/errors"
	"hospital-maintenance/pkg/types"

	"go.uber.org/zap"
)

type MaintenanceService struct {
	maintenanceRepository repositories.MaintenanceRepositoryInterface
	equipmentRepository   repositories.EquipmentRepositoryInterface
	activityService       *ActivityService
	logger                *zap.Logger
}

func NewMaintenanceService(
	maintenanceRepository repositories.MaintenanceRepositoryInterface,
	equipmentRepository repositories.EquipmentRepositoryInterface,
	activityService *ActivityService,
	logger *zap.Logger,
) *MaintenanceService {
	return &MaintenanceService{
		maintenanceRepository: maintenanceRepository,
		equipmentRepository:   equipmentRepository,
		activityService:       activityService,
		logger:                logger,
	}
}

func (s *MaintenanceService) GetMaintenanceRecords(ctx context.Context, filter types.Filter) ([]dto.MaintenanceRecordDTO, uint64, error) {
	return s.maintenanceRepository.GetMaintenanceRecords(ctx, filter)
}

func (s *MaintenanceService) GetByStatus(ctx context.Context, status dto.MaintenanceStatus) ([]dto.MaintenanceRecordDTO, error) {
	return s.maintenanceRepository.GetByStatus(ctx, status)
}

func (s *MaintenanceService) GetByEquipment(ctx context.Context, equipmentID string) ([]dto.MaintenanceRecordDTO, error) {
	return s.maintenanceRepository.GetByEquipment(ctx, equipmentID)
}

func (s *MaintenanceService) FindMaintenanceRecord(ctx context.Context, id string) (*dto.MaintenanceRecordDTO, error) {
	return s.maintenanceRepository.FindMaintenanceRecord(ctx, id)
}

func (s *MaintenanceService) ScheduleMaintenance(ctx context.Context, payload dto.ScheduleMaintenanceDTO) (*dto.MaintenanceRecordDTO, error) {
	created, err := s.maintenanceRepository.CreateMaintenanceRecord(ctx, payload)
	if err != nil {
		s.logger.Error("failed to schedule maintenance", zap.Error(err), zap.String("equipment_id", payload.EquipmentID))
		return nil, err
	}
	s.activityService.LogMaintenanceScheduled(ctx, *created)
	s.logger.Info("maintenance scheduled", zap.String("id", created.ID), zap.String("equipment_id", payload.EquipmentID))
	return created, nil
}

func (s *MaintenanceService) UpdateMaintenance(ctx context.Context, id string, payload dto.UpdateMaintenanceDTO) (*dto.MaintenanceRecordDTO, error) {
	current, err := s.maintenanceRepository.FindMaintenanceRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status == dto.MaintenanceCompleted || current.Status == dto.MaintenanceCancelled {
		return nil, apperrors.NewInvalidInputError("cannot edit a %s maintenance record", current.Status)
	}
	return s.maintenanceRepository.UpdateMaintenanceRecord(ctx, id, payload)
}

// StartMaintenance moves a scheduled record into in_progress and takes the
// equipment out of rotation while the work runs.
func (s *MaintenanceService) StartMaintenance(ctx context.Context, id string, payload dto.StartMaintenanceDTO) (*dto.MaintenanceRecordDTO, error) {
	current, err := s.maintenanceRepository.FindMaintenanceRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status != dto.MaintenanceScheduled {
		return nil, apperrors.NewInvalidInputError("cannot start maintenance from status %s", current.Status)
	}

	started, err := s.maintenanceRepository.StartMaintenance(ctx, id, payload.PerformedBy, time.Now())
	if err != nil {
		return nil, err
	}

	if started.EquipmentID != nil {
		if err := s.equipmentRepository.UpdateEquipmentStatus(ctx, *started.EquipmentID, dto.EquipmentMaintenance); err != nil {
			s.logger.Warn("failed to mark equipment under maintenance",
				zap.String("equipment_id", *started.EquipmentID),
				zap.Error(err),
			)
		}
	}
	return started, nil
}

// CompleteMaintenance closes out the record. Stamping the equipment's
// maintenance dates and returning it to operational are best-effort: the
// record completion stands even when those follow-ups fail.
func (s *MaintenanceService) CompleteMaintenance(ctx context.Context, id string, payload dto.CompleteMaintenanceDTO) (*dto.MaintenanceRecordDTO, error) {
	current, err := s.maintenanceRepository.FindMaintenanceRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status != dto.MaintenanceScheduled && current.Status != dto.MaintenanceInProgress {
		return nil, apperrors.NewInvalidInputError("cannot complete maintenance from status %s", current.Status)
	}

	now := time.Now()
	completed, err := s.maintenanceRepository.CompleteMaintenance(ctx, id, payload, now)
	if err != nil {
		return nil, err
	}

	if completed.EquipmentID != nil {
		equipmentID := *completed.EquipmentID
		if err := s.equipmentRepository.SetMaintenanceDates(ctx, equipmentID, now, completed.NextMaintenanceDate); err != nil {
			s.logger.Warn("failed to stamp equipment maintenance dates", zap.String("equipment_id", equipmentID), zap.Error(err))
		}
		if err := s.equipmentRepository.UpdateEquipmentStatus(ctx, equipmentID, dto.EquipmentOperational); err != nil {
			s.logger.Warn("failed to return equipment to operational", zap.String("equipment_id", equipmentID), zap.Error(err))
		}
	}
	s.activityService.LogMaintenanceCompleted(ctx, *completed)
	return completed, nil
}

func (s *MaintenanceService) CancelMaintenance(ctx context.Context, id string, payload dto.CancelMaintenanceDTO) (*dto.MaintenanceRecordDTO, error) {
	current, err := s.maintenanceRepository.FindMaintenanceRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status != dto.MaintenanceScheduled && current.Status != dto.MaintenanceInProgress {
		return nil, apperrors.NewInvalidInputError("cannot cancel maintenance from status %s", current.Status)
	}
	return s.maintenanceRepository.CancelMaintenance(ctx, id, payload.Notes)
}

package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"hospital-maintenance/internal/dto"
	apperrors "hospital-maintenance/pkg/errors"
	"hospital-maintenance/pkg/types"
	"hospital-maintenance/pkg/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type dbMaintenanceRecord struct {
	ID                  string
	EquipmentID         sql.NullString
	MaintenanceType     sql.NullString
	Description         string
	Priority            string
	Status              string
	ScheduledDate       sql.NullTime
	StartedAt           sql.NullTime
	CompletedAt         sql.NullTime
	PerformedBy         sql.NullString
	TechnicianName      sql.NullString
	TechnicianContact   sql.NullString
	Cost                sql.NullFloat64
	PartsReplaced       []string
	Notes               sql.NullString
	NextMaintenanceDate sql.NullTime
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (db *dbMaintenanceRecord) ToDTO() dto.MaintenanceRecordDTO {
	return dto.MaintenanceRecordDTO{
		ID:                  db.ID,
		EquipmentID:         utils.NullStringToPtr(db.EquipmentID),
		MaintenanceType:     utils.NullStringToPtr(db.MaintenanceType),
		Description:         db.Description,
		Priority:            dto.MaintenancePriority(db.Priority),
		Status:              dto.MaintenanceStatus(db.Status),
		ScheduledDate:       utils.NullTimeToPtr(db.ScheduledDate),
		StartedAt:           utils.NullTimeToPtr(db.StartedAt),
		CompletedAt:         utils.NullTimeToPtr(db.CompletedAt),
		PerformedBy:         utils.NullStringToPtr(db.PerformedBy),
		TechnicianName:      utils.NullStringToPtr(db.TechnicianName),
		TechnicianContact:   utils.NullStringToPtr(db.TechnicianContact),
		Cost:                utils.NullFloatToPtr(db.Cost),
		PartsReplaced:       db.PartsReplaced,
		Notes:               utils.NullStringToPtr(db.Notes),
		NextMaintenanceDate: utils.NullTimeToPtr(db.NextMaintenanceDate),
		CreatedAt:           db.CreatedAt,
		UpdatedAt:           db.UpdatedAt,
	}
}

const (
	maintenanceTable = "maintenance_records"

	maintenanceFields = `id, equipment_id, maintenance_type, description, priority, status,
		scheduled_date, started_at, completed_at, performed_by, technician_name,
		technician_contact, cost, parts_replaced, notes, next_maintenance_date,
		created_at, updated_at`
)

type MaintenanceRepositoryInterface interface {
	GetMaintenanceRecords(ctx context.Context, filter types.Filter) ([]dto.MaintenanceRecordDTO, uint64, error)
	GetByStatus(ctx context.Context, status dto.MaintenanceStatus) ([]dto.MaintenanceRecordDTO, error)
	GetByEquipment(ctx context.Context, equipmentID string) ([]dto.MaintenanceRecordDTO, error)
	FindMaintenanceRecord(ctx context.Context, id string) (*dto.MaintenanceRecordDTO, error)
	CreateMaintenanceRecord(ctx context.Context, payload dto.ScheduleMaintenanceDTO) (*dto.MaintenanceRecordDTO, error)
	UpdateMaintenanceRecord(ctx context.Context, id string, payload dto.UpdateMaintenanceDTO) (*dto.MaintenanceRecordDTO, error)
	StartMaintenance(ctx context.Context, id string, performedBy *string, at time.Time) (*dto.MaintenanceRecordDTO, error)
	CompleteMaintenance(ctx context.Context, id string, payload dto.CompleteMaintenanceDTO, at time.Time) (*dto.MaintenanceRecordDTO, error)
	CancelMaintenance(ctx context.Context, id string, notes *string) (*dto.MaintenanceRecordDTO, error)
}

type maintenanceRepository struct{ storage *pgxpool.Pool }

func NewMaintenanceRepository(storage *pgxpool.Pool) MaintenanceRepositoryInterface {
	return &maintenanceRepository{storage: storage}
}

func scanMaintenance(row pgx.Row) (*dto.MaintenanceRecordDTO, error) {
	var dbRow dbMaintenanceRecord
	err := row.Scan(
		&dbRow.ID, &dbRow.EquipmentID, &dbRow.MaintenanceType, &dbRow.Description,
		&dbRow.Priority, &dbRow.Status, &dbRow.ScheduledDate, &dbRow.StartedAt,
		&dbRow.CompletedAt, &dbRow.PerformedBy, &dbRow.TechnicianName, &dbRow.TechnicianContact,
		&dbRow.Cost, &dbRow.PartsReplaced, &dbRow.Notes, &dbRow.NextMaintenanceDate,
		&dbRow.CreatedAt, &dbRow.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	recordDTO := dbRow.ToDTO()
	return &recordDTO, nil
}

func (r *maintenanceRepository) queryRecords(ctx context.Context, query string, args ...interface{}) ([]dto.MaintenanceRecordDTO, error) {
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]dto.MaintenanceRecordDTO, 0)
	for rows.Next() {
		record, err := scanMaintenance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, rows.Err()
}

func (r *maintenanceRepository) GetMaintenanceRecords(ctx context.Context, filter types.Filter) ([]dto.MaintenanceRecordDTO, uint64, error) {
	conditions := map[string]interface{}{}
	allowed := map[string]string{
		"status":       "status",
		"priority":     "priority",
		"equipment_id": "equipment_id",
	}
	for key, column := range allowed {
		if val, ok := filter.Filter[key]; ok {
			conditions[column] = val
		}
	}

	params := ListParams{
		Table:          maintenanceTable,
		Columns:        maintenanceFields,
		Filter:         conditions,
		AllowedFilters: []string{"status", "priority", "equipment_id"},
		DefaultOrder:   "created_at DESC",
		Limit:          filter.Limit,
		Offset:         filter.Offset,
	}

	total, err := FetchCount(ctx, r.storage, params)
	if err != nil {
		return nil, 0, err
	}

	query, args, err := BuildListQuery(params)
	if err != nil {
		return nil, 0, err
	}

	records, err := r.queryRecords(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// GetByStatus lists records in one lifecycle state, earliest scheduled first.
func (r *maintenanceRepository) GetByStatus(ctx context.Context, status dto.MaintenanceStatus) ([]dto.MaintenanceRecordDTO, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE status = $1 ORDER BY scheduled_date ASC NULLS LAST, created_at ASC", maintenanceFields, maintenanceTable)
	return r.queryRecords(ctx, query, string(status))
}

func (r *maintenanceRepository) GetByEquipment(ctx context.Context, equipmentID string) ([]dto.MaintenanceRecordDTO, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE equipment_id = $1 ORDER BY scheduled_date DESC NULLS LAST, created_at DESC", maintenanceFields, maintenanceTable)
	return r.queryRecords(ctx, query, equipmentID)
}

func (r *maintenanceRepository) FindMaintenanceRecord(ctx context.Context, id string) (*dto.MaintenanceRecordDTO, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", maintenanceFields, maintenanceTable)
	return scanMaintenance(r.storage.QueryRow(ctx, query, id))
}

func (r *maintenanceRepository) CreateMaintenanceRecord(ctx context.Context, payload dto.ScheduleMaintenanceDTO) (*dto.MaintenanceRecordDTO, error) {
	priority := payload.Priority
	if priority == "" {
		priority = string(dto.PriorityMedium)
	}

	query := fmt.Sprintf(`INSERT INTO %s (equipment_id, maintenance_type, description, priority, scheduled_date, technician_name, technician_contact)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s`, maintenanceTable, maintenanceFields)
	row := r.storage.QueryRow(ctx, query,
		payload.EquipmentID, payload.MaintenanceType, payload.Description,
		priority, payload.ScheduledDate, payload.TechnicianName, payload.TechnicianContact,
	)
	created, err := scanMaintenance(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, apperrors.NewInvalidInputError("unknown equipment")
		}
		return nil, err
	}
	return created, nil
}

func (r *maintenanceRepository) UpdateMaintenanceRecord(ctx context.Context, id string, payload dto.UpdateMaintenanceDTO) (*dto.MaintenanceRecordDTO, error) {
	var setClauses []string
	var args []interface{}
	argID := 1

	addSet := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argID))
		args = append(args, value)
		argID++
	}

	if payload.MaintenanceType != nil {
		addSet("maintenance_type", *payload.MaintenanceType)
	}
	if payload.Description != nil {
		addSet("description", *payload.Description)
	}
	if payload.Priority != nil {
		addSet("priority", *payload.Priority)
	}
	if payload.ScheduledDate != nil {
		addSet("scheduled_date", *payload.ScheduledDate)
	}
	if payload.TechnicianName != nil {
		addSet("technician_name", *payload.TechnicianName)
	}
	if payload.TechnicianContact != nil {
		addSet("technician_contact", *payload.TechnicianContact)
	}
	if payload.Notes != nil {
		addSet("notes", *payload.Notes)
	}
	if payload.NextMaintenanceDate != nil {
		addSet("next_maintenance_date", *payload.NextMaintenanceDate)
	}
	if len(setClauses) == 0 {
		return r.FindMaintenanceRecord(ctx, id)
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s", maintenanceTable, strings.Join(setClauses, ", "), argID, maintenanceFields)
	args = append(args, id)

	return scanMaintenance(r.storage.QueryRow(ctx, query, args...))
}

func (r *maintenanceRepository) StartMaintenance(ctx context.Context, id string, performedBy *string, at time.Time) (*dto.MaintenanceRecordDTO, error) {
	query := fmt.Sprintf(`UPDATE %s SET status = 'in_progress', started_at = COALESCE(started_at, $1),
		performed_by = COALESCE($2, performed_by), updated_at = NOW()
		WHERE id = $3 RETURNING %s`, maintenanceTable, maintenanceFields)
	return scanMaintenance(r.storage.QueryRow(ctx, query, at, performedBy, id))
}

func (r *maintenanceRepository) CompleteMaintenance(ctx context.Context, id string, payload dto.CompleteMaintenanceDTO, at time.Time) (*dto.MaintenanceRecordDTO, error) {
	query := fmt.Sprintf(`UPDATE %s SET status = 'completed', completed_at = COALESCE(completed_at, $1),
		cost = COALESCE($2, cost), parts_replaced = COALESCE($3, parts_replaced),
		notes = COALESCE($4, notes), next_maintenance_date = COALESCE($5, next_maintenance_date),
		performed_by = COALESCE($6, performed_by), updated_at = NOW()
		WHERE id = $7 RETURNING %s`, maintenanceTable, maintenanceFields)
	return scanMaintenance(r.storage.QueryRow(ctx, query,
		at, payload.Cost, payload.PartsReplaced, payload.Notes,
		payload.NextMaintenanceDate, payload.PerformedBy, id,
	))
}

func (r *maintenanceRepository) CancelMaintenance(ctx context.Context, id string, notes *string) (*dto.MaintenanceRecordDTO, error) {
	query := fmt.Sprintf(`UPDATE %s SET status = 'cancelled', notes = COALESCE($1, notes), updated_at = NOW()
		WHERE id = $2 RETURNING %s`, maintenanceTable, maintenanceFields)
	return scanMaintenance(r.storage.QueryRow(ctx, query, notes, id))
}

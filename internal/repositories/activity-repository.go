package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"hospital-maintenance/internal/dto"
	apperrors "hospital-maintenance/pkg/errors"
	"hospital-maintenance/pkg/utils"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type dbActivity struct {
	ID            string
	ActivityType  string
	EquipmentID   sql.NullString
	IssueID       sql.NullString
	MaintenanceID sql.NullString
	Title         string
	Description   sql.NullString
	PerformedBy   sql.NullString
	Metadata      map[string]interface{}
	CreatedAt     time.Time

	EquipmentName sql.NullString
	EquipmentCode sql.NullString
}

func (db *dbActivity) ToDTO() dto.ActivityLogDTO {
	return dto.ActivityLogDTO{
		ID:            db.ID,
		ActivityType:  dto.ActivityType(db.ActivityType),
		EquipmentID:   utils.NullStringToPtr(db.EquipmentID),
		IssueID:       utils.NullStringToPtr(db.IssueID),
		MaintenanceID: utils.NullStringToPtr(db.MaintenanceID),
		Title:         db.Title,
		Description:   utils.NullStringToPtr(db.Description),
		PerformedBy:   utils.NullStringToPtr(db.PerformedBy),
		Metadata:      db.Metadata,
		CreatedAt:     db.CreatedAt,
	}
}

func (db *dbActivity) ToRecentDTO() dto.RecentActivityDTO {
	return dto.RecentActivityDTO{
		ActivityLogDTO: db.ToDTO(),
		EquipmentName:  utils.NullStringToPtr(db.EquipmentName),
		EquipmentCode:  utils.NullStringToPtr(db.EquipmentCode),
	}
}

const (
	activityTable = "activity_log"

	activityFields = `id, activity_type, equipment_id, issue_id, maintenance_id, title,
		description, performed_by, metadata, created_at`

	recentActivityFields = `activity_log.id, activity_log.activity_type, activity_log.equipment_id,
		activity_log.issue_id, activity_log.maintenance_id, activity_log.title,
		activity_log.description, activity_log.performed_by, activity_log.metadata,
		activity_log.created_at, equipment.name, equipment.equipment_code`
)

type ActivityRepositoryInterface interface {
	CreateActivity(ctx context.Context, payload dto.CreateActivityDTO) (*dto.ActivityLogDTO, error)
	GetRecentActivity(ctx context.Context, limit int) ([]dto.RecentActivityDTO, error)
	GetActivityByEquipment(ctx context.Context, equipmentID string, limit int) ([]dto.ActivityLogDTO, error)
}

type activityRepository struct{ storage *pgxpool.Pool }

func NewActivityRepository(storage *pgxpool.Pool) ActivityRepositoryInterface {
	return &activityRepository{storage: storage}
}

func (r *activityRepository) CreateActivity(ctx context.Context, payload dto.CreateActivityDTO) (*dto.ActivityLogDTO, error) {
	query := fmt.Sprintf(`INSERT INTO %s (activity_type, equipment_id, issue_id, maintenance_id, title, description, performed_by, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s`, activityTable, activityFields)

	var dbRow dbActivity
	err := r.storage.QueryRow(ctx, query,
		string(payload.ActivityType), payload.EquipmentID, payload.IssueID,
		payload.MaintenanceID, payload.Title, payload.Description,
		payload.PerformedBy, payload.Metadata,
	).Scan(
		&dbRow.ID, &dbRow.ActivityType, &dbRow.EquipmentID, &dbRow.IssueID,
		&dbRow.MaintenanceID, &dbRow.Title, &dbRow.Description, &dbRow.PerformedBy,
		&dbRow.Metadata, &dbRow.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, apperrors.NewInvalidInputError("unknown activity subject")
		}
		return nil, err
	}
	activityDTO := dbRow.ToDTO()
	return &activityDTO, nil
}

func (r *activityRepository) GetRecentActivity(ctx context.Context, limit int) ([]dto.RecentActivityDTO, error) {
	query := fmt.Sprintf(`SELECT %s FROM activity_log
		LEFT JOIN equipment ON equipment.id = activity_log.equipment_id
		ORDER BY activity_log.created_at DESC
		LIMIT $1`, recentActivityFields)

	rows, err := r.storage.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := make([]dto.RecentActivityDTO, 0)
	for rows.Next() {
		var dbRow dbActivity
		err := rows.Scan(
			&dbRow.ID, &dbRow.ActivityType, &dbRow.EquipmentID, &dbRow.IssueID,
			&dbRow.MaintenanceID, &dbRow.Title, &dbRow.Description, &dbRow.PerformedBy,
			&dbRow.Metadata, &dbRow.CreatedAt, &dbRow.EquipmentName, &dbRow.EquipmentCode,
		)
		if err != nil {
			return nil, err
		}
		activities = append(activities, dbRow.ToRecentDTO())
	}
	return activities, rows.Err()
}

func (r *activityRepository) GetActivityByEquipment(ctx context.Context, equipmentID string, limit int) ([]dto.ActivityLogDTO, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE equipment_id = $1 ORDER BY created_at DESC LIMIT $2`, activityFields, activityTable)

	rows, err := r.storage.Query(ctx, query, equipmentID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := make([]dto.ActivityLogDTO, 0)
	for rows.Next() {
		var dbRow dbActivity
		err := rows.Scan(
			&dbRow.ID, &dbRow.ActivityType, &dbRow.EquipmentID, &dbRow.IssueID,
			&dbRow.MaintenanceID, &dbRow.Title, &dbRow.Description, &dbRow.PerformedBy,
			&dbRow.Metadata, &dbRow.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		activities = append(activities, dbRow.ToDTO())
	}
	return activities, rows.Err()
}

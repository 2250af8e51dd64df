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

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type dbEquipment struct {
	ID                       string
	EquipmentCode            string
	Name                     string
	Description              sql.NullString
	CategoryID               sql.NullString
	CategoryName             sql.NullString
	LocationID               sql.NullString
	LocationName             sql.NullString
	Status                   string
	Manufacturer             sql.NullString
	ModelNumber              sql.NullString
	SerialNumber             sql.NullString
	PurchaseDate             sql.NullTime
	WarrantyExpiryDate       sql.NullTime
	LastMaintenanceDate      sql.NullTime
	NextMaintenanceDate      sql.NullTime
	MaintenanceFrequencyDays int
	PurchaseCost             sql.NullFloat64
	CurrentValue             sql.NullFloat64
	Notes                    sql.NullString
	IsActive                 bool
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

func (db *dbEquipment) ToDTO() dto.EquipmentDTO {
	return dto.EquipmentDTO{
		ID:                       db.ID,
		EquipmentCode:            db.EquipmentCode,
		Name:                     db.Name,
		Description:              utils.NullStringToPtr(db.Description),
		CategoryID:               utils.NullStringToPtr(db.CategoryID),
		CategoryName:             utils.NullStringToPtr(db.CategoryName),
		LocationID:               utils.NullStringToPtr(db.LocationID),
		LocationName:             utils.NullStringToPtr(db.LocationName),
		Status:                   dto.EquipmentStatus(db.Status),
		Manufacturer:             utils.NullStringToPtr(db.Manufacturer),
		ModelNumber:              utils.NullStringToPtr(db.ModelNumber),
		SerialNumber:             utils.NullStringToPtr(db.SerialNumber),
		PurchaseDate:             utils.NullTimeToPtr(db.PurchaseDate),
		WarrantyExpiryDate:       utils.NullTimeToPtr(db.WarrantyExpiryDate),
		LastMaintenanceDate:      utils.NullTimeToPtr(db.LastMaintenanceDate),
		NextMaintenanceDate:      utils.NullTimeToPtr(db.NextMaintenanceDate),
		MaintenanceFrequencyDays: db.MaintenanceFrequencyDays,
		PurchaseCost:             utils.NullFloatToPtr(db.PurchaseCost),
		CurrentValue:             utils.NullFloatToPtr(db.CurrentValue),
		Notes:                    utils.NullStringToPtr(db.Notes),
		IsActive:                 db.IsActive,
		CreatedAt:                db.CreatedAt,
		UpdatedAt:                db.UpdatedAt,
	}
}

const (
	equipmentTable = "equipment"

	equipmentJoinedFields = `equipment.id, equipment.equipment_code, equipment.name, equipment.description,
		equipment.category_id, categories.name, equipment.location_id, locations.name,
		equipment.status, equipment.manufacturer, equipment.model_number, equipment.serial_number,
		equipment.purchase_date, equipment.warranty_expiry_date, equipment.last_maintenance_date,
		equipment.next_maintenance_date, equipment.maintenance_frequency_days, equipment.purchase_cost,
		equipment.current_value, equipment.notes, equipment.is_active, equipment.created_at, equipment.updated_at`

	equipmentReturningFields = `id, equipment_code, name, description,
		category_id, NULL, location_id, NULL,
		status, manufacturer, model_number, serial_number,
		purchase_date, warranty_expiry_date, last_maintenance_date,
		next_maintenance_date, maintenance_frequency_days, purchase_cost,
		current_value, notes, is_active, created_at, updated_at`
)

var equipmentJoins = []string{
	"categories ON categories.id = equipment.category_id",
	"locations ON locations.id = equipment.location_id",
}

type EquipmentRepositoryInterface interface {
	GetEquipment(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, uint64, error)
	FindEquipment(ctx context.Context, id string) (*dto.EquipmentDTO, error)
	FindEquipmentByCode(ctx context.Context, code string) (*dto.EquipmentDTO, error)
	GetEquipmentByLocation(ctx context.Context, locationID string) ([]dto.EquipmentDTO, error)
	GetMaintenanceDue(ctx context.Context, until time.Time) ([]dto.EquipmentDTO, error)
	CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error)
	UpdateEquipment(ctx context.Context, id string, payload dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, error)
	UpdateEquipmentStatus(ctx context.Context, id string, status dto.EquipmentStatus) error
	SetMaintenanceDates(ctx context.Context, id string, lastDate time.Time, nextDate *time.Time) error
	SoftDeleteEquipment(ctx context.Context, id string) error
}

type equipmentRepository struct{ storage *pgxpool.Pool }

func NewEquipmentRepository(storage *pgxpool.Pool) EquipmentRepositoryInterface {
	return &equipmentRepository{storage: storage}
}

func scanEquipment(row pgx.Row) (*dto.EquipmentDTO, error) {
	var dbRow dbEquipment
	err := row.Scan(
		&dbRow.ID, &dbRow.EquipmentCode, &dbRow.Name, &dbRow.Description,
		&dbRow.CategoryID, &dbRow.CategoryName, &dbRow.LocationID, &dbRow.LocationName,
		&dbRow.Status, &dbRow.Manufacturer, &dbRow.ModelNumber, &dbRow.SerialNumber,
		&dbRow.PurchaseDate, &dbRow.WarrantyExpiryDate, &dbRow.LastMaintenanceDate,
		&dbRow.NextMaintenanceDate, &dbRow.MaintenanceFrequencyDays, &dbRow.PurchaseCost,
		&dbRow.CurrentValue, &dbRow.Notes, &dbRow.IsActive, &dbRow.CreatedAt, &dbRow.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	equipmentDTO := dbRow.ToDTO()
	return &equipmentDTO, nil
}

func (r *equipmentRepository) queryEquipment(ctx context.Context, query string, args ...interface{}) ([]dto.EquipmentDTO, error) {
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]dto.EquipmentDTO, 0)
	for rows.Next() {
		item, err := scanEquipment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (r *equipmentRepository) GetEquipment(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, uint64, error) {
	conditions := map[string]interface{}{"equipment.is_active": true}
	allowed := map[string]string{
		"status":      "equipment.status",
		"category_id": "equipment.category_id",
		"location_id": "equipment.location_id",
	}
	for key, column := range allowed {
		if val, ok := filter.Filter[key]; ok {
			conditions[column] = val
		}
	}

	params := ListParams{
		Table:          equipmentTable,
		Columns:        equipmentJoinedFields,
		Joins:          equipmentJoins,
		Filter:         conditions,
		AllowedFilters: []string{"equipment.is_active", "equipment.status", "equipment.category_id", "equipment.location_id"},
		DefaultOrder:   "equipment.created_at DESC",
		AllowedSorts:   []string{"name", "equipment_code", "status", "created_at"},
		Sort:           filter.Sort,
		Limit:          filter.Limit,
		Offset:         filter.Offset,
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		params.Where = append(params.Where, sq.Or{
			sq.ILike{"equipment.name": pattern},
			sq.ILike{"equipment.equipment_code": pattern},
		})
	}

	total, err := FetchCount(ctx, r.storage, params)
	if err != nil {
		return nil, 0, err
	}

	query, args, err := BuildListQuery(params)
	if err != nil {
		return nil, 0, err
	}

	items, err := r.queryEquipment(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *equipmentRepository) findWhere(ctx context.Context, condition string, arg interface{}) (*dto.EquipmentDTO, error) {
	query := fmt.Sprintf(`SELECT %s FROM equipment
		LEFT JOIN categories ON categories.id = equipment.category_id
		LEFT JOIN locations ON locations.id = equipment.location_id
		WHERE %s`, equipmentJoinedFields, condition)
	return scanEquipment(r.storage.QueryRow(ctx, query, arg))
}

func (r *equipmentRepository) FindEquipment(ctx context.Context, id string) (*dto.EquipmentDTO, error) {
	return r.findWhere(ctx, "equipment.id = $1", id)
}

// FindEquipmentByCode looks the equipment up by its printed label code. The
// code is matched case-insensitively after trimming.
func (r *equipmentRepository) FindEquipmentByCode(ctx context.Context, code string) (*dto.EquipmentDTO, error) {
	return r.findWhere(ctx, "UPPER(equipment.equipment_code) = UPPER($1) AND equipment.is_active = TRUE", strings.TrimSpace(code))
}

func (r *equipmentRepository) GetEquipmentByLocation(ctx context.Context, locationID string) ([]dto.EquipmentDTO, error) {
	query := fmt.Sprintf(`SELECT %s FROM equipment
		LEFT JOIN categories ON categories.id = equipment.category_id
		LEFT JOIN locations ON locations.id = equipment.location_id
		WHERE equipment.location_id = $1 AND equipment.is_active = TRUE
		ORDER BY equipment.name ASC`, equipmentJoinedFields)
	return r.queryEquipment(ctx, query, locationID)
}

// GetMaintenanceDue returns active equipment whose next maintenance date falls
// on or before the given day, soonest first.
func (r *equipmentRepository) GetMaintenanceDue(ctx context.Context, until time.Time) ([]dto.EquipmentDTO, error) {
	query := fmt.Sprintf(`SELECT %s FROM equipment
		LEFT JOIN categories ON categories.id = equipment.category_id
		LEFT JOIN locations ON locations.id = equipment.location_id
		WHERE equipment.is_active = TRUE AND equipment.next_maintenance_date IS NOT NULL
		  AND equipment.next_maintenance_date <= $1
		ORDER BY equipment.next_maintenance_date ASC`, equipmentJoinedFields)
	return r.queryEquipment(ctx, query, until)
}

func (r *equipmentRepository) CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error) {
	status := payload.Status
	if status == "" {
		status = string(dto.EquipmentOperational)
	}
	frequency := payload.MaintenanceFrequencyDays
	if frequency == 0 {
		frequency = 30
	}

	query := fmt.Sprintf(`INSERT INTO %s (
		equipment_code, name, description, category_id, location_id, status,
		manufacturer, model_number, serial_number, purchase_date, warranty_expiry_date,
		next_maintenance_date, maintenance_frequency_days, purchase_cost, current_value, notes
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	RETURNING %s`, equipmentTable, equipmentReturningFields)

	row := r.storage.QueryRow(ctx, query,
		strings.TrimSpace(payload.EquipmentCode), payload.Name, payload.Description,
		payload.CategoryID, payload.LocationID, status,
		payload.Manufacturer, payload.ModelNumber, payload.SerialNumber,
		payload.PurchaseDate, payload.WarrantyExpiryDate, payload.NextMaintenanceDate,
		frequency, payload.PurchaseCost, payload.CurrentValue, payload.Notes,
	)
	created, err := scanEquipment(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return nil, apperrors.ErrConflict
			case "23503":
				return nil, apperrors.NewInvalidInputError("unknown category or location")
			}
		}
		return nil, err
	}
	return created, nil
}

func (r *equipmentRepository) UpdateEquipment(ctx context.Context, id string, payload dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, error) {
	var setClauses []string
	var args []interface{}
	argID := 1

	addSet := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argID))
		args = append(args, value)
		argID++
	}

	if payload.Name != nil {
		addSet("name", *payload.Name)
	}
	if payload.Description != nil {
		addSet("description", *payload.Description)
	}
	if payload.CategoryID != nil {
		addSet("category_id", *payload.CategoryID)
	}
	if payload.LocationID != nil {
		addSet("location_id", *payload.LocationID)
	}
	if payload.Manufacturer != nil {
		addSet("manufacturer", *payload.Manufacturer)
	}
	if payload.ModelNumber != nil {
		addSet("model_number", *payload.ModelNumber)
	}
	if payload.SerialNumber != nil {
		addSet("serial_number", *payload.SerialNumber)
	}
	if payload.PurchaseDate != nil {
		addSet("purchase_date", *payload.PurchaseDate)
	}
	if payload.WarrantyExpiryDate != nil {
		addSet("warranty_expiry_date", *payload.WarrantyExpiryDate)
	}
	if payload.LastMaintenanceDate != nil {
		addSet("last_maintenance_date", *payload.LastMaintenanceDate)
	}
	if payload.NextMaintenanceDate != nil {
		addSet("next_maintenance_date", *payload.NextMaintenanceDate)
	}
	if payload.MaintenanceFrequencyDays != nil {
		addSet("maintenance_frequency_days", *payload.MaintenanceFrequencyDays)
	}
	if payload.PurchaseCost != nil {
		addSet("purchase_cost", *payload.PurchaseCost)
	}
	if payload.CurrentValue != nil {
		addSet("current_value", *payload.CurrentValue)
	}
	if payload.Notes != nil {
		addSet("notes", *payload.Notes)
	}
	if len(setClauses) == 0 {
		return r.FindEquipment(ctx, id)
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s", equipmentTable, strings.Join(setClauses, ", "), argID, equipmentReturningFields)
	args = append(args, id)

	updated, err := scanEquipment(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, apperrors.NewInvalidInputError("unknown category or location")
		}
		return nil, err
	}
	return updated, nil
}

func (r *equipmentRepository) UpdateEquipmentStatus(ctx context.Context, id string, status dto.EquipmentStatus) error {
	query := fmt.Sprintf("UPDATE %s SET status = $1, updated_at = NOW() WHERE id = $2", equipmentTable)
	result, err := r.storage.Exec(ctx, query, string(status), id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SetMaintenanceDates stamps the completion of a maintenance cycle onto the
// equipment row. nextDate may be nil when the completer did not set one.
func (r *equipmentRepository) SetMaintenanceDates(ctx context.Context, id string, lastDate time.Time, nextDate *time.Time) error {
	var result pgconn.CommandTag
	var err error
	if nextDate != nil {
		query := fmt.Sprintf("UPDATE %s SET last_maintenance_date = $1, next_maintenance_date = $2, updated_at = NOW() WHERE id = $3", equipmentTable)
		result, err = r.storage.Exec(ctx, query, lastDate, *nextDate, id)
	} else {
		query := fmt.Sprintf("UPDATE %s SET last_maintenance_date = $1, next_maintenance_date = $1::date + maintenance_frequency_days, updated_at = NOW() WHERE id = $2", equipmentTable)
		result, err = r.storage.Exec(ctx, query, lastDate, id)
	}
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *equipmentRepository) SoftDeleteEquipment(ctx context.Context, id string) error {
	query := fmt.Sprintf("UPDATE %s SET is_active = FALSE, updated_at = NOW() WHERE id = $1", equipmentTable)
	result, err := r.storage.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

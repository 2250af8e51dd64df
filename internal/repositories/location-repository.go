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

type dbLocation struct {
	ID            string
	Name          string
	Address       sql.NullString
	ContactNumber sql.NullString
	Email         sql.NullString
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (db *dbLocation) ToDTO() dto.LocationDTO {
	return dto.LocationDTO{
		ID:            db.ID,
		Name:          db.Name,
		Address:       utils.NullStringToPtr(db.Address),
		ContactNumber: utils.NullStringToPtr(db.ContactNumber),
		Email:         utils.NullStringToPtr(db.Email),
		IsActive:      db.IsActive,
		CreatedAt:     db.CreatedAt,
		UpdatedAt:     db.UpdatedAt,
	}
}

const (
	locationTable  = "locations"
	locationFields = "id, name, address, contact_number, email, is_active, created_at, updated_at"
)

type LocationRepositoryInterface interface {
	GetLocations(ctx context.Context, filter types.Filter) ([]dto.LocationDTO, uint64, error)
	FindLocation(ctx context.Context, id string) (*dto.LocationDTO, error)
	CreateLocation(ctx context.Context, payload dto.CreateLocationDTO) (*dto.LocationDTO, error)
	UpdateLocation(ctx context.Context, id string, payload dto.UpdateLocationDTO) (*dto.LocationDTO, error)
	SoftDeleteLocation(ctx context.Context, id string) error
}

type locationRepository struct{ storage *pgxpool.Pool }

func NewLocationRepository(storage *pgxpool.Pool) LocationRepositoryInterface {
	return &locationRepository{storage: storage}
}

func (r *locationRepository) scanRow(row pgx.Row) (*dto.LocationDTO, error) {
	var dbRow dbLocation
	err := row.Scan(&dbRow.ID, &dbRow.Name, &dbRow.Address, &dbRow.ContactNumber, &dbRow.Email, &dbRow.IsActive, &dbRow.CreatedAt, &dbRow.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	locationDTO := dbRow.ToDTO()
	return &locationDTO, nil
}

func (r *locationRepository) GetLocations(ctx context.Context, filter types.Filter) ([]dto.LocationDTO, uint64, error) {
	params := ListParams{
		Table:          locationTable,
		Columns:        locationFields,
		Filter:         map[string]interface{}{"is_active": true},
		AllowedFilters: []string{"is_active"},
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

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	locations := make([]dto.LocationDTO, 0)
	for rows.Next() {
		var dbRow dbLocation
		if err := rows.Scan(&dbRow.ID, &dbRow.Name, &dbRow.Address, &dbRow.ContactNumber, &dbRow.Email, &dbRow.IsActive, &dbRow.CreatedAt, &dbRow.UpdatedAt); err != nil {
			return nil, 0, err
		}
		locations = append(locations, dbRow.ToDTO())
	}
	return locations, total, rows.Err()
}

func (r *locationRepository) FindLocation(ctx context.Context, id string) (*dto.LocationDTO, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", locationFields, locationTable)
	return r.scanRow(r.storage.QueryRow(ctx, query, id))
}

func (r *locationRepository) CreateLocation(ctx context.Context, payload dto.CreateLocationDTO) (*dto.LocationDTO, error) {
	query := fmt.Sprintf("INSERT INTO %s (name, address, contact_number, email) VALUES ($1, $2, $3, $4) RETURNING %s", locationTable, locationFields)
	row := r.storage.QueryRow(ctx, query, payload.Name, payload.Address, payload.ContactNumber, payload.Email)
	created, err := r.scanRow(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.ErrConflict
		}
		return nil, err
	}
	return created, nil
}

func (r *locationRepository) UpdateLocation(ctx context.Context, id string, payload dto.UpdateLocationDTO) (*dto.LocationDTO, error) {
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
	if payload.Address != nil {
		addSet("address", *payload.Address)
	}
	if payload.ContactNumber != nil {
		addSet("contact_number", *payload.ContactNumber)
	}
	if payload.Email != nil {
		addSet("email", *payload.Email)
	}
	if len(setClauses) == 0 {
		return r.FindLocation(ctx, id)
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s", locationTable, strings.Join(setClauses, ", "), argID, locationFields)
	args = append(args, id)

	return r.scanRow(r.storage.QueryRow(ctx, query, args...))
}

func (r *locationRepository) SoftDeleteLocation(ctx context.Context, id string) error {
	query := fmt.Sprintf("UPDATE %s SET is_active = FALSE, updated_at = NOW() WHERE id = $1", locationTable)
	result, err := r.storage.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

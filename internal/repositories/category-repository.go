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

type dbCategory struct {
	ID          string
	Name        string
	Description sql.NullString
	Color       sql.NullString
	Icon        sql.NullString
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (db *dbCategory) ToDTO() dto.CategoryDTO {
	return dto.CategoryDTO{
		ID:          db.ID,
		Name:        db.Name,
		Description: utils.NullStringToPtr(db.Description),
		Color:       utils.NullStringToPtr(db.Color),
		Icon:        utils.NullStringToPtr(db.Icon),
		IsActive:    db.IsActive,
		CreatedAt:   db.CreatedAt,
		UpdatedAt:   db.UpdatedAt,
	}
}

const (
	categoryTable  = "categories"
	categoryFields = "id, name, description, color, icon, is_active, created_at, updated_at"
)

type CategoryRepositoryInterface interface {
	GetCategories(ctx context.Context, filter types.Filter) ([]dto.CategoryDTO, uint64, error)
	FindCategory(ctx context.Context, id string) (*dto.CategoryDTO, error)
	CreateCategory(ctx context.Context, payload dto.CreateCategoryDTO) (*dto.CategoryDTO, error)
	UpdateCategory(ctx context.Context, id string, payload dto.UpdateCategoryDTO) (*dto.CategoryDTO, error)
	SoftDeleteCategory(ctx context.Context, id string) error
}

type categoryRepository struct{ storage *pgxpool.Pool }

func NewCategoryRepository(storage *pgxpool.Pool) CategoryRepositoryInterface {
	return &categoryRepository{storage: storage}
}

func (r *categoryRepository) scanRow(row pgx.Row) (*dto.CategoryDTO, error) {
	var dbRow dbCategory
	err := row.Scan(&dbRow.ID, &dbRow.Name, &dbRow.Description, &dbRow.Color, &dbRow.Icon, &dbRow.IsActive, &dbRow.CreatedAt, &dbRow.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	categoryDTO := dbRow.ToDTO()
	return &categoryDTO, nil
}

func (r *categoryRepository) GetCategories(ctx context.Context, filter types.Filter) ([]dto.CategoryDTO, uint64, error) {
	params := ListParams{
		Table:          categoryTable,
		Columns:        categoryFields,
		Filter:         map[string]interface{}{"is_active": true},
		AllowedFilters: []string{"is_active"},
		DefaultOrder:   "name ASC",
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

	categories := make([]dto.CategoryDTO, 0)
	for rows.Next() {
		var dbRow dbCategory
		if err := rows.Scan(&dbRow.ID, &dbRow.Name, &dbRow.Description, &dbRow.Color, &dbRow.Icon, &dbRow.IsActive, &dbRow.CreatedAt, &dbRow.UpdatedAt); err != nil {
			return nil, 0, err
		}
		categories = append(categories, dbRow.ToDTO())
	}
	return categories, total, rows.Err()
}

func (r *categoryRepository) FindCategory(ctx context.Context, id string) (*dto.CategoryDTO, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", categoryFields, categoryTable)
	return r.scanRow(r.storage.QueryRow(ctx, query, id))
}

func (r *categoryRepository) CreateCategory(ctx context.Context, payload dto.CreateCategoryDTO) (*dto.CategoryDTO, error) {
	query := fmt.Sprintf("INSERT INTO %s (name, description, color, icon) VALUES ($1, $2, $3, $4) RETURNING %s", categoryTable, categoryFields)
	row := r.storage.QueryRow(ctx, query, payload.Name, payload.Description, payload.Color, payload.Icon)
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

func (r *categoryRepository) UpdateCategory(ctx context.Context, id string, payload dto.UpdateCategoryDTO) (*dto.CategoryDTO, error) {
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
	if payload.Color != nil {
		addSet("color", *payload.Color)
	}
	if payload.Icon != nil {
		addSet("icon", *payload.Icon)
	}
	if len(setClauses) == 0 {
		return r.FindCategory(ctx, id)
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s", categoryTable, strings.Join(setClauses, ", "), argID, categoryFields)
	args = append(args, id)

	return r.scanRow(r.storage.QueryRow(ctx, query, args...))
}

func (r *categoryRepository) SoftDeleteCategory(ctx context.Context, id string) error {
	query := fmt.Sprintf("UPDATE %s SET is_active = FALSE, updated_at = NOW() WHERE id = $1", categoryTable)
	result, err := r.storage.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

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

type dbIssue struct {
	ID              string
	EquipmentID     sql.NullString
	Title           string
	Description     string
	Severity        string
	Status          string
	ReportedBy      string
	ReportedAt      time.Time
	AssignedTo      sql.NullString
	AcknowledgedAt  sql.NullTime
	ResolvedAt      sql.NullTime
	ClosedAt        sql.NullTime
	ResolutionNotes sql.NullString
	Attachments     []string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	EquipmentCode sql.NullString
	EquipmentName sql.NullString
	HospitalName  sql.NullString
}

func (db *dbIssue) ToDTO() dto.IssueDTO {
	attachments := db.Attachments
	if attachments == nil {
		attachments = []string{}
	}
	return dto.IssueDTO{
		ID:              db.ID,
		EquipmentID:     utils.NullStringToPtr(db.EquipmentID),
		Title:           db.Title,
		Description:     db.Description,
		Severity:        dto.IssueSeverity(db.Severity),
		Status:          dto.IssueStatus(db.Status),
		ReportedBy:      db.ReportedBy,
		ReportedAt:      db.ReportedAt,
		AssignedTo:      utils.NullStringToPtr(db.AssignedTo),
		AcknowledgedAt:  utils.NullTimeToPtr(db.AcknowledgedAt),
		ResolvedAt:      utils.NullTimeToPtr(db.ResolvedAt),
		ClosedAt:        utils.NullTimeToPtr(db.ClosedAt),
		ResolutionNotes: utils.NullStringToPtr(db.ResolutionNotes),
		Attachments:     attachments,
		CreatedAt:       db.CreatedAt,
		UpdatedAt:       db.UpdatedAt,
	}
}

func (db *dbIssue) ToDetailsDTO() dto.IssueDetailsDTO {
	return dto.IssueDetailsDTO{
		IssueDTO:      db.ToDTO(),
		EquipmentCode: utils.NullStringToPtr(db.EquipmentCode),
		EquipmentName: utils.NullStringToPtr(db.EquipmentName),
		HospitalName:  utils.NullStringToPtr(db.HospitalName),
	}
}

const (
	issueTable = "issues"

	issueFields = `id, equipment_id, title, description, severity, status, reported_by, reported_at,
		assigned_to, acknowledged_at, resolved_at, closed_at, resolution_notes, attachments,
		created_at, updated_at`

	issueDetailsFields = `issues.id, issues.equipment_id, issues.title, issues.description,
		issues.severity, issues.status, issues.reported_by, issues.reported_at,
		issues.assigned_to, issues.acknowledged_at, issues.resolved_at, issues.closed_at,
		issues.resolution_notes, issues.attachments, issues.created_at, issues.updated_at,
		equipment.equipment_code, equipment.name, locations.name`

	issueDetailsJoins = `LEFT JOIN equipment ON equipment.id = issues.equipment_id
		LEFT JOIN locations ON locations.id = equipment.location_id`

	severityOrder = "CASE issues.severity WHEN 'critical' THEN 4 WHEN 'major' THEN 3 WHEN 'moderate' THEN 2 ELSE 1 END DESC"
)

type IssueRepositoryInterface interface {
	GetIssues(ctx context.Context, filter types.Filter) ([]dto.IssueDetailsDTO, uint64, error)
	GetOpenIssues(ctx context.Context) ([]dto.IssueDetailsDTO, error)
	GetIssuesWithDetails(ctx context.Context) ([]dto.IssueDetailsDTO, error)
	GetIssuesByEquipment(ctx context.Context, equipmentID string) ([]dto.IssueDTO, error)
	FindIssue(ctx context.Context, id string) (*dto.IssueDetailsDTO, error)
	FindLatestOpenByEquipment(ctx context.Context, equipmentID string) (*dto.IssueDTO, error)
	CreateIssue(ctx context.Context, payload dto.CreateIssueDTO) (*dto.IssueDTO, error)
	UpdateIssue(ctx context.Context, id string, payload dto.UpdateIssueDTO) (*dto.IssueDTO, error)
	UpdateIssueStatus(ctx context.Context, id string, status dto.IssueStatus, at time.Time) (*dto.IssueDTO, error)
	AssignIssue(ctx context.Context, id string, assignedTo string) (*dto.IssueDTO, error)
	ResolveIssue(ctx context.Context, id string, notes string, resolvedBy *string, at time.Time) (*dto.IssueDTO, error)
	DeleteIssue(ctx context.Context, id string) error
}

type issueRepository struct{ storage *pgxpool.Pool }

func NewIssueRepository(storage *pgxpool.Pool) IssueRepositoryInterface {
	return &issueRepository{storage: storage}
}

func scanIssue(row pgx.Row) (*dto.IssueDTO, error) {
	var dbRow dbIssue
	err := row.Scan(
		&dbRow.ID, &dbRow.EquipmentID, &dbRow.Title, &dbRow.Description, &dbRow.Severity,
		&dbRow.Status, &dbRow.ReportedBy, &dbRow.ReportedAt, &dbRow.AssignedTo,
		&dbRow.AcknowledgedAt, &dbRow.ResolvedAt, &dbRow.ClosedAt, &dbRow.ResolutionNotes,
		&dbRow.Attachments, &dbRow.CreatedAt, &dbRow.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	issueDTO := dbRow.ToDTO()
	return &issueDTO, nil
}

func scanIssueDetails(row pgx.Row) (*dto.IssueDetailsDTO, error) {
	var dbRow dbIssue
	err := row.Scan(
		&dbRow.ID, &dbRow.EquipmentID, &dbRow.Title, &dbRow.Description, &dbRow.Severity,
		&dbRow.Status, &dbRow.ReportedBy, &dbRow.ReportedAt, &dbRow.AssignedTo,
		&dbRow.AcknowledgedAt, &dbRow.ResolvedAt, &dbRow.ClosedAt, &dbRow.ResolutionNotes,
		&dbRow.Attachments, &dbRow.CreatedAt, &dbRow.UpdatedAt,
		&dbRow.EquipmentCode, &dbRow.EquipmentName, &dbRow.HospitalName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	detailsDTO := dbRow.ToDetailsDTO()
	return &detailsDTO, nil
}

func (r *issueRepository) queryDetails(ctx context.Context, query string, args ...interface{}) ([]dto.IssueDetailsDTO, error) {
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	issues := make([]dto.IssueDetailsDTO, 0)
	for rows.Next() {
		item, err := scanIssueDetails(rows)
		if err != nil {
			return nil, err
		}
		issues = append(issues, *item)
	}
	return issues, rows.Err()
}

func (r *issueRepository) GetIssues(ctx context.Context, filter types.Filter) ([]dto.IssueDetailsDTO, uint64, error) {
	conditions := map[string]interface{}{}
	allowed := map[string]string{
		"status":       "issues.status",
		"severity":     "issues.severity",
		"equipment_id": "issues.equipment_id",
	}
	for key, column := range allowed {
		if val, ok := filter.Filter[key]; ok {
			conditions[column] = val
		}
	}

	params := ListParams{
		Table:          issueTable,
		Columns:        issueDetailsFields,
		Joins:          []string{"equipment ON equipment.id = issues.equipment_id", "locations ON locations.id = equipment.location_id"},
		Filter:         conditions,
		AllowedFilters: []string{"issues.status", "issues.severity", "issues.equipment_id"},
		DefaultOrder:   "issues.reported_at DESC",
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

	issues, err := r.queryDetails(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return issues, total, nil
}

// GetOpenIssues lists everything still needing attention, most severe first,
// newest first within a severity.
func (r *issueRepository) GetOpenIssues(ctx context.Context) ([]dto.IssueDetailsDTO, error) {
	query := fmt.Sprintf(`SELECT %s FROM issues %s
		WHERE issues.status IN ('reported', 'acknowledged', 'in_progress')
		ORDER BY %s, issues.created_at DESC`, issueDetailsFields, issueDetailsJoins, severityOrder)
	return r.queryDetails(ctx, query)
}

// GetIssuesWithDetails feeds the reporting layer: every issue with its
// equipment and hospital, grouped by hospital name.
func (r *issueRepository) GetIssuesWithDetails(ctx context.Context) ([]dto.IssueDetailsDTO, error) {
	query := fmt.Sprintf(`SELECT %s FROM issues %s
		ORDER BY locations.name ASC NULLS LAST, %s, issues.reported_at DESC`, issueDetailsFields, issueDetailsJoins, severityOrder)
	return r.queryDetails(ctx, query)
}

func (r *issueRepository) GetIssuesByEquipment(ctx context.Context, equipmentID string) ([]dto.IssueDTO, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE equipment_id = $1 ORDER BY reported_at DESC", issueFields, issueTable)
	rows, err := r.storage.Query(ctx, query, equipmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	issues := make([]dto.IssueDTO, 0)
	for rows.Next() {
		item, err := scanIssue(rows)
		if err != nil {
			return nil, err
		}
		issues = append(issues, *item)
	}
	return issues, rows.Err()
}

func (r *issueRepository) FindIssue(ctx context.Context, id string) (*dto.IssueDetailsDTO, error) {
	query := fmt.Sprintf("SELECT %s FROM issues %s WHERE issues.id = $1", issueDetailsFields, issueDetailsJoins)
	return scanIssueDetails(r.storage.QueryRow(ctx, query, id))
}

// FindLatestOpenByEquipment returns the newest open issue for the equipment,
// or ErrNotFound when there is none.
func (r *issueRepository) FindLatestOpenByEquipment(ctx context.Context, equipmentID string) (*dto.IssueDTO, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s
		WHERE equipment_id = $1 AND status IN ('reported', 'acknowledged', 'in_progress')
		ORDER BY reported_at DESC
		LIMIT 1`, issueFields, issueTable)
	return scanIssue(r.storage.QueryRow(ctx, query, equipmentID))
}

func (r *issueRepository) CreateIssue(ctx context.Context, payload dto.CreateIssueDTO) (*dto.IssueDTO, error) {
	attachments := payload.Attachments
	if attachments == nil {
		attachments = []string{}
	}
	query := fmt.Sprintf(`INSERT INTO %s (equipment_id, title, description, severity, status, reported_by, attachments)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s`, issueTable, issueFields)
	row := r.storage.QueryRow(ctx, query,
		payload.EquipmentID, payload.Title, payload.Description,
		string(payload.Severity), string(payload.Status), payload.ReportedBy, attachments,
	)
	created, err := scanIssue(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, apperrors.NewInvalidInputError("unknown equipment")
		}
		return nil, err
	}
	return created, nil
}

func (r *issueRepository) UpdateIssue(ctx context.Context, id string, payload dto.UpdateIssueDTO) (*dto.IssueDTO, error) {
	var setClauses []string
	var args []interface{}
	argID := 1

	addSet := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argID))
		args = append(args, value)
		argID++
	}

	if payload.Title != nil {
		addSet("title", *payload.Title)
	}
	if payload.Description != nil {
		addSet("description", *payload.Description)
	}
	if payload.Severity != nil {
		addSet("severity", *payload.Severity)
	}
	if payload.AssignedTo != nil {
		addSet("assigned_to", *payload.AssignedTo)
	}
	if payload.ResolutionNotes != nil {
		addSet("resolution_notes", *payload.ResolutionNotes)
	}
	if payload.Attachments != nil {
		addSet("attachments", *payload.Attachments)
	}
	if len(setClauses) == 0 {
		details, err := r.FindIssue(ctx, id)
		if err != nil {
			return nil, err
		}
		return &details.IssueDTO, nil
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s", issueTable, strings.Join(setClauses, ", "), argID, issueFields)
	args = append(args, id)

	return scanIssue(r.storage.QueryRow(ctx, query, args...))
}

// statusStampColumn maps a target status to the timestamp it stamps. Stamps
// are written once and never cleared afterwards.
func statusStampColumn(status dto.IssueStatus) string {
	switch status {
	case dto.IssueAcknowledged:
		return "acknowledged_at"
	case dto.IssueResolved:
		return "resolved_at"
	case dto.IssueClosed:
		return "closed_at"
	default:
		return ""
	}
}

func (r *issueRepository) UpdateIssueStatus(ctx context.Context, id string, status dto.IssueStatus, at time.Time) (*dto.IssueDTO, error) {
	stamp := ""
	if column := statusStampColumn(status); column != "" {
		stamp = fmt.Sprintf(", %s = COALESCE(%s, $3)", column, column)
	}
	query := fmt.Sprintf("UPDATE %s SET status = $1, updated_at = NOW()%s WHERE id = $2 RETURNING %s", issueTable, stamp, issueFields)

	args := []interface{}{string(status), id}
	if stamp != "" {
		args = append(args, at)
	}
	return scanIssue(r.storage.QueryRow(ctx, query, args...))
}

func (r *issueRepository) AssignIssue(ctx context.Context, id string, assignedTo string) (*dto.IssueDTO, error) {
	query := fmt.Sprintf("UPDATE %s SET assigned_to = $1, updated_at = NOW() WHERE id = $2 RETURNING %s", issueTable, issueFields)
	return scanIssue(r.storage.QueryRow(ctx, query, assignedTo, id))
}

// ResolveIssue stamps resolution in one statement: status, notes, resolver and
// the resolved_at timestamp.
func (r *issueRepository) ResolveIssue(ctx context.Context, id string, notes string, resolvedBy *string, at time.Time) (*dto.IssueDTO, error) {
	query := fmt.Sprintf(`UPDATE %s SET status = 'resolved', resolution_notes = $1,
		assigned_to = COALESCE($2, assigned_to), resolved_at = COALESCE(resolved_at, $3), updated_at = NOW()
		WHERE id = $4 RETURNING %s`, issueTable, issueFields)
	return scanIssue(r.storage.QueryRow(ctx, query, notes, resolvedBy, at, id))
}

func (r *issueRepository) DeleteIssue(ctx context.Context, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", issueTable)
	result, err := r.storage.Exec(ctx, query, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperrors.ErrInUse
		}
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

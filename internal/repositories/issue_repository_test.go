package repositories

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"hospital-maintenance/internal/dto"
	"hospital-maintenance/pkg/database/postgresql"
	apperrors "hospital-maintenance/pkg/errors"
	"hospital-maintenance/pkg/utils"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPool *pgxpool.Pool

// TestMain connects to the test database named by TEST_DATABASE_URL and
// applies the embedded migrations. Without the variable the integration tests
// are skipped.
func TestMain(m *testing.M) {
	testDbUrl := os.Getenv("TEST_DATABASE_URL")
	if testDbUrl == "" {
		os.Exit(m.Run())
	}

	var err error
	testPool, err = pgxpool.New(context.Background(), testDbUrl)
	if err != nil {
		log.Fatalf("failed to connect to the test database: %v", err)
	}
	defer testPool.Close()

	if err := postgresql.RunMigrations(testPool); err != nil {
		log.Fatalf("failed to apply migrations: %v", err)
	}

	os.Exit(m.Run())
}

func requireTestPool(t *testing.T) {
	t.Helper()
	if testPool == nil {
		t.Skip("TEST_DATABASE_URL is not set")
	}
}

// cleanupTables empties every table so tests stay isolated.
func cleanupTables(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(context.Background(),
		`TRUNCATE TABLE activity_log, maintenance_records, issues, equipment, categories, locations CASCADE;`)
	require.NoError(t, err, "failed to clean up tables")
}

// seedEquipment creates the location, category and equipment rows the issue
// tests hang off of.
func seedEquipment(t *testing.T, pool *pgxpool.Pool) (equipmentID string, locationID string) {
	t.Helper()
	ctx := context.Background()

	err := pool.QueryRow(ctx,
		`INSERT INTO locations (name) VALUES ('City General Hospital') RETURNING id`).Scan(&locationID)
	require.NoError(t, err)

	var categoryID string
	err = pool.QueryRow(ctx,
		`INSERT INTO categories (name) VALUES ('Imaging') RETURNING id`).Scan(&categoryID)
	require.NoError(t, err)

	err = pool.QueryRow(ctx,
		`INSERT INTO equipment (equipment_code, name, category_id, location_id)
		 VALUES ('EQ-XR-001', 'X-Ray Machine', $1, $2) RETURNING id`,
		categoryID, locationID).Scan(&equipmentID)
	require.NoError(t, err)

	return
}

func createTestIssue(t *testing.T, repo IssueRepositoryInterface, equipmentID string) *dto.IssueDTO {
	t.Helper()
	created, err := repo.CreateIssue(context.Background(), dto.CreateIssueDTO{
		EquipmentID: equipmentID,
		Title:       "Issue reported for X-Ray Machine",
		Description: "Display flickers and shuts down",
		Severity:    dto.SeverityMajor,
		Status:      dto.IssueReported,
		ReportedBy:  "Nurse Joy",
		Attachments: []string{"https://photos.test/a.jpg"},
	})
	require.NoError(t, err)
	return created
}

func TestIssueRepository_Integration_CreateAndFind(t *testing.T) {
	requireTestPool(t)
	cleanupTables(t, testPool)
	equipmentID, _ := seedEquipment(t, testPool)
	repo := NewIssueRepository(testPool)

	created := createTestIssue(t, repo, equipmentID)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, dto.IssueReported, created.Status)
	assert.Equal(t, []string{"https://photos.test/a.jpg"}, created.Attachments)

	t.Run("find carries the joined details", func(t *testing.T) {
		found, err := repo.FindIssue(context.Background(), created.ID)
		require.NoError(t, err)
		require.NotNil(t, found.EquipmentCode)
		assert.Equal(t, "EQ-XR-001", *found.EquipmentCode)
		require.NotNil(t, found.HospitalName)
		assert.Equal(t, "City General Hospital", *found.HospitalName)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.FindIssue(context.Background(), "00000000-0000-0000-0000-000000000000")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestIssueRepository_Integration_StatusStamps(t *testing.T) {
	requireTestPool(t)
	cleanupTables(t, testPool)
	equipmentID, _ := seedEquipment(t, testPool)
	repo := NewIssueRepository(testPool)
	ctx := context.Background()

	created := createTestIssue(t, repo, equipmentID)

	acknowledged, err := repo.UpdateIssueStatus(ctx, created.ID, dto.IssueAcknowledged, time.Now())
	require.NoError(t, err)
	require.NotNil(t, acknowledged.AcknowledgedAt)
	firstStamp := *acknowledged.AcknowledgedAt

	// a later pass through the same status must not move the stamp
	again, err := repo.UpdateIssueStatus(ctx, created.ID, dto.IssueAcknowledged, time.Now().Add(time.Hour))
	require.NoError(t, err)
	require.NotNil(t, again.AcknowledgedAt)
	assert.True(t, again.AcknowledgedAt.Equal(firstStamp))
}

func TestIssueRepository_Integration_Resolve(t *testing.T) {
	requireTestPool(t)
	cleanupTables(t, testPool)
	equipmentID, _ := seedEquipment(t, testPool)
	repo := NewIssueRepository(testPool)
	ctx := context.Background()

	created := createTestIssue(t, repo, equipmentID)

	resolved, err := repo.ResolveIssue(ctx, created.ID, "Replaced the display cable", utils.ToPtr("Technician Rustam"), time.Now())
	require.NoError(t, err)

	assert.Equal(t, dto.IssueResolved, resolved.Status)
	require.NotNil(t, resolved.ResolutionNotes)
	assert.Equal(t, "Replaced the display cable", *resolved.ResolutionNotes)
	require.NotNil(t, resolved.ResolvedAt)
	require.NotNil(t, resolved.AssignedTo)
	assert.Equal(t, "Technician Rustam", *resolved.AssignedTo)
}

func TestIssueRepository_Integration_OpenIssuesOrdering(t *testing.T) {
	requireTestPool(t)
	cleanupTables(t, testPool)
	equipmentID, _ := seedEquipment(t, testPool)
	repo := NewIssueRepository(testPool)
	ctx := context.Background()

	for _, severity := range []dto.IssueSeverity{dto.SeverityMinor, dto.SeverityCritical, dto.SeverityModerate} {
		_, err := repo.CreateIssue(ctx, dto.CreateIssueDTO{
			EquipmentID: equipmentID,
			Title:       "Issue reported for X-Ray Machine",
			Description: string(severity) + " problem",
			Severity:    severity,
			Status:      dto.IssueReported,
			ReportedBy:  "Nurse Joy",
		})
		require.NoError(t, err)
	}

	resolvedIssue := createTestIssue(t, repo, equipmentID)
	_, err := repo.ResolveIssue(ctx, resolvedIssue.ID, "fixed", nil, time.Now())
	require.NoError(t, err)

	open, err := repo.GetOpenIssues(ctx)
	require.NoError(t, err)

	require.Len(t, open, 3, "resolved issues are excluded")
	assert.Equal(t, dto.SeverityCritical, open[0].Severity)
	assert.Equal(t, dto.SeverityModerate, open[1].Severity)
	assert.Equal(t, dto.SeverityMinor, open[2].Severity)
}

func TestIssueRepository_Integration_FindLatestOpenByEquipment(t *testing.T) {
	requireTestPool(t)
	cleanupTables(t, testPool)
	equipmentID, _ := seedEquipment(t, testPool)
	repo := NewIssueRepository(testPool)
	ctx := context.Background()

	t.Run("no open issue", func(t *testing.T) {
		_, err := repo.FindLatestOpenByEquipment(ctx, equipmentID)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("latest of several", func(t *testing.T) {
		first := createTestIssue(t, repo, equipmentID)
		second := createTestIssue(t, repo, equipmentID)

		_, err := testPool.Exec(ctx,
			`UPDATE issues SET reported_at = now() - interval '1 hour' WHERE id = $1`, first.ID)
		require.NoError(t, err)

		latest, err := repo.FindLatestOpenByEquipment(ctx, equipmentID)
		require.NoError(t, err)
		assert.Equal(t, second.ID, latest.ID)
	})
}

func TestIssueRepository_Integration_Delete(t *testing.T) {
	requireTestPool(t)
	cleanupTables(t, testPool)
	equipmentID, _ := seedEquipment(t, testPool)
	repo := NewIssueRepository(testPool)
	ctx := context.Background()

	created := createTestIssue(t, repo, equipmentID)
	require.NoError(t, repo.DeleteIssue(ctx, created.ID))

	_, err := repo.FindIssue(ctx, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	t.Run("deleting twice", func(t *testing.T) {
		err := repo.DeleteIssue(ctx, created.ID)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

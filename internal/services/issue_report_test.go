package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"hospital-maintenance/internal/dto"
	apperrors "hospital-maintenance/pkg/errors"
	"hospital-maintenance/pkg/photostorage"
	"hospital-maintenance/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDeriveEquipmentStatus(t *testing.T) {
	cases := []struct {
		severity dto.IssueSeverity
		want     dto.EquipmentStatus
	}{
		{dto.SeverityCritical, dto.EquipmentRepair},
		{dto.SeverityMajor, dto.EquipmentRepair},
		{dto.SeverityModerate, dto.EquipmentMaintenance},
		{dto.SeverityMinor, dto.EquipmentMaintenance},
	}
	for _, tc := range cases {
		t.Run(string(tc.severity), func(t *testing.T) {
			assert.Equal(t, tc.want, DeriveEquipmentStatus(tc.severity))
		})
	}
}

type reportFixture struct {
	service       *IssueReportService
	equipmentRepo *fakeEquipmentRepo
	issueRepo     *fakeIssueRepo
	activityRepo  *fakeActivityRepo
	photoStorage  *fakePhotoStorage
	notifier      *fakeNotifier
}

func newReportFixture() *reportFixture {
	logger := zap.NewNop()
	equipmentRepo := newFakeEquipmentRepo()
	issueRepo := newFakeIssueRepo()
	activityRepo := &fakeActivityRepo{}
	storage := &fakePhotoStorage{}
	notifierFake := &fakeNotifier{}
	activityService := NewActivityService(activityRepo, logger)

	equipmentRepo.add(dto.EquipmentDTO{
		ID:            "eq-1",
		EquipmentCode: "EQ-XR-001",
		Name:          "X-Ray Machine",
		Status:        dto.EquipmentOperational,
		LocationName:  utils.ToPtr("City General Hospital"),
	})

	return &reportFixture{
		service:       NewIssueReportService(equipmentRepo, issueRepo, activityService, storage, notifierFake, logger),
		equipmentRepo: equipmentRepo,
		issueRepo:     issueRepo,
		activityRepo:  activityRepo,
		photoStorage:  storage,
		notifier:      notifierFake,
	}
}

func TestReportIssue(t *testing.T) {
	ctx := context.Background()

	t.Run("full report creates issue, updates status, logs and notifies", func(t *testing.T) {
		f := newReportFixture()
		photos := []photostorage.File{
			{Name: "broken-panel.jpg", Content: strings.NewReader("jpeg")},
			{Name: "error-screen.jpg", Content: strings.NewReader("jpeg")},
		}

		issue, err := f.service.ReportIssue(ctx, dto.CreateIssueReportDTO{
			EquipmentCode: "EQ-XR-001",
			Description:   "Display flickers and shuts down",
			ReportedBy:    "Nurse Joy",
			Severity:      "critical",
		}, photos)
		require.NoError(t, err)

		assert.Equal(t, "Issue reported for X-Ray Machine", issue.Title)
		assert.Equal(t, dto.IssueReported, issue.Status)
		assert.Equal(t, dto.SeverityCritical, issue.Severity)
		assert.Len(t, issue.Attachments, 2)

		require.Len(t, f.equipmentRepo.statusUpdates["eq-1"], 1)
		assert.Equal(t, dto.EquipmentRepair, f.equipmentRepo.statusUpdates["eq-1"][0])

		require.Len(t, f.activityRepo.entries, 1)
		assert.Equal(t, dto.ActivityIssueReported, f.activityRepo.entries[0].ActivityType)

		require.Len(t, f.notifier.alerts, 1)
		assert.Equal(t, "City General Hospital", f.notifier.alerts[0].LocationName)
		assert.Equal(t, "EQ-XR-001", f.notifier.alerts[0].EquipmentCode)
	})

	t.Run("severity defaults to moderate", func(t *testing.T) {
		f := newReportFixture()

		issue, err := f.service.ReportIssue(ctx, dto.CreateIssueReportDTO{
			EquipmentCode: "EQ-XR-001",
			Description:   "Squeaky wheel",
			ReportedBy:    "Nurse Joy",
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, dto.SeverityModerate, issue.Severity)
		assert.Equal(t, dto.EquipmentMaintenance, f.equipmentRepo.statusUpdates["eq-1"][0])
	})

	t.Run("attachments are never nil", func(t *testing.T) {
		f := newReportFixture()

		issue, err := f.service.ReportIssue(ctx, dto.CreateIssueReportDTO{
			EquipmentCode: "EQ-XR-001",
			Description:   "No photos this time",
			ReportedBy:    "Nurse Joy",
		}, nil)
		require.NoError(t, err)
		assert.NotNil(t, issue.Attachments)
		assert.Empty(t, issue.Attachments)
	})

	t.Run("unknown equipment code is a distinct not-found", func(t *testing.T) {
		f := newReportFixture()

		_, err := f.service.ReportIssue(ctx, dto.CreateIssueReportDTO{
			EquipmentCode: "EQ-NOPE-999",
			Description:   "Ghost machine",
			ReportedBy:    "Nurse Joy",
		}, []photostorage.File{{Name: "a.jpg", Content: strings.NewReader("x")}})
		require.Error(t, err)

		var httpErr *apperrors.HttpError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusNotFound, httpErr.Code)
		assert.Contains(t, httpErr.Message, "EQ-NOPE-999")

		assert.Empty(t, f.issueRepo.created, "no issue may be created")
		assert.Len(t, f.photoStorage.deleted, 1, "orphaned upload must be removed")
	})

	t.Run("photo upload failure aborts before any write", func(t *testing.T) {
		f := newReportFixture()
		f.photoStorage.uploadErr = errors.New("bucket unreachable")

		_, err := f.service.ReportIssue(ctx, dto.CreateIssueReportDTO{
			EquipmentCode: "EQ-XR-001",
			Description:   "Display flickers",
			ReportedBy:    "Nurse Joy",
		}, []photostorage.File{{Name: "a.jpg", Content: strings.NewReader("x")}})
		require.Error(t, err)

		assert.Empty(t, f.issueRepo.created)
		assert.Empty(t, f.equipmentRepo.statusUpdates)
		assert.Empty(t, f.notifier.alerts)
	})

	t.Run("issue creation failure cleans up uploads", func(t *testing.T) {
		f := newReportFixture()
		f.issueRepo.createErr = errors.New("insert failed")

		_, err := f.service.ReportIssue(ctx, dto.CreateIssueReportDTO{
			EquipmentCode: "EQ-XR-001",
			Description:   "Display flickers",
			ReportedBy:    "Nurse Joy",
		}, []photostorage.File{{Name: "a.jpg", Content: strings.NewReader("x")}})
		require.Error(t, err)
		assert.Len(t, f.photoStorage.deleted, 1)
	})

	t.Run("status update failure does not fail the report", func(t *testing.T) {
		f := newReportFixture()
		f.equipmentRepo.statusErr = errors.New("deadlock")

		issue, err := f.service.ReportIssue(ctx, dto.CreateIssueReportDTO{
			EquipmentCode: "EQ-XR-001",
			Description:   "Display flickers",
			ReportedBy:    "Nurse Joy",
			Severity:      "major",
		}, nil)
		require.NoError(t, err)
		assert.NotNil(t, issue)
		assert.Len(t, f.notifier.alerts, 1, "later steps still run")
	})

	t.Run("activity and notification failures do not fail the report", func(t *testing.T) {
		f := newReportFixture()
		f.activityRepo.createErr = errors.New("log table locked")
		f.notifier.sendErr = errors.New("telegram down")

		issue, err := f.service.ReportIssue(ctx, dto.CreateIssueReportDTO{
			EquipmentCode: "EQ-XR-001",
			Description:   "Display flickers",
			ReportedBy:    "Nurse Joy",
		}, nil)
		require.NoError(t, err)
		assert.NotNil(t, issue)
	})
}

func TestAddPhotosToIssue(t *testing.T) {
	ctx := context.Background()

	t.Run("appends uploaded URLs", func(t *testing.T) {
		f := newReportFixture()
		created, err := f.issueRepo.CreateIssue(ctx, dto.CreateIssueDTO{
			EquipmentID: "eq-1",
			Title:       "Issue reported for X-Ray Machine",
			Description: "Display flickers",
			Severity:    dto.SeverityModerate,
			Status:      dto.IssueReported,
			ReportedBy:  "Nurse Joy",
			Attachments: []string{"https://photos.test/existing.jpg"},
		})
		require.NoError(t, err)

		updated, err := f.service.AddPhotosToIssue(ctx, created.ID, []photostorage.File{
			{Name: "extra.jpg", Content: strings.NewReader("x")},
		})
		require.NoError(t, err)
		assert.Len(t, updated.Attachments, 2)
		assert.Equal(t, "https://photos.test/existing.jpg", updated.Attachments[0])
	})

	t.Run("rejects empty photo set", func(t *testing.T) {
		f := newReportFixture()
		_, err := f.service.AddPhotosToIssue(ctx, "issue-1", nil)
		var invalid *apperrors.InvalidInputError
		assert.ErrorAs(t, err, &invalid)
	})
}

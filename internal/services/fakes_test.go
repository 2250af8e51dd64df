package services

import (
	"context"
	"fmt"
	"time"

	"hospital-maintenance/internal/dto"
	apperrors "hospital-maintenance/pkg/errors"
	"hospital-maintenance/pkg/notifier"
	"hospital-maintenance/pkg/photostorage"
	"hospital-maintenance/pkg/types"
)

type maintenanceDateStamp struct {
	equipmentID string
	lastDate    time.Time
	nextDate    *time.Time
}

type fakeEquipmentRepo struct {
	byID          map[string]dto.EquipmentDTO
	byCode        map[string]dto.EquipmentDTO
	statusUpdates map[string][]dto.EquipmentStatus
	dateStamps    []maintenanceDateStamp
	statusErr     error
}

func newFakeEquipmentRepo() *fakeEquipmentRepo {
	return &fakeEquipmentRepo{
		byID:          make(map[string]dto.EquipmentDTO),
		byCode:        make(map[string]dto.EquipmentDTO),
		statusUpdates: make(map[string][]dto.EquipmentStatus),
	}
}

func (f *fakeEquipmentRepo) add(equipment dto.EquipmentDTO) {
	f.byID[equipment.ID] = equipment
	f.byCode[equipment.EquipmentCode] = equipment
}

func (f *fakeEquipmentRepo) GetEquipment(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, uint64, error) {
	return nil, 0, nil
}

func (f *fakeEquipmentRepo) FindEquipment(ctx context.Context, id string) (*dto.EquipmentDTO, error) {
	if equipment, ok := f.byID[id]; ok {
		return &equipment, nil
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeEquipmentRepo) FindEquipmentByCode(ctx context.Context, code string) (*dto.EquipmentDTO, error) {
	if equipment, ok := f.byCode[code]; ok {
		return &equipment, nil
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeEquipmentRepo) GetEquipmentByLocation(ctx context.Context, locationID string) ([]dto.EquipmentDTO, error) {
	return nil, nil
}

func (f *fakeEquipmentRepo) GetMaintenanceDue(ctx context.Context, until time.Time) ([]dto.EquipmentDTO, error) {
	return nil, nil
}

func (f *fakeEquipmentRepo) CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error) {
	return nil, nil
}

func (f *fakeEquipmentRepo) UpdateEquipment(ctx context.Context, id string, payload dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, error) {
	return nil, nil
}

func (f *fakeEquipmentRepo) UpdateEquipmentStatus(ctx context.Context, id string, status dto.EquipmentStatus) error {
	if f.statusErr != nil {
		return f.statusErr
	}
	f.statusUpdates[id] = append(f.statusUpdates[id], status)
	if equipment, ok := f.byID[id]; ok {
		equipment.Status = status
		f.byID[id] = equipment
		f.byCode[equipment.EquipmentCode] = equipment
	}
	return nil
}

func (f *fakeEquipmentRepo) SetMaintenanceDates(ctx context.Context, id string, lastDate time.Time, nextDate *time.Time) error {
	f.dateStamps = append(f.dateStamps, maintenanceDateStamp{equipmentID: id, lastDate: lastDate, nextDate: nextDate})
	return nil
}

func (f *fakeEquipmentRepo) SoftDeleteEquipment(ctx context.Context, id string) error {
	return nil
}

type fakeIssueRepo struct {
	issues     map[string]dto.IssueDTO
	details    map[string]dto.IssueDetailsDTO
	createErr  error
	created    []dto.CreateIssueDTO
	nextID     int
	statusOps  []dto.IssueStatus
	resolveOps []string
}

func newFakeIssueRepo() *fakeIssueRepo {
	return &fakeIssueRepo{
		issues:  make(map[string]dto.IssueDTO),
		details: make(map[string]dto.IssueDetailsDTO),
	}
}

func (f *fakeIssueRepo) GetIssues(ctx context.Context, filter types.Filter) ([]dto.IssueDetailsDTO, uint64, error) {
	return nil, 0, nil
}

func (f *fakeIssueRepo) GetOpenIssues(ctx context.Context) ([]dto.IssueDetailsDTO, error) {
	return nil, nil
}

func (f *fakeIssueRepo) GetIssuesWithDetails(ctx context.Context) ([]dto.IssueDetailsDTO, error) {
	return nil, nil
}

func (f *fakeIssueRepo) GetIssuesByEquipment(ctx context.Context, equipmentID string) ([]dto.IssueDTO, error) {
	return nil, nil
}

func (f *fakeIssueRepo) FindIssue(ctx context.Context, id string) (*dto.IssueDetailsDTO, error) {
	if details, ok := f.details[id]; ok {
		return &details, nil
	}
	if issue, ok := f.issues[id]; ok {
		return &dto.IssueDetailsDTO{IssueDTO: issue}, nil
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeIssueRepo) FindLatestOpenByEquipment(ctx context.Context, equipmentID string) (*dto.IssueDTO, error) {
	var latest *dto.IssueDTO
	for id := range f.issues {
		issue := f.issues[id]
		if issue.EquipmentID != nil && *issue.EquipmentID == equipmentID && issue.Status.IsOpen() {
			if latest == nil || issue.ReportedAt.After(latest.ReportedAt) {
				latest = &issue
			}
		}
	}
	if latest == nil {
		return nil, apperrors.ErrNotFound
	}
	return latest, nil
}

func (f *fakeIssueRepo) CreateIssue(ctx context.Context, payload dto.CreateIssueDTO) (*dto.IssueDTO, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, payload)
	f.nextID++
	attachments := payload.Attachments
	if attachments == nil {
		attachments = []string{}
	}
	issue := dto.IssueDTO{
		ID:          fmt.Sprintf("issue-%d", f.nextID),
		EquipmentID: &payload.EquipmentID,
		Title:       payload.Title,
		Description: payload.Description,
		Severity:    payload.Severity,
		Status:      payload.Status,
		ReportedBy:  payload.ReportedBy,
		ReportedAt:  time.Now(),
		Attachments: attachments,
	}
	f.issues[issue.ID] = issue
	return &issue, nil
}

func (f *fakeIssueRepo) UpdateIssue(ctx context.Context, id string, payload dto.UpdateIssueDTO) (*dto.IssueDTO, error) {
	issue, ok := f.issues[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if payload.Attachments != nil {
		issue.Attachments = *payload.Attachments
	}
	if payload.ResolutionNotes != nil {
		issue.ResolutionNotes = payload.ResolutionNotes
	}
	f.issues[id] = issue
	return &issue, nil
}

func (f *fakeIssueRepo) UpdateIssueStatus(ctx context.Context, id string, status dto.IssueStatus, at time.Time) (*dto.IssueDTO, error) {
	issue, ok := f.issues[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	issue.Status = status
	switch status {
	case dto.IssueAcknowledged:
		if issue.AcknowledgedAt == nil {
			issue.AcknowledgedAt = &at
		}
	case dto.IssueResolved:
		if issue.ResolvedAt == nil {
			issue.ResolvedAt = &at
		}
	case dto.IssueClosed:
		if issue.ClosedAt == nil {
			issue.ClosedAt = &at
		}
	}
	f.issues[id] = issue
	f.statusOps = append(f.statusOps, status)
	return &issue, nil
}

func (f *fakeIssueRepo) AssignIssue(ctx context.Context, id string, assignedTo string) (*dto.IssueDTO, error) {
	issue, ok := f.issues[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	issue.AssignedTo = &assignedTo
	f.issues[id] = issue
	return &issue, nil
}

func (f *fakeIssueRepo) ResolveIssue(ctx context.Context, id string, notes string, resolvedBy *string, at time.Time) (*dto.IssueDTO, error) {
	issue, ok := f.issues[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	issue.Status = dto.IssueResolved
	issue.ResolutionNotes = &notes
	if issue.ResolvedAt == nil {
		issue.ResolvedAt = &at
	}
	f.issues[id] = issue
	f.resolveOps = append(f.resolveOps, id)
	return &issue, nil
}

func (f *fakeIssueRepo) DeleteIssue(ctx context.Context, id string) error {
	if _, ok := f.issues[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(f.issues, id)
	return nil
}

type fakeMaintenanceRepo struct {
	records map[string]dto.MaintenanceRecordDTO
	nextID  int
}

func newFakeMaintenanceRepo() *fakeMaintenanceRepo {
	return &fakeMaintenanceRepo{records: make(map[string]dto.MaintenanceRecordDTO)}
}

func (f *fakeMaintenanceRepo) GetMaintenanceRecords(ctx context.Context, filter types.Filter) ([]dto.MaintenanceRecordDTO, uint64, error) {
	return nil, 0, nil
}

func (f *fakeMaintenanceRepo) GetByStatus(ctx context.Context, status dto.MaintenanceStatus) ([]dto.MaintenanceRecordDTO, error) {
	return nil, nil
}

func (f *fakeMaintenanceRepo) GetByEquipment(ctx context.Context, equipmentID string) ([]dto.MaintenanceRecordDTO, error) {
	return nil, nil
}

func (f *fakeMaintenanceRepo) FindMaintenanceRecord(ctx context.Context, id string) (*dto.MaintenanceRecordDTO, error) {
	if record, ok := f.records[id]; ok {
		return &record, nil
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeMaintenanceRepo) CreateMaintenanceRecord(ctx context.Context, payload dto.ScheduleMaintenanceDTO) (*dto.MaintenanceRecordDTO, error) {
	f.nextID++
	priority := dto.MaintenancePriority(payload.Priority)
	if priority == "" {
		priority = dto.PriorityMedium
	}
	record := dto.MaintenanceRecordDTO{
		ID:            fmt.Sprintf("maintenance-%d", f.nextID),
		EquipmentID:   &payload.EquipmentID,
		Description:   payload.Description,
		Priority:      priority,
		Status:        dto.MaintenanceScheduled,
		ScheduledDate: payload.ScheduledDate,
		CreatedAt:     time.Now(),
	}
	f.records[record.ID] = record
	return &record, nil
}

func (f *fakeMaintenanceRepo) UpdateMaintenanceRecord(ctx context.Context, id string, payload dto.UpdateMaintenanceDTO) (*dto.MaintenanceRecordDTO, error) {
	record, ok := f.records[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if payload.Description != nil {
		record.Description = *payload.Description
	}
	if payload.Notes != nil {
		record.Notes = payload.Notes
	}
	f.records[id] = record
	return &record, nil
}

func (f *fakeMaintenanceRepo) StartMaintenance(ctx context.Context, id string, performedBy *string, at time.Time) (*dto.MaintenanceRecordDTO, error) {
	record, ok := f.records[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	record.Status = dto.MaintenanceInProgress
	if record.StartedAt == nil {
		record.StartedAt = &at
	}
	if performedBy != nil {
		record.PerformedBy = performedBy
	}
	f.records[id] = record
	return &record, nil
}

func (f *fakeMaintenanceRepo) CompleteMaintenance(ctx context.Context, id string, payload dto.CompleteMaintenanceDTO, at time.Time) (*dto.MaintenanceRecordDTO, error) {
	record, ok := f.records[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	record.Status = dto.MaintenanceCompleted
	if record.CompletedAt == nil {
		record.CompletedAt = &at
	}
	record.Cost = payload.Cost
	record.PartsReplaced = payload.PartsReplaced
	if payload.Notes != nil {
		record.Notes = payload.Notes
	}
	record.NextMaintenanceDate = payload.NextMaintenanceDate
	if payload.PerformedBy != nil {
		record.PerformedBy = payload.PerformedBy
	}
	f.records[id] = record
	return &record, nil
}

func (f *fakeMaintenanceRepo) CancelMaintenance(ctx context.Context, id string, notes *string) (*dto.MaintenanceRecordDTO, error) {
	record, ok := f.records[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	record.Status = dto.MaintenanceCancelled
	if notes != nil {
		record.Notes = notes
	}
	f.records[id] = record
	return &record, nil
}

type fakeActivityRepo struct {
	entries   []dto.CreateActivityDTO
	createErr error
}

func (f *fakeActivityRepo) CreateActivity(ctx context.Context, payload dto.CreateActivityDTO) (*dto.ActivityLogDTO, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.entries = append(f.entries, payload)
	return &dto.ActivityLogDTO{
		ID:           fmt.Sprintf("activity-%d", len(f.entries)),
		ActivityType: payload.ActivityType,
		Title:        payload.Title,
		CreatedAt:    time.Now(),
	}, nil
}

func (f *fakeActivityRepo) GetRecentActivity(ctx context.Context, limit int) ([]dto.RecentActivityDTO, error) {
	return nil, nil
}

func (f *fakeActivityRepo) GetActivityByEquipment(ctx context.Context, equipmentID string, limit int) ([]dto.ActivityLogDTO, error) {
	return nil, nil
}

type fakePhotoStorage struct {
	uploaded  []string
	deleted   []string
	uploadErr error
}

func (f *fakePhotoStorage) Upload(ctx context.Context, file photostorage.File, equipmentCode string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	url := fmt.Sprintf("https://photos.test/%s/%s", equipmentCode, file.Name)
	f.uploaded = append(f.uploaded, url)
	return url, nil
}

func (f *fakePhotoStorage) UploadMany(ctx context.Context, files []photostorage.File, equipmentCode string) ([]string, error) {
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	urls := make([]string, 0, len(files))
	for _, file := range files {
		url, _ := f.Upload(ctx, file, equipmentCode)
		urls = append(urls, url)
	}
	return urls, nil
}

func (f *fakePhotoStorage) Delete(ctx context.Context, fileURL string) error {
	f.deleted = append(f.deleted, fileURL)
	return nil
}

func (f *fakePhotoStorage) DeleteMany(ctx context.Context, fileURLs []string) error {
	f.deleted = append(f.deleted, fileURLs...)
	return nil
}

func (f *fakePhotoStorage) ListForEquipment(ctx context.Context, equipmentCode string) ([]string, error) {
	return nil, nil
}

type fakeNotifier struct {
	alerts  []notifier.IssueAlert
	sendErr error
}

func (f *fakeNotifier) SendIssueAlert(ctx context.Context, alert notifier.IssueAlert) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.alerts = append(f.alerts, alert)
	return nil
}

func (f *fakeNotifier) WhatsAppLink(alert notifier.IssueAlert) string {
	return notifier.BuildWhatsAppLink("15550000000", alert)
}

type fakeLocationRepo struct {
	locations []dto.LocationDTO
	listCalls int
	nextID    int
}

func (f *fakeLocationRepo) GetLocations(ctx context.Context, filter types.Filter) ([]dto.LocationDTO, uint64, error) {
	f.listCalls++
	return f.locations, uint64(len(f.locations)), nil
}

func (f *fakeLocationRepo) FindLocation(ctx context.Context, id string) (*dto.LocationDTO, error) {
	for i := range f.locations {
		if f.locations[i].ID == id {
			return &f.locations[i], nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeLocationRepo) CreateLocation(ctx context.Context, payload dto.CreateLocationDTO) (*dto.LocationDTO, error) {
	f.nextID++
	location := dto.LocationDTO{
		ID:       fmt.Sprintf("location-%d", f.nextID),
		Name:     payload.Name,
		IsActive: true,
	}
	f.locations = append(f.locations, location)
	return &location, nil
}

func (f *fakeLocationRepo) UpdateLocation(ctx context.Context, id string, payload dto.UpdateLocationDTO) (*dto.LocationDTO, error) {
	for i := range f.locations {
		if f.locations[i].ID == id {
			if payload.Name != nil {
				f.locations[i].Name = *payload.Name
			}
			return &f.locations[i], nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeLocationRepo) SoftDeleteLocation(ctx context.Context, id string) error {
	for i := range f.locations {
		if f.locations[i].ID == id {
			f.locations = append(f.locations[:i], f.locations[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

type fakeCacheRepo struct {
	store map[string]string
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{store: make(map[string]string)}
}

func (f *fakeCacheRepo) Get(ctx context.Context, key string) (string, error) {
	if val, ok := f.store[key]; ok {
		return val, nil
	}
	return "", fmt.Errorf("cache miss")
}

func (f *fakeCacheRepo) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	switch v := value.(type) {
	case string:
		f.store[key] = v
	case []byte:
		f.store[key] = string(v)
	default:
		f.store[key] = fmt.Sprintf("%v", v)
	}
	return nil
}

func (f *fakeCacheRepo) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.store, key)
	}
	return nil
}

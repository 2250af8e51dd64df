package dto

// EquipmentStatus is derived state: the issue workflow and maintenance
// completion overwrite it, it is never edited independently.
type EquipmentStatus string

const (
	EquipmentOperational  EquipmentStatus = "operational"
	EquipmentMaintenance  EquipmentStatus = "maintenance"
	EquipmentOutOfService EquipmentStatus = "out_of_service"
	EquipmentRepair       EquipmentStatus = "repair"
)

type IssueSeverity string

const (
	SeverityMinor    IssueSeverity = "minor"
	SeverityModerate IssueSeverity = "moderate"
	SeverityMajor    IssueSeverity = "major"
	SeverityCritical IssueSeverity = "critical"
)

// severityRank orders severities for display (critical first).
var severityRank = map[IssueSeverity]int{
	SeverityCritical: 4,
	SeverityMajor:    3,
	SeverityModerate: 2,
	SeverityMinor:    1,
}

func (s IssueSeverity) Rank() int { return severityRank[s] }

type IssueStatus string

const (
	IssueReported     IssueStatus = "reported"
	IssueAcknowledged IssueStatus = "acknowledged"
	IssueInProgress   IssueStatus = "in_progress"
	IssueResolved     IssueStatus = "resolved"
	IssueClosed       IssueStatus = "closed"
)

// IsOpen reports whether the issue still needs attention.
func (s IssueStatus) IsOpen() bool {
	return s == IssueReported || s == IssueAcknowledged || s == IssueInProgress
}

type MaintenancePriority string

const (
	PriorityLow      MaintenancePriority = "low"
	PriorityMedium   MaintenancePriority = "medium"
	PriorityHigh     MaintenancePriority = "high"
	PriorityCritical MaintenancePriority = "critical"
)

type MaintenanceStatus string

const (
	MaintenanceScheduled  MaintenanceStatus = "scheduled"
	MaintenanceInProgress MaintenanceStatus = "in_progress"
	MaintenanceCompleted  MaintenanceStatus = "completed"
	MaintenanceCancelled  MaintenanceStatus = "cancelled"
)

type ActivityType string

const (
	ActivityIssueReported        ActivityType = "issue_reported"
	ActivityIssueAcknowledged    ActivityType = "issue_acknowledged"
	ActivityIssueResolved        ActivityType = "issue_resolved"
	ActivityMaintenanceScheduled ActivityType = "maintenance_scheduled"
	ActivityMaintenanceCompleted ActivityType = "maintenance_completed"
	ActivityEquipmentAdded       ActivityType = "equipment_added"
	ActivityEquipmentUpdated     ActivityType = "equipment_updated"
	ActivityStatusChanged        ActivityType = "status_changed"
)

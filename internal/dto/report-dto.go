package dto

// CreateIssueReportDTO is the input of the issue-report workflow. Photos come
// in through the multipart form, not this struct.
type CreateIssueReportDTO struct {
	EquipmentCode string `json:"equipment_code" form:"equipment_code" validate:"required"`
	Description   string `json:"description" form:"description" validate:"required"`
	ReportedBy    string `json:"reported_by" form:"reported_by" validate:"required"`
	Severity      string `json:"severity" form:"severity" validate:"omitempty,oneof=minor moderate major critical"`
}

// HospitalIssueStatsDTO is the per-hospital fold over the issues report.
// "Open" is the union of reported, acknowledged and in_progress.
type HospitalIssueStatsDTO struct {
	Total    int `json:"total"`
	Open     int `json:"open"`
	Resolved int `json:"resolved"`
	Closed   int `json:"closed"`
	Critical int `json:"critical"`
	Major    int `json:"major"`
	Moderate int `json:"moderate"`
	Minor    int `json:"minor"`
}

package dto

import (
	"time"
)

type IssueDTO struct {
	ID              string        `json:"id"`
	EquipmentID     *string       `json:"equipment_id,omitempty"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	Severity        IssueSeverity `json:"severity"`
	Status          IssueStatus   `json:"status"`
	ReportedBy      string        `json:"reported_by"`
	ReportedAt      time.Time     `json:"reported_at"`
	AssignedTo      *string       `json:"assigned_to,omitempty"`
	AcknowledgedAt  *time.Time    `json:"acknowledged_at,omitempty"`
	ResolvedAt      *time.Time    `json:"resolved_at,omitempty"`
	ClosedAt        *time.Time    `json:"closed_at,omitempty"`
	ResolutionNotes *string       `json:"resolution_notes,omitempty"`
	Attachments     []string      `json:"attachments"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// IssueDetailsDTO joins the issue with its parent equipment's display code and
// name, and the hospital it lives in, fetched in one round trip.
type IssueDetailsDTO struct {
	IssueDTO
	EquipmentCode *string `json:"equipment_code,omitempty"`
	EquipmentName *string `json:"equipment_name,omitempty"`
	HospitalName  *string `json:"hospital_name,omitempty"`
}

type CreateIssueDTO struct {
	EquipmentID string        `json:"equipment_id" validate:"required,uuid"`
	Title       string        `json:"title" validate:"required"`
	Description string        `json:"description" validate:"required"`
	Severity    IssueSeverity `json:"severity" validate:"required,oneof=minor moderate major critical"`
	Status      IssueStatus   `json:"status" validate:"required,oneof=reported acknowledged in_progress resolved closed"`
	ReportedBy  string        `json:"reported_by" validate:"required"`
	Attachments []string      `json:"attachments"`
}

type UpdateIssueDTO struct {
	Title           *string   `json:"title"`
	Description     *string   `json:"description"`
	Severity        *string   `json:"severity" validate:"omitempty,oneof=minor moderate major critical"`
	AssignedTo      *string   `json:"assigned_to"`
	ResolutionNotes *string   `json:"resolution_notes"`
	Attachments     *[]string `json:"attachments"`
}

type UpdateIssueStatusDTO struct {
	Status string `json:"status" validate:"required,oneof=reported acknowledged in_progress resolved closed"`
}

type AssignIssueDTO struct {
	AssignedTo string `json:"assigned_to" validate:"required"`
}

type ResolveIssueDTO struct {
	ResolutionNotes string  `json:"resolution_notes" validate:"required"`
	ResolvedBy      *string `json:"resolved_by"`
}

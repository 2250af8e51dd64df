package dto

import (
	"time"
)

type ActivityLogDTO struct {
	ID            string                 `json:"id"`
	ActivityType  ActivityType           `json:"activity_type"`
	EquipmentID   *string                `json:"equipment_id,omitempty"`
	IssueID       *string                `json:"issue_id,omitempty"`
	MaintenanceID *string                `json:"maintenance_id,omitempty"`
	Title         string                 `json:"title"`
	Description   *string                `json:"description,omitempty"`
	PerformedBy   *string                `json:"performed_by,omitempty"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
}

// RecentActivityDTO enriches a log entry with the equipment's display fields.
type RecentActivityDTO struct {
	ActivityLogDTO
	EquipmentName *string `json:"equipment_name,omitempty"`
	EquipmentCode *string `json:"equipment_code,omitempty"`
}

type CreateActivityDTO struct {
	ActivityType  ActivityType           `json:"activity_type" validate:"required"`
	EquipmentID   *string                `json:"equipment_id" validate:"omitempty,uuid"`
	IssueID       *string                `json:"issue_id" validate:"omitempty,uuid"`
	MaintenanceID *string                `json:"maintenance_id" validate:"omitempty,uuid"`
	Title         string                 `json:"title" validate:"required"`
	Description   *string                `json:"description"`
	PerformedBy   *string                `json:"performed_by"`
	Metadata      map[string]interface{} `json:"metadata"`
}

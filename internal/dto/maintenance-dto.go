package dto

import (
	"time"

	"github.com/aarondl/null/v8"
)

type MaintenanceRecordDTO struct {
	ID                  string              `json:"id"`
	EquipmentID         *string             `json:"equipment_id,omitempty"`
	MaintenanceType     *string             `json:"maintenance_type,omitempty"`
	Description         string              `json:"description"`
	Priority            MaintenancePriority `json:"priority"`
	Status              MaintenanceStatus   `json:"status"`
	ScheduledDate       *time.Time          `json:"scheduled_date,omitempty"`
	StartedAt           *time.Time          `json:"started_at,omitempty"`
	CompletedAt         *time.Time          `json:"completed_at,omitempty"`
	PerformedBy         *string             `json:"performed_by,omitempty"`
	TechnicianName      *string             `json:"technician_name,omitempty"`
	TechnicianContact   *string             `json:"technician_contact,omitempty"`
	Cost                *float64            `json:"cost,omitempty"`
	PartsReplaced       []string            `json:"parts_replaced,omitempty"`
	Notes               *string             `json:"notes,omitempty"`
	NextMaintenanceDate *time.Time          `json:"next_maintenance_date,omitempty"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
}

type ScheduleMaintenanceDTO struct {
	EquipmentID       string      `json:"equipment_id" validate:"required,uuid"`
	MaintenanceType   null.String `json:"maintenance_type"`
	Description       string      `json:"description" validate:"required"`
	ScheduledDate     *time.Time  `json:"scheduled_date"`
	Priority          string      `json:"priority" validate:"omitempty,oneof=low medium high critical"`
	TechnicianName    null.String `json:"technician_name"`
	TechnicianContact null.String `json:"technician_contact"`
}

type UpdateMaintenanceDTO struct {
	MaintenanceType     *string    `json:"maintenance_type"`
	Description         *string    `json:"description"`
	Priority            *string    `json:"priority" validate:"omitempty,oneof=low medium high critical"`
	ScheduledDate       *time.Time `json:"scheduled_date"`
	TechnicianName      *string    `json:"technician_name"`
	TechnicianContact   *string    `json:"technician_contact"`
	Notes               *string    `json:"notes"`
	NextMaintenanceDate *time.Time `json:"next_maintenance_date"`
}

type StartMaintenanceDTO struct {
	PerformedBy *string `json:"performed_by"`
}

type CompleteMaintenanceDTO struct {
	Cost                *float64   `json:"cost"`
	PartsReplaced       []string   `json:"parts_replaced"`
	Notes               *string    `json:"notes"`
	NextMaintenanceDate *time.Time `json:"next_maintenance_date"`
	PerformedBy         *string    `json:"performed_by"`
}

type CancelMaintenanceDTO struct {
	Notes *string `json:"notes"`
}

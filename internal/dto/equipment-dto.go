package dto

import (
	"time"

	"github.com/aarondl/null/v8"
)

type EquipmentDTO struct {
	ID                       string          `json:"id"`
	EquipmentCode            string          `json:"equipment_code"`
	Name                     string          `json:"name"`
	Description              *string         `json:"description,omitempty"`
	CategoryID               *string         `json:"category_id,omitempty"`
	CategoryName             *string         `json:"category_name,omitempty"`
	LocationID               *string         `json:"location_id,omitempty"`
	LocationName             *string         `json:"location_name,omitempty"`
	Status                   EquipmentStatus `json:"status"`
	Manufacturer             *string         `json:"manufacturer,omitempty"`
	ModelNumber              *string         `json:"model_number,omitempty"`
	SerialNumber             *string         `json:"serial_number,omitempty"`
	PurchaseDate             *time.Time      `json:"purchase_date,omitempty"`
	WarrantyExpiryDate       *time.Time      `json:"warranty_expiry_date,omitempty"`
	LastMaintenanceDate      *time.Time      `json:"last_maintenance_date,omitempty"`
	NextMaintenanceDate      *time.Time      `json:"next_maintenance_date,omitempty"`
	MaintenanceFrequencyDays int             `json:"maintenance_frequency_days"`
	PurchaseCost             *float64        `json:"purchase_cost,omitempty"`
	CurrentValue             *float64        `json:"current_value,omitempty"`
	Notes                    *string         `json:"notes,omitempty"`
	IsActive                 bool            `json:"is_active"`
	CreatedAt                time.Time       `json:"created_at"`
	UpdatedAt                time.Time       `json:"updated_at"`
}

type CreateEquipmentDTO struct {
	EquipmentCode            string      `json:"equipment_code" validate:"required"`
	Name                     string      `json:"name" validate:"required"`
	Description              null.String `json:"description"`
	CategoryID               null.String `json:"category_id" validate:"omitempty,uuid"`
	LocationID               null.String `json:"location_id" validate:"omitempty,uuid"`
	Status                   string      `json:"status" validate:"omitempty,oneof=operational maintenance out_of_service repair"`
	Manufacturer             null.String `json:"manufacturer"`
	ModelNumber              null.String `json:"model_number"`
	SerialNumber             null.String `json:"serial_number"`
	PurchaseDate             *time.Time  `json:"purchase_date"`
	WarrantyExpiryDate       *time.Time  `json:"warranty_expiry_date"`
	NextMaintenanceDate      *time.Time  `json:"next_maintenance_date"`
	MaintenanceFrequencyDays int         `json:"maintenance_frequency_days" validate:"omitempty,min=1"`
	PurchaseCost             *float64    `json:"purchase_cost"`
	CurrentValue             *float64    `json:"current_value"`
	Notes                    null.String `json:"notes"`
}

type UpdateEquipmentDTO struct {
	Name                     *string    `json:"name"`
	Description              *string    `json:"description"`
	CategoryID               *string    `json:"category_id" validate:"omitempty,uuid"`
	LocationID               *string    `json:"location_id" validate:"omitempty,uuid"`
	Manufacturer             *string    `json:"manufacturer"`
	ModelNumber              *string    `json:"model_number"`
	SerialNumber             *string    `json:"serial_number"`
	PurchaseDate             *time.Time `json:"purchase_date"`
	WarrantyExpiryDate       *time.Time `json:"warranty_expiry_date"`
	LastMaintenanceDate      *time.Time `json:"last_maintenance_date"`
	NextMaintenanceDate      *time.Time `json:"next_maintenance_date"`
	MaintenanceFrequencyDays *int       `json:"maintenance_frequency_days" validate:"omitempty,min=1"`
	PurchaseCost             *float64   `json:"purchase_cost"`
	CurrentValue             *float64   `json:"current_value"`
	Notes                    *string    `json:"notes"`
}

type UpdateEquipmentStatusDTO struct {
	Status string `json:"status" validate:"required,oneof=operational maintenance out_of_service repair"`
}

// EquipmentWithIssueDTO is the display overlay: equipment enriched with its
// latest open issue, if any.
type EquipmentWithIssueDTO struct {
	EquipmentDTO
	IssueDescription *string  `json:"issue_description,omitempty"`
	ReportedBy       *string  `json:"reported_by,omitempty"`
	Images           []string `json:"images"`
}

package dto

import (
	"time"

	"github.com/aarondl/null/v8"
)

type LocationDTO struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Address       *string   `json:"address,omitempty"`
	ContactNumber *string   `json:"contact_number,omitempty"`
	Email         *string   `json:"email,omitempty"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type CreateLocationDTO struct {
	Name          string      `json:"name" validate:"required"`
	Address       null.String `json:"address"`
	ContactNumber null.String `json:"contact_number"`
	Email         null.String `json:"email" validate:"omitempty,email"`
}

type UpdateLocationDTO struct {
	Name          *string `json:"name"`
	Address       *string `json:"address"`
	ContactNumber *string `json:"contact_number"`
	Email         *string `json:"email" validate:"omitempty,email"`
}

type ShortLocationDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

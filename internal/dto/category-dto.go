package dto

import (
	"time"

	"github.com/aarondl/null/v8"
)

type CategoryDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Color       *string   `json:"color,omitempty"`
	Icon        *string   `json:"icon,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateCategoryDTO struct {
	Name        string      `json:"name" validate:"required"`
	Description null.String `json:"description"`
	Color       null.String `json:"color"`
	Icon        null.String `json:"icon"`
}

type UpdateCategoryDTO struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
	Icon        *string `json:"icon"`
}

type ShortCategoryDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

package models

import "time"

// Institution is a school or campus that students are enrolled in.
type Institution struct {
	ID        string    `json:"id"`
	Name      string    `json:"name" validate:"required"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email" validate:"omitempty,email"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Program is a course of study offered by an institution.
type Program struct {
	ID            string    `json:"id"`
	InstitutionID string    `json:"institution_id" validate:"required,uuid"`
	Name          string    `json:"name" validate:"required"`
	Level         string    `json:"level"`
	TuitionFee    float64   `json:"tuition_fee" validate:"gte=0"`
	DurationYears int       `json:"duration_years" validate:"gte=0"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	InstitutionName string `json:"institution_name,omitempty"`
}

package models

import "time"

type Student struct {
	ID            string     `json:"id"`
	Matricule     string     `json:"matricule" validate:"required"`
	FirstName     string     `json:"first_name" validate:"required"`
	LastName      string     `json:"last_name" validate:"required"`
	Gender        Gender     `json:"gender" validate:"omitempty,oneof=male female other"`
	BirthDate     *time.Time `json:"birth_date,omitempty"`
	Phone         string     `json:"phone"`
	Email         string     `json:"email" validate:"omitempty,email"`
	Address       string     `json:"address"`
	InstitutionID string     `json:"institution_id" validate:"required,uuid"`
	ProgramID     *string    `json:"program_id,omitempty" validate:"omitempty,uuid"`
	AcademicYear  string     `json:"academic_year"`
	IsActive      bool       `json:"is_active"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Joined fields, populated by list/detail queries.
	InstitutionName string `json:"institution_name,omitempty"`
	ProgramName     string `json:"program_name,omitempty"`
}

// FullName returns the display name used in scan messages and exports.
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

package database

import (
	"database/sql"
	"fmt"
	"strings"

	"scolapay/app/models"
)

// StudentFilters represents filtering options for student listings.
type StudentFilters struct {
	Search        string
	InstitutionID string
	ProgramID     string
	AcademicYear  string
	Status        string // "active", "inactive", "all"
	Limit         int
	Offset        int
}

const studentColumns = `s.id, s.matricule, s.first_name, s.last_name, s.gender, s.birth_date,
		s.phone, s.email, s.address, s.institution_id, s.program_id, s.academic_year,
		s.is_active, s.created_at, s.updated_at,
		i.name AS institution_name, COALESCE(p.name, '') AS program_name`

func scanStudent(row interface{ Scan(...interface{}) error }) (*models.Student, error) {
	s := &models.Student{}
	var gender string
	var birthDate sql.NullTime
	err := row.Scan(
		&s.ID, &s.Matricule, &s.FirstName, &s.LastName, &gender, &birthDate,
		&s.Phone, &s.Email, &s.Address, &s.InstitutionID, &s.ProgramID, &s.AcademicYear,
		&s.IsActive, &s.CreatedAt, &s.UpdatedAt,
		&s.InstitutionName, &s.ProgramName,
	)
	if err != nil {
		return nil, err
	}
	s.Gender = models.Gender(gender)
	if birthDate.Valid {
		s.BirthDate = &birthDate.Time
	}
	return s, nil
}

// GetStudents returns students matching the filters, newest first.
func GetStudents(db *sql.DB, f StudentFilters) ([]*models.Student, error) {
	query := `SELECT ` + studentColumns + `
			  FROM students s
			  JOIN institutions i ON s.institution_id = i.id
			  LEFT JOIN programs p ON s.program_id = p.id`

	var conditions []string
	var args []interface{}
	argIndex := 1

	switch f.Status {
	case "inactive":
		conditions = append(conditions, "s.is_active = false")
	case "all":
	default:
		conditions = append(conditions, "s.is_active = true")
	}

	if f.Search != "" {
		like := "%" + f.Search + "%"
		conditions = append(conditions, fmt.Sprintf(
			"(s.matricule ILIKE $%d OR s.first_name ILIKE $%d OR s.last_name ILIKE $%d)",
			argIndex, argIndex, argIndex))
		args = append(args, like)
		argIndex++
	}
	if f.InstitutionID != "" {
		conditions = append(conditions, fmt.Sprintf("s.institution_id = $%d", argIndex))
		args = append(args, f.InstitutionID)
		argIndex++
	}
	if f.ProgramID != "" {
		conditions = append(conditions, fmt.Sprintf("s.program_id = $%d", argIndex))
		args = append(args, f.ProgramID)
		argIndex++
	}
	if f.AcademicYear != "" {
		conditions = append(conditions, fmt.Sprintf("s.academic_year = $%d", argIndex))
		args = append(args, f.AcademicYear)
		argIndex++
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY s.created_at DESC"

	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, f.Limit)
		argIndex++
	}
	if f.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, f.Offset)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			continue
		}
		students = append(students, s)
	}
	return students, nil
}

func GetStudentByID(db *sql.DB, studentID string) (*models.Student, error) {
	query := `SELECT ` + studentColumns + `
			  FROM students s
			  JOIN institutions i ON s.institution_id = i.id
			  LEFT JOIN programs p ON s.program_id = p.id
			  WHERE s.id = $1`
	return scanStudent(db.QueryRow(query, studentID))
}

func CreateStudent(db *sql.DB, s *models.Student) error {
	query := `INSERT INTO students (matricule, first_name, last_name, gender, birth_date,
				phone, email, address, institution_id, program_id, academic_year, is_active)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, true)
			  RETURNING id, created_at, updated_at`
	return db.QueryRow(query,
		s.Matricule, s.FirstName, s.LastName, string(s.Gender), s.BirthDate,
		s.Phone, s.Email, s.Address, s.InstitutionID, s.ProgramID, s.AcademicYear,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

func UpdateStudent(db *sql.DB, s *models.Student) error {
	query := `UPDATE students
			  SET matricule = $1, first_name = $2, last_name = $3, gender = $4,
				  birth_date = $5, phone = $6, email = $7, address = $8,
				  institution_id = $9, program_id = $10, academic_year = $11,
				  is_active = $12, updated_at = NOW()
			  WHERE id = $13
			  RETURNING updated_at`
	return db.QueryRow(query,
		s.Matricule, s.FirstName, s.LastName, string(s.Gender), s.BirthDate,
		s.Phone, s.Email, s.Address, s.InstitutionID, s.ProgramID, s.AcademicYear,
		s.IsActive, s.ID,
	).Scan(&s.UpdatedAt)
}

// DeleteStudent deactivates a student; rows are never hard-deleted so the
// payment and scan history stays intact.
func DeleteStudent(db *sql.DB, studentID string) error {
	result, err := db.Exec(`UPDATE students SET is_active = false, updated_at = NOW() WHERE id = $1`, studentID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// GetStudentStats returns counts used by the students page header.
func GetStudentStats(db *sql.DB) (total, active int, err error) {
	err = db.QueryRow(`SELECT COUNT(*), COUNT(*) FILTER (WHERE is_active) FROM students`).Scan(&total, &active)
	return
}

package database

import (
	"database/sql"

	"scolapay/app/models"
)

func GetInstitutions(db *sql.DB, includeInactive bool) ([]*models.Institution, error) {
	query := `SELECT id, name, address, city, phone, email, is_active, created_at, updated_at
			  FROM institutions`
	if !includeInactive {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY name`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var institutions []*models.Institution
	for rows.Next() {
		inst := &models.Institution{}
		err := rows.Scan(&inst.ID, &inst.Name, &inst.Address, &inst.City,
			&inst.Phone, &inst.Email, &inst.IsActive, &inst.CreatedAt, &inst.UpdatedAt)
		if err != nil {
			continue
		}
		institutions = append(institutions, inst)
	}
	return institutions, nil
}

func GetInstitutionByID(db *sql.DB, id string) (*models.Institution, error) {
	inst := &models.Institution{}
	query := `SELECT id, name, address, city, phone, email, is_active, created_at, updated_at
			  FROM institutions WHERE id = $1`
	err := db.QueryRow(query, id).Scan(&inst.ID, &inst.Name, &inst.Address, &inst.City,
		&inst.Phone, &inst.Email, &inst.IsActive, &inst.CreatedAt, &inst.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return inst, nil
}

func CreateInstitution(db *sql.DB, inst *models.Institution) error {
	query := `INSERT INTO institutions (name, address, city, phone, email, is_active)
			  VALUES ($1, $2, $3, $4, $5, true)
			  RETURNING id, created_at, updated_at`
	return db.QueryRow(query, inst.Name, inst.Address, inst.City, inst.Phone, inst.Email).
		Scan(&inst.ID, &inst.CreatedAt, &inst.UpdatedAt)
}

func UpdateInstitution(db *sql.DB, inst *models.Institution) error {
	query := `UPDATE institutions
			  SET name = $1, address = $2, city = $3, phone = $4, email = $5,
				  is_active = $6, updated_at = NOW()
			  WHERE id = $7
			  RETURNING updated_at`
	return db.QueryRow(query, inst.Name, inst.Address, inst.City, inst.Phone, inst.Email,
		inst.IsActive, inst.ID).Scan(&inst.UpdatedAt)
}

func DeleteInstitution(db *sql.DB, id string) error {
	result, err := db.Exec(`UPDATE institutions SET is_active = false, updated_at = NOW() WHERE id = $1`, id)
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

func GetPrograms(db *sql.DB, institutionID string) ([]*models.Program, error) {
	query := `SELECT p.id, p.institution_id, p.name, p.level, p.tuition_fee, p.duration_years,
				p.is_active, p.created_at, p.updated_at, i.name AS institution_name
			  FROM programs p
			  JOIN institutions i ON p.institution_id = i.id
			  WHERE p.is_active = true`
	var args []interface{}
	if institutionID != "" {
		query += ` AND p.institution_id = $1`
		args = append(args, institutionID)
	}
	query += ` ORDER BY p.name`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var programs []*models.Program
	for rows.Next() {
		p := &models.Program{}
		err := rows.Scan(&p.ID, &p.InstitutionID, &p.Name, &p.Level, &p.TuitionFee,
			&p.DurationYears, &p.IsActive, &p.CreatedAt, &p.UpdatedAt, &p.InstitutionName)
		if err != nil {
			continue
		}
		programs = append(programs, p)
	}
	return programs, nil
}

func GetProgramByID(db *sql.DB, id string) (*models.Program, error) {
	p := &models.Program{}
	query := `SELECT p.id, p.institution_id, p.name, p.level, p.tuition_fee, p.duration_years,
				p.is_active, p.created_at, p.updated_at, i.name AS institution_name
			  FROM programs p
			  JOIN institutions i ON p.institution_id = i.id
			  WHERE p.id = $1`
	err := db.QueryRow(query, id).Scan(&p.ID, &p.InstitutionID, &p.Name, &p.Level,
		&p.TuitionFee, &p.DurationYears, &p.IsActive, &p.CreatedAt, &p.UpdatedAt, &p.InstitutionName)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func CreateProgram(db *sql.DB, p *models.Program) error {
	query := `INSERT INTO programs (institution_id, name, level, tuition_fee, duration_years, is_active)
			  VALUES ($1, $2, $3, $4, $5, true)
			  RETURNING id, created_at, updated_at`
	return db.QueryRow(query, p.InstitutionID, p.Name, p.Level, p.TuitionFee, p.DurationYears).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func UpdateProgram(db *sql.DB, p *models.Program) error {
	query := `UPDATE programs
			  SET name = $1, level = $2, tuition_fee = $3, duration_years = $4,
				  is_active = $5, updated_at = NOW()
			  WHERE id = $6
			  RETURNING updated_at`
	return db.QueryRow(query, p.Name, p.Level, p.TuitionFee, p.DurationYears,
		p.IsActive, p.ID).Scan(&p.UpdatedAt)
}

func DeleteProgram(db *sql.DB, id string) error {
	result, err := db.Exec(`UPDATE programs SET is_active = false, updated_at = NOW() WHERE id = $1`, id)
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

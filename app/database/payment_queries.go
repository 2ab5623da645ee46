package database

import (
	"database/sql"
	"fmt"

	"scolapay/app/models"
)

// CreatePayment records a payment for a student.
func CreatePayment(db *sql.DB, p *models.Payment) error {
	query := `INSERT INTO payments (student_id, amount, currency, valid_from, valid_until,
				status, reference, details, recorded_by)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING id, created_at, updated_at`
	err := db.QueryRow(query,
		p.StudentID, p.Amount, p.Currency, p.ValidFrom, p.ValidUntil,
		string(p.Status), p.Reference, p.Details, p.RecordedBy,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %v", err)
	}
	return nil
}

func scanPayments(rows *sql.Rows) []*models.Payment {
	var payments []*models.Payment
	for rows.Next() {
		p := &models.Payment{}
		var status string
		err := rows.Scan(
			&p.ID, &p.StudentID, &p.Amount, &p.Currency, &p.ValidFrom, &p.ValidUntil,
			&status, &p.Reference, &p.Details, &p.RecordedBy, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			continue
		}
		p.Status = models.PaymentStatus(status)
		payments = append(payments, p)
	}
	return payments
}

// GetPaymentsByStudent returns all of a student's payments, newest first.
func GetPaymentsByStudent(db *sql.DB, studentID string) ([]*models.Payment, error) {
	query := `SELECT id, student_id, amount, currency, valid_from, valid_until,
				status, reference, details, recorded_by, created_at, updated_at
			  FROM payments
			  WHERE student_id = $1
			  ORDER BY created_at DESC`
	rows, err := db.Query(query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPayments(rows), nil
}

// GetValidPayments returns the student's VALID payments, newest first.
func GetValidPayments(db *sql.DB, studentID string) ([]*models.Payment, error) {
	query := `SELECT id, student_id, amount, currency, valid_from, valid_until,
				status, reference, details, recorded_by, created_at, updated_at
			  FROM payments
			  WHERE student_id = $1 AND status = 'VALID'
			  ORDER BY created_at DESC`
	rows, err := db.Query(query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPayments(rows), nil
}

func GetPaymentByID(db *sql.DB, paymentID string) (*models.Payment, error) {
	p := &models.Payment{}
	var status string
	query := `SELECT id, student_id, amount, currency, valid_from, valid_until,
				status, reference, details, recorded_by, created_at, updated_at
			  FROM payments WHERE id = $1`
	err := db.QueryRow(query, paymentID).Scan(
		&p.ID, &p.StudentID, &p.Amount, &p.Currency, &p.ValidFrom, &p.ValidUntil,
		&status, &p.Reference, &p.Details, &p.RecordedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Status = models.PaymentStatus(status)
	return p, nil
}

// UpdatePaymentStatus moves a payment to a new status. CANCELLED rows are
// immutable; callers must check the current status first.
func UpdatePaymentStatus(db *sql.DB, paymentID string, status models.PaymentStatus) error {
	query := `UPDATE payments SET status = $1, updated_at = NOW()
			  WHERE id = $2 AND status <> 'CANCELLED'`
	result, err := db.Exec(query, string(status), paymentID)
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

// CountValidPayments reports whether the student has at least one VALID
// payment row. Used by the scan live cross-check.
func CountValidPayments(db *sql.DB, studentID string) (int, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM payments WHERE student_id = $1 AND status = 'VALID'`,
		studentID).Scan(&count)
	return count, err
}

// ExpireOverduePayments marks VALID payments whose window has closed as
// EXPIRED. Run by the nightly sweep.
func ExpireOverduePayments(db *sql.DB) (int64, error) {
	result, err := db.Exec(`UPDATE payments SET status = 'EXPIRED', updated_at = NOW()
							WHERE status = 'VALID' AND valid_until < NOW()`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

package database

import (
	"database/sql"
	"time"

	"scolapay/app/models"
)

// UpsertAccessCard creates the student's card or overwrites its QR data in
// place. The unique index on student_id makes this atomic, so concurrent
// payments for the same student can never produce two cards.
func UpsertAccessCard(db *sql.DB, card *models.AccessCard) error {
	query := `INSERT INTO access_cards (student_id, payment_id, qr_data, qr_image)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (student_id) DO UPDATE
			  SET payment_id = EXCLUDED.payment_id,
				  qr_data = EXCLUDED.qr_data,
				  qr_image = EXCLUDED.qr_image,
				  updated_at = NOW()
			  RETURNING id, created_at, updated_at`
	return db.QueryRow(query, card.StudentID, card.PaymentID, card.QRData, card.QRImage).
		Scan(&card.ID, &card.CreatedAt, &card.UpdatedAt)
}

// GetLatestCardByStudent returns the student's most recently updated card,
// or nil when none exists.
func GetLatestCardByStudent(db *sql.DB, studentID string) (*models.AccessCard, error) {
	card := &models.AccessCard{}
	query := `SELECT id, student_id, payment_id, qr_data, qr_image, created_at, updated_at
			  FROM access_cards
			  WHERE student_id = $1
			  ORDER BY created_at DESC
			  LIMIT 1`
	err := db.QueryRow(query, studentID).Scan(
		&card.ID, &card.StudentID, &card.PaymentID, &card.QRData, &card.QRImage,
		&card.CreatedAt, &card.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return card, nil
}

// CountScansOn counts accepted scans for a card on the given calendar day.
func CountScansOn(db *sql.DB, cardID string, day time.Time) (int, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM scan_logs WHERE card_id = $1 AND scanned_on = $2`,
		cardID, day.Format("2006-01-02")).Scan(&count)
	return count, err
}

// InsertScanLog appends one scan record. It returns false without error when
// the card was already scanned that day: the unique index on
// (card_id, scanned_on) closes the race between two concurrent scans.
func InsertScanLog(db *sql.DB, cardID, guardianID string, at time.Time) (bool, error) {
	result, err := db.Exec(`INSERT INTO scan_logs (card_id, guardian_id, scanned_at, scanned_on)
							VALUES ($1, $2, $3, $4)
							ON CONFLICT (card_id, scanned_on) DO NOTHING`,
		cardID, guardianID, at, at.Format("2006-01-02"))
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// GetScanLogs returns scan history, optionally filtered by card and day.
func GetScanLogs(db *sql.DB, cardID string, day *time.Time) ([]*models.ScanLog, error) {
	query := `SELECT id, card_id, guardian_id, scanned_at, scanned_on FROM scan_logs`
	var conditions []string
	var args []interface{}

	if cardID != "" {
		args = append(args, cardID)
		conditions = append(conditions, "card_id = $1")
	}
	if day != nil {
		args = append(args, day.Format("2006-01-02"))
		if len(args) == 1 {
			conditions = append(conditions, "scanned_on = $1")
		} else {
			conditions = append(conditions, "scanned_on = $2")
		}
	}
	if len(conditions) > 0 {
		query += " WHERE " + conditions[0]
		for _, c := range conditions[1:] {
			query += " AND " + c
		}
	}
	query += " ORDER BY scanned_at DESC"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*models.ScanLog
	for rows.Next() {
		l := &models.ScanLog{}
		if err := rows.Scan(&l.ID, &l.CardID, &l.GuardianID, &l.ScannedAt, &l.ScannedOn); err != nil {
			continue
		}
		logs = append(logs, l)
	}
	return logs, nil
}

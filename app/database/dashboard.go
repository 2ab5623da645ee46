package database

import (
	"database/sql"
	"time"

	"scolapay/app/models"
)

// GetDashboardStats returns the aggregates for the admin dashboard.
func GetDashboardStats(db *sql.DB) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}

	err := db.QueryRow(`SELECT COUNT(*) FROM students WHERE is_active = true`).Scan(&stats.TotalStudents)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(`SELECT COUNT(*) FROM institutions WHERE is_active = true`).Scan(&stats.TotalInstitutions)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(`SELECT COUNT(*) FROM programs WHERE is_active = true`).Scan(&stats.TotalPrograms)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(`
		SELECT COUNT(*) FILTER (WHERE status = 'VALID'),
			   COUNT(*) FILTER (WHERE status = 'PENDING'),
			   COALESCE(SUM(amount) FILTER (WHERE status = 'VALID'), 0)
		FROM payments
	`).Scan(&stats.ValidPayments, &stats.PendingPayments, &stats.TotalCollected)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(`SELECT COUNT(*) FROM access_cards`).Scan(&stats.CardsIssued)
	if err != nil {
		return nil, err
	}

	today := time.Now().Format("2006-01-02")
	err = db.QueryRow(`SELECT COUNT(*) FROM scan_logs WHERE scanned_on = $1`, today).Scan(&stats.ScansToday)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

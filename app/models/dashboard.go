package models

// DashboardStats is the admin dashboard aggregate.
type DashboardStats struct {
	TotalStudents     int     `json:"total_students"`
	TotalInstitutions int     `json:"total_institutions"`
	TotalPrograms     int     `json:"total_programs"`
	ValidPayments     int     `json:"valid_payments"`
	PendingPayments   int     `json:"pending_payments"`
	TotalCollected    float64 `json:"total_collected"`
	CardsIssued       int     `json:"cards_issued"`
	ScansToday        int     `json:"scans_today"`
}

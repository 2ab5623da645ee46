package models

import "time"

// Payment represents a tuition payment recorded for a student.
type Payment struct {
	ID         string        `json:"id"`
	StudentID  string        `json:"student_id" validate:"required,uuid"`
	Amount     float64       `json:"amount" validate:"required,gt=0"`
	Currency   string        `json:"currency"`
	ValidFrom  time.Time     `json:"valid_from" validate:"required"`
	ValidUntil time.Time     `json:"valid_until" validate:"required"`
	Status     PaymentStatus `json:"status"`
	Reference  string        `json:"reference"`
	Details    string        `json:"details"`
	RecordedBy *string       `json:"recorded_by,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`

	StudentName string `json:"student_name,omitempty"`
}

// PaymentSummary is returned alongside a freshly issued card.
type PaymentSummary struct {
	TotalPayments int     `json:"totalPayments"`
	TotalAmount   float64 `json:"totalAmount"`
	HistoryURL    string  `json:"historyUrl"`
}

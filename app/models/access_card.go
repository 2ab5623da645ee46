package models

import "time"

// AccessCard is the persisted credential backing a student's QR code.
// Exactly one card exists per student; it is upserted on every payment.
type AccessCard struct {
	ID        string    `json:"id"`
	StudentID string    `json:"studentId"`
	PaymentID string    `json:"paymentId"`
	QRData    string    `json:"qrData"`
	QRImage   string    `json:"qrImage,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CardPayload is the snapshot embedded in a scanned QR code. It is taken at
// generation time and is not refreshed when the underlying payments change.
type CardPayload struct {
	StudentID   string    `json:"studentId"`
	TotalAmount float64   `json:"totalAmount"`
	ValidFrom   time.Time `json:"validFrom"`
	ValidUntil  time.Time `json:"validUntil"`
	Status      string    `json:"status"`
}

// ScanLog is the append-only audit record of one accepted card scan.
type ScanLog struct {
	ID         string    `json:"id"`
	CardID     string    `json:"card_id"`
	GuardianID string    `json:"guardian_id"`
	ScannedAt  time.Time `json:"scanned_at"`
	ScannedOn  time.Time `json:"scanned_on"`
}

package services

import (
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"scolapay/app/database"
	"scolapay/app/models"
)

// EncodePayload serializes a card payload to the base64 JSON form embedded
// in the QR code.
func EncodePayload(p *models.CardPayload) (string, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// DecodePayload parses a scanned QR string back into a card payload.
func DecodePayload(qrData string) (*models.CardPayload, error) {
	raw, err := base64.StdEncoding.DecodeString(qrData)
	if err != nil {
		return nil, fmt.Errorf("invalid base64: %v", err)
	}
	p := &models.CardPayload{}
	if err := json.Unmarshal(raw, p); err != nil {
		return nil, fmt.Errorf("invalid payload: %v", err)
	}
	if p.StudentID == "" {
		return nil, fmt.Errorf("invalid payload: missing studentId")
	}
	return p, nil
}

// HistoryURL builds the payment-history link returned with each issued card.
func HistoryURL(frontendURL, studentID string) string {
	return fmt.Sprintf("%s/students/%s/payments/history", frontendURL, studentID)
}

// BuildSummary computes the cumulative snapshot for a student's VALID
// payments, newest first. The window embedded in the payload is the one of
// the triggering payment.
func BuildSummary(valid []*models.Payment, trigger *models.Payment) *models.CardPayload {
	var total float64
	for _, p := range valid {
		total += p.Amount
	}
	return &models.CardPayload{
		StudentID:   trigger.StudentID,
		TotalAmount: total,
		ValidFrom:   trigger.ValidFrom,
		ValidUntil:  trigger.ValidUntil,
		Status:      string(trigger.Status),
	}
}

// CardStore is the persistence surface card issuance needs.
type CardStore interface {
	ValidPayments(studentID string) ([]*models.Payment, error)
	UpsertCard(card *models.AccessCard) error
}

type sqlCardStore struct{ db *sql.DB }

func (s sqlCardStore) ValidPayments(studentID string) ([]*models.Payment, error) {
	return database.GetValidPayments(s.db, studentID)
}

func (s sqlCardStore) UpsertCard(card *models.AccessCard) error {
	return database.UpsertAccessCard(s.db, card)
}

// IssueOrRefreshCard recomputes the student's valid-payment total and
// creates or overwrites their single access card. Called synchronously from
// the payment-creation handler, after the payment row is persisted.
func IssueOrRefreshCard(db *sql.DB, frontendURL string, payment *models.Payment) (*models.AccessCard, *models.PaymentSummary, error) {
	return issueOrRefreshCard(sqlCardStore{db}, frontendURL, payment)
}

func issueOrRefreshCard(store CardStore, frontendURL string, payment *models.Payment) (*models.AccessCard, *models.PaymentSummary, error) {
	valid, err := store.ValidPayments(payment.StudentID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load valid payments: %v", err)
	}

	payload := BuildSummary(valid, payment)
	qrData, err := EncodePayload(payload)
	if err != nil {
		return nil, nil, err
	}

	// The QR image renders the same payload the scan endpoint decodes.
	png, err := qrcode.Encode(qrData, qrcode.Medium, 256)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to render QR code: %v", err)
	}

	card := &models.AccessCard{
		StudentID: payment.StudentID,
		PaymentID: payment.ID,
		QRData:    qrData,
		QRImage:   base64.StdEncoding.EncodeToString(png),
	}
	if err := store.UpsertCard(card); err != nil {
		return nil, nil, fmt.Errorf("failed to upsert access card: %v", err)
	}

	summary := &models.PaymentSummary{
		TotalPayments: len(valid),
		TotalAmount:   payload.TotalAmount,
		HistoryURL:    HistoryURL(frontendURL, payment.StudentID),
	}
	return card, summary, nil
}

package services

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scolapay/app/models"
)

func TestPayloadRoundTrip(t *testing.T) {
	from := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	until := from.AddDate(1, 0, 0)
	payload := &models.CardPayload{
		StudentID:   "6f1c2b51-9a77-4a43-8a20-3b1be94d7f10",
		TotalAmount: 5000,
		ValidFrom:   from,
		ValidUntil:  until,
		Status:      "VALID",
	}

	encoded, err := EncodePayload(payload)
	require.NoError(t, err)
	require.NotEmpty(t, encoded)

	decoded, err := DecodePayload(encoded)
	require.NoError(t, err)
	assert.Equal(t, payload.StudentID, decoded.StudentID)
	assert.Equal(t, payload.TotalAmount, decoded.TotalAmount)
	assert.Equal(t, payload.Status, decoded.Status)
	assert.True(t, payload.ValidFrom.Equal(decoded.ValidFrom))
	assert.True(t, payload.ValidUntil.Equal(decoded.ValidUntil))
}

func TestDecodePayloadErrors(t *testing.T) {
	tests := []struct {
		name   string
		qrData string
	}{
		{name: "not base64", qrData: "???not-base64???"},
		{name: "base64 but not json", qrData: base64.StdEncoding.EncodeToString([]byte("hello"))},
		{name: "json but wrong shape", qrData: base64.StdEncoding.EncodeToString([]byte(`{"foo":1}`))},
		{name: "empty", qrData: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodePayload(tt.qrData)
			if err == nil {
				t.Errorf("DecodePayload(%q) expected error, got nil", tt.qrData)
			}
		})
	}
}

func TestBuildSummary(t *testing.T) {
	now := time.Now()
	trigger := &models.Payment{
		StudentID:  "s1",
		Amount:     3000,
		ValidFrom:  now,
		ValidUntil: now.AddDate(1, 0, 0),
		Status:     models.PaymentValid,
	}
	valid := []*models.Payment{
		trigger,
		{StudentID: "s1", Amount: 2000, Status: models.PaymentValid},
	}

	payload := BuildSummary(valid, trigger)
	assert.Equal(t, 5000.0, payload.TotalAmount)
	assert.Equal(t, "s1", payload.StudentID)
	assert.Equal(t, "VALID", payload.Status)
	assert.True(t, payload.ValidFrom.Equal(trigger.ValidFrom))
}

func TestBuildSummaryNoValidPayments(t *testing.T) {
	trigger := &models.Payment{StudentID: "s1", Amount: 1000, Status: models.PaymentPending}

	payload := BuildSummary(nil, trigger)
	assert.Equal(t, 0.0, payload.TotalAmount)
	assert.Equal(t, "PENDING", payload.Status)
}

func TestHistoryURL(t *testing.T) {
	got := HistoryURL("https://portal.example.com", "abc")
	assert.Equal(t, "https://portal.example.com/students/abc/payments/history", got)
}

// fakeCardStore keeps one card per student like the unique index does.
type fakeCardStore struct {
	payments map[string][]*models.Payment
	cards    map[string]*models.AccessCard
}

func newFakeCardStore() *fakeCardStore {
	return &fakeCardStore{
		payments: map[string][]*models.Payment{},
		cards:    map[string]*models.AccessCard{},
	}
}

func (f *fakeCardStore) ValidPayments(studentID string) ([]*models.Payment, error) {
	return f.payments[studentID], nil
}

func (f *fakeCardStore) UpsertCard(card *models.AccessCard) error {
	if existing, ok := f.cards[card.StudentID]; ok {
		card.ID = existing.ID
	} else {
		card.ID = "card-" + card.StudentID
	}
	f.cards[card.StudentID] = card
	return nil
}

func TestIssueOrRefreshCardSingleCard(t *testing.T) {
	store := newFakeCardStore()
	now := time.Now()

	p1 := &models.Payment{
		ID: "p1", StudentID: "s1", Amount: 5000,
		ValidFrom: now, ValidUntil: now.AddDate(1, 0, 0),
		Status: models.PaymentValid,
	}
	store.payments["s1"] = []*models.Payment{p1}

	card1, summary1, err := issueOrRefreshCard(store, "https://portal.example.com", p1)
	require.NoError(t, err)
	assert.Equal(t, 1, summary1.TotalPayments)
	assert.Equal(t, 5000.0, summary1.TotalAmount)
	assert.Equal(t, "https://portal.example.com/students/s1/payments/history", summary1.HistoryURL)
	assert.NotEmpty(t, card1.QRData)
	assert.NotEmpty(t, card1.QRImage)
	assert.Equal(t, "p1", card1.PaymentID)

	// A second payment refreshes the same card instead of adding one.
	p2 := &models.Payment{
		ID: "p2", StudentID: "s1", Amount: 2000,
		ValidFrom: now, ValidUntil: now.AddDate(1, 0, 0),
		Status: models.PaymentValid,
	}
	store.payments["s1"] = []*models.Payment{p2, p1}

	card2, summary2, err := issueOrRefreshCard(store, "https://portal.example.com", p2)
	require.NoError(t, err)
	assert.Len(t, store.cards, 1)
	assert.Equal(t, card1.ID, card2.ID)
	assert.Equal(t, "p2", card2.PaymentID)
	assert.Equal(t, 2, summary2.TotalPayments)
	assert.Equal(t, 7000.0, summary2.TotalAmount)

	// The stored QR data reflects the latest generation.
	payload, err := DecodePayload(store.cards["s1"].QRData)
	require.NoError(t, err)
	assert.Equal(t, 7000.0, payload.TotalAmount)
	assert.Equal(t, "VALID", payload.Status)
}

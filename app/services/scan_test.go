package services

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scolapay/app/models"
)

func TestCheckWindow(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		from  time.Time
		until time.Time
		want  string
	}{
		{
			name:  "within window",
			from:  now.AddDate(0, -1, 0),
			until: now.AddDate(0, 11, 0),
			want:  "",
		},
		{
			name:  "not yet valid",
			from:  now.AddDate(0, 0, 1),
			until: now.AddDate(1, 0, 0),
			want:  "La carte n'est pas encore valide",
		},
		{
			name:  "expired",
			from:  now.AddDate(-1, 0, 0),
			until: now.AddDate(0, 0, -1),
			want:  "La carte a expiré",
		},
		{
			name:  "starts exactly now",
			from:  now,
			until: now.AddDate(1, 0, 0),
			want:  "",
		},
		{
			name:  "ends exactly now",
			from:  now.AddDate(-1, 0, 0),
			until: now,
			want:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &models.CardPayload{ValidFrom: tt.from, ValidUntil: tt.until}
			if got := CheckWindow(p, now); got != tt.want {
				t.Errorf("CheckWindow() = %q, want %q", got, tt.want)
			}
		})
	}
}

// fakeScanStore backs verifyScan tests with in-memory state.
type fakeScanStore struct {
	students    map[string]*models.Student
	validCounts map[string]int
	cards       map[string]*models.AccessCard
	logs        map[string][]time.Time
	loseInsert  bool // simulate a concurrent scan winning the insert
}

func newFakeScanStore() *fakeScanStore {
	return &fakeScanStore{
		students:    map[string]*models.Student{},
		validCounts: map[string]int{},
		cards:       map[string]*models.AccessCard{},
		logs:        map[string][]time.Time{},
	}
}

func (f *fakeScanStore) StudentByID(id string) (*models.Student, error) {
	s, ok := f.students[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return s, nil
}

func (f *fakeScanStore) CountValidPayments(studentID string) (int, error) {
	return f.validCounts[studentID], nil
}

func (f *fakeScanStore) LatestCard(studentID string) (*models.AccessCard, error) {
	return f.cards[studentID], nil
}

func (f *fakeScanStore) CountScansOn(cardID string, day time.Time) (int, error) {
	count := 0
	for _, at := range f.logs[cardID] {
		if at.Format("2006-01-02") == day.Format("2006-01-02") {
			count++
		}
	}
	return count, nil
}

func (f *fakeScanStore) InsertScanLog(cardID, guardianID string, at time.Time) (bool, error) {
	if f.loseInsert {
		return false, nil
	}
	for _, prev := range f.logs[cardID] {
		if prev.Format("2006-01-02") == at.Format("2006-01-02") {
			return false, nil
		}
	}
	f.logs[cardID] = append(f.logs[cardID], at)
	return true, nil
}

const scanStudentID = "6f1c2b51-9a77-4a43-8a20-3b1be94d7f10"

func encodeScanPayload(t *testing.T, p *models.CardPayload) string {
	t.Helper()
	encoded, err := EncodePayload(p)
	require.NoError(t, err)
	return encoded
}

// scanFixture returns a store holding a student with one VALID payment and
// a card, plus a payload currently inside its validity window.
func scanFixture(now time.Time) (*fakeScanStore, *models.CardPayload) {
	store := newFakeScanStore()
	store.students[scanStudentID] = &models.Student{
		ID:              scanStudentID,
		FirstName:       "Aminata",
		LastName:        "Diallo",
		InstitutionName: "Lycée Moderne",
	}
	store.validCounts[scanStudentID] = 1
	store.cards[scanStudentID] = &models.AccessCard{ID: "card-1", StudentID: scanStudentID}

	payload := &models.CardPayload{
		StudentID:   scanStudentID,
		TotalAmount: 5000,
		ValidFrom:   now.AddDate(0, -1, 0),
		ValidUntil:  now.AddDate(0, 11, 0),
		Status:      "VALID",
	}
	return store, payload
}

func TestVerifyScanRejections(t *testing.T) {
	now := time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mutate  func(store *fakeScanStore, payload *models.CardPayload)
		wantMsg string
	}{
		{
			name:    "unknown student",
			mutate:  func(s *fakeScanStore, p *models.CardPayload) { delete(s.students, scanStudentID) },
			wantMsg: "Élève introuvable",
		},
		{
			name: "expired window wins over status",
			mutate: func(s *fakeScanStore, p *models.CardPayload) {
				p.ValidUntil = now.AddDate(0, 0, -1)
				p.Status = "PENDING"
			},
			wantMsg: "La carte a expiré",
		},
		{
			name:    "payment not validated",
			mutate:  func(s *fakeScanStore, p *models.CardPayload) { p.Status = "PENDING" },
			wantMsg: "Paiement non validé",
		},
		{
			name: "stale payload, payment since cancelled",
			mutate: func(s *fakeScanStore, p *models.CardPayload) {
				s.validCounts[scanStudentID] = 0
			},
			wantMsg: "Aucun paiement validé pour cet élève",
		},
		{
			name:    "no access card",
			mutate:  func(s *fakeScanStore, p *models.CardPayload) { delete(s.cards, scanStudentID) },
			wantMsg: "Aucune carte d'accès trouvée",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, payload := scanFixture(now)
			tt.mutate(store, payload)

			result, err := verifyScan(store, encodeScanPayload(t, payload), "guard-1", now)
			require.NoError(t, err)
			assert.Equal(t, ScanRejected, result.Outcome)
			assert.Equal(t, tt.wantMsg, result.Message)
			assert.Empty(t, store.logs["card-1"], "rejection must not log a scan")
		})
	}
}

func TestVerifyScanInvalidPayloadWritesNothing(t *testing.T) {
	now := time.Now()
	store, _ := scanFixture(now)

	result, err := verifyScan(store, "???not-base64???", "guard-1", now)
	require.NoError(t, err)
	assert.Equal(t, ScanInvalid, result.Outcome)
	assert.Empty(t, store.logs["card-1"])
}

func TestVerifyScanDailyLimit(t *testing.T) {
	now := time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC)
	store, payload := scanFixture(now)
	qrData := encodeScanPayload(t, payload)

	// First scan of the day is authorized and logs one row.
	first, err := verifyScan(store, qrData, "guard-1", now)
	require.NoError(t, err)
	assert.Equal(t, ScanAuthorized, first.Outcome)
	require.NotNil(t, first.Student)
	assert.Equal(t, "Aminata Diallo", first.Student.Name)
	assert.Equal(t, "Lycée Moderne", first.Student.Institution)
	assert.Equal(t, 5000.0, first.Student.Amount)
	assert.Len(t, store.logs["card-1"], 1)

	// Second scan the same day is rejected without another row.
	second, err := verifyScan(store, qrData, "guard-1", now.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, ScanRejected, second.Outcome)
	assert.Equal(t, "Carte déjà utilisée aujourd'hui", second.Message)
	assert.Len(t, store.logs["card-1"], 1)

	// The next calendar day the card works again.
	third, err := verifyScan(store, qrData, "guard-2", now.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, ScanAuthorized, third.Outcome)
	assert.Len(t, store.logs["card-1"], 2)
}

func TestVerifyScanLostInsertRace(t *testing.T) {
	now := time.Now()
	store, payload := scanFixture(now)
	store.loseInsert = true

	// Count sees no prior scan but the insert loses to a concurrent one.
	result, err := verifyScan(store, encodeScanPayload(t, payload), "guard-1", now)
	require.NoError(t, err)
	assert.Equal(t, ScanRejected, result.Outcome)
	assert.Equal(t, "Carte déjà utilisée aujourd'hui", result.Message)
	assert.Empty(t, store.logs["card-1"])
}

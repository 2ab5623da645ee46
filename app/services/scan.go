package services

import (
	"database/sql"
	"fmt"
	"time"

	"scolapay/app/database"
	"scolapay/app/models"
)

// ScanOutcome tags the result of one scan attempt. Invalid maps to HTTP 400;
// Authorized and Rejected are both HTTP 200, the guard UI renders the message.
type ScanOutcome int

const (
	ScanInvalid ScanOutcome = iota
	ScanRejected
	ScanAuthorized
)

// ScanStudent is the student block returned on an authorized scan. Amount is
// the payload snapshot, not recomputed from live rows.
type ScanStudent struct {
	Name        string  `json:"name"`
	Institution string  `json:"institution"`
	Amount      float64 `json:"amount"`
}

type ScanResult struct {
	Outcome ScanOutcome
	Message string
	Student *ScanStudent
}

func rejected(msg string) *ScanResult {
	return &ScanResult{Outcome: ScanRejected, Message: msg}
}

// ScanStore is the persistence surface the scan flow reads and writes.
type ScanStore interface {
	StudentByID(id string) (*models.Student, error)
	CountValidPayments(studentID string) (int, error)
	LatestCard(studentID string) (*models.AccessCard, error)
	CountScansOn(cardID string, day time.Time) (int, error)
	InsertScanLog(cardID, guardianID string, at time.Time) (bool, error)
}

type sqlScanStore struct{ db *sql.DB }

func (s sqlScanStore) StudentByID(id string) (*models.Student, error) {
	return database.GetStudentByID(s.db, id)
}

func (s sqlScanStore) CountValidPayments(studentID string) (int, error) {
	return database.CountValidPayments(s.db, studentID)
}

func (s sqlScanStore) LatestCard(studentID string) (*models.AccessCard, error) {
	return database.GetLatestCardByStudent(s.db, studentID)
}

func (s sqlScanStore) CountScansOn(cardID string, day time.Time) (int, error) {
	return database.CountScansOn(s.db, cardID, day)
}

func (s sqlScanStore) InsertScanLog(cardID, guardianID string, at time.Time) (bool, error) {
	return database.InsertScanLog(s.db, cardID, guardianID, at)
}

// CheckWindow validates the payload's validity window against now. It
// returns an empty string when the window is open.
func CheckWindow(p *models.CardPayload, now time.Time) string {
	if now.Before(p.ValidFrom) {
		return "La carte n'est pas encore valide"
	}
	if now.After(p.ValidUntil) {
		return "La carte a expiré"
	}
	return ""
}

// VerifyScan runs the full scan flow: decode, student lookup, window and
// status checks, live payment cross-check, card resolution, once-per-day
// limit, then the scan-log insert.
func VerifyScan(db *sql.DB, qrData, guardianID string, now time.Time) (*ScanResult, error) {
	return verifyScan(sqlScanStore{db}, qrData, guardianID, now)
}

func verifyScan(store ScanStore, qrData, guardianID string, now time.Time) (*ScanResult, error) {
	payload, err := DecodePayload(qrData)
	if err != nil {
		return &ScanResult{Outcome: ScanInvalid, Message: "QR code invalide"}, nil
	}

	student, err := store.StudentByID(payload.StudentID)
	if err == sql.ErrNoRows {
		return rejected("Élève introuvable"), nil
	}
	if err != nil {
		return nil, err
	}

	if msg := CheckWindow(payload, now); msg != "" {
		return rejected(msg), nil
	}

	if payload.Status != string(models.PaymentValid) {
		return rejected("Paiement non validé"), nil
	}

	// The payload is a snapshot; make sure the underlying payment was not
	// cancelled or reverted since the card was issued.
	validCount, err := store.CountValidPayments(student.ID)
	if err != nil {
		return nil, err
	}
	if validCount == 0 {
		return rejected("Aucun paiement validé pour cet élève"), nil
	}

	card, err := store.LatestCard(student.ID)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return rejected("Aucune carte d'accès trouvée"), nil
	}

	count, err := store.CountScansOn(card.ID, now)
	if err != nil {
		return nil, err
	}
	if count >= 1 {
		return rejected("Carte déjà utilisée aujourd'hui"), nil
	}

	inserted, err := store.InsertScanLog(card.ID, guardianID, now)
	if err != nil {
		return nil, err
	}
	if !inserted {
		// A concurrent scan won the insert between the count and here.
		return rejected("Carte déjà utilisée aujourd'hui"), nil
	}

	return &ScanResult{
		Outcome: ScanAuthorized,
		Message: fmt.Sprintf("Accès autorisé pour %s (%s), total payé: %.2f",
			student.FullName(), student.InstitutionName, payload.TotalAmount),
		Student: &ScanStudent{
			Name:        student.FullName(),
			Institution: student.InstitutionName,
			Amount:      payload.TotalAmount,
		},
	}, nil
}

// VerifyResult is the response of the public verification endpoint. Unlike
// the scan flow it reads live payment rows and never writes a scan log.
type VerifyResult struct {
	Status      models.VerifyStatus
	Message     string
	StudentName string
	Institution string
	Amount      float64
	ValidFrom   *time.Time
	ValidUntil  *time.Time
}

// VerifyStudent re-checks a student's current payment validity from live
// rows, for the verification page linked from the card.
func VerifyStudent(db *sql.DB, studentID string, now time.Time) (*VerifyResult, error) {
	student, err := database.GetStudentByID(db, studentID)
	if err == sql.ErrNoRows {
		return &VerifyResult{Status: models.VerifyRefused, Message: "Élève introuvable"}, nil
	}
	if err != nil {
		return nil, err
	}

	res := &VerifyResult{
		StudentName: student.FullName(),
		Institution: student.InstitutionName,
	}

	valid, err := database.GetValidPayments(db, studentID)
	if err != nil {
		return nil, err
	}
	if len(valid) == 0 {
		res.Status = models.VerifyRefused
		res.Message = "Aucun paiement validé pour cet élève"
		return res, nil
	}

	for _, p := range valid {
		res.Amount += p.Amount
	}
	latest := valid[0]
	res.ValidFrom = &latest.ValidFrom
	res.ValidUntil = &latest.ValidUntil

	if now.After(latest.ValidUntil) {
		res.Status = models.VerifyExpired
		res.Message = "La carte a expiré"
		return res, nil
	}
	if now.Before(latest.ValidFrom) {
		res.Status = models.VerifyRefused
		res.Message = "La carte n'est pas encore valide"
		return res, nil
	}

	res.Status = models.VerifyAuthorized
	res.Message = "Accès autorisé"
	return res, nil
}

package models

// PaymentStatus defines the lifecycle states of a tuition payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentValid     PaymentStatus = "VALID"
	PaymentExpired   PaymentStatus = "EXPIRED"
	PaymentCancelled PaymentStatus = "CANCELLED"
)

// IsValidStatus reports whether s is one of the known payment statuses.
func IsValidStatus(s string) bool {
	switch PaymentStatus(s) {
	case PaymentPending, PaymentValid, PaymentExpired, PaymentCancelled:
		return true
	}
	return false
}

// VerifyStatus defines the outcome reported by the public card verification endpoint.
type VerifyStatus string

const (
	VerifyAuthorized VerifyStatus = "AUTHORIZED"
	VerifyExpired    VerifyStatus = "EXPIRED"
	VerifyRefused    VerifyStatus = "REFUSED"
)

// Role names used by the staff accounts.
const (
	RoleAdmin      = "admin"
	RoleSecretary  = "secretary"
	RoleAccountant = "accountant"
	RoleGuard      = "guard"
)

// Gender defines the possible gender values for a student.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
	Other  Gender = "other"
)

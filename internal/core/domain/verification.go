package domain

import "time"

type VerificationStatus string

const (
	VerificationVerified                 VerificationStatus = "verified"
	VerificationInsufficientConfirmation VerificationStatus = "insufficient_confirmations"
	VerificationFailed                   VerificationStatus = "failed"
	VerificationNotFound                 VerificationStatus = "not_found"
)

// VerificationRecord is the last verification attempt for a signature.
type VerificationRecord struct {
	Signature      string
	Status         VerificationStatus
	Confirmations  int
	LastVerifiedAt time.Time
	Result         *VerifiedTransaction
}

package domain

import "time"

// VerificationStatus represents the World ID verification level of a user.
type VerificationStatus string

const (
	VerificationNot    VerificationStatus = "not"
	VerificationDevice VerificationStatus = "device"
	VerificationOrb    VerificationStatus = "orb"
)

// ValidVerificationStatus reports whether s is one of the known levels.
func ValidVerificationStatus(s VerificationStatus) bool {
	switch s {
	case VerificationNot, VerificationDevice, VerificationOrb:
		return true
	}
	return false
}

// Verification stores the verification level keyed by hashed email,
// so raw addresses never sit next to proof state.
type Verification struct {
	ID        int64              `json:"id"`
	EmailHash string             `json:"email_hash"`
	Status    VerificationStatus `json:"status"`
	UpdatedAt time.Time          `json:"-"`
}

package model

import (
	"time"
)

// MFAFactor is an enrolled TOTP authenticator. A factor is created unverified
// by enrollment and only counts toward login challenges once verified.
type MFAFactor struct {
	ID         string     `db:"id"`
	UserID     string     `db:"user_id"`
	Secret     string     `db:"secret"`
	VerifiedAt *time.Time `db:"verified_at"`
	CreatedAt  time.Time  `db:"created_at"`
}

func (f *MFAFactor) IsVerified() bool {
	return f.VerifiedAt != nil
}

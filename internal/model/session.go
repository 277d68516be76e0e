package model

import (
	"time"
)

// Session is one signed-in browser/device. The JWT cookie carries the session
// ID so that "sign out other sessions" can revoke everything but the caller.
type Session struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Migrated  bool      `db:"migrated"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}

func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

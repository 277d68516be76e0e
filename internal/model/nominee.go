package model

import (
	"time"
)

// Permission keys granted to a nominee.
const (
	PermViewWishes     = "viewWishes"
	PermViewDocuments  = "viewDocuments"
	PermReceiveLetters = "receiveLetters"
)

// Nominee is a trusted person (family, friend, lawyer) who will receive the
// patron's wishes, with per-nominee permissions.
type Nominee struct {
	ID           string    `db:"id"`
	UserID       string    `db:"user_id"`
	Name         string    `db:"nominee_name"`
	Email        string    `db:"nominee_email"`
	Relationship string    `db:"relationship"`
	Permissions  BoolMap   `db:"permissions"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

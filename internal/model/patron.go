package model

import (
	"time"
)

// Patron is the permanent patron record, keyed one-to-one by the owning
// user's ID. Created or replaced whole-row (upsert) by the pledge form, the
// dashboard profile tab, and the post-signup migration.
type Patron struct {
	ID               string     `db:"id"` // user ID
	Email            string     `db:"email"`
	FullName         string     `db:"full_name"`
	DOB              string     `db:"dob"`
	Sex              string     `db:"sex"`
	Religion         string     `db:"religion"`
	Occupation       string     `db:"occupation"`
	Address          string     `db:"address"`
	ContactNumber    string     `db:"contact_number"`
	RelativesContact string     `db:"relatives_contact"`
	ServiceGrade     string     `db:"service_grade"`
	MemorableDeeds   string     `db:"memorable_deeds"`
	TopMemoriesURL   StringList `db:"top_memories_url"`
	AvatarURL        *string    `db:"avatar_url"`
	UpdatedAt        time.Time  `db:"updated_at"`
}

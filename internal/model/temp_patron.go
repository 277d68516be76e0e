package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// PledgePayloadVersion tags the temp payload format so future field additions
// don't silently break the migration reader.
const PledgePayloadVersion = 1

// PledgePayload is the pre-authentication pledge form, held verbatim in the
// temp record until the visitor creates an account.
type PledgePayload struct {
	Version          int      `json:"payload_version"`
	FullName         string   `json:"full_name"`
	Email            string   `json:"email"`
	DOB              string   `json:"dob"`
	Sex              string   `json:"sex"`
	Religion         string   `json:"religion"`
	Occupation       string   `json:"occupation"`
	Address          string   `json:"address"`
	ContactNumber    string   `json:"contact_number"`
	RelativesContact string   `json:"relatives_contact"`
	ServiceGrade     string   `json:"service_grade"`
	MemorableDeeds   string   `json:"memorable_deeds"`
	TopMemoriesURL   []string `json:"top_memories_url"`
}

func (p PledgePayload) Value() (driver.Value, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (p *PledgePayload) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return fmt.Errorf("cannot scan %T into PledgePayload", src)
	}
}

// TempPatron holds an anonymous visitor's pledge, keyed by email, until the
// owner signs up and the migration moves it into the permanent Patron row.
// ClaimedAt is the row-store at-most-once guard: a migration run claims the
// row with a conditional write before touching storage.
type TempPatron struct {
	ID        string        `db:"id"`
	Email     string        `db:"email"`
	FormData  PledgePayload `db:"form_data"`
	ClaimedAt *time.Time    `db:"claimed_at"`
	CreatedAt time.Time     `db:"created_at"`
}

package model

import (
	"time"
)

// Document is a private file (will, MOU, deed) in the patron's vault. Unlike
// memories, documents are never public; access goes through the download
// endpoint.
type Document struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	FileName    string    `db:"file_name"`
	MimeType    string    `db:"mime_type"`
	Size        int64     `db:"size"`
	StoragePath string    `db:"storage_path"`
	CreatedAt   time.Time `db:"created_at"`
}

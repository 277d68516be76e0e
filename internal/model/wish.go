package model

import (
	"time"
)

const (
	WishTypeText  = "text"
	WishTypeVoice = "voice"
	WishTypeVideo = "video"
)

type Wish struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Type        string    `db:"type"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func ValidWishType(t string) bool {
	return t == WishTypeText || t == WishTypeVoice || t == WishTypeVideo
}

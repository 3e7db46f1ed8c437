package models

import (
	"time"
)

// Profile is an authenticated user. Accounts are created on first Google
// sign-in; there is no password flow.
type Profile struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Username    string    `gorm:"not null" json:"username"`
	Email       string    `gorm:"uniqueIndex;not null" json:"email"`
	AvatarURL   string    `json:"avatar_url"`
	GoogleID    string    `gorm:"index" json:"google_id"`
	GoogleEmail string    `gorm:"index" json:"google_email"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

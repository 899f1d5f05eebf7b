package model

import (
	"time"

	"github.com/google/uuid"
)

// User is an account in the reading log
type User struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
	Password string    `json:"-"` // bcrypt hash, never exposed

	// Profile
	DisplayName     *string `json:"display_name"`
	ProfilePhotoURL *string `json:"profile_photo_url"`
	Bio             *string `json:"bio"`

	IsActive bool `json:"is_active"`

	LastLoginAt *time.Time `json:"last_login_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

// PublicName is what other users see in community views
func (u *User) PublicName() string {
	if u.DisplayName != nil && *u.DisplayName != "" {
		return *u.DisplayName
	}
	return u.Username
}

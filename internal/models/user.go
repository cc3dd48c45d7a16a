package models

import (
	"time"

	"github.com/google/uuid"
)

// UserDB represents a user row in the database
type UserDB struct {
	UserID        uuid.UUID `json:"user_id" db:"user_id"`                 // Primary key
	Username      string    `json:"username" db:"username"`               // Unique username, stored lowercase
	Email         string    `json:"email" db:"email"`                     // Unique user email
	Fullname      string    `json:"fullname" db:"fullname"`               // Display name
	PasswordHash  string    `json:"-" db:"password_hash"`                 // Bcrypt hash, never serialized
	AvatarURL     string    `json:"avatar_url" db:"avatar_url"`           // URL on the media host
	CoverImageURL string    `json:"cover_image_url" db:"cover_image_url"` // Optional URL on the media host
	RefreshToken  *string   `json:"-" db:"refresh_token"`                 // Single active refresh token, nil when logged out
	CreatedAt     time.Time `json:"created_at" db:"created_at"`           // Creation timestamp
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`           // Last update timestamp
}

// User is the public view of a user with credential fields stripped.
type User struct {
	UserID        uuid.UUID `json:"user_id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	Fullname      string    `json:"fullname"`
	AvatarURL     string    `json:"avatar_url"`
	CoverImageURL string    `json:"cover_image_url"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Public returns the sanitized view of the user.
func (u *UserDB) Public() *User {
	return &User{
		UserID:        u.UserID,
		Username:      u.Username,
		Email:         u.Email,
		Fullname:      u.Fullname,
		AvatarURL:     u.AvatarURL,
		CoverImageURL: u.CoverImageURL,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

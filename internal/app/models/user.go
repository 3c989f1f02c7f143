package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	Name      string    `json:"name" db:"name" example:"Priya Singh"`
	Email     string    `json:"email" db:"email" example:"priya@example.com"`
	Password  string    `json:"-" db:"password"` // bcrypt hash, never serialized
	Role      Role      `json:"role" db:"role" example:"instructor"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"`
}

// UserSummary is the public projection embedded in joined records
type UserSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Summary returns the public projection of the user
func (u *User) Summary() *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}

package models

import "time"

// Role scopes a user's visibility and permitted operations.
type Role string

// Known user roles.
const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// Valid reports whether the role is one the system recognises.
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleAdmin
}

// User is an authenticated account. Identity is created at registration and
// never mutated through the API afterwards.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         Role      `gorm:"size:16;not null;default:student" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

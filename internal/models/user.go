package models

import (
	"time"
)

// User is an account row in the usuarios table. PasswordHash is never
// serialized; login responses use Profile instead.
type User struct {
	ID           int        `json:"id" db:"id"`
	Username     string     `json:"username" db:"username"`
	PasswordHash string     `json:"-" db:"password_hash"`
	FullName     string     `json:"nome" db:"nome"`
	Role         string     `json:"role" db:"role"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	LastLogin    *time.Time `json:"last_login" db:"last_login"`
}

// Profile is the login response payload, sans credentials
type Profile struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	FullName string `json:"nome"`
	Role     string `json:"role"`
}

// Profile strips the user down to its public fields
func (u *User) Profile() Profile {
	role := u.Role
	if role == "" {
		role = "user"
	}
	return Profile{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Role:     role,
	}
}

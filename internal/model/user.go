package model

import "time"

// User role constants for route guards.
const (
	UserRoleAdmin     = "admin"
	UserRoleFrontdesk = "frontdesk"
	UserRoleAssistant = "assistant"
)

// User is a system login.
type User struct {
	Base
	Email        string     `json:"email" db:"email"`
	Name         string     `json:"name" db:"name"`
	Password     string     `json:"password,omitempty" db:"-"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Role         string     `json:"role" db:"role"`
	Active       bool       `json:"active" db:"active"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty" db:"last_login_at"`
}

// LoginRequest is the credentials payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Role      string    `json:"role"`
	Name      string    `json:"name"`
}

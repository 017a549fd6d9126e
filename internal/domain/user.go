package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleAdmin  = 1
	RoleSeller = 2
)

type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Active       bool      `json:"active"`
	RoleID       int       `json:"role_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Claims struct {
	UserID     int
	UserName   string
	UserEmail  string
	UserRoleID int
	jwt.RegisteredClaims
}

// RegisterRequest é o corpo do cadastro de um novo vendedor
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

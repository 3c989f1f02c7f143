package dto

import "github.com/yigit/lecturehub/internal/app/models"

// RegisterRequest creates an instructor account
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"tokenType" example:"Bearer"`
	ExpiresIn int          `json:"expiresIn" example:"86400"`
	User      *models.User `json:"user"`
}

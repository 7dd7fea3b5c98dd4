package models

import "time"

// User is an account known to the identity provider
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// PublicUser is the part of a user exposed to other users
type PublicUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Public strips private fields
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email}
}

// RegisterRequest is the payload for creating an account
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest is the payload for password login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,max=72"`
}

// AuthResponse is returned after register or login
type AuthResponse struct {
	User  PublicUser `json:"user"`
	Token string     `json:"token"`
}

// LogoutResponse is returned after logout
type LogoutResponse struct {
	Success bool `json:"success"`
}

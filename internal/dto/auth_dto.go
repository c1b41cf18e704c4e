package dto

import "time"

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserDTO struct {
	Id    string `json:"id"`
	Email string `json:"email"`
}

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        UserDTO   `json:"user"`
}

// SessionResponse carries a nil user when nobody is signed in.
type SessionResponse struct {
	User *UserDTO `json:"user"`
}

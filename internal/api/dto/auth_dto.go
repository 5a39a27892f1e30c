package dto

import "time"

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries an issued token.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// VerificationCodeRequest payload for issuing a code.
type VerificationCodeRequest struct {
	Email string `json:"email"`
}

// VerificationCodeConfirmRequest payload for confirming a code.
type VerificationCodeConfirmRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

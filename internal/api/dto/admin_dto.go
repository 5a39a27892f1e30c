package dto

import "time"

// AdminCreateRequest payload.
type AdminCreateRequest struct {
	FullName    string     `json:"full_name"`
	Email       string     `json:"email"`
	PhoneNumber string     `json:"phone_number"`
	Password    string     `json:"password"`
	Image       ImageField `json:"image"`
}

// AdminUpdateRequest payload; absent fields are left untouched.
type AdminUpdateRequest struct {
	FullName    *string    `json:"full_name"`
	Email       *string    `json:"email"`
	PhoneNumber *string    `json:"phone_number"`
	Image       ImageField `json:"image"`
}

// ChangePasswordRequest payload for rotating the caller's own password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ResetPasswordRequest payload for a super-admin password reset.
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password"`
}

// AdminResponse serializes an admin account. The password hash is never
// exposed.
type AdminResponse struct {
	ID          string    `json:"id"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	Role        string    `json:"role"`
	IsActive    bool      `json:"is_active"`
	Image       *string   `json:"image"`
	CreatedBy   *string   `json:"created_by"`
	UpdatedBy   *string   `json:"updated_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

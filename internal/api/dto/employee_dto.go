package dto

import (
	"time"

	"github.com/spec-kit/workforce-directory/internal/domain"
)

// EmployeeCreateRequest payload. Image is mandatory.
type EmployeeCreateRequest struct {
	Name         string             `json:"name"`
	Email        string             `json:"email"`
	PhoneNumber  string             `json:"phone_number"`
	Age          int                `json:"age"`
	JoiningDate  time.Time          `json:"joining_date"`
	Designation  string             `json:"designation"`
	Address      string             `json:"address"`
	AboutMe      string             `json:"about_me"`
	SocialLinks  domain.SocialLinks `json:"social_links"`
	DepartmentID string             `json:"department_id"`
	Image        ImageField         `json:"image"`
}

// EmployeeUpdateRequest payload; absent fields are left untouched.
type EmployeeUpdateRequest struct {
	Name         *string             `json:"name"`
	Email        *string             `json:"email"`
	PhoneNumber  *string             `json:"phone_number"`
	Age          *int                `json:"age"`
	JoiningDate  *time.Time          `json:"joining_date"`
	Designation  *string             `json:"designation"`
	Address      *string             `json:"address"`
	AboutMe      *string             `json:"about_me"`
	SocialLinks  *domain.SocialLinks `json:"social_links"`
	DepartmentID *string             `json:"department_id"`
	Image        ImageField          `json:"image"`
}

// EmployeeResponse serializes an employee.
type EmployeeResponse struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Email        string             `json:"email"`
	PhoneNumber  string             `json:"phone_number"`
	Age          int                `json:"age"`
	JoiningDate  time.Time          `json:"joining_date"`
	Designation  string             `json:"designation"`
	Address      string             `json:"address"`
	AboutMe      string             `json:"about_me"`
	SocialLinks  domain.SocialLinks `json:"social_links"`
	DepartmentID string             `json:"department_id"`
	Image        *string            `json:"image"`
	CreatedBy    *string            `json:"created_by"`
	UpdatedBy    *string            `json:"updated_by"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

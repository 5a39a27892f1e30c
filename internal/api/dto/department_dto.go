package dto

import "time"

// DepartmentCreateRequest payload.
type DepartmentCreateRequest struct {
	Name  string     `json:"name"`
	Email string     `json:"email"`
	Image ImageField `json:"image"`
}

// DepartmentUpdateRequest payload; absent fields are left untouched.
type DepartmentUpdateRequest struct {
	Name  *string    `json:"name"`
	Email *string    `json:"email"`
	Image ImageField `json:"image"`
}

// DepartmentResponse serializes a department with its derived employee
// count.
type DepartmentResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	EmployeeCount int64     `json:"employee_count"`
	Image         *string   `json:"image"`
	CreatedBy     *string   `json:"created_by"`
	UpdatedBy     *string   `json:"updated_by"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

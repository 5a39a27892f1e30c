package domain

import "time"

// AdminRole enumerates administrator privilege levels.
type AdminRole string

const (
	AdminRoleAdmin      AdminRole = "admin"
	AdminRoleSuperAdmin AdminRole = "super_admin"
)

// Admin models an administrator account.
type Admin struct {
	ID           string
	FullName     string
	Email        string
	PhoneNumber  string
	PasswordHash string
	Role         AdminRole
	Image        ImageRef
	AuditFields
	IsActive  bool
	IsDeleted bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

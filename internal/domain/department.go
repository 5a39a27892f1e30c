package domain

import (
	"strings"
	"time"
)

// Department represents an organizational unit employees belong to.
type Department struct {
	ID    string
	Name  string
	Email string
	Image ImageRef
	AuditFields
	IsDeleted bool
	CreatedAt time.Time
	UpdatedAt time.Time

	// EmployeeCount is derived at read time, not stored.
	EmployeeCount int64
}

// NormalizeName collapses a department name for uniqueness comparison:
// lowercased with spaces and hyphens removed, so "Human Resources",
// "human-resources" and "HUMANRESOURCES" all collide.
func NormalizeName(name string) string {
	replacer := strings.NewReplacer(" ", "", "-", "")
	return replacer.Replace(strings.ToLower(strings.TrimSpace(name)))
}

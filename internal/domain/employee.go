package domain

import "time"

// Employee models a workforce directory entry.
type Employee struct {
	ID           string
	Name         string
	Email        string
	PhoneNumber  string
	Age          int
	JoiningDate  time.Time
	Designation  string
	Address      string
	AboutMe      string
	SocialLinks  SocialLinks
	Image        ImageRef
	DepartmentID string
	AuditFields
	IsDeleted bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

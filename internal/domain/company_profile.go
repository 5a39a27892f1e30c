package domain

import "time"

// CompanyProfile is a singleton record describing the company itself.
// Unlike the other entities it is hard-deleted, guarded by the absence of
// any admins, departments or employees.
type CompanyProfile struct {
	ID                string
	CompanyName       string
	WebsiteLink       string
	Established       string
	Address           string
	ButtonName        string
	ButtonRedirectURL string
	Image             ImageRef
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

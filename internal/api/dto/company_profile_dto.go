package dto

import "time"

// CompanyProfileCreateRequest payload. Image is mandatory.
type CompanyProfileCreateRequest struct {
	CompanyName       string     `json:"company_name"`
	WebsiteLink       string     `json:"website_link"`
	Established       string     `json:"established"`
	Address           string     `json:"address"`
	ButtonName        string     `json:"button_name"`
	ButtonRedirectURL string     `json:"button_redirect_url"`
	Image             ImageField `json:"image"`
}

// CompanyProfileUpdateRequest payload; absent fields are left untouched.
type CompanyProfileUpdateRequest struct {
	CompanyName       *string    `json:"company_name"`
	WebsiteLink       *string    `json:"website_link"`
	Established       *string    `json:"established"`
	Address           *string    `json:"address"`
	ButtonName        *string    `json:"button_name"`
	ButtonRedirectURL *string    `json:"button_redirect_url"`
	Image             ImageField `json:"image"`
}

// CompanyProfileResponse serializes the singleton company profile.
type CompanyProfileResponse struct {
	ID                string    `json:"id"`
	CompanyName       string    `json:"company_name"`
	WebsiteLink       string    `json:"website_link"`
	Established       string    `json:"established"`
	Address           string    `json:"address"`
	ButtonName        string    `json:"button_name"`
	ButtonRedirectURL string    `json:"button_redirect_url"`
	Image             *string   `json:"image"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

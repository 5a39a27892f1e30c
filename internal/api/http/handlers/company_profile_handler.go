package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/workforce-directory/internal/api/dto"
	"github.com/spec-kit/workforce-directory/internal/domain"
	"github.com/spec-kit/workforce-directory/internal/service"
	apperrors "github.com/spec-kit/workforce-directory/pkg/util/errorutil"
)

// CompanyProfileHandler exposes the singleton company profile endpoints.
type CompanyProfileHandler struct {
	profileService *service.CompanyProfileService
}

// NewCompanyProfileHandler constructs handler.
func NewCompanyProfileHandler(profileService *service.CompanyProfileService) *CompanyProfileHandler {
	return &CompanyProfileHandler{profileService: profileService}
}

// Create handles POST /company-profile.
func (h *CompanyProfileHandler) Create(c *fiber.Ctx) error {
	var req dto.CompanyProfileCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	image, err := req.Image.Bytes()
	if err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	profile, err := h.profileService.Create(c.UserContext(), service.CreateCompanyProfileInput{
		CompanyName:       req.CompanyName,
		WebsiteLink:       req.WebsiteLink,
		Established:       req.Established,
		Address:           req.Address,
		ButtonName:        req.ButtonName,
		ButtonRedirectURL: req.ButtonRedirectURL,
		Image:             image,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success":         true,
		"message":         "company profile created",
		"company_profile": companyProfileResponse(profile),
	})
}

// Get handles GET /company-profile.
func (h *CompanyProfileHandler) Get(c *fiber.Ctx) error {
	profile, err := h.profileService.Get(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":         true,
		"message":         "company profile fetched",
		"company_profile": companyProfileResponse(profile),
	})
}

// Update handles PATCH /company-profile.
func (h *CompanyProfileHandler) Update(c *fiber.Ctx) error {
	var req dto.CompanyProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	image, err := req.Image.Bytes()
	if err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	profile, changed, err := h.profileService.Update(c.UserContext(), service.UpdateCompanyProfileInput{
		CompanyName:       req.CompanyName,
		WebsiteLink:       req.WebsiteLink,
		Established:       req.Established,
		Address:           req.Address,
		ButtonName:        req.ButtonName,
		ButtonRedirectURL: req.ButtonRedirectURL,
		Image:             image,
	})
	if err != nil {
		return err
	}

	message := "company profile updated"
	if !changed {
		message = "nothing to update"
	}
	return c.JSON(fiber.Map{
		"success":         true,
		"message":         message,
		"company_profile": companyProfileResponse(profile),
	})
}

// Delete handles DELETE /company-profile.
func (h *CompanyProfileHandler) Delete(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	if err := h.profileService.Delete(c.UserContext(), actor, parseDeletePassword(c)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "company profile deleted",
	})
}

func companyProfileResponse(profile *domain.CompanyProfile) dto.CompanyProfileResponse {
	return dto.CompanyProfileResponse{
		ID:                profile.ID,
		CompanyName:       profile.CompanyName,
		WebsiteLink:       profile.WebsiteLink,
		Established:       profile.Established,
		Address:           profile.Address,
		ButtonName:        profile.ButtonName,
		ButtonRedirectURL: profile.ButtonRedirectURL,
		Image:             profile.Image.AccessURL,
		CreatedAt:         profile.CreatedAt,
		UpdatedAt:         profile.UpdatedAt,
	}
}

package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/workforce-directory/internal/api/dto"
	"github.com/spec-kit/workforce-directory/internal/domain"
	"github.com/spec-kit/workforce-directory/internal/service"
	apperrors "github.com/spec-kit/workforce-directory/pkg/util/errorutil"
)

// AdminsHandler exposes admin account management endpoints.
type AdminsHandler struct {
	adminService *service.AdminService
}

// NewAdminsHandler constructs handler.
func NewAdminsHandler(adminService *service.AdminService) *AdminsHandler {
	return &AdminsHandler{adminService: adminService}
}

// Create handles POST /admins.
func (h *AdminsHandler) Create(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	var req dto.AdminCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	image, err := req.Image.Bytes()
	if err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	admin, err := h.adminService.Create(c.UserContext(), actor, service.CreateAdminInput{
		FullName:    req.FullName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
		Image:       image,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "admin created",
		"admin":   adminResponse(admin),
	})
}

// List handles GET /admins.
func (h *AdminsHandler) List(c *fiber.Ctx) error {
	admins, pagination, err := h.adminService.List(c.UserContext(), parseListParams(c))
	if err != nil {
		return err
	}

	resp := make([]dto.AdminResponse, 0, len(admins))
	for i := range admins {
		resp = append(resp, adminResponse(&admins[i]))
	}
	return c.JSON(fiber.Map{
		"success":    true,
		"message":    "admins fetched",
		"admins":     resp,
		"pagination": paginationResponse(pagination),
	})
}

// ListDeleted handles GET /admins/deleted.
func (h *AdminsHandler) ListDeleted(c *fiber.Ctx) error {
	admins, pagination, err := h.adminService.ListDeleted(c.UserContext(), parseListParams(c))
	if err != nil {
		return err
	}

	resp := make([]dto.AdminResponse, 0, len(admins))
	for i := range admins {
		resp = append(resp, adminResponse(&admins[i]))
	}
	return c.JSON(fiber.Map{
		"success":    true,
		"message":    "deleted admins fetched",
		"admins":     resp,
		"pagination": paginationResponse(pagination),
	})
}

// Get handles GET /admins/:id.
func (h *AdminsHandler) Get(c *fiber.Ctx) error {
	admin, err := h.adminService.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "admin fetched",
		"admin":   adminResponse(admin),
	})
}

// Update handles PATCH /admins/:id.
func (h *AdminsHandler) Update(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	var req dto.AdminUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	image, err := req.Image.Bytes()
	if err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	admin, changed, err := h.adminService.Update(c.UserContext(), actor, c.Params("id"), service.UpdateAdminInput{
		FullName:    req.FullName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Image:       image,
		RemoveImage: req.Image.Clear(),
	})
	if err != nil {
		return err
	}

	message := "admin updated"
	if !changed {
		message = "nothing to update"
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": message,
		"admin":   adminResponse(admin),
	})
}

// ChangePassword handles PUT /admins/change-password.
func (h *AdminsHandler) ChangePassword(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}

	if err := h.adminService.ChangePassword(c.UserContext(), actor, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "password changed",
	})
}

// ResetPassword handles PUT /admins/:id/reset-password.
func (h *AdminsHandler) ResetPassword(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}

	if err := h.adminService.ResetPassword(c.UserContext(), actor, c.Params("id"), req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "password reset",
	})
}

// Delete handles DELETE /admins/:id.
func (h *AdminsHandler) Delete(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	if err := h.adminService.Delete(c.UserContext(), actor, c.Params("id"), parseDeletePassword(c)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "admin deleted",
	})
}

// Restore handles POST /admins/:id/restore.
func (h *AdminsHandler) Restore(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	admin, err := h.adminService.Restore(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "admin restored",
		"admin":   adminResponse(admin),
	})
}

func adminResponse(admin *domain.Admin) dto.AdminResponse {
	return dto.AdminResponse{
		ID:          admin.ID,
		FullName:    admin.FullName,
		Email:       admin.Email,
		PhoneNumber: admin.PhoneNumber,
		Role:        string(admin.Role),
		IsActive:    admin.IsActive,
		Image:       admin.Image.AccessURL,
		CreatedBy:   admin.CreatedBy,
		UpdatedBy:   admin.UpdatedBy,
		CreatedAt:   admin.CreatedAt,
		UpdatedAt:   admin.UpdatedAt,
	}
}

package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/workforce-directory/internal/api/dto"
	"github.com/spec-kit/workforce-directory/internal/service"
	apperrors "github.com/spec-kit/workforce-directory/pkg/util/errorutil"
)

// AuthHandler exposes login and verification-code endpoints.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}

	result, err := h.authService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "login successful",
		"admin":   adminResponse(result.Admin),
		"auth":    dto.AuthResponse{Token: result.Token, ExpiresAt: result.ExpiresAt},
	})
}

// IssueVerificationCode handles POST /auth/verification-code.
func (h *AuthHandler) IssueVerificationCode(c *fiber.Ctx) error {
	var req dto.VerificationCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}

	if err := h.authService.IssueVerificationCode(c.UserContext(), req.Email); err != nil {
		return err
	}

	return c.Status(http.StatusAccepted).JSON(fiber.Map{
		"success": true,
		"message": "verification code sent",
	})
}

// ConfirmVerificationCode handles POST /auth/verification-code/confirm.
func (h *AuthHandler) ConfirmVerificationCode(c *fiber.Ctx) error {
	var req dto.VerificationCodeConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}

	if err := h.authService.ConfirmVerificationCode(c.UserContext(), req.Email, req.Code); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "verification code confirmed",
	})
}

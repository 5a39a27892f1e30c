package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/workforce-directory/internal/api/dto"
	"github.com/spec-kit/workforce-directory/internal/domain"
	"github.com/spec-kit/workforce-directory/internal/service"
	apperrors "github.com/spec-kit/workforce-directory/pkg/util/errorutil"
)

// DepartmentsHandler exposes department management endpoints.
type DepartmentsHandler struct {
	departmentService *service.DepartmentService
}

// NewDepartmentsHandler constructs handler.
func NewDepartmentsHandler(departmentService *service.DepartmentService) *DepartmentsHandler {
	return &DepartmentsHandler{departmentService: departmentService}
}

// Create handles POST /departments.
func (h *DepartmentsHandler) Create(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	var req dto.DepartmentCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	image, err := req.Image.Bytes()
	if err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	dept, err := h.departmentService.Create(c.UserContext(), actor, service.CreateDepartmentInput{
		Name:  req.Name,
		Email: req.Email,
		Image: image,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success":    true,
		"message":    "department created",
		"department": departmentResponse(dept),
	})
}

// List handles GET /departments.
func (h *DepartmentsHandler) List(c *fiber.Ctx) error {
	depts, pagination, err := h.departmentService.List(c.UserContext(), parseListParams(c))
	if err != nil {
		return err
	}

	resp := make([]dto.DepartmentResponse, 0, len(depts))
	for i := range depts {
		resp = append(resp, departmentResponse(&depts[i]))
	}
	return c.JSON(fiber.Map{
		"success":     true,
		"message":     "departments fetched",
		"departments": resp,
		"pagination":  paginationResponse(pagination),
	})
}

// Get handles GET /departments/:id.
func (h *DepartmentsHandler) Get(c *fiber.Ctx) error {
	dept, err := h.departmentService.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":    true,
		"message":    "department fetched",
		"department": departmentResponse(dept),
	})
}

// Update handles PATCH /departments/:id.
func (h *DepartmentsHandler) Update(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	var req dto.DepartmentUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	image, err := req.Image.Bytes()
	if err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	dept, changed, err := h.departmentService.Update(c.UserContext(), actor, c.Params("id"), service.UpdateDepartmentInput{
		Name:        req.Name,
		Email:       req.Email,
		Image:       image,
		RemoveImage: req.Image.Clear(),
	})
	if err != nil {
		return err
	}

	message := "department updated"
	if !changed {
		message = "nothing to update"
	}
	return c.JSON(fiber.Map{
		"success":    true,
		"message":    message,
		"department": departmentResponse(dept),
	})
}

// Delete handles DELETE /departments/:id.
func (h *DepartmentsHandler) Delete(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	if err := h.departmentService.Delete(c.UserContext(), actor, c.Params("id"), parseDeletePassword(c)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "department deleted",
	})
}

// Restore handles POST /departments/:id/restore.
func (h *DepartmentsHandler) Restore(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	dept, err := h.departmentService.Restore(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":    true,
		"message":    "department restored",
		"department": departmentResponse(dept),
	})
}

func departmentResponse(dept *domain.Department) dto.DepartmentResponse {
	return dto.DepartmentResponse{
		ID:            dept.ID,
		Name:          dept.Name,
		Email:         dept.Email,
		EmployeeCount: dept.EmployeeCount,
		Image:         dept.Image.AccessURL,
		CreatedBy:     dept.CreatedBy,
		UpdatedBy:     dept.UpdatedBy,
		CreatedAt:     dept.CreatedAt,
		UpdatedAt:     dept.UpdatedAt,
	}
}

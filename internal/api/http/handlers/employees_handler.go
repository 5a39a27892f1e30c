package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/workforce-directory/internal/api/dto"
	"github.com/spec-kit/workforce-directory/internal/domain"
	"github.com/spec-kit/workforce-directory/internal/service"
	apperrors "github.com/spec-kit/workforce-directory/pkg/util/errorutil"
)

// EmployeesHandler exposes employee management endpoints.
type EmployeesHandler struct {
	employeeService *service.EmployeeService
}

// NewEmployeesHandler constructs handler.
func NewEmployeesHandler(employeeService *service.EmployeeService) *EmployeesHandler {
	return &EmployeesHandler{employeeService: employeeService}
}

// Create handles POST /employees.
func (h *EmployeesHandler) Create(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	var req dto.EmployeeCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	image, err := req.Image.Bytes()
	if err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	emp, err := h.employeeService.Create(c.UserContext(), actor, service.CreateEmployeeInput{
		Name:         req.Name,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		Age:          req.Age,
		JoiningDate:  req.JoiningDate,
		Designation:  req.Designation,
		Address:      req.Address,
		AboutMe:      req.AboutMe,
		SocialLinks:  req.SocialLinks,
		DepartmentID: req.DepartmentID,
		Image:        image,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success":  true,
		"message":  "employee created",
		"employee": employeeResponse(emp),
	})
}

// List handles GET /employees.
func (h *EmployeesHandler) List(c *fiber.Ctx) error {
	emps, pagination, err := h.employeeService.List(c.UserContext(), parseListParams(c))
	if err != nil {
		return err
	}

	resp := make([]dto.EmployeeResponse, 0, len(emps))
	for i := range emps {
		resp = append(resp, employeeResponse(&emps[i]))
	}
	return c.JSON(fiber.Map{
		"success":    true,
		"message":    "employees fetched",
		"employees":  resp,
		"pagination": paginationResponse(pagination),
	})
}

// Get handles GET /employees/:id.
func (h *EmployeesHandler) Get(c *fiber.Ctx) error {
	emp, err := h.employeeService.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"message":  "employee fetched",
		"employee": employeeResponse(emp),
	})
}

// Update handles PATCH /employees/:id.
func (h *EmployeesHandler) Update(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	var req dto.EmployeeUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	image, err := req.Image.Bytes()
	if err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	emp, changed, err := h.employeeService.Update(c.UserContext(), actor, c.Params("id"), service.UpdateEmployeeInput{
		Name:         req.Name,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		Age:          req.Age,
		JoiningDate:  req.JoiningDate,
		Designation:  req.Designation,
		Address:      req.Address,
		AboutMe:      req.AboutMe,
		SocialLinks:  req.SocialLinks,
		DepartmentID: req.DepartmentID,
		Image:        image,
		RemoveImage:  req.Image.Clear(),
	})
	if err != nil {
		return err
	}

	message := "employee updated"
	if !changed {
		message = "nothing to update"
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"message":  message,
		"employee": employeeResponse(emp),
	})
}

// Delete handles DELETE /employees/:id.
func (h *EmployeesHandler) Delete(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	if err := h.employeeService.Delete(c.UserContext(), actor, c.Params("id"), parseDeletePassword(c)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "employee deleted",
	})
}

// Restore handles POST /employees/:id/restore.
func (h *EmployeesHandler) Restore(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	emp, err := h.employeeService.Restore(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"message":  "employee restored",
		"employee": employeeResponse(emp),
	})
}

func employeeResponse(emp *domain.Employee) dto.EmployeeResponse {
	return dto.EmployeeResponse{
		ID:           emp.ID,
		Name:         emp.Name,
		Email:        emp.Email,
		PhoneNumber:  emp.PhoneNumber,
		Age:          emp.Age,
		JoiningDate:  emp.JoiningDate,
		Designation:  emp.Designation,
		Address:      emp.Address,
		AboutMe:      emp.AboutMe,
		SocialLinks:  emp.SocialLinks,
		DepartmentID: emp.DepartmentID,
		Image:        emp.Image.AccessURL,
		CreatedBy:    emp.CreatedBy,
		UpdatedBy:    emp.UpdatedBy,
		CreatedAt:    emp.CreatedAt,
		UpdatedAt:    emp.UpdatedAt,
	}
}

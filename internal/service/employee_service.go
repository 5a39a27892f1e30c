package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/workforce-directory/internal/asset"
	"github.com/spec-kit/workforce-directory/internal/domain"
	"github.com/spec-kit/workforce-directory/internal/events"
	"github.com/spec-kit/workforce-directory/internal/repository"
	apperrors "github.com/spec-kit/workforce-directory/pkg/util/errorutil"
)

const employeeAssetPrefix = "employees"

// EmployeeService orchestrates employee lifecycle.
type EmployeeService struct {
	employees   repository.EmployeeRepository
	departments repository.DepartmentRepository
	assets      *asset.Manager
	dispatcher  events.Dispatcher
	logger      *zap.Logger
}

// NewEmployeeService constructs the service.
func NewEmployeeService(
	employees repository.EmployeeRepository,
	departments repository.DepartmentRepository,
	assets *asset.Manager,
	dispatcher events.Dispatcher,
	logger *zap.Logger,
) *EmployeeService {
	return &EmployeeService{
		employees:   employees,
		departments: departments,
		assets:      assets,
		dispatcher:  dispatcher,
		logger:      logger,
	}
}

// CreateEmployeeInput carries the fields accepted at creation. Image bytes
// are mandatory for employees.
type CreateEmployeeInput struct {
	Name         string
	Email        string
	PhoneNumber  string
	Age          int
	JoiningDate  time.Time
	Designation  string
	Address      string
	AboutMe      string
	SocialLinks  domain.SocialLinks
	DepartmentID string
	Image        []byte
}

// UpdateEmployeeInput names every updatable field explicitly; nil means
// "not supplied".
type UpdateEmployeeInput struct {
	Name         *string
	Email        *string
	PhoneNumber  *string
	Age          *int
	JoiningDate  *time.Time
	Designation  *string
	Address      *string
	AboutMe      *string
	SocialLinks  *domain.SocialLinks
	DepartmentID *string
	Image        []byte
	RemoveImage  bool
}

// Create validates the target department, checks natural-key uniqueness,
// uploads the mandatory photo and persists.
func (s *EmployeeService) Create(ctx context.Context, actor *domain.Admin, in CreateEmployeeInput) (*domain.Employee, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	phone := strings.TrimSpace(in.PhoneNumber)
	if in.Name == "" || email == "" || phone == "" || in.DepartmentID == "" {
		return nil, apperrors.NewValidationError("name, email, phone_number and department_id are required", nil)
	}
	if len(in.Image) == 0 {
		return nil, apperrors.NewValidationError("employee image is required", nil)
	}
	if in.Age < 18 || in.Age > 100 {
		return nil, apperrors.NewValidationError("age must be between 18 and 100", nil)
	}

	if err := s.requireActiveDepartment(ctx, in.DepartmentID); err != nil {
		return nil, err
	}

	conflict, err := s.employees.FindConflict(ctx, &email, &phone, "")
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if conflict != nil {
		return nil, apperrors.NewConflict("an employee with this email or phone number already exists", nil)
	}

	emp := &domain.Employee{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PhoneNumber:  phone,
		Age:          in.Age,
		JoiningDate:  in.JoiningDate,
		Designation:  in.Designation,
		Address:      in.Address,
		AboutMe:      in.AboutMe,
		SocialLinks:  in.SocialLinks,
		DepartmentID: in.DepartmentID,
	}
	emp.CreatedBy = &actor.ID

	ref, err := s.assets.Upload(ctx, in.Image, employeeAssetPrefix)
	if err != nil {
		return nil, err
	}
	emp.Image = ref

	if err := s.employees.Create(ctx, emp); err != nil {
		s.assets.Remove(ctx, &emp.Image)
		return nil, apperrors.MapError(err)
	}

	s.assets.AttachURL(ctx, &emp.Image)
	return emp, nil
}

// List returns a page of active employees with signed image URLs.
func (s *EmployeeService) List(ctx context.Context, params repository.ListParams) ([]domain.Employee, repository.Pagination, error) {
	emps, pagination, err := s.employees.List(ctx, params)
	if err != nil {
		return nil, repository.Pagination{}, apperrors.MapError(err)
	}
	for i := range emps {
		s.assets.AttachURL(ctx, &emps[i].Image)
	}
	return emps, pagination, nil
}

// GetByID fetches an active employee.
func (s *EmployeeService) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	emp, err := s.loadActive(ctx, id)
	if err != nil {
		return nil, err
	}
	s.assets.AttachURL(ctx, &emp.Image)
	return emp, nil
}

// Update applies a typed diff. Only changed natural keys are re-validated,
// and a full no-op short-circuits without touching updated_by.
func (s *EmployeeService) Update(ctx context.Context, actor *domain.Admin, id string, in UpdateEmployeeInput) (*domain.Employee, bool, error) {
	emp, err := s.loadActive(ctx, id)
	if err != nil {
		return nil, false, err
	}

	var trimmedEmail, trimmedPhone *string
	if in.Email != nil {
		v := strings.ToLower(strings.TrimSpace(*in.Email))
		trimmedEmail = &v
	}
	if in.PhoneNumber != nil {
		v := strings.TrimSpace(*in.PhoneNumber)
		trimmedPhone = &v
	}

	var guardEmail, guardPhone *string
	if strChanged(emp.Email, trimmedEmail) {
		guardEmail = trimmedEmail
	}
	if strChanged(emp.PhoneNumber, trimmedPhone) {
		guardPhone = trimmedPhone
	}
	if guardEmail != nil || guardPhone != nil {
		conflict, err := s.employees.FindConflict(ctx, guardEmail, guardPhone, emp.ID)
		if err != nil {
			return nil, false, apperrors.MapError(err)
		}
		if conflict != nil {
			return nil, false, apperrors.NewConflict("another employee with this email or phone number already exists", nil)
		}
	}

	if in.Age != nil && (*in.Age < 18 || *in.Age > 100) {
		return nil, false, apperrors.NewValidationError("age must be between 18 and 100", nil)
	}

	if in.DepartmentID != nil && *in.DepartmentID != emp.DepartmentID {
		if err := s.requireActiveDepartment(ctx, *in.DepartmentID); err != nil {
			return nil, false, err
		}
	}

	changed := false
	if in.Name != nil && *in.Name != emp.Name {
		emp.Name = *in.Name
		changed = true
	}
	if guardEmail != nil {
		emp.Email = *guardEmail
		changed = true
	}
	if guardPhone != nil {
		emp.PhoneNumber = *guardPhone
		changed = true
	}
	if in.Age != nil && *in.Age != emp.Age {
		emp.Age = *in.Age
		changed = true
	}
	if in.JoiningDate != nil && !in.JoiningDate.Equal(emp.JoiningDate) {
		emp.JoiningDate = *in.JoiningDate
		changed = true
	}
	if in.Designation != nil && *in.Designation != emp.Designation {
		emp.Designation = *in.Designation
		changed = true
	}
	if in.Address != nil && *in.Address != emp.Address {
		emp.Address = *in.Address
		changed = true
	}
	if in.AboutMe != nil && *in.AboutMe != emp.AboutMe {
		emp.AboutMe = *in.AboutMe
		changed = true
	}
	if in.SocialLinks != nil && *in.SocialLinks != emp.SocialLinks {
		emp.SocialLinks = *in.SocialLinks
		changed = true
	}
	if in.DepartmentID != nil && *in.DepartmentID != emp.DepartmentID {
		emp.DepartmentID = *in.DepartmentID
		changed = true
	}

	if len(in.Image) > 0 {
		if err := s.assets.Replace(ctx, &emp.Image, in.Image, employeeAssetPrefix); err != nil {
			return nil, false, err
		}
		changed = true
	} else if in.RemoveImage && emp.Image.Present() {
		s.assets.Remove(ctx, &emp.Image)
		changed = true
	}

	if !changed {
		s.assets.AttachURL(ctx, &emp.Image)
		return emp, false, nil
	}

	emp.UpdatedBy = &actor.ID
	if err := s.employees.Update(ctx, emp); err != nil {
		return nil, false, apperrors.MapError(err)
	}

	s.assets.AttachURL(ctx, &emp.Image)
	return emp, true, nil
}

// Delete soft-deletes an employee after password confirmation and releases
// the stored photo.
func (s *EmployeeService) Delete(ctx context.Context, actor *domain.Admin, id, confirmPassword string) error {
	if err := confirmActorPassword(actor, confirmPassword); err != nil {
		return err
	}

	emp, err := s.loadActive(ctx, id)
	if err != nil {
		return err
	}

	// Persist the flip before touching the object store so a failed write
	// leaves the record, photo included, untouched.
	oldImage := emp.Image
	emp.Image.Clear()
	emp.IsDeleted = true
	emp.UpdatedBy = &actor.ID
	if err := s.employees.Update(ctx, emp); err != nil {
		emp.Image = oldImage
		return apperrors.MapError(err)
	}
	s.assets.Remove(ctx, &oldImage)

	s.publish(ctx, events.EventEmployeeDeactivated, actor.ID, events.RecipientPayload{
		Email: emp.Email,
		Name:  emp.Name,
	})
	return nil
}

// Restore brings back a soft-deleted employee. A released photo is not
// restored, and the original department must still be active.
func (s *EmployeeService) Restore(ctx context.Context, actor *domain.Admin, id string) (*domain.Employee, error) {
	emp, err := s.employees.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("employee", nil)
		}
		return nil, apperrors.MapError(err)
	}
	if !emp.IsDeleted {
		return nil, apperrors.NewValidationError("employee is not deleted", nil)
	}

	if err := s.requireActiveDepartment(ctx, emp.DepartmentID); err != nil {
		return nil, err
	}

	emp.IsDeleted = false
	emp.UpdatedBy = &actor.ID
	if err := s.employees.Update(ctx, emp); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventEmployeeRestored, actor.ID, events.RecipientPayload{
		Email: emp.Email,
		Name:  emp.Name,
	})
	return emp, nil
}

func (s *EmployeeService) requireActiveDepartment(ctx context.Context, departmentID string) error {
	dept, err := s.departments.GetByID(ctx, departmentID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewValidationError("department does not exist", nil)
		}
		return apperrors.MapError(err)
	}
	if dept.IsDeleted {
		return apperrors.NewValidationError("department does not exist", nil)
	}
	return nil
}

func (s *EmployeeService) loadActive(ctx context.Context, id string) (*domain.Employee, error) {
	emp, err := s.employees.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("employee", nil)
		}
		return nil, apperrors.MapError(err)
	}
	if emp.IsDeleted {
		return nil, apperrors.NewNotFound("employee", nil)
	}
	return emp, nil
}

func (s *EmployeeService) publish(ctx context.Context, eventType events.EventType, actorID string, payload any) {
	if s.dispatcher == nil {
		return
	}
	err := s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		ActorID:   actorID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
	if err != nil {
		s.logger.Warn("event dispatch failed", zap.String("event", string(eventType)), zap.Error(err))
	}
}

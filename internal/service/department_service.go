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

const departmentAssetPrefix = "departments"

// DepartmentService orchestrates department lifecycle.
type DepartmentService struct {
	departments repository.DepartmentRepository
	employees   repository.EmployeeRepository
	assets      *asset.Manager
	dispatcher  events.Dispatcher
	logger      *zap.Logger
}

// NewDepartmentService constructs the service.
func NewDepartmentService(
	departments repository.DepartmentRepository,
	employees repository.EmployeeRepository,
	assets *asset.Manager,
	dispatcher events.Dispatcher,
	logger *zap.Logger,
) *DepartmentService {
	return &DepartmentService{
		departments: departments,
		employees:   employees,
		assets:      assets,
		dispatcher:  dispatcher,
		logger:      logger,
	}
}

// CreateDepartmentInput carries the fields accepted at creation.
type CreateDepartmentInput struct {
	Name  string
	Email string
	Image []byte
}

// UpdateDepartmentInput names every updatable field explicitly; nil means
// "not supplied". RemoveImage clears the image when no new one is given.
type UpdateDepartmentInput struct {
	Name        *string
	Email       *string
	Image       []byte
	RemoveImage bool
}

// Create validates uniqueness, uploads the optional image and persists.
func (s *DepartmentService) Create(ctx context.Context, actor *domain.Admin, in CreateDepartmentInput) (*domain.Department, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" || email == "" {
		return nil, apperrors.NewValidationError("name and email are required", nil)
	}

	conflict, err := s.departments.FindConflict(ctx, &name, &email, "")
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if conflict != nil {
		return nil, apperrors.NewConflict("a department with the same name or email already exists", nil)
	}

	dept := &domain.Department{
		Name:  name,
		Email: email,
	}
	dept.CreatedBy = &actor.ID

	if len(in.Image) > 0 {
		ref, err := s.assets.Upload(ctx, in.Image, departmentAssetPrefix)
		if err != nil {
			return nil, err
		}
		dept.Image = ref
	}

	if err := s.departments.Create(ctx, dept); err != nil {
		// The record never persisted; release the just-uploaded object.
		if dept.Image.Present() {
			s.assets.Remove(ctx, &dept.Image)
		}
		return nil, apperrors.MapError(err)
	}

	s.assets.AttachURL(ctx, &dept.Image)
	return dept, nil
}

// List returns a page of active departments with signed image URLs.
func (s *DepartmentService) List(ctx context.Context, params repository.ListParams) ([]domain.Department, repository.Pagination, error) {
	depts, pagination, err := s.departments.List(ctx, params)
	if err != nil {
		return nil, repository.Pagination{}, apperrors.MapError(err)
	}
	for i := range depts {
		s.assets.AttachURL(ctx, &depts[i].Image)
	}
	return depts, pagination, nil
}

// GetByID fetches an active department.
func (s *DepartmentService) GetByID(ctx context.Context, id string) (*domain.Department, error) {
	dept, err := s.loadActive(ctx, id)
	if err != nil {
		return nil, err
	}
	s.assets.AttachURL(ctx, &dept.Image)
	return dept, nil
}

// Update applies a typed diff. Returns the department and whether anything
// changed; a full no-op leaves updated_by and updated_at untouched.
func (s *DepartmentService) Update(ctx context.Context, actor *domain.Admin, id string, in UpdateDepartmentInput) (*domain.Department, bool, error) {
	dept, err := s.loadActive(ctx, id)
	if err != nil {
		return nil, false, err
	}

	var trimmedName, trimmedEmail *string
	if in.Name != nil {
		v := strings.TrimSpace(*in.Name)
		trimmedName = &v
	}
	if in.Email != nil {
		v := strings.ToLower(strings.TrimSpace(*in.Email))
		trimmedEmail = &v
	}

	nameChanged := trimmedName != nil && domain.NormalizeName(*trimmedName) != domain.NormalizeName(dept.Name)
	emailChanged := strChanged(dept.Email, trimmedEmail)

	// Re-validate only the fields that actually changed.
	var guardName, guardEmail *string
	if nameChanged {
		guardName = trimmedName
	}
	if emailChanged {
		guardEmail = trimmedEmail
	}
	if guardName != nil || guardEmail != nil {
		conflict, err := s.departments.FindConflict(ctx, guardName, guardEmail, dept.ID)
		if err != nil {
			return nil, false, apperrors.MapError(err)
		}
		if conflict != nil {
			return nil, false, apperrors.NewConflict("another department with the same name or email already exists", nil)
		}
	}

	changed := false
	if nameChanged || (trimmedName != nil && *trimmedName != dept.Name) {
		dept.Name = *trimmedName
		changed = true
	}
	if emailChanged {
		dept.Email = *trimmedEmail
		changed = true
	}

	if len(in.Image) > 0 {
		if err := s.assets.Replace(ctx, &dept.Image, in.Image, departmentAssetPrefix); err != nil {
			return nil, false, err
		}
		changed = true
	} else if in.RemoveImage && dept.Image.Present() {
		s.assets.Remove(ctx, &dept.Image)
		changed = true
	}

	if !changed {
		s.assets.AttachURL(ctx, &dept.Image)
		return dept, false, nil
	}

	dept.UpdatedBy = &actor.ID
	if err := s.departments.Update(ctx, dept); err != nil {
		return nil, false, apperrors.MapError(err)
	}

	s.assets.AttachURL(ctx, &dept.Image)
	return dept, true, nil
}

// Delete soft-deletes a department after the actor re-enters their password.
// Blocked while employees still reference it.
func (s *DepartmentService) Delete(ctx context.Context, actor *domain.Admin, id, confirmPassword string) error {
	if err := confirmActorPassword(actor, confirmPassword); err != nil {
		return err
	}

	dept, err := s.loadActive(ctx, id)
	if err != nil {
		return err
	}

	employeeCount, err := s.employees.CountByDepartment(ctx, dept.ID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if employeeCount > 0 {
		return apperrors.NewDependencyBlocked("cannot delete department with assigned employees",
			map[string]any{"employee_count": employeeCount})
	}

	// Persist the flip before touching the object store: a failed write must
	// leave the record, image included, untouched. The release afterwards is
	// best-effort; a failure only orphans the object.
	oldImage := dept.Image
	dept.Image.Clear()
	dept.IsDeleted = true
	dept.UpdatedBy = &actor.ID
	if err := s.departments.Update(ctx, dept); err != nil {
		dept.Image = oldImage
		return apperrors.MapError(err)
	}
	s.assets.Remove(ctx, &oldImage)

	s.publish(ctx, events.EventDepartmentDeleted, actor.ID, events.RecipientPayload{
		Email: dept.Email,
		Name:  dept.Name,
	})
	return nil
}

// Restore reactivates a soft-deleted department. A previously released
// image is not restored.
func (s *DepartmentService) Restore(ctx context.Context, actor *domain.Admin, id string) (*domain.Department, error) {
	dept, err := s.departments.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("department", nil)
		}
		return nil, apperrors.MapError(err)
	}
	if !dept.IsDeleted {
		return nil, apperrors.NewValidationError("department is not deleted", nil)
	}

	dept.IsDeleted = false
	dept.UpdatedBy = &actor.ID
	if err := s.departments.Update(ctx, dept); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventDepartmentRestored, actor.ID, events.RecipientPayload{
		Email: dept.Email,
		Name:  dept.Name,
	})
	return dept, nil
}

func (s *DepartmentService) loadActive(ctx context.Context, id string) (*domain.Department, error) {
	dept, err := s.departments.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("department", nil)
		}
		return nil, apperrors.MapError(err)
	}
	if dept.IsDeleted {
		return nil, apperrors.NewNotFound("department", nil)
	}
	return dept, nil
}

func (s *DepartmentService) publish(ctx context.Context, eventType events.EventType, actorID string, payload any) {
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

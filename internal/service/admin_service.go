package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/workforce-directory/internal/asset"
	"github.com/spec-kit/workforce-directory/internal/auth"
	"github.com/spec-kit/workforce-directory/internal/domain"
	"github.com/spec-kit/workforce-directory/internal/events"
	"github.com/spec-kit/workforce-directory/internal/repository"
	apperrors "github.com/spec-kit/workforce-directory/pkg/util/errorutil"
)

const adminAssetPrefix = "admins"

// AdminService orchestrates admin account lifecycle.
type AdminService struct {
	admins      repository.AdminRepository
	departments repository.DepartmentRepository
	employees   repository.EmployeeRepository
	assets      *asset.Manager
	dispatcher  events.Dispatcher
	logger      *zap.Logger
	bcryptCost  int
}

// NewAdminService constructs the service.
func NewAdminService(
	admins repository.AdminRepository,
	departments repository.DepartmentRepository,
	employees repository.EmployeeRepository,
	assets *asset.Manager,
	dispatcher events.Dispatcher,
	logger *zap.Logger,
	bcryptCost int,
) *AdminService {
	return &AdminService{
		admins:      admins,
		departments: departments,
		employees:   employees,
		assets:      assets,
		dispatcher:  dispatcher,
		logger:      logger,
		bcryptCost:  bcryptCost,
	}
}

// CreateAdminInput carries the fields accepted at creation.
type CreateAdminInput struct {
	FullName    string
	Email       string
	PhoneNumber string
	Password    string
	Image       []byte
}

// UpdateAdminInput names every updatable field explicitly; nil means "not
// supplied". RemoveImage clears the image when no new one is given.
type UpdateAdminInput struct {
	FullName    *string
	Email       *string
	PhoneNumber *string
	Image       []byte
	RemoveImage bool
}

// Create validates uniqueness, hashes the password explicitly, uploads the
// optional image and persists.
func (s *AdminService) Create(ctx context.Context, actor *domain.Admin, in CreateAdminInput) (*domain.Admin, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	phone := strings.TrimSpace(in.PhoneNumber)
	if in.FullName == "" || email == "" || phone == "" || in.Password == "" {
		return nil, apperrors.NewValidationError("full_name, email, phone_number and password are required", nil)
	}

	if err := auth.ValidatePasswordStrength(in.Password); err != nil {
		return nil, apperrors.NewValidationError(err.Error(), nil)
	}

	conflict, err := s.admins.FindConflict(ctx, &email, &phone, "")
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if conflict != nil {
		return nil, apperrors.NewConflict("an admin with this email or phone number already exists", nil)
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	admin := &domain.Admin{
		FullName:     strings.TrimSpace(in.FullName),
		Email:        email,
		PhoneNumber:  phone,
		PasswordHash: hash,
		Role:         domain.AdminRoleAdmin,
		IsActive:     true,
	}
	admin.CreatedBy = &actor.ID

	if len(in.Image) > 0 {
		ref, err := s.assets.Upload(ctx, in.Image, adminAssetPrefix)
		if err != nil {
			return nil, err
		}
		admin.Image = ref
	}

	if err := s.admins.Create(ctx, admin); err != nil {
		if admin.Image.Present() {
			s.assets.Remove(ctx, &admin.Image)
		}
		return nil, apperrors.MapError(err)
	}

	s.assets.AttachURL(ctx, &admin.Image)
	return admin, nil
}

// List returns a page of active admins with signed image URLs.
func (s *AdminService) List(ctx context.Context, params repository.ListParams) ([]domain.Admin, repository.Pagination, error) {
	admins, pagination, err := s.admins.List(ctx, params)
	if err != nil {
		return nil, repository.Pagination{}, apperrors.MapError(err)
	}
	for i := range admins {
		s.assets.AttachURL(ctx, &admins[i].Image)
	}
	return admins, pagination, nil
}

// ListDeleted returns a page of soft-deleted admins for restore workflows.
func (s *AdminService) ListDeleted(ctx context.Context, params repository.ListParams) ([]domain.Admin, repository.Pagination, error) {
	admins, pagination, err := s.admins.ListDeleted(ctx, params)
	if err != nil {
		return nil, repository.Pagination{}, apperrors.MapError(err)
	}
	for i := range admins {
		s.assets.AttachURL(ctx, &admins[i].Image)
	}
	return admins, pagination, nil
}

// GetByID fetches an active admin account.
func (s *AdminService) GetByID(ctx context.Context, id string) (*domain.Admin, error) {
	admin, err := s.loadActive(ctx, id)
	if err != nil {
		return nil, err
	}
	s.assets.AttachURL(ctx, &admin.Image)
	return admin, nil
}

// Update applies a typed diff, re-validating only the changed natural keys.
// A full no-op short-circuits without touching updated_by or timestamps.
func (s *AdminService) Update(ctx context.Context, actor *domain.Admin, id string, in UpdateAdminInput) (*domain.Admin, bool, error) {
	admin, err := s.loadActive(ctx, id)
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
	if strChanged(admin.Email, trimmedEmail) {
		guardEmail = trimmedEmail
	}
	if strChanged(admin.PhoneNumber, trimmedPhone) {
		guardPhone = trimmedPhone
	}
	if guardEmail != nil || guardPhone != nil {
		conflict, err := s.admins.FindConflict(ctx, guardEmail, guardPhone, admin.ID)
		if err != nil {
			return nil, false, apperrors.MapError(err)
		}
		if conflict != nil {
			return nil, false, apperrors.NewConflict("another admin with this email or phone number already exists", nil)
		}
	}

	changed := false
	if in.FullName != nil && *in.FullName != admin.FullName {
		admin.FullName = *in.FullName
		changed = true
	}
	if guardEmail != nil {
		admin.Email = *guardEmail
		changed = true
	}
	if guardPhone != nil {
		admin.PhoneNumber = *guardPhone
		changed = true
	}

	if len(in.Image) > 0 {
		if err := s.assets.Replace(ctx, &admin.Image, in.Image, adminAssetPrefix); err != nil {
			return nil, false, err
		}
		changed = true
	} else if in.RemoveImage && admin.Image.Present() {
		s.assets.Remove(ctx, &admin.Image)
		changed = true
	}

	if !changed {
		s.assets.AttachURL(ctx, &admin.Image)
		return admin, false, nil
	}

	admin.UpdatedBy = &actor.ID
	if err := s.admins.Update(ctx, admin); err != nil {
		return nil, false, apperrors.MapError(err)
	}

	s.assets.AttachURL(ctx, &admin.Image)
	return admin, true, nil
}

// ChangePassword lets the authenticated account (any role) rotate its own
// password after re-proving the current one.
func (s *AdminService) ChangePassword(ctx context.Context, actor *domain.Admin, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return apperrors.NewValidationError("current_password and new_password are required", nil)
	}
	if err := auth.ComparePassword(actor.PasswordHash, currentPassword); err != nil {
		return apperrors.NewUnauthorized("incorrect password")
	}
	if err := auth.ValidatePasswordStrength(newPassword); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	actor.PasswordHash = hash
	actor.UpdatedBy = &actor.ID
	if err := s.admins.Update(ctx, actor); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// ResetPassword sets a new password on another admin's account without
// knowing the old one. Reserved for the super-admin surface.
func (s *AdminService) ResetPassword(ctx context.Context, actor *domain.Admin, id, newPassword string) error {
	if newPassword == "" {
		return apperrors.NewValidationError("new_password is required", nil)
	}
	if err := auth.ValidatePasswordStrength(newPassword); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	admin, err := s.loadActive(ctx, id)
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	admin.PasswordHash = hash
	admin.UpdatedBy = &actor.ID
	if err := s.admins.Update(ctx, admin); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// Delete soft-deletes an admin after password confirmation, then clears the
// deleted admin's id out of every audit reference in dependent collections.
// The cascade is a best-effort series of independent updates.
func (s *AdminService) Delete(ctx context.Context, actor *domain.Admin, id, confirmPassword string) error {
	if err := confirmActorPassword(actor, confirmPassword); err != nil {
		return err
	}
	if actor.ID == id {
		return apperrors.NewValidationError("you cannot delete your own admin account", nil)
	}

	admin, err := s.loadActive(ctx, id)
	if err != nil {
		return err
	}

	// Persist the flip before touching the object store so a failed write
	// leaves the account, image included, untouched.
	oldImage := admin.Image
	admin.Image.Clear()
	admin.IsDeleted = true
	admin.IsActive = false
	admin.UpdatedBy = &actor.ID
	if err := s.admins.Update(ctx, admin); err != nil {
		admin.Image = oldImage
		return apperrors.MapError(err)
	}
	s.assets.Remove(ctx, &oldImage)

	// Auxiliary cleanup after the primary state change: failures are warned
	// and swallowed, a crash mid-cascade can leave some references behind.
	if err := s.departments.ClearAuditReferences(ctx, admin.ID); err != nil {
		s.logger.Warn("failed to clear department audit references",
			zap.String("admin_id", admin.ID), zap.Error(err))
	}
	if err := s.employees.ClearAuditReferences(ctx, admin.ID); err != nil {
		s.logger.Warn("failed to clear employee audit references",
			zap.String("admin_id", admin.ID), zap.Error(err))
	}

	s.publish(ctx, events.EventAdminDeactivated, actor.ID, events.RecipientPayload{
		Email: admin.Email,
		Name:  admin.FullName,
	})
	return nil
}

// Restore reactivates a soft-deleted admin. Cleared audit references and a
// released image are not restored.
func (s *AdminService) Restore(ctx context.Context, actor *domain.Admin, id string) (*domain.Admin, error) {
	admin, err := s.admins.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("admin", nil)
		}
		return nil, apperrors.MapError(err)
	}
	if !admin.IsDeleted {
		return nil, apperrors.NewValidationError("admin is not deleted", nil)
	}

	admin.IsDeleted = false
	admin.IsActive = true
	admin.UpdatedBy = &actor.ID
	if err := s.admins.Update(ctx, admin); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventAdminRestored, actor.ID, events.RecipientPayload{
		Email: admin.Email,
		Name:  admin.FullName,
	})
	return admin, nil
}

func (s *AdminService) loadActive(ctx context.Context, id string) (*domain.Admin, error) {
	admin, err := s.admins.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("admin", nil)
		}
		return nil, apperrors.MapError(err)
	}
	if admin.IsDeleted || admin.Role != domain.AdminRoleAdmin {
		return nil, apperrors.NewNotFound("admin", nil)
	}
	return admin, nil
}

func (s *AdminService) publish(ctx context.Context, eventType events.EventType, actorID string, payload any) {
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

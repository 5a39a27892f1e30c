package service

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/workforce-directory/internal/asset"
	"github.com/spec-kit/workforce-directory/internal/domain"
	"github.com/spec-kit/workforce-directory/internal/repository"
	apperrors "github.com/spec-kit/workforce-directory/pkg/util/errorutil"
)

const companyAssetPrefix = "company"

// CompanyProfileService manages the singleton company profile.
type CompanyProfileService struct {
	profiles    repository.CompanyProfileRepository
	admins      repository.AdminRepository
	departments repository.DepartmentRepository
	employees   repository.EmployeeRepository
	assets      *asset.Manager
	logger      *zap.Logger
}

// NewCompanyProfileService constructs the service.
func NewCompanyProfileService(
	profiles repository.CompanyProfileRepository,
	admins repository.AdminRepository,
	departments repository.DepartmentRepository,
	employees repository.EmployeeRepository,
	assets *asset.Manager,
	logger *zap.Logger,
) *CompanyProfileService {
	return &CompanyProfileService{
		profiles:    profiles,
		admins:      admins,
		departments: departments,
		employees:   employees,
		assets:      assets,
		logger:      logger,
	}
}

// CreateCompanyProfileInput carries the fields accepted at creation. The
// image is mandatory for the company profile.
type CreateCompanyProfileInput struct {
	CompanyName       string
	WebsiteLink       string
	Established       string
	Address           string
	ButtonName        string
	ButtonRedirectURL string
	Image             []byte
}

// UpdateCompanyProfileInput names every updatable field; nil means "not
// supplied".
type UpdateCompanyProfileInput struct {
	CompanyName       *string
	WebsiteLink       *string
	Established       *string
	Address           *string
	ButtonName        *string
	ButtonRedirectURL *string
	Image             []byte
}

// Create establishes the singleton profile. A second create conflicts.
func (s *CompanyProfileService) Create(ctx context.Context, in CreateCompanyProfileInput) (*domain.CompanyProfile, error) {
	if in.CompanyName == "" {
		return nil, apperrors.NewValidationError("company_name is required", nil)
	}
	if len(in.Image) == 0 {
		return nil, apperrors.NewValidationError("company image is required", nil)
	}

	if _, err := s.profiles.Get(ctx); err == nil {
		return nil, apperrors.NewConflict("a company profile already exists", nil)
	} else if err != pgx.ErrNoRows {
		return nil, apperrors.MapError(err)
	}

	profile := &domain.CompanyProfile{
		CompanyName:       in.CompanyName,
		WebsiteLink:       in.WebsiteLink,
		Established:       in.Established,
		Address:           in.Address,
		ButtonName:        in.ButtonName,
		ButtonRedirectURL: in.ButtonRedirectURL,
	}

	ref, err := s.assets.Upload(ctx, in.Image, companyAssetPrefix)
	if err != nil {
		return nil, err
	}
	profile.Image = ref

	if err := s.profiles.Create(ctx, profile); err != nil {
		s.assets.Remove(ctx, &profile.Image)
		return nil, apperrors.MapError(err)
	}

	s.assets.AttachURL(ctx, &profile.Image)
	return profile, nil
}

// Get returns the profile with a freshly signed image URL.
func (s *CompanyProfileService) Get(ctx context.Context) (*domain.CompanyProfile, error) {
	profile, err := s.profiles.Get(ctx)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("company profile", nil)
		}
		return nil, apperrors.MapError(err)
	}
	s.assets.AttachURL(ctx, &profile.Image)
	return profile, nil
}

// Update applies a typed diff. A full no-op short-circuits without writing.
func (s *CompanyProfileService) Update(ctx context.Context, in UpdateCompanyProfileInput) (*domain.CompanyProfile, bool, error) {
	profile, err := s.profiles.Get(ctx)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, false, apperrors.NewNotFound("company profile", nil)
		}
		return nil, false, apperrors.MapError(err)
	}

	changed := false
	if in.CompanyName != nil && *in.CompanyName != profile.CompanyName {
		profile.CompanyName = *in.CompanyName
		changed = true
	}
	if in.WebsiteLink != nil && *in.WebsiteLink != profile.WebsiteLink {
		profile.WebsiteLink = *in.WebsiteLink
		changed = true
	}
	if in.Established != nil && *in.Established != profile.Established {
		profile.Established = *in.Established
		changed = true
	}
	if in.Address != nil && *in.Address != profile.Address {
		profile.Address = *in.Address
		changed = true
	}
	if in.ButtonName != nil && *in.ButtonName != profile.ButtonName {
		profile.ButtonName = *in.ButtonName
		changed = true
	}
	if in.ButtonRedirectURL != nil && *in.ButtonRedirectURL != profile.ButtonRedirectURL {
		profile.ButtonRedirectURL = *in.ButtonRedirectURL
		changed = true
	}

	if len(in.Image) > 0 {
		if err := s.assets.Replace(ctx, &profile.Image, in.Image, companyAssetPrefix); err != nil {
			return nil, false, err
		}
		changed = true
	}

	if !changed {
		s.assets.AttachURL(ctx, &profile.Image)
		return profile, false, nil
	}

	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, false, apperrors.MapError(err)
	}

	s.assets.AttachURL(ctx, &profile.Image)
	return profile, true, nil
}

// Delete hard-deletes the profile after password confirmation. It is
// blocked while any active admins, departments or employees remain.
func (s *CompanyProfileService) Delete(ctx context.Context, actor *domain.Admin, confirmPassword string) error {
	if err := confirmActorPassword(actor, confirmPassword); err != nil {
		return err
	}

	profile, err := s.profiles.Get(ctx)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("company profile", nil)
		}
		return apperrors.MapError(err)
	}

	adminCount, err := s.admins.CountActive(ctx)
	if err != nil {
		return apperrors.MapError(err)
	}
	deptCount, err := s.departments.CountActive(ctx)
	if err != nil {
		return apperrors.MapError(err)
	}
	empCount, err := s.employees.CountActive(ctx)
	if err != nil {
		return apperrors.MapError(err)
	}
	if adminCount > 0 || deptCount > 0 || empCount > 0 {
		return apperrors.NewDependencyBlocked("cannot delete the company profile while admins, departments or employees exist", nil)
	}

	// Delete the row first so a failed write leaves the profile, image
	// included, untouched. The image release afterwards is best-effort.
	if err := s.profiles.Delete(ctx, profile.ID); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("company profile", nil)
		}
		return apperrors.MapError(err)
	}
	s.assets.Remove(ctx, &profile.Image)
	return nil
}

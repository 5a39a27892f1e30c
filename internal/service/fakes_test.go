package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/workforce-directory/internal/asset"
	"github.com/spec-kit/workforce-directory/internal/auth"
	"github.com/spec-kit/workforce-directory/internal/domain"
	"github.com/spec-kit/workforce-directory/internal/events"
	"github.com/spec-kit/workforce-directory/internal/repository"
	"github.com/spec-kit/workforce-directory/internal/storage/memory"
	apperrors "github.com/spec-kit/workforce-directory/pkg/util/errorutil"
)

func testImage(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 90, A: 255})
		}
	}
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func testActor(t *testing.T, password string) *domain.Admin {
	t.Helper()
	hash, err := auth.HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	return &domain.Admin{
		ID:           "actor-1",
		FullName:     "Root Admin",
		Email:        "root@example.com",
		PhoneNumber:  "+1000000",
		PasswordHash: hash,
		Role:         domain.AdminRoleSuperAdmin,
		IsActive:     true,
	}
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	require.Equal(t, code, domainErr.Code)
}

func newTestAssets() (*asset.Manager, *memory.Store) {
	store := memory.New()
	return asset.NewManager(store, zap.NewNop(), time.Hour), store
}

// eventRecorder captures dispatched events for assertions.
type eventRecorder struct {
	dispatcher events.Dispatcher
	captured   []events.Event
}

func newEventRecorder(types ...events.EventType) *eventRecorder {
	rec := &eventRecorder{dispatcher: events.NewInMemoryDispatcher()}
	for _, eventType := range types {
		rec.dispatcher.Subscribe(eventType, func(_ context.Context, event events.Event) error {
			rec.captured = append(rec.captured, event)
			return nil
		})
	}
	return rec
}

// fakeAdminRepo is an in-memory AdminRepository.
type fakeAdminRepo struct {
	seq    int
	admins map[string]*domain.Admin
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: make(map[string]*domain.Admin)}
}

func (f *fakeAdminRepo) put(admin *domain.Admin) *domain.Admin {
	if admin.ID == "" {
		f.seq++
		admin.ID = fmt.Sprintf("admin-%d", f.seq)
	}
	copied := *admin
	f.admins[admin.ID] = &copied
	return admin
}

func (f *fakeAdminRepo) Create(_ context.Context, admin *domain.Admin) error {
	admin.CreatedAt = time.Now()
	admin.UpdatedAt = admin.CreatedAt
	f.put(admin)
	return nil
}

func (f *fakeAdminRepo) Update(_ context.Context, admin *domain.Admin) error {
	if _, ok := f.admins[admin.ID]; !ok {
		return pgx.ErrNoRows
	}
	admin.UpdatedAt = time.Now()
	f.put(admin)
	return nil
}

func (f *fakeAdminRepo) GetByID(_ context.Context, id string) (*domain.Admin, error) {
	admin, ok := f.admins[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *admin
	return &copied, nil
}

func (f *fakeAdminRepo) GetByEmail(_ context.Context, email string) (*domain.Admin, error) {
	for _, admin := range f.admins {
		if !admin.IsDeleted && strings.EqualFold(admin.Email, email) {
			copied := *admin
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAdminRepo) List(_ context.Context, params repository.ListParams) ([]domain.Admin, repository.Pagination, error) {
	params = params.Normalized()
	var result []domain.Admin
	for _, admin := range f.admins {
		if !admin.IsDeleted && admin.Role == domain.AdminRoleAdmin {
			result = append(result, *admin)
		}
	}
	return result, repository.NewPagination(int64(len(result)), params), nil
}

func (f *fakeAdminRepo) ListDeleted(_ context.Context, params repository.ListParams) ([]domain.Admin, repository.Pagination, error) {
	params = params.Normalized()
	var result []domain.Admin
	for _, admin := range f.admins {
		if admin.IsDeleted && admin.Role == domain.AdminRoleAdmin {
			result = append(result, *admin)
		}
	}
	return result, repository.NewPagination(int64(len(result)), params), nil
}

func (f *fakeAdminRepo) FindConflict(_ context.Context, email, phone *string, excludeID string) (*repository.Conflict, error) {
	for _, admin := range f.admins {
		if admin.IsDeleted || admin.ID == excludeID {
			continue
		}
		if email != nil && strings.EqualFold(admin.Email, *email) {
			return &repository.Conflict{ID: admin.ID}, nil
		}
		if phone != nil && admin.PhoneNumber == *phone {
			return &repository.Conflict{ID: admin.ID}, nil
		}
	}
	return nil, nil
}

func (f *fakeAdminRepo) CountActive(_ context.Context) (int64, error) {
	var count int64
	for _, admin := range f.admins {
		if !admin.IsDeleted && admin.Role == domain.AdminRoleAdmin {
			count++
		}
	}
	return count, nil
}

// fakeDepartmentRepo is an in-memory DepartmentRepository.
type fakeDepartmentRepo struct {
	seq         int
	updateErr   error
	departments map[string]*domain.Department
}

func newFakeDepartmentRepo() *fakeDepartmentRepo {
	return &fakeDepartmentRepo{departments: make(map[string]*domain.Department)}
}

func (f *fakeDepartmentRepo) put(dept *domain.Department) *domain.Department {
	if dept.ID == "" {
		f.seq++
		dept.ID = fmt.Sprintf("dept-%d", f.seq)
	}
	copied := *dept
	f.departments[dept.ID] = &copied
	return dept
}

func (f *fakeDepartmentRepo) Create(_ context.Context, dept *domain.Department) error {
	dept.CreatedAt = time.Now()
	dept.UpdatedAt = dept.CreatedAt
	f.put(dept)
	return nil
}

func (f *fakeDepartmentRepo) Update(_ context.Context, dept *domain.Department) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.departments[dept.ID]; !ok {
		return pgx.ErrNoRows
	}
	dept.UpdatedAt = time.Now()
	f.put(dept)
	return nil
}

func (f *fakeDepartmentRepo) GetByID(_ context.Context, id string) (*domain.Department, error) {
	dept, ok := f.departments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *dept
	return &copied, nil
}

func (f *fakeDepartmentRepo) List(_ context.Context, params repository.ListParams) ([]domain.Department, repository.Pagination, error) {
	params = params.Normalized()
	var result []domain.Department
	for _, dept := range f.departments {
		if !dept.IsDeleted {
			result = append(result, *dept)
		}
	}
	return result, repository.NewPagination(int64(len(result)), params), nil
}

func (f *fakeDepartmentRepo) FindConflict(_ context.Context, name, email *string, excludeID string) (*repository.Conflict, error) {
	for _, dept := range f.departments {
		if dept.IsDeleted || dept.ID == excludeID {
			continue
		}
		if name != nil && domain.NormalizeName(dept.Name) == domain.NormalizeName(*name) {
			return &repository.Conflict{ID: dept.ID}, nil
		}
		if email != nil && strings.EqualFold(dept.Email, *email) {
			return &repository.Conflict{ID: dept.ID}, nil
		}
	}
	return nil, nil
}

func (f *fakeDepartmentRepo) ClearAuditReferences(_ context.Context, adminID string) error {
	for _, dept := range f.departments {
		if dept.CreatedBy != nil && *dept.CreatedBy == adminID {
			dept.CreatedBy = nil
		}
		if dept.UpdatedBy != nil && *dept.UpdatedBy == adminID {
			dept.UpdatedBy = nil
		}
	}
	return nil
}

func (f *fakeDepartmentRepo) CountActive(_ context.Context) (int64, error) {
	var count int64
	for _, dept := range f.departments {
		if !dept.IsDeleted {
			count++
		}
	}
	return count, nil
}

// fakeEmployeeRepo is an in-memory EmployeeRepository.
type fakeEmployeeRepo struct {
	seq       int
	employees map[string]*domain.Employee
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: make(map[string]*domain.Employee)}
}

func (f *fakeEmployeeRepo) put(emp *domain.Employee) *domain.Employee {
	if emp.ID == "" {
		f.seq++
		emp.ID = fmt.Sprintf("emp-%d", f.seq)
	}
	copied := *emp
	f.employees[emp.ID] = &copied
	return emp
}

func (f *fakeEmployeeRepo) Create(_ context.Context, emp *domain.Employee) error {
	emp.CreatedAt = time.Now()
	emp.UpdatedAt = emp.CreatedAt
	f.put(emp)
	return nil
}

func (f *fakeEmployeeRepo) Update(_ context.Context, emp *domain.Employee) error {
	if _, ok := f.employees[emp.ID]; !ok {
		return pgx.ErrNoRows
	}
	emp.UpdatedAt = time.Now()
	f.put(emp)
	return nil
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (*domain.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *emp
	return &copied, nil
}

func (f *fakeEmployeeRepo) List(_ context.Context, params repository.ListParams) ([]domain.Employee, repository.Pagination, error) {
	params = params.Normalized()
	var result []domain.Employee
	for _, emp := range f.employees {
		if !emp.IsDeleted {
			result = append(result, *emp)
		}
	}
	return result, repository.NewPagination(int64(len(result)), params), nil
}

func (f *fakeEmployeeRepo) FindConflict(_ context.Context, email, phone *string, excludeID string) (*repository.Conflict, error) {
	for _, emp := range f.employees {
		if emp.IsDeleted || emp.ID == excludeID {
			continue
		}
		if email != nil && strings.EqualFold(emp.Email, *email) {
			return &repository.Conflict{ID: emp.ID}, nil
		}
		if phone != nil && emp.PhoneNumber == *phone {
			return &repository.Conflict{ID: emp.ID}, nil
		}
	}
	return nil, nil
}

func (f *fakeEmployeeRepo) CountByDepartment(_ context.Context, departmentID string) (int64, error) {
	var count int64
	for _, emp := range f.employees {
		if !emp.IsDeleted && emp.DepartmentID == departmentID {
			count++
		}
	}
	return count, nil
}

func (f *fakeEmployeeRepo) ClearAuditReferences(_ context.Context, adminID string) error {
	for _, emp := range f.employees {
		if emp.CreatedBy != nil && *emp.CreatedBy == adminID {
			emp.CreatedBy = nil
		}
		if emp.UpdatedBy != nil && *emp.UpdatedBy == adminID {
			emp.UpdatedBy = nil
		}
	}
	return nil
}

func (f *fakeEmployeeRepo) CountActive(_ context.Context) (int64, error) {
	var count int64
	for _, emp := range f.employees {
		if !emp.IsDeleted {
			count++
		}
	}
	return count, nil
}

// fakeProfileRepo is an in-memory CompanyProfileRepository.
type fakeProfileRepo struct {
	profile *domain.CompanyProfile
}

func (f *fakeProfileRepo) Create(_ context.Context, profile *domain.CompanyProfile) error {
	profile.ID = "profile-1"
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = profile.CreatedAt
	copied := *profile
	f.profile = &copied
	return nil
}

func (f *fakeProfileRepo) Update(_ context.Context, profile *domain.CompanyProfile) error {
	if f.profile == nil || f.profile.ID != profile.ID {
		return pgx.ErrNoRows
	}
	profile.UpdatedAt = time.Now()
	copied := *profile
	f.profile = &copied
	return nil
}

func (f *fakeProfileRepo) Get(_ context.Context) (*domain.CompanyProfile, error) {
	if f.profile == nil {
		return nil, pgx.ErrNoRows
	}
	copied := *f.profile
	return &copied, nil
}

func (f *fakeProfileRepo) Delete(_ context.Context, id string) error {
	if f.profile == nil || f.profile.ID != id {
		return pgx.ErrNoRows
	}
	f.profile = nil
	return nil
}

// fakeCodeStore is an in-memory VerificationCodeStore.
type fakeCodeStore struct {
	codes map[string]string
}

func newFakeCodeStore() *fakeCodeStore {
	return &fakeCodeStore{codes: make(map[string]string)}
}

func (f *fakeCodeStore) StoreVerificationCode(_ context.Context, email, code string, _ time.Duration) error {
	f.codes[email] = code
	return nil
}

func (f *fakeCodeStore) GetVerificationCode(_ context.Context, email string) (string, error) {
	return f.codes[email], nil
}

func (f *fakeCodeStore) DeleteVerificationCode(_ context.Context, email string) error {
	delete(f.codes, email)
	return nil
}

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/workforce-directory/internal/auth"
	"github.com/spec-kit/workforce-directory/internal/domain"
	"github.com/spec-kit/workforce-directory/internal/events"
	"github.com/spec-kit/workforce-directory/internal/repository"
)

type adminFixture struct {
	svc         *AdminService
	admins      *fakeAdminRepo
	departments *fakeDepartmentRepo
	employees   *fakeEmployeeRepo
	rec         *eventRecorder
	actor       *domain.Admin
}

func newAdminFixture(t *testing.T) adminFixture {
	t.Helper()
	admins := newFakeAdminRepo()
	departments := newFakeDepartmentRepo()
	employees := newFakeEmployeeRepo()
	assets, _ := newTestAssets()
	rec := newEventRecorder(events.EventAdminDeactivated, events.EventAdminRestored)
	svc := NewAdminService(admins, departments, employees, assets, rec.dispatcher, zap.NewNop(), bcrypt.MinCost)

	actor := testActor(t, "secret")
	admins.put(actor)
	return adminFixture{svc: svc, admins: admins, departments: departments, employees: employees, rec: rec, actor: actor}
}

func TestAdminCreateHashesPassword(t *testing.T) {
	fx := newAdminFixture(t)

	admin, err := fx.svc.Create(context.Background(), fx.actor, CreateAdminInput{
		FullName:    "Jamie Admin",
		Email:       "Jamie@Example.com",
		PhoneNumber: "+155555",
		Password:    "Hunter22!",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.AdminRoleAdmin, admin.Role)
	assert.Equal(t, "jamie@example.com", admin.Email)
	assert.True(t, admin.IsActive)
	assert.NotEqual(t, "Hunter22!", admin.PasswordHash)
	require.NoError(t, auth.ComparePassword(admin.PasswordHash, "Hunter22!"))
}

func TestAdminCreateConflicts(t *testing.T) {
	fx := newAdminFixture(t)

	_, err := fx.svc.Create(context.Background(), fx.actor, CreateAdminInput{
		FullName:    "Jamie Admin",
		Email:       "jamie@example.com",
		PhoneNumber: "+155555",
		Password:    "Hunter22!",
	})
	require.NoError(t, err)

	_, err = fx.svc.Create(context.Background(), fx.actor, CreateAdminInput{
		FullName:    "Other Admin",
		Email:       "JAMIE@example.com",
		PhoneNumber: "+166666",
		Password:    "Hunter22!",
	})
	requireCode(t, err, "CONFLICT")
}

func TestAdminListExcludesSuperAdmins(t *testing.T) {
	fx := newAdminFixture(t)

	_, err := fx.svc.Create(context.Background(), fx.actor, CreateAdminInput{
		FullName:    "Jamie Admin",
		Email:       "jamie@example.com",
		PhoneNumber: "+155555",
		Password:    "Hunter22!",
	})
	require.NoError(t, err)

	admins, pagination, err := fx.svc.List(context.Background(), repository.ListParams{})
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, "jamie@example.com", admins[0].Email)
	assert.Equal(t, int64(1), pagination.TotalCount)
}

func TestAdminCreateEnforcesPasswordPolicy(t *testing.T) {
	fx := newAdminFixture(t)

	weak := []string{"Sh0rt!", "lowercase1!", "UPPERCASE1!", "NoDigitsHere!", "NoSpecial11"}
	for _, password := range weak {
		_, err := fx.svc.Create(context.Background(), fx.actor, CreateAdminInput{
			FullName:    "Jamie Admin",
			Email:       "jamie@example.com",
			PhoneNumber: "+155555",
			Password:    password,
		})
		requireCode(t, err, "VALIDATION_FAILED")
	}
}

func TestAdminChangePassword(t *testing.T) {
	fx := newAdminFixture(t)

	err := fx.svc.ChangePassword(context.Background(), fx.actor, "wrong", "NewSecret1!")
	requireCode(t, err, "UNAUTHORIZED")

	err = fx.svc.ChangePassword(context.Background(), fx.actor, "secret", "weak")
	requireCode(t, err, "VALIDATION_FAILED")

	require.NoError(t, fx.svc.ChangePassword(context.Background(), fx.actor, "secret", "NewSecret1!"))

	stored, err := fx.admins.GetByID(context.Background(), fx.actor.ID)
	require.NoError(t, err)
	require.NoError(t, auth.ComparePassword(stored.PasswordHash, "NewSecret1!"))
}

func TestAdminResetPassword(t *testing.T) {
	fx := newAdminFixture(t)

	admin, err := fx.svc.Create(context.Background(), fx.actor, CreateAdminInput{
		FullName:    "Jamie Admin",
		Email:       "jamie@example.com",
		PhoneNumber: "+155555",
		Password:    "Hunter22!",
	})
	require.NoError(t, err)

	err = fx.svc.ResetPassword(context.Background(), fx.actor, admin.ID, "weak")
	requireCode(t, err, "VALIDATION_FAILED")

	// Super-admin accounts are not reachable through this surface.
	err = fx.svc.ResetPassword(context.Background(), fx.actor, fx.actor.ID, "NewSecret1!")
	requireCode(t, err, "NOT_FOUND")

	require.NoError(t, fx.svc.ResetPassword(context.Background(), fx.actor, admin.ID, "NewSecret1!"))

	stored, err := fx.admins.GetByID(context.Background(), admin.ID)
	require.NoError(t, err)
	require.NoError(t, auth.ComparePassword(stored.PasswordHash, "NewSecret1!"))
	require.NotNil(t, stored.UpdatedBy)
	assert.Equal(t, fx.actor.ID, *stored.UpdatedBy)
}

func TestAdminListDeleted(t *testing.T) {
	fx := newAdminFixture(t)

	admin, err := fx.svc.Create(context.Background(), fx.actor, CreateAdminInput{
		FullName:    "Jamie Admin",
		Email:       "jamie@example.com",
		PhoneNumber: "+155555",
		Password:    "Hunter22!",
	})
	require.NoError(t, err)

	deleted, _, err := fx.svc.ListDeleted(context.Background(), repository.ListParams{})
	require.NoError(t, err)
	assert.Empty(t, deleted)

	require.NoError(t, fx.svc.Delete(context.Background(), fx.actor, admin.ID, "secret"))

	deleted, pagination, err := fx.svc.ListDeleted(context.Background(), repository.ListParams{})
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	assert.Equal(t, admin.ID, deleted[0].ID)
	assert.Equal(t, int64(1), pagination.TotalCount)

	active, _, err := fx.svc.List(context.Background(), repository.ListParams{})
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestAdminCannotDeleteOwnAccount(t *testing.T) {
	fx := newAdminFixture(t)

	err := fx.svc.Delete(context.Background(), fx.actor, fx.actor.ID, "secret")
	requireCode(t, err, "VALIDATION_FAILED")
}

func TestAdminDeleteCascadesAuditReferences(t *testing.T) {
	fx := newAdminFixture(t)

	admin, err := fx.svc.Create(context.Background(), fx.actor, CreateAdminInput{
		FullName:    "Jamie Admin",
		Email:       "jamie@example.com",
		PhoneNumber: "+155555",
		Password:    "Hunter22!",
	})
	require.NoError(t, err)

	dept := fx.departments.put(&domain.Department{Name: "Finance", Email: "finance@example.com"})
	fx.departments.departments[dept.ID].CreatedBy = &admin.ID
	emp := fx.employees.put(&domain.Employee{Name: "Jo", DepartmentID: dept.ID})
	fx.employees.employees[emp.ID].UpdatedBy = &admin.ID

	require.NoError(t, fx.svc.Delete(context.Background(), fx.actor, admin.ID, "secret"))

	deleted, err := fx.admins.GetByID(context.Background(), admin.ID)
	require.NoError(t, err)
	assert.True(t, deleted.IsDeleted)
	assert.False(t, deleted.IsActive)

	assert.Nil(t, fx.departments.departments[dept.ID].CreatedBy)
	assert.Nil(t, fx.employees.employees[emp.ID].UpdatedBy)

	require.Len(t, fx.rec.captured, 1)
	assert.Equal(t, events.EventAdminDeactivated, fx.rec.captured[0].Type)
}

func TestAdminRestore(t *testing.T) {
	fx := newAdminFixture(t)

	admin, err := fx.svc.Create(context.Background(), fx.actor, CreateAdminInput{
		FullName:    "Jamie Admin",
		Email:       "jamie@example.com",
		PhoneNumber: "+155555",
		Password:    "Hunter22!",
	})
	require.NoError(t, err)

	_, err = fx.svc.Restore(context.Background(), fx.actor, admin.ID)
	requireCode(t, err, "VALIDATION_FAILED")

	require.NoError(t, fx.svc.Delete(context.Background(), fx.actor, admin.ID, "secret"))

	restored, err := fx.svc.Restore(context.Background(), fx.actor, admin.ID)
	require.NoError(t, err)
	assert.False(t, restored.IsDeleted)
	assert.True(t, restored.IsActive)
}

func TestAdminUpdateGuardsOnlyChangedKeys(t *testing.T) {
	fx := newAdminFixture(t)

	first, err := fx.svc.Create(context.Background(), fx.actor, CreateAdminInput{
		FullName:    "Jamie Admin",
		Email:       "jamie@example.com",
		PhoneNumber: "+155555",
		Password:    "Hunter22!",
	})
	require.NoError(t, err)

	// Re-submitting the same email must not trip the guard against itself.
	sameEmail := "jamie@example.com"
	newName := "Jamie A."
	updated, changed, err := fx.svc.Update(context.Background(), fx.actor, first.ID, UpdateAdminInput{
		FullName: &newName,
		Email:    &sameEmail,
	})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "Jamie A.", updated.FullName)
	require.NotNil(t, updated.UpdatedBy)
	assert.Equal(t, fx.actor.ID, *updated.UpdatedBy)
}

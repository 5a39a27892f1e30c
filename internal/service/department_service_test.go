package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/workforce-directory/internal/domain"
	"github.com/spec-kit/workforce-directory/internal/events"
)

func newDepartmentFixture(t *testing.T) (*DepartmentService, *fakeDepartmentRepo, *fakeEmployeeRepo, *eventRecorder, *domain.Admin) {
	t.Helper()
	departments := newFakeDepartmentRepo()
	employees := newFakeEmployeeRepo()
	assets, _ := newTestAssets()
	rec := newEventRecorder(events.EventDepartmentDeleted, events.EventDepartmentRestored)
	svc := NewDepartmentService(departments, employees, assets, rec.dispatcher, zap.NewNop())
	return svc, departments, employees, rec, testActor(t, "secret")
}

func TestDepartmentCreate(t *testing.T) {
	svc, _, _, _, actor := newDepartmentFixture(t)

	dept, err := svc.Create(context.Background(), actor, CreateDepartmentInput{
		Name:  "Human Resources",
		Email: "HR@Example.com",
		Image: testImage(t, 640, 480),
	})
	require.NoError(t, err)
	assert.Equal(t, "Human Resources", dept.Name)
	assert.Equal(t, "hr@example.com", dept.Email)
	require.NotNil(t, dept.CreatedBy)
	assert.Equal(t, actor.ID, *dept.CreatedBy)
	require.NotNil(t, dept.Image.StorageKey)
	require.NotNil(t, dept.Image.AccessURL)
}

func TestDepartmentCreateNormalizedNameConflict(t *testing.T) {
	svc, _, _, _, actor := newDepartmentFixture(t)

	_, err := svc.Create(context.Background(), actor, CreateDepartmentInput{
		Name:  "Human Resources",
		Email: "hr@example.com",
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), actor, CreateDepartmentInput{
		Name:  "human-resources",
		Email: "other@example.com",
	})
	requireCode(t, err, "CONFLICT")
}

func TestDepartmentCreateReusesSoftDeletedKeys(t *testing.T) {
	svc, departments, _, _, actor := newDepartmentFixture(t)

	dept, err := svc.Create(context.Background(), actor, CreateDepartmentInput{
		Name:  "Finance",
		Email: "finance@example.com",
	})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), actor, dept.ID, "secret")
	require.NoError(t, err)

	// The soft-deleted row no longer holds the natural keys.
	again, err := svc.Create(context.Background(), actor, CreateDepartmentInput{
		Name:  "Finance",
		Email: "finance@example.com",
	})
	require.NoError(t, err)
	assert.NotEqual(t, dept.ID, again.ID)
	assert.Len(t, departments.departments, 2)
}

func TestDepartmentUpdateNoOp(t *testing.T) {
	svc, _, _, _, actor := newDepartmentFixture(t)

	dept, err := svc.Create(context.Background(), actor, CreateDepartmentInput{
		Name:  "Finance",
		Email: "finance@example.com",
	})
	require.NoError(t, err)

	sameName := "Finance"
	updated, changed, err := svc.Update(context.Background(), actor, dept.ID, UpdateDepartmentInput{
		Name: &sameName,
	})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Nil(t, updated.UpdatedBy)
}

func TestDepartmentUpdateGuardsChangedEmail(t *testing.T) {
	svc, _, _, _, actor := newDepartmentFixture(t)

	_, err := svc.Create(context.Background(), actor, CreateDepartmentInput{
		Name:  "Finance",
		Email: "finance@example.com",
	})
	require.NoError(t, err)

	dept, err := svc.Create(context.Background(), actor, CreateDepartmentInput{
		Name:  "Marketing",
		Email: "marketing@example.com",
	})
	require.NoError(t, err)

	taken := "finance@example.com"
	_, _, err = svc.Update(context.Background(), actor, dept.ID, UpdateDepartmentInput{
		Email: &taken,
	})
	requireCode(t, err, "CONFLICT")
}

func TestDepartmentDeleteConfirmGate(t *testing.T) {
	svc, _, _, _, actor := newDepartmentFixture(t)

	dept, err := svc.Create(context.Background(), actor, CreateDepartmentInput{
		Name:  "Finance",
		Email: "finance@example.com",
	})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), actor, dept.ID, "")
	requireCode(t, err, "VALIDATION_FAILED")

	err = svc.Delete(context.Background(), actor, dept.ID, "wrong")
	requireCode(t, err, "UNAUTHORIZED")
}

func TestDepartmentDeleteBlockedByEmployees(t *testing.T) {
	svc, _, employees, _, actor := newDepartmentFixture(t)

	dept, err := svc.Create(context.Background(), actor, CreateDepartmentInput{
		Name:  "Finance",
		Email: "finance@example.com",
	})
	require.NoError(t, err)

	employees.put(&domain.Employee{Name: "Jo", DepartmentID: dept.ID})

	err = svc.Delete(context.Background(), actor, dept.ID, "secret")
	requireCode(t, err, "DEPENDENCY_BLOCKED")
}

func TestDepartmentDeleteReleasesImageAndPublishes(t *testing.T) {
	departments := newFakeDepartmentRepo()
	employees := newFakeEmployeeRepo()
	assets, store := newTestAssets()
	rec := newEventRecorder(events.EventDepartmentDeleted)
	svc := NewDepartmentService(departments, employees, assets, rec.dispatcher, zap.NewNop())
	actor := testActor(t, "secret")

	dept, err := svc.Create(context.Background(), actor, CreateDepartmentInput{
		Name:  "Finance",
		Email: "finance@example.com",
		Image: testImage(t, 300, 300),
	})
	require.NoError(t, err)
	key := *dept.Image.StorageKey

	require.NoError(t, svc.Delete(context.Background(), actor, dept.ID, "secret"))

	_, exists := store.Get(key)
	assert.False(t, exists)
	require.Len(t, rec.captured, 1)
	assert.Equal(t, events.EventDepartmentDeleted, rec.captured[0].Type)
}

func TestDepartmentDeleteFailedWriteKeepsImage(t *testing.T) {
	departments := newFakeDepartmentRepo()
	employees := newFakeEmployeeRepo()
	assets, store := newTestAssets()
	svc := NewDepartmentService(departments, employees, assets, events.NewInMemoryDispatcher(), zap.NewNop())
	actor := testActor(t, "secret")

	dept, err := svc.Create(context.Background(), actor, CreateDepartmentInput{
		Name:  "Finance",
		Email: "finance@example.com",
		Image: testImage(t, 320, 240),
	})
	require.NoError(t, err)
	key := *dept.Image.StorageKey

	// A failed write must leave the record active with its image intact.
	departments.updateErr = errors.New("connection reset")
	err = svc.Delete(context.Background(), actor, dept.ID, "secret")
	require.Error(t, err)

	_, ok := store.Get(key)
	assert.True(t, ok)
	current, err := departments.GetByID(context.Background(), dept.ID)
	require.NoError(t, err)
	assert.False(t, current.IsDeleted)
	require.NotNil(t, current.Image.StorageKey)

	departments.updateErr = nil
	require.NoError(t, svc.Delete(context.Background(), actor, dept.ID, "secret"))
	_, ok = store.Get(key)
	assert.False(t, ok)
}

func TestDepartmentRestore(t *testing.T) {
	svc, _, _, rec, actor := newDepartmentFixture(t)

	dept, err := svc.Create(context.Background(), actor, CreateDepartmentInput{
		Name:  "Finance",
		Email: "finance@example.com",
		Image: testImage(t, 300, 300),
	})
	require.NoError(t, err)

	_, err = svc.Restore(context.Background(), actor, dept.ID)
	requireCode(t, err, "VALIDATION_FAILED")

	require.NoError(t, svc.Delete(context.Background(), actor, dept.ID, "secret"))

	restored, err := svc.Restore(context.Background(), actor, dept.ID)
	require.NoError(t, err)
	assert.False(t, restored.IsDeleted)
	// The image was released at delete time and does not come back.
	assert.Nil(t, restored.Image.StorageKey)
	require.Len(t, rec.captured, 2)
	assert.Equal(t, events.EventDepartmentRestored, rec.captured[1].Type)
}

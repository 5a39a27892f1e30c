package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainErrorPassthrough(t *testing.T) {
	err := NewConflict("department already exists", map[string]any{"name": "finance"})

	de := ToDomainError(err)
	require.NotNil(t, de)
	assert.Equal(t, "CONFLICT", de.Code)
	assert.Equal(t, http.StatusConflict, de.HTTPStatus)
}

func TestToDomainErrorWrapsNoRows(t *testing.T) {
	de := ToDomainError(fmt.Errorf("load admin: %w", pgx.ErrNoRows))
	require.NotNil(t, de)
	assert.Equal(t, "NOT_FOUND", de.Code)
}

func TestToDomainErrorUnknown(t *testing.T) {
	de := ToDomainError(errors.New("boom"))
	require.NotNil(t, de)
	assert.Equal(t, "INTERNAL_ERROR", de.Code)
	assert.Equal(t, "internal server error", de.Message)
}

func TestDependencyBlockedStatus(t *testing.T) {
	de := ToDomainError(NewDependencyBlocked("cannot delete department with assigned employees", nil))
	assert.Equal(t, "DEPENDENCY_BLOCKED", de.Code)
	assert.Equal(t, http.StatusConflict, de.HTTPStatus)
}

func TestUpstreamStorageUnwrap(t *testing.T) {
	cause := errors.New("put object: connection reset")
	err := NewUpstreamStorage("image upload failed", cause)

	var de *DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "UPSTREAM_STORAGE", de.Code)
	assert.ErrorIs(t, err, cause)
}

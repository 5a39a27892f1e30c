package service

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/workforce-directory/internal/auth"
	"github.com/spec-kit/workforce-directory/internal/domain"
	"github.com/spec-kit/workforce-directory/internal/events"
)

func newAuthFixture(t *testing.T) (*AuthService, *fakeAdminRepo, *fakeCodeStore, *eventRecorder) {
	t.Helper()
	admins := newFakeAdminRepo()
	codes := newFakeCodeStore()
	rec := newEventRecorder(events.EventVerificationCodeIssued)
	tokens := auth.NewTokenManager("test-secret", 60)
	svc := NewAuthService(admins, tokens, codes, 10*time.Minute, rec.dispatcher, zap.NewNop())

	admins.put(testActor(t, "secret"))
	return svc, admins, codes, rec
}

func TestLogin(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	result, err := svc.Login(context.Background(), "Root@Example.com", "secret")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "root@example.com", result.Admin.Email)
	assert.True(t, result.ExpiresAt.After(time.Now()))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), "root@example.com", "wrong")
	requireCode(t, err, "UNAUTHORIZED")

	_, err = svc.Login(context.Background(), "nobody@example.com", "secret")
	requireCode(t, err, "UNAUTHORIZED")
}

func TestLoginRejectsInactiveAccount(t *testing.T) {
	svc, admins, _, _ := newAuthFixture(t)

	inactive := testActor(t, "secret")
	inactive.ID = "admin-inactive"
	inactive.Email = "inactive@example.com"
	inactive.Role = domain.AdminRoleAdmin
	inactive.IsActive = false
	admins.put(inactive)

	_, err := svc.Login(context.Background(), "inactive@example.com", "secret")
	requireCode(t, err, "UNAUTHORIZED")
}

func TestVerificationCodeLifecycle(t *testing.T) {
	svc, _, codes, rec := newAuthFixture(t)

	require.NoError(t, svc.IssueVerificationCode(context.Background(), "root@example.com"))

	code := codes.codes["root@example.com"]
	assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), code)

	require.Len(t, rec.captured, 1)
	payload, ok := rec.captured[0].Payload.(events.VerificationCodePayload)
	require.True(t, ok)
	assert.Equal(t, code, payload.Code)

	err := svc.ConfirmVerificationCode(context.Background(), "root@example.com", "000000x")
	requireCode(t, err, "UNAUTHORIZED")

	require.NoError(t, svc.ConfirmVerificationCode(context.Background(), "root@example.com", code))

	// Consumed on success; a replay fails.
	err = svc.ConfirmVerificationCode(context.Background(), "root@example.com", code)
	requireCode(t, err, "UNAUTHORIZED")
}

func TestVerificationCodeUnknownEmail(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	err := svc.IssueVerificationCode(context.Background(), "nobody@example.com")
	requireCode(t, err, "NOT_FOUND")
}

func TestVerificationCodeReissueOverwrites(t *testing.T) {
	svc, _, codes, _ := newAuthFixture(t)

	require.NoError(t, svc.IssueVerificationCode(context.Background(), "root@example.com"))
	require.NoError(t, svc.IssueVerificationCode(context.Background(), "root@example.com"))

	// Only the latest stored code is valid.
	latest := codes.codes["root@example.com"]
	require.NoError(t, svc.ConfirmVerificationCode(context.Background(), "root@example.com", latest))
}

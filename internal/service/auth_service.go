package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/workforce-directory/internal/auth"
	"github.com/spec-kit/workforce-directory/internal/domain"
	"github.com/spec-kit/workforce-directory/internal/events"
	"github.com/spec-kit/workforce-directory/internal/repository"
	apperrors "github.com/spec-kit/workforce-directory/pkg/util/errorutil"
)

// VerificationCodeStore keeps short-lived verification codes keyed by email.
type VerificationCodeStore interface {
	StoreVerificationCode(ctx context.Context, email, code string, ttl time.Duration) error
	GetVerificationCode(ctx context.Context, email string) (string, error)
	DeleteVerificationCode(ctx context.Context, email string) error
}

// AuthService handles login and verification codes for admin accounts.
type AuthService struct {
	admins     repository.AdminRepository
	tokens     *auth.TokenManager
	codes      VerificationCodeStore
	codeTTL    time.Duration
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuthService constructs the service.
func NewAuthService(
	admins repository.AdminRepository,
	tokens *auth.TokenManager,
	codes VerificationCodeStore,
	codeTTL time.Duration,
	dispatcher events.Dispatcher,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		admins:     admins,
		tokens:     tokens,
		codes:      codes,
		codeTTL:    codeTTL,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// LoginResult carries the signed token and the authenticated account.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Admin     *domain.Admin
}

// Login authenticates by email and password and issues a JWT. Deactivated
// accounts are rejected with the same message as a bad password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperrors.NewValidationError("email and password are required", nil)
	}

	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, apperrors.MapError(err)
	}
	if !admin.IsActive {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}
	if err := auth.ComparePassword(admin.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.tokens.GenerateToken(admin.ID, admin.Role)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	return &LoginResult{Token: token, ExpiresAt: expiresAt, Admin: admin}, nil
}

// IssueVerificationCode generates a fresh 6-digit code for the account,
// overwrites any outstanding one and hands it to the notification pipeline.
// The response never contains the code itself.
func (s *AuthService) IssueVerificationCode(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return apperrors.NewValidationError("email is required", nil)
	}

	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("admin", nil)
		}
		return apperrors.MapError(err)
	}

	code, err := generateVerificationCode()
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	if err := s.codes.StoreVerificationCode(ctx, admin.Email, code, s.codeTTL); err != nil {
		return apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.EventVerificationCodeIssued, admin.ID, events.VerificationCodePayload{
		Email: admin.Email,
		Name:  admin.FullName,
		Code:  code,
	})
	return nil
}

// ConfirmVerificationCode checks a submitted code against the stored one and
// consumes it on success so it cannot be replayed.
func (s *AuthService) ConfirmVerificationCode(ctx context.Context, email, code string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || code == "" {
		return apperrors.NewValidationError("email and code are required", nil)
	}

	stored, err := s.codes.GetVerificationCode(ctx, email)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if stored == "" || subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return apperrors.NewUnauthorized("invalid or expired verification code")
	}

	if err := s.codes.DeleteVerificationCode(ctx, email); err != nil {
		s.logger.Warn("failed to consume verification code", zap.String("email", email), zap.Error(err))
	}
	return nil
}

func generateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, actorID string, payload any) {
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

package service

import (
	"github.com/spec-kit/workforce-directory/internal/auth"
	"github.com/spec-kit/workforce-directory/internal/domain"
	apperrors "github.com/spec-kit/workforce-directory/pkg/util/errorutil"
)

// confirmActorPassword gates destructive actions on a re-entered credential,
// so a hijacked session alone cannot trigger them.
func confirmActorPassword(actor *domain.Admin, password string) error {
	if password == "" {
		return apperrors.NewValidationError("password is required to confirm this action", nil)
	}
	if err := auth.ComparePassword(actor.PasswordHash, password); err != nil {
		return apperrors.NewUnauthorized("incorrect password")
	}
	return nil
}

func strChanged(current string, next *string) bool {
	return next != nil && *next != current
}

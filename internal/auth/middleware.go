package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/workforce-directory/internal/domain"
	"github.com/spec-kit/workforce-directory/internal/repository"
	apperrors "github.com/spec-kit/workforce-directory/pkg/util/errorutil"
)

const actorKey = "auth_actor"

// AuthMiddleware validates bearer tokens and loads the acting admin.
type AuthMiddleware struct {
	tokens *TokenManager
	admins repository.AdminRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, admins repository.AdminRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, admins: admins}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	admin, err := m.admins.GetByID(c.Context(), claims.AdminID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewUnauthorized("admin not found")
		}
		return apperrors.MapError(err)
	}
	if admin.IsDeleted || !admin.IsActive {
		return apperrors.NewUnauthorized("admin account inactive")
	}

	c.Locals(actorKey, admin)
	return c.Next()
}

// RequireSuperAdmin restricts a route to super-admin accounts.
func RequireSuperAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := ActorFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if actor.Role != domain.AdminRoleSuperAdmin {
			return apperrors.NewForbidden("super admin role required")
		}
		return c.Next()
	}
}

// ActorFromContext retrieves the authenticated admin.
func ActorFromContext(c *fiber.Ctx) (*domain.Admin, bool) {
	val := c.Locals(actorKey)
	if val == nil {
		return nil, false
	}
	actor, ok := val.(*domain.Admin)
	return actor, ok
}

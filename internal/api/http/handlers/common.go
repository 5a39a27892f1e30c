package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/workforce-directory/internal/api/dto"
	"github.com/spec-kit/workforce-directory/internal/auth"
	"github.com/spec-kit/workforce-directory/internal/domain"
	"github.com/spec-kit/workforce-directory/internal/repository"
	apperrors "github.com/spec-kit/workforce-directory/pkg/util/errorutil"
)

func parseListParams(c *fiber.Ctx) repository.ListParams {
	return repository.ListParams{
		Page:      parseIntQuery(c, "page", 0),
		Limit:     parseIntQuery(c, "limit", 0),
		Search:    c.Query("search"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
}

func parseIntQuery(c *fiber.Ctx, key string, defaultVal int) int {
	if val := c.Query(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

func paginationResponse(p repository.Pagination) dto.PaginationResponse {
	return dto.PaginationResponse{
		TotalCount:  p.TotalCount,
		CurrentPage: p.CurrentPage,
		TotalPages:  p.TotalPages,
		PerPage:     p.PerPage,
	}
}

func requireActor(c *fiber.Ctx) (*domain.Admin, error) {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	return actor, nil
}

func parseDeletePassword(c *fiber.Ctx) string {
	var req dto.DeleteRequest
	if err := c.BodyParser(&req); err != nil {
		return ""
	}
	return req.Password
}

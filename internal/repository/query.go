package repository

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	apperrors "github.com/spec-kit/workforce-directory/pkg/util/errorutil"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100

	defaultOrder = "created_at DESC"
)

// ListParams captures the uniform list-endpoint query parameters:
// page, limit, search, sort_by, sort_order.
type ListParams struct {
	Page      int
	Limit     int
	Search    string
	SortBy    string
	SortOrder string
}

// Normalized clamps page to >=1 and limit to [1,100], applying defaults.
func (p ListParams) Normalized() ListParams {
	if p.Page < 1 {
		p.Page = defaultPage
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	return p
}

func (p ListParams) offset() int {
	return (p.Page - 1) * p.Limit
}

// Pagination is the total-count envelope returned alongside every page.
type Pagination struct {
	TotalCount  int64
	CurrentPage int
	TotalPages  int
	PerPage     int
}

// NewPagination computes the envelope for a normalized ListParams.
func NewPagination(totalCount int64, p ListParams) Pagination {
	totalPages := int((totalCount + int64(p.Limit) - 1) / int64(p.Limit))
	return Pagination{
		TotalCount:  totalCount,
		CurrentPage: p.Page,
		TotalPages:  totalPages,
		PerPage:     p.Limit,
	}
}

// searchClause appends a case-insensitive substring match, OR-combined over
// the searchable columns, to args. Returns "" when there is nothing to search.
func searchClause(search string, columns []string, args *[]any) string {
	keyword := strings.TrimSpace(search)
	if keyword == "" || len(columns) == 0 {
		return ""
	}

	*args = append(*args, "%"+strings.ToLower(keyword)+"%")
	placeholder := fmt.Sprintf("$%d", len(*args))

	parts := make([]string, len(columns))
	for i, col := range columns {
		parts[i] = fmt.Sprintf("LOWER(%s) LIKE %s", col, placeholder)
	}
	return "(" + strings.Join(parts, " OR ") + ")"
}

var identPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// orderClause resolves sort_by against the whitelist. An empty whitelist
// allows any identifier-shaped column. Anything unresolvable falls back to
// the default creation-timestamp sort. sort_order "asc" maps to ascending,
// anything else to descending.
func orderClause(sortBy, sortOrder string, sortable []string) string {
	column := ""
	if identPattern.MatchString(sortBy) {
		if len(sortable) == 0 {
			column = sortBy
		} else {
			for _, allowed := range sortable {
				if sortBy == allowed {
					column = sortBy
					break
				}
			}
		}
	}
	if column == "" {
		return defaultOrder
	}

	direction := "DESC"
	if sortOrder == "asc" {
		direction = "ASC"
	}
	return column + " " + direction
}

// mapUniqueViolation converts a storage-level unique-index rejection into a
// CONFLICT. The index is the authoritative enforcement layer; the pre-write
// duplicate check only covers the common, non-racing case.
func mapUniqueViolation(err error, message string) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return apperrors.NewConflict(message, nil)
	}
	return err
}

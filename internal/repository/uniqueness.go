package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ConflictField is one natural-key predicate in a duplicate check. When Expr
// is set it overrides the plain column comparison (used for normalized
// department names and case-insensitive emails).
type ConflictField struct {
	Column string
	Expr   string
	Value  string
}

// Conflict identifies an existing active record that holds one of the
// candidate natural keys.
type Conflict struct {
	ID string
}

// findConflict looks for an active record matching any of the candidate
// fields, excluding excludeID when updating. Absent fields are simply not
// passed, which lets partial updates re-validate only what changed.
//
// This check-then-write is not atomic; two concurrent creations with the
// same key race past it and are stopped by the partial unique index instead.
// The guard exists to give a clean error message in the common case.
func findConflict(ctx context.Context, pool *pgxpool.Pool, table string, fields []ConflictField, excludeID string) (*Conflict, error) {
	if len(fields) == 0 {
		return nil, nil
	}

	args := []any{}
	predicates := make([]string, 0, len(fields))
	for _, f := range fields {
		args = append(args, f.Value)
		lhs := f.Expr
		if lhs == "" {
			lhs = f.Column
		}
		predicates = append(predicates, fmt.Sprintf("%s = $%d", lhs, len(args)))
	}

	query := fmt.Sprintf(`SELECT id FROM %s WHERE is_deleted = FALSE AND (%s)`,
		table, strings.Join(predicates, " OR "))
	if excludeID != "" {
		args = append(args, excludeID)
		query += fmt.Sprintf(" AND id <> $%d", len(args))
	}
	query += " LIMIT 1"

	var conflict Conflict
	if err := pool.QueryRow(ctx, query, args...).Scan(&conflict.ID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &conflict, nil
}

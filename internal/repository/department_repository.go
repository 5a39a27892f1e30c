package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/workforce-directory/internal/domain"
)

// DepartmentRepository manages department persistence.
type DepartmentRepository interface {
	Create(ctx context.Context, dept *domain.Department) error
	Update(ctx context.Context, dept *domain.Department) error
	GetByID(ctx context.Context, id string) (*domain.Department, error)
	List(ctx context.Context, params ListParams) ([]domain.Department, Pagination, error)
	FindConflict(ctx context.Context, name, email *string, excludeID string) (*Conflict, error)
	ClearAuditReferences(ctx context.Context, adminID string) error
	CountActive(ctx context.Context) (int64, error)
}

type departmentRepository struct {
	pool *pgxpool.Pool
}

// NewDepartmentRepository builds the repository.
func NewDepartmentRepository(pool *pgxpool.Pool) DepartmentRepository {
	return &departmentRepository{pool: pool}
}

// normalizedNameExpr matches the expression behind the partial unique index
// on department names.
const normalizedNameExpr = `LOWER(REPLACE(REPLACE(name, '-', ''), ' ', ''))`

const departmentColumns = `d.id, d.name, d.email, d.image_key, d.created_by, d.updated_by,
        d.is_deleted, d.created_at, d.updated_at,
        (SELECT COUNT(*) FROM employees e WHERE e.department_id = d.id AND e.is_deleted = FALSE) AS employee_count`

func (r *departmentRepository) Create(ctx context.Context, dept *domain.Department) error {
	const query = `
        INSERT INTO departments (name, email, image_key, created_by)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		dept.Name,
		dept.Email,
		dept.Image.StorageKey,
		dept.CreatedBy,
	).Scan(&dept.ID, &dept.CreatedAt, &dept.UpdatedAt)
	return mapUniqueViolation(err, "a department with the same name or email already exists")
}

func (r *departmentRepository) Update(ctx context.Context, dept *domain.Department) error {
	const query = `
        UPDATE departments
        SET name=$1, email=$2, image_key=$3, created_by=$4, updated_by=$5, is_deleted=$6, updated_at=NOW()
        WHERE id=$7
        RETURNING updated_at`
	err := r.pool.QueryRow(ctx, query,
		dept.Name,
		dept.Email,
		dept.Image.StorageKey,
		dept.CreatedBy,
		dept.UpdatedBy,
		dept.IsDeleted,
		dept.ID,
	).Scan(&dept.UpdatedAt)
	return mapUniqueViolation(err, "a department with the same name or email already exists")
}

func (r *departmentRepository) GetByID(ctx context.Context, id string) (*domain.Department, error) {
	query := fmt.Sprintf(`SELECT %s FROM departments d WHERE d.id=$1`, departmentColumns)
	var dept domain.Department
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&dept.ID,
		&dept.Name,
		&dept.Email,
		&dept.Image.StorageKey,
		&dept.CreatedBy,
		&dept.UpdatedBy,
		&dept.IsDeleted,
		&dept.CreatedAt,
		&dept.UpdatedAt,
		&dept.EmployeeCount,
	); err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *departmentRepository) List(ctx context.Context, params ListParams) ([]domain.Department, Pagination, error) {
	params = params.Normalized()

	clauses := []string{"d.is_deleted = FALSE"}
	args := []any{}
	if search := searchClause(params.Search, []string{"d.name", "d.email"}, &args); search != "" {
		clauses = append(clauses, search)
	}
	where := strings.Join(clauses, " AND ")
	order := orderClause(params.SortBy, params.SortOrder, []string{"name", "email", "created_at"})

	query := fmt.Sprintf(`SELECT %s FROM departments d WHERE %s ORDER BY %s LIMIT %d OFFSET %d`,
		departmentColumns, where, order, params.Limit, params.offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, Pagination{}, err
	}
	defer rows.Close()

	var result []domain.Department
	for rows.Next() {
		var dept domain.Department
		if err := rows.Scan(
			&dept.ID,
			&dept.Name,
			&dept.Email,
			&dept.Image.StorageKey,
			&dept.CreatedBy,
			&dept.UpdatedBy,
			&dept.IsDeleted,
			&dept.CreatedAt,
			&dept.UpdatedAt,
			&dept.EmployeeCount,
		); err != nil {
			return nil, Pagination{}, err
		}
		result = append(result, dept)
	}
	if err := rows.Err(); err != nil {
		return nil, Pagination{}, err
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM departments d WHERE %s`, where)
	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, Pagination{}, err
	}

	return result, NewPagination(total, params), nil
}

func (r *departmentRepository) FindConflict(ctx context.Context, name, email *string, excludeID string) (*Conflict, error) {
	var fields []ConflictField
	if name != nil {
		fields = append(fields, ConflictField{Expr: normalizedNameExpr, Value: domain.NormalizeName(*name)})
	}
	if email != nil {
		fields = append(fields, ConflictField{Expr: "LOWER(email)", Value: strings.ToLower(*email)})
	}
	return findConflict(ctx, r.pool, "departments", fields, excludeID)
}

// ClearAuditReferences nulls a deleted admin's id out of created_by and
// updated_by so no dangling ownership pointers remain.
func (r *departmentRepository) ClearAuditReferences(ctx context.Context, adminID string) error {
	const query = `
        UPDATE departments
        SET created_by = CASE WHEN created_by=$1 THEN NULL ELSE created_by END,
            updated_by = CASE WHEN updated_by=$1 THEN NULL ELSE updated_by END
        WHERE created_by=$1 OR updated_by=$1`
	_, err := r.pool.Exec(ctx, query, adminID)
	return err
}

func (r *departmentRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM departments WHERE is_deleted = FALSE`).Scan(&count)
	return count, err
}

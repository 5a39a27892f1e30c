package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/workforce-directory/internal/domain"
)

// EmployeeRepository manages employee persistence.
type EmployeeRepository interface {
	Create(ctx context.Context, emp *domain.Employee) error
	Update(ctx context.Context, emp *domain.Employee) error
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	List(ctx context.Context, params ListParams) ([]domain.Employee, Pagination, error)
	FindConflict(ctx context.Context, email, phone *string, excludeID string) (*Conflict, error)
	CountByDepartment(ctx context.Context, departmentID string) (int64, error)
	ClearAuditReferences(ctx context.Context, adminID string) error
	CountActive(ctx context.Context) (int64, error)
}

type employeeRepository struct {
	pool *pgxpool.Pool
}

// NewEmployeeRepository builds the repository.
func NewEmployeeRepository(pool *pgxpool.Pool) EmployeeRepository {
	return &employeeRepository{pool: pool}
}

const employeeColumns = `id, name, email, phone_number, age, joining_date, designation, address, about_me,
        facebook, twitter, instagram, youtube, image_key, department_id,
        created_by, updated_by, is_deleted, created_at, updated_at`

func (r *employeeRepository) Create(ctx context.Context, emp *domain.Employee) error {
	const query = `
        INSERT INTO employees (name, email, phone_number, age, joining_date, designation, address, about_me,
            facebook, twitter, instagram, youtube, image_key, department_id, created_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
        RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		emp.Name,
		emp.Email,
		emp.PhoneNumber,
		emp.Age,
		emp.JoiningDate,
		emp.Designation,
		emp.Address,
		emp.AboutMe,
		emp.SocialLinks.Facebook,
		emp.SocialLinks.Twitter,
		emp.SocialLinks.Instagram,
		emp.SocialLinks.YouTube,
		emp.Image.StorageKey,
		emp.DepartmentID,
		emp.CreatedBy,
	).Scan(&emp.ID, &emp.CreatedAt, &emp.UpdatedAt)
	return mapUniqueViolation(err, "an employee with this email or phone number already exists")
}

func (r *employeeRepository) Update(ctx context.Context, emp *domain.Employee) error {
	const query = `
        UPDATE employees
        SET name=$1, email=$2, phone_number=$3, age=$4, joining_date=$5, designation=$6, address=$7, about_me=$8,
            facebook=$9, twitter=$10, instagram=$11, youtube=$12, image_key=$13, department_id=$14,
            created_by=$15, updated_by=$16, is_deleted=$17, updated_at=NOW()
        WHERE id=$18
        RETURNING updated_at`
	err := r.pool.QueryRow(ctx, query,
		emp.Name,
		emp.Email,
		emp.PhoneNumber,
		emp.Age,
		emp.JoiningDate,
		emp.Designation,
		emp.Address,
		emp.AboutMe,
		emp.SocialLinks.Facebook,
		emp.SocialLinks.Twitter,
		emp.SocialLinks.Instagram,
		emp.SocialLinks.YouTube,
		emp.Image.StorageKey,
		emp.DepartmentID,
		emp.CreatedBy,
		emp.UpdatedBy,
		emp.IsDeleted,
		emp.ID,
	).Scan(&emp.UpdatedAt)
	return mapUniqueViolation(err, "an employee with this email or phone number already exists")
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	query := fmt.Sprintf(`SELECT %s FROM employees WHERE id=$1`, employeeColumns)
	var emp domain.Employee
	if err := r.pool.QueryRow(ctx, query, id).Scan(scanTargets(&emp)...); err != nil {
		return nil, err
	}
	return &emp, nil
}

func scanTargets(emp *domain.Employee) []any {
	return []any{
		&emp.ID,
		&emp.Name,
		&emp.Email,
		&emp.PhoneNumber,
		&emp.Age,
		&emp.JoiningDate,
		&emp.Designation,
		&emp.Address,
		&emp.AboutMe,
		&emp.SocialLinks.Facebook,
		&emp.SocialLinks.Twitter,
		&emp.SocialLinks.Instagram,
		&emp.SocialLinks.YouTube,
		&emp.Image.StorageKey,
		&emp.DepartmentID,
		&emp.CreatedBy,
		&emp.UpdatedBy,
		&emp.IsDeleted,
		&emp.CreatedAt,
		&emp.UpdatedAt,
	}
}

func (r *employeeRepository) List(ctx context.Context, params ListParams) ([]domain.Employee, Pagination, error) {
	params = params.Normalized()

	clauses := []string{"is_deleted = FALSE"}
	args := []any{}
	if search := searchClause(params.Search, []string{"name", "email", "phone_number", "designation"}, &args); search != "" {
		clauses = append(clauses, search)
	}
	where := strings.Join(clauses, " AND ")
	order := orderClause(params.SortBy, params.SortOrder, []string{"name", "email", "joining_date", "created_at"})

	query := fmt.Sprintf(`SELECT %s FROM employees WHERE %s ORDER BY %s LIMIT %d OFFSET %d`,
		employeeColumns, where, order, params.Limit, params.offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, Pagination{}, err
	}
	defer rows.Close()

	var result []domain.Employee
	for rows.Next() {
		var emp domain.Employee
		if err := rows.Scan(scanTargets(&emp)...); err != nil {
			return nil, Pagination{}, err
		}
		result = append(result, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, Pagination{}, err
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM employees WHERE %s`, where)
	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, Pagination{}, err
	}

	return result, NewPagination(total, params), nil
}

func (r *employeeRepository) FindConflict(ctx context.Context, email, phone *string, excludeID string) (*Conflict, error) {
	var fields []ConflictField
	if email != nil {
		fields = append(fields, ConflictField{Expr: "LOWER(email)", Value: strings.ToLower(*email)})
	}
	if phone != nil {
		fields = append(fields, ConflictField{Column: "phone_number", Value: *phone})
	}
	return findConflict(ctx, r.pool, "employees", fields, excludeID)
}

func (r *employeeRepository) CountByDepartment(ctx context.Context, departmentID string) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM employees WHERE department_id=$1 AND is_deleted = FALSE`,
		departmentID,
	).Scan(&count)
	return count, err
}

// ClearAuditReferences nulls a deleted admin's id out of created_by and
// updated_by so no dangling ownership pointers remain.
func (r *employeeRepository) ClearAuditReferences(ctx context.Context, adminID string) error {
	const query = `
        UPDATE employees
        SET created_by = CASE WHEN created_by=$1 THEN NULL ELSE created_by END,
            updated_by = CASE WHEN updated_by=$1 THEN NULL ELSE updated_by END
        WHERE created_by=$1 OR updated_by=$1`
	_, err := r.pool.Exec(ctx, query, adminID)
	return err
}

func (r *employeeRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE is_deleted = FALSE`).Scan(&count)
	return count, err
}

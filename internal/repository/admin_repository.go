package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/workforce-directory/internal/domain"
)

// AdminRepository manages admin persistence.
type AdminRepository interface {
	Create(ctx context.Context, admin *domain.Admin) error
	Update(ctx context.Context, admin *domain.Admin) error
	GetByID(ctx context.Context, id string) (*domain.Admin, error)
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
	List(ctx context.Context, params ListParams) ([]domain.Admin, Pagination, error)
	ListDeleted(ctx context.Context, params ListParams) ([]domain.Admin, Pagination, error)
	FindConflict(ctx context.Context, email, phone *string, excludeID string) (*Conflict, error)
	CountActive(ctx context.Context) (int64, error)
}

type adminRepository struct {
	pool *pgxpool.Pool
}

// NewAdminRepository builds the repository.
func NewAdminRepository(pool *pgxpool.Pool) AdminRepository {
	return &adminRepository{pool: pool}
}

const adminColumns = `id, full_name, email, phone_number, password_hash, role, image_key,
        created_by, updated_by, is_active, is_deleted, created_at, updated_at`

func (r *adminRepository) Create(ctx context.Context, admin *domain.Admin) error {
	const query = `
        INSERT INTO admins (full_name, email, phone_number, password_hash, role, image_key, created_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		admin.FullName,
		admin.Email,
		admin.PhoneNumber,
		admin.PasswordHash,
		admin.Role,
		admin.Image.StorageKey,
		admin.CreatedBy,
	).Scan(&admin.ID, &admin.CreatedAt, &admin.UpdatedAt)
	return mapUniqueViolation(err, "an admin with this email or phone number already exists")
}

func (r *adminRepository) Update(ctx context.Context, admin *domain.Admin) error {
	const query = `
        UPDATE admins
        SET full_name=$1, email=$2, phone_number=$3, password_hash=$4, image_key=$5,
            created_by=$6, updated_by=$7, is_active=$8, is_deleted=$9, updated_at=NOW()
        WHERE id=$10
        RETURNING updated_at`
	err := r.pool.QueryRow(ctx, query,
		admin.FullName,
		admin.Email,
		admin.PhoneNumber,
		admin.PasswordHash,
		admin.Image.StorageKey,
		admin.CreatedBy,
		admin.UpdatedBy,
		admin.IsActive,
		admin.IsDeleted,
		admin.ID,
	).Scan(&admin.UpdatedAt)
	return mapUniqueViolation(err, "an admin with this email or phone number already exists")
}

func (r *adminRepository) GetByID(ctx context.Context, id string) (*domain.Admin, error) {
	query := fmt.Sprintf(`SELECT %s FROM admins WHERE id=$1`, adminColumns)
	return r.fetchSingle(ctx, query, id)
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	query := fmt.Sprintf(`SELECT %s FROM admins WHERE LOWER(email)=LOWER($1) AND is_deleted = FALSE`, adminColumns)
	return r.fetchSingle(ctx, query, email)
}

func (r *adminRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Admin, error) {
	var admin domain.Admin
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&admin.ID,
		&admin.FullName,
		&admin.Email,
		&admin.PhoneNumber,
		&admin.PasswordHash,
		&admin.Role,
		&admin.Image.StorageKey,
		&admin.CreatedBy,
		&admin.UpdatedBy,
		&admin.IsActive,
		&admin.IsDeleted,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) List(ctx context.Context, params ListParams) ([]domain.Admin, Pagination, error) {
	return r.list(ctx, params, false)
}

func (r *adminRepository) ListDeleted(ctx context.Context, params ListParams) ([]domain.Admin, Pagination, error) {
	return r.list(ctx, params, true)
}

func (r *adminRepository) list(ctx context.Context, params ListParams, deleted bool) ([]domain.Admin, Pagination, error) {
	params = params.Normalized()

	clauses := []string{"is_deleted = FALSE", "role = 'admin'"}
	if deleted {
		clauses[0] = "is_deleted = TRUE"
	}
	args := []any{}
	if search := searchClause(params.Search, []string{"full_name", "email", "phone_number"}, &args); search != "" {
		clauses = append(clauses, search)
	}
	where := strings.Join(clauses, " AND ")
	order := orderClause(params.SortBy, params.SortOrder, []string{"full_name", "email", "created_at"})

	query := fmt.Sprintf(`SELECT %s FROM admins WHERE %s ORDER BY %s LIMIT %d OFFSET %d`,
		adminColumns, where, order, params.Limit, params.offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, Pagination{}, err
	}
	defer rows.Close()

	var result []domain.Admin
	for rows.Next() {
		var admin domain.Admin
		if err := rows.Scan(
			&admin.ID,
			&admin.FullName,
			&admin.Email,
			&admin.PhoneNumber,
			&admin.PasswordHash,
			&admin.Role,
			&admin.Image.StorageKey,
			&admin.CreatedBy,
			&admin.UpdatedBy,
			&admin.IsActive,
			&admin.IsDeleted,
			&admin.CreatedAt,
			&admin.UpdatedAt,
		); err != nil {
			return nil, Pagination{}, err
		}
		result = append(result, admin)
	}
	if err := rows.Err(); err != nil {
		return nil, Pagination{}, err
	}

	// Counted separately from the fetch, not inside one snapshot: concurrent
	// writes between the two queries can skew total_count by a small margin.
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM admins WHERE %s`, where)
	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, Pagination{}, err
	}

	return result, NewPagination(total, params), nil
}

func (r *adminRepository) FindConflict(ctx context.Context, email, phone *string, excludeID string) (*Conflict, error) {
	var fields []ConflictField
	if email != nil {
		fields = append(fields, ConflictField{Expr: "LOWER(email)", Value: strings.ToLower(*email)})
	}
	if phone != nil {
		fields = append(fields, ConflictField{Column: "phone_number", Value: *phone})
	}
	return findConflict(ctx, r.pool, "admins", fields, excludeID)
}

func (r *adminRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM admins WHERE is_deleted = FALSE AND role = 'admin'`).Scan(&count)
	return count, err
}

package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/workforce-directory/internal/domain"
)

// CompanyProfileRepository manages the singleton company profile record.
type CompanyProfileRepository interface {
	Create(ctx context.Context, profile *domain.CompanyProfile) error
	Update(ctx context.Context, profile *domain.CompanyProfile) error
	Get(ctx context.Context) (*domain.CompanyProfile, error)
	Delete(ctx context.Context, id string) error
}

type companyProfileRepository struct {
	pool *pgxpool.Pool
}

// NewCompanyProfileRepository builds the repository.
func NewCompanyProfileRepository(pool *pgxpool.Pool) CompanyProfileRepository {
	return &companyProfileRepository{pool: pool}
}

func (r *companyProfileRepository) Create(ctx context.Context, profile *domain.CompanyProfile) error {
	const query = `
        INSERT INTO company_profiles (company_name, website_link, established, address, button_name, button_redirect_url, image_key)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		profile.CompanyName,
		profile.WebsiteLink,
		profile.Established,
		profile.Address,
		profile.ButtonName,
		profile.ButtonRedirectURL,
		profile.Image.StorageKey,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
}

func (r *companyProfileRepository) Update(ctx context.Context, profile *domain.CompanyProfile) error {
	const query = `
        UPDATE company_profiles
        SET company_name=$1, website_link=$2, established=$3, address=$4, button_name=$5,
            button_redirect_url=$6, image_key=$7, updated_at=NOW()
        WHERE id=$8
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		profile.CompanyName,
		profile.WebsiteLink,
		profile.Established,
		profile.Address,
		profile.ButtonName,
		profile.ButtonRedirectURL,
		profile.Image.StorageKey,
		profile.ID,
	).Scan(&profile.UpdatedAt)
}

func (r *companyProfileRepository) Get(ctx context.Context) (*domain.CompanyProfile, error) {
	const query = `
        SELECT id, company_name, website_link, established, address, button_name, button_redirect_url,
               image_key, created_at, updated_at
        FROM company_profiles
        ORDER BY created_at ASC
        LIMIT 1`
	var profile domain.CompanyProfile
	if err := r.pool.QueryRow(ctx, query).Scan(
		&profile.ID,
		&profile.CompanyName,
		&profile.WebsiteLink,
		&profile.Established,
		&profile.Address,
		&profile.ButtonName,
		&profile.ButtonRedirectURL,
		&profile.Image.StorageKey,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *companyProfileRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM company_profiles WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

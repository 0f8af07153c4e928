package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/talenthub/jobboard-be/internal/api/domain"
	"github.com/talenthub/jobboard-be/internal/api/model"
)

const companyColumns = `
	id, name, slug, email, logo, website, industry, size, founded_year,
	description, mission, culture, benefits, headquarters, locations,
	social_linkedin, social_twitter, social_facebook, social_instagram,
	is_verified, is_featured, created_at, updated_at
`

// CompanyFilter narrows a company listing.
type CompanyFilter struct {
	Industry   string
	Size       string
	IsVerified *bool
	IsFeatured *bool
	Page       int
	PerPage    int
}

func (s *Storage) GetCompany(ctx context.Context, id int64) (*model.Company, error) {
	var company model.Company
	query := `SELECT` + companyColumns + `FROM companies WHERE id = $1`

	err := s.db.GetContext(ctx, &company, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCompanyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	return &company, nil
}

func (s *Storage) GetCompanyBySlug(ctx context.Context, slug string) (*model.Company, error) {
	var company model.Company
	query := `SELECT` + companyColumns + `FROM companies WHERE slug = $1`

	err := s.db.GetContext(ctx, &company, query, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCompanyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get company by slug: %w", err)
	}

	return &company, nil
}

func (s *Storage) ListCompanies(ctx context.Context, filter CompanyFilter) ([]model.Company, int, error) {
	where := " WHERE 1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.Industry != "" {
		where += fmt.Sprintf(" AND industry = $%d", argIdx)
		args = append(args, filter.Industry)
		argIdx++
	}

	if filter.Size != "" {
		where += fmt.Sprintf(" AND size = $%d", argIdx)
		args = append(args, filter.Size)
		argIdx++
	}

	if filter.IsVerified != nil {
		where += fmt.Sprintf(" AND is_verified = $%d", argIdx)
		args = append(args, *filter.IsVerified)
		argIdx++
	}

	if filter.IsFeatured != nil {
		where += fmt.Sprintf(" AND is_featured = $%d", argIdx)
		args = append(args, *filter.IsFeatured)
		argIdx++
	}

	var total int
	if err := s.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM companies"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count companies: %w", err)
	}

	limit, offset := limitOffset(filter.Page, filter.PerPage)
	query := `SELECT` + companyColumns + `FROM companies` + where +
		fmt.Sprintf(" ORDER BY id LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, offset)

	var companies []model.Company
	if err := s.db.SelectContext(ctx, &companies, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list companies: %w", err)
	}

	return companies, total, nil
}

// CreateCompanyWithAdmin inserts the company and its first admin seat in
// one transaction so a half-created account can never exist.
func (s *Storage) CreateCompanyWithAdmin(ctx context.Context, company *model.Company, admin *model.CompanyUser) error {
	return s.client.RunInTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO companies (
				name, slug, email, website, industry, size, founded_year,
				description, headquarters
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id, is_verified, is_featured, created_at, updated_at
		`

		err := tx.QueryRowxContext(
			ctx,
			query,
			company.Name,
			company.Slug,
			company.Email,
			company.Website,
			company.Industry,
			company.Size,
			company.FoundedYear,
			company.Description,
			company.Headquarters,
		).Scan(&company.ID, &company.IsVerified, &company.IsFeatured, &company.CreatedAt, &company.UpdatedAt)

		if isUniqueViolation(err, "companies_email_key") {
			return domain.ErrEmailTaken
		}
		if err != nil {
			return fmt.Errorf("failed to create company: %w", err)
		}

		admin.CompanyID = company.ID
		adminQuery := `
			INSERT INTO company_users (company_id, email, first_name, last_name, role)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, is_active, created_at, updated_at
		`

		err = tx.QueryRowxContext(
			ctx,
			adminQuery,
			admin.CompanyID,
			admin.Email,
			admin.FirstName,
			admin.LastName,
			admin.Role,
		).Scan(&admin.ID, &admin.IsActive, &admin.CreatedAt, &admin.UpdatedAt)

		if isUniqueViolation(err, "company_users_email_key") {
			return domain.ErrEmailTaken
		}
		if err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		return nil
	})
}

func (s *Storage) UpdateCompany(ctx context.Context, company *model.Company) error {
	query := `
		UPDATE companies SET
			name = $1, email = $2, website = $3, industry = $4, size = $5,
			founded_year = $6, description = $7, mission = $8, culture = $9,
			benefits = $10, headquarters = $11, locations = $12,
			social_linkedin = $13, social_twitter = $14, social_facebook = $15,
			social_instagram = $16, is_featured = $17, updated_at = NOW()
		WHERE id = $18
		RETURNING updated_at
	`

	err := s.db.QueryRowxContext(
		ctx,
		query,
		company.Name,
		company.Email,
		company.Website,
		company.Industry,
		company.Size,
		company.FoundedYear,
		company.Description,
		company.Mission,
		company.Culture,
		company.Benefits,
		company.Headquarters,
		company.Locations,
		company.SocialLinkedin,
		company.SocialTwitter,
		company.SocialFacebook,
		company.SocialInstagram,
		company.IsFeatured,
		company.ID,
	).Scan(&company.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrCompanyNotFound
	}
	if isUniqueViolation(err, "companies_email_key") {
		return domain.ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("failed to update company: %w", err)
	}

	return nil
}

func (s *Storage) DeleteCompany(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrCompanyNotFound
	}

	return nil
}

func (s *Storage) VerifyCompany(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE companies SET is_verified = TRUE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to verify company: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrCompanyNotFound
	}

	return nil
}

func (s *Storage) UpdateCompanyLogo(ctx context.Context, id int64, logo string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE companies SET logo = $1, updated_at = NOW() WHERE id = $2`, logo, id)
	if err != nil {
		return fmt.Errorf("failed to update company logo: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrCompanyNotFound
	}

	return nil
}

// GetCompanyStats computes the company aggregates on read so the values
// never drift from the underlying rows.
func (s *Storage) GetCompanyStats(ctx context.Context, id int64) (*model.CompanyStats, error) {
	var stats model.CompanyStats
	query := `
		SELECT
			COUNT(jp.id) AS job_postings_count,
			COUNT(jp.id) FILTER (
				WHERE jp.is_published AND (jp.expiry_date IS NULL OR jp.expiry_date > NOW())
			) AS active_job_postings_count,
			COALESCE(SUM(jp.applications_count), 0) AS total_applications_count,
			COALESCE(SUM(jp.views_count), 0) AS total_views_count,
			CASE WHEN COUNT(jp.id) = 0 THEN 0
				ELSE COALESCE(SUM(jp.applications_count), 0)::float / COUNT(jp.id)
			END AS average_applications_per_posting
		FROM job_postings jp
		WHERE jp.company_id = $1
	`

	if err := s.db.GetContext(ctx, &stats, query, id); err != nil {
		return nil, fmt.Errorf("failed to get company stats: %w", err)
	}

	return &stats, nil
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/talenthub/jobboard-be/internal/api/domain"
	"github.com/talenthub/jobboard-be/internal/api/model"
)

const jobPostingColumns = `
	id, company_id, title, slug, description, requirements, responsibilities,
	location, is_remote, is_hybrid, job_type, experience_level,
	salary_min, salary_max, salary_currency, salary_period, benefits, skills,
	application_url, application_email, application_instructions,
	is_published, is_featured, views_count, applications_count,
	publish_date, expiry_date, created_at, updated_at
`

// JobPostingFilter narrows a job posting listing.
type JobPostingFilter struct {
	CompanyID       int64
	Location        string
	JobType         string
	ExperienceLevel string
	IsRemote        *bool
	IsPublished     *bool
	IsFeatured      *bool
	Page            int
	PerPage         int
}

// GetJobPosting fetches one posting without touching its counters.
func (s *Storage) GetJobPosting(ctx context.Context, id int64) (*model.JobPosting, error) {
	var posting model.JobPosting
	query := `SELECT` + jobPostingColumns + `FROM job_postings WHERE id = $1`

	err := s.db.GetContext(ctx, &posting, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrJobPostingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job posting: %w", err)
	}

	return &posting, nil
}

// ViewJobPosting fetches one posting and atomically increments its view
// counter in the same statement. Repeat fetches by the same viewer are
// not deduplicated.
func (s *Storage) ViewJobPosting(ctx context.Context, id int64) (*model.JobPosting, error) {
	var posting model.JobPosting
	query := `
		UPDATE job_postings SET views_count = views_count + 1
		WHERE id = $1
		RETURNING` + jobPostingColumns

	err := s.db.GetContext(ctx, &posting, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrJobPostingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to view job posting: %w", err)
	}

	return &posting, nil
}

// ViewJobPostingBySlug is ViewJobPosting keyed by slug.
func (s *Storage) ViewJobPostingBySlug(ctx context.Context, slug string) (*model.JobPosting, error) {
	var posting model.JobPosting
	query := `
		UPDATE job_postings SET views_count = views_count + 1
		WHERE slug = $1
		RETURNING` + jobPostingColumns

	err := s.db.GetContext(ctx, &posting, query, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrJobPostingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to view job posting by slug: %w", err)
	}

	return &posting, nil
}

func (s *Storage) ListJobPostings(ctx context.Context, filter JobPostingFilter) ([]model.JobPosting, int, error) {
	where := " WHERE 1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.CompanyID != 0 {
		where += fmt.Sprintf(" AND company_id = $%d", argIdx)
		args = append(args, filter.CompanyID)
		argIdx++
	}

	if filter.Location != "" {
		where += fmt.Sprintf(" AND location ILIKE $%d", argIdx)
		args = append(args, "%"+filter.Location+"%")
		argIdx++
	}

	if filter.JobType != "" {
		where += fmt.Sprintf(" AND job_type = $%d", argIdx)
		args = append(args, filter.JobType)
		argIdx++
	}

	if filter.ExperienceLevel != "" {
		where += fmt.Sprintf(" AND experience_level = $%d", argIdx)
		args = append(args, filter.ExperienceLevel)
		argIdx++
	}

	if filter.IsRemote != nil {
		where += fmt.Sprintf(" AND is_remote = $%d", argIdx)
		args = append(args, *filter.IsRemote)
		argIdx++
	}

	if filter.IsPublished != nil {
		where += fmt.Sprintf(" AND is_published = $%d", argIdx)
		args = append(args, *filter.IsPublished)
		argIdx++
	}

	if filter.IsFeatured != nil {
		where += fmt.Sprintf(" AND is_featured = $%d", argIdx)
		args = append(args, *filter.IsFeatured)
		argIdx++
	}

	var total int
	if err := s.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM job_postings"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count job postings: %w", err)
	}

	limit, offset := limitOffset(filter.Page, filter.PerPage)
	query := `SELECT` + jobPostingColumns + `FROM job_postings` + where +
		fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, offset)

	var postings []model.JobPosting
	if err := s.db.SelectContext(ctx, &postings, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list job postings: %w", err)
	}

	return postings, total, nil
}

func (s *Storage) CreateJobPosting(ctx context.Context, posting *model.JobPosting) error {
	query := `
		INSERT INTO job_postings (
			company_id, title, slug, description, requirements, responsibilities,
			location, is_remote, is_hybrid, job_type, experience_level,
			salary_min, salary_max, salary_currency, salary_period, benefits,
			skills, application_url, application_email, application_instructions,
			is_published, is_featured, publish_date, expiry_date
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24
		)
		RETURNING id, views_count, applications_count, created_at, updated_at
	`

	err := s.db.QueryRowxContext(
		ctx,
		query,
		posting.CompanyID,
		posting.Title,
		posting.Slug,
		posting.Description,
		posting.Requirements,
		posting.Responsibilities,
		posting.Location,
		posting.IsRemote,
		posting.IsHybrid,
		posting.JobType,
		posting.ExperienceLevel,
		posting.SalaryMin,
		posting.SalaryMax,
		posting.SalaryCurrency,
		posting.SalaryPeriod,
		posting.Benefits,
		posting.Skills,
		posting.ApplicationURL,
		posting.ApplicationEmail,
		posting.ApplicationInstructions,
		posting.IsPublished,
		posting.IsFeatured,
		posting.PublishDate,
		posting.ExpiryDate,
	).Scan(&posting.ID, &posting.ViewsCount, &posting.ApplicationsCount, &posting.CreatedAt, &posting.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create job posting: %w", err)
	}

	return nil
}

func (s *Storage) UpdateJobPosting(ctx context.Context, posting *model.JobPosting) error {
	query := `
		UPDATE job_postings SET
			title = $1, description = $2, requirements = $3, responsibilities = $4,
			location = $5, is_remote = $6, is_hybrid = $7, job_type = $8,
			experience_level = $9, salary_min = $10, salary_max = $11,
			salary_currency = $12, salary_period = $13, benefits = $14,
			skills = $15, application_url = $16, application_email = $17,
			application_instructions = $18, is_published = $19, is_featured = $20,
			publish_date = $21, expiry_date = $22, updated_at = NOW()
		WHERE id = $23
		RETURNING updated_at
	`

	err := s.db.QueryRowxContext(
		ctx,
		query,
		posting.Title,
		posting.Description,
		posting.Requirements,
		posting.Responsibilities,
		posting.Location,
		posting.IsRemote,
		posting.IsHybrid,
		posting.JobType,
		posting.ExperienceLevel,
		posting.SalaryMin,
		posting.SalaryMax,
		posting.SalaryCurrency,
		posting.SalaryPeriod,
		posting.Benefits,
		posting.Skills,
		posting.ApplicationURL,
		posting.ApplicationEmail,
		posting.ApplicationInstructions,
		posting.IsPublished,
		posting.IsFeatured,
		posting.PublishDate,
		posting.ExpiryDate,
		posting.ID,
	).Scan(&posting.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrJobPostingNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update job posting: %w", err)
	}

	return nil
}

func (s *Storage) DeleteJobPosting(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM job_postings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete job posting: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrJobPostingNotFound
	}

	return nil
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/talenthub/jobboard-be/internal/api/domain"
	"github.com/talenthub/jobboard-be/internal/api/model"
)

const reviewColumns = `
	id, company_id, user_id, title, content, rating, pros, cons,
	employment_status, job_title, is_verified, is_anonymous, is_approved,
	created_at, updated_at
`

func (s *Storage) GetReview(ctx context.Context, id int64) (*model.CompanyReview, error) {
	var review model.CompanyReview
	query := `SELECT` + reviewColumns + `FROM company_reviews WHERE id = $1`

	err := s.db.GetContext(ctx, &review, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrReviewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	return &review, nil
}

func (s *Storage) ListReviews(ctx context.Context, companyID int64, isApproved *bool, page, perPage int) ([]model.CompanyReview, int, error) {
	where := " WHERE company_id = $1"
	args := []interface{}{companyID}
	argIdx := 2

	if isApproved != nil {
		where += fmt.Sprintf(" AND is_approved = $%d", argIdx)
		args = append(args, *isApproved)
		argIdx++
	}

	var total int
	if err := s.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM company_reviews"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	limit, offset := limitOffset(page, perPage)
	query := `SELECT` + reviewColumns + `FROM company_reviews` + where +
		fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, offset)

	var reviews []model.CompanyReview
	if err := s.db.SelectContext(ctx, &reviews, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}

	return reviews, total, nil
}

func (s *Storage) CreateReview(ctx context.Context, review *model.CompanyReview) error {
	query := `
		INSERT INTO company_reviews (
			company_id, user_id, title, content, rating, pros, cons,
			employment_status, job_title, is_anonymous
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, is_verified, is_approved, created_at, updated_at
	`

	err := s.db.QueryRowxContext(
		ctx,
		query,
		review.CompanyID,
		review.UserID,
		review.Title,
		review.Content,
		review.Rating,
		review.Pros,
		review.Cons,
		review.EmploymentStatus,
		review.JobTitle,
		review.IsAnonymous,
	).Scan(&review.ID, &review.IsVerified, &review.IsApproved, &review.CreatedAt, &review.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

func (s *Storage) ApproveReview(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE company_reviews SET is_approved = TRUE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to approve review: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrReviewNotFound
	}

	return nil
}

func (s *Storage) DeleteReview(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM company_reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrReviewNotFound
	}

	return nil
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/talenthub/jobboard-be/internal/api/domain"
	"github.com/talenthub/jobboard-be/internal/api/model"
)

const companyUserColumns = `
	id, company_id, email, first_name, last_name, role, phone,
	profile_picture, is_active, created_at, updated_at
`

// CompanyUserFilter narrows a company-seat listing.
type CompanyUserFilter struct {
	CompanyID int64
	Role      string
	IsActive  *bool
	Page      int
	PerPage   int
}

func (s *Storage) GetCompanyUser(ctx context.Context, id int64) (*model.CompanyUser, error) {
	var user model.CompanyUser
	query := `SELECT` + companyUserColumns + `FROM company_users WHERE id = $1`

	err := s.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCompanyUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get company user: %w", err)
	}

	return &user, nil
}

func (s *Storage) ListCompanyUsers(ctx context.Context, filter CompanyUserFilter) ([]model.CompanyUser, int, error) {
	where := " WHERE company_id = $1"
	args := []interface{}{filter.CompanyID}
	argIdx := 2

	if filter.Role != "" {
		where += fmt.Sprintf(" AND role = $%d", argIdx)
		args = append(args, filter.Role)
		argIdx++
	}

	if filter.IsActive != nil {
		where += fmt.Sprintf(" AND is_active = $%d", argIdx)
		args = append(args, *filter.IsActive)
		argIdx++
	}

	var total int
	if err := s.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM company_users"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count company users: %w", err)
	}

	limit, offset := limitOffset(filter.Page, filter.PerPage)
	query := `SELECT` + companyUserColumns + `FROM company_users` + where +
		fmt.Sprintf(" ORDER BY id LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, offset)

	var users []model.CompanyUser
	if err := s.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list company users: %w", err)
	}

	return users, total, nil
}

func (s *Storage) CreateCompanyUser(ctx context.Context, user *model.CompanyUser) error {
	query := `
		INSERT INTO company_users (
			company_id, email, first_name, last_name, role, phone,
			profile_picture, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowxContext(
		ctx,
		query,
		user.CompanyID,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Role,
		user.Phone,
		user.ProfilePicture,
		user.IsActive,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if isUniqueViolation(err, "company_users_email_key") {
		return domain.ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("failed to create company user: %w", err)
	}

	return nil
}

func (s *Storage) UpdateCompanyUser(ctx context.Context, user *model.CompanyUser) error {
	query := `
		UPDATE company_users SET
			email = $1, first_name = $2, last_name = $3, role = $4,
			phone = $5, profile_picture = $6, is_active = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING updated_at
	`

	err := s.db.QueryRowxContext(
		ctx,
		query,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Role,
		user.Phone,
		user.ProfilePicture,
		user.IsActive,
		user.ID,
	).Scan(&user.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrCompanyUserNotFound
	}
	if isUniqueViolation(err, "company_users_email_key") {
		return domain.ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("failed to update company user: %w", err)
	}

	return nil
}

// DeleteCompanyUser removes a seat, refusing to remove the last admin
// of its company.
func (s *Storage) DeleteCompanyUser(ctx context.Context, id int64) error {
	user, err := s.GetCompanyUser(ctx, id)
	if err != nil {
		return err
	}

	if user.Role == domain.RoleAdmin {
		var admins int
		err := s.db.GetContext(ctx, &admins,
			`SELECT COUNT(*) FROM company_users WHERE company_id = $1 AND role = $2`,
			user.CompanyID, domain.RoleAdmin)
		if err != nil {
			return fmt.Errorf("failed to count admins: %w", err)
		}
		if admins <= 1 {
			return domain.ErrLastAdmin
		}
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM company_users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete company user: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrCompanyUserNotFound
	}

	return nil
}

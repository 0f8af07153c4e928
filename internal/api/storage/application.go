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

const applicationColumns = `
	id, job_posting_id, user_id, cover_letter, resume_url, status,
	company_notes, rating, is_archived, created_at, updated_at
`

// ApplicationFilter narrows an application listing.
type ApplicationFilter struct {
	JobPostingID int64
	UserID       int64
	Status       string
	IsArchived   *bool
	Page         int
	PerPage      int
}

func (s *Storage) GetApplication(ctx context.Context, id int64) (*model.Application, error) {
	var app model.Application
	query := `SELECT` + applicationColumns + `FROM applications WHERE id = $1`

	err := s.db.GetContext(ctx, &app, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrApplicationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	return &app, nil
}

func (s *Storage) ListApplications(ctx context.Context, filter ApplicationFilter) ([]model.Application, int, error) {
	where, args, argIdx := applicationWhere(filter)

	var total int
	if err := s.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM applications"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count applications: %w", err)
	}

	limit, offset := limitOffset(filter.Page, filter.PerPage)
	query := `SELECT` + applicationColumns + `FROM applications` + where +
		fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, offset)

	var apps []model.Application
	if err := s.db.SelectContext(ctx, &apps, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list applications: %w", err)
	}

	return apps, total, nil
}

// ListApplicationsWithUsers lists a posting's applications joined with
// the applicant summary, newest first.
func (s *Storage) ListApplicationsWithUsers(ctx context.Context, filter ApplicationFilter) ([]model.ApplicationListItem, int, error) {
	where, args, argIdx := applicationWhere(filter)

	var total int
	if err := s.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM applications a"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count applications: %w", err)
	}

	limit, offset := limitOffset(filter.Page, filter.PerPage)
	query := `
		SELECT
			a.id, a.job_posting_id, a.user_id, a.cover_letter, a.resume_url,
			a.status, a.company_notes, a.rating, a.is_archived,
			a.created_at, a.updated_at,
			u.id AS "user.id", u.first_name AS "user.first_name",
			u.last_name AS "user.last_name", u.email AS "user.email",
			u.profile_picture AS "user.profile_picture"
		FROM applications a
		JOIN users u ON u.id = a.user_id` + where +
		fmt.Sprintf(" ORDER BY a.created_at DESC, a.id DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, offset)

	var items []model.ApplicationListItem
	if err := s.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list applications with users: %w", err)
	}

	return items, total, nil
}

// ListApplicationsWithPostings lists a user's applications joined with
// the posting summary, newest first.
func (s *Storage) ListApplicationsWithPostings(ctx context.Context, filter ApplicationFilter) ([]model.ApplicationListItem, int, error) {
	where, args, argIdx := applicationWhere(filter)

	var total int
	if err := s.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM applications a"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count applications: %w", err)
	}

	limit, offset := limitOffset(filter.Page, filter.PerPage)
	query := `
		SELECT
			a.id, a.job_posting_id, a.user_id, a.cover_letter, a.resume_url,
			a.status, a.company_notes, a.rating, a.is_archived,
			a.created_at, a.updated_at,
			jp.id AS "job_posting.id", jp.title AS "job_posting.title",
			jp.company_id AS "job_posting.company_id",
			jp.location AS "job_posting.location",
			jp.is_remote AS "job_posting.is_remote",
			jp.job_type AS "job_posting.job_type"
		FROM applications a
		JOIN job_postings jp ON jp.id = a.job_posting_id` + where +
		fmt.Sprintf(" ORDER BY a.created_at DESC, a.id DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, offset)

	var items []model.ApplicationListItem
	if err := s.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list applications with postings: %w", err)
	}

	return items, total, nil
}

// applicationWhere builds the shared WHERE clause. Column references are
// unqualified except through the `a` alias, which plain listings also use
// implicitly because the filter columns are unambiguous there.
func applicationWhere(filter ApplicationFilter) (string, []interface{}, int) {
	where := " WHERE 1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.JobPostingID != 0 {
		where += fmt.Sprintf(" AND job_posting_id = $%d", argIdx)
		args = append(args, filter.JobPostingID)
		argIdx++
	}

	if filter.UserID != 0 {
		where += fmt.Sprintf(" AND user_id = $%d", argIdx)
		args = append(args, filter.UserID)
		argIdx++
	}

	if filter.Status != "" {
		where += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, filter.Status)
		argIdx++
	}

	if filter.IsArchived != nil {
		where += fmt.Sprintf(" AND is_archived = $%d", argIdx)
		args = append(args, *filter.IsArchived)
		argIdx++
	}

	return where, args, argIdx
}

// CreateApplication inserts the application, bumps the posting counter
// atomically and records the initial activity, all in one transaction.
func (s *Storage) CreateApplication(ctx context.Context, app *model.Application) error {
	return s.client.RunInTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO applications (job_posting_id, user_id, cover_letter, resume_url, status)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, is_archived, created_at, updated_at
		`

		err := tx.QueryRowxContext(
			ctx,
			query,
			app.JobPostingID,
			app.UserID,
			app.CoverLetter,
			app.ResumeURL,
			app.Status,
		).Scan(&app.ID, &app.IsArchived, &app.CreatedAt, &app.UpdatedAt)

		if isUniqueViolation(err, "applications_job_posting_id_user_id_key") {
			return domain.ErrDuplicateApplication
		}
		if err != nil {
			return fmt.Errorf("failed to create application: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE job_postings SET applications_count = applications_count + 1 WHERE id = $1`,
			app.JobPostingID)
		if err != nil {
			return fmt.Errorf("failed to increment applications count: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO application_activities (application_id, activity_type, description)
			 VALUES ($1, $2, $3)`,
			app.ID, domain.ActivityStatusChange, "Application received")
		if err != nil {
			return fmt.Errorf("failed to record application activity: %w", err)
		}

		return nil
	})
}

// UpdateApplicationStatus changes the status and records the transition
// as an activity in one transaction.
func (s *Storage) UpdateApplicationStatus(ctx context.Context, app *model.Application, oldStatus string, companyUserID *int64) error {
	return s.client.RunInTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			UPDATE applications SET status = $1, company_notes = $2, updated_at = NOW()
			WHERE id = $3
			RETURNING updated_at
		`

		err := tx.QueryRowxContext(ctx, query, app.Status, app.CompanyNotes, app.ID).Scan(&app.UpdatedAt)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrApplicationNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to update application status: %w", err)
		}

		description := fmt.Sprintf("Status changed from %s to %s", oldStatus, app.Status)
		_, err = tx.ExecContext(ctx,
			`INSERT INTO application_activities (application_id, company_user_id, activity_type, description)
			 VALUES ($1, $2, $3, $4)`,
			app.ID, companyUserID, domain.ActivityStatusChange, description)
		if err != nil {
			return fmt.Errorf("failed to record status activity: %w", err)
		}

		return nil
	})
}

func (s *Storage) SetApplicationArchived(ctx context.Context, id int64, archived bool) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE applications SET is_archived = $1, updated_at = NOW() WHERE id = $2`,
		archived, id)
	if err != nil {
		return fmt.Errorf("failed to set application archived: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrApplicationNotFound
	}

	return nil
}

func (s *Storage) CreateApplicationActivity(ctx context.Context, activity *model.ApplicationActivity) error {
	query := `
		INSERT INTO application_activities (
			application_id, company_user_id, activity_type, description, metadata
		) VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := s.db.QueryRowxContext(
		ctx,
		query,
		activity.ApplicationID,
		activity.CompanyUserID,
		activity.ActivityType,
		activity.Description,
		activity.Metadata,
	).Scan(&activity.ID, &activity.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create application activity: %w", err)
	}

	return nil
}

// activityRow flattens the LEFT JOIN so rows without a company user
// scan into nullable columns instead of a half-populated struct.
type activityRow struct {
	model.ApplicationActivity
	CuID        *int64  `db:"cu_id"`
	CuFirstName *string `db:"cu_first_name"`
	CuLastName  *string `db:"cu_last_name"`
	CuRole      *string `db:"cu_role"`
}

// ListApplicationActivities returns all activities for an application,
// newest first, each joined with its recording company user when set.
func (s *Storage) ListApplicationActivities(ctx context.Context, applicationID int64) ([]model.ActivityListItem, error) {
	query := `
		SELECT
			aa.id, aa.application_id, aa.company_user_id, aa.activity_type,
			aa.description, aa.metadata, aa.created_at,
			cu.id AS cu_id, cu.first_name AS cu_first_name,
			cu.last_name AS cu_last_name, cu.role AS cu_role
		FROM application_activities aa
		LEFT JOIN company_users cu ON cu.id = aa.company_user_id
		WHERE aa.application_id = $1
		ORDER BY aa.created_at DESC, aa.id DESC
	`

	var rows []activityRow
	if err := s.db.SelectContext(ctx, &rows, query, applicationID); err != nil {
		return nil, fmt.Errorf("failed to list application activities: %w", err)
	}

	items := make([]model.ActivityListItem, 0, len(rows))
	for _, row := range rows {
		item := model.ActivityListItem{ApplicationActivity: row.ApplicationActivity}
		if row.CuID != nil {
			item.CompanyUser = &model.CompanyUserSummary{
				ID:        *row.CuID,
				FirstName: *row.CuFirstName,
				LastName:  *row.CuLastName,
				Role:      *row.CuRole,
			}
		}
		items = append(items, item)
	}

	return items, nil
}

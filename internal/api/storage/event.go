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

const eventColumns = `
	id, company_id, title, description, event_type, location, is_virtual,
	virtual_link, start_date, end_date, max_participants,
	registration_deadline, is_published, created_at, updated_at
`

// EventFilter narrows a recruiting event listing.
type EventFilter struct {
	CompanyID   int64
	EventType   string
	IsPublished *bool
	Page        int
	PerPage     int
}

func (s *Storage) GetEvent(ctx context.Context, id int64) (*model.RecruitingEvent, error) {
	var event model.RecruitingEvent
	query := `SELECT` + eventColumns + `FROM recruiting_events WHERE id = $1`

	err := s.db.GetContext(ctx, &event, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recruiting event: %w", err)
	}

	return &event, nil
}

func (s *Storage) ListEvents(ctx context.Context, filter EventFilter) ([]model.RecruitingEvent, int, error) {
	where := " WHERE company_id = $1"
	args := []interface{}{filter.CompanyID}
	argIdx := 2

	if filter.EventType != "" {
		where += fmt.Sprintf(" AND event_type = $%d", argIdx)
		args = append(args, filter.EventType)
		argIdx++
	}

	if filter.IsPublished != nil {
		where += fmt.Sprintf(" AND is_published = $%d", argIdx)
		args = append(args, *filter.IsPublished)
		argIdx++
	}

	var total int
	if err := s.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM recruiting_events"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count recruiting events: %w", err)
	}

	limit, offset := limitOffset(filter.Page, filter.PerPage)
	query := `SELECT` + eventColumns + `FROM recruiting_events` + where +
		fmt.Sprintf(" ORDER BY start_date ASC, id ASC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, offset)

	var events []model.RecruitingEvent
	if err := s.db.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list recruiting events: %w", err)
	}

	return events, total, nil
}

func (s *Storage) CreateEvent(ctx context.Context, event *model.RecruitingEvent) error {
	query := `
		INSERT INTO recruiting_events (
			company_id, title, description, event_type, location, is_virtual,
			virtual_link, start_date, end_date, max_participants,
			registration_deadline, is_published
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowxContext(
		ctx,
		query,
		event.CompanyID,
		event.Title,
		event.Description,
		event.EventType,
		event.Location,
		event.IsVirtual,
		event.VirtualLink,
		event.StartDate,
		event.EndDate,
		event.MaxParticipants,
		event.RegistrationDeadline,
		event.IsPublished,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create recruiting event: %w", err)
	}

	return nil
}

func (s *Storage) UpdateEvent(ctx context.Context, event *model.RecruitingEvent) error {
	query := `
		UPDATE recruiting_events SET
			title = $1, description = $2, event_type = $3, location = $4,
			is_virtual = $5, virtual_link = $6, start_date = $7, end_date = $8,
			max_participants = $9, registration_deadline = $10,
			is_published = $11, updated_at = NOW()
		WHERE id = $12
		RETURNING updated_at
	`

	err := s.db.QueryRowxContext(
		ctx,
		query,
		event.Title,
		event.Description,
		event.EventType,
		event.Location,
		event.IsVirtual,
		event.VirtualLink,
		event.StartDate,
		event.EndDate,
		event.MaxParticipants,
		event.RegistrationDeadline,
		event.IsPublished,
		event.ID,
	).Scan(&event.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrEventNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update recruiting event: %w", err)
	}

	return nil
}

func (s *Storage) DeleteEvent(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM recruiting_events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete recruiting event: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrEventNotFound
	}

	return nil
}

// CreateRegistration registers a user for an event, enforcing capacity
// inside the transaction. The capacity check counts non-cancelled
// registrations while holding the event row, so two concurrent
// registrations cannot both squeeze past the limit.
func (s *Storage) CreateRegistration(ctx context.Context, event *model.RecruitingEvent, reg *model.EventRegistration) error {
	return s.client.RunInTx(ctx, func(tx *sqlx.Tx) error {
		if event.MaxParticipants != nil {
			var taken int
			err := tx.GetContext(ctx, &taken,
				`SELECT COUNT(*) FROM event_registrations
				 WHERE event_id = (SELECT id FROM recruiting_events WHERE id = $1 FOR UPDATE)
				   AND status <> $2`,
				event.ID, domain.RegistrationCancelled)
			if err != nil {
				return fmt.Errorf("failed to count registrations: %w", err)
			}
			if taken >= *event.MaxParticipants {
				return domain.ErrEventFull
			}
		}

		query := `
			INSERT INTO event_registrations (event_id, user_id, status, notes)
			VALUES ($1, $2, $3, $4)
			RETURNING id, registration_date
		`

		err := tx.QueryRowxContext(
			ctx,
			query,
			reg.EventID,
			reg.UserID,
			reg.Status,
			reg.Notes,
		).Scan(&reg.ID, &reg.RegistrationDate)

		if isUniqueViolation(err, "event_registrations_event_id_user_id_key") {
			return domain.ErrDuplicateRegistration
		}
		if err != nil {
			return fmt.Errorf("failed to create registration: %w", err)
		}

		return nil
	})
}

func (s *Storage) GetRegistration(ctx context.Context, id int64) (*model.EventRegistration, error) {
	var reg model.EventRegistration
	query := `
		SELECT id, event_id, user_id, status, registration_date, notes
		FROM event_registrations WHERE id = $1
	`

	err := s.db.GetContext(ctx, &reg, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRegistrationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get registration: %w", err)
	}

	return &reg, nil
}

// ListRegistrations returns an event's registrations with attendee
// summaries, oldest first.
func (s *Storage) ListRegistrations(ctx context.Context, eventID int64, status string, page, perPage int) ([]model.RegistrationListItem, int, error) {
	where := " WHERE er.event_id = $1"
	args := []interface{}{eventID}
	argIdx := 2

	if status != "" {
		where += fmt.Sprintf(" AND er.status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var total int
	if err := s.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM event_registrations er"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count registrations: %w", err)
	}

	limit, offset := limitOffset(page, perPage)
	query := `
		SELECT
			er.id, er.event_id, er.user_id, er.status, er.registration_date, er.notes,
			u.id AS "user.id", u.first_name AS "user.first_name",
			u.last_name AS "user.last_name", u.email AS "user.email",
			u.profile_picture AS "user.profile_picture"
		FROM event_registrations er
		JOIN users u ON u.id = er.user_id` + where +
		fmt.Sprintf(" ORDER BY er.registration_date ASC, er.id ASC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, offset)

	var items []model.RegistrationListItem
	if err := s.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list registrations: %w", err)
	}

	return items, total, nil
}

func (s *Storage) UpdateRegistrationStatus(ctx context.Context, id int64, status string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE event_registrations SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update registration status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrRegistrationNotFound
	}

	return nil
}

package storage

import (
	"context"
	"fmt"

	"github.com/talenthub/jobboard-be/internal/api/domain"
	"github.com/talenthub/jobboard-be/internal/api/model"
)

const notificationColumns = `
	id, recipient_type, recipient_id, event_type, subject_id, body, is_read, created_at
`

// NotificationFilter narrows a recipient's notification feed.
type NotificationFilter struct {
	RecipientType domain.Party
	RecipientID   int64
	IsRead        *bool
	Page          int
	PerPage       int
}

func (s *Storage) ListNotifications(ctx context.Context, filter NotificationFilter) ([]model.Notification, int, error) {
	where := " WHERE recipient_type = $1 AND recipient_id = $2"
	args := []interface{}{filter.RecipientType, filter.RecipientID}
	argIdx := 3

	if filter.IsRead != nil {
		where += fmt.Sprintf(" AND is_read = $%d", argIdx)
		args = append(args, *filter.IsRead)
		argIdx++
	}

	var total int
	if err := s.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM notifications"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	limit, offset := limitOffset(filter.Page, filter.PerPage)
	query := `SELECT` + notificationColumns + `FROM notifications` + where +
		fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, offset)

	var notifications []model.Notification
	if err := s.db.SelectContext(ctx, &notifications, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}

	return notifications, total, nil
}

// MarkNotificationRead is idempotent: marking an already-read notification
// succeeds without touching the row again.
func (s *Storage) MarkNotificationRead(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotificationNotFound
	}

	return nil
}

package storage

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/talenthub/jobboard-be/internal/worker/domain"
	"github.com/talenthub/jobboard-be/shared/postgresql"
)

// Storage is the worker's narrow view of the database: it only writes
// notification rows.
type Storage struct {
	client *postgresql.Client
	db     *sqlx.DB
}

func NewStorage(client *postgresql.Client) *Storage {
	return &Storage{
		client: client,
		db:     client.GetDB(),
	}
}

// InsertNotification materialises one feed row. Failures are considered
// transient; the caller decides whether to requeue the event.
func (s *Storage) InsertNotification(ctx context.Context, n *domain.Notification) error {
	query := `
		INSERT INTO notifications (recipient_type, recipient_id, event_type, subject_id, body)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		n.RecipientType,
		n.RecipientID,
		n.EventType,
		n.SubjectID,
		n.Body,
	)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}

	return nil
}

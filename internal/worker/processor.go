package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/talenthub/jobboard-be/internal/events"
	"github.com/talenthub/jobboard-be/internal/worker/domain"
)

// processEvent turns one domain event into a notification row.
func (w *Worker) processEvent(ctx context.Context, msg *domain.EventMessage) error {
	var env events.Envelope
	if err := json.Unmarshal(msg.Body, &env); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMalformedEvent, err)
	}

	notification, err := w.buildNotification(&env)
	if err != nil {
		return err
	}

	if err := w.storage.InsertNotification(ctx, notification); err != nil {
		// Storage failures are transient; let the broker redeliver.
		return domain.NewRetryableError(err)
	}

	w.logger.Info("Notification materialised",
		slog.String("event_type", env.Type),
		slog.String("recipient_type", notification.RecipientType),
		slog.Int64("recipient_id", notification.RecipientID),
	)

	return nil
}

func (w *Worker) buildNotification(env *events.Envelope) (*domain.Notification, error) {
	switch env.Type {
	case events.TypeMessageSent:
		var ev events.MessageSent
		if err := json.Unmarshal(env.Data, &ev); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedEvent, err)
		}
		return &domain.Notification{
			RecipientType: ev.RecipientType,
			RecipientID:   ev.RecipientID,
			EventType:     env.Type,
			SubjectID:     ev.ConversationID,
			Body:          fmt.Sprintf("New message: %s", previewBody(ev.Preview)),
		}, nil

	case events.TypeApplicationReceived:
		var ev events.ApplicationReceived
		if err := json.Unmarshal(env.Data, &ev); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedEvent, err)
		}
		return &domain.Notification{
			RecipientType: "company",
			RecipientID:   ev.CompanyID,
			EventType:     env.Type,
			SubjectID:     ev.ApplicationID,
			Body:          "New application received",
		}, nil

	case events.TypeApplicationStatusChanged:
		var ev events.ApplicationStatusChanged
		if err := json.Unmarshal(env.Data, &ev); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedEvent, err)
		}
		return &domain.Notification{
			RecipientType: "user",
			RecipientID:   ev.UserID,
			EventType:     env.Type,
			SubjectID:     ev.ApplicationID,
			Body:          fmt.Sprintf("Your application status changed from %s to %s", ev.OldStatus, ev.NewStatus),
		}, nil

	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownEventType, env.Type)
	}
}

// previewBody caps the message preview carried into a notification.
func previewBody(s string) string {
	const limit = 100
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

package events

import (
	"context"
	"log/slog"

	"github.com/talenthub/jobboard-be/shared/rabbitmq"
)

// Publisher pushes domain events onto the topic exchange. Publishing is
// best effort: a broker failure is logged and swallowed so the HTTP
// request that triggered the event still succeeds.
type Publisher struct {
	client *rabbitmq.Client
	logger *slog.Logger
}

func NewPublisher(client *rabbitmq.Client, logger *slog.Logger) *Publisher {
	return &Publisher{
		client: client,
		logger: logger.With(slog.String("component", "event-publisher")),
	}
}

func (p *Publisher) Publish(ctx context.Context, eventType string, payload interface{}) {
	body, err := Wrap(eventType, payload)
	if err != nil {
		p.logger.Error("Failed to encode event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()),
		)
		return
	}

	if err := p.client.Publish(ctx, eventType, body); err != nil {
		p.logger.Error("Failed to publish event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()),
		)
		return
	}

	p.logger.Debug("Published event", slog.String("event_type", eventType))
}

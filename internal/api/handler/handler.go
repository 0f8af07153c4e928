package handler

import (
	"context"
	"log/slog"

	"github.com/talenthub/jobboard-be/internal/api/storage"
)

// EventPublisher pushes a domain event onto the broker. Implementations
// are best effort and never fail the request.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload interface{})
}

// NopPublisher discards events. Used when the broker is not configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, interface{}) {}

// Handlers bundles every resource handler behind one constructor so the
// router wires a single value.
type Handlers struct {
	User         *UserHandler
	Company      *CompanyHandler
	CompanyUser  *CompanyUserHandler
	JobPosting   *JobPostingHandler
	Application  *ApplicationHandler
	Messaging    *MessagingHandler
	Event        *EventHandler
	Invoice      *InvoiceHandler
	Review       *ReviewHandler
	Media        *MediaHandler
	Notification *NotificationHandler
}

func New(store *storage.Storage, publisher EventPublisher, logger *slog.Logger) *Handlers {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &Handlers{
		User:         NewUserHandler(store, logger),
		Company:      NewCompanyHandler(store, logger),
		CompanyUser:  NewCompanyUserHandler(store, logger),
		JobPosting:   NewJobPostingHandler(store, logger),
		Application:  NewApplicationHandler(store, publisher, logger),
		Messaging:    NewMessagingHandler(store, publisher, logger),
		Event:        NewEventHandler(store, logger),
		Invoice:      NewInvoiceHandler(store, logger),
		Review:       NewReviewHandler(store, logger),
		Media:        NewMediaHandler(store, logger),
		Notification: NewNotificationHandler(store, logger),
	}
}

package worker

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talenthub/jobboard-be/internal/events"
	"github.com/talenthub/jobboard-be/internal/worker/domain"
)

func testWorker() *Worker {
	return &Worker{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func mustEnvelope(t *testing.T, eventType string, payload interface{}) *events.Envelope {
	t.Helper()
	raw, err := events.Wrap(eventType, payload)
	require.NoError(t, err)

	var env events.Envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	return &env
}

func TestBuildNotification_MessageSent(t *testing.T) {
	w := testWorker()

	env := mustEnvelope(t, events.TypeMessageSent, events.MessageSent{
		ConversationID: 5,
		MessageID:      17,
		SenderType:     "user",
		RecipientType:  "company",
		RecipientID:    2,
		Preview:        "Hello there",
	})

	n, err := w.buildNotification(env)
	require.NoError(t, err)

	assert.Equal(t, "company", n.RecipientType)
	assert.Equal(t, int64(2), n.RecipientID)
	assert.Equal(t, events.TypeMessageSent, n.EventType)
	assert.Equal(t, int64(5), n.SubjectID)
	assert.Equal(t, "New message: Hello there", n.Body)
}

func TestBuildNotification_MessageSentPreviewCapped(t *testing.T) {
	w := testWorker()

	env := mustEnvelope(t, events.TypeMessageSent, events.MessageSent{
		ConversationID: 5,
		RecipientType:  "user",
		RecipientID:    1,
		Preview:        strings.Repeat("x", 300),
	})

	n, err := w.buildNotification(env)
	require.NoError(t, err)

	assert.Equal(t, "New message: "+strings.Repeat("x", 100)+"...", n.Body)
}

func TestBuildNotification_ApplicationReceived(t *testing.T) {
	w := testWorker()

	env := mustEnvelope(t, events.TypeApplicationReceived, events.ApplicationReceived{
		ApplicationID: 31,
		JobPostingID:  9,
		CompanyID:     2,
		UserID:        1,
	})

	n, err := w.buildNotification(env)
	require.NoError(t, err)

	// The company is notified of incoming applications
	assert.Equal(t, "company", n.RecipientType)
	assert.Equal(t, int64(2), n.RecipientID)
	assert.Equal(t, int64(31), n.SubjectID)
}

func TestBuildNotification_ApplicationStatusChanged(t *testing.T) {
	w := testWorker()

	env := mustEnvelope(t, events.TypeApplicationStatusChanged, events.ApplicationStatusChanged{
		ApplicationID: 31,
		UserID:        1,
		OldStatus:     "pending",
		NewStatus:     "interview",
	})

	n, err := w.buildNotification(env)
	require.NoError(t, err)

	// Status transitions go back to the applicant
	assert.Equal(t, "user", n.RecipientType)
	assert.Equal(t, int64(1), n.RecipientID)
	assert.Contains(t, n.Body, "pending")
	assert.Contains(t, n.Body, "interview")
}

func TestBuildNotification_UnknownEventType(t *testing.T) {
	w := testWorker()

	env := mustEnvelope(t, "invoice.exploded", map[string]int{"x": 1})

	_, err := w.buildNotification(env)
	require.ErrorIs(t, err, domain.ErrUnknownEventType)
}

func TestBuildNotification_MalformedPayload(t *testing.T) {
	w := testWorker()

	env := &events.Envelope{
		Type: events.TypeMessageSent,
		Data: json.RawMessage(`"not an object"`),
	}

	_, err := w.buildNotification(env)
	require.ErrorIs(t, err, domain.ErrMalformedEvent)
}

func TestProcessEvent_MalformedBody(t *testing.T) {
	w := testWorker()

	err := w.processEvent(context.Background(), &domain.EventMessage{
		Body:       []byte("{not json"),
		RoutingKey: events.TypeMessageSent,
	})

	require.ErrorIs(t, err, domain.ErrMalformedEvent)
}

func TestShouldRequeue(t *testing.T) {
	w := testWorker()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "malformed event", err: domain.ErrMalformedEvent, want: false},
		{
			name: "wrapped malformed event",
			err:  domain.NewRetryableError(domain.ErrMalformedEvent),
			want: false,
		},
		{name: "unknown event type", err: domain.ErrUnknownEventType, want: false},
		{
			name: "retryable storage failure",
			err:  domain.NewRetryableError(errors.New("connection reset")),
			want: true,
		},
		{name: "plain error", err: errors.New("boom"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.shouldRequeue(tt.err))
		})
	}
}

package events

import (
	"encoding/json"
	"time"
)

// Routing keys on the domain topic exchange. The worker binds its
// notification queue to all three.
const (
	TypeMessageSent              = "message.sent"
	TypeApplicationReceived      = "application.received"
	TypeApplicationStatusChanged = "application.status_changed"
)

// Envelope is the wire frame every domain event travels in. Type
// duplicates the routing key so a consumer can dispatch without
// trusting broker metadata.
type Envelope struct {
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Data       json.RawMessage `json:"data"`
}

// MessageSent is emitted after a message is persisted. Recipient fields
// identify the counterpart party of the conversation.
type MessageSent struct {
	ConversationID int64  `json:"conversation_id"`
	MessageID      int64  `json:"message_id"`
	SenderType     string `json:"sender_type"`
	RecipientType  string `json:"recipient_type"`
	RecipientID    int64  `json:"recipient_id"`
	Preview        string `json:"preview"`
}

// ApplicationReceived is emitted after a new application is persisted.
type ApplicationReceived struct {
	ApplicationID int64 `json:"application_id"`
	JobPostingID  int64 `json:"job_posting_id"`
	CompanyID     int64 `json:"company_id"`
	UserID        int64 `json:"user_id"`
}

// ApplicationStatusChanged is emitted after a status transition.
type ApplicationStatusChanged struct {
	ApplicationID int64  `json:"application_id"`
	UserID        int64  `json:"user_id"`
	OldStatus     string `json:"old_status"`
	NewStatus     string `json:"new_status"`
}

// Wrap marshals a payload into an Envelope ready for publishing.
func Wrap(eventType string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	})
}

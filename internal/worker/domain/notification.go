package domain

// Notification is the feed row the worker materialises from a domain
// event. RecipientID is a user id or a company id according to
// RecipientType.
type Notification struct {
	RecipientType string
	RecipientID   int64
	EventType     string
	SubjectID     int64
	Body          string
}

// EventMessage carries one broker delivery through the worker pool.
type EventMessage struct {
	Body        []byte
	RoutingKey  string
	DeliveryTag uint64
}

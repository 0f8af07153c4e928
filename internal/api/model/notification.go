package model

import "time"

// Notification is an in-app feed entry materialised by the worker
// service from domain events. RecipientID is a User id or a Company id
// according to RecipientType.
type Notification struct {
	ID            int64     `db:"id"`
	RecipientType string    `db:"recipient_type"`
	RecipientID   int64     `db:"recipient_id"`
	EventType     string    `db:"event_type"`
	SubjectID     int64     `db:"subject_id"`
	Body          string    `db:"body"`
	IsRead        bool      `db:"is_read"`
	CreatedAt     time.Time `db:"created_at"`
}

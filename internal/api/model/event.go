package model

import "time"

// RecruitingEvent is a company-hosted recruiting event.
type RecruitingEvent struct {
	ID                   int64      `db:"id"`
	CompanyID            int64      `db:"company_id"`
	Title                string     `db:"title"`
	Description          string     `db:"description"`
	EventType            string     `db:"event_type"`
	Location             *string    `db:"location"`
	IsVirtual            bool       `db:"is_virtual"`
	VirtualLink          *string    `db:"virtual_link"`
	StartDate            time.Time  `db:"start_date"`
	EndDate              time.Time  `db:"end_date"`
	MaxParticipants      *int       `db:"max_participants"`
	RegistrationDeadline *time.Time `db:"registration_deadline"`
	IsPublished          bool       `db:"is_published"`
	CreatedAt            time.Time  `db:"created_at"`
	UpdatedAt            time.Time  `db:"updated_at"`
}

// EventRegistration is a user's registration for a recruiting event.
// The (event_id, user_id) pair is unique at the storage layer.
type EventRegistration struct {
	ID               int64     `db:"id"`
	EventID          int64     `db:"event_id"`
	UserID           int64     `db:"user_id"`
	Status           string    `db:"status"`
	RegistrationDate time.Time `db:"registration_date"`
	Notes            *string   `db:"notes"`
}

// RegistrationListItem is a registration plus its attendee summary.
type RegistrationListItem struct {
	EventRegistration
	User *UserSummary `db:"user"`
}

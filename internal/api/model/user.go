package model

import "time"

// User is an applicant account. Credential storage lives with the
// identity provider; this row only carries directory data.
type User struct {
	ID             int64     `db:"id"`
	Username       string    `db:"username"`
	Email          string    `db:"email"`
	FirstName      *string   `db:"first_name"`
	LastName       *string   `db:"last_name"`
	Bio            *string   `db:"bio"`
	ProfilePicture *string   `db:"profile_picture"`
	CreatedAt      time.Time `db:"created_at"`
}

// UserSummary is the shallow projection embedded in enriched payloads.
type UserSummary struct {
	ID             int64   `db:"id" json:"id"`
	FirstName      *string `db:"first_name" json:"first_name"`
	LastName       *string `db:"last_name" json:"last_name"`
	Email          string  `db:"email" json:"email"`
	ProfilePicture *string `db:"profile_picture" json:"profile_picture"`
}

package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUserNotFound is returned when a user id does not resolve
	ErrUserNotFound = errors.New("user not found")

	// ErrCompanyNotFound is returned when a company id or slug does not resolve
	ErrCompanyNotFound = errors.New("company not found")

	// ErrCompanyUserNotFound is returned when a company user id does not resolve
	ErrCompanyUserNotFound = errors.New("company user not found")

	// ErrJobPostingNotFound is returned when a job posting id or slug does not resolve
	ErrJobPostingNotFound = errors.New("job posting not found")

	// ErrApplicationNotFound is returned when an application id does not resolve
	ErrApplicationNotFound = errors.New("application not found")

	// ErrConversationNotFound is returned when a conversation id does not resolve
	ErrConversationNotFound = errors.New("conversation not found")

	// ErrMessageNotFound is returned when a message id does not resolve
	ErrMessageNotFound = errors.New("message not found")

	// ErrEventNotFound is returned when a recruiting event id does not resolve
	ErrEventNotFound = errors.New("recruiting event not found")

	// ErrRegistrationNotFound is returned when an event registration id does not resolve
	ErrRegistrationNotFound = errors.New("event registration not found")

	// ErrInvoiceNotFound is returned when an invoice id does not resolve
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrReviewNotFound is returned when a company review id does not resolve
	ErrReviewNotFound = errors.New("company review not found")

	// ErrMediaNotFound is returned when a company media id does not resolve
	ErrMediaNotFound = errors.New("company media not found")

	// ErrNotificationNotFound is returned when a notification id does not resolve
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrInvalidParty is returned for a sender/reader/archiver type outside {user, company}
	ErrInvalidParty = errors.New("invalid party type, valid types are: user, company")

	// ErrSenderNotParticipant is returned when a resolved sender does not
	// belong to the conversation it is posting into
	ErrSenderNotParticipant = errors.New("sender is not a participant of this conversation")

	// ErrEmailTaken is returned when a unique email column rejects an insert or update
	ErrEmailTaken = errors.New("email already in use")

	// ErrUsernameTaken is returned when a username collides with an existing user
	ErrUsernameTaken = errors.New("username already in use")

	// ErrDuplicateApplication is returned when a user applies twice to the same posting
	ErrDuplicateApplication = errors.New("an application for this job posting already exists")

	// ErrDuplicateRegistration is returned when a user registers twice for the same event
	ErrDuplicateRegistration = errors.New("a registration for this event already exists")

	// ErrEventFull is returned when an event has reached max_participants
	ErrEventFull = errors.New("event has reached its maximum number of participants")

	// ErrLastAdmin is returned when deleting the only admin of a company
	ErrLastAdmin = errors.New("cannot delete the last admin of a company")

	// ErrInvoiceNotPending is returned when paying or cancelling a non-pending invoice
	ErrInvoiceNotPending = errors.New("invoice is not in pending status")

	// ErrDuplicateInvoiceNumber is returned when a generated invoice
	// number collides with an existing one
	ErrDuplicateInvoiceNumber = errors.New("invoice number already exists")
)

// ConversationExistsError reports the duplicate-pair conflict on
// conversation creation and carries the id of the existing row so the
// handler can surface it in the error payload.
type ConversationExistsError struct {
	ConversationID int64
}

func (e *ConversationExistsError) Error() string {
	return fmt.Sprintf("a conversation between this user and company already exists (id %d)", e.ConversationID)
}

// ValidationError marks a request that fails field-level validation.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

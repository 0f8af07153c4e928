package domain

// Application status constants
const (
	ApplicationStatusPending   = "pending"
	ApplicationStatusReviewed  = "reviewed"
	ApplicationStatusInterview = "interview"
	ApplicationStatusRejected  = "rejected"
	ApplicationStatusOffered   = "offered"
	ApplicationStatusHired     = "hired"
)

// ValidApplicationStatuses enumerates all accepted application statuses
var ValidApplicationStatuses = []string{
	ApplicationStatusPending,
	ApplicationStatusReviewed,
	ApplicationStatusInterview,
	ApplicationStatusRejected,
	ApplicationStatusOffered,
	ApplicationStatusHired,
}

// Application activity types
const (
	ActivityStatusChange       = "status_change"
	ActivityNote               = "note"
	ActivityInterviewScheduled = "interview_scheduled"
	ActivityFeedback           = "feedback"
)

// ValidActivityTypes enumerates all accepted application activity types
var ValidActivityTypes = []string{
	ActivityStatusChange,
	ActivityNote,
	ActivityInterviewScheduled,
	ActivityFeedback,
}

// Company user roles
const (
	RoleAdmin     = "admin"
	RoleRecruiter = "recruiter"
	RoleViewer    = "viewer"
)

// ValidCompanyUserRoles enumerates all accepted company user roles
var ValidCompanyUserRoles = []string{RoleAdmin, RoleRecruiter, RoleViewer}

// Recruiting event types
const (
	EventCareerDay    = "career_day"
	EventOpenDay      = "open_day"
	EventWebinar      = "webinar"
	EventInterviewDay = "interview_day"
)

// ValidEventTypes enumerates all accepted recruiting event types
var ValidEventTypes = []string{EventCareerDay, EventOpenDay, EventWebinar, EventInterviewDay}

// Event registration statuses
const (
	RegistrationRegistered = "registered"
	RegistrationConfirmed  = "confirmed"
	RegistrationAttended   = "attended"
	RegistrationCancelled  = "cancelled"
)

// ValidRegistrationStatuses enumerates all accepted registration statuses
var ValidRegistrationStatuses = []string{
	RegistrationRegistered,
	RegistrationConfirmed,
	RegistrationAttended,
	RegistrationCancelled,
}

// Invoice statuses
const (
	InvoicePending   = "pending"
	InvoicePaid      = "paid"
	InvoiceCancelled = "cancelled"
)

// Media types
const (
	MediaImage    = "image"
	MediaVideo    = "video"
	MediaDocument = "document"
)

// ValidMediaTypes enumerates all accepted company media types
var ValidMediaTypes = []string{MediaImage, MediaVideo, MediaDocument}

// ContainsString reports whether s is one of the allowed values.
func ContainsString(allowed []string, s string) bool {
	for _, a := range allowed {
		if a == s {
			return true
		}
	}
	return false
}

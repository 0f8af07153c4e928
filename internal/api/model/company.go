package model

import "time"

// Company is an employer account.
type Company struct {
	ID              int64     `db:"id"`
	Name            string    `db:"name"`
	Slug            string    `db:"slug"`
	Email           string    `db:"email"`
	Logo            *string   `db:"logo"`
	Website         *string   `db:"website"`
	Industry        *string   `db:"industry"`
	Size            *string   `db:"size"`
	FoundedYear     *int      `db:"founded_year"`
	Description     *string   `db:"description"`
	Mission         *string   `db:"mission"`
	Culture         *string   `db:"culture"`
	Benefits        *string   `db:"benefits"`
	Headquarters    *string   `db:"headquarters"`
	Locations       *string   `db:"locations"` // JSON array
	SocialLinkedin  *string   `db:"social_linkedin"`
	SocialTwitter   *string   `db:"social_twitter"`
	SocialFacebook  *string   `db:"social_facebook"`
	SocialInstagram *string   `db:"social_instagram"`
	IsVerified      bool      `db:"is_verified"`
	IsFeatured      bool      `db:"is_featured"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// CompanySummary is the shallow projection embedded in enriched payloads.
type CompanySummary struct {
	ID   int64   `db:"id" json:"id"`
	Name string  `db:"name" json:"name"`
	Logo *string `db:"logo" json:"logo"`
}

// CompanyUserSummary is the shallow projection embedded in activity payloads.
type CompanyUserSummary struct {
	ID        int64  `db:"id" json:"id"`
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
	Role      string `db:"role" json:"role"`
}

// CompanyUser is a member of a company account (recruiter seat).
type CompanyUser struct {
	ID             int64     `db:"id"`
	CompanyID      int64     `db:"company_id"`
	Email          string    `db:"email"`
	FirstName      string    `db:"first_name"`
	LastName       string    `db:"last_name"`
	Role           string    `db:"role"`
	Phone          *string   `db:"phone"`
	ProfilePicture *string   `db:"profile_picture"`
	IsActive       bool      `db:"is_active"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// CompanyReview is a user-submitted review of a company, hidden until approved.
type CompanyReview struct {
	ID               int64     `db:"id"`
	CompanyID        int64     `db:"company_id"`
	UserID           int64     `db:"user_id"`
	Title            string    `db:"title"`
	Content          string    `db:"content"`
	Rating           int       `db:"rating"`
	Pros             *string   `db:"pros"`
	Cons             *string   `db:"cons"`
	EmploymentStatus *string   `db:"employment_status"`
	JobTitle         *string   `db:"job_title"`
	IsVerified       bool      `db:"is_verified"`
	IsAnonymous      bool      `db:"is_anonymous"`
	IsApproved       bool      `db:"is_approved"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

// CompanyMedia is a gallery item on a company profile. The URL is an
// opaque reference; upload handling is external.
type CompanyMedia struct {
	ID          int64     `db:"id"`
	CompanyID   int64     `db:"company_id"`
	MediaType   string    `db:"media_type"`
	Title       *string   `db:"title"`
	Description *string   `db:"description"`
	URL         string    `db:"url"`
	IsFeatured  bool      `db:"is_featured"`
	Position    int       `db:"position"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// CompanyStats are derived aggregates computed on read, never stored.
type CompanyStats struct {
	JobPostingsCount             int     `db:"job_postings_count" json:"job_postings_count"`
	ActiveJobPostingsCount       int     `db:"active_job_postings_count" json:"active_job_postings_count"`
	TotalApplicationsCount       int     `db:"total_applications_count" json:"total_applications_count"`
	TotalViewsCount              int     `db:"total_views_count" json:"total_views_count"`
	AverageApplicationsPerPosting float64 `db:"average_applications_per_posting" json:"average_applications_per_posting"`
}

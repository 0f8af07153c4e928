package model

import "time"

// JobPosting is an opening published by a company. The two counters are
// maintained with atomic in-database increments.
type JobPosting struct {
	ID                      int64      `db:"id"`
	CompanyID               int64      `db:"company_id"`
	Title                   string     `db:"title"`
	Slug                    string     `db:"slug"`
	Description             string     `db:"description"`
	Requirements            string     `db:"requirements"`
	Responsibilities        string     `db:"responsibilities"`
	Location                string     `db:"location"`
	IsRemote                bool       `db:"is_remote"`
	IsHybrid                bool       `db:"is_hybrid"`
	JobType                 string     `db:"job_type"`
	ExperienceLevel         string     `db:"experience_level"`
	SalaryMin               *int       `db:"salary_min"`
	SalaryMax               *int       `db:"salary_max"`
	SalaryCurrency          *string    `db:"salary_currency"`
	SalaryPeriod            *string    `db:"salary_period"`
	Benefits                *string    `db:"benefits"`
	Skills                  *string    `db:"skills"` // JSON array
	ApplicationURL          *string    `db:"application_url"`
	ApplicationEmail        *string    `db:"application_email"`
	ApplicationInstructions *string    `db:"application_instructions"`
	IsPublished             bool       `db:"is_published"`
	IsFeatured              bool       `db:"is_featured"`
	ViewsCount              int        `db:"views_count"`
	ApplicationsCount       int        `db:"applications_count"`
	PublishDate             *time.Time `db:"publish_date"`
	ExpiryDate              *time.Time `db:"expiry_date"`
	CreatedAt               time.Time  `db:"created_at"`
	UpdatedAt               time.Time  `db:"updated_at"`
}

// JobPostingSummary is the shallow projection embedded in application payloads.
type JobPostingSummary struct {
	ID        int64  `db:"id" json:"id"`
	Title     string `db:"title" json:"title"`
	CompanyID int64  `db:"company_id" json:"company_id"`
	Location  string `db:"location" json:"location"`
	IsRemote  bool   `db:"is_remote" json:"is_remote"`
	JobType   string `db:"job_type" json:"job_type"`
}

// JobPostingStats are derived on read from the posting row.
type JobPostingStats struct {
	ViewsCount         int     `json:"views_count"`
	ApplicationsCount  int     `json:"applications_count"`
	ConversionRate     float64 `json:"conversion_rate"`
	DaysActive         int     `json:"days_active"`
	ApplicationsPerDay float64 `json:"applications_per_day"`
}

// Application is a user's candidacy for a posting.
type Application struct {
	ID           int64     `db:"id"`
	JobPostingID int64     `db:"job_posting_id"`
	UserID       int64     `db:"user_id"`
	CoverLetter  *string   `db:"cover_letter"`
	ResumeURL    *string   `db:"resume_url"`
	Status       string    `db:"status"`
	CompanyNotes *string   `db:"company_notes"`
	Rating       *int      `db:"rating"`
	IsArchived   bool      `db:"is_archived"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// ApplicationListItem is one enriched row of an application listing:
// the application plus a shallow summary of its applicant and/or the
// posting it targets, depending on the listing side.
type ApplicationListItem struct {
	Application
	User       *UserSummary       `db:"user"`
	JobPosting *JobPostingSummary `db:"job_posting"`
}

// ApplicationActivity is an audit trail entry on an application.
// CompanyUserID is nil for system-generated entries.
type ApplicationActivity struct {
	ID            int64     `db:"id"`
	ApplicationID int64     `db:"application_id"`
	CompanyUserID *int64    `db:"company_user_id"`
	ActivityType  string    `db:"activity_type"`
	Description   string    `db:"description"`
	Metadata      *string   `db:"metadata"` // JSON
	CreatedAt     time.Time `db:"created_at"`
}

// ActivityListItem is an activity plus the summary of the company user
// who recorded it, when one did.
type ActivityListItem struct {
	ApplicationActivity
	CompanyUser *CompanyUserSummary `db:"company_user"`
}

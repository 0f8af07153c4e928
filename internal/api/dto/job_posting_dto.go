package dto

import "github.com/talenthub/jobboard-be/internal/api/model"

type CreateJobPostingRequest struct {
	Title                   string  `json:"title" binding:"required"`
	Description             string  `json:"description" binding:"required"`
	Requirements            string  `json:"requirements"`
	Responsibilities        string  `json:"responsibilities"`
	Location                string  `json:"location" binding:"required"`
	IsRemote                bool    `json:"is_remote"`
	IsHybrid                bool    `json:"is_hybrid"`
	JobType                 string  `json:"job_type" binding:"required"`
	ExperienceLevel         string  `json:"experience_level" binding:"required"`
	SalaryMin               *int    `json:"salary_min"`
	SalaryMax               *int    `json:"salary_max"`
	SalaryCurrency          *string `json:"salary_currency"`
	SalaryPeriod            *string `json:"salary_period"`
	Benefits                *string `json:"benefits"`
	Skills                  *string `json:"skills"`
	ApplicationURL          *string `json:"application_url"`
	ApplicationEmail        *string `json:"application_email"`
	ApplicationInstructions *string `json:"application_instructions"`
	ExpiryDate              *string `json:"expiry_date"`
}

type UpdateJobPostingRequest struct {
	Title                   *string `json:"title"`
	Description             *string `json:"description"`
	Requirements            *string `json:"requirements"`
	Responsibilities        *string `json:"responsibilities"`
	Location                *string `json:"location"`
	IsRemote                *bool   `json:"is_remote"`
	IsHybrid                *bool   `json:"is_hybrid"`
	JobType                 *string `json:"job_type"`
	ExperienceLevel         *string `json:"experience_level"`
	SalaryMin               *int    `json:"salary_min"`
	SalaryMax               *int    `json:"salary_max"`
	SalaryCurrency          *string `json:"salary_currency"`
	SalaryPeriod            *string `json:"salary_period"`
	Benefits                *string `json:"benefits"`
	Skills                  *string `json:"skills"`
	ApplicationURL          *string `json:"application_url"`
	ApplicationEmail        *string `json:"application_email"`
	ApplicationInstructions *string `json:"application_instructions"`
	IsFeatured              *bool   `json:"is_featured"`
	ExpiryDate              *string `json:"expiry_date"`
}

type ListJobPostingsRequest struct {
	CompanyID       int64  `form:"company_id"`
	Location        string `form:"location"`
	JobType         string `form:"job_type"`
	ExperienceLevel string `form:"experience_level"`
	IsRemote        *bool  `form:"is_remote"`
	IsPublished     *bool  `form:"is_published"`
	IsFeatured      *bool  `form:"is_featured"`
	Page            int    `form:"page"`
	PerPage         int    `form:"per_page"`
}

type JobPostingResponse struct {
	ID                      int64   `json:"id"`
	CompanyID               int64   `json:"company_id"`
	Title                   string  `json:"title"`
	Slug                    string  `json:"slug"`
	Description             string  `json:"description"`
	Requirements            string  `json:"requirements"`
	Responsibilities        string  `json:"responsibilities"`
	Location                string  `json:"location"`
	IsRemote                bool    `json:"is_remote"`
	IsHybrid                bool    `json:"is_hybrid"`
	JobType                 string  `json:"job_type"`
	ExperienceLevel         string  `json:"experience_level"`
	SalaryMin               *int    `json:"salary_min"`
	SalaryMax               *int    `json:"salary_max"`
	SalaryCurrency          *string `json:"salary_currency"`
	SalaryPeriod            *string `json:"salary_period"`
	Benefits                *string `json:"benefits"`
	Skills                  *string `json:"skills"`
	ApplicationURL          *string `json:"application_url"`
	ApplicationEmail        *string `json:"application_email"`
	ApplicationInstructions *string `json:"application_instructions"`
	IsPublished             bool    `json:"is_published"`
	IsFeatured              bool    `json:"is_featured"`
	ViewsCount              int     `json:"views_count"`
	ApplicationsCount       int     `json:"applications_count"`
	PublishDate             *string `json:"publish_date"`
	ExpiryDate              *string `json:"expiry_date"`
	CreatedAt               string  `json:"created_at"`
	UpdatedAt               string  `json:"updated_at"`
}

func FromJobPosting(p *model.JobPosting) JobPostingResponse {
	return JobPostingResponse{
		ID:                      p.ID,
		CompanyID:               p.CompanyID,
		Title:                   p.Title,
		Slug:                    p.Slug,
		Description:             p.Description,
		Requirements:            p.Requirements,
		Responsibilities:        p.Responsibilities,
		Location:                p.Location,
		IsRemote:                p.IsRemote,
		IsHybrid:                p.IsHybrid,
		JobType:                 p.JobType,
		ExperienceLevel:         p.ExperienceLevel,
		SalaryMin:               p.SalaryMin,
		SalaryMax:               p.SalaryMax,
		SalaryCurrency:          p.SalaryCurrency,
		SalaryPeriod:            p.SalaryPeriod,
		Benefits:                p.Benefits,
		Skills:                  p.Skills,
		ApplicationURL:          p.ApplicationURL,
		ApplicationEmail:        p.ApplicationEmail,
		ApplicationInstructions: p.ApplicationInstructions,
		IsPublished:             p.IsPublished,
		IsFeatured:              p.IsFeatured,
		ViewsCount:              p.ViewsCount,
		ApplicationsCount:       p.ApplicationsCount,
		PublishDate:             formatTimePtr(p.PublishDate),
		ExpiryDate:              formatTimePtr(p.ExpiryDate),
		CreatedAt:               formatTime(p.CreatedAt),
		UpdatedAt:               formatTime(p.UpdatedAt),
	}
}

func FromJobPostings(postings []model.JobPosting) []JobPostingResponse {
	out := make([]JobPostingResponse, 0, len(postings))
	for i := range postings {
		out = append(out, FromJobPosting(&postings[i]))
	}
	return out
}

type JobPostingStatsResponse struct {
	ViewsCount         int     `json:"views_count"`
	ApplicationsCount  int     `json:"applications_count"`
	ConversionRate     float64 `json:"conversion_rate"`
	DaysActive         int     `json:"days_active"`
	ApplicationsPerDay float64 `json:"applications_per_day"`
}

func FromJobPostingStats(s *model.JobPostingStats) JobPostingStatsResponse {
	return JobPostingStatsResponse{
		ViewsCount:         s.ViewsCount,
		ApplicationsCount:  s.ApplicationsCount,
		ConversionRate:     s.ConversionRate,
		DaysActive:         s.DaysActive,
		ApplicationsPerDay: s.ApplicationsPerDay,
	}
}

package dto

import "github.com/talenthub/jobboard-be/internal/api/model"

type CreateApplicationRequest struct {
	UserID      int64   `json:"user_id" binding:"required"`
	CoverLetter *string `json:"cover_letter"`
	ResumeURL   *string `json:"resume_url"`
}

type UpdateApplicationStatusRequest struct {
	Status        string  `json:"status" binding:"required"`
	CompanyUserID *int64  `json:"company_user_id"`
	Notes         *string `json:"notes"`
}

type CreateActivityRequest struct {
	CompanyUserID *int64  `json:"company_user_id"`
	ActivityType  string  `json:"activity_type" binding:"required"`
	Description   string  `json:"description" binding:"required"`
	Metadata      *string `json:"metadata"`
}

type ListApplicationsRequest struct {
	JobPostingID int64  `form:"job_posting_id"`
	UserID       int64  `form:"user_id"`
	Status       string `form:"status"`
	IsArchived   *bool  `form:"is_archived"`
	Page         int    `form:"page"`
	PerPage      int    `form:"per_page"`
}

type ApplicationResponse struct {
	ID           int64                     `json:"id"`
	JobPostingID int64                     `json:"job_posting_id"`
	UserID       int64                     `json:"user_id"`
	CoverLetter  *string                   `json:"cover_letter"`
	ResumeURL    *string                   `json:"resume_url"`
	Status       string                    `json:"status"`
	CompanyNotes *string                   `json:"company_notes"`
	Rating       *int                      `json:"rating"`
	IsArchived   bool                      `json:"is_archived"`
	CreatedAt    string                    `json:"created_at"`
	UpdatedAt    string                    `json:"updated_at"`
	User         *model.UserSummary        `json:"user,omitempty"`
	JobPosting   *model.JobPostingSummary  `json:"job_posting,omitempty"`
}

func FromApplication(a *model.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:           a.ID,
		JobPostingID: a.JobPostingID,
		UserID:       a.UserID,
		CoverLetter:  a.CoverLetter,
		ResumeURL:    a.ResumeURL,
		Status:       a.Status,
		CompanyNotes: a.CompanyNotes,
		Rating:       a.Rating,
		IsArchived:   a.IsArchived,
		CreatedAt:    formatTime(a.CreatedAt),
		UpdatedAt:    formatTime(a.UpdatedAt),
	}
}

func FromApplicationListItem(item *model.ApplicationListItem) ApplicationResponse {
	resp := FromApplication(&item.Application)
	resp.User = item.User
	resp.JobPosting = item.JobPosting
	return resp
}

func FromApplicationListItems(items []model.ApplicationListItem) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(items))
	for i := range items {
		out = append(out, FromApplicationListItem(&items[i]))
	}
	return out
}

func FromApplications(apps []model.Application) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(apps))
	for i := range apps {
		out = append(out, FromApplication(&apps[i]))
	}
	return out
}

type ActivityResponse struct {
	ID            int64                     `json:"id"`
	ApplicationID int64                     `json:"application_id"`
	CompanyUserID *int64                    `json:"company_user_id"`
	ActivityType  string                    `json:"activity_type"`
	Description   string                    `json:"description"`
	Metadata      *string                   `json:"metadata"`
	CreatedAt     string                    `json:"created_at"`
	CompanyUser   *model.CompanyUserSummary `json:"company_user,omitempty"`
}

func FromActivityListItem(item *model.ActivityListItem) ActivityResponse {
	return ActivityResponse{
		ID:            item.ID,
		ApplicationID: item.ApplicationID,
		CompanyUserID: item.CompanyUserID,
		ActivityType:  item.ActivityType,
		Description:   item.Description,
		Metadata:      item.Metadata,
		CreatedAt:     formatTime(item.CreatedAt),
		CompanyUser:   item.CompanyUser,
	}
}

func FromActivityListItems(items []model.ActivityListItem) []ActivityResponse {
	out := make([]ActivityResponse, 0, len(items))
	for i := range items {
		out = append(out, FromActivityListItem(&items[i]))
	}
	return out
}

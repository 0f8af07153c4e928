package dto

import "github.com/talenthub/jobboard-be/internal/api/model"

type CreateReviewRequest struct {
	UserID           int64   `json:"user_id" binding:"required"`
	Title            string  `json:"title" binding:"required"`
	Content          string  `json:"content" binding:"required"`
	Rating           int     `json:"rating" binding:"required"`
	Pros             *string `json:"pros"`
	Cons             *string `json:"cons"`
	EmploymentStatus *string `json:"employment_status"`
	JobTitle         *string `json:"job_title"`
	IsAnonymous      bool    `json:"is_anonymous"`
}

type ListReviewsRequest struct {
	IsApproved *bool `form:"is_approved"`
	Page       int   `form:"page"`
	PerPage    int   `form:"per_page"`
}

// ReviewResponse hides the author id of anonymous reviews.
type ReviewResponse struct {
	ID               int64   `json:"id"`
	CompanyID        int64   `json:"company_id"`
	UserID           *int64  `json:"user_id"`
	Title            string  `json:"title"`
	Content          string  `json:"content"`
	Rating           int     `json:"rating"`
	Pros             *string `json:"pros"`
	Cons             *string `json:"cons"`
	EmploymentStatus *string `json:"employment_status"`
	JobTitle         *string `json:"job_title"`
	IsVerified       bool    `json:"is_verified"`
	IsAnonymous      bool    `json:"is_anonymous"`
	IsApproved       bool    `json:"is_approved"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
}

func FromReview(r *model.CompanyReview) ReviewResponse {
	resp := ReviewResponse{
		ID:               r.ID,
		CompanyID:        r.CompanyID,
		Title:            r.Title,
		Content:          r.Content,
		Rating:           r.Rating,
		Pros:             r.Pros,
		Cons:             r.Cons,
		EmploymentStatus: r.EmploymentStatus,
		JobTitle:         r.JobTitle,
		IsVerified:       r.IsVerified,
		IsAnonymous:      r.IsAnonymous,
		IsApproved:       r.IsApproved,
		CreatedAt:        formatTime(r.CreatedAt),
		UpdatedAt:        formatTime(r.UpdatedAt),
	}
	if !r.IsAnonymous {
		userID := r.UserID
		resp.UserID = &userID
	}
	return resp
}

func FromReviews(reviews []model.CompanyReview) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		out = append(out, FromReview(&reviews[i]))
	}
	return out
}

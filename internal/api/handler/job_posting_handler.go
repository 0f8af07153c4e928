package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/talenthub/jobboard-be/internal/api/domain"
	"github.com/talenthub/jobboard-be/internal/api/dto"
	"github.com/talenthub/jobboard-be/internal/api/model"
	"github.com/talenthub/jobboard-be/internal/api/storage"
)

type JobPostingStore interface {
	GetCompany(ctx context.Context, id int64) (*model.Company, error)
	GetJobPosting(ctx context.Context, id int64) (*model.JobPosting, error)
	ViewJobPosting(ctx context.Context, id int64) (*model.JobPosting, error)
	ViewJobPostingBySlug(ctx context.Context, slug string) (*model.JobPosting, error)
	ListJobPostings(ctx context.Context, filter storage.JobPostingFilter) ([]model.JobPosting, int, error)
	CreateJobPosting(ctx context.Context, posting *model.JobPosting) error
	UpdateJobPosting(ctx context.Context, posting *model.JobPosting) error
	DeleteJobPosting(ctx context.Context, id int64) error
}

type JobPostingHandler struct {
	store  JobPostingStore
	logger *slog.Logger
}

func NewJobPostingHandler(store JobPostingStore, logger *slog.Logger) *JobPostingHandler {
	return &JobPostingHandler{
		store:  store,
		logger: logger.With(slog.String("handler", "job-posting")),
	}
}

// ListJobPostings handles GET /job-postings
func (h *JobPostingHandler) ListJobPostings(c *gin.Context) {
	var req dto.ListJobPostingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}
	page, perPage := normalizePage(req.Page, req.PerPage, defaultPerPage)

	postings, total, err := h.store.ListJobPostings(c.Request.Context(), storage.JobPostingFilter{
		CompanyID:       req.CompanyID,
		Location:        req.Location,
		JobType:         req.JobType,
		ExperienceLevel: req.ExperienceLevel,
		IsRemote:        req.IsRemote,
		IsPublished:     req.IsPublished,
		IsFeatured:      req.IsFeatured,
		Page:            page,
		PerPage:         perPage,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListResponse(dto.FromJobPostings(postings), total, page, perPage))
}

// ListCompanyJobPostings handles GET /companies/:id/job-postings
func (h *JobPostingHandler) ListCompanyJobPostings(c *gin.Context) {
	companyID, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if _, err := h.store.GetCompany(ctx, companyID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	var req dto.ListJobPostingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}
	page, perPage := normalizePage(req.Page, req.PerPage, defaultPerPage)

	postings, total, err := h.store.ListJobPostings(ctx, storage.JobPostingFilter{
		CompanyID:   companyID,
		IsPublished: req.IsPublished,
		Page:        page,
		PerPage:     perPage,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListResponse(dto.FromJobPostings(postings), total, page, perPage))
}

// GetJobPosting handles GET /job-postings/:id. Every fetch bumps the
// view counter; repeated fetches by the same viewer are counted too.
func (h *JobPostingHandler) GetJobPosting(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	posting, err := h.store.ViewJobPosting(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromJobPosting(posting))
}

// GetJobPostingBySlug handles GET /job-postings/slug/:slug
func (h *JobPostingHandler) GetJobPostingBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slug is required"})
		return
	}

	posting, err := h.store.ViewJobPostingBySlug(c.Request.Context(), slug)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromJobPosting(posting))
}

// CreateJobPosting handles POST /companies/:id/job-postings. Postings
// start unpublished; the publish endpoint flips them live.
func (h *JobPostingHandler) CreateJobPosting(c *gin.Context) {
	companyID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateJobPostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	expiry, err := parseDatePtr(req.ExpiryDate)
	if err != nil {
		respondError(c, h.logger, domain.NewValidationError("expiry_date must be RFC 3339"))
		return
	}

	ctx := c.Request.Context()
	if _, err := h.store.GetCompany(ctx, companyID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	posting := &model.JobPosting{
		CompanyID:               companyID,
		Title:                   req.Title,
		Slug:                    domain.GenerateSlug(req.Title),
		Description:             req.Description,
		Requirements:            req.Requirements,
		Responsibilities:        req.Responsibilities,
		Location:                req.Location,
		IsRemote:                req.IsRemote,
		IsHybrid:                req.IsHybrid,
		JobType:                 req.JobType,
		ExperienceLevel:         req.ExperienceLevel,
		SalaryMin:               req.SalaryMin,
		SalaryMax:               req.SalaryMax,
		SalaryCurrency:          req.SalaryCurrency,
		SalaryPeriod:            req.SalaryPeriod,
		Benefits:                req.Benefits,
		Skills:                  req.Skills,
		ApplicationURL:          req.ApplicationURL,
		ApplicationEmail:        req.ApplicationEmail,
		ApplicationInstructions: req.ApplicationInstructions,
		ExpiryDate:              expiry,
	}
	if err := h.store.CreateJobPosting(ctx, posting); err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.Info("Job posting created",
		slog.Int64("job_posting_id", posting.ID),
		slog.Int64("company_id", companyID),
	)
	c.JSON(http.StatusCreated, dto.FromJobPosting(posting))
}

// UpdateJobPosting handles PUT /job-postings/:id with partial
// semantics.
func (h *JobPostingHandler) UpdateJobPosting(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateJobPostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx := c.Request.Context()
	posting, err := h.store.GetJobPosting(ctx, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := applyJobPostingUpdate(posting, &req); err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := h.store.UpdateJobPosting(ctx, posting); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromJobPosting(posting))
}

func applyJobPostingUpdate(posting *model.JobPosting, req *dto.UpdateJobPostingRequest) error {
	if req.Title != nil {
		posting.Title = *req.Title
	}
	if req.Description != nil {
		posting.Description = *req.Description
	}
	if req.Requirements != nil {
		posting.Requirements = *req.Requirements
	}
	if req.Responsibilities != nil {
		posting.Responsibilities = *req.Responsibilities
	}
	if req.Location != nil {
		posting.Location = *req.Location
	}
	if req.IsRemote != nil {
		posting.IsRemote = *req.IsRemote
	}
	if req.IsHybrid != nil {
		posting.IsHybrid = *req.IsHybrid
	}
	if req.JobType != nil {
		posting.JobType = *req.JobType
	}
	if req.ExperienceLevel != nil {
		posting.ExperienceLevel = *req.ExperienceLevel
	}
	if req.SalaryMin != nil {
		posting.SalaryMin = req.SalaryMin
	}
	if req.SalaryMax != nil {
		posting.SalaryMax = req.SalaryMax
	}
	if req.SalaryCurrency != nil {
		posting.SalaryCurrency = req.SalaryCurrency
	}
	if req.SalaryPeriod != nil {
		posting.SalaryPeriod = req.SalaryPeriod
	}
	if req.Benefits != nil {
		posting.Benefits = req.Benefits
	}
	if req.Skills != nil {
		posting.Skills = req.Skills
	}
	if req.ApplicationURL != nil {
		posting.ApplicationURL = req.ApplicationURL
	}
	if req.ApplicationEmail != nil {
		posting.ApplicationEmail = req.ApplicationEmail
	}
	if req.ApplicationInstructions != nil {
		posting.ApplicationInstructions = req.ApplicationInstructions
	}
	if req.IsFeatured != nil {
		posting.IsFeatured = *req.IsFeatured
	}
	if req.ExpiryDate != nil {
		expiry, err := parseDatePtr(req.ExpiryDate)
		if err != nil {
			return domain.NewValidationError("expiry_date must be RFC 3339")
		}
		posting.ExpiryDate = expiry
	}
	return nil
}

// PublishJobPosting handles PUT /job-postings/:id/publish. Publishing
// requires the descriptive fields and an expiry date to be in place.
func (h *JobPostingHandler) PublishJobPosting(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	posting, err := h.store.GetJobPosting(ctx, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if posting.Title == "" || posting.Description == "" || posting.Location == "" ||
		posting.JobType == "" || posting.ExperienceLevel == "" {
		respondError(c, h.logger, domain.NewValidationError(
			"cannot publish: title, description, location, job_type and experience_level are required"))
		return
	}
	if posting.ExpiryDate == nil {
		respondError(c, h.logger, domain.NewValidationError("cannot publish: expiry_date is required"))
		return
	}

	now := time.Now().UTC()
	posting.IsPublished = true
	if posting.PublishDate == nil {
		posting.PublishDate = &now
	}
	if err := h.store.UpdateJobPosting(ctx, posting); err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.Info("Job posting published", slog.Int64("job_posting_id", id))
	c.JSON(http.StatusOK, dto.FromJobPosting(posting))
}

// UnpublishJobPosting handles PUT /job-postings/:id/unpublish
func (h *JobPostingHandler) UnpublishJobPosting(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	posting, err := h.store.GetJobPosting(ctx, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	posting.IsPublished = false
	if err := h.store.UpdateJobPosting(ctx, posting); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromJobPosting(posting))
}

// DeleteJobPosting handles DELETE /job-postings/:id
func (h *JobPostingHandler) DeleteJobPosting(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.store.DeleteJobPosting(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.Info("Job posting deleted", slog.Int64("job_posting_id", id))
	c.JSON(http.StatusOK, gin.H{"message": "Job posting deleted"})
}

// GetJobPostingStats handles GET /job-postings/:id/stats. Aggregates
// are derived from the posting row on read.
func (h *JobPostingHandler) GetJobPostingStats(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	posting, err := h.store.GetJobPosting(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	stats := computeJobPostingStats(posting, time.Now().UTC())
	c.JSON(http.StatusOK, dto.FromJobPostingStats(stats))
}

func computeJobPostingStats(posting *model.JobPosting, now time.Time) *model.JobPostingStats {
	stats := &model.JobPostingStats{
		ViewsCount:        posting.ViewsCount,
		ApplicationsCount: posting.ApplicationsCount,
	}
	if posting.ViewsCount > 0 {
		stats.ConversionRate = float64(posting.ApplicationsCount) / float64(posting.ViewsCount)
	}
	if posting.PublishDate != nil {
		days := int(now.Sub(*posting.PublishDate).Hours() / 24)
		if days < 1 {
			days = 1
		}
		stats.DaysActive = days
		stats.ApplicationsPerDay = float64(posting.ApplicationsCount) / float64(days)
	}
	return stats
}

func parseDatePtr(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

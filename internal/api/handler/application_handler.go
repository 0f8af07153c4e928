package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/talenthub/jobboard-be/internal/api/domain"
	"github.com/talenthub/jobboard-be/internal/api/dto"
	"github.com/talenthub/jobboard-be/internal/api/model"
	"github.com/talenthub/jobboard-be/internal/api/storage"
	"github.com/talenthub/jobboard-be/internal/events"
)

type ApplicationStore interface {
	GetUser(ctx context.Context, id int64) (*model.User, error)
	GetJobPosting(ctx context.Context, id int64) (*model.JobPosting, error)
	GetApplication(ctx context.Context, id int64) (*model.Application, error)
	ListApplications(ctx context.Context, filter storage.ApplicationFilter) ([]model.Application, int, error)
	ListApplicationsWithUsers(ctx context.Context, filter storage.ApplicationFilter) ([]model.ApplicationListItem, int, error)
	ListApplicationsWithPostings(ctx context.Context, filter storage.ApplicationFilter) ([]model.ApplicationListItem, int, error)
	CreateApplication(ctx context.Context, app *model.Application) error
	UpdateApplicationStatus(ctx context.Context, app *model.Application, oldStatus string, companyUserID *int64) error
	SetApplicationArchived(ctx context.Context, id int64, archived bool) error
	CreateApplicationActivity(ctx context.Context, activity *model.ApplicationActivity) error
	ListApplicationActivities(ctx context.Context, applicationID int64) ([]model.ActivityListItem, error)
}

type ApplicationHandler struct {
	store     ApplicationStore
	publisher EventPublisher
	logger    *slog.Logger
}

func NewApplicationHandler(store ApplicationStore, publisher EventPublisher, logger *slog.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		store:     store,
		publisher: publisher,
		logger:    logger.With(slog.String("handler", "application")),
	}
}

// ListApplications handles GET /applications
func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	var req dto.ListApplicationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}
	page, perPage := normalizePage(req.Page, req.PerPage, defaultPerPage)

	apps, total, err := h.store.ListApplications(c.Request.Context(), storage.ApplicationFilter{
		JobPostingID: req.JobPostingID,
		UserID:       req.UserID,
		Status:       req.Status,
		IsArchived:   req.IsArchived,
		Page:         page,
		PerPage:      perPage,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListResponse(dto.FromApplications(apps), total, page, perPage))
}

// ListPostingApplications handles GET /job-postings/:id/applications,
// enriched with applicant summaries.
func (h *ApplicationHandler) ListPostingApplications(c *gin.Context) {
	postingID, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if _, err := h.store.GetJobPosting(ctx, postingID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	var req dto.ListApplicationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}
	page, perPage := normalizePage(req.Page, req.PerPage, defaultPerPage)

	items, total, err := h.store.ListApplicationsWithUsers(ctx, storage.ApplicationFilter{
		JobPostingID: postingID,
		Status:       req.Status,
		IsArchived:   req.IsArchived,
		Page:         page,
		PerPage:      perPage,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListResponse(dto.FromApplicationListItems(items), total, page, perPage))
}

// ListUserApplications handles GET /users/:id/applications, enriched
// with posting summaries.
func (h *ApplicationHandler) ListUserApplications(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if _, err := h.store.GetUser(ctx, userID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	var req dto.ListApplicationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}
	page, perPage := normalizePage(req.Page, req.PerPage, defaultPerPage)

	items, total, err := h.store.ListApplicationsWithPostings(ctx, storage.ApplicationFilter{
		UserID:     userID,
		Status:     req.Status,
		IsArchived: req.IsArchived,
		Page:       page,
		PerPage:    perPage,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListResponse(dto.FromApplicationListItems(items), total, page, perPage))
}

// GetApplication handles GET /applications/:id
func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	app, err := h.store.GetApplication(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromApplication(app))
}

// CreateApplication handles POST /job-postings/:id/applications
//
// The posting must be published. The insert, the posting counter bump
// and the initial activity land in one transaction; applying twice to
// the same posting responds 409.
func (h *ApplicationHandler) CreateApplication(c *gin.Context) {
	postingID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx := c.Request.Context()
	posting, err := h.store.GetJobPosting(ctx, postingID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if !posting.IsPublished {
		respondError(c, h.logger, domain.NewValidationError("job posting is not published"))
		return
	}
	if _, err := h.store.GetUser(ctx, req.UserID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	app := &model.Application{
		JobPostingID: postingID,
		UserID:       req.UserID,
		CoverLetter:  req.CoverLetter,
		ResumeURL:    req.ResumeURL,
		Status:       domain.ApplicationStatusPending,
	}
	if err := h.store.CreateApplication(ctx, app); err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.Info("Application created",
		slog.Int64("application_id", app.ID),
		slog.Int64("job_posting_id", postingID),
		slog.Int64("user_id", req.UserID),
	)

	h.publisher.Publish(ctx, events.TypeApplicationReceived, events.ApplicationReceived{
		ApplicationID: app.ID,
		JobPostingID:  postingID,
		CompanyID:     posting.CompanyID,
		UserID:        req.UserID,
	})

	c.JSON(http.StatusCreated, dto.FromApplication(app))
}

// UpdateApplicationStatus handles PUT /applications/:id/status
func (h *ApplicationHandler) UpdateApplicationStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	status := strings.ToLower(req.Status)
	if !domain.ContainsString(domain.ValidApplicationStatuses, status) {
		respondError(c, h.logger, domain.NewValidationError(
			"invalid status %q, valid statuses are: %s", req.Status,
			strings.Join(domain.ValidApplicationStatuses, ", ")))
		return
	}

	ctx := c.Request.Context()
	app, err := h.store.GetApplication(ctx, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	oldStatus := app.Status
	app.Status = status
	if req.Notes != nil {
		app.CompanyNotes = req.Notes
	}
	if err := h.store.UpdateApplicationStatus(ctx, app, oldStatus, req.CompanyUserID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.Info("Application status updated",
		slog.Int64("application_id", app.ID),
		slog.String("old_status", oldStatus),
		slog.String("new_status", status),
	)

	h.publisher.Publish(ctx, events.TypeApplicationStatusChanged, events.ApplicationStatusChanged{
		ApplicationID: app.ID,
		UserID:        app.UserID,
		OldStatus:     oldStatus,
		NewStatus:     status,
	})

	c.JSON(http.StatusOK, dto.FromApplication(app))
}

// CreateActivity handles POST /applications/:id/activities
func (h *ApplicationHandler) CreateActivity(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	activityType := strings.ToLower(req.ActivityType)
	if !domain.ContainsString(domain.ValidActivityTypes, activityType) {
		respondError(c, h.logger, domain.NewValidationError(
			"invalid activity_type %q, valid types are: %s", req.ActivityType,
			strings.Join(domain.ValidActivityTypes, ", ")))
		return
	}

	ctx := c.Request.Context()
	if _, err := h.store.GetApplication(ctx, id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	activity := &model.ApplicationActivity{
		ApplicationID: id,
		CompanyUserID: req.CompanyUserID,
		ActivityType:  activityType,
		Description:   req.Description,
		Metadata:      req.Metadata,
	}
	if err := h.store.CreateApplicationActivity(ctx, activity); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromActivityListItem(&model.ActivityListItem{
		ApplicationActivity: *activity,
	}))
}

// ListActivities handles GET /applications/:id/activities
func (h *ApplicationHandler) ListActivities(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if _, err := h.store.GetApplication(ctx, id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	items, err := h.store.ListApplicationActivities(ctx, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	resp := dto.FromActivityListItems(items)
	c.JSON(http.StatusOK, dto.NewListResponse(resp, len(resp), 1, len(resp)))
}

// ArchiveApplication handles PUT /applications/:id/archive
func (h *ApplicationHandler) ArchiveApplication(c *gin.Context) {
	h.setArchived(c, true)
}

// UnarchiveApplication handles PUT /applications/:id/unarchive
func (h *ApplicationHandler) UnarchiveApplication(c *gin.Context) {
	h.setArchived(c, false)
}

func (h *ApplicationHandler) setArchived(c *gin.Context, archived bool) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := h.store.SetApplicationArchived(ctx, id, archived); err != nil {
		respondError(c, h.logger, err)
		return
	}

	app, err := h.store.GetApplication(ctx, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromApplication(app))
}

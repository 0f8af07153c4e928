package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/talenthub/jobboard-be/internal/api/domain"
	"github.com/talenthub/jobboard-be/internal/api/dto"
	"github.com/talenthub/jobboard-be/internal/api/model"
	"github.com/talenthub/jobboard-be/internal/api/storage"
)

type EventStore interface {
	GetCompany(ctx context.Context, id int64) (*model.Company, error)
	GetUser(ctx context.Context, id int64) (*model.User, error)
	GetEvent(ctx context.Context, id int64) (*model.RecruitingEvent, error)
	ListEvents(ctx context.Context, filter storage.EventFilter) ([]model.RecruitingEvent, int, error)
	CreateEvent(ctx context.Context, event *model.RecruitingEvent) error
	UpdateEvent(ctx context.Context, event *model.RecruitingEvent) error
	DeleteEvent(ctx context.Context, id int64) error
	CreateRegistration(ctx context.Context, event *model.RecruitingEvent, reg *model.EventRegistration) error
	GetRegistration(ctx context.Context, id int64) (*model.EventRegistration, error)
	ListRegistrations(ctx context.Context, eventID int64, status string, page, perPage int) ([]model.RegistrationListItem, int, error)
	UpdateRegistrationStatus(ctx context.Context, id int64, status string) error
}

type EventHandler struct {
	store  EventStore
	logger *slog.Logger
}

func NewEventHandler(store EventStore, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		store:  store,
		logger: logger.With(slog.String("handler", "event")),
	}
}

// ListCompanyEvents handles GET /companies/:id/events
func (h *EventHandler) ListCompanyEvents(c *gin.Context) {
	companyID, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if _, err := h.store.GetCompany(ctx, companyID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	var req dto.ListEventsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}
	page, perPage := normalizePage(req.Page, req.PerPage, defaultPerPage)

	eventsList, total, err := h.store.ListEvents(ctx, storage.EventFilter{
		CompanyID:   companyID,
		EventType:   req.EventType,
		IsPublished: req.IsPublished,
		Page:        page,
		PerPage:     perPage,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListResponse(dto.FromEvents(eventsList), total, page, perPage))
}

// GetEvent handles GET /events/:id
func (h *EventHandler) GetEvent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	event, err := h.store.GetEvent(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromEvent(event))
}

// CreateEvent handles POST /companies/:id/events
func (h *EventHandler) CreateEvent(c *gin.Context) {
	companyID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	eventType := strings.ToLower(req.EventType)
	if !domain.ContainsString(domain.ValidEventTypes, eventType) {
		respondError(c, h.logger, domain.NewValidationError(
			"invalid event_type %q, valid types are: %s", req.EventType,
			strings.Join(domain.ValidEventTypes, ", ")))
		return
	}

	start, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		respondError(c, h.logger, domain.NewValidationError("start_date must be RFC 3339"))
		return
	}
	end, err := time.Parse(time.RFC3339, req.EndDate)
	if err != nil {
		respondError(c, h.logger, domain.NewValidationError("end_date must be RFC 3339"))
		return
	}
	if !end.After(start) {
		respondError(c, h.logger, domain.NewValidationError("end_date must be after start_date"))
		return
	}

	deadline, err := parseDatePtr(req.RegistrationDeadline)
	if err != nil {
		respondError(c, h.logger, domain.NewValidationError("registration_deadline must be RFC 3339"))
		return
	}

	ctx := c.Request.Context()
	if _, err := h.store.GetCompany(ctx, companyID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	event := &model.RecruitingEvent{
		CompanyID:            companyID,
		Title:                req.Title,
		Description:          req.Description,
		EventType:            eventType,
		Location:             req.Location,
		IsVirtual:            req.IsVirtual,
		VirtualLink:          req.VirtualLink,
		StartDate:            start,
		EndDate:              end,
		MaxParticipants:      req.MaxParticipants,
		RegistrationDeadline: deadline,
	}
	if err := h.store.CreateEvent(ctx, event); err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.Info("Recruiting event created",
		slog.Int64("event_id", event.ID),
		slog.Int64("company_id", companyID),
	)
	c.JSON(http.StatusCreated, dto.FromEvent(event))
}

// UpdateEvent handles PUT /events/:id with partial semantics.
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx := c.Request.Context()
	event, err := h.store.GetEvent(ctx, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := applyEventUpdate(event, &req); err != nil {
		respondError(c, h.logger, err)
		return
	}
	if !event.EndDate.After(event.StartDate) {
		respondError(c, h.logger, domain.NewValidationError("end_date must be after start_date"))
		return
	}

	if err := h.store.UpdateEvent(ctx, event); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromEvent(event))
}

func applyEventUpdate(event *model.RecruitingEvent, req *dto.UpdateEventRequest) error {
	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.EventType != nil {
		eventType := strings.ToLower(*req.EventType)
		if !domain.ContainsString(domain.ValidEventTypes, eventType) {
			return domain.NewValidationError(
				"invalid event_type %q, valid types are: %s", *req.EventType,
				strings.Join(domain.ValidEventTypes, ", "))
		}
		event.EventType = eventType
	}
	if req.Location != nil {
		event.Location = req.Location
	}
	if req.IsVirtual != nil {
		event.IsVirtual = *req.IsVirtual
	}
	if req.VirtualLink != nil {
		event.VirtualLink = req.VirtualLink
	}
	if req.StartDate != nil {
		start, err := time.Parse(time.RFC3339, *req.StartDate)
		if err != nil {
			return domain.NewValidationError("start_date must be RFC 3339")
		}
		event.StartDate = start
	}
	if req.EndDate != nil {
		end, err := time.Parse(time.RFC3339, *req.EndDate)
		if err != nil {
			return domain.NewValidationError("end_date must be RFC 3339")
		}
		event.EndDate = end
	}
	if req.MaxParticipants != nil {
		event.MaxParticipants = req.MaxParticipants
	}
	if req.RegistrationDeadline != nil {
		deadline, err := parseDatePtr(req.RegistrationDeadline)
		if err != nil {
			return domain.NewValidationError("registration_deadline must be RFC 3339")
		}
		event.RegistrationDeadline = deadline
	}
	return nil
}

// PublishEvent handles PUT /events/:id/publish
func (h *EventHandler) PublishEvent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	event, err := h.store.GetEvent(ctx, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	event.IsPublished = true
	if err := h.store.UpdateEvent(ctx, event); err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.Info("Recruiting event published", slog.Int64("event_id", id))
	c.JSON(http.StatusOK, dto.FromEvent(event))
}

// DeleteEvent handles DELETE /events/:id
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.store.DeleteEvent(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.Info("Recruiting event deleted", slog.Int64("event_id", id))
	c.JSON(http.StatusOK, gin.H{"message": "Event deleted"})
}

// CreateRegistration handles POST /events/:id/registrations
//
// The event must be published and its deadline not passed. Capacity is
// enforced inside the storage transaction.
func (h *EventHandler) CreateRegistration(c *gin.Context) {
	eventID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx := c.Request.Context()
	event, err := h.store.GetEvent(ctx, eventID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if !event.IsPublished {
		respondError(c, h.logger, domain.NewValidationError("event is not published"))
		return
	}
	if event.RegistrationDeadline != nil && time.Now().After(*event.RegistrationDeadline) {
		respondError(c, h.logger, domain.NewValidationError("registration deadline has passed"))
		return
	}
	if _, err := h.store.GetUser(ctx, req.UserID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	reg := &model.EventRegistration{
		EventID: eventID,
		UserID:  req.UserID,
		Status:  domain.RegistrationRegistered,
		Notes:   req.Notes,
	}
	if err := h.store.CreateRegistration(ctx, event, reg); err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.Info("Event registration created",
		slog.Int64("registration_id", reg.ID),
		slog.Int64("event_id", eventID),
		slog.Int64("user_id", req.UserID),
	)
	c.JSON(http.StatusCreated, dto.FromRegistration(reg))
}

// ListRegistrations handles GET /events/:id/registrations
func (h *EventHandler) ListRegistrations(c *gin.Context) {
	eventID, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if _, err := h.store.GetEvent(ctx, eventID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	status := c.Query("status")
	if status != "" && !domain.ContainsString(domain.ValidRegistrationStatuses, status) {
		respondError(c, h.logger, domain.NewValidationError(
			"invalid status %q, valid statuses are: %s", status,
			strings.Join(domain.ValidRegistrationStatuses, ", ")))
		return
	}

	page, perPage := normalizePage(queryInt(c, "page"), queryInt(c, "per_page"), defaultPerPage)

	items, total, err := h.store.ListRegistrations(ctx, eventID, status, page, perPage)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListResponse(dto.FromRegistrationListItems(items), total, page, perPage))
}

// UpdateRegistrationStatus handles PUT /registrations/:id/status
func (h *EventHandler) UpdateRegistrationStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateRegistrationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	status := strings.ToLower(req.Status)
	if !domain.ContainsString(domain.ValidRegistrationStatuses, status) {
		respondError(c, h.logger, domain.NewValidationError(
			"invalid status %q, valid statuses are: %s", req.Status,
			strings.Join(domain.ValidRegistrationStatuses, ", ")))
		return
	}

	h.transitionRegistration(c, id, status)
}

// CancelRegistration handles PUT /registrations/:id/cancel
func (h *EventHandler) CancelRegistration(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	h.transitionRegistration(c, id, domain.RegistrationCancelled)
}

func (h *EventHandler) transitionRegistration(c *gin.Context, id int64, status string) {
	ctx := c.Request.Context()
	if err := h.store.UpdateRegistrationStatus(ctx, id, status); err != nil {
		respondError(c, h.logger, err)
		return
	}

	reg, err := h.store.GetRegistration(ctx, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromRegistration(reg))
}

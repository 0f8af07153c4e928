package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/talenthub/jobboard-be/internal/api/domain"
	"github.com/talenthub/jobboard-be/internal/api/dto"
	"github.com/talenthub/jobboard-be/internal/api/model"
	"github.com/talenthub/jobboard-be/internal/api/storage"
)

type NotificationStore interface {
	GetUser(ctx context.Context, id int64) (*model.User, error)
	GetCompany(ctx context.Context, id int64) (*model.Company, error)
	ListNotifications(ctx context.Context, filter storage.NotificationFilter) ([]model.Notification, int, error)
	MarkNotificationRead(ctx context.Context, id int64) error
}

type NotificationHandler struct {
	store  NotificationStore
	logger *slog.Logger
}

func NewNotificationHandler(store NotificationStore, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{
		store:  store,
		logger: logger.With(slog.String("handler", "notification")),
	}
}

// ListUserNotifications handles GET /users/:id/notifications
func (h *NotificationHandler) ListUserNotifications(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if _, err := h.store.GetUser(ctx, userID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.list(c, domain.PartyUser, userID)
}

// ListCompanyNotifications handles GET /companies/:id/notifications
func (h *NotificationHandler) ListCompanyNotifications(c *gin.Context) {
	companyID, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if _, err := h.store.GetCompany(ctx, companyID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.list(c, domain.PartyCompany, companyID)
}

func (h *NotificationHandler) list(c *gin.Context, recipientType domain.Party, recipientID int64) {
	var req dto.ListNotificationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}
	page, perPage := normalizePage(req.Page, req.PerPage, defaultPerPage)

	notifications, total, err := h.store.ListNotifications(c.Request.Context(), storage.NotificationFilter{
		RecipientType: recipientType,
		RecipientID:   recipientID,
		IsRead:        req.IsRead,
		Page:          page,
		PerPage:       perPage,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListResponse(dto.FromNotifications(notifications), total, page, perPage))
}

// MarkNotificationRead handles PUT /notifications/:id/read
func (h *NotificationHandler) MarkNotificationRead(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.store.MarkNotificationRead(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

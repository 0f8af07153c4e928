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
)

type MediaStore interface {
	GetCompany(ctx context.Context, id int64) (*model.Company, error)
	GetMedia(ctx context.Context, id int64) (*model.CompanyMedia, error)
	ListMedia(ctx context.Context, companyID int64, mediaType string) ([]model.CompanyMedia, error)
	CreateMedia(ctx context.Context, media *model.CompanyMedia) error
	UpdateMedia(ctx context.Context, media *model.CompanyMedia) error
	DeleteMedia(ctx context.Context, id int64) error
}

type MediaHandler struct {
	store  MediaStore
	logger *slog.Logger
}

func NewMediaHandler(store MediaStore, logger *slog.Logger) *MediaHandler {
	return &MediaHandler{
		store:  store,
		logger: logger.With(slog.String("handler", "media")),
	}
}

// ListCompanyMedia handles GET /companies/:id/media, ordered by
// position.
func (h *MediaHandler) ListCompanyMedia(c *gin.Context) {
	companyID, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if _, err := h.store.GetCompany(ctx, companyID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	mediaType := c.Query("media_type")
	if mediaType != "" && !domain.ContainsString(domain.ValidMediaTypes, mediaType) {
		respondError(c, h.logger, domain.NewValidationError(
			"invalid media_type %q, valid types are: %s", mediaType,
			strings.Join(domain.ValidMediaTypes, ", ")))
		return
	}

	items, err := h.store.ListMedia(ctx, companyID, mediaType)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	resp := dto.FromMediaItems(items)
	c.JSON(http.StatusOK, dto.NewListResponse(resp, len(resp), 1, len(resp)))
}

// CreateMedia handles POST /companies/:id/media
func (h *MediaHandler) CreateMedia(c *gin.Context) {
	companyID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	mediaType := strings.ToLower(req.MediaType)
	if !domain.ContainsString(domain.ValidMediaTypes, mediaType) {
		respondError(c, h.logger, domain.NewValidationError(
			"invalid media_type %q, valid types are: %s", req.MediaType,
			strings.Join(domain.ValidMediaTypes, ", ")))
		return
	}

	ctx := c.Request.Context()
	if _, err := h.store.GetCompany(ctx, companyID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	media := &model.CompanyMedia{
		CompanyID:   companyID,
		MediaType:   mediaType,
		Title:       req.Title,
		Description: req.Description,
		URL:         req.URL,
		IsFeatured:  req.IsFeatured,
		Position:    req.Position,
	}
	if err := h.store.CreateMedia(ctx, media); err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.Info("Media item created",
		slog.Int64("media_id", media.ID),
		slog.Int64("company_id", companyID),
	)
	c.JSON(http.StatusCreated, dto.FromMedia(media))
}

// UpdateMedia handles PUT /media/:id with partial semantics.
func (h *MediaHandler) UpdateMedia(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if req.MediaType != nil && !domain.ContainsString(domain.ValidMediaTypes, strings.ToLower(*req.MediaType)) {
		respondError(c, h.logger, domain.NewValidationError(
			"invalid media_type %q, valid types are: %s", *req.MediaType,
			strings.Join(domain.ValidMediaTypes, ", ")))
		return
	}

	ctx := c.Request.Context()
	media, err := h.store.GetMedia(ctx, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if req.MediaType != nil {
		media.MediaType = strings.ToLower(*req.MediaType)
	}
	if req.URL != nil {
		media.URL = *req.URL
	}
	if req.Title != nil {
		media.Title = req.Title
	}
	if req.Description != nil {
		media.Description = req.Description
	}
	if req.IsFeatured != nil {
		media.IsFeatured = *req.IsFeatured
	}
	if req.Position != nil {
		media.Position = *req.Position
	}

	if err := h.store.UpdateMedia(ctx, media); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromMedia(media))
}

// DeleteMedia handles DELETE /media/:id
func (h *MediaHandler) DeleteMedia(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.store.DeleteMedia(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.Info("Media item deleted", slog.Int64("media_id", id))
	c.JSON(http.StatusOK, gin.H{"message": "Media item deleted"})
}

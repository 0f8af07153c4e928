package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/talenthub/jobboard-be/internal/api/domain"
	"github.com/talenthub/jobboard-be/internal/api/dto"
	"github.com/talenthub/jobboard-be/internal/api/model"
)

type ReviewStore interface {
	GetCompany(ctx context.Context, id int64) (*model.Company, error)
	GetUser(ctx context.Context, id int64) (*model.User, error)
	GetReview(ctx context.Context, id int64) (*model.CompanyReview, error)
	ListReviews(ctx context.Context, companyID int64, isApproved *bool, page, perPage int) ([]model.CompanyReview, int, error)
	CreateReview(ctx context.Context, review *model.CompanyReview) error
	ApproveReview(ctx context.Context, id int64) error
	DeleteReview(ctx context.Context, id int64) error
}

type ReviewHandler struct {
	store  ReviewStore
	logger *slog.Logger
}

func NewReviewHandler(store ReviewStore, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		store:  store,
		logger: logger.With(slog.String("handler", "review")),
	}
}

// ListCompanyReviews handles GET /companies/:id/reviews. Without an
// explicit is_approved filter only approved reviews are listed.
func (h *ReviewHandler) ListCompanyReviews(c *gin.Context) {
	companyID, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if _, err := h.store.GetCompany(ctx, companyID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	var req dto.ListReviewsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}
	page, perPage := normalizePage(req.Page, req.PerPage, defaultPerPage)

	isApproved := req.IsApproved
	if isApproved == nil {
		approved := true
		isApproved = &approved
	}

	reviews, total, err := h.store.ListReviews(ctx, companyID, isApproved, page, perPage)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListResponse(dto.FromReviews(reviews), total, page, perPage))
}

// CreateReview handles POST /companies/:id/reviews. New reviews start
// unapproved and stay out of the public listing until approved.
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	companyID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if req.Rating < 1 || req.Rating > 5 {
		respondError(c, h.logger, domain.NewValidationError("rating must be between 1 and 5"))
		return
	}

	ctx := c.Request.Context()
	if _, err := h.store.GetCompany(ctx, companyID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	if _, err := h.store.GetUser(ctx, req.UserID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	review := &model.CompanyReview{
		CompanyID:        companyID,
		UserID:           req.UserID,
		Title:            req.Title,
		Content:          req.Content,
		Rating:           req.Rating,
		Pros:             req.Pros,
		Cons:             req.Cons,
		EmploymentStatus: req.EmploymentStatus,
		JobTitle:         req.JobTitle,
		IsAnonymous:      req.IsAnonymous,
	}
	if err := h.store.CreateReview(ctx, review); err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.Info("Review created",
		slog.Int64("review_id", review.ID),
		slog.Int64("company_id", companyID),
	)
	c.JSON(http.StatusCreated, dto.FromReview(review))
}

// ApproveReview handles PUT /reviews/:id/approve
func (h *ReviewHandler) ApproveReview(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := h.store.ApproveReview(ctx, id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	review, err := h.store.GetReview(ctx, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromReview(review))
}

// DeleteReview handles DELETE /reviews/:id
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.store.DeleteReview(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.Info("Review deleted", slog.Int64("review_id", id))
	c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
}

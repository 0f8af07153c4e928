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
)

type CompanyUserStore interface {
	GetCompany(ctx context.Context, id int64) (*model.Company, error)
	GetCompanyUser(ctx context.Context, id int64) (*model.CompanyUser, error)
	ListCompanyUsers(ctx context.Context, filter storage.CompanyUserFilter) ([]model.CompanyUser, int, error)
	CreateCompanyUser(ctx context.Context, user *model.CompanyUser) error
	UpdateCompanyUser(ctx context.Context, user *model.CompanyUser) error
	DeleteCompanyUser(ctx context.Context, id int64) error
}

type CompanyUserHandler struct {
	store  CompanyUserStore
	logger *slog.Logger
}

func NewCompanyUserHandler(store CompanyUserStore, logger *slog.Logger) *CompanyUserHandler {
	return &CompanyUserHandler{
		store:  store,
		logger: logger.With(slog.String("handler", "company-user")),
	}
}

// ListCompanyUsers handles GET /companies/:id/users
func (h *CompanyUserHandler) ListCompanyUsers(c *gin.Context) {
	companyID, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if _, err := h.store.GetCompany(ctx, companyID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	var req dto.ListCompanyUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}
	page, perPage := normalizePage(req.Page, req.PerPage, defaultPerPage)

	users, total, err := h.store.ListCompanyUsers(ctx, storage.CompanyUserFilter{
		CompanyID: companyID,
		Role:      req.Role,
		IsActive:  req.IsActive,
		Page:      page,
		PerPage:   perPage,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListResponse(dto.FromCompanyUsers(users), total, page, perPage))
}

// GetCompanyUser handles GET /company-users/:id
func (h *CompanyUserHandler) GetCompanyUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	user, err := h.store.GetCompanyUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromCompanyUser(user))
}

// CreateCompanyUser handles POST /companies/:id/users
func (h *CompanyUserHandler) CreateCompanyUser(c *gin.Context) {
	companyID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateCompanyUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	role := strings.ToLower(req.Role)
	if !domain.ContainsString(domain.ValidCompanyUserRoles, role) {
		respondError(c, h.logger, domain.NewValidationError(
			"invalid role %q, valid roles are: %s", req.Role,
			strings.Join(domain.ValidCompanyUserRoles, ", ")))
		return
	}

	ctx := c.Request.Context()
	if _, err := h.store.GetCompany(ctx, companyID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	user := &model.CompanyUser{
		CompanyID: companyID,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      role,
		Phone:     req.Phone,
		IsActive:  true,
	}
	if err := h.store.CreateCompanyUser(ctx, user); err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.Info("Company user created",
		slog.Int64("company_user_id", user.ID),
		slog.Int64("company_id", companyID),
	)
	c.JSON(http.StatusCreated, dto.FromCompanyUser(user))
}

// UpdateCompanyUser handles PUT /company-users/:id
func (h *CompanyUserHandler) UpdateCompanyUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCompanyUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if req.Role != nil && !domain.ContainsString(domain.ValidCompanyUserRoles, strings.ToLower(*req.Role)) {
		respondError(c, h.logger, domain.NewValidationError(
			"invalid role %q, valid roles are: %s", *req.Role,
			strings.Join(domain.ValidCompanyUserRoles, ", ")))
		return
	}

	ctx := c.Request.Context()
	user, err := h.store.GetCompanyUser(ctx, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Role != nil {
		user.Role = strings.ToLower(*req.Role)
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.ProfilePicture != nil {
		user.ProfilePicture = req.ProfilePicture
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := h.store.UpdateCompanyUser(ctx, user); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromCompanyUser(user))
}

// DeleteCompanyUser handles DELETE /company-users/:id. Deleting the
// last admin seat of a company is rejected.
func (h *CompanyUserHandler) DeleteCompanyUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.store.DeleteCompanyUser(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.Info("Company user deleted", slog.Int64("company_user_id", id))
	c.JSON(http.StatusOK, gin.H{"message": "Company user deleted"})
}

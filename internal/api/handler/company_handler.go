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

type CompanyStore interface {
	GetCompany(ctx context.Context, id int64) (*model.Company, error)
	GetCompanyBySlug(ctx context.Context, slug string) (*model.Company, error)
	ListCompanies(ctx context.Context, filter storage.CompanyFilter) ([]model.Company, int, error)
	CreateCompanyWithAdmin(ctx context.Context, company *model.Company, admin *model.CompanyUser) error
	UpdateCompany(ctx context.Context, company *model.Company) error
	DeleteCompany(ctx context.Context, id int64) error
	VerifyCompany(ctx context.Context, id int64) error
	UpdateCompanyLogo(ctx context.Context, id int64, logo string) error
	GetCompanyStats(ctx context.Context, id int64) (*model.CompanyStats, error)
}

type CompanyHandler struct {
	store  CompanyStore
	logger *slog.Logger
}

func NewCompanyHandler(store CompanyStore, logger *slog.Logger) *CompanyHandler {
	return &CompanyHandler{
		store:  store,
		logger: logger.With(slog.String("handler", "company")),
	}
}

// ListCompanies handles GET /companies
func (h *CompanyHandler) ListCompanies(c *gin.Context) {
	var req dto.ListCompaniesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}
	page, perPage := normalizePage(req.Page, req.PerPage, defaultPerPage)

	companies, total, err := h.store.ListCompanies(c.Request.Context(), storage.CompanyFilter{
		Industry:   req.Industry,
		Size:       req.Size,
		IsVerified: req.IsVerified,
		IsFeatured: req.IsFeatured,
		Page:       page,
		PerPage:    perPage,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListResponse(dto.FromCompanies(companies), total, page, perPage))
}

// GetCompany handles GET /companies/:id
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	company, err := h.store.GetCompany(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromCompany(company))
}

// GetCompanyBySlug handles GET /companies/slug/:slug
func (h *CompanyHandler) GetCompanyBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slug is required"})
		return
	}

	company, err := h.store.GetCompanyBySlug(c.Request.Context(), slug)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromCompany(company))
}

// CreateCompany handles POST /companies
//
// The company row and its first admin seat are written in one
// transaction.
func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	var req dto.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	company := &model.Company{
		Name:         req.Name,
		Slug:         domain.GenerateSlug(req.Name),
		Email:        req.Email,
		Website:      req.Website,
		Industry:     req.Industry,
		Size:         req.Size,
		FoundedYear:  req.FoundedYear,
		Description:  req.Description,
		Headquarters: req.Headquarters,
	}
	admin := &model.CompanyUser{
		Email:     req.AdminEmail,
		FirstName: req.AdminFirstName,
		LastName:  req.AdminLastName,
		Role:      domain.RoleAdmin,
		IsActive:  true,
	}

	if err := h.store.CreateCompanyWithAdmin(c.Request.Context(), company, admin); err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.Info("Company created",
		slog.Int64("company_id", company.ID),
		slog.String("slug", company.Slug),
	)
	c.JSON(http.StatusCreated, dto.FromCompany(company))
}

// UpdateCompany handles PUT /companies/:id with partial semantics:
// absent fields keep the stored value.
func (h *CompanyHandler) UpdateCompany(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx := c.Request.Context()
	company, err := h.store.GetCompany(ctx, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	applyCompanyUpdate(company, &req)
	if err := h.store.UpdateCompany(ctx, company); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromCompany(company))
}

func applyCompanyUpdate(company *model.Company, req *dto.UpdateCompanyRequest) {
	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.Email != nil {
		company.Email = *req.Email
	}
	if req.Website != nil {
		company.Website = req.Website
	}
	if req.Industry != nil {
		company.Industry = req.Industry
	}
	if req.Size != nil {
		company.Size = req.Size
	}
	if req.FoundedYear != nil {
		company.FoundedYear = req.FoundedYear
	}
	if req.Description != nil {
		company.Description = req.Description
	}
	if req.Mission != nil {
		company.Mission = req.Mission
	}
	if req.Culture != nil {
		company.Culture = req.Culture
	}
	if req.Benefits != nil {
		company.Benefits = req.Benefits
	}
	if req.Headquarters != nil {
		company.Headquarters = req.Headquarters
	}
	if req.Locations != nil {
		company.Locations = req.Locations
	}
	if req.SocialLinkedin != nil {
		company.SocialLinkedin = req.SocialLinkedin
	}
	if req.SocialTwitter != nil {
		company.SocialTwitter = req.SocialTwitter
	}
	if req.SocialFacebook != nil {
		company.SocialFacebook = req.SocialFacebook
	}
	if req.SocialInstagram != nil {
		company.SocialInstagram = req.SocialInstagram
	}
	if req.IsFeatured != nil {
		company.IsFeatured = *req.IsFeatured
	}
}

// DeleteCompany handles DELETE /companies/:id
func (h *CompanyHandler) DeleteCompany(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.store.DeleteCompany(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.Info("Company deleted", slog.Int64("company_id", id))
	c.JSON(http.StatusOK, gin.H{"message": "Company deleted"})
}

// VerifyCompany handles PUT /companies/:id/verify
func (h *CompanyHandler) VerifyCompany(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := h.store.VerifyCompany(ctx, id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	company, err := h.store.GetCompany(ctx, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromCompany(company))
}

// UpdateCompanyLogo handles PUT /companies/:id/logo
func (h *CompanyHandler) UpdateCompanyLogo(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCompanyLogoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.store.UpdateCompanyLogo(ctx, id, req.Logo); err != nil {
		respondError(c, h.logger, err)
		return
	}

	company, err := h.store.GetCompany(ctx, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromCompany(company))
}

// GetCompanyStats handles GET /companies/:id/stats
func (h *CompanyHandler) GetCompanyStats(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if _, err := h.store.GetCompany(ctx, id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	stats, err := h.store.GetCompanyStats(ctx, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

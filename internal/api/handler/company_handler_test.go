package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talenthub/jobboard-be/internal/api/domain"
	"github.com/talenthub/jobboard-be/internal/api/model"
	"github.com/talenthub/jobboard-be/internal/api/storage"
)

type fakeCompanyStore struct {
	companies map[int64]*model.Company
	admins    map[int64]*model.CompanyUser
	nextID    int64

	createErr error
}

func newFakeCompanyStore() *fakeCompanyStore {
	return &fakeCompanyStore{
		companies: make(map[int64]*model.Company),
		admins:    make(map[int64]*model.CompanyUser),
		nextID:    1,
	}
}

func (s *fakeCompanyStore) GetCompany(_ context.Context, id int64) (*model.Company, error) {
	c, ok := s.companies[id]
	if !ok {
		return nil, domain.ErrCompanyNotFound
	}
	copied := *c
	return &copied, nil
}

func (s *fakeCompanyStore) GetCompanyBySlug(_ context.Context, slug string) (*model.Company, error) {
	for _, c := range s.companies {
		if c.Slug == slug {
			copied := *c
			return &copied, nil
		}
	}
	return nil, domain.ErrCompanyNotFound
}

func (s *fakeCompanyStore) ListCompanies(_ context.Context, filter storage.CompanyFilter) ([]model.Company, int, error) {
	var out []model.Company
	for _, c := range s.companies {
		if filter.IsVerified != nil && c.IsVerified != *filter.IsVerified {
			continue
		}
		out = append(out, *c)
	}
	return out, len(out), nil
}

func (s *fakeCompanyStore) CreateCompanyWithAdmin(_ context.Context, company *model.Company, admin *model.CompanyUser) error {
	if s.createErr != nil {
		return s.createErr
	}
	company.ID = s.nextID
	s.nextID++
	company.CreatedAt = time.Now()
	company.UpdatedAt = company.CreatedAt

	admin.ID = company.ID
	admin.CompanyID = company.ID

	storedCompany := *company
	storedAdmin := *admin
	s.companies[company.ID] = &storedCompany
	s.admins[company.ID] = &storedAdmin
	return nil
}

func (s *fakeCompanyStore) UpdateCompany(_ context.Context, company *model.Company) error {
	if _, ok := s.companies[company.ID]; !ok {
		return domain.ErrCompanyNotFound
	}
	stored := *company
	s.companies[company.ID] = &stored
	return nil
}

func (s *fakeCompanyStore) DeleteCompany(_ context.Context, id int64) error {
	if _, ok := s.companies[id]; !ok {
		return domain.ErrCompanyNotFound
	}
	delete(s.companies, id)
	return nil
}

func (s *fakeCompanyStore) VerifyCompany(_ context.Context, id int64) error {
	c, ok := s.companies[id]
	if !ok {
		return domain.ErrCompanyNotFound
	}
	c.IsVerified = true
	return nil
}

func (s *fakeCompanyStore) UpdateCompanyLogo(_ context.Context, id int64, logo string) error {
	c, ok := s.companies[id]
	if !ok {
		return domain.ErrCompanyNotFound
	}
	c.Logo = &logo
	return nil
}

func (s *fakeCompanyStore) GetCompanyStats(_ context.Context, id int64) (*model.CompanyStats, error) {
	if _, ok := s.companies[id]; !ok {
		return nil, domain.ErrCompanyNotFound
	}
	return &model.CompanyStats{JobPostingsCount: 3, ActiveJobPostingsCount: 2}, nil
}

func newCompanyTestServer(store CompanyStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewCompanyHandler(store, slog.New(slog.NewTextHandler(io.Discard, nil)))

	r := gin.New()
	r.GET("/companies", h.ListCompanies)
	r.POST("/companies", h.CreateCompany)
	r.GET("/companies/slug/:slug", h.GetCompanyBySlug)
	r.GET("/companies/:id", h.GetCompany)
	r.PUT("/companies/:id", h.UpdateCompany)
	r.DELETE("/companies/:id", h.DeleteCompany)
	r.PUT("/companies/:id/verify", h.VerifyCompany)
	r.PUT("/companies/:id/logo", h.UpdateCompanyLogo)
	r.GET("/companies/:id/stats", h.GetCompanyStats)
	return r
}

func TestCreateCompany(t *testing.T) {
	store := newFakeCompanyStore()
	r := newCompanyTestServer(store)

	w := doJSON(t, r, http.MethodPost, "/companies", gin.H{
		"name":             "Acme Corp",
		"email":            "hr@acme.test",
		"admin_email":      "admin@acme.test",
		"admin_first_name": "Ada",
		"admin_last_name":  "Lovelace",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.True(t, strings.HasPrefix(body["slug"].(string), "acme-corp-"))

	// The first seat is an active admin
	admin := store.admins[1]
	require.NotNil(t, admin)
	assert.Equal(t, domain.RoleAdmin, admin.Role)
	assert.True(t, admin.IsActive)
	assert.Equal(t, "admin@acme.test", admin.Email)
}

func TestCreateCompany_DuplicateEmail(t *testing.T) {
	store := newFakeCompanyStore()
	store.createErr = domain.ErrEmailTaken
	r := newCompanyTestServer(store)

	w := doJSON(t, r, http.MethodPost, "/companies", gin.H{
		"name":             "Acme Corp",
		"email":            "hr@acme.test",
		"admin_email":      "admin@acme.test",
		"admin_first_name": "Ada",
		"admin_last_name":  "Lovelace",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdateCompany_PartialUpdate(t *testing.T) {
	store := newFakeCompanyStore()
	industry := "logistics"
	store.companies[1] = &model.Company{
		ID: 1, Name: "Acme", Slug: "acme-abc123", Email: "hr@acme.test", Industry: &industry,
	}
	r := newCompanyTestServer(store)

	w := doJSON(t, r, http.MethodPut, "/companies/1", gin.H{"name": "Acme Industries"})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Acme Industries", body["name"])
	// Untouched fields survive
	assert.Equal(t, "logistics", body["industry"])
	assert.Equal(t, "acme-abc123", body["slug"])
}

func TestVerifyCompany(t *testing.T) {
	store := newFakeCompanyStore()
	store.companies[1] = &model.Company{ID: 1, Name: "Acme", Slug: "acme-abc123", Email: "hr@acme.test"}
	r := newCompanyTestServer(store)

	w := doJSON(t, r, http.MethodPut, "/companies/1/verify", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["is_verified"])

	w = doJSON(t, r, http.MethodPut, "/companies/999/verify", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetCompanyBySlug(t *testing.T) {
	store := newFakeCompanyStore()
	store.companies[1] = &model.Company{ID: 1, Name: "Acme", Slug: "acme-abc123", Email: "hr@acme.test"}
	r := newCompanyTestServer(store)

	w := doJSON(t, r, http.MethodGet, "/companies/slug/acme-abc123", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/companies/slug/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

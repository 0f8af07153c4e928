package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talenthub/jobboard-be/internal/api/domain"
	"github.com/talenthub/jobboard-be/internal/api/model"
	"github.com/talenthub/jobboard-be/internal/api/storage"
)

type fakeCompanyUserStore struct {
	companies map[int64]*model.Company
	users     map[int64]*model.CompanyUser
	nextID    int64
}

func newFakeCompanyUserStore() *fakeCompanyUserStore {
	return &fakeCompanyUserStore{
		companies: make(map[int64]*model.Company),
		users:     make(map[int64]*model.CompanyUser),
		nextID:    1,
	}
}

func (s *fakeCompanyUserStore) GetCompany(_ context.Context, id int64) (*model.Company, error) {
	c, ok := s.companies[id]
	if !ok {
		return nil, domain.ErrCompanyNotFound
	}
	return c, nil
}

func (s *fakeCompanyUserStore) GetCompanyUser(_ context.Context, id int64) (*model.CompanyUser, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrCompanyUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *fakeCompanyUserStore) ListCompanyUsers(_ context.Context, filter storage.CompanyUserFilter) ([]model.CompanyUser, int, error) {
	var out []model.CompanyUser
	for _, u := range s.users {
		if u.CompanyID != filter.CompanyID {
			continue
		}
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		out = append(out, *u)
	}
	return out, len(out), nil
}

func (s *fakeCompanyUserStore) CreateCompanyUser(_ context.Context, user *model.CompanyUser) error {
	for _, u := range s.users {
		if u.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}
	user.ID = s.nextID
	s.nextID++
	stored := *user
	s.users[user.ID] = &stored
	return nil
}

func (s *fakeCompanyUserStore) UpdateCompanyUser(_ context.Context, user *model.CompanyUser) error {
	if _, ok := s.users[user.ID]; !ok {
		return domain.ErrCompanyUserNotFound
	}
	stored := *user
	s.users[user.ID] = &stored
	return nil
}

func (s *fakeCompanyUserStore) DeleteCompanyUser(_ context.Context, id int64) error {
	target, ok := s.users[id]
	if !ok {
		return domain.ErrCompanyUserNotFound
	}
	if target.Role == domain.RoleAdmin {
		admins := 0
		for _, u := range s.users {
			if u.CompanyID == target.CompanyID && u.Role == domain.RoleAdmin {
				admins++
			}
		}
		if admins == 1 {
			return domain.ErrLastAdmin
		}
	}
	delete(s.users, id)
	return nil
}

func newCompanyUserTestServer(store CompanyUserStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewCompanyUserHandler(store, slog.New(slog.NewTextHandler(io.Discard, nil)))

	r := gin.New()
	r.GET("/companies/:id/users", h.ListCompanyUsers)
	r.POST("/companies/:id/users", h.CreateCompanyUser)
	r.GET("/company-users/:id", h.GetCompanyUser)
	r.PUT("/company-users/:id", h.UpdateCompanyUser)
	r.DELETE("/company-users/:id", h.DeleteCompanyUser)
	return r
}

func seedCompanyUsers(store *fakeCompanyUserStore) {
	store.companies[1] = &model.Company{ID: 1, Name: "Acme", Slug: "acme-abc123", Email: "hr@acme.test"}
	store.users[1] = &model.CompanyUser{ID: 1, CompanyID: 1, Email: "admin@acme.test", Role: domain.RoleAdmin, IsActive: true}
	store.users[2] = &model.CompanyUser{ID: 2, CompanyID: 1, Email: "recruiter@acme.test", Role: domain.RoleRecruiter, IsActive: true}
	store.nextID = 3
}

func TestCreateCompanyUser(t *testing.T) {
	store := newFakeCompanyUserStore()
	seedCompanyUsers(store)
	r := newCompanyUserTestServer(store)

	w := doJSON(t, r, http.MethodPost, "/companies/1/users", gin.H{
		"email":      "viewer@acme.test",
		"first_name": "Vera",
		"last_name":  "Viewer",
		"role":       "VIEWER",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	// Role is normalized to lower case, new seats start active
	assert.Equal(t, "viewer", body["role"])
	assert.Equal(t, true, body["is_active"])
}

func TestCreateCompanyUser_InvalidRole(t *testing.T) {
	store := newFakeCompanyUserStore()
	seedCompanyUsers(store)
	r := newCompanyUserTestServer(store)

	w := doJSON(t, r, http.MethodPost, "/companies/1/users", gin.H{
		"email":      "x@acme.test",
		"first_name": "X",
		"last_name":  "Y",
		"role":       "overlord",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateCompanyUser_RoleChange(t *testing.T) {
	store := newFakeCompanyUserStore()
	seedCompanyUsers(store)
	r := newCompanyUserTestServer(store)

	w := doJSON(t, r, http.MethodPut, "/company-users/2", gin.H{"role": "admin"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin", decodeBody(t, w)["role"])
	// Unset fields keep their values
	assert.Equal(t, "recruiter@acme.test", store.users[2].Email)
}

func TestDeleteCompanyUser_LastAdmin(t *testing.T) {
	store := newFakeCompanyUserStore()
	seedCompanyUsers(store)
	r := newCompanyUserTestServer(store)

	w := doJSON(t, r, http.MethodDelete, "/company-users/1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// A non-admin seat deletes fine
	w = doJSON(t, r, http.MethodDelete, "/company-users/2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, store.users, int64(2))
}

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

type fakeNotificationStore struct {
	users         map[int64]*model.User
	companies     map[int64]*model.Company
	notifications map[int64]*model.Notification
}

func newFakeNotificationStore() *fakeNotificationStore {
	s := &fakeNotificationStore{
		users:         make(map[int64]*model.User),
		companies:     make(map[int64]*model.Company),
		notifications: make(map[int64]*model.Notification),
	}
	s.users[1] = &model.User{ID: 1, Username: "alice", Email: "alice@example.test"}
	s.companies[2] = &model.Company{ID: 2, Name: "Acme", Slug: "acme-abc123", Email: "hr@acme.test"}
	return s
}

func (s *fakeNotificationStore) GetUser(_ context.Context, id int64) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (s *fakeNotificationStore) GetCompany(_ context.Context, id int64) (*model.Company, error) {
	c, ok := s.companies[id]
	if !ok {
		return nil, domain.ErrCompanyNotFound
	}
	return c, nil
}

func (s *fakeNotificationStore) ListNotifications(_ context.Context, filter storage.NotificationFilter) ([]model.Notification, int, error) {
	var out []model.Notification
	for _, n := range s.notifications {
		if n.RecipientType != string(filter.RecipientType) || n.RecipientID != filter.RecipientID {
			continue
		}
		if filter.IsRead != nil && n.IsRead != *filter.IsRead {
			continue
		}
		out = append(out, *n)
	}
	return out, len(out), nil
}

func (s *fakeNotificationStore) MarkNotificationRead(_ context.Context, id int64) error {
	n, ok := s.notifications[id]
	if !ok {
		return domain.ErrNotificationNotFound
	}
	n.IsRead = true
	return nil
}

func newNotificationTestServer(store NotificationStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewNotificationHandler(store, slog.New(slog.NewTextHandler(io.Discard, nil)))

	r := gin.New()
	r.GET("/users/:id/notifications", h.ListUserNotifications)
	r.GET("/companies/:id/notifications", h.ListCompanyNotifications)
	r.PUT("/notifications/:id/read", h.MarkNotificationRead)
	return r
}

func TestListNotifications_RecipientFilter(t *testing.T) {
	store := newFakeNotificationStore()
	store.notifications[1] = &model.Notification{ID: 1, RecipientType: "user", RecipientID: 1, EventType: "message.sent", SubjectID: 7, Body: "New message"}
	store.notifications[2] = &model.Notification{ID: 2, RecipientType: "company", RecipientID: 2, EventType: "application.received", SubjectID: 8, Body: "New application"}
	store.notifications[3] = &model.Notification{ID: 3, RecipientType: "user", RecipientID: 99, EventType: "message.sent", SubjectID: 9, Body: "Not yours"}
	r := newNotificationTestServer(store)

	w := doJSON(t, r, http.MethodGet, "/users/1/notifications", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeBody(t, w)["total"])

	w = doJSON(t, r, http.MethodGet, "/companies/2/notifications", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeBody(t, w)["total"])

	w = doJSON(t, r, http.MethodGet, "/users/123/notifications", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListNotifications_UnreadFilter(t *testing.T) {
	store := newFakeNotificationStore()
	store.notifications[1] = &model.Notification{ID: 1, RecipientType: "user", RecipientID: 1, EventType: "message.sent", SubjectID: 7, Body: "a"}
	store.notifications[2] = &model.Notification{ID: 2, RecipientType: "user", RecipientID: 1, EventType: "message.sent", SubjectID: 7, Body: "b", IsRead: true}
	r := newNotificationTestServer(store)

	w := doJSON(t, r, http.MethodGet, "/users/1/notifications?is_read=false", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeBody(t, w)["total"])
}

func TestMarkNotificationRead(t *testing.T) {
	store := newFakeNotificationStore()
	store.notifications[1] = &model.Notification{ID: 1, RecipientType: "user", RecipientID: 1, EventType: "message.sent", SubjectID: 7, Body: "a"}
	r := newNotificationTestServer(store)

	w := doJSON(t, r, http.MethodPut, "/notifications/1/read", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, store.notifications[1].IsRead)

	// Marking again is a no-op, not an error
	w = doJSON(t, r, http.MethodPut, "/notifications/1/read", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPut, "/notifications/999/read", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

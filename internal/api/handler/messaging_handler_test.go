package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talenthub/jobboard-be/internal/api/domain"
	"github.com/talenthub/jobboard-be/internal/api/model"
	"github.com/talenthub/jobboard-be/internal/api/storage"
	"github.com/talenthub/jobboard-be/internal/events"
)

type publishedEvent struct {
	eventType string
	payload   interface{}
}

// recordingPublisher captures published events instead of touching a broker.
type recordingPublisher struct {
	events []publishedEvent
}

func (p *recordingPublisher) Publish(_ context.Context, eventType string, payload interface{}) {
	p.events = append(p.events, publishedEvent{eventType: eventType, payload: payload})
}

// fakeMessagingStore backs the messaging endpoints with in-memory maps.
type fakeMessagingStore struct {
	users         map[int64]*model.User
	companies     map[int64]*model.Company
	companyUsers  map[int64]*model.CompanyUser
	conversations map[int64]*model.Conversation
	messages      map[int64][]model.Message

	nextConvID int64
	nextMsgID  int64

	createConversationErr error
}

func newFakeMessagingStore() *fakeMessagingStore {
	return &fakeMessagingStore{
		users:         make(map[int64]*model.User),
		companies:     make(map[int64]*model.Company),
		companyUsers:  make(map[int64]*model.CompanyUser),
		conversations: make(map[int64]*model.Conversation),
		messages:      make(map[int64][]model.Message),
		nextConvID:    1,
		nextMsgID:     1,
	}
}

func (s *fakeMessagingStore) GetUser(_ context.Context, id int64) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (s *fakeMessagingStore) GetCompany(_ context.Context, id int64) (*model.Company, error) {
	c, ok := s.companies[id]
	if !ok {
		return nil, domain.ErrCompanyNotFound
	}
	return c, nil
}

func (s *fakeMessagingStore) GetCompanyUser(_ context.Context, id int64) (*model.CompanyUser, error) {
	cu, ok := s.companyUsers[id]
	if !ok {
		return nil, domain.ErrCompanyUserNotFound
	}
	return cu, nil
}

func (s *fakeMessagingStore) GetConversation(_ context.Context, id int64) (*model.Conversation, error) {
	conv, ok := s.conversations[id]
	if !ok {
		return nil, domain.ErrConversationNotFound
	}
	copied := *conv
	return &copied, nil
}

func (s *fakeMessagingStore) GetConversationDetail(ctx context.Context, id int64) (*model.ConversationDetail, error) {
	conv, err := s.GetConversation(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.ConversationDetail{Conversation: *conv}, nil
}

func (s *fakeMessagingStore) CreateConversation(_ context.Context, conv *model.Conversation, initial *model.Message) error {
	if s.createConversationErr != nil {
		return s.createConversationErr
	}

	conv.ID = s.nextConvID
	s.nextConvID++
	conv.CreatedAt = time.Now()

	stored := *conv
	s.conversations[conv.ID] = &stored

	if initial != nil {
		initial.ID = s.nextMsgID
		s.nextMsgID++
		initial.ConversationID = conv.ID
		initial.CreatedAt = time.Now()
		s.messages[conv.ID] = append(s.messages[conv.ID], *initial)
	}
	return nil
}

func (s *fakeMessagingStore) ListConversations(_ context.Context, filter storage.ConversationFilter) ([]model.ConversationListItem, int, error) {
	var items []model.ConversationListItem
	for _, conv := range s.conversations {
		if filter.UserID != 0 && conv.UserID != filter.UserID {
			continue
		}
		if filter.CompanyID != 0 && conv.CompanyID != filter.CompanyID {
			continue
		}
		// Archived filters the flag owned by the requesting party.
		if filter.Archived != nil {
			flag := conv.IsArchivedByUser
			if filter.CompanyID != 0 {
				flag = conv.IsArchivedByCompany
			}
			if flag != *filter.Archived {
				continue
			}
		}
		items = append(items, model.ConversationListItem{Conversation: *conv})
	}
	return items, len(items), nil
}

func (s *fakeMessagingStore) SetConversationArchived(_ context.Context, id int64, party domain.Party, archived bool) error {
	conv, ok := s.conversations[id]
	if !ok {
		return domain.ErrConversationNotFound
	}
	if party == domain.PartyUser {
		conv.IsArchivedByUser = archived
	} else {
		conv.IsArchivedByCompany = archived
	}
	return nil
}

func (s *fakeMessagingStore) CreateMessage(_ context.Context, msg *model.Message) error {
	conv, ok := s.conversations[msg.ConversationID]
	if !ok {
		return domain.ErrConversationNotFound
	}

	msg.ID = s.nextMsgID
	s.nextMsgID++
	msg.CreatedAt = time.Now()
	s.messages[msg.ConversationID] = append(s.messages[msg.ConversationID], *msg)

	now := msg.CreatedAt
	conv.LastMessageAt = &now
	if msg.SenderType == domain.PartyUser.String() {
		conv.IsArchivedByUser = false
	} else {
		conv.IsArchivedByCompany = false
	}
	return nil
}

func (s *fakeMessagingStore) ListMessages(_ context.Context, conversationID int64, page, perPage int) ([]model.Message, int, error) {
	msgs := s.messages[conversationID]
	start := (page - 1) * perPage
	if start > len(msgs) {
		start = len(msgs)
	}
	end := start + perPage
	if end > len(msgs) {
		end = len(msgs)
	}
	return msgs[start:end], len(msgs), nil
}

func (s *fakeMessagingStore) MarkMessageRead(_ context.Context, id int64) error {
	for convID := range s.messages {
		for i := range s.messages[convID] {
			if s.messages[convID][i].ID == id {
				s.messages[convID][i].IsRead = true
				return nil
			}
		}
	}
	return domain.ErrMessageNotFound
}

func (s *fakeMessagingStore) MarkConversationRead(_ context.Context, conversationID int64, reader domain.Party) (int64, error) {
	var count int64
	sender := reader.Opposite().String()
	for i := range s.messages[conversationID] {
		msg := &s.messages[conversationID][i]
		if msg.SenderType == sender && !msg.IsRead {
			msg.IsRead = true
			count++
		}
	}
	return count, nil
}

func newMessagingTestServer(store MessagingStore, publisher EventPublisher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewMessagingHandler(store, publisher, slog.New(slog.NewTextHandler(io.Discard, nil)))

	r := gin.New()
	r.POST("/conversations", h.CreateConversation)
	r.GET("/conversations/:id", h.GetConversation)
	r.GET("/conversations/:id/messages", h.ListMessages)
	r.POST("/conversations/:id/messages", h.SendMessage)
	r.PUT("/conversations/:id/read", h.MarkConversationRead)
	r.PUT("/conversations/:id/archive", h.ArchiveConversation)
	r.PUT("/conversations/:id/unarchive", h.UnarchiveConversation)
	r.PUT("/messages/:id/read", h.MarkMessageRead)
	r.GET("/users/:id/conversations", h.ListUserConversations)
	r.GET("/companies/:id/conversations", h.ListCompanyConversations)
	return r
}

func seedParticipants(store *fakeMessagingStore) {
	store.users[1] = &model.User{ID: 1, Username: "alice", Email: "alice@example.com"}
	store.companies[2] = &model.Company{ID: 2, Name: "Acme", Slug: "acme", Email: "hr@acme.test"}
	store.companyUsers[10] = &model.CompanyUser{ID: 10, CompanyID: 2, Email: "bob@acme.test", Role: domain.RoleRecruiter}
	store.companyUsers[11] = &model.CompanyUser{ID: 11, CompanyID: 99, Email: "eve@other.test", Role: domain.RoleRecruiter}
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestCreateConversation(t *testing.T) {
	store := newFakeMessagingStore()
	seedParticipants(store)
	publisher := &recordingPublisher{}
	r := newMessagingTestServer(store, publisher)

	msg := "Hello, I saw your posting"
	w := doJSON(t, r, http.MethodPost, "/conversations", gin.H{
		"user_id":         1,
		"company_id":      2,
		"subject":         "Backend role",
		"initial_message": msg,
	})

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["id"])
	assert.Equal(t, "Backend role", body["subject"])

	// Initial message persisted in the same call
	require.Len(t, store.messages[1], 1)
	assert.Equal(t, msg, store.messages[1][0].Content)
	assert.Equal(t, "user", store.messages[1][0].SenderType)

	// Counterpart notified
	require.Len(t, publisher.events, 1)
	assert.Equal(t, events.TypeMessageSent, publisher.events[0].eventType)
	sent := publisher.events[0].payload.(events.MessageSent)
	assert.Equal(t, "company", sent.RecipientType)
	assert.Equal(t, int64(2), sent.RecipientID)
}

func TestCreateConversation_CompanySender(t *testing.T) {
	store := newFakeMessagingStore()
	seedParticipants(store)
	publisher := &recordingPublisher{}
	r := newMessagingTestServer(store, publisher)

	w := doJSON(t, r, http.MethodPost, "/conversations", gin.H{
		"user_id":         1,
		"company_id":      2,
		"initial_message": "We reviewed your profile and would like to talk",
		"sender_type":     "company",
		"company_user_id": 10,
	})

	require.Equal(t, http.StatusCreated, w.Code)

	// The first message carries the seat's attribution
	require.Len(t, store.messages[1], 1)
	assert.Equal(t, "company", store.messages[1][0].SenderType)
	assert.Equal(t, int64(10), store.messages[1][0].SenderID)

	// The applicant is the one notified
	require.Len(t, publisher.events, 1)
	sent := publisher.events[0].payload.(events.MessageSent)
	assert.Equal(t, "user", sent.RecipientType)
	assert.Equal(t, int64(1), sent.RecipientID)
}

func TestCreateConversation_CompanySenderRejected(t *testing.T) {
	store := newFakeMessagingStore()
	seedParticipants(store)
	r := newMessagingTestServer(store, &recordingPublisher{})

	tests := []struct {
		name     string
		body     gin.H
		wantCode int
	}{
		{
			name: "missing company_user_id",
			body: gin.H{
				"user_id": 1, "company_id": 2,
				"initial_message": "hello", "sender_type": "company",
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "seat of another company",
			body: gin.H{
				"user_id": 1, "company_id": 2,
				"initial_message": "hello", "sender_type": "company",
				"company_user_id": 11,
			},
			wantCode: http.StatusForbidden,
		},
		{
			name: "unknown sender type",
			body: gin.H{
				"user_id": 1, "company_id": 2,
				"initial_message": "hello", "sender_type": "robot",
			},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/conversations", tt.body)
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}

	assert.Empty(t, store.conversations)
}

func TestCreateConversation_WithoutInitialMessage(t *testing.T) {
	store := newFakeMessagingStore()
	seedParticipants(store)
	publisher := &recordingPublisher{}
	r := newMessagingTestServer(store, publisher)

	w := doJSON(t, r, http.MethodPost, "/conversations", gin.H{
		"user_id":    1,
		"company_id": 2,
	})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Empty(t, store.messages[1])
	assert.Empty(t, publisher.events)
}

func TestCreateConversation_DuplicatePair(t *testing.T) {
	store := newFakeMessagingStore()
	seedParticipants(store)
	store.createConversationErr = &domain.ConversationExistsError{ConversationID: 42}
	r := newMessagingTestServer(store, &recordingPublisher{})

	w := doJSON(t, r, http.MethodPost, "/conversations", gin.H{
		"user_id":    1,
		"company_id": 2,
	})

	require.Equal(t, http.StatusConflict, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(42), body["conversation_id"])
	assert.Contains(t, body["error"], "already exists")
}

func TestCreateConversation_UnknownParticipants(t *testing.T) {
	store := newFakeMessagingStore()
	seedParticipants(store)
	r := newMessagingTestServer(store, &recordingPublisher{})

	w := doJSON(t, r, http.MethodPost, "/conversations", gin.H{
		"user_id":    999,
		"company_id": 2,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodPost, "/conversations", gin.H{
		"user_id":    1,
		"company_id": 999,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSendMessage(t *testing.T) {
	store := newFakeMessagingStore()
	seedParticipants(store)
	store.conversations[5] = &model.Conversation{
		ID: 5, UserID: 1, CompanyID: 2,
		IsArchivedByUser: true, IsArchivedByCompany: true,
	}
	publisher := &recordingPublisher{}
	r := newMessagingTestServer(store, publisher)

	w := doJSON(t, r, http.MethodPost, "/conversations/5/messages", gin.H{
		"sender_type": "user",
		"sender_id":   1,
		"content":     "Still interested?",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "user", body["sender_type"])
	assert.Equal(t, "Still interested?", body["content"])

	// Sending advances the conversation clock
	assert.NotNil(t, store.conversations[5].LastMessageAt)

	// Sending clears the sender's own archive flag only
	assert.False(t, store.conversations[5].IsArchivedByUser)
	assert.True(t, store.conversations[5].IsArchivedByCompany)

	require.Len(t, publisher.events, 1)
	sent := publisher.events[0].payload.(events.MessageSent)
	assert.Equal(t, "company", sent.RecipientType)
	assert.Equal(t, int64(2), sent.RecipientID)
}

func TestSendMessage_CompanySeat(t *testing.T) {
	store := newFakeMessagingStore()
	seedParticipants(store)
	store.conversations[5] = &model.Conversation{ID: 5, UserID: 1, CompanyID: 2}
	publisher := &recordingPublisher{}
	r := newMessagingTestServer(store, publisher)

	w := doJSON(t, r, http.MethodPost, "/conversations/5/messages", gin.H{
		"sender_type": "company",
		"sender_id":   10,
		"content":     "We would like to schedule a call",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	sent := publisher.events[0].payload.(events.MessageSent)
	assert.Equal(t, "user", sent.RecipientType)
	assert.Equal(t, int64(1), sent.RecipientID)
}

func TestSendMessage_SenderNotParticipant(t *testing.T) {
	store := newFakeMessagingStore()
	seedParticipants(store)
	store.users[3] = &model.User{ID: 3, Username: "mallory"}
	store.conversations[5] = &model.Conversation{ID: 5, UserID: 1, CompanyID: 2}
	r := newMessagingTestServer(store, &recordingPublisher{})

	tests := []struct {
		name       string
		senderType string
		senderID   int64
	}{
		{name: "wrong user", senderType: "user", senderID: 3},
		{name: "seat of another company", senderType: "company", senderID: 11},
		{name: "unknown company seat", senderType: "company", senderID: 777},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/conversations/5/messages", gin.H{
				"sender_type": tt.senderType,
				"sender_id":   tt.senderID,
				"content":     "hi",
			})
			assert.Equal(t, http.StatusForbidden, w.Code)
		})
	}

	assert.Empty(t, store.messages[5])
}

func TestSendMessage_InvalidSenderType(t *testing.T) {
	store := newFakeMessagingStore()
	seedParticipants(store)
	store.conversations[5] = &model.Conversation{ID: 5, UserID: 1, CompanyID: 2}
	r := newMessagingTestServer(store, &recordingPublisher{})

	w := doJSON(t, r, http.MethodPost, "/conversations/5/messages", gin.H{
		"sender_type": "admin",
		"sender_id":   1,
		"content":     "hi",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMarkConversationRead(t *testing.T) {
	store := newFakeMessagingStore()
	seedParticipants(store)
	store.conversations[5] = &model.Conversation{ID: 5, UserID: 1, CompanyID: 2}
	store.messages[5] = []model.Message{
		{ID: 1, ConversationID: 5, SenderType: "company", SenderID: 10, Content: "a"},
		{ID: 2, ConversationID: 5, SenderType: "company", SenderID: 10, Content: "b"},
		{ID: 3, ConversationID: 5, SenderType: "user", SenderID: 1, Content: "c"},
	}
	r := newMessagingTestServer(store, &recordingPublisher{})

	// The user reads: only the company's messages flip
	w := doJSON(t, r, http.MethodPut, "/conversations/5/read", gin.H{"reader_type": "user"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), decodeBody(t, w)["messages_marked_read"])

	// Second read reports zero
	w = doJSON(t, r, http.MethodPut, "/conversations/5/read", gin.H{"reader_type": "user"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decodeBody(t, w)["messages_marked_read"])

	// The user's own message stays unread
	assert.False(t, store.messages[5][2].IsRead)
}

func TestMarkConversationRead_InvalidReader(t *testing.T) {
	store := newFakeMessagingStore()
	store.conversations[5] = &model.Conversation{ID: 5, UserID: 1, CompanyID: 2}
	r := newMessagingTestServer(store, &recordingPublisher{})

	w := doJSON(t, r, http.MethodPut, "/conversations/5/read", gin.H{"reader_type": "moderator"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestArchiveConversation_FlagsAreIndependent(t *testing.T) {
	store := newFakeMessagingStore()
	store.conversations[5] = &model.Conversation{ID: 5, UserID: 1, CompanyID: 2}
	r := newMessagingTestServer(store, &recordingPublisher{})

	w := doJSON(t, r, http.MethodPut, "/conversations/5/archive", gin.H{"archiver_type": "user"})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["is_archived_by_user"])
	assert.Equal(t, false, body["is_archived_by_company"])

	w = doJSON(t, r, http.MethodPut, "/conversations/5/archive", gin.H{"archiver_type": "company"})
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	assert.Equal(t, true, body["is_archived_by_user"])
	assert.Equal(t, true, body["is_archived_by_company"])

	w = doJSON(t, r, http.MethodPut, "/conversations/5/unarchive", gin.H{"archiver_type": "user"})
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	assert.Equal(t, false, body["is_archived_by_user"])
	assert.Equal(t, true, body["is_archived_by_company"])
}

func TestListMessages_Pagination(t *testing.T) {
	store := newFakeMessagingStore()
	store.conversations[5] = &model.Conversation{ID: 5, UserID: 1, CompanyID: 2}
	for i := 0; i < 25; i++ {
		store.messages[5] = append(store.messages[5], model.Message{
			ID: int64(i + 1), ConversationID: 5, SenderType: "user", SenderID: 1, Content: "m",
		})
	}
	r := newMessagingTestServer(store, &recordingPublisher{})

	w := doJSON(t, r, http.MethodGet, "/conversations/5/messages?page=2&per_page=20", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)

	assert.Equal(t, float64(25), body["total"])
	assert.Equal(t, float64(2), body["pages"])
	assert.Equal(t, float64(2), body["current_page"])
	assert.Len(t, body["items"], 5)
}

func TestListMessages_ConversationNotFound(t *testing.T) {
	store := newFakeMessagingStore()
	r := newMessagingTestServer(store, &recordingPublisher{})

	w := doJSON(t, r, http.MethodGet, "/conversations/999/messages", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMarkMessageRead(t *testing.T) {
	store := newFakeMessagingStore()
	store.conversations[5] = &model.Conversation{ID: 5, UserID: 1, CompanyID: 2}
	store.messages[5] = []model.Message{
		{ID: 7, ConversationID: 5, SenderType: "company", SenderID: 10, Content: "a"},
	}
	r := newMessagingTestServer(store, &recordingPublisher{})

	w := doJSON(t, r, http.MethodPut, "/messages/7/read", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, store.messages[5][0].IsRead)

	w = doJSON(t, r, http.MethodPut, "/messages/999/read", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListUserConversations(t *testing.T) {
	store := newFakeMessagingStore()
	seedParticipants(store)
	store.conversations[5] = &model.Conversation{ID: 5, UserID: 1, CompanyID: 2}
	r := newMessagingTestServer(store, &recordingPublisher{})

	w := doJSON(t, r, http.MethodGet, "/users/1/conversations", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["total"])

	w = doJSON(t, r, http.MethodGet, "/users/999/conversations", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListUserConversations_ArchivedFilter(t *testing.T) {
	store := newFakeMessagingStore()
	seedParticipants(store)
	store.companies[3] = &model.Company{ID: 3, Name: "Globex", Slug: "globex", Email: "hr@globex.test"}
	store.conversations[5] = &model.Conversation{ID: 5, UserID: 1, CompanyID: 2}
	store.conversations[6] = &model.Conversation{ID: 6, UserID: 1, CompanyID: 3}
	store.nextConvID = 7
	r := newMessagingTestServer(store, &recordingPublisher{})

	w := doJSON(t, r, http.MethodPut, "/conversations/6/archive", gin.H{"archiver_type": "user"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/users/1/conversations?archived=false", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	require.Equal(t, float64(1), body["total"])
	items := body["items"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, float64(5), items[0].(map[string]interface{})["id"])

	// The company's side is untouched by the user's flag
	w = doJSON(t, r, http.MethodGet, "/companies/3/conversations?archived=false", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeBody(t, w)["total"])

	w = doJSON(t, r, http.MethodGet, "/users/1/conversations?archived=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(6), decodeBody(t, w)["items"].([]interface{})[0].(map[string]interface{})["id"])
}

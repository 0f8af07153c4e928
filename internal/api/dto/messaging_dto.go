package dto

import (
	"github.com/talenthub/jobboard-be/internal/api/model"
)

// messagePreviewLimit caps the last-message preview embedded in
// conversation listings.
const messagePreviewLimit = 100

type CreateConversationRequest struct {
	UserID         int64   `json:"user_id" binding:"required"`
	CompanyID      int64   `json:"company_id" binding:"required"`
	JobPostingID   *int64  `json:"job_posting_id"`
	Subject        *string `json:"subject"`
	InitialMessage *string `json:"initial_message"`
	// SenderType attributes the initial message; defaults to "user".
	// A "company" sender names its seat via CompanyUserID.
	SenderType    *string `json:"sender_type"`
	CompanyUserID *int64  `json:"company_user_id"`
}

type SendMessageRequest struct {
	SenderType string `json:"sender_type" binding:"required"`
	SenderID   int64  `json:"sender_id" binding:"required"`
	Content    string `json:"content" binding:"required"`
}

type MarkConversationReadRequest struct {
	ReaderType string `json:"reader_type" binding:"required"`
}

type ArchiveConversationRequest struct {
	ArchiverType string `json:"archiver_type" binding:"required"`
}

type ListConversationsRequest struct {
	Archived *bool `form:"archived"`
	Page     int   `form:"page"`
	PerPage  int   `form:"per_page"`
}

type ConversationResponse struct {
	ID                  int64                 `json:"id"`
	UserID              int64                 `json:"user_id"`
	CompanyID           int64                 `json:"company_id"`
	JobPostingID        *int64                `json:"job_posting_id"`
	Subject             *string               `json:"subject"`
	IsArchivedByUser    bool                  `json:"is_archived_by_user"`
	IsArchivedByCompany bool                  `json:"is_archived_by_company"`
	LastMessageAt       *string               `json:"last_message_at"`
	CreatedAt           string                `json:"created_at"`
	User                *model.UserSummary    `json:"user,omitempty"`
	Company             *model.CompanySummary `json:"company,omitempty"`
}

func FromConversation(c *model.Conversation) ConversationResponse {
	return ConversationResponse{
		ID:                  c.ID,
		UserID:              c.UserID,
		CompanyID:           c.CompanyID,
		JobPostingID:        c.JobPostingID,
		Subject:             c.Subject,
		IsArchivedByUser:    c.IsArchivedByUser,
		IsArchivedByCompany: c.IsArchivedByCompany,
		LastMessageAt:       formatTimePtr(c.LastMessageAt),
		CreatedAt:           formatTime(c.CreatedAt),
	}
}

func FromConversationDetail(d *model.ConversationDetail) ConversationResponse {
	resp := FromConversation(&d.Conversation)
	user := d.User
	company := d.Company
	resp.User = &user
	resp.Company = &company
	return resp
}

// MessagePreview is the truncated last message embedded in a
// conversation listing row.
type MessagePreview struct {
	ID         int64  `json:"id"`
	Content    string `json:"content"`
	SenderType string `json:"sender_type"`
	IsRead     bool   `json:"is_read"`
	CreatedAt  string `json:"created_at"`
}

type ConversationListItemResponse struct {
	ConversationResponse
	LastMessage *MessagePreview `json:"last_message"`
	UnreadCount int             `json:"unread_count"`
}

func FromConversationListItem(item *model.ConversationListItem) ConversationListItemResponse {
	resp := ConversationListItemResponse{
		ConversationResponse: FromConversation(&item.Conversation),
		UnreadCount:          item.UnreadCount,
	}
	resp.User = item.User
	resp.Company = item.Company

	if item.LastMsgID != nil {
		resp.LastMessage = &MessagePreview{
			ID:         *item.LastMsgID,
			Content:    truncateContent(*item.LastMsgContent),
			SenderType: *item.LastMsgSenderType,
			IsRead:     *item.LastMsgIsRead,
			CreatedAt:  formatTime(*item.LastMsgCreatedAt),
		}
	}
	return resp
}

func FromConversationListItems(items []model.ConversationListItem) []ConversationListItemResponse {
	out := make([]ConversationListItemResponse, 0, len(items))
	for i := range items {
		out = append(out, FromConversationListItem(&items[i]))
	}
	return out
}

type MessageResponse struct {
	ID             int64  `json:"id"`
	ConversationID int64  `json:"conversation_id"`
	SenderType     string `json:"sender_type"`
	SenderID       int64  `json:"sender_id"`
	Content        string `json:"content"`
	IsRead         bool   `json:"is_read"`
	CreatedAt      string `json:"created_at"`
}

func FromMessage(m *model.Message) MessageResponse {
	return MessageResponse{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderType:     m.SenderType,
		SenderID:       m.SenderID,
		Content:        m.Content,
		IsRead:         m.IsRead,
		CreatedAt:      formatTime(m.CreatedAt),
	}
}

func FromMessages(messages []model.Message) []MessageResponse {
	out := make([]MessageResponse, 0, len(messages))
	for i := range messages {
		out = append(out, FromMessage(&messages[i]))
	}
	return out
}

// truncateContent shortens a preview to messagePreviewLimit characters,
// appending an ellipsis marker when anything was cut. Counts runes, not
// bytes, so multi-byte content is never split mid-character.
func truncateContent(s string) string {
	runes := []rune(s)
	if len(runes) <= messagePreviewLimit {
		return s
	}
	return string(runes[:messagePreviewLimit]) + "..."
}

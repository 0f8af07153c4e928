package model

import "time"

// Conversation is a durable channel between one user and one company,
// optionally tied to a job posting. The (user_id, company_id) pair is
// unique at the storage layer. The two archive flags are independent
// per-party switches, never a shared state.
type Conversation struct {
	ID                int64      `db:"id"`
	UserID            int64      `db:"user_id"`
	CompanyID         int64      `db:"company_id"`
	JobPostingID      *int64     `db:"job_posting_id"`
	Subject           *string    `db:"subject"`
	IsArchivedByUser  bool       `db:"is_archived_by_user"`
	IsArchivedByCompany bool     `db:"is_archived_by_company"`
	LastMessageAt     *time.Time `db:"last_message_at"`
	CreatedAt         time.Time  `db:"created_at"`
}

// Message belongs to exactly one conversation. SenderID is interpreted
// according to SenderType: a User id for "user", a CompanyUser id for
// "company". IsRead only ever transitions false to true.
type Message struct {
	ID             int64     `db:"id"`
	ConversationID int64     `db:"conversation_id"`
	SenderType     string    `db:"sender_type"`
	SenderID       int64     `db:"sender_id"`
	Content        string    `db:"content"`
	IsRead         bool      `db:"is_read"`
	CreatedAt      time.Time `db:"created_at"`
}

// ConversationDetail is a conversation enriched with shallow
// projections of both participants.
type ConversationDetail struct {
	Conversation
	User    UserSummary    `db:"user"`
	Company CompanySummary `db:"company"`
}

// ConversationListItem is one enriched row of a conversation listing:
// the conversation plus the last message and the count of unread
// messages sent by the counterpart.
type ConversationListItem struct {
	Conversation
	LastMsgID         *int64     `db:"last_msg_id"`
	LastMsgContent    *string    `db:"last_msg_content"`
	LastMsgSenderType *string    `db:"last_msg_sender_type"`
	LastMsgIsRead     *bool      `db:"last_msg_is_read"`
	LastMsgCreatedAt  *time.Time `db:"last_msg_created_at"`
	UnreadCount       int        `db:"unread_count"`

	// Exactly one of these is populated depending on which side the
	// listing is for.
	User    *UserSummary    `db:"user"`
	Company *CompanySummary `db:"company"`
}

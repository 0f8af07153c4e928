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
	"github.com/talenthub/jobboard-be/internal/events"
)

// MessagingStore is the slice of storage the messaging endpoints use.
type MessagingStore interface {
	GetUser(ctx context.Context, id int64) (*model.User, error)
	GetCompany(ctx context.Context, id int64) (*model.Company, error)
	GetCompanyUser(ctx context.Context, id int64) (*model.CompanyUser, error)
	GetConversation(ctx context.Context, id int64) (*model.Conversation, error)
	GetConversationDetail(ctx context.Context, id int64) (*model.ConversationDetail, error)
	CreateConversation(ctx context.Context, conv *model.Conversation, initial *model.Message) error
	ListConversations(ctx context.Context, filter storage.ConversationFilter) ([]model.ConversationListItem, int, error)
	SetConversationArchived(ctx context.Context, id int64, party domain.Party, archived bool) error
	CreateMessage(ctx context.Context, msg *model.Message) error
	ListMessages(ctx context.Context, conversationID int64, page, perPage int) ([]model.Message, int, error)
	MarkMessageRead(ctx context.Context, id int64) error
	MarkConversationRead(ctx context.Context, conversationID int64, reader domain.Party) (int64, error)
}

type MessagingHandler struct {
	store     MessagingStore
	publisher EventPublisher
	logger    *slog.Logger
}

func NewMessagingHandler(store MessagingStore, publisher EventPublisher, logger *slog.Logger) *MessagingHandler {
	return &MessagingHandler{
		store:     store,
		publisher: publisher,
		logger:    logger.With(slog.String("handler", "messaging")),
	}
}

// ListCompanyConversations handles GET /companies/:id/conversations
func (h *MessagingHandler) ListCompanyConversations(c *gin.Context) {
	companyID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if _, err := h.store.GetCompany(c.Request.Context(), companyID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	var req dto.ListConversationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}
	page, perPage := normalizePage(req.Page, req.PerPage, defaultPerPage)

	items, total, err := h.store.ListConversations(c.Request.Context(), storage.ConversationFilter{
		CompanyID: companyID,
		Archived:  req.Archived,
		Page:      page,
		PerPage:   perPage,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListResponse(dto.FromConversationListItems(items), total, page, perPage))
}

// ListUserConversations handles GET /users/:id/conversations
func (h *MessagingHandler) ListUserConversations(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if _, err := h.store.GetUser(c.Request.Context(), userID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	var req dto.ListConversationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}
	page, perPage := normalizePage(req.Page, req.PerPage, defaultPerPage)

	items, total, err := h.store.ListConversations(c.Request.Context(), storage.ConversationFilter{
		UserID:   userID,
		Archived: req.Archived,
		Page:     page,
		PerPage:  perPage,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListResponse(dto.FromConversationListItems(items), total, page, perPage))
}

// GetConversation handles GET /conversations/:id
func (h *MessagingHandler) GetConversation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	detail, err := h.store.GetConversationDetail(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromConversationDetail(detail))
}

// CreateConversation handles POST /conversations
//
// The optional initial message is written in the same transaction as
// the conversation row and defaults to the user as sender; a company
// opening the conversation names its seat via sender_type plus
// company_user_id. A duplicate (user, company) pair responds 409
// carrying the existing conversation id.
func (h *MessagingHandler) CreateConversation(c *gin.Context) {
	var req dto.CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx := c.Request.Context()

	if _, err := h.store.GetUser(ctx, req.UserID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	if _, err := h.store.GetCompany(ctx, req.CompanyID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	conv := &model.Conversation{
		UserID:       req.UserID,
		CompanyID:    req.CompanyID,
		JobPostingID: req.JobPostingID,
		Subject:      req.Subject,
	}

	var initial *model.Message
	if req.InitialMessage != nil && strings.TrimSpace(*req.InitialMessage) != "" {
		sender := domain.Principal{Type: domain.PartyUser, ID: req.UserID}
		if req.SenderType != nil {
			party, err := domain.ParseParty(*req.SenderType)
			if err != nil {
				respondError(c, h.logger, err)
				return
			}
			sender.Type = party
			if party == domain.PartyCompany {
				if req.CompanyUserID == nil {
					respondError(c, h.logger, domain.NewValidationError(
						"company_user_id is required for a company sender"))
					return
				}
				sender.ID = *req.CompanyUserID
			}
		}
		if err := h.authorizeSender(ctx, conv, sender); err != nil {
			respondError(c, h.logger, err)
			return
		}
		initial = &model.Message{
			SenderType: sender.Type.String(),
			SenderID:   sender.ID,
			Content:    *req.InitialMessage,
		}
	}

	if err := h.store.CreateConversation(ctx, conv, initial); err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.Info("Conversation created",
		slog.Int64("conversation_id", conv.ID),
		slog.Int64("user_id", conv.UserID),
		slog.Int64("company_id", conv.CompanyID),
	)

	if initial != nil {
		recipient := domain.PartyCompany
		recipientID := conv.CompanyID
		if initial.SenderType == domain.PartyCompany.String() {
			recipient = domain.PartyUser
			recipientID = conv.UserID
		}
		h.publisher.Publish(ctx, events.TypeMessageSent, events.MessageSent{
			ConversationID: conv.ID,
			MessageID:      initial.ID,
			SenderType:     initial.SenderType,
			RecipientType:  recipient.String(),
			RecipientID:    recipientID,
			Preview:        initial.Content,
		})
	}

	c.JSON(http.StatusCreated, dto.FromConversation(conv))
}

// ListMessages handles GET /conversations/:id/messages
func (h *MessagingHandler) ListMessages(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if _, err := h.store.GetConversation(ctx, id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	page, perPage := normalizePage(
		queryInt(c, "page"), queryInt(c, "per_page"), defaultMessagePerPage)

	messages, total, err := h.store.ListMessages(ctx, id, page, perPage)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListResponse(dto.FromMessages(messages), total, page, perPage))
}

// SendMessage handles POST /conversations/:id/messages
//
// The sender must be a participant: a user sender must match the
// conversation's user, a company sender must be an active seat of the
// conversation's company. Persisting the message also advances
// last_message_at and clears the sender's own archive flag.
func (h *MessagingHandler) SendMessage(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	sender, err := domain.ParseParty(req.SenderType)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	ctx := c.Request.Context()
	conv, err := h.store.GetConversation(ctx, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := h.authorizeSender(ctx, conv, domain.Principal{Type: sender, ID: req.SenderID}); err != nil {
		respondError(c, h.logger, err)
		return
	}

	msg := &model.Message{
		ConversationID: conv.ID,
		SenderType:     sender.String(),
		SenderID:       req.SenderID,
		Content:        req.Content,
	}
	if err := h.store.CreateMessage(ctx, msg); err != nil {
		respondError(c, h.logger, err)
		return
	}

	recipient := sender.Opposite()
	recipientID := conv.UserID
	if recipient == domain.PartyCompany {
		recipientID = conv.CompanyID
	}
	h.publisher.Publish(ctx, events.TypeMessageSent, events.MessageSent{
		ConversationID: conv.ID,
		MessageID:      msg.ID,
		SenderType:     msg.SenderType,
		RecipientType:  recipient.String(),
		RecipientID:    recipientID,
		Preview:        msg.Content,
	})

	c.JSON(http.StatusCreated, dto.FromMessage(msg))
}

// authorizeSender checks the resolved principal against the
// conversation's participants.
func (h *MessagingHandler) authorizeSender(ctx context.Context, conv *model.Conversation, p domain.Principal) error {
	switch p.Type {
	case domain.PartyUser:
		if p.ID != conv.UserID {
			return domain.ErrSenderNotParticipant
		}
		return nil
	case domain.PartyCompany:
		seat, err := h.store.GetCompanyUser(ctx, p.ID)
		if err != nil {
			return domain.ErrSenderNotParticipant
		}
		if seat.CompanyID != conv.CompanyID {
			return domain.ErrSenderNotParticipant
		}
		return nil
	default:
		return domain.ErrInvalidParty
	}
}

// MarkMessageRead handles PUT /messages/:id/read
func (h *MessagingHandler) MarkMessageRead(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.store.MarkMessageRead(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message marked as read"})
}

// MarkConversationRead handles PUT /conversations/:id/read
//
// Marks every unread message sent by the reader's counterpart and
// reports how many rows actually flipped. A second call right after
// reports zero.
func (h *MessagingHandler) MarkConversationRead(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.MarkConversationReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	reader, err := domain.ParseParty(req.ReaderType)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	ctx := c.Request.Context()
	if _, err := h.store.GetConversation(ctx, id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	count, err := h.store.MarkConversationRead(ctx, id, reader)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages_marked_read": count})
}

// ArchiveConversation handles PUT /conversations/:id/archive
func (h *MessagingHandler) ArchiveConversation(c *gin.Context) {
	h.setArchived(c, true)
}

// UnarchiveConversation handles PUT /conversations/:id/unarchive
func (h *MessagingHandler) UnarchiveConversation(c *gin.Context) {
	h.setArchived(c, false)
}

// setArchived flips one party's archive flag and leaves the other
// party's untouched.
func (h *MessagingHandler) setArchived(c *gin.Context, archived bool) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.ArchiveConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	archiver, err := domain.ParseParty(req.ArchiverType)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	ctx := c.Request.Context()
	if _, err := h.store.GetConversation(ctx, id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := h.store.SetConversationArchived(ctx, id, archiver, archived); err != nil {
		respondError(c, h.logger, err)
		return
	}

	conv, err := h.store.GetConversation(ctx, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromConversation(conv))
}

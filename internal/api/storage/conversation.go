package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/talenthub/jobboard-be/internal/api/domain"
	"github.com/talenthub/jobboard-be/internal/api/model"
)

const conversationColumns = `
	id, user_id, company_id, job_posting_id, subject,
	is_archived_by_user, is_archived_by_company, last_message_at, created_at
`

// ConversationFilter narrows a conversation listing. Exactly one of
// CompanyID and UserID is set; Archived filters the flag owned by that
// side.
type ConversationFilter struct {
	CompanyID int64
	UserID    int64
	Archived  *bool
	Page      int
	PerPage   int
}

func (s *Storage) GetConversation(ctx context.Context, id int64) (*model.Conversation, error) {
	var conv model.Conversation
	query := `SELECT` + conversationColumns + `FROM conversations WHERE id = $1`

	err := s.db.GetContext(ctx, &conv, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrConversationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}

	return &conv, nil
}

// GetConversationDetail fetches one conversation with both participant
// summaries joined in.
func (s *Storage) GetConversationDetail(ctx context.Context, id int64) (*model.ConversationDetail, error) {
	var detail model.ConversationDetail
	query := `
		SELECT
			cv.id, cv.user_id, cv.company_id, cv.job_posting_id, cv.subject,
			cv.is_archived_by_user, cv.is_archived_by_company,
			cv.last_message_at, cv.created_at,
			u.id AS "user.id", u.first_name AS "user.first_name",
			u.last_name AS "user.last_name", u.email AS "user.email",
			u.profile_picture AS "user.profile_picture",
			c.id AS "company.id", c.name AS "company.name", c.logo AS "company.logo"
		FROM conversations cv
		JOIN users u ON u.id = cv.user_id
		JOIN companies c ON c.id = cv.company_id
		WHERE cv.id = $1
	`

	err := s.db.GetContext(ctx, &detail, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrConversationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation detail: %w", err)
	}

	return &detail, nil
}

// FindConversationByPair returns the conversation for a (user, company)
// pair, or ErrConversationNotFound.
func (s *Storage) FindConversationByPair(ctx context.Context, userID, companyID int64) (*model.Conversation, error) {
	var conv model.Conversation
	query := `SELECT` + conversationColumns + `FROM conversations WHERE user_id = $1 AND company_id = $2`

	err := s.db.GetContext(ctx, &conv, query, userID, companyID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrConversationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find conversation by pair: %w", err)
	}

	return &conv, nil
}

// CreateConversation inserts the conversation and, when initial is not
// nil, its first message in the same transaction. last_message_at is
// set to the creation time either way. The unique (user_id, company_id)
// constraint closes the create race: a concurrent duplicate surfaces as
// a ConversationExistsError carrying the winner's id.
func (s *Storage) CreateConversation(ctx context.Context, conv *model.Conversation, initial *model.Message) error {
	err := s.client.RunInTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO conversations (user_id, company_id, job_posting_id, subject, last_message_at)
			VALUES ($1, $2, $3, $4, NOW())
			RETURNING id, is_archived_by_user, is_archived_by_company, last_message_at, created_at
		`

		err := tx.QueryRowxContext(
			ctx,
			query,
			conv.UserID,
			conv.CompanyID,
			conv.JobPostingID,
			conv.Subject,
		).Scan(&conv.ID, &conv.IsArchivedByUser, &conv.IsArchivedByCompany, &conv.LastMessageAt, &conv.CreatedAt)

		if err != nil {
			return err
		}

		if initial != nil {
			initial.ConversationID = conv.ID
			msgQuery := `
				INSERT INTO messages (conversation_id, sender_type, sender_id, content)
				VALUES ($1, $2, $3, $4)
				RETURNING id, is_read, created_at
			`

			err := tx.QueryRowxContext(
				ctx,
				msgQuery,
				initial.ConversationID,
				initial.SenderType,
				initial.SenderID,
				initial.Content,
			).Scan(&initial.ID, &initial.IsRead, &initial.CreatedAt)
			if err != nil {
				return fmt.Errorf("failed to create initial message: %w", err)
			}
		}

		return nil
	})

	if isUniqueViolation(err, "conversations_user_id_company_id_key") {
		existing, findErr := s.FindConversationByPair(ctx, conv.UserID, conv.CompanyID)
		if findErr != nil {
			return fmt.Errorf("failed to resolve conflicting conversation: %w", findErr)
		}
		return &domain.ConversationExistsError{ConversationID: existing.ID}
	}
	if err != nil {
		return fmt.Errorf("failed to create conversation: %w", err)
	}

	return nil
}

// ListConversations returns one page of enriched conversations ordered
// by last_message_at descending (NULL ordering is the store default).
// Each row carries the counterpart summary, the latest message and the
// count of unread messages sent by the other party.
func (s *Storage) ListConversations(ctx context.Context, filter ConversationFilter) ([]model.ConversationListItem, int, error) {
	var (
		where         string
		archiveColumn string
		counterType   string
		joinClause    string
		summaryCols   string
		ownerID       int64
	)

	if filter.CompanyID != 0 {
		where = " WHERE cv.company_id = $1"
		archiveColumn = "cv.is_archived_by_company"
		counterType = string(domain.PartyUser)
		joinClause = "JOIN users u ON u.id = cv.user_id"
		summaryCols = `
			u.id AS "user.id", u.first_name AS "user.first_name",
			u.last_name AS "user.last_name", u.email AS "user.email",
			u.profile_picture AS "user.profile_picture"`
		ownerID = filter.CompanyID
	} else {
		where = " WHERE cv.user_id = $1"
		archiveColumn = "cv.is_archived_by_user"
		counterType = string(domain.PartyCompany)
		joinClause = "JOIN companies c ON c.id = cv.company_id"
		summaryCols = `
			c.id AS "company.id", c.name AS "company.name", c.logo AS "company.logo"`
		ownerID = filter.UserID
	}

	args := []interface{}{ownerID}
	argIdx := 2

	if filter.Archived != nil {
		where += fmt.Sprintf(" AND %s = $%d", archiveColumn, argIdx)
		args = append(args, *filter.Archived)
		argIdx++
	}

	var total int
	if err := s.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM conversations cv"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count conversations: %w", err)
	}

	limit, offset := limitOffset(filter.Page, filter.PerPage)
	query := fmt.Sprintf(`
		SELECT
			cv.id, cv.user_id, cv.company_id, cv.job_posting_id, cv.subject,
			cv.is_archived_by_user, cv.is_archived_by_company,
			cv.last_message_at, cv.created_at,
			lm.id AS last_msg_id, lm.content AS last_msg_content,
			lm.sender_type AS last_msg_sender_type, lm.is_read AS last_msg_is_read,
			lm.created_at AS last_msg_created_at,
			COALESCE(un.unread, 0) AS unread_count,
			%s
		FROM conversations cv
		%s
		LEFT JOIN LATERAL (
			SELECT m.id, m.content, m.sender_type, m.is_read, m.created_at
			FROM messages m
			WHERE m.conversation_id = cv.id
			ORDER BY m.created_at DESC, m.id DESC
			LIMIT 1
		) lm ON TRUE
		LEFT JOIN LATERAL (
			SELECT COUNT(*) AS unread
			FROM messages m
			WHERE m.conversation_id = cv.id
			  AND m.sender_type = '%s'
			  AND NOT m.is_read
		) un ON TRUE
		%s
		ORDER BY cv.last_message_at DESC
		LIMIT $%d OFFSET $%d
	`, summaryCols, joinClause, counterType, where, argIdx, argIdx+1)
	args = append(args, limit, offset)

	var items []model.ConversationListItem
	if err := s.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list conversations: %w", err)
	}

	return items, total, nil
}

// SetConversationArchived toggles the archive flag owned by party.
func (s *Storage) SetConversationArchived(ctx context.Context, id int64, party domain.Party, archived bool) error {
	column := "is_archived_by_user"
	if party == domain.PartyCompany {
		column = "is_archived_by_company"
	}

	res, err := s.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE conversations SET %s = $1 WHERE id = $2`, column),
		archived, id)
	if err != nil {
		return fmt.Errorf("failed to set conversation archived: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrConversationNotFound
	}

	return nil
}

package storage

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/talenthub/jobboard-be/internal/api/domain"
	"github.com/talenthub/jobboard-be/internal/api/model"
)

const messageColumns = `
	id, conversation_id, sender_type, sender_id, content, is_read, created_at
`

// CreateMessage inserts the message and, in the same transaction,
// advances the conversation's last_message_at and clears the sender's
// own archive flag. Only the sending party's flag is touched: a reply
// resurfaces the thread for its author, never for the recipient.
func (s *Storage) CreateMessage(ctx context.Context, msg *model.Message) error {
	return s.client.RunInTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO messages (conversation_id, sender_type, sender_id, content)
			VALUES ($1, $2, $3, $4)
			RETURNING id, is_read, created_at
		`

		err := tx.QueryRowxContext(
			ctx,
			query,
			msg.ConversationID,
			msg.SenderType,
			msg.SenderID,
			msg.Content,
		).Scan(&msg.ID, &msg.IsRead, &msg.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to create message: %w", err)
		}

		archiveColumn := "is_archived_by_user"
		if domain.Party(msg.SenderType) == domain.PartyCompany {
			archiveColumn = "is_archived_by_company"
		}

		_, err = tx.ExecContext(ctx,
			fmt.Sprintf(`UPDATE conversations SET last_message_at = $1, %s = FALSE WHERE id = $2`, archiveColumn),
			msg.CreatedAt, msg.ConversationID)
		if err != nil {
			return fmt.Errorf("failed to touch conversation: %w", err)
		}

		return nil
	})
}

// ListMessages returns one page of a conversation's messages, oldest
// first. Conversation lists surface recency; message threads read
// chronologically.
func (s *Storage) ListMessages(ctx context.Context, conversationID int64, page, perPage int) ([]model.Message, int, error) {
	var total int
	err := s.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM messages WHERE conversation_id = $1`, conversationID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count messages: %w", err)
	}

	limit, offset := limitOffset(page, perPage)
	query := `SELECT` + messageColumns + `
		FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at ASC, id ASC
		LIMIT $2 OFFSET $3
	`

	var messages []model.Message
	if err := s.db.SelectContext(ctx, &messages, query, conversationID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to list messages: %w", err)
	}

	return messages, total, nil
}

// MarkMessageRead sets is_read unconditionally; the transition is
// one-way and the call is idempotent.
func (s *Storage) MarkMessageRead(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `UPDATE messages SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark message read: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrMessageNotFound
	}

	return nil
}

// MarkConversationRead marks every unread message sent by the opposite
// party of reader as read and returns the number transitioned. A second
// call in a row returns 0.
func (s *Storage) MarkConversationRead(ctx context.Context, conversationID int64, reader domain.Party) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE messages SET is_read = TRUE
		 WHERE conversation_id = $1 AND sender_type = $2 AND NOT is_read`,
		conversationID, string(reader.Opposite()))
	if err != nil {
		return 0, fmt.Errorf("failed to mark conversation read: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}

	return affected, nil
}

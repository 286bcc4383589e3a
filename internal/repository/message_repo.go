package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shesaidimnothing/filrouge-api/internal/models"
)

// MessageRepository is the append-only store of private messages between two
// users. The only mutation after creation is the read-state transition.
type MessageRepository struct {
	db DBTX
}

func NewMessageRepository(db DBTX) *MessageRepository {
	return &MessageRepository{db: db}
}

const messageColumns = `
	m.id, m.content, m.sender_id, m.receiver_id, m.read, m.status,
	m.created_at, m.updated_at
`

func (r *MessageRepository) Create(
	ctx context.Context,
	content string,
	senderID int64,
	receiverID int64,
) (*models.PrivateMessage, error) {
	query := `
		INSERT INTO private_messages (content, sender_id, receiver_id, read, status)
		VALUES ($1, $2, $3, FALSE, $4)
		RETURNING id, content, sender_id, receiver_id, read, status, created_at, updated_at
	`

	var message models.PrivateMessage
	err := r.db.QueryRow(ctx, query, content, senderID, receiverID, models.MessageStatusSent).Scan(
		&message.ID,
		&message.Content,
		&message.SenderID,
		&message.ReceiverID,
		&message.Read,
		&message.Status,
		&message.CreatedAt,
		&message.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &message, nil
}

// ListForUser returns every message the user sent or received, newest first,
// with sender and receiver summaries attached.
func (r *MessageRepository) ListForUser(ctx context.Context, userID int64) ([]models.PrivateMessage, error) {
	query := `
		SELECT ` + messageColumns + `,
			s.id, s.name, s.email,
			rcv.id, rcv.name, rcv.email
		FROM private_messages m
		JOIN users s ON s.id = m.sender_id
		JOIN users rcv ON rcv.id = m.receiver_id
		WHERE m.sender_id = $1 OR m.receiver_id = $1
		ORDER BY m.created_at DESC, m.id DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMessagesWithParties(rows)
}

// ListBetween returns the full thread between two users in either direction,
// oldest first. Equal timestamps fall back to id order so the sequence is a
// stable total order.
func (r *MessageRepository) ListBetween(ctx context.Context, userID, contactID int64) ([]models.PrivateMessage, error) {
	query := `
		SELECT ` + messageColumns + `,
			s.id, s.name, s.email,
			rcv.id, rcv.name, rcv.email
		FROM private_messages m
		JOIN users s ON s.id = m.sender_id
		JOIN users rcv ON rcv.id = m.receiver_id
		WHERE (m.sender_id = $1 AND m.receiver_id = $2)
		   OR (m.sender_id = $2 AND m.receiver_id = $1)
		ORDER BY m.created_at ASC, m.id ASC
	`
	rows, err := r.db.Query(ctx, query, userID, contactID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMessagesWithParties(rows)
}

// LastBetween returns the most recent message of the pairwise thread, ties on
// created_at broken by highest id. A thread with no messages yields nil, nil.
func (r *MessageRepository) LastBetween(ctx context.Context, userID, contactID int64) (*models.PrivateMessage, error) {
	query := `
		SELECT ` + messageColumns + `
		FROM private_messages m
		WHERE (m.sender_id = $1 AND m.receiver_id = $2)
		   OR (m.sender_id = $2 AND m.receiver_id = $1)
		ORDER BY m.created_at DESC, m.id DESC
		LIMIT 1
	`

	var message models.PrivateMessage
	err := r.db.QueryRow(ctx, query, userID, contactID).Scan(
		&message.ID,
		&message.Content,
		&message.SenderID,
		&message.ReceiverID,
		&message.Read,
		&message.Status,
		&message.CreatedAt,
		&message.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &message, nil
}

func (r *MessageRepository) DistinctReceiverIDs(ctx context.Context, senderID int64) ([]int64, error) {
	query := `
		SELECT DISTINCT receiver_id
		FROM private_messages
		WHERE sender_id = $1
	`
	return r.queryIDs(ctx, query, senderID)
}

func (r *MessageRepository) DistinctSenderIDs(ctx context.Context, receiverID int64) ([]int64, error) {
	query := `
		SELECT DISTINCT sender_id
		FROM private_messages
		WHERE receiver_id = $1
	`
	return r.queryIDs(ctx, query, receiverID)
}

// MarkRead flips one message to read. Re-marking an already-read message is a
// no-op that still returns the row; a missing id surfaces pgx.ErrNoRows.
func (r *MessageRepository) MarkRead(ctx context.Context, id int64) (*models.PrivateMessage, error) {
	query := `
		UPDATE private_messages
		SET read = TRUE, status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, content, sender_id, receiver_id, read, status, created_at, updated_at
	`

	var message models.PrivateMessage
	err := r.db.QueryRow(ctx, query, id, models.MessageStatusRead).Scan(
		&message.ID,
		&message.Content,
		&message.SenderID,
		&message.ReceiverID,
		&message.Read,
		&message.Status,
		&message.CreatedAt,
		&message.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &message, nil
}

// MarkConversationRead flips every unread message sent by senderID to
// receiverID. The reverse direction is deliberately untouched.
func (r *MessageRepository) MarkConversationRead(ctx context.Context, senderID, receiverID int64) error {
	_, err := r.db.Exec(ctx, `
		UPDATE private_messages
		SET read = TRUE, status = $3, updated_at = NOW()
		WHERE sender_id = $1
		  AND receiver_id = $2
		  AND read = FALSE
	`, senderID, receiverID, models.MessageStatusRead)
	return err
}

func (r *MessageRepository) queryIDs(ctx context.Context, query string, arg int64) ([]int64, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}

func scanMessagesWithParties(rows pgx.Rows) ([]models.PrivateMessage, error) {
	messages := make([]models.PrivateMessage, 0)
	for rows.Next() {
		var message models.PrivateMessage
		var sender models.UserSummary
		var receiver models.UserSummary
		if err := rows.Scan(
			&message.ID,
			&message.Content,
			&message.SenderID,
			&message.ReceiverID,
			&message.Read,
			&message.Status,
			&message.CreatedAt,
			&message.UpdatedAt,
			&sender.ID,
			&sender.Name,
			&sender.Email,
			&receiver.ID,
			&receiver.Name,
			&receiver.Email,
		); err != nil {
			return nil, err
		}
		message.Sender = &sender
		message.Receiver = &receiver
		messages = append(messages, message)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return messages, nil
}

package repository

import (
	"context"

	"social_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MessageRepository struct {
	db *pgxpool.Pool
}

func NewMessageRepository(db *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, m *domain.Message) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO messages (receiver_id, sender_id, message, coins)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		m.Receiver, m.Sender, m.Text, m.Coins,
	).Scan(&m.ID)
}

// GetForUpdate loads and locks a message inside tx.
func (r *MessageRepository) GetForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*domain.Message, error) {
	var m domain.Message
	err := tx.QueryRow(ctx,
		`SELECT id, receiver_id, sender_id, message, coins, read
		 FROM messages WHERE id = $1 FOR UPDATE`,
		id,
	).Scan(&m.ID, &m.Receiver, &m.Sender, &m.Text, &m.Coins, &m.Read)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// MarkRead flips the one-way read flag inside tx.
func (r *MessageRepository) MarkRead(ctx context.Context, tx pgx.Tx, id int64) error {
	_, err := tx.Exec(ctx, `UPDATE messages SET read = true WHERE id = $1`, id)
	return err
}

// ListUnread returns the receiver's unread messages, oldest first.
func (r *MessageRepository) ListUnread(ctx context.Context, receiverID int64) ([]*domain.Message, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, receiver_id, sender_id, message, coins, read
		 FROM messages WHERE receiver_id = $1 AND read = false ORDER BY id`,
		receiverID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.Receiver, &m.Sender, &m.Text, &m.Coins, &m.Read); err != nil {
			return nil, err
		}
		result = append(result, &m)
	}
	return result, rows.Err()
}

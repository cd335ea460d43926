package repository

import (
	"context"
	"encoding/json"

	"social_webapp/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ChatRepository struct {
	db *pgxpool.Pool
}

func NewChatRepository(db *pgxpool.Pool) *ChatRepository {
	return &ChatRepository{db: db}
}

// GetLatest returns the user's most recent conversation; pgx.ErrNoRows if
// they never talked to the assistant.
func (r *ChatRepository) GetLatest(ctx context.Context, userID int64) (*domain.Chat, error) {
	var c domain.Chat
	var contextJSON []byte
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, context, created_at, updated_at
		 FROM chats WHERE user_id = $1 ORDER BY updated_at DESC LIMIT 1`,
		userID,
	).Scan(&c.ID, &c.UserID, &contextJSON, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(contextJSON, &c.Context); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ChatRepository) Create(ctx context.Context, c *domain.Chat) error {
	contextJSON, err := json.Marshal(c.Context)
	if err != nil {
		return err
	}
	return r.db.QueryRow(ctx,
		`INSERT INTO chats (user_id, context) VALUES ($1, $2)
		 RETURNING id, created_at, updated_at`,
		c.UserID, contextJSON,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *ChatRepository) SaveContext(ctx context.Context, c *domain.Chat) error {
	contextJSON, err := json.Marshal(c.Context)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx,
		`UPDATE chats SET context = $1, updated_at = now() WHERE id = $2`,
		contextJSON, c.ID,
	)
	return err
}

package repository

import (
	"context"

	"social_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SpinRepository stores the append-only casino audit log.
type SpinRepository struct {
	db *pgxpool.Pool
}

func NewSpinRepository(db *pgxpool.Pool) *SpinRepository {
	return &SpinRepository{db: db}
}

// CreateWithTx appends a spin record inside an existing transaction.
func (r *SpinRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, s *domain.Spin) error {
	return tx.QueryRow(ctx,
		`INSERT INTO spins (user_id, game, has_won, amount)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, time`,
		s.UserID, s.Game, s.HasWon, s.Amount,
	).Scan(&s.ID, &s.Time)
}

// GetHighCardState returns the user's last drawn card, locking the row
// inside tx; a missing row means the user has never drawn.
func (r *SpinRepository) GetHighCardState(ctx context.Context, tx pgx.Tx, userID int64) (*domain.HighCardState, error) {
	var st domain.HighCardState
	err := tx.QueryRow(ctx,
		`SELECT user_id, last_card FROM high_card_states WHERE user_id = $1 FOR UPDATE`,
		userID,
	).Scan(&st.UserID, &st.LastCard)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// SaveHighCardState upserts the user's last drawn card inside tx.
func (r *SpinRepository) SaveHighCardState(ctx context.Context, tx pgx.Tx, st *domain.HighCardState) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO high_card_states (user_id, last_card)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET last_card = EXCLUDED.last_card`,
		st.UserID, st.LastCard,
	)
	return err
}

package repository

import (
	"context"

	"social_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BetRepository struct {
	db *pgxpool.Pool
}

func NewBetRepository(db *pgxpool.Pool) *BetRepository {
	return &BetRepository{db: db}
}

const betColumns = `id, started_by, text, label_1, label_2,
	ratio_1, ratio_2, deadline, created_at, rewards_granted`

func scanBet(row pgx.Row) (*domain.Bet, error) {
	var b domain.Bet
	err := row.Scan(
		&b.ID, &b.StartedBy, &b.Text, &b.Label1, &b.Label2,
		&b.Ratio1, &b.Ratio2, &b.Deadline, &b.CreatedAt, &b.RewardsGranted,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BetRepository) Create(ctx context.Context, b *domain.Bet) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO bets (started_by, text, label_1, label_2, ratio_1, ratio_2, deadline)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		b.StartedBy, b.Text, b.Label1, b.Label2, b.Ratio1, b.Ratio2, b.Deadline,
	).Scan(&b.ID, &b.CreatedAt)
}

// ListUnsettled returns bets whose rewards were not paid yet, newest
// deadline first.
func (r *BetRepository) ListUnsettled(ctx context.Context) ([]*domain.Bet, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+betColumns+` FROM bets WHERE rewards_granted = false ORDER BY deadline DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Bet
	for rows.Next() {
		b, err := scanBet(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	return result, rows.Err()
}

func (r *BetRepository) GetByID(ctx context.Context, id int64) (*domain.Bet, error) {
	return scanBet(r.db.QueryRow(ctx,
		`SELECT `+betColumns+` FROM bets WHERE id = $1`, id))
}

// GetForUpdate loads and row-locks a bet inside tx, serializing ratio
// updates and settlement against each other.
func (r *BetRepository) GetForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*domain.Bet, error) {
	return scanBet(tx.QueryRow(ctx,
		`SELECT `+betColumns+` FROM bets WHERE id = $1 FOR UPDATE`, id))
}

// UpdateRatios persists the ratio pair inside tx.
func (r *BetRepository) UpdateRatios(ctx context.Context, tx pgx.Tx, b *domain.Bet) error {
	_, err := tx.Exec(ctx,
		`UPDATE bets SET ratio_1 = $1, ratio_2 = $2 WHERE id = $3`,
		b.Ratio1, b.Ratio2, b.ID,
	)
	return err
}

// MarkRewardsGranted flips the one-way settled flag inside tx.
func (r *BetRepository) MarkRewardsGranted(ctx context.Context, tx pgx.Tx, betID int64) error {
	_, err := tx.Exec(ctx,
		`UPDATE bets SET rewards_granted = true WHERE id = $1`, betID)
	return err
}

// TotalPool sums every vote already placed on the bet, inside tx.
func (r *BetRepository) TotalPool(ctx context.Context, tx pgx.Tx, betID int64) (int64, error) {
	var total int64
	err := tx.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM bet_votes WHERE bet_id = $1`, betID,
	).Scan(&total)
	return total, err
}

// PoolAndVotes returns the wagered total and vote count for a listing row.
func (r *BetRepository) PoolAndVotes(ctx context.Context, betID int64) (int64, int64, error) {
	var pool, votes int64
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0), COUNT(*) FROM bet_votes WHERE bet_id = $1`, betID,
	).Scan(&pool, &votes)
	return pool, votes, err
}

// HasVoted reports whether the user already wagered on the bet, inside tx.
func (r *BetRepository) HasVoted(ctx context.Context, tx pgx.Tx, betID, userID int64) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM bet_votes WHERE bet_id = $1 AND user_id = $2)`,
		betID, userID,
	).Scan(&exists)
	return exists, err
}

// UserHasVoted is the pool-backed variant used by listings.
func (r *BetRepository) UserHasVoted(ctx context.Context, betID, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM bet_votes WHERE bet_id = $1 AND user_id = $2)`,
		betID, userID,
	).Scan(&exists)
	return exists, err
}

// CreateVote inserts a wager inside tx.
func (r *BetRepository) CreateVote(ctx context.Context, tx pgx.Tx, v *domain.Vote) error {
	return tx.QueryRow(ctx,
		`INSERT INTO bet_votes (user_id, bet_id, vote, amount)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		v.UserID, v.BetID, v.Side, v.Amount,
	).Scan(&v.ID)
}

// VotesForUpdate loads every vote on the bet with their rows locked, for
// settlement.
func (r *BetRepository) VotesForUpdate(ctx context.Context, tx pgx.Tx, betID int64) ([]*domain.Vote, error) {
	rows, err := tx.Query(ctx,
		`SELECT id, user_id, bet_id, vote, amount, reward, has_won
		 FROM bet_votes WHERE bet_id = $1 ORDER BY id FOR UPDATE`,
		betID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Vote
	for rows.Next() {
		var v domain.Vote
		if err := rows.Scan(&v.ID, &v.UserID, &v.BetID, &v.Side, &v.Amount, &v.Reward, &v.HasWon); err != nil {
			return nil, err
		}
		result = append(result, &v)
	}
	return result, rows.Err()
}

// SettleVote writes the settlement outcome for one wager inside tx.
func (r *BetRepository) SettleVote(ctx context.Context, tx pgx.Tx, v *domain.Vote) error {
	_, err := tx.Exec(ctx,
		`UPDATE bet_votes SET reward = $1, has_won = $2 WHERE id = $3`,
		v.Reward, v.HasWon, v.ID,
	)
	return err
}

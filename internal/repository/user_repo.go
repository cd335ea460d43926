package repository

import (
	"context"

	"social_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, username, COALESCE(name, ''), COALESCE(description, ''),
	coins, points, exp, level, created_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Name,
		&u.Description,
		&u.Coins,
		&u.Points,
		&u.Exp,
		&u.Level,
		&u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	// new users start with 500 coins at level 1
	const initialCoins = 500

	return r.db.QueryRow(ctx,
		`INSERT INTO users (username, name, coins, points, exp, level)
		 VALUES ($1, $2, $3, 0, 0, 1)
		 RETURNING id, created_at`,
		u.Username, u.Name, initialCoins,
	).Scan(&u.ID, &u.CreatedAt)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

// GetForUpdate loads and row-locks a user inside tx. Every economic
// operation goes through this lock; it is what serializes concurrent
// mutations of one account.
func (r *UserRepository) GetForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*domain.User, error) {
	return scanUser(tx.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, id))
}

// UpdateEconomy persists the mutable economy fields inside tx.
func (r *UserRepository) UpdateEconomy(ctx context.Context, tx pgx.Tx, u *domain.User) error {
	_, err := tx.Exec(ctx,
		`UPDATE users SET coins = $1, points = $2, exp = $3, level = $4 WHERE id = $5`,
		u.Coins, u.Points, u.Exp, u.Level, u.ID,
	)
	return err
}

// CasinoStats aggregates the user's spin history for the profile.
func (r *UserRepository) CasinoStats(ctx context.Context, userID int64) (*domain.CasinoStats, error) {
	var s domain.CasinoStats
	err := r.db.QueryRow(ctx,
		`SELECT
			COUNT(*) FILTER (WHERE has_won),
			COUNT(*) FILTER (WHERE NOT has_won),
			COALESCE(SUM(amount) FILTER (WHERE has_won), 0),
			COALESCE(SUM(amount) FILTER (WHERE NOT has_won), 0)
		 FROM spins WHERE user_id = $1`,
		userID,
	).Scan(&s.Wins, &s.Losses, &s.CoinsWon, &s.CoinsLost)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// HasClaimedDailyCoins reports whether the user already claimed coins today.
func (r *UserRepository) HasClaimedDailyCoins(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM daily_coins WHERE user_id = $1 AND date = CURRENT_DATE
		 )`,
		userID,
	).Scan(&exists)
	return exists, err
}

// RecordDailyCoins inserts today's claim row inside tx.
func (r *UserRepository) RecordDailyCoins(ctx context.Context, tx pgx.Tx, userID, amount int64) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO daily_coins (user_id, date, amount) VALUES ($1, CURRENT_DATE, $2)`,
		userID, amount,
	)
	return err
}

package repository

import (
	"context"
	"time"

	"social_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type QuestRepository struct {
	db *pgxpool.Pool
}

func NewQuestRepository(db *pgxpool.Pool) *QuestRepository {
	return &QuestRepository{db: db}
}

func scanQuest(row pgx.Row) (*domain.Quest, error) {
	var q domain.Quest
	var durationSeconds int64
	err := row.Scan(
		&q.ID, &q.Title, &q.Description, &durationSeconds,
		&q.LevelRequired, &q.Coins, &q.Points, &q.Exp,
	)
	if err != nil {
		return nil, err
	}
	q.Duration = time.Duration(durationSeconds) * time.Second
	return &q, nil
}

const questColumns = `id, title, description, duration_seconds, level_required, coins, points, exp`

// ListQuests returns the quest catalog, easiest level requirement first.
func (r *QuestRepository) ListQuests(ctx context.Context) ([]*domain.Quest, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+questColumns+` FROM quests ORDER BY level_required, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Quest
	for rows.Next() {
		q, err := scanQuest(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, q)
	}
	return result, rows.Err()
}

func (r *QuestRepository) GetQuestByID(ctx context.Context, id int64) (*domain.Quest, error) {
	return scanQuest(r.db.QueryRow(ctx,
		`SELECT `+questColumns+` FROM quests WHERE id = $1`, id))
}

// HasQuestToday reports whether the user already started a quest today,
// inside tx.
func (r *QuestRepository) HasQuestToday(ctx context.Context, tx pgx.Tx, userID int64) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM daily_quests
			WHERE user_id = $1 AND created_at::date = CURRENT_DATE
		 )`,
		userID,
	).Scan(&exists)
	return exists, err
}

// RedeemedToday reports whether today's assignment was already redeemed.
func (r *QuestRepository) RedeemedToday(ctx context.Context, tx pgx.Tx, userID int64) (bool, error) {
	var redeemed bool
	err := tx.QueryRow(ctx,
		`SELECT redeemed FROM daily_quests
		 WHERE user_id = $1 AND created_at::date = CURRENT_DATE
		 ORDER BY id DESC LIMIT 1`,
		userID,
	).Scan(&redeemed)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	return redeemed, err
}

const dailyQuestColumns = `id, user_id, quest_id, created_at, will_end_at, redeemed`

func scanDailyQuest(row pgx.Row) (*domain.DailyQuest, error) {
	var dq domain.DailyQuest
	err := row.Scan(&dq.ID, &dq.UserID, &dq.QuestID, &dq.CreatedAt, &dq.WillEndAt, &dq.Redeemed)
	if err != nil {
		return nil, err
	}
	return &dq, nil
}

// CurrentAssignment returns the assignment created today, or yesterday's if
// it was never redeemed (grace carry-over). pgx.ErrNoRows means none.
func (r *QuestRepository) CurrentAssignment(ctx context.Context, userID int64) (*domain.DailyQuest, error) {
	return scanDailyQuest(r.db.QueryRow(ctx,
		`SELECT `+dailyQuestColumns+` FROM daily_quests
		 WHERE user_id = $1
		   AND (created_at::date = CURRENT_DATE
		        OR (created_at::date = CURRENT_DATE - 1 AND redeemed = false))
		 ORDER BY created_at DESC LIMIT 1`,
		userID))
}

// CurrentAssignmentForUpdate is the row-locked variant used by redemption.
func (r *QuestRepository) CurrentAssignmentForUpdate(ctx context.Context, tx pgx.Tx, userID int64) (*domain.DailyQuest, error) {
	return scanDailyQuest(tx.QueryRow(ctx,
		`SELECT `+dailyQuestColumns+` FROM daily_quests
		 WHERE user_id = $1
		   AND (created_at::date = CURRENT_DATE
		        OR (created_at::date = CURRENT_DATE - 1 AND redeemed = false))
		 ORDER BY created_at DESC LIMIT 1
		 FOR UPDATE`,
		userID))
}

// CreateAssignment inserts a daily quest inside tx.
func (r *QuestRepository) CreateAssignment(ctx context.Context, tx pgx.Tx, dq *domain.DailyQuest) error {
	return tx.QueryRow(ctx,
		`INSERT INTO daily_quests (user_id, quest_id, created_at, will_end_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		dq.UserID, dq.QuestID, dq.CreatedAt, dq.WillEndAt,
	).Scan(&dq.ID)
}

// MarkRedeemed flips the one-way redeemed flag inside tx.
func (r *QuestRepository) MarkRedeemed(ctx context.Context, tx pgx.Tx, dailyQuestID int64) error {
	_, err := tx.Exec(ctx,
		`UPDATE daily_quests SET redeemed = true WHERE id = $1`, dailyQuestID)
	return err
}

package domain

import "time"

// Quest is a catalog entry users can start once per day.
type Quest struct {
	ID            int64         `db:"id" json:"id"`
	Title         string        `db:"title" json:"title"`
	Description   string        `db:"description" json:"description"`
	Duration      time.Duration `db:"duration" json:"duration"`
	LevelRequired int           `db:"level_required" json:"level_required"`
	Coins         int64         `db:"coins" json:"coins"`
	Points        int64         `db:"points" json:"points"`
	Exp           int64         `db:"exp" json:"exp"`
}

// DailyQuest - one user's assignment of a quest for a given day
type DailyQuest struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	QuestID   int64     `db:"quest_id" json:"quest_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	WillEndAt time.Time `db:"will_end_at" json:"will_end_at"`
	Redeemed  bool      `db:"redeemed" json:"redeemed"`
}

// Finished reports whether the quest timer has run out and the rewards can
// be redeemed.
func (dq *DailyQuest) Finished(now time.Time) bool {
	return !now.Before(dq.WillEndAt)
}

// RemainingTime returns how long until the quest finishes, floored at zero.
func (dq *DailyQuest) RemainingTime(now time.Time) time.Duration {
	if dq.Finished(now) {
		return 0
	}
	return dq.WillEndAt.Sub(now)
}

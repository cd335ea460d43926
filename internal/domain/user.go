package domain

import "time"

type User struct {
	ID          int64     `db:"id" json:"id"`
	Username    string    `db:"username" json:"username"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Coins       int64     `db:"coins" json:"coins"`
	Points      int64     `db:"points" json:"points"`
	Exp         int64     `db:"exp" json:"exp"`
	Level       int       `db:"level" json:"level"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// CasinoStats - aggregated spin history for the profile screen
type CasinoStats struct {
	Wins      int64 `json:"casino_wins"`
	Losses    int64 `json:"casino_loses"`
	CoinsWon  int64 `json:"coins_won_in_casino"`
	CoinsLost int64 `json:"coins_lost_in_casino"`
}

// Message carries a one-time coin reward claimed when the receiver reads it.
type Message struct {
	ID       int64  `db:"id" json:"id"`
	Receiver int64  `db:"receiver_id" json:"receiver_id"`
	Sender   *int64 `db:"sender_id" json:"sender_id,omitempty"`
	Text     string `db:"message" json:"message"`
	Coins    int64  `db:"coins" json:"coins"`
	Read     bool   `db:"read" json:"read"`
}

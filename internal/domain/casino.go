package domain

import "time"

// CasinoGame - tag stored on each spin record
type CasinoGame string

const (
	GameHighCard CasinoGame = "HighCard"
	GameRoulette CasinoGame = "Roulette"
)

// Spin is an append-only audit row for a casino round. Amount holds the lost
// stake on a loss and the net win on a win.
type Spin struct {
	ID     int64      `db:"id" json:"id"`
	UserID int64      `db:"user_id" json:"user_id"`
	Game   CasinoGame `db:"game" json:"game"`
	HasWon bool       `db:"has_won" json:"has_won"`
	Amount int64      `db:"amount" json:"amount"`
	Time   time.Time  `db:"time" json:"time"`
}

// HighCardState - per-user baseline for the next high-card round
type HighCardState struct {
	UserID   int64  `db:"user_id" json:"user_id"`
	LastCard string `db:"last_card" json:"last_card"`
}

package domain

import (
	"math"
	"time"
)

// BetSide - which outcome a vote backs
type BetSide string

const (
	BetSideA BetSide = "a"
	BetSideB BetSide = "b"
)

const (
	// RatioFloor is the lowest payout ratio a side can be pushed to.
	RatioFloor = 1.05
	// InitialRatio is the payout ratio both sides start with.
	InitialRatio = 2.0
	// BootstrapImpact is used for the first vote, when the pool is empty.
	BootstrapImpact = 0.23
)

// Bet is a two-outcome market with self-adjusting pari-mutuel ratios.
type Bet struct {
	ID             int64     `db:"id" json:"id"`
	StartedBy      int64     `db:"started_by" json:"started_by"`
	Text           string    `db:"text" json:"text"`
	Label1         string    `db:"label_1" json:"label_1"`
	Label2         string    `db:"label_2" json:"label_2"`
	Ratio1         float64   `db:"ratio_1" json:"ratio_1"`
	Ratio2         float64   `db:"ratio_2" json:"ratio_2"`
	Deadline       time.Time `db:"deadline" json:"deadline"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	RewardsGranted bool      `db:"rewards_granted" json:"rewards_granted"`
}

// Vote is a single wager on one side of a bet. HasWon stays nil until the
// bet settles.
type Vote struct {
	ID     int64   `db:"id" json:"id"`
	UserID int64   `db:"user_id" json:"user_id"`
	BetID  int64   `db:"bet_id" json:"bet_id"`
	Side   BetSide `db:"vote" json:"vote"`
	Amount int64   `db:"amount" json:"amount"`
	Reward int64   `db:"reward" json:"reward"`
	HasWon *bool   `db:"has_won" json:"has_won"`
}

// IsOpen reports whether the bet still accepts votes.
func (b *Bet) IsOpen(now time.Time) bool {
	return now.Before(b.Deadline)
}

// VoteImpact returns how strongly a wager of amount shifts the ratios, given
// the pool of coins already wagered (the incoming wager is not part of pool).
func VoteImpact(amount, pool int64) float64 {
	if pool == 0 {
		return BootstrapImpact
	}
	return math.Sqrt(float64(amount)/float64(pool)*100) / 100
}

// ApplyVote shifts both ratios for a wager of amount on side. The backed side
// shortens, the other side lengthens; the backed side never drops below
// RatioFloor.
func (b *Bet) ApplyVote(side BetSide, amount, pool int64) {
	impact := VoteImpact(amount, pool)
	switch side {
	case BetSideA:
		b.Ratio1 = shorten(b.Ratio1, impact)
		b.Ratio2 = round2(b.Ratio2 * (1 + impact))
	case BetSideB:
		b.Ratio2 = shorten(b.Ratio2, impact)
		b.Ratio1 = round2(b.Ratio1 * (1 + impact))
	}
}

// WinningRatio returns the payout ratio for the given side at its current
// value.
func (b *Bet) WinningRatio(side BetSide) float64 {
	if side == BetSideA {
		return b.Ratio1
	}
	return b.Ratio2
}

// VoteReward is the full payout for a winning vote: stake times the ratio
// read at settlement time.
func VoteReward(amount int64, ratio float64) int64 {
	return int64(math.Round(float64(amount) * ratio))
}

func shorten(ratio, impact float64) float64 {
	candidate := ratio * (1 - impact)
	if candidate < RatioFloor {
		return RatioFloor
	}
	return round2(candidate)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

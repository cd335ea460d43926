// Package economy owns the balance mutation rules shared by every engine:
// coins, points, exp and the leveling curve.
package economy

import (
	"math"

	"social_webapp/internal/domain"
)

// Delta is a signed change to a user's economy fields.
type Delta struct {
	Coins  int64
	Points int64
	Exp    int64
}

// ExpToNextLevel returns how much exp a user at the given level needs before
// leveling up.
func ExpToNextLevel(level int) int64 {
	return int64(math.Round(math.Sqrt(float64(level)/10)*1000 + float64((level-1)*(level-1))))
}

// Apply mutates the user's economy fields in place. If the resulting exp
// reaches the threshold for the current level, exactly one level transition
// happens: the threshold is subtracted and the level increments. Negative
// deltas are accepted; coins are not clamped at zero (per-account operations
// are serialized by the caller's row lock, so concurrent double debits
// cannot occur).
func Apply(u *domain.User, d Delta) {
	u.Coins += d.Coins
	u.Points += d.Points
	u.Exp += d.Exp

	if threshold := ExpToNextLevel(u.Level); u.Exp >= threshold {
		u.Exp -= threshold
		u.Level++
	}
}

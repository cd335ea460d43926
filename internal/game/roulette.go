package game

import (
	"crypto/rand"
	"math/big"
)

// RouletteBet - the kind of roulette wager
type RouletteBet string

const (
	BetEven     RouletteBet = "EVEN"
	BetOdd      RouletteBet = "ODD"
	BetBlack    RouletteBet = "BLACK"
	BetRed      RouletteBet = "RED"
	BetGreen    RouletteBet = "GREEN"
	BetNumber   RouletteBet = "NUMBER"
	BetFirst12  RouletteBet = "FIRST12"
	BetSecond12 RouletteBet = "SECOND12"
	BetThird12  RouletteBet = "THIRD12"
	BetRow1     RouletteBet = "ROW_1"
	BetRow2     RouletteBet = "ROW_2"
	BetRow3     RouletteBet = "ROW_3"
	BetHalfLow  RouletteBet = "HALF_LOW"
	BetHalfHigh RouletteBet = "HALF_HIGH"
)

const (
	NumberMultiplier         = 36
	ColumnAndDozenMultiplier = 3
	ColorMultiplier          = 2
)

var redNumbers = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true,
	14: true, 16: true, 18: true, 19: true, 21: true, 23: true,
	25: true, 27: true, 30: true, 32: true, 34: true, 36: true,
}

var blackNumbers = map[int]bool{
	2: true, 4: true, 6: true, 8: true, 10: true, 11: true,
	13: true, 15: true, 17: true, 20: true, 22: true, 24: true,
	26: true, 28: true, 29: true, 31: true, 33: true, 35: true,
}

// wheelIndex maps a rolled number to its position on the wheel graphic.
var wheelIndex = map[int]int{
	0: 0, 32: 1, 15: 2, 19: 3, 4: 4, 21: 5, 2: 6, 25: 7, 17: 8,
	34: 9, 6: 10, 27: 11, 13: 12, 36: 13, 11: 14, 30: 15, 8: 16,
	23: 17, 10: 18, 5: 19, 24: 20, 16: 21, 33: 22, 1: 23, 20: 24,
	14: 25, 31: 26, 9: 27, 22: 28, 18: 29, 29: 30, 7: 31, 28: 32,
	12: 33, 35: 34, 3: 35, 26: 36,
}

// ValidRouletteBet reports whether kind is one of the known wager kinds.
func ValidRouletteBet(kind RouletteBet) bool {
	switch kind {
	case BetEven, BetOdd, BetBlack, BetRed, BetGreen, BetNumber,
		BetFirst12, BetSecond12, BetThird12,
		BetRow1, BetRow2, BetRow3, BetHalfLow, BetHalfHigh:
		return true
	}
	return false
}

// RollRoulette draws a uniform number in [0,36].
func RollRoulette() int {
	n, err := rand.Int(rand.Reader, big.NewInt(37))
	if err != nil {
		// should never happen
		return 0
	}
	return int(n.Int64())
}

// CheckRouletteBet evaluates whether a wager of the given kind wins on roll.
// Zero only wins GREEN and a straight bet on 0; it counts for no parity,
// half, dozen or row bet.
func CheckRouletteBet(kind RouletteBet, roll int, number int) bool {
	switch kind {
	case BetGreen:
		return roll == 0
	case BetOdd:
		return roll%2 == 1
	case BetEven:
		return roll != 0 && roll%2 == 0
	case BetHalfHigh:
		return roll >= 19
	case BetHalfLow:
		return roll >= 1 && roll <= 18
	case BetRed:
		return redNumbers[roll]
	case BetBlack:
		return blackNumbers[roll]
	case BetFirst12:
		return roll >= 1 && roll <= 12
	case BetSecond12:
		return roll >= 13 && roll <= 24
	case BetThird12:
		return roll >= 25 && roll <= 36
	case BetRow1:
		return roll%3 == 1
	case BetRow2:
		return roll%3 == 2
	case BetRow3:
		return roll != 0 && roll%3 == 0
	case BetNumber:
		return roll == number
	}
	return false
}

// RouletteMultiplier returns the payout multiplier for a winning wager of
// the given kind.
func RouletteMultiplier(kind RouletteBet) int64 {
	switch kind {
	case BetGreen, BetNumber:
		return NumberMultiplier
	case BetRed, BetBlack, BetEven, BetOdd, BetHalfHigh, BetHalfLow:
		return ColorMultiplier
	case BetRow1, BetRow2, BetRow3, BetFirst12, BetSecond12, BetThird12:
		return ColumnAndDozenMultiplier
	}
	return 0
}

// RouletteColor classifies a rolled number.
func RouletteColor(roll int) string {
	switch {
	case roll == 0:
		return "GREEN"
	case blackNumbers[roll]:
		return "BLACK"
	default:
		return "RED"
	}
}

// WheelIndex returns the wheel-graphic position of a rolled number.
func WheelIndex(roll int) int {
	return wheelIndex[roll]
}

// RouletteResult is everything the frontend needs to animate a spin.
type RouletteResult struct {
	RolledNumber      int    `json:"rolled_number"`
	RolledNumberIndex int    `json:"rolled_number_index"`
	HasWon            bool   `json:"has_won"`
	Amount            int64  `json:"amount"`
	Color             string `json:"color"`
}

// PlayRoulette rolls the wheel and evaluates a wager of bet coins. Amount is
// the full payout on a win and zero on a loss.
func PlayRoulette(kind RouletteBet, number int, bet int64) RouletteResult {
	roll := RollRoulette()
	res := RouletteResult{
		RolledNumber:      roll,
		RolledNumberIndex: WheelIndex(roll),
		Color:             RouletteColor(roll),
	}
	if CheckRouletteBet(kind, roll, number) {
		res.HasWon = true
		res.Amount = bet * RouletteMultiplier(kind)
	}
	return res
}

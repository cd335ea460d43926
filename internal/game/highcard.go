package game

import (
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// High-card bet directions.
const (
	HighCardHigh  = "high"
	HighCardLow   = "low"
	HighCardEqual = "equal"
)

// EqualMultiplier - payout for correctly calling an exact value match
const EqualMultiplier = 6.0

var cardValues = []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}
var cardSuits = []string{"clubs", "hearts", "diamonds", "spades"}

var faceValues = map[string]int{"J": 11, "Q": 12, "K": 13, "A": 14}

// NewDeck returns the standard 52-card deck in "<value>of<suit>" notation.
func NewDeck() []string {
	deck := make([]string, 0, len(cardValues)*len(cardSuits))
	for _, v := range cardValues {
		for _, s := range cardSuits {
			deck = append(deck, fmt.Sprintf("%sof%s", v, s))
		}
	}
	return deck
}

// ShuffleDeck permutes the deck in place.
func ShuffleDeck(deck []string) {
	for i := len(deck) - 1; i > 0; i-- {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			continue
		}
		j := n.Int64()
		deck[i], deck[j] = deck[j], deck[i]
	}
}

// DrawCard shuffles a fresh deck and returns the top card.
func DrawCard() string {
	deck := NewDeck()
	ShuffleDeck(deck)
	return deck[0]
}

// SplitCard breaks "Jofhearts" into its value and suit parts.
func SplitCard(card string) (value, suit string) {
	value, suit, _ = strings.Cut(card, "of")
	return value, suit
}

// CardValue maps a card value string to its numeric rank; faces J/Q/K/A are
// 11/12/13/14.
func CardValue(value string) (int, error) {
	if v, ok := faceValues[value]; ok {
		return v, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("bad card value %q", value)
	}
	return n, nil
}

// HighCardMultipliers returns the (low, equal, high) payout multipliers for
// the next round, as a function of the previous card's value. The curve is
// symmetric around 8 with 0.1 steps; the deck edges are hard-coded so a
// guaranteed direction pays 1x and an impossible one pays nothing.
func HighCardMultipliers(prevValue int) (low, equal, high float64) {
	equal = EqualMultiplier
	switch {
	case prevValue == 8:
		low, high = 1.55, 1.55
	case prevValue == 2:
		low, high = 0, 1
	case prevValue == 14:
		low, high = 1, 0
	case prevValue > 8:
		spread := 0.1 * float64(prevValue-8)
		low = round2(1.55 - spread)
		high = round2(1.55 + spread)
	default:
		spread := 0.1 * float64(8-prevValue)
		low = round2(1.55 + spread)
		high = round2(1.55 - spread)
	}
	return low, equal, high
}

// CheckHighCardBet reports whether a directional call wins given the
// previous and next card values.
func CheckHighCardBet(bet string, prev, next int) bool {
	switch bet {
	case HighCardHigh:
		return next > prev
	case HighCardLow:
		return next < prev
	case HighCardEqual:
		return next == prev
	}
	return false
}

// HighCardReward is the full payout for a winning stake.
func HighCardReward(multiplier float64, stake int64) int64 {
	return int64(math.Round(multiplier * float64(stake)))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

package game

import "testing"

func TestNewDeck(t *testing.T) {
	deck := NewDeck()
	if len(deck) != 52 {
		t.Fatalf("deck has %d cards; want 52", len(deck))
	}
	seen := make(map[string]bool)
	for _, card := range deck {
		if seen[card] {
			t.Fatalf("duplicate card %s", card)
		}
		seen[card] = true
	}
	if !seen["2ofclubs"] || !seen["Aofspades"] || !seen["10ofhearts"] {
		t.Fatal("expected cards missing from deck")
	}
}

func TestSplitCard(t *testing.T) {
	value, suit := SplitCard("Jofhearts")
	if value != "J" || suit != "hearts" {
		t.Fatalf("SplitCard = %q, %q; want J, hearts", value, suit)
	}
	value, suit = SplitCard("10ofdiamonds")
	if value != "10" || suit != "diamonds" {
		t.Fatalf("SplitCard = %q, %q; want 10, diamonds", value, suit)
	}
}

func TestCardValue(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"2", 2}, {"10", 10}, {"J", 11}, {"Q", 12}, {"K", 13}, {"A", 14},
	}
	for _, tc := range cases {
		got, err := CardValue(tc.in)
		if err != nil {
			t.Fatalf("CardValue(%s): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("CardValue(%s) = %d; want %d", tc.in, got, tc.want)
		}
	}
	if _, err := CardValue("joker"); err == nil {
		t.Fatal("CardValue accepted an unknown card")
	}
}

func TestHighCardMultipliers(t *testing.T) {
	cases := []struct {
		prev      int
		low, high float64
	}{
		{8, 1.55, 1.55},
		{2, 0, 1},
		{14, 1, 0},
		{9, 1.45, 1.65},
		{13, 1.05, 2.05},
		{7, 1.65, 1.45},
		{3, 2.05, 1.05},
	}

	for _, tc := range cases {
		low, equal, high := HighCardMultipliers(tc.prev)
		if equal != EqualMultiplier {
			t.Fatalf("prev %d: equal = %v; want %v", tc.prev, equal, EqualMultiplier)
		}
		if low != tc.low || high != tc.high {
			t.Fatalf("prev %d: multipliers = %v/%v; want %v/%v", tc.prev, low, high, tc.low, tc.high)
		}
	}
}

func TestCheckHighCardBet(t *testing.T) {
	cases := []struct {
		bet        string
		prev, next int
		want       bool
	}{
		{HighCardHigh, 8, 9, true},
		{HighCardHigh, 8, 8, false},
		{HighCardHigh, 8, 7, false},
		{HighCardLow, 8, 7, true},
		{HighCardLow, 8, 9, false},
		{HighCardEqual, 8, 8, true},
		{HighCardEqual, 8, 9, false},
		{"sideways", 8, 9, false},
	}

	for _, tc := range cases {
		if got := CheckHighCardBet(tc.bet, tc.prev, tc.next); got != tc.want {
			t.Fatalf("CheckHighCardBet(%s, %d, %d) = %v; want %v", tc.bet, tc.prev, tc.next, got, tc.want)
		}
	}
}

func TestHighCardReward(t *testing.T) {
	if got := HighCardReward(1.55, 100); got != 155 {
		t.Fatalf("reward = %d; want 155", got)
	}
	if got := HighCardReward(6, 50); got != 300 {
		t.Fatalf("equal reward = %d; want 300", got)
	}
	// rounds, does not truncate
	if got := HighCardReward(1.45, 11); got != 16 {
		t.Fatalf("reward = %d; want 16", got)
	}
}

func TestDrawCardIsFromDeck(t *testing.T) {
	valid := make(map[string]bool)
	for _, card := range NewDeck() {
		valid[card] = true
	}
	for i := 0; i < 100; i++ {
		if card := DrawCard(); !valid[card] {
			t.Fatalf("drew unknown card %s", card)
		}
	}
}

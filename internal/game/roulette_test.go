package game

import "testing"

func TestCheckRouletteBet(t *testing.T) {
	cases := []struct {
		name   string
		kind   RouletteBet
		roll   int
		number int
		want   bool
	}{
		{"green on zero", BetGreen, 0, 0, true},
		{"green on red number", BetGreen, 32, 0, false},
		{"number exact", BetNumber, 17, 17, true},
		{"number miss", BetNumber, 17, 16, false},
		{"number zero", BetNumber, 0, 0, true},
		{"odd", BetOdd, 9, 0, true},
		{"odd on even", BetOdd, 10, 0, false},
		{"even", BetEven, 10, 0, true},
		{"even excludes zero", BetEven, 0, 0, false},
		{"half low", BetHalfLow, 18, 0, true},
		{"half low excludes zero", BetHalfLow, 0, 0, false},
		{"half high", BetHalfHigh, 19, 0, true},
		{"half high miss", BetHalfHigh, 18, 0, false},
		{"red", BetRed, 32, 0, true},
		{"red on black", BetRed, 31, 0, false},
		{"black", BetBlack, 31, 0, true},
		{"first dozen", BetFirst12, 12, 0, true},
		{"first dozen miss", BetFirst12, 13, 0, false},
		{"second dozen", BetSecond12, 24, 0, true},
		{"third dozen", BetThird12, 25, 0, true},
		{"row1", BetRow1, 34, 0, true},
		{"row2", BetRow2, 35, 0, true},
		{"row3", BetRow3, 36, 0, true},
		{"row3 excludes zero", BetRow3, 0, 0, false},
	}

	for _, tc := range cases {
		if got := CheckRouletteBet(tc.kind, tc.roll, tc.number); got != tc.want {
			t.Fatalf("%s: CheckRouletteBet(%s, %d, %d) = %v; want %v",
				tc.name, tc.kind, tc.roll, tc.number, got, tc.want)
		}
	}
}

func TestRouletteMultiplier(t *testing.T) {
	cases := []struct {
		kind RouletteBet
		want int64
	}{
		{BetNumber, 36},
		{BetGreen, 36},
		{BetRed, 2},
		{BetBlack, 2},
		{BetOdd, 2},
		{BetEven, 2},
		{BetHalfLow, 2},
		{BetHalfHigh, 2},
		{BetFirst12, 3},
		{BetSecond12, 3},
		{BetThird12, 3},
		{BetRow1, 3},
		{BetRow2, 3},
		{BetRow3, 3},
	}

	for _, tc := range cases {
		if got := RouletteMultiplier(tc.kind); got != tc.want {
			t.Fatalf("RouletteMultiplier(%s) = %d; want %d", tc.kind, got, tc.want)
		}
	}
}

func TestRouletteColor(t *testing.T) {
	if got := RouletteColor(0); got != "GREEN" {
		t.Fatalf("color of 0 = %s; want GREEN", got)
	}
	if got := RouletteColor(32); got != "RED" {
		t.Fatalf("color of 32 = %s; want RED", got)
	}
	if got := RouletteColor(31); got != "BLACK" {
		t.Fatalf("color of 31 = %s; want BLACK", got)
	}
}

func TestWheelIndexIsAPermutation(t *testing.T) {
	seen := make(map[int]bool)
	for roll := 0; roll <= 36; roll++ {
		idx := WheelIndex(roll)
		if idx < 0 || idx > 36 {
			t.Fatalf("WheelIndex(%d) = %d out of range", roll, idx)
		}
		if seen[idx] {
			t.Fatalf("WheelIndex(%d) = %d already used", roll, idx)
		}
		seen[idx] = true
	}
	if WheelIndex(0) != 0 || WheelIndex(32) != 1 || WheelIndex(26) != 36 {
		t.Fatal("wheel index anchors do not match the wheel layout")
	}
}

func TestRollRouletteRange(t *testing.T) {
	for i := 0; i < 200; i++ {
		if roll := RollRoulette(); roll < 0 || roll > 36 {
			t.Fatalf("roll %d out of [0,36]", roll)
		}
	}
}

func TestPlayRouletteNumberPayout(t *testing.T) {
	// straight-number bets either pay exactly 36x or nothing
	for i := 0; i < 50; i++ {
		res := PlayRoulette(BetNumber, 7, 10)
		if res.HasWon != (res.RolledNumber == 7) {
			t.Fatalf("has_won=%v but rolled %d (bet on 7)", res.HasWon, res.RolledNumber)
		}
		if res.HasWon && res.Amount != 360 {
			t.Fatalf("winning payout = %d; want 360", res.Amount)
		}
		if !res.HasWon && res.Amount != 0 {
			t.Fatalf("losing payout = %d; want 0", res.Amount)
		}
	}
}

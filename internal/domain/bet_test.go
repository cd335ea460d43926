package domain

import (
	"testing"
	"time"
)

func TestVoteImpact(t *testing.T) {
	if got := VoteImpact(100, 0); got != BootstrapImpact {
		t.Fatalf("impact on empty pool = %v; want %v", got, BootstrapImpact)
	}
	// 25 coins into a 100-coin pool: sqrt(25)/100 = 0.05
	if got := VoteImpact(25, 100); got != 0.05 {
		t.Fatalf("impact = %v; want 0.05", got)
	}
	// wagering the whole pool again: sqrt(100)/100 = 0.1
	if got := VoteImpact(100, 100); got != 0.1 {
		t.Fatalf("impact = %v; want 0.1", got)
	}
}

func TestApplyVoteFirstWager(t *testing.T) {
	b := &Bet{Ratio1: InitialRatio, Ratio2: InitialRatio}
	b.ApplyVote(BetSideA, 100, 0)

	if b.Ratio1 != 1.54 {
		t.Fatalf("backed ratio = %v; want 1.54", b.Ratio1)
	}
	if b.Ratio2 != 2.46 {
		t.Fatalf("other ratio = %v; want 2.46", b.Ratio2)
	}
}

func TestApplyVoteOtherSide(t *testing.T) {
	b := &Bet{Ratio1: InitialRatio, Ratio2: InitialRatio}
	b.ApplyVote(BetSideB, 25, 100)

	if b.Ratio2 != 1.9 {
		t.Fatalf("backed ratio = %v; want 1.9", b.Ratio2)
	}
	if b.Ratio1 != 2.1 {
		t.Fatalf("other ratio = %v; want 2.1", b.Ratio1)
	}
}

func TestApplyVoteFloorsBackedRatio(t *testing.T) {
	b := &Bet{Ratio1: 1.1, Ratio2: 3.5}
	b.ApplyVote(BetSideA, 400, 100) // impact = sqrt(400)/100 = 0.2

	if b.Ratio1 != RatioFloor {
		t.Fatalf("backed ratio = %v; want floor %v", b.Ratio1, RatioFloor)
	}
	if b.Ratio2 != 4.2 {
		t.Fatalf("other ratio = %v; want 4.2", b.Ratio2)
	}
}

func TestApplyVoteNeverFloorsOtherSide(t *testing.T) {
	// only the backed side is clamped; the other side always lengthens
	b := &Bet{Ratio1: RatioFloor, Ratio2: RatioFloor}
	b.ApplyVote(BetSideA, 100, 100)

	if b.Ratio1 != RatioFloor {
		t.Fatalf("backed ratio = %v; want %v", b.Ratio1, RatioFloor)
	}
	if b.Ratio2 <= RatioFloor {
		t.Fatalf("other ratio = %v; want > %v", b.Ratio2, RatioFloor)
	}
}

func TestIsOpen(t *testing.T) {
	now := time.Now()
	b := &Bet{Deadline: now.Add(time.Hour)}
	if !b.IsOpen(now) {
		t.Fatal("bet before deadline should be open")
	}
	if b.IsOpen(now.Add(time.Hour)) {
		t.Fatal("bet at deadline should be closed")
	}
	if b.IsOpen(now.Add(2 * time.Hour)) {
		t.Fatal("bet past deadline should be closed")
	}
}

func TestVoteReward(t *testing.T) {
	if got := VoteReward(100, 1.54); got != 154 {
		t.Fatalf("reward = %d; want 154", got)
	}
	// 33 * 1.55 = 51.15, rounds to 51
	if got := VoteReward(33, 1.55); got != 51 {
		t.Fatalf("reward = %d; want 51", got)
	}
	// 34 * 1.55 = 52.7, rounds to 53
	if got := VoteReward(34, 1.55); got != 53 {
		t.Fatalf("reward = %d; want 53", got)
	}
}

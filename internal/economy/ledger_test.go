package economy

import (
	"testing"

	"social_webapp/internal/domain"
)

func TestExpToNextLevel(t *testing.T) {
	cases := []struct {
		level int
		want  int64
	}{
		{1, 316},
		{2, 448},
		{5, 723},
		{10, 1081},
	}

	for _, tc := range cases {
		if got := ExpToNextLevel(tc.level); got != tc.want {
			t.Fatalf("ExpToNextLevel(%d) = %d; want %d", tc.level, got, tc.want)
		}
	}
}

func TestApplyNoLevelUp(t *testing.T) {
	u := &domain.User{Coins: 500, Level: 1}
	Apply(u, Delta{Coins: 100, Points: 10, Exp: 50})

	if u.Coins != 600 || u.Points != 10 || u.Exp != 50 {
		t.Fatalf("unexpected economy state: coins=%d points=%d exp=%d", u.Coins, u.Points, u.Exp)
	}
	if u.Level != 1 {
		t.Fatalf("level changed without reaching threshold: %d", u.Level)
	}
}

func TestApplyLevelsUpExactlyOnce(t *testing.T) {
	// 316 is the level 1 threshold; pile on enough exp for two thresholds
	// and verify only a single transition happens per Apply call.
	u := &domain.User{Level: 1, Exp: 0}
	Apply(u, Delta{Exp: 316 + 448 + 10})

	if u.Level != 2 {
		t.Fatalf("level = %d; want 2", u.Level)
	}
	if u.Exp != 448+10 {
		t.Fatalf("exp = %d; want %d", u.Exp, 448+10)
	}

	// the next persistence-style mutation completes the second transition
	Apply(u, Delta{})
	if u.Level != 3 || u.Exp != 10 {
		t.Fatalf("after second apply: level=%d exp=%d; want level=3 exp=10", u.Level, u.Exp)
	}
}

func TestApplyExactThresholdLevelsUp(t *testing.T) {
	u := &domain.User{Level: 1}
	Apply(u, Delta{Exp: 316})

	if u.Level != 2 || u.Exp != 0 {
		t.Fatalf("level=%d exp=%d; want level=2 exp=0", u.Level, u.Exp)
	}
}

func TestApplyNegativeDelta(t *testing.T) {
	u := &domain.User{Coins: 50, Level: 3}
	Apply(u, Delta{Coins: -80})

	// coins are intentionally not clamped at zero
	if u.Coins != -30 {
		t.Fatalf("coins = %d; want -30", u.Coins)
	}
	if u.Level != 3 {
		t.Fatalf("level = %d; want 3", u.Level)
	}
}

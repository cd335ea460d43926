package domain

import (
	"testing"
	"time"
)

func TestDailyQuestFinished(t *testing.T) {
	end := time.Now()
	dq := &DailyQuest{WillEndAt: end}

	if dq.Finished(end.Add(-time.Second)) {
		t.Fatal("quest finished before will_end_at")
	}
	if !dq.Finished(end) {
		t.Fatal("quest not finished exactly at will_end_at")
	}
	if !dq.Finished(end.Add(time.Minute)) {
		t.Fatal("quest not finished after will_end_at")
	}
}

func TestDailyQuestRemainingTime(t *testing.T) {
	now := time.Now()
	dq := &DailyQuest{WillEndAt: now.Add(10 * time.Minute)}

	if got := dq.RemainingTime(now); got != 10*time.Minute {
		t.Fatalf("remaining = %v; want 10m", got)
	}
	if got := dq.RemainingTime(now.Add(time.Hour)); got != 0 {
		t.Fatalf("remaining after end = %v; want 0", got)
	}
}

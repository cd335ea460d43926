package domain

import "testing"

func TestMajorityThreshold(t *testing.T) {
	cases := []struct {
		attendees int
		want      int
	}{
		{3, 2},
		{4, 2},
		{5, 3},
		{6, 3},
		{7, 4},
	}

	for _, tc := range cases {
		if got := MajorityThreshold(tc.attendees); got != tc.want {
			t.Fatalf("MajorityThreshold(%d) = %d; want %d", tc.attendees, got, tc.want)
		}
	}
}

func TestRewardForMeetingSize(t *testing.T) {
	cases := []struct {
		attendees int
		want      MeetingReward
	}{
		{3, MeetingReward{Coins: 100, Points: 50, Exp: 100}},
		{4, MeetingReward{Coins: 150, Points: 75, Exp: 200}},
		{5, MeetingReward{Coins: 200, Points: 100, Exp: 300}},
		{6, MeetingReward{Coins: 250, Points: 125, Exp: 400}},
	}

	for _, tc := range cases {
		if got := RewardForMeetingSize(tc.attendees); got != tc.want {
			t.Fatalf("RewardForMeetingSize(%d) = %+v; want %+v", tc.attendees, got, tc.want)
		}
	}
}

package domain

import (
	"math"
	"time"
)

// MinAttendance is the smallest meeting size; the size-scaled reward formula
// is anchored at it.
const MinAttendance = 3

// AttendanceBonus is the flat coin reward for confirming you were there.
const AttendanceBonus = 15

type Place struct {
	ID       int64  `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Meetings int64  `db:"meetings" json:"used_in_meetings"`
}

// Meeting transitions UNCONFIRMED -> CONFIRMED once a majority of attendees
// confirm; the transition is one-way.
type Meeting struct {
	ID                  int64     `db:"id" json:"id"`
	Date                time.Time `db:"date" json:"date"`
	PlaceID             int64     `db:"place_id" json:"-"`
	Description         string    `db:"description" json:"description"`
	ConfirmedByMajority bool      `db:"confirmed_by_majority" json:"confirmed_by_majority"`
	Pizza               bool      `db:"pizza" json:"pizza"`
	Casino              bool      `db:"casino" json:"casino"`
}

type Attendance struct {
	ID        int64 `db:"id" json:"id"`
	UserID    int64 `db:"user_id" json:"user_id"`
	MeetingID int64 `db:"meeting_id" json:"meeting_id"`
	Drinking  bool  `db:"drinking" json:"drinking"`
	Confirmed bool  `db:"confirmed" json:"confirmed"`
}

// MeetingReward is credited to every attendee when the meeting is confirmed
// by majority.
type MeetingReward struct {
	Coins  int64 `json:"coins"`
	Points int64 `json:"points"`
	Exp    int64 `json:"exp"`
}

// MajorityThreshold returns how many confirmations flip the meeting to
// confirmed: half the attendees, rounded.
func MajorityThreshold(attendees int) int {
	return int(math.Round(float64(attendees) / 2))
}

// RewardForMeetingSize scales the confirmation reward with attendee count.
// A minimum-size meeting pays the base 100/50/100.
func RewardForMeetingSize(attendees int) MeetingReward {
	extra := float64(attendees - MinAttendance)
	return MeetingReward{
		Coins:  int64(math.Round(100 * (1 + extra/2))),
		Points: int64(math.Round(50 * (1 + extra/2))),
		Exp:    int64(math.Round(100 * (1 + extra))),
	}
}

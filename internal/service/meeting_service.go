package service

import (
	"context"
	"errors"
	"time"

	"social_webapp/internal/domain"
	"social_webapp/internal/economy"
	"social_webapp/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrMeetingNotFound  = errors.New("meeting not found")
	ErrNotAnAttendee    = errors.New("you were not at this meeting")
	ErrAlreadyConfirmed = errors.New("attendance already confirmed")
	ErrTooFewAttendees  = errors.New("a meeting needs at least 3 attendees")
)

// MeetingService records meetings and pays rewards once a majority of the
// attendees confirm the meeting happened.
type MeetingService struct {
	db          *pgxpool.Pool
	meetingRepo *repository.MeetingRepository
	userRepo    *repository.UserRepository
}

func NewMeetingService(db *pgxpool.Pool) *MeetingService {
	return &MeetingService{
		db:          db,
		meetingRepo: repository.NewMeetingRepository(db),
		userRepo:    repository.NewUserRepository(db),
	}
}

// Create registers a meeting with its attendee list. The creator's own
// attendance is confirmed immediately and pays the flat bonus; everyone
// else confirms later.
func (s *MeetingService) Create(ctx context.Context, creatorID int64, date time.Time, place, description string, pizza, casino bool, attendeeIDs []int64, drinking map[int64]bool) (*domain.Meeting, error) {
	ids := attendeeIDs
	found := false
	for _, id := range ids {
		if id == creatorID {
			found = true
			break
		}
	}
	if !found {
		ids = append(ids, creatorID)
	}
	if len(ids) < domain.MinAttendance {
		return nil, ErrTooFewAttendees
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	p, err := s.meetingRepo.GetOrCreatePlace(ctx, tx, place)
	if err != nil {
		return nil, err
	}

	m := &domain.Meeting{
		Date:        date,
		PlaceID:     p.ID,
		Description: description,
		Pizza:       pizza,
		Casino:      casino,
	}
	if err := s.meetingRepo.Create(ctx, tx, m); err != nil {
		return nil, err
	}

	for _, id := range ids {
		a := &domain.Attendance{
			UserID:    id,
			MeetingID: m.ID,
			Drinking:  drinking[id],
			Confirmed: id == creatorID,
		}
		if err := s.meetingRepo.CreateAttendance(ctx, tx, a); err != nil {
			return nil, err
		}
	}

	// the creator vouched for the meeting by creating it
	creator, err := s.userRepo.GetForUpdate(ctx, tx, creatorID)
	if err != nil {
		return nil, err
	}
	economy.Apply(creator, economy.Delta{Coins: domain.AttendanceBonus})
	if err := s.userRepo.UpdateEconomy(ctx, tx, creator); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

// ConfirmResult reports what a confirmation triggered.
type ConfirmResult struct {
	MeetingID           int64                 `json:"meeting_id"`
	ConfirmedByMajority bool                  `json:"confirmed_by_majority"`
	Reward              *domain.MeetingReward `json:"reward,omitempty"`
}

// Confirm records one attendee's confirmation and pays the flat bonus. When
// the confirmation count reaches the majority threshold, the meeting flips
// to confirmed and every attendee is credited the size-scaled reward. The
// flip happens at most once.
func (s *MeetingService) Confirm(ctx context.Context, meetingID, userID int64) (*ConfirmResult, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	meeting, err := s.meetingRepo.GetForUpdate(ctx, tx, meetingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMeetingNotFound
		}
		return nil, err
	}

	attendance, err := s.meetingRepo.GetAttendanceForUpdate(ctx, tx, meetingID, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotAnAttendee
		}
		return nil, err
	}
	if attendance.Confirmed {
		return nil, ErrAlreadyConfirmed
	}

	if err := s.meetingRepo.MarkAttendanceConfirmed(ctx, tx, attendance.ID); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetForUpdate(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	economy.Apply(user, economy.Delta{Coins: domain.AttendanceBonus})
	if err := s.userRepo.UpdateEconomy(ctx, tx, user); err != nil {
		return nil, err
	}

	result := &ConfirmResult{MeetingID: meetingID}
	if !meeting.ConfirmedByMajority {
		attendees, err := s.meetingRepo.CountAttendees(ctx, tx, meetingID)
		if err != nil {
			return nil, err
		}
		confirmed, err := s.meetingRepo.CountConfirmed(ctx, tx, meetingID)
		if err != nil {
			return nil, err
		}
		if confirmed >= domain.MajorityThreshold(attendees) {
			reward := domain.RewardForMeetingSize(attendees)
			ids, err := s.meetingRepo.AttendeeIDs(ctx, tx, meetingID)
			if err != nil {
				return nil, err
			}
			for _, id := range ids {
				attendee := user
				if id != userID {
					attendee, err = s.userRepo.GetForUpdate(ctx, tx, id)
					if err != nil {
						return nil, err
					}
				}
				economy.Apply(attendee, economy.Delta{Coins: reward.Coins, Points: reward.Points, Exp: reward.Exp})
				if err := s.userRepo.UpdateEconomy(ctx, tx, attendee); err != nil {
					return nil, err
				}
			}
			if err := s.meetingRepo.MarkConfirmedByMajority(ctx, tx, meetingID); err != nil {
				return nil, err
			}
			result.ConfirmedByMajority = true
			result.Reward = &reward
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return result, nil
}

// Decline records that an attendee denies the meeting happened. It is an
// acknowledgment only; a confirmation already given cannot be taken back.
func (s *MeetingService) Decline(ctx context.Context, meetingID, userID int64) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := s.meetingRepo.GetForUpdate(ctx, tx, meetingID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrMeetingNotFound
		}
		return err
	}

	attendance, err := s.meetingRepo.GetAttendanceForUpdate(ctx, tx, meetingID, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotAnAttendee
		}
		return err
	}
	if attendance.Confirmed {
		return ErrAlreadyConfirmed
	}

	return tx.Commit(ctx)
}

// MeetingDetails bundles a meeting with its place and attendances.
type MeetingDetails struct {
	*domain.Meeting
	Place       *domain.Place        `json:"place"`
	Attendances []*domain.Attendance `json:"attendances"`
}

func (s *MeetingService) Get(ctx context.Context, meetingID int64) (*MeetingDetails, error) {
	meeting, err := s.meetingRepo.GetByID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMeetingNotFound
		}
		return nil, err
	}
	place, err := s.meetingRepo.GetPlace(ctx, meeting.PlaceID)
	if err != nil {
		return nil, err
	}
	attendances, err := s.meetingRepo.ListAttendances(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	return &MeetingDetails{Meeting: meeting, Place: place, Attendances: attendances}, nil
}

// List returns meetings, optionally filtered by confirmation state.
func (s *MeetingService) List(ctx context.Context, confirmed *bool) ([]*domain.Meeting, error) {
	return s.meetingRepo.List(ctx, confirmed)
}

// ListPlaces returns known places, most used first.
func (s *MeetingService) ListPlaces(ctx context.Context) ([]*domain.Place, error) {
	return s.meetingRepo.ListPlacesByUsage(ctx)
}

package service

import (
	"context"
	"errors"

	"social_webapp/internal/domain"
	"social_webapp/internal/economy"
	"social_webapp/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrAlreadyClaimed     = errors.New("daily coins already claimed today")
	ErrMessageNotFound    = errors.New("message not found")
	ErrNotYourMessage     = errors.New("message belongs to someone else")
	ErrMessageAlreadyRead = errors.New("message already read")
)

// DailyCoinsAmount is the once-a-day login reward.
const DailyCoinsAmount = 50

// UserService covers accounts, profiles, daily coins and reward messages.
type UserService struct {
	db          *pgxpool.Pool
	userRepo    *repository.UserRepository
	messageRepo *repository.MessageRepository
}

func NewUserService(db *pgxpool.Pool) *UserService {
	return &UserService{
		db:          db,
		userRepo:    repository.NewUserRepository(db),
		messageRepo: repository.NewMessageRepository(db),
	}
}

// Login returns a token for the username, creating the account on first
// sight.
func (s *UserService) Login(ctx context.Context, username, name string) (string, *domain.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if errors.Is(err, pgx.ErrNoRows) {
		user = &domain.User{Username: username, Name: name}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return "", nil, err
		}
		user.Coins = 500
		user.Level = 1
	} else if err != nil {
		return "", nil, err
	}

	token, err := GenerateJWT(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Profile - a user decorated with progression and casino aggregates
type Profile struct {
	*domain.User
	ExpToNextLevel    int64               `json:"exp_to_next_level"`
	CasinoStats       *domain.CasinoStats `json:"casino_stats"`
	UnreadMessages    []*domain.Message   `json:"unread_messages,omitempty"`
	DailyCoinsClaimed bool                `json:"daily_coins_claimed"`
}

// Profile returns a user's public profile; the viewer's own profile also
// carries their unread messages and daily coins state (see Me).
func (s *UserService) Profile(ctx context.Context, userID int64) (*Profile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	stats, err := s.userRepo.CasinoStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Profile{
		User:           user,
		ExpToNextLevel: economy.ExpToNextLevel(user.Level),
		CasinoStats:    stats,
	}, nil
}

// Me is the profile plus the private extras of the authenticated user.
func (s *UserService) Me(ctx context.Context, userID int64) (*Profile, error) {
	p, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	p.UnreadMessages, err = s.messageRepo.ListUnread(ctx, userID)
	if err != nil {
		return nil, err
	}
	p.DailyCoinsClaimed, err = s.userRepo.HasClaimedDailyCoins(ctx, userID)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ClaimDailyCoins credits the daily login reward at most once per calendar
// day.
func (s *UserService) ClaimDailyCoins(ctx context.Context, userID int64) (int64, error) {
	claimed, err := s.userRepo.HasClaimedDailyCoins(ctx, userID)
	if err != nil {
		return 0, err
	}
	if claimed {
		return 0, ErrAlreadyClaimed
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	user, err := s.userRepo.GetForUpdate(ctx, tx, userID)
	if err != nil {
		return 0, err
	}
	economy.Apply(user, economy.Delta{Coins: DailyCoinsAmount})
	if err := s.userRepo.UpdateEconomy(ctx, tx, user); err != nil {
		return 0, err
	}
	// the unique (user_id, date) index rejects a racing double claim
	if err := s.userRepo.RecordDailyCoins(ctx, tx, userID, DailyCoinsAmount); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return DailyCoinsAmount, nil
}

// DefaultMessageCoins is attached when the sender names no amount.
const DefaultMessageCoins = 100

// SendMessage attaches a coin reward the receiver claims on read.
func (s *UserService) SendMessage(ctx context.Context, senderID *int64, receiverID int64, text string, coins int64) (*domain.Message, error) {
	if coins < 0 {
		return nil, ErrInvalidAmount
	}
	if coins == 0 {
		coins = DefaultMessageCoins
	}
	if _, err := s.userRepo.GetByID(ctx, receiverID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	m := &domain.Message{Receiver: receiverID, Sender: senderID, Text: text, Coins: coins}
	if err := s.messageRepo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// UnreadMessages returns the user's unclaimed messages.
func (s *UserService) UnreadMessages(ctx context.Context, userID int64) ([]*domain.Message, error) {
	return s.messageRepo.ListUnread(ctx, userID)
}

// ReadMessage marks a message read and credits its coins to the receiver,
// exactly once.
func (s *UserService) ReadMessage(ctx context.Context, userID, messageID int64) (*domain.Message, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	m, err := s.messageRepo.GetForUpdate(ctx, tx, messageID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	if m.Receiver != userID {
		return nil, ErrNotYourMessage
	}
	if m.Read {
		return nil, ErrMessageAlreadyRead
	}

	if m.Coins > 0 {
		user, err := s.userRepo.GetForUpdate(ctx, tx, userID)
		if err != nil {
			return nil, err
		}
		economy.Apply(user, economy.Delta{Coins: m.Coins})
		if err := s.userRepo.UpdateEconomy(ctx, tx, user); err != nil {
			return nil, err
		}
	}
	if err := s.messageRepo.MarkRead(ctx, tx, m.ID); err != nil {
		return nil, err
	}
	m.Read = true

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

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
	ErrQuestNotFound   = errors.New("quest not found")
	ErrLevelTooLow     = errors.New("level too low for this quest")
	ErrAlreadyHasQuest = errors.New("already started a quest today")
	ErrNoActiveQuest   = errors.New("no active quest")
	ErrQuestRunning    = errors.New("quest is still running")
	ErrAlreadyRedeemed = errors.New("quest already redeemed")
)

// QuestService hands out one daily quest per user per calendar day and pays
// its rewards once the timer runs out. An unredeemed quest from yesterday
// can still be redeemed today.
type QuestService struct {
	db        *pgxpool.Pool
	questRepo *repository.QuestRepository
	userRepo  *repository.UserRepository
}

func NewQuestService(db *pgxpool.Pool) *QuestService {
	return &QuestService{
		db:        db,
		questRepo: repository.NewQuestRepository(db),
		userRepo:  repository.NewUserRepository(db),
	}
}

// ListQuests returns the quest catalog.
func (s *QuestService) ListQuests(ctx context.Context) ([]*domain.Quest, error) {
	return s.questRepo.ListQuests(ctx)
}

// Start assigns a quest to the user for today. Rejected when the user's
// level is too low or they already started one today.
func (s *QuestService) Start(ctx context.Context, userID, questID int64) (*domain.DailyQuest, error) {
	quest, err := s.questRepo.GetQuestByID(ctx, questID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuestNotFound
		}
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Level < quest.LevelRequired {
		return nil, ErrLevelTooLow
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	taken, err := s.questRepo.HasQuestToday(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrAlreadyHasQuest
	}

	now := time.Now()
	dq := &domain.DailyQuest{
		UserID:    userID,
		QuestID:   questID,
		CreatedAt: now,
		WillEndAt: now.Add(quest.Duration),
	}
	if err := s.questRepo.CreateAssignment(ctx, tx, dq); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return dq, nil
}

// QuestStatus - the user's current assignment with its countdown
type QuestStatus struct {
	DailyQuest    *domain.DailyQuest `json:"daily_quest"`
	Quest         *domain.Quest      `json:"quest"`
	Finished      bool               `json:"finished"`
	RemainingSecs int64              `json:"remaining_seconds"`
}

// Status returns the current assignment, or ErrNoActiveQuest.
func (s *QuestService) Status(ctx context.Context, userID int64) (*QuestStatus, error) {
	dq, err := s.questRepo.CurrentAssignment(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoActiveQuest
		}
		return nil, err
	}
	quest, err := s.questRepo.GetQuestByID(ctx, dq.QuestID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &QuestStatus{
		DailyQuest:    dq,
		Quest:         quest,
		Finished:      dq.Finished(now),
		RemainingSecs: int64(dq.RemainingTime(now).Seconds()),
	}, nil
}

// Redeem pays a finished quest's rewards exactly once.
func (s *QuestService) Redeem(ctx context.Context, userID int64) (*domain.Quest, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	dq, err := s.questRepo.CurrentAssignmentForUpdate(ctx, tx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoActiveQuest
		}
		return nil, err
	}
	if dq.Redeemed {
		return nil, ErrAlreadyRedeemed
	}
	if !dq.Finished(time.Now()) {
		return nil, ErrQuestRunning
	}

	quest, err := s.questRepo.GetQuestByID(ctx, dq.QuestID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetForUpdate(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	economy.Apply(user, economy.Delta{Coins: quest.Coins, Points: quest.Points, Exp: quest.Exp})
	if err := s.userRepo.UpdateEconomy(ctx, tx, user); err != nil {
		return nil, err
	}

	if err := s.questRepo.MarkRedeemed(ctx, tx, dq.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return quest, nil
}

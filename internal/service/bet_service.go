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
	ErrInsufficientCoins = errors.New("not enough coins")
	ErrAlreadyVoted      = errors.New("already voted")
	ErrRewardsGranted    = errors.New("rewards already granted")
	ErrBetClosed         = errors.New("bet already closed, wait for rewards to be granted")
	ErrBetStillOpen      = errors.New("bet is still going, come back later")
	ErrBetAlreadyPaid    = errors.New("bet already paid")
	ErrBetNotFound       = errors.New("bet not found")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidSide       = errors.New("exactly one of the two sides must be named")
)

// BetService runs the bet market: wager placement with ratio rebalancing,
// and settlement with payout.
type BetService struct {
	db       *pgxpool.Pool
	betRepo  *repository.BetRepository
	userRepo *repository.UserRepository
}

func NewBetService(db *pgxpool.Pool) *BetService {
	return &BetService{
		db:       db,
		betRepo:  repository.NewBetRepository(db),
		userRepo: repository.NewUserRepository(db),
	}
}

// CreateBet opens a new market. A zero deadline defaults to 24 hours out;
// both ratios start at the initial value.
func (s *BetService) CreateBet(ctx context.Context, startedBy int64, text, label1, label2 string, deadline time.Time) (*domain.Bet, error) {
	if deadline.IsZero() {
		deadline = time.Now().Add(24 * time.Hour)
	}
	if label1 == "" {
		label1 = "TAK"
	}
	if label2 == "" {
		label2 = "NIE"
	}

	b := &domain.Bet{
		StartedBy: startedBy,
		Text:      text,
		Label1:    label1,
		Label2:    label2,
		Ratio1:    domain.InitialRatio,
		Ratio2:    domain.InitialRatio,
		Deadline:  deadline,
	}
	if err := s.betRepo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// BetListEntry decorates a bet with its pool totals and whether the viewer
// can still vote.
type BetListEntry struct {
	*domain.Bet
	Total      int64 `json:"total"`
	TotalVotes int64 `json:"total_votes"`
	CanVote    bool  `json:"can_vote"`
	IsOpen     bool  `json:"is_open"`
}

// ListBets returns every unsettled market, decorated for the viewer.
func (s *BetService) ListBets(ctx context.Context, viewerID int64) ([]*BetListEntry, error) {
	bets, err := s.betRepo.ListUnsettled(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	result := make([]*BetListEntry, 0, len(bets))
	for _, b := range bets {
		pool, votes, err := s.betRepo.PoolAndVotes(ctx, b.ID)
		if err != nil {
			return nil, err
		}
		voted, err := s.betRepo.UserHasVoted(ctx, b.ID, viewerID)
		if err != nil {
			return nil, err
		}
		result = append(result, &BetListEntry{
			Bet:        b,
			Total:      pool,
			TotalVotes: votes,
			CanVote:    !voted,
			IsOpen:     b.IsOpen(now),
		})
	}
	return result, nil
}

// PlaceWager escrows the stake and shifts the market ratios. Validation
// happens before any mutation: a failed wager leaves balances and ratios
// untouched.
func (s *BetService) PlaceWager(ctx context.Context, betID, userID int64, side domain.BetSide, amount int64) (*domain.Vote, error) {
	if amount < 1 {
		return nil, ErrInvalidAmount
	}
	if side != domain.BetSideA && side != domain.BetSideB {
		return nil, ErrInvalidSide
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	bet, err := s.betRepo.GetForUpdate(ctx, tx, betID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBetNotFound
		}
		return nil, err
	}
	if bet.RewardsGranted {
		return nil, ErrRewardsGranted
	}
	if !bet.IsOpen(time.Now()) {
		return nil, ErrBetClosed
	}

	voted, err := s.betRepo.HasVoted(ctx, tx, betID, userID)
	if err != nil {
		return nil, err
	}
	if voted {
		return nil, ErrAlreadyVoted
	}

	user, err := s.userRepo.GetForUpdate(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	if amount > user.Coins {
		return nil, ErrInsufficientCoins
	}

	// pool of everything wagered before this vote
	pool, err := s.betRepo.TotalPool(ctx, tx, betID)
	if err != nil {
		return nil, err
	}

	bet.ApplyVote(side, amount, pool)
	if err := s.betRepo.UpdateRatios(ctx, tx, bet); err != nil {
		return nil, err
	}

	// escrow: the stake leaves the balance now, not at settlement
	economy.Apply(user, economy.Delta{Coins: -amount})
	if err := s.userRepo.UpdateEconomy(ctx, tx, user); err != nil {
		return nil, err
	}

	vote := &domain.Vote{
		UserID: userID,
		BetID:  betID,
		Side:   side,
		Amount: amount,
	}
	if err := s.betRepo.CreateVote(ctx, tx, vote); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return vote, nil
}

// SettleResult summarizes a payout run.
type SettleResult struct {
	BetID        int64   `json:"bet_id"`
	WinningSide  string  `json:"winning_side"`
	WinningRatio float64 `json:"winning_ratio"`
	Winners      int     `json:"winners"`
	Losers       int     `json:"losers"`
	PaidOut      int64   `json:"paid_out"`
}

// Settle pays the winning side at the ratio the market closed with. It
// rejects open markets and repeats: settlement is guarded, not a no-op.
func (s *BetService) Settle(ctx context.Context, betID int64, winningSide domain.BetSide) (*SettleResult, error) {
	if winningSide != domain.BetSideA && winningSide != domain.BetSideB {
		return nil, ErrInvalidSide
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	bet, err := s.betRepo.GetForUpdate(ctx, tx, betID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBetNotFound
		}
		return nil, err
	}
	if bet.IsOpen(time.Now()) {
		return nil, ErrBetStillOpen
	}
	if bet.RewardsGranted {
		return nil, ErrBetAlreadyPaid
	}

	ratio := bet.WinningRatio(winningSide)
	votes, err := s.betRepo.VotesForUpdate(ctx, tx, betID)
	if err != nil {
		return nil, err
	}

	result := &SettleResult{BetID: betID, WinningSide: string(winningSide), WinningRatio: ratio}
	won, lost := true, false
	for _, v := range votes {
		if v.Side == winningSide {
			reward := domain.VoteReward(v.Amount, ratio)

			user, err := s.userRepo.GetForUpdate(ctx, tx, v.UserID)
			if err != nil {
				return nil, err
			}
			economy.Apply(user, economy.Delta{Coins: reward})
			if err := s.userRepo.UpdateEconomy(ctx, tx, user); err != nil {
				return nil, err
			}

			v.Reward = reward - v.Amount
			v.HasWon = &won
			result.Winners++
			result.PaidOut += reward
		} else {
			v.HasWon = &lost
			result.Losers++
		}
		if err := s.betRepo.SettleVote(ctx, tx, v); err != nil {
			return nil, err
		}
	}

	if err := s.betRepo.MarkRewardsGranted(ctx, tx, betID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return result, nil
}

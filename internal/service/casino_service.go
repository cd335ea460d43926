package service

import (
	"context"
	"errors"

	"social_webapp/internal/domain"
	"social_webapp/internal/economy"
	"social_webapp/internal/game"
	"social_webapp/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrInvalidCombo    = errors.New("invalid bet combination")
	ErrNoPreviousCard  = errors.New("draw a free card before staking")
	ErrInvalidHighCard = errors.New("invalid high card bet")
)

// CasinoService runs the two casino games. Every round is atomic: stake
// debit, payout and the audit record commit together or not at all.
type CasinoService struct {
	db       *pgxpool.Pool
	userRepo *repository.UserRepository
	spinRepo *repository.SpinRepository
}

func NewCasinoService(db *pgxpool.Pool) *CasinoService {
	return &CasinoService{
		db:       db,
		userRepo: repository.NewUserRepository(db),
		spinRepo: repository.NewSpinRepository(db),
	}
}

// PlayRoulette settles one roulette round. A NUMBER wager requires a target
// number in 0..36; any other kind must not carry one.
func (s *CasinoService) PlayRoulette(ctx context.Context, userID int64, kind game.RouletteBet, number *int, stake int64) (*game.RouletteResult, error) {
	if stake < 1 {
		return nil, ErrInvalidAmount
	}
	if !game.ValidRouletteBet(kind) {
		return nil, ErrInvalidCombo
	}
	if kind == game.BetNumber {
		if number == nil || *number < 0 || *number > 36 {
			return nil, ErrInvalidCombo
		}
	} else if number != nil {
		return nil, ErrInvalidCombo
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	user, err := s.userRepo.GetForUpdate(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	if stake > user.Coins {
		return nil, ErrInsufficientCoins
	}

	target := 0
	if number != nil {
		target = *number
	}
	result := game.PlayRoulette(kind, target, stake)

	spin := &domain.Spin{UserID: userID, Game: domain.GameRoulette, HasWon: result.HasWon}
	if result.HasWon {
		// payout already contains the stake, so the net change is payout-stake
		economy.Apply(user, economy.Delta{Coins: result.Amount - stake})
		spin.Amount = result.Amount - stake
	} else {
		economy.Apply(user, economy.Delta{Coins: -stake})
		spin.Amount = stake
	}
	if err := s.userRepo.UpdateEconomy(ctx, tx, user); err != nil {
		return nil, err
	}
	if err := s.spinRepo.CreateWithTx(ctx, tx, spin); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &result, nil
}

// HighCardResult describes a settled round plus the multipliers for the next
// one, derived from the card now on the table.
type HighCardResult struct {
	Card           string  `json:"card"`
	Value          int     `json:"value"`
	Suit           string  `json:"suit"`
	HasWon         bool    `json:"has_won"`
	Amount         int64   `json:"amount"`
	LowMultiplier  float64 `json:"low_multiplier"`
	EqlMultiplier  float64 `json:"eql_multiplier"`
	HighMultiplier float64 `json:"high_multiplier"`
}

// PlayHighCard draws the next card and settles a directional call against
// the previous one. A zero stake is a free draw that just sets the baseline;
// a staked call requires a baseline card from an earlier draw.
func (s *CasinoService) PlayHighCard(ctx context.Context, userID int64, bet string, stake int64) (*HighCardResult, error) {
	if stake < 0 {
		return nil, ErrInvalidAmount
	}
	if stake > 0 && bet != game.HighCardHigh && bet != game.HighCardLow && bet != game.HighCardEqual {
		return nil, ErrInvalidHighCard
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	user, err := s.userRepo.GetForUpdate(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	if stake > user.Coins {
		return nil, ErrInsufficientCoins
	}

	card := game.DrawCard()
	value, suit := game.SplitCard(card)
	nextValue, err := game.CardValue(value)
	if err != nil {
		return nil, err
	}

	result := &HighCardResult{Card: card, Value: nextValue, Suit: suit}
	result.LowMultiplier, result.EqlMultiplier, result.HighMultiplier = game.HighCardMultipliers(nextValue)

	if stake > 0 {
		state, err := s.spinRepo.GetHighCardState(ctx, tx, userID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrNoPreviousCard
			}
			return nil, err
		}
		prevStr, _ := game.SplitCard(state.LastCard)
		prevValue, err := game.CardValue(prevStr)
		if err != nil {
			return nil, err
		}

		low, eql, high := game.HighCardMultipliers(prevValue)
		multiplier := map[string]float64{
			game.HighCardLow:   low,
			game.HighCardEqual: eql,
			game.HighCardHigh:  high,
		}[bet]

		spin := &domain.Spin{UserID: userID, Game: domain.GameHighCard}
		if game.CheckHighCardBet(bet, prevValue, nextValue) {
			payout := game.HighCardReward(multiplier, stake)
			economy.Apply(user, economy.Delta{Coins: payout - stake})
			result.HasWon = true
			result.Amount = payout
			spin.HasWon = true
			spin.Amount = payout - stake
		} else {
			economy.Apply(user, economy.Delta{Coins: -stake})
			spin.Amount = stake
		}
		if err := s.userRepo.UpdateEconomy(ctx, tx, user); err != nil {
			return nil, err
		}
		if err := s.spinRepo.CreateWithTx(ctx, tx, spin); err != nil {
			return nil, err
		}
	}

	if err := s.spinRepo.SaveHighCardState(ctx, tx, &domain.HighCardState{UserID: userID, LastCard: card}); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return result, nil
}

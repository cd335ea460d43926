package service

import (
	"context"
	"errors"

	"social_webapp/internal/domain"
	"social_webapp/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrBingoNotFound  = errors.New("no bingo card for today")
	ErrFieldNotOnCard = errors.New("field is not on the card")
	ErrCardPoolEmpty  = errors.New("not enough bingo fields to build a card")
)

// BingoService maintains the shared daily card. Everyone plays the same
// card; marking a field that completes a line flips it to completed.
type BingoService struct {
	db        *pgxpool.Pool
	bingoRepo *repository.BingoRepository
}

func NewBingoService(db *pgxpool.Pool) *BingoService {
	return &BingoService{
		db:        db,
		bingoRepo: repository.NewBingoRepository(db),
	}
}

// Today returns the shared card, generating a fresh one from the field pool
// on first access each day.
func (s *BingoService) Today(ctx context.Context) (*domain.Bingo, error) {
	b, err := s.bingoRepo.GetToday(ctx)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	fields, err := s.bingoRepo.RandomFields(ctx, domain.BingoCardSize)
	if err != nil {
		return nil, err
	}
	if len(fields) < domain.BingoCardSize {
		return nil, ErrCardPoolEmpty
	}

	card := make([]domain.CardField, 0, domain.BingoCardSize)
	for _, f := range fields {
		card = append(card, domain.CardField{Name: f.Name, URL: f.URL})
	}
	b = &domain.Bingo{Card: card}
	if err := s.bingoRepo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Mark completes a field on today's card and reports whether that finished
// a line.
func (s *BingoService) Mark(ctx context.Context, userID int64, fieldName string) (*domain.Bingo, error) {
	b, err := s.Today(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	b, err = s.bingoRepo.GetForUpdate(ctx, tx, b.ID)
	if err != nil {
		return nil, err
	}
	if !b.MarkField(fieldName) {
		return nil, ErrFieldNotOnCard
	}
	if err := s.bingoRepo.SaveCard(ctx, tx, b); err != nil {
		return nil, err
	}
	if err := s.bingoRepo.CreateEntry(ctx, tx, b.ID, userID, fieldName); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return b, nil
}

// Clear resets today's card for another round.
func (s *BingoService) Clear(ctx context.Context) (*domain.Bingo, error) {
	b, err := s.Today(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	b, err = s.bingoRepo.GetForUpdate(ctx, tx, b.ID)
	if err != nil {
		return nil, err
	}
	b.ClearCard()
	if err := s.bingoRepo.SaveCard(ctx, tx, b); err != nil {
		return nil, err
	}
	if err := s.bingoRepo.ClearEntries(ctx, tx, b.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return b, nil
}

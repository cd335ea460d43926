package repository

import (
	"context"
	"encoding/json"

	"social_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BingoRepository struct {
	db *pgxpool.Pool
}

func NewBingoRepository(db *pgxpool.Pool) *BingoRepository {
	return &BingoRepository{db: db}
}

// RandomFields picks n pool entries for a fresh card.
func (r *BingoRepository) RandomFields(ctx context.Context, n int) ([]*domain.BingoField, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, COALESCE(url, '') FROM bingo_fields ORDER BY random() LIMIT $1`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.BingoField
	for rows.Next() {
		var f domain.BingoField
		if err := rows.Scan(&f.ID, &f.Name, &f.URL); err != nil {
			return nil, err
		}
		result = append(result, &f)
	}
	return result, rows.Err()
}

func scanBingo(row pgx.Row) (*domain.Bingo, error) {
	var b domain.Bingo
	var card []byte
	if err := row.Scan(&b.ID, &b.Date, &card, &b.Completed); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(card, &b.Card); err != nil {
		return nil, err
	}
	return &b, nil
}

// GetToday returns today's shared card; pgx.ErrNoRows if none exists yet.
func (r *BingoRepository) GetToday(ctx context.Context) (*domain.Bingo, error) {
	return scanBingo(r.db.QueryRow(ctx,
		`SELECT id, date, card, completed FROM bingos WHERE date = CURRENT_DATE`))
}

func (r *BingoRepository) GetForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*domain.Bingo, error) {
	return scanBingo(tx.QueryRow(ctx,
		`SELECT id, date, card, completed FROM bingos WHERE id = $1 FOR UPDATE`, id))
}

func (r *BingoRepository) Create(ctx context.Context, b *domain.Bingo) error {
	card, err := json.Marshal(b.Card)
	if err != nil {
		return err
	}
	return r.db.QueryRow(ctx,
		`INSERT INTO bingos (date, card) VALUES (CURRENT_DATE, $1)
		 RETURNING id, date`,
		card,
	).Scan(&b.ID, &b.Date)
}

// SaveCard persists the card state and completion flag inside tx.
func (r *BingoRepository) SaveCard(ctx context.Context, tx pgx.Tx, b *domain.Bingo) error {
	card, err := json.Marshal(b.Card)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx,
		`UPDATE bingos SET card = $1, completed = $2 WHERE id = $3`,
		card, b.Completed, b.ID,
	)
	return err
}

// CreateEntry records who marked which field, for stats.
func (r *BingoRepository) CreateEntry(ctx context.Context, tx pgx.Tx, bingoID, userID int64, fieldName string) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO bingo_entries (bingo_id, user_id, field_name, marked)
		 VALUES ($1, $2, $3, true)`,
		bingoID, userID, fieldName,
	)
	return err
}

// ClearEntries drops the stats rows when a card is reset, inside tx.
func (r *BingoRepository) ClearEntries(ctx context.Context, tx pgx.Tx, bingoID int64) error {
	_, err := tx.Exec(ctx, `DELETE FROM bingo_entries WHERE bingo_id = $1`, bingoID)
	return err
}

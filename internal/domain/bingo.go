package domain

import "time"

// BingoCardSize - fields on the 5x5 card
const BingoCardSize = 25

// BingoField - a pool entry cards are generated from
type BingoField struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
	URL  string `db:"url" json:"url,omitempty"`
}

// CardField is one cell of a bingo card. Cards are stored as an ordered
// slice; the position in the slice is the position on the 5x5 grid.
type CardField struct {
	Name      string `json:"name"`
	URL       string `json:"url,omitempty"`
	Completed bool   `json:"completed"`
}

// Bingo is the shared card for a single day.
type Bingo struct {
	ID        int64       `db:"id" json:"id"`
	Date      time.Time   `db:"date" json:"date"`
	Card      []CardField `db:"card" json:"card"`
	Completed bool        `db:"completed" json:"completed"`
}

// bingoLines - rows, columns and diagonals of the 5x5 grid
var bingoLines = [][5]int{
	{0, 1, 2, 3, 4},
	{5, 6, 7, 8, 9},
	{10, 11, 12, 13, 14},
	{15, 16, 17, 18, 19},
	{20, 21, 22, 23, 24},
	{0, 5, 10, 15, 20},
	{1, 6, 11, 16, 21},
	{2, 7, 12, 17, 22},
	{3, 8, 13, 18, 23},
	{4, 9, 14, 19, 24},
	{0, 6, 12, 18, 24},
	{4, 8, 12, 16, 20},
}

// MarkField completes the first field with the given name and returns true
// if it was found.
func (b *Bingo) MarkField(name string) bool {
	for i := range b.Card {
		if b.Card[i].Name == name {
			b.Card[i].Completed = true
			if b.HasWinningLine() {
				b.Completed = true
			}
			return true
		}
	}
	return false
}

// HasWinningLine reports whether any row, column or diagonal is fully
// completed.
func (b *Bingo) HasWinningLine() bool {
	if len(b.Card) < BingoCardSize {
		return false
	}
	for _, line := range bingoLines {
		full := true
		for _, idx := range line {
			if !b.Card[idx].Completed {
				full = false
				break
			}
		}
		if full {
			return true
		}
	}
	return false
}

// ClearCard resets every field and the completed flag.
func (b *Bingo) ClearCard() {
	for i := range b.Card {
		b.Card[i].Completed = false
	}
	b.Completed = false
}

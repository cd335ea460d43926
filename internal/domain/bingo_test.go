package domain

import (
	"fmt"
	"testing"
)

func testCard() []CardField {
	card := make([]CardField, BingoCardSize)
	for i := range card {
		card[i] = CardField{Name: fmt.Sprintf("field%d", i)}
	}
	return card
}

func TestMarkFieldCompletesRow(t *testing.T) {
	b := &Bingo{Card: testCard()}

	for i := 0; i < 4; i++ {
		if !b.MarkField(fmt.Sprintf("field%d", i)) {
			t.Fatalf("field%d not found", i)
		}
		if b.Completed {
			t.Fatal("card completed before a full line")
		}
	}
	if !b.MarkField("field4") {
		t.Fatal("field4 not found")
	}
	if !b.Completed {
		t.Fatal("full first row did not complete the card")
	}
}

func TestMarkFieldUnknownName(t *testing.T) {
	b := &Bingo{Card: testCard()}
	if b.MarkField("nope") {
		t.Fatal("marked a field that does not exist")
	}
}

func TestDiagonalWins(t *testing.T) {
	b := &Bingo{Card: testCard()}
	for _, idx := range []int{0, 6, 12, 18, 24} {
		b.Card[idx].Completed = true
	}
	if !b.HasWinningLine() {
		t.Fatal("main diagonal not detected")
	}

	b2 := &Bingo{Card: testCard()}
	for _, idx := range []int{4, 8, 12, 16, 20} {
		b2.Card[idx].Completed = true
	}
	if !b2.HasWinningLine() {
		t.Fatal("anti-diagonal not detected")
	}
}

func TestColumnWins(t *testing.T) {
	b := &Bingo{Card: testCard()}
	for _, idx := range []int{1, 6, 11, 16, 21} {
		b.Card[idx].Completed = true
	}
	if !b.HasWinningLine() {
		t.Fatal("column not detected")
	}
}

func TestClearCard(t *testing.T) {
	b := &Bingo{Card: testCard(), Completed: true}
	for i := range b.Card {
		b.Card[i].Completed = true
	}

	b.ClearCard()

	if b.Completed {
		t.Fatal("completed flag not reset")
	}
	for i := range b.Card {
		if b.Card[i].Completed {
			t.Fatalf("field %d still completed", i)
		}
	}
}

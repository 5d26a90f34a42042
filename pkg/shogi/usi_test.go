package shogi_test

import (
	"testing"

	"github.com/timezombi/shogiops/pkg/shogi"
)

func TestParseUsiBoardMove(t *testing.T) {
	move, err := shogi.ParseUsi("7g7f")
	if err != nil {
		t.Fatalf("failed to parse 7g7f: %v", err)
	}
	if move.Drop {
		t.Fatal("7g7f parsed as drop")
	}
	if got := shogi.MakeSquare(move.From); got != "7g" {
		t.Fatalf("from: got %q want 7g", got)
	}
	if got := shogi.MakeSquare(move.To); got != "7f" {
		t.Fatalf("to: got %q want 7f", got)
	}
	if move.Promotion {
		t.Fatal("unexpected promotion")
	}
}

func TestParseUsiPromotion(t *testing.T) {
	move, err := shogi.ParseUsi("7g7f+")
	if err != nil {
		t.Fatalf("failed to parse 7g7f+: %v", err)
	}
	if !move.Promotion {
		t.Fatal("promotion flag not set")
	}
	if got := shogi.MakeSquare(move.From); got != "7g" {
		t.Fatalf("from: got %q want 7g", got)
	}
}

func TestParseUsiDrop(t *testing.T) {
	move, err := shogi.ParseUsi("P*5e")
	if err != nil {
		t.Fatalf("failed to parse P*5e: %v", err)
	}
	if !move.Drop {
		t.Fatal("P*5e not parsed as drop")
	}
	if move.Role != shogi.Pawn {
		t.Fatalf("drop role: got %q want p", shogi.RoleToChar(move.Role))
	}
	if got := shogi.MakeSquare(move.To); got != "5e" {
		t.Fatalf("to: got %q want 5e", got)
	}
	if move.Promotion {
		t.Fatal("drop carries promotion")
	}
}

func TestParseUsiRejectsInvalid(t *testing.T) {
	invalid := []string{
		"",
		"7g7",
		"7g7f++",
		"7g7fx",
		"7g0f",
		"0g7f",
		"K*5e",
		"P*5j",
		"P*e5",
		"X*5e",
		"P*5e+",
	}
	for _, text := range invalid {
		if _, err := shogi.ParseUsi(text); err == nil {
			t.Fatalf("expected %q to be rejected", text)
		}
	}
}

func TestUsiRoundTrip(t *testing.T) {
	for _, text := range []string{"7g7f", "8h2b+", "P*5e", "L*1a", "S*9i", "1i1h"} {
		move, err := shogi.ParseUsi(text)
		if err != nil {
			t.Fatalf("failed to parse %q: %v", text, err)
		}
		if got := shogi.MakeUsi(move); got != text {
			t.Fatalf("round trip mismatch: got %q want %q", got, text)
		}
	}
}

func TestMakeUsiInverse(t *testing.T) {
	from, _ := shogi.ParseSquare("2h")
	to, _ := shogi.ParseSquare("2b")
	moves := []shogi.Move{
		{From: from, To: to},
		{From: from, To: to, Promotion: true},
		{Drop: true, Role: shogi.Gold, To: to},
	}
	for _, move := range moves {
		text := shogi.MakeUsi(move)
		parsed, err := shogi.ParseUsi(text)
		if err != nil {
			t.Fatalf("failed to parse %q: %v", text, err)
		}
		if parsed != move {
			t.Fatalf("inverse mismatch for %q: got %+v want %+v", text, parsed, move)
		}
	}
}

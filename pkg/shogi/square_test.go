package shogi_test

import (
	"testing"

	"github.com/timezombi/shogiops/pkg/shogi"
)

func TestSquareRoundTrip(t *testing.T) {
	for sq := shogi.Square(0); sq < shogi.NumSquares; sq++ {
		name := shogi.MakeSquare(sq)
		parsed, ok := shogi.ParseSquare(name)
		if !ok {
			t.Fatalf("failed to parse %q", name)
		}
		if parsed != sq {
			t.Fatalf("round trip mismatch for %q: got %d want %d", name, parsed, sq)
		}
	}
}

func TestParseSquareNames(t *testing.T) {
	cases := []struct {
		name string
		sq   shogi.Square
	}{
		{"9a", 0},
		{"1a", 8},
		{"5e", 40},
		{"9i", 72},
		{"1i", 80},
	}
	for _, tc := range cases {
		sq, ok := shogi.ParseSquare(tc.name)
		if !ok {
			t.Fatalf("failed to parse %q", tc.name)
		}
		if sq != tc.sq {
			t.Fatalf("parse %q: got %d want %d", tc.name, sq, tc.sq)
		}
		if got := shogi.MakeSquare(tc.sq); got != tc.name {
			t.Fatalf("make %d: got %q want %q", tc.sq, got, tc.name)
		}
	}
}

func TestParseSquareRejectsInvalid(t *testing.T) {
	for _, text := range []string{"", "5", "5e5", "0e", "5j", "e5", "55", "ae"} {
		if _, ok := shogi.ParseSquare(text); ok {
			t.Fatalf("expected %q to be rejected", text)
		}
	}
}

func TestSquareProjections(t *testing.T) {
	sq, ok := shogi.ParseSquare("7f")
	if !ok {
		t.Fatal("failed to parse 7f")
	}
	if file := shogi.SquareFile(sq); file != 2 {
		t.Fatalf("file of 7f: got %d want 2", file)
	}
	if rank := shogi.SquareRank(sq); rank != 5 {
		t.Fatalf("rank of 7f: got %d want 5", rank)
	}
}

package chess_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/timezombi/shogiops/pkg/chess"
)

func TestSquareRoundTrip(t *testing.T) {
	for sq := chess.Square(0); sq < chess.NumSquares; sq++ {
		name := chess.MakeSquare(sq)
		parsed, ok := chess.ParseSquare(name)
		require.True(t, ok, "failed to parse %q", name)
		require.Equal(t, sq, parsed, "round trip mismatch for %q", name)
	}
}

func TestParseSquareNames(t *testing.T) {
	cases := []struct {
		name string
		sq   chess.Square
	}{
		{"a1", 0},
		{"h1", 7},
		{"e4", 28},
		{"a8", 56},
		{"h8", 63},
	}
	for _, tc := range cases {
		sq, ok := chess.ParseSquare(tc.name)
		require.True(t, ok, "failed to parse %q", tc.name)
		require.Equal(t, tc.sq, sq, "parse %q", tc.name)
		require.Equal(t, tc.name, chess.MakeSquare(tc.sq))
	}
}

func TestParseSquareRejectsInvalid(t *testing.T) {
	for _, text := range []string{"", "e", "e44", "i4", "e9", "e0", "4e", "  "} {
		_, ok := chess.ParseSquare(text)
		require.False(t, ok, "expected %q to be rejected", text)
	}
}

func TestSquareSet(t *testing.T) {
	var set chess.SquareSet
	a1, _ := chess.ParseSquare("a1")
	h1, _ := chess.ParseSquare("h1")
	set = set.With(a1).With(h1).With(a1)
	require.True(t, set.Has(a1))
	require.True(t, set.Has(h1))
	e4, _ := chess.ParseSquare("e4")
	require.False(t, set.Has(e4))
	require.Equal(t, 2, set.Len())
}

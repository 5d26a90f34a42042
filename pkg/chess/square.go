package chess

// Square indexes the 8x8 board. Index 0 is a1, index 63 is h8. Files run
// a through h, ranks 1 through 8.
type Square int

// NoSquare marks the absence of a square (for example no en passant target).
const NoSquare Square = -1

// NumSquares is the number of squares on the board.
const NumSquares = 64

func SquareFile(s Square) int { return int(s) % 8 }

func SquareRank(s Square) int { return int(s) / 8 }

// ParseSquare decodes a coordinate like "e4". The second return value is
// false unless the text is exactly two characters and both coordinates fall
// on the board.
func ParseSquare(text string) (Square, bool) {
	if len(text) != 2 {
		return NoSquare, false
	}
	file := int(text[0] - 'a')
	rank := int(text[1] - '1')
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare, false
	}
	return Square(rank*8 + file), true
}

// MakeSquare is the inverse of ParseSquare on every valid square.
func MakeSquare(s Square) string {
	return string([]byte{byte('a' + SquareFile(s)), byte('1' + SquareRank(s))})
}

// SquareSet is a set of squares backed by a 64-bit mask; bit n corresponds
// to Square(n).
type SquareSet uint64

func (s SquareSet) Has(sq Square) bool {
	return s&(1<<uint(sq)) != 0
}

func (s SquareSet) With(sq Square) SquareSet {
	return s | 1<<uint(sq)
}

func (s SquareSet) Len() int {
	count := 0
	for ; s != 0; s &= s - 1 {
		count++
	}
	return count
}

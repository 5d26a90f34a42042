package shogi

// Square indexes the 9x9 board. Index 0 is 9a (the top-left corner from
// sente's point of view), index 80 is 1i. Files are numbered 9 through 1
// left to right, ranks a through i top to bottom.
type Square int

// NumSquares is the number of squares on the board.
const NumSquares = 81

func SquareFile(s Square) int { return int(s) % 9 }

func SquareRank(s Square) int { return int(s) / 9 }

// ParseSquare decodes a coordinate like "5e". The second return value is
// false unless the text is exactly two characters and both coordinates fall
// on the board.
func ParseSquare(text string) (Square, bool) {
	if len(text) != 2 {
		return 0, false
	}
	file := int('9' - text[0])
	rank := int(text[1] - 'a')
	if file < 0 || file > 8 || rank < 0 || rank > 8 {
		return 0, false
	}
	return Square(rank*9 + file), true
}

// MakeSquare is the inverse of ParseSquare on every valid square.
func MakeSquare(s Square) string {
	return string([]byte{byte('9' - SquareFile(s)), byte('a' + SquareRank(s))})
}

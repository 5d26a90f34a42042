package shogi

// Color identifies a side. Black (sente) moves first and is written in
// uppercase in SFEN.
type Color int

const (
	Black Color = iota
	White
)

func (c Color) Other() Color {
	if c == Black {
		return White
	}
	return Black
}

// Piece is a colored role. Promotion state lives in the role itself.
type Piece struct {
	Role  Role
	Color Color
}

// Hand counts reserve pieces per base role.
type Hand map[Role]int

// Position is a full 9x9 position. The board is sparse: squares absent from
// the map are empty. The codec never mutates a Position it did not build.
type Position struct {
	Board      map[Square]Piece
	Hands      map[Color]Hand
	Turn       Color
	MoveNumber int
}

// NewPosition returns an empty position with black to move.
func NewPosition() Position {
	return Position{
		Board:      map[Square]Piece{},
		Hands:      map[Color]Hand{Black: {}, White: {}},
		Turn:       Black,
		MoveNumber: 1,
	}
}

// HandCount returns the total number of pieces held in both hands.
func (p Position) HandCount() int {
	total := 0
	for _, hand := range p.Hands {
		for _, n := range hand {
			total += n
		}
	}
	return total
}

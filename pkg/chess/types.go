package chess

// Color identifies a side. White moves first and is written in uppercase.
type Color int

const (
	White Color = iota
	Black
)

func (c Color) Other() Color {
	if c == White {
		return Black
	}
	return White
}

// Role is a piece kind.
type Role int

const (
	Pawn Role = iota
	Knight
	Bishop
	Rook
	Queen
	King
)

// RoleToChar returns the lowercase notation letter for r.
func RoleToChar(r Role) byte {
	switch r {
	case Pawn:
		return 'p'
	case Knight:
		return 'n'
	case Bishop:
		return 'b'
	case Rook:
		return 'r'
	case Queen:
		return 'q'
	case King:
		return 'k'
	default:
		return 0
	}
}

// CharToRole decodes a notation letter, ignoring case. The second return
// value is false for unrecognized input.
func CharToRole(c byte) (Role, bool) {
	switch c | 0x20 {
	case 'p':
		return Pawn, true
	case 'n':
		return Knight, true
	case 'b':
		return Bishop, true
	case 'r':
		return Rook, true
	case 'q':
		return Queen, true
	case 'k':
		return King, true
	default:
		return 0, false
	}
}

// Piece is a colored role. Promoted tracks the crazyhouse-style '~' marker
// and is only meaningful in variants that drop captured pieces.
type Piece struct {
	Role     Role
	Color    Color
	Promoted bool
}

// CharToPiece decodes a notation letter into a colored piece; uppercase is
// white.
func CharToPiece(c byte) (Piece, bool) {
	role, ok := CharToRole(c)
	if !ok {
		return Piece{}, false
	}
	color := Black
	if c >= 'A' && c <= 'Z' {
		color = White
	}
	return Piece{Role: role, Color: color}, true
}

func pieceChar(p Piece) byte {
	c := RoleToChar(p.Role)
	if p.Color == White {
		c &^= 0x20
	}
	return c
}

// Board maps occupied squares to pieces; squares absent from the map are
// empty.
type Board map[Square]Piece

// Pocket counts reserve pieces per role.
type Pocket map[Role]int

// Material holds each color's pocket.
type Material map[Color]Pocket

// NewMaterial returns an empty material count for both colors.
func NewMaterial() Material {
	return Material{White: {}, Black: {}}
}

// Count returns the total number of pocket pieces for both colors.
func (m Material) Count() int {
	total := 0
	for _, pocket := range m {
		for _, n := range pocket {
			total += n
		}
	}
	return total
}

// RemainingChecks counts the checks each side may still deliver before
// winning, as used by check-counting variants. Values stay within 0..3.
type RemainingChecks struct {
	White int
	Black int
}

// Setup is a parsed position. The codec builds and reads it but never
// checks rule-level reachability.
type Setup struct {
	Board           Board
	Pockets         Material // nil when the position carries no pockets
	Turn            Color
	CastlingRights  SquareSet
	EpSquare        Square // NoSquare when absent
	RemainingChecks *RemainingChecks
	Halfmoves       int
	Fullmoves       int
}

package shogi

import "strings"

// Role is a piece kind. Promoted kinds are distinct roles, each mapping back
// to exactly one base kind through Unpromote.
type Role int

const (
	Pawn Role = iota
	Lance
	Knight
	Silver
	Gold
	Bishop
	Rook
	King
	Tokin
	PromotedLance
	PromotedKnight
	PromotedSilver
	Horse
	Dragon
)

// HandRoles lists the roles a hand may contain, in canonical SFEN order.
var HandRoles = [...]Role{Rook, Bishop, Gold, Silver, Knight, Lance, Pawn}

// IsHandRole reports whether r may sit in a hand and be dropped.
func IsHandRole(r Role) bool {
	switch r {
	case Pawn, Lance, Knight, Silver, Gold, Bishop, Rook:
		return true
	default:
		return false
	}
}

// Promote returns the promoted counterpart of r. The second return value is
// false for gold, king and roles that are already promoted.
func Promote(r Role) (Role, bool) {
	switch r {
	case Pawn:
		return Tokin, true
	case Lance:
		return PromotedLance, true
	case Knight:
		return PromotedKnight, true
	case Silver:
		return PromotedSilver, true
	case Bishop:
		return Horse, true
	case Rook:
		return Dragon, true
	default:
		return r, false
	}
}

// Unpromote maps a promoted role back to its base kind. The second return
// value is false for roles that are not promoted.
func Unpromote(r Role) (Role, bool) {
	switch r {
	case Tokin:
		return Pawn, true
	case PromotedLance:
		return Lance, true
	case PromotedKnight:
		return Knight, true
	case PromotedSilver:
		return Silver, true
	case Horse:
		return Bishop, true
	case Dragon:
		return Rook, true
	default:
		return r, false
	}
}

// RoleToChar returns the lowercase notation for r, prefixed with '+' for
// promoted roles.
func RoleToChar(r Role) string {
	switch r {
	case Pawn:
		return "p"
	case Lance:
		return "l"
	case Knight:
		return "n"
	case Silver:
		return "s"
	case Gold:
		return "g"
	case Bishop:
		return "b"
	case Rook:
		return "r"
	case King:
		return "k"
	case Tokin:
		return "+p"
	case PromotedLance:
		return "+l"
	case PromotedKnight:
		return "+n"
	case PromotedSilver:
		return "+s"
	case Horse:
		return "+b"
	case Dragon:
		return "+r"
	default:
		return ""
	}
}

// CharToRole decodes a notation character, optionally prefixed with '+'.
// Case is ignored here; color is carried by case at the piece layer. The
// second return value is false for unrecognized input, including '+' on a
// role without a promoted counterpart.
func CharToRole(text string) (Role, bool) {
	base := text
	promoted := false
	if strings.HasPrefix(text, "+") {
		promoted = true
		base = text[1:]
	}
	if len(base) != 1 {
		return 0, false
	}
	var r Role
	switch base[0] | 0x20 {
	case 'p':
		r = Pawn
	case 'l':
		r = Lance
	case 'n':
		r = Knight
	case 's':
		r = Silver
	case 'g':
		r = Gold
	case 'b':
		r = Bishop
	case 'r':
		r = Rook
	case 'k':
		r = King
	default:
		return 0, false
	}
	if promoted {
		return Promote(r)
	}
	return r, true
}

// CharToPiece decodes a notation character, optionally prefixed with '+',
// into a colored piece. Uppercase is black (sente), lowercase white (gote).
func CharToPiece(text string) (Piece, bool) {
	role, ok := CharToRole(text)
	if !ok {
		return Piece{}, false
	}
	c := text[len(text)-1]
	color := Black
	if c >= 'a' && c <= 'z' {
		color = White
	}
	return Piece{Role: role, Color: color}, true
}

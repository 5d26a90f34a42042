package shogi

import (
	"fmt"
	"strings"
)

// Move is either a board move or a drop. A drop carries only Role and To;
// From and Promotion are meaningful only for board moves.
type Move struct {
	From      Square
	To        Square
	Promotion bool
	Drop      bool
	Role      Role
}

// ParseUsi decodes a USI move string: either a drop like "P*5e" or a
// coordinate move like "7g7f" with an optional trailing '+' for promotion.
// Anything else is rejected whole; no partial move is returned.
func ParseUsi(text string) (Move, error) {
	if len(text) == 4 && text[1] == '*' {
		role, ok := CharToRole(text[:1])
		if !ok || !IsHandRole(role) {
			return Move{}, fmt.Errorf("invalid drop role in %q", text)
		}
		to, ok := ParseSquare(text[2:])
		if !ok {
			return Move{}, fmt.Errorf("invalid drop square in %q", text)
		}
		return Move{Drop: true, Role: role, To: to}, nil
	}
	if len(text) != 4 && len(text) != 5 {
		return Move{}, fmt.Errorf("invalid move length: %q", text)
	}
	from, ok := ParseSquare(text[:2])
	if !ok {
		return Move{}, fmt.Errorf("invalid source square in %q", text)
	}
	to, ok := ParseSquare(text[2:4])
	if !ok {
		return Move{}, fmt.Errorf("invalid destination square in %q", text)
	}
	promotion := false
	if len(text) == 5 {
		if text[4] != '+' {
			return Move{}, fmt.Errorf("invalid promotion marker in %q", text)
		}
		promotion = true
	}
	return Move{From: from, To: to, Promotion: promotion}, nil
}

// MakeUsi is the exact syntactic inverse of ParseUsi on well-formed moves.
func MakeUsi(m Move) string {
	if m.Drop {
		return strings.ToUpper(RoleToChar(m.Role)) + "*" + MakeSquare(m.To)
	}
	text := MakeSquare(m.From) + MakeSquare(m.To)
	if m.Promotion {
		text += "+"
	}
	return text
}

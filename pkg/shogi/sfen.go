package shogi

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// StartingSfen is the even-game starting position.
const StartingSfen = "lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNL b - 1"

// ParseSfen decodes an SFEN position string. Fields are board, turn, hands
// and move number; only the board is required. Turn defaults to black, hands
// to empty and the move number to 1. A bad field invalidates the whole parse.
func ParseSfen(text string) (Position, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return Position{}, errors.New("empty sfen")
	}
	pos := NewPosition()
	if err := parseSfenBoard(fields[0], &pos); err != nil {
		return Position{}, err
	}
	if len(fields) >= 2 && fields[1] == "w" {
		pos.Turn = White
	}
	if len(fields) >= 3 {
		if err := parseSfenHands(fields[2], &pos); err != nil {
			return Position{}, err
		}
	}
	if len(fields) >= 4 {
		n, err := strconv.Atoi(fields[3])
		if err != nil || n < 1 {
			return Position{}, fmt.Errorf("invalid move number: %s", fields[3])
		}
		pos.MoveNumber = n
	}
	if len(fields) > 4 {
		return Position{}, fmt.Errorf("unexpected sfen field: %s", fields[4])
	}
	return pos, nil
}

func parseSfenBoard(board string, pos *Position) error {
	ranks := strings.Split(board, "/")
	if len(ranks) != 9 {
		return fmt.Errorf("board has %d ranks, want 9", len(ranks))
	}
	for rank, text := range ranks {
		file := 0
		for i := 0; i < len(text); i++ {
			c := text[i]
			if c >= '1' && c <= '9' {
				file += int(c - '0')
				continue
			}
			start := i
			if c == '+' {
				i++
				if i >= len(text) {
					return errors.New("dangling promotion marker")
				}
			}
			piece, ok := CharToPiece(text[start : i+1])
			if !ok {
				return fmt.Errorf("unknown piece %q in rank %d", text[start:i+1], rank+1)
			}
			if file > 8 {
				return fmt.Errorf("rank %d has too many files", rank+1)
			}
			pos.Board[Square(rank*9+file)] = piece
			file++
		}
		if file != 9 {
			return fmt.Errorf("rank %d has %d files, want 9", rank+1, file)
		}
	}
	return nil
}

func parseSfenHands(text string, pos *Position) error {
	if text == "-" {
		return nil
	}
	count := 0
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c >= '0' && c <= '9' {
			count = count*10 + int(c-'0')
			continue
		}
		piece, ok := CharToPiece(text[i : i+1])
		if !ok || !IsHandRole(piece.Role) {
			return fmt.Errorf("invalid hand piece %q", text[i:i+1])
		}
		if count == 0 {
			count = 1
		}
		pos.Hands[piece.Color][piece.Role] += count
		count = 0
	}
	if count != 0 {
		return errors.New("trailing hand count")
	}
	return nil
}

// MakeSfen serializes a position in canonical form. It is total on
// well-formed positions and mirrors the parser's field order.
func MakeSfen(pos Position) string {
	var board strings.Builder
	for rank := 0; rank < 9; rank++ {
		if rank > 0 {
			board.WriteByte('/')
		}
		empty := 0
		for file := 0; file < 9; file++ {
			piece, ok := pos.Board[Square(rank*9+file)]
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				board.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			board.WriteString(pieceToSfen(piece))
		}
		if empty > 0 {
			board.WriteString(strconv.Itoa(empty))
		}
	}
	turn := "b"
	if pos.Turn == White {
		turn = "w"
	}
	moveNumber := pos.MoveNumber
	if moveNumber < 1 {
		moveNumber = 1
	}
	return board.String() + " " + turn + " " + makeSfenHands(pos) + " " + strconv.Itoa(moveNumber)
}

func pieceToSfen(piece Piece) string {
	text := RoleToChar(piece.Role)
	if piece.Color == Black {
		return strings.ToUpper(text)
	}
	return text
}

func makeSfenHands(pos Position) string {
	var b strings.Builder
	for _, color := range []Color{Black, White} {
		for _, role := range HandRoles {
			count := pos.Hands[color][role]
			if count == 0 {
				continue
			}
			if count > 1 {
				b.WriteString(strconv.Itoa(count))
			}
			b.WriteString(pieceToSfen(Piece{Role: role, Color: color}))
		}
	}
	if b.Len() == 0 {
		return "-"
	}
	return b.String()
}

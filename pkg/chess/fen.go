package chess

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// StartingFen is the standard starting position.
const StartingFen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Parse failures, one sentinel per grammar category. Every failure returned
// by ParseFen wraps exactly one of these.
var (
	ErrBoard           = errors.New("fen: invalid board")
	ErrPockets         = errors.New("fen: invalid pockets")
	ErrCastling        = errors.New("fen: invalid castling rights")
	ErrEpSquare        = errors.New("fen: invalid en passant square")
	ErrRemainingChecks = errors.New("fen: invalid remaining checks")
	ErrHalfmoves       = errors.New("fen: invalid halfmoves")
	ErrFullmoves       = errors.New("fen: invalid fullmoves")
	ErrFields          = errors.New("fen: trailing fields")
)

// ParseFen decodes an extended FEN string. The grammar, space separated and
// in order, is
//
//	board[/pockets] turn castling ep [checks] halfmoves fullmoves [checks]
//
// where every field but the board is optional. Pockets may be bracketed
// after the board or appended as an extra '/'-separated segment. Castling
// rights come back as the set of rook squares still able to castle, derived
// from the board. A single bad field invalidates the whole parse.
func ParseFen(text string) (Setup, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return Setup{}, fmt.Errorf("%w: empty input", ErrBoard)
	}
	i := 0
	shift := func() (string, bool) {
		if i >= len(fields) {
			return "", false
		}
		field := fields[i]
		i++
		return field, true
	}

	boardPart, _ := shift()
	var board Board
	var pockets Material
	var err error
	if strings.HasSuffix(boardPart, "]") {
		start := strings.IndexByte(boardPart, '[')
		if start == -1 {
			return Setup{}, fmt.Errorf("%w: unmatched bracket", ErrBoard)
		}
		board, err = parseBoardFen(boardPart[:start])
		if err != nil {
			return Setup{}, err
		}
		pockets, err = parsePockets(boardPart[start+1 : len(boardPart)-1])
		if err != nil {
			return Setup{}, err
		}
	} else if cut := nthIndexOf(boardPart, '/', 7); cut != -1 {
		board, err = parseBoardFen(boardPart[:cut])
		if err != nil {
			return Setup{}, err
		}
		pockets, err = parsePockets(boardPart[cut+1:])
		if err != nil {
			return Setup{}, err
		}
	} else {
		board, err = parseBoardFen(boardPart)
		if err != nil {
			return Setup{}, err
		}
	}

	turn := White
	if turnPart, ok := shift(); ok && turnPart != "w" {
		turn = Black
	}

	var castling SquareSet
	if castlingPart, ok := shift(); ok {
		castling, err = parseCastlingFen(board, castlingPart)
		if err != nil {
			return Setup{}, err
		}
	}

	ep := NoSquare
	if epPart, ok := shift(); ok && epPart != "-" {
		sq, ok := ParseSquare(epPart)
		if !ok {
			return Setup{}, fmt.Errorf("%w: %q", ErrEpSquare, epPart)
		}
		ep = sq
	}

	var early *RemainingChecks
	halfmovePart, hasHalfmoves := shift()
	if hasHalfmoves && strings.ContainsRune(halfmovePart, '+') {
		early, err = parseRemainingChecks(halfmovePart)
		if err != nil {
			return Setup{}, err
		}
		halfmovePart, hasHalfmoves = shift()
	}
	halfmoves := 0
	if hasHalfmoves {
		n, ok := parseSmallUint(halfmovePart)
		if !ok {
			return Setup{}, fmt.Errorf("%w: %q", ErrHalfmoves, halfmovePart)
		}
		halfmoves = n
	}

	fullmoves := 1
	if fullmovePart, ok := shift(); ok {
		n, ok := parseSmallUint(fullmovePart)
		if !ok {
			return Setup{}, fmt.Errorf("%w: %q", ErrFullmoves, fullmovePart)
		}
		fullmoves = n
	}

	checks := early
	if checksPart, ok := shift(); ok {
		if early != nil {
			return Setup{}, fmt.Errorf("%w: specified twice", ErrRemainingChecks)
		}
		checks, err = parseRemainingChecks(checksPart)
		if err != nil {
			return Setup{}, err
		}
	}

	if extra, ok := shift(); ok {
		return Setup{}, fmt.Errorf("%w: %q", ErrFields, extra)
	}

	if fullmoves < 1 {
		fullmoves = 1
	}
	return Setup{
		Board:           board,
		Pockets:         pockets,
		Turn:            turn,
		CastlingRights:  castling,
		EpSquare:        ep,
		RemainingChecks: checks,
		Halfmoves:       halfmoves,
		Fullmoves:       fullmoves,
	}, nil
}

// nthIndexOf returns the byte index of the (n+1)-th occurrence of c, or -1.
func nthIndexOf(text string, c byte, n int) int {
	for i := 0; i < len(text); i++ {
		if text[i] != c {
			continue
		}
		if n == 0 {
			return i
		}
		n--
	}
	return -1
}

func parseBoardFen(text string) (Board, error) {
	board := Board{}
	rank, file := 7, 0
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '/' && file == 8:
			file = 0
			rank--
		case c >= '1' && c <= '8':
			file += int(c - '0')
		default:
			if file >= 8 || rank < 0 {
				return nil, fmt.Errorf("%w: misplaced %q", ErrBoard, c)
			}
			piece, ok := CharToPiece(c)
			if !ok {
				return nil, fmt.Errorf("%w: unknown piece %q", ErrBoard, c)
			}
			if i+1 < len(text) && text[i+1] == '~' {
				piece.Promoted = true
				i++
			}
			board[Square(rank*8+file)] = piece
			file++
		}
	}
	if rank != 0 || file != 8 {
		return nil, fmt.Errorf("%w: %d ranks and %d files consumed", ErrBoard, 8-rank, file)
	}
	return board, nil
}

func parsePockets(text string) (Material, error) {
	pockets := NewMaterial()
	for i := 0; i < len(text); i++ {
		piece, ok := CharToPiece(text[i])
		if !ok {
			return nil, fmt.Errorf("%w: unknown piece %q", ErrPockets, text[i])
		}
		pockets[piece.Color][piece.Role]++
	}
	return pockets, nil
}

func parseRemainingChecks(text string) (*RemainingChecks, error) {
	parts := strings.Split(text, "+")
	switch {
	case len(parts) == 3 && parts[0] == "":
		// "+W+B" counts checks already given.
		white, okWhite := parseSmallUint(parts[1])
		black, okBlack := parseSmallUint(parts[2])
		if !okWhite || !okBlack || white > 3 || black > 3 {
			return nil, fmt.Errorf("%w: %q", ErrRemainingChecks, text)
		}
		return &RemainingChecks{White: 3 - white, Black: 3 - black}, nil
	case len(parts) == 2:
		// "W+B" counts checks still to give.
		white, okWhite := parseSmallUint(parts[0])
		black, okBlack := parseSmallUint(parts[1])
		if !okWhite || !okBlack || white > 3 || black > 3 {
			return nil, fmt.Errorf("%w: %q", ErrRemainingChecks, text)
		}
		return &RemainingChecks{White: white, Black: black}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrRemainingChecks, text)
	}
}

func parseSmallUint(text string) (int, bool) {
	if len(text) < 1 || len(text) > 4 {
		return 0, false
	}
	n := 0
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

type scanState int

const (
	scanScanning scanState = iota
	scanKingFound
	scanDone
)

// scanRookSquare walks candidate squares in order, looking for a rook of the
// given color. Meeting that color's king first ends the scan empty-handed.
func scanRookSquare(board Board, color Color, candidates []Square) (Square, bool) {
	state := scanScanning
	found := NoSquare
	for _, sq := range candidates {
		if state != scanScanning {
			break
		}
		piece, ok := board[sq]
		if !ok || piece.Color != color {
			continue
		}
		switch piece.Role {
		case King:
			state = scanKingFound
		case Rook:
			found = sq
			state = scanDone
		}
	}
	return found, found != NoSquare
}

func parseCastlingFen(board Board, text string) (SquareSet, error) {
	var rights SquareSet
	if text == "-" {
		return rights, nil
	}
	for i := 0; i < len(text); i++ {
		c := text[i]
		lower := c | 0x20
		color := White
		if c == lower {
			color = Black
		}
		backrank := 0
		if color == Black {
			backrank = 7
		}
		var candidates []Square
		switch {
		case lower == 'q':
			for file := 0; file < 8; file++ {
				candidates = append(candidates, Square(backrank*8+file))
			}
		case lower == 'k':
			for file := 7; file >= 0; file-- {
				candidates = append(candidates, Square(backrank*8+file))
			}
		case lower >= 'a' && lower <= 'h':
			candidates = []Square{Square(backrank*8 + int(lower-'a'))}
		default:
			return 0, fmt.Errorf("%w: %q", ErrCastling, c)
		}
		if sq, ok := scanRookSquare(board, color, candidates); ok {
			rights = rights.With(sq)
		}
	}
	return rights, nil
}

// Opts tunes MakeFen output.
type Opts struct {
	// Promoted appends the '~' marker to pieces parsed as promoted.
	Promoted bool
}

// MakeFen serializes a setup, mirroring the parser's field order. It is
// total on well-formed setups; castling rights inconsistent with the board
// (squares without a same-color rook) are silently dropped and will not
// round-trip.
func MakeFen(setup Setup, opts Opts) string {
	fields := make([]string, 0, 7)

	boardPart := makeBoardFen(setup.Board, opts)
	if setup.Pockets != nil {
		boardPart += "[" + makePockets(setup.Pockets) + "]"
	}
	fields = append(fields, boardPart)

	turn := "w"
	if setup.Turn == Black {
		turn = "b"
	}
	fields = append(fields, turn)

	fields = append(fields, makeCastlingFen(setup.Board, setup.CastlingRights))

	if setup.EpSquare == NoSquare {
		fields = append(fields, "-")
	} else {
		fields = append(fields, MakeSquare(setup.EpSquare))
	}

	if setup.RemainingChecks != nil {
		fields = append(fields, makeRemainingChecks(*setup.RemainingChecks))
	}

	halfmoves := setup.Halfmoves
	if halfmoves < 0 {
		halfmoves = 0
	}
	fullmoves := setup.Fullmoves
	if fullmoves < 1 {
		fullmoves = 1
	}
	fields = append(fields, strconv.Itoa(halfmoves), strconv.Itoa(fullmoves))

	return strings.Join(fields, " ")
}

func makeBoardFen(board Board, opts Opts) string {
	var b strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			piece, ok := board[Square(rank*8+file)]
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				b.WriteByte('0' + byte(empty))
				empty = 0
			}
			b.WriteByte(pieceChar(piece))
			if opts.Promoted && piece.Promoted {
				b.WriteByte('~')
			}
		}
		if empty > 0 {
			b.WriteByte('0' + byte(empty))
		}
		if rank > 0 {
			b.WriteByte('/')
		}
	}
	return b.String()
}

var pocketRoles = [...]Role{Pawn, Knight, Bishop, Rook, Queen, King}

func makePockets(m Material) string {
	var b strings.Builder
	for _, color := range []Color{White, Black} {
		for _, role := range pocketRoles {
			c := pieceChar(Piece{Role: role, Color: color})
			for n := m[color][role]; n > 0; n-- {
				b.WriteByte(c)
			}
		}
	}
	return b.String()
}

func makeRemainingChecks(checks RemainingChecks) string {
	return fmt.Sprintf("+%d+%d", 3-checks.White, 3-checks.Black)
}

// makeCastlingFen re-derives the minimal encoding by scanning the board the
// same way the parser does: the outermost unmoved rook on each side of the
// king collapses to 'k' or 'q', anything else keeps its file letter.
func makeCastlingFen(board Board, rights SquareSet) string {
	var b strings.Builder
	for _, color := range []Color{White, Black} {
		backrank := 0
		if color == Black {
			backrank = 7
		}
		king := NoSquare
		var rooks []Square
		for file := 0; file < 8; file++ {
			sq := Square(backrank*8 + file)
			piece, ok := board[sq]
			if !ok || piece.Color != color {
				continue
			}
			switch piece.Role {
			case King:
				king = sq
			case Rook:
				rooks = append(rooks, sq)
			}
		}
		for i := len(rooks) - 1; i >= 0; i-- {
			sq := rooks[i]
			if !rights.Has(sq) {
				continue
			}
			var c byte
			switch {
			case i == len(rooks)-1 && king != NoSquare && king < sq:
				c = 'k'
			case i == 0 && king != NoSquare && sq < king:
				c = 'q'
			default:
				c = 'a' + byte(SquareFile(sq))
			}
			if color == White {
				c &^= 0x20
			}
			b.WriteByte(c)
		}
	}
	if b.Len() == 0 {
		return "-"
	}
	return b.String()
}

package shogi

import "fmt"

// Packed256 is a position squeezed into 256 bits: one turn bit, two 7-bit
// king squares, then prefix-free role codes for the other 79 squares and the
// hand pieces. The encoding only fills exactly 256 bits when the position
// carries the full 40-piece material set.
type Packed256 struct {
	Words [4]uint64
}

type roleCode struct {
	role   Role
	bits   uint64
	bitLen int
	empty  bool
}

var boardCodes = []roleCode{
	{bits: 0b0, bitLen: 1, empty: true},
	{role: Pawn, bits: 0b01, bitLen: 2},
	{role: Lance, bits: 0b0011, bitLen: 4},
	{role: Knight, bits: 0b1011, bitLen: 4},
	{role: Silver, bits: 0b0111, bitLen: 4},
	{role: Gold, bits: 0b01111, bitLen: 5},
	{role: Bishop, bits: 0b011111, bitLen: 6},
	{role: Rook, bits: 0b111111, bitLen: 6},
}

var handCodes = []roleCode{
	{role: Pawn, bits: 0b0, bitLen: 1},
	{role: Lance, bits: 0b001, bitLen: 3},
	{role: Knight, bits: 0b101, bitLen: 3},
	{role: Silver, bits: 0b011, bitLen: 3},
	{role: Gold, bits: 0b0111, bitLen: 4},
	{role: Bishop, bits: 0b01111, bitLen: 5},
	{role: Rook, bits: 0b11111, bitLen: 5},
}

type codeBook struct {
	byLen  map[int]map[uint64]roleCode
	byRole map[Role]roleCode
	empty  roleCode
	maxLen int
}

var boardCodeBook = buildCodeBook(boardCodes)
var handCodeBook = buildCodeBook(handCodes)

func buildCodeBook(codes []roleCode) codeBook {
	book := codeBook{byLen: map[int]map[uint64]roleCode{}, byRole: map[Role]roleCode{}}
	for _, code := range codes {
		if book.byLen[code.bitLen] == nil {
			book.byLen[code.bitLen] = map[uint64]roleCode{}
		}
		book.byLen[code.bitLen][code.bits] = code
		if code.empty {
			book.empty = code
		} else {
			book.byRole[code.role] = code
		}
		if code.bitLen > book.maxLen {
			book.maxLen = code.bitLen
		}
	}
	return book
}

// Pack encodes a position into 256 bits. It fails if either king is missing
// or duplicated, or if the material does not fill the stream exactly.
func Pack(pos Position) (Packed256, error) {
	w := &bitWriter256{}

	turnBit := uint64(0)
	if pos.Turn == White {
		turnBit = 1
	}
	if err := w.writeBit(turnBit); err != nil {
		return Packed256{}, err
	}

	blackKing, whiteKing, err := kingSquares(pos)
	if err != nil {
		return Packed256{}, err
	}
	if err := w.writeBits(uint64(blackKing), 7); err != nil {
		return Packed256{}, err
	}
	if err := w.writeBits(uint64(whiteKing), 7); err != nil {
		return Packed256{}, err
	}

	for sq := Square(0); sq < NumSquares; sq++ {
		if sq == blackKing || sq == whiteKing {
			continue
		}
		piece, ok := pos.Board[sq]
		if !ok {
			if err := w.writeBits(boardCodeBook.empty.bits, boardCodeBook.empty.bitLen); err != nil {
				return Packed256{}, err
			}
			continue
		}
		if piece.Role == King {
			return Packed256{}, fmt.Errorf("unexpected king on %s", MakeSquare(sq))
		}
		base := piece.Role
		promoted := false
		if unpromoted, ok := Unpromote(piece.Role); ok {
			base = unpromoted
			promoted = true
		}
		code, ok := boardCodeBook.byRole[base]
		if !ok {
			return Packed256{}, fmt.Errorf("no board code for role %s", RoleToChar(base))
		}
		if err := w.writeBits(code.bits, code.bitLen); err != nil {
			return Packed256{}, err
		}
		if err := w.writeColor(piece.Color); err != nil {
			return Packed256{}, err
		}
		if _, promotable := Promote(base); promotable {
			bit := uint64(0)
			if promoted {
				bit = 1
			}
			if err := w.writeBit(bit); err != nil {
				return Packed256{}, err
			}
		}
	}

	for _, color := range []Color{Black, White} {
		for _, role := range []Role{Pawn, Lance, Knight, Silver, Gold, Bishop, Rook} {
			code := handCodeBook.byRole[role]
			for i := pos.Hands[color][role]; i > 0; i-- {
				if err := w.writeBits(code.bits, code.bitLen); err != nil {
					return Packed256{}, err
				}
				if err := w.writeColor(color); err != nil {
					return Packed256{}, err
				}
				if _, promotable := Promote(role); promotable {
					if err := w.writeBit(0); err != nil {
						return Packed256{}, err
					}
				}
			}
		}
	}

	if w.pos != 256 {
		return Packed256{}, fmt.Errorf("packed length is %d bits, expected 256", w.pos)
	}
	return Packed256{Words: w.words}, nil
}

// Unpack is the inverse of Pack.
func Unpack(p Packed256) (Position, error) {
	r := &bitReader256{words: p.Words}

	turnBit, err := r.readBit()
	if err != nil {
		return Position{}, err
	}

	blackKing, err := r.readBits(7)
	if err != nil {
		return Position{}, err
	}
	whiteKing, err := r.readBits(7)
	if err != nil {
		return Position{}, err
	}
	if blackKing == whiteKing {
		return Position{}, fmt.Errorf("kings share square %d", blackKing)
	}
	if blackKing >= NumSquares || whiteKing >= NumSquares {
		return Position{}, fmt.Errorf("king square out of range")
	}

	pos := NewPosition()
	if turnBit == 1 {
		pos.Turn = White
	}
	pos.Board[Square(blackKing)] = Piece{Role: King, Color: Black}
	pos.Board[Square(whiteKing)] = Piece{Role: King, Color: White}

	for sq := Square(0); sq < NumSquares; sq++ {
		if sq == Square(blackKing) || sq == Square(whiteKing) {
			continue
		}
		code, err := r.readCode(boardCodeBook)
		if err != nil {
			return Position{}, err
		}
		if code.empty {
			continue
		}
		color, err := r.readColor()
		if err != nil {
			return Position{}, err
		}
		role := code.role
		if promoted, promotable := Promote(role); promotable {
			bit, err := r.readBit()
			if err != nil {
				return Position{}, err
			}
			if bit == 1 {
				role = promoted
			}
		}
		pos.Board[sq] = Piece{Role: role, Color: color}
	}

	for r.pos < 256 {
		code, err := r.readCode(handCodeBook)
		if err != nil {
			return Position{}, err
		}
		color, err := r.readColor()
		if err != nil {
			return Position{}, err
		}
		if _, promotable := Promote(code.role); promotable {
			bit, err := r.readBit()
			if err != nil {
				return Position{}, err
			}
			if bit != 0 {
				return Position{}, fmt.Errorf("promoted piece in hand: %s", RoleToChar(code.role))
			}
		}
		pos.Hands[color][code.role]++
	}

	return pos, nil
}

func kingSquares(pos Position) (Square, Square, error) {
	blackKing := Square(-1)
	whiteKing := Square(-1)
	for sq, piece := range pos.Board {
		if piece.Role != King {
			continue
		}
		if piece.Color == Black {
			if blackKing != -1 {
				return 0, 0, fmt.Errorf("multiple black kings")
			}
			blackKing = sq
		} else {
			if whiteKing != -1 {
				return 0, 0, fmt.Errorf("multiple white kings")
			}
			whiteKing = sq
		}
	}
	if blackKing == -1 || whiteKing == -1 {
		return 0, 0, fmt.Errorf("missing king")
	}
	return blackKing, whiteKing, nil
}

type bitWriter256 struct {
	words [4]uint64
	pos   int
}

func (w *bitWriter256) writeBit(bit uint64) error {
	if w.pos >= 256 {
		return fmt.Errorf("bitstream overflow")
	}
	word := w.pos / 64
	offset := uint(w.pos % 64)
	if bit != 0 {
		w.words[word] |= 1 << offset
	}
	w.pos++
	return nil
}

func (w *bitWriter256) writeBits(value uint64, bitLen int) error {
	for i := 0; i < bitLen; i++ {
		if err := w.writeBit((value >> i) & 1); err != nil {
			return err
		}
	}
	return nil
}

func (w *bitWriter256) writeColor(color Color) error {
	bit := uint64(0)
	if color == White {
		bit = 1
	}
	return w.writeBit(bit)
}

type bitReader256 struct {
	words [4]uint64
	pos   int
}

func (r *bitReader256) readBit() (uint64, error) {
	if r.pos >= 256 {
		return 0, fmt.Errorf("bitstream underflow")
	}
	word := r.pos / 64
	offset := uint(r.pos % 64)
	bit := (r.words[word] >> offset) & 1
	r.pos++
	return bit, nil
}

func (r *bitReader256) readBits(bitLen int) (uint64, error) {
	var value uint64
	for i := 0; i < bitLen; i++ {
		bit, err := r.readBit()
		if err != nil {
			return 0, err
		}
		value |= bit << i
	}
	return value, nil
}

func (r *bitReader256) readCode(book codeBook) (roleCode, error) {
	var value uint64
	for length := 1; length <= book.maxLen; length++ {
		bit, err := r.readBit()
		if err != nil {
			return roleCode{}, err
		}
		value |= bit << (length - 1)
		if entry, ok := book.byLen[length][value]; ok {
			return entry, nil
		}
	}
	return roleCode{}, fmt.Errorf("invalid code")
}

func (r *bitReader256) readColor() (Color, error) {
	bit, err := r.readBit()
	if err != nil {
		return Black, err
	}
	if bit == 1 {
		return White, nil
	}
	return Black, nil
}

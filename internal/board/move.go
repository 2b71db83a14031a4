package board

import "fmt"

// Move packs a chess move into an integer:
// bits 0-2: promotion piece type (0 when none),
// bits 3-8: destination square,
// bits 9-14: source square.
type Move uint32

// NoMove is the null move sentinel.
const NoMove Move = 0

// NewMove creates a move between two squares.
func NewMove(from, to Square) Move {
	return Move(from)<<9 | Move(to)<<3
}

// WithPromotion attaches a promotion piece type to the move.
func (m Move) WithPromotion(pt PieceType) Move {
	return m | Move(pt)
}

// From returns the source square.
func (m Move) From() Square {
	return Square(m >> 9)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square(m >> 3 & 63)
}

// HasPromotion reports whether the move carries a promotion.
func (m Move) HasPromotion() bool {
	return m&7 != 0
}

// Promotion returns the promotion piece type; only meaningful when
// HasPromotion reports true.
func (m Move) Promotion() PieceType {
	return PieceType(m & 7)
}

// String returns the long-algebraic form of the move ("e2e4", "e7e8q").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.HasPromotion() {
		s += string(m.Promotion().Char())
	}
	return s
}

// ParseMove parses a long-algebraic move string.
func ParseMove(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return NoMove, fmt.Errorf("invalid move: %q", s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, fmt.Errorf("invalid move %q: %v", s, err)
	}

	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, fmt.Errorf("invalid move %q: %v", s, err)
	}

	move := NewMove(from, to)

	if len(s) == 5 {
		pt, ok := PieceTypeFromChar(s[4])
		if !ok || pt == King || pt == Pawn {
			return NoMove, fmt.Errorf("invalid move %q: bad promotion piece %q", s, s[4])
		}
		move = move.WithPromotion(pt)
	}

	return move, nil
}

// MoveList is a fixed-capacity move buffer; the generator writes through it
// so that no move list ever allocates on the hot path.
type MoveList struct {
	moves [256]Move
	count int
}

// Add appends a move.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Clear empties the list.
func (ml *MoveList) Clear() {
	ml.count = 0
}

// Contains reports whether the list holds the move.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// Slice returns the moves as a slice backed by the list's buffer.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}

// MoveInfo is the reversal record produced by PerformMove and consumed by
// RevertMove. The captured piece's type and the moved piece's pre-promotion
// type are recoverable from the references.
type MoveInfo struct {
	Move          Move
	MovedPiece    *Piece
	CapturedPiece *Piece
	CastlingRook  *Piece

	PrevCheckers           Bitboard
	PrevPositionKey        uint64
	PrevPawnKey            uint64
	PrevPossibleEnPassant  Square
	PrevPossibleCastling   Castling
	PrevPliesFor50MoveRule int
}

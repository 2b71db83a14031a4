package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the standard starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// NewPosition builds a position from the first five FEN fields: piece
// placement, side to move, castling rights, en-passant target and halfmove
// clock. A sixth field (fullmove number) is accepted and ignored.
func NewPosition(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 5 {
		return nil, fmt.Errorf("fen %q: need at least 5 fields, got %d", fen, len(fields))
	}

	p := &Position{
		PossibleEnPassant: NoSquare,
		History:           make([]uint64, 0, 512),
	}

	if err := p.parsePlacement(fields[0]); err != nil {
		return nil, err
	}

	switch fields[1] {
	case "w":
		p.Turn = White
	case "b":
		p.Turn = Black
	default:
		return nil, fmt.Errorf("fen side to move: %q", fields[1])
	}

	if fields[2] != "-" {
		for i := 0; i < len(fields[2]); i++ {
			switch fields[2][i] {
			case 'K':
				p.PossibleCastling |= WhiteOO
			case 'Q':
				p.PossibleCastling |= WhiteOOO
			case 'k':
				p.PossibleCastling |= BlackOO
			case 'q':
				p.PossibleCastling |= BlackOOO
			default:
				return nil, fmt.Errorf("fen castling rights: %q", fields[2])
			}
		}
	}

	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return nil, fmt.Errorf("fen en passant: %q", fields[3])
		}
		p.PossibleEnPassant = sq
	}

	plies, err := strconv.Atoi(fields[4])
	if err != nil || plies < 0 {
		return nil, fmt.Errorf("fen halfmove clock: %q", fields[4])
	}
	p.PliesFor50MoveRule = plies

	if p.Kings[White] == nil || p.Kings[Black] == nil {
		return nil, fmt.Errorf("fen %q: both kings required", fen)
	}

	if p.Turn == White {
		p.PositionKey ^= turnKey
	}
	p.PositionKey ^= castlingKeys[p.PossibleCastling]
	if p.PossibleEnPassant != NoSquare {
		p.PositionKey ^= enPassantKeys[p.PossibleEnPassant]
	}

	p.Checkers = p.AttackersTo(p.Kings[p.Turn].Square, p.Turn.Other(), p.Occupancy)
	p.History = append(p.History, p.PositionKey)

	return p, nil
}

func (p *Position) parsePlacement(placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("fen placement %q: need 8 ranks, got %d", placement, len(ranks))
	}

	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0

		for j := 0; j < len(rankStr); j++ {
			c := rankStr[j]

			if file > 7 {
				return fmt.Errorf("fen placement rank %q: too many squares", rankStr)
			}

			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}

			color := White
			lower := c
			if c >= 'a' {
				color = Black
			} else {
				lower = c + ('a' - 'A')
			}

			pt, ok := PieceTypeFromChar(lower)
			if !ok {
				return fmt.Errorf("fen placement: unknown piece %q", string(c))
			}

			if err := p.addPiece(color, pt, NewSquare(file, rank)); err != nil {
				return err
			}
			file++
		}

		if file != 8 {
			return fmt.Errorf("fen placement rank %q: %d squares", rankStr, file)
		}
	}

	return nil
}

// ToFEN serialises the position back into a FEN string.
func (p *Position) ToFEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := p.Board[NewSquare(file, rank)]
			if piece == nil {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(piece.Char())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if p.Turn == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(p.PossibleCastling.String())

	sb.WriteByte(' ')
	sb.WriteString(p.PossibleEnPassant.String())

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.PliesFor50MoveRule))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.MoveCount/2 + 1))

	return sb.String()
}

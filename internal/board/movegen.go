package board

type pinDirection uint8

const (
	pinNone pinDirection = iota
	pinDiagonal
	pinHorizontal
	pinVertical
)

// AllLegalMoves fills ml with every legal move for the side to move. A pawn
// standing on its relative 7th rank emits four moves per destination, one
// per promotion type, queen first.
func (p *Position) AllLegalMoves(ml *MoveList) {
	ml.Clear()

	var dests [32]Square
	for i := 0; i < p.PieceCounts[p.Turn]; i++ {
		piece := p.Pieces[p.Turn][i]
		isPromotion := piece.Type == Pawn && piece.Square.RelativeRank(piece.Color) == 6

		for _, sq := range p.legalDestinations(piece, dests[:0], false) {
			move := NewMove(piece.Square, sq)
			if isPromotion {
				ml.Add(move.WithPromotion(Queen))
				ml.Add(move.WithPromotion(Knight))
				ml.Add(move.WithPromotion(Rook))
				ml.Add(move.WithPromotion(Bishop))
			} else {
				ml.Add(move)
			}
		}
	}
}

// IsNoMoves reports whether the side to move has no legal move, asking each
// piece for at most one.
func (p *Position) IsNoMoves() bool {
	var dests [32]Square
	for i := 0; i < p.PieceCounts[p.Turn]; i++ {
		if len(p.legalDestinations(p.Pieces[p.Turn][i], dests[:0], true)) != 0 {
			return false
		}
	}
	return true
}

// legalDestinations appends the piece's legal destination squares to buf.
// With stopAfter1 it returns after the first legal destination found.
func (p *Position) legalDestinations(piece *Piece, buf []Square, stopAfter1 bool) []Square {
	isKing := piece.Type == King

	// Double check: only the king may move.
	if !isKing && p.InDoubleCheck() {
		return buf
	}

	kingSq := p.Kings[p.Turn].Square
	opp := p.Turn.Other()
	isPawn := piece.Type == Pawn

	isPinned := false
	isEnPassantPinned := false
	pinDir := pinNone
	var pinningPiece *Piece

	if !isKing && alignedAny[piece.Square][kingSq] &&
		middleSquares[piece.Square][kingSq]&p.Occupancy == 0 {
		pinningPiece = p.sliderBehind(kingSq, piece.Square, opp)
		isPinned = pinningPiece != nil

		if isPinned {
			switch {
			case alignedDiagonally[piece.Square][kingSq]:
				pinDir = pinDiagonal
			case piece.Square.Rank() == kingSq.Rank():
				pinDir = pinHorizontal
			default:
				pinDir = pinVertical
			}
		}
	}

	// A pawn that looks free may still be pinned once the en-passant capture
	// lifts both pawns off the board at once.
	if !isPinned && isPawn && p.PossibleEnPassant != NoSquare &&
		pawnAttacks[piece.Color][piece.Square].IsSet(p.PossibleEnPassant) {
		capturedPawn := p.Board[enPassantPieceSquares[p.PossibleEnPassant]]
		capturedBB := SquareBB(capturedPawn.Square)

		p.Board[capturedPawn.Square] = nil
		p.Occupancy &^= capturedBB

		isEnPassantPinned = p.sliderBehind(kingSq, piece.Square, opp) != nil &&
			middleSquares[piece.Square][kingSq]&p.Occupancy == 0

		p.Board[capturedPawn.Square] = capturedPawn
		p.Occupancy |= capturedBB
	}

	if isPinned && p.IsInCheck() {
		return buf
	}

	// A pinned piece that can never move along its pin line has no moves.
	if isPinned && (piece.Type == Knight ||
		(pinDir == pinDiagonal && piece.Type == Rook) ||
		(pinDir == pinHorizontal && (piece.Type == Pawn || piece.Type == Bishop)) ||
		(pinDir == pinVertical && piece.Type == Bishop)) {
		return buf
	}

	var pseudo [32]Square
	pseudoLegal := p.pseudoLegalDestinations(piece, pseudo[:0])

	if !p.IsInCheck() && !isKing && !isPinned && (!isPawn || !isEnPassantPinned) {
		return append(buf, pseudoLegal...)
	}

	var checkerSq Square
	var checker *Piece
	if p.IsInCheck() {
		checkerSq = p.Checkers.LSB()
		checker = p.Board[checkerSq]
	}

	// Lift the king so x-ray attacks through it are seen.
	kingLifted := p.Occupancy &^ SquareBB(kingSq)

	for _, sq := range pseudoLegal {
		isEnPassantCapture := isPawn && sq == p.PossibleEnPassant

		if isEnPassantCapture && isEnPassantPinned {
			continue
		}

		if p.IsInCheck() && !isKing {
			capturedSquare := sq
			if isEnPassantCapture {
				capturedSquare = enPassantPieceSquares[p.PossibleEnPassant]
			}

			// Must capture the checker or block a checking slider.
			if capturedSquare != checkerSq &&
				(!checker.IsSlider() || !squareBetween[kingSq][sq][checkerSq]) {
				continue
			}
		}

		if !isKing {
			if !isPinned || onOneLine[kingSq][sq][pinningPiece.Square] {
				buf = append(buf, sq)
				if stopAfter1 {
					return buf
				}
			}
			continue
		}

		if p.AttackersTo(sq, opp, kingLifted) == 0 {
			buf = append(buf, sq)
			if stopAfter1 {
				return buf
			}
		}
	}

	return buf
}

// pseudoLegalDestinations appends the piece's pseudo-legal destinations.
func (p *Position) pseudoLegalDestinations(piece *Piece, buf []Square) []Square {
	own := p.Bitboards[piece.Color][AllPieces]

	switch {
	case piece.IsSlider():
		attacks := SliderAttacks(piece.Type, piece.Square, p.Occupancy) &^ own
		for !attacks.Empty() {
			buf = append(buf, attacks.PopLSB())
		}

	case piece.Type == Knight:
		attacks := knightAttacks[piece.Square] &^ own
		for !attacks.Empty() {
			buf = append(buf, attacks.PopLSB())
		}

	case piece.Type == King:
		attacks := kingAttacks[piece.Square] &^ own
		for !attacks.Empty() {
			buf = append(buf, attacks.PopLSB())
		}
		buf = p.castlingDestinations(piece, buf)

	default: // pawn
		dir := 8
		if piece.Color == Black {
			dir = -8
		}

		front := Square(int(piece.Square) + dir)
		if p.Board[front] == nil {
			buf = append(buf, front)

			if piece.Square.RelativeRank(piece.Color) == 1 {
				front2 := Square(int(front) + dir)
				if p.Board[front2] == nil {
					buf = append(buf, front2)
				}
			}
		}

		attacks := pawnAttacks[piece.Color][piece.Square]
		for !attacks.Empty() {
			sq := attacks.PopLSB()
			if sq == p.PossibleEnPassant ||
				(p.Board[sq] != nil && p.Board[sq].Color != piece.Color) {
				buf = append(buf, sq)
			}
		}
	}

	return buf
}

// castlingDestinations appends castle destinations when the right is still
// held, the king is not in check, the squares between king and rook are
// empty, and the rook's landing square is not attacked. Whether the king's
// own landing square is attacked is left to the legality filter.
func (p *Position) castlingDestinations(king *Piece, buf []Square) []Square {
	if p.IsInCheck() {
		return buf
	}

	if king.Color == White {
		if king.Square != E1 {
			return buf
		}
		if p.PossibleCastling&WhiteOO != 0 &&
			p.Occupancy&(SquareBB(F1)|SquareBB(G1)) == 0 &&
			!p.IsSquareAttacked(F1, Black) {
			buf = append(buf, G1)
		}
		if p.PossibleCastling&WhiteOOO != 0 &&
			p.Occupancy&(SquareBB(B1)|SquareBB(C1)|SquareBB(D1)) == 0 &&
			!p.IsSquareAttacked(D1, Black) {
			buf = append(buf, C1)
		}
		return buf
	}

	if king.Square != E8 {
		return buf
	}
	if p.PossibleCastling&BlackOO != 0 &&
		p.Occupancy&(SquareBB(F8)|SquareBB(G8)) == 0 &&
		!p.IsSquareAttacked(F8, White) {
		buf = append(buf, G8)
	}
	if p.PossibleCastling&BlackOOO != 0 &&
		p.Occupancy&(SquareBB(B8)|SquareBB(C8)|SquareBB(D8)) == 0 &&
		!p.IsSquareAttacked(D8, White) {
		buf = append(buf, C8)
	}
	return buf
}

// sliderBehind returns an opponent slider of the matching direction sitting
// on the ray that continues from sq1 past sq2, with nothing in front of it.
func (p *Position) sliderBehind(sq1, sq2 Square, c Color) *Piece {
	directionSlider := Rook
	if alignedDiagonally[sq1][sq2] {
		directionSlider = Bishop
	}

	for _, sq := range behindSquares[sq1][sq2] {
		piece := p.Board[sq]
		if piece == nil {
			continue
		}
		if piece.Color == c && (piece.Type == Queen || piece.Type == directionSlider) {
			return piece
		}
		break
	}

	return nil
}

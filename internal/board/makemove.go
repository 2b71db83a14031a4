package board

// PerformMove applies a move produced by the generator and returns the
// record needed to revert it. Moves are assumed well-formed; an illegal
// move is a programming error. Nothing here allocates.
func (p *Position) PerformMove(move Move) MoveInfo {
	from := move.From()
	to := move.To()
	piece := p.Board[from]
	pieceType := piece.Type
	pieceColor := piece.Color
	opp := p.Turn.Other()

	info := MoveInfo{
		Move:                   move,
		MovedPiece:             piece,
		PrevCheckers:           p.Checkers,
		PrevPositionKey:        p.PositionKey,
		PrevPawnKey:            p.PawnKey,
		PrevPossibleEnPassant:  p.PossibleEnPassant,
		PrevPossibleCastling:   p.PossibleCastling,
		PrevPliesFor50MoveRule: p.PliesFor50MoveRule,
	}

	isEnPassantCapture := pieceType == Pawn && to == p.PossibleEnPassant && p.PossibleEnPassant != NoSquare

	capturedSquare := to
	if isEnPassantCapture {
		capturedSquare = enPassantPieceSquares[to]
	}
	captured := p.Board[capturedSquare]
	if !isEnPassantCapture && captured != nil && captured.Color == pieceColor {
		panic("performMove: destination occupied by own piece")
	}
	info.CapturedPiece = captured

	// Unlink the captured piece first so the destination bit is free.
	if captured != nil {
		capturedBB := SquareBB(capturedSquare)
		oppPieces := &p.Pieces[opp]

		// Swap-remove: the list tail moves into the captured slot.
		p.PieceCounts[opp]--
		tail := oppPieces[p.PieceCounts[opp]]
		oppPieces[captured.Index] = tail
		tail.Index = captured.Index

		p.Material[opp] -= PieceWorth[captured.Type]
		p.PositionKey ^= pieceKeys[opp][captured.Type][capturedSquare]

		p.Board[capturedSquare] = nil
		p.Bitboards[opp][captured.Type] &^= capturedBB
		p.Bitboards[opp][AllPieces] &^= capturedBB
		p.Occupancy &^= capturedBB

		switch captured.Type {
		case Rook:
			switch to {
			case A1:
				p.PossibleCastling &^= WhiteOOO
			case H1:
				p.PossibleCastling &^= WhiteOO
			case A8:
				p.PossibleCastling &^= BlackOOO
			case H8:
				p.PossibleCastling &^= BlackOO
			}
		case Bishop:
			p.BishopsCount--
		case Pawn:
			p.PawnKey ^= pieceKeys[opp][Pawn][capturedSquare]
			p.PawnCount--
		}
	}

	// Move the piece.
	keyChange := pieceKeys[pieceColor][pieceType][from] ^ pieceKeys[pieceColor][pieceType][to]
	p.PositionKey ^= keyChange
	if pieceType == Pawn {
		p.PawnKey ^= keyChange
	}

	moveBB := SquareBB(from) | SquareBB(to)
	p.Board[from] = nil
	p.Board[to] = piece
	piece.Square = to
	p.Bitboards[pieceColor][pieceType] ^= moveBB
	p.Bitboards[pieceColor][AllPieces] ^= moveBB
	p.Occupancy ^= moveBB

	// Castling rights lost by moving the king or a corner rook.
	if pieceType == King {
		p.PossibleCastling &^= CastlingOf(pieceColor)
	} else if pieceType == Rook {
		switch from {
		case A1:
			p.PossibleCastling &^= WhiteOOO
		case H1:
			p.PossibleCastling &^= WhiteOO
		case A8:
			p.PossibleCastling &^= BlackOOO
		case H8:
			p.PossibleCastling &^= BlackOO
		}
	}

	// A king travelling two files is a castle; bring the rook along.
	if pieceType == King && abs(to.File()-from.File()) > 1 {
		var rookFrom, rookTo Square
		switch to {
		case C1:
			rookFrom, rookTo = A1, D1
		case G1:
			rookFrom, rookTo = H1, F1
		case C8:
			rookFrom, rookTo = A8, D8
		default: // G8
			rookFrom, rookTo = H8, F8
		}

		rook := p.Board[rookFrom]
		info.CastlingRook = rook

		p.PositionKey ^= pieceKeys[pieceColor][Rook][rookFrom] ^ pieceKeys[pieceColor][Rook][rookTo]

		rookBB := SquareBB(rookFrom) | SquareBB(rookTo)
		p.Board[rookFrom] = nil
		p.Board[rookTo] = rook
		rook.Square = rookTo
		p.Bitboards[pieceColor][Rook] ^= rookBB
		p.Bitboards[pieceColor][AllPieces] ^= rookBB
		p.Occupancy ^= rookBB
	}

	if captured != nil || pieceType == Pawn {
		p.PliesFor50MoveRule = 0
	} else {
		p.PliesFor50MoveRule++
	}

	if move.HasPromotion() {
		promotion := move.Promotion()
		piece.Type = promotion

		p.Material[pieceColor] += PieceWorth[promotion] - PieceWorth[Pawn]
		p.PositionKey ^= pieceKeys[pieceColor][Pawn][to] ^ pieceKeys[pieceColor][promotion][to]
		p.PawnKey ^= pieceKeys[pieceColor][Pawn][to]
		p.PawnCount--

		toBB := SquareBB(to)
		p.Bitboards[pieceColor][Pawn] &^= toBB
		p.Bitboards[pieceColor][promotion] |= toBB
	}

	// A double push only opens en passant when an enemy pawn can take it.
	if pieceType == Pawn && abs(to.Rank()-from.Rank()) > 1 {
		adjacent := kingRings[to][0] & RankMask[to.Rank()] & p.Bitboards[opp][Pawn]

		if adjacent != 0 {
			epSquare := Square((int(from) + int(to)) / 2)
			p.PossibleEnPassant = epSquare
			p.PositionKey ^= enPassantKeys[epSquare]
		} else {
			p.PossibleEnPassant = NoSquare
		}
	} else {
		p.PossibleEnPassant = NoSquare
	}

	p.PositionKey ^= turnKey ^ castlingKeys[info.PrevPossibleCastling] ^ castlingKeys[p.PossibleCastling]

	if info.PrevPossibleEnPassant != NoSquare {
		p.PositionKey ^= enPassantKeys[info.PrevPossibleEnPassant]
	}

	p.MoveCount++
	p.Turn = opp
	p.Checkers = p.AttackersTo(p.Kings[opp].Square, pieceColor, p.Occupancy)
	p.History = append(p.History, p.PositionKey)

	return info
}

// RevertMove undoes a move using its reversal record. Reverting a move that
// was never made is undefined.
func (p *Position) RevertMove(info *MoveInfo) {
	piece := info.MovedPiece
	captured := info.CapturedPiece
	rook := info.CastlingRook
	from := info.Move.From()
	to := piece.Square
	pieceColor := piece.Color

	p.Board[to] = nil
	p.Board[from] = piece
	piece.Square = from

	p.Bitboards[pieceColor][piece.Type] &^= SquareBB(to)
	if info.Move.HasPromotion() {
		p.Material[pieceColor] -= PieceWorth[info.Move.Promotion()] - PieceWorth[Pawn]
		piece.Type = Pawn
		p.PawnCount++
	}
	p.Bitboards[pieceColor][piece.Type] |= SquareBB(from)

	moveBB := SquareBB(from) | SquareBB(to)
	p.Bitboards[pieceColor][AllPieces] ^= moveBB
	p.Occupancy ^= moveBB

	if captured != nil {
		capturedColor := captured.Color
		ownerPieces := &p.Pieces[capturedColor]

		// Undo the swap-remove: the piece occupying the captured slot gets
		// appended back at the tail, whose slot still references it.
		ownerPieces[captured.Index].Index = p.PieceCounts[capturedColor]
		p.PieceCounts[capturedColor]++
		ownerPieces[captured.Index] = captured

		p.Material[capturedColor] += PieceWorth[captured.Type]
		p.Board[captured.Square] = captured

		capturedBB := SquareBB(captured.Square)
		p.Bitboards[capturedColor][captured.Type] |= capturedBB
		p.Bitboards[capturedColor][AllPieces] |= capturedBB
		p.Occupancy |= capturedBB

		switch captured.Type {
		case Bishop:
			p.BishopsCount++
		case Pawn:
			p.PawnCount++
		}
	}

	if rook != nil {
		rookTo := rook.Square
		rookFrom := NewSquare(0, rookTo.Rank())
		if rookTo.File() == 5 {
			rookFrom = NewSquare(7, rookTo.Rank())
		}

		rookBB := SquareBB(rookFrom) | SquareBB(rookTo)
		p.Board[rookTo] = nil
		p.Board[rookFrom] = rook
		rook.Square = rookFrom
		p.Bitboards[pieceColor][Rook] ^= rookBB
		p.Bitboards[pieceColor][AllPieces] ^= rookBB
		p.Occupancy ^= rookBB
	}

	p.Checkers = info.PrevCheckers
	p.PositionKey = info.PrevPositionKey
	p.PawnKey = info.PrevPawnKey
	p.PossibleEnPassant = info.PrevPossibleEnPassant
	p.PossibleCastling = info.PrevPossibleCastling
	p.PliesFor50MoveRule = info.PrevPliesFor50MoveRule
	p.Turn = p.Turn.Other()
	p.History = p.History[:len(p.History)-1]
	p.MoveCount--
}

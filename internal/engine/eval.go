package engine

import (
	"github.com/mvolkov/fianchetto/internal/board"
)

const noRank = -1

// fileInfo tracks the lowest and highest rank of one color's pawns on a
// file; both are noRank when the file has no pawn.
type fileInfo struct {
	min, max int
}

// positionInfo is the per-evaluation scratch state: pawn summaries per file
// and the pawn lists feeding the pawn evaluation.
type positionInfo struct {
	pawnFiles  [2][8]fileInfo
	pawns      [2][8]*board.Piece
	pawnCounts [2]int
}

// eval statically scores the position from the side to move's perspective.
// depth is the distance from the search root, used only for mate scores.
func (b *Bot) eval(depth int) Score {
	inCheck := b.IsInCheck()
	noMoves := b.IsNoMoves()

	if inCheck && noMoves {
		return mateScoreAt(depth)
	}

	if b.IsDraw() || noMoves {
		return ScoreEqual
	}

	pawnScore, foundPawnScore := b.evaluatedPawnPositions[b.Turn][b.PawnKey]

	var info positionInfo
	for c := board.White; c < board.NoColor; c++ {
		for f := 0; f < 8; f++ {
			info.pawnFiles[c][f] = fileInfo{min: noRank, max: noRank}
		}

		for i := 0; i < b.PieceCounts[c]; i++ {
			piece := b.Pieces[c][i]
			if piece.Type != board.Pawn {
				continue
			}

			rank := piece.Square.Rank()
			fi := &info.pawnFiles[c][piece.Square.File()]

			if fi.min == noRank {
				fi.min, fi.max = rank, rank
			} else {
				if rank < fi.min {
					fi.min = rank
				}
				if rank > fi.max {
					fi.max = rank
				}
			}

			if !foundPawnScore {
				info.pawns[c][info.pawnCounts[c]] = piece
				info.pawnCounts[c]++
			}
		}
	}

	if !foundPawnScore {
		pawnScore = b.evalPawns(b.Turn, &info) - b.evalPawns(b.Turn.Other(), &info)
		b.evaluatedPawnPositions[b.Turn][b.PawnKey] = pawnScore
	}

	return pawnScore + b.evalColor(b.Turn, &info) - b.evalColor(b.Turn.Other(), &info)
}

func (b *Bot) evalColor(c board.Color, info *positionInfo) Score {
	return b.evalKingSafety(c) + b.evalPieces(c, info)
}

// evalKingSafety penalises exposed kings by rank and file and rewards a
// pawn shelter. It is switched off entirely in the endgame.
func (b *Bot) evalKingSafety(c board.Color) Score {
	if b.IsEndgame() {
		return ScoreEqual
	}

	king := b.Kings[c]
	kingFile := king.Square.File()
	kingRank := king.Square.Rank()
	relRank := board.RelativeRank(c, kingRank)

	switch {
	case relRank > 3:
		return -3000
	case relRank == 3:
		return -2000
	case relRank == 2:
		return -1000
	}

	if relRank == 1 && kingFile >= 2 && kingFile <= 5 {
		if kingFile == 3 || kingFile == 4 {
			return -750
		}
		return -500
	}

	if kingFile == 3 || kingFile == 4 {
		return -250
	}
	if kingFile == 5 {
		return -100
	}

	upperRank := kingRank + 1
	if c == board.Black {
		upperRank = kingRank - 1
	}

	score := 100
	if relRank == 0 && kingFile == 2 {
		score = 0
	}

	shelter := [5][2]int{
		{kingFile - 1, kingRank},
		{kingFile + 1, kingRank},
		{kingFile - 1, upperRank},
		{kingFile, upperRank},
		{kingFile + 1, upperRank},
	}

	for _, fr := range shelter {
		if fr[0] < 0 || fr[0] > 7 {
			continue
		}

		piece := b.Board[board.NewSquare(fr[0], fr[1])]
		if piece == nil || piece.Color != c {
			continue
		}

		if fr[1] == upperRank {
			if piece.Type == board.Pawn {
				score += 100
			} else if piece.Type == board.Knight || piece.Type == board.Bishop {
				score += 50
			}
		} else {
			if piece.Type == board.Pawn {
				score += 50
			} else if piece.Type == board.Knight || piece.Type == board.Bishop {
				score += 25
			}
		}
	}

	return Score(score)
}

// evalPawns scores one color's pawn structure: doubled files, islands,
// passed pawns and the pawn piece-square table at double weight.
func (b *Bot) evalPawns(c board.Color, info *positionInfo) Score {
	isWhite := c == board.White
	pawnFiles := &info.pawnFiles[c]
	opponentPawnFiles := &info.pawnFiles[c.Other()]

	score := 0
	islandState := false
	islandsCount := 0

	for f := 0; f < 8; f++ {
		fi := &pawnFiles[f]
		if fi.min == noRank {
			islandState = false
			continue
		}

		if fi.max != fi.min {
			score -= 300
		}
		if !islandState {
			islandsCount++
		}
		islandState = true
	}

	noBlocker := func(f, rank int) bool {
		if f < 0 || f > 7 {
			return true
		}
		fi := &opponentPawnFiles[f]
		if fi.min == noRank {
			return true
		}
		if isWhite {
			return fi.max <= rank
		}
		return fi.min >= rank
	}

	for i := 0; i < info.pawnCounts[c]; i++ {
		pawn := info.pawns[c][i]
		file := pawn.Square.File()
		rank := pawn.Square.Rank()

		score += 2 * board.PieceSquare(c, board.Pawn, false, pawn.Square)

		if noBlocker(file-1, rank) && noBlocker(file, rank) && noBlocker(file+1, rank) {
			score += 500
			switch board.RelativeRank(c, rank) {
			case 6:
				score += 1000
			case 5:
				score += 500
			case 4:
				score += 200
			}
		}
	}

	if islandsCount > 1 {
		score -= (islandsCount - 1) * 200
	}

	return Score(score)
}

// evalPieces scores one color's pieces: piece-square tables, development,
// the bishop pair, rook files, board control and hanging pieces, plus the
// raw material at full weight.
func (b *Bot) evalPieces(c board.Color, info *positionInfo) Score {
	endgame := b.IsEndgame()
	opp := c.Other()

	// The side to move is assumed capable of exploiting whatever hangs, so
	// the hanging pieces of the side not to move weigh ten times more.
	hangingCoeff := 1000
	if b.Turn == c {
		hangingCoeff = 100
	}

	bishopsCount := 0
	score := 0

	for i := 0; i < b.PieceCounts[c]; i++ {
		piece := b.Pieces[c][i]
		file := piece.Square.File()
		rank := piece.Square.Rank()
		relRank := board.RelativeRank(c, rank)

		score += 10 * board.PieceSquare(c, piece.Type, endgame, piece.Square)

		// Development: undeveloped minors and untouched center pawns.
		if (piece.Type == board.Knight || piece.Type == board.Bishop) && relRank == 0 {
			score -= 300
		} else if piece.Type == board.Pawn && (file == 3 || file == 4) && relRank == 1 {
			front := int(piece.Square) + 8
			if c == board.Black {
				front = int(piece.Square) - 8
			}
			if b.Board[front] == nil {
				score -= 300
			} else {
				score -= 1000
			}
		}

		if piece.Type == board.Bishop {
			bishopsCount++
		}

		if piece.Type == board.Rook && info.pawnFiles[c][file].min == noRank {
			score += 100
			if info.pawnFiles[opp][file].min == noRank {
				score += 100
			}
		}

		// Control of the board and pressure near the enemy king.
		if piece.Type != board.King || endgame {
			attacks := b.AttacksOf(piece)
			oppKingSq := b.Kings[opp].Square

			if endgame {
				score += 10 * attacks.PopCount()
			} else {
				zone := board.ControlZoneFor(c)
				score += 50*(attacks&zone.Center).PopCount() +
					25*(attacks&zone.AroundCenter).PopCount() +
					20*(attacks&zone.Opponent).PopCount() +
					10*(attacks&zone.Unimportant).PopCount()
			}

			score += 150*(attacks&board.KingRing(oppKingSq, 0)).PopCount() +
				50*(attacks&board.KingRing(oppKingSq, 1)).PopCount()
		}

		// Hanging pieces: play out the capture sequence on this square.
		if piece.Type != board.King {
			attackers := b.AttackersTo(piece.Square, opp, b.Occupancy)
			if attackers != 0 {
				defenders := b.AttackersTo(piece.Square, c, b.Occupancy)
				if defenders != 0 {
					score += b.exchangeScore(piece, attackers, defenders) * hangingCoeff
				} else {
					score -= board.PieceWorth[piece.Type] * hangingCoeff
				}
			}
		}
	}

	score += b.Material[c] * 1000
	if bishopsCount >= 2 {
		score += 500
	}

	return Score(score)
}

// exchangeScore plays the capture sequence on a contested square, least
// worthy attacker first, alternating sides, and returns the minimax of the
// accumulated material swings.
func (b *Bot) exchangeScore(piece *board.Piece, attackers, defenders board.Bitboard) int {
	pieceToTake := piece.Type
	defendersTurn := false

	var lossStates [36]int
	n := 1 // lossStates[0] = 0

	for {
		set := &attackers
		side := piece.Color.Other()
		if defendersTurn {
			set = &defenders
			side = piece.Color
		}

		if set.Empty() {
			break
		}

		if defendersTurn {
			lossStates[n] = board.PieceWorth[pieceToTake]
		} else {
			lossStates[n] = -board.PieceWorth[pieceToTake]
		}
		n++

		pieceToTake = b.leastWorthAttacker(set, side)
		defendersTurn = !defendersTurn
	}

	lossStates[n] = lossStates[n-1]
	n++

	maxWin, maxWinIndex := -10000, 0
	minLoss, minLossIndex := 10000, 0
	loss := 0

	for i := 0; i < n; i++ {
		loss += lossStates[i]

		if i&1 == 1 {
			if maxWin < loss {
				maxWin = loss
				maxWinIndex = i
			}
		} else {
			if minLoss > loss {
				minLoss = loss
				minLossIndex = i
			}
		}
	}

	if minLossIndex < maxWinIndex {
		return minLoss
	}
	return maxWin
}

// leastWorthAttacker pops the least worthy attacker of the given color from
// the set and returns its piece type.
func (b *Bot) leastWorthAttacker(set *board.Bitboard, c board.Color) board.PieceType {
	for pt := board.Pawn; ; pt-- {
		ptAttackers := *set & b.Bitboards[c][pt]
		if ptAttackers != 0 {
			sq := ptAttackers.LSB()
			*set &^= board.SquareBB(sq)
			return b.Board[sq].Type
		}

		if pt == board.King {
			return board.AllPieces
		}
	}
}

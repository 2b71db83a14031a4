package engine

import (
	"sort"

	"github.com/mvolkov/fianchetto/internal/board"
)

// moveWithScore pairs a move with its ordering or search score.
type moveWithScore struct {
	move  board.Move
	score Score
}

// sortByScore orders moves best first.
func sortByScore(moves []moveWithScore) {
	sort.Slice(moves, func(i, j int) bool {
		return moves[j].score < moves[i].score
	})
}

// moveScore is the static ordering heuristic: promotions and captures
// weighted by worth, pawn-attack escapes and blunders, forks threatened
// from the destination, and the piece-square delta.
func (b *Bot) moveScore(m board.Move, endgame bool) Score {
	from := m.From()
	to := m.To()
	score := 0

	if m.HasPromotion() {
		score += 1000 * board.PieceWorth[m.Promotion()]
	}

	opp := b.Turn.Other()
	piece := b.Board[from]

	if toPiece := b.Board[to]; toPiece != nil {
		score += 1000 * board.PieceWorth[toPiece.Type]
	}

	if piece.Type != board.Pawn && piece.Type != board.King {
		if b.attackedByPawn(from, opp) {
			score += 1000
		}
		if b.attackedByPawn(to, opp) {
			score -= 2000
		}
	}

	switch piece.Type {
	case board.Pawn:
		targets := board.PawnAttacks(b.Turn, to)
		for !targets.Empty() {
			target := b.Board[targets.PopLSB()]
			if target == nil || target.Color != opp || target.Type >= board.Pawn {
				continue
			}
			if target.Type == board.King {
				score += 100
			} else {
				score += board.PieceWorth[target.Type] * 100
			}
		}

	case board.Knight:
		targets := board.KnightAttacks(to)
		for !targets.Empty() {
			target := b.Board[targets.PopLSB()]
			if target == nil || target.Color != opp || target.Type >= board.Bishop {
				continue
			}
			if target.Type == board.King {
				score += 100
			} else {
				score += board.PieceWorth[target.Type] * 50
			}
		}
	}

	score += 10 * (board.PieceSquare(piece.Color, piece.Type, endgame, to) -
		board.PieceSquare(piece.Color, piece.Type, endgame, from))

	return Score(score)
}

// attackedByPawn reports whether an opponent pawn attacks the square.
func (b *Bot) attackedByPawn(sq board.Square, opp board.Color) bool {
	return board.PawnAttacks(b.Turn, sq)&b.Bitboards[opp][board.Pawn] != 0
}

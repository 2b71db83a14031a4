package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/mvolkov/fianchetto/internal/board"
)

// optimalMoveThreshold is how far below the best move's score a candidate
// may fall and still be played.
const optimalMoveThreshold = 50

// MakeMove runs the search and returns the chosen move, or NoMove when the
// engine cannot act: wrong side to move, drawn position, or no legal moves.
func (b *Bot) MakeMove() board.Move {
	if b.color != b.Turn || b.IsDraw() || b.IsNoMoves() {
		return board.NoMove
	}

	b.nodes = 0
	b.cutNodes = 0
	b.firstCutNodes = 0

	clear(b.evaluatedPositions)
	clear(b.evaluatedPawnPositions[board.White])
	clear(b.evaluatedPawnPositions[board.Black])

	start := time.Now()
	move := b.getOptimalMove()
	took := time.Since(start)

	ms := took.Milliseconds()
	fmt.Fprintf(b.out, "move took %s ms\n", paint(fmt.Sprintf("%d", ms), ansiRed, ansiBold))
	fmt.Fprintf(b.out, "nodes: %s\n", paint(fmt.Sprintf("%d", b.nodes), ansiBlue, ansiBold))

	quality := "NaN"
	if b.cutNodes != 0 {
		quality = fmt.Sprintf("%d", int(float64(b.firstCutNodes)/float64(b.cutNodes)*100+0.5))
	}
	fmt.Fprintf(b.out, "move ordering quality: %s%%\n", paint(quality, ansiGreen, ansiBold))

	performance := "NaN"
	if ms != 0 {
		performance = fmt.Sprintf("%d", int64(b.nodes)/ms)
	}
	fmt.Fprintf(b.out, "performance: %s kn/s\n", paint(performance, ansiGreen, ansiBold))
	fmt.Fprintln(b.out, strings.Repeat("-", 80))

	return move
}

// getOptimalMove orders the root moves by a shallow evaluation, searches
// each with a window anchored just below the best score so far, then picks
// uniformly at random among the candidates within the threshold.
func (b *Bot) getOptimalMove() board.Move {
	var ml board.MoveList
	b.AllLegalMoves(&ml)

	if ml.Len() == 0 {
		return board.NoMove
	}

	if ml.Len() == 1 {
		only := ml.Get(0)
		fmt.Fprintf(b.out, "only move %s\n", paint(only.String(), ansiRed, ansiBold))
		return only
	}

	n := ml.Len()
	var scored [256]moveWithScore

	for i := 0; i < n; i++ {
		move := ml.Get(i)
		info := b.PerformMove(move)
		scored[i] = moveWithScore{move: move, score: -b.eval(1)}
		b.RevertMove(&info)
	}

	sortByScore(scored[:n])

	var candidates [256]moveWithScore

	for i := 0; i < n; i++ {
		maxScore := -InfiniteScore
		for j := 0; j < i; j++ {
			if candidates[j].score > maxScore {
				maxScore = candidates[j].score
			}
		}

		info := b.PerformMove(scored[i].move)
		score := -b.negamax(1, -InfiniteScore, -(maxScore - optimalMoveThreshold))
		b.RevertMove(&info)

		candidates[i] = moveWithScore{move: scored[i].move, score: score}
	}

	sortByScore(candidates[:n])

	// In mate scoring only exact ties remain playable.
	count := n
	for count > 1 {
		diff := candidates[0].score - candidates[count-1].score
		if IsMateScore(candidates[0].score) {
			if diff < 1 {
				break
			}
		} else if diff < optimalMoveThreshold {
			break
		}
		count--
	}

	selected := candidates[b.rng.Intn(count)]

	fmt.Fprint(b.out, "optimal moves: ")
	for i := 0; i < count; i++ {
		fmt.Fprintf(b.out, "%s (%s)",
			paint(candidates[i].move.String(), ansiRed, ansiBold),
			paint(FormatScore(candidates[i].score), ansiGreen, ansiBold))
		if i != count-1 {
			fmt.Fprint(b.out, ", ")
		}
	}
	fmt.Fprintln(b.out)

	fmt.Fprintf(b.out, "picked move %s (%s)\n",
		paint(selected.move.String(), ansiRed, ansiBold),
		paint(FormatScore(selected.score), ansiGreen, ansiBold))

	return selected.move
}

// negamax is a fail-hard alpha-beta search to the fixed horizon, where leaf
// evaluations are cached by position key.
func (b *Bot) negamax(depth int, alpha, beta Score) Score {
	if depth == b.searchDepth {
		score, found := b.evaluatedPositions[b.PositionKey]
		if !found {
			score = b.eval(depth)
			b.evaluatedPositions[b.PositionKey] = score
		}

		b.nodes++

		return score
	}

	if b.IsDraw() {
		return ScoreEqual
	}

	var ml board.MoveList
	b.AllLegalMoves(&ml)

	if ml.Len() == 0 {
		if b.IsInCheck() {
			return mateScoreAt(depth)
		}
		return ScoreEqual
	}

	endgame := b.IsEndgame()
	n := ml.Len()
	var scored [256]moveWithScore

	for i := 0; i < n; i++ {
		move := ml.Get(i)
		scored[i] = moveWithScore{move: move, score: b.moveScore(move, endgame)}
	}

	sortByScore(scored[:n])

	for i := 0; i < n; i++ {
		info := b.PerformMove(scored[i].move)
		score := -b.negamax(depth+1, -beta, -alpha)
		b.RevertMove(&info)

		if score >= beta {
			if i == 0 {
				b.firstCutNodes++
			}
			b.cutNodes++

			return beta
		}

		if score > alpha {
			alpha = score
		}
	}

	return alpha
}

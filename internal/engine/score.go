// Package engine implements the static evaluation, the alpha-beta search and
// the bot facade exposed to hosts.
package engine

import "fmt"

// Score is a position evaluation from the side to move's perspective,
// integer-scaled so that no coefficient ever needs floating arithmetic.
type Score int

// Special score values. A mate found at depth d from the root scores
// -(MateScore - d) for the side to move.
const (
	ScoreEqual    Score = 0
	MateScore     Score = 10_000_000
	InfiniteScore Score = 1_000_000_000
)

// mateScoreAt returns the score for being mated at the given search depth.
func mateScoreAt(depth int) Score {
	return -(MateScore - Score(depth))
}

// IsMateScore reports whether a score is within a ply of mate. The bound is
// deliberately below MateScore so depth-adjusted mates still count.
func IsMateScore(score Score) bool {
	if score < 0 {
		score = -score
	}
	return score > 1_000_000
}

// FormatScore renders a score for the console: "#N" for mate in N,
// otherwise pawns with two decimals.
func FormatScore(score Score) string {
	if IsMateScore(score) {
		plies := MateScore - score
		sign := ""
		if score < 0 {
			plies = MateScore + score
			sign = "-"
		}
		return fmt.Sprintf("#%s%d", sign, (plies+1)/2)
	}
	return fmt.Sprintf("%.2f", float64(score)/1000)
}

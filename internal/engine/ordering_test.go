package engine

import (
	"testing"

	"github.com/mvolkov/fianchetto/internal/board"
)

func parseMove(t *testing.T, s string) board.Move {
	t.Helper()
	m, err := board.ParseMove(s)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestMoveScorePrefersCaptures(t *testing.T) {
	bot := newTestBot(t, "4k3/4q3/8/8/4R3/8/8/4K3 w - - 0 1", board.White, 2)

	capture := bot.moveScore(parseMove(t, "e4e7"), false)
	quiet := bot.moveScore(parseMove(t, "e4a4"), false)

	if capture <= quiet {
		t.Errorf("capture scored %d, quiet %d; capture must order first", capture, quiet)
	}
}

func TestMoveScorePrefersBigPromotions(t *testing.T) {
	bot := newTestBot(t, "4k3/P7/8/8/8/8/8/4K3 w - - 0 1", board.White, 2)

	queen := bot.moveScore(parseMove(t, "a7a8q"), false)
	knight := bot.moveScore(parseMove(t, "a7a8n"), false)

	if queen <= knight {
		t.Errorf("queen promotion scored %d, knight %d", queen, knight)
	}
}

func TestMoveScorePenalisesWalkingIntoPawnAttack(t *testing.T) {
	// f5 is covered by the black pawn on e6; c4 is not.
	bot := newTestBot(t, "4k3/8/4p3/8/8/4N3/8/4K3 w - - 0 1", board.White, 2)

	attacked := bot.moveScore(parseMove(t, "e3f5"), false)
	safe := bot.moveScore(parseMove(t, "e3c4"), false)

	if attacked >= safe {
		t.Errorf("move into a pawn-covered square scored %d, safe move %d", attacked, safe)
	}
}

func TestSortByScoreIsDescending(t *testing.T) {
	moves := []moveWithScore{
		{move: 1, score: 10},
		{move: 2, score: 500},
		{move: 3, score: -40},
		{move: 4, score: 500},
	}

	sortByScore(moves)

	for i := 1; i < len(moves); i++ {
		if moves[i].score > moves[i-1].score {
			t.Fatalf("not descending at %d: %v", i, moves)
		}
	}
}

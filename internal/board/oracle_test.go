package board

import (
	"sort"
	"testing"

	"github.com/dylhunn/dragontoothmg"
)

// Cross-checks against dragontoothmg as an independent move generator.

func oraclePerft(b *dragontoothmg.Board, depth int) int64 {
	if depth == 0 {
		return 1
	}

	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return int64(len(moves))
	}

	var nodes int64
	for _, m := range moves {
		unapply := b.Apply(m)
		nodes += oraclePerft(b, depth-1)
		unapply()
	}
	return nodes
}

func sortedMoves(moves map[string]bool) []string {
	out := make([]string, 0, len(moves))
	for m := range moves {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

func TestMoveGenerationAgainstOracle(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"r2q1rk1/pP1p2pp/Q4n2/bbp1p3/Np6/1B3NBn/pPPP1PPP/R3K2R b KQ - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	}

	for _, fen := range fens {
		t.Run(fen, func(t *testing.T) {
			pos := mustPosition(t, fen)
			ours := legalMoveStrings(pos)

			oracle := dragontoothmg.ParseFen(fen)
			theirs := make(map[string]bool)
			for _, m := range oracle.GenerateLegalMoves() {
				theirs[m.String()] = true
			}

			if len(ours) != len(theirs) {
				t.Errorf("move count mismatch: ours %d, oracle %d\nours:   %v\noracle: %v",
					len(ours), len(theirs), sortedMoves(ours), sortedMoves(theirs))
			}

			for m := range ours {
				if !theirs[m] {
					t.Errorf("generated %s, oracle does not", m)
				}
			}
			for m := range theirs {
				if !ours[m] {
					t.Errorf("missing %s generated by oracle", m)
				}
			}
		})
	}
}

func TestPerftAgainstOracle(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	}

	for _, fen := range fens {
		t.Run(fen, func(t *testing.T) {
			pos := mustPosition(t, fen)
			oracle := dragontoothmg.ParseFen(fen)

			for depth := 1; depth <= 3; depth++ {
				ours := perft(pos, depth)
				theirs := oraclePerft(&oracle, depth)
				if ours != theirs {
					t.Errorf("perft(%d): ours %d, oracle %d", depth, ours, theirs)
				}
			}
		})
	}
}

// Package perft implements the recursive legal-move-count validator used as
// the correctness oracle for move generation and make/unmake.
package perft

import (
	"fmt"
	"io"
	"time"

	"github.com/mvolkov/fianchetto/internal/board"
)

// Fixture pairs a starting FEN with its known leaf counts at depths 1..N.
type Fixture struct {
	FEN        string
	NodeCounts []int64
}

// Fixtures is the reference suite.
var Fixtures = []Fixture{
	{
		FEN:        "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		NodeCounts: []int64{20, 400, 8902, 197281, 4865609},
	},
	{
		FEN:        "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		NodeCounts: []int64{48, 2039, 97862, 4085603},
	},
	{
		FEN:        "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		NodeCounts: []int64{14, 191, 2812, 43238, 674624, 11030083},
	},
	{
		FEN:        "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		NodeCounts: []int64{6, 264, 9467, 422333, 15833292},
	},
	{
		FEN:        "r2q1rk1/pP1p2pp/Q4n2/bbp1p3/Np6/1B3NBn/pPPP1PPP/R3K2R b KQ - 0 1",
		NodeCounts: []int64{6, 264, 9467, 422333, 15833292},
	},
	{
		FEN:        "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		NodeCounts: []int64{44, 1486, 62379, 2103487},
	},
}

// Count returns the number of leaf positions reachable in exactly depth
// legal moves.
func Count(p *board.Position, depth int) int64 {
	if depth == 0 {
		return 1
	}

	var ml board.MoveList
	p.AllLegalMoves(&ml)

	if depth == 1 {
		return int64(ml.Len())
	}

	var nodes int64
	for i := 0; i < ml.Len(); i++ {
		info := p.PerformMove(ml.Get(i))
		nodes += Count(p, depth-1)
		p.RevertMove(&info)
	}
	return nodes
}

// Run counts leaves for one position and prints the result line.
func Run(w io.Writer, fen string, depth int) (int64, error) {
	pos, err := board.NewPosition(fen)
	if err != nil {
		return 0, err
	}

	start := time.Now()
	nodes := Count(pos, depth)
	took := time.Since(start)

	ms := float64(took.Nanoseconds()) / 1e6
	knps := float64(nodes) / ms

	fmt.Fprintf(w, "fen: %s\n", fen)
	fmt.Fprintf(w, "depth: %d\n", depth)
	fmt.Fprintf(w, "nodes: %d\n", nodes)
	fmt.Fprintf(w, "time: %.3f ms\n", ms)
	fmt.Fprintf(w, "perft: %.0f kn/s\n", knps)

	return nodes, nil
}

// RunAll validates every fixture at every supplied depth. It returns an
// error describing the first mismatch.
func RunAll(w io.Writer) error {
	start := time.Now()
	var sumNodes int64

	for _, fixture := range Fixtures {
		for depth := 1; depth <= len(fixture.NodeCounts); depth++ {
			nodes, err := Run(w, fixture.FEN, depth)
			if err != nil {
				return err
			}

			sumNodes += nodes

			if expected := fixture.NodeCounts[depth-1]; nodes != expected {
				return fmt.Errorf("invalid node count. fen: %s, expected %d, got %d",
					fixture.FEN, expected, nodes)
			}
		}
	}

	took := time.Since(start)
	ms := float64(took.Nanoseconds()) / 1e6

	fmt.Fprintf(w, "test took %.3f ms\n", ms)
	fmt.Fprintf(w, "sum perft: %.0f kn/s\n", float64(sumNodes)/ms)

	return nil
}

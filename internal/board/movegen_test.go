package board

import "testing"

func legalMoveStrings(p *Position) map[string]bool {
	var ml MoveList
	p.AllLegalMoves(&ml)

	moves := make(map[string]bool, ml.Len())
	for i := 0; i < ml.Len(); i++ {
		moves[ml.Get(i).String()] = true
	}
	return moves
}

func TestStartingPositionMoveCount(t *testing.T) {
	pos := mustPosition(t, StartFEN)

	var ml MoveList
	pos.AllLegalMoves(&ml)

	if ml.Len() != 20 {
		t.Errorf("got %d legal moves, want 20", ml.Len())
	}
}

func TestEnPassantPin(t *testing.T) {
	// White pawn b5, black pawn c5, black rook h5, white king a5. Taking
	// en passant removes both pawns from the rank and exposes the king.
	pos := mustPosition(t, "8/8/8/KPp4r/8/8/8/4k3 w - c6 0 1")

	moves := legalMoveStrings(pos)
	if moves["b5c6"] {
		t.Error("b5c6 must be excluded by the en-passant pin test")
	}
	if !moves["b5b6"] {
		t.Error("b5b6 should be legal")
	}
}

func TestEnPassantCaptureAllowed(t *testing.T) {
	pos := mustPosition(t, "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1")

	moves := legalMoveStrings(pos)
	if !moves["e5d6"] {
		t.Error("e5d6 en passant should be legal")
	}
}

func TestPromotionGeneratesFourMoves(t *testing.T) {
	pos := mustPosition(t, "4k3/P7/8/8/8/8/8/4K3 w - - 0 1")

	moves := legalMoveStrings(pos)
	for _, want := range []string{"a7a8q", "a7a8n", "a7a8r", "a7a8b"} {
		if !moves[want] {
			t.Errorf("missing promotion %s", want)
		}
	}
	if moves["a7a8"] {
		t.Error("bare a7a8 must not be generated")
	}

	promotions := 0
	for m := range moves {
		if len(m) == 5 {
			promotions++
		}
	}
	if promotions != 4 {
		t.Errorf("got %d promotion moves, want 4", promotions)
	}
}

func TestCastlingBlockedByAttack(t *testing.T) {
	// Black rook f2 attacks f1, the square the king crosses.
	pos := mustPosition(t, "4k3/8/8/8/8/8/5r2/4K2R w K - 0 1")

	moves := legalMoveStrings(pos)
	if moves["e1g1"] {
		t.Error("e1g1 must be excluded: the crossed square f1 is attacked")
	}
}

func TestCastlingAllowed(t *testing.T) {
	pos := mustPosition(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")

	moves := legalMoveStrings(pos)
	if !moves["e1g1"] || !moves["e1c1"] {
		t.Errorf("both castles should be legal, got %v", moves)
	}
}

func TestCastlingBlockedByPiece(t *testing.T) {
	pos := mustPosition(t, "4k3/8/8/8/8/8/8/4KB1R w K - 0 1")

	moves := legalMoveStrings(pos)
	if moves["e1g1"] {
		t.Error("e1g1 must be excluded: f1 is occupied")
	}
}

func TestCastlingRequiresRight(t *testing.T) {
	pos := mustPosition(t, "4k3/8/8/8/8/8/8/4K2R w - - 0 1")

	moves := legalMoveStrings(pos)
	if moves["e1g1"] {
		t.Error("e1g1 must be excluded without the castling right")
	}
}

func TestDoubleCheckOnlyKingMoves(t *testing.T) {
	// Knight d4 and rook e8 both give check; only the king may move.
	pos := mustPosition(t, "4r1k1/8/8/8/3n4/8/3QK3/8 w - - 0 1")

	if !pos.InDoubleCheck() {
		t.Fatalf("expected double check, checkers = %d", pos.Checkers.PopCount())
	}

	var ml MoveList
	pos.AllLegalMoves(&ml)

	for i := 0; i < ml.Len(); i++ {
		if ml.Get(i).From() != pos.Kings[White].Square {
			t.Errorf("non-king move %v generated in double check", ml.Get(i))
		}
	}
}

func TestPinnedPieceMoves(t *testing.T) {
	// Bishop d2 is pinned diagonally by the bishop on a5 and may only
	// slide along the pin ray.
	pos := mustPosition(t, "4k3/8/8/b7/8/8/3B4/4K3 w - - 0 1")

	moves := legalMoveStrings(pos)
	for _, want := range []string{"d2c3", "d2b4", "d2a5"} {
		if !moves[want] {
			t.Errorf("pinned bishop should keep %s", want)
		}
	}
	if moves["d2e3"] || moves["d2c1"] {
		t.Error("pinned bishop must not leave the pin ray")
	}
}

func TestPinnedKnightHasNoMoves(t *testing.T) {
	pos := mustPosition(t, "4k3/8/8/8/8/4n3/8/4R1K1 b - - 0 1")

	moves := legalMoveStrings(pos)
	for m := range moves {
		if m[:2] == "e3" {
			t.Errorf("pinned knight move %s generated", m)
		}
	}
}

func TestCheckEvasionsOnly(t *testing.T) {
	// Rook e8 checks the king on e1: block, capture or step aside.
	pos := mustPosition(t, "4r1k1/8/8/8/8/8/3R4/4K3 w - - 0 1")

	if !pos.IsInCheck() {
		t.Fatal("expected check")
	}

	moves := legalMoveStrings(pos)
	if moves["d2d1"] {
		t.Error("d2d1 does not address the check")
	}
	if !moves["d2e2"] {
		t.Error("blocking move d2e2 missing")
	}
	if !moves["e1f2"] {
		t.Error("king escape e1f2 missing")
	}
	if moves["e1e2"] {
		t.Error("e1e2 stays on the checking ray")
	}
}

func TestIsNoMoves(t *testing.T) {
	tests := []struct {
		fen  string
		want bool
	}{
		{StartFEN, false},
		// Lone king stalemated by queen and king.
		{"7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", true},
		// Back-rank mate threatened but not given: black still has moves.
		{"6k1/5ppp/8/8/8/8/8/R5K1 b - - 0 1", false},
	}

	for _, tc := range tests {
		pos := mustPosition(t, tc.fen)
		if got := pos.IsNoMoves(); got != tc.want {
			t.Errorf("IsNoMoves(%q) = %v, want %v", tc.fen, got, tc.want)
		}
	}
}

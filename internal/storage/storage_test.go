package storage

import (
	"testing"
)

func openTestStorage(t *testing.T) *Storage {
	t.Helper()

	s, err := OpenAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenAt: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return s
}

func TestSaveAndLoadGame(t *testing.T) {
	s := openTestStorage(t)

	rec := &GameRecord{
		FEN:         "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		Moves:       "e2e4 e7e5",
		EngineColor: "Black",
		SearchDepth: 6,
		Nodes:       12345,
		Result:      "draw",
	}

	if err := s.SaveGame(rec); err != nil {
		t.Fatalf("SaveGame: %v", err)
	}
	if rec.ID == "" {
		t.Fatal("SaveGame should assign an ID")
	}

	loaded, err := s.LoadGame(rec.ID)
	if err != nil {
		t.Fatalf("LoadGame: %v", err)
	}

	if loaded.Moves != rec.Moves || loaded.EngineColor != rec.EngineColor || loaded.Nodes != rec.Nodes {
		t.Errorf("loaded %+v, want %+v", loaded, rec)
	}
	if loaded.PlayedAt.IsZero() {
		t.Error("PlayedAt should be set on save")
	}
}

func TestLoadMissingGame(t *testing.T) {
	s := openTestStorage(t)

	if _, err := s.LoadGame("no-such-id"); err == nil {
		t.Error("want error for a missing game")
	}
}

func TestListGames(t *testing.T) {
	s := openTestStorage(t)

	for i := 0; i < 3; i++ {
		if err := s.SaveGame(&GameRecord{Result: "win"}); err != nil {
			t.Fatal(err)
		}
	}

	games, err := s.ListGames()
	if err != nil {
		t.Fatalf("ListGames: %v", err)
	}
	if len(games) != 3 {
		t.Errorf("got %d games, want 3", len(games))
	}
}

func TestStatsAccumulate(t *testing.T) {
	s := openTestStorage(t)

	records := []GameRecord{
		{Result: "win", Nodes: 100},
		{Result: "win", Nodes: 200},
		{Result: "loss", Nodes: 300},
		{Result: "draw", Nodes: 400},
	}
	for i := range records {
		if err := s.SaveGame(&records[i]); err != nil {
			t.Fatal(err)
		}
	}

	stats, err := s.LoadStats()
	if err != nil {
		t.Fatalf("LoadStats: %v", err)
	}

	if stats.GamesPlayed != 4 || stats.Wins != 2 || stats.Losses != 1 || stats.Draws != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.TotalNodes != 1000 {
		t.Errorf("total nodes = %d, want 1000", stats.TotalNodes)
	}
	if got := stats.WinRate(); got != 50 {
		t.Errorf("win rate = %v, want 50", got)
	}
}

package storage

import (
	"encoding/json"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

const (
	keyStats   = "stats"
	gamePrefix = "game:"
)

// GameRecord is one finished engine session.
type GameRecord struct {
	ID          string    `json:"id"`
	FEN         string    `json:"fen"`
	Moves       string    `json:"moves"`
	EngineColor string    `json:"engine_color"`
	SearchDepth int       `json:"search_depth"`
	Nodes       int       `json:"nodes"`
	Result      string    `json:"result"`
	PlayedAt    time.Time `json:"played_at"`
}

// EngineStats aggregates over all recorded games.
type EngineStats struct {
	GamesPlayed int   `json:"games_played"`
	Wins        int   `json:"wins"`
	Losses      int   `json:"losses"`
	Draws       int   `json:"draws"`
	TotalNodes  int64 `json:"total_nodes"`
}

// Storage wraps BadgerDB for persistent game records.
type Storage struct {
	db *badger.DB
}

// Open opens the database in the platform data directory.
func Open() (*Storage, error) {
	dbDir, err := DatabaseDir()
	if err != nil {
		return nil, err
	}
	return OpenAt(dbDir)
}

// OpenAt opens the database in a specific directory.
func OpenAt(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Storage{db: db}, nil
}

// Close closes the database.
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveGame stores a game record, assigning it an ID when absent, and folds
// it into the aggregate stats.
func (s *Storage) SaveGame(rec *GameRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.PlayedAt.IsZero() {
		rec.PlayedAt = time.Now()
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	stats.GamesPlayed++
	stats.TotalNodes += int64(rec.Nodes)
	switch rec.Result {
	case "win":
		stats.Wins++
	case "loss":
		stats.Losses++
	case "draw":
		stats.Draws++
	}

	statsData, err := json.Marshal(stats)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(gamePrefix+rec.ID), data); err != nil {
			return err
		}
		return txn.Set([]byte(keyStats), statsData)
	})
}

// LoadGame retrieves a game record by ID.
func (s *Storage) LoadGame(id string) (*GameRecord, error) {
	rec := &GameRecord{}

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(gamePrefix + id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, rec)
		})
	})
	if err != nil {
		return nil, err
	}

	return rec, nil
}

// ListGames returns every stored game record.
func (s *Storage) ListGames() ([]GameRecord, error) {
	var records []GameRecord

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(gamePrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var rec GameRecord
				if err := json.Unmarshal(val, &rec); err != nil {
					return err
				}
				records = append(records, rec)
				return nil
			})
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

// LoadStats returns the aggregate stats, empty when none were recorded yet.
func (s *Storage) LoadStats() (*EngineStats, error) {
	stats := &EngineStats{}

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyStats))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, stats)
		})
	})

	return stats, err
}

// WinRate returns the engine's win rate as a percentage.
func (s *EngineStats) WinRate() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.GamesPlayed) * 100
}

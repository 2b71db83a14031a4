package engine

import (
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/mvolkov/fianchetto/internal/board"
)

// DefaultSearchDepth is the fixed search horizon in half-moves.
const DefaultSearchDepth = 6

// Bot is a single engine instance: a position plus the search state bound to
// one color. It is not safe to share between goroutines; separate instances
// are independent.
type Bot struct {
	*board.Position

	color       board.Color
	searchDepth int

	// Transposition caches, cleared at the start of every MakeMove.
	evaluatedPositions     map[uint64]Score
	evaluatedPawnPositions [2]map[uint64]Score

	nodes         int
	cutNodes      int
	firstCutNodes int

	rng *rand.Rand
	out io.Writer
}

// NewBot constructs an engine for the given FEN, playing the given color.
// A non-positive searchDepth selects the default.
func NewBot(fen string, color board.Color, searchDepth int) (*Bot, error) {
	pos, err := board.NewPosition(fen)
	if err != nil {
		return nil, err
	}

	if searchDepth <= 0 {
		searchDepth = DefaultSearchDepth
	}

	b := &Bot{
		Position:           pos,
		color:              color,
		searchDepth:        searchDepth,
		evaluatedPositions: make(map[uint64]Score),
		rng:                rand.New(rand.NewSource(time.Now().UnixNano())),
		out:                os.Stdout,
	}
	b.evaluatedPawnPositions[board.White] = make(map[uint64]Score)
	b.evaluatedPawnPositions[board.Black] = make(map[uint64]Score)

	return b, nil
}

// Color returns the color the engine plays.
func (b *Bot) Color() board.Color {
	return b.color
}

// SetOutput redirects the engine's console output.
func (b *Bot) SetOutput(w io.Writer) {
	b.out = w
}

// Close releases the engine's caches. The bot must not be used afterwards.
func (b *Bot) Close() {
	b.evaluatedPositions = nil
	b.evaluatedPawnPositions[board.White] = nil
	b.evaluatedPawnPositions[board.Black] = nil
}

// Nodes returns the leaf count of the last search.
func (b *Bot) Nodes() int {
	return b.nodes
}

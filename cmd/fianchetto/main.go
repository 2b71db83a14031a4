// Command fianchetto either validates move generation against the perft
// fixtures or launches an interactive engine session on stdin.
//
// Session protocol: each "moves <uci>..." line replays the game from its
// start (already-applied moves are skipped) and answers with the engine's
// reply; "board" prints the position; "quit" ends the session.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/mvolkov/fianchetto/internal/board"
	"github.com/mvolkov/fianchetto/internal/engine"
	"github.com/mvolkov/fianchetto/internal/perft"
	"github.com/mvolkov/fianchetto/internal/storage"
)

func main() {
	runPerft := flag.Bool("runPerft", false, "validate move generation against the perft fixtures and exit")
	fen := flag.String("fen", board.StartFEN, "starting position")
	colorFlag := flag.String("color", "black", "color the engine plays (white|black)")
	depth := flag.Int("depth", engine.DefaultSearchDepth, "search depth in half-moves")
	save := flag.Bool("save", false, "record the finished session in the game database")
	flag.Parse()

	if *runPerft {
		if err := perft.RunAll(os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	var engineColor board.Color
	switch strings.ToLower(*colorFlag) {
	case "white", "w":
		engineColor = board.White
	case "black", "b":
		engineColor = board.Black
	default:
		log.Fatalf("unknown color %q", *colorFlag)
	}

	bot, err := engine.NewBot(*fen, engineColor, *depth)
	if err != nil {
		log.Fatal(err)
	}
	defer bot.Close()

	moves := ""
	scanner := bufio.NewScanner(os.Stdin)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "moves":
			moves = strings.Join(fields[1:], " ")
			if err := bot.ApplyMoves(moves); err != nil {
				fmt.Printf("error: %v\n", err)
				continue
			}
			answer(bot, &moves)

		case "go":
			answer(bot, &moves)

		case "board":
			fmt.Print(bot.Position)

		case "quit":
			finish(bot, moves, *fen, *depth, *save)
			return

		default:
			fmt.Printf("unknown command %q\n", fields[0])
		}
	}

	finish(bot, moves, *fen, *depth, *save)
}

func answer(bot *engine.Bot, moves *string) {
	move := bot.MakeMove()
	if move == board.NoMove {
		fmt.Println("move (none)")
		return
	}

	withReply := appendMove(*moves, move)
	if err := bot.ApplyMoves(withReply); err != nil {
		log.Fatal(err)
	}
	*moves = withReply

	fmt.Printf("move %v\n", move)
}

func appendMove(moves string, move board.Move) string {
	if moves == "" {
		return move.String()
	}
	return moves + " " + move.String()
}

func finish(bot *engine.Bot, moves, fen string, depth int, save bool) {
	if !save {
		return
	}

	store, err := storage.Open()
	if err != nil {
		log.Printf("storage: %v", err)
		return
	}
	defer store.Close()

	result := "unfinished"
	switch {
	case bot.IsNoMoves() && bot.IsInCheck():
		if bot.Turn == bot.Color() {
			result = "loss"
		} else {
			result = "win"
		}
	case bot.IsDraw() || bot.IsNoMoves():
		result = "draw"
	}

	rec := &storage.GameRecord{
		FEN:         fen,
		Moves:       moves,
		EngineColor: bot.Color().String(),
		SearchDepth: depth,
		Nodes:       bot.Nodes(),
		Result:      result,
	}

	if err := store.SaveGame(rec); err != nil {
		log.Printf("storage: %v", err)
		return
	}

	log.Printf("saved game %s", rec.ID)
}

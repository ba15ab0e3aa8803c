// Command replay loads a persisted match's round history from the match
// repository and prints it for inspection: selfplay already persists its
// own matches directly through MatchService, so replay just reads that
// storage back out.
//
// Usage:
//
//	go run ./cmd/replay/ --match <id> --db postgres://...
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"

	"github.com/saudibaloot/engine/internal/model"
	"github.com/saudibaloot/engine/internal/repository/postgres"
)

func main() {
	matchID := flag.String("match", "", "Match ID to replay")
	dbURL := flag.String("db", os.Getenv("DATABASE_URL"), "Postgres connection URL")
	jsonOut := flag.Bool("json", false, "Output as JSON instead of a human-readable summary")
	flag.Parse()

	if *matchID == "" {
		log.Fatal("--match is required")
	}
	if *dbURL == "" {
		log.Fatal("--db or DATABASE_URL is required")
	}

	db, err := postgres.Connect(*dbURL)
	if err != nil {
		log.Fatalf("connect to postgres: %v", err)
	}
	defer db.Close()

	repo := postgres.NewMatchRepo(db)
	ctx := context.Background()

	match, err := repo.FindByID(ctx, *matchID)
	if err != nil {
		log.Fatalf("find match %s: %v", *matchID, err)
	}
	if match == nil {
		log.Fatalf("no match found with id %s", *matchID)
	}

	rounds, err := repo.ListRounds(ctx, *matchID)
	if err != nil {
		log.Fatalf("list rounds for match %s: %v", *matchID, err)
	}

	if *jsonOut {
		printJSON(match, rounds)
		return
	}
	printSummary(match, rounds)
}

func printSummary(match *model.Match, rounds []model.Round) {
	fmt.Printf("Match %s (%s)\n", match.ID, match.Status)
	fmt.Printf("  final score: us %d - them %d", match.ScoreUs, match.ScoreThem)
	if match.Winner != "" {
		fmt.Printf(" (winner: %s)", match.Winner)
	}
	fmt.Println()
	for _, seat := range match.Seats {
		kind := "player " + seat.PlayerID
		if seat.IsBot {
			kind = "bot(" + seat.BotDifficulty + ")"
		}
		fmt.Printf("  seat %d: %s\n", seat.Seat, kind)
	}

	fmt.Printf("\n%d rounds:\n", len(rounds))
	for i, r := range rounds {
		mode := r.Mode
		if mode == "" {
			mode = "(redealt)"
		}
		reason := r.Reason
		if reason == "" {
			reason = "in progress"
		}
		fmt.Printf("  round %d: dealer=%d mode=%-6s us=%-3d them=%-3d (%s)\n",
			i+1, r.DealerSeat, mode, r.ResultUsGP, r.ResultThemGP, reason)
	}
}

func printJSON(match *model.Match, rounds []model.Round) {
	out := struct {
		Match  *model.Match  `json:"match"`
		Rounds []model.Round `json:"rounds"`
	}{Match: match, Rounds: rounds}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(out)
}

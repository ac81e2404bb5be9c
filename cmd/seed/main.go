// Command seed fills a running server with a round of sample guesses.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync/atomic"

	"draft-order/internal/api"
	"draft-order/internal/constants"
	"draft-order/internal/logger"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

var sampleGuesses = []struct {
	name  string
	guess int
}{
	{"Mike Chen", 67},
	{"Sarah Johnson", 45},
	{"Alex Rodriguez", 23},
	{"Emily Davis", 89},
	{"Ryan Murphy", 34},
	{"Jessica Kim", 56},
	{"David Thompson", 12},
	{"Amanda Wilson", 78},
	{"Chris Martinez", 41},
	{"Lauren Brown", 63},
	{"Jordan Taylor", 29},
	{"Megan Clark", 85},
	{"Tyler Anderson", 17},
	{"Nicole Garcia", 92},
	{"Brandon White", 38},
	{"Stephanie Lee", 74},
	{"Kevin Jones", 51},
	{"Rachel Miller", 26},
	{"Daniel Scott", 69},
	{"Olivia Moore", 83},
}

func main() {
	log := logger.New()
	loadEnv(log)

	baseURL := flag.String("url", envOr("SEED_BASE_URL", "http://localhost:5001"), "server base URL")
	password := flag.String("password", os.Getenv("ADMIN_PASSWORD"), "admin password")
	reset := flag.Bool("reset", true, "reset to setup and initialize a fresh game first")
	teams := flag.Int("teams", len(sampleGuesses), "number of teams when initializing")
	flag.Parse()

	if *password == "" {
		log.Fatal().Msg("admin password required (ADMIN_PASSWORD or -password)")
	}

	ctx := context.Background()
	client := api.NewClient(*baseURL)

	if _, err := client.Login(ctx, *password); err != nil {
		log.Fatal().Err(err).Msg("admin login failed")
	}

	if *reset {
		if _, err := client.ResetToSetup(ctx); err != nil {
			log.Fatal().Err(err).Msg("reset failed")
		}
		state, err := client.InitializeGame(ctx, api.InitializeGameRequest{
			LeagueName: "Seed League",
			NumTeams:   *teams,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("initialize failed")
		}
		log.Info().Str("phase", state.Phase).Int("num_teams", state.NumTeams).Msg("game initialized")
	}

	var submitted atomic.Int32
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(constants.SeedConcurrency)

	for i, s := range sampleGuesses {
		ip := fmt.Sprintf("192.168.1.%d", 101+i)
		g.Go(func() error {
			resp, err := client.SubmitGuess(gctx, api.SubmitGuessRequest{Name: s.name, Guess: s.guess}, ip)
			if err != nil {
				log.Warn().Err(err).Str("name", s.name).Msg("submission rejected")
				return nil
			}
			submitted.Add(1)
			log.Debug().Str("name", resp.Player.Name).Str("ip", ip).Msg("submitted")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}

	if _, err := client.CreateBackup(ctx, "seed"); err != nil {
		log.Warn().Err(err).Msg("backup after seeding failed")
	}

	log.Info().
		Int32("submitted", submitted.Load()).
		Int("total", len(sampleGuesses)).
		Msg("seeding complete")
}

func loadEnv(log zerolog.Logger) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg(".env file not found, using environment variables or defaults")
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

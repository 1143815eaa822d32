// Package main is the entry point for PartyBox.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/samdwyer/partybox/internal/city"
	"github.com/samdwyer/partybox/internal/config"
	"github.com/samdwyer/partybox/internal/game"
	"github.com/samdwyer/partybox/internal/gamedata"
	"github.com/samdwyer/partybox/internal/imposter"
	"github.com/samdwyer/partybox/internal/liar"
	"github.com/samdwyer/partybox/internal/logger"
	"github.com/samdwyer/partybox/internal/telemetry"
	"github.com/samdwyer/partybox/internal/ui"
	"github.com/samdwyer/partybox/internal/words"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "partybox: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	logFile, err := logger.Setup(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	defer logFile.Close()

	// Set up OTEL environment variables from our .env variables
	setupOTelEnv(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.Setup(ctx, cfg.TelemetryEnabled())
	if err != nil {
		// Not fatal: the games work without observability.
		log.Warn().Err(err).Msg("telemetry setup failed")
	} else {
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Error().Err(err).Msg("telemetry shutdown")
			}
		}()
	}

	gameCfg, err := buildConfig(cfg)
	if err != nil {
		return err
	}

	g, err := game.New(gameCfg)
	if err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	return g.Run(ctx)
}

// buildConfig loads the embedded content and wires one controller per game.
// Each controller draws from its own generator so they never share one lock.
func buildConfig(cfg config.Config) (game.Config, error) {
	categories, err := gamedata.LoadCategoryRegistry()
	if err != nil {
		return game.Config{}, fmt.Errorf("loading categories: %w", err)
	}
	questions, err := gamedata.LoadQuestionRegistry()
	if err != nil {
		return game.Config{}, fmt.Errorf("loading questions: %w", err)
	}
	cityData, err := gamedata.LoadCity()
	if err != nil {
		return game.Config{}, fmt.Errorf("loading city data: %w", err)
	}
	strs, err := gamedata.LoadStrings()
	if err != nil {
		return game.Config{}, fmt.Errorf("loading strings: %w", err)
	}
	themes, err := gamedata.LoadThemes()
	if err != nil {
		return game.Config{}, fmt.Errorf("loading themes: %w", err)
	}

	seed := cfg.SeedOrNow()
	log.Info().Int64("seed", seed).Msg("content loaded")

	defaultCategory := ""
	if first := categories.First(); first != nil {
		defaultCategory = first.ID
	}
	playerName := strs.Get("common.player")

	catalog := words.NewCatalog(categories, words.NewGemini(cfg.GeminiAPIKey, cfg.GeminiModel), rand.New(rand.NewSource(seed)))

	return game.Config{
		Imposter: imposter.New(imposter.Config{
			Words:           catalog,
			Rand:            rand.New(rand.NewSource(seed + 1)),
			Tick:            cfg.Tick,
			DefaultName:     playerName,
			DefaultCategory: defaultCategory,
		}),
		Liar: liar.New(liar.Config{
			Questions:   questions,
			Rand:        rand.New(rand.NewSource(seed + 2)),
			DefaultName: playerName,
		}),
		City: city.New(city.Config{
			Alphabet:   cityData.Alphabet,
			Categories: cityData.Categories,
			Rand:       rand.New(rand.NewSource(seed + 3)),
		}),
		Strings:            strs,
		Palettes:           ui.NewPalettes(themes),
		Categories:         categories.All(),
		QuestionCategories: questions.Categories(),
	}, nil
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv(cfg config.Config) {
	if !cfg.TelemetryEnabled() {
		return
	}
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	// The .env file may hold an unexpanded variable reference, so the
	// header is built here.
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", cfg.HoneycombAPIKey, cfg.HoneycombDataset))
}

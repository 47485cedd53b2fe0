package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/magefree/mage-reach/internal/catalog"
	"github.com/magefree/mage-reach/internal/config"
	"github.com/magefree/mage-reach/internal/game"
	"github.com/magefree/mage-reach/internal/results"
	"github.com/magefree/mage-reach/internal/search"
)

var (
	configPath = flag.String("config", "", "path to configuration file")
	goalFlag   = flag.String("goal", "", "goal to search for, overrides search.goal")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *goalFlag != "" {
		cfg.Search.Goal = *goalFlag
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting reach search",
		zap.String("version", version),
		zap.String("config", *configPath),
		zap.String("goal", cfg.Search.Goal),
	)

	if err := run(cfg, logger, os.Stdout); err != nil {
		logger.Error("search failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger, out io.Writer) error {
	goal, err := catalog.ParseGoal(cfg.Search.Goal)
	if err != nil {
		return err
	}
	initial, err := startingState(cfg.Deck)
	if err != nil {
		return err
	}

	engine := search.New(
		search.WithIterationLimit(cfg.Search.IterationLimit),
		search.WithProgressEvery(cfg.Search.ProgressEvery),
		search.WithLogger(logger),
	)
	outcome, err := engine.Run(initial, goal)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}
	report(out, outcome)

	if outcome.Succeeded() && cfg.Search.ReplayDir != "" {
		if _, err := search.SaveReplay(logger, cfg.Search.ReplayDir, outcome); err != nil {
			return err
		}
	}
	if cfg.Database.Enabled {
		if err := store(cfg, logger, outcome); err != nil {
			return err
		}
	}
	return nil
}

// startingState builds the library and opening hand described by the deck
// configuration.
func startingState(deck config.DeckConfig) (*game.State, error) {
	registry := catalog.Default()
	library, err := registry.Resolve(deck.Library)
	if err != nil {
		return nil, fmt.Errorf("deck.library: %w", err)
	}
	hand, err := registry.Resolve(deck.Hand)
	if err != nil {
		return nil, fmt.Errorf("deck.hand: %w", err)
	}

	s := game.NewState(deck.Player)
	var rng *rand.Rand
	if deck.Shuffle {
		rng = catalog.NewRand(deck.Seed)
	}
	catalog.BuildLibrary(s, library, deck.Player, rng)
	catalog.PutInHand(s, hand, deck.Player)
	return s, nil
}

func report(out io.Writer, o *search.Outcome) {
	if !o.Succeeded() {
		reason := "iteration budget used up"
		if o.Exhausted {
			reason = "no states left to explore"
		}
		fmt.Fprintf(out, "could not reach the goal after %d iterations (%s, %d states explored, %d in frontier)\n",
			o.Iterations, reason, o.Explored, len(o.Frontier))
		return
	}
	final := o.Final()
	fmt.Fprintf(out, "found the goal on turn %d after %d actions (%d iterations, %d states explored)\n",
		final.Turn().Number, o.Found.Depth(), o.Iterations, o.Explored)
	for i, step := range o.Steps() {
		fmt.Fprintf(out, "%3d. %s\n", i+1, step)
	}
	fmt.Fprintf(out, "final pool %s, checksum %s\n", final.Pool(), final.Checksum())
}

func store(cfg *config.Config, logger *zap.Logger, o *search.Outcome) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := results.Open(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	rec, err := results.FromOutcome(cfg.Search.Goal, o)
	if err != nil {
		return err
	}
	return db.Save(ctx, rec)
}

func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}

package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/magefree/mage-reach/internal/catalog"
	"github.com/magefree/mage-reach/internal/config"
	"github.com/magefree/mage-reach/internal/game"
	"github.com/magefree/mage-reach/internal/game/zone"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Search.IterationLimit = 200
	cfg.Search.Goal = "mana:{G}"
	cfg.Deck.Hand = []catalog.DeckEntry{{Name: "Forest", Count: 1}}
	return cfg
}

func TestRunReportsPath(t *testing.T) {
	cfg := testConfig(t)
	cfg.Search.ReplayDir = t.TempDir()

	var out bytes.Buffer
	require.NoError(t, run(cfg, zaptest.NewLogger(t), &out))

	assert.Contains(t, out.String(), "found the goal on turn 1 after 2 actions")
	assert.Contains(t, out.String(), "PlayLand")
	matches, err := filepath.Glob(filepath.Join(cfg.Search.ReplayDir, "*.replay"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestRunReportsFailure(t *testing.T) {
	cfg := testConfig(t)
	cfg.Deck.Hand = nil

	var out bytes.Buffer
	require.NoError(t, run(cfg, zaptest.NewLogger(t), &out))
	assert.Contains(t, out.String(), "no states left to explore")
}

func TestRunRejectsUnknownCard(t *testing.T) {
	cfg := testConfig(t)
	cfg.Deck.Library = []catalog.DeckEntry{{Name: "Mox Diamond", Count: 1}}

	err := run(cfg, zaptest.NewLogger(t), &bytes.Buffer{})
	assert.ErrorIs(t, err, catalog.ErrUnknownCard)
}

func TestStartingStateShuffles(t *testing.T) {
	deck := config.DeckConfig{
		Seed:    3,
		Shuffle: true,
		Library: []catalog.DeckEntry{{Name: "Forest", Count: 4}, {Name: "Island", Count: 4}},
		Hand:    []catalog.DeckEntry{{Name: "Plains", Count: 2}},
	}
	a, err := startingState(deck)
	require.NoError(t, err)
	b, err := startingState(deck)
	require.NoError(t, err)
	assert.Equal(t, 10, a.Len())
	assert.Equal(t, libraryNames(a), libraryNames(b))
}

func libraryNames(s *game.State) []string {
	var names []string
	for _, c := range s.Cards(zone.Library(0)) {
		names = append(names, c.Name())
	}
	return names
}

func TestInitLogger(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		logger, err := initLogger(config.LoggingConfig{Level: "debug", Format: format})
		require.NoError(t, err)
		assert.NotNil(t, logger)
	}
}

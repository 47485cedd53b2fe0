// Package results records search runs in PostgreSQL.
package results

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/magefree/mage-reach/internal/config"
	"github.com/magefree/mage-reach/internal/search"
)

// ErrNotFound is returned when no run has the requested ID.
var ErrNotFound = errors.New("run not found")

// Run is one stored search run.
type Run struct {
	ID         uuid.UUID
	Goal       string
	Succeeded  bool
	Exhausted  bool
	Iterations int
	Explored   int
	Depth      int
	Checksum   string
	Steps      []string
	Elapsed    time.Duration
	CreatedAt  time.Time
}

// FromOutcome converts a finished run.
func FromOutcome(goal string, o *search.Outcome) (Run, error) {
	id, err := uuid.Parse(o.RunID)
	if err != nil {
		return Run{}, fmt.Errorf("invalid run id %q: %w", o.RunID, err)
	}
	run := Run{
		ID:         id,
		Goal:       goal,
		Succeeded:  o.Succeeded(),
		Exhausted:  o.Exhausted,
		Iterations: o.Iterations,
		Explored:   o.Explored,
		Elapsed:    o.Elapsed,
		Steps:      []string{},
	}
	if o.Succeeded() {
		run.Depth = o.Found.Depth()
		run.Checksum = o.Final().Checksum()
		for _, step := range o.Steps() {
			run.Steps = append(run.Steps, step.String())
		}
	}
	return run, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS search_runs (
	id          UUID PRIMARY KEY,
	goal        TEXT NOT NULL,
	succeeded   BOOLEAN NOT NULL,
	exhausted   BOOLEAN NOT NULL,
	iterations  INTEGER NOT NULL,
	explored    INTEGER NOT NULL,
	depth       INTEGER NOT NULL,
	checksum    TEXT NOT NULL,
	steps       TEXT[] NOT NULL,
	elapsed_ms  BIGINT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Store persists runs through a pgx connection pool.
type Store struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// Open connects to the database described by cfg and makes sure the runs
// table exists.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	logger.Info("results store ready",
		zap.Int32("max_conns", poolCfg.MaxConns),
	)
	return &Store{pool: pool, logger: logger}, nil
}

// Close releases the pool.
func (s *Store) Close() {
	s.pool.Close()
}

// Save inserts a run.
func (s *Store) Save(ctx context.Context, run Run) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO search_runs
			(id, goal, succeeded, exhausted, iterations, explored, depth, checksum, steps, elapsed_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		run.ID, run.Goal, run.Succeeded, run.Exhausted, run.Iterations, run.Explored,
		run.Depth, run.Checksum, run.Steps, run.Elapsed.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("failed to save run %s: %w", run.ID, err)
	}
	s.logger.Debug("saved run",
		zap.String("run_id", run.ID.String()),
		zap.Bool("succeeded", run.Succeeded),
	)
	return nil
}

const selectRun = `
	SELECT id, goal, succeeded, exhausted, iterations, explored, depth, checksum, steps, elapsed_ms, created_at
	FROM search_runs`

// Get loads one run.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (Run, error) {
	row := s.pool.QueryRow(ctx, selectRun+` WHERE id = $1`, id)
	run, err := scanRun(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return run, err
}

// Recent returns the latest runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.pool.Query(ctx, selectRun+` ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func scanRun(row pgx.Row) (Run, error) {
	var (
		run       Run
		elapsedMS int64
	)
	err := row.Scan(&run.ID, &run.Goal, &run.Succeeded, &run.Exhausted, &run.Iterations,
		&run.Explored, &run.Depth, &run.Checksum, &run.Steps, &elapsedMS, &run.CreatedAt)
	if err != nil {
		return Run{}, err
	}
	run.Elapsed = time.Duration(elapsedMS) * time.Millisecond
	return run, nil
}

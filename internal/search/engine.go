package search

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/magefree/mage-reach/internal/game"
)

// DefaultIterationLimit is the budget used when none is configured.
const DefaultIterationLimit = 1_000_000

// Goal reports whether a settled state is the one being searched for.
type Goal func(s *game.State) bool

// Engine runs breadth-first searches over game states.
type Engine struct {
	limit         int
	progressEvery int
	logger        *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithIterationLimit caps the number of frontier nodes a run expands.
func WithIterationLimit(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.limit = n
		}
	}
}

// WithLogger sets the logger runs report to.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithProgressEvery logs progress every n iterations. Zero disables it.
func WithProgressEvery(n int) Option {
	return func(e *Engine) { e.progressEvery = max(n, 0) }
}

// New creates an engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		limit:  DefaultIterationLimit,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// IterationLimit returns the configured budget.
func (e *Engine) IterationLimit() int { return e.limit }

// endTurn is taken when a state offers no legal action.
var endTurn = game.And(game.EndTurn(), game.Draw(game.ActivePlayer))

// Run searches breadth-first from initial for a state satisfying goal. Every
// child is settled before it is tested and deduplicated, so the stack is
// always empty in explored states. Failing to reach the goal is not an
// error; errors report broken card definitions.
func (e *Engine) Run(initial *game.State, goal Goal) (*Outcome, error) {
	started := time.Now()
	out := &Outcome{RunID: uuid.NewString()}
	logger := e.logger.With(zap.String("run_id", out.RunID))
	logger.Info("search started",
		zap.Int("iteration_limit", e.limit),
		zap.Int("objects", initial.Len()),
	)

	start, err := initial.Settle()
	if err != nil {
		return nil, err
	}
	seen := newVisited()
	seen.add(start)
	first := root(start)
	if goal(start) {
		out.Found = first
		out.Explored = seen.len()
		out.Elapsed = time.Since(started)
		logger.Info("goal holds in the initial state")
		return out, nil
	}

	queue := []*Node{first}
	for out.Iterations < e.limit {
		if len(queue) == 0 {
			out.Exhausted = true
			break
		}
		node := queue[0]
		queue[0] = nil
		queue = queue[1:]
		out.Iterations++

		children, err := e.expand(node, logger)
		if err != nil {
			return nil, err
		}
		for _, child := range children {
			if goal(child.State) {
				out.Found = child
				out.Frontier = queue
				out.Explored = seen.len()
				out.Elapsed = time.Since(started)
				logger.Info("goal reached",
					zap.Int("iterations", out.Iterations),
					zap.Int("depth", child.Depth()),
					zap.Int("explored", out.Explored),
					zap.Duration("elapsed", out.Elapsed),
				)
				return out, nil
			}
			if seen.add(child.State) {
				queue = append(queue, child)
			}
		}

		if e.progressEvery > 0 && out.Iterations%e.progressEvery == 0 {
			logger.Info("search progress",
				zap.Int("iterations", out.Iterations),
				zap.Int("frontier", len(queue)),
				zap.Int("explored", seen.len()),
				zap.Int("depth", node.Depth()),
			)
		}
	}

	out.Frontier = queue
	out.Explored = seen.len()
	out.Elapsed = time.Since(started)
	logger.Info("search ended without reaching the goal",
		zap.Int("iterations", out.Iterations),
		zap.Int("frontier", len(queue)),
		zap.Int("explored", out.Explored),
		zap.Bool("exhausted", out.Exhausted),
	)
	return out, nil
}

// expand returns the settled children of node in action and choice order.
// With no legal action the only child is the end of the turn.
func (e *Engine) expand(node *Node, logger *zap.Logger) ([]*Node, error) {
	s := node.State
	legal := game.LegalActions(s)
	if len(legal) == 0 {
		choice := endTurn.Choices(s)[0]
		child, err := e.apply(s, endTurn, choice, logger)
		if err != nil || child == nil {
			return nil, err
		}
		return []*Node{node.child(child, endTurn, choice)}, nil
	}

	var children []*Node
	for _, a := range legal {
		for _, choice := range a.Choices(s) {
			child, err := e.apply(s, a, choice, logger)
			if err != nil {
				return nil, err
			}
			if child != nil {
				children = append(children, node.child(child, a, choice))
			}
		}
	}
	return children, nil
}

// apply takes one action and settles the result. Branches that cannot be
// settled without a player decision are dropped and return nil.
func (e *Engine) apply(s *game.State, a game.Action, choice game.Binding, logger *zap.Logger) (*game.State, error) {
	next, err := s.TakeAction(a, choice)
	if err != nil {
		return nil, err
	}
	settled, err := next.Settle()
	switch {
	case err == nil:
		return settled, nil
	case errors.Is(err, game.ErrAmbiguousResolution), errors.Is(err, game.ErrUnsettled):
		logger.Debug("dropping branch",
			zap.String("action", game.Describe(a)),
			zap.Error(err),
		)
		return nil, nil
	default:
		return nil, err
	}
}

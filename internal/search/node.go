package search

import (
	"fmt"
	"slices"
	"time"

	"github.com/magefree/mage-reach/internal/game"
)

// Node links a state to the node it was reached from.
type Node struct {
	Parent *Node
	State  *game.State
	Action game.Action
	Choice game.Binding
	depth  int
}

func root(s *game.State) *Node {
	return &Node{State: s}
}

func (n *Node) child(s *game.State, a game.Action, choice game.Binding) *Node {
	return &Node{Parent: n, State: s, Action: a, Choice: choice, depth: n.depth + 1}
}

// Depth is the number of actions between the root and n.
func (n *Node) Depth() int { return n.depth }

// Step is one action taken on the way to a node and the state it produced.
type Step struct {
	Action game.Action
	Choice game.Binding
	State  *game.State
}

func (s Step) String() string {
	if len(s.Choice) == 0 {
		return game.Describe(s.Action)
	}
	return fmt.Sprintf("%s %s", game.Describe(s.Action), s.Choice)
}

// Path returns the steps from the root to n, oldest first.
func (n *Node) Path() []Step {
	var steps []Step
	for cur := n; cur != nil && cur.Parent != nil; cur = cur.Parent {
		steps = append(steps, Step{Action: cur.Action, Choice: cur.Choice, State: cur.State})
	}
	slices.Reverse(steps)
	return steps
}

// Outcome is the result of a run. Found is nil when the goal was not
// reached; Frontier then holds the nodes that were never expanded.
type Outcome struct {
	RunID      string
	Found      *Node
	Frontier   []*Node
	Iterations int
	Explored   int
	// Exhausted is set when the frontier ran dry before the budget did.
	Exhausted bool
	Elapsed   time.Duration
}

// Succeeded reports whether the goal was reached.
func (o *Outcome) Succeeded() bool { return o.Found != nil }

// Final returns the goal state, or nil.
func (o *Outcome) Final() *game.State {
	if o.Found == nil {
		return nil
	}
	return o.Found.State
}

// Steps returns the path to the goal state.
func (o *Outcome) Steps() []Step {
	if o.Found == nil {
		return nil
	}
	return o.Found.Path()
}

package game

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/magefree/mage-reach/internal/game/rules"
)

// Binding is one concrete way to invoke an action: parameter name to value.
type Binding map[string]any

// String renders the binding with sorted keys. Equal bindings render equally,
// so the string doubles as the binding's identity.
func (b Binding) String() string {
	return fmt.Sprint(map[string]any(b))
}

// Clone returns a shallow copy of b.
func (b Binding) Clone() Binding {
	if b == nil {
		return Binding{}
	}
	return maps.Clone(b)
}

// Event records that an action was applied.
type Event struct {
	Kind   rules.ActionKind
	Source ObjectID
	Cause  ObjectID
	Player Player
}

// Action is a rule that can be invoked. Choices lists the legal bindings in
// the given state; an empty list means the action is not available. Do
// applies one binding to a state the caller has already copied and reports
// what happened.
type Action interface {
	Kind() rules.ActionKind
	Choices(s *State) []Binding
	Do(s *State, b Binding) Event
}

// Describe returns a short human readable name for an action.
func Describe(a Action) string {
	if str, ok := a.(fmt.Stringer); ok {
		return str.String()
	}
	return a.Kind().String()
}

// perform applies a in place and records its event for trigger matching.
func (s *State) perform(a Action, b Binding) Event {
	if b == nil {
		b = Binding{}
	}
	ev := a.Do(s, b)
	ev.Kind = a.Kind()
	s.record(ev)
	return ev
}

// TakeAction applies one of a's choices to a copy of s and returns the copy.
// Triggers matched by the events of the transition are queued on the result.
// s itself is never modified.
func (s *State) TakeAction(a Action, b Binding) (*State, error) {
	if b == nil {
		b = Binding{}
	}
	ok, err := s.offers(a, b)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s does not offer %s", ErrIllegalChoice, Describe(a), b)
	}
	return s.transition(func(next *State) error {
		next.perform(a, b)
		return nil
	})
}

func (s *State) offers(a Action, b Binding) (bool, error) {
	choices, err := s.choicesOf(a)
	if err != nil {
		return false, err
	}
	return containsBinding(choices, b), nil
}

// choicesOf is a.Choices(s) with contract violations returned as errors.
func (s *State) choicesOf(a Action) (choices []Binding, err error) {
	defer func() {
		if r := recover(); r != nil {
			cerr, ok := contractViolation(r)
			if !ok {
				panic(r)
			}
			choices, err = nil, cerr
		}
	}()
	return a.Choices(s), nil
}

func containsBinding(choices []Binding, b Binding) bool {
	key := b.String()
	return slices.ContainsFunc(choices, func(c Binding) bool { return c.String() == key })
}

// bound is an action with some parameters already decided.
type bound struct {
	inner Action
	fixed Binding
}

// Bind fixes some of a's parameters. The fixed keys disappear from Choices,
// choices that disagree with the fixed values are dropped, and choices that
// become identical are merged.
func Bind(a Action, fixed Binding) Action {
	if inner, ok := a.(*bound); ok {
		merged := inner.fixed.Clone()
		maps.Copy(merged, fixed)
		return &bound{inner: inner.inner, fixed: merged}
	}
	return &bound{inner: a, fixed: fixed.Clone()}
}

func (a *bound) Kind() rules.ActionKind { return a.inner.Kind() }

func (a *bound) Choices(s *State) []Binding {
	var out []Binding
	seen := make(map[string]bool)
	for _, c := range a.inner.Choices(s) {
		if !agrees(c, a.fixed) {
			continue
		}
		rest := Binding{}
		for k, v := range c {
			if _, fixed := a.fixed[k]; !fixed {
				rest[k] = v
			}
		}
		key := rest.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, rest)
	}
	return out
}

func (a *bound) Do(s *State, b Binding) Event {
	merged := b.Clone()
	maps.Copy(merged, a.fixed)
	return a.inner.Do(s, merged)
}

func (a *bound) String() string {
	return fmt.Sprintf("%s%s", Describe(a.inner), a.fixed)
}

func agrees(c, fixed Binding) bool {
	for k, v := range fixed {
		if cv, ok := c[k]; ok && fmt.Sprint(cv) != fmt.Sprint(v) {
			return false
		}
	}
	return true
}

// Sequence performs its actions one after another, each seeing the state the
// previous one produced. Its choices are the cross product of the parts'
// choices, under the key "choices".
type Sequence struct {
	actions []Action
	// simultaneous parts may not pick the same card.
	simultaneous bool
}

// And sequences actions.
func And(actions ...Action) *Sequence {
	return &Sequence{actions: slices.Clone(actions)}
}

// All combines parts that are performed together, such as the parts of a
// cost. No two parts may choose the same card.
func All(actions ...Action) *Sequence {
	return &Sequence{actions: slices.Clone(actions), simultaneous: true}
}

// Then returns a new sequence with a appended.
func (q *Sequence) Then(a Action) *Sequence {
	return &Sequence{actions: append(slices.Clone(q.actions), a), simultaneous: q.simultaneous}
}

func (q *Sequence) Kind() rules.ActionKind { return rules.ActionSequence }

func (q *Sequence) Choices(s *State) []Binding {
	combos := [][]Binding{{}}
	for _, a := range q.actions {
		options := a.Choices(s)
		if len(options) == 0 {
			return nil
		}
		next := make([][]Binding, 0, len(combos)*len(options))
		for _, combo := range combos {
			for _, opt := range options {
				next = append(next, append(slices.Clone(combo), opt))
			}
		}
		combos = next
	}

	out := make([]Binding, 0, len(combos))
	for _, combo := range combos {
		if q.simultaneous && !distinctCards(combo) {
			continue
		}
		out = append(out, Binding{"choices": combo})
	}
	return out
}

func (q *Sequence) Do(s *State, b Binding) Event {
	parts, _ := b["choices"].([]Binding)
	if parts == nil {
		parts = make([]Binding, len(q.actions))
	}
	if len(parts) != len(q.actions) {
		panic(illegal("sequence of %d actions got %d choices", len(q.actions), len(parts)))
	}
	var first Event
	for i, a := range q.actions {
		ev := s.perform(a, parts[i])
		if i == 0 {
			first = ev
		}
	}
	return Event{Source: first.Source, Cause: first.Cause, Player: first.Player}
}

func (q *Sequence) String() string {
	names := make([]string, len(q.actions))
	for i, a := range q.actions {
		names[i] = Describe(a)
	}
	sep := " then "
	if q.simultaneous {
		sep = " and "
	}
	return strings.Join(names, sep)
}

func distinctCards(combo []Binding) bool {
	seen := make(map[any]bool)
	for _, b := range combo {
		card, ok := b["card"]
		if !ok {
			continue
		}
		if seen[card] {
			return false
		}
		seen[card] = true
	}
	return true
}

package game

import (
	"fmt"

	"github.com/magefree/mage-reach/internal/game/rules"
	"github.com/magefree/mage-reach/internal/game/zone"
)

// MaxSettleSteps bounds Settle. A card pool that keeps triggering itself
// past this many steps is reported with ErrUnsettled.
const MaxSettleSteps = 1000

// nextPosition returns the position above everything in z.
func (s *State) nextPosition(z zone.Zone) int {
	next := 0
	for _, obj := range s.InZone(z) {
		if pos := obj.Zone().Position; pos >= next {
			next = pos + 1
		}
	}
	return next
}

// Push puts an object on top of the stack.
func (s *State) Push(id ObjectID) {
	obj, ok := s.objects[id]
	if !ok {
		panic(&StaleIdentityError{ID: id})
	}
	owner := zone.AnyPlayer
	switch o := obj.(type) {
	case *Card:
		owner = o.Owner
	case *StackAbility:
		if src, ok := s.lookupCard(o.Source); ok {
			owner = src.Controller()
		}
	}
	z := zone.Stack().WithOwner(owner)
	s.SetZone(id, z.At(s.nextPosition(zone.Stack())))
}

// Top returns the object that resolves next, or nil.
func (s *State) Top() Object {
	stack := s.InZone(zone.Stack())
	if len(stack) == 0 {
		return nil
	}
	return stack[len(stack)-1]
}

// Stack returns the stack from bottom to top.
func (s *State) Stack() []Object {
	return s.InZone(zone.Stack())
}

// resolution returns the action that resolves obj.
func (s *State) resolution(obj Object) Action {
	switch o := obj.(type) {
	case *Card:
		return o.resolution(s)
	case *StackAbility:
		return o.resolution(s)
	default:
		panic(fmt.Sprintf("unexpected object on the stack: %T", obj))
	}
}

// ResolveTop resolves the top of the stack. The top object must have exactly
// one way to resolve; one with none fizzles: a spell goes to its owner's
// graveyard and an ability is removed.
func (s *State) ResolveTop() (*State, error) {
	top := s.Top()
	if top == nil {
		return nil, ErrEmptyStack
	}
	effect := s.resolution(top)
	choices, err := s.choicesOf(effect)
	if err != nil {
		return nil, err
	}
	switch len(choices) {
	case 0:
		return s.transition(func(next *State) error {
			next.fizzle(top.ID())
			return nil
		})
	case 1:
		return s.TakeAction(effect, choices[0])
	default:
		return nil, fmt.Errorf("%w: %s has %d", ErrAmbiguousResolution, top, len(choices))
	}
}

func (s *State) fizzle(id ObjectID) {
	switch o := s.objects[id].(type) {
	case *Card:
		s.SetZone(id, zone.Graveyard(o.Owner))
	default:
		s.Remove(id)
	}
}

// FlushTriggers puts every pending trigger on the stack in the order the
// triggers were queued. Reactions that do not use the stack happen
// immediately instead.
func (s *State) FlushTriggers() (*State, error) {
	return s.transition(func(next *State) error {
		queue := next.pending
		next.pending = nil
		for _, p := range queue {
			label := "trigger"
			if src, ok := next.lookupCard(p.Source); ok {
				label = src.Name() + " trigger"
			}
			if p.Trigger.UsesStack {
				ab := newStackAbility(next, p.Source, label, p.Trigger.Reaction)
				next.Push(ab.id)
				next.record(Event{Kind: rules.ActionTrigger, Source: p.Source, Cause: ab.id, Player: p.Event.Player})
				continue
			}
			choices := p.Trigger.Reaction.Choices(next)
			switch len(choices) {
			case 0:
			case 1:
				next.perform(p.Trigger.Reaction, choices[0])
			default:
				return fmt.Errorf("%w: %s has %d", ErrAmbiguousResolution, label, len(choices))
			}
		}
		return nil
	})
}

// Settled reports whether nothing waits on the stack or in the trigger queue.
func (s *State) Settled() bool {
	return len(s.pending) == 0 && s.Top() == nil
}

// Settle flushes triggers and resolves the stack until both are empty.
func (s *State) Settle() (*State, error) {
	cur := s
	for i := 0; i < MaxSettleSteps; i++ {
		var err error
		switch {
		case len(cur.pending) > 0:
			cur, err = cur.FlushTriggers()
		case cur.Top() != nil:
			cur, err = cur.ResolveTop()
		default:
			return cur, nil
		}
		if err != nil {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w after %d steps", ErrUnsettled, MaxSettleSteps)
}

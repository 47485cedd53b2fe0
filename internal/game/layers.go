package game

import (
	"fmt"
	"slices"

	"github.com/magefree/mage-reach/internal/game/rules"
	"github.com/magefree/mage-reach/internal/game/zone"
)

// Property names a derived characteristic that static abilities can modify.
type Property int

const (
	PropPower Property = iota
	PropToughness
	PropTypes
	PropSubtypes
	PropAbilities
)

var propertyNames = map[Property]string{
	PropPower:     "POWER",
	PropToughness: "TOUGHNESS",
	PropTypes:     "TYPES",
	PropSubtypes:  "SUBTYPES",
	PropAbilities: "ABILITIES",
}

func (p Property) String() string {
	if name, ok := propertyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PROPERTY_%d", int(p))
}

// StaticCondition gates a static ability on the affected card.
type StaticCondition func(s *State, source, affected *Card) bool

// EventCondition gates a triggered ability on an event.
type EventCondition func(s *State, ev Event) bool

// ActivatedAbility is a cost paired with an effect.
type ActivatedAbility struct {
	Cost      Action
	Effect    Action
	UsesStack bool
}

// StaticAbility continuously modifies one property of the cards in Affected
// that satisfy Condition while its source is in ActiveZone.
type StaticAbility struct {
	Property   Property
	Condition  StaticCondition
	ActiveZone zone.Zone
	Affected   zone.Zone

	modifyInt       func(s *State, source, affected *Card, base int) int
	modifyTypes     func(s *State, source, affected *Card, base []CardType) []CardType
	modifySubtypes  func(s *State, source, affected *Card, base []string) []string
	modifyAbilities func(s *State, source, affected *Card, base []ActivatedAbility) []ActivatedAbility
}

// TriggeredAbility queues Reaction when an event of kind When satisfies
// Condition while its source is in ActiveZone.
type TriggeredAbility struct {
	When       rules.ActionKind
	Condition  EventCondition
	Reaction   Action
	UsesStack  bool
	ActiveZone zone.Zone
}

// activeEffect binds a static or triggered ability to its source while the
// source is in the ability's active zone.
type activeEffect struct {
	id      ObjectID
	source  ObjectID
	static  *StaticAbility
	trigger *TriggeredAbility
}

// PendingTrigger is a trigger that matched an event and waits to be put on
// the stack.
type PendingTrigger struct {
	Event   Event
	Source  ObjectID
	Trigger *TriggeredAbility
}

// refreshEffects registers and unregisters the active effects of c after its
// zone changed. This is the only place active effects are created or removed.
func (s *State) refreshEffects(c *Card) {
	for _, st := range c.def.statics {
		s.syncEffect(c, st.ActiveZone.Contains(c.zone), func(e activeEffect) bool { return e.static == st },
			activeEffect{source: c.id, static: st})
	}
	for _, t := range c.def.triggers {
		s.syncEffect(c, t.ActiveZone.Contains(c.zone), func(e activeEffect) bool { return e.trigger == t },
			activeEffect{source: c.id, trigger: t})
	}
}

func (s *State) syncEffect(c *Card, active bool, same func(activeEffect) bool, fresh activeEffect) {
	idx := slices.IndexFunc(s.effects, func(e activeEffect) bool { return e.source == c.id && same(e) })
	switch {
	case active && idx < 0:
		fresh.id = NewObjectID()
		s.effects = append(s.effects, fresh)
	case !active && idx >= 0:
		s.effects = slices.Delete(s.effects, idx, idx+1)
	}
}

func (s *State) dropEffects(id ObjectID) {
	s.effects = slices.DeleteFunc(s.effects, func(e activeEffect) bool { return e.source == id })
}

// ActiveEffects returns the number of live static and triggered effects.
func (s *State) ActiveEffects() int {
	return len(s.effects)
}

type readKey struct {
	id   ObjectID
	prop Property
}

// enter marks (id, prop) as being derived. It returns false when the read is
// nested inside a derivation of the same property of the same card; such a
// read gets the base value.
func (s *State) enter(id ObjectID, prop Property) bool {
	if s.reading == nil {
		s.reading = make(map[readKey]bool)
	}
	k := readKey{id, prop}
	if s.reading[k] {
		return false
	}
	s.reading[k] = true
	return true
}

func (s *State) leave(id ObjectID, prop Property) {
	delete(s.reading, readKey{id, prop})
}

// applicable calls fn for each static effect on prop that applies to c, in
// registration order.
func (s *State) applicable(c *Card, prop Property, fn func(st *StaticAbility, source *Card)) {
	if !s.enter(c.id, prop) {
		return
	}
	defer s.leave(c.id, prop)
	for _, e := range s.effects {
		if e.static == nil || e.static.Property != prop {
			continue
		}
		source, ok := s.lookupCard(e.source)
		if !ok || !e.static.Affected.Contains(c.zone) {
			continue
		}
		if e.static.Condition != nil && !e.static.Condition(s, source, c) {
			continue
		}
		fn(e.static, source)
	}
}

// Power returns the card's power after counters and static effects. ok is
// false for cards without power.
func (s *State) Power(c *Card) (power int, ok bool) {
	if c.def.stats == nil {
		return 0, false
	}
	boost, _ := c.Counters.Boost()
	power = c.def.stats.Power + boost
	s.applicable(c, PropPower, func(st *StaticAbility, source *Card) {
		power = st.modifyInt(s, source, c, power)
	})
	return power, true
}

// Toughness returns the card's toughness after counters and static effects.
func (s *State) Toughness(c *Card) (toughness int, ok bool) {
	if c.def.stats == nil {
		return 0, false
	}
	_, boost := c.Counters.Boost()
	toughness = c.def.stats.Toughness + boost
	s.applicable(c, PropToughness, func(st *StaticAbility, source *Card) {
		toughness = st.modifyInt(s, source, c, toughness)
	})
	return toughness, true
}

// Types returns the card's types after static effects.
func (s *State) Types(c *Card) []CardType {
	types := slices.Clone(c.def.types)
	s.applicable(c, PropTypes, func(st *StaticAbility, source *Card) {
		types = st.modifyTypes(s, source, c, types)
	})
	return types
}

// Subtypes returns the card's subtypes after static effects.
func (s *State) Subtypes(c *Card) []string {
	subtypes := slices.Clone(c.def.subtypes)
	s.applicable(c, PropSubtypes, func(st *StaticAbility, source *Card) {
		subtypes = st.modifySubtypes(s, source, c, subtypes)
	})
	return subtypes
}

// Abilities returns the card's activated abilities after static effects.
func (s *State) Abilities(c *Card) []ActivatedAbility {
	abilities := slices.Clone(c.def.activated)
	s.applicable(c, PropAbilities, func(st *StaticAbility, source *Card) {
		abilities = st.modifyAbilities(s, source, c, abilities)
	})
	return abilities
}

// HasType reports whether c currently has type t.
func (s *State) HasType(c *Card, t CardType) bool {
	return slices.Contains(s.Types(c), t)
}

// HasSubtype reports whether c currently has the subtype (case-insensitive).
func (s *State) HasSubtype(c *Card, subtype string) bool {
	return slices.Contains(s.Subtypes(c), normalizeSubtype(subtype))
}

// collectTriggers matches the events recorded during a transition against
// the live triggered effects and queues every match.
func (s *State) collectTriggers() {
	events := s.journal
	s.journal = nil
	for _, ev := range events {
		for _, e := range s.effects {
			if e.trigger == nil || e.trigger.When != ev.Kind {
				continue
			}
			if e.trigger.Condition != nil && !e.trigger.Condition(s, ev) {
				continue
			}
			s.pending = append(s.pending, PendingTrigger{Event: ev, Source: e.source, Trigger: e.trigger})
		}
	}
}

// Pending returns the triggers waiting to be put on the stack.
func (s *State) Pending() []PendingTrigger {
	return slices.Clone(s.pending)
}

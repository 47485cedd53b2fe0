package game

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/magefree/mage-reach/internal/game/counters"
	"github.com/magefree/mage-reach/internal/game/mana"
	"github.com/magefree/mage-reach/internal/game/rules"
	"github.com/magefree/mage-reach/internal/game/zone"
)

// Stats is a printed power and toughness.
type Stats struct {
	Power     int
	Toughness int
}

// CardSpec is the printed part of a card.
type CardSpec struct {
	Cost     *mana.Mana
	Types    []CardType
	Subtypes []string
	Stats    *Stats
}

// definition is shared by every copy of a card. It is only written while the
// card is being built.
type definition struct {
	name      string
	cost      *mana.Mana
	types     []CardType
	subtypes  []string
	stats     *Stats
	activated []ActivatedAbility
	statics   []*StaticAbility
	triggers  []*TriggeredAbility
	effect    Action
}

// Card is a card instance. Derived characteristics (power, toughness, types,
// subtypes, abilities) are read through the State so static effects apply.
type Card struct {
	id       ObjectID
	zone     zone.Zone
	def      *definition
	Owner    Player
	Tapped   bool
	Counters *counters.Counters
	// chosen holds the choice made for the card's effect when it was cast.
	chosen Binding
}

// NewCard creates a card owned by owner and adds it to s with no location.
func NewCard(s *State, owner Player, name string, spec CardSpec) *Card {
	subtypes := make([]string, len(spec.Subtypes))
	for i, st := range spec.Subtypes {
		subtypes[i] = normalizeSubtype(st)
	}
	c := &Card{
		id:       NewObjectID(),
		Owner:    owner,
		Counters: counters.New(),
		def: &definition{
			name:     name,
			cost:     spec.Cost,
			types:    append([]CardType(nil), spec.Types...),
			subtypes: subtypes,
			stats:    spec.Stats,
		},
	}
	s.Add(c)
	return c
}

func (c *Card) ID() ObjectID        { return c.id }
func (c *Card) Zone() zone.Zone     { return c.zone }
func (c *Card) setZone(z zone.Zone) { c.zone = z }
func (c *Card) Name() string        { return c.def.name }
func (c *Card) Cost() *mana.Mana    { return c.def.cost }

// Controller is the player whose zone the card is in.
func (c *Card) Controller() Player { return c.zone.Owner }

// ManaValue is the total mana in the card's cost.
func (c *Card) ManaValue() int {
	if c.def.cost == nil {
		return 0
	}
	return c.def.cost.Value()
}

func (c *Card) clone() Object {
	dup := *c
	dup.Counters = c.Counters.Copy()
	return &dup
}

func (c *Card) writeKey(sb *strings.Builder, s *State) {
	fmt.Fprintf(sb, "CARD:%d|%s|%s|%t|%s|%t", c.id, c.def.name, c.zone, c.Tapped, c.Counters, s.SummoningSick(c.id))
	if c.chosen != nil {
		fmt.Fprintf(sb, "|%s", c.chosen)
	}
	sb.WriteByte('\n')
}

func (c *Card) String() string {
	return fmt.Sprintf("%s#%d(%s)", c.def.name, c.id, c.zone)
}

// Activated adds an activated ability. Mana abilities and special actions
// pass usesStack=false and resolve immediately.
func (c *Card) Activated(cost, effect Action, usesStack bool) *Card {
	c.def.activated = append(c.def.activated, ActivatedAbility{
		Cost:      cost,
		Effect:    effect,
		UsesStack: usesStack,
	})
	return c
}

// TriggerOption customises a triggered ability.
type TriggerOption func(*TriggeredAbility)

// WithoutStack makes the reaction happen as soon as triggers are flushed.
func WithoutStack() TriggerOption {
	return func(t *TriggeredAbility) { t.UsesStack = false }
}

// ActiveIn sets the zone the source must be in for the trigger to be live.
func ActiveIn(z zone.Zone) TriggerOption {
	return func(t *TriggeredAbility) { t.ActiveZone = z }
}

// Triggered adds a triggered ability reacting to events of kind when.
func (c *Card) Triggered(when rules.ActionKind, condition EventCondition, reaction Action, opts ...TriggerOption) *Card {
	t := &TriggeredAbility{
		When:       when,
		Condition:  condition,
		Reaction:   reaction,
		UsesStack:  true,
		ActiveZone: zone.Battlefield(zone.AnyPlayer),
	}
	for _, opt := range opts {
		opt(t)
	}
	c.def.triggers = append(c.def.triggers, t)
	return c
}

// StaticInt adds a static ability modifying power or toughness.
func (c *Card) StaticInt(prop Property, condition StaticCondition, fn func(s *State, source, affected *Card, base int) int) *Card {
	if prop != PropPower && prop != PropToughness {
		panic(fmt.Sprintf("StaticInt: %s is not a numeric property", prop))
	}
	return c.addStatic(&StaticAbility{Property: prop, Condition: condition, modifyInt: fn})
}

// StaticTypes adds a static ability modifying card types.
func (c *Card) StaticTypes(condition StaticCondition, fn func(s *State, source, affected *Card, base []CardType) []CardType) *Card {
	return c.addStatic(&StaticAbility{Property: PropTypes, Condition: condition, modifyTypes: fn})
}

// StaticSubtypes adds a static ability modifying subtypes.
func (c *Card) StaticSubtypes(condition StaticCondition, fn func(s *State, source, affected *Card, base []string) []string) *Card {
	return c.addStatic(&StaticAbility{Property: PropSubtypes, Condition: condition, modifySubtypes: fn})
}

// StaticAbilities adds a static ability modifying activated abilities.
func (c *Card) StaticAbilities(condition StaticCondition, fn func(s *State, source, affected *Card, base []ActivatedAbility) []ActivatedAbility) *Card {
	return c.addStatic(&StaticAbility{Property: PropAbilities, Condition: condition, modifyAbilities: fn})
}

func (c *Card) addStatic(st *StaticAbility) *Card {
	st.ActiveZone = zone.Battlefield(zone.AnyPlayer)
	st.Affected = zone.Battlefield(zone.AnyPlayer)
	c.def.statics = append(c.def.statics, st)
	return c
}

// WithEffect adds an action performed when the card resolves, before it
// moves to its destination.
func (c *Card) WithEffect(effect Action) *Card {
	if c.def.effect == nil {
		c.def.effect = effect
	} else {
		c.def.effect = And(c.def.effect, effect)
	}
	return c
}

// Effect returns the card's own resolution effect, or nil.
func (c *Card) Effect() Action {
	return c.def.effect
}

// resolution is everything that happens when the card leaves the stack:
// its effect with the choice fixed at cast time, then the move to the
// battlefield or, for instants and sorceries, the graveyard.
func (c *Card) resolution(s *State) Action {
	var dest Action
	if slices.ContainsFunc(s.Types(c), CardType.IsSpellOnly) {
		dest = Bind(MoveTo(zone.Stack(), zone.Graveyard(c.Owner)), Binding{"card": c.id})
	} else {
		dest = PutOntoBattlefield(c.id)
	}
	if c.def.effect == nil {
		return dest
	}
	effect := c.def.effect
	if c.chosen != nil {
		effect = Bind(effect, c.chosen)
	}
	return And(effect, dest)
}

// StackAbility is an activated or triggered ability waiting on the stack.
type StackAbility struct {
	id     ObjectID
	zone   zone.Zone
	Source ObjectID
	Label  string
	effect Action
}

func newStackAbility(s *State, source ObjectID, label string, effect Action) *StackAbility {
	ab := &StackAbility{id: NewObjectID(), Source: source, Label: label, effect: effect}
	s.Add(ab)
	return ab
}

func (a *StackAbility) ID() ObjectID        { return a.id }
func (a *StackAbility) Zone() zone.Zone     { return a.zone }
func (a *StackAbility) setZone(z zone.Zone) { a.zone = z }

func (a *StackAbility) clone() Object {
	dup := *a
	return &dup
}

func (a *StackAbility) writeKey(sb *strings.Builder, _ *State) {
	fmt.Fprintf(sb, "ABILITY:%d|%d|%s|%s\n", a.id, a.Source, a.Label, a.zone)
}

func (a *StackAbility) String() string {
	return fmt.Sprintf("%s#%d(%s)", a.Label, a.id, a.zone)
}

// resolution performs the ability and then removes it from the store.
func (a *StackAbility) resolution(*State) Action {
	return And(a.effect, cleanup{id: a.id})
}

// sortedIDs returns the keys of the store in ascending order.
func sortedIDs(objects map[ObjectID]Object) []ObjectID {
	ids := make([]ObjectID, 0, len(objects))
	for id := range objects {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

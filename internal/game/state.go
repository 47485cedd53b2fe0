package game

import (
	"maps"
	"slices"
	"sort"
	"strings"

	"github.com/magefree/mage-reach/internal/game/counters"
	"github.com/magefree/mage-reach/internal/game/mana"
	"github.com/magefree/mage-reach/internal/game/rules"
	"github.com/magefree/mage-reach/internal/game/zone"
)

// State is a snapshot of the game. A State is never changed once a
// transition has produced it: TakeAction, FlushTriggers and ResolveTop copy
// the state and apply their changes to the copy.
//
// The exported mutators (SetZone, Push, Remove, AddMana) exist for actions
// working on such a copy and for building a starting position.
type State struct {
	players []Player
	objects map[ObjectID]Object
	pool    mana.Mana
	turn    rules.Turn
	sick    map[ObjectID]struct{}
	pending []PendingTrigger
	effects []activeEffect
	parent  *State

	// Transient bookkeeping, never copied.
	journal []Event
	reading map[readKey]bool
}

// NewState creates an empty state for the given players on turn 1.
func NewState(players ...Player) *State {
	if len(players) == 0 {
		players = []Player{0}
	}
	return &State{
		players: slices.Clone(players),
		objects: make(map[ObjectID]Object),
		turn:    rules.FirstTurn(),
		sick:    make(map[ObjectID]struct{}),
	}
}

// Copy returns an independent state holding a duplicate of every object.
// Identities are preserved; the copy's parent is s.
func (s *State) Copy() *State {
	next := &State{
		players: s.players,
		objects: make(map[ObjectID]Object, len(s.objects)),
		pool:    s.pool,
		turn:    s.turn,
		sick:    maps.Clone(s.sick),
		pending: slices.Clone(s.pending),
		effects: slices.Clone(s.effects),
		parent:  s,
	}
	for id, obj := range s.objects {
		next.objects[id] = obj.clone()
	}
	return next
}

// Players returns the seats in turn order.
func (s *State) Players() []Player { return slices.Clone(s.players) }

// Pool returns the shared mana pool.
func (s *State) Pool() mana.Mana { return s.pool }

// AddMana adds m to the pool.
func (s *State) AddMana(m mana.Mana) { s.pool = s.pool.Add(m) }

// Turn returns turn bookkeeping.
func (s *State) Turn() rules.Turn { return s.turn }

// ActivePlayer returns the player whose turn it is.
func (s *State) ActivePlayer() Player { return s.players[s.turn.Active] }

// Parent returns the state this one was derived from, if any.
func (s *State) Parent() *State { return s.parent }

// Len returns the number of objects in the store.
func (s *State) Len() int { return len(s.objects) }

// Add puts a new object into the store and activates its effects if it
// already has a location.
func (s *State) Add(obj Object) {
	s.objects[obj.ID()] = obj
	if c, ok := obj.(*Card); ok && c.zone.Located() {
		s.refreshEffects(c)
	}
}

// Get returns the object with the given identity in this state.
func (s *State) Get(id ObjectID) (Object, error) {
	obj, ok := s.objects[id]
	if !ok {
		return nil, &StaleIdentityError{ID: id}
	}
	return obj, nil
}

// Card returns the card with the given identity. It panics with a
// *StaleIdentityError when the card is not in this state; transitions turn
// that panic back into an error.
func (s *State) Card(id ObjectID) *Card {
	c, ok := s.lookupCard(id)
	if !ok {
		panic(&StaleIdentityError{ID: id})
	}
	return c
}

func (s *State) lookupCard(id ObjectID) (*Card, bool) {
	c, ok := s.objects[id].(*Card)
	return c, ok
}

// presentCard is lookupCard for identities an action was built with. An
// identity missing from the store panics with a *StaleIdentityError; an
// object that is not a card reports ok=false.
func (s *State) presentCard(id ObjectID) (*Card, bool) {
	obj, found := s.objects[id]
	if !found {
		panic(&StaleIdentityError{ID: id})
	}
	c, ok := obj.(*Card)
	return c, ok
}

// InZone returns the objects whose location is described by z, ordered by
// position and then identity.
func (s *State) InZone(z zone.Zone) []Object {
	var found []Object
	for _, obj := range s.objects {
		if z.Contains(obj.Zone()) {
			found = append(found, obj)
		}
	}
	sort.Slice(found, func(i, j int) bool {
		pi, pj := found[i].Zone().Position, found[j].Zone().Position
		if pi != pj {
			return pi < pj
		}
		return found[i].ID() < found[j].ID()
	})
	return found
}

// Cards is InZone restricted to cards.
func (s *State) Cards(z zone.Zone) []*Card {
	var cards []*Card
	for _, obj := range s.InZone(z) {
		if c, ok := obj.(*Card); ok {
			cards = append(cards, c)
		}
	}
	return cards
}

// CardsWhere returns the cards in z for which pred holds.
func (s *State) CardsWhere(z zone.Zone, pred func(s *State, c *Card) bool) []*Card {
	var cards []*Card
	for _, c := range s.Cards(z) {
		if pred == nil || pred(s, c) {
			cards = append(cards, c)
		}
	}
	return cards
}

// SetZone moves an object. Active effects of a card follow its new zone; a
// card changing zone kind untaps, loses the choice made when it was cast,
// and a creature entering the battlefield becomes summoning sick.
func (s *State) SetZone(id ObjectID, z zone.Zone) {
	obj, ok := s.objects[id]
	if !ok {
		panic(&StaleIdentityError{ID: id})
	}
	old := obj.Zone()
	obj.setZone(z)

	c, ok := obj.(*Card)
	if !ok {
		return
	}
	if old.Kind != z.Kind {
		c.Tapped = false
		if old.Kind == zone.KindStack {
			c.chosen = nil
		}
		if old.Kind == zone.KindBattlefield {
			c.Counters = counters.New()
			delete(s.sick, id)
		}
	}
	s.refreshEffects(c)
	if z.Kind == zone.KindBattlefield && old.Kind != zone.KindBattlefield && s.HasType(c, TypeCreature) {
		s.sick[id] = struct{}{}
	}
}

// Remove deletes an object and its active effects from the store.
func (s *State) Remove(id ObjectID) {
	if _, ok := s.objects[id]; !ok {
		panic(&StaleIdentityError{ID: id})
	}
	s.dropEffects(id)
	delete(s.objects, id)
	delete(s.sick, id)
}

// SummoningSick reports whether the object entered the battlefield this turn
// under its controller.
func (s *State) SummoningSick(id ObjectID) bool {
	_, ok := s.sick[id]
	return ok
}

// CanTap reports whether c can be tapped to pay a tap-symbol cost.
func (s *State) CanTap(c *Card) bool {
	return c.zone.Kind == zone.KindBattlefield && !c.Tapped && !s.SummoningSick(c.id)
}

// record appends an event to the transition journal.
func (s *State) record(ev Event) {
	s.journal = append(s.journal, ev)
}

// transition copies s, applies fn to the copy, moves dead creatures to the
// graveyard and queues the triggers the recorded events matched. Contract
// violations raised as panics inside fn are returned as errors.
func (s *State) transition(fn func(next *State) error) (next *State, err error) {
	defer func() {
		if r := recover(); r != nil {
			cerr, ok := contractViolation(r)
			if !ok {
				panic(r)
			}
			next, err = nil, cerr
		}
	}()

	next = s.Copy()
	if err := fn(next); err != nil {
		return nil, err
	}
	next.checkStateBased()
	next.collectTriggers()
	return next, nil
}

// checkStateBased puts creatures with zero or less toughness into their
// owner's graveyard.
// Deaths can switch off static effects, so the check repeats until nothing
// else dies.
func (s *State) checkStateBased() {
	for died := true; died; {
		died = false
		for _, c := range s.Cards(zone.Battlefield(zone.AnyPlayer)) {
			if !s.HasType(c, TypeCreature) {
				continue
			}
			if toughness, ok := s.Toughness(c); ok && toughness <= 0 {
				s.SetZone(c.id, zone.Graveyard(c.Owner))
				s.record(Event{Kind: rules.ActionMove, Source: c.id, Player: c.Owner})
				died = true
			}
		}
	}
}

func normalizeSubtype(subtype string) string {
	return strings.ToLower(strings.TrimSpace(subtype))
}

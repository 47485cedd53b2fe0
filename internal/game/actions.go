package game

import (
	"fmt"

	"github.com/magefree/mage-reach/internal/game/counters"
	"github.com/magefree/mage-reach/internal/game/mana"
	"github.com/magefree/mage-reach/internal/game/rules"
	"github.com/magefree/mage-reach/internal/game/zone"
)

// PlayerFunc picks a player from a state.
type PlayerFunc func(s *State) Player

// ActivePlayer picks the player whose turn it is.
var ActivePlayer PlayerFunc = (*State).ActivePlayer

// ControllerOf picks the controller of a card.
func ControllerOf(id ObjectID) PlayerFunc {
	return func(s *State) Player { return s.Card(id).Controller() }
}

// CardPredicate selects cards.
type CardPredicate func(s *State, c *Card) bool

// Subject is implemented by actions that are about one card.
type Subject interface {
	Subject() ObjectID
}

// cardParam returns the fixed card or the "card" parameter of b.
func cardParam(b Binding, fixed ObjectID) ObjectID {
	if fixed != 0 {
		return fixed
	}
	id, ok := b["card"].(ObjectID)
	if !ok {
		panic(illegal("missing card parameter in %s", b))
	}
	return id
}

func single() []Binding { return []Binding{{}} }

type noop struct{}

// Noop does nothing.
func Noop() Action { return noop{} }

func (noop) Kind() rules.ActionKind   { return rules.ActionNoop }
func (noop) Choices(*State) []Binding { return single() }
func (noop) Do(*State, Binding) Event { return Event{} }
func (noop) String() string           { return "Noop" }

type draw struct {
	player PlayerFunc
	label  string
}

// Draw draws the top card of the library of the player picked when the
// action is performed.
func Draw(player PlayerFunc) Action { return draw{player: player, label: "Draw"} }

// DrawFor draws a card for a fixed player.
func DrawFor(p Player) Action {
	return draw{player: func(*State) Player { return p }, label: fmt.Sprintf("Draw(p%d)", p)}
}

// DrawAny lets the caller choose which player draws.
func DrawAny() Action { return draw{label: "Draw(any)"} }

func (a draw) Kind() rules.ActionKind { return rules.ActionDraw }

func (a draw) Choices(s *State) []Binding {
	if a.player != nil {
		return single()
	}
	out := make([]Binding, len(s.players))
	for i, p := range s.players {
		out[i] = Binding{"player": p}
	}
	return out
}

func (a draw) Do(s *State, b Binding) Event {
	p, ok := b["player"].(Player)
	if !ok {
		if a.player == nil {
			panic(illegal("draw needs a player"))
		}
		p = a.player(s)
	}
	library := s.Cards(zone.Library(p))
	if len(library) == 0 {
		return Event{Player: p}
	}
	top := library[len(library)-1]
	s.SetZone(top.id, zone.Hand(p))
	return Event{Source: top.id, Player: p}
}

func (a draw) String() string { return a.label }

type putOntoBattlefield struct {
	card   ObjectID
	tapped bool
}

// PutOntoBattlefield puts a card onto its owner's battlefield.
func PutOntoBattlefield(id ObjectID) Action { return putOntoBattlefield{card: id} }

// ToBattlefield puts the card given as the "card" parameter onto the
// battlefield, optionally tapped.
func ToBattlefield(tapped bool) Action { return putOntoBattlefield{tapped: tapped} }

func (a putOntoBattlefield) Kind() rules.ActionKind { return rules.ActionPlay }

func (a putOntoBattlefield) Choices(s *State) []Binding {
	if a.card != 0 {
		c, ok := s.presentCard(a.card)
		if !ok || c.zone.Kind == zone.KindBattlefield {
			return nil
		}
		return single()
	}
	var out []Binding
	for _, id := range sortedIDs(s.objects) {
		if c, ok := s.lookupCard(id); ok && c.zone.Located() && c.zone.Kind != zone.KindBattlefield {
			out = append(out, Binding{"card": id})
		}
	}
	return out
}

func (a putOntoBattlefield) Do(s *State, b Binding) Event {
	id := cardParam(b, a.card)
	c := s.Card(id)
	s.SetZone(id, zone.Battlefield(c.Owner))
	c.Tapped = a.tapped
	return Event{Source: id, Cause: id, Player: c.Owner}
}

func (a putOntoBattlefield) Subject() ObjectID { return a.card }

func (a putOntoBattlefield) String() string {
	if a.card == 0 {
		return "ToBattlefield"
	}
	return fmt.Sprintf("PutOntoBattlefield(#%d)", a.card)
}

type playLand struct{ card ObjectID }

// PlayLand plays a land from hand using the turn's land drop.
func PlayLand(id ObjectID) Action { return playLand{card: id} }

func (a playLand) Kind() rules.ActionKind { return rules.ActionPlayLand }

func (a playLand) Choices(s *State) []Binding {
	c, ok := s.presentCard(a.card)
	if !ok || c.zone.Kind != zone.KindHand || c.Controller() != s.ActivePlayer() {
		return nil
	}
	if !s.turn.CanPlayLand() || s.Top() != nil || !s.HasType(c, TypeLand) {
		return nil
	}
	return single()
}

func (a playLand) Do(s *State, _ Binding) Event {
	c := s.Card(a.card)
	if !s.turn.CanPlayLand() {
		panic(illegal("no land drop left for #%d", a.card))
	}
	s.turn = s.turn.UseLandDrop()
	s.perform(PutOntoBattlefield(a.card), Binding{})
	return Event{Source: a.card, Cause: a.card, Player: c.Owner}
}

func (a playLand) Subject() ObjectID { return a.card }
func (a playLand) String() string    { return fmt.Sprintf("PlayLand(#%d)", a.card) }

type tapSymbol struct{ card ObjectID }

// TapSymbol taps a permanent as a {T} cost. The permanent must be untapped
// and free of summoning sickness.
func TapSymbol(id ObjectID) Action { return tapSymbol{card: id} }

func (a tapSymbol) Kind() rules.ActionKind { return rules.ActionTap }

func (a tapSymbol) Choices(s *State) []Binding {
	c, ok := s.presentCard(a.card)
	if !ok || !s.CanTap(c) {
		return nil
	}
	return single()
}

func (a tapSymbol) Do(s *State, _ Binding) Event {
	c := s.Card(a.card)
	if c.Tapped {
		panic(illegal("#%d is already tapped", a.card))
	}
	c.Tapped = true
	return Event{Source: a.card, Player: c.Controller()}
}

func (a tapSymbol) Subject() ObjectID { return a.card }
func (a tapSymbol) String() string    { return fmt.Sprintf("Tap(#%d)", a.card) }

type tapAny struct{ condition CardPredicate }

// TapAny taps any untapped permanent satisfying condition, chosen as the
// "card" parameter. Summoning sickness does not matter.
func TapAny(condition CardPredicate) Action { return tapAny{condition: condition} }

func (a tapAny) Kind() rules.ActionKind { return rules.ActionTap }

func (a tapAny) Choices(s *State) []Binding {
	var out []Binding
	for _, c := range s.Cards(zone.Battlefield(zone.AnyPlayer)) {
		if !c.Tapped && (a.condition == nil || a.condition(s, c)) {
			out = append(out, Binding{"card": c.id})
		}
	}
	return out
}

func (a tapAny) Do(s *State, b Binding) Event {
	id := cardParam(b, 0)
	c := s.Card(id)
	c.Tapped = true
	return Event{Source: id, Player: c.Controller()}
}

func (a tapAny) String() string { return "TapAny" }

type addMana struct {
	amount mana.Mana
	fn     func(s *State) mana.Mana
}

// AddMana adds a fixed amount of mana to the pool.
func AddMana(m mana.Mana) Action { return addMana{amount: m} }

// AddManaFunc adds mana computed from the state when the action is performed.
func AddManaFunc(fn func(s *State) mana.Mana) Action { return addMana{fn: fn} }

func (a addMana) Kind() rules.ActionKind   { return rules.ActionAddMana }
func (a addMana) Choices(*State) []Binding { return single() }

func (a addMana) Do(s *State, _ Binding) Event {
	m := a.amount
	if a.fn != nil {
		m = a.fn(s)
	}
	s.AddMana(m)
	return Event{}
}

func (a addMana) String() string {
	if a.fn != nil {
		return "AddMana(dynamic)"
	}
	return "AddMana" + a.amount.String()
}

type payMana struct{ amount mana.Mana }

// PayMana spends mana from the pool as part of a cost.
func PayMana(m mana.Mana) Action { return payMana{amount: m} }

func (a payMana) Kind() rules.ActionKind { return rules.ActionPayMana }

func (a payMana) Choices(s *State) []Binding {
	if !s.pool.CanPay(a.amount) {
		return nil
	}
	return single()
}

func (a payMana) Do(s *State, _ Binding) Event {
	rest, err := s.pool.Pay(a.amount)
	if err != nil {
		panic(illegal("pay %s: %v", a.amount, err))
	}
	s.pool = rest
	return Event{}
}

func (a payMana) String() string { return "Pay" + a.amount.String() }

type untap struct {
	card      ObjectID
	condition CardPredicate
}

// Untap untaps a tapped permanent.
func Untap(id ObjectID) Action { return untap{card: id} }

// UntapAny untaps any tapped permanent satisfying condition, chosen as the
// "card" parameter.
func UntapAny(condition CardPredicate) Action { return untap{condition: condition} }

func (a untap) Kind() rules.ActionKind { return rules.ActionUntap }

func (a untap) Choices(s *State) []Binding {
	if a.card != 0 {
		c, ok := s.presentCard(a.card)
		if !ok || c.zone.Kind != zone.KindBattlefield || !c.Tapped {
			return nil
		}
		return single()
	}
	var out []Binding
	for _, c := range s.Cards(zone.Battlefield(zone.AnyPlayer)) {
		if c.Tapped && (a.condition == nil || a.condition(s, c)) {
			out = append(out, Binding{"card": c.id})
		}
	}
	return out
}

func (a untap) Do(s *State, b Binding) Event {
	id := cardParam(b, a.card)
	c := s.Card(id)
	c.Tapped = false
	return Event{Source: id, Player: c.Controller()}
}

func (a untap) String() string {
	if a.card == 0 {
		return "UntapAny"
	}
	return fmt.Sprintf("Untap(#%d)", a.card)
}

type moveTo struct {
	from zone.Zone
	to   zone.Zone
}

// MoveTo moves the card given as the "card" parameter from a card in from to
// the zone to. An unset owner in to means the card's owner; ordered zones
// receive the card on top.
func MoveTo(from, to zone.Zone) Action { return moveTo{from: from, to: to} }

func (a moveTo) Kind() rules.ActionKind { return rules.ActionMove }

func (a moveTo) Choices(s *State) []Binding {
	var out []Binding
	for _, c := range s.Cards(a.from) {
		out = append(out, Binding{"card": c.id})
	}
	return out
}

func (a moveTo) Do(s *State, b Binding) Event {
	id := cardParam(b, 0)
	c := s.Card(id)
	dest := a.to
	if dest.Owner == zone.AnyPlayer {
		dest = dest.WithOwner(c.Owner)
	}
	if dest.Kind.Ordered() {
		dest = dest.At(s.nextPosition(dest.Base()))
	}
	s.SetZone(id, dest)
	return Event{Source: id, Player: c.Owner}
}

func (a moveTo) String() string { return fmt.Sprintf("MoveTo(%s)", a.to) }

type putOnBottom struct{}

// PutOnBottom puts the card given as the "card" parameter on the bottom of
// its owner's library.
func PutOnBottom() Action { return putOnBottom{} }

func (putOnBottom) Kind() rules.ActionKind { return rules.ActionMove }

func (putOnBottom) Choices(s *State) []Binding {
	var out []Binding
	for _, id := range sortedIDs(s.objects) {
		if c, ok := s.lookupCard(id); ok && c.zone.Located() {
			out = append(out, Binding{"card": id})
		}
	}
	return out
}

func (putOnBottom) Do(s *State, b Binding) Event {
	id := cardParam(b, 0)
	c := s.Card(id)
	library := zone.Library(c.Owner)
	for _, other := range s.InZone(library) {
		if other.ID() != id {
			s.SetZone(other.ID(), library.At(other.Zone().Position+1))
		}
	}
	s.SetZone(id, library.At(0))
	return Event{Source: id, Player: c.Owner}
}

func (putOnBottom) String() string { return "PutOnBottom" }

type castSpell struct{ card ObjectID }

// CastSpell pays a card's cost from the pool and puts it on the stack. The
// payment is the single canonical one; choices for the card's own effect
// are made now and kept until it resolves.
func CastSpell(id ObjectID) Action { return castSpell{card: id} }

func (a castSpell) Kind() rules.ActionKind { return rules.ActionCast }

func (a castSpell) Choices(s *State) []Binding {
	c, ok := s.presentCard(a.card)
	if !ok || c.zone.Kind != zone.KindHand || c.Controller() != s.ActivePlayer() {
		return nil
	}
	cost := c.def.cost
	if cost == nil || !s.pool.CanPay(*cost) {
		return nil
	}
	if s.Top() != nil && !s.HasType(c, TypeInstant) {
		return nil
	}
	if c.def.effect == nil {
		return []Binding{{"mana": *cost}}
	}
	var out []Binding
	for _, eb := range c.def.effect.Choices(s) {
		out = append(out, Binding{"mana": *cost, "effect": eb})
	}
	return out
}

func (a castSpell) Do(s *State, b Binding) Event {
	c := s.Card(a.card)
	payment, ok := b["mana"].(mana.Mana)
	if !ok {
		panic(illegal("cast of #%d without a payment", a.card))
	}
	rest, err := s.pool.Pay(payment)
	if err != nil {
		panic(illegal("cast of #%d: %v", a.card, err))
	}
	s.pool = rest
	s.Push(a.card)
	if eb, ok := b["effect"].(Binding); ok {
		c.chosen = eb
	}
	return Event{Source: a.card, Cause: a.card, Player: c.Owner}
}

func (a castSpell) Subject() ObjectID { return a.card }
func (a castSpell) String() string    { return fmt.Sprintf("Cast(#%d)", a.card) }

type activate struct {
	card    ObjectID
	ability int
}

// Activate activates the index-th activated ability of a permanent: the cost
// is paid, then the effect happens or goes on the stack.
func Activate(id ObjectID, index int) Action { return activate{card: id, ability: index} }

func (a activate) Kind() rules.ActionKind { return rules.ActionActivate }

func (a activate) find(s *State) (*Card, ActivatedAbility, bool) {
	c, ok := s.presentCard(a.card)
	if !ok || c.zone.Kind != zone.KindBattlefield {
		return nil, ActivatedAbility{}, false
	}
	abilities := s.Abilities(c)
	if a.ability < 0 || a.ability >= len(abilities) {
		return nil, ActivatedAbility{}, false
	}
	return c, abilities[a.ability], true
}

func (a activate) Choices(s *State) []Binding {
	c, ability, ok := a.find(s)
	if !ok || c.Controller() != s.ActivePlayer() {
		return nil
	}
	costs := ability.Cost.Choices(s)
	if len(costs) == 0 {
		return nil
	}
	effects := ability.Effect.Choices(s)
	out := make([]Binding, 0, len(costs)*len(effects))
	for _, cb := range costs {
		for _, eb := range effects {
			out = append(out, Binding{"cost": cb, "effect": eb})
		}
	}
	return out
}

func (a activate) Do(s *State, b Binding) Event {
	c, ability, ok := a.find(s)
	if !ok {
		panic(illegal("#%d has no ability %d", a.card, a.ability))
	}
	cb, _ := b["cost"].(Binding)
	eb, _ := b["effect"].(Binding)
	s.perform(ability.Cost, cb)
	if ability.UsesStack {
		ab := newStackAbility(s, a.card, c.Name()+" ability", Bind(ability.Effect, eb))
		s.Push(ab.id)
	} else {
		s.perform(ability.Effect, eb)
	}
	return Event{Source: a.card, Player: c.Controller()}
}

func (a activate) Subject() ObjectID { return a.card }
func (a activate) String() string    { return fmt.Sprintf("Activate(#%d/%d)", a.card, a.ability) }

type endTurn struct{}

// EndTurn empties the pool and passes the turn: the next player becomes
// active, their permanents untap and lose summoning sickness, and the land
// drop is restored.
func EndTurn() Action { return endTurn{} }

func (endTurn) Kind() rules.ActionKind   { return rules.ActionEndTurn }
func (endTurn) Choices(*State) []Binding { return single() }

func (endTurn) Do(s *State, _ Binding) Event {
	s.pool = mana.Mana{}
	s.turn = s.turn.Next(len(s.players))
	active := s.ActivePlayer()
	for _, c := range s.Cards(zone.Battlefield(active)) {
		c.Tapped = false
		delete(s.sick, c.id)
	}
	return Event{Player: active}
}

func (endTurn) String() string { return "EndTurn" }

type addCounter struct {
	card   ObjectID
	name   counters.CounterType
	amount int
}

// AddCounter puts counters on a permanent.
func AddCounter(id ObjectID, name counters.CounterType, amount int) Action {
	return addCounter{card: id, name: name, amount: amount}
}

func (a addCounter) Kind() rules.ActionKind { return rules.ActionAddCounter }

func (a addCounter) Choices(s *State) []Binding {
	c, ok := s.presentCard(a.card)
	if !ok || c.zone.Kind != zone.KindBattlefield {
		return nil
	}
	return single()
}

func (a addCounter) Do(s *State, _ Binding) Event {
	c := s.Card(a.card)
	c.Counters.Add(a.name, a.amount)
	return Event{Source: a.card, Player: c.Controller()}
}

func (a addCounter) String() string {
	return fmt.Sprintf("AddCounter(#%d, %s x%d)", a.card, a.name, a.amount)
}

// cleanup removes a resolved stack ability.
type cleanup struct{ id ObjectID }

func (a cleanup) Kind() rules.ActionKind   { return rules.ActionResolve }
func (a cleanup) Choices(*State) []Binding { return single() }

func (a cleanup) Do(s *State, _ Binding) Event {
	s.Remove(a.id)
	return Event{}
}

func (a cleanup) String() string { return fmt.Sprintf("Cleanup(#%d)", a.id) }

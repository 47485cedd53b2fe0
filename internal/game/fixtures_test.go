package game

import (
	"github.com/magefree/mage-reach/internal/game/mana"
	"github.com/magefree/mage-reach/internal/game/rules"
	"github.com/magefree/mage-reach/internal/game/zone"
)

func testForest(s *State, owner Player) *Card {
	c := NewCard(s, owner, "Forest", CardSpec{
		Types:    []CardType{TypeBasic, TypeLand},
		Subtypes: []string{"Forest"},
	})
	c.Activated(TapSymbol(c.ID()), AddMana(mana.Mana{Green: 1}), false)
	return c
}

func testIsland(s *State, owner Player) *Card {
	c := NewCard(s, owner, "Island", CardSpec{
		Types:    []CardType{TypeBasic, TypeLand},
		Subtypes: []string{"Island"},
	})
	c.Activated(TapSymbol(c.ID()), AddMana(mana.Mana{Blue: 1}), false)
	return c
}

func testElf(s *State, owner Player) *Card {
	cost := mana.MustParseCost("{G}")
	c := NewCard(s, owner, "Llanowar Elves", CardSpec{
		Cost:     &cost,
		Types:    []CardType{TypeCreature},
		Subtypes: []string{"Elf", "Druid"},
		Stats:    &Stats{Power: 1, Toughness: 1},
	})
	c.Activated(TapSymbol(c.ID()), AddMana(mana.Mana{Green: 1}), false)
	return c
}

// testLord gives other elves +1/+1.
func testLord(s *State, owner Player) *Card {
	c := NewCard(s, owner, "Elf Lord", CardSpec{
		Types:    []CardType{TypeCreature},
		Subtypes: []string{"Elf"},
		Stats:    &Stats{Power: 2, Toughness: 2},
	})
	otherElf := func(s *State, source, affected *Card) bool {
		return affected.ID() != source.ID() && s.HasSubtype(affected, "elf")
	}
	plusOne := func(_ *State, _, _ *Card, base int) int { return base + 1 }
	c.StaticInt(PropPower, otherElf, plusOne)
	c.StaticInt(PropToughness, otherElf, plusOne)
	return c
}

// testOmens draws a card when it enters the battlefield.
func testOmens(s *State, owner Player) *Card {
	cost := mana.MustParseCost("{1}{W}")
	c := NewCard(s, owner, "Wall of Omens", CardSpec{
		Cost:     &cost,
		Types:    []CardType{TypeCreature},
		Subtypes: []string{"Wall"},
		Stats:    &Stats{Power: 0, Toughness: 4},
	})
	id := c.ID()
	c.Triggered(rules.ActionPlay, func(_ *State, ev Event) bool { return ev.Source == id }, Draw(ControllerOf(id)))
	return c
}

// testWatcher adds one mana of color whenever any card enters the battlefield.
func testWatcher(s *State, owner Player, color mana.ManaType, opts ...TriggerOption) *Card {
	c := NewCard(s, owner, "Watcher", CardSpec{Types: []CardType{TypeEnchantment}})
	c.Triggered(rules.ActionPlay, nil, AddMana(mana.Of(color, 1)), opts...)
	return c
}

func place(s *State, c *Card, z zone.Zone) *Card {
	s.SetZone(c.ID(), z)
	return c
}

// library fills a library with n cards built by mk, bottom first.
func library(s *State, owner Player, n int, mk func(*State, Player) *Card) []*Card {
	cards := make([]*Card, n)
	for i := range cards {
		cards[i] = place(s, mk(s, owner), zone.Library(owner).At(i))
	}
	return cards
}

type staleAction struct{ id ObjectID }

func (staleAction) Kind() rules.ActionKind   { return rules.ActionNoop }
func (staleAction) Choices(*State) []Binding { return single() }

func (a staleAction) Do(s *State, _ Binding) Event {
	s.Card(a.id)
	return Event{}
}

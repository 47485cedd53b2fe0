package catalog

import (
	"github.com/magefree/mage-reach/internal/game"
	"github.com/magefree/mage-reach/internal/game/counters"
	"github.com/magefree/mage-reach/internal/game/mana"
	"github.com/magefree/mage-reach/internal/game/rules"
	"github.com/magefree/mage-reach/internal/game/zone"
)

func cost(symbols string) *mana.Mana {
	m := mana.MustParseCost(symbols)
	return &m
}

func creature(power, toughness int) *game.Stats {
	return &game.Stats{Power: power, Toughness: toughness}
}

// tapFor gives c the ability "{T}: Add m."
func tapFor(c *game.Card, m mana.Mana) *game.Card {
	return c.Activated(game.TapSymbol(c.ID()), game.AddMana(m), false)
}

// controlled counts the battlefield cards of c's controller matching pred.
func controlled(s *game.State, c *game.Card, pred game.CardPredicate) int {
	return len(s.CardsWhere(zone.Battlefield(c.Controller()), pred))
}

func isWall(s *game.State, c *game.Card) bool     { return s.HasSubtype(c, "wall") }
func isElf(s *game.State, c *game.Card) bool      { return s.HasSubtype(c, "elf") }
func isCreature(s *game.State, c *game.Card) bool { return s.HasType(c, game.TypeCreature) }
func isBasic(s *game.State, c *game.Card) bool {
	return s.HasType(c, game.TypeBasic) && s.HasType(c, game.TypeLand)
}

func basicLand(s *game.State, owner game.Player, name, subtype string, m mana.Mana) *game.Card {
	c := game.NewCard(s, owner, name, game.CardSpec{
		Types:    []game.CardType{game.TypeBasic, game.TypeLand},
		Subtypes: []string{subtype},
	})
	return tapFor(c, m)
}

func Forest(s *game.State, owner game.Player) *game.Card {
	return basicLand(s, owner, "Forest", "Forest", mana.Mana{Green: 1})
}

func Island(s *game.State, owner game.Player) *game.Card {
	return basicLand(s, owner, "Island", "Island", mana.Mana{Blue: 1})
}

func Plains(s *game.State, owner game.Player) *game.Card {
	return basicLand(s, owner, "Plains", "Plains", mana.Mana{White: 1})
}

func LlanowarElves(s *game.State, owner game.Player) *game.Card {
	c := game.NewCard(s, owner, "Llanowar Elves", game.CardSpec{
		Cost:     cost("{G}"),
		Types:    []game.CardType{game.TypeCreature},
		Subtypes: []string{"Elf", "Druid"},
		Stats:    creature(1, 1),
	})
	return tapFor(c, mana.Mana{Green: 1})
}

// ElvishArchdruid: other elves you control get +1/+1, and it taps for {G}
// per elf you control.
func ElvishArchdruid(s *game.State, owner game.Player) *game.Card {
	c := game.NewCard(s, owner, "Elvish Archdruid", game.CardSpec{
		Cost:     cost("{1}{G}{G}"),
		Types:    []game.CardType{game.TypeCreature},
		Subtypes: []string{"Elf", "Druid"},
		Stats:    creature(2, 2),
	})
	id := c.ID()
	otherElf := func(s *game.State, source, affected *game.Card) bool {
		return affected.ID() != source.ID() && affected.Controller() == source.Controller() && isElf(s, affected)
	}
	plusOne := func(_ *game.State, _, _ *game.Card, base int) int { return base + 1 }
	c.StaticInt(game.PropPower, otherElf, plusOne)
	c.StaticInt(game.PropToughness, otherElf, plusOne)
	c.Activated(game.TapSymbol(id), game.AddManaFunc(func(s *game.State) mana.Mana {
		return mana.Mana{Green: 1}.Scale(controlled(s, s.Card(id), isElf))
	}), false)
	return c
}

func VineTrellis(s *game.State, owner game.Player) *game.Card {
	c := game.NewCard(s, owner, "Vine Trellis", game.CardSpec{
		Cost:     cost("{1}{G}"),
		Types:    []game.CardType{game.TypeCreature},
		Subtypes: []string{"Plant", "Wall"},
		Stats:    creature(0, 4),
	})
	return tapFor(c, mana.Mana{Green: 1})
}

// WallOfOmens draws its controller a card when it enters the battlefield.
func WallOfOmens(s *game.State, owner game.Player) *game.Card {
	c := game.NewCard(s, owner, "Wall of Omens", game.CardSpec{
		Cost:     cost("{1}{W}"),
		Types:    []game.CardType{game.TypeCreature},
		Subtypes: []string{"Wall"},
		Stats:    creature(0, 4),
	})
	id := c.ID()
	c.Triggered(rules.ActionPlay,
		func(_ *game.State, ev game.Event) bool { return ev.Source == id },
		game.Draw(game.ControllerOf(id)))
	return c
}

// OvergrownBattlement taps for {G} per wall you control.
func OvergrownBattlement(s *game.State, owner game.Player) *game.Card {
	c := game.NewCard(s, owner, "Overgrown Battlement", game.CardSpec{
		Cost:     cost("{1}{G}"),
		Types:    []game.CardType{game.TypeCreature},
		Subtypes: []string{"Wall"},
		Stats:    creature(0, 4),
	})
	id := c.ID()
	c.Activated(game.TapSymbol(id), game.AddManaFunc(func(s *game.State) mana.Mana {
		return mana.Mana{Green: 1}.Scale(controlled(s, s.Card(id), isWall))
	}), false)
	return c
}

// AxebaneGuardian taps for one mana of any colour per wall you control.
func AxebaneGuardian(s *game.State, owner game.Player) *game.Card {
	c := game.NewCard(s, owner, "Axebane Guardian", game.CardSpec{
		Cost:     cost("{2}{G}"),
		Types:    []game.CardType{game.TypeCreature},
		Subtypes: []string{"Human", "Druid"},
		Stats:    creature(0, 3),
	})
	id := c.ID()
	c.Activated(game.TapSymbol(id), game.AddManaFunc(func(s *game.State) mana.Mana {
		return mana.Mana{Any: 1}.Scale(controlled(s, s.Card(id), isWall))
	}), false)
	return c
}

// WallOfRoots adds {G} for a -0/-1 counter. It needs no tap, so it works the
// turn it comes down.
func WallOfRoots(s *game.State, owner game.Player) *game.Card {
	c := game.NewCard(s, owner, "Wall of Roots", game.CardSpec{
		Cost:     cost("{1}{G}"),
		Types:    []game.CardType{game.TypeCreature},
		Subtypes: []string{"Plant", "Wall"},
		Stats:    creature(0, 5),
	})
	c.Activated(game.AddCounter(c.ID(), counters.CounterTypeM0M1, 1), game.AddMana(mana.Mana{Green: 1}), false)
	return c
}

// SaruliCaretaker taps itself and another untapped creature you control for
// one mana of any colour.
func SaruliCaretaker(s *game.State, owner game.Player) *game.Card {
	c := game.NewCard(s, owner, "Saruli Caretaker", game.CardSpec{
		Cost:     cost("{G}"),
		Types:    []game.CardType{game.TypeCreature},
		Subtypes: []string{"Dryad", "Wall"},
		Stats:    creature(0, 3),
	})
	id := c.ID()
	other := func(s *game.State, target *game.Card) bool {
		return target.ID() != id && target.Controller() == s.Card(id).Controller() && isCreature(s, target)
	}
	c.Activated(game.All(game.TapSymbol(id), game.TapAny(other)), game.AddMana(mana.Mana{Any: 1}), false)
	return c
}

func SylvanCaryatid(s *game.State, owner game.Player) *game.Card {
	c := game.NewCard(s, owner, "Sylvan Caryatid", game.CardSpec{
		Cost:     cost("{1}{G}"),
		Types:    []game.CardType{game.TypeCreature},
		Subtypes: []string{"Plant"},
		Stats:    creature(0, 3),
	})
	return tapFor(c, mana.Mana{Any: 1})
}

// ExplosiveVegetation searches its owner's library for up to two basic
// lands and puts them onto the battlefield tapped.
func ExplosiveVegetation(s *game.State, owner game.Player) *game.Card {
	c := game.NewCard(s, owner, "Explosive Vegetation", game.CardSpec{
		Cost:  cost("{3}{G}"),
		Types: []game.CardType{game.TypeSorcery},
	})
	return c.WithEffect(game.Search(zone.Library(owner), isBasic, 2, game.ToBattlefield(true), nil))
}

// StaffOfDomination untaps itself for {1} and untaps a creature for {2}{T}.
// With enough mana from walls the two loop.
func StaffOfDomination(s *game.State, owner game.Player) *game.Card {
	c := game.NewCard(s, owner, "Staff of Domination", game.CardSpec{
		Cost:  cost("{3}"),
		Types: []game.CardType{game.TypeArtifact},
	})
	id := c.ID()
	c.Activated(game.PayMana(*cost("{1}")), game.Untap(id), true)
	c.Activated(
		game.All(game.PayMana(*cost("{2}")), game.TapSymbol(id)),
		game.UntapAny(isCreature),
		true)
	return c
}

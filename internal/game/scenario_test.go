package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magefree/mage-reach/internal/game/mana"
	"github.com/magefree/mage-reach/internal/game/zone"
)

func only(t *testing.T, s *State, a Action) Binding {
	t.Helper()
	choices := a.Choices(s)
	if len(choices) != 1 {
		t.Fatalf("%s: expected exactly one choice, got %d", Describe(a), len(choices))
	}
	return choices[0]
}

func TestTapForestForMana(t *testing.T) {
	s := NewState(0)
	forest := place(s, testForest(s, 0), zone.Battlefield(0))

	tap := Activate(forest.ID(), 0)
	next, err := s.TakeAction(tap, only(t, s, tap))
	require.NoError(t, err)

	assert.Equal(t, mana.Mana{Green: 1}, next.Pool())
	assert.True(t, next.Card(forest.ID()).Tapped)
	assert.Empty(t, tap.Choices(next), "a tapped land cannot be tapped again")
}

func TestLandDropResetsAtEndOfTurn(t *testing.T) {
	s := NewState(0)
	first := place(s, testForest(s, 0), zone.Hand(0))
	second := place(s, testIsland(s, 0), zone.Hand(0))

	played, err := s.TakeAction(PlayLand(first.ID()), nil)
	require.NoError(t, err)
	assert.Equal(t, zone.Battlefield(0), played.Card(first.ID()).Zone())
	assert.Empty(t, PlayLand(second.ID()).Choices(played), "one land per turn")

	tap := Activate(first.ID(), 0)
	tapped, err := played.TakeAction(tap, only(t, played, tap))
	require.NoError(t, err)
	require.True(t, tapped.Card(first.ID()).Tapped)

	next, err := tapped.TakeAction(EndTurn(), nil)
	require.NoError(t, err)
	assert.False(t, next.Card(first.ID()).Tapped)
	assert.True(t, next.Pool().IsZero())
	assert.Equal(t, 2, next.Turn().Number)
	assert.Len(t, PlayLand(second.ID()).Choices(next), 1)
}

func TestSummoningSickness(t *testing.T) {
	s := NewState(0)
	elf := place(s, testElf(s, 0), zone.Hand(0))

	entered, err := s.TakeAction(PutOntoBattlefield(elf.ID()), nil)
	require.NoError(t, err)
	assert.True(t, entered.SummoningSick(elf.ID()))
	assert.Empty(t, Activate(elf.ID(), 0).Choices(entered))

	next, err := entered.TakeAction(EndTurn(), nil)
	require.NoError(t, err)
	assert.False(t, next.SummoningSick(elf.ID()))
	assert.Len(t, Activate(elf.ID(), 0).Choices(next), 1)
}

func TestSearchEnumeratesSubsets(t *testing.T) {
	s := NewState(0)
	for i := 0; i < 10; i++ {
		mk := testElf
		if i%3 == 0 && i > 0 {
			mk = testForest
		}
		place(s, mk(s, 0), zone.Library(0).At(i))
	}
	basics := func(s *State, c *Card) bool { return s.HasType(c, TypeBasic) }
	tutor := Search(zone.Library(0), basics, 2, ToBattlefield(true), nil)

	choices := tutor.Choices(s)
	require.Len(t, choices, 7)
	sizes := make([]int, len(choices))
	for i, c := range choices {
		sizes[i] = len(c["cards"].([]ObjectID))
	}
	assert.Equal(t, []int{2, 2, 2, 1, 1, 1, 0}, sizes)

	next, err := s.TakeAction(tutor, choices[0])
	require.NoError(t, err)
	lands := next.Cards(zone.Battlefield(0))
	require.Len(t, lands, 2)
	for _, c := range lands {
		assert.True(t, c.Tapped)
	}
	assert.Len(t, next.Cards(zone.Library(0)), 8)
}

func TestSearchRoutesTheRest(t *testing.T) {
	s := NewState(0)
	library(s, 0, 4, testForest)
	all := func(*State, *Card) bool { return true }
	tutor := Search(zone.Library(0), all, 1, MoveTo(zone.Anywhere(), zone.Hand(zone.AnyPlayer)), PutOnBottom())

	choices := tutor.Choices(s)
	require.Len(t, choices, 5)
	next, err := s.TakeAction(tutor, choices[0])
	require.NoError(t, err)
	assert.Len(t, next.Cards(zone.Hand(0)), 1)
	assert.Len(t, next.Cards(zone.Library(0)), 3)
}

func TestCastCreatureResolves(t *testing.T) {
	s := NewState(0)
	library(s, 0, 3, testForest)
	walls := place(s, testOmens(s, 0), zone.Hand(0))
	s.AddMana(mana.MustParseCost("{1}{W}"))

	cast := CastSpell(walls.ID())
	onStack, err := s.TakeAction(cast, only(t, s, cast))
	require.NoError(t, err)
	assert.True(t, onStack.Pool().IsZero())
	require.Equal(t, walls.ID(), onStack.Top().ID())

	settled, err := onStack.Settle()
	require.NoError(t, err)
	assert.Equal(t, zone.Battlefield(0), settled.Card(walls.ID()).Zone())
	assert.True(t, settled.SummoningSick(walls.ID()))
	assert.Len(t, settled.Cards(zone.Hand(0)), 1, "the wall drew a card")
	assert.Len(t, settled.Cards(zone.Library(0)), 2)
}

func TestSorceryWithSearchEffect(t *testing.T) {
	s := NewState(0)
	for i := 0; i < 3; i++ {
		place(s, testForest(s, 0), zone.Library(0).At(i))
	}
	cost := mana.MustParseCost("{3}{G}")
	veg := NewCard(s, 0, "Explosive Vegetation", CardSpec{Cost: &cost, Types: []CardType{TypeSorcery}})
	veg.WithEffect(Search(zone.Library(zone.AnyPlayer),
		func(s *State, c *Card) bool { return s.HasType(c, TypeBasic) },
		2, ToBattlefield(true), nil))
	place(s, veg, zone.Hand(0))
	s.AddMana(mana.Mana{Green: 4})

	cast := CastSpell(veg.ID())
	choices := cast.Choices(s)
	require.Len(t, choices, 7, "three subsets of two, three of one and none")

	onStack, err := s.TakeAction(cast, choices[0])
	require.NoError(t, err)
	settled, err := onStack.Settle()
	require.NoError(t, err)

	assert.Equal(t, zone.Graveyard(0), settled.Card(veg.ID()).Zone())
	assert.Len(t, settled.Cards(zone.Battlefield(0)), 2)
	assert.Len(t, settled.Cards(zone.Library(0)), 1)
}

func TestNonInstantNeedsEmptyStack(t *testing.T) {
	s := NewState(0)
	elf := place(s, testElf(s, 0), zone.Hand(0))
	land := place(s, testForest(s, 0), zone.Hand(0))
	s.AddMana(mana.Mana{Green: 1})
	ab := newStackAbility(s, 0, "pending", Noop())
	s.Push(ab.ID())

	assert.Empty(t, CastSpell(elf.ID()).Choices(s))
	assert.Empty(t, PlayLand(land.ID()).Choices(s))
}

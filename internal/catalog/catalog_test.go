package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magefree/mage-reach/internal/game"
	"github.com/magefree/mage-reach/internal/game/mana"
	"github.com/magefree/mage-reach/internal/game/zone"
)

// onBattlefield puts fresh copies onto owner 0's battlefield and passes the
// turn so none of them is summoning sick.
func onBattlefield(t *testing.T, ctors ...Constructor) (*game.State, []*game.Card) {
	t.Helper()
	s := game.NewState(0)
	cards := make([]*game.Card, len(ctors))
	for i, ctor := range ctors {
		cards[i] = ctor(s, 0)
		s.SetZone(cards[i].ID(), zone.Battlefield(0))
	}
	next, err := s.TakeAction(game.EndTurn(), nil)
	require.NoError(t, err)
	return next, cards
}

func activate(t *testing.T, s *game.State, c *game.Card, index int) *game.State {
	t.Helper()
	a := game.Activate(c.ID(), index)
	choices := a.Choices(s)
	require.NotEmpty(t, choices, "%s has no choices", game.Describe(a))
	next, err := s.TakeAction(a, choices[0])
	require.NoError(t, err)
	next, err = next.Settle()
	require.NoError(t, err)
	return next
}

func TestRegistry(t *testing.T) {
	r := Default()
	ctor, err := r.Lookup("overgrown battlement")
	require.NoError(t, err)
	s := game.NewState(0)
	assert.Equal(t, "Overgrown Battlement", ctor(s, 0).Name())

	_, err = r.Lookup("Black Lotus")
	assert.ErrorIs(t, err, ErrUnknownCard)

	err = r.Register("FOREST", Forest)
	assert.ErrorIs(t, err, ErrDuplicateCard)

	names := r.Names()
	assert.Len(t, names, 14)
	assert.Equal(t, "Axebane Guardian", names[0])
}

func TestResolveDeckList(t *testing.T) {
	r := Default()
	ctors, err := r.Resolve([]DeckEntry{{Name: "Forest", Count: 3}, {Name: "Wall of Roots", Count: 1}})
	require.NoError(t, err)
	assert.Len(t, ctors, 4)

	_, err = r.Resolve([]DeckEntry{{Name: "Nope", Count: 1}})
	assert.ErrorIs(t, err, ErrUnknownCard)

	_, err = r.Resolve([]DeckEntry{{Name: "Forest", Count: -1}})
	assert.Error(t, err)
}

func TestBuildLibraryOrder(t *testing.T) {
	s := game.NewState(0)
	cards := BuildLibrary(s, []Constructor{Forest, Island, Plains}, 0, nil)

	library := s.Cards(zone.Library(0))
	require.Len(t, library, 3)
	for i := range cards {
		assert.Equal(t, cards[i].ID(), library[i].ID())
	}
	assert.Equal(t, "Plains", library[2].Name(), "the last constructor is on top")

	next, err := s.TakeAction(game.DrawFor(0), nil)
	require.NoError(t, err)
	hand := next.Cards(zone.Hand(0))
	require.Len(t, hand, 1)
	assert.Equal(t, "Plains", hand[0].Name())
}

func TestBuildLibraryShuffleIsSeeded(t *testing.T) {
	ctors, err := Default().Resolve([]DeckEntry{
		{Name: "Forest", Count: 5},
		{Name: "Island", Count: 5},
		{Name: "Wall of Roots", Count: 5},
	})
	require.NoError(t, err)

	names := func(seed uint64) []string {
		s := game.NewState(0)
		var out []string
		for _, c := range BuildLibrary(s, ctors, 0, NewRand(seed)) {
			out = append(out, c.Name())
		}
		return out
	}
	assert.Equal(t, names(7), names(7))
	assert.Len(t, names(7), 15)
}

func TestPutInHand(t *testing.T) {
	s := game.NewState(0)
	PutInHand(s, []Constructor{Forest, LlanowarElves}, 0)
	assert.Len(t, s.Cards(zone.Hand(0)), 2)
}

func TestBasicLandsTapForTheirColour(t *testing.T) {
	for _, tc := range []struct {
		ctor Constructor
		want mana.Mana
	}{
		{Forest, mana.Mana{Green: 1}},
		{Island, mana.Mana{Blue: 1}},
		{Plains, mana.Mana{White: 1}},
	} {
		s, cards := onBattlefield(t, tc.ctor)
		next := activate(t, s, cards[0], 0)
		assert.Equal(t, tc.want, next.Pool(), cards[0].Name())
	}
}

func TestWallOfRootsDiesAfterFiveActivations(t *testing.T) {
	s := game.NewState(0)
	wall := WallOfRoots(s, 0)
	s.SetZone(wall.ID(), zone.Battlefield(0))
	require.True(t, s.SummoningSick(wall.ID()))

	for i := 0; i < 5; i++ {
		s = activate(t, s, wall, 0)
	}
	assert.Equal(t, 5, s.Pool().Green)
	assert.Equal(t, zone.Graveyard(0), s.Card(wall.ID()).Zone())
	assert.Empty(t, game.Activate(wall.ID(), 0).Choices(s))
}

func TestOvergrownBattlementCountsWalls(t *testing.T) {
	s, cards := onBattlefield(t, OvergrownBattlement, VineTrellis, WallOfRoots, Forest)
	next := activate(t, s, cards[0], 0)
	assert.Equal(t, mana.Mana{Green: 3}, next.Pool())
}

func TestAxebaneGuardianMakesAnyColour(t *testing.T) {
	s, cards := onBattlefield(t, AxebaneGuardian, VineTrellis, OvergrownBattlement)
	next := activate(t, s, cards[0], 0)
	assert.Equal(t, mana.Mana{Any: 2}, next.Pool())
	assert.True(t, next.Pool().CanPay(mana.MustParseCost("{W}{U}")))
}

func TestSaruliCaretakerNeedsAnotherCreature(t *testing.T) {
	s, cards := onBattlefield(t, SaruliCaretaker)
	assert.Empty(t, game.Activate(cards[0].ID(), 0).Choices(s))

	s, cards = onBattlefield(t, SaruliCaretaker, LlanowarElves, Forest)
	choices := game.Activate(cards[0].ID(), 0).Choices(s)
	require.Len(t, choices, 1, "only the elf can be tapped alongside")
	next := activate(t, s, cards[0], 0)
	assert.True(t, next.Card(cards[0].ID()).Tapped)
	assert.True(t, next.Card(cards[1].ID()).Tapped)
	assert.False(t, next.Card(cards[2].ID()).Tapped)
	assert.Equal(t, mana.Mana{Any: 1}, next.Pool())
}

func TestElvishArchdruid(t *testing.T) {
	s, cards := onBattlefield(t, ElvishArchdruid, LlanowarElves, LlanowarElves)
	power, _ := s.Power(cards[1])
	assert.Equal(t, 2, power)
	power, _ = s.Power(cards[0])
	assert.Equal(t, 2, power)

	next := activate(t, s, cards[0], 0)
	assert.Equal(t, mana.Mana{Green: 3}, next.Pool())
}

func TestWallOfOmensDraws(t *testing.T) {
	s := game.NewState(0)
	BuildLibrary(s, []Constructor{Forest, Island}, 0, nil)
	omens := PutInHand(s, []Constructor{WallOfOmens}, 0)[0]
	s.AddMana(mana.Mana{White: 1, Green: 1})

	cast := game.CastSpell(omens.ID())
	next, err := s.TakeAction(cast, cast.Choices(s)[0])
	require.NoError(t, err)
	next, err = next.Settle()
	require.NoError(t, err)

	hand := next.Cards(zone.Hand(0))
	require.Len(t, hand, 1)
	assert.Equal(t, "Island", hand[0].Name())
}

func TestExplosiveVegetation(t *testing.T) {
	s := game.NewState(0)
	BuildLibrary(s, []Constructor{Forest, WallOfRoots, Island, Plains}, 0, nil)
	veg := PutInHand(s, []Constructor{ExplosiveVegetation}, 0)[0]
	s.AddMana(mana.Mana{Green: 4})

	cast := game.CastSpell(veg.ID())
	choices := cast.Choices(s)
	require.Len(t, choices, 7)
	next, err := s.TakeAction(cast, choices[0])
	require.NoError(t, err)
	next, err = next.Settle()
	require.NoError(t, err)

	lands := next.Cards(zone.Battlefield(0))
	require.Len(t, lands, 2)
	for _, land := range lands {
		assert.True(t, land.Tapped)
	}
	assert.Len(t, next.Cards(zone.Library(0)), 2)
	assert.Equal(t, zone.Graveyard(0), next.Card(veg.ID()).Zone())
}

func TestStaffOfDominationUntaps(t *testing.T) {
	s, cards := onBattlefield(t, StaffOfDomination, OvergrownBattlement)
	staff, battlement := cards[0], cards[1]
	s = activate(t, s, battlement, 0)
	s.AddMana(mana.Mana{Generic: 2})
	require.Equal(t, 3, s.Pool().Value())

	s = activate(t, s, staff, 1)
	assert.False(t, s.Card(battlement.ID()).Tapped)
	assert.True(t, s.Card(staff.ID()).Tapped)
	assert.Equal(t, 1, s.Pool().Value())

	s = activate(t, s, staff, 0)
	assert.False(t, s.Card(staff.ID()).Tapped)
	assert.True(t, s.Pool().IsZero())
}

func TestStaffVictory(t *testing.T) {
	s, _ := onBattlefield(t, StaffOfDomination, OvergrownBattlement,
		VineTrellis, VineTrellis, WallOfRoots, WallOfOmens)
	assert.True(t, StaffVictory(s))

	s, _ = onBattlefield(t, OvergrownBattlement, VineTrellis, VineTrellis, WallOfRoots, WallOfOmens)
	assert.False(t, StaffVictory(s), "no staff")

	s, _ = onBattlefield(t, StaffOfDomination, OvergrownBattlement, VineTrellis)
	assert.False(t, StaffVictory(s), "too few walls")

	sick := game.NewState(0)
	for _, ctor := range []Constructor{StaffOfDomination, AxebaneGuardian, VineTrellis, VineTrellis, VineTrellis, VineTrellis, VineTrellis} {
		sick.SetZone(ctor(sick, 0).ID(), zone.Battlefield(0))
	}
	assert.False(t, StaffVictory(sick), "the engine is summoning sick")
}

func TestParseGoal(t *testing.T) {
	s := game.NewState(0)
	s.AddMana(mana.Mana{Green: 3})
	place := func(ctor Constructor) { s.SetZone(ctor(s, 0).ID(), zone.Battlefield(0)) }
	place(Forest)
	place(Forest)

	tests := []struct {
		desc string
		want bool
	}{
		{"mana:{G}{G}{G}", true},
		{"mana:{G}{G}{G}{G}", false},
		{"permanents:2", true},
		{"Permanents:3", false},
		{"staff", false},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			goal, err := ParseGoal(tt.desc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, goal(s))
		})
	}

	_, err := ParseGoal("life:20")
	assert.ErrorIs(t, err, ErrUnknownGoal)
	_, err = ParseGoal("permanents:many")
	assert.Error(t, err)
	for _, empty := range []string{"mana:", "mana", "mana:{0}"} {
		_, err = ParseGoal(empty)
		assert.Error(t, err, "%q would hold in every state", empty)
	}
}

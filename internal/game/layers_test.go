package game

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magefree/mage-reach/internal/game/mana"
	"github.com/magefree/mage-reach/internal/game/zone"
)

func TestLordBuffsOtherElves(t *testing.T) {
	s := NewState(0)
	lord := place(s, testLord(s, 0), zone.Battlefield(0))
	elf := place(s, testElf(s, 0), zone.Battlefield(0))

	power, ok := s.Power(elf)
	require.True(t, ok)
	assert.Equal(t, 2, power)
	toughness, _ := s.Toughness(elf)
	assert.Equal(t, 2, toughness)

	power, _ = s.Power(lord)
	assert.Equal(t, 2, power, "the lord does not buff itself")

	s.SetZone(lord.ID(), zone.Graveyard(0))
	power, _ = s.Power(elf)
	assert.Equal(t, 1, power)
}

func TestStaticAffectsBattlefieldOnly(t *testing.T) {
	s := NewState(0)
	place(s, testLord(s, 0), zone.Battlefield(0))
	elf := place(s, testElf(s, 0), zone.Hand(0))

	power, _ := s.Power(elf)
	assert.Equal(t, 1, power)
}

func TestPowerWithoutStats(t *testing.T) {
	s := NewState(0)
	land := place(s, testForest(s, 0), zone.Battlefield(0))
	_, ok := s.Power(land)
	assert.False(t, ok)
	_, ok = s.Toughness(land)
	assert.False(t, ok)
}

func TestCountersApplyBeforeStatics(t *testing.T) {
	s := NewState(0)
	place(s, testLord(s, 0), zone.Battlefield(0))
	elf := place(s, testElf(s, 0), zone.Battlefield(0))
	elf.Counters.Add("+1/+1", 2)

	power, _ := s.Power(elf)
	assert.Equal(t, 4, power)
}

func TestSelfReferentialStaticUsesBaseValue(t *testing.T) {
	s := NewState(0)
	anthem := NewCard(s, 0, "Rich Get Richer", CardSpec{Types: []CardType{TypeEnchantment}})
	// Creatures with power 1 or more get +1/+0; the condition reads the
	// property it modifies.
	anthem.StaticInt(PropPower,
		func(s *State, _, affected *Card) bool {
			p, _ := s.Power(affected)
			return p >= 1
		},
		func(_ *State, _, _ *Card, base int) int { return base + 1 })
	place(s, anthem, zone.Battlefield(0))
	elf := place(s, testElf(s, 0), zone.Battlefield(0))

	power, _ := s.Power(elf)
	assert.Equal(t, 2, power)
}

func TestStaticTypesAndSubtypes(t *testing.T) {
	s := NewState(0)
	awaken := NewCard(s, 0, "Living Lands", CardSpec{Types: []CardType{TypeEnchantment}})
	awaken.StaticTypes(
		func(s *State, _, affected *Card) bool { return slices.Contains(affected.def.types, TypeLand) },
		func(_ *State, _, _ *Card, base []CardType) []CardType { return append(base, TypeCreature) })
	awaken.StaticSubtypes(nil,
		func(_ *State, _, _ *Card, base []string) []string { return append(base, "treefolk") })
	forest := place(s, testForest(s, 0), zone.Battlefield(0))
	assert.False(t, s.HasType(forest, TypeCreature))

	place(s, awaken, zone.Battlefield(0))
	assert.True(t, s.HasType(forest, TypeCreature))
	assert.True(t, s.HasType(forest, TypeLand))
	assert.True(t, s.HasSubtype(forest, "Treefolk"))
	assert.True(t, s.HasSubtype(forest, "FOREST"))
}

func TestStaticGrantsAbility(t *testing.T) {
	s := NewState(0)
	grant := NewCard(s, 0, "Cryptolith", CardSpec{Types: []CardType{TypeArtifact}})
	grant.StaticAbilities(
		func(s *State, _, affected *Card) bool { return s.HasType(affected, TypeCreature) },
		func(_ *State, _, affected *Card, base []ActivatedAbility) []ActivatedAbility {
			return append(base, ActivatedAbility{Cost: TapSymbol(affected.ID()), Effect: AddMana(mana.Mana{Any: 1})})
		})
	place(s, grant, zone.Battlefield(0))
	elf := place(s, testElf(s, 0), zone.Battlefield(0))
	s.sick = map[ObjectID]struct{}{}

	require.Len(t, s.Abilities(elf), 2)
	next, err := s.TakeAction(Activate(elf.ID(), 1), Binding{"cost": Binding{}, "effect": Binding{}})
	require.NoError(t, err)
	assert.Equal(t, 1, next.Pool().Any)
}

func TestActiveEffectsFollowZones(t *testing.T) {
	s := NewState(0)
	lord := place(s, testLord(s, 0), zone.Hand(0))
	assert.Equal(t, 0, s.ActiveEffects())

	s.SetZone(lord.ID(), zone.Battlefield(0))
	assert.Equal(t, 2, s.ActiveEffects())

	dup := s.Copy()
	dup.SetZone(lord.ID(), zone.Graveyard(0))
	assert.Equal(t, 0, dup.ActiveEffects())
	assert.Equal(t, 2, s.ActiveEffects())
}

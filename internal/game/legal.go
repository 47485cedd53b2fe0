package game

import (
	"cmp"
	"slices"

	"github.com/magefree/mage-reach/internal/game/zone"
)

// LegalActions lists every action the active player can take right now:
// cards in hand by identity (play as a land, then cast), then permanents by
// identity and ability index. The order is deterministic.
func LegalActions(s *State) []Action {
	active := s.ActivePlayer()
	var legal []Action
	offer := func(a Action) {
		if len(a.Choices(s)) > 0 {
			legal = append(legal, a)
		}
	}

	for _, c := range byID(s.Cards(zone.Hand(active))) {
		offer(PlayLand(c.id))
		offer(CastSpell(c.id))
	}
	for _, c := range byID(s.Cards(zone.Battlefield(active))) {
		for i := range s.Abilities(c) {
			offer(Activate(c.id, i))
		}
	}
	return legal
}

func byID(cards []*Card) []*Card {
	sorted := slices.Clone(cards)
	slices.SortFunc(sorted, func(a, b *Card) int { return cmp.Compare(a.id, b.id) })
	return sorted
}

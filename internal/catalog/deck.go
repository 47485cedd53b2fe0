package catalog

import (
	"fmt"
	"math/rand/v2"

	"github.com/magefree/mage-reach/internal/game"
	"github.com/magefree/mage-reach/internal/game/zone"
)

// DeckEntry is a card name and how many copies to include.
type DeckEntry struct {
	Name  string `mapstructure:"name"`
	Count int    `mapstructure:"count"`
}

// Resolve expands entries into one constructor per copy, in order.
func (r *Registry) Resolve(entries []DeckEntry) ([]Constructor, error) {
	var ctors []Constructor
	for _, e := range entries {
		if e.Count < 0 {
			return nil, fmt.Errorf("negative count %d for %q", e.Count, e.Name)
		}
		ctor, err := r.Lookup(e.Name)
		if err != nil {
			return nil, err
		}
		for i := 0; i < e.Count; i++ {
			ctors = append(ctors, ctor)
		}
	}
	return ctors, nil
}

// BuildLibrary creates one card per constructor and stacks them in owner's
// library, the first constructor at the bottom. A non-nil rng shuffles the
// order first.
func BuildLibrary(s *game.State, ctors []Constructor, owner game.Player, rng *rand.Rand) []*game.Card {
	order := make([]Constructor, len(ctors))
	copy(order, ctors)
	if rng != nil {
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	}
	cards := make([]*game.Card, len(order))
	for i, ctor := range order {
		c := ctor(s, owner)
		s.SetZone(c.ID(), zone.Library(owner).At(i))
		cards[i] = c
	}
	return cards
}

// PutInHand creates one card per constructor in owner's hand.
func PutInHand(s *game.State, ctors []Constructor, owner game.Player) []*game.Card {
	cards := make([]*game.Card, len(ctors))
	for i, ctor := range ctors {
		c := ctor(s, owner)
		s.SetZone(c.ID(), zone.Hand(owner))
		cards[i] = c
	}
	return cards
}

// NewRand returns a deterministic generator for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

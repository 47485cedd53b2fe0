package game

import (
	"fmt"
	"slices"

	"github.com/magefree/mage-reach/internal/game/rules"
	"github.com/magefree/mage-reach/internal/game/zone"
)

type search struct {
	from     zone.Zone
	match    CardPredicate
	upTo     int
	selected Action
	rest     Action
}

// Search looks through from for up to upTo cards satisfying match. Each
// choice is a subset under the key "cards"; subsets are listed from the
// largest to the smallest, and in zone order within one size. Every selected
// card is handed to selected as its "card" parameter, then every other card
// still in from is handed to rest. A nil rest leaves them where they are.
func Search(from zone.Zone, match CardPredicate, upTo int, selected, rest Action) Action {
	return search{from: from, match: match, upTo: upTo, selected: selected, rest: rest}
}

func (a search) Kind() rules.ActionKind { return rules.ActionSearch }

func (a search) Choices(s *State) []Binding {
	var ids []ObjectID
	for _, c := range s.CardsWhere(a.from, a.match) {
		ids = append(ids, c.id)
	}
	var out []Binding
	for k := min(a.upTo, len(ids)); k >= 0; k-- {
		combinations(ids, k, func(pick []ObjectID) {
			out = append(out, Binding{"cards": pick})
		})
	}
	return out
}

func (a search) Do(s *State, b Binding) Event {
	picked, _ := b["cards"].([]ObjectID)
	if len(picked) > a.upTo {
		panic(illegal("search for up to %d got %d cards", a.upTo, len(picked)))
	}
	var others []ObjectID
	for _, c := range s.Cards(a.from) {
		if !slices.Contains(picked, c.id) {
			others = append(others, c.id)
		}
	}
	for _, id := range picked {
		s.perform(a.selected, Binding{"card": id})
	}
	if a.rest != nil {
		for _, id := range others {
			s.perform(a.rest, Binding{"card": id})
		}
	}
	return Event{Player: a.from.Owner}
}

func (a search) String() string {
	return fmt.Sprintf("Search(%s, up to %d)", a.from, a.upTo)
}

// combinations calls emit with every k-element subset of ids, in
// lexicographic order of positions.
func combinations(ids []ObjectID, k int, emit func([]ObjectID)) {
	idx := make([]int, k)
	var walk func(start, depth int)
	walk = func(start, depth int) {
		if depth == k {
			pick := make([]ObjectID, k)
			for i, j := range idx {
				pick[i] = ids[j]
			}
			emit(pick)
			return
		}
		for i := start; i <= len(ids)-(k-depth); i++ {
			idx[depth] = i
			walk(i+1, depth+1)
		}
	}
	walk(0, 0)
}

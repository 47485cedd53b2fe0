// Package catalog holds the cards the search knows about, deck building
// helpers and goal predicates.
package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/magefree/mage-reach/internal/game"
)

var (
	ErrUnknownCard   = errors.New("unknown card")
	ErrDuplicateCard = errors.New("card already registered")
)

// Constructor builds a fresh copy of a card owned by owner inside s. The
// card has no location yet.
type Constructor func(s *game.State, owner game.Player) *game.Card

// Registry maps card names to constructors. Lookups ignore case.
type Registry struct {
	ctors map[string]Constructor
	names []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{ctors: make(map[string]Constructor)}
}

// Register adds a constructor under name.
func (r *Registry) Register(name string, ctor Constructor) error {
	key := strings.ToLower(name)
	if _, exists := r.ctors[key]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateCard, name)
	}
	r.ctors[key] = ctor
	r.names = append(r.names, name)
	return nil
}

// Lookup returns the constructor registered under name.
func (r *Registry) Lookup(name string) (Constructor, error) {
	ctor, ok := r.ctors[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCard, name)
	}
	return ctor, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := slices.Clone(r.names)
	slices.Sort(names)
	return names
}

// Default returns a registry holding every card in this package.
func Default() *Registry {
	r := NewRegistry()
	for _, entry := range []struct {
		name string
		ctor Constructor
	}{
		{"Forest", Forest},
		{"Island", Island},
		{"Plains", Plains},
		{"Llanowar Elves", LlanowarElves},
		{"Elvish Archdruid", ElvishArchdruid},
		{"Vine Trellis", VineTrellis},
		{"Wall of Omens", WallOfOmens},
		{"Overgrown Battlement", OvergrownBattlement},
		{"Axebane Guardian", AxebaneGuardian},
		{"Wall of Roots", WallOfRoots},
		{"Saruli Caretaker", SaruliCaretaker},
		{"Sylvan Caryatid", SylvanCaryatid},
		{"Explosive Vegetation", ExplosiveVegetation},
		{"Staff of Domination", StaffOfDomination},
	} {
		if err := r.Register(entry.name, entry.ctor); err != nil {
			panic(err)
		}
	}
	return r
}

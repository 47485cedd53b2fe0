package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/magefree/mage-reach/internal/game"
	"github.com/magefree/mage-reach/internal/game/mana"
	"github.com/magefree/mage-reach/internal/game/zone"
)

// Goal reports whether a settled state is a win.
type Goal = func(s *game.State) bool

var ErrUnknownGoal = errors.New("unknown goal")

// StaffVictory holds once Staff of Domination is out next to an untapped
// mana engine (Overgrown Battlement or Axebane Guardian free of summoning
// sickness) and five walls, which together make unbounded mana.
func StaffVictory(s *game.State) bool {
	field := s.Cards(zone.Battlefield(zone.AnyPlayer))
	named := func(names ...string) func(*game.Card) bool {
		return func(c *game.Card) bool { return slices.Contains(names, c.Name()) }
	}
	if !slices.ContainsFunc(field, named("Staff of Domination")) {
		return false
	}
	ready := false
	walls := 0
	for _, c := range field {
		if named("Overgrown Battlement", "Axebane Guardian")(c) && !s.SummoningSick(c.ID()) {
			ready = true
		}
		if isWall(s, c) {
			walls++
		}
	}
	return ready && walls >= 5
}

// ManaAtLeast holds when the pool can pay m.
func ManaAtLeast(m mana.Mana) Goal {
	return func(s *game.State) bool { return s.Pool().CanPay(m) }
}

// PermanentsAtLeast holds when the active player controls n permanents.
func PermanentsAtLeast(n int) Goal {
	return func(s *game.State) bool {
		return len(s.Cards(zone.Battlefield(s.ActivePlayer()))) >= n
	}
}

// ParseGoal reads a goal description:
//
//	staff            StaffVictory
//	mana:{G}{G}{G}   ManaAtLeast
//	permanents:4     PermanentsAtLeast
func ParseGoal(desc string) (Goal, error) {
	name, arg, _ := strings.Cut(strings.TrimSpace(desc), ":")
	switch strings.ToLower(name) {
	case "staff":
		return StaffVictory, nil
	case "mana":
		m, err := mana.ParseCost(arg)
		if err != nil {
			return nil, fmt.Errorf("mana goal: %w", err)
		}
		if m.IsZero() {
			return nil, fmt.Errorf("mana goal needs a cost, got %q", arg)
		}
		return ManaAtLeast(m), nil
	case "permanents":
		n, err := strconv.Atoi(arg)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("permanents goal needs a count, got %q", arg)
		}
		return PermanentsAtLeast(n), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownGoal, desc)
	}
}

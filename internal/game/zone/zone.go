// Package zone models where a game object lives: a kind, an owning player
// and an ordinal position. A Zone is used both as an object's location tag
// and as a filter over the store.
package zone

import "fmt"

// Kind is the closed set of zone kinds.
type Kind int

const (
	// KindNone marks an object with no location. It is the zero value.
	KindNone Kind = iota
	KindLibrary
	KindHand
	KindBattlefield
	KindGraveyard
	KindStack
	// KindAny matches every kind when used as a filter.
	KindAny
)

var kindNames = map[Kind]string{
	KindNone:        "NONE",
	KindLibrary:     "LIBRARY",
	KindHand:        "HAND",
	KindBattlefield: "BATTLEFIELD",
	KindGraveyard:   "GRAVEYARD",
	KindStack:       "STACK",
	KindAny:         "ANY",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("KIND_%d", int(k))
}

// Ordered reports whether positions in this kind of zone are meaningful.
func (k Kind) Ordered() bool {
	switch k {
	case KindLibrary, KindStack:
		return true
	default:
		return false
	}
}

const (
	// AnyPlayer matches every owner.
	AnyPlayer = -1
	// AnyPosition matches every position.
	AnyPosition = -1
)

// Zone is a location or a location filter.
type Zone struct {
	Kind     Kind
	Owner    int
	Position int
}

// Library returns the library of owner with no fixed position.
func Library(owner int) Zone { return Zone{Kind: KindLibrary, Owner: owner, Position: AnyPosition} }

// Hand returns the hand of owner.
func Hand(owner int) Zone { return Zone{Kind: KindHand, Owner: owner, Position: AnyPosition} }

// Battlefield returns the battlefield area controlled by owner.
func Battlefield(owner int) Zone {
	return Zone{Kind: KindBattlefield, Owner: owner, Position: AnyPosition}
}

// Graveyard returns the graveyard of owner.
func Graveyard(owner int) Zone { return Zone{Kind: KindGraveyard, Owner: owner, Position: AnyPosition} }

// Stack returns the shared stack. The stack has no owner.
func Stack() Zone { return Zone{Kind: KindStack, Owner: AnyPlayer, Position: AnyPosition} }

// Anywhere matches every located object.
func Anywhere() Zone { return Zone{Kind: KindAny, Owner: AnyPlayer, Position: AnyPosition} }

// At returns z pinned to a position. Unordered zones ignore the position.
func (z Zone) At(pos int) Zone {
	if !z.Kind.Ordered() {
		return z
	}
	z.Position = pos
	return z
}

// WithOwner returns z with a different owner.
func (z Zone) WithOwner(owner int) Zone {
	z.Owner = owner
	return z
}

// Located reports whether z is a real location rather than the zero value.
func (z Zone) Located() bool {
	return z.Kind != KindNone
}

// Contains reports whether the location loc is described by the filter z.
func (z Zone) Contains(loc Zone) bool {
	if !loc.Located() || loc.Kind == KindAny {
		return false
	}
	if z.Kind != KindAny && z.Kind != loc.Kind {
		return false
	}
	if z.Owner != AnyPlayer && z.Owner != loc.Owner {
		return false
	}
	if z.Position != AnyPosition && z.Position != loc.Position {
		return false
	}
	return true
}

// Base strips the position, giving the zone an object at loc belongs to.
func (z Zone) Base() Zone {
	z.Position = AnyPosition
	return z
}

func (z Zone) String() string {
	if !z.Located() {
		return "-"
	}
	s := z.Kind.String()
	if z.Owner != AnyPlayer {
		s += fmt.Sprintf("(p%d)", z.Owner)
	}
	if z.Position != AnyPosition {
		s += fmt.Sprintf("[%d]", z.Position)
	}
	return s
}

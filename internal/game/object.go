package game

import (
	"strings"
	"sync/atomic"

	"github.com/magefree/mage-reach/internal/game/zone"
)

// ObjectID is the stable identity of a game object. The same object keeps its
// ID in every state that contains it.
type ObjectID int64

var lastObjectID atomic.Int64

// NewObjectID returns the next process-wide identity. The counter is never
// reset, so IDs stay unique across every state of a run.
func NewObjectID() ObjectID {
	return ObjectID(lastObjectID.Add(1))
}

// Player identifies a seat at the table.
type Player = int

// Object is anything that lives in a State's store.
type Object interface {
	ID() ObjectID
	Zone() zone.Zone
	setZone(zone.Zone)
	clone() Object
	writeKey(sb *strings.Builder, s *State)
}

// CardType is a card type or supertype.
type CardType string

const (
	TypeLand        CardType = "land"
	TypeCreature    CardType = "creature"
	TypeArtifact    CardType = "artifact"
	TypeEnchantment CardType = "enchantment"
	TypeInstant     CardType = "instant"
	TypeSorcery     CardType = "sorcery"
	// TypeBasic is the basic supertype.
	TypeBasic CardType = "basic"
)

// IsSpellOnly reports whether cards of this type go to the graveyard when
// they resolve rather than onto the battlefield.
func (t CardType) IsSpellOnly() bool {
	return t == TypeInstant || t == TypeSorcery
}

package game

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash/fnv"
	"strings"
)

// Key returns the canonical representation of the state that equality and
// hashing are defined on: the pool, the active player and every object by
// identity and value, sorted by identity. Turn number, land drops and the
// trigger queue are not part of it.
func (s *State) Key() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "POOL:%s|ACTIVE:%d\n", s.pool, s.ActivePlayer())
	for _, id := range sortedIDs(s.objects) {
		s.objects[id].writeKey(&sb, s)
	}
	return sb.String()
}

// Hash is a 64-bit FNV-1a hash of Key. Equal states hash equally.
func (s *State) Hash() uint64 {
	h := fnv.New64a()
	h.Write([]byte(s.Key()))
	return h.Sum64()
}

// Equal reports whether two states have the same pool, active player and
// objects.
func (s *State) Equal(o *State) bool {
	if s == o {
		return true
	}
	if o == nil || len(s.objects) != len(o.objects) {
		return false
	}
	return s.Key() == o.Key()
}

// Checksum returns the SHA-256 of Key in hex, for reports and replays.
func (s *State) Checksum() string {
	sum := sha256.Sum256([]byte(s.Key()))
	return hex.EncodeToString(sum[:])
}

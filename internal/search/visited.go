package search

import "github.com/magefree/mage-reach/internal/game"

// visited is a set of states keyed by hash, with equality checks inside a
// bucket.
type visited struct {
	buckets map[uint64][]*game.State
	size    int
}

func newVisited() *visited {
	return &visited{buckets: make(map[uint64][]*game.State)}
}

// add inserts s and reports whether it was not yet present.
func (v *visited) add(s *game.State) bool {
	h := s.Hash()
	for _, seen := range v.buckets[h] {
		if seen.Equal(s) {
			return false
		}
	}
	v.buckets[h] = append(v.buckets[h], s)
	v.size++
	return true
}

func (v *visited) len() int { return v.size }

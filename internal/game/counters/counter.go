package counters

import (
	"sort"
	"strconv"
	"strings"
)

// Counters is a multiset of named counters on a game object. The zero value
// is not usable; use New.
type Counters struct {
	counts map[string]int
}

// New creates an empty Counters collection.
func New() *Counters {
	return &Counters{counts: make(map[string]int)}
}

// Add adds amount counters of the given name. Non-positive amounts are ignored.
func (cs *Counters) Add(name CounterType, amount int) {
	if amount <= 0 {
		return
	}
	cs.counts[string(name)] += amount
}

// Remove removes up to amount counters of the given name.
// Returns true if any counters were removed.
func (cs *Counters) Remove(name CounterType, amount int) bool {
	if amount <= 0 {
		return false
	}
	have, ok := cs.counts[string(name)]
	if !ok {
		return false
	}
	if have <= amount {
		delete(cs.counts, string(name))
	} else {
		cs.counts[string(name)] = have - amount
	}
	return true
}

// Count returns the number of counters with the given name.
func (cs *Counters) Count(name CounterType) int {
	return cs.counts[string(name)]
}

// Total returns the number of counters of every kind.
func (cs *Counters) Total() int {
	total := 0
	for _, n := range cs.counts {
		total += n
	}
	return total
}

// Boost sums the power/toughness deltas of every boost counter
// (names like "+1/+1" or "-0/-1").
func (cs *Counters) Boost() (power, toughness int) {
	for name, n := range cs.counts {
		p, t, ok := parseBoostCounterName(name)
		if !ok {
			continue
		}
		power += p * n
		toughness += t * n
	}
	return power, toughness
}

// Copy creates a deep copy of the collection.
func (cs *Counters) Copy() *Counters {
	dup := &Counters{counts: make(map[string]int, len(cs.counts))}
	for name, n := range cs.counts {
		dup.counts[name] = n
	}
	return dup
}

// Equal reports whether both collections hold the same counters.
func (cs *Counters) Equal(o *Counters) bool {
	if len(cs.counts) != len(o.counts) {
		return false
	}
	for name, n := range cs.counts {
		if o.counts[name] != n {
			return false
		}
	}
	return true
}

// String renders the counters sorted by name, e.g. "+1/+1x2,charge x1".
// The output is stable and used for state keys.
func (cs *Counters) String() string {
	if len(cs.counts) == 0 {
		return ""
	}
	names := make([]string, 0, len(cs.counts))
	for name := range cs.counts {
		names = append(names, name)
	}
	sort.Strings(names)
	var sb strings.Builder
	for i, name := range names {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(name)
		sb.WriteByte('x')
		sb.WriteString(strconv.Itoa(cs.counts[name]))
	}
	return sb.String()
}

// BoostName generates a name for a boost counter (e.g., "+1/+1", "-0/-1").
func BoostName(power, toughness int) CounterType {
	return CounterType(formatBoost(power) + "/" + formatBoost(toughness))
}

func formatBoost(value int) string {
	if value < 0 {
		return strconv.Itoa(value)
	}
	return "+" + strconv.Itoa(value)
}

// parseBoostCounterName parses a boost counter name into power/toughness deltas.
func parseBoostCounterName(name string) (int, int, bool) {
	powerPart, toughnessPart, found := strings.Cut(name, "/")
	if !found {
		return 0, 0, false
	}
	power, ok := parseBoostValue(powerPart)
	if !ok {
		return 0, 0, false
	}
	toughness, ok := parseBoostValue(toughnessPart)
	if !ok {
		return 0, 0, false
	}
	return power, toughness, true
}

func parseBoostValue(s string) (int, bool) {
	if len(s) < 2 || (s[0] != '+' && s[0] != '-') {
		return 0, false
	}
	value, err := strconv.Atoi(s[1:])
	if err != nil || value < 0 {
		return 0, false
	}
	if s[0] == '-' {
		value = -value
	}
	return value, true
}

package mana

import (
	"errors"
	"fmt"
	"strings"
)

// ManaType names a single slot of a Mana value.
type ManaType string

const (
	ManaWhite     ManaType = "WHITE"
	ManaBlue      ManaType = "BLUE"
	ManaBlack     ManaType = "BLACK"
	ManaRed       ManaType = "RED"
	ManaGreen     ManaType = "GREEN"
	ManaColorless ManaType = "COLORLESS"
	ManaAny       ManaType = "ANY"     // One mana of any single color
	ManaGeneric   ManaType = "GENERIC" // Generic mana can be paid with any type
)

// Colors lists the five colored slots in WUBRG order.
var Colors = []ManaType{ManaWhite, ManaBlue, ManaBlack, ManaRed, ManaGreen}

// ErrInsufficientMana is returned by Pay when the pool cannot cover a cost.
var ErrInsufficientMana = errors.New("insufficient mana")

// Mana is a fixed-arity vector of mana counts. The same type is used for the
// shared pool and for costs. It is a plain value: copying it copies the pool.
type Mana struct {
	White     int
	Blue      int
	Black     int
	Red       int
	Green     int
	Colorless int
	Any       int
	Generic   int
}

// Of returns a Mana holding amount of a single type.
func Of(manaType ManaType, amount int) Mana {
	var m Mana
	m.set(manaType, amount)
	return m
}

// Get returns the count held in the given slot.
func (m Mana) Get(manaType ManaType) int {
	switch manaType {
	case ManaWhite:
		return m.White
	case ManaBlue:
		return m.Blue
	case ManaBlack:
		return m.Black
	case ManaRed:
		return m.Red
	case ManaGreen:
		return m.Green
	case ManaColorless:
		return m.Colorless
	case ManaAny:
		return m.Any
	case ManaGeneric:
		return m.Generic
	default:
		return 0
	}
}

func (m *Mana) set(manaType ManaType, amount int) {
	switch manaType {
	case ManaWhite:
		m.White = amount
	case ManaBlue:
		m.Blue = amount
	case ManaBlack:
		m.Black = amount
	case ManaRed:
		m.Red = amount
	case ManaGreen:
		m.Green = amount
	case ManaColorless:
		m.Colorless = amount
	case ManaAny:
		m.Any = amount
	case ManaGeneric:
		m.Generic = amount
	}
}

// Add returns the component-wise sum of m and o.
func (m Mana) Add(o Mana) Mana {
	return Mana{
		White:     m.White + o.White,
		Blue:      m.Blue + o.Blue,
		Black:     m.Black + o.Black,
		Red:       m.Red + o.Red,
		Green:     m.Green + o.Green,
		Colorless: m.Colorless + o.Colorless,
		Any:       m.Any + o.Any,
		Generic:   m.Generic + o.Generic,
	}
}

// Scale multiplies every slot by n.
func (m Mana) Scale(n int) Mana {
	return Mana{
		White:     m.White * n,
		Blue:      m.Blue * n,
		Black:     m.Black * n,
		Red:       m.Red * n,
		Green:     m.Green * n,
		Colorless: m.Colorless * n,
		Any:       m.Any * n,
		Generic:   m.Generic * n,
	}
}

// Value returns the total amount of mana (the mana value of a cost).
func (m Mana) Value() int {
	return m.White + m.Blue + m.Black + m.Red + m.Green + m.Colorless + m.Any + m.Generic
}

// IsZero reports whether every slot is empty.
func (m Mana) IsZero() bool {
	return m == Mana{}
}

// Valid reports whether no slot is negative.
func (m Mana) Valid() bool {
	return m.White >= 0 && m.Blue >= 0 && m.Black >= 0 && m.Red >= 0 &&
		m.Green >= 0 && m.Colorless >= 0 && m.Any >= 0 && m.Generic >= 0
}

// CanPay reports whether m can pay cost. It runs the same settlement as Pay,
// so the two never disagree.
func (m Mana) CanPay(cost Mana) bool {
	_, err := settle(m, cost)
	return err == nil
}

// Pay subtracts cost from m and returns the remaining pool. The receiver is
// never modified; on failure the error wraps ErrInsufficientMana.
func (m Mana) Pay(cost Mana) (Mana, error) {
	return settle(m, cost)
}

// settle applies the canonical payment order:
//  1. exact colored (and colorless) requirements from matching slots
//  2. wildcard pool mana against any colored shortfall
//  3. the cost's "any color" portion from colored mana, largest color first,
//     then from wildcard pool mana
//  4. the generic portion from generic, colorless, colored (largest first)
//     and finally wildcard pool mana
func settle(pool, cost Mana) (Mana, error) {
	if !pool.Valid() || !cost.Valid() {
		return pool, fmt.Errorf("%w: negative mana in pool %s or cost %s", ErrInsufficientMana, pool, cost)
	}
	rest := pool

	shortfall := 0
	for _, mt := range Colors {
		need := cost.Get(mt)
		have := rest.Get(mt)
		if have >= need {
			rest.set(mt, have-need)
			continue
		}
		rest.set(mt, 0)
		shortfall += need - have
	}
	if rest.Colorless < cost.Colorless {
		return pool, fmt.Errorf("%w: need %d colorless, have %d", ErrInsufficientMana, cost.Colorless, rest.Colorless)
	}
	rest.Colorless -= cost.Colorless

	if shortfall > rest.Any {
		return pool, fmt.Errorf("%w: colored shortfall of %d exceeds %d wildcard", ErrInsufficientMana, shortfall, rest.Any)
	}
	rest.Any -= shortfall

	anyColor := spendColors(&rest, cost.Any)
	if anyColor > rest.Any {
		return pool, fmt.Errorf("%w: need %d more mana of any color", ErrInsufficientMana, anyColor-rest.Any)
	}
	rest.Any -= anyColor

	generic := cost.Generic
	for _, mt := range []ManaType{ManaGeneric, ManaColorless} {
		spend := min(generic, rest.Get(mt))
		rest.set(mt, rest.Get(mt)-spend)
		generic -= spend
	}
	generic = spendColors(&rest, generic)
	if generic > rest.Any {
		return pool, fmt.Errorf("%w: need %d more generic mana", ErrInsufficientMana, generic-rest.Any)
	}
	rest.Any -= generic

	return rest, nil
}

// spendColors spends up to amount from the colored slots, always drawing from
// the largest remaining color (WUBRG breaks ties). It returns what is left
// unpaid.
func spendColors(m *Mana, amount int) int {
	for amount > 0 {
		best := ManaType("")
		for _, mt := range Colors {
			if m.Get(mt) > 0 && (best == "" || m.Get(mt) > m.Get(best)) {
				best = mt
			}
		}
		if best == "" {
			return amount
		}
		m.set(best, m.Get(best)-1)
		amount--
	}
	return 0
}

// String renders the value in cost notation, e.g. "{2}{G}{G}".
func (m Mana) String() string {
	if m.IsZero() {
		return "{0}"
	}
	var sb strings.Builder
	if m.Generic > 0 {
		fmt.Fprintf(&sb, "{%d}", m.Generic)
	}
	symbols := []struct {
		mt  ManaType
		sym string
	}{
		{ManaWhite, "W"}, {ManaBlue, "U"}, {ManaBlack, "B"}, {ManaRed, "R"},
		{ManaGreen, "G"}, {ManaColorless, "C"}, {ManaAny, "*"},
	}
	for _, s := range symbols {
		for i := 0; i < m.Get(s.mt); i++ {
			sb.WriteString("{" + s.sym + "}")
		}
	}
	return sb.String()
}

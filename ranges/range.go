// Package ranges estimates and narrows the set of starting hands an
// opponent may hold.
package ranges

import (
	"math/bits"
	"slices"
	"strings"

	"github.com/lox/pokeradvisor/poker"
)

// Range is an immutable set of the 169 starting hands, stored as a
// bitset indexed by StartingHand.Index. The zero value is empty.
type Range struct {
	bits [3]uint64
}

// NewRange builds a range from the given hands.
func NewRange(hands ...poker.StartingHand) Range {
	var r Range
	for _, h := range hands {
		r = r.with(h)
	}
	return r
}

// All returns the range holding every starting hand.
func All() Range {
	return NewRange(poker.AllStartingHands()...)
}

// MustParse parses notation and panics on error (for tests and static tables)
func MustParse(notation string) Range {
	r, err := Parse(notation)
	if err != nil {
		panic(err)
	}
	return r
}

func (r Range) with(h poker.StartingHand) Range {
	i := h.Index()
	r.bits[i/64] |= 1 << (i % 64)
	return r
}

// Contains reports exact membership; "AKs" does not match "AKo".
func (r Range) Contains(h poker.StartingHand) bool {
	i := h.Index()
	return r.bits[i/64]&(1<<(i%64)) != 0
}

// Len returns the number of distinct starting hands.
func (r Range) Len() int {
	return bits.OnesCount64(r.bits[0]) + bits.OnesCount64(r.bits[1]) + bits.OnesCount64(r.bits[2])
}

// IsEmpty reports whether no hand remains.
func (r Range) IsEmpty() bool {
	return r.bits == [3]uint64{}
}

// Hands returns the members strongest first.
func (r Range) Hands() []poker.StartingHand {
	hands := make([]poker.StartingHand, 0, r.Len())
	for _, h := range ByStrength() {
		if r.Contains(h) {
			hands = append(hands, h)
		}
	}
	return hands
}

// Combos returns the number of concrete two-card holdings.
func (r Range) Combos() int {
	n := 0
	for _, h := range poker.AllStartingHands() {
		if r.Contains(h) {
			n += h.Combos()
		}
	}
	return n
}

// Share returns Combos as a fraction of all 1326 holdings.
func (r Range) Share() float64 {
	return float64(r.Combos()) / poker.TotalCombos
}

// Union returns hands in either range.
func (r Range) Union(o Range) Range {
	for i := range r.bits {
		r.bits[i] |= o.bits[i]
	}
	return r
}

// Intersect returns hands in both ranges.
func (r Range) Intersect(o Range) Range {
	for i := range r.bits {
		r.bits[i] &= o.bits[i]
	}
	return r
}

// SubsetOf reports whether every hand in r is also in o.
func (r Range) SubsetOf(o Range) bool {
	return r.Intersect(o) == r
}

// Filter keeps the hands for which keep returns true.
func (r Range) Filter(keep func(poker.StartingHand) bool) Range {
	var out Range
	for _, h := range poker.AllStartingHands() {
		if r.Contains(h) && keep(h) {
			out = out.with(h)
		}
	}
	return out
}

// Top keeps the n strongest members.
func (r Range) Top(n int) Range {
	hands := r.Hands()
	return NewRange(hands[:min(max(n, 0), len(hands))]...)
}

// Best returns the strongest member; ok is false for an empty range.
func (r Range) Best() (poker.StartingHand, bool) {
	for _, h := range ByStrength() {
		if r.Contains(h) {
			return h, true
		}
	}
	return poker.StartingHand{}, false
}

// Strings returns the members in grid notation, strongest first.
func (r Range) Strings() []string {
	hands := r.Hands()
	out := make([]string, len(hands))
	for i, h := range hands {
		out[i] = h.String()
	}
	return out
}

// String joins the members with commas.
func (r Range) String() string {
	return strings.Join(r.Strings(), ",")
}

// Sorted returns the members in grid order (AA, AKs, AQs, ...).
func (r Range) Sorted() []poker.StartingHand {
	hands := r.Hands()
	slices.SortFunc(hands, func(a, b poker.StartingHand) int { return a.Index() - b.Index() })
	return hands
}

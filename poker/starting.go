package poker

import (
	"fmt"
	"strings"
)

// StartingHand is one of the 169 canonical two-card holdings: a pair of
// ranks (high first) and a suitedness flag. Pairs are never suited.
type StartingHand struct {
	High   uint8
	Low    uint8
	Suited bool
}

// NewStartingHand canonicalizes two hole cards to their grid entry.
func NewStartingHand(c1, c2 Card) StartingHand {
	r1, r2 := c1.Rank(), c2.Rank()
	if r2 > r1 {
		r1, r2 = r2, r1
	}
	return StartingHand{High: r1, Low: r2, Suited: r1 != r2 && c1.Suit() == c2.Suit()}
}

// ParseStartingHand parses grid notation: "AA", "AKs", "AKo".
// A bare unpaired "AK" is rejected because it names two grid entries.
func ParseStartingHand(s string) (StartingHand, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || len(s) > 3 {
		return StartingHand{}, fmt.Errorf("%w: %q", ErrInvalidStartingHand, s)
	}
	r1, ok1 := ParseRank(s[0])
	r2, ok2 := ParseRank(s[1])
	if !ok1 || !ok2 {
		return StartingHand{}, fmt.Errorf("%w: bad rank in %q", ErrInvalidStartingHand, s)
	}
	if r2 > r1 {
		r1, r2 = r2, r1
	}
	if r1 == r2 {
		if len(s) == 3 {
			return StartingHand{}, fmt.Errorf("%w: pair %q cannot be suited or offsuit", ErrInvalidStartingHand, s)
		}
		return StartingHand{High: r1, Low: r2}, nil
	}
	if len(s) != 3 {
		return StartingHand{}, fmt.Errorf("%w: %q needs an s or o suffix", ErrInvalidStartingHand, s)
	}
	switch s[2] {
	case 's', 'S':
		return StartingHand{High: r1, Low: r2, Suited: true}, nil
	case 'o', 'O':
		return StartingHand{High: r1, Low: r2}, nil
	default:
		return StartingHand{}, fmt.Errorf("%w: bad suffix in %q", ErrInvalidStartingHand, s)
	}
}

// MustParseStartingHand panics on error (for tests and static tables)
func MustParseStartingHand(s string) StartingHand {
	h, err := ParseStartingHand(s)
	if err != nil {
		panic(err)
	}
	return h
}

// IsPair reports whether both cards share a rank.
func (s StartingHand) IsPair() bool {
	return s.High == s.Low
}

// String returns "RR", "R1R2s" or "R1R2o".
func (s StartingHand) String() string {
	base := string([]byte{rankChars[s.High], rankChars[s.Low]})
	switch {
	case s.IsPair():
		return base
	case s.Suited:
		return base + "s"
	default:
		return base + "o"
	}
}

// Alternate returns the same ranks with the opposite suitedness.
// For pairs it returns the hand unchanged.
func (s StartingHand) Alternate() StartingHand {
	if s.IsPair() {
		return s
	}
	return StartingHand{High: s.High, Low: s.Low, Suited: !s.Suited}
}

// Combos returns the number of concrete card pairs: 6, 4 or 12.
func (s StartingHand) Combos() int {
	switch {
	case s.IsPair():
		return 6
	case s.Suited:
		return 4
	default:
		return 12
	}
}

// Expand lists every concrete two-card combo that avoids dead.
func (s StartingHand) Expand(dead Hand) []Hand {
	combos := make([]Hand, 0, s.Combos())
	add := func(c1, c2 Card) {
		h := NewHand(c1, c2)
		if !h.Overlaps(dead) {
			combos = append(combos, h)
		}
	}
	switch {
	case s.IsPair():
		for s1 := range uint8(4) {
			for s2 := s1 + 1; s2 < 4; s2++ {
				add(NewCard(s.High, s1), NewCard(s.High, s2))
			}
		}
	case s.Suited:
		for suit := range uint8(4) {
			add(NewCard(s.High, suit), NewCard(s.Low, suit))
		}
	default:
		for s1 := range uint8(4) {
			for s2 := range uint8(4) {
				if s1 != s2 {
					add(NewCard(s.High, s1), NewCard(s.Low, s2))
				}
			}
		}
	}
	return combos
}

// Index returns the hand's 0..168 position in grid order.
func (s StartingHand) Index() int {
	row, col := s.GridCell()
	return row*13 + col
}

// GridCell returns the 13x13 grid coordinates of the hand (row, col),
// with pairs on the diagonal, suited above and offsuit below.
func (s StartingHand) GridCell() (row, col int) {
	row, col = 12-int(s.High), 12-int(s.Low)
	if !s.Suited {
		row, col = col, row
	}
	return row, col
}

// AllStartingHands returns all 169 starting hands in grid order.
func AllStartingHands() []StartingHand {
	hands := make([]StartingHand, 0, 169)
	for row := 0; row < 13; row++ {
		for col := 0; col < 13; col++ {
			hands = append(hands, StartingHandAt(row, col))
		}
	}
	return hands
}

// StartingHandAt returns the hand occupying a grid cell.
func StartingHandAt(row, col int) StartingHand {
	r1, r2 := uint8(12-row), uint8(12-col)
	switch {
	case row == col:
		return StartingHand{High: r1, Low: r1}
	case row < col:
		return StartingHand{High: r1, Low: r2, Suited: true}
	default:
		return StartingHand{High: r2, Low: r1}
	}
}

// TotalCombos is the number of two-card holdings from a full deck.
const TotalCombos = 1326

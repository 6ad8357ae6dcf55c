package ranges

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lox/pokeradvisor/poker"
)

// ErrInvalidNotation is returned for range text that cannot be parsed.
var ErrInvalidNotation = errors.New("invalid range notation")

// Parse reads standard range notation.
// Examples: "AA,KK", "AKs,AKo", "TT+", "A5s-A2s", "KTs+", "22-66", "AK"
func Parse(notation string) (Range, error) {
	var r Range
	for part := range strings.SplitSeq(notation, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		var err error
		switch {
		case strings.HasSuffix(part, "+"):
			r, err = r.addPlus(strings.TrimSuffix(part, "+"))
		case strings.Contains(part, "-"):
			r, err = r.addDash(part)
		default:
			r, err = r.addSingle(part)
		}
		if err != nil {
			return Range{}, fmt.Errorf("%w: part %q: %w", ErrInvalidNotation, part, err)
		}
	}
	return r, nil
}

// ParseList parses a list of parts, such as a JSON chart's hand array.
func ParseList(parts []string) (Range, error) {
	return Parse(strings.Join(parts, ","))
}

// base is a parsed "AK", "AKs", "AKo" or "TT" token.
type base struct {
	high, low       uint8
	suited, offsuit bool
}

func parseBase(s string) (base, error) {
	if len(s) < 2 || len(s) > 3 {
		return base{}, fmt.Errorf("bad length %q", s)
	}
	r1, ok1 := poker.ParseRank(s[0])
	r2, ok2 := poker.ParseRank(s[1])
	if !ok1 || !ok2 {
		return base{}, fmt.Errorf("bad rank in %q", s)
	}
	if r2 > r1 {
		r1, r2 = r2, r1
	}
	b := base{high: r1, low: r2}
	if r1 == r2 {
		if len(s) == 3 {
			return base{}, fmt.Errorf("pocket pairs cannot have suited/offsuit modifier: %s", s)
		}
		return b, nil
	}
	if len(s) == 2 {
		b.suited, b.offsuit = true, true
		return b, nil
	}
	switch s[2] {
	case 's':
		b.suited = true
	case 'o':
		b.offsuit = true
	default:
		return base{}, fmt.Errorf("invalid modifier: %c", s[2])
	}
	return b, nil
}

func (r Range) addRanks(high, low uint8, suited, offsuit bool) Range {
	if high == low {
		return r.with(poker.StartingHand{High: high, Low: low})
	}
	if suited {
		r = r.with(poker.StartingHand{High: high, Low: low, Suited: true})
	}
	if offsuit {
		r = r.with(poker.StartingHand{High: high, Low: low})
	}
	return r
}

func (r Range) addSingle(s string) (Range, error) {
	b, err := parseBase(s)
	if err != nil {
		return r, err
	}
	return r.addRanks(b.high, b.low, b.suited, b.offsuit), nil
}

// addPlus handles "TT+" (pairs up to AA) and "KTs+" (kicker up to one
// below the high card).
func (r Range) addPlus(s string) (Range, error) {
	b, err := parseBase(s)
	if err != nil {
		return r, err
	}
	if b.high == b.low {
		for rank := b.high; rank <= poker.Ace; rank++ {
			r = r.addRanks(rank, rank, false, false)
		}
		return r, nil
	}
	for kicker := b.low; kicker < b.high; kicker++ {
		r = r.addRanks(b.high, kicker, b.suited, b.offsuit)
	}
	return r, nil
}

// addDash handles "22-66" and "A5s-A2s".
func (r Range) addDash(s string) (Range, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return r, fmt.Errorf("invalid dash range format")
	}
	start, err := parseBase(strings.TrimSpace(parts[0]))
	if err != nil {
		return r, err
	}
	end, err := parseBase(strings.TrimSpace(parts[1]))
	if err != nil {
		return r, err
	}

	if start.high == start.low && end.high == end.low {
		for rank := min(start.high, end.high); rank <= max(start.high, end.high); rank++ {
			r = r.addRanks(rank, rank, false, false)
		}
		return r, nil
	}
	if start.high != end.high || start.high == start.low || end.high == end.low {
		return r, fmt.Errorf("unsupported range format: %s", s)
	}
	if start.suited != end.suited || start.offsuit != end.offsuit {
		return r, fmt.Errorf("mismatched suitedness: %s", s)
	}
	for kicker := min(start.low, end.low); kicker <= max(start.low, end.low); kicker++ {
		r = r.addRanks(start.high, kicker, start.suited, start.offsuit)
	}
	return r, nil
}

// Package game holds the table-level data model shared by the range
// estimator and the advisor: positions, streets, observed actions and
// opponent profiles.
package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Position is a seat relative to the button.
type Position uint8

const (
	UTG Position = iota
	HJ
	CO
	BTN
	SB
	BB
)

var positionNames = [...]string{UTG: "UTG", HJ: "HJ", CO: "CO", BTN: "BTN", SB: "SB", BB: "BB"}

// Positions lists every seat in preflop action order.
func Positions() []Position {
	return []Position{UTG, HJ, CO, BTN, SB, BB}
}

func (p Position) String() string {
	if int(p) < len(positionNames) {
		return positionNames[p]
	}
	return fmt.Sprintf("Position(%d)", p)
}

// ErrUnknownPosition is returned for seat names outside the six-max table.
var ErrUnknownPosition = errors.New("unknown position")

// ParsePosition accepts the short names case-insensitively. "MP" is an
// alias for HJ.
func ParsePosition(s string) (Position, error) {
	up := strings.ToUpper(strings.TrimSpace(s))
	if up == "MP" {
		return HJ, nil
	}
	for i, name := range positionNames {
		if name == up {
			return Position(i), nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownPosition, s)
}

// postflopOrder ranks seats by when they act after the flop; later acts last.
var postflopOrder = [...]int{SB: 0, BB: 1, UTG: 2, HJ: 3, CO: 4, BTN: 5}

// InPositionOver reports whether p acts after other on postflop streets.
func (p Position) InPositionOver(other Position) bool {
	return postflopOrder[p] > postflopOrder[other]
}

// MarshalText implements encoding.TextMarshaler.
func (p Position) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Position) UnmarshalText(b []byte) error {
	v, err := ParsePosition(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Street is a betting round.
type Street uint8

const (
	Preflop Street = iota
	Flop
	Turn
	River
)

var streetNames = [...]string{"preflop", "flop", "turn", "river"}

func (s Street) String() string {
	if int(s) < len(streetNames) {
		return streetNames[s]
	}
	return fmt.Sprintf("Street(%d)", s)
}

// StreetForBoard infers the street from the number of board cards.
func StreetForBoard(n int) (Street, error) {
	switch n {
	case 0:
		return Preflop, nil
	case 3:
		return Flop, nil
	case 4:
		return Turn, nil
	case 5:
		return River, nil
	default:
		return 0, fmt.Errorf("no street has %d board cards", n)
	}
}

// ParseStreet accepts the lower-case street names.
func ParseStreet(s string) (Street, error) {
	for i, name := range streetNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return Street(i), nil
		}
	}
	return 0, fmt.Errorf("unknown street %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (s Street) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Street) UnmarshalText(b []byte) error {
	v, err := ParseStreet(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ActionKind is what a player did.
type ActionKind uint8

const (
	Fold ActionKind = iota
	Check
	Call
	Bet
	Raise
	AllIn
)

var actionNames = [...]string{"fold", "check", "call", "bet", "raise", "allin"}

func (a ActionKind) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return fmt.Sprintf("ActionKind(%d)", a)
}

// ParseActionKind accepts the lower-case names plus "all-in" and "all_in".
func ParseActionKind(s string) (ActionKind, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "", "_", "").Replace(norm)
	for i, name := range actionNames {
		if name == norm {
			return ActionKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (a ActionKind) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *ActionKind) UnmarshalText(b []byte) error {
	v, err := ParseActionKind(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// PlayerAction is one observed action. Amount and Pot are in chips; Pot is
// the pot before the action. Zero Amount means the size was not observed.
type PlayerAction struct {
	Street Street     `json:"street"`
	Kind   ActionKind `json:"kind"`
	Amount float64    `json:"amount,omitempty"`
	Pot    float64    `json:"pot,omitempty"`
}

// IsAggressive reports bets, raises and all-ins.
func (a PlayerAction) IsAggressive() bool {
	return a.Kind == Bet || a.Kind == Raise || a.Kind == AllIn
}

// BetToPotRatio returns Amount/Pot; ok is false when either is unknown.
func (a PlayerAction) BetToPotRatio() (ratio float64, ok bool) {
	if a.Amount <= 0 || a.Pot <= 0 {
		return 0, false
	}
	return a.Amount / a.Pot, true
}

func (a PlayerAction) String() string {
	if a.Amount > 0 {
		return fmt.Sprintf("%s %s %.0f", a.Street, a.Kind, a.Amount)
	}
	return fmt.Sprintf("%s %s", a.Street, a.Kind)
}

// ParseAction reads the compact form "street:kind[:amount[:pot]]", e.g.
// "flop:bet:75:100".
func ParseAction(s string) (PlayerAction, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 4 {
		return PlayerAction{}, fmt.Errorf("action %q: want street:kind[:amount[:pot]]", s)
	}
	street, err := ParseStreet(parts[0])
	if err != nil {
		return PlayerAction{}, err
	}
	kind, err := ParseActionKind(parts[1])
	if err != nil {
		return PlayerAction{}, err
	}
	action := PlayerAction{Street: street, Kind: kind}
	for i, dst := range []*float64{&action.Amount, &action.Pot} {
		if len(parts) <= i+2 {
			break
		}
		v, err := strconv.ParseFloat(parts[i+2], 64)
		if err != nil {
			return PlayerAction{}, fmt.Errorf("action %q: bad number %q: %w", s, parts[i+2], err)
		}
		*dst = v
	}
	return action, nil
}

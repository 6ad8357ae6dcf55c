package advisor

import (
	"fmt"
	"math"

	"github.com/lox/pokeradvisor/game"
	"github.com/lox/pokeradvisor/poker"
	"github.com/lox/pokeradvisor/potodds"
)

// GameState is one decision point. Cards travel in wire notation ("As",
// "Td") and are parsed when the advisor reads the state; the advisor never
// modifies it.
type GameState struct {
	Hole     []string      `json:"hole"`
	Position game.Position `json:"position"`
	Stack    float64       `json:"stack"`
	Board    []string      `json:"board,omitempty"`
	Pot      float64       `json:"pot"`
	ToCall   float64       `json:"toCall"`
	// BigBlind scales preflop open sizes; zero means amounts are in big blinds.
	BigBlind float64 `json:"bigBlind,omitempty"`

	Opponents         int             `json:"opponents"`
	OpponentPositions []game.Position `json:"opponentPositions,omitempty"`
	OpponentStacks    []float64       `json:"opponentStacks,omitempty"`
	// History holds each opponent's actions this hand, indexed like
	// OpponentPositions.
	History [][]game.PlayerAction `json:"history,omitempty"`
	Street  game.Street           `json:"street"`
}

// IsPreflop reports whether no community cards are out.
func (s GameState) IsPreflop() bool {
	return s.Street == game.Preflop && len(s.Board) == 0
}

// EffectiveStack is the smallest stack among hero and the opponents.
func (s GameState) EffectiveStack() float64 {
	eff := s.Stack
	for _, st := range s.OpponentStacks {
		eff = min(eff, st)
	}
	return eff
}

// SPR is the effective stack to pot ratio, +Inf for an empty pot.
func (s GameState) SPR() float64 {
	if s.Pot == 0 {
		return math.Inf(1)
	}
	return s.EffectiveStack() / s.Pot
}

// StartingHand canonicalizes hero's hole cards.
func (s GameState) StartingHand() (poker.StartingHand, error) {
	hole, err := poker.ParseCardList(s.Hole)
	if err != nil {
		return poker.StartingHand{}, err
	}
	if len(hole) != 2 {
		return poker.StartingHand{}, fmt.Errorf("%w: need 2 hole cards, got %d", poker.ErrInvalidHandShape, len(hole))
	}
	return poker.NewStartingHand(hole[0], hole[1]), nil
}

// OpponentCount is the number of live opponents, at least one. It is the
// largest of Opponents and the lengths of OpponentPositions and
// OpponentStacks.
func (s GameState) OpponentCount() int {
	return max(1, s.Opponents, len(s.OpponentPositions), len(s.OpponentStacks))
}

func (s GameState) bigBlind() float64 {
	if s.BigBlind > 0 {
		return s.BigBlind
	}
	return 1
}

// decision is a GameState after its cards have been parsed and checked.
type decision struct {
	GameState
	hole   []poker.Card
	board  []poker.Card
	street game.Street
	hand   poker.StartingHand
}

func (s GameState) parse() (decision, error) {
	hole, err := poker.ParseCardList(s.Hole)
	if err != nil {
		return decision{}, err
	}
	board, err := poker.ParseCardList(s.Board)
	if err != nil {
		return decision{}, err
	}
	if len(hole) != 2 {
		return decision{}, fmt.Errorf("%w: need 2 hole cards, got %d", poker.ErrInvalidHandShape, len(hole))
	}
	street, err := game.StreetForBoard(len(board))
	if err != nil {
		return decision{}, fmt.Errorf("%w: %w", poker.ErrInvalidHandShape, err)
	}
	if s.Street != game.Preflop && s.Street != street {
		return decision{}, fmt.Errorf("%w: street %s with %d board cards", poker.ErrInvalidHandShape, s.Street, len(board))
	}
	if _, err := poker.CardSet(hole, board); err != nil {
		return decision{}, err
	}
	if s.Pot < 0 || s.ToCall < 0 {
		return decision{}, fmt.Errorf("%w: pot=%v toCall=%v", potodds.ErrNegativeAmount, s.Pot, s.ToCall)
	}
	return decision{
		GameState: s,
		hole:      hole,
		board:     board,
		street:    street,
		hand:      poker.NewStartingHand(hole[0], hole[1]),
	}, nil
}

package ranges

import (
	"context"
	rand "math/rand/v2"

	"github.com/lox/pokeradvisor/equity"
	"github.com/lox/pokeradvisor/poker"
)

// RangeToCombos expands every member into concrete holdings, dropping any
// combo that uses a dead card.
func RangeToCombos(r Range, dead poker.Hand) []poker.Hand {
	combos := make([]poker.Hand, 0, r.Combos())
	for _, h := range r.Hands() {
		combos = append(combos, h.Expand(dead)...)
	}
	return combos
}

// LiveCombos counts the holdings that survive dead.
func LiveCombos(r Range, dead poker.Hand) int {
	n := 0
	for _, h := range r.Hands() {
		n += len(h.Expand(dead))
	}
	return n
}

// EquityVsRange simulates hero against a single opponent holding r. An
// empty range, or one with no live combo, yields the neutral result.
func EquityVsRange(ctx context.Context, calc *equity.Calculator, hero, board []poker.Card, r Range, iterations int, rng *rand.Rand) (equity.Result, error) {
	if r.IsEmpty() {
		return equity.Result{}, nil
	}
	return calc.Simulate(ctx, equity.Request{
		Hero:       hero,
		Board:      board,
		Opponents:  []equity.Opponent{{Range: r.Hands()}},
		Iterations: iterations,
	}, rng)
}

// EquityVsRanges simulates hero against one opponent per range. Empty
// ranges are dropped; if none remain the result is neutral.
func EquityVsRanges(ctx context.Context, calc *equity.Calculator, hero, board []poker.Card, rs []Range, iterations int, rng *rand.Rand) (equity.Result, error) {
	opps := make([]equity.Opponent, 0, len(rs))
	for _, r := range rs {
		if !r.IsEmpty() {
			opps = append(opps, equity.Opponent{Range: r.Hands()})
		}
	}
	if len(opps) == 0 {
		return equity.Result{}, nil
	}
	return calc.Simulate(ctx, equity.Request{Hero: hero, Board: board, Opponents: opps, Iterations: iterations}, rng)
}

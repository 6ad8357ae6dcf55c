// Package potodds is stateless pot-odds and expected-value arithmetic.
// Every probability is a fraction in [0, 1]; amounts are chips.
package potodds

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNegativeAmount is returned when a pot or bet amount is below zero.
	ErrNegativeAmount = errors.New("amount must not be negative")
	// ErrCardsToCome is returned when outs are converted for anything but 1 or 2 cards.
	ErrCardsToCome = errors.New("cards to come must be 1 or 2")
)

// PotOdds is the share of the final pot hero contributes by calling.
func PotOdds(pot, call float64) float64 {
	if call <= 0 {
		return 0
	}
	return call / (pot + call)
}

// RequiredEquity is the breakeven equity for a call, equal to PotOdds.
func RequiredEquity(pot, call float64) float64 {
	return PotOdds(pot, call)
}

// EV is the expected chip result of calling: win pot+call with probability
// equity, lose call otherwise.
func EV(equity, pot, call float64) float64 {
	return equity*(pot+call) - (1-equity)*call
}

// BreakevenEquity is the equity at which EV is exactly zero.
func BreakevenEquity(pot, call float64) float64 {
	if call <= 0 {
		return 0
	}
	return call / (pot + 2*call)
}

// FoldEquityEV is the value of a pure bluff that takes the pot when
// villain folds and loses the bet otherwise.
func FoldEquityEV(foldRate, pot, bet float64) float64 {
	return foldRate*pot - (1-foldRate)*bet
}

// ImpliedOdds is PotOdds with expected future winnings added to the pot.
func ImpliedOdds(pot, call, futureWinnings float64) float64 {
	if call <= 0 {
		return 0
	}
	return call / (pot + call + futureWinnings)
}

// ReverseImpliedOdds accounts for chips likely lost on later streets.
func ReverseImpliedOdds(pot, call, futureLoss float64) float64 {
	if call+futureLoss <= 0 {
		return 0
	}
	return (call + futureLoss) / (pot + call + futureLoss)
}

// OutsEquity holds the rule-of-thumb and exact chance of hitting.
type OutsEquity struct {
	Outs        int     `json:"outs"`
	CardsToCome int     `json:"cardsToCome"`
	Approximate float64 `json:"approximate"`
	Exact       float64 `json:"exact"`
}

// unseenAfterFlop is the number of cards hero cannot see on the flop.
const unseenAfterFlop = 47

// OutsToEquity converts an out count. With two cards to come the rule of
// four applies and exact is 1 - (47-o)/47 * (46-o)/46; with one card the
// rule of two applies and exact is o/46.
func OutsToEquity(outs, cardsToCome int) (OutsEquity, error) {
	if outs < 0 {
		return OutsEquity{}, fmt.Errorf("%w: outs %d", ErrNegativeAmount, outs)
	}
	o := float64(outs)
	res := OutsEquity{Outs: outs, CardsToCome: cardsToCome}
	switch cardsToCome {
	case 2:
		res.Approximate = math.Min(o*4, 100) / 100
		res.Exact = 1 - (unseenAfterFlop-o)/unseenAfterFlop*(unseenAfterFlop-1-o)/(unseenAfterFlop-1)
	case 1:
		res.Approximate = math.Min(o*2, 100) / 100
		res.Exact = o / (unseenAfterFlop - 1)
	default:
		return OutsEquity{}, fmt.Errorf("%w: got %d", ErrCardsToCome, cardsToCome)
	}
	res.Exact = math.Max(0, math.Min(1, res.Exact))
	return res, nil
}

// Result bundles the call analysis. EV and Profitable are set only when
// equity was supplied.
type Result struct {
	Pot            float64  `json:"pot"`
	Call           float64  `json:"call"`
	PotOdds        float64  `json:"potOdds"`
	RequiredEquity float64  `json:"requiredEquity"`
	Ratio          string   `json:"ratio"`
	Equity         *float64 `json:"equity,omitempty"`
	EV             *float64 `json:"ev,omitempty"`
	Profitable     *bool    `json:"profitable,omitempty"`
}

// IsProfitableCall reports the profitability verdict, false when unknown.
func (r Result) IsProfitableCall() bool {
	return r.Profitable != nil && *r.Profitable
}

// Analyze computes pot odds for a call and, when equity is given, its EV.
func Analyze(pot, call float64, equity *float64) (Result, error) {
	if pot < 0 || call < 0 {
		return Result{}, fmt.Errorf("%w: pot=%v call=%v", ErrNegativeAmount, pot, call)
	}
	res := Result{
		Pot:            pot,
		Call:           call,
		PotOdds:        PotOdds(pot, call),
		RequiredEquity: RequiredEquity(pot, call),
		Ratio:          Ratio(pot, call),
	}
	if equity != nil {
		e := *equity
		ev := EV(e, pot, call)
		profitable := e >= res.RequiredEquity
		res.Equity = &e
		res.EV = &ev
		res.Profitable = &profitable
	}
	return res, nil
}

// ShouldCall reports whether equity meets the pot-odds threshold.
func ShouldCall(equity, pot, call float64) bool {
	return equity >= RequiredEquity(pot, call)
}

// Ratio formats the pot-to-call ratio, e.g. "2.0:1".
func Ratio(pot, call float64) string {
	if call <= 0 {
		return "free"
	}
	return fmt.Sprintf("%.1f:1", pot/call)
}

// BetSize is one candidate bet expressed relative to the pot.
type BetSize struct {
	Label    string  `json:"label"`
	Fraction float64 `json:"fraction"`
	Amount   float64 `json:"amount"`
}

var betFractions = []struct {
	label    string
	fraction float64
}{
	{"1/3 pot", 0.33},
	{"1/2 pot", 0.5},
	{"2/3 pot", 0.67},
	{"3/4 pot", 0.75},
	{"pot", 1.0},
	{"1.5x pot", 1.5},
	{"2x pot", 2.0},
}

// BetSizes lists the standard sizings for a pot, smallest first.
func BetSizes(pot float64) []BetSize {
	sizes := make([]BetSize, len(betFractions))
	for i, f := range betFractions {
		sizes[i] = BetSize{Label: f.label, Fraction: f.fraction, Amount: math.Round(pot*f.fraction*100) / 100}
	}
	return sizes
}

// MinimumDefenseFrequency is how often a player must continue so a bet of
// size bet into pot cannot profit as a pure bluff.
func MinimumDefenseFrequency(pot, bet float64) float64 {
	if pot+bet <= 0 {
		return 0
	}
	return pot / (pot + bet)
}

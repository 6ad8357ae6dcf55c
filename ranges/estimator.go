package ranges

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/lox/pokeradvisor/game"
	"github.com/lox/pokeradvisor/poker"
)

// OpenRanges supplies the position-keyed base opening range, normally
// from the loaded range chart.
type OpenRanges interface {
	OpenRange(pos game.Position) (Range, bool)
}

// Preflop narrowing bands on the strength rank.
const (
	callBandLow    = 10 // exclusive
	callBandHigh   = 50 // exclusive
	raiseBandTop   = 30
	allInBandTop   = 15
	polarizeCutoff = 1.0
	maxPolarized   = 0.5
	unknownBetSize = 0.5
)

// Profile VPIP thresholds for widening or tightening the base range.
const (
	looseVPIP = 30
	tightVPIP = 20
)

// Estimator derives and narrows opponent ranges. It holds no mutable state.
type Estimator struct {
	chart  OpenRanges
	logger *log.Logger
}

// EstimatorOption configures an Estimator.
type EstimatorOption func(*Estimator)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *log.Logger) EstimatorOption {
	return func(e *Estimator) {
		e.logger = logger.WithPrefix("ranges")
	}
}

// NewEstimator returns an estimator reading base ranges from chart.
func NewEstimator(chart OpenRanges, opts ...EstimatorOption) *Estimator {
	e := &Estimator{chart: chart, logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// OpeningRange is the range a player at pos opens with. Loose profiles
// (VPIP above 30) take the top VPIP% of all hands; tight profiles (VPIP
// below 20) keep the top 2*VPIP% of the base range. A nil profile uses
// game.UnknownProfile.
func (e *Estimator) OpeningRange(pos game.Position, profile *game.Profile) Range {
	if profile == nil {
		profile = &game.UnknownProfile
	}
	base, ok := e.chart.OpenRange(pos)
	if !ok {
		e.logger.Debug("no base open range", "position", pos)
	}

	vpip := profile.VPIP / 100
	switch {
	case profile.VPIP > looseVPIP:
		return All().Top(int(169 * vpip))
	case profile.VPIP < tightVPIP:
		return base.Top(max(1, int(float64(base.Len())*vpip*2)))
	default:
		return base
	}
}

// UpdateAfterAction narrows current given one observed action. The result
// is always a subset of current; a fold empties the range and an empty
// range stays empty.
func (e *Estimator) UpdateAfterAction(current Range, action game.PlayerAction, board []poker.Card, profile *game.Profile) Range {
	if current.IsEmpty() || action.Kind == game.Fold {
		return Range{}
	}
	var next Range
	if action.Street == game.Preflop {
		next = updatePreflop(current, action)
	} else {
		next = updatePostflop(current, action)
	}
	e.logger.Debug("range updated",
		"action", action.String(),
		"before", current.Len(),
		"after", next.Len(),
		"board", poker.FormatCards(board))
	return next
}

// ReplayActions applies UpdateAfterAction for each action in order.
func (e *Estimator) ReplayActions(start Range, actions []game.PlayerAction, board []poker.Card, profile *game.Profile) Range {
	r := start
	for _, a := range actions {
		r = e.UpdateAfterAction(r, a, board, profile)
	}
	return r
}

func updatePreflop(current Range, action game.PlayerAction) Range {
	var band Range
	switch action.Kind {
	case game.Call:
		band = current.Filter(func(h poker.StartingHand) bool {
			r := StrengthRank(h)
			return r > callBandLow && r < callBandHigh
		})
	case game.Bet, game.Raise:
		band = current.Filter(func(h poker.StartingHand) bool {
			return StrengthRank(h) <= raiseBandTop || isLowSuitedAce(h)
		})
	case game.AllIn:
		band = current.Filter(func(h poker.StartingHand) bool {
			return StrengthRank(h) <= allInBandTop
		})
	default:
		return current
	}
	// A band that removes everything tells us nothing reliable.
	if band.IsEmpty() {
		return current
	}
	return band
}

// isLowSuitedAce matches the A5s-A2s bluff-raise candidates.
func isLowSuitedAce(h poker.StartingHand) bool {
	return h.Suited && h.High == poker.Ace && h.Low <= poker.Five
}

func updatePostflop(current Range, action game.PlayerAction) Range {
	if action.Kind != game.Bet && action.Kind != game.Raise {
		return current
	}
	ratio, ok := action.BetToPotRatio()
	if !ok {
		ratio = unknownBetSize
	}
	if ratio < polarizeCutoff {
		return current
	}
	keep := min(maxPolarized, 1/(ratio+1))
	return current.Top(max(1, int(float64(current.Len())*keep)))
}

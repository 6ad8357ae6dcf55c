// Package advisor turns a decision point into an action recommendation by
// combining the preflop range chart, opponent range estimates, Monte Carlo
// equity and pot odds.
package advisor

import (
	"context"
	"fmt"
	"io"
	"math"
	rand "math/rand/v2"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/pokeradvisor/equity"
	"github.com/lox/pokeradvisor/game"
	"github.com/lox/pokeradvisor/internal/randutil"
	"github.com/lox/pokeradvisor/poker"
	"github.com/lox/pokeradvisor/potodds"
	"github.com/lox/pokeradvisor/ranges"
)

// DefaultIterations is the postflop simulation budget.
const DefaultIterations = 5000

// Advisor recommends actions. It owns a random source for mixed
// strategies and equity sampling, so a single Advisor must not be used
// from more than one goroutine at a time.
type Advisor struct {
	chart      Chart
	calc       *equity.Calculator
	estimator  *ranges.Estimator
	sizing     Sizing
	thresholds Thresholds
	iterations int
	rng        *rand.Rand
	logger     *log.Logger
}

// Option configures an Advisor.
type Option func(*Advisor)

// WithChart sets the preflop range chart.
func WithChart(chart Chart) Option {
	return func(a *Advisor) {
		a.chart = chart
	}
}

// WithCalculator sets the equity calculator.
func WithCalculator(calc *equity.Calculator) Option {
	return func(a *Advisor) {
		a.calc = calc
	}
}

// WithEstimator sets the opponent range estimator. By default one is
// built over the advisor's chart.
func WithEstimator(e *ranges.Estimator) Option {
	return func(a *Advisor) {
		a.estimator = e
	}
}

// WithSizing replaces the bet sizing table.
func WithSizing(s Sizing) Option {
	return func(a *Advisor) {
		a.sizing = s
	}
}

// WithThresholds replaces the decision thresholds.
func WithThresholds(t Thresholds) Option {
	return func(a *Advisor) {
		a.thresholds = t
	}
}

// WithIterations sets the postflop equity simulation budget.
func WithIterations(n int) Option {
	return func(a *Advisor) {
		if n > 0 {
			a.iterations = n
		}
	}
}

// WithRand sets the random source. Two advisors given equally seeded
// sources make identical recommendations for identical states.
func WithRand(rng *rand.Rand) Option {
	return func(a *Advisor) {
		a.rng = rng
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *log.Logger) Option {
	return func(a *Advisor) {
		a.logger = logger.WithPrefix("advisor")
	}
}

// New builds an advisor over DefaultChart unless options say otherwise.
func New(opts ...Option) *Advisor {
	a := &Advisor{
		chart:      DefaultChart(),
		sizing:     DefaultSizing(),
		thresholds: DefaultThresholds(),
		iterations: DefaultIterations,
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.calc == nil {
		a.calc = equity.NewCalculator(poker.NewEvaluator())
	}
	if a.estimator == nil {
		a.estimator = ranges.NewEstimator(a.chart)
	}
	if a.rng == nil {
		a.rng = randutil.New(time.Now().UnixNano())
	}
	return a
}

// Chart returns the chart the advisor reads.
func (a *Advisor) Chart() Chart {
	return a.chart
}

// Recommend advises hero at one decision point. A nil profile means
// game.UnknownProfile. Errors are returned only for malformed states:
// unparsable cards, wrong card counts, duplicates or negative amounts.
func (a *Advisor) Recommend(ctx context.Context, s GameState, profile *game.Profile) (Recommendation, error) {
	d, err := s.parse()
	if err != nil {
		return Recommendation{}, err
	}
	if profile == nil {
		profile = &game.UnknownProfile
	}

	if d.street == game.Preflop {
		if d.ToCall > 0 {
			return a.preflopFacingRaise(d), nil
		}
		return a.preflopOpen(d), nil
	}

	eq, err := a.postflopEquity(ctx, d, profile)
	if err != nil {
		return Recommendation{}, err
	}
	texture := ClassifyBoard(d.board)
	a.logger.Debug("postflop spot",
		"hand", d.hand,
		"board", poker.FormatCards(d.board),
		"equity", fmt.Sprintf("%.3f", eq),
		"texture", texture.Kind(),
		"to_call", d.ToCall)

	var rec Recommendation
	if d.ToCall > 0 {
		rec = a.facingBet(d, eq, profile)
	} else {
		rec = a.betting(d, eq, texture, profile)
	}
	rec.Equity = ptr(eq)
	return rec, nil
}

func (a *Advisor) preflopOpen(d decision) Recommendation {
	open, _ := a.chart.OpenRange(d.Position)
	if !a.chart.ContainsAlternate(d.hand, open) {
		return Recommendation{
			Action:       ActionFold,
			Confidence:   1.0,
			Reasoning:    []string{fmt.Sprintf("%s is not in the %s open range", d.hand, d.Position)},
			Alternatives: []Alternative{},
		}
	}
	size := a.sizing.OpenSize(d.Position)
	return Recommendation{
		Action:     ActionRaiseMedium,
		Confidence: 1.0,
		BetSize:    ptr(size * d.bigBlind()),
		Reasoning: []string{
			fmt.Sprintf("%s is in the %s open range (%.1f%% of hands)", d.hand, d.Position, open.Share()*100),
			fmt.Sprintf("standard open size: %.1fbb", size),
		},
		Alternatives: []Alternative{},
	}
}

// raiser is the seat that put in the raise hero faces: the first known
// opponent, UTG when none is known.
func (d decision) raiser() game.Position {
	if len(d.OpponentPositions) > 0 {
		return d.OpponentPositions[0]
	}
	return game.UTG
}

func (a *Advisor) preflopFacingRaise(d decision) Recommendation {
	t := a.thresholds
	raiser := d.raiser()
	vs, charted := a.chart.VersusOpen(d.Position, raiser)
	inThreeBet := a.chart.ContainsAlternate(d.hand, vs.ThreeBet)
	inCall := a.chart.ContainsAlternate(d.hand, vs.Call)
	// Without a chart entry for this pairing the tiers decide alone.
	playable := !charted || inThreeBet || inCall

	inPosition := d.Position.InPositionOver(raiser)
	mult := a.sizing.ThreeBetMultiplier(inPosition)
	threeBet := choice{action: ActionRaiseLarge, amount: d.ToCall * mult}
	call := choice{action: ActionCall}
	fold := choice{action: ActionFold}

	tier := ranges.TierOf(d.hand)
	reasons := []string{
		fmt.Sprintf("%s facing a %s open: %s tier (strength rank %d/169)", d.hand, raiser, tier, ranges.StrengthRank(d.hand)),
	}
	if !charted {
		reasons = append(reasons, fmt.Sprintf("no %s vs %s chart entry", d.Position, raiser))
	}
	pos := "out of position"
	if inPosition {
		pos = "in position"
	}
	threeBetReason := fmt.Sprintf("%s: %.1fx 3-bet sizing", pos, mult)

	var rec Recommendation
	switch {
	case tier == ranges.TierPremium:
		rec = a.pure(withFreq(threeBet, 1.0))
		reasons = append(reasons, threeBetReason)
	case tier == ranges.TierStrong && playable:
		rec = a.mixed(withFreq(threeBet, t.StrongRaise), withFreq(call, 1-t.StrongRaise))
		reasons = append(reasons, threeBetReason)
	case tier == ranges.TierMedium && playable:
		rec = a.mixed(withFreq(call, t.MediumCall), withFreq(threeBet, t.MediumRaise), withFreq(fold, t.MediumFold))
	case inThreeBet:
		rec = a.pure(withFreq(threeBet, t.BluffThreeBet), withFreq(call, 1-t.BluffThreeBet))
		reasons = append(reasons, fmt.Sprintf("in the %s vs %s 3-bet range", d.Position, raiser), threeBetReason)
	case inCall && d.ToCall <= t.SmallCall*d.Pot:
		odds := potodds.PotOdds(d.Pot, d.ToCall)
		rec = a.pure(withFreq(call, 1.0))
		reasons = append(reasons, fmt.Sprintf("in the %s vs %s call range", d.Position, raiser),
			fmt.Sprintf("pot odds %.1f%% (%s)", odds*100, potodds.Ratio(d.Pot, d.ToCall)))
	default:
		rec = a.pure(withFreq(fold, 1.0))
		if inCall {
			reasons = append(reasons, fmt.Sprintf("call of %.2f is too large for a pot of %.2f", d.ToCall, d.Pot))
		} else {
			reasons = append(reasons, fmt.Sprintf("not playable against a %s open", raiser))
		}
	}
	rec.Reasoning = reasons
	return rec
}

func (a *Advisor) facingBet(d decision, eq float64, profile *game.Profile) Recommendation {
	t := a.thresholds
	pa, _ := potodds.Analyze(d.Pot, d.ToCall, &eq)
	ev := *pa.EV
	reasons := []string{
		fmt.Sprintf("equity %.1f%% vs required %.1f%%", eq*100, pa.RequiredEquity*100),
		fmt.Sprintf("pot odds %.1f%% (%s)", pa.PotOdds*100, pa.Ratio),
		fmt.Sprintf("EV of calling: %+.2f", ev),
	}
	// A pot-sized raise: call, then bet the pot that results.
	potRaise := choice{action: ActionRaiseMedium, amount: d.Pot + 2*d.ToCall, ratio: 1.0}
	call := choice{action: ActionCall}
	fold := choice{action: ActionFold}
	foldRate := profile.FoldToCBet / 100

	var rec Recommendation
	switch {
	case pa.IsProfitableCall() && eq > t.Raise:
		rec = a.pure(withFreq(potRaise, 0.7), withFreq(call, 0.3))
		rec.EV = ptr(ev)
		reasons = append(reasons, "strong equity: raise for value")
	case pa.IsProfitableCall():
		rec = a.pure(withFreq(call, 0.8))
		rec.EV = ptr(ev)
		reasons = append(reasons, "profitable call")
	case eq >= pa.RequiredEquity-t.MarginalBand && potodds.FoldEquityEV(foldRate, d.Pot, d.ToCall) > 0:
		rec = a.mixed(withFreq(call, t.DrawChase), withFreq(fold, 1-t.DrawChase))
		rec.EV = ptr(ev)
		reasons = append(reasons, fmt.Sprintf("marginal: within %.0f%% of the price, opponent folds %.0f%% to bets", t.MarginalBand*100, profile.FoldToCBet))
	case profile.FoldToCBet > t.BluffRaiseFold && eq > t.BluffRaiseEquity:
		rec = a.pure(withFreq(potRaise, 0.5), withFreq(fold, 0.4), withFreq(call, 0.1))
		reasons = append(reasons, fmt.Sprintf("opponent folds %.0f%% of the time: bluff raise", profile.FoldToCBet))
	default:
		rec = a.pure(withFreq(fold, 0.85))
		rec.EV = ptr(ev)
		reasons = append(reasons, "not enough equity to continue")
	}
	rec.Reasoning = reasons
	return rec
}

func (a *Advisor) betting(d decision, eq float64, texture Texture, profile *game.Profile) Recommendation {
	t := a.thresholds
	s := a.sizing
	kind := texture.Kind()
	check := choice{action: ActionCheck}
	bet := func(ratio float64) choice {
		return choice{action: betAction(ratio), amount: d.Pot * ratio, ratio: ratio}
	}
	reasons := []string{
		fmt.Sprintf("equity %.1f%%", eq*100),
		fmt.Sprintf("board: %s", kind),
		fmt.Sprintf("SPR: %s", formatSPR(d.SPR())),
	}

	var rec Recommendation
	switch {
	case eq > t.Value:
		ratio := s.StrongValue
		label := "strong value bet"
		if eq > t.Nuts {
			ratio, label = s.NutsValue, "near-nut value bet"
		}
		rec = a.pure(withFreq(bet(ratio), 0.85))
		reasons = append(reasons, label)
	case eq > t.ThinValue:
		rec = a.mixed(withFreq(bet(s.ThinValue), t.ThinBet), withFreq(check, 1-t.ThinBet))
		reasons = append(reasons, "thin value")
	case eq > t.Showdown:
		rec = a.mixed(withFreq(check, 1-t.ShowdownBet), withFreq(bet(s.CBetFraction(kind)), t.ShowdownBet))
		reasons = append(reasons, "showdown value: mostly check")
	default:
		bluff := t.Bluff
		if profile.FoldToCBet > t.FoldyCBet {
			bluff = t.FoldyBluff
			reasons = append(reasons, fmt.Sprintf("opponent folds to c-bets %.0f%% of the time", profile.FoldToCBet))
		}
		rec = a.mixed(withFreq(check, 1-bluff), withFreq(bet(s.CBetFraction(kind)), bluff))
		reasons = append(reasons, "no showdown value: check or bluff")
	}
	rec.Reasoning = reasons
	return rec
}

func formatSPR(spr float64) string {
	if math.IsInf(spr, 1) {
		return "inf"
	}
	return fmt.Sprintf("%.1f", spr)
}

// postflopEquity simulates hero against every opponent. Opponents with a
// known seat start from their opening range narrowed by their actions;
// the rest hold random cards. Folded opponents drop out.
func (a *Advisor) postflopEquity(ctx context.Context, d decision, profile *game.Profile) (float64, error) {
	n := d.OpponentCount()
	opps := make([]equity.Opponent, 0, n)
	for i := 0; i < n; i++ {
		if i >= len(d.OpponentPositions) {
			opps = append(opps, equity.Opponent{})
			continue
		}
		r := a.estimator.OpeningRange(d.OpponentPositions[i], profile)
		if r.IsEmpty() {
			r = ranges.All()
		}
		if i < len(d.History) {
			r = a.estimator.ReplayActions(r, d.History[i], d.board, profile)
		}
		if r.IsEmpty() {
			a.logger.Debug("opponent folded", "position", d.OpponentPositions[i])
			continue
		}
		a.logger.Debug("opponent range", "position", d.OpponentPositions[i], "hands", r.Len(), "combos", r.Combos())
		opps = append(opps, equity.Opponent{Range: r.Hands()})
	}
	if len(opps) == 0 {
		return equity.Result{}.Equity(), nil
	}
	res, err := a.calc.Simulate(ctx, equity.Request{
		Hero:       d.hole,
		Board:      d.board,
		Opponents:  opps,
		Iterations: a.iterations,
	}, a.rng)
	if err != nil {
		return 0, err
	}
	return res.Equity(), nil
}

// choice is one candidate action in a strategy. Amount and ratio are zero
// for actions that put no chips in.
type choice struct {
	action Action
	amount float64
	ratio  float64
	freq   float64
}

func withFreq(c choice, freq float64) choice {
	c.freq = freq
	return c
}

// pure recommends the first choice and lists the rest as alternatives.
func (a *Advisor) pure(choices ...choice) Recommendation {
	return recommend(choices, 0)
}

// mixed draws one choice by frequency from the advisor's random source and
// lists the others as alternatives.
func (a *Advisor) mixed(choices ...choice) Recommendation {
	u := a.rng.Float64()
	picked := len(choices) - 1
	acc := 0.0
	for i, c := range choices {
		acc += c.freq
		if u < acc {
			picked = i
			break
		}
	}
	return recommend(choices, picked)
}

func recommend(choices []choice, picked int) Recommendation {
	c := choices[picked]
	rec := Recommendation{
		Action:       c.action,
		Confidence:   c.freq,
		Alternatives: make([]Alternative, 0, len(choices)-1),
	}
	if c.amount > 0 {
		rec.BetSize = ptr(c.amount)
	}
	if c.ratio > 0 {
		rec.SizingRatio = ptr(c.ratio)
	}
	for i, alt := range choices {
		if i != picked && alt.freq > 0 {
			rec.Alternatives = append(rec.Alternatives, Alternative{Action: alt.action, Frequency: alt.freq})
		}
	}
	return rec
}

// QuickAdvice recommends for a simple spot and renders it as text. An
// unknown position is treated as the button; hero's stack is 1000.
func (a *Advisor) QuickAdvice(ctx context.Context, hole, board []string, position string, pot, toCall float64, opponents int) (string, error) {
	pos, err := game.ParsePosition(position)
	if err != nil {
		pos = game.BTN
	}
	s := GameState{
		Hole:      hole,
		Position:  pos,
		Stack:     1000,
		Board:     board,
		Pot:       pot,
		ToCall:    toCall,
		Opponents: opponents,
	}
	if len(board) > 0 {
		street, err := game.StreetForBoard(len(board))
		if err != nil {
			return "", fmt.Errorf("%w: %w", poker.ErrInvalidHandShape, err)
		}
		s.Street = street
	}
	rec, err := a.Recommend(ctx, s, nil)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(rec.String(), "\n"), nil
}

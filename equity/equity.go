// Package equity estimates how often a hand wins at showdown, either by
// Monte Carlo simulation against uniform or ranged opponents or by exact
// enumeration of the next card.
package equity

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	rand "math/rand/v2"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/pokeradvisor/internal/randutil"
	"github.com/lox/pokeradvisor/poker"
)

var (
	// ErrInvalidIterations is returned when a simulation asks for no trials.
	ErrInvalidIterations = errors.New("iterations must be positive")
	// ErrInvalidOpponents is returned for zero opponents or more than the deck can seat.
	ErrInvalidOpponents = errors.New("invalid opponent count")
)

// shardCount fixes how iterations are split so tallies do not depend on
// the number of CPUs.
const shardCount = 8

// Result tallies trial outcomes. A zero IterationsRun means no trial could
// be dealt; the rate methods then report the neutral 50/0/50 split.
type Result struct {
	Wins          int `json:"wins"`
	Ties          int `json:"ties"`
	Losses        int `json:"losses"`
	IterationsRun int `json:"iterations"`
}

// WinRate returns the fraction of trials won outright.
func (r Result) WinRate() float64 {
	if r.IterationsRun == 0 {
		return 0.5
	}
	return float64(r.Wins) / float64(r.IterationsRun)
}

// TieRate returns the fraction of trials tied.
func (r Result) TieRate() float64 {
	if r.IterationsRun == 0 {
		return 0
	}
	return float64(r.Ties) / float64(r.IterationsRun)
}

// LossRate returns the fraction of trials lost.
func (r Result) LossRate() float64 {
	if r.IterationsRun == 0 {
		return 0.5
	}
	return float64(r.Losses) / float64(r.IterationsRun)
}

// Equity counts wins as 1 and ties as 0.5.
func (r Result) Equity() float64 {
	return r.WinRate() + r.TieRate()/2
}

// Neutral reports whether no trial was counted.
func (r Result) Neutral() bool {
	return r.IterationsRun == 0
}

// ConfidenceInterval returns the 95% confidence interval for equity
func (r Result) ConfidenceInterval() (lower, upper float64) {
	if r.IterationsRun == 0 {
		return 0, 1
	}
	e := r.Equity()
	margin := 1.96 * math.Sqrt(e*(1-e)/float64(r.IterationsRun))
	return math.Max(0, e-margin), math.Min(1, e+margin)
}

func (r *Result) add(o Result) {
	r.Wins += o.Wins
	r.Ties += o.Ties
	r.Losses += o.Losses
	r.IterationsRun += o.IterationsRun
}

// Opponent describes one player in the simulation. An empty Range means
// a uniformly random holding.
type Opponent struct {
	Range []poker.StartingHand
}

// Uniform returns n opponents holding uniformly random cards.
func Uniform(n int) []Opponent {
	return make([]Opponent, n)
}

// Request is one simulation.
type Request struct {
	Hero       []poker.Card
	Board      []poker.Card
	Opponents  []Opponent
	Iterations int
}

// Calculator runs equity simulations with an injected evaluator.
type Calculator struct {
	eval    *poker.Evaluator
	workers int
	logger  *log.Logger
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithWorkers bounds how many shards run concurrently.
func WithWorkers(n int) Option {
	return func(c *Calculator) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *log.Logger) Option {
	return func(c *Calculator) {
		c.logger = logger.WithPrefix("equity")
	}
}

// NewCalculator returns a calculator using eval for all hand comparisons.
func NewCalculator(eval *poker.Evaluator, opts ...Option) *Calculator {
	c := &Calculator{
		eval:    eval,
		workers: min(runtime.NumCPU(), shardCount),
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Evaluator returns the evaluator the calculator was built with.
func (c *Calculator) Evaluator() *poker.Evaluator {
	return c.eval
}

// opponentPool is the live combos of one ranged opponent, or nil for a
// uniform opponent.
type opponentPool struct {
	ranged bool
	combos []poker.Hand
}

// Simulate runs req.Iterations Monte Carlo trials. Identical inputs and
// rng state give identical tallies. Each ranged opponent draws a live combo
// uniformly, which weights each starting hand by its remaining combo count.
// An opponent whose range has no live combo is skipped for that trial, and
// a trial with nobody left to compare against is not counted.
func (c *Calculator) Simulate(ctx context.Context, req Request, rng *rand.Rand) (Result, error) {
	dead, err := validate(req)
	if err != nil {
		return Result{}, err
	}

	pools := make([]opponentPool, len(req.Opponents))
	anyLive := false
	for i, opp := range req.Opponents {
		if len(opp.Range) == 0 {
			anyLive = true
			continue
		}
		pools[i].ranged = true
		for _, sh := range opp.Range {
			pools[i].combos = append(pools[i].combos, sh.Expand(dead)...)
		}
		if len(pools[i].combos) > 0 {
			anyLive = true
		}
	}
	if !anyLive {
		c.logger.Debug("no live opponent combos; returning neutral result")
		return Result{}, nil
	}

	start := time.Now()
	shards := min(shardCount, req.Iterations)
	results := make([]Result, shards)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for s := 0; s < shards; s++ {
		n := req.Iterations / shards
		if s < req.Iterations%shards {
			n++
		}
		// Child streams are drawn in shard order before any goroutine starts.
		shardRng := randutil.Split(rng)
		g.Go(func() error {
			w := worker{
				eval:  c.eval,
				hero:  poker.NewHand(req.Hero...),
				board: poker.NewHand(req.Board...),
				need:  5 - len(req.Board),
				dead:  dead,
				pools: pools,
				rng:   shardRng,
				deck:  poker.NewDeck(shardRng, dead),
			}
			r, err := w.run(gctx, n)
			results[s] = r
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	var total Result
	for _, r := range results {
		total.add(r)
	}
	c.logger.Debug("simulation complete",
		"iterations", total.IterationsRun,
		"opponents", len(req.Opponents),
		"equity", fmt.Sprintf("%.3f", total.Equity()),
		"elapsed", time.Since(start))
	return total, nil
}

// PreflopEquity simulates hero against n uniform opponents with no board.
func (c *Calculator) PreflopEquity(ctx context.Context, hero []poker.Card, opponents, iterations int, rng *rand.Rand) (Result, error) {
	return c.Simulate(ctx, Request{Hero: hero, Opponents: Uniform(opponents), Iterations: iterations}, rng)
}

func validate(req Request) (poker.Hand, error) {
	if len(req.Hero) != 2 || len(req.Board) > 5 {
		return 0, fmt.Errorf("%w: hero=%d board=%d", poker.ErrInvalidHandShape, len(req.Hero), len(req.Board))
	}
	if req.Iterations <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidIterations, req.Iterations)
	}
	dead, err := poker.CardSet(req.Hero, req.Board)
	if err != nil {
		return 0, err
	}
	n := len(req.Opponents)
	if n == 0 || dead.CountCards()+(5-len(req.Board))+2*n > 52 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidOpponents, n)
	}
	return dead, nil
}

type worker struct {
	eval  *poker.Evaluator
	hero  poker.Hand
	board poker.Hand
	need  int
	dead  poker.Hand
	pools []opponentPool
	rng   *rand.Rand

	deck *poker.Deck
	opps []poker.Hand
}

// comboRetries bounds random redraws before scanning the pool for a combo
// that avoids cards already dealt this trial.
const comboRetries = 8

func (w *worker) run(ctx context.Context, n int) (Result, error) {
	var r Result
	w.opps = make([]poker.Hand, 0, len(w.pools))
	for i := 0; i < n; i++ {
		if i&1023 == 0 {
			if err := ctx.Err(); err != nil {
				return r, err
			}
		}
		switch w.trial() {
		case outcomeWin:
			r.Wins++
		case outcomeTie:
			r.Ties++
		case outcomeLoss:
			r.Losses++
		default:
			continue
		}
		r.IterationsRun++
	}
	return r, nil
}

type outcome uint8

const (
	outcomeSkipped outcome = iota
	outcomeWin
	outcomeTie
	outcomeLoss
)

func (w *worker) trial() outcome {
	used := w.dead
	w.opps = w.opps[:0]

	for _, p := range w.pools {
		if !p.ranged || len(p.combos) == 0 {
			continue
		}
		if combo, ok := w.pickCombo(p.combos, used); ok {
			w.opps = append(w.opps, combo)
			used |= combo
		}
	}

	w.deck.Reset(used)
	board := w.board
	for i := 0; i < w.need; i++ {
		board.AddCard(w.deck.DealOne())
	}
	for _, p := range w.pools {
		if !p.ranged {
			w.opps = append(w.opps, poker.NewHand(w.deck.DealOne(), w.deck.DealOne()))
		}
	}
	if len(w.opps) == 0 {
		return outcomeSkipped
	}

	heroRank := w.eval.EvaluateHand(w.hero | board)
	tied := false
	for _, opp := range w.opps {
		switch poker.CompareHands(heroRank, w.eval.EvaluateHand(opp|board)) {
		case -1:
			return outcomeLoss
		case 0:
			tied = true
		}
	}
	if tied {
		return outcomeTie
	}
	return outcomeWin
}

func (w *worker) pickCombo(combos []poker.Hand, used poker.Hand) (poker.Hand, bool) {
	for i := 0; i < comboRetries; i++ {
		if c := combos[w.rng.IntN(len(combos))]; !c.Overlaps(used) {
			return c, true
		}
	}
	offset := w.rng.IntN(len(combos))
	for i := range combos {
		if c := combos[(offset+i)%len(combos)]; !c.Overlaps(used) {
			return c, true
		}
	}
	return 0, false
}

package display

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokeradvisor/advisor"
	"github.com/lox/pokeradvisor/equity"
	"github.com/lox/pokeradvisor/game"
	"github.com/lox/pokeradvisor/poker"
	"github.com/lox/pokeradvisor/potodds"
	"github.com/lox/pokeradvisor/ranges"
)

func plain() (*Printer, *bytes.Buffer) {
	var buf bytes.Buffer
	return New(&buf, WithColor(false)), &buf
}

func TestCards(t *testing.T) {
	t.Parallel()
	p, _ := plain()
	assert.Equal(t, "A♠ K♥", p.Cards(poker.MustParseCards("AsKh")))
	assert.Equal(t, "-", p.Cards(nil))
}

func TestEquity(t *testing.T) {
	t.Parallel()
	p, buf := plain()
	res := equity.Result{Wins: 800, Ties: 20, Losses: 180, IterationsRun: 1000}
	p.Equity(poker.MustParseCards("AhAd"), nil, res, 1500*time.Microsecond)

	out := buf.String()
	assert.Contains(t, out, "Win   80.0%")
	assert.Contains(t, out, "Tie   2.0%")
	assert.Contains(t, out, "Lose  18.0%")
	assert.Contains(t, out, "Equity 81.0%")
	assert.Contains(t, out, "1000 iterations in 2ms")
}

func TestOuts(t *testing.T) {
	t.Parallel()
	p, buf := plain()
	outs := equity.Outs{
		Count:        2,
		Cards:        poker.MustParseCards("2h3h"),
		Unseen:       47,
		Improvements: map[string]int{"Flush": 2},
	}
	hit := potodds.OutsEquity{Outs: 2, CardsToCome: 2, Approximate: 0.08, Exact: 0.084}
	p.Outs(poker.MustParseCards("AhKh"), poker.MustParseCards("7h8hQc"), outs, &hit)

	out := buf.String()
	assert.Contains(t, out, "Outs: 2 of 47 unseen")
	assert.Contains(t, out, "2♥ 3♥")
	assert.Contains(t, out, "Flush")
	assert.Contains(t, out, "Chance to hit: 8.4% (rule of thumb 8%)")
}

func TestOdds(t *testing.T) {
	t.Parallel()
	p, buf := plain()
	eq := 0.4
	res, err := potodds.Analyze(100, 50, &eq)
	require.NoError(t, err)
	p.Odds(res, nil)

	out := buf.String()
	assert.Contains(t, out, "Required equity: 33.3%")
	assert.Contains(t, out, "EV of calling:   +30.00  CALL")
	assert.Contains(t, out, "Minimum defense: 66.7%")
	assert.Contains(t, out, "Bet sizes:")
}

func TestRange(t *testing.T) {
	t.Parallel()
	p, buf := plain()
	r := ranges.MustParse("AA,AKs")
	ex := ranges.Exploit{Kind: ranges.ExploitValueBet, Sizing: "large", Reasoning: []string{"tight"}}
	p.Range(game.UTG, r, &ex)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.GreaterOrEqual(t, len(lines), 14)
	assert.Contains(t, lines[0], "UTG range: 2 hands, 10 combos")
	assert.True(t, strings.HasPrefix(lines[1], "AA  AKs .   "))
	assert.Contains(t, buf.String(), "Exploit: value_bet large")
}

func TestRecommendation(t *testing.T) {
	t.Parallel()
	p, buf := plain()
	size, ratio, eq := 2.5, 0.0, 0.72
	p.Recommendation(advisor.Recommendation{
		Action:       advisor.ActionRaiseMedium,
		Confidence:   0.75,
		BetSize:      &size,
		SizingRatio:  &ratio,
		Equity:       &eq,
		Reasoning:    []string{"strong hand"},
		Alternatives: []advisor.Alternative{{Action: advisor.ActionCall, Frequency: 0.25}},
	})

	out := buf.String()
	assert.Contains(t, out, "Recommendation: RAISE_MEDIUM 2.50 confidence 75%")
	assert.Contains(t, out, "Equity: 72.0%")
	assert.Contains(t, out, "- strong hand")
	assert.Contains(t, out, "call")
}

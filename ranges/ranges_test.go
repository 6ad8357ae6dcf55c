package ranges

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokeradvisor/equity"
	"github.com/lox/pokeradvisor/game"
	"github.com/lox/pokeradvisor/internal/randutil"
	"github.com/lox/pokeradvisor/poker"
)

type staticChart map[game.Position]Range

func (c staticChart) OpenRange(pos game.Position) (Range, bool) {
	r, ok := c[pos]
	return r, ok
}

const utgOpen = "AA-88,AKs,AQs,AJs,ATs,AKo,AQo,KQs,KJs,QJs,JTs"

func newEstimator() *Estimator {
	return NewEstimator(staticChart{game.UTG: MustParse(utgOpen)})
}

func hand(s string) poker.StartingHand {
	return poker.MustParseStartingHand(s)
}

func TestStrengthRank(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 1, StrengthRank(hand("AA")))
	assert.Equal(t, 4, StrengthRank(hand("AKs")))
	assert.Equal(t, 6, StrengthRank(hand("AKo")))
	assert.Equal(t, 60, StrengthRank(hand("J8s")))
	assert.Equal(t, 169, StrengthRank(hand("72o")))

	assert.Equal(t, TierPremium, TierOf(hand("AJs")))
	assert.Equal(t, TierStrong, TierOf(hand("99")))
	assert.Equal(t, TierMedium, TierOf(hand("A6s")))
	assert.Equal(t, TierWeak, TierOf(hand("T8s")))

	seen := map[int]bool{}
	for _, h := range poker.AllStartingHands() {
		r := StrengthRank(h)
		require.True(t, r >= 1 && r <= 169, h.String())
		require.False(t, seen[r], "rank %d reused", r)
		seen[r] = true
	}
}

func TestParse(t *testing.T) {
	t.Parallel()
	tests := []struct {
		notation string
		want     []string
	}{
		{"TT+", []string{"AA", "KK", "QQ", "JJ", "TT"}},
		{"A5s-A2s", []string{"A5s", "A4s", "A3s", "A2s"}},
		{"KJo+", []string{"KQo", "KJo"}},
		{"22-44", []string{"44", "33", "22"}},
		{"AK", []string{"AKs", "AKo"}},
		{"AA, KK ,", []string{"AA", "KK"}},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.notation, func(t *testing.T) {
			t.Parallel()
			r, err := Parse(tt.notation)
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.want, r.Strings())
		})
	}

	for _, bad := range []string{"AAs", "XK", "AKs-QJs", "A5s-A2o", "AKx", "A-K-Q"} {
		_, err := Parse(bad)
		assert.ErrorIs(t, err, ErrInvalidNotation, bad)
	}
}

func TestRangeCombos(t *testing.T) {
	t.Parallel()
	r := MustParse("AA,AKs,AKo")
	assert.Equal(t, 3, r.Len())
	assert.Equal(t, 22, r.Combos())
	assert.InDelta(t, 22.0/1326, r.Share(), 1e-12)
	assert.Equal(t, 1326, All().Combos())
	assert.True(t, r.Contains(hand("AKo")))
	assert.False(t, r.Contains(hand("AQs")))

	best, ok := r.Best()
	require.True(t, ok)
	assert.Equal(t, "AA", best.String())
	_, ok = Range{}.Best()
	assert.False(t, ok)

	combos := RangeToCombos(MustParse("AA,AKs"), poker.NewHand(poker.MustParseCards("As")...))
	assert.Len(t, combos, 3+3)
	assert.Equal(t, 6, LiveCombos(MustParse("AA,AKs"), poker.NewHand(poker.MustParseCards("As")...)))
}

func TestOpeningRange(t *testing.T) {
	t.Parallel()
	e := newEstimator()
	base := MustParse(utgOpen)

	assert.Equal(t, base, e.OpeningRange(game.UTG, nil))
	assert.Equal(t, base, e.OpeningRange(game.UTG, &game.TightAggressive))

	loose := e.OpeningRange(game.UTG, &game.LooseAggressive)
	assert.Equal(t, 54, loose.Len())
	assert.True(t, loose.Contains(hand("A4o")))
	assert.False(t, loose.Contains(hand("J8s")))

	tight := e.OpeningRange(game.UTG, &game.TightPassive)
	assert.ElementsMatch(t, []string{"AA", "KK", "QQ", "AKs", "JJ", "AKo"}, tight.Strings())
	assert.True(t, tight.SubsetOf(base))

	// A seat without a base range yields an empty range.
	assert.True(t, e.OpeningRange(game.SB, nil).IsEmpty())
}

func TestUpdateAfterActionPreflop(t *testing.T) {
	t.Parallel()
	e := newEstimator()
	all := All()

	call := e.UpdateAfterAction(all, game.PlayerAction{Street: game.Preflop, Kind: game.Call}, nil, nil)
	assert.Equal(t, 39, call.Len())
	assert.False(t, call.Contains(hand("AA")))
	assert.True(t, call.Contains(hand("99")))

	raise := e.UpdateAfterAction(all, game.PlayerAction{Street: game.Preflop, Kind: game.Raise, Amount: 6}, nil, nil)
	assert.Equal(t, 32, raise.Len())
	assert.True(t, raise.Contains(hand("A2s")))
	assert.False(t, raise.Contains(hand("A2o")))

	shove := e.UpdateAfterAction(all, game.PlayerAction{Street: game.Preflop, Kind: game.AllIn}, nil, nil)
	assert.Equal(t, 15, shove.Len())

	// A band that would empty the range leaves it unchanged.
	premiums := MustParse("AA,KK")
	assert.Equal(t, premiums, e.UpdateAfterAction(premiums, game.PlayerAction{Street: game.Preflop, Kind: game.Call}, nil, nil))
}

func TestUpdateAfterActionFold(t *testing.T) {
	t.Parallel()
	e := newEstimator()
	for _, street := range []game.Street{game.Preflop, game.Flop, game.River} {
		r := e.UpdateAfterAction(All(), game.PlayerAction{Street: street, Kind: game.Fold}, nil, nil)
		assert.True(t, r.IsEmpty(), street.String())
	}
	// Empty in, empty out, whatever the action.
	assert.True(t, e.UpdateAfterAction(Range{}, game.PlayerAction{Street: game.Flop, Kind: game.Call}, nil, nil).IsEmpty())
}

func TestUpdateAfterActionPostflop(t *testing.T) {
	t.Parallel()
	e := newEstimator()
	board := poker.MustParseCards("Kh7d2c")
	all := All()

	for _, kind := range []game.ActionKind{game.Check, game.Call} {
		assert.Equal(t, all, e.UpdateAfterAction(all, game.PlayerAction{Street: game.Flop, Kind: kind}, board, nil))
	}

	small := e.UpdateAfterAction(all, game.PlayerAction{Street: game.Flop, Kind: game.Bet, Amount: 50, Pot: 100}, board, nil)
	assert.Equal(t, all, small)

	unknown := e.UpdateAfterAction(all, game.PlayerAction{Street: game.Flop, Kind: game.Bet}, board, nil)
	assert.Equal(t, all, unknown)

	pot := e.UpdateAfterAction(all, game.PlayerAction{Street: game.Flop, Kind: game.Bet, Amount: 100, Pot: 100}, board, nil)
	assert.Equal(t, 84, pot.Len())

	overbet := e.UpdateAfterAction(all, game.PlayerAction{Street: game.Turn, Kind: game.Raise, Amount: 200, Pot: 100}, board, nil)
	assert.Equal(t, 56, overbet.Len())
	assert.True(t, overbet.Contains(hand("AA")))
	assert.True(t, overbet.SubsetOf(pot))

	tiny := MustParse("72o")
	assert.Equal(t, tiny, e.UpdateAfterAction(tiny, game.PlayerAction{Street: game.River, Kind: game.Bet, Amount: 300, Pot: 100}, board, nil))
}

func TestReplayActionsIsMonotone(t *testing.T) {
	t.Parallel()
	e := newEstimator()
	actions := []game.PlayerAction{
		{Street: game.Preflop, Kind: game.Raise, Amount: 6, Pot: 3},
		{Street: game.Flop, Kind: game.Bet, Amount: 20, Pot: 13},
		{Street: game.Turn, Kind: game.Call},
		{Street: game.River, Kind: game.Bet, Amount: 80, Pot: 53},
	}
	prev := All()
	for i := range actions {
		next := e.ReplayActions(All(), actions[:i+1], nil, nil)
		assert.True(t, next.SubsetOf(prev), "step %d", i)
		prev = next
	}
	assert.False(t, prev.IsEmpty())

	folded := e.ReplayActions(All(), append(actions, game.PlayerAction{Street: game.River, Kind: game.Fold}), nil, nil)
	assert.True(t, folded.IsEmpty())
}

func TestEquityVsRange(t *testing.T) {
	t.Parallel()
	calc := equity.NewCalculator(poker.NewEvaluator())
	ctx := context.Background()

	neutral, err := EquityVsRange(ctx, calc, poker.MustParseCards("AsAh"), nil, Range{}, 1000, randutil.New(1))
	require.NoError(t, err)
	assert.True(t, neutral.Neutral())
	assert.InDelta(t, 0.5, neutral.Equity(), 1e-9)

	r, err := EquityVsRange(ctx, calc, poker.MustParseCards("AsAh"), nil, MustParse("72o"), 5000, randutil.New(1))
	require.NoError(t, err)
	assert.Greater(t, r.Equity(), 0.8)

	multi, err := EquityVsRanges(ctx, calc, poker.MustParseCards("AsAh"), nil, []Range{MustParse("KK"), {}, MustParse("QQ")}, 2000, randutil.New(1))
	require.NoError(t, err)
	assert.Equal(t, 2000, multi.IterationsRun)
	assert.Less(t, multi.Equity(), r.Equity())
}

func TestSuggestExploit(t *testing.T) {
	t.Parallel()
	tight := MustParse("QQ+,AKs")
	noFold := game.Profile{FoldToCBet: 40}

	ex := SuggestExploit(tight, hand("AA"), &noFold)
	assert.Equal(t, ExploitValueBet, ex.Kind)
	assert.Equal(t, "large", ex.Sizing)

	ex = SuggestExploit(tight, hand("JJ"), &noFold)
	assert.Equal(t, ExploitFoldOrBluff, ex.Kind)

	ex = SuggestExploit(All(), hand("JJ"), &noFold)
	assert.Equal(t, ExploitValueBet, ex.Kind)
	assert.Equal(t, "medium", ex.Sizing)

	ex = SuggestExploit(MustParse("22+,A2s+,K9s+,Q9s+,J9s+,T9s,A9o+,KTo+"), hand("JJ"), &noFold)
	assert.Equal(t, ExploitNone, ex.Kind)
	assert.Empty(t, ex.Reasoning)

	ex = SuggestExploit(tight, hand("JJ"), &game.Profile{FoldToCBet: 60})
	assert.Equal(t, ExploitBluffCBet, ex.Kind)
	assert.Equal(t, "small", ex.Sizing)
	assert.Len(t, ex.Reasoning, 2)
}

func TestGrid(t *testing.T) {
	t.Parallel()
	g := Grid(MustParse("AA,AKs,72o"))
	lines := strings.Split(strings.TrimRight(g, "\n"), "\n")
	require.Len(t, lines, 13)
	assert.True(t, strings.HasPrefix(lines[0], "AA  AKs"))
	assert.Contains(t, lines[12], "72o")
	assert.NotContains(t, g, "AKo")
}

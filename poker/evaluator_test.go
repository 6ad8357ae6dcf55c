package poker

import (
	rand "math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustEval(t *testing.T, e *Evaluator, hole, board string) HandRank {
	t.Helper()
	r, err := e.Evaluate(MustParseCards(hole), MustParseCards(board))
	require.NoError(t, err)
	return r
}

func TestEvaluateClasses(t *testing.T) {
	t.Parallel()
	e := NewEvaluator()

	tests := []struct {
		hole, board string
		want        HandClass
	}{
		{"AhKh", "QhJhTh", RoyalFlush},
		{"9h8h", "7h6h5h2c3d", StraightFlush},
		{"AhAd", "AcAs2h", FourOfAKind},
		{"KhKd", "Kc2s2h", FullHouse},
		{"Ah9h", "2h5h7hKcKd", Flush},
		{"9c8d", "7h6s5c", Straight},
		{"Ah2d", "3c4s5h", Straight},
		{"7c7d", "7hKs2c", ThreeOfAKind},
		{"AcAd", "KhKs2c", TwoPair},
		{"AcAd", "Kh7s2c", OnePair},
		{"AcJd", "Kh7s2c", HighCard},
	}
	for _, tt := range tests {
		t.Run(tt.hole+tt.board, func(t *testing.T) {
			t.Parallel()
			r := mustEval(t, e, tt.hole, tt.board)
			assert.Equal(t, tt.want, r.Class())
			assert.Equal(t, tt.want.String(), r.Name())
		})
	}
}

func TestRoyalFlushIsBest(t *testing.T) {
	t.Parallel()
	e := NewEvaluator()
	royal := mustEval(t, e, "AhKh", "QhJhTh")
	assert.Equal(t, BestHandRank, royal)
	assert.InDelta(t, 100.0, royal.Percentile(), 1e-9)

	quads := mustEval(t, e, "AcAd", "AhAsKc")
	kingHighSF := mustEval(t, e, "KhQh", "JhTh9h")
	assert.True(t, royal.Beats(quads))
	assert.True(t, royal.Beats(kingHighSF))
	assert.Equal(t, StraightFlush, kingHighSF.Class())
}

func TestWheelOrdering(t *testing.T) {
	t.Parallel()
	e := NewEvaluator()
	wheel := mustEval(t, e, "Ah2d", "3c4s5h")
	sixHigh := mustEval(t, e, "2h3d", "4c5s6h")
	pair := mustEval(t, e, "2h2d", "4c5s9h")
	aceHigh := mustEval(t, e, "AhKd", "Qc9s7h")

	assert.True(t, sixHigh.Beats(wheel))
	assert.True(t, wheel.Beats(pair))
	assert.True(t, wheel.Beats(aceHigh))

	// A wheel plus a six plays as the six-high straight.
	assert.Equal(t, sixHigh, mustEval(t, e, "Ah2d", "3c4s5h6d"))
}

func TestWorstHand(t *testing.T) {
	t.Parallel()
	e := NewEvaluator()
	worst := mustEval(t, e, "7c5d", "4h3s2c")
	assert.Equal(t, WorstHandRank, worst)
	assert.Equal(t, HandRank(7462), worst)
	assert.InDelta(t, 0.0, worst.Percentile(), 1e-9)
}

func TestKickersAndTies(t *testing.T) {
	t.Parallel()
	e := NewEvaluator()

	tests := []struct {
		name           string
		stronger, weak [2]string
	}{
		{"pair kicker", [2]string{"AcKd", "Ah7s2c"}, [2]string{"AcQd", "Ah7s2c"}},
		{"higher pair", [2]string{"KcKd", "9h7s2c"}, [2]string{"QcQd", "9h7s2c"}},
		{"two pair high pair first", [2]string{"AcAd", "2h2s7c"}, [2]string{"KcKd", "QhQs7c"}},
		{"two pair kicker", [2]string{"AcAd", "KhKsQc"}, [2]string{"AcAd", "KhKsJc"}},
		{"high card second kicker", [2]string{"AcKd", "9h7s2c"}, [2]string{"AcQd", "Jh9s8c"}},
		{"high card beats lower top card", [2]string{"Ac2d", "3h4s6c"}, [2]string{"Kc9d", "8h7s5c"}},
		{"flush high card", [2]string{"Ah2h", "3h4h6h"}, [2]string{"KhQh", "JhTh8h"}},
		{"full house trips first", [2]string{"3c3d", "3h2s2c"}, [2]string{"2h2d", "2cAsAc"}},
		{"quads kicker", [2]string{"9c9d", "9h9sAc"}, [2]string{"9c9d", "9h9sKc"}},
		{"trips kicker", [2]string{"9c9d", "9hAsKc"}, [2]string{"9c9d", "9hAsQc"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a := mustEval(t, e, tt.stronger[0], tt.stronger[1])
			b := mustEval(t, e, tt.weak[0], tt.weak[1])
			assert.Equal(t, 1, CompareHands(a, b), "%s vs %s", a, b)
		})
	}

	// Board plays for both: a genuine tie.
	a := mustEval(t, e, "2c3d", "AhKhQhJsTc")
	b := mustEval(t, e, "4c5d", "AhKhQhJsTc")
	assert.Equal(t, 0, CompareHands(a, b))
}

func TestPermutationInvariance(t *testing.T) {
	t.Parallel()
	e := NewEvaluator()
	rng := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 200; i++ {
		deck := NewDeck(rng, 0)
		cards := append([]Card(nil), deck.Deal(7)...)
		want, err := e.Evaluate(cards[:2], cards[2:])
		require.NoError(t, err)

		rng.Shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })
		got, err := e.Evaluate(cards[:2], cards[2:])
		require.NoError(t, err)
		require.Equal(t, want, got)
		require.Equal(t, want, e.EvaluateHand(NewHand(cards...)))
	}
}

func TestSevenCardBestFive(t *testing.T) {
	t.Parallel()
	e := NewEvaluator()
	// Seven cards; best five is the flush, not the pair.
	seven := mustEval(t, e, "AhAd", "2h5h9hKh3c")
	assert.Equal(t, Flush, seven.Class())
	five := mustEval(t, e, "Ah2h", "5h9hKh")
	assert.Equal(t, five, seven)
}

func TestEvaluateShapeErrors(t *testing.T) {
	t.Parallel()
	e := NewEvaluator()

	_, err := e.Evaluate(MustParseCards("As"), MustParseCards("KsQsJsTs"))
	assert.ErrorIs(t, err, ErrInvalidHandShape)

	_, err = e.Evaluate(MustParseCards("AsKs"), MustParseCards("QsJs"))
	assert.ErrorIs(t, err, ErrInvalidHandShape)

	_, err = e.Evaluate(MustParseCards("AsKs"), MustParseCards("QsJsTs9s8s7s"))
	assert.ErrorIs(t, err, ErrInvalidHandShape)

	_, err = e.Evaluate(MustParseCards("AsKs"), MustParseCards("AsJsTs"))
	assert.ErrorIs(t, err, ErrInvalidCardSet)
}

func TestAllFiveCardHandsDistinctRanks(t *testing.T) {
	t.Parallel()
	e := NewEvaluator()
	seen := make(map[HandRank]struct{}, 7462)
	counts := make(map[HandClass]int)

	all := FullDeck.Cards()
	for a := 0; a < 52; a++ {
		for b := a + 1; b < 52; b++ {
			for c := b + 1; c < 52; c++ {
				for d := c + 1; d < 52; d++ {
					for f := d + 1; f < 52; f++ {
						r := e.EvaluateHand(NewHand(all[a], all[b], all[c], all[d], all[f]))
						require.True(t, r >= BestHandRank && r <= WorstHandRank)
						if _, ok := seen[r]; !ok {
							seen[r] = struct{}{}
							counts[r.Class()]++
						}
					}
				}
			}
		}
	}

	assert.Len(t, seen, 7462)
	assert.Equal(t, 1, counts[RoyalFlush])
	assert.Equal(t, 9, counts[StraightFlush])
	assert.Equal(t, 156, counts[FourOfAKind])
	assert.Equal(t, 156, counts[FullHouse])
	assert.Equal(t, 1277, counts[Flush])
	assert.Equal(t, 10, counts[Straight])
	assert.Equal(t, 858, counts[ThreeOfAKind])
	assert.Equal(t, 858, counts[TwoPair])
	assert.Equal(t, 2860, counts[OnePair])
	assert.Equal(t, 1277, counts[HighCard])
}

func BenchmarkEvaluateHand(b *testing.B) {
	e := NewEvaluator()
	h := NewHand(MustParseCards("AhKd7c7s2h9dTc")...)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = e.EvaluateHand(h)
	}
}

package poker

import (
	"fmt"
	"math/bits"
	"sync"
)

// HandRank is the strength of a best-five-card hand. Lower values are
// stronger: 1 is a royal flush and WorstHandRank is 7-5-4-3-2 offsuit.
// Zero is not a valid rank.
type HandRank uint16

// HandClass enumerates the ten hand categories, strongest first.
type HandClass uint8

const (
	RoyalFlush HandClass = iota + 1
	StraightFlush
	FourOfAKind
	FullHouse
	Flush
	Straight
	ThreeOfAKind
	TwoPair
	OnePair
	HighCard
)

var classNames = [...]string{
	RoyalFlush:    "Royal Flush",
	StraightFlush: "Straight Flush",
	FourOfAKind:   "Four of a Kind",
	FullHouse:     "Full House",
	Flush:         "Flush",
	Straight:      "Straight",
	ThreeOfAKind:  "Three of a Kind",
	TwoPair:       "Two Pair",
	OnePair:       "One Pair",
	HighCard:      "High Card",
}

// String returns the human-readable class name.
func (c HandClass) String() string {
	if c < RoyalFlush || c > HighCard {
		return "Unknown"
	}
	return classNames[c]
}

const (
	straightFlushCount = 10
	fourOfAKindCount   = 13 * 12
	fullHouseCount     = 13 * 12
	flushCount         = 1277
	straightCount      = 10
	threeOfAKindCount  = 13 * 66
	twoPairCount       = 78 * 11
	onePairCount       = 13 * 220
	highCardCount      = 1277
)

const (
	baseStraightFlush = 1
	baseFourOfAKind   = baseStraightFlush + straightFlushCount
	baseFullHouse     = baseFourOfAKind + fourOfAKindCount
	baseFlush         = baseFullHouse + fullHouseCount
	baseStraight      = baseFlush + flushCount
	baseThreeOfAKind  = baseStraight + straightCount
	baseTwoPair       = baseThreeOfAKind + threeOfAKindCount
	baseOnePair       = baseTwoPair + twoPairCount
	baseHighCard      = baseOnePair + onePairCount
)

const (
	// BestHandRank is the royal flush.
	BestHandRank HandRank = baseStraightFlush
	// WorstHandRank is the weakest five-card hand.
	WorstHandRank HandRank = baseHighCard + highCardCount - 1
)

// classBoundaries holds the exclusive upper bound of each class below royal.
var classBoundaries = [...]struct {
	limit HandRank
	class HandClass
}{
	{baseFourOfAKind, StraightFlush},
	{baseFullHouse, FourOfAKind},
	{baseFlush, FullHouse},
	{baseStraight, Flush},
	{baseThreeOfAKind, Straight},
	{baseTwoPair, ThreeOfAKind},
	{baseOnePair, TwoPair},
	{baseHighCard, OnePair},
}

// Class maps the rank to one of the ten categories.
func (hr HandRank) Class() HandClass {
	if hr == BestHandRank {
		return RoyalFlush
	}
	for _, b := range classBoundaries {
		if hr < b.limit {
			return b.class
		}
	}
	return HighCard
}

// Name returns the class name, e.g. "Full House".
func (hr HandRank) Name() string {
	return hr.Class().String()
}

// String implements fmt.Stringer.
func (hr HandRank) String() string {
	return fmt.Sprintf("%s (%d)", hr.Name(), uint16(hr))
}

// Percentile maps the rank linearly onto 0 (worst) .. 100 (best).
func (hr HandRank) Percentile() float64 {
	return float64(WorstHandRank-hr) / float64(WorstHandRank-BestHandRank) * 100
}

// Beats reports whether hr is strictly stronger than other.
func (hr HandRank) Beats(other HandRank) bool {
	return hr < other
}

// CompareHands compares two hands and returns 1 if a wins, -1 if b wins, 0 for tie
func CompareHands(a, b HandRank) int {
	if a < b {
		return 1
	} else if a > b {
		return -1
	}
	return 0
}

// Evaluator ranks 5-7 card hands. It is immutable after construction and
// safe for concurrent use.
type Evaluator struct {
	t *comboTables
}

// NewEvaluator returns an evaluator backed by the shared lookup tables.
func NewEvaluator() *Evaluator {
	return &Evaluator{t: loadTables()}
}

// Evaluate validates the shape and distinctness of hole and board, then
// ranks the best five-card hand. hole must hold 2 cards and board 0-5,
// with 5-7 cards in total.
func (e *Evaluator) Evaluate(hole, board []Card) (HandRank, error) {
	if len(hole) != 2 || len(board) > 5 {
		return 0, fmt.Errorf("%w: hole=%d board=%d", ErrInvalidHandShape, len(hole), len(board))
	}
	if total := len(hole) + len(board); total < 5 || total > 7 {
		return 0, fmt.Errorf("%w: %d cards, need 5-7", ErrInvalidHandShape, total)
	}
	h, err := CardSet(hole, board)
	if err != nil {
		return 0, err
	}
	return e.EvaluateHand(h), nil
}

// EvaluateHand ranks a 5-7 card set without validation. Callers on hot
// paths must guarantee the card count.
func (e *Evaluator) EvaluateHand(h Hand) HandRank {
	var suitMasks [4]uint16
	var rankMask uint16
	for suit := range uint8(4) {
		mask := h.GetSuitMask(suit)
		suitMasks[suit] = mask
		rankMask |= mask
	}
	return e.t.rankFromMasks(suitMasks, rankMask)
}

func (t *comboTables) rankFromMasks(suitMasks [4]uint16, rankMask uint16) HandRank {
	// With at most seven cards only one suit can hold five.
	for _, suitMask := range suitMasks {
		if bits.OnesCount16(suitMask) < 5 {
			continue
		}
		if high := straightHighMask(suitMask); high > 0 {
			return HandRank(baseStraightFlush + straightFlushCount - 1 - straightIndex(high))
		}
		top := findOrderedKickers(suitMask, 0, 5)
		idx := t.adjustFiveCardIndex(t.c13of5[maskFromRanks(top)])
		return HandRank(baseFlush + flushCount - 1 - idx)
	}

	s0, s1, s2, s3 := suitMasks[0], suitMasks[1], suitMasks[2], suitMasks[3]

	quadsMask := s0 & s1 & s2 & s3
	tripCandidates := (s0 & s1 & s2) | (s0 & s1 & s3) | (s0 & s2 & s3) | (s1 & s2 & s3)
	tripsMask := tripCandidates &^ quadsMask
	pairsMask := ((s0 & s1) | (s0 & s2) | (s0 & s3) | (s1 & s2) | (s1 & s3) | (s2 & s3)) &^ tripCandidates

	if quad := highestRank(quadsMask); quad >= 0 {
		q := uint8(quad)
		kicker := findKicker(rankMask, 1<<q)
		idx := uint16(q)*12 + uint16(rankOrdinalAsc(kicker, 1<<q))
		return HandRank(baseFourOfAKind + fourOfAKindCount - 1 - idx)
	}

	if tripRank := highestRank(tripsMask); tripRank >= 0 {
		trip := uint8(tripRank)
		pairCandidates := pairsMask | (tripsMask &^ (1 << trip))
		if pairRank := highestRank(pairCandidates); pairRank >= 0 {
			idx := uint16(trip)*12 + uint16(rankOrdinalAsc(uint8(pairRank), 1<<trip))
			return HandRank(baseFullHouse + fullHouseCount - 1 - idx)
		}
	}

	if high := straightHighMask(rankMask); high > 0 {
		return HandRank(baseStraight + straightCount - 1 - straightIndex(high))
	}

	if tripRank := highestRank(tripsMask); tripRank >= 0 {
		trip := uint8(tripRank)
		used := uint16(1) << trip
		kickers := findOrderedKickers(rankMask, used, 2)
		idx := uint16(trip)*66 + t.c12of2[maskFromOrdinals(kickers, used)]
		return HandRank(baseThreeOfAKind + threeOfAKindCount - 1 - idx)
	}

	if pair1 := highestRank(pairsMask); pair1 >= 0 {
		high := uint8(pair1)
		if pair2 := highestRank(pairsMask &^ (1 << high)); pair2 >= 0 {
			low := uint8(pair2)
			used := uint16(1)<<high | uint16(1)<<low
			kicker := findKicker(rankMask, used)
			idx := t.c13of2[used]*11 + uint16(rankOrdinalAsc(kicker, used))
			return HandRank(baseTwoPair + twoPairCount - 1 - idx)
		}
		used := uint16(1) << high
		kickers := findOrderedKickers(rankMask, used, 3)
		idx := uint16(high)*220 + t.c12of3[maskFromOrdinals(kickers, used)]
		return HandRank(baseOnePair + onePairCount - 1 - idx)
	}

	top := findOrderedKickers(rankMask, 0, 5)
	idx := t.adjustFiveCardIndex(t.c13of5[maskFromRanks(top)])
	return HandRank(baseHighCard + highCardCount - 1 - idx)
}

// highestRank returns the highest rank present in the bitmask (or -1 when empty).
func highestRank(mask uint16) int {
	if mask == 0 {
		return -1
	}
	return bits.Len16(mask) - 1
}

// findKicker finds the highest rank in mask outside used.
func findKicker(mask, used uint16) uint8 {
	available := mask &^ used
	if available == 0 {
		return 0
	}
	return uint8(bits.Len16(available) - 1)
}

// findOrderedKickers returns the top n ranks outside used, descending.
func findOrderedKickers(mask, used uint16, n int) []uint8 {
	available := mask &^ used
	kickers := make([]uint8, 0, n)
	for len(kickers) < n && available != 0 {
		top := uint8(bits.Len16(available) - 1)
		kickers = append(kickers, top)
		available &^= 1 << top
	}
	return kickers
}

// rankOrdinalAsc renumbers rank as if the excluded ranks did not exist.
func rankOrdinalAsc(rank uint8, excluded uint16) uint8 {
	below := excluded & (uint16(1)<<rank - 1)
	return rank - uint8(bits.OnesCount16(below))
}

func maskFromRanks(ranks []uint8) uint16 {
	var mask uint16
	for _, r := range ranks {
		mask |= 1 << r
	}
	return mask
}

func maskFromOrdinals(ranks []uint8, excluded uint16) uint16 {
	var mask uint16
	for _, r := range ranks {
		mask |= 1 << rankOrdinalAsc(r, excluded)
	}
	return mask
}

// straightHighMask returns the high-card rank of the best straight in the
// mask, 3 for the wheel, or 0 if none.
func straightHighMask(mask uint16) uint8 {
	const wheelMask = 0x100F // Ace + 2-3-4-5
	mask &= rankMask13

	if seq := mask & (mask >> 1) & (mask >> 2) & (mask >> 3) & (mask >> 4); seq != 0 {
		return uint8(bits.Len16(seq)-1) + 4
	}
	if mask&wheelMask == wheelMask {
		return 3
	}
	return 0
}

// straightIndex orders straights weakest first: wheel=0, ace-high=9.
func straightIndex(high uint8) uint16 {
	if high == 3 {
		return 0
	}
	return uint16(high - 3)
}

// comboTables index k-subsets of ranks in colexicographic order, so a
// larger index always means stronger high cards.
type comboTables struct {
	c13of5    [1 << 13]uint16
	c13of2    [1 << 13]uint16
	c12of2    [1 << 12]uint16
	c12of3    [1 << 12]uint16
	straights [10]uint16
}

var loadTables = sync.OnceValue(func() *comboTables {
	t := &comboTables{}
	var idx uint16
	for e := 4; e <= 12; e++ {
		for d := 3; d < e; d++ {
			for c := 2; c < d; c++ {
				for b := 1; b < c; b++ {
					for a := 0; a < b; a++ {
						t.c13of5[1<<a|1<<b|1<<c|1<<d|1<<e] = idx
						idx++
					}
				}
			}
		}
	}
	idx = 0
	for b := 1; b <= 12; b++ {
		for a := 0; a < b; a++ {
			t.c13of2[1<<a|1<<b] = idx
			idx++
		}
	}
	idx = 0
	for b := 1; b <= 11; b++ {
		for a := 0; a < b; a++ {
			t.c12of2[1<<a|1<<b] = idx
			idx++
		}
	}
	idx = 0
	for c := 2; c <= 11; c++ {
		for b := 1; b < c; b++ {
			for a := 0; a < b; a++ {
				t.c12of3[1<<a|1<<b|1<<c] = idx
				idx++
			}
		}
	}

	// Straight-shaped rank sets are ranked as straights, not high cards,
	// so they are removed from the five-card index space.
	t.straights[0] = t.c13of5[0x100F]
	for high := 4; high <= 12; high++ {
		t.straights[high-3] = t.c13of5[uint16(0x1F)<<(high-4)]
	}
	sortSmallUint16(t.straights[:])
	return t
})

func sortSmallUint16(vals []uint16) {
	for i := 1; i < len(vals); i++ {
		v := vals[i]
		j := i - 1
		for j >= 0 && vals[j] > v {
			vals[j+1] = vals[j]
			j--
		}
		vals[j+1] = v
	}
}

func (t *comboTables) adjustFiveCardIndex(idx uint16) uint16 {
	var adjust uint16
	for _, s := range t.straights {
		if idx > s {
			adjust++
		} else {
			break
		}
	}
	return idx - adjust
}

package ranges

import "github.com/lox/pokeradvisor/poker"

// strengthOrder lists all 169 starting hands strongest first. The first
// sixty follow the premium/strong/medium tiers used for preflop decisions;
// the rest follow all-in equity against a random hand.
var strengthOrder = [169]string{
	"AA", "KK", "QQ", "AKs", "JJ", "AKo", "AQs", "TT", "AQo", "AJs",
	"99", "ATs", "AJo", "KQs", "88", "KJs", "ATo", "A9s", "KQo", "77",
	"KTs", "A8s", "QJs", "A5s", "66", "A7s", "KJo", "A4s", "A9o", "QTs",
	"A6s", "55", "A3s", "KTo", "JTs", "QJo", "A8o", "A2s", "K9s", "44",
	"A7o", "K8s", "A5o", "Q9s", "J9s", "QTo", "33", "A6o", "K7s", "A4o",
	"JTo", "T9s", "K9o", "A3o", "K6s", "22", "Q8s", "K5s", "A2o", "J8s",
	"T8s", "98s", "87s", "97s", "76s", "T7s", "K4s", "K2s", "K3s", "Q7s",
	"86s", "65s", "J7s", "54s", "Q6s", "75s", "96s", "Q5s", "64s", "Q4s",
	"Q3s", "T9o", "T6s", "Q2s", "53s", "85s", "J6s", "J9o", "J5s", "Q9o",
	"43s", "74s", "J4s", "J3s", "95s", "J2s", "63s", "52s", "T5s", "84s",
	"T4s", "T3s", "42s", "T2s", "98o", "T8o", "73s", "32s", "94s", "93s",
	"J8o", "62s", "92s", "K8o", "87o", "Q8o", "83s", "82s", "97o", "72s",
	"76o", "K7o", "65o", "T7o", "K6o", "86o", "54o", "K5o", "J7o", "75o",
	"Q7o", "K4o", "K3o", "96o", "K2o", "64o", "Q6o", "53o", "85o", "T6o",
	"Q5o", "43o", "Q4o", "Q3o", "74o", "Q2o", "J6o", "63o", "J5o", "95o",
	"52o", "J4o", "J3o", "42o", "J2o", "84o", "T5o", "T4o", "32o", "T3o",
	"73o", "T2o", "62o", "94o", "93o", "92o", "83o", "82o", "72o",
}

// strengthRank maps StartingHand.Index to its 1-based strength rank.
var strengthRank = func() [169]int {
	var ranks [169]int
	for i, s := range strengthOrder {
		ranks[poker.MustParseStartingHand(s).Index()] = i + 1
	}
	return ranks
}()

// Tier boundaries on the strength rank.
const (
	PremiumCutoff = 10
	StrongCutoff  = 30
	MediumCutoff  = 60
)

// Tier buckets starting hands for preflop decisions.
type Tier uint8

const (
	TierWeak Tier = iota
	TierMedium
	TierStrong
	TierPremium
)

func (t Tier) String() string {
	switch t {
	case TierPremium:
		return "premium"
	case TierStrong:
		return "strong"
	case TierMedium:
		return "medium"
	default:
		return "weak"
	}
}

// StrengthRank returns 1 for AA through 169 for the weakest hand.
func StrengthRank(h poker.StartingHand) int {
	return strengthRank[h.Index()]
}

// TierOf classifies a hand by its strength rank.
func TierOf(h poker.StartingHand) Tier {
	switch r := StrengthRank(h); {
	case r <= PremiumCutoff:
		return TierPremium
	case r <= StrongCutoff:
		return TierStrong
	case r <= MediumCutoff:
		return TierMedium
	default:
		return TierWeak
	}
}

// ByStrength returns all 169 hands strongest first.
func ByStrength() []poker.StartingHand {
	hands := make([]poker.StartingHand, len(strengthOrder))
	for i, s := range strengthOrder {
		hands[i] = poker.MustParseStartingHand(s)
	}
	return hands
}

package ranges

import (
	"fmt"
	"strings"

	"github.com/lox/pokeradvisor/game"
	"github.com/lox/pokeradvisor/poker"
)

// ExploitKind is a coarse adjustment against a read.
type ExploitKind string

const (
	ExploitNone        ExploitKind = ""
	ExploitValueBet    ExploitKind = "value_bet"
	ExploitFoldOrBluff ExploitKind = "fold_or_bluff"
	ExploitBluffCBet   ExploitKind = "bluff_cbet"
)

// Exploit is a suggested adjustment with its sizing label and reasons.
type Exploit struct {
	Kind      ExploitKind `json:"action,omitempty"`
	Sizing    string      `json:"sizing,omitempty"`
	Reasoning []string    `json:"reasoning"`
}

const (
	tightRangeShare = 0.15
	wideRangeShare  = 0.30
	foldyCBet       = 55
)

// SuggestExploit compares hero's holding with an opponent's range and
// profile. Against a tight range hero value bets large when at least as
// strong as the range's best hand, otherwise proceeds carefully; against a
// wide range hero value bets medium. A high fold-to-cbet overrides both
// with a small bluff c-bet.
func SuggestExploit(r Range, hero poker.StartingHand, profile *game.Profile) Exploit {
	if profile == nil {
		profile = &game.UnknownProfile
	}
	ex := Exploit{Reasoning: []string{}}
	heroRank := StrengthRank(hero)
	top := 100
	if best, ok := r.Best(); ok {
		top = StrengthRank(best)
	}

	switch share := r.Share(); {
	case share < tightRangeShare:
		if heroRank <= top {
			ex.Kind, ex.Sizing = ExploitValueBet, "large"
			ex.Reasoning = append(ex.Reasoning, fmt.Sprintf("opponent range is tight (%.1f%%) and %s dominates it: extract value", share*100, hero))
		} else {
			ex.Kind = ExploitFoldOrBluff
			ex.Reasoning = append(ex.Reasoning, fmt.Sprintf("opponent range is tight (%.1f%%) and strong: proceed carefully", share*100))
		}
	case share > wideRangeShare:
		ex.Kind, ex.Sizing = ExploitValueBet, "medium"
		ex.Reasoning = append(ex.Reasoning, fmt.Sprintf("opponent range is wide (%.1f%%): medium value bets", share*100))
	}

	if profile.FoldToCBet > foldyCBet {
		ex.Kind, ex.Sizing = ExploitBluffCBet, "small"
		ex.Reasoning = append(ex.Reasoning, fmt.Sprintf("opponent folds to c-bets %.0f%% of the time: small bluffs profit", profile.FoldToCBet))
	}
	return ex
}

// Grid renders the range as a 13x13 chart: members show their notation,
// everything else a dot. Suited hands sit above the diagonal.
func Grid(r Range) string {
	var b strings.Builder
	for row := 0; row < 13; row++ {
		for col := 0; col < 13; col++ {
			h := poker.StartingHandAt(row, col)
			cell := "."
			if r.Contains(h) {
				cell = h.String()
			}
			fmt.Fprintf(&b, "%-4s", cell)
		}
		b.WriteString("\n")
	}
	return b.String()
}

package advisor

import (
	"fmt"
	"strings"
)

// Action is a recommended move. Bet and raise tags carry a size band.
type Action string

const (
	ActionFold        Action = "fold"
	ActionCheck       Action = "check"
	ActionCall        Action = "call"
	ActionBetSmall    Action = "bet_small"   // 25-40% pot
	ActionBetMedium   Action = "bet_medium"  // 50-75% pot
	ActionBetLarge    Action = "bet_large"   // 75-100% pot
	ActionBetOverbet  Action = "bet_overbet" // over pot
	ActionRaiseSmall  Action = "raise_small"
	ActionRaiseMedium Action = "raise_medium"
	ActionRaiseLarge  Action = "raise_large"
	ActionAllIn       Action = "all_in"
)

// IsAggressive reports whether the action puts chips in voluntarily.
func (a Action) IsAggressive() bool {
	switch a {
	case ActionFold, ActionCheck, ActionCall:
		return false
	default:
		return true
	}
}

// betAction labels a bet by its pot fraction.
func betAction(ratio float64) Action {
	switch {
	case ratio < 0.5:
		return ActionBetSmall
	case ratio < 0.75:
		return ActionBetMedium
	case ratio <= 1.0:
		return ActionBetLarge
	default:
		return ActionBetOverbet
	}
}

// Alternative is a secondary action and how often to take it.
type Alternative struct {
	Action    Action  `json:"action"`
	Frequency float64 `json:"frequency"`
}

// Recommendation is the advisor's answer for one decision point.
// Confidence plus the alternative frequencies never exceeds one.
type Recommendation struct {
	Action       Action        `json:"action"`
	Confidence   float64       `json:"confidence"`
	EV           *float64      `json:"ev,omitempty"`
	BetSize      *float64      `json:"betSize,omitempty"`
	SizingRatio  *float64      `json:"sizingRatio,omitempty"`
	Equity       *float64      `json:"equity,omitempty"`
	Reasoning    []string      `json:"reasoning"`
	Alternatives []Alternative `json:"alternatives"`
}

func (r Recommendation) String() string {
	var b strings.Builder
	action := strings.ToUpper(string(r.Action))
	if r.BetSize != nil && *r.BetSize > 0 {
		action += fmt.Sprintf(" $%.0f", *r.BetSize)
	}
	if r.SizingRatio != nil && *r.SizingRatio > 0 {
		action += fmt.Sprintf(" (%.0f%% pot)", *r.SizingRatio*100)
	}
	fmt.Fprintf(&b, "Recommendation: %s (confidence %.0f%%)\n", action, r.Confidence*100)
	if r.EV != nil {
		fmt.Fprintf(&b, "EV: %+.2f\n", *r.EV)
	}
	if len(r.Reasoning) > 0 {
		b.WriteString("Reasoning:\n")
		for _, line := range r.Reasoning {
			fmt.Fprintf(&b, "  - %s\n", line)
		}
	}
	if len(r.Alternatives) > 0 {
		b.WriteString("Alternatives:\n")
		for _, alt := range r.Alternatives {
			fmt.Fprintf(&b, "  - %s: %.0f%%\n", alt.Action, alt.Frequency*100)
		}
	}
	return b.String()
}

// TotalFrequency is the confidence plus every alternative's frequency.
func (r Recommendation) TotalFrequency() float64 {
	total := r.Confidence
	for _, alt := range r.Alternatives {
		total += alt.Frequency
	}
	return total
}

func ptr[T any](v T) *T {
	return &v
}

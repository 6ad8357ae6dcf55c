package game

import (
	"fmt"
	"sort"
	"strings"
)

// Profile summarizes an opponent's tendencies. Every field except
// AggressionFactor is a percentage in 0..100.
type Profile struct {
	Name             string  `json:"name,omitempty" hcl:"name,label"`
	VPIP             float64 `json:"vpip" hcl:"vpip,optional"`
	PFR              float64 `json:"pfr" hcl:"pfr,optional"`
	AggressionFactor float64 `json:"aggressionFactor" hcl:"aggression_factor,optional"`
	ThreeBet         float64 `json:"threeBet" hcl:"three_bet,optional"`
	FoldToThreeBet   float64 `json:"foldToThreeBet" hcl:"fold_to_three_bet,optional"`
	CBet             float64 `json:"cbet" hcl:"cbet,optional"`
	FoldToCBet       float64 `json:"foldToCbet" hcl:"fold_to_cbet,optional"`
}

// Preset profiles for common player types.
var (
	UnknownProfile  = Profile{Name: "default", VPIP: 25, PFR: 18, AggressionFactor: 2.0, ThreeBet: 7, FoldToThreeBet: 55, CBet: 65, FoldToCBet: 45}
	TightAggressive = Profile{Name: "tag", VPIP: 22, PFR: 18, AggressionFactor: 2.5, ThreeBet: 8, FoldToThreeBet: 50, CBet: 70, FoldToCBet: 40}
	LooseAggressive = Profile{Name: "lag", VPIP: 32, PFR: 24, AggressionFactor: 3.0, ThreeBet: 10, FoldToThreeBet: 45, CBet: 75, FoldToCBet: 35}
	TightPassive    = Profile{Name: "tight-passive", VPIP: 18, PFR: 10, AggressionFactor: 1.2, ThreeBet: 4, FoldToThreeBet: 65, CBet: 50, FoldToCBet: 55}
	LoosePassive    = Profile{Name: "loose-passive", VPIP: 40, PFR: 8, AggressionFactor: 0.8, ThreeBet: 3, FoldToThreeBet: 70, CBet: 40, FoldToCBet: 30}
)

var presets = map[string]Profile{
	"default":       UnknownProfile,
	"tag":           TightAggressive,
	"lag":           LooseAggressive,
	"tight-passive": TightPassive,
	"loose-passive": LoosePassive,
}

// PresetNames lists the names accepted by PresetProfile.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PresetProfile looks a preset up by name.
func PresetProfile(name string) (Profile, error) {
	p, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Profile{}, fmt.Errorf("unknown profile %q (want one of %s)", name, strings.Join(PresetNames(), ", "))
	}
	return p, nil
}

// Style gives a short label derived from VPIP and aggression.
func (p Profile) Style() string {
	loose := p.VPIP > 28
	aggressive := p.AggressionFactor >= 2
	switch {
	case loose && aggressive:
		return "loose-aggressive"
	case loose:
		return "loose-passive"
	case aggressive:
		return "tight-aggressive"
	default:
		return "tight-passive"
	}
}

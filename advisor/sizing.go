package advisor

import "github.com/lox/pokeradvisor/game"

// Sizing is the table of standard bet sizes.
type Sizing struct {
	// Open is the opening raise per seat, in big blinds.
	Open map[game.Position]float64
	// ThreeBet multipliers apply to the amount faced.
	ThreeBetInPosition    float64
	ThreeBetOutOfPosition float64
	// CBet is a pot fraction per board texture.
	CBet map[TextureKind]float64
	// Value bets, as pot fractions.
	ThinValue   float64
	StrongValue float64
	NutsValue   float64
}

const defaultOpenSize = 2.5

// DefaultSizing returns the standard sizing table.
func DefaultSizing() Sizing {
	return Sizing{
		Open: map[game.Position]float64{
			game.UTG: 2.5,
			game.HJ:  2.5,
			game.CO:  2.5,
			game.BTN: 2.5,
			game.SB:  3.0,
		},
		ThreeBetInPosition:    3.0,
		ThreeBetOutOfPosition: 3.5,
		CBet: map[TextureKind]float64{
			TextureDry:         0.33,
			TextureWet:         0.67,
			TextureCoordinated: 0.75,
		},
		ThinValue:   0.5,
		StrongValue: 0.75,
		NutsValue:   1.0,
	}
}

// OpenSize is the opening raise for pos in big blinds, 2.5 when the seat
// has no entry.
func (s Sizing) OpenSize(pos game.Position) float64 {
	if v, ok := s.Open[pos]; ok && v > 0 {
		return v
	}
	return defaultOpenSize
}

// ThreeBetMultiplier picks the in- or out-of-position multiplier.
func (s Sizing) ThreeBetMultiplier(inPosition bool) float64 {
	if inPosition {
		return s.ThreeBetInPosition
	}
	return s.ThreeBetOutOfPosition
}

// CBetFraction is the c-bet pot fraction for a texture, falling back to
// the dry-board size.
func (s Sizing) CBetFraction(kind TextureKind) float64 {
	if v, ok := s.CBet[kind]; ok {
		return v
	}
	return s.CBet[TextureDry]
}

// Thresholds are the equity cut-offs and mixing frequencies behind each
// decision. Equities and frequencies are fractions; fold rates are
// percentages like the profile fields they compare against.
type Thresholds struct {
	// Facing a postflop bet.
	Raise            float64
	MarginalBand     float64
	DrawChase        float64
	BluffRaiseFold   float64
	BluffRaiseEquity float64

	// Betting when checked to.
	Nuts        float64
	Value       float64
	ThinValue   float64
	Showdown    float64
	ThinBet     float64
	ShowdownBet float64
	Bluff       float64
	FoldyBluff  float64
	FoldyCBet   float64

	// Preflop facing a raise.
	SmallCall     float64
	StrongRaise   float64
	MediumCall    float64
	MediumRaise   float64
	MediumFold    float64
	BluffThreeBet float64
}

// DefaultThresholds returns the standard cut-offs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Raise:            0.65,
		MarginalBand:     0.10,
		DrawChase:        0.30,
		BluffRaiseFold:   60,
		BluffRaiseEquity: 0.20,

		Nuts:        0.90,
		Value:       0.70,
		ThinValue:   0.55,
		Showdown:    0.35,
		ThinBet:     0.60,
		ShowdownBet: 0.30,
		Bluff:       0.20,
		FoldyBluff:  0.35,
		FoldyCBet:   55,

		SmallCall:     0.5,
		StrongRaise:   0.75,
		MediumCall:    0.60,
		MediumRaise:   0.25,
		MediumFold:    0.15,
		BluffThreeBet: 0.90,
	}
}

package advisor

import (
	"math/bits"

	"github.com/lox/pokeradvisor/poker"
)

// TextureKind is the coarse board label used to pick c-bet sizes.
type TextureKind string

const (
	TextureDry         TextureKind = "dry_board"
	TextureWet         TextureKind = "wet_board"
	TextureCoordinated TextureKind = "coordinated"
)

// Texture describes the draws and pairing on a board.
type Texture struct {
	FlushDraw    bool `json:"flushDraw"`
	StraightDraw bool `json:"straightDraw"`
	Paired       bool `json:"paired"`
}

// ClassifyBoard inspects the community cards. A flush draw needs three of
// a suit; a straight draw needs at least three distinct ranks spanning no
// more than four, with the ace ranked high only.
func ClassifyBoard(board []poker.Card) Texture {
	var t Texture
	if len(board) == 0 {
		return t
	}

	h := poker.NewHand(board...)
	for suit := uint8(0); suit < 4; suit++ {
		if bits.OnesCount16(h.GetSuitMask(suit)) >= 3 {
			t.FlushDraw = true
		}
	}

	ranks := h.GetRankMask()
	t.Paired = bits.OnesCount16(ranks) < len(board)
	t.StraightDraw = connected(ranks)
	return t
}

// connected reports whether a rank mask has three or more ranks within a
// five-rank window from lowest to highest.
func connected(mask uint16) bool {
	if bits.OnesCount16(mask) < 3 {
		return false
	}
	lo := bits.TrailingZeros16(mask)
	hi := 15 - bits.LeadingZeros16(mask)
	return hi-lo <= 4
}

// Kind collapses the texture to a sizing label.
func (t Texture) Kind() TextureKind {
	switch {
	case t.FlushDraw && t.StraightDraw:
		return TextureCoordinated
	case t.FlushDraw || t.StraightDraw:
		return TextureWet
	default:
		return TextureDry
	}
}

func (t Texture) String() string {
	return string(t.Kind())
}

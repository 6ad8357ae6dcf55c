package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStartingHand(t *testing.T) {
	t.Parallel()
	tests := []struct {
		cards string
		want  string
	}{
		{"AsAh", "AA"},
		{"KsAs", "AKs"},
		{"AsKd", "AKo"},
		{"2c7d", "72o"},
		{"Th9h", "T9s"},
	}
	for _, tt := range tests {
		t.Run(tt.cards, func(t *testing.T) {
			t.Parallel()
			cards := MustParseCards(tt.cards)
			assert.Equal(t, tt.want, NewStartingHand(cards[0], cards[1]).String())
		})
	}
}

func TestParseStartingHand(t *testing.T) {
	t.Parallel()
	for _, s := range []string{"AA", "AKs", "AKo", "72o", "T9s", "22"} {
		h, err := ParseStartingHand(s)
		require.NoError(t, err)
		assert.Equal(t, s, h.String())
	}

	h, err := ParseStartingHand("KAs")
	require.NoError(t, err)
	assert.Equal(t, "AKs", h.String())

	for _, s := range []string{"", "A", "AK", "AAs", "AKx", "XKs", "AKso"} {
		_, err := ParseStartingHand(s)
		assert.ErrorIs(t, err, ErrInvalidStartingHand, s)
	}
}

func TestAllStartingHands(t *testing.T) {
	t.Parallel()
	hands := AllStartingHands()
	require.Len(t, hands, 169)

	seen := make(map[string]bool)
	total := 0
	pairs, suited, offsuit := 0, 0, 0
	for i, h := range hands {
		assert.False(t, seen[h.String()], "duplicate %s", h)
		seen[h.String()] = true
		assert.Equal(t, i, h.Index())
		total += h.Combos()
		assert.Len(t, h.Expand(0), h.Combos())
		switch {
		case h.IsPair():
			pairs++
		case h.Suited:
			suited++
		default:
			offsuit++
		}
	}
	assert.Equal(t, TotalCombos, total)
	assert.Equal(t, 13, pairs)
	assert.Equal(t, 78, suited)
	assert.Equal(t, 78, offsuit)
	assert.Equal(t, "AA", hands[0].String())
	assert.Equal(t, "AKs", hands[1].String())
	assert.Equal(t, "AKo", hands[13].String())
}

func TestExpandExcludesDeadCards(t *testing.T) {
	t.Parallel()
	dead := NewHand(MustParseCards("AsKh")...)

	assert.Len(t, MustParseStartingHand("AA").Expand(dead), 3)
	assert.Len(t, MustParseStartingHand("AKs").Expand(dead), 2)
	assert.Len(t, MustParseStartingHand("AKo").Expand(dead), 12-3-3+1)

	for _, combo := range MustParseStartingHand("AKo").Expand(dead) {
		assert.False(t, combo.Overlaps(dead))
		assert.Equal(t, 2, combo.CountCards())
	}
}

func TestAlternate(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "AKo", MustParseStartingHand("AKs").Alternate().String())
	assert.Equal(t, "QQ", MustParseStartingHand("QQ").Alternate().String())
}

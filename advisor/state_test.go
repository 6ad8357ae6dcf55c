package advisor

import (
	"context"
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokeradvisor/game"
	"github.com/lox/pokeradvisor/poker"
	"github.com/lox/pokeradvisor/potodds"
)

func TestGameStateDerived(t *testing.T) {
	t.Parallel()
	s := GameState{
		Hole:           []string{"Kd", "Ah"},
		Stack:          300,
		Pot:            50,
		OpponentStacks: []float64{500, 150},
	}
	assert.True(t, s.IsPreflop())
	assert.Equal(t, 150.0, s.EffectiveStack())
	assert.InDelta(t, 3.0, s.SPR(), 1e-12)
	assert.Equal(t, 2, s.OpponentCount())

	sh, err := s.StartingHand()
	require.NoError(t, err)
	assert.Equal(t, "AKo", sh.String())

	s.Pot = 0
	assert.True(t, math.IsInf(s.SPR(), 1))

	s.Board = []string{"2c", "3c", "4c"}
	assert.False(t, s.IsPreflop())
}

func TestGameStateJSON(t *testing.T) {
	t.Parallel()
	src := `{
		"hole": ["As", "Kd"],
		"position": "CO",
		"stack": 100,
		"board": ["Qh", "Jh", "2c"],
		"pot": 12,
		"toCall": 4,
		"opponentPositions": ["BTN"],
		"history": [[{"street": "preflop", "kind": "raise", "amount": 2.5, "pot": 1.5}]],
		"street": "flop"
	}`
	var s GameState
	require.NoError(t, json.Unmarshal([]byte(src), &s))
	assert.Equal(t, game.CO, s.Position)
	assert.Equal(t, game.Flop, s.Street)
	assert.Equal(t, []game.Position{game.BTN}, s.OpponentPositions)
	require.Len(t, s.History, 1)
	assert.Equal(t, game.Raise, s.History[0][0].Kind)
}

func TestRecommendRejectsMalformedState(t *testing.T) {
	t.Parallel()
	a := newTestAdvisor(1)
	tests := []struct {
		name  string
		state GameState
		want  error
	}{
		{"bad card", GameState{Hole: []string{"Ax", "Kd"}}, poker.ErrInvalidCard},
		{"one hole card", GameState{Hole: []string{"As"}}, poker.ErrInvalidHandShape},
		{"two board cards", GameState{Hole: []string{"As", "Kd"}, Board: []string{"2c", "3d"}}, poker.ErrInvalidHandShape},
		{"street without board", GameState{Hole: []string{"As", "Kd"}, Street: game.Turn}, poker.ErrInvalidHandShape},
		{"duplicate", GameState{Hole: []string{"As", "Kd"}, Board: []string{"As", "2c", "3d"}}, poker.ErrInvalidCardSet},
		{"negative pot", GameState{Hole: []string{"As", "Kd"}, Pot: -1}, potodds.ErrNegativeAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := a.Recommend(context.Background(), tt.state, nil)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

package advisor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/pokeradvisor/poker"
)

func TestClassifyBoard(t *testing.T) {
	t.Parallel()
	tests := []struct {
		board string
		want  Texture
		kind  TextureKind
	}{
		{"", Texture{}, TextureDry},
		{"Ks7d2c", Texture{}, TextureDry},
		{"KsKd2c", Texture{Paired: true}, TextureDry},
		{"AsKdQc", Texture{StraightDraw: true}, TextureWet},
		{"Ah5h9h", Texture{FlushDraw: true}, TextureWet},
		{"9h8h7h", Texture{FlushDraw: true, StraightDraw: true}, TextureCoordinated},
		{"Ah2d3c", Texture{}, TextureDry},
		{"Ah2h3h", Texture{FlushDraw: true}, TextureWet},
		{"9s9d8c", Texture{Paired: true}, TextureDry},
		{"Ks7d2c2h", Texture{Paired: true}, TextureDry},
		{"Ts9s8d6s", Texture{FlushDraw: true, StraightDraw: true}, TextureCoordinated},
	}
	for _, tt := range tests {
		t.Run(tt.board, func(t *testing.T) {
			t.Parallel()
			var board []poker.Card
			if tt.board != "" {
				board = poker.MustParseCards(tt.board)
			}
			got := ClassifyBoard(board)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.kind, got.Kind())
		})
	}
}

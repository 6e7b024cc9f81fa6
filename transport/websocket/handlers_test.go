package websocket

import (
	"testing"

	"github.com/rocketscienceinc/pairmatch-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaskGameDetails(t *testing.T) {
	t.Run("Hides the content of face-down unmatched cards", func(t *testing.T) {
		// Given: a snapshot with revealed and hidden cards
		game := &entity.Game{
			ID:     "ABC234",
			Status: entity.StatusOngoing,
			Cards: []*entity.Card{
				{ID: 0, Content: "1", FaceUp: true},
				{ID: 1, Content: "1", Matched: true},
				{ID: 2, Content: "2"},
				{ID: 3, Content: "3"},
			},
			Players: []*entity.Player{{ID: "player-1"}},
		}

		// When: the snapshot is masked
		masked := maskGameDetails(game)

		// Then: only hidden cards lose their content
		assert.Equal(t, "1", masked.Cards[0].Content)
		assert.Equal(t, "1", masked.Cards[1].Content)
		assert.Empty(t, masked.Cards[2].Content)
		assert.Empty(t, masked.Cards[3].Content)

		// And: the player list is dropped from the payload
		assert.Nil(t, masked.Players)
	})

	t.Run("Leaves the original snapshot untouched", func(t *testing.T) {
		// Given: a snapshot with one hidden card
		game := &entity.Game{
			ID:      "ABC234",
			Cards:   []*entity.Card{{ID: 0, Content: "7"}},
			Players: []*entity.Player{{ID: "player-1"}},
		}

		// When: the snapshot is masked
		masked := maskGameDetails(game)
		require.Empty(t, masked.Cards[0].Content)

		// Then: the input still carries its content and players
		assert.Equal(t, "7", game.Cards[0].Content)
		require.Len(t, game.Players, 1)
	})
}

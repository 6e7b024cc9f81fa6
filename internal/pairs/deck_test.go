package pairs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeck(t *testing.T) {
	t.Run("Deck has 16 cards forming 8 pairs", func(t *testing.T) {
		// Given/When: a fresh deck
		deck := NewDeck()

		// Then: it should have exactly DeckSize cards
		require.Len(t, deck, DeckSize)

		// And: every content value should be held by exactly two cards
		byContent := make(map[string]int)
		for _, card := range deck {
			byContent[card.Content]++
		}

		require.Len(t, byContent, PairCount)
		for content, count := range byContent {
			assert.Equalf(t, 2, count, "content %q", content)
		}
	})

	t.Run("Card identities are unique", func(t *testing.T) {
		// Given/When: a fresh deck
		deck := NewDeck()

		// Then: every ID in 0..15 should appear exactly once
		seen := make(map[int]bool)
		for _, card := range deck {
			assert.False(t, seen[card.ID], "duplicate id %d", card.ID)
			assert.GreaterOrEqual(t, card.ID, 0)
			assert.Less(t, card.ID, DeckSize)
			seen[card.ID] = true
		}
	})

	t.Run("All cards start face-down and unmatched", func(t *testing.T) {
		// Given/When: a fresh deck
		deck := NewDeck()

		// Then: no card should be revealed
		for _, card := range deck {
			assert.False(t, card.FaceUp)
			assert.False(t, card.Matched)
		}
	})

	t.Run("Shuffle varies card positions across generations", func(t *testing.T) {
		// Given: many generated decks
		const generations = 50

		contentsAtZero := make(map[string]bool)
		for i := 0; i < generations; i++ {
			deck := NewDeck()
			contentsAtZero[deck[0].Content] = true
		}

		// Then: the first position should not always hold the same content
		assert.Greater(t, len(contentsAtZero), 1, "deck order appears deterministic")
	})

	t.Run("Generated decks are independent", func(t *testing.T) {
		// Given: two decks
		first := NewDeck()
		second := NewDeck()

		// When: the first deck is mutated
		for _, card := range first {
			card.FaceUp = true
			card.Matched = true
		}

		// Then: the second deck should be untouched
		for _, card := range second {
			assert.False(t, card.FaceUp)
			assert.False(t, card.Matched)
		}
	})
}

package pairs

import (
	"math/rand"
	"strconv"

	"github.com/rocketscienceinc/pairmatch-backend/internal/entity"
)

const (
	// PairCount is the number of distinct content labels in a deck.
	PairCount = 8
	// DeckSize is the number of cards on the 4x4 grid.
	DeckSize = PairCount * 2
)

// NewDeck returns a fresh shuffled deck: two face-down cards per content label,
// IDs assigned in creation order before the shuffle. Every call allocates a new
// slice and new cards; previously returned decks are never touched.
func NewDeck() []*entity.Card {
	cards := make([]*entity.Card, 0, DeckSize)

	for pair := 0; pair < PairCount; pair++ {
		content := strconv.Itoa(pair + 1)

		cards = append(cards, &entity.Card{ID: len(cards), Content: content})
		cards = append(cards, &entity.Card{ID: len(cards), Content: content})
	}

	rand.Shuffle(len(cards), func(i, j int) { //nolint: gosec // it's ok
		cards[i], cards[j] = cards[j], cards[i]
	})

	return cards
}

package pkg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateNewSessionID(t *testing.T) {
	// When: two session IDs are generated
	first := GenerateNewSessionID()
	second := GenerateNewSessionID()

	// Then: they are 32 hex characters and distinct
	assert.Len(t, first, 32)
	assert.Len(t, second, 32)
	assert.NotEqual(t, first, second)
}

func TestGenerateGameID(t *testing.T) {
	// When: a game ID is generated
	gameID := GenerateGameID()

	// Then: it is a 6-character code from the allowed alphabet
	assert.Len(t, gameID, 6)
	for _, r := range gameID {
		assert.True(t, strings.ContainsRune(gameIDAlphabet, r), "unexpected character %q", r)
	}
}

func TestGenerateAcceptKey(t *testing.T) {
	// Given: the handshake key from the RFC 6455 example
	key := "dGhlIHNhbXBsZSBub25jZQ=="

	// When: the accept key is computed
	accept := GenerateAcceptKey(key)

	// Then: it matches the value from the RFC
	assert.Equal(t, "s3pPLMBiTxaQ9kYGzzhZRbK+xOo=", accept)
}

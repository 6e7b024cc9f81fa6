package pkg

import (
	"crypto/rand"
	"crypto/sha1" //nolint: gosec // required by RFC 6455
	"encoding/base64"
	"encoding/hex"
	"fmt"
	mathrand "math/rand"
)

const websocketMagicGUID = "258EAFA5-E914-47DA-95CA-C5AB0DC85B11"

const gameIDAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateNewSessionID returns a random 128-bit hex session identifier.
func GenerateNewSessionID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Errorf("failed to generate session id: %w", err))
	}

	return hex.EncodeToString(buf)
}

// GenerateGameID returns a short human-readable game code.
func GenerateGameID() string {
	buf := make([]byte, 6)
	for i := range buf {
		buf[i] = gameIDAlphabet[mathrand.Intn(len(gameIDAlphabet))] //nolint: gosec // it's ok
	}

	return string(buf)
}

// GenerateAcceptKey computes the Sec-WebSocket-Accept value for a handshake key.
func GenerateAcceptKey(key string) string {
	hash := sha1.Sum([]byte(key + websocketMagicGUID)) //nolint: gosec // required by RFC 6455

	return base64.StdEncoding.EncodeToString(hash[:])
}

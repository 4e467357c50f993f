package crypto

import (
	"crypto/rand"
)

const (
	idAlphabet string = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_-"
	idSize     int    = 22 // 22 * 6 = 132 bits (uuid is 128 bits) of entropy
)

// NanoIDGenerator produces short opaque identifiers for users and sessions.
type NanoIDGenerator struct{}

func NewNanoID() *NanoIDGenerator {
	return &NanoIDGenerator{}
}

// Generate returns a fresh 22-character id. The alphabet has 64 characters,
// so each random byte masked to 6 bits maps to exactly one character.
func (n *NanoIDGenerator) Generate() (string, error) {
	id := make([]byte, idSize)
	buffer := make([]byte, idSize)

	if _, err := rand.Read(buffer); err != nil {
		return "", err
	}

	for i := range buffer {
		id[i] = idAlphabet[buffer[i]&0x3f]
	}

	return string(id), nil
}

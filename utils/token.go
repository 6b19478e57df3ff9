package utils

import (
	"crypto/rand"
	"fmt"
)

const personIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// PersonIDLength is the fixed length of a person id token.
const PersonIDLength = 8

// GeneratePersonID returns an 8-character uppercase alphanumeric token.
// Uniqueness against the live id space is the caller's job: on a collision
// the caller regenerates and retries.
func GeneratePersonID() (string, error) {
	buf := make([]byte, PersonIDLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes for person id: %w", err)
	}
	for i := range buf {
		buf[i] = personIDAlphabet[int(buf[i])%len(personIDAlphabet)]
	}
	return string(buf), nil
}

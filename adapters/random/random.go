// Package random provides secure random material for secrets and
// generated passwords.
package random

import (
	"crypto/rand"
	"encoding/hex"
)

// Bytes returns n cryptographically secure random bytes.
func Bytes(n int) []byte {
	b := make([]byte, n)
	rand.Read(b)
	return b
}

// Hex returns a random hex string of exactly n characters.
func Hex(n int) string {
	s := hex.EncodeToString(Bytes((n + 1) / 2))
	return s[:n]
}

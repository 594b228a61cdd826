// Package id mints and checks the public identifiers every API resource
// carries: 32 lowercase hex characters, no separators or prefixes.
package id

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
)

var re = regexp.MustCompile(`^[a-f0-9]{32}$`)

// NewID32 returns a fresh 32-char identifier.
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// Valid reports whether s is a well-formed identifier.
func Valid(s string) bool { return re.MatchString(s) }

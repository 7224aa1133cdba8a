// Package random provides cryptographically secure random tokens.
package random

import (
	"crypto/rand"
	"encoding/hex"
)

// Hex returns a hex-encoded random string of n bytes (2n characters).
func Hex(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		panic("crypto/rand failed: " + err.Error())
	}
	return hex.EncodeToString(buf)
}

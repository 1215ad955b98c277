package library

import (
	"crypto/sha256"
	"fmt"
)

func Sha256Sum(data interface{}) Sha256 {
	var b []byte
	switch d := data.(type) {
	case string:
		b = []byte(d)
	case []byte:
		b = d
	default:
		LogCLI(fmt.Sprintf("attempted to hash %T, expected string or []byte", data), 1)
	}
	h := sha256.New()
	h.Write(b)
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Sha256Digest is Sha256Sum without the hex rendering, for callers that sign the digest.
func Sha256Digest(message string) []byte {
	h := sha256.Sum256([]byte(message))
	return h[:]
}

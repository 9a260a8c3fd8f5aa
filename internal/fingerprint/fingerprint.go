// Package fingerprint derives a stable content identity for cards that
// come from synced sources, so a re-run of sync recognizes unchanged
// cards regardless of file order or incidental whitespace.
package fingerprint

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// Normalize cleans the front and back texts and joins them. Each part is
// lowercased, trimmed, and has its line endings normalized.
func Normalize(front, back string) string {
	normalizePart := func(part string) string {
		p := strings.ToLower(part)
		p = strings.TrimSpace(p)
		p = strings.ReplaceAll(p, "\r\n", "\n")
		return p
	}

	// A newline between the fields keeps "front" and "back" from running
	// together and colliding with a different split of the same text.
	return normalizePart(front) + "\n" + normalizePart(back)
}

// Hash returns the SHA-256 of the normalized card content as hex.
func Hash(front, back string) string {
	sum := sha256.Sum256([]byte(Normalize(front, back)))
	return fmt.Sprintf("%x", sum)
}

// Package naming derives the obfuscated names objects are stored under and
// the random tokens used for presigned access.
package naming

import (
	"crypto/rand"
	"encoding/hex"
	"path/filepath"
	"strings"
)

// StoredNameBytes is the amount of randomness in a stored name (32 hex chars).
const StoredNameBytes = 16

// Derive returns a non-guessable stored name for originalName, keeping only its
// extension. Collisions are not checked against existing names.
func Derive(originalName string) string {
	return mustRandomHex(StoredNameBytes) + Extension(originalName)
}

// Extension returns the suffix of the last path element from its final dot.
// A dot that starts the element (".env") does not begin an extension, and
// neither do "." and "..". A trailing dot ("archive.") is returned as ".".
func Extension(name string) string {
	base := filepath.Base(name)
	if base == "." || base == ".." {
		return ""
	}
	i := strings.LastIndexByte(base, '.')
	if i <= 0 {
		return ""
	}
	return base[i:]
}

// RandomHex returns n cryptographically random bytes, hex-encoded.
func RandomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func mustRandomHex(n int) string {
	s, err := RandomHex(n)
	if err != nil {
		// crypto/rand only fails when the OS entropy source is unusable.
		panic("naming: " + err.Error())
	}
	return s
}

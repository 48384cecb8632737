// File: internal/infra/security/keys.go
package security

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

const keyPrefix = "sk-"

// GenerateAPIKey returns a new plaintext API key. The key is shown once at
// issuance; only its hash is ever stored.
func GenerateAPIKey() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("rand: %w", err)
	}
	return keyPrefix + hex.EncodeToString(buf), nil
}

// HashAPIKey derives the stored lookup hash for a presented key.
func HashAPIKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

// LooksLikeAPIKey is a cheap shape check before hitting the store.
func LooksLikeAPIKey(key string) bool {
	return strings.HasPrefix(key, keyPrefix) && len(key) > len(keyPrefix)
}

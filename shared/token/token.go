package token

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// Size is the number of random bytes behind every confirmation token.
const Size = 32

// New returns a URL-safe, unpadded token carrying Size bytes of entropy.
func New() (string, error) {
	buf := make([]byte, Size)

	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Valid reports whether value has the shape of a token produced by New.
func Valid(value string) bool {
	if len(value) != base64.RawURLEncoding.EncodedLen(Size) {
		return false
	}

	decoded, err := base64.RawURLEncoding.DecodeString(value)

	return err == nil && len(decoded) == Size
}

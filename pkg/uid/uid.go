package uid

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// New generates a request identifier.
func New() string {
	return uuid.New().String()
}

// IsValid checks if a string is a valid UUID.
func IsValid(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// NewToken returns prefix followed by 32 random bytes in hex.
func NewToken(prefix string) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return prefix + hex.EncodeToString(b), nil
}

// HasPrefix reports whether token looks like one produced by NewToken(prefix).
func HasPrefix(token, prefix string) bool {
	return strings.HasPrefix(token, prefix) && len(token) == len(prefix)+64
}

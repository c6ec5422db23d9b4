// Package id generates Stripe-style prefixed identifiers ("tpl_xK9mP2vL3nQa")
// used as the public handles of templates, variables and artifacts.
package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	// Base62 alphabet: 0-9, A-Z, a-z
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	DefaultLength = 12
)

const (
	PrefixTemplate = "tpl"
	PrefixVariable = "var"
	PrefixArtifact = "art"
)

// Generate creates a cryptographically random Base62 string of the given length.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	result := make([]byte, length)
	base := big.NewInt(int64(len(alphabet)))
	for i := range result {
		n, err := rand.Int(rand.Reader, base)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = alphabet[n.Int64()]
	}

	return string(result), nil
}

// GenerateWithPrefix creates an ID in the format "prefix_randomstring".
func GenerateWithPrefix(prefix string) (string, error) {
	shortID, err := Generate(DefaultLength)
	if err != nil {
		return "", err
	}
	return prefix + "_" + shortID, nil
}

func NewTemplateID() (string, error) { return GenerateWithPrefix(PrefixTemplate) }
func NewVariableID() (string, error) { return GenerateWithPrefix(PrefixVariable) }
func NewArtifactID() (string, error) { return GenerateWithPrefix(PrefixArtifact) }

// ParsePrefixedID splits "fa_xK9mP2" into ("fa", "xK9mP2").
func ParsePrefixedID(prefixedID string) (prefix, shortID string, err error) {
	prefix, shortID, ok := strings.Cut(prefixedID, "_")
	if !ok || prefix == "" || shortID == "" {
		return "", "", fmt.Errorf("invalid prefixed ID format: %s", prefixedID)
	}
	return prefix, shortID, nil
}

// ValidatePrefix checks that prefixedID is well formed and carries expectedPrefix.
func ValidatePrefix(prefixedID, expectedPrefix string) error {
	prefix, _, err := ParsePrefixedID(prefixedID)
	if err != nil {
		return err
	}
	if prefix != expectedPrefix {
		return fmt.Errorf("invalid prefix: expected %s, got %s", expectedPrefix, prefix)
	}
	return nil
}

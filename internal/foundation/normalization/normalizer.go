// Package normalization maps loosely formatted strings (config values, fence
// tags, frontmatter keys) onto closed value sets with a fixed default.
package normalization

import (
	"fmt"
	"sort"
	"strings"
)

// Normalizer is an immutable string-to-value table with a default.
type Normalizer[T comparable] struct {
	validValues  map[string]T
	defaultValue T
	validKeys    []string
}

// NewNormalizer creates a normalizer. Keys are lowercased and trimmed.
func NewNormalizer[T comparable](values map[string]T, defaultValue T) *Normalizer[T] {
	normalized := make(map[string]T, len(values))
	validKeys := make([]string, 0, len(values))
	for k, v := range values {
		key := Clean(k)
		normalized[key] = v
		validKeys = append(validKeys, key)
	}
	sort.Strings(validKeys)

	return &Normalizer[T]{
		validValues:  normalized,
		defaultValue: defaultValue,
		validKeys:    validKeys,
	}
}

// Normalize returns the value for raw, or the default when raw is not recognized.
func (n *Normalizer[T]) Normalize(raw string) T {
	v, _ := n.Lookup(raw)
	return v
}

// Lookup returns the value for raw and whether it was recognized.
// Unrecognized input yields the default value.
func (n *Normalizer[T]) Lookup(raw string) (T, bool) {
	if value, exists := n.validValues[Clean(raw)]; exists {
		return value, true
	}
	return n.defaultValue, false
}

// NormalizeWithError is Normalize for validation paths.
func (n *Normalizer[T]) NormalizeWithError(raw string) (T, error) {
	if value, ok := n.Lookup(raw); ok {
		return value, nil
	}
	var zero T
	return zero, fmt.Errorf("invalid value %q, valid options: %v", raw, n.validKeys)
}

// ValidKeys returns the recognized keys in sorted order.
func (n *Normalizer[T]) ValidKeys() []string {
	result := make([]string, len(n.validKeys))
	copy(result, n.validKeys)
	return result
}

// Clean is the standard key normalization: trimmed and lowercased.
func Clean(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

package normalization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnum string

const (
	testAlpha testEnum = "alpha"
	testBeta  testEnum = "beta"
	testGamma testEnum = "gamma"
)

func TestNormalizer_Basic(t *testing.T) {
	normalizer := NewNormalizer(map[string]testEnum{
		"alpha": testAlpha,
		"Beta":  testBeta,
		"gamma": testGamma,
	}, testAlpha)

	tests := []struct {
		name     string
		input    string
		expected testEnum
		known    bool
	}{
		{"exact match", "alpha", testAlpha, true},
		{"case insensitive", "ALPHA", testAlpha, true},
		{"mixed case key", "beta", testBeta, true},
		{"with spaces", "  gamma ", testGamma, true},
		{"unknown falls back to default", "delta", testAlpha, false},
		{"empty falls back to default", "", testAlpha, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, known := normalizer.Lookup(tt.input)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.known, known)
			assert.Equal(t, tt.expected, normalizer.Normalize(tt.input))
		})
	}
}

func TestNormalizer_WithError(t *testing.T) {
	normalizer := NewNormalizer(map[string]testEnum{"alpha": testAlpha, "beta": testBeta}, testAlpha)

	got, err := normalizer.NormalizeWithError("BETA")
	require.NoError(t, err)
	assert.Equal(t, testBeta, got)

	_, err = normalizer.NormalizeWithError("nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[alpha beta]")
	assert.Equal(t, []string{"alpha", "beta"}, normalizer.ValidKeys())
}

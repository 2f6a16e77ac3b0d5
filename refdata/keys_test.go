package refdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeModeS(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
		ok       bool
	}{
		{"A12BC3", "A12BC3", true},
		{"a12bc3", "A12BC3", true},
		{"  abcdef ", "ABCDEF", true},
		{"000000", "000000", true},
		{"A12BC", "", false},
		{"A12BC34", "", false},
		{"GHIJKL", "", false},
		{"", "", false},
	}
	for _, tc := range testCases {
		hex, ok := NormalizeModeS(tc.input)
		assert.Equal(t, tc.ok, ok, "input %q", tc.input)
		assert.Equal(t, tc.expected, hex, "input %q", tc.input)
	}
}

func TestCanonicalTailForms(t *testing.T) {
	assert.Equal(t, "N12345", CanonicalTail("12345"))
	assert.Equal(t, "N12345", CanonicalTail("N12345"))
	assert.Equal(t, "N12AB", CanonicalTail(" n12ab "))
	assert.Equal(t, "", CanonicalTail(""))
}

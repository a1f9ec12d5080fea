package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "nil slice",
			input:    nil,
			expected: nil,
		},
		{
			name:     "empty slice",
			input:    []string{},
			expected: []string{},
		},
		{
			name:     "trims stakeholder names",
			input:    []string{"  Customer  ", "Clerk  ", "  Auditor"},
			expected: []string{"Customer", "Clerk", "Auditor"},
		},
		{
			name:     "drops repeats keeping first occurrence",
			input:    []string{"Customer", "Clerk", "Customer", "Auditor", "Clerk"},
			expected: []string{"Customer", "Clerk", "Auditor"},
		},
		{
			name:     "drops blanks",
			input:    []string{"Customer", "", "  ", "Clerk"},
			expected: []string{"Customer", "Clerk"},
		},
		{
			name:     "is case-sensitive",
			input:    []string{"customer", "Customer"},
			expected: []string{"customer", "Customer"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeAndTrim(tt.input))
		})
	}
}

func TestCompareFold(t *testing.T) {
	assert.Negative(t, CompareFold("apply for loan", "Buy Items"))
	assert.Positive(t, CompareFold("Withdraw Cash", "buy items"))
	assert.Zero(t, CompareFold("Buy Items", "Buy Items"))
	// Case-only differences still order deterministically.
	assert.Negative(t, CompareFold("Buy Items", "buy items"))
}

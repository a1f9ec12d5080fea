// Package strings provides string helpers shared by the use case modules.
package strings

import (
	"strings"
)

// DedupeAndTrim trims each value and drops blanks and repeats, keeping the
// first occurrence. Used for set-like fields such as stakeholders.
//
// Example:
//
//	DedupeAndTrim([]string{"  Customer ", "Clerk", "Customer", ""})
//	// Returns: []string{"Customer", "Clerk"}
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		result = append(result, trimmed)
	}

	return result
}

// CompareFold orders a and b case-insensitively, falling back to a byte-wise
// comparison so that "apply" and "Apply" still have a deterministic order.
func CompareFold(a, b string) int {
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

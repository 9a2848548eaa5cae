package discovery

import (
	"testing"
)

func TestFilter_FilterByName(t *testing.T) {
	filter := NewFilter()

	tests := []struct {
		name     string
		tests    []string
		pattern  string
		expected int // Expected number of matches
	}{
		{
			name:     "empty pattern returns all",
			tests:    []string{"user.test.ts", "payment.test.ts", "order.test.ts"},
			pattern:  "",
			expected: 3,
		},
		{
			name:     "wildcard pattern matches suffix",
			tests:    []string{"user.test.ts", "payment.test.ts", "order.test.ts"},
			pattern:  "*user.test.ts",
			expected: 1,
		},
		{
			name:     "wildcard pattern matches substring",
			tests:    []string{"user.test.ts", "payment.test.ts", "order.test.ts", "paymentService.test.ts"},
			pattern:  "*payment*",
			expected: 2,
		},
		{
			name:     "simple contains match",
			tests:    []string{"user.test.ts", "payment.test.ts", "order.test.ts"},
			pattern:  "payment",
			expected: 1,
		},
		{
			name:     "no matches",
			tests:    []string{"user.test.ts", "payment.test.ts"},
			pattern:  "*nonexistent*",
			expected: 0,
		},
		{
			name:     "full path with wildcard",
			tests:    []string{"/path/to/user.test.ts", "/path/to/payment.test.ts"},
			pattern:  "*user.test.ts",
			expected: 1,
		},
		{
			name:     "parts must appear in order",
			tests:    []string{"api.client.test.ts", "client.api.test.ts"},
			pattern:  "*api*client*",
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := filter.FilterByName(tt.tests, tt.pattern)
			if len(result) != tt.expected {
				t.Errorf("expected %d matches, got %d: %v", tt.expected, len(result), result)
			}
		})
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		pattern  string
		name     string
		expected bool
	}{
		{"", "anything", true},
		{"math > *", "math > adds", true},
		{"add?", "adds", true},
		{"adds", "math > adds numbers", true},
		{"*numbers", "math > adds numbers", true},
		{"*", "x", true},
		{"sub?", "adds", false},
	}
	for _, tt := range tests {
		if got := Match(tt.pattern, tt.name); got != tt.expected {
			t.Errorf("Match(%q, %q) = %v, want %v", tt.pattern, tt.name, got, tt.expected)
		}
	}
}

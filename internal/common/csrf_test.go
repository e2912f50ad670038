package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchCsrfToken(t *testing.T) {
	tests := []struct {
		name     string
		held     string
		supplied string
		expected bool
	}{
		{
			name:     "given equal tokens should match",
			held:     "c7cf6ba1-6c28-4a1a-bd6f-3a0d50b1e42f",
			supplied: "c7cf6ba1-6c28-4a1a-bd6f-3a0d50b1e42f",
			expected: true,
		},
		{
			name:     "given supplied token with trailing slash should match",
			held:     "c7cf6ba1-6c28-4a1a-bd6f-3a0d50b1e42f",
			supplied: "c7cf6ba1-6c28-4a1a-bd6f-3a0d50b1e42f/",
			expected: true,
		},
		{
			name:     "given different tokens should not match",
			held:     "c7cf6ba1-6c28-4a1a-bd6f-3a0d50b1e42f",
			supplied: "0b651257-0a42-4a6b-bd30-0fb5a6bd9e2d",
			expected: false,
		},
		{
			name:     "given empty held token should not match",
			held:     "",
			supplied: "",
			expected: false,
		},
		{
			name:     "given supplied token with two trailing slashes should not match",
			held:     "c7cf6ba1-6c28-4a1a-bd6f-3a0d50b1e42f",
			supplied: "c7cf6ba1-6c28-4a1a-bd6f-3a0d50b1e42f//",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MatchCsrfToken(tt.held, tt.supplied))
		})
	}
}

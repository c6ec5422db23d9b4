package logutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateForLog(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{name: "empty string", input: "", maxLen: 10, expected: ""},
		{name: "empty string with zero maxLen", input: "", maxLen: 0, expected: "..."},
		{name: "shorter than maxLen", input: "hello", maxLen: 10, expected: "hello"},
		{name: "equal to maxLen", input: "hello", maxLen: 5, expected: "hello"},
		{name: "longer than maxLen", input: "hello world", maxLen: 5, expected: "hello..."},
		{name: "negative maxLen", input: "hello", maxLen: -1, expected: "..."},
		{name: "maxLen is 1", input: "hello", maxLen: 1, expected: "h..."},
		{name: "does not split runes", input: "Qt: 日本語", maxLen: 6, expected: "Qt: ..."},
		{name: "cut on rune boundary", input: "Qt: 日本語", maxLen: 7, expected: "Qt: 日..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateForLog(tt.input, tt.maxLen))
		})
	}
}

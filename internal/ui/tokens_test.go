package ui

import (
	"strings"
	"testing"
)

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int
	}{
		{name: "short string", in: "hello", want: 1},
		{name: "object", in: map[string]any{"key": "value"}, want: 3},
		{name: "null", in: nil, want: 1},
		{name: "empty string", in: "", want: 0},
		{name: "long string", in: strings.Repeat("a", 4000), want: 1000},
		{name: "number", in: 12345678, want: 2},
		{name: "html is not escaped", in: "<a>&</a>", want: 2},
		{name: "array", in: []any{1, 2, 3}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateTokens(tt.in); got != tt.want {
				t.Errorf("EstimateTokens(%v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestEstimateTokensUnencodable(t *testing.T) {
	// Channels cannot be encoded; the estimate falls back to fmt.Sprint.
	ch := make(chan int)
	if got := EstimateTokens(ch); got < 0 {
		t.Errorf("EstimateTokens(chan) = %d, want non-negative", got)
	}
	if got := EstimateTokens(func() {}); got < 0 {
		t.Errorf("EstimateTokens(func) = %d, want non-negative", got)
	}
}

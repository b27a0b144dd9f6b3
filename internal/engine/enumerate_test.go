package engine

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func collect(seq func(func([]int) bool)) [][]int {
	var out [][]int
	for idx := range seq {
		out = append(out, slices.Clone(idx))
	}
	return out
}

func TestCombinationsLexicographic(t *testing.T) {
	got := collect(combinations(4, 2))
	assert.Equal(t, [][]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}, got)
}

func TestPermutationsLexicographic(t *testing.T) {
	got := collect(permutations(3, 2))
	assert.Equal(t, [][]int{{0, 1}, {0, 2}, {1, 0}, {1, 2}, {2, 0}, {2, 1}}, got)

	got = collect(permutations(3, 3))
	assert.Equal(t, [][]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}, got)
}

func TestEnumerationCounts(t *testing.T) {
	tests := []struct {
		n, k        int
		comb, perms int
	}{
		{0, 0, 1, 1},
		{5, 0, 1, 1},
		{5, 5, 1, 120},
		{6, 3, 20, 120},
		{3, 4, 0, 0},
	}
	for _, tt := range tests {
		if got := len(collect(combinations(tt.n, tt.k))); got != tt.comb {
			t.Errorf("C(%d, %d): got %d, want %d", tt.n, tt.k, got, tt.comb)
		}
		if got := len(collect(permutations(tt.n, tt.k))); got != tt.perms {
			t.Errorf("P(%d, %d): got %d, want %d", tt.n, tt.k, got, tt.perms)
		}
	}
}

func TestEnumerationStopsEarly(t *testing.T) {
	n := 0
	for range permutations(10, 5) {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}

func TestBinomialExceeds(t *testing.T) {
	assert.True(t, binomialExceeds(21, 8, 50000), "C(21, 8) = 203490")
	assert.False(t, binomialExceeds(8, 6, 50000), "C(8, 6) = 28")
	assert.False(t, binomialExceeds(6, 3, 20))
	assert.True(t, binomialExceeds(6, 3, 19))
	assert.False(t, binomialExceeds(3, 4, 0))
	assert.True(t, binomialExceeds(200, 100, math.MaxInt64), "overflow counts as exceeding")
}

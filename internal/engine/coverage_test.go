package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/LazorSolve/internal/model"
)

func TestCoverage_FollowsRefractBranches(t *testing.T) {
	l := mustLattice(t, "o o o", "o C o", "o o o")

	tests := []struct {
		origin model.LaserState
		want   []model.Point
	}{
		{laser(1, 2, 1, 1), pts(0, 5, 1, 2, 1, 4, 2, 3, 3, 4, 4, 5, 5, 6)},
		{laser(2, 1, 1, 1), pts(2, 1, 3, 2, 4, 1, 4, 3, 5, 0, 5, 4, 6, 5)},
	}
	for _, tt := range tests {
		lit, err := Coverage([]model.LaserState{tt.origin}, l)
		require.NoError(t, err)
		assert.Equal(t, tt.want, lit.Sorted(), "origin %v", tt.origin)
		assert.Len(t, lit.Paths, 2, "origin ray plus one branch")
	}
}

func TestCoverage_RefractGuardAcrossBlockRow(t *testing.T) {
	l := mustLattice(t, "o o o", "C C C", "C C C")
	lit, err := Coverage([]model.LaserState{laser(1, 0, 1, 1)}, l)
	require.NoError(t, err)

	want := pts(1, 0, 1, 6, 2, 1, 2, 3, 2, 5, 3, 2, 3, 4, 3, 6,
		4, 1, 4, 3, 4, 5, 5, 0, 5, 2, 5, 4, 6, 3, 6, 5)
	assert.Equal(t, want, lit.Sorted())

	// Points only reachable by re-splitting inside the refract block.
	for _, p := range pts(0, 1, 1, 2, 3, 0, 5, 6) {
		assert.False(t, lit.Points.Has(p), "unexpected %v", p)
	}
}

func TestCoverage_UnionIsMonotonic(t *testing.T) {
	l := mustLattice(t, "o o o", "o C o", "o o o")
	a := laser(1, 2, 1, 1)
	b := laser(2, 1, 1, 1)

	litA, err := Coverage([]model.LaserState{a}, l)
	require.NoError(t, err)
	litB, err := Coverage([]model.LaserState{b}, l)
	require.NoError(t, err)
	both, err := Coverage([]model.LaserState{a, b}, l)
	require.NoError(t, err)

	for _, p := range append(litA.Sorted(), litB.Sorted()...) {
		assert.True(t, both.Points.Has(p), "combined coverage lost %v", p)
	}
	assert.Equal(t, both.Points.Size(), len(both.Sorted()))
}

func TestCoverage_DuplicateOriginsTracedOnce(t *testing.T) {
	l := mustLattice(t, "o o", "o o")
	o := laser(1, 0, 1, 1)

	lit, err := Coverage([]model.LaserState{o, o}, l)
	require.NoError(t, err)
	assert.Len(t, lit.Paths, 1)
}

func TestLit_CoversAndMissing(t *testing.T) {
	l := mustLattice(t, "o B", "o o")
	lit, err := Coverage([]model.LaserState{laser(1, 0, 1, 1)}, l)
	require.NoError(t, err)

	assert.True(t, lit.Covers(pts(2, 1)))
	assert.True(t, lit.Covers(nil))
	assert.False(t, lit.Covers(pts(2, 1, 3, 2)))
	assert.Equal(t, pts(3, 2), lit.Missing(pts(2, 1, 3, 2)))
}

// SPDX-License-Identifier: MIT

package pruner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/cutpruner/pruner"
)

func newLevelOne(t *testing.T, d int, sense pruner.Sense, maxCuts int) *pruner.Pruner {
	t.Helper()
	opts := pruner.DefaultOptions()
	opts.Policy = pruner.PolicyLevelOne
	opts.MaxCuts = maxCuts
	p, err := pruner.New(d, sense, opts)
	require.NoError(t, err)
	return p
}

// TestLevelOne_TerritoryOwnership replays three 1-D supports of a convex
// function and four sampled states, checking every ownership decision
// including the first-match tie.
func TestLevelOne_TerritoryOwnership(t *testing.T) {
	p := newLevelOne(t, 1, pruner.SenseMax, pruner.Unbounded)

	// Cuts: x, -x+2, and the constant 1.
	addBatch(t, p, []float64{1, -1, 0}, []float64{0, 2, 1}, []bool{true, true, true})

	require.NoError(t, p.UpdateStates(mat.NewDense(4, 1, []float64{-1, 0, 1, 2})))
	require.NoError(t, p.CheckInvariants())

	assert.Equal(t, 4, p.NStates())
	assert.Equal(t, 1, p.TerritoryOwner(0), "-x+2 dominates at x=-1")
	assert.Equal(t, 1, p.TerritoryOwner(1), "-x+2 dominates at x=0")
	assert.Equal(t, 0, p.TerritoryOwner(2), "three-way tie at x=1 goes to the first cut")
	assert.Equal(t, 0, p.TerritoryOwner(3), "x dominates at x=2")
	assert.Equal(t, []float64{2, 2, 0}, p.Trust(), "trust equals territory size")
}

// TestLevelOne_NewCutStealsTerritory verifies that an appended cut takes
// over exactly the states where it is strictly better.
func TestLevelOne_NewCutStealsTerritory(t *testing.T) {
	p := newLevelOne(t, 1, pruner.SenseMax, pruner.Unbounded)

	addBatch(t, p, []float64{0}, []float64{0}, []bool{true})
	require.NoError(t, p.UpdateStates(mat.NewDense(3, 1, []float64{0, 1, 2})))
	assert.Equal(t, []float64{3}, p.Trust())

	// x - 1 beats the zero cut only at x=2 (value 1 vs 0); the tie at
	// x=1 keeps its current owner.
	addBatch(t, p, []float64{1}, []float64{-1}, []bool{true})
	require.NoError(t, p.CheckInvariants())

	assert.Equal(t, []float64{2, 1}, p.Trust())
	assert.Equal(t, 0, p.TerritoryOwner(1), "ties keep the incumbent owner")
	assert.Equal(t, 1, p.TerritoryOwner(2))
}

// TestLevelOne_ReplacementRehomesStates verifies the replace path: the
// outgoing cut's states are contested by the newcomer and rehomed among
// all survivors.
func TestLevelOne_ReplacementRehomesStates(t *testing.T) {
	p := newLevelOne(t, 1, pruner.SenseMax, pruner.Unbounded)

	addBatch(t, p, []float64{1, -1}, []float64{0, 0}, []bool{true, true})
	require.NoError(t, p.UpdateStates(mat.NewDense(2, 1, []float64{-2, 2})))
	assert.Equal(t, []float64{1, 1}, p.Trust())

	// Replace slot 1 (owner of x=2) with a constant far below everything:
	// its state must fall back to the survivor.
	require.NoError(t, p.ReplaceCuts([]int{1}, mat.NewDense(1, 1, []float64{0}), []float64{-100}, []bool{true}))
	require.NoError(t, p.CheckInvariants())

	assert.Equal(t, []float64{0, 2}, p.Trust(),
		"slot 2 (-x) now owns both states; the newcomer owns none")
	assert.Equal(t, 1, p.TerritoryOwner(0))
	assert.Equal(t, 1, p.TerritoryOwner(1))
}

// TestLevelOne_KeepOnlyRehomesStates verifies projection rehomes the
// dropped cut's states instead of losing them.
func TestLevelOne_KeepOnlyRehomesStates(t *testing.T) {
	p := newLevelOne(t, 1, pruner.SenseMax, pruner.Unbounded)

	addBatch(t, p, []float64{1, 0}, []float64{0, 0}, []bool{true, true})
	require.NoError(t, p.UpdateStates(mat.NewDense(2, 1, []float64{-1, 1})))
	assert.Equal(t, []float64{1, 1}, p.Trust())

	require.NoError(t, p.KeepOnlyCuts([]int{2}))
	require.NoError(t, p.CheckInvariants())

	assert.Equal(t, []float64{2}, p.Trust(), "the survivor inherits every state")
	assert.Equal(t, 2, p.NStates())
}

// TestLevelOne_StatesBeforeCuts verifies states visited while the pruner
// is empty are parked and assigned on the first admission.
func TestLevelOne_StatesBeforeCuts(t *testing.T) {
	p := newLevelOne(t, 1, pruner.SenseMax, pruner.Unbounded)

	require.NoError(t, p.UpdateStates(mat.NewDense(2, 1, []float64{0, 1})))
	assert.Equal(t, 2, p.NStates())

	addBatch(t, p, []float64{1}, []float64{0}, []bool{true})
	require.NoError(t, p.CheckInvariants())
	assert.Equal(t, []float64{2}, p.Trust(), "parked states are rehomed on admission")
}

// TestLevelOne_PolyhedralDistance verifies the polyhedral cut value uses
// the normalized signed distance: eviction prefers the cut whose
// half-space boundary is consistently further from the visited states.
func TestLevelOne_PolyhedralDistance(t *testing.T) {
	p := newLevelOne(t, 2, pruner.SenseGE, pruner.Unbounded)

	// Two lower-bound half-spaces: x1 >= 0 and 2*x1 >= -2 (i.e. x1 >= -1).
	addBatch(t, p, []float64{1, 0, 2, 0}, []float64{0, -2}, []bool{true, true})
	require.NoError(t, p.UpdateStates(mat.NewDense(1, 2, []float64{5, 0})))
	require.NoError(t, p.CheckInvariants())

	// Signed distances: (0-5)/1 = -5 vs (-2-10)/2 = -6; larger wins.
	assert.Equal(t, []float64{1, 0}, p.Trust())
}

// TestLevelOne_EvictionByTerritory verifies a cut with no territory is
// the eviction victim under capacity pressure.
func TestLevelOne_EvictionByTerritory(t *testing.T) {
	p := newLevelOne(t, 1, pruner.SenseMax, 2)

	addBatch(t, p, []float64{1, 0}, []float64{0, 0}, []bool{true, true})
	require.NoError(t, p.UpdateStates(mat.NewDense(1, 1, []float64{2})))
	assert.Equal(t, []float64{1, 0}, p.Trust())

	// The constant cut owns nothing; a newcomer takes its slot.
	status := addBatch(t, p, []float64{-1}, []float64{0}, []bool{true})
	assert.Equal(t, []int{2}, status, "the zero-territory slot is replaced")
	require.NoError(t, p.CheckInvariants())
	assert.Equal(t, []float64{-1, 1}, firstCoords(t, p))
}

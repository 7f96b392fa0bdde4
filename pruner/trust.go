// SPDX-License-Identifier: MIT
// Package pruner: the trust model contract shared by the three scoring
// policies. A trust model owns the trust vector and keeps it aligned with
// the store through every admission, replacement and projection.

package pruner

// trustModel is the scoring policy behind eviction decisions. The Pruner
// calls the lifecycle hooks in lockstep with cutStore mutations so that
// trust[i] always reflects the current policy's rule for cut i.
type trustModel interface {
	// initialTrust returns the trust a brand-new cut is born with.
	initialTrust(mine bool) float64

	// onAppend extends the trust state by len(mine) new cuts.
	onAppend(mine []bool)

	// onReplace resets the trust state at the given 0-based slots to the
	// birth value. Called after the store installed the new rows.
	onReplace(slots []int, mine []bool)

	// onKeepOnly projects the trust state to the given 0-based slots, in
	// order. Called after the store projection.
	onKeepOnly(keep []int)

	// isBetter reports whether incumbent cut i (0-based) beats a
	// hypothetical new cut with the given my-flag. The admission loop
	// retracts an eviction whenever the incumbent is better.
	isBetter(i int, hypotheticalMine bool) bool

	// trust exposes the live trust vector, aligned with the store.
	// Callers must not mutate it.
	trust() []float64
}

// statsModel is implemented by the scalar policies (Average, Decay) that
// consume a dual-multiplier vector per optimization step.
type statsModel interface {
	trustModel

	// updateStats folds one step of multipliers (aligned with the current
	// cuts) into the trust state.
	updateStats(multipliers []float64)
}

// projectFloats returns values[keep[0]], values[keep[1]], ... as a new
// slice. Shared by the policies in their onKeepOnly hooks.
func projectFloats(values []float64, keep []int) []float64 {
	out := make([]float64, len(keep))
	for j, i := range keep {
		out[j] = values[i]
	}
	return out
}

// projectInts mirrors projectFloats for integer counters.
func projectInts(values []int, keep []int) []int {
	out := make([]int, len(keep))
	for j, i := range keep {
		out[j] = values[i]
	}
	return out
}

// projectBools mirrors projectFloats for per-cut flags.
func projectBools(values []bool, keep []int) []bool {
	out := make([]bool, len(keep))
	for j, i := range keep {
		out[j] = values[i]
	}
	return out
}

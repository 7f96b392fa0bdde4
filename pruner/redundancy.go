// SPDX-License-Identifier: MIT
// Package pruner: redundancy filtering of incoming candidate cuts against
// the stored collection. The filter detects exact duplicates under
// normalization and tolerance; it does not attempt geometric redundancy
// (parallel cuts with differing slopes, LP-based domination).

package pruner

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// normalizeCut returns the comparison form of an incoming cut (a, β).
// Function cuts are compared as-is: the slope carries meaning and scaling
// would change the function value. Polyhedral half-spaces are scale
// invariant, so the row is scaled to unit 2-norm (offset included) unless
// the norm is below tol, in which case the degenerate row stays as-is.
// The returned slice is freshly allocated when scaling occurs.
func normalizeCut(sense Sense, tol float64, a []float64, b float64) ([]float64, float64) {
	if sense.IsFunction() {
		return a, b
	}
	nrm := floats.Norm(a, 2)
	if nrm < tol {
		return a, b
	}
	scaled := make([]float64, len(a))
	copy(scaled, a)
	floats.Scale(1/nrm, scaled)
	return scaled, b / nrm
}

// redundantRows marks each incoming cut that duplicates a stored cut with
// a dominated offset. The incoming row is normalized and compared against
// the stored rows under the ∞-norm; on the first coefficient match within
// tol the offsets decide:
//
//   - lower-bound senses (≥/max): redundant when βnew ≤ βstored + tol —
//     the candidate does not raise the bound;
//   - upper-bound senses (≤/min): redundant when βnew + tol ≥ βstored —
//     the candidate does not tighten the bound.
//
// Only the first matching stored cut is consulted; the filter does not
// search for the tightest match. Complexity: O(k·n·d) per batch.
func redundantRows(store *cutStore, sense Sense, tol float64, rows [][]float64, offs []float64) []bool {
	red := make([]bool, len(offs))
	if store.n() == 0 {
		return red
	}
	inf := math.Inf(1)
	for k := range offs {
		aNew, bNew := normalizeCut(sense, tol, rows[k], offs[k])
		for i := 0; i < store.n(); i++ {
			if floats.Distance(aNew, store.row(i), inf) > tol {
				continue
			}
			if sense.IsLowerBound() {
				red[k] = bNew <= store.b[i]+tol
			} else {
				red[k] = bNew+tol >= store.b[i]
			}
			break
		}
	}
	return red
}

// SPDX-License-Identifier: MIT
// Package pruner: the cut store — a dense row-major cut matrix with offsets
// and strictly increasing per-cut ids. The store knows nothing about trust;
// it only owns geometry and age.

package pruner

import "gonum.org/v1/gonum/mat"

// cutStore owns the cut matrix A (n×d), the offset vector b, and the id
// vector. Ids are drawn from idCursor, which increases strictly and is
// never reused: ids[i] < ids[j] means cut i is strictly older than cut j.
// Replaced slots receive fresh ids, so a replaced slot becomes the youngest.
type cutStore struct {
	d        int        // cut dimension (columns of a)
	a        *mat.Dense // n×d cut matrix; nil while n == 0
	b        []float64  // offsets, len n
	ids      []uint64   // ages, len n, strictly increasing at birth
	idCursor uint64     // last id handed out
}

// newCutStore creates an empty store for cuts of dimension d.
// d is validated by the Pruner constructor.
func newCutStore(d int) *cutStore {
	return &cutStore{d: d}
}

// n returns the number of stored cuts.
// Complexity: O(1).
func (s *cutStore) n() int {
	return len(s.b)
}

// row returns the coefficient vector of cut i (0-based) without copying.
// Callers must not mutate the returned slice.
func (s *cutStore) row(i int) []float64 {
	return s.a.RawRowView(i)
}

// nextID advances the cursor and returns a fresh id.
func (s *cutStore) nextID() uint64 {
	s.idCursor++
	return s.idCursor
}

// appendRows extends the store by len(offs) cuts, assigning fresh ids in
// input order. rows[i] must have length d; shape is validated upstream.
// Complexity: O((n+k)·d) — the matrix is rebuilt by copy.
func (s *cutStore) appendRows(rows [][]float64, offs []float64) {
	k := len(offs)
	if k == 0 {
		return
	}
	nOld := s.n()
	grown := mat.NewDense(nOld+k, s.d, nil)
	for i := 0; i < nOld; i++ {
		grown.SetRow(i, s.a.RawRowView(i))
	}
	for j := 0; j < k; j++ {
		grown.SetRow(nOld+j, rows[j])
		s.b = append(s.b, offs[j])
		s.ids = append(s.ids, s.nextID())
	}
	s.a = grown
}

// replaceAt overwrites the cuts at the given 0-based slots with new rows
// and offsets, stamping fresh ids so the replaced slots become the
// youngest cuts in the store. len(slots) == len(rows) == len(offs).
// Complexity: O(r·d) for r replacements.
func (s *cutStore) replaceAt(slots []int, rows [][]float64, offs []float64) {
	for j, slot := range slots {
		s.a.SetRow(slot, rows[j])
		s.b[slot] = offs[j]
		s.ids[slot] = s.nextID()
	}
}

// keepOnly projects the store to the cuts listed in keep (0-based), in the
// order given. keep may reorder cuts; it must not contain duplicates
// (validated upstream). Complexity: O(len(keep)·d).
func (s *cutStore) keepOnly(keep []int) {
	m := len(keep)
	if m == 0 {
		s.a = nil
		s.b = nil
		s.ids = nil
		return
	}
	kept := mat.NewDense(m, s.d, nil)
	bNew := make([]float64, m)
	idsNew := make([]uint64, m)
	for j, i := range keep {
		kept.SetRow(j, s.a.RawRowView(i))
		bNew[j] = s.b[i]
		idsNew[j] = s.ids[i]
	}
	s.a = kept
	s.b = bNew
	s.ids = idsNew
}

// removeAt drops the cuts at the given 0-based slots, keeping the rest in
// their current order. Equivalent to keepOnly(complement(drop)).
func (s *cutStore) removeAt(drop []int) []int {
	gone := make(map[int]bool, len(drop))
	for _, i := range drop {
		gone[i] = true
	}
	keep := make([]int, 0, s.n()-len(gone))
	for i := 0; i < s.n(); i++ {
		if !gone[i] {
			keep = append(keep, i)
		}
	}
	s.keepOnly(keep)
	return keep
}

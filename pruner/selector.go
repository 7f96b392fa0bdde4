// SPDX-License-Identifier: MIT
// Package pruner: eviction candidate selection. Given the trust vector and
// the id vector, pick the num weakest cuts with ties broken on age.

package pruner

import "sort"

// chooseToRemove returns the 0-based indices of the num weakest cuts,
// ordered ascending by the lexicographic key (trust, id). The last element
// is therefore the strongest among the weakest — the most defensible
// eviction victim, which the admission loop reconsiders first.
//
// Ties in trust break on the smaller id (older cut loses). Because ids are
// unique, the key is a total order and sort stability is irrelevant.
//
// num must satisfy 0 <= num <= len(trust); the caller clamps.
// Complexity: O(n) when num == 1, O(n log n) otherwise.
func chooseToRemove(trust []float64, ids []uint64, num int) []int {
	if num <= 0 {
		return nil
	}
	// Fast path: a single victim needs one linear scan.
	if num == 1 {
		best := 0
		for i := 1; i < len(trust); i++ {
			if trust[i] < trust[best] || (trust[i] == trust[best] && ids[i] < ids[best]) {
				best = i
			}
		}
		return []int{best}
	}

	idx := make([]int, len(trust))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(x, y int) bool {
		i, j := idx[x], idx[y]
		if trust[i] != trust[j] {
			return trust[i] < trust[j]
		}
		return ids[i] < ids[j]
	})

	return idx[:num]
}

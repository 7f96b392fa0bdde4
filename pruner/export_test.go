// SPDX-License-Identifier: MIT

package pruner

// Test-Bridge (White-Box)
//
// Purpose:
//   - Expose unexported internals to pruner_test ONLY, so black-box tests
//     can assert structural invariants without widening the prod API.

// CheckInvariants exposes the structural self-check to the test package.
func (p *Pruner) CheckInvariants() error { return p.checkInvariants() }

// ChooseToRemove exposes the selector for direct unit testing.
func ChooseToRemove(trust []float64, ids []uint64, num int) []int {
	return chooseToRemove(trust, ids, num)
}

// RedundantRows runs the redundancy filter of p against a candidate batch
// given as row slices.
func (p *Pruner) RedundantRows(rows [][]float64, offs []float64) []bool {
	return redundantRows(p.store, p.sense, p.opts.Tol, rows, offs)
}

// TerritorySizes returns the current territory size per cut under
// PolicyLevelOne, nil otherwise.
func (p *Pruner) TerritorySizes() []int {
	lom, ok := p.model.(*levelOneModel)
	if !ok {
		return nil
	}
	sizes := make([]int, len(lom.terr))
	for k := range lom.terr {
		sizes[k] = len(lom.terr[k])
	}
	return sizes
}

// TerritoryOwner returns the 0-based cut index owning the given 0-based
// state, or -1 when the state is unowned.
func (p *Pruner) TerritoryOwner(state int) int {
	lom, ok := p.model.(*levelOneModel)
	if !ok {
		return -1
	}
	for k := range lom.terr {
		for _, e := range lom.terr[k] {
			if e.state == state {
				return k
			}
		}
	}
	return -1
}

// Poison marks the pruner poisoned, for exercising the poisoned path.
func (p *Pruner) Poison() { p.poisoned = true }

// SPDX-License-Identifier: MIT
// Package pruner: the Level-One trust policy — geometric territory scoring.
// A cut's trust is the number of sampled state points at which it is the
// pointwise-optimal support among all current cuts.

package pruner

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// territoryEntry records one state owned by a cut: the 0-based index into
// the state matrix and the owner's cut value there at assignment time.
type territoryEntry struct {
	state int
	value float64
}

// levelOneModel keeps every state point visited so far and, per cut, the
// set of states where that cut attains the pointwise maximum of cutValue.
// The territories partition the visited states: each state has exactly one
// owner (ties keep the incumbent owner; fresh assignments go to the
// smallest cut index).
type levelOneModel struct {
	sense Sense
	store *cutStore // shared with the Pruner; rows back cutValue

	states  *mat.Dense         // nStates×d sample matrix; nil while empty
	nStates int                // rows of states
	terr    [][]territoryEntry // territory per cut, aligned with the store
	orphans []int              // states visited while the store was empty
	tr      []float64          // territory sizes as float64
}

var _ trustModel = (*levelOneModel)(nil)

func newLevelOneModel(sense Sense, store *cutStore) *levelOneModel {
	return &levelOneModel{sense: sense, store: store}
}

// cutValue measures how supportive cut k (0-based) is at state x.
// Function cuts evaluate the affine form; polyhedral cuts use the signed
// distance of x to the hyperplane. The value is negated for upper-bound
// senses so that larger always means more supportive.
func (m *levelOneModel) cutValue(k int, x []float64) float64 {
	a := m.store.row(k)
	var v float64
	if m.sense.IsFunction() {
		v = floats.Dot(a, x) + m.store.b[k]
	} else {
		v = (m.store.b[k] - floats.Dot(a, x)) / floats.Norm(a, 2)
	}
	if !m.sense.IsLowerBound() {
		v = -v
	}
	return v
}

// giveTerritory assigns state ix to the cut with the largest cutValue,
// first cut winning ties. States visited while no cuts exist are parked
// in orphans and rehomed on the next admission.
func (m *levelOneModel) giveTerritory(ix int) {
	n := m.store.n()
	if n == 0 {
		m.orphans = append(m.orphans, ix)
		return
	}
	x := m.states.RawRowView(ix)
	best, bestVal := 0, m.cutValue(0, x)
	for k := 1; k < n; k++ {
		if v := m.cutValue(k, x); v > bestVal {
			best, bestVal = k, v
		}
	}
	m.terr[best] = append(m.terr[best], territoryEntry{state: ix, value: bestVal})
}

// updateTerritoryForNewCut migrates to cut k every state owned by another
// cut where k is strictly better. Ties keep the existing owner.
func (m *levelOneModel) updateTerritoryForNewCut(k int) {
	for j := range m.terr {
		if j == k {
			continue
		}
		kept := m.terr[j][:0]
		for _, e := range m.terr[j] {
			if v := m.cutValue(k, m.states.RawRowView(e.state)); v > e.value {
				m.terr[k] = append(m.terr[k], territoryEntry{state: e.state, value: v})
			} else {
				kept = append(kept, e)
			}
		}
		m.terr[j] = kept
	}
}

// drainOrphans rehomes states that were visited while the store was empty.
// No-op until at least one cut exists.
func (m *levelOneModel) drainOrphans() {
	if m.store.n() == 0 || len(m.orphans) == 0 {
		return
	}
	pending := m.orphans
	m.orphans = nil
	for _, ix := range pending {
		m.giveTerritory(ix)
	}
}

// refreshTrust recomputes every trust as its territory size.
func (m *levelOneModel) refreshTrust() {
	for k := range m.terr {
		m.tr[k] = float64(len(m.terr[k]))
	}
}

// addStates appends the rows of x to the state matrix and assigns each new
// state to its pointwise-best cut. Shapes are validated by the Pruner.
func (m *levelOneModel) addStates(x *mat.Dense) {
	rows, d := x.Dims()
	grown := mat.NewDense(m.nStates+rows, d, nil)
	for i := 0; i < m.nStates; i++ {
		grown.SetRow(i, m.states.RawRowView(i))
	}
	for i := 0; i < rows; i++ {
		grown.SetRow(m.nStates+i, x.RawRowView(i))
	}
	m.states = grown

	for i := 0; i < rows; i++ {
		m.giveTerritory(m.nStates + i)
	}
	m.nStates += rows
	m.refreshTrust()
}

// initialTrust: a brand-new cut owns no territory yet.
func (m *levelOneModel) initialTrust(bool) float64 { return 0 }

func (m *levelOneModel) onAppend(mine []bool) {
	nOld := len(m.terr)
	for range mine {
		m.terr = append(m.terr, nil)
		m.tr = append(m.tr, 0)
	}
	for k := nOld; k < len(m.terr); k++ {
		m.updateTerritoryForNewCut(k)
	}
	m.drainOrphans()
	m.refreshTrust()
}

func (m *levelOneModel) onReplace(slots []int, _ []bool) {
	// The store already installed the new rows; the old cuts' states are
	// set aside, contested by the newcomers, and rehomed at the end.
	var side []territoryEntry
	for _, slot := range slots {
		side = append(side, m.terr[slot]...)
		m.terr[slot] = nil
	}
	for _, slot := range slots {
		m.updateTerritoryForNewCut(slot)
	}
	for _, e := range side {
		m.giveTerritory(e.state)
	}
	m.refreshTrust()
}

func (m *levelOneModel) onKeepOnly(keep []int) {
	kept := make(map[int]bool, len(keep))
	for _, i := range keep {
		kept[i] = true
	}
	var side []territoryEntry
	for j := range m.terr {
		if !kept[j] {
			side = append(side, m.terr[j]...)
		}
	}
	terrNew := make([][]territoryEntry, len(keep))
	trNew := make([]float64, len(keep))
	for j, i := range keep {
		terrNew[j] = m.terr[i]
	}
	m.terr = terrNew
	m.tr = trNew
	// Rehome states stranded by the dropped cuts. The store is already
	// projected, so giveTerritory sees only surviving cuts.
	for _, e := range side {
		m.giveTerritory(e.state)
	}
	m.refreshTrust()
}

// isBetter uses the default comparison: the incumbent beats a hypothetical
// new cut only when it owns at least one state (new cuts are born with
// empty territory).
func (m *levelOneModel) isBetter(i int, hypotheticalMine bool) bool {
	return m.tr[i] > m.initialTrust(hypotheticalMine)
}

func (m *levelOneModel) trust() []float64 { return m.tr }

// SPDX-License-Identifier: MIT
// Package pruner: the Average trust policy — lifetime usage frequency.

package pruner

import "math"

// avgModel scores cut i as nUsed[i]/nWith[i]: the fraction of optimization
// steps, since the cut's birth, in which its multiplier was non-zero.
// Until the first step lands (nWith == 0) the cut keeps its birth trust.
// My-cuts carry an additive bonus for their whole lifetime.
type avgModel struct {
	newCutTrust float64 // birth trust before bonus, in [0,1]
	myCutBonus  float64 // additive bonus for my-cuts

	nUsed []int     // steps with |multiplier| > usageTol, per cut
	nWith []int     // steps observed since birth, per cut
	mine  []bool    // my-flag at birth, per cut (bonus persists)
	tr    []float64 // current trust, per cut
}

var _ statsModel = (*avgModel)(nil)

func newAvgModel(opts Options) *avgModel {
	return &avgModel{newCutTrust: opts.NewCutTrust, myCutBonus: opts.MyCutBonus}
}

// initialTrust returns the birth trust: NewCutTrust plus the my-cut bonus.
func (m *avgModel) initialTrust(mine bool) float64 {
	if mine {
		return m.newCutTrust + m.myCutBonus
	}
	return m.newCutTrust
}

func (m *avgModel) onAppend(mine []bool) {
	for _, my := range mine {
		m.nUsed = append(m.nUsed, 0)
		m.nWith = append(m.nWith, 0)
		m.mine = append(m.mine, my)
		m.tr = append(m.tr, m.initialTrust(my))
	}
}

func (m *avgModel) onReplace(slots []int, mine []bool) {
	for j, slot := range slots {
		m.nUsed[slot] = 0
		m.nWith[slot] = 0
		m.mine[slot] = mine[j]
		m.tr[slot] = m.initialTrust(mine[j])
	}
}

func (m *avgModel) onKeepOnly(keep []int) {
	m.nUsed = projectInts(m.nUsed, keep)
	m.nWith = projectInts(m.nWith, keep)
	m.mine = projectBools(m.mine, keep)
	m.tr = projectFloats(m.tr, keep)
}

// updateStats folds one step of dual multipliers: every cut gains an
// observation, cuts with |multiplier| above usageTol gain a use.
func (m *avgModel) updateStats(multipliers []float64) {
	for i, sigma := range multipliers {
		m.nWith[i]++
		if math.Abs(sigma) > usageTol {
			m.nUsed[i]++
		}
		m.tr[i] = float64(m.nUsed[i]) / float64(m.nWith[i])
		if m.mine[i] {
			m.tr[i] += m.myCutBonus
		}
	}
}

// isBetter: a hypothetical my-cut always displaces an incumbent of equal
// standing — it was generated from a trial of this very problem and is
// presumed useful — so the incumbent never wins that comparison. Against
// a non-my newcomer the incumbent wins ties: the newcomer must be
// strictly better to displace it.
func (m *avgModel) isBetter(i int, hypotheticalMine bool) bool {
	if hypotheticalMine {
		return false
	}
	return m.tr[i] >= m.initialTrust(false)
}

func (m *avgModel) trust() []float64 { return m.tr }

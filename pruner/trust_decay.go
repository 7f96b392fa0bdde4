// SPDX-License-Identifier: MIT
// Package pruner: the Decay trust policy — exponentially decayed usage.

package pruner

import "math"

// decayModel scores a cut by a geometric moving sum of its activity:
// every step multiplies trust by lambda and adds 1 when the cut's
// multiplier was non-zero. Recent activity therefore dominates; a cut
// unused for T steps retains lambda^T of its former trust.
type decayModel struct {
	lambda      float64 // decay factor in (0,1)
	newCutTrust float64 // birth trust before bonus
	myCutBonus  float64 // additive bonus for my-cuts

	tr []float64 // current trust, per cut
}

var _ statsModel = (*decayModel)(nil)

func newDecayModel(opts Options) *decayModel {
	return &decayModel{lambda: opts.Lambda, newCutTrust: opts.NewCutTrust, myCutBonus: opts.MyCutBonus}
}

func (m *decayModel) initialTrust(mine bool) float64 {
	if mine {
		return m.newCutTrust + m.myCutBonus
	}
	return m.newCutTrust
}

func (m *decayModel) onAppend(mine []bool) {
	for _, my := range mine {
		m.tr = append(m.tr, m.initialTrust(my))
	}
}

func (m *decayModel) onReplace(slots []int, mine []bool) {
	for j, slot := range slots {
		m.tr[slot] = m.initialTrust(mine[j])
	}
}

func (m *decayModel) onKeepOnly(keep []int) {
	m.tr = projectFloats(m.tr, keep)
}

// updateStats decays every trust by lambda, then rewards active cuts.
func (m *decayModel) updateStats(multipliers []float64) {
	for i, sigma := range multipliers {
		m.tr[i] *= m.lambda
		if math.Abs(sigma) > usageTol {
			m.tr[i]++
		}
	}
}

// isBetter follows the same my-cut asymmetry as the Average policy: a
// hypothetical my-cut always wins, a non-my newcomer must be strictly
// better than the incumbent.
func (m *decayModel) isBetter(i int, hypotheticalMine bool) bool {
	if hypotheticalMine {
		return false
	}
	return m.tr[i] >= m.initialTrust(false)
}

func (m *decayModel) trust() []float64 { return m.tr }

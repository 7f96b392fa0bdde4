// SPDX-License-Identifier: MIT
// Package pruner: the public Pruner type and the admission engine that
// orchestrates one AddCuts call — redundancy pass, capacity check,
// eviction plan with retraction, my-cut-first partition, and commit.

package pruner

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Pruner maintains a bounded collection of affine cuts under one of the
// three trust policies. A Pruner is thread-compatible but not thread-safe:
// at most one operation may be in progress at any time.
//
// Slot numbers on the public surface are 1-based so that a status value of
// 0 can mean "rejected". Internally everything is 0-based.
type Pruner struct {
	sense    Sense
	opts     Options
	store    *cutStore
	model    trustModel
	poisoned bool // set when an internal invariant breaks; pruner unusable
}

// New constructs a Pruner for cuts of dimension d with the given sense and
// options. Returns a configuration sentinel on invalid input.
//
// Complexity: O(1).
func New(d int, sense Sense, opts Options) (*Pruner, error) {
	if d <= 0 {
		return nil, fmt.Errorf("New: %w", ErrBadDimension)
	}
	if !sense.valid() {
		return nil, fmt.Errorf("New: %w", ErrBadSense)
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("New: %w", err)
	}

	store := newCutStore(d)
	var model trustModel
	switch opts.Policy {
	case PolicyAverage:
		model = newAvgModel(opts)
	case PolicyDecay:
		model = newDecayModel(opts)
	case PolicyLevelOne:
		model = newLevelOneModel(sense, store)
	}

	return &Pruner{sense: sense, opts: opts, store: store, model: model}, nil
}

// usable guards every public operation on a poisoned pruner.
func (p *Pruner) usable() error {
	if p.poisoned {
		return ErrInvariantViolation
	}
	return nil
}

// poison marks the pruner unusable and returns the invariant sentinel.
func (p *Pruner) poison(ctx string) error {
	p.poisoned = true
	return fmt.Errorf("%s: %w", ctx, ErrInvariantViolation)
}

// NCuts returns the number of cuts currently stored.
func (p *Pruner) NCuts() int { return p.store.n() }

// IsEmpty reports whether the pruner holds no cuts.
func (p *Pruner) IsEmpty() bool { return p.store.n() == 0 }

// Dim returns the cut dimension d fixed at construction.
func (p *Pruner) Dim() int { return p.store.d }

// Sense returns the sense fixed at construction.
func (p *Pruner) Sense() Sense { return p.sense }

// MaxCuts returns the capacity, or Unbounded.
func (p *Pruner) MaxCuts() int { return p.opts.MaxCuts }

// Trust returns a copy of the per-cut trust vector, aligned with slots
// 1..NCuts().
func (p *Pruner) Trust() []float64 {
	out := make([]float64, p.store.n())
	copy(out, p.model.trust())
	return out
}

// IDs returns a copy of the per-cut id vector. A smaller id means an
// older cut; replaced slots carry fresh (young) ids.
func (p *Pruner) IDs() []uint64 {
	out := make([]uint64, p.store.n())
	copy(out, p.store.ids)
	return out
}

// Cut returns a copy of the coefficient vector and the offset of the cut
// in the given 1-based slot.
func (p *Pruner) Cut(slot int) ([]float64, float64, error) {
	if err := p.usable(); err != nil {
		return nil, 0, err
	}
	if slot < 1 || slot > p.store.n() {
		return nil, 0, fmt.Errorf("Cut(%d): %w", slot, ErrIndexOutOfRange)
	}
	a := make([]float64, p.store.d)
	copy(a, p.store.row(slot-1))
	return a, p.store.b[slot-1], nil
}

// NStates returns the number of state points visited so far under
// PolicyLevelOne, and 0 under the scalar policies.
func (p *Pruner) NStates() int {
	if lom, ok := p.model.(*levelOneModel); ok {
		return lom.nStates
	}
	return 0
}

// AddCuts offers a batch of candidate cuts: the rows of a with offsets b,
// where mine[j] marks a cut generated from a trial of the owning problem.
// It returns one status per candidate: 0 when rejected (redundant or
// outcompeted), otherwise the 1-based slot where the candidate ended up.
//
// An empty batch returns an empty status slice. A batch whose candidates
// are all redundant returns an all-zero status and changes nothing.
//
// Complexity: O(k·n·d) redundancy scan plus O(n log n) eviction planning.
func (p *Pruner) AddCuts(a *mat.Dense, b []float64, mine []bool) ([]int, error) {
	if err := p.usable(); err != nil {
		return nil, err
	}
	rows, err := p.validateBatch("AddCuts", a, b, len(mine))
	if err != nil {
		return nil, err
	}
	k := len(b)
	status := make([]int, k)
	if k == 0 {
		return status, nil
	}

	// 1. Redundancy pass: duplicates of stored cuts are dropped up front.
	red := redundantRows(p.store, p.sense, p.opts.Tol, rows, b)
	surv := make([]int, 0, k)
	for j := 0; j < k; j++ {
		if !red[j] {
			surv = append(surv, j)
		}
	}
	if len(surv) == 0 {
		return status, nil
	}

	nCur := p.store.n()
	kNew := len(surv)

	// 2. Capacity check: everything fits, append.
	if p.opts.MaxCuts == Unbounded || nCur+kNew <= p.opts.MaxCuts {
		if err := p.commit(status, nil, surv, rows, b, mine); err != nil {
			return nil, err
		}
		return status, nil
	}

	// 3a. Eviction plan: the weakest incumbents, oldest losing ties,
	// ordered ascending so the last entry is the strongest among them.
	// When the batch alone overflows capacity, surplus counts the
	// candidates that cannot be placed even with every incumbent evicted.
	numRemove := nCur + kNew - p.opts.MaxCuts
	surplus := 0
	if numRemove > nCur {
		surplus = numRemove - nCur
		numRemove = nCur
	}
	evict := chooseToRemove(p.model.trust(), p.store.ids, numRemove)

	// 3b. Retraction loop. take counts admissions, len(evict)-nReplaced
	// plus surplus counts rejections; the loop runs until every surviving
	// candidate is accounted for. Each round reconsiders the strongest still-planned
	// victim against a hypothetical newcomer: a my-cut as long as unplaced
	// my-cuts remain, a plain cut afterwards. A victim that beats the
	// newcomer is spared (one candidate rejected); otherwise the eviction
	// stands and one more candidate is admitted.
	take := p.opts.MaxCuts - nCur
	nMy := 0
	for _, j := range surv {
		if mine[j] {
			nMy++
		}
	}
	nReplaced := len(evict)
	for take+len(evict)-nReplaced+surplus < kNew {
		if nReplaced == 0 {
			// No planned victim is left to reconsider.
			break
		}
		if p.model.isBetter(evict[nReplaced-1], take < nMy) {
			nReplaced--
		} else {
			take++
		}
	}

	// 3c. Partition: my-cuts take the admission slots first. When a group
	// exceeds its quota its earliest members lose — within a batch the
	// earliest candidates would become the oldest cuts, and the oldest
	// lose ties everywhere in this package.
	admitMy := take
	if nMy < admitMy {
		admitMy = nMy
	}
	admitted := admitLast(surv, mine, admitMy, take-admitMy)

	// 3d. Commit: fill the evicted slots, append the rest.
	if err := p.commit(status, evict[:nReplaced], admitted, rows, b, mine); err != nil {
		return nil, err
	}
	return status, nil
}

// admitLast picks admitMy my-cuts and admitOther non-my-cuts from the
// surviving candidates, dropping the earliest members of an over-quota
// group. The admitted sequence lists my-cuts first, each group in input
// order.
func admitLast(surv []int, mine []bool, admitMy, admitOther int) []int {
	var my, other []int
	for _, j := range surv {
		if mine[j] {
			my = append(my, j)
		} else {
			other = append(other, j)
		}
	}
	admitted := make([]int, 0, admitMy+admitOther)
	admitted = append(admitted, my[len(my)-admitMy:]...)
	admitted = append(admitted, other[len(other)-admitOther:]...)
	return admitted
}

// commit applies an admission plan: the first len(replaceSlots) admitted
// candidates overwrite those slots (fresh ids, reset trust), the remainder
// append to the tail. status is filled with 1-based final slots.
func (p *Pruner) commit(status []int, replaceSlots, admitted []int, rows [][]float64, b []float64, mine []bool) error {
	nCur := p.store.n()
	nRep := len(replaceSlots)

	if nRep > 0 {
		repRows := make([][]float64, nRep)
		repOffs := make([]float64, nRep)
		repMine := make([]bool, nRep)
		for i, j := range admitted[:nRep] {
			repRows[i], repOffs[i], repMine[i] = rows[j], b[j], mine[j]
			status[j] = replaceSlots[i] + 1
		}
		p.store.replaceAt(replaceSlots, repRows, repOffs)
		p.model.onReplace(replaceSlots, repMine)
	}

	tail := admitted[nRep:]
	if len(tail) > 0 {
		tailRows := make([][]float64, len(tail))
		tailOffs := make([]float64, len(tail))
		tailMine := make([]bool, len(tail))
		for i, j := range tail {
			tailRows[i], tailOffs[i], tailMine[i] = rows[j], b[j], mine[j]
			status[j] = nCur + i + 1
		}
		p.store.appendRows(tailRows, tailOffs)
		p.model.onAppend(tailMine)
	}

	if p.opts.MaxCuts != Unbounded && p.store.n() > p.opts.MaxCuts {
		return p.poison("AddCuts")
	}
	return nil
}

// UpdateStats folds one optimization step into the trust state of the
// scalar policies: multipliers is aligned with the current cuts, and a
// cut with |multipliers[i]| above the usage threshold counts as used.
// Returns ErrPolicyMismatch under PolicyLevelOne.
func (p *Pruner) UpdateStats(multipliers []float64) error {
	if err := p.usable(); err != nil {
		return err
	}
	sm, ok := p.model.(statsModel)
	if !ok {
		return fmt.Errorf("UpdateStats: %w", ErrPolicyMismatch)
	}
	if len(multipliers) != p.store.n() {
		return fmt.Errorf("UpdateStats: %w", ErrShapeMismatch)
	}
	for _, v := range multipliers {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("UpdateStats: %w", ErrNotFinite)
		}
	}
	sm.updateStats(multipliers)
	return nil
}

// UpdateStates feeds newly visited state points (one per row of x) to the
// Level-One territory index. Returns ErrPolicyMismatch under the scalar
// policies. A nil or zero-row x is a no-op.
func (p *Pruner) UpdateStates(x *mat.Dense) error {
	if err := p.usable(); err != nil {
		return err
	}
	lom, ok := p.model.(*levelOneModel)
	if !ok {
		return fmt.Errorf("UpdateStates: %w", ErrPolicyMismatch)
	}
	if x == nil {
		return nil
	}
	rows, cols := x.Dims()
	if rows == 0 {
		return nil
	}
	if cols != p.store.d {
		return fmt.Errorf("UpdateStates: %w", ErrDimensionMismatch)
	}
	for i := 0; i < rows; i++ {
		for _, v := range x.RawRowView(i) {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("UpdateStates: %w", ErrNotFinite)
			}
		}
	}
	lom.addStates(x)
	return nil
}

// RemoveCuts deletes the cuts in the given 1-based slots; the remaining
// cuts keep their relative order (ids and trust travel with them).
func (p *Pruner) RemoveCuts(slots ...int) error {
	if err := p.usable(); err != nil {
		return err
	}
	drop, err := p.validateSlots("RemoveCuts", slots)
	if err != nil {
		return err
	}
	keep := p.store.removeAt(drop)
	p.model.onKeepOnly(keep)
	return nil
}

// KeepOnlyCuts projects the pruner to the cuts in the given 1-based
// slots, in the order given (the collection may be reordered).
func (p *Pruner) KeepOnlyCuts(slots []int) error {
	if err := p.usable(); err != nil {
		return err
	}
	keep, err := p.validateSlots("KeepOnlyCuts", slots)
	if err != nil {
		return err
	}
	p.store.keepOnly(keep)
	p.model.onKeepOnly(keep)
	return nil
}

// ReplaceCuts overwrites the cuts in the given 1-based slots with the
// rows of a, bypassing the admission engine: no redundancy filtering, no
// eviction plan. Replaced slots receive fresh ids and birth trust.
func (p *Pruner) ReplaceCuts(slots []int, a *mat.Dense, b []float64, mine []bool) error {
	if err := p.usable(); err != nil {
		return err
	}
	target, err := p.validateSlots("ReplaceCuts", slots)
	if err != nil {
		return err
	}
	rows, err := p.validateBatch("ReplaceCuts", a, b, len(mine))
	if err != nil {
		return err
	}
	if len(rows) != len(target) {
		return fmt.Errorf("ReplaceCuts: %w", ErrShapeMismatch)
	}
	p.store.replaceAt(target, rows, b)
	p.model.onReplace(target, mine)
	return nil
}

// validateBatch checks a candidate batch for shape consistency and finite
// values, and extracts the rows as slices. A nil matrix is accepted for an
// empty batch. Returned row slices alias the matrix backing storage.
func (p *Pruner) validateBatch(ctx string, a *mat.Dense, b []float64, nMine int) ([][]float64, error) {
	var r, c int
	if a != nil {
		r, c = a.Dims()
	}
	if r != len(b) || r != nMine {
		return nil, fmt.Errorf("%s: %w", ctx, ErrShapeMismatch)
	}
	if r == 0 {
		return nil, nil
	}
	if c != p.store.d {
		return nil, fmt.Errorf("%s: %w", ctx, ErrDimensionMismatch)
	}
	rows := make([][]float64, r)
	for i := 0; i < r; i++ {
		rows[i] = a.RawRowView(i)
		for _, v := range rows[i] {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%s: %w", ctx, ErrNotFinite)
			}
		}
		if math.IsNaN(b[i]) || math.IsInf(b[i], 0) {
			return nil, fmt.Errorf("%s: %w", ctx, ErrNotFinite)
		}
	}
	return rows, nil
}

// validateSlots converts 1-based public slot numbers to 0-based indices,
// rejecting out-of-range and duplicate entries.
func (p *Pruner) validateSlots(ctx string, slots []int) ([]int, error) {
	n := p.store.n()
	seen := make(map[int]bool, len(slots))
	out := make([]int, len(slots))
	for j, s := range slots {
		if s < 1 || s > n {
			return nil, fmt.Errorf("%s(%d): %w", ctx, s, ErrIndexOutOfRange)
		}
		if seen[s] {
			return nil, fmt.Errorf("%s(%d): %w", ctx, s, ErrDuplicateIndex)
		}
		seen[s] = true
		out[j] = s - 1
	}
	return out, nil
}

// Package pruner maintains a bounded collection of affine cuts
// approximating a convex or concave piecewise-linear function, or a
// polyhedron, and decides which cuts survive as new ones arrive.
//
// 🚀 What is a cut pruner?
//
//	Iterative decomposition methods (SDDP, Benders) generate one or more
//	cuts ⟨a,x⟩ ⋈ β per trial.  Left unchecked the cut collection grows
//	without bound and every subproblem slows down.  A pruner caps the
//	collection at MaxCuts and, on every AddCuts call, decides:
//	  • which incumbents are evicted,
//	  • which candidates replace evicted slots,
//	  • which candidates append to free slots,
//	  • which candidates are rejected outright.
//
// ✨ Key features:
//   - three trust policies: PolicyAverage (usage frequency), PolicyDecay
//     (exponentially decayed usage), PolicyLevelOne (territory of sampled
//     states where the cut is the pointwise-best support)
//   - ties in trust always break on age: the oldest cut is evicted first
//   - redundancy filter drops candidates that duplicate a stored cut
//     without improving its offset
//   - "my cuts" (generated from a trial of this very problem) take
//     priority over equally trusted incumbents
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/cutpruner/pruner"
//
//	opts := pruner.DefaultOptions()
//	opts.Policy = pruner.PolicyAverage
//	opts.MaxCuts = 100
//
//	p, err := pruner.New(dim, pruner.SenseMax, opts)
//	// per trial:
//	status, err := p.AddCuts(A, b, mine) // 0 = rejected, k = slot number
//	err = p.UpdateStats(duals)           // PolicyAverage / PolicyDecay
//
// Slot numbers are 1-based throughout the public surface so that the
// zero value of a status entry can mean "rejected".
//
// Performance:
//
//   - AddCuts: O(k·n·d) redundancy scan + O(n log n) eviction plan
//   - UpdateStats: O(n), UpdateStates: O(s·n·d) for s new states
//
// The pruner is a plain value: thread-compatible, not thread-safe.
// It never blocks, never touches the filesystem, and owns no globals.
package pruner

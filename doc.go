// Package cutpruner keeps bounded collections of affine cuts honest.
//
// 🚀 What is cutpruner?
//
//	A small, deterministic library for iterative convex optimization
//	(SDDP, Benders decomposition) that decides — under a fixed capacity —
//	which cuts to keep, which to replace, and which to reject as new
//	cuts arrive:
//
//	  • Bounded cut store: cut matrix, offsets, strictly increasing ids
//	  • Three trust policies: Average usage, exponential Decay, Level-One territory
//	  • Admission engine: redundancy filter, eviction plan, my-cut priority
//
// ✨ Why choose cutpruner?
//
//   - Deterministic   — no randomness, no wall-clock; ids are the only age signal
//   - Rock-solid      — capacity, id monotonicity and territory partitions hold after every call
//   - Pure library    — no I/O, no goroutines, no global state
//
// Everything lives in one subpackage:
//
//	pruner/ — the Pruner type, Sense and Policy enums, Options, and the
//	          admission/eviction engine shared by all three policies.
//
// Quick ASCII example: a convex value function approximated from below,
//
//	    \         /
//	     \___ ___/
//	         V        max_i ⟨a_i, x⟩ + β_i
//
// where the pruner keeps the most supportive cuts once capacity is reached.
//
//	go get github.com/katalvlaran/cutpruner/pruner
package cutpruner

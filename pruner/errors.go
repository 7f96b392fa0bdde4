// SPDX-License-Identifier: MIT
// Package pruner: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the pruner
// package. Public operations return these sentinels and tests check them via
// errors.Is. Panics are reserved for programmer errors in private helpers.

package pruner

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "pruner: ..." for consistency and to allow
// easy grepping across logs. Sentinels are wrapped at call sites with
// fmt.Errorf("Method: %w", ErrX) when context is essential — callers still
// match with errors.Is.
//
// The set covers three kinds of failure:
//   - configuration: ErrBadSense, ErrBadPolicy, ErrBadMaxCuts, ErrBadLambda,
//     ErrBadTrust, ErrBadTolerance, ErrBadDimension
//   - shape/index:   ErrShapeMismatch, ErrDimensionMismatch, ErrNotFinite,
//     ErrIndexOutOfRange, ErrDuplicateIndex, ErrPolicyMismatch
//   - internal:      ErrInvariantViolation (pruner is poisoned once raised)

var (
	// ErrBadSense indicates an unknown Sense value at construction time.
	ErrBadSense = errors.New("pruner: unknown sense")

	// ErrBadPolicy indicates an unknown Policy value at construction time.
	ErrBadPolicy = errors.New("pruner: unknown policy")

	// ErrBadMaxCuts indicates MaxCuts is neither positive nor Unbounded.
	ErrBadMaxCuts = errors.New("pruner: MaxCuts must be positive or Unbounded")

	// ErrBadLambda indicates a decay factor outside the open interval (0,1).
	ErrBadLambda = errors.New("pruner: Lambda must lie in (0,1)")

	// ErrBadTrust indicates NewCutTrust outside [0,1] or a non-finite bonus.
	ErrBadTrust = errors.New("pruner: invalid trust parameter")

	// ErrBadTolerance indicates a negative or non-finite redundancy tolerance.
	ErrBadTolerance = errors.New("pruner: Tol must be finite and non-negative")

	// ErrBadDimension indicates a non-positive cut dimension d.
	ErrBadDimension = errors.New("pruner: dimension must be > 0")

	// ErrShapeMismatch indicates batch slices of inconsistent lengths,
	// e.g. rows(A) != len(b) or != len(mine).
	ErrShapeMismatch = errors.New("pruner: batch shape mismatch")

	// ErrDimensionMismatch indicates a matrix whose column count differs
	// from the pruner dimension d.
	ErrDimensionMismatch = errors.New("pruner: column count mismatch")

	// ErrNotFinite signals a NaN or ±Inf value where finite values are
	// required (cut coefficients, offsets, states).
	ErrNotFinite = errors.New("pruner: NaN or Inf encountered")

	// ErrIndexOutOfRange indicates a slot number outside 1..NCuts().
	ErrIndexOutOfRange = errors.New("pruner: slot number out of range")

	// ErrDuplicateIndex indicates a slot number repeated in an index set.
	ErrDuplicateIndex = errors.New("pruner: duplicate slot number")

	// ErrPolicyMismatch indicates a statistics signal of the wrong kind:
	// UpdateStats on PolicyLevelOne, or UpdateStates on a scalar policy.
	ErrPolicyMismatch = errors.New("pruner: signal does not match policy")

	// ErrInvariantViolation marks an internal assertion failure. It should
	// be unreachable; once returned the pruner is poisoned and every later
	// error-returning call fails with the same sentinel.
	ErrInvariantViolation = errors.New("pruner: internal invariant violated")
)

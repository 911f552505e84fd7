// Package simd provides the tiered (wide/half/scalar) bulk bitwise
// operations that back bitset.Bitset, plus the tier detection that
// intkeymap uses to choose between its 8-key windowed probe and its
// scalar probe.
//
// None of this package actually emits vector instructions — like the
// teacher's own internal/simd package (which emulates AVX512 vector types
// in plain Go), these tiers emulate the shape of 256-bit and 128-bit SIMD
// operations using unrolled passes over [4]uint64, so that the three tiers
// are genuinely distinct code paths that must be proven bit-identical by
// test rather than trivially so by sharing one implementation.
package simd

import "golang.org/x/sys/cpu"

// Vec256 is the 256-bit payload of a FixedBitset-256, as four 64-bit lanes.
type Vec256 [4]uint64

// Tier identifies which implementation family bulk bitset and probe
// operations should use.
type Tier uint8

const (
	// TierScalar processes lanes one at a time. Always available.
	TierScalar Tier = iota
	// TierHalf processes two independent 128-bit (two-lane) halves.
	TierHalf
	// TierWide processes all four lanes as one unrolled pass.
	TierWide
)

func (t Tier) String() string {
	switch t {
	case TierWide:
		return "wide"
	case TierHalf:
		return "half"
	default:
		return "scalar"
	}
}

// DetectTier queries CPU capability once and reports which tier this
// process should use. It is called exactly once at package init, following
// the teacher's own avx512level()/setavx512level() resolve-once pattern
// (vm/avx512level.go) rather than re-checking capability bits on every call.
func DetectTier() Tier {
	if cpu.X86.HasAVX2 {
		return TierWide
	}
	if cpu.X86.HasSSE2 {
		return TierHalf
	}
	return TierScalar
}

// BitsetOps is a table of function pointers for one tier's implementation
// of the bulk bitset operations. Building this once at init time and
// storing it (rather than branching on Tier inside every call) is the same
// "resolve dispatch once, store function pointers" shape the teacher uses
// for its SSA opcode tables.
type BitsetOps struct {
	add      func(dst *Vec256, a, b Vec256)
	remove   func(dst *Vec256, a, b Vec256)
	invert   func(dst *Vec256, a Vec256)
	equals   func(a, b Vec256) bool
	hasAll   func(a, b Vec256) bool
	hasAny   func(a, b Vec256) bool
	tierName Tier
}

// Active is the bitset operation table selected for this process.
var Active = selectOps(DetectTier())

func selectOps(t Tier) BitsetOps {
	switch t {
	case TierWide:
		return wideOps
	case TierHalf:
		return halfOps
	default:
		return scalarOps
	}
}

// Add sets dst = a OR b using the active tier.
func Add(dst *Vec256, a, b Vec256) { Active.add(dst, a, b) }

// Remove sets dst = a AND NOT b using the active tier.
func Remove(dst *Vec256, a, b Vec256) { Active.remove(dst, a, b) }

// Invert sets dst = NOT a using the active tier.
func Invert(dst *Vec256, a Vec256) { Active.invert(dst, a) }

// Equals reports bytewise equality using the active tier.
func Equals(a, b Vec256) bool { return Active.equals(a, b) }

// HasAll reports whether a is a superset of b using the active tier.
func HasAll(a, b Vec256) bool { return Active.hasAll(a, b) }

// HasAny reports whether a and b share any set bit using the active tier.
func HasAny(a, b Vec256) bool { return Active.hasAny(a, b) }

// ActiveTier reports which tier Active was built from, for diagnostics and
// for tests that want to force comparisons across all three tiers.
func ActiveTier() Tier { return Active.tierName }

// AllTiers exposes each tier's table directly so tests (and anyone auditing
// cross-tier equivalence) can drive wide/half/scalar independent of what
// the current process would pick automatically.
func AllTiers() map[Tier]BitsetOps {
	return map[Tier]BitsetOps{
		TierWide:   wideOps,
		TierHalf:   halfOps,
		TierScalar: scalarOps,
	}
}

// Add, Remove, Invert, Equals, HasAll and HasAny invoke this table's
// add/remove/invert/equals/hasAll/hasAny through small exported wrappers,
// used by the cross-tier test suite.
func (o BitsetOps) Add(dst *Vec256, a, b Vec256)    { o.add(dst, a, b) }
func (o BitsetOps) Remove(dst *Vec256, a, b Vec256) { o.remove(dst, a, b) }
func (o BitsetOps) Invert(dst *Vec256, a Vec256)    { o.invert(dst, a) }
func (o BitsetOps) Equals(a, b Vec256) bool         { return o.equals(a, b) }
func (o BitsetOps) HasAll(a, b Vec256) bool         { return o.hasAll(a, b) }
func (o BitsetOps) HasAny(a, b Vec256) bool         { return o.hasAny(a, b) }

// Package xhash provides the avalanche mixer and power-of-two arithmetic
// shared by the bitset and intkeymap packages.
package xhash

import "golang.org/x/exp/constraints"

// FNV-1 32-bit constants. Mix must be a total function over the 32-bit
// domain with no collisions; this particular transform is cheap,
// branch-free, and empirically non-sequential on sequential inputs.
const (
	offsetBasis32 uint32 = 0x811c9dc5
	prime32       uint32 = 16777619
)

// Mix applies a 32-bit avalanche to k, suitable as a hash-table key mixer.
func Mix(k int32) uint32 {
	return (offsetBasis32 ^ uint32(k)) * prime32
}

// DesiredSlot returns the starting probe slot for key k in a table of the
// given capacity mask (mask = capacity-1).
func DesiredSlot(k int32, mask uint32) uint32 {
	return Mix(k) & mask
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo[T constraints.Integer](n T) bool {
	return n > 0 && n&(n-1) == 0
}

// RoundUpToPowerOfTwo returns the smallest power of two >= n.
//
// n must be in [1, 1<<30]; callers outside that range get a debug-assert
// panic rather than a silently wrong answer.
func RoundUpToPowerOfTwo(n int) int {
	debugAssert(n > 0 && n <= 1<<30, "xhash: RoundUpToPowerOfTwo precondition violated")
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	return n + 1
}

// NextPowerOfTwo returns the smallest power of two strictly greater than n,
// for n in [0, 1<<30).
func NextPowerOfTwo(n int) int {
	return RoundUpToPowerOfTwo(n + 1)
}

// debugAssert panics when cond is false. Go has no separate release build
// mode, so unlike the spec's debug-only assertions this one always fires;
// it is reserved for violated invariants and programming-error
// preconditions (such as RoundUpToPowerOfTwo's input range), not for
// caller mistakes that the public API reports as errors.
func debugAssert(cond bool, msg string) {
	if !cond {
		panic(msg)
	}
}

// DebugAssert is the exported form used by sibling packages (bitset,
// intkeymap) that want the same always-on invariant check without
// duplicating the panic plumbing.
func DebugAssert(cond bool, msg string) {
	debugAssert(cond, msg)
}

// Package bitset implements FixedBitset-256, a 256-flag set with a
// constant-size 32-byte footprint. All bulk operations are dispatched
// through internal/simd's tiered (wide/half/scalar) implementations, which
// are proven bit-identical by internal/simd's own test suite.
package bitset

import (
	"fmt"
	"strings"

	"github.com/tidalcode/ecscore/internal/simd"
	"github.com/tidalcode/ecscore/internal/xhash"
)

// NumBits is the fixed width of a Bitset.
const NumBits = 256

// Bitset is a 256-flag set. The zero value is the empty set. Bitset is
// plain data: comparable with ==, trivially copyable, and safe to pass by
// value.
type Bitset struct {
	bits simd.Vec256
}

// Empty returns the all-zero bitset.
func Empty() Bitset { return Bitset{} }

// Single returns a bitset with exactly bit b set.
//
// b must be in [0, NumBits); out-of-range values panic.
func Single(b int) Bitset {
	var bs Bitset
	bs.set(b)
	return bs
}

// Many returns a bitset with every bit in bits set. Duplicates are
// idempotent.
func Many(bits ...int) Bitset {
	var bs Bitset
	for _, b := range bits {
		bs.set(b)
	}
	return bs
}

func (b *Bitset) set(bit int) {
	if bit < 0 || bit >= NumBits {
		panic(fmt.Sprintf("bitset: bit %d out of range [0,%d)", bit, NumBits))
	}
	b.bits[bit/64] |= uint64(1) << uint(bit%64)
}

// HasAll reports whether self is a superset of other: (self AND other) ==
// other.
func (b Bitset) HasAll(other Bitset) bool {
	return simd.HasAll(b.bits, other.bits)
}

// HasAny reports whether self and other share any set bit.
func (b Bitset) HasAny(other Bitset) bool {
	return simd.HasAny(b.bits, other.bits)
}

// NotHasAny reports whether self and other share no set bit.
func (b Bitset) NotHasAny(other Bitset) bool {
	return !b.HasAny(other)
}

// Add sets self := self OR other, mutating the receiver.
func (b *Bitset) Add(other Bitset) {
	simd.Add(&b.bits, b.bits, other.bits)
}

// Remove sets self := self AND NOT other, mutating the receiver.
func (b *Bitset) Remove(other Bitset) {
	simd.Remove(&b.bits, b.bits, other.bits)
}

// Invert sets self := NOT self, mutating the receiver.
func (b *Bitset) Invert() {
	simd.Invert(&b.bits, b.bits)
}

// Clear sets self := 0, mutating the receiver.
func (b *Bitset) Clear() {
	b.bits = simd.Vec256{}
}

// Equals reports bytewise equality with other.
func (b Bitset) Equals(other Bitset) bool {
	return simd.Equals(b.bits, other.bits)
}

// String returns a 256-character string where character i is '1' if bit i
// is set, else '0', in lane-major order matching storage layout: lanes
// 0..3, bit 0..63 within each lane.
func (b Bitset) String() string {
	var sb strings.Builder
	sb.Grow(NumBits)
	for lane := 0; lane < 4; lane++ {
		word := b.bits[lane]
		for bit := 0; bit < 64; bit++ {
			if word&(uint64(1)<<uint(bit)) != 0 {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
	}
	return sb.String()
}

// Hash returns a deterministic 32-bit hash of the 32-byte payload, reusing
// the same FNV-1 avalanche xhash uses for IntKeyMap keys so the two
// primitives share one mixing convention.
func (b Bitset) Hash() uint32 {
	h := uint32(0x811c9dc5)
	const prime = 16777619
	for lane := 0; lane < 4; lane++ {
		word := b.bits[lane]
		for shift := 0; shift < 64; shift += 8 {
			h = (h ^ uint32(byte(word>>uint(shift)))) * prime
		}
	}
	// fold xhash's own mixer in once more so the result is keyed by the
	// same family of constants used elsewhere in this module.
	return h ^ xhash.Mix(int32(h))
}

// View returns a read-only projection of b. Conversion is a 32-byte value
// copy, not a reference.
func (b Bitset) View() View {
	return View{bits: b.bits}
}

// View is a read-only projection of a Bitset exposing only the query
// subset of the API, for callers that want to make "this code cannot
// mutate the set" visible in a signature.
type View struct {
	bits simd.Vec256
}

// Bitset copies the view back into a mutable Bitset.
func (v View) Bitset() Bitset { return Bitset{bits: v.bits} }

// HasAll reports whether the viewed set is a superset of other.
func (v View) HasAll(other Bitset) bool { return simd.HasAll(v.bits, other.bits) }

// HasAny reports whether the viewed set shares any set bit with other.
func (v View) HasAny(other Bitset) bool { return simd.HasAny(v.bits, other.bits) }

// NotHasAny reports whether the viewed set shares no set bit with other.
func (v View) NotHasAny(other Bitset) bool { return !v.HasAny(other) }

// Equals reports bytewise equality with other.
func (v View) Equals(other Bitset) bool { return simd.Equals(v.bits, other.bits) }

// String renders the view the same way Bitset.String does.
func (v View) String() string { return v.Bitset().String() }

// Hash returns the same hash Bitset.Hash would for the viewed payload.
func (v View) Hash() uint32 { return v.Bitset().Hash() }

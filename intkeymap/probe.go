package intkeymap

import (
	"github.com/tidalcode/ecscore/internal/simd"
	"github.com/tidalcode/ecscore/internal/xhash"
)

// windowWidth is the number of keys compared per vectorized probe step.
const windowWidth = 8

// probe locates key in keys (whose real region is [0, capacity) with a
// trailing guard of guardWidth END sentinels). It reports found=true and
// the occupied slot index when key is present, or found=false and the
// index of the first FREE slot reachable along the probe chain otherwise.
//
// useVectorized selects the 8-keys-per-step path; it is always safe to
// pass false (the scalar path is correct for every capacity), and the
// vectorized path additionally requires capacity >= windowWidth, since a
// single window would otherwise never reach every slot.
func probe(keys []int32, capacity int, mask uint32, key int32, useVectorized bool) (found bool, slot uint32) {
	if useVectorized && capacity >= windowWidth {
		return probeVectorized(keys, capacity, key)
	}
	return probeScalar(keys, mask, key)
}

// probeScalar steps one slot at a time, wrapping via mask. It is always
// available and is the fallback the spec requires when the process has no
// wide-compare support (§4.3).
func probeScalar(keys []int32, mask uint32, key int32) (found bool, slot uint32) {
	index := xhash.DesiredSlot(key, mask)
	capacity := mask + 1
	for steps := uint32(0); ; steps++ {
		k := keys[index]
		switch k {
		case key:
			return true, index
		case FreeKey:
			return false, index
		}
		xhash.DebugAssert(steps < capacity, "intkeymap: probeScalar visited every slot without finding a free one")
		index = (index + 1) & mask
	}
}

// probeVectorized compares windowWidth keys per step.
//
// The window read is always physically safe because of the guard region
// (guardWidth END sentinels trailing the real keys). Index advance does
// NOT use a naive "(index+windowWidth) AND mask": starting the probe at an
// arbitrary (non-group-aligned) slot and then hopping by windowWidth under
// a mask can skip whole groups of real slots whenever the starting slot is
// not itself a multiple of windowWidth (verified by hand for a handful of
// capacity/start combinations while designing this routine). Instead, the
// index advances linearly and only wraps to 0 once a window has reached or
// crossed the capacity boundary; every subsequent window is then
// windowWidth-aligned against slot 0, so the remaining sweep tiles the
// array without gaps. Some slots near the original starting point may be
// revisited on the second sweep; that is harmless since nothing mutates the
// table mid-probe.
func probeVectorized(keys []int32, capacity int, key int32) (found bool, slot uint32) {
	mask := uint32(capacity - 1)
	index := xhash.DesiredSlot(key, mask)
	maxSteps := capacity/windowWidth + 2 // enough windows to cover every slot once from any start, plus slack
	for step := 0; step < maxSteps; step++ {
		window := keys[index : index+windowWidth]
		freeLane := -1
		for lane, k := range window {
			if k == key {
				for _, rest := range window[lane+1:] {
					xhash.DebugAssert(rest != key, "intkeymap: probeVectorized matched the key in more than one lane")
				}
				return true, index + uint32(lane)
			}
			if freeLane == -1 && k == FreeKey {
				freeLane = lane
			}
		}
		if freeLane != -1 {
			return false, index + uint32(freeLane)
		}
		if int(index)+windowWidth >= capacity {
			index = 0
		} else {
			index += windowWidth
		}
	}
	xhash.DebugAssert(false, "intkeymap: probeVectorized exhausted its sweep budget without finding a free slot")
	return false, 0
}

// useVectorizedProbe reports whether the active SIMD tier supports the
// 8-keys-per-step compare. The scalar tier never does; the spec treats this
// as a capability the caller never needs to ask for explicitly (§7,
// ErrUnsupported is reserved but never actually raised by this package).
func useVectorizedProbe() bool {
	return simd.ActiveTier() != simd.TierScalar
}

package simd

// scalarOps is the always-available fallback: four independent 64-bit lane
// iterations, with early exit permitted (and taken) for the boolean
// reductions.
var scalarOps = BitsetOps{
	tierName: TierScalar,

	add: func(dst *Vec256, a, b Vec256) {
		for i := 0; i < 4; i++ {
			dst[i] = a[i] | b[i]
		}
	},
	remove: func(dst *Vec256, a, b Vec256) {
		for i := 0; i < 4; i++ {
			dst[i] = a[i] &^ b[i]
		}
	},
	invert: func(dst *Vec256, a Vec256) {
		for i := 0; i < 4; i++ {
			dst[i] = ^a[i]
		}
	},
	equals: func(a, b Vec256) bool {
		for i := 0; i < 4; i++ {
			if a[i] != b[i] {
				return false
			}
		}
		return true
	},
	hasAll: func(a, b Vec256) bool {
		for i := 0; i < 4; i++ {
			if ^a[i]&b[i] != 0 {
				return false
			}
		}
		return true
	},
	hasAny: func(a, b Vec256) bool {
		for i := 0; i < 4; i++ {
			if a[i]&b[i] != 0 {
				return true
			}
		}
		return false
	},
}

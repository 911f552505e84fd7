package simd

// wideOps treats all four lanes as one 256-bit unit: each bulk operation is
// a single unrolled pass, and the three boolean reductions (equals/hasAll/
// hasAny) combine all four lanes into one zero test, shaped after a single
// vector compare-and-move-mask instruction rather than four independent
// scalar comparisons.
var wideOps = BitsetOps{
	tierName: TierWide,

	add: func(dst *Vec256, a, b Vec256) {
		dst[0], dst[1], dst[2], dst[3] = a[0]|b[0], a[1]|b[1], a[2]|b[2], a[3]|b[3]
	},
	remove: func(dst *Vec256, a, b Vec256) {
		dst[0], dst[1], dst[2], dst[3] = a[0]&^b[0], a[1]&^b[1], a[2]&^b[2], a[3]&^b[3]
	},
	invert: func(dst *Vec256, a Vec256) {
		dst[0], dst[1], dst[2], dst[3] = ^a[0], ^a[1], ^a[2], ^a[3]
	},
	equals: func(a, b Vec256) bool {
		diff := (a[0] ^ b[0]) | (a[1] ^ b[1]) | (a[2] ^ b[2]) | (a[3] ^ b[3])
		return diff == 0
	},
	hasAll: func(a, b Vec256) bool {
		// (NOT a AND b) == 0, combined across all four lanes in one test.
		missing := (^a[0] & b[0]) | (^a[1] & b[1]) | (^a[2] & b[2]) | (^a[3] & b[3])
		return missing == 0
	},
	hasAny: func(a, b Vec256) bool {
		shared := (a[0] & b[0]) | (a[1] & b[1]) | (a[2] & b[2]) | (a[3] & b[3])
		return shared != 0
	},
}

package simd

// halfOps splits the 256-bit payload into two independent 128-bit halves
// (lanes [0,1] and [2,3]) and runs the same algorithm on each half. The two
// halves do not share state, so a hardware implementation could evaluate
// them in either order or interleave their loads/stores; the Go emulation
// here simply computes both and folds the two partial results together.
var halfOps = BitsetOps{
	tierName: TierHalf,

	add: func(dst *Vec256, a, b Vec256) {
		dst[0], dst[1] = a[0]|b[0], a[1]|b[1]
		dst[2], dst[3] = a[2]|b[2], a[3]|b[3]
	},
	remove: func(dst *Vec256, a, b Vec256) {
		dst[0], dst[1] = a[0]&^b[0], a[1]&^b[1]
		dst[2], dst[3] = a[2]&^b[2], a[3]&^b[3]
	},
	invert: func(dst *Vec256, a Vec256) {
		dst[0], dst[1] = ^a[0], ^a[1]
		dst[2], dst[3] = ^a[2], ^a[3]
	},
	equals: func(a, b Vec256) bool {
		lo := (a[0] ^ b[0]) | (a[1] ^ b[1])
		hi := (a[2] ^ b[2]) | (a[3] ^ b[3])
		return lo == 0 && hi == 0
	},
	hasAll: func(a, b Vec256) bool {
		lo := (^a[0] & b[0]) | (^a[1] & b[1])
		hi := (^a[2] & b[2]) | (^a[3] & b[3])
		return lo == 0 && hi == 0
	},
	hasAny: func(a, b Vec256) bool {
		lo := (a[0] & b[0]) | (a[1] & b[1])
		hi := (a[2] & b[2]) | (a[3] & b[3])
		return lo != 0 || hi != 0
	},
}

package intkeymap

// Token is an opaque handle identifying a slot in a Map's backing arrays at
// the time it was obtained. Tokens are plain int32 values: trivially
// copyable, comparable with ==, and cheap to pass around or stash in a
// hot-loop local instead of re-probing.
//
// A Token's validity is scoped to the interval between two mutating calls
// on the Map that produced it (Insert, FindOrInsert, Remove, RemoveAll,
// Clear). Using a stale token is undefined behavior; this package does not
// attempt to detect it beyond the debug assertions in the probe (probe.go).
type Token int32

// FreeKey and EndKey are the two reserved sentinel key values. Callers must
// not insert either as a real key; Insert and FindOrInsert reject them with
// ErrArgumentOutOfRange.
const (
	FreeKey int32 = -1
	EndKey  int32 = -2
)

const guardWidth = 7

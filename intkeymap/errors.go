package intkeymap

import "errors"

// Sentinel errors. All of them are caller-contract violations rather than
// recoverable runtime conditions; none are retried internally. Call sites
// wrap these with fmt.Errorf("%w: ...", ErrXxx) to attach the offending
// value, following the teacher's own error-wrapping convention (see e.g.
// plan/pir/resolve.go, plan/lower.go in the retrieved corpus).
var (
	// ErrArgumentOutOfRange is returned by New for out-of-range construction
	// parameters, and by Insert/FindOrInsert for a reserved sentinel key.
	ErrArgumentOutOfRange = errors.New("intkeymap: argument out of range")

	// ErrInvalidSlot is returned by Remove when the token refers to a FREE
	// slot.
	ErrInvalidSlot = errors.New("intkeymap: token refers to an empty slot")

	// ErrKeyNotFound is returned by ValueFor when the key is absent.
	ErrKeyNotFound = errors.New("intkeymap: key not found")

	// ErrUnsupported is reserved for a runtime-dispatched path whose
	// required capability is absent. The scalar probe tier is always
	// available, so a well-constructed call into this package never
	// actually raises it.
	ErrUnsupported = errors.New("intkeymap: unsupported capability")
)

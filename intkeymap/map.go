// Package intkeymap implements IntKeyMap<V>: an open-addressed hash table
// keyed by int32, with linear probing, backward-shift deletion, a
// vectorized-shaped lookup, power-of-two capacity, load-factor-driven
// growth, and a slot-token API separating "find where" from "read/write
// what".
package intkeymap

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/tidalcode/ecscore/internal/xhash"
)

// Map is an open-addressed hash table keyed by int32. The zero value is not
// usable; construct one with New or NewDefault.
//
// Map is not safe for concurrent use; callers mutating it from multiple
// goroutines must provide their own synchronization (§5 of the design
// notes). Pointers returned by ValueOf are exclusive borrows against the
// whole map and are invalidated by the next mutating call.
type Map[V any] struct {
	keys       []int32
	values     []V
	capacity   int
	mask       uint32
	maxCount   int
	count      int
	loadFactor float64
	vectorized bool
}

// New constructs a Map with the given initial capacity and load factor.
//
// initialCapacity must be in [2, 1<<30]; loadFactor must be in (0, 1).
// Out-of-range values return ErrArgumentOutOfRange.
func New[V any](initialCapacity int, loadFactor float64) (*Map[V], error) {
	if initialCapacity < 2 || initialCapacity > 1<<30 {
		return nil, fmt.Errorf("%w: initialCapacity %d", ErrArgumentOutOfRange, initialCapacity)
	}
	if loadFactor <= 0 || loadFactor >= 1 {
		return nil, fmt.Errorf("%w: loadFactor %v", ErrArgumentOutOfRange, loadFactor)
	}
	m := &Map[V]{loadFactor: loadFactor}
	m.allocate(xhash.RoundUpToPowerOfTwo(initialCapacity))
	return m, nil
}

// NewDefault constructs a Map with the spec's default initial capacity
// (256) and load factor (0.75).
func NewDefault[V any]() *Map[V] {
	m, err := New[V](256, 0.75)
	if err != nil {
		panic(err) // the defaults are always in range
	}
	return m
}

func maxCountFor(capacity int, loadFactor float64) int {
	n := int(float64(capacity) * loadFactor)
	if n < 1 {
		n = 1
	}
	return n
}

func (m *Map[V]) allocate(capacity int) {
	m.capacity = capacity
	m.mask = uint32(capacity - 1)
	m.maxCount = maxCountFor(capacity, m.loadFactor)
	m.vectorized = useVectorizedProbe()

	m.keys = make([]int32, capacity+guardWidth)
	for i := 0; i < capacity; i++ {
		m.keys[i] = FreeKey
	}
	for i := capacity; i < capacity+guardWidth; i++ {
		m.keys[i] = EndKey
	}
	m.values = make([]V, capacity)
}

// Find reports whether key is present, and a token for it. If key is
// absent, the returned token refers to the first FREE slot of the would-be
// insertion chain; callers that only want presence should discard it.
func (m *Map[V]) Find(key int32) (bool, Token) {
	found, slot := probe(m.keys, m.capacity, m.mask, key, m.vectorized)
	return found, Token(slot)
}

// ValueFor is a convenience accessor that turns an absent key into
// ErrKeyNotFound instead of a boolean.
func (m *Map[V]) ValueFor(key int32) (V, error) {
	found, tok := m.Find(key)
	if !found {
		var zero V
		return zero, fmt.Errorf("%w: key %d", ErrKeyNotFound, key)
	}
	return m.values[tok], nil
}

// Insert writes key/value, overwriting any existing value for key, and
// returns a token for the slot. FREE/END are rejected as keys.
func (m *Map[V]) Insert(key int32, value V) (Token, error) {
	return m.locateOrCreate(key, value, true)
}

// FindOrInsert locates key, inserting it with V's zero value if absent, and
// returns a token for the slot either way.
func (m *Map[V]) FindOrInsert(key int32) (Token, error) {
	var zero V
	return m.locateOrCreate(key, zero, false)
}

func (m *Map[V]) locateOrCreate(key int32, value V, overwrite bool) (Token, error) {
	if key == FreeKey || key == EndKey {
		return 0, fmt.Errorf("%w: reserved key %d", ErrArgumentOutOfRange, key)
	}

	found, slot := probe(m.keys, m.capacity, m.mask, key, m.vectorized)
	if found {
		if overwrite {
			m.values[slot] = value
		}
		return Token(slot), nil
	}

	m.keys[slot] = key
	m.values[slot] = value
	m.count++

	if m.count > m.maxCount {
		m.grow()
		// Growth reshuffled every slot; re-resolve the token we're about
		// to hand back against the new arrays.
		_, slot = probe(m.keys, m.capacity, m.mask, key, m.vectorized)
	}
	return Token(slot), nil
}

// grow doubles capacity (rounded to the next power of two) and re-inserts
// every occupied entry from the saved arrays in storage order.
func (m *Map[V]) grow() {
	oldKeys := m.keys
	oldValues := m.values
	oldCapacity := m.capacity

	m.allocate(xhash.NextPowerOfTwo(oldCapacity))

	for i := 0; i < oldCapacity; i++ {
		k := oldKeys[i]
		if k == FreeKey {
			continue
		}
		_, slot := probe(m.keys, m.capacity, m.mask, k, m.vectorized)
		m.keys[slot] = k
		m.values[slot] = oldValues[i]
	}
}

// Remove clears the slot tok refers to, backward-shifting later entries in
// its probe chain so every remaining key stays reachable from its desired
// slot without crossing a FREE slot.
//
// Remove returns ErrInvalidSlot if tok refers to an already-FREE slot.
func (m *Map[V]) Remove(tok Token) error {
	idx := uint32(tok)
	if m.keys[idx] == FreeKey {
		return fmt.Errorf("%w: token %d", ErrInvalidSlot, tok)
	}
	m.removeAt(idx)
	return nil
}

// RemoveAll removes every key in keys that is present, silently ignoring
// absent ones. Input is deduplicated and sorted first so a key repeated in
// the batch is only probed once.
func (m *Map[V]) RemoveAll(keysToRemove []int32) {
	unique := slices.Clone(keysToRemove)
	slices.Sort(unique)
	unique = slices.Compact(unique)
	for _, k := range unique {
		if found, tok := m.Find(k); found {
			_ = m.Remove(tok) // Find just proved this slot is occupied
		}
	}
}

// removeAt implements the backward-shift walk described in §4.4: walk
// forward from the just-emptied hole, and for each subsequent occupied slot
// decide whether it would be unreachable from its own desired slot once the
// hole is left empty; if so, shift it back into the hole and advance the
// hole to the slot it vacated. The walk always advances one slot regardless
// of whether a shift happened, and only stops at the first FREE slot — a
// slot that doesn't need to move yet may still be skipped over by a later,
// more-displaced slot further down the same chain.
func (m *Map[V]) removeAt(hole uint32) {
	i := (hole + 1) & m.mask
	for {
		k := m.keys[i]
		if k == FreeKey {
			break
		}
		desired := xhash.DesiredSlot(k, m.mask)
		if shouldShift(desired, i, hole) {
			m.keys[hole] = k
			m.values[hole] = m.values[i]
			hole = i
		}
		i = (i + 1) & m.mask
	}

	var zero V
	m.keys[hole] = FreeKey
	m.values[hole] = zero
	m.count--
}

// shouldShift reports whether the occupied slot at current (whose own
// desired slot is desired) would be unreachable if hole were left empty,
// i.e. whether hole lies, circularly, in [desired, current).
func shouldShift(desired, current, hole uint32) bool {
	switch {
	case hole == desired:
		return true
	case current == desired:
		return false
	case current > desired:
		return hole > desired && hole < current
	default: // current < desired: the chain wraps past the end of the array
		return hole < current || hole > desired
	}
}

// Clear empties the map. Capacity is unchanged; a subsequent insert of a
// previously-present key behaves as insertion into a fresh map of the same
// capacity.
func (m *Map[V]) Clear() {
	var zero V
	for i := 0; i < m.capacity; i++ {
		m.keys[i] = FreeKey
		m.values[i] = zero
	}
	m.count = 0
}

// KeyOf returns the key stored at tok's slot. Behavior is undefined if tok
// is stale or refers to a FREE/guard slot.
func (m *Map[V]) KeyOf(tok Token) int32 {
	return m.keys[tok]
}

// ValueOf returns a pointer to tok's value cell. The pointer is invalidated
// by the next mutating call on the map.
func (m *Map[V]) ValueOf(tok Token) *V {
	return &m.values[tok]
}

// Count returns the number of occupied slots. Never negative.
func (m *Map[V]) Count() int {
	return m.count
}

// Capacity returns the current size of the backing arrays (always a power
// of two). Exposed for diagnostics and tests; not part of the spec's core
// surface.
func (m *Map[V]) Capacity() int {
	return m.capacity
}

// Iterator is a single-pass, non-restartable cursor over a Map's occupied
// slots. Mutating the map mid-iteration is undefined behavior.
type Iterator[V any] struct {
	m   *Map[V]
	idx uint32
}

// Iterate returns a fresh Iterator positioned before the first slot.
func (m *Map[V]) Iterate() *Iterator[V] {
	return &Iterator[V]{m: m}
}

// Next advances the iterator and reports the next occupied slot's token, or
// false once every occupied slot has been yielded.
func (it *Iterator[V]) Next() (Token, bool) {
	m := it.m
	for it.idx < uint32(m.capacity) {
		k := m.keys[it.idx]
		if k == EndKey {
			return 0, false
		}
		tok := Token(it.idx)
		it.idx++
		if k != FreeKey {
			return tok, true
		}
	}
	return 0, false
}

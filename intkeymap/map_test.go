package intkeymap

import (
	"errors"
	"math/rand"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// Concrete scenario 1.
func TestSmallCapacityLifecycle(t *testing.T) {
	m, err := New[string](2, 0.75)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := m.Insert(10, "a"); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Insert(20, "b"); err != nil {
		t.Fatal(err)
	}
	if got := m.Count(); got != 2 {
		t.Fatalf("Count() = %d, want 2", got)
	}
	n := 0
	for it := m.Iterate(); ; {
		if _, ok := it.Next(); !ok {
			break
		}
		n++
	}
	if n != 2 {
		t.Fatalf("iteration yielded %d tokens, want 2", n)
	}
	m.Clear()
	if m.Count() != 0 {
		t.Fatalf("Count() after Clear() = %d, want 0", m.Count())
	}
}

// Concrete scenario 2.
func TestRepeatedOverwriteKeepsCountOne(t *testing.T) {
	m := NewDefault[int]()
	key := int32(-234928)
	mustInsert := func(v int) {
		if _, err := m.Insert(key, v); err != nil {
			t.Fatal(err)
		}
	}
	mustInsert(23423)
	mustInsert(836)
	mustInsert(283467)

	if got := m.Count(); got != 1 {
		t.Fatalf("Count() = %d, want 1", got)
	}
	found, tok := m.Find(key)
	if !found {
		t.Fatal("key should be found")
	}
	if got := *m.ValueOf(tok); got != 283467 {
		t.Fatalf("value = %d, want 283467", got)
	}
}

// Concrete scenario 3.
func TestConstructorArgumentValidation(t *testing.T) {
	if _, err := New[int](-1, 0.75); !errors.Is(err, ErrArgumentOutOfRange) {
		t.Fatalf("New(-1, 0.75) error = %v, want ErrArgumentOutOfRange", err)
	}
	if _, err := New[int](256, 1.0); !errors.Is(err, ErrArgumentOutOfRange) {
		t.Fatalf("New(256, 1.0) error = %v, want ErrArgumentOutOfRange", err)
	}
	if _, err := New[int](256, 0); !errors.Is(err, ErrArgumentOutOfRange) {
		t.Fatalf("New(256, 0) error = %v, want ErrArgumentOutOfRange", err)
	}
}

func TestReservedKeysRejected(t *testing.T) {
	m := NewDefault[int]()
	if _, err := m.Insert(FreeKey, 1); !errors.Is(err, ErrArgumentOutOfRange) {
		t.Fatalf("inserting FreeKey: %v, want ErrArgumentOutOfRange", err)
	}
	if _, err := m.Insert(EndKey, 1); !errors.Is(err, ErrArgumentOutOfRange) {
		t.Fatalf("inserting EndKey: %v, want ErrArgumentOutOfRange", err)
	}
}

func TestRemoveInvalidSlot(t *testing.T) {
	m := NewDefault[int]()
	_, tok := m.Find(12345) // absent: token points at a FREE slot
	if err := m.Remove(tok); !errors.Is(err, ErrInvalidSlot) {
		t.Fatalf("Remove on FREE slot: %v, want ErrInvalidSlot", err)
	}
}

func TestValueForKeyNotFound(t *testing.T) {
	m := NewDefault[int]()
	if _, err := m.ValueFor(999); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("ValueFor on absent key: %v, want ErrKeyNotFound", err)
	}
}

// referenceModel mirrors a batch of operations against a plain Go map so
// property tests can assert the intkeymap.Map matches it exactly.
type referenceModel struct {
	data map[int32]int
}

func newReferenceModel() *referenceModel {
	return &referenceModel{data: make(map[int32]int)}
}

func TestAgainstReferenceMapUnderCollisionHeavyWorkload(t *testing.T) {
	m := NewDefault[int]()
	ref := newReferenceModel()
	r := rand.New(rand.NewSource(7))

	const ops = 1000000
	for i := 0; i < ops; i++ {
		k := int32(r.Intn(10000))
		if r.Intn(3) == 0 {
			// remove
			if _, ok := ref.data[k]; ok {
				if found, tok := m.Find(k); found {
					if err := m.Remove(tok); err != nil {
						t.Fatalf("Remove(%d): %v", k, err)
					}
				} else {
					t.Fatalf("reference has %d but map does not", k)
				}
				delete(ref.data, k)
			}
		} else {
			v := int(r.Int31())
			if _, err := m.Insert(k, v); err != nil {
				t.Fatalf("Insert(%d,%d): %v", k, v, err)
			}
			ref.data[k] = v
		}

		if i%10000 == 9999 {
			assertMatchesReference(t, m, ref)
		}
	}
	assertMatchesReference(t, m, ref)
}

func assertMatchesReference(t *testing.T, m *Map[int], ref *referenceModel) {
	t.Helper()
	if m.Count() != len(ref.data) {
		t.Fatalf("Count() = %d, want %d", m.Count(), len(ref.data))
	}
	got := make(map[int32]int, m.Count())
	n := 0
	for it := m.Iterate(); ; {
		tok, ok := it.Next()
		if !ok {
			break
		}
		got[m.KeyOf(tok)] = *m.ValueOf(tok)
		n++
	}
	if n != m.Count() {
		t.Fatalf("iteration yielded %d tokens, Count() = %d", n, m.Count())
	}
	if diff := cmp.Diff(ref.data, got); diff != "" {
		t.Fatalf("map diverged from reference (-want +got):\n%s", diff)
	}
}

func TestGrowthRoundTrip(t *testing.T) {
	m := NewDefault[int32]()
	const n = 20000
	for i := int32(0); i < n; i++ {
		key := i + 1 // avoid 0 colliding with nothing special, just distinct keys
		if _, err := m.Insert(key, key*2); err != nil {
			t.Fatalf("Insert(%d): %v", key, err)
		}
	}
	if got := m.Count(); got != n {
		t.Fatalf("Count() = %d, want %d", got, n)
	}
	for i := int32(0); i < n; i++ {
		key := i + 1
		found, tok := m.Find(key)
		if !found {
			t.Fatalf("key %d not found after growth", key)
		}
		if got := *m.ValueOf(tok); got != key*2 {
			t.Fatalf("value for %d = %d, want %d", key, got, key*2)
		}
	}
	count := 0
	for it := m.Iterate(); ; {
		if _, ok := it.Next(); !ok {
			break
		}
		count++
	}
	if count != n {
		t.Fatalf("iteration yielded %d tokens, want %d", count, n)
	}
}

func TestClearIsIdempotentAndReusable(t *testing.T) {
	m := NewDefault[int]()
	for k := int32(0); k < 100; k++ {
		if _, err := m.Insert(k, int(k)); err != nil {
			t.Fatal(err)
		}
	}
	capacityBefore := m.Capacity()
	m.Clear()
	if m.Count() != 0 {
		t.Fatalf("Count() after Clear = %d, want 0", m.Count())
	}
	n := 0
	for it := m.Iterate(); ; {
		if _, ok := it.Next(); !ok {
			break
		}
		n++
	}
	if n != 0 {
		t.Fatalf("iteration after Clear yielded %d tokens, want 0", n)
	}
	if _, err := m.Insert(5, 555); err != nil {
		t.Fatal(err)
	}
	found, tok := m.Find(5)
	if !found || *m.ValueOf(tok) != 555 {
		t.Fatal("fresh insert after Clear did not behave like a new map")
	}
	if m.Capacity() != capacityBefore {
		t.Fatalf("Capacity changed across Clear: %d -> %d", capacityBefore, m.Capacity())
	}
}

func TestInvariantPreservationAfterChurn(t *testing.T) {
	m := NewDefault[int]()
	r := rand.New(rand.NewSource(99))
	present := make(map[int32]bool)

	for i := 0; i < 50000; i++ {
		k := int32(r.Intn(500))
		if r.Intn(2) == 0 {
			if _, err := m.Insert(k, i); err != nil {
				t.Fatal(err)
			}
			present[k] = true
		} else if present[k] {
			if found, tok := m.Find(k); found {
				if err := m.Remove(tok); err != nil {
					t.Fatal(err)
				}
			}
			delete(present, k)
		}
	}

	checkReachability(t, m)
	occupied := 0
	for _, k := range m.keys[:m.capacity] {
		if k != FreeKey {
			occupied++
		}
	}
	if occupied != m.Count() {
		t.Fatalf("occupied slot count = %d, Count() = %d", occupied, m.Count())
	}
}

// checkReachability asserts invariant (a): every present key is reachable
// from its desired slot without crossing a FREE slot.
func checkReachability(t *testing.T, m *Map[int]) {
	t.Helper()
	for i, k := range m.keys[:m.capacity] {
		if k == FreeKey {
			continue
		}
		found, tok := m.Find(k)
		if !found {
			t.Fatalf("key %d occupies slot %d but Find reports absent", k, i)
		}
		if int(tok) != i {
			t.Fatalf("key %d occupies slot %d but Find resolves to slot %d", k, i, tok)
		}
	}
}

// Concrete scenario 6.
func TestRemovalStressAgainstThreshold(t *testing.T) {
	m := NewDefault[struct{}]()
	r := rand.New(rand.NewSource(1234))

	for i := 0; i < 10000; i++ {
		k := int32(r.Intn(1000))
		if _, err := m.Insert(k, struct{}{}); err != nil {
			t.Fatal(err)
		}
	}

	var survivors []int32
	var toRemove []int32
	for k := int32(0); k < 1000; k++ {
		if found, _ := m.Find(k); found {
			if k > 500 {
				survivors = append(survivors, k)
			} else {
				toRemove = append(toRemove, k)
			}
		}
	}

	m.RemoveAll(toRemove)

	if got := m.Count(); got != len(survivors) {
		t.Fatalf("Count() = %d, want %d", got, len(survivors))
	}

	var gotKeys []int32
	for it := m.Iterate(); ; {
		tok, ok := it.Next()
		if !ok {
			break
		}
		gotKeys = append(gotKeys, m.KeyOf(tok))
	}
	sort.Slice(gotKeys, func(i, j int) bool { return gotKeys[i] < gotKeys[j] })
	sort.Slice(survivors, func(i, j int) bool { return survivors[i] < survivors[j] })
	if diff := cmp.Diff(survivors, gotKeys); diff != "" {
		t.Fatalf("surviving keys mismatch (-want +got):\n%s", diff)
	}
}

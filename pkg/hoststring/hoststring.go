// Package hoststring resolves host-owned text references.
//
// Notifications do not carry text inline. They carry a pointer-sized
// reference to a string owned by the host, valid only while the host is
// delivering the notification. A Resolver exposes the bytes behind such a
// reference; callers must copy them before the delivery returns.
package hoststring

import (
	"errors"
	"sync"
)

// Ref is a pointer-sized reference to a host-owned string.
type Ref uint64

// ErrUnresolved is returned when a reference does not name a live string.
var ErrUnresolved = errors.New("unresolved host string reference")

// Resolver gives temporary access to the bytes of a host string.
// The returned slice is only valid until the current delivery returns and
// must not be retained or modified.
type Resolver interface {
	Lookup(ref Ref) ([]byte, error)
}

// Copy resolves ref and returns an independent Go string.
func Copy(r Resolver, ref Ref) (string, error) {
	b, err := r.Lookup(ref)
	if err != nil {
		return "", err
	}
	// string conversion allocates a fresh backing array.
	return string(b), nil
}

// Table is an in-memory Resolver that hands out references for interned
// strings. It stands in for the host string allocator in simulations and tests.
// Table is safe for concurrent use.
type Table struct {
	mu      sync.RWMutex
	next    Ref
	strings map[Ref][]byte
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		next:    1,
		strings: make(map[Ref][]byte),
	}
}

// Intern stores s and returns a new reference to it.
func (t *Table) Intern(s string) Ref {
	t.mu.Lock()
	defer t.mu.Unlock()

	ref := t.next
	t.next++
	t.strings[ref] = []byte(s)
	return ref
}

// Put stores s under a caller-chosen reference, replacing any previous value.
func (t *Table) Put(ref Ref, s string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.strings[ref] = []byte(s)
	if ref >= t.next {
		t.next = ref + 1
	}
}

// Release drops a reference. Later lookups fail with ErrUnresolved.
func (t *Table) Release(ref Ref) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.strings, ref)
}

// Lookup returns the bytes stored for ref.
func (t *Table) Lookup(ref Ref) ([]byte, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	b, ok := t.strings[ref]
	if !ok {
		return nil, ErrUnresolved
	}
	return b, nil
}

// Len returns the number of live references.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.strings)
}

var _ Resolver = (*Table)(nil)

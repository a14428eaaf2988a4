// Package intern maps values to dense, stable IDs.
//
// A Table is an ordinary value owned by whoever creates it; there is no
// process-wide table. IDs from one Table mean nothing to another.
package intern

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

// ID identifies an interned value within its Table.
type ID uint32

// NoID is never returned by Intern.
const NoID ID = 0

// Table interns values of type K.
type Table[K comparable] struct {
	byID  []K // byID[0] is the zero K reserved for NoID
	index map[K]ID
}

// New returns an empty Table.
func New[K comparable]() *Table[K] {
	var zero K
	return &Table[K]{
		byID:  []K{zero},
		index: make(map[K]ID),
	}
}

// Intern returns the ID of k, adding it if it is not present yet.
func (t *Table[K]) Intern(k K) ID {
	if id, ok := t.index[k]; ok {
		return id
	}
	n, err := safecast.Conv[uint32](len(t.byID))
	if err != nil {
		panic(fmt.Errorf("intern: table overflow: %w", err))
	}
	id := ID(n)
	t.byID = append(t.byID, k)
	t.index[k] = id
	return id
}

// Find returns the ID of k without adding it.
func (t *Table[K]) Find(k K) (ID, bool) {
	id, ok := t.index[k]
	return id, ok
}

// Lookup returns the value for id.
func (t *Table[K]) Lookup(id ID) (K, bool) {
	if id == NoID || int(id) >= len(t.byID) {
		var zero K
		return zero, false
	}
	return t.byID[id], true
}

// MustLookup is Lookup that panics on an unknown ID.
func (t *Table[K]) MustLookup(id ID) K {
	k, ok := t.Lookup(id)
	if !ok {
		panic(fmt.Sprintf("intern: invalid ID %d", id))
	}
	return k
}

// Len returns the number of interned values.
func (t *Table[K]) Len() int { return len(t.byID) - 1 }

// Snapshot returns the interned values in ID order.
func (t *Table[K]) Snapshot() []K { return slices.Clone(t.byID[1:]) }

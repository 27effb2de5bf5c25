// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package nameindex

import (
	"hash/fnv"
	"strconv"

	"golang.org/x/text/cases"
)

// DefaultCapacity is used when a caller passes a non-positive capacity.
const DefaultCapacity = 256

// FullError is returned by Upsert when every probed slot is occupied by a
// live entry. It signals capacity misconfiguration: the index should be
// sized above the expected number of distinct names.
type FullError struct {
	// Name is the name that could not be inserted.
	Name string

	// Capacity is the fixed capacity of the index.
	Capacity int
}

func (e *FullError) Error() string {
	return "nameindex: index full (capacity " + strconv.Itoa(e.Capacity) + "), cannot insert " + e.Name
}

// entry is one slot of the index. Occupied slots keep their key forever;
// recycling replaces the key in place and never empties a slot, so probe
// chains stay intact without tombstones.
type entry[V any] struct {
	occupied bool
	key      string
	value    V
}

// Index maps case-folded names to value slots. It has a fixed capacity and
// is not safe for concurrent use; callers guard it with their own lock.
type Index[V any] struct {
	entries []entry[V]
	live    int
}

// New creates an index with the given capacity. A non-positive capacity
// falls back to DefaultCapacity.
func New[V any](capacity int) *Index[V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Index[V]{entries: make([]entry[V], capacity)}
}

// Normalize returns the case-folded form of a name, the form under which
// it is stored. Exposed so callers can compare names the way the index does.
func Normalize(name string) string {
	return cases.Fold().String(name)
}

// hashName computes the FNV-1a hash of a folded name.
func hashName(folded string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(folded)) // fnv.Write never returns an error
	return h.Sum64()
}

// Get returns a pointer to the value stored for name, or (nil, false) if
// the name has no entry. The pointer stays valid for the lifetime of the
// index; callers may mutate the value through it.
func (ix *Index[V]) Get(name string) (*V, bool) {
	folded := Normalize(name)
	home := int(hashName(folded) % uint64(len(ix.entries)))
	for i := range ix.entries {
		e := &ix.entries[(home+i)%len(ix.entries)]
		if !e.occupied {
			return nil, false
		}
		if e.key == folded {
			return &e.value, true
		}
	}
	return nil, false
}

// Upsert returns a pointer to the entry for name, creating it if needed.
// New entries hold the zero value of V; created reports whether the entry
// was newly created (or recycled) rather than found.
//
// When no empty slot is found on the probe path, Upsert may recycle an
// occupied slot for which reclaim returns true; the recycled slot's old
// key is forgotten. A nil reclaim never recycles. If neither an empty nor
// a reclaimable slot exists, Upsert returns a *FullError.
func (ix *Index[V]) Upsert(name string, reclaim func(*V) bool) (v *V, created bool, err error) {
	folded := Normalize(name)
	home := int(hashName(folded) % uint64(len(ix.entries)))
	recycle := -1
	for i := range ix.entries {
		pos := (home + i) % len(ix.entries)
		e := &ix.entries[pos]
		if !e.occupied {
			e.occupied = true
			e.key = folded
			var zero V
			e.value = zero
			ix.live++
			return &e.value, true, nil
		}
		if e.key == folded {
			return &e.value, false, nil
		}
		if recycle < 0 && reclaim != nil && reclaim(&e.value) {
			recycle = pos
		}
	}
	if recycle >= 0 {
		e := &ix.entries[recycle]
		e.key = folded
		var zero V
		e.value = zero
		return &e.value, true, nil
	}
	return nil, false, &FullError{Name: name, Capacity: len(ix.entries)}
}

// Set stores value under name, creating the entry if needed. It never
// recycles; a full index returns a *FullError.
func (ix *Index[V]) Set(name string, value V) error {
	v, _, err := ix.Upsert(name, nil)
	if err != nil {
		return err
	}
	*v = value
	return nil
}

// Fill resets every slot to unoccupied and stores value in each. Used at
// creation and shutdown to put the whole index into a known state.
func (ix *Index[V]) Fill(value V) {
	for i := range ix.entries {
		ix.entries[i] = entry[V]{value: value}
	}
	ix.live = 0
}

// Len returns the number of occupied entries.
func (ix *Index[V]) Len() int { return ix.live }

// Capacity returns the fixed capacity of the index.
func (ix *Index[V]) Capacity() int { return len(ix.entries) }

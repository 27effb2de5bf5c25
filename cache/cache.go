// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package cache

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/gogpu/resource"
	"github.com/gogpu/resource/nameindex"
)

// Loader loads and unloads payloads for one resource kind. Load populates
// the destination in place; on error the slot is handed back to the free
// list untouched. Unload releases whatever Load created (GPU objects,
// large buffers); the cache zeroes the payload afterwards.
type Loader[P any] interface {
	Load(name string, dst *P) error
	Unload(name string, p *P) error
}

// LoaderFuncs adapts a pair of functions to the Loader interface. A nil
// unload function is treated as a no-op.
type LoaderFuncs[P any] struct {
	LoadFunc   func(name string, dst *P) error
	UnloadFunc func(name string, p *P) error
}

// Load implements Loader.
func (l LoaderFuncs[P]) Load(name string, dst *P) error { return l.LoadFunc(name, dst) }

// Unload implements Loader.
func (l LoaderFuncs[P]) Unload(name string, p *P) error {
	if l.UnloadFunc == nil {
		return nil
	}
	return l.UnloadFunc(name, p)
}

// refEntry is the per-name bookkeeping stored in the name index. An entry
// outlives its resource: after unload the handle goes invalid and the
// count to zero, but the entry stays in the index so a later re-acquire
// of the same name finds it again.
type refEntry struct {
	count       int64
	handle      resource.Handle
	autoRelease bool
}

// init puts a fresh entry into the not-loaded state.
func (e *refEntry) init() {
	e.count = 0
	e.handle = resource.InvalidHandle
	e.autoRelease = false
}

// stale reports whether the entry can be recycled for a different name.
func (e *refEntry) stale() bool {
	return e.count == 0 && !e.handle.Valid()
}

// RefCache is a reference-counted cache of named payloads with a fixed
// slot capacity. See the package documentation for the lifecycle.
//
// RefCache is safe for concurrent use and must not be copied after
// creation.
type RefCache[P any] struct {
	mu     sync.Mutex
	label  string
	index  *nameindex.Index[refEntry]
	slots  []Slot[P]
	loader Loader[P]

	// Statistics (atomic for zero-allocation reads)
	acquires atomic.Uint64
	releases atomic.Uint64
	loads    atomic.Uint64
	unloads  atomic.Uint64
}

// New creates a reference-counted cache for one resource kind. The label
// names the kind in logs and errors ("texture", "material", ...).
func New[P any](label string, loader Loader[P], opts ...Option) (*RefCache[P], error) {
	if loader == nil {
		return nil, ErrNilLoader
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.indexCapacity <= 0 {
		o.indexCapacity = o.capacity
	}

	c := &RefCache[P]{
		label:  label,
		index:  nameindex.New[refEntry](o.indexCapacity),
		slots:  make([]Slot[P], o.capacity),
		loader: loader,
	}
	var free refEntry
	free.init()
	c.index.Fill(free)
	for i := range c.slots {
		c.slots[i].id = resource.InvalidHandle
		c.slots[i].generation = resource.InvalidGeneration
	}

	resource.Logger().Info("cache created",
		"cache", label, "capacity", o.capacity, "index_capacity", o.indexCapacity)
	return c, nil
}

// Acquire returns the slot holding the payload for name, loading it on
// first use. Every successful Acquire must be matched by a Release.
//
// The first acquire of a name (or the first after its resource was
// unloaded) fixes autoRelease for the resource's lifetime; the flag on
// later acquires is ignored.
//
// Acquire fails with a *CapacityError when the cache has no free slot or
// index entry for a new name, and with a *LoadError when the loader
// rejects the name. Neither failure leaves a reference behind.
func (c *RefCache[P]) Acquire(name string, autoRelease bool) (*Slot[P], error) {
	log := resource.Logger()

	c.mu.Lock()
	defer c.mu.Unlock()

	e, created, err := c.index.Upsert(name, (*refEntry).stale)
	if err != nil {
		var full *nameindex.FullError
		if errors.As(err, &full) {
			cerr := &CapacityError{Label: c.label, Capacity: full.Capacity}
			log.Error("cache name index exhausted", "cache", c.label, "name", name, "err", cerr)
			return nil, cerr
		}
		return nil, err
	}
	if created {
		e.init()
	}
	if e.count == 0 && !e.handle.Valid() {
		// First acquire of this name, or first after an unload: latch
		// the auto-release policy for the resource's lifetime.
		e.autoRelease = autoRelease
	}
	e.count++
	c.acquires.Add(1)

	if !e.handle.Valid() {
		h, ok := findFreeSlot(c.slots)
		if !ok {
			e.count--
			cerr := &CapacityError{Label: c.label, Capacity: len(c.slots)}
			log.Error("cache slot table exhausted", "cache", c.label, "name", name, "err", cerr)
			return nil, cerr
		}
		s := &c.slots[h]
		if lerr := c.loader.Load(name, &s.Payload); lerr != nil {
			e.count--
			var zero P
			s.Payload = zero
			return nil, &LoadError{Label: c.label, Name: name, Err: lerr}
		}
		s.id = h
		s.generation = s.generation.Next()
		e.handle = h
		c.loads.Add(1)
		log.Debug("resource loaded",
			"cache", c.label, "name", name, "handle", uint32(h),
			"generation", uint32(s.generation), "auto_release", e.autoRelease)
	}

	return &c.slots[e.handle], nil
}

// Release drops one reference to name. When the count reaches zero and the
// resource was acquired with auto-release, the payload is unloaded and its
// slot freed; the name keeps its index entry so a re-acquire works.
//
// Releasing an unknown name, or a name with no outstanding references, is
// a tolerated no-op that logs a warning. The count never goes negative.
func (c *RefCache[P]) Release(name string) {
	log := resource.Logger()

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.index.Get(name)
	if !ok || e.count == 0 {
		log.Warn("release of resource with no outstanding references",
			"cache", c.label, "name", name)
		return
	}
	e.count--
	c.releases.Add(1)

	if e.count == 0 && e.autoRelease {
		c.unloadLocked(name, e)
	}
}

// Evict forcibly unloads name regardless of reference count or the
// auto-release policy. Used at shutdown and by the asset dispatcher's
// forced release. Evicting a name that is not loaded is a no-op.
func (c *RefCache[P]) Evict(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.index.Get(name)
	if !ok || !e.handle.Valid() {
		return nil
	}
	return c.unloadLocked(name, e)
}

// unloadLocked releases the payload behind e and resets both the slot and
// the entry. Caller holds c.mu.
func (c *RefCache[P]) unloadLocked(name string, e *refEntry) error {
	s := &c.slots[e.handle]
	err := c.loader.Unload(name, &s.Payload)
	if err != nil {
		resource.Logger().Error("resource unload failed",
			"cache", c.label, "name", name, "err", err)
	}
	var zero P
	s.Payload = zero
	s.id = resource.InvalidHandle
	s.generation = resource.InvalidGeneration
	e.init()
	c.unloads.Add(1)
	resource.Logger().Debug("resource unloaded", "cache", c.label, "name", name)
	return err
}

// Lookup returns the slot for name if its payload is currently loaded,
// without touching the reference count.
func (c *RefCache[P]) Lookup(name string) (*Slot[P], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.index.Get(name)
	if !ok || !e.handle.Valid() {
		return nil, false
	}
	return &c.slots[e.handle], true
}

// Slot returns the occupied slot at h.
func (c *RefCache[P]) Slot(h resource.Handle) (*Slot[P], error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, err := c.slotLocked(h)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (c *RefCache[P]) slotLocked(h resource.Handle) (*Slot[P], error) {
	if !h.Valid() || int(h) >= len(c.slots) || c.slots[h].id != h {
		return nil, &InvalidHandleError{Label: c.label, Handle: h}
	}
	return &c.slots[h], nil
}

// Swap replaces the payload's internal data through fn and bumps the
// slot's generation, leaving reference counts alone. Used for writable
// resources whose backing data is resized or regenerated in place. If fn
// returns an error the generation is not bumped.
func (c *RefCache[P]) Swap(h resource.Handle, fn func(p *P) error) (resource.Generation, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, err := c.slotLocked(h)
	if err != nil {
		return resource.InvalidGeneration, err
	}
	if err := fn(&s.Payload); err != nil {
		return resource.InvalidGeneration, err
	}
	s.generation = s.generation.Next()
	c.loads.Add(1)
	return s.generation, nil
}

// ReleaseAll forcibly unloads every loaded resource and resets the index.
// It is called at system shutdown; outstanding references and the
// auto-release policy are ignored. The cache stays usable afterwards.
func (c *RefCache[P]) ReleaseAll() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error
	for i := range c.slots {
		s := &c.slots[i]
		if !s.id.Valid() {
			continue
		}
		if err := c.loader.Unload("", &s.Payload); err != nil {
			errs = append(errs, err)
		}
		var zero P
		s.Payload = zero
		s.id = resource.InvalidHandle
		s.generation = resource.InvalidGeneration
		c.unloads.Add(1)
	}
	var free refEntry
	free.init()
	c.index.Fill(free)

	resource.Logger().Info("cache released", "cache", c.label)
	return errors.Join(errs...)
}

// Len returns the number of occupied slots.
func (c *RefCache[P]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for i := range c.slots {
		if c.slots[i].id.Valid() {
			n++
		}
	}
	return n
}

// Capacity returns the fixed slot count.
func (c *RefCache[P]) Capacity() int { return len(c.slots) }

// Refs returns the outstanding reference count for name, or 0 if the name
// has no entry. Mostly useful in tests and diagnostics.
func (c *RefCache[P]) Refs(name string) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.index.Get(name)
	if !ok {
		return 0
	}
	return e.count
}

// Stats contains cache statistics.
type Stats struct {
	// Len is the current number of occupied slots.
	Len int
	// Capacity is the fixed slot count.
	Capacity int
	// Acquires is the number of successful acquires.
	Acquires uint64
	// Releases is the number of effective releases (no-op releases are
	// not counted).
	Releases uint64
	// Loads is the number of payload loads, including generation bumps
	// through Swap.
	Loads uint64
	// Unloads is the number of payload unloads, including forced ones.
	Unloads uint64
}

// Stats returns current cache statistics.
func (c *RefCache[P]) Stats() Stats {
	return Stats{
		Len:      c.Len(),
		Capacity: len(c.slots),
		Acquires: c.acquires.Load(),
		Releases: c.releases.Load(),
		Loads:    c.loads.Load(),
		Unloads:  c.unloads.Load(),
	}
}

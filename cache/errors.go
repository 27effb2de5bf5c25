// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package cache

import (
	"errors"
	"strconv"

	"github.com/gogpu/resource"
)

// Errors.
var (
	// ErrNilLoader is returned by New when no loader is supplied.
	ErrNilLoader = errors.New("cache: loader must not be nil")
)

// CapacityError indicates that a cache ran out of slots or index entries
// while claiming storage for a new name. It is a configuration error:
// the cache was created too small for its working set. Synchronous
// callers treat it as fatal; the asset dispatcher reports it through the
// request callback instead.
type CapacityError struct {
	// Label names the cache, e.g. "texture".
	Label string

	// Capacity is the fixed slot count of the cache.
	Capacity int
}

func (e *CapacityError) Error() string {
	return "cache: " + e.Label + " cache capacity exhausted (" +
		strconv.Itoa(e.Capacity) + " slots); adjust configuration to allow more"
}

// InvalidHandleError indicates an operation on a handle that does not
// refer to an occupied slot.
type InvalidHandleError struct {
	Label  string
	Handle resource.Handle
}

func (e *InvalidHandleError) Error() string {
	return "cache: " + e.Label + " cache has no resource at handle " +
		strconv.FormatUint(uint64(e.Handle), 10)
}

// LoadError wraps a loader failure for a named resource.
type LoadError struct {
	Label string
	Name  string
	Err   error
}

func (e *LoadError) Error() string {
	return "cache: load " + e.Label + " " + strconv.Quote(e.Name) + ": " + e.Err.Error()
}

func (e *LoadError) Unwrap() error { return e.Err }

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package cache

import "github.com/gogpu/resource"

// Slot holds one loaded payload. An occupied slot's handle equals its own
// index in the table; a free slot's handle is invalid.
type Slot[P any] struct {
	id         resource.Handle
	generation resource.Generation

	// Payload is the kind-specific resource data. It is valid only while
	// the slot is occupied.
	Payload P
}

// Handle returns the slot's stable handle, or resource.InvalidHandle if
// the slot is free.
func (s *Slot[P]) Handle() resource.Handle { return s.id }

// Generation returns the payload's load generation, or
// resource.InvalidGeneration if the slot is free.
func (s *Slot[P]) Generation() resource.Generation { return s.generation }

// Occupied reports whether the slot currently holds a payload.
func (s *Slot[P]) Occupied() bool { return s.id.Valid() }

// Detached returns a slot that belongs to no table. Default resources use
// detached slots so consumers see the same shape for cached and built-in
// payloads. A detached slot has an invalid handle and generation zero.
func Detached[P any](payload P) *Slot[P] {
	return &Slot[P]{
		id:         resource.InvalidHandle,
		generation: 0,
		Payload:    payload,
	}
}

// findFreeSlot scans for the first free slot. The scan is linear; it only
// runs on first acquire of a brand-new name, and tables are small.
func findFreeSlot[P any](slots []Slot[P]) (resource.Handle, bool) {
	for i := range slots {
		if !slots[i].id.Valid() {
			return resource.Handle(i), true
		}
	}
	return resource.InvalidHandle, false
}

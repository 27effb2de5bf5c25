// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package resource

// Handle is a stable index into a resource slot table. A handle stays valid
// until the resource it refers to is unloaded; after that the same handle
// value may be reissued for a different resource.
type Handle uint32

// Generation counts (re)loads of a slot's payload. Dependents compare
// generations to detect that a resource they hold was reloaded underneath
// them.
type Generation uint32

const (
	// InvalidHandle marks a free slot or an unresolved reference.
	InvalidHandle Handle = ^Handle(0)

	// InvalidGeneration marks a slot whose payload is not loaded.
	InvalidGeneration Generation = ^Generation(0)
)

// Valid reports whether h refers to a slot.
func (h Handle) Valid() bool { return h != InvalidHandle }

// Next returns the generation following g. An invalid generation advances
// to zero, and the counter wraps around skipping the invalid sentinel.
func (g Generation) Next() Generation {
	if g == InvalidGeneration {
		return 0
	}
	n := g + 1
	if n == InvalidGeneration {
		return 0
	}
	return n
}

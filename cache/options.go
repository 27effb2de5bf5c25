// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package cache

// DefaultCapacity is the slot count used when no WithCapacity option is
// given. Working sets are expected to stay in the hundreds.
const DefaultCapacity = 256

// Option configures a RefCache during creation.
//
// Example:
//
//	c, err := cache.New[Texture]("texture", loader, cache.WithCapacity(512))
type Option func(*options)

// options holds optional configuration for RefCache creation.
type options struct {
	capacity      int
	indexCapacity int
}

// defaultOptions returns the default cache options.
func defaultOptions() options {
	return options{
		capacity:      DefaultCapacity,
		indexCapacity: 0, // Follows capacity when unset.
	}
}

// WithCapacity sets the fixed number of payload slots. Capacity is a hard
// limit; acquiring more distinct live names than this fails with a
// *CapacityError. Non-positive values keep the default.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacity = n
		}
	}
}

// WithIndexCapacity sets the name index capacity independently of the slot
// count. The index retains entries for unloaded names until it has to
// recycle them, so a larger index keeps re-acquires of recently unloaded
// names cheap. Defaults to the slot capacity.
func WithIndexCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.indexCapacity = n
		}
	}
}

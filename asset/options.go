// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package asset

// DefaultCapacity is the dispatcher's default asset slot count.
const DefaultCapacity = 512

// Option configures a Dispatcher during creation.
type Option func(*dispatcherOptions)

// dispatcherOptions holds optional configuration for dispatcher creation.
type dispatcherOptions struct {
	capacity      int
	indexCapacity int
	workers       int
}

// defaultDispatcherOptions returns the default dispatcher options.
func defaultDispatcherOptions() dispatcherOptions {
	return dispatcherOptions{
		capacity: DefaultCapacity,
		workers:  0, // GOMAXPROCS
	}
}

// WithCapacity sets the fixed number of asset slots.
func WithCapacity(n int) Option {
	return func(o *dispatcherOptions) {
		if n > 0 {
			o.capacity = n
		}
	}
}

// WithIndexCapacity sets the name index capacity independently of the
// slot count. Defaults to the slot capacity.
func WithIndexCapacity(n int) Option {
	return func(o *dispatcherOptions) {
		if n > 0 {
			o.indexCapacity = n
		}
	}
}

// WithWorkers sets the number of worker goroutines completing
// asynchronous requests. Zero or negative uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *dispatcherOptions) {
		o.workers = n
	}
}

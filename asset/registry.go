// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package asset

import (
	"sort"
	"sync"
)

// Registry manages registered asset handlers, one per asset type.
//
// The registry enables application-defined asset kinds (TypeCustom and
// beyond) to plug in without changes to the dispatcher.
//
// Example registration:
//
//	d.Handlers().Register(asset.TypeText, &asset.TextHandler{FS: assets})
type Registry struct {
	mu       sync.RWMutex
	handlers map[Type]Handler
}

// NewRegistry creates a new empty registry. The dispatcher creates its
// own; most code reaches it through Dispatcher.Handlers.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[Type]Handler),
	}
}

// Register adds a handler for an asset type. Registering a type that
// already has a handler replaces the previous one.
func (r *Registry) Register(t Type, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.handlers == nil {
		r.handlers = make(map[Type]Handler)
	}
	r.handlers[t] = h
}

// Unregister removes the handler for an asset type.
func (r *Registry) Unregister(t Type) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.handlers, t)
}

// Get returns the handler for an asset type.
func (r *Registry) Get(t Type) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.handlers[t]
	return h, ok
}

// Types returns all types with a registered handler, in ascending order.
func (r *Registry) Types() []Type {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]Type, 0, len(r.handlers))
	for t := range r.handlers {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// NoHandlerError indicates that no handler is registered for a type.
type NoHandlerError struct {
	Type Type
}

func (e *NoHandlerError) Error() string {
	return "asset: no handler registered for type " + e.Type.String()
}

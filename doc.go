// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package resource provides reference-counted caching and asynchronous
// acquisition for expensive, named, GPU- or disk-backed objects: textures,
// materials, shaders, bitmap fonts, and generic assets.
//
// # Overview
//
// Every subsystem that owns a named resource follows the same shape: a
// fixed-capacity name index, a parallel slot table addressed by stable
// integer handle, reference counting with optional auto-release, and a
// per-kind loader. The generic machinery lives in the cache package; the
// texture, material, shader, and font packages instantiate it with concrete
// payloads and loaders. The asset package adds an asynchronous
// request/callback pipeline dispatched to pluggable per-type handlers.
//
// # Quick Start
//
//	up := resource.NewNullUploader()
//	textures, err := texture.NewSystem(up, os.DirFS("assets"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer textures.Close()
//
//	t, err := textures.Acquire("stone_wall", true)
//	if err != nil {
//	    t = textures.Default() // fall back to the built-in checkerboard
//	}
//	// ... use t ...
//	textures.Release("stone_wall")
//
// # Architecture
//
// The module is organized into:
//   - Root: Handle and Generation types, logging, the Uploader boundary
//   - nameindex: fixed-capacity collision-checked name index
//   - cache: the generic reference-counted slot cache
//   - asset: the asynchronous dispatcher and built-in text/binary handlers
//   - texture, material, shader, font: per-kind systems with defaults
//
// # Concurrency
//
// Each cache is guarded by a single exclusive lock; acquire, release, and
// load run to completion under it. The asset dispatcher completes requests
// on a worker pool, so callbacks fire on pool goroutines unless a request
// is marked synchronous.
package resource

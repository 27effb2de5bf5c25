// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package asset resolves fully-qualified (package, name, type) triples to
// loaded, reference-counted assets through pluggable per-type handlers.
//
// Results are delivered through a callback rather than a return value.
// Each request's callback is invoked exactly once, with a Result kind and,
// on success, the populated asset. Requests for assets that are already
// loaded complete synchronously, inline, before any background work is
// considered; cold requests run on a worker pool unless the request is
// marked synchronous.
//
// Handlers are registered once per asset type at startup. The built-in
// Text and Binary handlers read from an io/fs.FS; the texture, material,
// shader, and font packages provide handlers for their formats.
package asset

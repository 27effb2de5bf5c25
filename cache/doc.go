// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package cache implements the generic reference-counted resource cache
// shared by the texture, material, shader, font, and asset systems.
//
// A RefCache owns a fixed-size table of payload slots addressed by stable
// handles, plus a name index of reference entries. Acquiring a name loads
// the payload into a free slot on first use and increments its reference
// count; releasing decrements the count and, for auto-release resources,
// unloads the payload when the count reaches zero. The slot table never
// grows: running out of slots is a configuration error, not a condition
// the cache recovers from.
//
// A RefCache is safe for concurrent use. One exclusive lock guards each
// cache; loads and unloads run under it, so acquire of a cold resource
// blocks other operations on the same cache until the loader returns.
package cache

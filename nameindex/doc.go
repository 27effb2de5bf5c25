// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package nameindex provides a fixed-capacity index from resource names to
// value slots.
//
// The index is created once with a fixed capacity and never grows. Names
// are case-folded before hashing, so "Cobblestone" and "cobblestone" refer
// to the same entry. Lookup hashes the folded name with FNV-1a and probes
// linearly from the home slot; stored keys are compared explicitly, so two
// names that hash to the same slot never alias each other's storage.
//
// Entries are never deleted. Upsert may recycle an entry the caller marks
// as reclaimable, which keeps long-lived indexes from filling up with
// entries whose resources were unloaded.
package nameindex

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package asset

import (
	"context"
	"fmt"
	"io/fs"
	"path"
)

// AssetPath resolves an asset's file path inside a filesystem: the
// package maps to a directory, the asset name to a file within it.
func AssetPath(root, pkg, name string) string {
	return path.Join(root, pkg, name)
}

// TextHandler loads assets as UTF-8 text. The asset's Data is a string.
type TextHandler struct {
	// FS is the filesystem assets are read from.
	FS fs.FS

	// Root is an optional directory prefix inside FS.
	Root string
}

// Request implements Handler.
func (h *TextHandler) Request(_ context.Context, a *Asset) error {
	p := AssetPath(h.Root, a.Package, a.Name)
	data, err := fs.ReadFile(h.FS, p)
	if err != nil {
		return fmt.Errorf("asset: read text %s: %w", p, err)
	}
	a.Data = string(data)
	a.Size = uint64(len(data))
	return nil
}

// Release implements Handler.
func (h *TextHandler) Release(a *Asset) {
	a.Data = nil
	a.Size = 0
}

// BinaryHandler loads assets as raw bytes. The asset's Data is a []byte.
type BinaryHandler struct {
	// FS is the filesystem assets are read from.
	FS fs.FS

	// Root is an optional directory prefix inside FS.
	Root string
}

// Request implements Handler.
func (h *BinaryHandler) Request(_ context.Context, a *Asset) error {
	p := AssetPath(h.Root, a.Package, a.Name)
	data, err := fs.ReadFile(h.FS, p)
	if err != nil {
		return fmt.Errorf("asset: read binary %s: %w", p, err)
	}
	a.Data = data
	a.Size = uint64(len(data))
	return nil
}

// Release implements Handler.
func (h *BinaryHandler) Release(a *Asset) {
	a.Data = nil
	a.Size = 0
}

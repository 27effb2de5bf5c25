// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package font

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"

	gtfont "github.com/go-text/typesetting/font"

	"github.com/gogpu/resource/asset"
)

// BitmapHandler loads bitmap font descriptors through the asset
// dispatcher. The asset's Data is a *Descriptor; acquiring atlas pages is
// the font System's job.
type BitmapHandler struct {
	// FS is the filesystem descriptors are read from.
	FS fs.FS

	// Root is an optional directory prefix inside FS.
	Root string
}

// Request implements asset.Handler.
func (h *BitmapHandler) Request(_ context.Context, a *asset.Asset) error {
	path := asset.AssetPath(h.Root, a.Package, a.Name)
	data, err := fs.ReadFile(h.FS, path)
	if err != nil {
		return fmt.Errorf("font: read %s: %w", path, err)
	}
	d, err := ParseDescriptor(data)
	if err != nil {
		return fmt.Errorf("%w: %v", asset.ErrParse, err)
	}
	a.Data = d
	a.Size = uint64(len(data))
	return nil
}

// Release implements asset.Handler.
func (h *BitmapHandler) Release(a *asset.Asset) {
	a.Data = nil
	a.Size = 0
}

// SystemHandler loads and parses TTF/OTF font files through the asset
// dispatcher. The asset's Data is a *font.Face from go-text/typesetting.
type SystemHandler struct {
	// FS is the filesystem font files are read from.
	FS fs.FS

	// Root is an optional directory prefix inside FS.
	Root string
}

// Request implements asset.Handler.
func (h *SystemHandler) Request(_ context.Context, a *asset.Asset) error {
	path := asset.AssetPath(h.Root, a.Package, a.Name)
	data, err := fs.ReadFile(h.FS, path)
	if err != nil {
		return fmt.Errorf("font: read %s: %w", path, err)
	}
	face, err := gtfont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", asset.ErrParse, err)
	}
	a.Data = face
	a.Size = uint64(len(data))
	return nil
}

// Release implements asset.Handler.
func (h *SystemHandler) Release(a *asset.Asset) {
	a.Data = nil
	a.Size = 0
}

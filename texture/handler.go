// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package texture

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/gogpu/resource/asset"
)

// ImageHandler loads image assets through the asset dispatcher. The
// asset's Data is an *ImageData; uploading is left to the consumer, so
// the handler works headless.
type ImageHandler struct {
	// FS is the filesystem images are read from.
	FS fs.FS

	// Root is an optional directory prefix inside FS (default none;
	// the asset's package already maps to a directory).
	Root string

	// MaxDimension caps decoded dimensions. Zero disables scaling.
	MaxDimension int
}

// Request implements asset.Handler.
func (h *ImageHandler) Request(_ context.Context, a *asset.Asset) error {
	path := asset.AssetPath(h.Root, a.Package, a.Name)
	img, err := DecodeImage(h.FS, path, h.MaxDimension)
	if err != nil {
		// A file that exists but does not decode is a parse failure.
		if _, statErr := fs.Stat(h.FS, path); statErr == nil {
			return fmt.Errorf("%w: %v", asset.ErrParse, err)
		}
		return err
	}
	a.Data = img
	a.Size = uint64(len(img.Pixels))
	return nil
}

// Release implements asset.Handler.
func (h *ImageHandler) Release(a *asset.Asset) {
	a.Data = nil
	a.Size = 0
}

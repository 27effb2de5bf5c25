// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package material

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/gogpu/resource/asset"
)

// ConfigHandler loads material descriptions through the asset dispatcher.
// The asset's Data is a *Config; resolving it into a live Material (with
// acquired textures) is the material System's job.
type ConfigHandler struct {
	// FS is the filesystem material files are read from.
	FS fs.FS

	// Root is an optional directory prefix inside FS.
	Root string
}

// Request implements asset.Handler.
func (h *ConfigHandler) Request(_ context.Context, a *asset.Asset) error {
	path := asset.AssetPath(h.Root, a.Package, a.Name)
	data, err := fs.ReadFile(h.FS, path)
	if err != nil {
		return fmt.Errorf("material: read %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return fmt.Errorf("%w: %v", asset.ErrParse, err)
	}
	a.Data = cfg
	a.Size = uint64(len(data))
	return nil
}

// Release implements asset.Handler.
func (h *ConfigHandler) Release(a *asset.Asset) {
	a.Data = nil
	a.Size = 0
}

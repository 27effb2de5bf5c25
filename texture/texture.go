// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package texture

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/resource"
)

// Names of the built-in default textures.
const (
	// DefaultName is the checkerboard fallback texture.
	DefaultName = "default"

	// DefaultDiffuseName is the flat white diffuse fallback.
	DefaultDiffuseName = "default_diffuse"

	// DefaultSpecularName is the flat black specular fallback.
	DefaultSpecularName = "default_specular"

	// DefaultNormalName is the flat +Z normal fallback.
	DefaultNormalName = "default_normal"
)

// Texture is the payload cached per texture name. The pixel data itself
// lives behind the uploader; the payload keeps the metadata renderers
// need for binding and staleness checks.
type Texture struct {
	// Name is the resource name the texture was acquired under.
	Name string

	// Width and Height are the dimensions in pixels.
	Width, Height uint32

	// ChannelCount is the number of channels per pixel.
	ChannelCount uint8

	// Format is the backend texture format.
	Format gputypes.TextureFormat

	// HasTransparency is set when any decoded pixel has alpha below 255.
	HasTransparency bool

	// Writable marks render-target-backed or procedurally regenerated
	// textures, eligible for Resize and WrapInternal.
	Writable bool

	// Internal is the backend object issued by the uploader.
	Internal resource.TextureID
}

// IsDefaultName reports whether name refers to one of the built-in
// default textures.
func IsDefaultName(name string) bool {
	switch name {
	case DefaultName, DefaultDiffuseName, DefaultSpecularName, DefaultNormalName:
		return true
	}
	return false
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package texture provides the reference-counted texture system: named
// textures loaded from image files (PNG, JPEG, TGA, BMP), uploaded through
// the resource.Uploader boundary, and cached by name with auto-release.
//
// Built-in default textures (a checkerboard plus flat diffuse, specular,
// and normal fallbacks) are always resident, never reference-counted, and
// returned by the Default accessors. Acquiring a default by name works but
// logs a warning; use the accessors.
package texture

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package material provides the reference-counted material system.
// Materials are described by YAML files naming a shader, surface
// parameters, and texture maps; acquiring a material acquires its
// textures through the texture system, falling back to the texture
// defaults when a named map cannot be loaded.
package material

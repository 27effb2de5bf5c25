// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package font provides the reference-counted font systems.
//
// Bitmap fonts are described by a YAML atlas descriptor (glyph metrics,
// kerning pairs, atlas texture pages); their pages are acquired through
// the texture system. System fonts are TTF/OTF files parsed with
// go-text/typesetting, cached the same way.
package font

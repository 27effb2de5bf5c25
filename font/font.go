// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package font

import (
	"errors"
	"fmt"

	gtfont "github.com/go-text/typesetting/font"
	"golang.org/x/image/math/fixed"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/resource/cache"
	"github.com/gogpu/resource/texture"
)

// FallbackCodepoint keys the glyph drawn for characters the font has no
// glyph for.
const FallbackCodepoint rune = -1

// Kind distinguishes the two font flavors.
type Kind uint8

const (
	KindBitmap Kind = iota
	KindSystem
)

// Errors.
var (
	// ErrNoFace rejects descriptors without a face name.
	ErrNoFace = errors.New("font: descriptor has no face")

	// ErrNoPages rejects descriptors without atlas pages.
	ErrNoPages = errors.New("font: descriptor has no atlas pages")

	// ErrNoGlyphs rejects descriptors without glyphs.
	ErrNoGlyphs = errors.New("font: descriptor has no glyphs")
)

// Glyph is one bitmap glyph's placement in the atlas and its metrics, in
// pixels.
type Glyph struct {
	Codepoint rune   `yaml:"codepoint"`
	X         uint16 `yaml:"x"`
	Y         uint16 `yaml:"y"`
	Width     uint16 `yaml:"width"`
	Height    uint16 `yaml:"height"`
	XOffset   int16  `yaml:"x_offset"`
	YOffset   int16  `yaml:"y_offset"`
	XAdvance  int16  `yaml:"x_advance"`
	Page      uint8  `yaml:"page"`
}

// KerningPair adjusts the advance between two codepoints.
type KerningPair struct {
	First  rune  `yaml:"first"`
	Second rune  `yaml:"second"`
	Amount int16 `yaml:"amount"`
}

// Descriptor is the on-disk bitmap font description.
type Descriptor struct {
	Version     int           `yaml:"version"`
	Face        string        `yaml:"face"`
	Size        int32         `yaml:"size"`
	LineHeight  int32         `yaml:"line_height"`
	Baseline    int32         `yaml:"baseline"`
	AtlasWidth  uint32        `yaml:"atlas_width"`
	AtlasHeight uint32        `yaml:"atlas_height"`
	Pages       []string      `yaml:"pages"`
	Glyphs      []Glyph       `yaml:"glyphs"`
	Kernings    []KerningPair `yaml:"kernings"`
}

// ParseDescriptor parses and validates a YAML bitmap font descriptor.
func ParseDescriptor(data []byte) (*Descriptor, error) {
	var d Descriptor
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("font: parse descriptor: %w", err)
	}
	if d.Face == "" {
		return nil, ErrNoFace
	}
	if len(d.Pages) == 0 {
		return nil, ErrNoPages
	}
	if len(d.Glyphs) == 0 {
		return nil, ErrNoGlyphs
	}
	return &d, nil
}

// Font is the payload cached per font name.
type Font struct {
	// Kind is bitmap or system.
	Kind Kind

	// Face is the face name from the descriptor or file.
	Face string

	// Size is the rendered size in pixels (bitmap fonts).
	Size int32

	// LineHeight and Baseline are vertical metrics in pixels.
	LineHeight int32
	Baseline   int32

	// AtlasWidth and AtlasHeight are the atlas dimensions in pixels.
	AtlasWidth, AtlasHeight uint32

	// Glyphs maps codepoints to atlas glyphs (bitmap fonts).
	Glyphs map[rune]Glyph

	// Kernings maps codepoint pairs to advance adjustments.
	Kernings map[[2]rune]fixed.Int26_6

	// Pages holds the acquired atlas textures (bitmap fonts).
	Pages []*cache.Slot[texture.Texture]

	// Parsed is the typesetting face (system fonts).
	Parsed *gtfont.Face

	// pageNames remembers the acquired texture names for Unload.
	pageNames []string
}

// Glyph returns the glyph for r, falling back to the descriptor's
// fallback glyph, then to '?'. ok is false when none of those exist.
func (f *Font) Glyph(r rune) (g Glyph, ok bool) {
	if g, ok = f.Glyphs[r]; ok {
		return g, true
	}
	if g, ok = f.Glyphs[FallbackCodepoint]; ok {
		return g, true
	}
	g, ok = f.Glyphs['?']
	return g, ok
}

// Kerning returns the advance adjustment between two codepoints.
func (f *Font) Kerning(first, second rune) fixed.Int26_6 {
	return f.Kernings[[2]rune{first, second}]
}

// MeasureString returns the advance width of s in 26.6 fixed point,
// including kerning. Characters without a glyph measure as the fallback
// glyph.
func (f *Font) MeasureString(s string) fixed.Int26_6 {
	var w fixed.Int26_6
	prev := rune(-1)
	for _, r := range s {
		g, ok := f.Glyph(r)
		if !ok {
			continue
		}
		w += fixed.I(int(g.XAdvance))
		if prev >= 0 {
			w += f.Kerning(prev, r)
		}
		prev = r
	}
	return w
}

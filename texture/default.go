// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package texture

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/resource"
)

// Dimensions of the generated default textures.
const (
	defaultBaseSize = 256
	defaultBaseCell = 16
	defaultFlatSize = 16
)

// defaultBasePixels generates the checkerboard pattern for the default
// texture: white and blue cells, impossible to mistake for real content.
func defaultBasePixels() []byte {
	pix := make([]byte, defaultBaseSize*defaultBaseSize*4)
	for y := 0; y < defaultBaseSize; y++ {
		for x := 0; x < defaultBaseSize; x++ {
			i := (y*defaultBaseSize + x) * 4
			if (x/defaultBaseCell+y/defaultBaseCell)%2 == 0 {
				pix[i+0] = 0xff
				pix[i+1] = 0xff
				pix[i+2] = 0xff
			} else {
				pix[i+2] = 0xff
			}
			pix[i+3] = 0xff
		}
	}
	return pix
}

// flatPixels generates a solid-color square.
func flatPixels(r, g, b, a byte) []byte {
	pix := make([]byte, defaultFlatSize*defaultFlatSize*4)
	for i := 0; i < len(pix); i += 4 {
		pix[i+0] = r
		pix[i+1] = g
		pix[i+2] = b
		pix[i+3] = a
	}
	return pix
}

// defaultSpec describes one built-in texture to generate at system init.
type defaultSpec struct {
	name   string
	size   uint32
	pixels func() []byte
}

var defaultSpecs = []defaultSpec{
	{DefaultName, defaultBaseSize, defaultBasePixels},
	{DefaultDiffuseName, defaultFlatSize, func() []byte { return flatPixels(0xff, 0xff, 0xff, 0xff) }},
	{DefaultSpecularName, defaultFlatSize, func() []byte { return flatPixels(0, 0, 0, 0xff) }},
	// Flat +Z tangent-space normal.
	{DefaultNormalName, defaultFlatSize, func() []byte { return flatPixels(0x80, 0x80, 0xff, 0xff) }},
}

// createDefault uploads one built-in texture.
func createDefault(up resource.Uploader, spec defaultSpec) (Texture, error) {
	id, err := up.CreateTexture(resource.TextureUpload{
		Name:         spec.name,
		Width:        spec.size,
		Height:       spec.size,
		ChannelCount: 4,
		Format:       gputypes.TextureFormatRGBA8Unorm,
		Pixels:       spec.pixels(),
	})
	if err != nil {
		return Texture{}, err
	}
	return Texture{
		Name:         spec.name,
		Width:        spec.size,
		Height:       spec.size,
		ChannelCount: 4,
		Format:       gputypes.TextureFormatRGBA8Unorm,
		Internal:     id,
	}, nil
}

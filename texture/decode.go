// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package texture

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io/fs"

	_ "github.com/ftrvxmtrx/tga" // register TGA decoder
	_ "golang.org/x/image/bmp"   // register BMP decoder
	xdraw "golang.org/x/image/draw"
)

// Extensions lists the image file extensions tried when resolving a
// texture name, in order of preference.
var Extensions = []string{".png", ".tga", ".bmp", ".jpg", ".jpeg"}

// ImageData is decoded pixel data ready for upload: 8-bit RGBA, rows top
// to bottom.
type ImageData struct {
	Width, Height   uint32
	ChannelCount    uint8
	HasTransparency bool
	Pixels          []byte
}

// DecodeImage reads and decodes one image file into RGBA8 pixel data.
// Images larger than maxDim on either axis are scaled down to fit,
// preserving aspect ratio; maxDim <= 0 disables scaling.
func DecodeImage(fsys fs.FS, path string, maxDim int) (*ImageData, error) {
	raw, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("texture: read %s: %w", path, err)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", path, err)
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxDim > 0 && (w > maxDim || h > maxDim) {
		w, h = fitWithin(w, h, maxDim)
	}

	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		xdraw.Draw(rgba, rgba.Bounds(), img, b.Min, xdraw.Src)
	} else {
		xdraw.ApproxBiLinear.Scale(rgba, rgba.Bounds(), img, b, xdraw.Src, nil)
	}

	data := &ImageData{
		Width:        uint32(w),
		Height:       uint32(h),
		ChannelCount: 4,
		Pixels:       rgba.Pix,
	}
	for i := 3; i < len(rgba.Pix); i += 4 {
		if rgba.Pix[i] < 0xff {
			data.HasTransparency = true
			break
		}
	}
	return data, nil
}

// fitWithin scales (w, h) down so the larger side equals maxDim.
func fitWithin(w, h, maxDim int) (int, int) {
	if w >= h {
		h = h * maxDim / w
		w = maxDim
	} else {
		w = w * maxDim / h
		h = maxDim
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// resolve finds the first existing file for name under dir, trying the
// supported extensions. Names that already carry an extension are used
// as-is.
func resolve(fsys fs.FS, dir, name string) (string, error) {
	candidates := make([]string, 0, len(Extensions)+1)
	candidates = append(candidates, dir+"/"+name)
	for _, ext := range Extensions {
		candidates = append(candidates, dir+"/"+name+ext)
	}
	for _, p := range candidates {
		if _, err := fs.Stat(fsys, p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("texture: no image file found for %q under %s", name, dir)
}

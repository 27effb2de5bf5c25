package texture

import (
	"context"
	"errors"
	"image/color"
	"testing"
	"testing/fstest"

	"github.com/gogpu/resource/asset"
)

func TestImageHandlerRequest(t *testing.T) {
	fsys := fstest.MapFS{
		"ui/icon.png": {Data: pngBytes(t, 4, 4, color.NRGBA{R: 0xff, A: 0xff})},
	}
	h := &ImageHandler{FS: fsys}

	a := &asset.Asset{Type: asset.TypeImage, Package: "ui", Name: "icon.png"}
	if err := h.Request(context.Background(), a); err != nil {
		t.Fatalf("Request: %v", err)
	}
	img, ok := a.Data.(*ImageData)
	if !ok {
		t.Fatalf("Data is %T, want *ImageData", a.Data)
	}
	if img.Width != 4 || img.Height != 4 {
		t.Errorf("dimensions = %dx%d, want 4x4", img.Width, img.Height)
	}
	if a.Size != uint64(len(img.Pixels)) {
		t.Errorf("Size = %d, want %d", a.Size, len(img.Pixels))
	}

	h.Release(a)
	if a.Data != nil || a.Size != 0 {
		t.Error("Release did not clear the asset")
	}
}

func TestImageHandlerErrors(t *testing.T) {
	fsys := fstest.MapFS{
		"ui/corrupt.png": {Data: []byte("not an image")},
	}
	h := &ImageHandler{FS: fsys}

	// A file that exists but fails to decode is a parse failure.
	a := &asset.Asset{Type: asset.TypeImage, Package: "ui", Name: "corrupt.png"}
	err := h.Request(context.Background(), a)
	if !errors.Is(err, asset.ErrParse) {
		t.Errorf("Request(corrupt) = %v, want ErrParse", err)
	}

	// A missing file is not.
	a = &asset.Asset{Type: asset.TypeImage, Package: "ui", Name: "absent.png"}
	err = h.Request(context.Background(), a)
	if err == nil {
		t.Fatal("Request of missing file succeeded")
	}
	if errors.Is(err, asset.ErrParse) {
		t.Error("missing file classified as parse failure")
	}
}

package texture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/resource"
)

// pngBytes encodes a solid-color PNG for test filesystems.
func pngBytes(t testing.TB, w, h int, c color.NRGBA) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func testFS(t testing.TB) fstest.MapFS {
	t.Helper()
	return fstest.MapFS{
		"textures/stone.png": {Data: pngBytes(t, 8, 4, color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff})},
		"textures/glass.png": {Data: pngBytes(t, 4, 4, color.NRGBA{R: 0xff, A: 0x40})},
	}
}

func newTestSystem(t *testing.T, opts ...Option) (*System, *resource.NullUploader) {
	t.Helper()
	up := resource.NewNullUploader()
	s, err := NewSystem(up, testFS(t), opts...)
	if err != nil {
		t.Fatalf("NewSystem: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s, up
}

func TestNewSystemValidation(t *testing.T) {
	if _, err := NewSystem(nil, testFS(t)); !errors.Is(err, ErrNilUploader) {
		t.Errorf("NewSystem(nil uploader) = %v, want ErrNilUploader", err)
	}
	if _, err := NewSystem(resource.NewNullUploader(), nil); !errors.Is(err, ErrNilFS) {
		t.Errorf("NewSystem(nil fs) = %v, want ErrNilFS", err)
	}
}

func TestNewSystemUploadsDefaults(t *testing.T) {
	s, up := newTestSystem(t)

	if got := up.LiveTextures(); got != 4 {
		t.Errorf("LiveTextures = %d after init, want 4 defaults", got)
	}

	defaults := map[string]*Texture{
		DefaultName:         &s.Default().Payload,
		DefaultDiffuseName:  &s.DefaultDiffuse().Payload,
		DefaultSpecularName: &s.DefaultSpecular().Payload,
		DefaultNormalName:   &s.DefaultNormal().Payload,
	}
	for name, tex := range defaults {
		if tex.Internal == 0 {
			t.Errorf("%s has no backend texture", name)
		}
		if tex.Name != name {
			t.Errorf("default name = %q, want %q", tex.Name, name)
		}
	}
	if s.Default().Payload.Width != 256 {
		t.Errorf("checkerboard width = %d, want 256", s.Default().Payload.Width)
	}
	if s.DefaultDiffuse().Payload.Width != 16 {
		t.Errorf("flat default width = %d, want 16", s.DefaultDiffuse().Payload.Width)
	}
}

func TestAcquireLoadsImage(t *testing.T) {
	s, up := newTestSystem(t)

	slot, err := s.Acquire("stone", false)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	tex := slot.Payload
	if tex.Width != 8 || tex.Height != 4 {
		t.Errorf("dimensions = %dx%d, want 8x4", tex.Width, tex.Height)
	}
	if tex.ChannelCount != 4 {
		t.Errorf("ChannelCount = %d, want 4", tex.ChannelCount)
	}
	if tex.Format != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("Format = %v, want RGBA8Unorm", tex.Format)
	}
	if tex.HasTransparency {
		t.Error("opaque texture reports transparency")
	}
	if tex.Internal == 0 {
		t.Error("no backend texture created")
	}
	if got := up.LiveTextures(); got != 5 {
		t.Errorf("LiveTextures = %d, want 5 (4 defaults + 1)", got)
	}
}

func TestAcquireDetectsTransparency(t *testing.T) {
	s, _ := newTestSystem(t)

	slot, err := s.Acquire("glass", false)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if !slot.Payload.HasTransparency {
		t.Error("translucent texture does not report transparency")
	}
}

func TestAcquireDefaultNameBypassesCache(t *testing.T) {
	s, up := newTestSystem(t)

	tests := []struct {
		name string
		want *resource.TextureID
	}{
		{DefaultName, &s.Default().Payload.Internal},
		{DefaultDiffuseName, &s.DefaultDiffuse().Payload.Internal},
		{DefaultSpecularName, &s.DefaultSpecular().Payload.Internal},
		{DefaultNormalName, &s.DefaultNormal().Payload.Internal},
	}
	for _, tt := range tests {
		slot, err := s.Acquire(tt.name, true)
		if err != nil {
			t.Fatalf("Acquire(%s): %v", tt.name, err)
		}
		if slot.Payload.Internal != *tt.want {
			t.Errorf("Acquire(%s) did not return the default slot", tt.name)
		}
	}

	// Defaults are never reference counted; releasing them changes
	// nothing.
	s.Release(DefaultName)
	s.Release(DefaultDiffuseName)
	if got := up.LiveTextures(); got != 4 {
		t.Errorf("LiveTextures = %d after default releases, want 4", got)
	}
	if got := s.Stats().Len; got != 0 {
		t.Errorf("cache Len = %d, want 0 (defaults bypass the cache)", got)
	}
}

func TestReleaseAutoReleaseDestroys(t *testing.T) {
	s, up := newTestSystem(t)

	if _, err := s.Acquire("stone", true); err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if got := up.LiveTextures(); got != 5 {
		t.Fatalf("LiveTextures = %d, want 5", got)
	}

	s.Release("stone")
	if got := up.LiveTextures(); got != 4 {
		t.Errorf("LiveTextures = %d after release, want 4", got)
	}
}

func TestAcquireMissingFile(t *testing.T) {
	s, _ := newTestSystem(t)

	if _, err := s.Acquire("no_such_texture", false); err == nil {
		t.Fatal("Acquire of missing file succeeded")
	}
	if got := s.Stats().Len; got != 0 {
		t.Errorf("Len = %d after failed load, want 0", got)
	}
}

func TestAcquireWritable(t *testing.T) {
	s, up := newTestSystem(t)

	slot, err := s.AcquireWritable("rt_shadow", 1024, 1024, gputypes.TextureFormatRGBA8Unorm, false)
	if err != nil {
		t.Fatalf("AcquireWritable: %v", err)
	}
	tex := slot.Payload
	if !tex.Writable {
		t.Error("texture not marked writable")
	}
	if tex.Width != 1024 || tex.Height != 1024 {
		t.Errorf("dimensions = %dx%d, want 1024x1024", tex.Width, tex.Height)
	}
	if tex.Internal == 0 {
		t.Error("no backend texture allocated")
	}
	if got := up.LiveTextures(); got != 5 {
		t.Errorf("LiveTextures = %d, want 5", got)
	}
}

func TestResize(t *testing.T) {
	s, up := newTestSystem(t)

	slot, err := s.AcquireWritable("rt", 256, 256, gputypes.TextureFormatBGRA8Unorm, false)
	if err != nil {
		t.Fatalf("AcquireWritable: %v", err)
	}
	before := slot.Generation()
	oldID := slot.Payload.Internal

	gen, err := s.Resize(slot.Handle(), 512, 512)
	if err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if gen != before.Next() {
		t.Errorf("generation = %d, want %d", gen, before.Next())
	}
	if slot.Payload.Width != 512 || slot.Payload.Height != 512 {
		t.Errorf("dimensions = %dx%d after Resize, want 512x512",
			slot.Payload.Width, slot.Payload.Height)
	}
	if slot.Payload.Internal == oldID {
		t.Error("Resize kept the old backend texture")
	}
	// Old backend object destroyed, new one live.
	if got := up.LiveTextures(); got != 5 {
		t.Errorf("LiveTextures = %d after Resize, want 5", got)
	}
}

func TestResizeNotWritable(t *testing.T) {
	s, _ := newTestSystem(t)

	slot, err := s.Acquire("stone", false)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if _, err := s.Resize(slot.Handle(), 64, 64); !errors.Is(err, ErrNotWritable) {
		t.Errorf("Resize on file-backed texture = %v, want ErrNotWritable", err)
	}
	if slot.Payload.Width != 8 {
		t.Error("failed Resize changed the texture")
	}
}

func TestSetInternal(t *testing.T) {
	s, up := newTestSystem(t)

	slot, err := s.AcquireWritable("swapchain", 800, 600, gputypes.TextureFormatBGRA8Unorm, false)
	if err != nil {
		t.Fatalf("AcquireWritable: %v", err)
	}
	before := slot.Generation()

	// Simulate an externally created backend object.
	external, err := up.CreateTexture(resource.TextureUpload{Name: "external", Width: 1280, Height: 720})
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}

	gen, err := s.SetInternal(slot.Handle(), external, 1280, 720)
	if err != nil {
		t.Fatalf("SetInternal: %v", err)
	}
	if gen != before.Next() {
		t.Errorf("generation = %d, want %d", gen, before.Next())
	}
	if slot.Payload.Internal != external {
		t.Error("SetInternal did not adopt the external texture")
	}
	if slot.Payload.Width != 1280 || slot.Payload.Height != 720 {
		t.Errorf("dimensions = %dx%d, want 1280x720", slot.Payload.Width, slot.Payload.Height)
	}
}

func TestSlotByHandle(t *testing.T) {
	s, _ := newTestSystem(t)

	slot, err := s.Acquire("stone", false)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	got, err := s.Slot(slot.Handle())
	if err != nil {
		t.Fatalf("Slot: %v", err)
	}
	if got != slot {
		t.Error("Slot(h) returned a different slot")
	}
	if _, err := s.Slot(resource.InvalidHandle); err == nil {
		t.Error("Slot(invalid) succeeded")
	}
}

func TestCloseDestroysEverything(t *testing.T) {
	up := resource.NewNullUploader()
	s, err := NewSystem(up, testFS(t))
	if err != nil {
		t.Fatalf("NewSystem: %v", err)
	}
	if _, err := s.Acquire("stone", false); err != nil {
		t.Fatalf("Acquire: %v", err)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if got := up.LiveTextures(); got != 0 {
		t.Errorf("LiveTextures = %d after Close, want 0", got)
	}
}

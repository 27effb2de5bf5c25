package material

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/gogpu/resource"
	"github.com/gogpu/resource/texture"
)

func pngBytes(t testing.TB, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 0x7f, G: 0x7f, B: 0x7f, A: 0xff})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func newTestSystems(t *testing.T) (*System, *texture.System, *resource.NullUploader) {
	t.Helper()
	fsys := fstest.MapFS{
		"textures/crate_diffuse.png": {Data: pngBytes(t, 4, 4)},
		"materials/crate.yaml": {Data: []byte(`
name: crate
shader: world.pbr
diffuse_color: [0.9, 0.9, 0.9, 1.0]
shininess: 16
diffuse_map: crate_diffuse
`)},
		"materials/plain.yml": {Data: []byte("name: plain\n")},
		"materials/broken_map.yaml": {Data: []byte(`
name: broken_map
diffuse_map: does_not_exist
`)},
		"materials/nameless.yaml": {Data: []byte("shader: x\n")},
	}

	up := resource.NewNullUploader()
	ts, err := texture.NewSystem(up, fsys)
	if err != nil {
		t.Fatalf("texture.NewSystem: %v", err)
	}
	t.Cleanup(func() { _ = ts.Close() })

	ms, err := NewSystem(ts, fsys)
	if err != nil {
		t.Fatalf("NewSystem: %v", err)
	}
	t.Cleanup(func() { _ = ms.Close() })
	return ms, ts, up
}

func TestNewSystemValidation(t *testing.T) {
	fsys := fstest.MapFS{}
	up := resource.NewNullUploader()
	ts, err := texture.NewSystem(up, fsys)
	if err != nil {
		t.Fatalf("texture.NewSystem: %v", err)
	}
	defer ts.Close()

	if _, err := NewSystem(nil, fsys); !errors.Is(err, ErrNilTextures) {
		t.Errorf("NewSystem(nil textures) = %v, want ErrNilTextures", err)
	}
	if _, err := NewSystem(ts, nil); !errors.Is(err, ErrNilFS) {
		t.Errorf("NewSystem(nil fs) = %v, want ErrNilFS", err)
	}
}

func TestAcquireLoadsMaterial(t *testing.T) {
	ms, ts, _ := newTestSystems(t)

	slot, err := ms.Acquire("crate", false)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	m := slot.Payload
	if m.Name != "crate" {
		t.Errorf("Name = %q, want crate", m.Name)
	}
	if m.ShaderName != "world.pbr" {
		t.Errorf("ShaderName = %q, want world.pbr", m.ShaderName)
	}
	if m.Shininess != 16 {
		t.Errorf("Shininess = %v, want 16", m.Shininess)
	}
	if m.Diffuse == nil || !m.Diffuse.Occupied() {
		t.Error("diffuse map was not acquired from the texture cache")
	}
	// Unnamed maps fall back to defaults.
	if m.Specular != ts.DefaultSpecular() {
		t.Error("specular map is not the default")
	}
	if m.Normal != ts.DefaultNormal() {
		t.Error("normal map is not the default")
	}
}

func TestAcquireFallsBackOnMissingMap(t *testing.T) {
	ms, ts, _ := newTestSystems(t)

	slot, err := ms.Acquire("broken_map", false)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	// The named diffuse map does not exist; the material still loads with
	// the default map in its place.
	if slot.Payload.Diffuse != ts.DefaultDiffuse() {
		t.Error("missing diffuse map did not fall back to the default")
	}
}

func TestAcquireInvalidConfig(t *testing.T) {
	ms, _, _ := newTestSystems(t)

	if _, err := ms.Acquire("nameless", false); err == nil {
		t.Fatal("Acquire of nameless material succeeded")
	}
	if _, err := ms.Acquire("absent", false); err == nil {
		t.Fatal("Acquire of missing material file succeeded")
	}
}

func TestReleaseUnloadsTextureMaps(t *testing.T) {
	ms, ts, _ := newTestSystems(t)

	if _, err := ms.Acquire("crate", true); err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if got := ts.Stats().Len; got != 1 {
		t.Fatalf("texture cache Len = %d after material load, want 1", got)
	}

	ms.Release("crate")
	// The material's auto-released map goes with it.
	if got := ts.Stats().Len; got != 0 {
		t.Errorf("texture cache Len = %d after material release, want 0", got)
	}
	if got := ms.Stats().Len; got != 0 {
		t.Errorf("material cache Len = %d, want 0", got)
	}
}

func TestDefaultMaterial(t *testing.T) {
	ms, ts, _ := newTestSystems(t)

	def := ms.Default()
	if def.Occupied() {
		t.Error("default material occupies a cache slot")
	}
	m := def.Payload
	if m.Name != DefaultName {
		t.Errorf("Name = %q, want %q", m.Name, DefaultName)
	}
	if m.Diffuse != ts.DefaultDiffuse() || m.Specular != ts.DefaultSpecular() || m.Normal != ts.DefaultNormal() {
		t.Error("default material does not use the default texture maps")
	}

	// Acquiring by the default name returns the default, uncounted.
	slot, err := ms.Acquire(DefaultName, true)
	if err != nil {
		t.Fatalf("Acquire(default): %v", err)
	}
	if slot != def {
		t.Error("Acquire(default) did not return the default slot")
	}
	ms.Release(DefaultName)
	if got := ms.Stats().Len; got != 0 {
		t.Errorf("cache Len = %d, want 0", got)
	}
}

func TestYmlExtensionFallback(t *testing.T) {
	ms, _, _ := newTestSystems(t)

	slot, err := ms.Acquire("plain", false)
	if err != nil {
		t.Fatalf("Acquire(.yml material): %v", err)
	}
	if slot.Payload.ShaderName != "builtin.material" {
		t.Errorf("ShaderName = %q, want builtin.material", slot.Payload.ShaderName)
	}
}

func TestCloseReleasesMaps(t *testing.T) {
	fsys := fstest.MapFS{
		"textures/m.png":     {Data: pngBytes(t, 2, 2)},
		"materials/one.yaml": {Data: []byte("name: one\ndiffuse_map: m\n")},
	}
	up := resource.NewNullUploader()
	ts, err := texture.NewSystem(up, fsys)
	if err != nil {
		t.Fatalf("texture.NewSystem: %v", err)
	}
	ms, err := NewSystem(ts, fsys)
	if err != nil {
		t.Fatalf("NewSystem: %v", err)
	}

	if _, err := ms.Acquire("one", false); err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if err := ms.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if got := ts.Stats().Len; got != 0 {
		t.Errorf("texture cache Len = %d after material Close, want 0", got)
	}
	if err := ts.Close(); err != nil {
		t.Fatalf("texture Close: %v", err)
	}
	if got := up.LiveTextures(); got != 0 {
		t.Errorf("LiveTextures = %d after shutdown, want 0", got)
	}
}

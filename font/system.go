// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package font

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"

	gtfont "github.com/go-text/typesetting/font"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/resource"
	"github.com/gogpu/resource/cache"
	"github.com/gogpu/resource/texture"
)

// Errors.
var (
	// ErrNilTextures is returned by NewSystem without a texture system.
	ErrNilTextures = errors.New("font: texture system must not be nil")

	// ErrNilFS is returned by NewSystem without a filesystem.
	ErrNilFS = errors.New("font: filesystem must not be nil")
)

// DefaultDir is the directory font files are resolved under.
const DefaultDir = "fonts"

// systemExtensions lists the file extensions tried for system fonts.
var systemExtensions = []string{".ttf", ".otf"}

// Option configures a System during creation.
type Option func(*options)

type options struct {
	capacity int
	dir      string
}

func defaultOptions() options {
	return options{capacity: cache.DefaultCapacity, dir: DefaultDir}
}

// WithCapacity sets the fixed slot count of each of the two font caches.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacity = n
		}
	}
}

// WithDir sets the directory font files are resolved under.
func WithDir(dir string) Option {
	return func(o *options) {
		if dir != "" {
			o.dir = dir
		}
	}
}

// System caches bitmap and system fonts, each kind in its own
// reference-counted cache.
type System struct {
	fsys     fs.FS
	dir      string
	textures *texture.System
	bitmaps  *cache.RefCache[Font]
	systems  *cache.RefCache[Font]
}

// NewSystem creates the font system.
func NewSystem(textures *texture.System, fsys fs.FS, opts ...Option) (*System, error) {
	if textures == nil {
		return nil, ErrNilTextures
	}
	if fsys == nil {
		return nil, ErrNilFS
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	s := &System{fsys: fsys, dir: o.dir, textures: textures}

	bc, err := cache.New[Font]("bitmap_font", &bitmapLoader{s: s}, cache.WithCapacity(o.capacity))
	if err != nil {
		return nil, err
	}
	sc, err := cache.New[Font]("system_font", &systemLoader{s: s}, cache.WithCapacity(o.capacity))
	if err != nil {
		return nil, err
	}
	s.bitmaps = bc
	s.systems = sc

	resource.Logger().Info("font system created", "capacity", o.capacity, "dir", o.dir)
	return s, nil
}

// AcquireBitmap returns the bitmap font for name, loading its descriptor
// and atlas pages on first use.
func (s *System) AcquireBitmap(name string, autoRelease bool) (*cache.Slot[Font], error) {
	return s.bitmaps.Acquire(name, autoRelease)
}

// AcquireSystem returns the system font for name, parsing its TTF/OTF
// data on first use.
func (s *System) AcquireSystem(name string, autoRelease bool) (*cache.Slot[Font], error) {
	return s.systems.Acquire(name, autoRelease)
}

// ReleaseBitmap drops one reference to a bitmap font.
func (s *System) ReleaseBitmap(name string) { s.bitmaps.Release(name) }

// ReleaseSystem drops one reference to a system font.
func (s *System) ReleaseSystem(name string) { s.systems.Release(name) }

// BitmapStats returns the bitmap font cache statistics.
func (s *System) BitmapStats() cache.Stats { return s.bitmaps.Stats() }

// SystemStats returns the system font cache statistics.
func (s *System) SystemStats() cache.Stats { return s.systems.Stats() }

// Close forcibly unloads every cached font of both kinds.
func (s *System) Close() error {
	err := errors.Join(s.bitmaps.ReleaseAll(), s.systems.ReleaseAll())
	resource.Logger().Info("font system shut down")
	return err
}

// bitmapLoader loads bitmap fonts from YAML atlas descriptors.
type bitmapLoader struct {
	s *System
}

// Load implements cache.Loader.
func (l *bitmapLoader) Load(name string, dst *Font) error {
	s := l.s
	data, err := fs.ReadFile(s.fsys, s.dir+"/"+name+".yaml")
	if err != nil {
		return err
	}
	d, err := ParseDescriptor(data)
	if err != nil {
		return err
	}

	f := Font{
		Kind:        KindBitmap,
		Face:        d.Face,
		Size:        d.Size,
		LineHeight:  d.LineHeight,
		Baseline:    d.Baseline,
		AtlasWidth:  d.AtlasWidth,
		AtlasHeight: d.AtlasHeight,
		Glyphs:      make(map[rune]Glyph, len(d.Glyphs)),
		Kernings:    make(map[[2]rune]fixed.Int26_6, len(d.Kernings)),
	}
	for _, g := range d.Glyphs {
		f.Glyphs[g.Codepoint] = g
	}
	for _, k := range d.Kernings {
		f.Kernings[[2]rune{k.First, k.Second}] = fixed.I(int(k.Amount))
	}

	for _, page := range d.Pages {
		slot, err := s.textures.Acquire(page, true)
		if err != nil {
			// Atlas pages have no usable fallback; undo and fail.
			for _, acquired := range f.pageNames {
				s.textures.Release(acquired)
			}
			return fmt.Errorf("font: atlas page %q: %w", page, err)
		}
		f.Pages = append(f.Pages, slot)
		f.pageNames = append(f.pageNames, page)
	}

	*dst = f
	return nil
}

// Unload implements cache.Loader.
func (l *bitmapLoader) Unload(_ string, f *Font) error {
	for _, page := range f.pageNames {
		l.s.textures.Release(page)
	}
	f.Pages = nil
	f.pageNames = nil
	return nil
}

// systemLoader loads system fonts by parsing TTF/OTF data.
type systemLoader struct {
	s *System
}

// Load implements cache.Loader.
func (l *systemLoader) Load(name string, dst *Font) error {
	s := l.s
	var data []byte
	var err error
	for _, ext := range systemExtensions {
		data, err = fs.ReadFile(s.fsys, s.dir+"/"+name+ext)
		if err == nil {
			break
		}
	}
	if err != nil {
		return err
	}

	face, err := gtfont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("font: parse %s: %w", name, err)
	}
	*dst = Font{
		Kind:   KindSystem,
		Face:   name,
		Parsed: face,
	}
	return nil
}

// Unload implements cache.Loader.
func (l *systemLoader) Unload(_ string, f *Font) error {
	f.Parsed = nil
	return nil
}

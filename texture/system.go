// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package texture

import (
	"errors"
	"io/fs"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/resource"
	"github.com/gogpu/resource/cache"
)

// Errors.
var (
	// ErrNilUploader is returned by NewSystem without an uploader.
	ErrNilUploader = errors.New("texture: uploader must not be nil")

	// ErrNilFS is returned by NewSystem without a filesystem.
	ErrNilFS = errors.New("texture: filesystem must not be nil")

	// ErrNotWritable rejects Resize and SetInternal on textures that
	// were not created writable.
	ErrNotWritable = errors.New("texture: texture is not writable")
)

// DefaultDir is the directory texture files are resolved under.
const DefaultDir = "textures"

// DefaultMaxDimension caps decoded image dimensions; larger images are
// scaled down on load.
const DefaultMaxDimension = 4096

// Option configures a System during creation.
type Option func(*options)

type options struct {
	capacity int
	dir      string
	maxDim   int
}

func defaultOptions() options {
	return options{
		capacity: cache.DefaultCapacity,
		dir:      DefaultDir,
		maxDim:   DefaultMaxDimension,
	}
}

// WithCapacity sets the fixed number of texture slots.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacity = n
		}
	}
}

// WithDir sets the directory texture files are resolved under.
func WithDir(dir string) Option {
	return func(o *options) {
		if dir != "" {
			o.dir = dir
		}
	}
}

// WithMaxDimension caps decoded image dimensions. Zero disables scaling.
func WithMaxDimension(n int) Option {
	return func(o *options) { o.maxDim = n }
}

// System is the reference-counted texture cache plus its always-resident
// defaults. Create one per engine instance and share it by reference.
type System struct {
	up    resource.Uploader
	fsys  fs.FS
	dir   string
	maxim int
	cache *cache.RefCache[Texture]

	// pendingWritable routes writable-texture creation through the
	// loader, keyed by folded name semantics of the cache key.
	mu              sync.Mutex
	pendingWritable map[string]writableDesc

	defBase     *cache.Slot[Texture]
	defDiffuse  *cache.Slot[Texture]
	defSpecular *cache.Slot[Texture]
	defNormal   *cache.Slot[Texture]
}

// writableDesc describes a writable texture being created.
type writableDesc struct {
	width, height uint32
	format        gputypes.TextureFormat
}

// NewSystem creates the texture system, generating and uploading the
// built-in default textures.
func NewSystem(up resource.Uploader, fsys fs.FS, opts ...Option) (*System, error) {
	if up == nil {
		return nil, ErrNilUploader
	}
	if fsys == nil {
		return nil, ErrNilFS
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	s := &System{
		up:              up,
		fsys:            fsys,
		dir:             o.dir,
		maxim:           o.maxDim,
		pendingWritable: make(map[string]writableDesc),
	}

	c, err := cache.New[Texture]("texture", &loader{s: s}, cache.WithCapacity(o.capacity))
	if err != nil {
		return nil, err
	}
	s.cache = c

	created := make([]Texture, 0, len(defaultSpecs))
	for _, spec := range defaultSpecs {
		t, err := createDefault(up, spec)
		if err != nil {
			for _, prev := range created {
				up.DestroyTexture(prev.Internal)
			}
			return nil, err
		}
		created = append(created, t)
	}
	s.defBase = cache.Detached(created[0])
	s.defDiffuse = cache.Detached(created[1])
	s.defSpecular = cache.Detached(created[2])
	s.defNormal = cache.Detached(created[3])

	resource.Logger().Info("texture system created",
		"capacity", o.capacity, "dir", o.dir)
	return s, nil
}

// Acquire returns the texture for name, loading and uploading it on first
// use. Acquiring one of the default texture names returns the default
// directly without touching reference counts; callers should use the
// Default accessors instead, so this path logs a warning.
func (s *System) Acquire(name string, autoRelease bool) (*cache.Slot[Texture], error) {
	if IsDefaultName(name) {
		resource.Logger().Warn("acquire called for a default texture, use the Default accessors",
			"name", name)
		return s.defaultByName(name), nil
	}
	return s.cache.Acquire(name, autoRelease)
}

// AcquireWritable creates (or references) a writable texture with no
// file-backed pixel data. The backend allocates it empty; Resize and
// SetInternal may be used on it later.
func (s *System) AcquireWritable(name string, width, height uint32, format gputypes.TextureFormat, autoRelease bool) (*cache.Slot[Texture], error) {
	s.mu.Lock()
	s.pendingWritable[name] = writableDesc{width: width, height: height, format: format}
	s.mu.Unlock()

	slot, err := s.cache.Acquire(name, autoRelease)

	s.mu.Lock()
	delete(s.pendingWritable, name)
	s.mu.Unlock()
	return slot, err
}

// Release drops one reference to a named texture. Releasing a default
// texture name is a no-op.
func (s *System) Release(name string) {
	if IsDefaultName(name) {
		return
	}
	s.cache.Release(name)
}

// Default returns the checkerboard fallback texture.
func (s *System) Default() *cache.Slot[Texture] { return s.defBase }

// DefaultDiffuse returns the flat white diffuse fallback.
func (s *System) DefaultDiffuse() *cache.Slot[Texture] { return s.defDiffuse }

// DefaultSpecular returns the flat black specular fallback.
func (s *System) DefaultSpecular() *cache.Slot[Texture] { return s.defSpecular }

// DefaultNormal returns the flat +Z normal fallback.
func (s *System) DefaultNormal() *cache.Slot[Texture] { return s.defNormal }

func (s *System) defaultByName(name string) *cache.Slot[Texture] {
	switch name {
	case DefaultDiffuseName:
		return s.defDiffuse
	case DefaultSpecularName:
		return s.defSpecular
	case DefaultNormalName:
		return s.defNormal
	default:
		return s.defBase
	}
}

// Resize recreates a writable texture's backend object at new dimensions
// and bumps the slot's generation. Reference counts are unaffected.
func (s *System) Resize(h resource.Handle, width, height uint32) (resource.Generation, error) {
	return s.cache.Swap(h, func(t *Texture) error {
		if !t.Writable {
			return ErrNotWritable
		}
		id, err := s.up.CreateTexture(resource.TextureUpload{
			Name:         t.Name,
			Width:        width,
			Height:       height,
			ChannelCount: t.ChannelCount,
			Format:       t.Format,
			Writable:     true,
		})
		if err != nil {
			return err
		}
		s.up.DestroyTexture(t.Internal)
		t.Internal = id
		t.Width = width
		t.Height = height
		return nil
	})
}

// SetInternal swaps a writable texture's backend object for one created
// elsewhere (a render target, a swapchain image) and bumps the slot's
// generation. The previous backend object is destroyed.
func (s *System) SetInternal(h resource.Handle, id resource.TextureID, width, height uint32) (resource.Generation, error) {
	return s.cache.Swap(h, func(t *Texture) error {
		if !t.Writable {
			return ErrNotWritable
		}
		s.up.DestroyTexture(t.Internal)
		t.Internal = id
		t.Width = width
		t.Height = height
		return nil
	})
}

// Slot returns the occupied texture slot at h.
func (s *System) Slot(h resource.Handle) (*cache.Slot[Texture], error) {
	return s.cache.Slot(h)
}

// Stats returns the texture cache statistics.
func (s *System) Stats() cache.Stats { return s.cache.Stats() }

// Close forcibly unloads every cached texture and destroys the defaults.
func (s *System) Close() error {
	err := s.cache.ReleaseAll()
	for _, d := range []*cache.Slot[Texture]{s.defBase, s.defDiffuse, s.defSpecular, s.defNormal} {
		if d != nil {
			s.up.DestroyTexture(d.Payload.Internal)
			d.Payload.Internal = 0
		}
	}
	resource.Logger().Info("texture system shut down")
	return err
}

// loader loads textures from image files, or allocates writable textures.
type loader struct {
	s *System
}

// Load implements cache.Loader.
func (l *loader) Load(name string, dst *Texture) error {
	s := l.s

	s.mu.Lock()
	desc, writable := s.pendingWritable[name]
	s.mu.Unlock()

	if writable {
		id, err := s.up.CreateTexture(resource.TextureUpload{
			Name:         name,
			Width:        desc.width,
			Height:       desc.height,
			ChannelCount: 4,
			Format:       desc.format,
			Writable:     true,
		})
		if err != nil {
			return err
		}
		*dst = Texture{
			Name:         name,
			Width:        desc.width,
			Height:       desc.height,
			ChannelCount: 4,
			Format:       desc.format,
			Writable:     true,
			Internal:     id,
		}
		return nil
	}

	path, err := resolve(s.fsys, s.dir, name)
	if err != nil {
		return err
	}
	img, err := DecodeImage(s.fsys, path, s.maxim)
	if err != nil {
		return err
	}
	id, err := s.up.CreateTexture(resource.TextureUpload{
		Name:         name,
		Width:        img.Width,
		Height:       img.Height,
		ChannelCount: img.ChannelCount,
		Format:       gputypes.TextureFormatRGBA8Unorm,
		Pixels:       img.Pixels,
	})
	if err != nil {
		return err
	}
	*dst = Texture{
		Name:            name,
		Width:           img.Width,
		Height:          img.Height,
		ChannelCount:    img.ChannelCount,
		Format:          gputypes.TextureFormatRGBA8Unorm,
		HasTransparency: img.HasTransparency,
		Internal:        id,
	}
	return nil
}

// Unload implements cache.Loader.
func (l *loader) Unload(_ string, t *Texture) error {
	l.s.up.DestroyTexture(t.Internal)
	t.Internal = 0
	return nil
}

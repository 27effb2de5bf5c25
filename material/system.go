// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package material

import (
	"errors"
	"io/fs"

	"github.com/gogpu/resource"
	"github.com/gogpu/resource/cache"
	"github.com/gogpu/resource/texture"
)

// Errors.
var (
	// ErrNilTextures is returned by NewSystem without a texture system.
	ErrNilTextures = errors.New("material: texture system must not be nil")

	// ErrNilFS is returned by NewSystem without a filesystem.
	ErrNilFS = errors.New("material: filesystem must not be nil")
)

// DefaultDir is the directory material files are resolved under.
const DefaultDir = "materials"

// Extensions lists the file extensions tried when resolving a material
// name.
var Extensions = []string{".yaml", ".yml"}

// Option configures a System during creation.
type Option func(*options)

type options struct {
	capacity int
	dir      string
}

func defaultOptions() options {
	return options{capacity: cache.DefaultCapacity, dir: DefaultDir}
}

// WithCapacity sets the fixed number of material slots.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacity = n
		}
	}
}

// WithDir sets the directory material files are resolved under.
func WithDir(dir string) Option {
	return func(o *options) {
		if dir != "" {
			o.dir = dir
		}
	}
}

// System is the reference-counted material cache plus the built-in
// default material.
type System struct {
	fsys     fs.FS
	dir      string
	textures *texture.System
	cache    *cache.RefCache[Material]
	def      *cache.Slot[Material]
}

// NewSystem creates the material system. The default material is built
// from the texture system's default maps.
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

	s := &System{
		fsys:     fsys,
		dir:      o.dir,
		textures: textures,
	}
	c, err := cache.New[Material]("material", &loader{s: s}, cache.WithCapacity(o.capacity))
	if err != nil {
		return nil, err
	}
	s.cache = c

	s.def = cache.Detached(Material{
		Name:         DefaultName,
		ShaderName:   "builtin.material",
		DiffuseColor: [4]float32{1, 1, 1, 1},
		Shininess:    8,
		Diffuse:      textures.DefaultDiffuse(),
		Specular:     textures.DefaultSpecular(),
		Normal:       textures.DefaultNormal(),
	})

	resource.Logger().Info("material system created", "capacity", o.capacity, "dir", o.dir)
	return s, nil
}

// Acquire returns the material for name, loading it and its texture maps
// on first use. Acquiring the default material's name returns the default
// directly with a warning; use Default instead.
func (s *System) Acquire(name string, autoRelease bool) (*cache.Slot[Material], error) {
	if name == DefaultName {
		resource.Logger().Warn("acquire called for the default material, use Default", "name", name)
		return s.def, nil
	}
	return s.cache.Acquire(name, autoRelease)
}

// Release drops one reference to a named material. Releasing the default
// material's name is a no-op.
func (s *System) Release(name string) {
	if name == DefaultName {
		return
	}
	s.cache.Release(name)
}

// Default returns the built-in fallback material.
func (s *System) Default() *cache.Slot[Material] { return s.def }

// Slot returns the occupied material slot at h.
func (s *System) Slot(h resource.Handle) (*cache.Slot[Material], error) {
	return s.cache.Slot(h)
}

// Stats returns the material cache statistics.
func (s *System) Stats() cache.Stats { return s.cache.Stats() }

// Close forcibly unloads every cached material.
func (s *System) Close() error {
	err := s.cache.ReleaseAll()
	resource.Logger().Info("material system shut down")
	return err
}

// loader loads materials from YAML files and resolves their texture maps.
type loader struct {
	s *System
}

// Load implements cache.Loader.
func (l *loader) Load(name string, dst *Material) error {
	s := l.s
	data, err := readConfig(s.fsys, s.dir, name)
	if err != nil {
		return err
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return err
	}

	m := Material{
		Name:         name,
		ShaderName:   cfg.Shader,
		DiffuseColor: cfg.DiffuseColor,
		Shininess:    cfg.Shininess,
	}
	m.Diffuse, m.diffuseName = s.acquireMap(name, cfg.DiffuseMap, s.textures.DefaultDiffuse())
	m.Specular, m.specularName = s.acquireMap(name, cfg.SpecularMap, s.textures.DefaultSpecular())
	m.Normal, m.normalName = s.acquireMap(name, cfg.NormalMap, s.textures.DefaultNormal())
	*dst = m
	return nil
}

// acquireMap acquires one texture map, falling back to a default when the
// map is unnamed or fails to load. Returns the acquired name ("" when the
// fallback is used) so Unload can balance the acquire.
func (s *System) acquireMap(owner, mapName string, fallback *cache.Slot[texture.Texture]) (*cache.Slot[texture.Texture], string) {
	if mapName == "" {
		return fallback, ""
	}
	slot, err := s.textures.Acquire(mapName, true)
	if err != nil {
		resource.Logger().Warn("material texture map failed to load, using default",
			"material", owner, "map", mapName, "err", err)
		return fallback, ""
	}
	return slot, mapName
}

// Unload implements cache.Loader.
func (l *loader) Unload(_ string, m *Material) error {
	for _, mapName := range []string{m.diffuseName, m.specularName, m.normalName} {
		if mapName != "" {
			l.s.textures.Release(mapName)
		}
	}
	m.Diffuse, m.Specular, m.Normal = nil, nil, nil
	return nil
}

// readConfig reads the material file for name, trying the supported
// extensions.
func readConfig(fsys fs.FS, dir, name string) ([]byte, error) {
	var firstErr error
	for _, ext := range Extensions {
		data, err := fs.ReadFile(fsys, dir+"/"+name+ext)
		if err == nil {
			return data, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, firstErr
}

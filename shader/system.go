// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shader

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/gogpu/naga"

	"github.com/gogpu/resource"
	"github.com/gogpu/resource/cache"
)

// Errors.
var (
	// ErrNilUploader is returned by NewSystem without an uploader.
	ErrNilUploader = errors.New("shader: uploader must not be nil")

	// ErrNilFS is returned by NewSystem without a filesystem.
	ErrNilFS = errors.New("shader: filesystem must not be nil")
)

// DefaultDir is the directory shader files are resolved under.
const DefaultDir = "shaders"

// Option configures a System during creation.
type Option func(*options)

type options struct {
	capacity int
	dir      string
}

func defaultOptions() options {
	return options{capacity: cache.DefaultCapacity, dir: DefaultDir}
}

// WithCapacity sets the fixed number of shader slots.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacity = n
		}
	}
}

// WithDir sets the directory shader files are resolved under.
func WithDir(dir string) Option {
	return func(o *options) {
		if dir != "" {
			o.dir = dir
		}
	}
}

// System is the reference-counted shader cache.
type System struct {
	up    resource.Uploader
	fsys  fs.FS
	dir   string
	cache *cache.RefCache[Shader]
}

// NewSystem creates the shader system.
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

	s := &System{up: up, fsys: fsys, dir: o.dir}
	c, err := cache.New[Shader]("shader", &loader{s: s}, cache.WithCapacity(o.capacity))
	if err != nil {
		return nil, err
	}
	s.cache = c

	resource.Logger().Info("shader system created", "capacity", o.capacity, "dir", o.dir)
	return s, nil
}

// Acquire returns the shader for name, compiling and uploading its stages
// on first use.
func (s *System) Acquire(name string, autoRelease bool) (*cache.Slot[Shader], error) {
	return s.cache.Acquire(name, autoRelease)
}

// Release drops one reference to a named shader.
func (s *System) Release(name string) {
	s.cache.Release(name)
}

// Slot returns the occupied shader slot at h.
func (s *System) Slot(h resource.Handle) (*cache.Slot[Shader], error) {
	return s.cache.Slot(h)
}

// Stats returns the shader cache statistics.
func (s *System) Stats() cache.Stats { return s.cache.Stats() }

// Close forcibly unloads every cached shader.
func (s *System) Close() error {
	err := s.cache.ReleaseAll()
	resource.Logger().Info("shader system shut down")
	return err
}

// CompileWGSL compiles WGSL source to SPIR-V words.
func CompileWGSL(source string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("shader: compile: %w", err)
	}

	// SPIR-V is little-endian 32-bit words.
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}

// loader loads shader configs, compiles their stages, and creates the
// backend modules.
type loader struct {
	s *System
}

// Load implements cache.Loader.
func (l *loader) Load(name string, dst *Shader) error {
	s := l.s

	data, err := fs.ReadFile(s.fsys, s.dir+"/"+name+".yaml")
	if err != nil {
		return err
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return err
	}

	sh := Shader{
		Name:       name,
		Renderpass: cfg.Renderpass,
		Attributes: cfg.Attributes,
		Uniforms:   cfg.Uniforms,
	}
	for _, st := range cfg.Stages {
		stage, err := parseStage(st.Stage)
		if err != nil {
			return err
		}
		src, err := fs.ReadFile(s.fsys, s.dir+"/"+st.File)
		if err != nil {
			l.destroyStages(&sh)
			return err
		}
		words, err := CompileWGSL(string(src))
		if err != nil {
			l.destroyStages(&sh)
			return err
		}
		module, err := s.up.CreateShaderModule(name+"."+stage.String(), words)
		if err != nil {
			l.destroyStages(&sh)
			return err
		}
		sh.Stages = append(sh.Stages, StageModule{
			Stage:  stage,
			Source: string(src),
			SPIRV:  words,
			Module: module,
		})
	}
	*dst = sh
	return nil
}

// destroyStages releases modules created before a failed load.
func (l *loader) destroyStages(sh *Shader) {
	for _, st := range sh.Stages {
		l.s.up.DestroyShaderModule(st.Module)
	}
	sh.Stages = nil
}

// Unload implements cache.Loader.
func (l *loader) Unload(_ string, sh *Shader) error {
	for i := range sh.Stages {
		l.s.up.DestroyShaderModule(sh.Stages[i].Module)
		sh.Stages[i].Module = 0
	}
	return nil
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package resource

import (
	"sync"
	"sync/atomic"

	"github.com/gogpu/gputypes"
)

// TextureID identifies a texture object owned by the renderer backend.
// The zero value means "no texture".
type TextureID uint64

// ShaderModuleID identifies a compiled shader module owned by the renderer
// backend. The zero value means "no module".
type ShaderModuleID uint64

// TextureUpload describes pixel data handed to the backend for upload.
type TextureUpload struct {
	// Name is the resource name, used by backends for debug labels.
	Name string

	// Width and Height are the texture dimensions in pixels.
	Width, Height uint32

	// ChannelCount is the number of channels per pixel (4 for RGBA).
	ChannelCount uint8

	// Format is the backend texture format.
	Format gputypes.TextureFormat

	// Writable marks render-target-backed or procedurally regenerated
	// textures whose contents the backend may replace.
	Writable bool

	// Pixels holds Width*Height*ChannelCount bytes, rows top to bottom.
	// Nil for writable textures that the backend allocates empty.
	Pixels []byte
}

// Uploader is the boundary to the renderer backend. Texture and shader
// payloads are opaque to the caches; only creation and destruction of the
// backing GPU objects cross this interface.
//
// Implementations must be safe for concurrent use: asset handlers may
// upload from worker goroutines.
type Uploader interface {
	// CreateTexture uploads pixel data and returns a backend texture ID.
	CreateTexture(up TextureUpload) (TextureID, error)

	// DestroyTexture releases a backend texture. Destroying the zero ID
	// is a no-op.
	DestroyTexture(id TextureID)

	// CreateShaderModule creates a shader module from SPIR-V words.
	CreateShaderModule(label string, spirv []uint32) (ShaderModuleID, error)

	// DestroyShaderModule releases a shader module. Destroying the zero
	// ID is a no-op.
	DestroyShaderModule(id ShaderModuleID)
}

// NullUploader is an Uploader that performs no GPU work. It issues
// sequential IDs and tracks which are alive, which makes it useful both
// headless (servers, tools) and in tests.
type NullUploader struct {
	next atomic.Uint64

	mu       sync.Mutex
	textures map[TextureID]TextureUpload
	shaders  map[ShaderModuleID]string
}

// NewNullUploader creates an uploader that only tracks IDs.
func NewNullUploader() *NullUploader {
	return &NullUploader{
		textures: make(map[TextureID]TextureUpload),
		shaders:  make(map[ShaderModuleID]string),
	}
}

// CreateTexture records the upload and returns a fresh ID.
func (n *NullUploader) CreateTexture(up TextureUpload) (TextureID, error) {
	id := TextureID(n.next.Add(1))
	n.mu.Lock()
	n.textures[id] = up
	n.mu.Unlock()
	return id, nil
}

// DestroyTexture forgets a previously created texture.
func (n *NullUploader) DestroyTexture(id TextureID) {
	if id == 0 {
		return
	}
	n.mu.Lock()
	delete(n.textures, id)
	n.mu.Unlock()
}

// CreateShaderModule records the module label and returns a fresh ID.
func (n *NullUploader) CreateShaderModule(label string, spirv []uint32) (ShaderModuleID, error) {
	id := ShaderModuleID(n.next.Add(1))
	n.mu.Lock()
	n.shaders[id] = label
	n.mu.Unlock()
	return id, nil
}

// DestroyShaderModule forgets a previously created module.
func (n *NullUploader) DestroyShaderModule(id ShaderModuleID) {
	if id == 0 {
		return
	}
	n.mu.Lock()
	delete(n.shaders, id)
	n.mu.Unlock()
}

// LiveTextures returns the number of textures created but not destroyed.
func (n *NullUploader) LiveTextures() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.textures)
}

// LiveShaderModules returns the number of modules created but not destroyed.
func (n *NullUploader) LiveShaderModules() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.shaders)
}

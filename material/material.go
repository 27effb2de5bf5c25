// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package material

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/resource/cache"
	"github.com/gogpu/resource/texture"
)

// DefaultName is the built-in fallback material.
const DefaultName = "default"

// Errors.
var (
	// ErrNoName rejects material configs without a name.
	ErrNoName = errors.New("material: config has no name")
)

// Material is the payload cached per material name.
type Material struct {
	// Name is the resource name the material was acquired under.
	Name string

	// ShaderName selects the shader this material renders with.
	ShaderName string

	// DiffuseColor is the RGBA base color multiplier.
	DiffuseColor [4]float32

	// Shininess is the specular exponent.
	Shininess float32

	// Diffuse, Specular, and Normal are the acquired texture maps. They
	// point at default textures when the config named no map or the
	// named map failed to load.
	Diffuse  *cache.Slot[texture.Texture]
	Specular *cache.Slot[texture.Texture]
	Normal   *cache.Slot[texture.Texture]

	// diffuseName etc. remember which names were acquired (not
	// defaults), so Unload releases exactly what Load acquired.
	diffuseName  string
	specularName string
	normalName   string
}

// Config is the on-disk material description.
type Config struct {
	Version      int        `yaml:"version"`
	Name         string     `yaml:"name"`
	Shader       string     `yaml:"shader"`
	DiffuseColor [4]float32 `yaml:"diffuse_color,flow"`
	Shininess    float32    `yaml:"shininess"`
	DiffuseMap   string     `yaml:"diffuse_map"`
	SpecularMap  string     `yaml:"specular_map"`
	NormalMap    string     `yaml:"normal_map"`
}

// ParseConfig parses and validates a YAML material description.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("material: parse config: %w", err)
	}
	if cfg.Name == "" {
		return nil, ErrNoName
	}
	if cfg.Shader == "" {
		cfg.Shader = "builtin.material"
	}
	if cfg.DiffuseColor == [4]float32{} {
		cfg.DiffuseColor = [4]float32{1, 1, 1, 1}
	}
	if cfg.Shininess <= 0 {
		cfg.Shininess = 8
	}
	return &cfg, nil
}

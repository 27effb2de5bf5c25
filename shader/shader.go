// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shader

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/resource"
)

// Stage identifies one programmable pipeline stage.
type Stage uint8

const (
	StageVertex Stage = iota
	StageFragment
	StageCompute
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	case StageCompute:
		return "compute"
	default:
		return "unknown"
	}
}

// parseStage maps a config stage string to a Stage.
func parseStage(s string) (Stage, error) {
	switch s {
	case "vertex":
		return StageVertex, nil
	case "fragment":
		return StageFragment, nil
	case "compute":
		return StageCompute, nil
	default:
		return 0, fmt.Errorf("shader: unknown stage %q", s)
	}
}

// Errors.
var (
	// ErrNoName rejects shader configs without a name.
	ErrNoName = errors.New("shader: config has no name")

	// ErrNoStages rejects shader configs without stages.
	ErrNoStages = errors.New("shader: config has no stages")
)

// Attribute describes one vertex input of a shader.
type Attribute struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
	Size uint32 `yaml:"size"`
}

// Uniform describes one uniform input of a shader.
type Uniform struct {
	Name  string `yaml:"name"`
	Type  string `yaml:"type"`
	Size  uint32 `yaml:"size"`
	Scope string `yaml:"scope"`
}

// StageConfig names the WGSL source file for one stage.
type StageConfig struct {
	Stage string `yaml:"stage"`
	File  string `yaml:"file"`
}

// Config is the on-disk shader description.
type Config struct {
	Version    int           `yaml:"version"`
	Name       string        `yaml:"name"`
	Renderpass string        `yaml:"renderpass"`
	Stages     []StageConfig `yaml:"stages"`
	Attributes []Attribute   `yaml:"attributes"`
	Uniforms   []Uniform     `yaml:"uniforms"`
}

// ParseConfig parses and validates a YAML shader description.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("shader: parse config: %w", err)
	}
	if cfg.Name == "" {
		return nil, ErrNoName
	}
	if len(cfg.Stages) == 0 {
		return nil, ErrNoStages
	}
	for _, st := range cfg.Stages {
		if _, err := parseStage(st.Stage); err != nil {
			return nil, err
		}
		if st.File == "" {
			return nil, fmt.Errorf("shader: stage %s has no source file", st.Stage)
		}
	}
	return &cfg, nil
}

// StageModule is one compiled stage of a shader.
type StageModule struct {
	// Stage is the pipeline stage.
	Stage Stage

	// Source is the WGSL source text the stage was compiled from.
	Source string

	// SPIRV is the compiled SPIR-V code, little-endian 32-bit words.
	SPIRV []uint32

	// Module is the backend object issued by the uploader.
	Module resource.ShaderModuleID
}

// Shader is the payload cached per shader name.
type Shader struct {
	// Name is the resource name the shader was acquired under.
	Name string

	// Renderpass names the pass the shader is built for.
	Renderpass string

	// Stages holds the compiled stage modules.
	Stages []StageModule

	// Attributes and Uniforms describe the shader's inputs.
	Attributes []Attribute
	Uniforms   []Uniform
}

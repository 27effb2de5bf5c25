// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package shader provides the reference-counted shader system. Shaders
// are described by YAML configs naming one WGSL source file per stage;
// loading compiles each stage to SPIR-V with naga and creates the backend
// modules through the resource.Uploader boundary.
package shader

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package asset

import (
	"context"
	"errors"

	"github.com/gogpu/resource"
)

// Type identifies the kind of an asset and selects its handler.
type Type uint8

// Pre-defined asset types. TypeCustom is for handlers outside this module.
const (
	TypeUnknown Type = iota
	TypeText
	TypeBinary
	TypeImage
	TypeMaterial
	TypeShader
	TypeBitmapFont
	TypeSystemFont
	TypeStaticMesh
	TypeCustom

	typeCount
)

// String returns the type name.
func (t Type) String() string {
	switch t {
	case TypeText:
		return "text"
	case TypeBinary:
		return "binary"
	case TypeImage:
		return "image"
	case TypeMaterial:
		return "material"
	case TypeShader:
		return "shader"
	case TypeBitmapFont:
		return "bitmap_font"
	case TypeSystemFont:
		return "system_font"
	case TypeStaticMesh:
		return "static_mesh"
	case TypeCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// Valid reports whether t is a known, dispatchable type.
func (t Type) Valid() bool { return t > TypeUnknown && t < typeCount }

// Result classifies the outcome of a request, delivered through the
// callback.
type Result uint8

const (
	// ResultSuccess: the asset is loaded and referenced.
	ResultSuccess Result = iota

	// ResultInternalFailure: an unclassified failure, including cache
	// capacity exhaustion reached from a live call site.
	ResultInternalFailure

	// ResultNoHandler: no handler is registered for the asset type.
	ResultNoHandler

	// ResultInvalidPackage: the request named no package.
	ResultInvalidPackage

	// ResultInvalidName: the request named no asset.
	ResultInvalidName

	// ResultInvalidType: the request carried an unknown asset type.
	ResultInvalidType

	// ResultParseFailed: the handler could not deserialize the data.
	ResultParseFailed

	// ResultGPUUploadFailed: the backend rejected the resource.
	ResultGPUUploadFailed

	// ResultCanceled: the request's context was canceled before the
	// handler started.
	ResultCanceled
)

// String returns the result name.
func (r Result) String() string {
	switch r {
	case ResultSuccess:
		return "success"
	case ResultInternalFailure:
		return "internal_failure"
	case ResultNoHandler:
		return "no_handler"
	case ResultInvalidPackage:
		return "invalid_package"
	case ResultInvalidName:
		return "invalid_name"
	case ResultInvalidType:
		return "invalid_type"
	case ResultParseFailed:
		return "parse_failed"
	case ResultGPUUploadFailed:
		return "gpu_upload_failed"
	case ResultCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Classification sentinels for handler errors. Handlers wrap these with
// fmt.Errorf("...: %w", ...) so the dispatcher can map failures to result
// kinds.
var (
	// ErrParse marks a deserialization failure.
	ErrParse = errors.New("asset: parse failed")

	// ErrUpload marks a backend resource creation failure.
	ErrUpload = errors.New("asset: gpu upload failed")
)

// FullName builds the fully-qualified asset name used as the cache key.
func FullName(pkg, name string) string {
	return pkg + "." + name
}

// Asset is one loaded asset record. Handlers populate Data and Size; the
// dispatcher owns ID and Generation.
type Asset struct {
	// ID is the asset's stable handle in the dispatcher's slot table.
	ID resource.Handle

	// Generation increments on every load and on every repeat request
	// of an already-loaded asset. Hot-reload consumers compare it to
	// detect staleness.
	Generation resource.Generation

	// Type is the asset type the handler was selected by.
	Type Type

	// Package and Name form the fully-qualified name.
	Package string
	Name    string

	// Size is the payload size in bytes, as reported by the handler.
	Size uint64

	// Data is the type-specific payload: string for text, []byte for
	// binary, a parsed config for materials and shaders, and so on.
	Data any
}

// FullName returns the asset's fully-qualified name.
func (a *Asset) FullName() string { return FullName(a.Package, a.Name) }

// Callback delivers the outcome of a request. It is invoked exactly once
// per request. On success a is the loaded asset; otherwise a is nil. The
// listener is the opaque value from the request, passed back unchanged.
//
// Callbacks for already-loaded assets and synchronous requests run on the
// requesting goroutine; others run on a worker goroutine.
type Callback func(result Result, a *Asset, listener any)

// RequestInfo describes one asset request.
type RequestInfo struct {
	// Type selects the handler.
	Type Type

	// Package and Name form the fully-qualified asset name.
	Package string
	Name    string

	// AutoRelease unloads the asset automatically when its reference
	// count reaches zero. Latched on the first request of a name.
	AutoRelease bool

	// Listener is passed through to the callback unchanged.
	Listener any

	// Callback receives the result. Required.
	Callback Callback

	// Synchronous forces the load to run on the requesting goroutine
	// even when the asset is cold.
	Synchronous bool
}

// Handler loads and releases assets of one type. Implementations populate
// a.Data and a.Size in Request and free them in Release.
//
// Request runs under the dispatcher's lock; a handler must not call back
// into the dispatcher from Request. Classify failures by wrapping ErrParse
// or ErrUpload.
type Handler interface {
	Request(ctx context.Context, a *Asset) error
	Release(a *Asset)
}

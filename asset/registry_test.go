package asset

import (
	"context"
	"slices"
	"testing"
)

type nopHandler struct{}

func (nopHandler) Request(context.Context, *Asset) error { return nil }
func (nopHandler) Release(*Asset)                        {}

func TestRegistryRegisterGet(t *testing.T) {
	r := NewRegistry()

	if _, ok := r.Get(TypeText); ok {
		t.Error("Get on empty registry = true")
	}

	h := nopHandler{}
	r.Register(TypeText, h)

	got, ok := r.Get(TypeText)
	if !ok {
		t.Fatal("Get after Register = false")
	}
	if got != Handler(h) {
		t.Error("Get returned a different handler")
	}
}

func TestRegistryReplace(t *testing.T) {
	r := NewRegistry()
	first := &TextHandler{}
	second := &TextHandler{Root: "other"}

	r.Register(TypeText, first)
	r.Register(TypeText, second)

	got, _ := r.Get(TypeText)
	if got != Handler(second) {
		t.Error("Register did not replace the previous handler")
	}
}

func TestRegistryUnregister(t *testing.T) {
	r := NewRegistry()
	r.Register(TypeBinary, nopHandler{})
	r.Unregister(TypeBinary)

	if _, ok := r.Get(TypeBinary); ok {
		t.Error("Get after Unregister = true")
	}
	// Unregistering an absent type is a no-op.
	r.Unregister(TypeBinary)
}

func TestRegistryTypes(t *testing.T) {
	r := NewRegistry()
	r.Register(TypeShader, nopHandler{})
	r.Register(TypeText, nopHandler{})
	r.Register(TypeImage, nopHandler{})

	want := []Type{TypeText, TypeImage, TypeShader}
	if got := r.Types(); !slices.Equal(got, want) {
		t.Errorf("Types() = %v, want %v", got, want)
	}
}

func TestTypeString(t *testing.T) {
	tests := []struct {
		t    Type
		want string
	}{
		{TypeText, "text"},
		{TypeBinary, "binary"},
		{TypeImage, "image"},
		{TypeMaterial, "material"},
		{TypeShader, "shader"},
		{TypeBitmapFont, "bitmap_font"},
		{TypeSystemFont, "system_font"},
		{TypeStaticMesh, "static_mesh"},
		{TypeCustom, "custom"},
		{TypeUnknown, "unknown"},
		{Type(200), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.t.String(); got != tt.want {
			t.Errorf("Type(%d).String() = %q, want %q", tt.t, got, tt.want)
		}
	}
}

func TestTypeValid(t *testing.T) {
	if TypeUnknown.Valid() {
		t.Error("TypeUnknown.Valid() = true")
	}
	if !TypeText.Valid() || !TypeCustom.Valid() {
		t.Error("known types report invalid")
	}
	if Type(200).Valid() {
		t.Error("out-of-range type reports valid")
	}
}

func TestFullName(t *testing.T) {
	if got := FullName("core", "icon"); got != "core.icon" {
		t.Errorf("FullName = %q, want core.icon", got)
	}
}

func TestNoHandlerError(t *testing.T) {
	err := &NoHandlerError{Type: TypeShader}
	want := "asset: no handler registered for type shader"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

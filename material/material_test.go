package material

import (
	"errors"
	"testing"
)

func TestParseConfig(t *testing.T) {
	data := []byte(`
version: 1
name: crate
shader: world.pbr
diffuse_color: [0.8, 0.7, 0.6, 1.0]
shininess: 32
diffuse_map: crate_diffuse
specular_map: crate_specular
normal_map: crate_normal
`)
	cfg, err := ParseConfig(data)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Name != "crate" {
		t.Errorf("Name = %q, want crate", cfg.Name)
	}
	if cfg.Shader != "world.pbr" {
		t.Errorf("Shader = %q, want world.pbr", cfg.Shader)
	}
	if cfg.DiffuseColor != [4]float32{0.8, 0.7, 0.6, 1.0} {
		t.Errorf("DiffuseColor = %v", cfg.DiffuseColor)
	}
	if cfg.Shininess != 32 {
		t.Errorf("Shininess = %v, want 32", cfg.Shininess)
	}
	if cfg.DiffuseMap != "crate_diffuse" || cfg.SpecularMap != "crate_specular" || cfg.NormalMap != "crate_normal" {
		t.Errorf("maps = %q/%q/%q", cfg.DiffuseMap, cfg.SpecularMap, cfg.NormalMap)
	}
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte("name: bare"))
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Shader != "builtin.material" {
		t.Errorf("default Shader = %q, want builtin.material", cfg.Shader)
	}
	if cfg.DiffuseColor != [4]float32{1, 1, 1, 1} {
		t.Errorf("default DiffuseColor = %v, want white", cfg.DiffuseColor)
	}
	if cfg.Shininess != 8 {
		t.Errorf("default Shininess = %v, want 8", cfg.Shininess)
	}
	if cfg.DiffuseMap != "" {
		t.Errorf("DiffuseMap = %q, want empty", cfg.DiffuseMap)
	}
}

func TestParseConfigErrors(t *testing.T) {
	if _, err := ParseConfig([]byte("shader: x")); !errors.Is(err, ErrNoName) {
		t.Errorf("ParseConfig without name = %v, want ErrNoName", err)
	}
	if _, err := ParseConfig([]byte("\t: not yaml")); err == nil {
		t.Error("ParseConfig of invalid YAML succeeded")
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.Renderer.FramesInFlight != 2 {
		t.Errorf("default frames_in_flight = %d, want 2", cfg.Renderer.FramesInFlight)
	}
	if cfg.Application.Width != 800 || cfg.Application.Height != 600 {
		t.Errorf("default window = %dx%d, want 800x600", cfg.Application.Width, cfg.Application.Height)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quadra.toml")
	content := `
[application]
name = "demo"
width = 1280
height = 720
log_level = "debug"

[renderer]
frames_in_flight = 3
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Application.Name != "demo" {
		t.Errorf("name = %q", cfg.Application.Name)
	}
	if cfg.Renderer.FramesInFlight != 3 {
		t.Errorf("frames_in_flight = %d, want 3", cfg.Renderer.FramesInFlight)
	}
	// Sections absent from the file keep their defaults.
	if cfg.Assets.ShaderDir != "assets/shaders" {
		t.Errorf("shader_dir = %q", cfg.Assets.ShaderDir)
	}
}

func TestValidateRejectsZeroFrames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quadra.toml")
	if err := os.WriteFile(path, []byte("[renderer]\nframes_in_flight = 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for frames_in_flight = 0")
	}
}

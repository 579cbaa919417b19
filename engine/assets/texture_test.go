package assets

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeTestPNG(t *testing.T, dir string) string {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{G: 255, A: 255})
	img.SetNRGBA(0, 1, color.NRGBA{B: 255, A: 255})
	img.SetNRGBA(1, 1, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	path := filepath.Join(dir, "quad.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadTexture(t *testing.T) {
	path := writeTestPNG(t, t.TempDir())

	tex, err := LoadTexture(path)
	if err != nil {
		t.Fatal(err)
	}
	if tex.Width != 2 || tex.Height != 2 {
		t.Fatalf("size = %dx%d, want 2x2", tex.Width, tex.Height)
	}
	if len(tex.Pixels) != 2*2*4 {
		t.Fatalf("pixel data = %d bytes, want %d", len(tex.Pixels), 2*2*4)
	}
	// Top-left pixel is opaque red.
	if tex.Pixels[0] != 255 || tex.Pixels[1] != 0 || tex.Pixels[2] != 0 || tex.Pixels[3] != 255 {
		t.Errorf("top-left pixel = %v, want [255 0 0 255]", tex.Pixels[:4])
	}
}

func TestLoadTextureMissingFile(t *testing.T) {
	if _, err := LoadTexture(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Fatal("expected error for a missing file")
	}
}

func TestLoadTextureRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.png")
	if err := os.WriteFile(path, []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTexture(path); err == nil {
		t.Fatal("expected error for undecodable data")
	}
}

func TestShaderPaths(t *testing.T) {
	dir := t.TempDir()
	if _, _, err := ShaderPaths(dir); err == nil {
		t.Fatal("expected error when no compiled shaders exist")
	}

	for _, name := range []string{vertexShaderFile, fragmentShaderFile} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte{0x03, 0x02, 0x23, 0x07}, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	vert, frag, err := ShaderPaths(dir)
	if err != nil {
		t.Fatal(err)
	}
	if vert != filepath.Join(dir, vertexShaderFile) {
		t.Errorf("vertex path = %s", vert)
	}
	if frag != filepath.Join(dir, fragmentShaderFile) {
		t.Errorf("fragment path = %s", frag)
	}
}

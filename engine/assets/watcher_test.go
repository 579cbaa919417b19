package assets

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchShadersFiresOnSpvWrite(t *testing.T) {
	dir := t.TempDir()
	changed := make(chan string, 4)

	sw, err := WatchShaders(dir, func(path string) {
		changed <- path
	})
	if err != nil {
		t.Fatal(err)
	}
	defer sw.Close()

	path := filepath.Join(dir, "quad.vert.spv")
	if err := os.WriteFile(path, []byte{0x03, 0x02, 0x23, 0x07}, 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-changed:
		if got != path {
			t.Errorf("changed path = %s, want %s", got, path)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no notification for a new .spv file")
	}
}

func TestWatchShadersIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	changed := make(chan string, 4)

	sw, err := WatchShaders(dir, func(path string) {
		changed <- path
	})
	if err != nil {
		t.Fatal(err)
	}
	defer sw.Close()

	if err := os.WriteFile(filepath.Join(dir, "quad.vert"), []byte("#version 450"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-changed:
		t.Fatalf("unexpected notification for %s", got)
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatchShadersMissingDir(t *testing.T) {
	if _, err := WatchShaders(filepath.Join(t.TempDir(), "missing"), func(string) {}); err == nil {
		t.Fatal("expected error for a missing directory")
	}
}

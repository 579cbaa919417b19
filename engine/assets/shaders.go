package assets

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/quadra-gfx/quadra/engine/core"
)

const (
	vertexShaderFile   = "quad.vert.spv"
	fragmentShaderFile = "quad.frag.spv"
)

// ShaderPaths resolves the compiled shader binaries under dir and verifies
// they exist, so a missing glslc run fails at startup instead of mid-init.
func ShaderPaths(dir string) (vertex string, fragment string, err error) {
	vertex = filepath.Join(dir, vertexShaderFile)
	fragment = filepath.Join(dir, fragmentShaderFile)

	for _, p := range []string{vertex, fragment} {
		if _, statErr := os.Stat(p); statErr != nil {
			err = fmt.Errorf("compiled shader not found at %s (run the shader build first): %w", p, statErr)
			core.LogError(err.Error())
			return "", "", err
		}
	}
	return vertex, fragment, nil
}

// Package assets loads the handful of files the demo needs from disk:
// compiled SPIR-V shaders and the quad's texture.
package assets

import (
	"fmt"
	"image"
	"os"

	// Registers the PNG decoder with image.Decode.
	_ "image/png"

	"golang.org/x/image/draw"

	"github.com/quadra-gfx/quadra/engine/core"
)

// Texture is decoded pixel data ready for upload: tightly packed RGBA,
// top-left origin.
type Texture struct {
	Pixels []byte
	Width  uint32
	Height uint32
}

// LoadTexture decodes an image file and converts it to RGBA regardless of
// the source color model.
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		err = fmt.Errorf("unable to open texture %s: %w", path, err)
		core.LogError(err.Error())
		return nil, err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		err = fmt.Errorf("unable to decode texture %s: %w", path, err)
		core.LogError(err.Error())
		return nil, err
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	core.LogDebug("Loaded %s texture %s: %dx%d.", format, path, bounds.Dx(), bounds.Dy())

	return &Texture{
		Pixels: rgba.Pix,
		Width:  uint32(bounds.Dx()),
		Height: uint32(bounds.Dy()),
	}, nil
}

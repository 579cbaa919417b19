package engine

import (
	"github.com/quadra-gfx/quadra/engine/config"
	"github.com/quadra-gfx/quadra/engine/core"
)

type ApplicationConfig struct {
	// Window starting position x axis, if applicable.
	StartPosX uint32
	// Window starting position y axis, if applicable.
	StartPosY uint32
	// Window starting width, if applicable.
	StartWidth uint32
	// Window starting height, if applicable.
	StartHeight uint32
	// The application name used in windowing, if applicable.
	Name     string
	LogLevel core.LogLevel

	// Number of frame slots the CPU may record ahead of the GPU.
	FramesInFlight int
	// Enables validation layers and the debug messenger.
	Debug bool

	ShaderDir   string
	TexturePath string
}

// ApplicationConfigFrom maps the loaded TOML configuration onto the
// engine-facing config.
func ApplicationConfigFrom(cfg *config.Config) *ApplicationConfig {
	return &ApplicationConfig{
		StartPosX:      cfg.Application.StartPosX,
		StartPosY:      cfg.Application.StartPosY,
		StartWidth:     cfg.Application.Width,
		StartHeight:    cfg.Application.Height,
		Name:           cfg.Application.Name,
		LogLevel:       core.LogLevel(cfg.Application.LogLevel),
		FramesInFlight: cfg.Renderer.FramesInFlight,
		Debug:          cfg.Renderer.Debug,
		ShaderDir:      cfg.Assets.ShaderDir,
		TexturePath:    cfg.Assets.Texture,
	}
}

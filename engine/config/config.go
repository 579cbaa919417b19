package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config is the application configuration loaded from quadra.toml.
type Config struct {
	Application ApplicationSection `toml:"application"`
	Renderer    RendererSection    `toml:"renderer"`
	Assets      AssetsSection      `toml:"assets"`
}

type ApplicationSection struct {
	Name      string `toml:"name"`
	StartPosX uint32 `toml:"start_pos_x"`
	StartPosY uint32 `toml:"start_pos_y"`
	Width     uint32 `toml:"width"`
	Height    uint32 `toml:"height"`
	LogLevel  string `toml:"log_level"`
}

type RendererSection struct {
	// Number of frame slots the CPU may record ahead of the GPU.
	FramesInFlight int `toml:"frames_in_flight"`
	Debug          bool `toml:"debug"`
}

type AssetsSection struct {
	ShaderDir string `toml:"shader_dir"`
	Texture   string `toml:"texture"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Application: ApplicationSection{
			Name:     "Quadra",
			Width:    800,
			Height:   600,
			LogLevel: "info",
		},
		Renderer: RendererSection{
			FramesInFlight: 2,
			Debug:          true,
		},
		Assets: AssetsSection{
			ShaderDir: "assets/shaders",
			Texture:   "assets/textures/quad.png",
		},
	}
}

// Load reads the TOML file at path, layered over the defaults. A missing file
// is not an error; a malformed one is.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the renderer cannot start with.
func (c *Config) Validate() error {
	if c.Renderer.FramesInFlight < 1 {
		return fmt.Errorf("renderer.frames_in_flight must be >= 1, got %d", c.Renderer.FramesInFlight)
	}
	if c.Application.Width == 0 || c.Application.Height == 0 {
		return fmt.Errorf("application window size must be non-zero, got %dx%d",
			c.Application.Width, c.Application.Height)
	}
	return nil
}

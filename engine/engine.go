package engine

import (
	"fmt"
	"sync/atomic"

	"github.com/quadra-gfx/quadra/engine/assets"
	"github.com/quadra-gfx/quadra/engine/core"
	"github.com/quadra-gfx/quadra/engine/platform"
	"github.com/quadra-gfx/quadra/engine/renderer"
	"github.com/quadra-gfx/quadra/engine/renderer/vulkan"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

type Engine struct {
	currentStage Stage
	gameInstance *Game
	isRunning    bool
	isSuspended  bool
	platform     *platform.Platform
	renderer     *renderer.Renderer
	watcher      *assets.ShaderWatcher
	width        uint32
	height       uint32
	clock        *core.Clock
	lastTime     float64

	// Set by the shader watcher goroutine, consumed on the render thread.
	shadersDirty atomic.Bool
}

func New(g *Game) (*Engine, error) {
	return &Engine{
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		clock:        core.NewClock(),
		platform:     platform.New(),
		isRunning:    true,
		isSuspended:  false,
		width:        g.ApplicationConfig.StartWidth,
		height:       g.ApplicationConfig.StartHeight,
		lastTime:     0,
	}, nil
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing

	cfg := e.gameInstance.ApplicationConfig
	core.SetLogLevel(cfg.LogLevel)

	if !core.EventSystemInitialize() {
		return fmt.Errorf("failed to initialize the event system")
	}
	if err := core.MetricsInitialize(); err != nil {
		return err
	}

	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, e, e.onEvent)
	core.EventRegister(core.EVENT_CODE_RESIZED, e, e.onResized)

	if err := e.platform.Startup(cfg.Name, cfg.StartPosX, cfg.StartPosY, cfg.StartWidth, cfg.StartHeight); err != nil {
		return err
	}

	vertPath, fragPath, err := assets.ShaderPaths(cfg.ShaderDir)
	if err != nil {
		return err
	}
	texture, err := assets.LoadTexture(cfg.TexturePath)
	if err != nil {
		return err
	}

	e.renderer = renderer.New(e.platform, vulkan.Config{
		AppName:            cfg.Name,
		Width:              cfg.StartWidth,
		Height:             cfg.StartHeight,
		FramesInFlight:     cfg.FramesInFlight,
		Debug:              cfg.Debug,
		VertexShaderPath:   vertPath,
		FragmentShaderPath: fragPath,
		TexturePixels:      texture.Pixels,
		TextureWidth:       texture.Width,
		TextureHeight:      texture.Height,
	})
	if err := e.renderer.Initialize(cfg.FramesInFlight); err != nil {
		return err
	}

	// Shader hot reload. Best effort: a watcher failure is not fatal.
	if w, werr := assets.WatchShaders(cfg.ShaderDir, func(string) {
		e.shadersDirty.Store(true)
	}); werr == nil {
		e.watcher = w
	}

	if e.gameInstance.FnInitialize != nil {
		if err := e.gameInstance.FnInitialize(); err != nil {
			return err
		}
	}
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(e.width, e.height); err != nil {
			return err
		}
	}

	e.currentStage = EngineStageInitialized
	return nil
}

func (e *Engine) Run() error {
	e.currentStage = EngineStageRunning
	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.ElapsedSeconds()

	for e.isRunning {
		if e.platform.PumpMessages() {
			e.isRunning = false
			break
		}

		if e.isSuspended {
			continue
		}

		e.clock.Update()
		currentTime := e.clock.ElapsedSeconds()
		delta := currentTime - e.lastTime

		if e.gameInstance.FnUpdate != nil {
			if err := e.gameInstance.FnUpdate(delta); err != nil {
				core.LogError("game update failed, shutting down: %s", err)
				e.isRunning = false
				break
			}
		}

		if e.shadersDirty.Swap(false) {
			if err := e.renderer.ReloadShaders(); err != nil {
				core.LogWarn("shader reload failed, keeping previous pipeline: %s", err)
			}
		}

		if err := e.renderer.DrawFrame(); err != nil {
			core.LogError("frame draw failed, shutting down: %s", err)
			e.isRunning = false
			break
		}

		core.MetricsUpdate(delta)
		if e.renderer.FrameNumber()%600 == 0 {
			core.LogDebug("%.1f fps, %.2f ms avg frame time", core.MetricsFPS(), core.MetricsFrameTimeAvg())
		}

		e.lastTime = currentTime
	}

	return nil
}

func (e *Engine) Shutdown() error {
	e.currentStage = EngineStageShuttingDown

	if e.watcher != nil {
		e.watcher.Close()
		e.watcher = nil
	}
	if e.renderer != nil {
		if err := e.renderer.Shutdown(); err != nil {
			return err
		}
		e.renderer = nil
	}
	core.EventSystemShutdown()
	return e.platform.Shutdown()
}

func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

func (e *Engine) onEvent(code core.SystemEventCode, sender interface{}, data core.EventContext) bool {
	if code == core.EVENT_CODE_APPLICATION_QUIT {
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
		e.isRunning = false
		return true
	}
	return false
}

func (e *Engine) onResized(code core.SystemEventCode, sender interface{}, data core.EventContext) bool {
	if code != core.EVENT_CODE_RESIZED {
		return false
	}

	width := uint32(data.Data.U16[0])
	height := uint32(data.Data.U16[1])

	if width == e.width && height == e.height {
		return false
	}
	e.width = width
	e.height = height

	core.LogDebug("Window resize: %d, %d", width, height)

	// Handle minimization.
	if width == 0 || height == 0 {
		core.LogInfo("Window minimized, suspending application.")
		e.isSuspended = true
		return true
	}
	if e.isSuspended {
		core.LogInfo("Window restored, resuming application.")
		e.isSuspended = false
	}

	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(width, height); err != nil {
			core.LogError(err.Error())
		}
	}
	e.renderer.OnResize(uint16(width), uint16(height))
	return false
}

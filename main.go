/*
Quadra renders a textured, rotating quad with Vulkan. It exists to exercise
the engine's frame synchronization and buffer sub-allocation paths end to
end.
*/
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/quadra-gfx/quadra/engine"
	"github.com/quadra-gfx/quadra/engine/config"
	"github.com/quadra-gfx/quadra/engine/core"
)

func main() {
	configPath := flag.String("config", "quadra.toml", "path to the configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		core.LogFatal(err.Error())
	}

	game := &engine.Game{
		ApplicationConfig: engine.ApplicationConfigFrom(cfg),
	}

	eng, err := engine.New(game)
	if err != nil {
		core.LogFatal(err.Error())
	}

	if err := eng.Initialize(); err != nil {
		core.LogFatal(err.Error())
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	go func() {
		<-sigCh
		_ = eng.Shutdown()
		os.Exit(0)
	}()

	if err := eng.Run(); err != nil {
		core.LogError(err.Error())
	}
	if err := eng.Shutdown(); err != nil {
		core.LogError(err.Error())
	}
}

package assets

import (
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/quadra-gfx/quadra/engine/core"
)

// ShaderWatcher notifies when a compiled shader under the watched directory
// is rewritten, so the renderer can hot reload its pipeline. Notifications
// arrive on the watcher's own goroutine.
type ShaderWatcher struct {
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// WatchShaders watches dir and invokes onChange with the path of any .spv
// file that is created or rewritten.
func WatchShaders(dir string, onChange func(path string)) (*ShaderWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		core.LogError("unable to create shader watcher: %s", err)
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		core.LogError("unable to watch shader directory %s: %s", dir, err)
		return nil, err
	}

	sw := &ShaderWatcher{
		watcher: w,
		done:    make(chan struct{}),
	}

	go func() {
		for {
			select {
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				if strings.ToLower(filepath.Ext(event.Name)) != ".spv" {
					continue
				}
				core.LogInfo("Shader %s changed.", event.Name)
				onChange(event.Name)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				core.LogWarn("shader watcher error: %s", err)
			case <-sw.done:
				return
			}
		}
	}()

	core.LogDebug("Watching %s for shader changes.", dir)
	return sw, nil
}

func (sw *ShaderWatcher) Close() error {
	close(sw.done)
	return sw.watcher.Close()
}

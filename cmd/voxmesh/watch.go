package main

import (
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/xlab/closer"

	"voxmesh/internal/config"
	"voxmesh/internal/logx"
)

// rebuildDelay coalesces editor write bursts into a single rebuild.
const rebuildDelay = 200 * time.Millisecond

// watchLoop rebuilds all chunks whenever the palette or a chunk document
// changes on disk. Blocks until the process is interrupted.
func watchLoop(s *config.Settings) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logx.Fatal("could not start watcher: %v", err)
	}
	closer.Bind(func() {
		watcher.Close()
	})

	if err := watcher.Add(s.Palette); err != nil {
		logx.Fatal("could not watch %s: %v", s.Palette, err)
	}
	for _, path := range s.Chunks {
		if err := watcher.Add(path); err != nil {
			logx.Fatal("could not watch %s: %v", path, err)
		}
	}
	logx.Info("watching %d input files", 1+len(s.Chunks))

	go func() {
		var pending *time.Timer
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				logx.Debug("change detected: %s", ev.Name)
				if pending != nil {
					pending.Stop()
				}
				pending = time.AfterFunc(rebuildDelay, func() {
					if err := buildAll(s); err != nil {
						logx.Error("rebuild failed: %v", err)
					}
				})
				// Some editors replace the file, dropping the watch.
				watcher.Add(ev.Name)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logx.Error("watcher: %v", err)
			}
		}
	}()

	closer.Hold()
}

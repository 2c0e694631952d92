package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/specialistvlad/bayesgridgo/internal/ctxlog"
	"github.com/specialistvlad/bayesgridgo/internal/hcl"
	"github.com/specialistvlad/bayesgridgo/internal/yamlcfg"
)

// debounce lets an editor finish a save before the network is reloaded.
var debounce = 200 * time.Millisecond

// Watch runs once, then reloads the network and runs again on every change
// under the network path until ctx is cancelled. Failures after the first
// run are logged and the last good network is kept.
func (a *App) Watch(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	if err := a.Run(ctx); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace a file instead of writing it, so a single file
	// is watched through its directory.
	dir := a.config.NetworkPath
	target := ""
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		target = filepath.Clean(dir)
		dir = filepath.Dir(dir)
	}
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	a.logger.Info("Watching network for changes.", "path", a.config.NetworkPath)

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			a.logger.Debug("Watch stopped.")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !a.relevant(event.Name, target) {
				continue
			}
			a.logger.Debug("Network change detected.", "file", event.Name, "op", event.Op.String())
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.logger.Warn("File watcher error.", "error", err)

		case <-timer.C:
			if err := a.reload(ctx); err != nil {
				a.logger.Error("Reload failed, keeping the previous output.", "error", err)
			}
		}
	}
}

// relevant filters out the app's own outputs and files no loader reads.
func (a *App) relevant(name, target string) bool {
	name = filepath.Clean(name)
	if target != "" {
		return name == target
	}
	for _, out := range []string{a.outputPathOrEmpty(), a.config.ModelPath} {
		if out != "" && out != Stdout && filepath.Clean(out) == name {
			return false
		}
	}
	ext := strings.ToLower(filepath.Ext(name))
	return ext == hcl.Extension || slices.Contains(yamlcfg.Extensions, ext)
}

func (a *App) outputPathOrEmpty() string {
	if a.renderer == nil {
		return ""
	}
	return a.outputPath()
}

func (a *App) reload(ctx context.Context) error {
	if err := a.load(ctx); err != nil {
		return err
	}
	return a.Run(ctx)
}

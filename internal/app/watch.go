package app

import (
	"context"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vk/loom/internal/config"
	"github.com/vk/loom/internal/ctxlog"
	"github.com/vk/loom/internal/fsutil"
)

// watchDebounce coalesces bursts of filesystem events (editors often emit
// several per save) into a single rebuild.
const watchDebounce = 150 * time.Millisecond

// watchedSuffixes are the file suffixes whose changes trigger a rebuild.
var watchedSuffixes = []string{
	".ts", ".tsx", ".js", ".jsx", ".mjs", ".cjs", ".css", config.FileName,
}

// watch rebuilds the module graph whenever a relevant source file under the
// project root changes. It returns when the context is canceled.
func (a *App) watch(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dirs, err := fsutil.Dirs(a.config.Root)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return err
		}
	}
	logger.Info("👀 Watching for changes...", "root", a.config.Root, "dirs", len(dirs))

	var debounce *time.Timer
	var rebuild <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			logger.Debug("Watch loop stopped.", "reason", ctx.Err())
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// New directories must be added to the watch set; the watcher is
			// not recursive on its own.
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watcher.Add(event.Name)
				}
			}
			if !fsutil.HasAnySuffix(event.Name, watchedSuffixes) {
				continue
			}
			logger.Debug("Source change detected.", "path", event.Name, "op", event.Op.String())
			if debounce == nil {
				debounce = time.NewTimer(watchDebounce)
			} else {
				debounce.Reset(watchDebounce)
			}
			rebuild = debounce.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error.", "error", err)

		case <-rebuild:
			rebuild = nil
			if err := a.build(ctx); err != nil {
				a.reportFailure(err)
			}
		}
	}
}

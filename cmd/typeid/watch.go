/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"dirpx.dev/typeid/source"
)

// defaultDebounce is how long watch waits for more changes before rescanning.
const defaultDebounce = 200 * time.Millisecond

func watchCmd(g *globals) *cobra.Command {
	f := &scanFlags{}
	var debounce time.Duration
	cmd := &cobra.Command{
		Use:   "watch [dir|pattern]...",
		Short: "Rescan Go packages whenever their sources change",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := g.load()
			if err != nil {
				return err
			}
			f.apply(cfg, args)
			keep, err := f.roleFilter()
			if err != nil {
				return err
			}
			s, err := newScanner(cfg, logger)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			w := &watcher{scanner: s, format: f.format, metrics: f.metrics, roles: keep, debounce: debounce, out: g}
			return w.run(ctx)
		},
	}
	f.register(cmd)
	cmd.Flags().DurationVar(&debounce, "debounce", defaultDebounce, "Quiet period before a rescan")
	return cmd
}

// watcher rescans the configured directories after each burst of changes.
type watcher struct {
	*scanner
	format   string
	metrics  bool
	roles    map[string]bool
	debounce time.Duration
	out      *globals
}

func (w *watcher) run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	dirs, err := source.ExpandPaths(w.cfg.Scan.Include, w.cfg.Scan.Exclude)
	if err != nil {
		return fmt.Errorf("expand paths: %w", err)
	}
	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			w.logger.Warn("Failed to watch directory", slog.String("path", dir), slog.Any("error", err))
			continue
		}
		w.logger.Debug("Watching directory", slog.String("path", dir))
	}

	w.rescan(ctx)

	if w.debounce <= 0 {
		w.debounce = defaultDebounce
	}
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	w.logger.Info("File watcher started", slog.Int("dirs", len(dirs)), slog.Duration("debounce", w.debounce))
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("File watcher stopped")
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			w.logger.Debug("Source changed", slog.String("path", event.Name), slog.String("op", event.Op.String()))
			timer.Reset(w.debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Watcher error", slog.Any("error", err))

		case <-timer.C:
			w.rescan(ctx)
		}
	}
}

// rescan rebuilds the catalog from an empty registry and prints it.
// Failures are logged so that a broken file does not stop the watch.
// In strict mode collisions are logged as errors; metrics are cumulative
// over the life of the watch.
func (w *watcher) rescan(ctx context.Context) {
	res, err := w.scanner.run(ctx)
	if err != nil {
		w.logger.Error("Scan failed", slog.Any("error", err))
		return
	}
	if err := render(w.out.stdout, w.format, filterRoles(res, w.roles)); err != nil {
		w.logger.Error("Render failed", slog.Any("error", err))
	}
	if w.metrics {
		if err := w.dumpMetrics(w.out.stderr); err != nil {
			w.logger.Error("Metrics dump failed", slog.Any("error", err))
		}
	}
	if w.cfg.Scan.Strict && len(res.Collisions) > 0 {
		w.logger.Error("Strict scan failed", slog.Any("error", errCollisions), slog.Int("collisions", len(res.Collisions)))
	}
}

// relevant reports whether event touches a non-test Go source file.
func relevant(event fsnotify.Event) bool {
	name := filepath.Base(event.Name)
	if !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
		return false
	}
	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}

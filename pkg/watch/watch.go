// Package watch re-renders the tree whenever a controls file changes.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/willbeason/webtree/pkg/config"
	"github.com/willbeason/webtree/pkg/render"
	"github.com/willbeason/webtree/pkg/tree"
)

// Options configure a Watcher.
type Options struct {
	// Controls is the YAML or TOML file holding control values.
	Controls string
	// Output is the PNG file rewritten on every change.
	Output string

	Width, Height int
	MaxDepth      int
}

// Watcher renders Options.Output from Options.Controls and keeps it current.
type Watcher struct {
	opts   Options
	render *render.Service
	logger *slog.Logger

	last     tree.Controls
	rendered bool
}

func New(svc *render.Service, logger *slog.Logger, opts Options) *Watcher {
	return &Watcher{opts: opts, render: svc, logger: logger}
}

// Reload reads the controls file and renders if its controls differ from the
// last render. A file that fails to load leaves the previous image in place.
func (w *Watcher) Reload() (bool, error) {
	c, err := config.LoadControls(w.opts.Controls)
	if err != nil {
		return false, err
	}

	if w.rendered && c == w.last {
		w.logger.Debug("controls unchanged", "path", w.opts.Controls)
		return false, nil
	}

	params := c.Params()
	params.MaxDepth = w.opts.MaxDepth

	if _, err := w.render.Save(render.TriggerWatch, w.opts.Output, params, w.opts.Width, w.opts.Height); err != nil {
		return false, err
	}

	w.last = c
	w.rendered = true
	return true, nil
}

// Run renders once, then re-renders on every change to the controls file
// until ctx is done. It watches the parent directory so that editors which
// replace the file on save are followed.
func (w *Watcher) Run(ctx context.Context) error {
	if _, err := config.FormatOf(w.opts.Controls); err != nil {
		return err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	target := filepath.Clean(w.opts.Controls)
	if err := fw.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watching %s: %w", target, err)
	}

	if _, err := w.Reload(); err != nil {
		return err
	}
	w.logger.Info("watching controls", "path", target, "output", w.opts.Output)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if _, err := w.Reload(); err != nil {
				w.logger.Warn("controls reload failed", "path", target, "error", err)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

// Package watch re-runs a pass over a directory tree whenever the tree
// changes. Bursts of filesystem events are coalesced by a debounce timer,
// and passes never overlap: events arriving during a pass schedule the
// next one.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/mp3curate/mp3curate/pkg/errors"
	"github.com/mp3curate/mp3curate/pkg/logging"
	"github.com/rs/zerolog"
)

// DefaultDebounce is used when Options.Debounce is not positive
const DefaultDebounce = 2 * time.Second

// Options configures a Watcher
type Options struct {
	Root     string
	Debounce time.Duration
	// Pass runs once per coalesced burst of changes
	Pass func(ctx context.Context) error
	// InitialPass runs Pass once before waiting for changes
	InitialPass bool
	// Exclude keeps paths (and their subtrees) unwatched
	Exclude func(path string) bool
}

// Watcher drives Pass from fsnotify events
type Watcher struct {
	opts   Options
	logger zerolog.Logger
	fsw    *fsnotify.Watcher
}

// New creates a watcher; nothing is watched until Run
func New(opts Options) *Watcher {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	return &Watcher{opts: opts, logger: logging.GetLogger("watch")}
}

// Run blocks until ctx is cancelled. It returns nil on cancellation and an
// error only when watching cannot start.
func (w *Watcher) Run(ctx context.Context) error {
	if w.opts.Pass == nil {
		return errors.New(errors.ErrInvalidInput, "watch needs a pass function")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "cannot start filesystem watcher")
	}
	defer func() { _ = fsw.Close() }()
	w.fsw = fsw

	if err := w.addTree(w.opts.Root); err != nil {
		return errors.Wrapf(err, errors.ErrDirectoryNotFound, "cannot watch %s", w.opts.Root)
	}
	w.logger.Info().Str("root", w.opts.Root).Dur("debounce", w.opts.Debounce).Msg("Watching for changes")

	if w.opts.InitialPass {
		w.runPass(ctx)
	}

	// Starts stopped; reset on each relevant event
	debounceTimer := time.NewTimer(0)
	if !debounceTimer.Stop() {
		<-debounceTimer.C
	}
	defer debounceTimer.Stop()
	passPending := false

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("Watcher stopping")
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.handleEvent(ev) {
				continue
			}
			if !debounceTimer.Stop() {
				select {
				case <-debounceTimer.C:
				default:
				}
			}
			debounceTimer.Reset(w.opts.Debounce)
			passPending = true

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error().Err(err).Msg("Filesystem watcher error")

		case <-debounceTimer.C:
			if passPending {
				passPending = false
				w.runPass(ctx)
			}
		}
	}
}

func (w *Watcher) runPass(ctx context.Context) {
	start := time.Now()
	if err := w.opts.Pass(ctx); err != nil {
		w.logger.Error().Err(err).Msg("Pass triggered by watcher failed")
		return
	}
	w.logger.Debug().Dur("duration", time.Since(start)).Msg("Pass finished")
}

// handleEvent reports whether the event should trigger a pass
func (w *Watcher) handleEvent(ev fsnotify.Event) bool {
	if w.excluded(ev.Name) {
		return false
	}
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
		return false
	}

	if ev.Has(fsnotify.Create) {
		if info, err := os.Lstat(ev.Name); err == nil && info.IsDir() {
			if err := w.addTree(ev.Name); err != nil {
				w.logger.Warn().Err(err).Str("path", ev.Name).Msg("Cannot watch new directory")
			}
		}
	}

	w.logger.Trace().Str("path", ev.Name).Str("op", ev.Op.String()).Msg("Change detected")
	return true
}

// addTree watches dir and every directory below it
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			w.logger.Warn().Err(err).Str("path", path).Msg("Cannot watch directory")
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if w.excluded(path) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			if path == dir {
				return err
			}
			w.logger.Warn().Err(err).Str("path", path).Msg("Cannot watch directory")
		}
		return nil
	})
}

func (w *Watcher) excluded(path string) bool {
	return w.opts.Exclude != nil && w.opts.Exclude(path)
}

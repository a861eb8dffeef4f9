package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"readmegen/internal/logging"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the burst of events editors emit on save.
const DefaultDebounce = 200 * time.Millisecond

// Watcher re-runs a function whenever one of a set of files changes.
type Watcher struct {
	files    map[string]bool
	run      func(context.Context) error
	debounce time.Duration
}

// New returns a Watcher for files. Parent directories are watched rather than
// the files themselves so that rename-on-save editors keep triggering.
func New(files []string, run func(context.Context) error) (*Watcher, error) {
	w := &Watcher{
		files:    make(map[string]bool, len(files)),
		run:      run,
		debounce: DefaultDebounce,
	}
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, err
		}
		w.files[abs] = true
	}
	return w, nil
}

// SetDebounce overrides DefaultDebounce.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Run calls the function once, then again after every change until ctx is
// done. Failures of the function are logged and do not stop watching.
func (w *Watcher) Run(ctx context.Context) error {
	log := logging.FromContext(ctx)

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer fw.Close()

	dirs := make(map[string]bool)
	for f := range w.files {
		dir := filepath.Dir(f)
		if dirs[dir] {
			continue
		}
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}

	w.trigger(ctx)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			log.Debug().Str("op", ev.Op.String()).Str("file", ev.Name).Msg("change detected")
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("file watcher error")
		case <-fire:
			fire = nil
			w.trigger(ctx)
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}
	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	return w.files[abs]
}

func (w *Watcher) trigger(ctx context.Context) {
	if err := w.run(ctx); err != nil {
		logging.FromContext(ctx).Error().Err(err).Msg("regeneration failed")
	}
}

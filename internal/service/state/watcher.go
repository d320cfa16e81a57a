package state

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sandevgo/folio/pkg/log"
)

// debounce collapses the burst of events editors produce on save.
const debounce = 200 * time.Millisecond

// RulesWatcher reloads the rule catalog whenever its file changes.
type RulesWatcher struct {
	state   *GlobalState
	path    string
	watcher *fsnotify.Watcher
}

// NewRulesWatcher watches the directory of path, so atomic renames used by
// editors are seen too.
func NewRulesWatcher(state *GlobalState, path string) (*RulesWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	return &RulesWatcher{
		state:   state,
		path:    filepath.Clean(path),
		watcher: w,
	}, nil
}

func (r *RulesWatcher) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Str("path", r.path).Msg("watching rule catalog")

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-r.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != r.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			timer.Reset(debounce)
		case <-timer.C:
			if err := r.state.ReloadRules(ctx, r.path); err != nil {
				logger.Error().Err(err).Msg("keeping previous rules")
			}
		case err, ok := <-r.watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("rule watcher error")
		}
	}
}

func (r *RulesWatcher) Shutdown(ctx context.Context) error {
	return r.watcher.Close()
}

package config

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settle is how long a file must stay unchanged before it is reloaded.
// Editors often write a file in several steps.
const settle = 300 * time.Millisecond

// Watch reloads path after every change and passes each valid configuration
// to apply. Edits that fail to load are logged and skipped, so the previous
// configuration stays in force. Watch blocks until ctx is done.
//
// The parent directory is watched rather than the file so that editors which
// replace the file by rename are followed.
func Watch(ctx context.Context, path string, logger *log.Logger, apply func(*Config)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve config path %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create config watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	ticker := time.NewTicker(settle / 2)
	defer ticker.Stop()

	var changed time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				changed = time.Now()
			}
		case <-ticker.C:
			if changed.IsZero() || time.Since(changed) < settle {
				continue
			}
			changed = time.Time{}

			cfg, err := Load(abs)
			if err != nil {
				logger.Printf("config reload failed, keeping previous settings: %v", err)
				continue
			}
			logger.Printf("config reloaded from %s", abs)
			apply(cfg)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Printf("config watch error: %v", err)
		}
	}
}

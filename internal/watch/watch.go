// Package watch turns file writes into reload notifications. The host
// multiplexer reloads its configuration on write; watching the same
// file lets the topology store reconcile right after the layout may
// have been rebuilt.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher invokes OnReload whenever one of Paths is written. Multiple
// events within Debounce collapse into one notification, since editors
// typically fire several ops per save.
type Watcher struct {
	Paths    []string
	Debounce time.Duration
	OnReload func(ctx context.Context) error
}

// DefaultPaths returns the wezterm config file locations worth
// watching: $WEZTERM_CONFIG_FILE when set, otherwise the conventional
// ones that exist.
func DefaultPaths() []string {
	if p := os.Getenv("WEZTERM_CONFIG_FILE"); p != "" {
		return []string{p}
	}
	var out []string
	if home, err := os.UserHomeDir(); err == nil {
		for _, p := range []string{
			filepath.Join(home, ".config", "wezterm", "wezterm.lua"),
			filepath.Join(home, ".wezterm.lua"),
		} {
			if _, err := os.Stat(p); err == nil {
				out = append(out, p)
			}
		}
	}
	return out
}

// Run blocks until ctx is done, reloading on every write event.
// Watches the parent directories rather than the files themselves:
// editors that save via rename would otherwise detach the watch.
func (w *Watcher) Run(ctx context.Context) error {
	if len(w.Paths) == 0 {
		return fmt.Errorf("watch: no paths to watch")
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]bool, len(w.Paths))
	for _, p := range w.Paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
		watched[abs] = true
		dir := filepath.Dir(abs)
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case evt, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			abs, err := filepath.Abs(evt.Name)
			if err != nil || !watched[abs] {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			if w.OnReload != nil {
				if err := w.OnReload(ctx); err != nil {
					fmt.Fprintf(os.Stderr, "watch: reload: %v\n", err)
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watch: %v\n", err)
		}
	}
}

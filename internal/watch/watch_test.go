package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultPathsHonorsEnv(t *testing.T) {
	t.Setenv("WEZTERM_CONFIG_FILE", "/tmp/custom-wezterm.lua")
	paths := DefaultPaths()
	if len(paths) != 1 || paths[0] != "/tmp/custom-wezterm.lua" {
		t.Fatalf("DefaultPaths = %v", paths)
	}
}

func TestRunRequiresPaths(t *testing.T) {
	w := &Watcher{}
	if err := w.Run(context.Background()); err == nil {
		t.Fatalf("expected an error with no paths")
	}
}

func TestRunFiresOnWrite(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "wezterm.lua")
	if err := os.WriteFile(cfg, []byte("-- v1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	fired := make(chan struct{}, 1)
	w := &Watcher{
		Paths:    []string{cfg},
		Debounce: 10 * time.Millisecond,
		OnReload: func(ctx context.Context) error {
			select {
			case fired <- struct{}{}:
			default:
			}
			return nil
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher a moment to register before writing.
	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(cfg, []byte("-- v2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatalf("write never triggered a reload")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("watcher did not stop on context cancel")
	}
}

func TestRunIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "wezterm.lua")
	other := filepath.Join(dir, "other.lua")
	for _, f := range []string{cfg, other} {
		if err := os.WriteFile(f, []byte("-- \n"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	fired := make(chan struct{}, 1)
	w := &Watcher{
		Paths:    []string{cfg},
		Debounce: 10 * time.Millisecond,
		OnReload: func(ctx context.Context) error {
			select {
			case fired <- struct{}{}:
			default:
			}
			return nil
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(other, []byte("-- changed\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-fired:
		t.Fatalf("write to an unwatched sibling triggered a reload")
	case <-time.After(200 * time.Millisecond):
	}
}

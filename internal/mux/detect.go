package mux

import (
	"fmt"
	"os"
	"os/exec"
)

// Detect auto-detects the host multiplexer. It checks environment
// variables first, then falls back to checking whether the wezterm
// binary exists and has a reachable mux server.
func Detect() (Host, error) {
	if os.Getenv("WEZTERM_PANE") != "" || os.Getenv("WEZTERM_UNIX_SOCKET") != "" {
		return NewWezTerm(""), nil
	}

	if path, err := exec.LookPath("wezterm"); err == nil && path != "" {
		// Reachability check: listing panes fails when no GUI/mux
		// server is running.
		cmd := exec.Command(path, "cli", "list")
		if err := cmd.Run(); err == nil {
			return NewWezTerm(path), nil
		}
	}

	return nil, fmt.Errorf("no supported terminal multiplexer detected (set $WEZTERM_PANE or install wezterm)")
}

// FromName creates a Host by name.
func FromName(name string) (Host, error) {
	switch name {
	case "wezterm":
		return NewWezTerm(""), nil
	case "tmux":
		return nil, fmt.Errorf("tmux support is not yet implemented")
	default:
		return nil, fmt.Errorf("unknown multiplexer: %q (supported: wezterm)", name)
	}
}

package mux

import (
	"context"
	"time"

	"github.com/sunbearc22/panewright/internal/model"
)

// Await polls the live pane set until cond holds or the timeout
// elapses. Host commands are eventually consistent: a split, kill or
// resize is not guaranteed to be observable by the very next query, so
// every read that depends on a prior command goes through here instead
// of a blind sleep. Returns the last snapshot seen and whether cond
// held.
func Await(ctx context.Context, h Host, timeout, interval time.Duration, cond func([]model.Pane) bool) ([]model.Pane, bool) {
	if timeout <= 0 {
		timeout = 500 * time.Millisecond
	}
	if interval <= 0 {
		interval = 25 * time.Millisecond
	}
	deadline := time.Now().Add(timeout)
	var last []model.Pane
	for {
		panes, err := h.ListPanes(ctx)
		if err == nil {
			last = panes
			if cond(panes) {
				return panes, true
			}
		}
		if time.Now().After(deadline) {
			return last, false
		}
		select {
		case <-ctx.Done():
			return last, false
		case <-time.After(interval):
		}
	}
}

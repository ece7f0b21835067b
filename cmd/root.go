package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/sunbearc22/panewright/internal/config"
	"github.com/sunbearc22/panewright/internal/equalize"
	"github.com/sunbearc22/panewright/internal/model"
	"github.com/sunbearc22/panewright/internal/mux"
	"github.com/sunbearc22/panewright/internal/ops"
	telem "github.com/sunbearc22/panewright/internal/otel"
	"github.com/sunbearc22/panewright/internal/topo"
)

// Version is injected by the linker at release build time.
var Version = "dev"

var (
	// Global flags.
	flagHost   string
	flagPaneID string
)

var rootCmd = &cobra.Command{
	Use:   "panewright",
	Short: "Tree-aware pane geometry operations for terminal multiplexers",
	Long: `panewright tracks the split-tree topology of terminal panes and uses
it for geometry operations the host multiplexer does not provide as
atomic, tree-aware primitives: splitting with topology bookkeeping,
closing a pane while re-homing its descendants, and equalizing the
column widths of all panes in a tab.

The host only exposes a flat list of rectangles per pane; panewright
infers the logical parent/child/edge relationships, detects boundaries
the resize primitive cannot move, and plans adjustments around them.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagHost, "host", envOrDefault("PANEWRIGHT_HOST", ""),
		"terminal multiplexer: wezterm (default: auto-detect)")
	rootCmd.PersistentFlags().StringVar(&flagPaneID, "pane-id", "",
		"target pane id (default: $WEZTERM_PANE)")
}

// opEnv bundles the plumbing every operation needs.
type opEnv struct {
	cfg   *config.Config
	host  mux.Host
	tel   *telem.Telemetry
	store *topo.Store
}

// setupOp loads configuration, initializes telemetry and resolves the
// host. The returned cleanup flushes telemetry.
func setupOp(ctx context.Context) (*opEnv, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("config: %w", err)
	}

	telem.Version = Version
	tel, err := telem.Init(ctx, telem.OTELConfig{
		Endpoint: cfg.OTELEndpoint,
		Headers:  cfg.OTELHeaders,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: otel init failed: %v\n", err)
	}

	host, err := getHost(cfg)
	if err != nil {
		if tel != nil {
			tel.Shutdown(ctx)
		}
		return nil, nil, err
	}

	cleanup := func() {
		if tel != nil {
			tel.Shutdown(ctx)
		}
	}
	return &opEnv{cfg: cfg, host: host, tel: tel, store: topo.NewStore()}, cleanup, nil
}

// getHost returns the configured or auto-detected multiplexer.
func getHost(cfg *config.Config) (mux.Host, error) {
	name := flagHost
	if name == "" {
		name = cfg.Host
	}
	if name != "" {
		return mux.FromName(name)
	}
	return mux.Detect()
}

// resolveTarget resolves the target pane from --pane-id or
// $WEZTERM_PANE and looks up its window, tab and geometry.
func resolveTarget(ctx context.Context, host mux.Host) (model.Pane, error) {
	id := flagPaneID
	if id == "" {
		id = os.Getenv("WEZTERM_PANE")
	}
	if id == "" {
		return model.Pane{}, fmt.Errorf("no target pane: pass --pane-id or run inside the multiplexer")
	}
	panes, err := host.ListPanes(ctx)
	if err != nil {
		return model.Pane{}, fmt.Errorf("failed to list panes: %w", err)
	}
	p, ok := model.FindPane(panes, model.PaneID(id))
	if !ok {
		return model.Pane{}, fmt.Errorf("pane %s not found", id)
	}
	return p, nil
}

// opOptions converts the loaded config into mutation options.
func opOptions(cfg *config.Config) ops.Options {
	return ops.Options{
		Confirm: cfg.ConfirmTimeoutDuration,
		Poll:    cfg.PollIntervalDuration,
	}
}

// eqOptions converts the loaded config into equalize options.
func eqOptions(cfg *config.Config) equalize.Options {
	return equalize.Options{
		Confirm: cfg.ConfirmTimeoutDuration,
		Poll:    cfg.PollIntervalDuration,
	}
}

func envOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

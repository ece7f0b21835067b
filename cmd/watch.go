package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sunbearc22/panewright/internal/topo"
	"github.com/sunbearc22/panewright/internal/watch"
)

var flagWatchPaths []string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reconcile the topology whenever the host config is rewritten",
	Long: `Watch the host multiplexer's configuration files and reconcile the
topology store whenever one is written. The host rebuilds its layout on
config reload, so a write is the moment pane records are most likely to
have gone stale.

Paths default to the wezterm config locations ($WEZTERM_CONFIG_FILE,
~/.config/wezterm/wezterm.lua, ~/.wezterm.lua) and may be overridden
with --path or the watch_paths config key.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		env, cleanup, err := setupOp(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		paths := flagWatchPaths
		if len(paths) == 0 {
			paths = env.cfg.WatchPaths
		}
		if len(paths) == 0 {
			paths = watch.DefaultPaths()
		}

		w := &watch.Watcher{
			Paths: paths,
			OnReload: func(ctx context.Context) error {
				panes, err := env.host.ListPanes(ctx)
				if err != nil {
					return err
				}
				added, pruned := topo.Reconcile(env.store, panes)
				if env.tel != nil {
					env.tel.Metrics.RecordReconcile(ctx, added, pruned)
				}
				fmt.Printf("reconciled: %d panes live, %d added, %d pruned\n", len(panes), added, pruned)
				return nil
			},
		}
		fmt.Printf("watching %v\n", paths)
		if err := w.Run(ctx); err != nil && ctx.Err() == nil {
			return err
		}
		return nil
	},
}

func init() {
	watchCmd.Flags().StringArrayVar(&flagWatchPaths, "path", nil, "file to watch (repeatable)")
	rootCmd.AddCommand(watchCmd)
}

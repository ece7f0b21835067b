package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sunbearc22/panewright/internal/monitor"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Interactive topology monitor",
	Long: `Open an interactive view of the split-tree topology.

The monitor polls the live pane list, reconciles the topology store on
every refresh, and binds the mutation operations to single keys. Unlike
the one-shot commands the store lives for the whole session, so splits
made here accumulate the parent/child/edge records the equalizer uses.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, cleanup, err := setupOp(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		t := &monitor.TUI{
			Host:            env.host,
			Store:           env.store,
			RefreshInterval: env.cfg.RefreshDuration,
			SplitPercent:    env.cfg.SplitPercent,
			Confirm:         env.cfg.ConfirmTimeoutDuration,
			Poll:            env.cfg.PollIntervalDuration,
		}
		return t.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(monitorCmd)
}

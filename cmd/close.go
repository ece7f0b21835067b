package cmd

import (
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/sunbearc22/panewright/internal/ops"
)

var flagCloseConfirm bool

var closeCmd = &cobra.Command{
	Use:   "close",
	Short: "Close the target pane and re-home its descendants",
	Long: `Close the target pane.

Before the pane is killed its children are re-homed to its parent (or
chained under the eldest sibling when there is none), and the edge tags
of the adjacent panes are patched so the seam the pane governed stays
owned. With --confirm the kill is only issued after an interactive
yes/no prompt; declining leaves the layout untouched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, cleanup, err := setupOp(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		target, err := resolveTarget(ctx, env.host)
		if err != nil {
			return err
		}

		var span trace.Span
		if env.tel != nil {
			ctx, span = env.tel.Tracer.Start(ctx, "close",
				trace.WithAttributes(attribute.String("pane.id", string(target.ID))))
			defer span.End()
		}

		if err := ops.Close(ctx, env.store, env.host, opOptions(env.cfg),
			target.Window, target.Tab, target.ID, flagCloseConfirm); err != nil {
			return err
		}
		if env.tel != nil {
			env.tel.Metrics.RecordClose(ctx)
		}
		return nil
	},
}

func init() {
	closeCmd.Flags().BoolVar(&flagCloseConfirm, "confirm", false, "prompt before killing the pane")
	rootCmd.AddCommand(closeCmd)
}

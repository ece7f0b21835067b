package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/sunbearc22/panewright/internal/equalize"
)

var equalizeCmd = &cobra.Command{
	Use:   "equalize",
	Short: "Equalize the column widths of the target pane's tab",
	Long: `Equalize the column widths of all panes in the target pane's tab.

Panes are grouped into full-height columns, boundaries the resize
primitive cannot move are detected and excluded, and each remaining
group is planned to an equal share of the tab width. Resizes are
issued edge by edge, confirming each applied width against the live
layout before moving on.`,
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
			ctx, span = env.tel.Tracer.Start(ctx, "equalize",
				trace.WithAttributes(
					attribute.String("window.id", string(target.Window)),
					attribute.String("tab.id", string(target.Tab)),
				))
			defer span.End()
		}

		res, err := equalize.Run(ctx, env.store, env.host, eqOptions(env.cfg),
			target.Window, target.Tab)
		if err != nil {
			return err
		}
		if env.tel != nil {
			env.tel.Metrics.RecordEqualize(ctx, res.Resizes, len(res.Locked))
		}
		fmt.Printf("equalized tab %s: %d groups, %d locked boundaries, %d resizes\n",
			target.Tab, res.Groups, len(res.Locked), res.Resizes)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(equalizeCmd)
}

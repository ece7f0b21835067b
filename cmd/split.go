package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/sunbearc22/panewright/internal/model"
	"github.com/sunbearc22/panewright/internal/ops"
)

var (
	flagSplitPercent int
	flagSplitCells   int
)

var splitCmd = &cobra.Command{
	Use:   "split <left|right|up|down>",
	Short: "Split the target pane and record the topology",
	Long: `Split the target pane in the given direction.

The new pane is recorded as a child of the source pane, with edge tags
derived from the split direction, so later close and equalize
operations know which slit side each pane governs.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		dir, err := model.ParseDirection(args[0])
		if err != nil {
			return err
		}

		env, cleanup, err := setupOp(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		target, err := resolveTarget(ctx, env.host)
		if err != nil {
			return err
		}

		size := model.SizeSpec{Percent: flagSplitPercent, Cells: flagSplitCells}
		if size.Percent == 0 && size.Cells == 0 {
			size.Percent = env.cfg.SplitPercent
		}

		var span trace.Span
		if env.tel != nil {
			ctx, span = env.tel.Tracer.Start(ctx, "split",
				trace.WithAttributes(
					attribute.String("pane.id", string(target.ID)),
					attribute.String("split.direction", dir.String()),
				))
			defer span.End()
		}

		newID, err := ops.Split(ctx, env.store, env.host, opOptions(env.cfg),
			target.Window, target.Tab, target.ID, dir, size)
		if err != nil {
			return err
		}
		if env.tel != nil {
			env.tel.Metrics.RecordSplit(ctx, dir.String())
		}
		if newID != "" {
			fmt.Println(newID)
		}
		return nil
	},
}

func init() {
	splitCmd.Flags().IntVar(&flagSplitPercent, "percent", 0, "size of the new pane as a percentage of the source")
	splitCmd.Flags().IntVar(&flagSplitCells, "cells", 0, "size of the new pane in cells")
	rootCmd.AddCommand(splitCmd)
}

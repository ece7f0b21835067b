package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sunbearc22/panewright/internal/model"
	"github.com/sunbearc22/panewright/internal/topo"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List live panes with their geometry and topology tags",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, cleanup, err := setupOp(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		panes, err := env.host.ListPanes(ctx)
		if err != nil {
			return fmt.Errorf("failed to list panes: %w", err)
		}
		added, pruned := topo.Reconcile(env.store, panes)
		if env.tel != nil {
			env.tel.Metrics.RecordReconcile(ctx, added, pruned)
		}

		for _, w := range model.Windows(panes) {
			for _, t := range model.TabsInWindow(panes, w) {
				fmt.Printf("window %s tab %s\n", w, t)
				for _, p := range model.PanesInTab(panes, w, t) {
					active := " "
					if p.Active {
						active = "*"
					}
					line := fmt.Sprintf("  %s pane %-4s %3dx%-3d @(%d,%d)", active, p.ID, p.Width, p.Height, p.Left, p.Top)
					if n, ok := env.store.Get(topo.Key{Window: w, Tab: t, Pane: p.ID}); ok {
						line += fmt.Sprintf("  v=%s h=%s", n.VSplit, n.HSplit)
						if n.Parent != "" {
							line += fmt.Sprintf(" parent=%s", n.Parent)
						}
						if len(n.Children) > 0 {
							line += fmt.Sprintf(" children=%v", n.Children)
						}
					}
					fmt.Println(line)
				}
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

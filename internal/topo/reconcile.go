package topo

import "github.com/sunbearc22/panewright/internal/model"

// Reconcile synchronizes the store with a live snapshot of the host's
// panes. Stored records whose window, tab or pane no longer exists are
// dropped, skeletons are created for panes the store has never seen,
// and parent/child references left dangling by the pruning are
// repaired. Inconsistent input is corrected, never reported: external
// changes (splits made behind our back, panes killed by the host) are
// an expected condition here.
//
// Running Reconcile twice against the same snapshot is a no-op the
// second time. Returns how many records were created and pruned.
func Reconcile(s *Store, live []model.Pane) (added, pruned int) {
	liveKeys := make(map[Key]bool, len(live))
	for _, p := range live {
		liveKeys[Key{p.Window, p.Tab, p.ID}] = true
	}

	// Prune records for windows, tabs and panes that are gone.
	for k := range s.nodes {
		if !liveKeys[k] {
			delete(s.nodes, k)
			pruned++
		}
	}

	// Skeletons for panes we have never seen. Their structure stays
	// unknown until a split made through us fills it in.
	for k := range liveKeys {
		if _, ok := s.nodes[k]; !ok {
			s.Ensure(k)
			added++
		}
	}

	// Repair dangling references. Directions entries are removed in
	// lockstep with their children so the arrays stay parallel.
	for k, n := range s.nodes {
		if n.Parent != "" && !liveKeys[Key{k.Window, k.Tab, n.Parent}] {
			n.Parent = ""
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			if !liveKeys[Key{k.Window, k.Tab, n.Children[i]}] {
				n.RemoveChildAt(i)
			}
		}
	}
	return added, pruned
}

package ops

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sunbearc22/panewright/internal/model"
	"github.com/sunbearc22/panewright/internal/mux"
	"github.com/sunbearc22/panewright/internal/topo"
)

// patchSide says which neighbor of a closed pane takes over its
// vertical edge tag.
type patchSide int

const (
	patchNone patchSide = iota
	patchLeft
	patchRight
)

// Close destroys the target pane and keeps the topology consistent:
// the target's children are re-homed under its former parent (or
// chained under each other when there is none), the parent's child
// list is spliced, and the vertical edge tags of up to two neighboring
// panes are patched for the known geometric special cases. All store
// mutations happen before the close primitive is invoked.
func Close(ctx context.Context, st *topo.Store, host mux.Host, opts Options,
	w model.WindowID, t model.TabID, target model.PaneID, confirm bool) error {

	live, err := host.ListPanes(ctx)
	if err != nil {
		return err
	}
	topo.Reconcile(st, live)

	key := topo.Key{Window: w, Tab: t, Pane: target}
	node, ok := st.Get(key)
	if !ok {
		return fmt.Errorf("close: pane %s is not live in window %s tab %s", target, w, t)
	}

	rehomeChildren(st, w, t, node)
	spliceIntoParent(st, w, t, target, node)

	// Neighbor lookups are live adjacency queries; the probe
	// activation they imply is harmless here since the target is
	// about to go away.
	leftPane, hasLeft, err := host.AdjacentPane(ctx, target, model.DirLeft)
	if err != nil {
		return err
	}
	rightPane, hasRight, err := host.AdjacentPane(ctx, target, model.DirRight)
	if err != nil {
		return err
	}
	patchNeighborEdges(st, w, t, node, leftPane, hasLeft, rightPane, hasRight)

	st.Delete(key)

	if err := host.KillPane(ctx, target, confirm); err != nil {
		if errors.Is(err, mux.ErrDeclined) {
			// The store was already mutated; resynchronize against
			// the still-alive pane instead of attempting a rollback.
			if panes, lerr := host.ListPanes(ctx); lerr == nil {
				topo.Reconcile(st, panes)
			}
			fmt.Fprintf(os.Stderr, "close: declined; topology resynchronized\n")
			return nil
		}
		return err
	}

	after, _ := mux.Await(ctx, host, opts.Confirm, opts.Poll, func(panes []model.Pane) bool {
		_, stillThere := model.FindPane(model.PanesInTab(panes, w, t), target)
		return !stillThere
	})

	// A tab that converges to a single pane has no splits left; the
	// survivor becomes the sole root with a clean record.
	if remaining := model.PanesInTab(after, w, t); len(remaining) == 1 {
		st.Reset(topo.Key{Window: w, Tab: t, Pane: remaining[0].ID})
	}
	return nil
}

// rehomeChildren reassigns the target's children. With a parent, every
// child simply moves up one level. Without one, the children are
// chained: the first inherits the target's parentless status and each
// subsequent child hangs off the previous one, carrying its original
// split direction along.
func rehomeChildren(st *topo.Store, w model.WindowID, t model.TabID, node *topo.Node) {
	if len(node.Children) == 0 {
		return
	}
	if node.Parent != "" {
		for _, c := range node.Children {
			if cn, ok := st.Get(topo.Key{Window: w, Tab: t, Pane: c}); ok {
				cn.Parent = node.Parent
			}
		}
		return
	}
	if first, ok := st.Get(topo.Key{Window: w, Tab: t, Pane: node.Children[0]}); ok {
		first.Parent = ""
	}
	for i := 1; i < len(node.Children); i++ {
		prev := node.Children[i-1]
		cur := node.Children[i]
		if pn, ok := st.Get(topo.Key{Window: w, Tab: t, Pane: prev}); ok {
			pn.AppendChild(cur, node.Directions[i])
		}
		if cn, ok := st.Get(topo.Key{Window: w, Tab: t, Pane: cur}); ok {
			cn.Parent = prev
		}
	}
}

// spliceIntoParent removes the target from its parent's child list.
// A single child takes the target's slot in place; several children
// are appended at the end of the parent's lists.
func spliceIntoParent(st *topo.Store, w model.WindowID, t model.TabID, target model.PaneID, node *topo.Node) {
	if node.Parent == "" {
		return
	}
	parent, ok := st.Get(topo.Key{Window: w, Tab: t, Pane: node.Parent})
	if !ok {
		return
	}
	idx := parent.IndexOfChild(target)
	if idx < 0 {
		return
	}
	switch len(node.Children) {
	case 0:
		parent.RemoveChildAt(idx)
	case 1:
		parent.Children[idx] = node.Children[0]
		parent.Directions[idx] = node.Directions[0]
	default:
		parent.RemoveChildAt(idx)
		parent.Children = append(parent.Children, node.Children...)
		parent.Directions = append(parent.Directions, node.Directions...)
	}
}

// patchNeighborEdges flips a neighbor's vertical edge tag to the
// target's under the two known geometric cases. Everything else is
// left untouched; see vsplitPatch.
func patchNeighborEdges(st *topo.Store, w model.WindowID, t model.TabID, node *topo.Node,
	leftPane model.Pane, hasLeft bool, rightPane model.Pane, hasRight bool) {

	leftEdge, rightEdge := model.EdgeNone, model.EdgeNone
	if hasLeft {
		if ln, ok := st.Get(topo.Key{Window: w, Tab: t, Pane: leftPane.ID}); ok {
			leftEdge = ln.VSplit
		}
	}
	if hasRight {
		if rn, ok := st.Get(topo.Key{Window: w, Tab: t, Pane: rightPane.ID}); ok {
			rightEdge = rn.VSplit
		}
	}

	switch vsplitPatch(hasLeft, leftEdge, node.VSplit, hasRight, rightEdge) {
	case patchLeft:
		if ln, ok := st.Get(topo.Key{Window: w, Tab: t, Pane: leftPane.ID}); ok {
			ln.VSplit = node.VSplit
		}
	case patchRight:
		if rn, ok := st.Get(topo.Key{Window: w, Tab: t, Pane: rightPane.ID}); ok {
			rn.VSplit = node.VSplit
		}
	case patchNone:
		if node.VSplit != model.EdgeNone && (hasLeft || hasRight) {
			fmt.Fprintf(os.Stderr, "close: unhandled edge-tag combination (left=%v %s, target %s, right=%v %s); neighbor tags left as-is\n",
				hasLeft, leftEdge, node.VSplit, hasRight, rightEdge)
		}
	}
}

// vsplitPatch is the fixed case table over the closed pane's
// neighborhood. Case 1: a left neighbor governing its right edge, a
// target governing its left edge and no right neighbor hands the
// target's tag to the left neighbor. Case 2: a right neighbor
// governing its left edge takes the tag of a target governing its
// right edge when there is no left neighbor, or when the left neighbor
// governs its own left edge. Every other combination is unhandled.
func vsplitPatch(hasLeft bool, left model.Edge, target model.Edge, hasRight bool, right model.Edge) patchSide {
	if hasLeft && left == model.EdgeRight && target == model.EdgeLeft && !hasRight {
		return patchLeft
	}
	if target == model.EdgeRight && hasRight && right == model.EdgeLeft {
		if !hasLeft || left == model.EdgeLeft {
			return patchRight
		}
	}
	return patchNone
}

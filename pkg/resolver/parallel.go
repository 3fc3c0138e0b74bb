package resolver

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/hansjhaland/deepstack-holdem/pkg/holdem"
	"github.com/hansjhaland/deepstack-holdem/pkg/statetree"
)

// ResolveParallel runs the same algorithm as Resolve, but fans the
// downward rollout out across a chance node's sampled events (spec
// §5's "independent chance-event subtrees") and across a player node's
// actions: each branch's descendant nodes are disjoint from its
// siblings', so no private buffer copies
// are needed, only bounded goroutine fan-out. The ascending
// regret-matching pass stays sequential, since consecutive iterations
// carry a loop dependency through cumulative regret.
func (r *Resolver) ResolveParallel(tree *statetree.Tree, rootIdx int, rP, rO []float64, endStage holdem.Stage, T int) ([][]float64, error) {
	root := tree.Nodes[rootIdx]
	h := len(root.Sigma)
	if len(rP) != h || len(rO) != h {
		return nil, fmt.Errorf("resolve: ranges must have length %d, got %d and %d", h, len(rP), len(rO))
	}
	if T <= 0 {
		return nil, fmt.Errorf("resolve: iteration count must be positive, got %d", T)
	}

	tc := &traversal{tree: tree, oracle: r.Oracle, net: r.Net, endStage: endStage, h: h}
	accum := newZeroRows(h)

	for t := 0; t < T; t++ {
		if _, _, err := tc.runParallel(rootIdx, rP, rO); err != nil {
			return nil, err
		}
		updateStrategy(tree, rootIdx)
		repairNaNs(root.Sigma)
		for i := 0; i < h; i++ {
			for a := 0; a < holdem.NumActions; a++ {
				accum[i][a] += root.Sigma[i][a]
			}
		}
	}

	avg := newZeroRows(h)
	for i := 0; i < h; i++ {
		for a := 0; a < holdem.NumActions; a++ {
			avg[i][a] = accum[i][a] / float64(T)
		}
	}
	return avg, nil
}

// runParallel mirrors traversal.run, except that at a chance node each
// sampled event's subtree, and at a player node each action's subtree,
// is traversed on its own goroutine.
func (tc *traversal) runParallel(idx int, rP, rO []float64) ([]float64, []float64, error) {
	n := tc.tree.Nodes[idx]

	var vActing, vOther []float64
	var err error
	switch n.Kind {
	case statetree.TerminalNode:
		if n.FoldWinner == -1 {
			vActing, vOther, err = tc.showdownValue(n, rP, rO)
		} else {
			vActing, vOther = zeros(tc.h), zeros(tc.h)
		}

	case statetree.ChanceNode:
		vActing, vOther, err = tc.chanceValueParallel(n, rP, rO)

	default: // PlayerNode
		if n.Cutoff {
			vActing, vOther, err = tc.cutoffValue(n, rP, rO)
		} else {
			vActing, vOther, err = tc.playerValueParallel(n, rP, rO)
		}
	}
	if err != nil {
		return nil, nil, err
	}
	n.VActing, n.VOther = vActing, vOther
	return vActing, vOther, nil
}

func (tc *traversal) chanceValueParallel(n *statetree.Node, rP, rO []float64) ([]float64, []float64, error) {
	if len(n.Events) == 0 {
		return zeros(tc.h), zeros(tc.h), nil
	}

	actings := make([][]float64, len(n.Events))
	others := make([][]float64, len(n.Events))

	var g errgroup.Group
	for i, ev := range n.Events {
		i, ev := i, ev
		g.Go(func() error {
			a, o, err := tc.runParallel(ev.Child, rP, rO)
			if err != nil {
				return err
			}
			actings[i] = a
			others[i] = o
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	weight := 1.0 / float64(len(n.Events))
	vActing := zeros(tc.h)
	vOther := zeros(tc.h)
	for i := range n.Events {
		for j := 0; j < tc.h; j++ {
			vActing[j] += weight * actings[i][j]
			vOther[j] += weight * others[i][j]
		}
	}
	return vActing, vOther, nil
}

func (tc *traversal) playerValueParallel(n *statetree.Node, rP, rO []float64) ([]float64, []float64, error) {
	actions := make([]holdem.Action, 0, holdem.NumActions)
	for a := holdem.Action(0); a < holdem.NumActions; a++ {
		if _, ok := n.ActionsToChildren[a]; ok {
			actions = append(actions, a)
		}
	}

	childActings := make([][]float64, len(actions))
	childOthers := make([][]float64, len(actions))

	var g errgroup.Group
	for i, a := range actions {
		i, a := i, a
		g.Go(func() error {
			childIdx := n.ActionsToChildren[a]
			rPPrime := bayesianUpdate(rP, n.Sigma, a)
			acting, other, err := tc.runParallel(childIdx, rO, rPPrime)
			if err != nil {
				return err
			}
			childActings[i] = acting
			childOthers[i] = other
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	vActing := zeros(tc.h)
	vOther := zeros(tc.h)
	for i, a := range actions {
		for h := 0; h < tc.h; h++ {
			vActing[h] += n.Sigma[h][a] * childOthers[i][h]
			vOther[h] += n.Sigma[h][a] * childActings[i][h]
		}
	}

	n.VActing = vActing
	n.VOther = vOther
	return vActing, vOther, nil
}

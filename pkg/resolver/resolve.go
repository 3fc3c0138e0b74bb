// Package resolver implements the depth-limited CFR re-solve: a
// downward value rollout over a state tree followed by an upward
// regret-matching pass, repeated for a fixed iteration count and
// averaged into a single strategy matrix.
package resolver

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/hansjhaland/deepstack-holdem/pkg/holdem"
	"github.com/hansjhaland/deepstack-holdem/pkg/oracle"
	"github.com/hansjhaland/deepstack-holdem/pkg/statetree"
	"github.com/hansjhaland/deepstack-holdem/pkg/valuenet"
)

// epsilon floors positive regret so a hole pair's row never sums to
// zero (the only source of a NaN strategy row).
const epsilon = 0.001

// Resolver runs CFR re-solves against a single oracle and, past the
// tree's cutoff, a value network.
type Resolver struct {
	Oracle *oracle.Oracle
	Net    valuenet.Predictor
	// Logger, if set, receives one structured start/finish line per
	// Resolve call, tagged with a fresh run ID for log correlation
	// across a resolve's own output and any caller-side logging.
	Logger *log.Logger
}

// New builds a Resolver. net may be nil if the caller guarantees the
// tree's cutoff never lands above the river (spec §7 kind 4).
func New(o *oracle.Oracle, net valuenet.Predictor) *Resolver {
	return &Resolver{Oracle: o, Net: net}
}

// Resolve runs T CFR iterations from rootIdx and returns the
// element-wise mean of the root's per-iteration strategy matrix.
func (r *Resolver) Resolve(tree *statetree.Tree, rootIdx int, rP, rO []float64, endStage holdem.Stage, T int) ([][]float64, error) {
	root := tree.Nodes[rootIdx]
	h := len(root.Sigma)
	if len(rP) != h || len(rO) != h {
		return nil, fmt.Errorf("resolve: ranges must have length %d, got %d and %d", h, len(rP), len(rO))
	}
	if T <= 0 {
		return nil, fmt.Errorf("resolve: iteration count must be positive, got %d", T)
	}

	runID := uuid.NewString()
	if r.Logger != nil {
		r.Logger.Info("resolve started", "run_id", runID, "nodes", len(tree.Nodes), "h", h, "iterations", T)
	}

	tc := &traversal{tree: tree, oracle: r.Oracle, net: r.Net, endStage: endStage, h: h}
	accum := newZeroRows(h)

	for t := 0; t < T; t++ {
		if _, _, err := tc.run(rootIdx, rP, rO); err != nil {
			if r.Logger != nil {
				r.Logger.Error("resolve failed", "run_id", runID, "iteration", t, "error", err)
			}
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
	if r.Logger != nil {
		r.Logger.Info("resolve finished", "run_id", runID)
	}
	return avg, nil
}

// traversal carries the read-only context a downward rollout needs,
// so Resolver itself holds no per-call mutable state and can be
// shared across concurrent resolve calls.
type traversal struct {
	tree     *statetree.Tree
	oracle   *oracle.Oracle
	net      valuenet.Predictor
	endStage holdem.Stage
	h        int
}

// run is subtree_traversal_rollout: the descending pass that writes
// v_acting and v_other onto every node it visits (player, chance,
// cutoff, and terminal alike), so updateStrategy can read any child's
// VOther.
func (tc *traversal) run(idx int, rP, rO []float64) ([]float64, []float64, error) {
	n := tc.tree.Nodes[idx]

	var vActing, vOther []float64
	var err error
	switch n.Kind {
	case statetree.TerminalNode:
		if n.FoldWinner == -1 {
			vActing, vOther, err = tc.showdownValue(n, rP, rO)
		} else {
			// An unevaluable (fold) terminal contributes nothing to the
			// value rollout; the chip transfer is already reflected in
			// the pot carried by the branch that reached it.
			vActing, vOther = zeros(tc.h), zeros(tc.h)
		}

	case statetree.ChanceNode:
		vActing, vOther, err = tc.chanceValue(n, rP, rO)

	default: // PlayerNode
		if n.Cutoff {
			vActing, vOther, err = tc.cutoffValue(n, rP, rO)
		} else {
			vActing, vOther, err = tc.playerValue(n, rP, rO)
		}
	}
	if err != nil {
		return nil, nil, err
	}
	n.VActing, n.VOther = vActing, vOther
	return vActing, vOther, nil
}

func (tc *traversal) showdownValue(n *statetree.Node, rP, rO []float64) ([]float64, []float64, error) {
	u, _, err := tc.oracle.UtilityMatrix(n.Board)
	if err != nil {
		return nil, nil, fmt.Errorf("showdown value: %w", err)
	}
	return matVec(u, rO), negRowVecMat(rP, u), nil
}

func (tc *traversal) cutoffValue(n *statetree.Node, rP, rO []float64) ([]float64, []float64, error) {
	if n.Stage > tc.endStage {
		return zeros(tc.h), zeros(tc.h), nil
	}
	if tc.net == nil || n.Stage == holdem.PreFlop {
		// Matches the original resolver's own admission that a
		// pre-flop cutoff should never be requested: there is no
		// pre-flop value network, so fall back to a neutral estimate.
		return uniform(tc.h, 0.5), uniform(tc.h, 0.5), nil
	}
	input := valuenet.BuildInput(rP, n.Board, n.Pot, rO, n.Stage, tc.oracle.Limited())
	v1, v2, _, err := tc.net.Predict(n.Stage, input, tc.oracle.Limited())
	if err != nil {
		return nil, nil, fmt.Errorf("cutoff value network: %w", err)
	}
	return v1, v2, nil
}

func (tc *traversal) chanceValue(n *statetree.Node, rP, rO []float64) ([]float64, []float64, error) {
	vActing := zeros(tc.h)
	vOther := zeros(tc.h)
	if len(n.Events) == 0 {
		return vActing, vOther, nil
	}
	weight := 1.0 / float64(len(n.Events))
	for _, ev := range n.Events {
		a, o, err := tc.run(ev.Child, rP, rO)
		if err != nil {
			return nil, nil, err
		}
		for i := 0; i < tc.h; i++ {
			vActing[i] += weight * a[i]
			vOther[i] += weight * o[i]
		}
	}
	return vActing, vOther, nil
}

func (tc *traversal) playerValue(n *statetree.Node, rP, rO []float64) ([]float64, []float64, error) {
	vActing := zeros(tc.h)
	vOther := zeros(tc.h)

	for a := holdem.Action(0); a < holdem.NumActions; a++ {
		childIdx, ok := n.ActionsToChildren[a]
		if !ok {
			continue
		}
		rPPrime := bayesianUpdate(rP, n.Sigma, a)
		childActing, childOther, err := tc.run(childIdx, rO, rPPrime)
		if err != nil {
			return nil, nil, err
		}
		for i := 0; i < tc.h; i++ {
			vActing[i] += n.Sigma[i][a] * childOther[i]
			vOther[i] += n.Sigma[i][a] * childActing[i]
		}
	}

	n.VActing = vActing
	n.VOther = vOther
	return vActing, vOther, nil
}

// updateStrategy is the ascending pass: recurse into PlayerState
// children first, then fold this node's v_other-vs-v_acting gap into
// cumulative regret and re-derive σ by regret matching.
func updateStrategy(tree *statetree.Tree, idx int) {
	n := tree.Nodes[idx]
	if n.Kind != statetree.PlayerNode || n.Cutoff {
		return
	}

	for a := holdem.Action(0); a < holdem.NumActions; a++ {
		childIdx, ok := n.ActionsToChildren[a]
		if !ok {
			continue
		}
		if tree.Nodes[childIdx].Kind == statetree.PlayerNode {
			updateStrategy(tree, childIdx)
		}
	}

	h := len(n.Sigma)
	for hIdx := 0; hIdx < h; hIdx++ {
		rowSum := 0.0
		for a := holdem.Action(0); a < holdem.NumActions; a++ {
			childIdx, ok := n.ActionsToChildren[a]
			if !ok {
				continue
			}
			child := tree.Nodes[childIdx]
			regret := child.VOther[hIdx] - n.VActing[hIdx]
			n.CumulativeRegret[hIdx][a] += regret
			n.PositiveRegret[hIdx][a] = math.Max(epsilon, n.CumulativeRegret[hIdx][a])
			rowSum += n.PositiveRegret[hIdx][a]
		}
		for a := 0; a < holdem.NumActions; a++ {
			n.Sigma[hIdx][a] = n.PositiveRegret[hIdx][a] / rowSum
		}
	}
}

// repairNaNs fills any row that failed to normalize to ~1 by
// spreading the residual mass evenly across its NaN cells, per spec
// §7 kind 3. The epsilon floor in updateStrategy makes this
// unreachable in practice; it is kept as the documented backstop.
func repairNaNs(sigma [][]float64) {
	for _, row := range sigma {
		var nanIdx []int
		sum := 0.0
		for i, v := range row {
			if math.IsNaN(v) {
				nanIdx = append(nanIdx, i)
				continue
			}
			sum += v
		}
		if len(nanIdx) == 0 {
			continue
		}
		residual := (1 - sum) / float64(len(nanIdx))
		for _, i := range nanIdx {
			row[i] = residual
		}
	}
}

// bayesianUpdate reweights r by how much more or less likely action a
// is under σ for each hole pair, relative to its average likelihood.
// Under a uniform σ, p(a|h) == p(a) for every h, so the update is the
// identity (spec §8 scenario 3).
func bayesianUpdate(r []float64, sigma [][]float64, a holdem.Action) []float64 {
	h := len(r)
	pGivenH := make([]float64, h)
	sum := 0.0
	for i := 0; i < h; i++ {
		pGivenH[i] = sigma[i][a]
		sum += pGivenH[i]
	}
	pAction := sum / float64(h)
	out := make([]float64, h)
	if pAction == 0 {
		copy(out, r)
		return out
	}
	for i := 0; i < h; i++ {
		out[i] = r[i] * pGivenH[i] / pAction
	}
	return out
}

func matVec(m [][]float64, v []float64) []float64 {
	out := make([]float64, len(m))
	for i := range m {
		sum := 0.0
		for j := range v {
			sum += m[i][j] * v[j]
		}
		out[i] = sum
	}
	return out
}

// negRowVecMat computes -(v^T * m): v weights m's rows, producing a
// vector indexed by m's columns.
func negRowVecMat(v []float64, m [][]float64) []float64 {
	if len(m) == 0 {
		return nil
	}
	out := make([]float64, len(m[0]))
	for i := range m {
		for j := range m[i] {
			out[j] += v[i] * m[i][j]
		}
	}
	for j := range out {
		out[j] = -out[j]
	}
	return out
}

func zeros(h int) []float64 { return make([]float64, h) }

func uniform(h int, val float64) []float64 {
	v := make([]float64, h)
	for i := range v {
		v[i] = val
	}
	return v
}

func newZeroRows(h int) [][]float64 {
	m := make([][]float64, h)
	for i := range m {
		m[i] = make([]float64, holdem.NumActions)
	}
	return m
}

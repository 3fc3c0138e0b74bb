package resolver

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/hansjhaland/deepstack-holdem/pkg/cards"
	"github.com/hansjhaland/deepstack-holdem/pkg/holdem"
	"github.com/hansjhaland/deepstack-holdem/pkg/oracle"
	"github.com/hansjhaland/deepstack-holdem/pkg/statetree"
	"github.com/hansjhaland/deepstack-holdem/pkg/valuenet"
)

func uniformRange(h int) []float64 {
	r := make([]float64, h)
	for i := range r {
		r[i] = 1.0 / float64(h)
	}
	return r
}

// Spec §8 scenario 3: under a uniform σ, bayesian_update is the identity.
func TestBayesianUpdateIdentityUnderUniformSigma(t *testing.T) {
	h := 5
	r := []float64{0.1, 0.2, 0.3, 0.15, 0.25}
	sigma := make([][]float64, h)
	for i := range sigma {
		sigma[i] = []float64{1.0 / 3, 1.0 / 3, 1.0 / 3}
	}
	out := bayesianUpdate(r, sigma, holdem.Call)
	for i := range r {
		require.InDelta(t, r[i], out[i], 1e-9)
	}
}

// Spec §8 scenario 5: showdown leaf values are zero-sum under the
// acting/opponent ranges that reached it.
func TestShowdownValuesZeroSum(t *testing.T) {
	o := oracle.New(true)
	board, err := cards.ParseCards("TdJdQd2h3c")
	require.NoError(t, err)
	h := o.H()
	rP := uniformRange(h)
	rO := uniformRange(h)

	tc := &traversal{oracle: o, endStage: holdem.River, h: h}
	n := &statetree.Node{Kind: statetree.TerminalNode, Board: board, FoldWinner: -1}
	vActing, vOther, err := tc.showdownValue(n, rP, rO)
	require.NoError(t, err)

	var dot1, dot2 float64
	for i := 0; i < h; i++ {
		dot1 += rP[i] * vActing[i]
		dot2 += rO[i] * vOther[i]
	}
	require.InDelta(t, 0, dot1+dot2, 1e-6)
}

type fakeNet struct{ h int }

func (f fakeNet) Predict(stage holdem.Stage, input []float64, limited bool) ([]float64, []float64, float64, error) {
	v1 := make([]float64, f.h)
	v2 := make([]float64, f.h)
	for i := range v1 {
		v1[i] = 0.1
		v2[i] = -0.1
	}
	return v1, v2, 0, nil
}

// Spec §8 scenario 4: a pre-flop->flop resolve with a small iteration
// count terminates and returns a well-formed H x 3 strategy matrix.
func TestResolvePreflopToFlopTerminates(t *testing.T) {
	o := oracle.New(true)
	h := o.H()

	cfg := statetree.RootConfig{
		ActingPlayer: 0,
		Stacks:       [2]float64{100, 100},
		Pot:          2,
		RaisesLeft:   3,
		BetToCall:    1,
		Stage:        holdem.PreFlop,
	}
	tree, rootIdx := statetree.GenerateRootState(cfg, h)
	build := statetree.BuildConfig{MaxEvents: 2, RaisesPerStage: 3, Limited: true}
	statetree.GenerateSubtree(tree, rootIdx, holdem.Flop, 1, build, rand.New(rand.NewSource(11)))

	r := New(o, fakeNet{h: h})
	rP := uniformRange(h)
	rO := uniformRange(h)

	strategy, err := r.Resolve(tree, rootIdx, rP, rO, holdem.Flop, 5)
	require.NoError(t, err)
	require.Len(t, strategy, h)
	for _, row := range strategy {
		require.Len(t, row, holdem.NumActions)
		sum := 0.0
		for _, v := range row {
			require.GreaterOrEqual(t, v, -1e-9)
			require.False(t, v != v, "NaN in strategy row")
			sum += v
		}
		require.InDelta(t, 1, sum, 1e-6)
	}
}

func TestResolveLogsStartAndFinishWhenLoggerSet(t *testing.T) {
	o := oracle.New(true)
	h := o.H()
	cfg := statetree.RootConfig{ActingPlayer: 0, Stacks: [2]float64{10, 10}, Stage: holdem.River, Pot: 4, RaisesLeft: 3}
	tree, rootIdx := statetree.GenerateRootState(cfg, h)
	statetree.GenerateSubtree(tree, rootIdx, holdem.River, 1, statetree.BuildConfig{MaxEvents: 1, RaisesPerStage: 3, Limited: true}, rand.New(rand.NewSource(3)))

	var buf bytes.Buffer
	r := New(o, nil)
	r.Logger = log.New(&buf)

	_, err := r.Resolve(tree, rootIdx, uniformRange(h), uniformRange(h), holdem.River, 2)
	require.NoError(t, err)
	require.Contains(t, buf.String(), "resolve started")
	require.Contains(t, buf.String(), "resolve finished")
}

func TestResolveRejectsMismatchedRangeLength(t *testing.T) {
	o := oracle.New(true)
	h := o.H()
	cfg := statetree.RootConfig{ActingPlayer: 0, Stacks: [2]float64{10, 10}, Stage: holdem.PreFlop}
	tree, rootIdx := statetree.GenerateRootState(cfg, h)

	r := New(o, nil)
	_, err := r.Resolve(tree, rootIdx, []float64{1}, []float64{1}, holdem.Flop, 1)
	require.Error(t, err)
}

var _ valuenet.Predictor = fakeNet{}

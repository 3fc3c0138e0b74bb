// Package valuenet implements the per-stage counterfactual value
// networks the resolver consults once a subtree traversal reaches its
// depth/stage cutoff: a small MLP that maps a pair of ranges, the
// public board, and the relative pot to each player's per-hole-pair
// value, trained against exact CFR targets from the oracle.
package valuenet

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/hansjhaland/deepstack-holdem/pkg/cards"
	"github.com/hansjhaland/deepstack-holdem/pkg/holdem"
)

// hiddenWidths is the shared trunk's layer widths.
var hiddenWidths = [3]int{512, 256, 128}

// Predictor is what the resolver needs from a value network: a
// per-stage, per-deck-configuration forward pass.
type Predictor interface {
	Predict(stage holdem.Stage, input []float64, limited bool) (v1, v2 []float64, z float64, err error)
}

// layer is one fully-connected layer: Weights is out x in, Bias has
// length out.
type layer struct {
	Weights [][]float64
	Bias    []float64
}

func (l *layer) forward(x []float64) []float64 {
	out := make([]float64, len(l.Bias))
	for i := range out {
		sum := l.Bias[i]
		row := l.Weights[i]
		for j, xv := range x {
			sum += row[j] * xv
		}
		out[i] = sum
	}
	return out
}

func relu(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		if v > 0 {
			out[i] = v
		}
	}
	return out
}

// Network is one stage's value network: a shared ReLU trunk feeding
// two linear heads (one per player) of width H.
type Network struct {
	Stage   holdem.Stage
	Limited bool
	H       int
	D       int // board multi-hot width

	Trunk []layer // 3 layers: input->512, 512->256, 256->128
	P1    layer    // 128 -> H
	P2    layer    // 128 -> H
}

// inputSize is the flat [r1(H) | board(D) | pot(1) | r2(H)] width.
func (n *Network) inputSize() int { return n.H + n.D + 1 + n.H }

// NewNetwork builds a network with freshly (deterministically)
// initialized weights for the given stage and deck configuration.
func NewNetwork(stage holdem.Stage, limited bool, h, d int, rng *rand.Rand) *Network {
	n := &Network{Stage: stage, Limited: limited, H: h, D: d}
	sizes := []int{n.inputSize(), hiddenWidths[0], hiddenWidths[1], hiddenWidths[2]}
	n.Trunk = make([]layer, 3)
	for i := 0; i < 3; i++ {
		n.Trunk[i] = newLayer(sizes[i], sizes[i+1], rng)
	}
	n.P1 = newLayer(hiddenWidths[2], h, rng)
	n.P2 = newLayer(hiddenWidths[2], h, rng)
	return n
}

func newLayer(in, out int, rng *rand.Rand) layer {
	scale := math.Sqrt(2.0 / float64(in))
	w := make([][]float64, out)
	for i := range w {
		row := make([]float64, in)
		for j := range row {
			row[j] = rng.NormFloat64() * scale
		}
		w[i] = row
	}
	return layer{Weights: w, Bias: make([]float64, out)}
}

// Forward runs the trunk and both heads, returning the two
// per-hole-pair value vectors and the zero-sum auxiliary scalar
// z = <r1, v1> - <r2, v2>, per spec §4.5.
func (n *Network) Forward(input []float64) (v1, v2 []float64, z float64, err error) {
	if len(input) != n.inputSize() {
		return nil, nil, 0, fmt.Errorf("value network: input has length %d, want %d", len(input), n.inputSize())
	}
	x := input
	for _, l := range n.Trunk {
		x = relu(l.forward(x))
	}
	v1 = n.P1.forward(x)
	v2 = n.P2.forward(x)

	r1 := input[:n.H]
	r2 := input[len(input)-n.H:]
	var dot1, dot2 float64
	for i := 0; i < n.H; i++ {
		dot1 += r1[i] * v1[i]
		dot2 += r2[i] * v2[i]
	}
	z = dot1 - dot2
	return v1, v2, z, nil
}

// Predict implements Predictor for a single network (the stage and
// limited arguments must match the network's own, and are checked
// defensively since a Store dispatches to the right Network already).
func (n *Network) Predict(stage holdem.Stage, input []float64, limited bool) ([]float64, []float64, float64, error) {
	if stage != n.Stage || limited != n.Limited {
		return nil, nil, 0, fmt.Errorf("value network: asked for (%s, limited=%v), this network is (%s, limited=%v)", stage, limited, n.Stage, n.Limited)
	}
	return n.Forward(input)
}

// StageMaxPot is the pot normalization constant used to build the
// relative-pot feature, one per post-flop stage (original_source's
// stage_max_pot, in big-blind chip units).
func StageMaxPot(stage holdem.Stage) float64 {
	switch stage {
	case holdem.Flop:
		return 40
	case holdem.Turn:
		return 60
	case holdem.River:
		return 80
	default:
		return 80
	}
}

// BuildInput assembles the flat [r1 | board | pot/max | r2] feature
// vector a value network consumes.
func BuildInput(r1 []float64, board []cards.Card, pot float64, r2 []float64, stage holdem.Stage, limited bool) []float64 {
	d := 52
	if limited {
		d = 24
	}
	out := make([]float64, 0, len(r1)+d+1+len(r2))
	out = append(out, r1...)
	boardVec := make([]float64, d)
	for _, c := range board {
		idx := cardIndex(c, limited)
		if idx >= 0 {
			boardVec[idx] = 1
		}
	}
	out = append(out, boardVec...)
	out = append(out, pot/StageMaxPot(stage))
	out = append(out, r2...)
	return out
}

// cardIndex maps a card to its slot in the board multi-hot encoding:
// rank-major, suit-minor, starting from the lowest rank the deck
// configuration carries.
func cardIndex(c cards.Card, limited bool) int {
	lowest := cards.Two
	if limited {
		lowest = cards.Nine
	}
	if c.Rank < lowest {
		return -1
	}
	return int(c.Rank-lowest)*4 + int(c.Suit)
}

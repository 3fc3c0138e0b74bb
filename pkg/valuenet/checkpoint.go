package valuenet

import (
	"encoding/gob"
	"fmt"
	"io"

	"github.com/hansjhaland/deepstack-holdem/pkg/holdem"
)

// checkpoint is the gob-serializable form of a Network. No third-party
// tensor/checkpoint format appears anywhere in the retrieval pack, so
// persistence uses encoding/gob directly against the network's own
// weight slices.
type checkpoint struct {
	Stage   holdem.Stage
	Limited bool
	H       int
	D       int
	Trunk   []layerData
	P1      layerData
	P2      layerData
}

type layerData struct {
	Weights [][]float64
	Bias    []float64
}

// SaveCheckpoint writes n to w, named by the caller as
// "{stage}_{limited_}{epochs}epochs" per spec §6.
func SaveCheckpoint(w io.Writer, n *Network) error {
	cp := checkpoint{
		Stage:   n.Stage,
		Limited: n.Limited,
		H:       n.H,
		D:       n.D,
		P1:      layerData{Weights: n.P1.Weights, Bias: n.P1.Bias},
		P2:      layerData{Weights: n.P2.Weights, Bias: n.P2.Bias},
	}
	for _, l := range n.Trunk {
		cp.Trunk = append(cp.Trunk, layerData{Weights: l.Weights, Bias: l.Bias})
	}
	if err := gob.NewEncoder(w).Encode(cp); err != nil {
		return fmt.Errorf("save checkpoint: %w", err)
	}
	return nil
}

// LoadCheckpoint reads a Network previously written by SaveCheckpoint.
func LoadCheckpoint(r io.Reader) (*Network, error) {
	var cp checkpoint
	if err := gob.NewDecoder(r).Decode(&cp); err != nil {
		return nil, fmt.Errorf("load checkpoint: %w", err)
	}
	n := &Network{Stage: cp.Stage, Limited: cp.Limited, H: cp.H, D: cp.D}
	for _, l := range cp.Trunk {
		n.Trunk = append(n.Trunk, layer{Weights: l.Weights, Bias: l.Bias})
	}
	n.P1 = layer{Weights: cp.P1.Weights, Bias: cp.P1.Bias}
	n.P2 = layer{Weights: cp.P2.Weights, Bias: cp.P2.Bias}
	return n, nil
}

// CheckpointName builds the "{stage}_{limited_}{epochs}epochs" name
// spec §6 assigns to model checkpoints.
func CheckpointName(stage holdem.Stage, limited bool, epochs int) string {
	if limited {
		return fmt.Sprintf("%s_limited_%depochs", stage, epochs)
	}
	return fmt.Sprintf("%s_%depochs", stage, epochs)
}

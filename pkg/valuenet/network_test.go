package valuenet

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hansjhaland/deepstack-holdem/pkg/holdem"
)

func TestForwardProducesZeroSumConsistentWithRanges(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	n := NewNetwork(holdem.Flop, true, 4, 24, rng)
	r1 := []float64{0.25, 0.25, 0.25, 0.25}
	r2 := []float64{0.1, 0.2, 0.3, 0.4}
	board := make([]float64, 24)
	input := append(append(append(append([]float64{}, r1...), board...), 0.5), r2...)

	v1, v2, z, err := n.Forward(input)
	require.NoError(t, err)
	require.Len(t, v1, 4)
	require.Len(t, v2, 4)

	var want float64
	for i := 0; i < 4; i++ {
		want += r1[i]*v1[i] - r2[i]*v2[i]
	}
	require.InDelta(t, want, z, 1e-9)
}

func TestForwardRejectsWrongInputSize(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	n := NewNetwork(holdem.Turn, false, 10, 52, rng)
	_, _, _, err := n.Forward(make([]float64, 5))
	require.Error(t, err)
}

func TestCheckpointRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	n := NewNetwork(holdem.River, true, 6, 24, rng)

	var buf bytes.Buffer
	require.NoError(t, SaveCheckpoint(&buf, n))

	loaded, err := LoadCheckpoint(&buf)
	require.NoError(t, err)
	require.Equal(t, n.Stage, loaded.Stage)
	require.Equal(t, n.Limited, loaded.Limited)
	require.Equal(t, n.H, loaded.H)

	input := make([]float64, n.inputSize())
	v1a, v2a, za, err := n.Forward(input)
	require.NoError(t, err)
	v1b, v2b, zb, err := loaded.Forward(input)
	require.NoError(t, err)
	require.Equal(t, v1a, v1b)
	require.Equal(t, v2a, v2b)
	require.Equal(t, za, zb)
}

func TestTrainReducesLoss(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	n := NewNetwork(holdem.Flop, true, 3, 24, rng)
	records := []Record{
		{
			R1:    []float64{0.5, 0.3, 0.2},
			R2:    []float64{0.2, 0.3, 0.5},
			Board: make([]float64, 24),
			Pot:   0.5,
			T1:    []float64{1, -1, 0},
			T2:    []float64{-1, 1, 0},
		},
	}
	losses := Train(n, records, 50, 0.001)
	require.Less(t, losses[len(losses)-1], losses[0])
}

func TestCheckpointName(t *testing.T) {
	require.Equal(t, "flop_100epochs", CheckpointName(holdem.Flop, false, 100))
	require.Equal(t, "river_limited_50epochs", CheckpointName(holdem.River, true, 50))
}

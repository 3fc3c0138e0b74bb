package resolver

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hansjhaland/deepstack-holdem/pkg/oracle"
)

func TestStrategyJSONRoundTrip(t *testing.T) {
	o := oracle.New(true)
	h := o.H()
	strategy := make([][]float64, h)
	for i := range strategy {
		strategy[i] = []float64{0.2, 0.3, 0.5}
	}

	data, err := ToJSON(o, strategy)
	require.NoError(t, err)

	back, err := FromJSON(o, data)
	require.NoError(t, err)
	require.Equal(t, strategy, back)
}

func TestStrategyFileRoundTrip(t *testing.T) {
	o := oracle.New(true)
	h := o.H()
	strategy := make([][]float64, h)
	for i := range strategy {
		strategy[i] = []float64{1.0 / 3, 1.0 / 3, 1.0 / 3}
	}

	path := filepath.Join(t.TempDir(), "strategy.json")
	require.NoError(t, SaveToFile(o, strategy, path))

	back, err := LoadFromFile(o, path)
	require.NoError(t, err)
	require.Equal(t, strategy, back)
}

func TestStrategyJSONRejectsDeckMismatch(t *testing.T) {
	full := oracle.New(false)
	limited := oracle.New(true)
	h := limited.H()
	strategy := make([][]float64, h)
	for i := range strategy {
		strategy[i] = []float64{0.2, 0.3, 0.5}
	}

	data, err := ToJSON(limited, strategy)
	require.NoError(t, err)

	_, err = FromJSON(full, data)
	require.Error(t, err)
}

package resolver

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hansjhaland/deepstack-holdem/pkg/oracle"
)

// SerializableStrategy is a JSON-friendly, hole-pair-keyed strategy
// matrix: each row is the [fold, call, raise] probabilities for one
// canonical hole pair, keyed the way a cheat sheet would be read.
type SerializableStrategy struct {
	Limited bool                 `json:"limited"`
	Version string               `json:"version"`
	Rows    map[string][3]float64 `json:"rows"`
}

// ToJSON attaches o's canonical hole-pair keys to strategy (an H x 3
// matrix in o's row order) and serializes the result.
func ToJSON(o *oracle.Oracle, strategy [][]float64) ([]byte, error) {
	keys := o.AllHolePairKeys()
	if len(keys) != len(strategy) {
		return nil, fmt.Errorf("resolver: strategy has %d rows, oracle has %d hole pairs", len(strategy), len(keys))
	}

	out := SerializableStrategy{
		Limited: o.Limited(),
		Version: "1.0",
		Rows:    make(map[string][3]float64, len(keys)),
	}
	for i, key := range keys {
		row := strategy[i]
		if len(row) != 3 {
			return nil, fmt.Errorf("resolver: row %d has %d actions, want 3", i, len(row))
		}
		out.Rows[key] = [3]float64{row[0], row[1], row[2]}
	}

	return json.MarshalIndent(out, "", "  ")
}

// FromJSON parses a serialized strategy back into o's row order,
// erroring if the deck configuration doesn't match or a hole pair is
// missing.
func FromJSON(o *oracle.Oracle, data []byte) ([][]float64, error) {
	var parsed SerializableStrategy
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, err
	}
	if parsed.Limited != o.Limited() {
		return nil, fmt.Errorf("resolver: strategy was saved for limited=%v, oracle is limited=%v", parsed.Limited, o.Limited())
	}

	keys := o.AllHolePairKeys()
	strategy := make([][]float64, len(keys))
	for i, key := range keys {
		row, ok := parsed.Rows[key]
		if !ok {
			return nil, fmt.Errorf("resolver: strategy missing hole pair %q", key)
		}
		strategy[i] = []float64{row[0], row[1], row[2]}
	}
	return strategy, nil
}

// SaveToFile writes strategy to filename as JSON.
func SaveToFile(o *oracle.Oracle, strategy [][]float64, filename string) error {
	data, err := ToJSON(o, strategy)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}

// LoadFromFile reads a strategy matrix previously written by
// SaveToFile.
func LoadFromFile(o *oracle.Oracle, filename string) ([][]float64, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return FromJSON(o, data)
}

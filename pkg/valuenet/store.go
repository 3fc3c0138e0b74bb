package valuenet

import (
	"fmt"

	"github.com/hansjhaland/deepstack-holdem/pkg/holdem"
)

// Store holds the loaded flop/turn/river networks for one deck
// configuration and dispatches Predict to the right one, implementing
// Predictor for the resolver.
type Store struct {
	Limited  bool
	networks map[holdem.Stage]*Network
}

// NewStore builds an empty store for the given deck configuration.
func NewStore(limited bool) *Store {
	return &Store{Limited: limited, networks: make(map[holdem.Stage]*Network)}
}

// Add registers a network for its own stage, overwriting any
// previously registered network for that stage.
func (s *Store) Add(n *Network) error {
	if n.Limited != s.Limited {
		return fmt.Errorf("store: network for %s is limited=%v, store is limited=%v", n.Stage, n.Limited, s.Limited)
	}
	s.networks[n.Stage] = n
	return nil
}

// Predict implements Predictor by dispatching to the network
// registered for stage.
func (s *Store) Predict(stage holdem.Stage, input []float64, limited bool) ([]float64, []float64, float64, error) {
	if limited != s.Limited {
		return nil, nil, 0, fmt.Errorf("store: asked for limited=%v, store is limited=%v", limited, s.Limited)
	}
	n, ok := s.networks[stage]
	if !ok {
		return nil, nil, 0, fmt.Errorf("store: no network loaded for stage %s", stage)
	}
	return n.Predict(stage, input, limited)
}

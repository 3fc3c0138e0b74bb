package eval

import (
	"fmt"

	"github.com/hansjhaland/deepstack-holdem/pkg/cards"
)

// Best5 returns the strongest 5-card subset of a 5, 6, or 7 card set,
// together with its classification. For 6 and 7 card sets it
// enumerates every 5-card subset and keeps the strongest, breaking
// ties in favor of the subset with the highest contributing card
// (HolePairKey-style determinism matters here: two subsets at the same
// category must resolve to one canonical winner).
func Best5(hand []cards.Card) ([]cards.Card, Value, error) {
	switch len(hand) {
	case 5:
		v, err := Classify(hand)
		if err != nil {
			return nil, Value{}, err
		}
		return append([]cards.Card(nil), hand...), v, nil
	case 6, 7:
		return bestOfSubsets(hand)
	default:
		return nil, Value{}, classifyErr(len(hand))
	}
}

func classifyErr(n int) error {
	return fmt.Errorf("best5: want 5, 6, or 7 cards, got %d", n)
}

func bestOfSubsets(hand []cards.Card) ([]cards.Card, Value, error) {
	n := len(hand)
	var bestHand []cards.Card
	var best Value
	first := true

	forEachFiveSubset(n, func(idx [5]int) {
		subset := [5]cards.Card{hand[idx[0]], hand[idx[1]], hand[idx[2]], hand[idx[3]], hand[idx[4]]}
		v := classify5(subset[:])
		if first || v.Compare(best) > 0 {
			best = v
			bestHand = append([]cards.Card(nil), subset[:]...)
			first = false
		}
	})

	return bestHand, best, nil
}

// forEachFiveSubset calls fn with the index combinations of every
// 5-element subset of {0,...,n-1}.
func forEachFiveSubset(n int, fn func(idx [5]int)) {
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			for k := j + 1; k < n; k++ {
				for l := k + 1; l < n; l++ {
					for m := l + 1; m < n; m++ {
						fn([5]int{i, j, k, l, m})
					}
				}
			}
		}
	}
}

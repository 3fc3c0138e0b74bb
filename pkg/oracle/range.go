package oracle

import (
	"fmt"

	"github.com/hansjhaland/deepstack-holdem/pkg/cards"
	"github.com/hansjhaland/deepstack-holdem/pkg/holdem"
)

// RangeVector turns a parsed range (as from holdem.ParseRange, or nil
// for "every hole pair") into a probability vector over o's hole-pair
// index order, excluding any combo that shares a card with dead
// (board or known opponent) cards and renormalizing over what
// remains.
func RangeVector(o *Oracle, combos []holdem.Combo, dead []cards.Card) ([]float64, error) {
	h := o.H()
	vec := make([]float64, h)

	if len(combos) == 0 {
		for i := range vec {
			c := o.Combo(i)
			if !overlaps(c, dead) {
				vec[i] = 1
			}
		}
	} else {
		for _, combo := range combos {
			if overlaps(cards.Combo2{C1: combo.Card1, C2: combo.Card2}, dead) {
				continue
			}
			idx := o.IndexOf(combo.Key())
			if idx == -1 {
				continue
			}
			vec[idx] = 1
		}
	}

	sum := 0.0
	for _, v := range vec {
		sum += v
	}
	if sum == 0 {
		return nil, fmt.Errorf("oracle: range has no combos left after excluding dead cards")
	}
	for i := range vec {
		vec[i] /= sum
	}
	return vec, nil
}

func overlaps(c cards.Combo2, dead []cards.Card) bool {
	for _, d := range dead {
		if c.C1 == d || c.C2 == d {
			return true
		}
	}
	return false
}

package oracle

import (
	"fmt"

	"github.com/hansjhaland/deepstack-holdem/pkg/cards"
	"github.com/hansjhaland/deepstack-holdem/pkg/eval"
)

// UtilityMatrix builds the H×H zero-sum showdown utility matrix for a
// complete (5-card) public board: U[h1][h2] is 0 when h1 == h2 or
// either hole pair shares a card with the other or with the board,
// otherwise +1, -1, or 0 as h1's best-5 value beats, loses to, or ties
// h2's (category, then each tiebreak rank in order). Showdown's
// unused-hole-card tie-break is not applied here.
// Rows/columns follow AllHolePairKeys' order.
func (o *Oracle) UtilityMatrix(public []cards.Card) ([][]float64, []string, error) {
	if len(public) != 5 {
		return nil, nil, fmt.Errorf("utility matrix: public board must have exactly 5 cards, got %d", len(public))
	}
	o.init()
	h := len(o.keys)

	boardUsed := make(map[cards.Card]bool, 5)
	for _, c := range public {
		boardUsed[c] = true
	}

	// conflicts[i] reports whether hole pair i overlaps the board.
	conflicts := make([]bool, h)
	best5 := make([]eval.Value, h)
	evaluated := make([]bool, h)

	classify := func(i int) (eval.Value, bool) {
		if evaluated[i] {
			return best5[i], conflicts[i]
		}
		evaluated[i] = true
		combo := o.combos[i]
		if boardUsed[combo.C1] || boardUsed[combo.C2] {
			conflicts[i] = true
			return eval.Value{}, true
		}
		hand := append(append([]cards.Card(nil), public...), combo.C1, combo.C2)
		_, v, err := eval.Best5(hand)
		if err != nil {
			conflicts[i] = true
			return eval.Value{}, true
		}
		best5[i] = v
		return v, false
	}

	u := make([][]float64, h)
	for i := range u {
		u[i] = make([]float64, h)
	}

	for i := 0; i < h; i++ {
		vi, confI := classify(i)
		if confI {
			continue
		}
		for j := i + 1; j < h; j++ {
			vj, confJ := classify(j)
			if confJ || sharesCard(o.combos[i], o.combos[j]) {
				continue
			}
			cmp := vi.Compare(vj)
			var value float64
			switch {
			case cmp > 0:
				value = 1
			case cmp < 0:
				value = -1
			}
			u[i][j] = value
			u[j][i] = -value
		}
	}
	return u, o.keys, nil
}

func sharesCard(a, b cards.Combo2) bool {
	return a.C1 == b.C1 || a.C1 == b.C2 || a.C2 == b.C1 || a.C2 == b.C2
}

package valuenet

import (
	"fmt"
	"math/rand"

	"github.com/hansjhaland/deepstack-holdem/pkg/cards"
	"github.com/hansjhaland/deepstack-holdem/pkg/holdem"
	"github.com/hansjhaland/deepstack-holdem/pkg/oracle"
)

// Record is one flat training case: [r1(H) | board(D) | pot/max(1) |
// r2(H) | t1(H) | t2(H)], the layout spec §6 fixes for persisted
// training datasets.
type Record struct {
	R1, R2 []float64
	Board  []float64
	Pot    float64
	T1, T2 []float64
}

// Flatten lays out a Record in the persisted record order.
func (r Record) Flatten() []float64 {
	out := make([]float64, 0, len(r.R1)+len(r.Board)+1+len(r.R2)+len(r.T1)+len(r.T2))
	out = append(out, r.R1...)
	out = append(out, r.Board...)
	out = append(out, r.Pot)
	out = append(out, r.R2...)
	out = append(out, r.T1...)
	out = append(out, r.T2...)
	return out
}

func numPublicCards(stage holdem.Stage) int {
	switch stage {
	case holdem.Flop:
		return 3
	case holdem.Turn:
		return 4
	case holdem.River:
		return 5
	default:
		return 0
	}
}

// GenerateDataset builds numCases training records for stage using
// the oracle's "cheap method" (spec §4.5): a random board, two
// independent random ranges over board-compatible hole pairs, and
// targets from the utility matrix. On river boards the targets are
// exact; on flop and turn boards the utility matrix is taken over a
// single random runout to five cards.
func GenerateDataset(o *oracle.Oracle, stage holdem.Stage, numCases int, rng *rand.Rand) ([]Record, error) {
	n := numPublicCards(stage)
	if n == 0 {
		return nil, fmt.Errorf("generate dataset: stage %s has no associated board size", stage)
	}

	records := make([]Record, 0, numCases)
	for i := 0; i < numCases; i++ {
		deck := cards.NewDeck()
		if o.Limited() {
			deck = cards.NewLimitedDeck()
		}
		deck.Shuffle(rng)
		board, err := deck.Deal(n)
		if err != nil {
			return nil, fmt.Errorf("generate dataset: deal board: %w", err)
		}

		r1, err := randomRange(o, board, rng)
		if err != nil {
			return nil, err
		}
		r2, err := randomRange(o, board, rng)
		if err != nil {
			return nil, err
		}

		var u [][]float64
		if n == 5 {
			u, _, err = o.UtilityMatrix(board)
			if err != nil {
				return nil, fmt.Errorf("generate dataset: utility matrix: %w", err)
			}
		} else {
			// Flop/turn boards are incomplete; roll the remaining
			// cards out once to approximate the exact showdown
			// target the "cheap method" otherwise gets directly at
			// the river.
			u, err = rolloutUtility(o, board, rng)
			if err != nil {
				return nil, err
			}
		}

		maxPot := StageMaxPot(stage)
		minPot := maxPot / 4
		pot := minPot + rng.Float64()*(maxPot-minPot)

		records = append(records, Record{
			R1:    r1,
			R2:    r2,
			Board: encodeBoard(board, o.Limited()),
			Pot:   pot / maxPot,
			T1:    matVec(u, r2),
			T2:    negRowVecMat(r1, u),
		})
	}
	return records, nil
}

// randomRange draws independent uniform weights over every hole pair
// that doesn't overlap board, then normalizes to sum to 1.
func randomRange(o *oracle.Oracle, board []cards.Card, rng *rand.Rand) ([]float64, error) {
	h := o.H()
	used := make(map[cards.Card]bool, len(board))
	for _, c := range board {
		used[c] = true
	}
	r := make([]float64, h)
	sum := 0.0
	for i := 0; i < h; i++ {
		combo := o.Combo(i)
		if used[combo.C1] || used[combo.C2] {
			continue
		}
		r[i] = rng.Float64()
		sum += r[i]
	}
	if sum == 0 {
		return nil, fmt.Errorf("random range: no board-compatible hole pairs")
	}
	for i := range r {
		r[i] /= sum
	}
	return r, nil
}

func encodeBoard(board []cards.Card, limited bool) []float64 {
	d := 52
	if limited {
		d = 24
	}
	enc := make([]float64, d)
	for _, c := range board {
		idx := cardIndex(c, limited)
		if idx >= 0 {
			enc[idx] = 1
		}
	}
	return enc
}

// rolloutUtility completes an incomplete board once with a single
// shuffled-deck draw and returns the resulting river utility matrix,
// giving flop/turn training cases a concrete (if noisy) target.
func rolloutUtility(o *oracle.Oracle, board []cards.Card, rng *rand.Rand) ([][]float64, error) {
	deck := cards.NewDeck()
	if o.Limited() {
		deck = cards.NewLimitedDeck()
	}
	deck.Exclude(board)
	deck.Shuffle(rng)
	remaining, err := deck.Deal(5 - len(board))
	if err != nil {
		return nil, fmt.Errorf("rollout utility: %w", err)
	}
	full := append(append([]cards.Card(nil), board...), remaining...)
	u, _, err := o.UtilityMatrix(full)
	if err != nil {
		return nil, fmt.Errorf("rollout utility: %w", err)
	}
	return u, nil
}

func matVec(m [][]float64, v []float64) []float64 {
	out := make([]float64, len(m))
	for i := range m {
		sum := 0.0
		for j := range v {
			sum += m[i][j] * v[j]
		}
		out[i] = sum
	}
	return out
}

func negRowVecMat(v []float64, m [][]float64) []float64 {
	if len(m) == 0 {
		return nil
	}
	out := make([]float64, len(m[0]))
	for i := range m {
		for j := range m[i] {
			out[j] += v[i] * m[i][j]
		}
	}
	for j := range out {
		out[j] = -out[j]
	}
	return out
}

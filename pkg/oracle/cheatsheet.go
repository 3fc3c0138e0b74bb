package oracle

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"strconv"

	"github.com/hansjhaland/deepstack-holdem/pkg/cards"
)

// HolePairType classifies a hole pair into one of the three cheat-sheet
// index categories, grounded on the original oracle's
// get_hole_pair_type: a pocket pair, a suited non-pair, or an
// offsuit non-pair.
type HolePairType string

const (
	RankPair     HolePairType = "rank_pair"
	HiLoSuited   HolePairType = "hi_lo_suited"
	HiLoUnsuited HolePairType = "hi_lo_unsuited"
)

// ClassifyHolePairType returns c1/c2's cheat-sheet category.
func ClassifyHolePairType(c1, c2 cards.Card) HolePairType {
	if c1.Rank == c2.Rank {
		return RankPair
	}
	if c1.Suit == c2.Suit {
		return HiLoSuited
	}
	return HiLoUnsuited
}

// CheatSheetRow is one row of the optional cheat-sheet CSV: a hole-pair
// type and its estimated win probability against 1..len(Probabilities)
// opponents.
type CheatSheetRow struct {
	Type          HolePairType
	Probabilities []float64
}

// GenerateCheatSheet estimates, for each hole-pair type, the rollout
// win probability against 1..maxOpponents opponents with no public
// cards known (pre-flop), by sampling one representative combo per
// type and running RolloutProbability for each opponent count.
func (o *Oracle) GenerateCheatSheet(maxOpponents, nRollouts int, rng *rand.Rand) ([]CheatSheetRow, error) {
	reps := map[HolePairType][2]cards.Card{
		RankPair:     {cards.NewCard(cards.Ace, cards.Spades), cards.NewCard(cards.Ace, cards.Hearts)},
		HiLoSuited:   {cards.NewCard(cards.Ace, cards.Spades), cards.NewCard(cards.King, cards.Spades)},
		HiLoUnsuited: {cards.NewCard(cards.Ace, cards.Spades), cards.NewCard(cards.King, cards.Hearts)},
	}

	types := []HolePairType{RankPair, HiLoSuited, HiLoUnsuited}
	rows := make([]CheatSheetRow, 0, len(types))
	for _, t := range types {
		hole := reps[t]
		probs := make([]float64, maxOpponents)
		for n := 1; n <= maxOpponents; n++ {
			p, err := o.RolloutProbability(hole, nil, n, nRollouts, rng)
			if err != nil {
				return nil, fmt.Errorf("generate cheat sheet: %w", err)
			}
			probs[n-1] = p
		}
		rows = append(rows, CheatSheetRow{Type: t, Probabilities: probs})
	}
	return rows, nil
}

// WriteCheatSheet writes rows as CSV: one row per hole-pair type,
// columns indexed by opponent count 1..max_opponents.
func WriteCheatSheet(w io.Writer, rows []CheatSheetRow) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if len(rows) == 0 {
		return nil
	}
	header := []string{"type"}
	for n := 1; n <= len(rows[0].Probabilities); n++ {
		header = append(header, fmt.Sprintf("vs%d", n))
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{string(row.Type)}
		for _, p := range row.Probabilities {
			record = append(record, strconv.FormatFloat(p, 'f', 6, 64))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	return nil
}

// LoadCheatSheet reads a cheat sheet previously written by
// WriteCheatSheet.
func LoadCheatSheet(r io.Reader) ([]CheatSheetRow, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("load cheat sheet: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("load cheat sheet: expected a header and at least one row")
	}

	rows := make([]CheatSheetRow, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 2 {
			return nil, fmt.Errorf("load cheat sheet: malformed row %v", record)
		}
		probs := make([]float64, 0, len(record)-1)
		for _, field := range record[1:] {
			p, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("load cheat sheet: invalid probability %q: %w", field, err)
			}
			probs = append(probs, p)
		}
		rows = append(rows, CheatSheetRow{Type: HolePairType(record[0]), Probabilities: probs})
	}
	return rows, nil
}

// CheatSheetProbability looks up the win probability for a hole-pair
// type against numOpponents opponents.
func CheatSheetProbability(rows []CheatSheetRow, t HolePairType, numOpponents int) (float64, error) {
	for _, row := range rows {
		if row.Type != t {
			continue
		}
		if numOpponents < 1 || numOpponents > len(row.Probabilities) {
			return 0, fmt.Errorf("cheat sheet probability: opponent count %d out of range [1,%d]", numOpponents, len(row.Probabilities))
		}
		return row.Probabilities[numOpponents-1], nil
	}
	return 0, fmt.Errorf("cheat sheet probability: no row for type %q", t)
}

package oracle

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/hansjhaland/deepstack-holdem/pkg/cards"
	"github.com/hansjhaland/deepstack-holdem/pkg/eval"
)

// RolloutProbability estimates, by Monte-Carlo simulation, the
// probability that hole beats all of nOpponents random opponents on a
// random completion of public. Each of nRollouts trials deals
// nOpponents*2 opponent hole cards and the remaining board cards from
// a deck excluding all known cards, then classifies hero and every
// opponent's best 5-card hand.
func (o *Oracle) RolloutProbability(hole [2]cards.Card, public []cards.Card, nOpponents, nRollouts int, rng *rand.Rand) (float64, error) {
	if nOpponents < 1 {
		return 0, fmt.Errorf("rollout: nOpponents must be >= 1, got %d", nOpponents)
	}
	if nRollouts < 1 {
		return 0, fmt.Errorf("rollout: nRollouts must be >= 1, got %d", nRollouts)
	}
	needBoard := 5 - len(public)
	if needBoard < 0 {
		return 0, fmt.Errorf("rollout: public board has more than 5 cards (%d)", len(public))
	}

	known := append([]cards.Card{hole[0], hole[1]}, public...)
	base := cards.NewDeck()
	if o.limited {
		base = cards.NewLimitedDeck()
	}
	base.Exclude(known)
	pool := base.Cards()
	needed := nOpponents*2 + needBoard
	if needed > len(pool) {
		return 0, fmt.Errorf("rollout: deck has %d cards remaining, need %d", len(pool), needed)
	}

	wins := 0
	for t := 0; t < nRollouts; t++ {
		shuffled := append([]cards.Card(nil), pool...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		runout := append(append([]cards.Card(nil), public...), shuffled[:needBoard]...)
		draws := shuffled[needBoard : needBoard+nOpponents*2]

		heroHand := append(append([]cards.Card(nil), runout...), hole[0], hole[1])
		_, heroVal, err := eval.Best5(heroHand)
		if err != nil {
			return 0, err
		}

		beatsAll := true
		for opp := 0; opp < nOpponents; opp++ {
			oppHole := draws[opp*2 : opp*2+2]
			oppHand := append(append([]cards.Card(nil), runout...), oppHole...)
			_, oppVal, err := eval.Best5(oppHand)
			if err != nil {
				return 0, err
			}
			if heroVal.Compare(oppVal) <= 0 {
				beatsAll = false
				break
			}
		}
		if beatsAll {
			wins++
		}
	}

	return float64(wins) / float64(nRollouts), nil
}

// DeterministicSeed derives a repeatable RNG seed from a hero hand, a
// board, and an opponent range, so that rollout sampling produces the
// same estimate across calls with the same inputs.
func DeterministicSeed(hero [2]cards.Card, board []cards.Card, opponentRange []cards.Combo2) int64 {
	parts := make([]string, 0, len(opponentRange))
	for _, c := range opponentRange {
		parts = append(parts, cards.HolePairKey(c.C1, c.C2))
	}
	sort.Strings(parts)

	var b strings.Builder
	b.WriteString(hero[0].String())
	b.WriteString(hero[1].String())
	for _, c := range board {
		b.WriteString(c.String())
	}
	b.WriteString(strings.Join(parts, ","))

	var hash int64
	for _, ch := range b.String() {
		hash = hash*31 + int64(ch)
	}
	return hash
}

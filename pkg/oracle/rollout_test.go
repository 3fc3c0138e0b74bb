package oracle

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hansjhaland/deepstack-holdem/pkg/cards"
)

func TestRolloutProbabilityPocketAcesFavored(t *testing.T) {
	o := New(false)
	rng := rand.New(rand.NewSource(DeterministicSeed(
		[2]cards.Card{cards.NewCard(cards.Ace, cards.Spades), cards.NewCard(cards.Ace, cards.Hearts)},
		nil, nil,
	)))

	hole := [2]cards.Card{cards.NewCard(cards.Ace, cards.Spades), cards.NewCard(cards.Ace, cards.Hearts)}
	p, err := o.RolloutProbability(hole, nil, 1, 200, rng)
	require.NoError(t, err)
	require.Greater(t, p, 0.6)
}

func TestRolloutProbabilityBounds(t *testing.T) {
	o := New(true)
	rng := rand.New(rand.NewSource(1))
	hole := [2]cards.Card{cards.NewCard(cards.Nine, cards.Spades), cards.NewCard(cards.Nine, cards.Hearts)}
	p, err := o.RolloutProbability(hole, nil, 1, 100, rng)
	require.NoError(t, err)
	require.GreaterOrEqual(t, p, 0.0)
	require.LessOrEqual(t, p, 1.0)
}

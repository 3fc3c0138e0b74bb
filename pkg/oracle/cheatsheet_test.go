package oracle

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hansjhaland/deepstack-holdem/pkg/cards"
)

func TestClassifyHolePairType(t *testing.T) {
	require.Equal(t, RankPair, ClassifyHolePairType(
		cards.NewCard(cards.Ace, cards.Spades), cards.NewCard(cards.Ace, cards.Hearts)))
	require.Equal(t, HiLoSuited, ClassifyHolePairType(
		cards.NewCard(cards.Ace, cards.Spades), cards.NewCard(cards.King, cards.Spades)))
	require.Equal(t, HiLoUnsuited, ClassifyHolePairType(
		cards.NewCard(cards.Ace, cards.Spades), cards.NewCard(cards.King, cards.Hearts)))
}

func TestCheatSheetRoundTrip(t *testing.T) {
	o := New(true)
	rng := rand.New(rand.NewSource(7))
	rows, err := o.GenerateCheatSheet(2, 50, rng)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	var buf bytes.Buffer
	require.NoError(t, WriteCheatSheet(&buf, rows))

	loaded, err := LoadCheatSheet(&buf)
	require.NoError(t, err)
	require.Len(t, loaded, 3)

	p, err := CheatSheetProbability(loaded, RankPair, 1)
	require.NoError(t, err)
	require.GreaterOrEqual(t, p, 0.0)
}

package eval

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hansjhaland/deepstack-holdem/pkg/cards"
)

func mustCards(t *testing.T, s string) []cards.Card {
	t.Helper()
	cs, err := cards.ParseCards(s)
	require.NoError(t, err)
	return cs
}

func TestBest5Category(t *testing.T) {
	tests := []struct {
		name string
		deal string
		want Category
	}{
		{"royal flush", "AhKhQhJhTh2d3c", RoyalFlush},
		{"straight flush not royal", "9s8s7s6s5s2h3d", StraightFlush},
		{"wheel is not a straight", "5d4d3d2dAd7h8c", Flush},
		{"quad aces", "AsAhAdAcKs2d3c", FourOfAKind},
		{"full house", "AsAhAdKsKh2d3c", FullHouse},
		{"ace high flush", "AhKh9h5h2h3dQc", Flush},
		{"broadway straight", "AhKsQdJcTh2d3c", Straight},
		{"three of a kind", "7s7h7d2s9hAcKd", ThreeOfAKind},
		{"two pair", "7s7hAsAd2hKcQd", TwoPair},
		{"one pair", "7s7h2s9h4cAcKd", Pair},
		{"high card", "Ah Kd 9s 5c 2h 3d 7c", HighCard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hand := mustCards(t, tt.deal)
			_, v, err := Best5(hand)
			require.NoError(t, err)
			require.Equal(t, tt.want, v.Category)
		})
	}
}

func TestClassifyPermutationInvariant(t *testing.T) {
	hand := mustCards(t, "AsAhAdKsKh")
	want, err := Classify(hand)
	require.NoError(t, err)

	perm := []cards.Card{hand[4], hand[0], hand[3], hand[1], hand[2]}
	got, err := Classify(perm)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestBest5PicksStrongestSubset(t *testing.T) {
	// Two distinct three-of-a-kind subsets are available (trip 7s with
	// an Ace kicker, trip 7s with a King kicker); the strongest must win.
	hand := mustCards(t, "7s7h7dAsKs2d3c")
	_, v, err := Best5(hand)
	require.NoError(t, err)
	require.Equal(t, ThreeOfAKind, v.Category)
	require.Equal(t, cards.Ace, v.Values[1])
}

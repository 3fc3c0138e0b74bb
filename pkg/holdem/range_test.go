package holdem

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRangeCounts(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"pocket pair", "AA", 6},
		{"suited", "AKs", 4},
		{"offsuit", "AKo", 12},
		{"pair range", "KK-JJ", 18},
		{"mixed list", "AA,KK,AKs", 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			combos, err := ParseRange(tt.in)
			require.NoError(t, err)
			require.Len(t, combos, tt.want)
		})
	}
}

func TestParseRangeRejectsAmbiguousPair(t *testing.T) {
	_, err := ParseRange("AK")
	require.Error(t, err)
}

func TestComboKeyOrderInvariant(t *testing.T) {
	a, err := ParseRange("AKs")
	require.NoError(t, err)
	require.NotEmpty(t, a)
	swapped := Combo{Card1: a[0].Card2, Card2: a[0].Card1}
	require.Equal(t, a[0].Key(), swapped.Key())
}

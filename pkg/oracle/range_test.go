package oracle

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hansjhaland/deepstack-holdem/pkg/cards"
	"github.com/hansjhaland/deepstack-holdem/pkg/holdem"
)

func TestRangeVectorFullRangeSumsToOne(t *testing.T) {
	o := New(true)
	vec, err := RangeVector(o, nil, nil)
	require.NoError(t, err)
	require.Len(t, vec, o.H())

	sum := 0.0
	for _, v := range vec {
		sum += v
	}
	require.InDelta(t, 1, sum, 1e-9)
}

func TestRangeVectorExcludesDeadCards(t *testing.T) {
	o := New(true)
	combos, err := holdem.ParseRange("AA")
	require.NoError(t, err)

	as, err := cards.ParseCard("As")
	require.NoError(t, err)

	vec, err := RangeVector(o, combos, []cards.Card{as})
	require.NoError(t, err)

	for i, v := range vec {
		if v == 0 {
			continue
		}
		combo := o.Combo(i)
		require.NotEqual(t, as, combo.C1)
		require.NotEqual(t, as, combo.C2)
	}
}

func TestRangeVectorErrorsWhenEverythingExcluded(t *testing.T) {
	o := New(true)
	as, err := cards.ParseCard("As")
	require.NoError(t, err)
	ks, err := cards.ParseCard("Ks")
	require.NoError(t, err)
	combos := []holdem.Combo{{Card1: as, Card2: ks}}

	_, err = RangeVector(o, combos, []cards.Card{as})
	require.Error(t, err)
}

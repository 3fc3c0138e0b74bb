package eval

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hansjhaland/deepstack-holdem/pkg/cards"
)

func noDraw(pool []cards.Card) cards.Card { return pool[0] }

func TestShowdownRoyalFlushBeatsBroadwayStraight(t *testing.T) {
	public, err := cards.ParseCards("TdJdQd2h3c")
	require.NoError(t, err)

	hero := [2]cards.Card{mustCard(t, "Ad"), mustCard(t, "Kd")}
	villain := [2]cards.Card{mustCard(t, "Ac"), mustCard(t, "Kc")}

	result, err := Showdown(public, hero, villain, false, noDraw)
	require.NoError(t, err)
	require.Equal(t, 1, result)
}

func TestShowdownHighCardTiebreakByKicker(t *testing.T) {
	public, err := cards.ParseCards("7d6s5c2hTh")
	require.NoError(t, err)

	hero := [2]cards.Card{mustCard(t, "8s"), mustCard(t, "4h")}
	villain := [2]cards.Card{mustCard(t, "4s"), mustCard(t, "3h")}

	result, err := Showdown(public, hero, villain, false, noDraw)
	require.NoError(t, err)
	require.Equal(t, 1, result)
}

func mustCard(t *testing.T, s string) cards.Card {
	t.Helper()
	c, err := cards.ParseCard(s)
	require.NoError(t, err)
	return c
}

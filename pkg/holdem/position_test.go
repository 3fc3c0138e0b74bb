package holdem

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePositionSpecificCards(t *testing.T) {
	pos, err := ParsePosition("BTN:AsKd:S98/BB:QQ:S97|P3|Th9h2c|cr|>BTN")
	require.NoError(t, err)
	require.Len(t, pos.Players, 2)
	require.Equal(t, BTN, pos.Players[0].Position)
	require.Len(t, pos.Players[0].Range, 1)
	require.Equal(t, 3.0, pos.Pot)
	require.Len(t, pos.Board, 3)
	require.Equal(t, Flop, pos.Stage)
	require.Equal(t, []Action{Call, Raise}, pos.History)
	require.Equal(t, 0, pos.ToAct)
}

func TestParsePositionPreflopNoHistory(t *testing.T) {
	pos, err := ParsePosition("BTN:AA,KK:S100/BB:QQ-JJ:S100|P20|-|>BB")
	require.NoError(t, err)
	require.Equal(t, PreFlop, pos.Stage)
	require.Equal(t, 1, pos.ToAct)
	require.Nil(t, pos.Board)
}

func TestParsePositionRejectsBadStage(t *testing.T) {
	_, err := ParsePosition("BTN:AA:S100/BB:KK:S100|P3|ThQs|>BTN")
	require.Error(t, err)
}

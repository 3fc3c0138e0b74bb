package oracle

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hansjhaland/deepstack-holdem/pkg/cards"
)

func TestUtilityMatrixInvariants(t *testing.T) {
	o := New(true)
	public, err := cards.ParseCards("9s8h7c6d5s")
	require.NoError(t, err)

	u, keys, err := o.UtilityMatrix(public)
	require.NoError(t, err)
	require.Len(t, u, len(keys))

	for i := range u {
		require.Zero(t, u[i][i])
		for j := range u[i] {
			if i == j {
				continue
			}
			require.Equal(t, -u[j][i], u[i][j])

			ci, cj := o.Combo(i), o.Combo(j)
			if sharesCard(ci, cj) {
				require.Zero(t, u[i][j])
			}
		}
	}
}

func TestUtilityMatrixRejectsIncompleteBoard(t *testing.T) {
	o := New(true)
	public, err := cards.ParseCards("9s8h7c")
	require.NoError(t, err)
	_, _, err = o.UtilityMatrix(public)
	require.Error(t, err)
}

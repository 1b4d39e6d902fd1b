package reflectutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOverwriteFields(t *testing.T) {
	type test struct {
		Name    string
		Amount  uint64
		Enabled bool
	}

	origin := test{Name: "origin", Amount: 10, Enabled: true}
	OverwriteFields(&origin, test{Amount: 42})

	require.Equal(t, "origin", origin.Name)
	require.EqualValues(t, 42, origin.Amount)
	require.True(t, origin.Enabled)
}

package types_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/swapverse/swapverse/x/swapverse/types"
)

func TestDerivedIdentitiesAreDeterministic(t *testing.T) {
	require.Equal(t, types.SigningAuthorityAddress(), types.SigningAuthorityAddress())
	require.Equal(t, types.SwapPoolVaultAddress(3), types.SwapPoolVaultAddress(3))
	require.Equal(t, types.TreasuryAddress(3, "usdc-dev"), types.TreasuryAddress(3, "usdc-dev"))
	require.Equal(t, types.ShareDenom(3, "usdc-dev"), types.ShareDenom(3, "usdc-dev"))
}

func TestDerivedIdentitiesAreDistinct(t *testing.T) {
	seen := map[string]string{}
	add := func(name, id string) {
		prev, dup := seen[id]
		require.False(t, dup, "%s collides with %s", name, prev)
		seen[id] = name
	}

	add("authority", types.SigningAuthorityAddress().String())
	for _, index := range []uint64{0, 1, 256} {
		add("vault", types.SwapPoolVaultAddress(index).String())
		for _, denom := range types.DefaultTokenDenoms {
			add("treasury", types.TreasuryAddress(index, denom).String())
			add("share", types.ShareDenom(index, denom))
		}
	}
}

func TestShareDenomFormat(t *testing.T) {
	denom := types.ShareDenom(0, "usdc-dev")
	require.True(t, strings.HasPrefix(denom, types.ShareDenomPrefix))
	require.Len(t, denom, len(types.ShareDenomPrefix)+64)
}

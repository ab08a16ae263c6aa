package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/swapverse/swapverse/testutil/keeper"
	"github.com/swapverse/swapverse/x/swapverse/types"
)

func TestGenesis_ExportImport(t *testing.T) {
	ks, ctx, index := setupScenarioPool(t)
	keepertest.Fund(t, ks, ctx, trader, "usdc-dev", math.NewInt(10_000))
	_, err := ks.Swapverse.Swap(ctx, index, trader, math.NewInt(10_000), math.ZeroInt(), types.AtoB)
	require.NoError(t, err)

	exported, err := ks.Swapverse.ExportGenesis(ctx)
	require.NoError(t, err)
	require.NotNil(t, exported.GlobalState)
	require.Len(t, exported.Pools, 1)
	require.Len(t, exported.Investors, 2)
	require.NoError(t, exported.Validate())
	ledgerState, err := ks.Ledger.ExportGenesis(ctx)
	require.NoError(t, err)

	fresh, freshCtx := keepertest.SwapverseKeeper(t)
	require.NoError(t, fresh.Ledger.InitGenesis(freshCtx, *ledgerState))
	require.NoError(t, fresh.Swapverse.InitGenesis(freshCtx, *exported))

	reexported, err := fresh.Swapverse.ExportGenesis(freshCtx)
	require.NoError(t, err)
	require.Equal(t, exported.GlobalState.Owner, reexported.GlobalState.Owner)
	require.Equal(t, exported.GlobalState.NoOfSwapPools, reexported.GlobalState.NoOfSwapPools)

	pool := getPool(t, fresh.Swapverse, freshCtx, index)
	requireInt(t, 110_000, pool.TokenA.Reserve)
	requireInt(t, 90_918, pool.TokenB.Reserve)
	requireInt(t, 9_082, fresh.Ledger.BalanceOf(freshCtx, "usdt-dev", trader))

	requireInvariants(t, fresh.Swapverse, freshCtx)
}

func TestGenesis_Validate(t *testing.T) {
	require.NoError(t, types.DefaultGenesis().Validate())

	gs := types.DefaultGenesis()
	gs.Pools = append(gs.Pools, types.SwapPool{Index: 0})
	require.Error(t, gs.Validate())

	gs = types.DefaultGenesis()
	gs.Params.DayDuration = 0
	require.Error(t, gs.Validate())
}

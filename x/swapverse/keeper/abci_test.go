package keeper_test

import (
	"testing"
	"time"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/swapverse/swapverse/testutil/keeper"
	"github.com/swapverse/swapverse/x/swapverse/types"
)

func TestEndBlocker_OpensDuePools(t *testing.T) {
	ks, ctx := keepertest.SwapverseKeeper(t)
	k := ks.Swapverse

	unfilled := keepertest.CreateTestPool(t, ks, ctx, owner, keepertest.ScenarioConfig())
	keepertest.FundAndInvest(t, ks, ctx, unfilled, investor1, types.SideA, math.NewInt(20_000))

	cfg := keepertest.ScenarioConfig()
	cfg.TokenA, cfg.TokenB = "uxd-dev", "usdh-dev"
	active := keepertest.CreateTestPool(t, ks, ctx, owner, cfg)
	keepertest.FundAndInvest(t, ks, ctx, active, investor1, types.SideA, math.NewInt(100_000))
	keepertest.FundAndInvest(t, ks, ctx, active, investor2, types.SideB, math.NewInt(100_000))

	require.NoError(t, k.EndBlocker(ctx))
	require.True(t, getPool(t, k, ctx, unfilled).OpenForInvestment)
	require.True(t, getPool(t, k, ctx, active).ActiveForSwap)

	ctx = ctx.WithBlockTime(keepertest.GenesisTime.Add(45 * day))
	require.NoError(t, k.EndBlocker(ctx))

	pool := getPool(t, k, ctx, unfilled)
	require.True(t, pool.OpenForWithdrawal)
	require.False(t, pool.OpenForInvestment)
	require.Equal(t, "1.000000000000000000", pool.TokenA.WithdrawValuePerShare.String())
	require.True(t, getPool(t, k, ctx, active).ActiveForSwap)

	ctx = ctx.WithBlockTime(keepertest.GenesisTime.Add(360*day + 1))
	require.NoError(t, k.EndBlocker(ctx))
	pool = getPool(t, k, ctx, active)
	require.True(t, pool.OpenForWithdrawal)
	require.False(t, pool.ActiveForSwap)

	requireInvariants(t, k, ctx)
}

// TestLifecycleExclusive walks a pool through every phase and checks the two
// windows are never open together.
func TestLifecycleExclusive(t *testing.T) {
	ks, ctx, index := setupScenarioPool(t)
	k := ks.Swapverse

	for _, days := range []int{0, 29, 31, 180, 359, 361, 720} {
		c := ctx.WithBlockTime(keepertest.GenesisTime.Add(time.Duration(days) * day))
		require.NoError(t, k.EndBlocker(c))
		pool := getPool(t, k, c, index)
		require.False(t, pool.OpenForInvestment && pool.OpenForWithdrawal, "day %d", days)
		require.Equal(t, days > 360, pool.OpenForWithdrawal, "day %d", days)
	}
}

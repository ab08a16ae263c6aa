package keeper_test

import (
	"testing"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/swapverse/swapverse/testutil/keeper"
	"github.com/swapverse/swapverse/x/swapverse/keeper"
	"github.com/swapverse/swapverse/x/swapverse/types"
)

var (
	owner     = keepertest.TestAddress("owner")
	investor1 = keepertest.TestAddress("investor-1")
	investor2 = keepertest.TestAddress("investor-2")
	trader    = keepertest.TestAddress("trader")
)

const day = 24 * time.Hour

func requireInt(t *testing.T, expected int64, actual math.Int, msgAndArgs ...interface{}) {
	t.Helper()
	require.Equal(t, math.NewInt(expected).String(), actual.String(), msgAndArgs...)
}

// setupScenarioPool creates the reference pool and funds it with 70k/30k on
// side A and 40k/60k on side B, which activates it.
func setupScenarioPool(t *testing.T) (keepertest.Keepers, sdk.Context, uint64) {
	t.Helper()
	ks, ctx := keepertest.SwapverseKeeper(t)
	index := keepertest.CreateTestPool(t, ks, ctx, owner, keepertest.ScenarioConfig())

	keepertest.FundAndInvest(t, ks, ctx, index, investor1, types.SideA, math.NewInt(70_000))
	keepertest.FundAndInvest(t, ks, ctx, index, investor2, types.SideA, math.NewInt(30_000))
	keepertest.FundAndInvest(t, ks, ctx, index, investor1, types.SideB, math.NewInt(40_000))
	keepertest.FundAndInvest(t, ks, ctx, index, investor2, types.SideB, math.NewInt(60_000))
	return ks, ctx, index
}

func requireInvariants(t helperT, k keeper.Keeper, ctx sdk.Context) {
	t.Helper()
	msg, broken := keeper.AllInvariants(k)(ctx)
	require.False(t, broken, msg)
}

// helperT is satisfied by both *testing.T and *rapid.T
type helperT interface {
	require.TestingT
	Helper()
}

func getPool(t helperT, k keeper.Keeper, ctx sdk.Context, index uint64) types.SwapPool {
	t.Helper()
	pool, err := k.GetSwapPool(ctx, index)
	require.NoError(t, err)
	return pool
}

package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/swapverse/swapverse/testutil/keeper"
	"github.com/swapverse/swapverse/x/swapverse/keeper"
	"github.com/swapverse/swapverse/x/swapverse/types"
)

// TestSwap_ReferenceScenario replays the reference pool: two equal swaps from
// A to B must both clear their minimum, the second paying strictly less.
func TestSwap_ReferenceScenario(t *testing.T) {
	ks, ctx, index := setupScenarioPool(t)
	k := ks.Swapverse
	keepertest.Fund(t, ks, ctx, trader, "usdc-dev", math.NewInt(20_000))
	keepertest.Fund(t, ks, ctx, trader, "usdt-dev", math.NewInt(10_000))

	first, err := k.Swap(ctx, index, trader, math.NewInt(10_000), math.NewInt(8_000), types.AtoB)
	require.NoError(t, err)
	requireInt(t, 9_082, first.AmountOut)
	requireInt(t, 10, first.Fee)
	requireInt(t, 0, first.TreasuryFee)

	second, err := k.Swap(ctx, index, trader, math.NewInt(10_000), math.NewInt(6_000), types.AtoB)
	require.NoError(t, err)
	requireInt(t, 7_569, second.AmountOut)
	require.True(t, second.AmountOut.LT(first.AmountOut))

	pool := getPool(t, k, ctx, index)
	requireInt(t, 120_000, pool.TokenA.Reserve)
	requireInt(t, 83_349, pool.TokenB.Reserve)

	back, err := k.Swap(ctx, index, trader, math.NewInt(10_000), math.NewInt(1), types.BtoA)
	require.NoError(t, err)
	requireInt(t, 12_843, back.AmountOut)

	requireInt(t, 12_843, ks.Ledger.BalanceOf(ctx, "usdc-dev", trader))
	requireInt(t, 9_082+7_569, ks.Ledger.BalanceOf(ctx, "usdt-dev", trader))

	// 10 bps of a 10 token fee rounds down to nothing
	_, err = k.ClaimProfit(ctx, index, investor1, types.SideA)
	require.ErrorIs(t, err, types.ErrNothingToClaim)

	requireInvariants(t, k, ctx)
}

func TestSwap_SlippageLeavesStateUntouched(t *testing.T) {
	ks, ctx, index := setupScenarioPool(t)
	k := ks.Swapverse
	keepertest.Fund(t, ks, ctx, trader, "usdc-dev", math.NewInt(10_000))

	before := getPool(t, k, ctx, index)
	_, err := k.Swap(ctx, index, trader, math.NewInt(10_000), math.NewInt(9_083), types.AtoB)
	require.ErrorIs(t, err, types.ErrSlippageExceeded)

	after := getPool(t, k, ctx, index)
	require.Equal(t, before.TokenA.Reserve.String(), after.TokenA.Reserve.String())
	require.Equal(t, before.TokenB.Reserve.String(), after.TokenB.Reserve.String())
	requireInt(t, 10_000, ks.Ledger.BalanceOf(ctx, "usdc-dev", trader))
	requireInt(t, 0, ks.Ledger.BalanceOf(ctx, "usdt-dev", trader))

	_, err = k.Swap(ctx, index, trader, math.NewInt(10_000), math.NewInt(9_082), types.AtoB)
	require.NoError(t, err)
}

func TestSwap_NotActivated(t *testing.T) {
	ks, ctx := keepertest.SwapverseKeeper(t)
	index := keepertest.CreateTestPool(t, ks, ctx, owner, keepertest.ScenarioConfig())
	keepertest.FundAndInvest(t, ks, ctx, index, investor1, types.SideA, math.NewInt(100_000))
	keepertest.Fund(t, ks, ctx, trader, "usdc-dev", math.NewInt(10_000))

	_, err := ks.Swapverse.Swap(ctx, index, trader, math.NewInt(10_000), math.ZeroInt(), types.AtoB)
	require.ErrorIs(t, err, types.ErrSwapPoolNotActivated)
}

func TestSwap_ClosedAfterEndOfLife(t *testing.T) {
	ks, ctx, index := setupScenarioPool(t)
	keepertest.Fund(t, ks, ctx, trader, "usdc-dev", math.NewInt(10_000))

	late := ctx.WithBlockTime(keepertest.GenesisTime.Add(361 * day))
	_, err := ks.Swapverse.Swap(late, index, trader, math.NewInt(10_000), math.ZeroInt(), types.AtoB)
	require.ErrorIs(t, err, types.ErrPoolClosedForSwaps)
}

func TestSwap_InsufficientBalance(t *testing.T) {
	ks, ctx, index := setupScenarioPool(t)
	keepertest.Fund(t, ks, ctx, trader, "usdc-dev", math.NewInt(500))

	_, err := ks.Swapverse.Swap(ctx, index, trader, math.NewInt(10_000), math.ZeroInt(), types.AtoB)
	require.ErrorIs(t, err, types.ErrInsufficientBalance)
}

func TestSwap_TreasuryFeeRouted(t *testing.T) {
	ks, ctx := keepertest.SwapverseKeeper(t)
	cfg := keepertest.ScenarioConfig()
	cfg.SwapFeeBps = 100
	cfg.TreasurySplitBps = 5_000
	index := keepertest.CreateTestPool(t, ks, ctx, owner, cfg)
	keepertest.FundAndInvest(t, ks, ctx, index, investor1, types.SideA, math.NewInt(100_000))
	keepertest.FundAndInvest(t, ks, ctx, index, investor1, types.SideB, math.NewInt(100_000))
	keepertest.Fund(t, ks, ctx, trader, "usdc-dev", math.NewInt(10_000))

	quote, err := ks.Swapverse.Swap(ctx, index, trader, math.NewInt(10_000), math.ZeroInt(), types.AtoB)
	require.NoError(t, err)
	requireInt(t, 100, quote.Fee)
	requireInt(t, 50, quote.TreasuryFee)
	requireInt(t, 9_008, quote.AmountOut)

	pool := getPool(t, ks.Swapverse, ctx, index)
	requireInt(t, 109_950, pool.TokenA.Reserve)
	requireInt(t, 90_992, pool.TokenB.Reserve)
	requireInt(t, 50, pool.TokenA.Treasury)
	requireInt(t, 50, ks.Ledger.BalanceOf(ctx, "usdc-dev", types.TreasuryAddress(index, "usdc-dev")))

	requireInvariants(t, ks.Swapverse, ctx)
}

func TestCalculateSwap_KNeverDecreases(t *testing.T) {
	pool := types.NewSwapPool(0, owner.String(), keepertest.ScenarioConfig(), keepertest.GenesisTime)
	pool.TokenA.Reserve = math.NewInt(1_000_003)
	pool.TokenB.Reserve = math.NewInt(777_777)

	for _, amount := range []int64{1_000, 12_345, 99_999, 500_000} {
		quote, err := keeper.CalculateSwap(pool, types.AtoB, math.NewInt(amount))
		require.NoError(t, err)
		kBefore := pool.TokenA.Reserve.Mul(pool.TokenB.Reserve)
		kAfter := quote.NewReserveIn.Mul(quote.NewReserveOut)
		require.True(t, kAfter.GTE(kBefore), "amount %d", amount)
		require.True(t, quote.AmountOut.LT(pool.TokenB.Reserve))
	}
}

func TestQuoteSwap_MatchesExecution(t *testing.T) {
	ks, ctx, index := setupScenarioPool(t)
	keepertest.Fund(t, ks, ctx, trader, "usdt-dev", math.NewInt(25_000))

	quote, err := ks.Swapverse.QuoteSwap(ctx, index, types.BtoA, math.NewInt(25_000))
	require.NoError(t, err)

	executed, err := ks.Swapverse.Swap(ctx, index, trader, math.NewInt(25_000), quote.AmountOut, types.BtoA)
	require.NoError(t, err)
	require.Equal(t, quote.AmountOut.String(), executed.AmountOut.String())
}

package keeper_test

import (
	"testing"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	keepertest "github.com/swapverse/swapverse/testutil/keeper"
	"github.com/swapverse/swapverse/x/swapverse/keeper"
	"github.com/swapverse/swapverse/x/swapverse/types"
)

func drawInt(t *rapid.T, min, max int64, label string) math.Int {
	return math.NewInt(rapid.Int64Range(min, max).Draw(t, label))
}

// Property: minted shares are the floor of the deposit's proportion of the side
func TestPropertySharesProportional(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		amount := drawInt(rt, 1, 1_000_000_000_000, "amount")
		reserve := drawInt(rt, 1, 1_000_000_000_000, "reserve")
		total := drawInt(rt, 1, 1_000_000_000_000, "total")

		shares, err := keeper.CalculateShares(amount, reserve, total)
		if err != nil {
			require.ErrorIs(rt, err, types.ErrZeroShares)
			require.True(rt, amount.Mul(total).LT(reserve))
			return
		}
		require.True(rt, shares.Mul(reserve).LTE(amount.Mul(total)))
		require.True(rt, shares.AddRaw(1).Mul(reserve).GT(amount.Mul(total)))

		first, err := keeper.CalculateShares(amount, reserve, math.ZeroInt())
		require.NoError(rt, err)
		require.Equal(rt, amount.String(), first.String())
	})
}

// Property: before activation every deposit mints shares one for one, so each
// investor's shares stay in proportion to their principal over the side reserve
func TestPropertyInvestSequenceProportional(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		ks, ctx := keepertest.SwapverseKeeper(t)
		k := ks.Swapverse
		cfg := keepertest.ScenarioConfig()
		cfg.InitialAmountA = math.NewInt(1_000_000)
		cfg.InitialAmountB = math.NewInt(1_000_000)
		index := keepertest.CreateTestPool(t, ks, ctx, owner, cfg)

		investors := []sdk.AccAddress{investor1, investor2, trader}
		steps := rapid.IntRange(1, 12).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			inv := rapid.SampledFrom(investors).Draw(rt, "investor")
			side := rapid.SampledFrom([]types.Side{types.SideA, types.SideB}).Draw(rt, "side")
			amount := drawInt(rt, 10_000, 150_000, "amount")

			before := getPool(rt, k, ctx, index)
			keepertest.Fund(t, ks, ctx, inv, before.Side(side).Denom, amount)
			shares, err := k.Invest(ctx, index, inv, side, amount)
			if !before.OpenForInvestment {
				require.ErrorIs(rt, err, types.ErrInvestmentWindowClosed)
				break
			}
			require.NoError(rt, err)
			require.Equal(rt, amount.String(), shares.String())
		}

		pool := getPool(rt, k, ctx, index)
		for _, side := range []types.Side{types.SideA, types.SideB} {
			ps := pool.Side(side)
			require.Equal(rt, ps.Reserve.String(), ps.TotalShares.String(), "side %s", side)

			principal := math.ZeroInt()
			for _, inv := range investors {
				info, err := k.GetInvestorPoolInfo(ctx, index, inv)
				require.NoError(rt, err)
				pos := info.Side(side)
				require.Equal(rt, pos.Principal.String(), pos.Shares.String())
				require.True(rt, pos.Shares.Mul(ps.Reserve).Equal(pos.Principal.Mul(ps.TotalShares)))
				require.Equal(rt, pos.Shares.String(), ks.Ledger.BalanceOf(ctx, ps.ShareDenom, inv).String())
				principal = principal.Add(pos.Principal)
			}
			require.Equal(rt, ps.Reserve.String(), principal.String(), "side %s", side)
		}
		requireInvariants(rt, k, ctx)
	})
}

// Property: a larger input never buys less output, and the product of the
// reserves never shrinks
func TestPropertySwapMonotonic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		cfg := keepertest.ScenarioConfig()
		cfg.SwapFeeBps = uint32(rapid.IntRange(0, 1_000).Draw(rt, "fee"))
		cfg.TreasurySplitBps = uint32(rapid.IntRange(0, types.BasisPoints).Draw(rt, "split"))
		pool := types.NewSwapPool(0, owner.String(), cfg, keepertest.GenesisTime)
		pool.TokenA.Reserve = drawInt(rt, 1_000, 1_000_000_000, "reserveA")
		pool.TokenB.Reserve = drawInt(rt, 1_000, 1_000_000_000, "reserveB")
		direction := rapid.SampledFrom([]types.Direction{types.AtoB, types.BtoA}).Draw(rt, "direction")

		small := drawInt(rt, 1, 10_000_000, "small")
		large := small.Add(drawInt(rt, 0, 10_000_000, "delta"))

		qs, errS := keeper.CalculateSwap(pool, direction, small)
		ql, errL := keeper.CalculateSwap(pool, direction, large)
		if errL != nil {
			return
		}
		in := pool.Side(direction.In())
		out := pool.Side(direction.Out())

		require.True(rt, ql.AmountOut.LT(out.Reserve))
		require.True(rt, ql.NewReserveIn.GTE(in.Reserve))
		require.True(rt, ql.NewReserveOut.IsPositive())
		kBefore := in.Reserve.Mul(out.Reserve)
		require.True(rt, ql.NewReserveIn.Mul(ql.NewReserveOut).GTE(kBefore))
		require.True(rt, ql.Fee.GTE(ql.TreasuryFee))

		if errS == nil {
			require.True(rt, qs.AmountOut.LTE(ql.AmountOut))
		}
	})
}

// Property: a swap rejected for slippage changes neither the pool nor the
// trader's balances
func TestPropertySlippageAtomic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		ks, ctx, index := setupScenarioPool(t)
		k := ks.Swapverse
		keepertest.Fund(t, ks, ctx, trader, "usdc-dev", math.NewInt(1_000_000))
		keepertest.Fund(t, ks, ctx, trader, "usdt-dev", math.NewInt(1_000_000))

		steps := rapid.IntRange(1, 8).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			direction := rapid.SampledFrom([]types.Direction{types.AtoB, types.BtoA}).Draw(rt, "direction")
			amountIn := drawInt(rt, 100, 50_000, "amountIn")

			quote, err := k.QuoteSwap(ctx, index, direction, amountIn)
			if err != nil {
				continue
			}
			minOut := quote.AmountOut.Add(drawInt(rt, -50, 50, "slack"))
			if minOut.IsNegative() {
				minOut = math.ZeroInt()
			}

			before := getPool(rt, k, ctx, index)
			balIn := ks.Ledger.BalanceOf(ctx, quote.DenomIn, trader)
			balOut := ks.Ledger.BalanceOf(ctx, quote.DenomOut, trader)

			executed, err := k.Swap(ctx, index, trader, amountIn, minOut, direction)
			if minOut.GT(quote.AmountOut) {
				require.ErrorIs(rt, err, types.ErrSlippageExceeded)
				require.Equal(rt, before, getPool(rt, k, ctx, index))
				require.Equal(rt, balIn.String(), ks.Ledger.BalanceOf(ctx, quote.DenomIn, trader).String())
				require.Equal(rt, balOut.String(), ks.Ledger.BalanceOf(ctx, quote.DenomOut, trader).String())
				continue
			}
			require.NoError(rt, err)
			require.Equal(rt, quote.AmountOut.String(), executed.AmountOut.String())
			require.Equal(rt, balOut.Add(executed.AmountOut).String(),
				ks.Ledger.BalanceOf(ctx, quote.DenomOut, trader).String())
		}
		requireInvariants(rt, k, ctx)
	})
}

// Property: pending profit over all investors never exceeds the treasury,
// and claiming it all keeps every balance non-negative
func TestPropertyProfitConservation(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		ks, ctx := keepertest.SwapverseKeeper(t)
		k := ks.Swapverse
		cfg := keepertest.ScenarioConfig()
		cfg.SwapFeeBps = uint32(rapid.IntRange(1, 500).Draw(rt, "fee"))
		cfg.TreasurySplitBps = uint32(rapid.IntRange(0, types.BasisPoints).Draw(rt, "split"))
		index := keepertest.CreateTestPool(t, ks, ctx, owner, cfg)

		investors := []sdk.AccAddress{investor1, investor2}
		for _, side := range []types.Side{types.SideA, types.SideB} {
			first := drawInt(rt, 10_000, 90_000, "first")
			keepertest.FundAndInvest(t, ks, ctx, index, investor1, side, first)
			keepertest.FundAndInvest(t, ks, ctx, index, investor2, side, math.NewInt(100_000).Sub(first))
		}
		require.True(rt, getPool(rt, k, ctx, index).ActiveForSwap)

		keepertest.Fund(t, ks, ctx, trader, "usdc-dev", math.NewInt(2_000_000))
		keepertest.Fund(t, ks, ctx, trader, "usdt-dev", math.NewInt(2_000_000))
		swaps := rapid.IntRange(1, 10).Draw(rt, "swaps")
		for i := 0; i < swaps; i++ {
			direction := rapid.SampledFrom([]types.Direction{types.AtoB, types.BtoA}).Draw(rt, "direction")
			_, _ = k.Swap(ctx, index, trader, drawInt(rt, 1_000, 60_000, "amountIn"), math.ZeroInt(), direction)
		}

		pool := getPool(rt, k, ctx, index)
		for _, side := range []types.Side{types.SideA, types.SideB} {
			pending := math.ZeroInt()
			for _, inv := range investors {
				p, err := k.PendingProfit(ctx, index, inv, side)
				require.NoError(rt, err)
				require.False(rt, p.IsNegative())
				pending = pending.Add(p)
			}
			require.True(rt, pending.LTE(pool.Side(side).Treasury), "side %s", side)

			for _, inv := range investors {
				_, err := k.ClaimProfit(ctx, index, inv, side)
				if err != nil {
					require.ErrorIs(rt, err, types.ErrNothingToClaim)
				}
			}
			after := getPool(rt, k, ctx, index)
			require.False(rt, after.Side(side).Treasury.IsNegative())
		}
		requireInvariants(rt, k, ctx)
	})
}

// Property: at no point in time is a pool open for investment and withdrawal
// at once, and a pool open for withdrawal never swaps
func TestPropertyLifecycleExclusive(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		ks, ctx := keepertest.SwapverseKeeper(t)
		k := ks.Swapverse
		index := keepertest.CreateTestPool(t, ks, ctx, owner, keepertest.ScenarioConfig())
		if rapid.Bool().Draw(rt, "fill") {
			keepertest.FundAndInvest(t, ks, ctx, index, investor1, types.SideA, math.NewInt(100_000))
			keepertest.FundAndInvest(t, ks, ctx, index, investor2, types.SideB, math.NewInt(100_000))
		} else {
			keepertest.FundAndInvest(t, ks, ctx, index, investor1, types.SideA, math.NewInt(10_000))
		}

		days := rapid.SliceOfN(rapid.IntRange(0, 800), 1, 6).Draw(rt, "days")
		for _, d := range days {
			c := ctx.WithBlockTime(keepertest.GenesisTime.Add(time.Duration(d) * day))
			require.NoError(rt, k.EndBlocker(c))
			pool := getPool(rt, k, c, index)
			require.False(rt, pool.OpenForInvestment && pool.OpenForWithdrawal, "day %d", d)
			require.False(rt, pool.ActiveForSwap && pool.OpenForWithdrawal, "day %d", d)
		}
		requireInvariants(rt, k, ctx)
	})
}

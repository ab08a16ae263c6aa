package keeper

import (
	"context"
	"strconv"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/swapverse/swapverse/x/swapverse/types"
)

// CalculateSwap prices a swap against the pool's current reserves using the
// constant product formula. The fee is taken from the input; the treasury
// part of the fee leaves the reserves, the rest stays with the investors.
func CalculateSwap(pool types.SwapPool, direction types.Direction, amountIn math.Int) (types.SwapQuote, error) {
	if amountIn.IsNil() || !amountIn.IsPositive() {
		return types.SwapQuote{}, types.ErrInvalidAmount.Wrap("swap amount must be positive")
	}

	in := pool.Side(direction.In())
	out := pool.Side(direction.Out())
	if !in.Reserve.IsPositive() || !out.Reserve.IsPositive() {
		return types.SwapQuote{}, types.ErrInsufficientLiquidity.Wrapf("pool %d has an empty reserve", pool.Index)
	}

	fee, err := bps(amountIn, pool.SwapFeeBps)
	if err != nil {
		return types.SwapQuote{}, err
	}
	treasuryFee, err := bps(fee, pool.TreasurySplitBps)
	if err != nil {
		return types.SwapQuote{}, err
	}
	amountInAfterFee := amountIn.Sub(fee)
	if !amountInAfterFee.IsPositive() {
		return types.SwapQuote{}, types.ErrInvalidAmount.Wrap("swap amount too small after fees")
	}

	// x * y = k, rounding the new output reserve up so k never shrinks
	denominator, err := SafeAdd(in.Reserve, amountInAfterFee)
	if err != nil {
		return types.SwapQuote{}, err
	}
	newReserveOut, err := SafeMulDivUp(in.Reserve, out.Reserve, denominator)
	if err != nil {
		return types.SwapQuote{}, err
	}
	amountOut := out.Reserve.Sub(newReserveOut)
	if !amountOut.IsPositive() {
		return types.SwapQuote{}, types.ErrInsufficientLiquidity.Wrapf("swap of %s%s yields nothing", amountIn, in.Denom)
	}
	if amountOut.GTE(out.Reserve) {
		return types.SwapQuote{}, types.ErrInsufficientLiquidity.Wrap("swap would drain the pool")
	}

	newReserveIn, err := SafeAdd(in.Reserve, amountIn.Sub(treasuryFee))
	if err != nil {
		return types.SwapQuote{}, err
	}

	return types.SwapQuote{
		AmountIn:      amountIn,
		Fee:           fee,
		TreasuryFee:   treasuryFee,
		AmountInNet:   amountInAfterFee,
		AmountOut:     amountOut,
		DenomIn:       in.Denom,
		DenomOut:      out.Denom,
		NewReserveIn:  newReserveIn,
		NewReserveOut: newReserveOut,
	}, nil
}

// QuoteSwap prices a swap against a stored pool without executing it
func (k Keeper) QuoteSwap(ctx context.Context, index uint64, direction types.Direction, amountIn math.Int) (types.SwapQuote, error) {
	pool, err := k.GetSwapPool(ctx, index)
	if err != nil {
		return types.SwapQuote{}, err
	}
	return CalculateSwap(pool, direction, amountIn)
}

// Swap exchanges amountIn of one pool token for at least minAmountOut of the other.
// Nothing changes when any check fails.
func (k Keeper) Swap(ctx context.Context, index uint64, user sdk.AccAddress, amountIn, minAmountOut math.Int, direction types.Direction) (quote types.SwapQuote, err error) {
	start := time.Now()
	poolLabel := strconv.FormatUint(index, 10)
	defer func() {
		k.metrics.SwapLatency.Observe(time.Since(start).Seconds())
		status := "success"
		if err != nil {
			status = "failed"
		}
		k.metrics.SwapsTotal.WithLabelValues(poolLabel, direction.String(), status).Inc()
	}()

	if minAmountOut.IsNil() || minAmountOut.IsNegative() {
		return types.SwapQuote{}, types.ErrInvalidAmount.Wrap("min amount out must be non-negative")
	}

	pool, err := k.GetSwapPool(ctx, index)
	if err != nil {
		return types.SwapQuote{}, err
	}
	k.refreshLifecycle(ctx, &pool)

	if pool.OpenForWithdrawal {
		return types.SwapQuote{}, types.ErrPoolClosedForSwaps.Wrapf("pool %d", index)
	}
	if !pool.ActiveForSwap {
		return types.SwapQuote{}, types.ErrSwapPoolNotActivated.Wrapf("pool %d", index)
	}

	quote, err = CalculateSwap(pool, direction, amountIn)
	if err != nil {
		return types.SwapQuote{}, err
	}
	if quote.AmountOut.LT(minAmountOut) {
		return types.SwapQuote{}, types.ErrSlippageExceeded.Wrapf("expected at least %s, got %s", minAmountOut, quote.AmountOut)
	}

	in := pool.Side(direction.In())
	out := pool.Side(direction.Out())
	vault := sdk.MustAccAddressFromBech32(pool.VaultAddress)

	if err := k.ledger.Transfer(ctx, user, in.Denom, user, vault, amountIn); err != nil {
		return types.SwapQuote{}, wrapLedgerErr(err, "swap input")
	}
	if err := k.ledger.Transfer(ctx, k.authority.addr, out.Denom, vault, user, quote.AmountOut); err != nil {
		return types.SwapQuote{}, wrapLedgerErr(err, "swap output")
	}
	if quote.TreasuryFee.IsPositive() {
		treasury := sdk.MustAccAddressFromBech32(in.TreasuryAddress)
		if err := k.ledger.Transfer(ctx, k.authority.addr, in.Denom, vault, treasury, quote.TreasuryFee); err != nil {
			return types.SwapQuote{}, wrapLedgerErr(err, "route treasury fee")
		}
	}

	in.Reserve = quote.NewReserveIn
	out.Reserve = quote.NewReserveOut
	if err := accrueProfit(in, quote.TreasuryFee); err != nil {
		return types.SwapQuote{}, err
	}

	if err := k.SetSwapPool(ctx, pool); err != nil {
		return types.SwapQuote{}, err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeSwap,
			sdk.NewAttribute(types.AttributeKeyPoolIndex, poolLabel),
			sdk.NewAttribute(types.AttributeKeyUser, user.String()),
			sdk.NewAttribute(types.AttributeKeyTokenIn, in.Denom),
			sdk.NewAttribute(types.AttributeKeyTokenOut, out.Denom),
			sdk.NewAttribute(types.AttributeKeyAmountIn, amountIn.String()),
			sdk.NewAttribute(types.AttributeKeyAmountOut, quote.AmountOut.String()),
			sdk.NewAttribute(types.AttributeKeyFee, quote.Fee.String()),
			sdk.NewAttribute(types.AttributeKeyTreasuryFee, quote.TreasuryFee.String()),
		),
	)
	k.metrics.SwapVolume.WithLabelValues(poolLabel, in.Denom).Add(toFloat(amountIn))
	k.metrics.SwapFeesCollected.WithLabelValues(poolLabel, in.Denom).Add(toFloat(quote.TreasuryFee))
	k.metrics.PoolReserves.WithLabelValues(poolLabel, in.Denom).Set(toFloat(in.Reserve))
	k.metrics.PoolReserves.WithLabelValues(poolLabel, out.Denom).Set(toFloat(out.Reserve))

	return quote, nil
}

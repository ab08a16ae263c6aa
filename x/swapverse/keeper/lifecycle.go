package keeper

import (
	"context"
	"strconv"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/swapverse/swapverse/x/swapverse/types"
)

// refreshLifecycle applies any time-based transition that is due. It reports
// whether the pool changed; the caller persists it.
func (k Keeper) refreshLifecycle(ctx context.Context, pool *types.SwapPool) bool {
	if pool.OpenForWithdrawal {
		return false
	}

	now := sdk.UnwrapSDKContext(ctx).BlockTime()
	day := k.GetParams(ctx).DayDuration

	switch {
	case !pool.ActiveForSwap && now.After(pool.FillDeadline(day)):
		k.openForWithdrawal(ctx, pool, types.WithdrawalReasonFillDeadline)
		return true
	case now.After(pool.EndOfLife(day)):
		k.openForWithdrawal(ctx, pool, types.WithdrawalReasonEndOfLife)
		return true
	}
	return false
}

// openForWithdrawal closes investment and swaps and fixes the redemption
// value of each share. It must only run once per pool.
func (k Keeper) openForWithdrawal(ctx context.Context, pool *types.SwapPool, reason string) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	for _, s := range []types.Side{types.SideA, types.SideB} {
		side := pool.Side(s)
		if side.TotalShares.IsPositive() {
			side.WithdrawValuePerShare = math.LegacyNewDecFromInt(side.Reserve).QuoInt(side.TotalShares)
		} else {
			side.WithdrawValuePerShare = math.LegacyZeroDec()
		}
	}

	pool.OpenForInvestment = false
	pool.ActiveForSwap = false
	pool.OpenForWithdrawal = true
	pool.WithdrawalOpenedAt = sdkCtx.BlockTime()

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeWithdrawalOpened,
			sdk.NewAttribute(types.AttributeKeyPoolIndex, strconv.FormatUint(pool.Index, 10)),
			sdk.NewAttribute(types.AttributeKeyReason, reason),
			sdk.NewAttribute(types.AttributeKeyValuePerShare+"_a", pool.TokenA.WithdrawValuePerShare.String()),
			sdk.NewAttribute(types.AttributeKeyValuePerShare+"_b", pool.TokenB.WithdrawValuePerShare.String()),
		),
	)
	k.metrics.PoolTransitions.WithLabelValues("withdrawal_" + reason).Inc()
	k.Logger(ctx).Info("swap pool open for withdrawal", "pool_index", pool.Index, "reason", reason)
}

// maybeActivate turns swaps on once both sides reached their initial amounts
func (k Keeper) maybeActivate(ctx context.Context, pool *types.SwapPool) {
	if pool.ActiveForSwap || pool.OpenForWithdrawal || !pool.Filled() {
		return
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	pool.ActiveForSwap = true
	pool.ActivatedAt = sdkCtx.BlockTime()

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeSwapPoolActivated,
			sdk.NewAttribute(types.AttributeKeyPoolIndex, strconv.FormatUint(pool.Index, 10)),
		),
	)
	k.metrics.PoolTransitions.WithLabelValues("activated").Inc()
	k.Logger(ctx).Info("swap pool activated", "pool_index", pool.Index)
}

// RefreshPool applies due lifecycle transitions to a stored pool
func (k Keeper) RefreshPool(ctx context.Context, index uint64) (bool, error) {
	pool, err := k.GetSwapPool(ctx, index)
	if err != nil {
		return false, err
	}
	if !k.refreshLifecycle(ctx, &pool) {
		return false, nil
	}
	return true, k.SetSwapPool(ctx, pool)
}

// ClosePool opens a pool for withdrawal ahead of its deadlines. Only the
// registry owner may close a pool; closing an already closed pool is a no-op.
func (k Keeper) ClosePool(ctx context.Context, authority sdk.AccAddress, index uint64) error {
	gs, err := k.GetGlobalState(ctx)
	if err != nil {
		return err
	}
	if authority.String() != gs.Owner {
		return types.ErrUnauthorized.Wrapf("%s is not the registry owner", authority)
	}

	pool, err := k.GetSwapPool(ctx, index)
	if err != nil {
		return err
	}
	if pool.OpenForWithdrawal {
		return nil
	}

	k.openForWithdrawal(ctx, &pool, types.WithdrawalReasonClosed)
	return k.SetSwapPool(ctx, pool)
}

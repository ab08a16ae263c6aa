package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/swapverse/swapverse/x/swapverse/types"
)

// EndBlocker applies due lifecycle transitions to every pool that is not yet
// open for withdrawal. Failures are logged and the sweep continues.
func (k Keeper) EndBlocker(ctx context.Context) error {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	var due []uint64
	err := k.IterateSwapPools(ctx, func(pool types.SwapPool) bool {
		if !pool.OpenForWithdrawal {
			due = append(due, pool.Index)
		}
		return false
	})
	if err != nil {
		sdkCtx.Logger().Error("failed to iterate swap pools", "error", err)
		return nil
	}

	transitioned := 0
	for _, index := range due {
		changed, err := k.RefreshPool(ctx, index)
		if err != nil {
			sdkCtx.Logger().Error("failed to refresh swap pool", "pool_index", index, "error", err)
			continue
		}
		if changed {
			transitioned++
		}
	}

	if transitioned > 0 {
		k.Logger(ctx).Info("lifecycle sweep", "pools_checked", len(due), "pools_transitioned", transitioned)
	}
	return nil
}

package keeper

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	errorsmod "cosmossdk.io/errors"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/swapverse/swapverse/x/swapverse/types"
	ledgertypes "github.com/swapverse/swapverse/x/tokenledger/types"
)

// CreateSwapPool registers a new pool between two recognized tokens.
// Only the registry owner may create pools.
func (k Keeper) CreateSwapPool(ctx context.Context, creator sdk.AccAddress, cfg types.PoolConfig) (uint64, error) {
	// 1. Registry checks
	gs, err := k.GetGlobalState(ctx)
	if err != nil {
		return 0, err
	}
	if creator.String() != gs.Owner {
		return 0, types.ErrUnauthorized.Wrapf("%s is not the registry owner", creator)
	}
	if !gs.IsRecognized(cfg.TokenA) {
		return 0, types.ErrUnrecognizedTokenType.Wrap(cfg.TokenA)
	}
	if !gs.IsRecognized(cfg.TokenB) {
		return 0, types.ErrUnrecognizedTokenType.Wrap(cfg.TokenB)
	}

	// 2. Configuration checks
	if err := cfg.Validate(); err != nil {
		return 0, err
	}
	if err := cfg.ValidateDayLength(k.GetParams(ctx).DayDuration); err != nil {
		return 0, err
	}

	// 3. Derive the pool's accounts and share tokens
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	index := gs.NoOfSwapPools
	pool := types.NewSwapPool(index, creator.String(), cfg, sdkCtx.BlockTime())

	for _, s := range []types.Side{types.SideA, types.SideB} {
		side := pool.Side(s)
		err := k.ledger.RegisterDenom(ctx, ledgertypes.DenomMetadata{
			Denom:         side.ShareDenom,
			MintAuthority: k.authority.addr.String(),
			Frozen:        true,
		})
		if err != nil {
			return 0, errorsmod.Wrapf(err, "register share token for side %s", s)
		}
		k.ledger.SetAccountAuthority(ctx, sdk.MustAccAddressFromBech32(side.TreasuryAddress), k.authority.addr)
	}
	k.ledger.SetAccountAuthority(ctx, sdk.MustAccAddressFromBech32(pool.VaultAddress), k.authority.addr)

	// 4. Persist pool and bump the counter
	if err := k.SetSwapPool(ctx, pool); err != nil {
		return 0, err
	}
	gs.NoOfSwapPools++
	if err := k.setGlobalState(ctx, gs); err != nil {
		return 0, err
	}

	// 5. Emit event and metrics
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeSwapPoolCreated,
			sdk.NewAttribute(types.AttributeKeyPoolIndex, strconv.FormatUint(index, 10)),
			sdk.NewAttribute(types.AttributeKeyCreator, creator.String()),
			sdk.NewAttribute(types.AttributeKeyTokenA, cfg.TokenA),
			sdk.NewAttribute(types.AttributeKeyTokenB, cfg.TokenB),
		),
	)
	k.metrics.PoolsTotal.Set(float64(gs.NoOfSwapPools))
	k.Logger(ctx).Info("swap pool created", "pool_index", index, "token_a", cfg.TokenA, "token_b", cfg.TokenB)

	return index, nil
}

// GetSwapPool returns a pool by index
func (k Keeper) GetSwapPool(ctx context.Context, index uint64) (types.SwapPool, error) {
	bz := k.getStore(ctx).Get(types.SwapPoolKey(index))
	if bz == nil {
		return types.SwapPool{}, types.ErrPoolNotFound.Wrapf("pool %d", index)
	}
	var pool types.SwapPool
	if err := json.Unmarshal(bz, &pool); err != nil {
		return types.SwapPool{}, fmt.Errorf("GetSwapPool: unmarshal pool %d: %w", index, err)
	}
	return pool, nil
}

// SetSwapPool stores a pool
func (k Keeper) SetSwapPool(ctx context.Context, pool types.SwapPool) error {
	bz, err := json.Marshal(pool)
	if err != nil {
		return fmt.Errorf("SetSwapPool: marshal pool %d: %w", pool.Index, err)
	}
	k.getStore(ctx).Set(types.SwapPoolKey(pool.Index), bz)
	return nil
}

// IterateSwapPools iterates over all pools in index order
func (k Keeper) IterateSwapPools(ctx context.Context, cb func(pool types.SwapPool) (stop bool)) error {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.SwapPoolKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var pool types.SwapPool
		if err := json.Unmarshal(iterator.Value(), &pool); err != nil {
			return fmt.Errorf("IterateSwapPools: unmarshal: %w", err)
		}
		if cb(pool) {
			break
		}
	}
	return nil
}

// GetAllSwapPools returns every pool
func (k Keeper) GetAllSwapPools(ctx context.Context) ([]types.SwapPool, error) {
	var pools []types.SwapPool
	err := k.IterateSwapPools(ctx, func(pool types.SwapPool) bool {
		pools = append(pools, pool)
		return false
	})
	return pools, err
}

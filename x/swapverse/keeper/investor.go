package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/swapverse/swapverse/x/swapverse/types"
)

// GetInvestorPoolInfo returns the investor's record, or an empty one
func (k Keeper) GetInvestorPoolInfo(ctx context.Context, index uint64, investor sdk.AccAddress) (types.InvestorPoolInfo, error) {
	bz := k.getStore(ctx).Get(types.InvestorPoolInfoKey(index, investor))
	if bz == nil {
		return types.NewInvestorPoolInfo(index, investor), nil
	}
	var info types.InvestorPoolInfo
	if err := json.Unmarshal(bz, &info); err != nil {
		return types.InvestorPoolInfo{}, fmt.Errorf("GetInvestorPoolInfo: unmarshal: %w", err)
	}
	return info, nil
}

// SetInvestorPoolInfo stores an investor's record
func (k Keeper) SetInvestorPoolInfo(ctx context.Context, info types.InvestorPoolInfo) error {
	investor, err := sdk.AccAddressFromBech32(info.Investor)
	if err != nil {
		return types.ErrInvalidAddress.Wrap(err.Error())
	}
	bz, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("SetInvestorPoolInfo: marshal: %w", err)
	}
	k.getStore(ctx).Set(types.InvestorPoolInfoKey(info.PoolIndex, investor), bz)
	return nil
}

// IterateInvestors iterates over every investor record of a pool
func (k Keeper) IterateInvestors(ctx context.Context, index uint64, cb func(info types.InvestorPoolInfo) (stop bool)) error {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.InvestorPoolInfoPrefix(index))
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var info types.InvestorPoolInfo
		if err := json.Unmarshal(iterator.Value(), &info); err != nil {
			return fmt.Errorf("IterateInvestors: unmarshal: %w", err)
		}
		if cb(info) {
			break
		}
	}
	return nil
}

// IterateAllInvestors iterates over every investor record of every pool
func (k Keeper) IterateAllInvestors(ctx context.Context, cb func(info types.InvestorPoolInfo) (stop bool)) error {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.InvestorPoolInfoKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var info types.InvestorPoolInfo
		if err := json.Unmarshal(iterator.Value(), &info); err != nil {
			return fmt.Errorf("IterateAllInvestors: unmarshal: %w", err)
		}
		if cb(info) {
			break
		}
	}
	return nil
}

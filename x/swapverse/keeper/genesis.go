package keeper

import (
	"context"
	"fmt"

	"github.com/swapverse/swapverse/x/swapverse/types"
)

// InitGenesis initializes the swapverse module's state from a genesis state.
// Ledger state (token denoms, share denoms, balances) is loaded by the token ledger.
func (k Keeper) InitGenesis(ctx context.Context, gs types.GenesisState) error {
	if err := gs.Validate(); err != nil {
		return fmt.Errorf("invalid swapverse genesis: %w", err)
	}
	if err := k.SetParams(ctx, gs.Params); err != nil {
		return err
	}

	if gs.GlobalState != nil {
		if err := k.setGlobalState(ctx, *gs.GlobalState); err != nil {
			return err
		}
	}
	for _, pool := range gs.Pools {
		if err := k.SetSwapPool(ctx, pool); err != nil {
			return err
		}
	}
	for _, info := range gs.Investors {
		if err := k.SetInvestorPoolInfo(ctx, info); err != nil {
			return err
		}
	}
	return nil
}

// ExportGenesis returns the swapverse module's genesis state
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	gs := types.DefaultGenesis()
	gs.Params = k.GetParams(ctx)

	if !k.IsInitialized(ctx) {
		return gs, nil
	}
	registry, err := k.GetGlobalState(ctx)
	if err != nil {
		return nil, err
	}
	gs.GlobalState = &registry

	pools, err := k.GetAllSwapPools(ctx)
	if err != nil {
		return nil, err
	}
	gs.Pools = append(gs.Pools, pools...)

	err = k.IterateAllInvestors(ctx, func(info types.InvestorPoolInfo) bool {
		gs.Investors = append(gs.Investors, info)
		return false
	})
	if err != nil {
		return nil, err
	}
	return gs, nil
}

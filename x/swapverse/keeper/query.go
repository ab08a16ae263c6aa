package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/swapverse/swapverse/x/swapverse/types"
)

// InvestorView is an investor's record together with the profit currently claimable
type InvestorView struct {
	types.InvestorPoolInfo
	PendingProfitA math.Int `json:"pending_profit_a"`
	PendingProfitB math.Int `json:"pending_profit_b"`
}

// QueryInvestor returns an investor's view of a pool
func (k Keeper) QueryInvestor(ctx context.Context, index uint64, investor sdk.AccAddress) (InvestorView, error) {
	info, err := k.GetInvestorPoolInfo(ctx, index, investor)
	if err != nil {
		return InvestorView{}, err
	}
	pendingA, err := k.PendingProfit(ctx, index, investor, types.SideA)
	if err != nil {
		return InvestorView{}, err
	}
	pendingB, err := k.PendingProfit(ctx, index, investor, types.SideB)
	if err != nil {
		return InvestorView{}, err
	}
	return InvestorView{InvestorPoolInfo: info, PendingProfitA: pendingA, PendingProfitB: pendingB}, nil
}

// QueryPools returns a page of pools in index order
func (k Keeper) QueryPools(ctx context.Context, offset, limit int) ([]types.SwapPool, uint64, error) {
	gs, err := k.GetGlobalState(ctx)
	if err != nil {
		return nil, 0, err
	}
	pools := []types.SwapPool{}
	seen := 0
	err = k.IterateSwapPools(ctx, func(pool types.SwapPool) bool {
		if seen >= offset {
			pools = append(pools, pool)
		}
		seen++
		return limit > 0 && len(pools) >= limit
	})
	return pools, gs.NoOfSwapPools, err
}

// Balance returns a ledger balance
func (k Keeper) Balance(ctx context.Context, denom string, owner sdk.AccAddress) math.Int {
	return k.ledger.BalanceOf(ctx, denom, owner)
}

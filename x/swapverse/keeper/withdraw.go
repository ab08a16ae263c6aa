package keeper

import (
	"context"
	"strconv"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/swapverse/swapverse/x/swapverse/types"
)

// Withdraw redeems every share the investor holds on one side at the value
// fixed when the pool opened for withdrawal, and pays out pending profit.
func (k Keeper) Withdraw(ctx context.Context, index uint64, investor sdk.AccAddress, s types.Side) (redeemed, profit math.Int, err error) {
	if err := s.Validate(); err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}

	pool, err := k.GetSwapPool(ctx, index)
	if err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}
	k.refreshLifecycle(ctx, &pool)

	if !pool.OpenForWithdrawal {
		return math.ZeroInt(), math.ZeroInt(), types.ErrWithdrawalWindowClosed.Wrapf("pool %d", index)
	}

	info, err := k.GetInvestorPoolInfo(ctx, index, investor)
	if err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}
	side := pool.Side(s)
	pos := info.Side(s)
	if !pos.Shares.IsPositive() {
		return math.ZeroInt(), math.ZeroInt(), types.ErrNothingToWithdraw.Wrapf("pool %d side %s", index, s)
	}

	if err := settleProfit(side, pos); err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}
	profit = takeProfit(side, pos)

	shares := pos.Shares
	redeemed = side.WithdrawValuePerShare.MulInt(shares).TruncateInt()
	if redeemed.GT(side.Reserve) {
		redeemed = side.Reserve
	}

	if err := k.ledger.Burn(ctx, k.authority.addr, side.ShareDenom, investor, shares); err != nil {
		return math.ZeroInt(), math.ZeroInt(), wrapLedgerErr(err, "burn shares")
	}
	vault := sdk.MustAccAddressFromBech32(pool.VaultAddress)
	if redeemed.IsPositive() {
		if err := k.ledger.Transfer(ctx, k.authority.addr, side.Denom, vault, investor, redeemed); err != nil {
			return math.ZeroInt(), math.ZeroInt(), wrapLedgerErr(err, "redeem principal")
		}
	}
	if profit.IsPositive() {
		treasury := sdk.MustAccAddressFromBech32(side.TreasuryAddress)
		if err := k.ledger.Transfer(ctx, k.authority.addr, side.Denom, treasury, investor, profit); err != nil {
			return math.ZeroInt(), math.ZeroInt(), wrapLedgerErr(err, "pay profit")
		}
	}

	side.Reserve = side.Reserve.Sub(redeemed)
	side.TotalShares = side.TotalShares.Sub(shares)
	pos.Withdrawn = pos.Withdrawn.Add(redeemed)
	pos.Shares = math.ZeroInt()
	pos.Principal = math.ZeroInt()
	pos.ProfitDebt = math.ZeroInt()

	if err := k.SetSwapPool(ctx, pool); err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}
	if err := k.SetInvestorPoolInfo(ctx, info); err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}

	poolLabel := strconv.FormatUint(index, 10)
	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeWithdraw,
			sdk.NewAttribute(types.AttributeKeyPoolIndex, poolLabel),
			sdk.NewAttribute(types.AttributeKeyInvestor, investor.String()),
			sdk.NewAttribute(types.AttributeKeySide, s.String()),
			sdk.NewAttribute(types.AttributeKeyShares, shares.String()),
			sdk.NewAttribute(types.AttributeKeyAmount, redeemed.String()),
			sdk.NewAttribute(types.AttributeKeyProfit, profit.String()),
		),
	)
	k.metrics.Withdrawals.WithLabelValues(poolLabel, side.Denom).Add(toFloat(redeemed))
	k.metrics.PoolReserves.WithLabelValues(poolLabel, side.Denom).Set(toFloat(side.Reserve))

	return redeemed, profit, nil
}

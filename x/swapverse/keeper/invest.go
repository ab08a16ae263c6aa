package keeper

import (
	"context"
	"strconv"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/swapverse/swapverse/x/swapverse/types"
)

// Invest deposits amount into one side of a pool and mints shares to the
// investor. The first deposit on a side mints one share per token; later
// deposits mint amount * totalShares / reserve.
func (k Keeper) Invest(ctx context.Context, index uint64, investor sdk.AccAddress, s types.Side, amount math.Int) (math.Int, error) {
	if err := s.Validate(); err != nil {
		return math.ZeroInt(), err
	}
	if amount.IsNil() || !amount.IsPositive() {
		return math.ZeroInt(), types.ErrInvalidAmount.Wrap("investment must be positive")
	}

	pool, err := k.GetSwapPool(ctx, index)
	if err != nil {
		return math.ZeroInt(), err
	}
	k.refreshLifecycle(ctx, &pool)

	if !pool.OpenForInvestment {
		return math.ZeroInt(), types.ErrInvestmentWindowClosed.Wrapf("pool %d", index)
	}
	if amount.LT(pool.MinInvestmentAmount) {
		return math.ZeroInt(), types.ErrBelowMinimumInvestment.Wrapf("%s < %s", amount, pool.MinInvestmentAmount)
	}

	side := pool.Side(s)
	shares, err := CalculateShares(amount, side.Reserve, side.TotalShares)
	if err != nil {
		return math.ZeroInt(), err
	}

	vault := sdk.MustAccAddressFromBech32(pool.VaultAddress)
	if err := k.ledger.Transfer(ctx, investor, side.Denom, investor, vault, amount); err != nil {
		return math.ZeroInt(), wrapLedgerErr(err, "deposit")
	}
	if err := k.ledger.Mint(ctx, k.authority.addr, side.ShareDenom, investor, shares); err != nil {
		return math.ZeroInt(), wrapLedgerErr(err, "mint shares")
	}

	info, err := k.GetInvestorPoolInfo(ctx, index, investor)
	if err != nil {
		return math.ZeroInt(), err
	}
	pos := info.Side(s)
	if err := settleProfit(side, pos); err != nil {
		return math.ZeroInt(), err
	}
	pos.Principal = pos.Principal.Add(amount)
	pos.Shares = pos.Shares.Add(shares)
	if err := checkpointProfit(side, pos); err != nil {
		return math.ZeroInt(), err
	}

	if side.Reserve, err = SafeAdd(side.Reserve, amount); err != nil {
		return math.ZeroInt(), err
	}
	side.TotalShares = side.TotalShares.Add(shares)

	k.maybeActivate(ctx, &pool)

	if err := k.SetSwapPool(ctx, pool); err != nil {
		return math.ZeroInt(), err
	}
	if err := k.SetInvestorPoolInfo(ctx, info); err != nil {
		return math.ZeroInt(), err
	}

	poolLabel := strconv.FormatUint(index, 10)
	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeInvest,
			sdk.NewAttribute(types.AttributeKeyPoolIndex, poolLabel),
			sdk.NewAttribute(types.AttributeKeyInvestor, investor.String()),
			sdk.NewAttribute(types.AttributeKeySide, s.String()),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
			sdk.NewAttribute(types.AttributeKeyShares, shares.String()),
		),
	)
	k.metrics.Investments.WithLabelValues(poolLabel, side.Denom).Add(toFloat(amount))
	k.metrics.SharesMinted.WithLabelValues(poolLabel, s.String()).Add(toFloat(shares))
	k.metrics.PoolReserves.WithLabelValues(poolLabel, side.Denom).Set(toFloat(side.Reserve))

	return shares, nil
}

// CalculateShares returns the shares minted for a deposit of amount into a
// side holding reserve and totalShares.
func CalculateShares(amount, reserve, totalShares math.Int) (math.Int, error) {
	if totalShares.IsZero() {
		return amount, nil
	}
	if !reserve.IsPositive() {
		return math.ZeroInt(), types.ErrInsufficientLiquidity.Wrap("side has shares but no reserve")
	}
	shares, err := SafeMulDiv(amount, totalShares, reserve)
	if err != nil {
		return math.ZeroInt(), err
	}
	if !shares.IsPositive() {
		return math.ZeroInt(), types.ErrZeroShares.Wrapf("deposit of %s", amount)
	}
	return shares, nil
}

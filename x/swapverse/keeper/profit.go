package keeper

import (
	"context"
	"strconv"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/swapverse/swapverse/x/swapverse/types"
)

// accrueProfit spreads a treasury fee over every share of the side
func accrueProfit(side *types.PoolSide, treasuryFee math.Int) error {
	if !treasuryFee.IsPositive() {
		return nil
	}
	if !side.TotalShares.IsPositive() {
		return types.ErrInsufficientLiquidity.Wrapf("no shares on %s to accrue profit", side.Denom)
	}
	perShare, err := SafeMulDiv(treasuryFee, types.ProfitPrecision, side.TotalShares)
	if err != nil {
		return err
	}
	side.ProfitPerShare = side.ProfitPerShare.Add(perShare)
	side.Treasury = side.Treasury.Add(treasuryFee)
	side.CumulativeProfit = side.CumulativeProfit.Add(treasuryFee)
	return nil
}

// settleProfit moves profit accrued since the last checkpoint into the
// position's unclaimed balance. Call before changing Shares.
func settleProfit(side *types.PoolSide, pos *types.InvestorPosition) error {
	accrued, err := SafeMulDiv(pos.Shares, side.ProfitPerShare, math.OneInt())
	if err != nil {
		return err
	}
	if accrued.GT(pos.ProfitDebt) {
		pos.UnclaimedProfit = pos.UnclaimedProfit.Add(accrued.Sub(pos.ProfitDebt))
	}
	pos.ProfitDebt = accrued
	return nil
}

// checkpointProfit resets the accumulator checkpoint after Shares changed
func checkpointProfit(side *types.PoolSide, pos *types.InvestorPosition) error {
	debt, err := SafeMulDiv(pos.Shares, side.ProfitPerShare, math.OneInt())
	if err != nil {
		return err
	}
	pos.ProfitDebt = debt
	return nil
}

// takeProfit removes the whole-unit part of the unclaimed balance, capped by
// the treasury, and returns it. The caller moves the tokens.
func takeProfit(side *types.PoolSide, pos *types.InvestorPosition) math.Int {
	payout := pos.UnclaimedProfit.Quo(types.ProfitPrecision)
	if payout.GT(side.Treasury) {
		payout = side.Treasury
	}
	if !payout.IsPositive() {
		return math.ZeroInt()
	}
	pos.UnclaimedProfit = pos.UnclaimedProfit.Sub(payout.Mul(types.ProfitPrecision))
	pos.ProfitClaimed = pos.ProfitClaimed.Add(payout)
	side.Treasury = side.Treasury.Sub(payout)
	return payout
}

// ClaimProfit pays the investor's share of the treasury on one side.
// ErrNothingToClaim is returned, without state change, when nothing accrued.
func (k Keeper) ClaimProfit(ctx context.Context, index uint64, investor sdk.AccAddress, s types.Side) (math.Int, error) {
	if err := s.Validate(); err != nil {
		return math.ZeroInt(), err
	}

	pool, err := k.GetSwapPool(ctx, index)
	if err != nil {
		return math.ZeroInt(), err
	}
	info, err := k.GetInvestorPoolInfo(ctx, index, investor)
	if err != nil {
		return math.ZeroInt(), err
	}

	side := pool.Side(s)
	pos := info.Side(s)
	if err := settleProfit(side, pos); err != nil {
		return math.ZeroInt(), err
	}

	payout := takeProfit(side, pos)
	if payout.IsZero() {
		return math.ZeroInt(), types.ErrNothingToClaim.Wrapf("pool %d side %s", index, s)
	}

	treasury := sdk.MustAccAddressFromBech32(side.TreasuryAddress)
	if err := k.ledger.Transfer(ctx, k.authority.addr, side.Denom, treasury, investor, payout); err != nil {
		return math.ZeroInt(), wrapLedgerErr(err, "pay profit")
	}

	if err := k.SetSwapPool(ctx, pool); err != nil {
		return math.ZeroInt(), err
	}
	if err := k.SetInvestorPoolInfo(ctx, info); err != nil {
		return math.ZeroInt(), err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeProfitClaimed,
			sdk.NewAttribute(types.AttributeKeyPoolIndex, strconv.FormatUint(index, 10)),
			sdk.NewAttribute(types.AttributeKeyInvestor, investor.String()),
			sdk.NewAttribute(types.AttributeKeySide, s.String()),
			sdk.NewAttribute(types.AttributeKeyProfit, payout.String()),
		),
	)
	k.metrics.ProfitClaimed.WithLabelValues(strconv.FormatUint(index, 10), side.Denom).Add(toFloat(payout))
	return payout, nil
}

// PendingProfit returns what ClaimProfit would currently pay, without changing state
func (k Keeper) PendingProfit(ctx context.Context, index uint64, investor sdk.AccAddress, s types.Side) (math.Int, error) {
	pool, err := k.GetSwapPool(ctx, index)
	if err != nil {
		return math.ZeroInt(), err
	}
	info, err := k.GetInvestorPoolInfo(ctx, index, investor)
	if err != nil {
		return math.ZeroInt(), err
	}
	side := pool.Side(s)
	pos := info.Side(s)
	if err := settleProfit(side, pos); err != nil {
		return math.ZeroInt(), err
	}
	return takeProfit(side, pos), nil
}

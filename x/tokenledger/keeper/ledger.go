package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/swapverse/swapverse/x/tokenledger/types"
)

// Mint creates amount of denom in to. Only the denom's mint authority may sign.
func (k Keeper) Mint(ctx context.Context, signer sdk.AccAddress, denom string, to sdk.AccAddress, amount math.Int) error {
	meta, err := k.GetDenom(ctx, denom)
	if err != nil {
		return err
	}
	if err := validateAmount(amount); err != nil {
		return err
	}
	if signer.String() != meta.MintAuthority {
		return types.ErrUnauthorized.Wrapf("%s is not the mint authority of %s", signer, denom)
	}

	toBalance, err := k.balance(ctx, denom, to)
	if err != nil {
		return err
	}
	supply, err := k.supply(ctx, denom)
	if err != nil {
		return err
	}
	k.setBalance(ctx, denom, to, toBalance.Add(amount))
	k.setSupply(ctx, denom, supply.Add(amount))

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeMint,
			sdk.NewAttribute(types.AttributeKeyDenom, denom),
			sdk.NewAttribute(types.AttributeKeyRecipient, to.String()),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)
	return nil
}

// Transfer moves amount of denom from one account to another.
// The signer must be the source account or its delegated authority.
func (k Keeper) Transfer(ctx context.Context, signer sdk.AccAddress, denom string, from, to sdk.AccAddress, amount math.Int) error {
	meta, err := k.GetDenom(ctx, denom)
	if err != nil {
		return err
	}
	if err := validateAmount(amount); err != nil {
		return err
	}
	if meta.Frozen {
		return types.ErrFrozenDenom.Wrap(denom)
	}
	if !k.canSpend(ctx, signer, from) {
		return types.ErrUnauthorized.Wrapf("%s cannot spend from %s", signer, from)
	}

	fromBalance, err := k.balance(ctx, denom, from)
	if err != nil {
		return err
	}
	if fromBalance.LT(amount) {
		return types.ErrInsufficientBalance.Wrapf("%s has %s%s, needs %s%s", from, fromBalance, denom, amount, denom)
	}
	if from.Equals(to) {
		return nil
	}

	toBalance, err := k.balance(ctx, denom, to)
	if err != nil {
		return err
	}
	k.setBalance(ctx, denom, from, fromBalance.Sub(amount))
	k.setBalance(ctx, denom, to, toBalance.Add(amount))

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeTransfer,
			sdk.NewAttribute(types.AttributeKeyDenom, denom),
			sdk.NewAttribute(types.AttributeKeySender, from.String()),
			sdk.NewAttribute(types.AttributeKeyRecipient, to.String()),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
			sdk.NewAttribute(types.AttributeKeySigner, signer.String()),
		),
	)
	return nil
}

// Burn destroys amount of denom held by from. The owner, its delegated
// authority or the mint authority may sign.
func (k Keeper) Burn(ctx context.Context, signer sdk.AccAddress, denom string, from sdk.AccAddress, amount math.Int) error {
	meta, err := k.GetDenom(ctx, denom)
	if err != nil {
		return err
	}
	if err := validateAmount(amount); err != nil {
		return err
	}
	if signer.String() != meta.MintAuthority && !k.canSpend(ctx, signer, from) {
		return types.ErrUnauthorized.Wrapf("%s cannot burn from %s", signer, from)
	}

	balance, err := k.balance(ctx, denom, from)
	if err != nil {
		return err
	}
	if balance.LT(amount) {
		return types.ErrInsufficientBalance.Wrapf("%s has %s%s, burn of %s requested", from, balance, denom, amount)
	}
	supply, err := k.supply(ctx, denom)
	if err != nil {
		return err
	}

	k.setBalance(ctx, denom, from, balance.Sub(amount))
	k.setSupply(ctx, denom, supply.Sub(amount))

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeBurn,
			sdk.NewAttribute(types.AttributeKeyDenom, denom),
			sdk.NewAttribute(types.AttributeKeySender, from.String()),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)
	return nil
}

func (k Keeper) canSpend(ctx context.Context, signer, account sdk.AccAddress) bool {
	if signer.Equals(account) {
		return true
	}
	authority, ok := k.GetAccountAuthority(ctx, account)
	return ok && authority.Equals(signer)
}

func validateAmount(amount math.Int) error {
	if amount.IsNil() || !amount.IsPositive() {
		return types.ErrInvalidAmount.Wrapf("amount must be positive, got %s", amount)
	}
	return nil
}

package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/swapverse/swapverse/x/swapverse/types"
	ledgertypes "github.com/swapverse/swapverse/x/tokenledger/types"
)

// GetGlobalState returns the registry singleton
func (k Keeper) GetGlobalState(ctx context.Context) (types.GlobalState, error) {
	bz := k.getStore(ctx).Get(types.GlobalStateKey)
	if bz == nil {
		return types.GlobalState{}, types.ErrNotInitialized
	}
	var gs types.GlobalState
	if err := json.Unmarshal(bz, &gs); err != nil {
		return types.GlobalState{}, fmt.Errorf("GetGlobalState: unmarshal: %w", err)
	}
	return gs, nil
}

func (k Keeper) setGlobalState(ctx context.Context, gs types.GlobalState) error {
	bz, err := json.Marshal(gs)
	if err != nil {
		return fmt.Errorf("setGlobalState: marshal: %w", err)
	}
	k.getStore(ctx).Set(types.GlobalStateKey, bz)
	return nil
}

// IsInitialized reports whether the registry exists
func (k Keeper) IsInitialized(ctx context.Context) bool {
	return k.getStore(ctx).Has(types.GlobalStateKey)
}

// InitializeGlobalState creates the registry, owned by owner, and registers
// the recognized test tokens with the signing authority as mint authority.
func (k Keeper) InitializeGlobalState(ctx context.Context, owner sdk.AccAddress, denoms [types.NumTokenDenoms]string) error {
	if k.IsInitialized(ctx) {
		return types.ErrAlreadyInitialized
	}
	if owner.Empty() {
		return types.ErrInvalidAddress.Wrap("owner cannot be empty")
	}
	if err := types.ValidateTokenDenoms(denoms); err != nil {
		return err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	gs := types.GlobalState{
		Owner:            owner.String(),
		SigningAuthority: k.authority.addr.String(),
		TokenDenoms:      denoms,
		NoOfSwapPools:    0,
		InitializedAt:    sdkCtx.BlockTime(),
	}

	for _, denom := range denoms {
		err := k.ledger.RegisterDenom(ctx, ledgertypes.DenomMetadata{
			Denom:         denom,
			MintAuthority: k.authority.addr.String(),
		})
		if err != nil {
			return errorsmod.Wrapf(err, "register token %s", denom)
		}
	}

	if err := k.setGlobalState(ctx, gs); err != nil {
		return err
	}

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeGlobalStateInitialized,
			sdk.NewAttribute(types.AttributeKeyOwner, gs.Owner),
			sdk.NewAttribute(types.AttributeKeyAuthority, gs.SigningAuthority),
		),
	)
	k.Logger(ctx).Info("global state initialized", "owner", gs.Owner, "tokens", denoms)
	return nil
}

// MintTestTokens mints amount of a recognized test token to investor
func (k Keeper) MintTestTokens(ctx context.Context, investor sdk.AccAddress, denom string, amount math.Int) error {
	gs, err := k.GetGlobalState(ctx)
	if err != nil {
		return err
	}
	if !gs.IsRecognized(denom) {
		return types.ErrUnrecognizedTokenType.Wrap(denom)
	}
	if amount.IsNil() || !amount.IsPositive() {
		return types.ErrInvalidAmount.Wrap("mint amount must be positive")
	}
	if limit := k.GetParams(ctx).MaxTestTokenMint; amount.GTE(limit) {
		return types.ErrTokenAmountLimitExceeded.Wrapf("%s must be below %s", amount, limit)
	}

	if err := k.ledger.Mint(ctx, k.authority.addr, denom, investor, amount); err != nil {
		return errorsmod.Wrap(err, "mint test tokens")
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeTestTokensMinted,
			sdk.NewAttribute(types.AttributeKeyInvestor, investor.String()),
			sdk.NewAttribute(types.AttributeKeyDenom, denom),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)
	k.metrics.TestTokensMinted.WithLabelValues(denom).Add(toFloat(amount))
	return nil
}

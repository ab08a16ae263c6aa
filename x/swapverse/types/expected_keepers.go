package types

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	ledgertypes "github.com/swapverse/swapverse/x/tokenledger/types"
)

// TokenLedger defines the expected token custody service
type TokenLedger interface {
	RegisterDenom(ctx context.Context, meta ledgertypes.DenomMetadata) error
	SetAccountAuthority(ctx context.Context, account, authority sdk.AccAddress)
	Mint(ctx context.Context, signer sdk.AccAddress, denom string, to sdk.AccAddress, amount math.Int) error
	Transfer(ctx context.Context, signer sdk.AccAddress, denom string, from, to sdk.AccAddress, amount math.Int) error
	Burn(ctx context.Context, signer sdk.AccAddress, denom string, from sdk.AccAddress, amount math.Int) error
	BalanceOf(ctx context.Context, denom string, owner sdk.AccAddress) math.Int
	Supply(ctx context.Context, denom string) math.Int
}

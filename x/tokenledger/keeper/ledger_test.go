package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/swapverse/swapverse/testutil/keeper"
	"github.com/swapverse/swapverse/x/tokenledger/types"
)

var (
	minter = keepertest.TestAddress("minter")
	alice  = keepertest.TestAddress("alice")
	bob    = keepertest.TestAddress("bob")
	vault  = keepertest.TestAddress("vault")
)

func TestRegisterDenom(t *testing.T) {
	k, ctx := keepertest.TokenLedgerKeeper(t)

	meta := types.DenomMetadata{Denom: "gold", MintAuthority: minter.String()}
	require.NoError(t, k.RegisterDenom(ctx, meta))

	got, err := k.GetDenom(ctx, "gold")
	require.NoError(t, err)
	require.Equal(t, meta, got)

	err = k.RegisterDenom(ctx, meta)
	require.ErrorIs(t, err, types.ErrDenomExists)

	err = k.RegisterDenom(ctx, types.DenomMetadata{Denom: "1bad", MintAuthority: minter.String()})
	require.ErrorIs(t, err, types.ErrInvalidDenom)
}

func TestMintTransferBurn(t *testing.T) {
	k, ctx := keepertest.TokenLedgerKeeper(t)
	require.NoError(t, k.RegisterDenom(ctx, types.DenomMetadata{Denom: "gold", MintAuthority: minter.String()}))

	require.NoError(t, k.Mint(ctx, minter, "gold", alice, math.NewInt(1_000)))
	require.Equal(t, "1000", k.BalanceOf(ctx, "gold", alice).String())
	require.Equal(t, "1000", k.Supply(ctx, "gold").String())

	require.NoError(t, k.Transfer(ctx, alice, "gold", alice, bob, math.NewInt(400)))
	require.Equal(t, "600", k.BalanceOf(ctx, "gold", alice).String())
	require.Equal(t, "400", k.BalanceOf(ctx, "gold", bob).String())

	require.NoError(t, k.Burn(ctx, bob, "gold", bob, math.NewInt(150)))
	require.Equal(t, "250", k.BalanceOf(ctx, "gold", bob).String())
	require.Equal(t, "850", k.Supply(ctx, "gold").String())

	require.NoError(t, k.Burn(ctx, minter, "gold", alice, math.NewInt(600)))
	require.True(t, k.BalanceOf(ctx, "gold", alice).IsZero())
}

func TestLedger_FailsClosed(t *testing.T) {
	k, ctx := keepertest.TokenLedgerKeeper(t)
	require.NoError(t, k.RegisterDenom(ctx, types.DenomMetadata{Denom: "gold", MintAuthority: minter.String()}))
	require.NoError(t, k.Mint(ctx, minter, "gold", alice, math.NewInt(100)))

	err := k.Mint(ctx, alice, "gold", alice, math.NewInt(1))
	require.ErrorIs(t, err, types.ErrUnauthorized)

	err = k.Mint(ctx, minter, "silver", alice, math.NewInt(1))
	require.ErrorIs(t, err, types.ErrUnknownDenom)

	err = k.Transfer(ctx, bob, "gold", alice, bob, math.NewInt(1))
	require.ErrorIs(t, err, types.ErrUnauthorized)

	err = k.Transfer(ctx, alice, "gold", alice, bob, math.NewInt(101))
	require.ErrorIs(t, err, types.ErrInsufficientBalance)

	err = k.Transfer(ctx, alice, "gold", alice, bob, math.ZeroInt())
	require.ErrorIs(t, err, types.ErrInvalidAmount)

	err = k.Burn(ctx, bob, "gold", alice, math.NewInt(1))
	require.ErrorIs(t, err, types.ErrUnauthorized)

	require.Equal(t, "100", k.BalanceOf(ctx, "gold", alice).String())
	require.Equal(t, "100", k.Supply(ctx, "gold").String())
}

func TestAccountAuthority(t *testing.T) {
	k, ctx := keepertest.TokenLedgerKeeper(t)
	require.NoError(t, k.RegisterDenom(ctx, types.DenomMetadata{Denom: "gold", MintAuthority: minter.String()}))
	require.NoError(t, k.Mint(ctx, minter, "gold", vault, math.NewInt(500)))

	err := k.Transfer(ctx, minter, "gold", vault, bob, math.NewInt(10))
	require.ErrorIs(t, err, types.ErrUnauthorized)

	k.SetAccountAuthority(ctx, vault, minter)
	require.NoError(t, k.Transfer(ctx, minter, "gold", vault, bob, math.NewInt(10)))
	require.Equal(t, "490", k.BalanceOf(ctx, "gold", vault).String())
}

func TestFrozenDenom(t *testing.T) {
	k, ctx := keepertest.TokenLedgerKeeper(t)
	require.NoError(t, k.RegisterDenom(ctx, types.DenomMetadata{Denom: "share/abc", MintAuthority: minter.String(), Frozen: true}))
	require.NoError(t, k.Mint(ctx, minter, "share/abc", alice, math.NewInt(50)))

	err := k.Transfer(ctx, alice, "share/abc", alice, bob, math.NewInt(1))
	require.ErrorIs(t, err, types.ErrFrozenDenom)

	require.NoError(t, k.Burn(ctx, minter, "share/abc", alice, math.NewInt(50)))
	require.True(t, k.Supply(ctx, "share/abc").IsZero())
}

func TestGenesisRoundTrip(t *testing.T) {
	k, ctx := keepertest.TokenLedgerKeeper(t)
	require.NoError(t, k.RegisterDenom(ctx, types.DenomMetadata{Denom: "gold", MintAuthority: minter.String()}))
	require.NoError(t, k.RegisterDenom(ctx, types.DenomMetadata{Denom: "gold-dev", MintAuthority: minter.String()}))
	require.NoError(t, k.Mint(ctx, minter, "gold", alice, math.NewInt(7)))
	require.NoError(t, k.Mint(ctx, minter, "gold-dev", bob, math.NewInt(9)))
	k.SetAccountAuthority(ctx, vault, minter)

	gs, err := k.ExportGenesis(ctx)
	require.NoError(t, err)
	require.Len(t, gs.Denoms, 2)
	require.Len(t, gs.Balances, 2)
	require.Len(t, gs.Authorities, 1)
	require.NoError(t, gs.Validate())

	fresh, freshCtx := keepertest.TokenLedgerKeeper(t)
	require.NoError(t, fresh.InitGenesis(freshCtx, *gs))
	require.Equal(t, "7", fresh.BalanceOf(freshCtx, "gold", alice).String())
	require.Equal(t, "9", fresh.Supply(freshCtx, "gold-dev").String())
	authority, ok := fresh.GetAccountAuthority(freshCtx, vault)
	require.True(t, ok)
	require.True(t, authority.Equals(minter))
}

package keeper

import (
	"context"
	"fmt"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/swapverse/swapverse/x/tokenledger/types"
)

// InitGenesis loads denoms, balances and authorities. Supply is recomputed from balances.
func (k Keeper) InitGenesis(ctx context.Context, gs types.GenesisState) error {
	if err := gs.Validate(); err != nil {
		return fmt.Errorf("invalid token ledger genesis: %w", err)
	}

	for _, d := range gs.Denoms {
		if err := k.RegisterDenom(ctx, d); err != nil {
			return err
		}
	}

	for _, b := range gs.Balances {
		owner := sdk.MustAccAddressFromBech32(b.Address)
		balance, err := k.balance(ctx, b.Denom, owner)
		if err != nil {
			return err
		}
		supply, err := k.supply(ctx, b.Denom)
		if err != nil {
			return err
		}
		k.setBalance(ctx, b.Denom, owner, balance.Add(b.Amount))
		k.setSupply(ctx, b.Denom, supply.Add(b.Amount))
	}

	for _, a := range gs.Authorities {
		k.SetAccountAuthority(ctx, sdk.MustAccAddressFromBech32(a.Account), sdk.MustAccAddressFromBech32(a.Authority))
	}
	return nil
}

// ExportGenesis returns the ledger state
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	gs := types.DefaultGenesis()

	err := k.IterateDenoms(ctx, func(meta types.DenomMetadata) bool {
		gs.Denoms = append(gs.Denoms, meta)
		return false
	})
	if err != nil {
		return nil, err
	}

	for _, meta := range gs.Denoms {
		err := k.IterateBalances(ctx, meta.Denom, func(owner sdk.AccAddress, amount math.Int) bool {
			gs.Balances = append(gs.Balances, types.Balance{
				Address: owner.String(),
				Denom:   meta.Denom,
				Amount:  amount,
			})
			return false
		})
		if err != nil {
			return nil, err
		}
	}

	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.AuthorityKeyPrefix)
	defer iterator.Close()
	for ; iterator.Valid(); iterator.Next() {
		account := iterator.Key()[len(types.AuthorityKeyPrefix):]
		gs.Authorities = append(gs.Authorities, types.AccountAuthority{
			Account:   sdk.AccAddress(account[1:]).String(),
			Authority: sdk.AccAddress(iterator.Value()).String(),
		})
	}

	return gs, nil
}

// IterateBalances iterates over every non-zero holder of denom and stops at
// the first balance that fails to decode
func (k Keeper) IterateBalances(ctx context.Context, denom string, cb func(owner sdk.AccAddress, amount math.Int) (stop bool)) error {
	prefix := types.DenomBalancesPrefix(denom)
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), prefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		owner := iterator.Key()[len(prefix):]
		if len(owner) == 0 {
			continue
		}
		amount, err := decodeInt(iterator.Value())
		if err != nil {
			return errorsmod.Wrapf(err, "balance of %s", sdk.AccAddress(owner[1:]))
		}
		if cb(sdk.AccAddress(owner[1:]), amount) {
			break
		}
	}
	return nil
}

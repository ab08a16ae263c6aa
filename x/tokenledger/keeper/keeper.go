package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/swapverse/swapverse/x/tokenledger/types"
)

// Keeper of the token ledger store
type Keeper struct {
	storeKey storetypes.StoreKey
}

// NewKeeper creates a new token ledger Keeper instance
func NewKeeper(key storetypes.StoreKey) Keeper {
	return Keeper{storeKey: key}
}

// getStore returns the KVStore for the token ledger module
func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.KVStore(k.storeKey)
}

// Logger returns a module-specific logger
func (k Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", "x/"+types.ModuleName)
}

// RegisterDenom adds a new token type to the ledger
func (k Keeper) RegisterDenom(ctx context.Context, meta types.DenomMetadata) error {
	if err := meta.Validate(); err != nil {
		return err
	}
	store := k.getStore(ctx)
	if store.Has(types.DenomKey(meta.Denom)) {
		return types.ErrDenomExists.Wrap(meta.Denom)
	}
	bz, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("RegisterDenom: marshal: %w", err)
	}
	store.Set(types.DenomKey(meta.Denom), bz)
	return nil
}

// GetDenom returns the metadata of a registered denom, ErrUnknownDenom if
// there is none
func (k Keeper) GetDenom(ctx context.Context, denom string) (types.DenomMetadata, error) {
	bz := k.getStore(ctx).Get(types.DenomKey(denom))
	if bz == nil {
		return types.DenomMetadata{}, types.ErrUnknownDenom.Wrap(denom)
	}
	var meta types.DenomMetadata
	if err := json.Unmarshal(bz, &meta); err != nil {
		return types.DenomMetadata{}, types.ErrCorruptEntry.Wrapf("denom %s: %s", denom, err)
	}
	return meta, nil
}

// IterateDenoms iterates over all registered denoms and stops at the first
// entry that fails to decode
func (k Keeper) IterateDenoms(ctx context.Context, cb func(meta types.DenomMetadata) (stop bool)) error {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.DenomKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var meta types.DenomMetadata
		if err := json.Unmarshal(iterator.Value(), &meta); err != nil {
			return types.ErrCorruptEntry.Wrapf("denom key %x: %s", iterator.Key(), err)
		}
		if cb(meta) {
			break
		}
	}
	return nil
}

// SetAccountAuthority lets authority sign transfers and burns out of account
func (k Keeper) SetAccountAuthority(ctx context.Context, account, authority sdk.AccAddress) {
	k.getStore(ctx).Set(types.AuthorityKey(account), authority)
}

// GetAccountAuthority returns the delegated authority of an account, if any
func (k Keeper) GetAccountAuthority(ctx context.Context, account sdk.AccAddress) (sdk.AccAddress, bool) {
	bz := k.getStore(ctx).Get(types.AuthorityKey(account))
	if bz == nil {
		return nil, false
	}
	return sdk.AccAddress(bz), true
}

// BalanceOf returns the balance of owner in denom; unknown pairs read as zero.
// An undecodable entry is logged and reads as zero; mutations reject it.
func (k Keeper) BalanceOf(ctx context.Context, denom string, owner sdk.AccAddress) math.Int {
	v, err := k.balance(ctx, denom, owner)
	if err != nil {
		k.Logger(ctx).Error("read balance", "denom", denom, "owner", owner.String(), "err", err)
		return math.ZeroInt()
	}
	return v
}

// Supply returns the total minted and not burned amount of denom
func (k Keeper) Supply(ctx context.Context, denom string) math.Int {
	v, err := k.supply(ctx, denom)
	if err != nil {
		k.Logger(ctx).Error("read supply", "denom", denom, "err", err)
		return math.ZeroInt()
	}
	return v
}

func (k Keeper) balance(ctx context.Context, denom string, owner sdk.AccAddress) (math.Int, error) {
	v, err := k.readInt(ctx, types.BalanceKey(denom, owner))
	if err != nil {
		return math.ZeroInt(), errorsmod.Wrapf(err, "balance of %s in %s", owner, denom)
	}
	return v, nil
}

func (k Keeper) supply(ctx context.Context, denom string) (math.Int, error) {
	v, err := k.readInt(ctx, types.SupplyKey(denom))
	if err != nil {
		return math.ZeroInt(), errorsmod.Wrapf(err, "supply of %s", denom)
	}
	return v, nil
}

func (k Keeper) setBalance(ctx context.Context, denom string, owner sdk.AccAddress, amount math.Int) {
	k.writeInt(ctx, types.BalanceKey(denom, owner), amount)
}

func (k Keeper) setSupply(ctx context.Context, denom string, amount math.Int) {
	k.writeInt(ctx, types.SupplyKey(denom), amount)
}

func (k Keeper) readInt(ctx context.Context, key []byte) (math.Int, error) {
	bz := k.getStore(ctx).Get(key)
	if bz == nil {
		return math.ZeroInt(), nil
	}
	return decodeInt(bz)
}

func decodeInt(bz []byte) (math.Int, error) {
	var v math.Int
	if err := v.Unmarshal(bz); err != nil {
		return math.ZeroInt(), types.ErrCorruptEntry.Wrap(err.Error())
	}
	if v.IsNegative() {
		return math.ZeroInt(), types.ErrCorruptEntry.Wrapf("negative amount %s", v)
	}
	return v, nil
}

func (k Keeper) writeInt(ctx context.Context, key []byte, v math.Int) {
	store := k.getStore(ctx)
	if v.IsZero() {
		store.Delete(key)
		return
	}
	bz, err := v.Marshal()
	if err != nil {
		panic(fmt.Sprintf("marshal amount: %v", err))
	}
	store.Set(key, bz)
}

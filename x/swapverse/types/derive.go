package types

import (
	"encoding/hex"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
)

// ShareDenomPrefix prefixes every pool share denom
const ShareDenomPrefix = "share/"

// DeriveAddress returns the module-owned address for a seed sequence.
// The same seeds always give the same address.
func DeriveAddress(seeds ...[]byte) sdk.AccAddress {
	return sdk.AccAddress(address.Module(ModuleName, seeds...))
}

// SigningAuthorityAddress is the identity that signs every ledger movement made by the engine
func SigningAuthorityAddress() sdk.AccAddress {
	return DeriveAddress([]byte(SeedSigningAuthority))
}

// SwapPoolVaultAddress holds the reserves of pool index
func SwapPoolVaultAddress(index uint64) sdk.AccAddress {
	return DeriveAddress(sdk.Uint64ToBigEndian(index), []byte(SeedSwapPool))
}

// TreasuryAddress holds the profit of pool index collected in denom
func TreasuryAddress(index uint64, denom string) sdk.AccAddress {
	return DeriveAddress(sdk.Uint64ToBigEndian(index), []byte(denom), []byte(SeedTreasuryAccount))
}

// ShareDenom returns the share token denom for the denom side of pool index
func ShareDenom(index uint64, denom string) string {
	id := DeriveAddress(sdk.Uint64ToBigEndian(index), []byte(denom), []byte(SeedPoolShareToken))
	return ShareDenomPrefix + hex.EncodeToString(id)
}

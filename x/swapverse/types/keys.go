package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
)

const (
	// ModuleName defines the module name
	ModuleName = "swapverse"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName
)

// Store key prefixes
var (
	GlobalStateKey            = []byte{0x01} // key for the registry singleton
	ParamsKey                 = []byte{0x02} // key for module parameters
	SwapPoolKeyPrefix         = []byte{0x03} // prefix for swap pools
	InvestorPoolInfoKeyPrefix = []byte{0x04} // prefix for investor positions
)

// Derivation seeds
const (
	SeedSigningAuthority = "signing-authority"
	SeedSwapPool         = "swap-pool"
	SeedPoolShareToken   = "pool-share-token"
	SeedTreasuryAccount  = "treasury-account"
)

// SwapPoolKey returns the store key for a swap pool
func SwapPoolKey(index uint64) []byte {
	key := make([]byte, 0, len(SwapPoolKeyPrefix)+8)
	key = append(key, SwapPoolKeyPrefix...)
	return append(key, sdk.Uint64ToBigEndian(index)...)
}

// InvestorPoolInfoPrefix returns the prefix of every position in a pool
func InvestorPoolInfoPrefix(index uint64) []byte {
	key := make([]byte, 0, len(InvestorPoolInfoKeyPrefix)+8)
	key = append(key, InvestorPoolInfoKeyPrefix...)
	return append(key, sdk.Uint64ToBigEndian(index)...)
}

// InvestorPoolInfoKey returns the store key for an investor's position in a pool
func InvestorPoolInfoKey(index uint64, investor sdk.AccAddress) []byte {
	return append(InvestorPoolInfoPrefix(index), address.MustLengthPrefix(investor)...)
}

package types

import (
	"github.com/cosmos/cosmos-sdk/types/address"
)

const (
	// ModuleName defines the module name
	ModuleName = "tokenledger"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName
)

// Store key prefixes
var (
	DenomKeyPrefix     = []byte{0x01} // prefix for denom metadata
	BalanceKeyPrefix   = []byte{0x02} // prefix for balances, keyed by denom then owner
	SupplyKeyPrefix    = []byte{0x03} // prefix for total supply per denom
	AuthorityKeyPrefix = []byte{0x04} // prefix for delegated account authorities
)

// DenomKey returns the store key for denom metadata
func DenomKey(denom string) []byte {
	return concat(DenomKeyPrefix, []byte(denom))
}

// SupplyKey returns the store key for the total supply of a denom
func SupplyKey(denom string) []byte {
	return concat(SupplyKeyPrefix, []byte(denom))
}

// DenomBalancesPrefix returns the prefix under which every balance of a denom lives
func DenomBalancesPrefix(denom string) []byte {
	return concat(BalanceKeyPrefix, address.MustLengthPrefix([]byte(denom)))
}

// BalanceKey returns the store key for the balance of owner in denom
func BalanceKey(denom string, owner []byte) []byte {
	return concat(DenomBalancesPrefix(denom), address.MustLengthPrefix(owner))
}

// AuthorityKey returns the store key for the delegated authority of an account
func AuthorityKey(account []byte) []byte {
	return concat(AuthorityKeyPrefix, address.MustLengthPrefix(account))
}

func concat(parts ...[]byte) []byte {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	key := make([]byte, 0, n)
	for _, p := range parts {
		key = append(key, p...)
	}
	return key
}

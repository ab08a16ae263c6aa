package types

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// DenomMetadata describes a token type known to the ledger.
// Frozen denoms can be minted and burned but never transferred.
type DenomMetadata struct {
	Denom         string `json:"denom"`
	MintAuthority string `json:"mint_authority"`
	Frozen        bool   `json:"frozen"`
}

// Validate performs stateless validation of denom metadata
func (m DenomMetadata) Validate() error {
	if err := sdk.ValidateDenom(m.Denom); err != nil {
		return ErrInvalidDenom.Wrap(err.Error())
	}
	if _, err := sdk.AccAddressFromBech32(m.MintAuthority); err != nil {
		return ErrInvalidAddress.Wrapf("mint authority: %s", err)
	}
	return nil
}

// Balance is a single (owner, denom) holding
type Balance struct {
	Address string   `json:"address"`
	Denom   string   `json:"denom"`
	Amount  math.Int `json:"amount"`
}

// AccountAuthority records that Authority may move funds held by Account
type AccountAuthority struct {
	Account   string `json:"account"`
	Authority string `json:"authority"`
}

// GenesisState defines the token ledger genesis state
type GenesisState struct {
	Denoms      []DenomMetadata    `json:"denoms"`
	Balances    []Balance          `json:"balances"`
	Authorities []AccountAuthority `json:"authorities"`
}

// DefaultGenesis returns an empty ledger
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Denoms:      []DenomMetadata{},
		Balances:    []Balance{},
		Authorities: []AccountAuthority{},
	}
}

// Validate performs basic genesis state validation
func (gs GenesisState) Validate() error {
	seen := make(map[string]bool, len(gs.Denoms))
	for _, d := range gs.Denoms {
		if err := d.Validate(); err != nil {
			return err
		}
		if seen[d.Denom] {
			return ErrDenomExists.Wrapf("duplicate denom %s in genesis", d.Denom)
		}
		seen[d.Denom] = true
	}

	for _, b := range gs.Balances {
		if !seen[b.Denom] {
			return ErrUnknownDenom.Wrapf("balance for unregistered denom %s", b.Denom)
		}
		if _, err := sdk.AccAddressFromBech32(b.Address); err != nil {
			return ErrInvalidAddress.Wrapf("balance owner: %s", err)
		}
		if b.Amount.IsNil() || b.Amount.IsNegative() {
			return ErrInvalidAmount.Wrapf("balance of %s in %s must be non-negative", b.Address, b.Denom)
		}
	}

	for _, a := range gs.Authorities {
		if _, err := sdk.AccAddressFromBech32(a.Account); err != nil {
			return fmt.Errorf("invalid authority account: %w", err)
		}
		if _, err := sdk.AccAddressFromBech32(a.Authority); err != nil {
			return fmt.Errorf("invalid authority address: %w", err)
		}
	}
	return nil
}

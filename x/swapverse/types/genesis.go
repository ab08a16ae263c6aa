package types

import (
	"fmt"
)

// GenesisState defines the swapverse module's genesis state
type GenesisState struct {
	Params      Params             `json:"params"`
	GlobalState *GlobalState       `json:"global_state,omitempty"`
	Pools       []SwapPool         `json:"pools"`
	Investors   []InvestorPoolInfo `json:"investors"`
}

// DefaultGenesis returns the default genesis state: no registry, no pools
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params:    DefaultParams(),
		Pools:     []SwapPool{},
		Investors: []InvestorPoolInfo{},
	}
}

// Validate performs basic genesis state validation
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return fmt.Errorf("invalid params: %w", err)
	}

	if gs.GlobalState == nil {
		if len(gs.Pools) > 0 {
			return fmt.Errorf("pools present without global state")
		}
		return nil
	}
	if err := ValidateTokenDenoms(gs.GlobalState.TokenDenoms); err != nil {
		return err
	}

	pools := make(map[uint64]bool, len(gs.Pools))
	for _, p := range gs.Pools {
		if pools[p.Index] {
			return fmt.Errorf("duplicate pool index %d", p.Index)
		}
		if p.Index >= gs.GlobalState.NoOfSwapPools {
			return fmt.Errorf("pool index %d not below pool counter %d", p.Index, gs.GlobalState.NoOfSwapPools)
		}
		if err := p.Validate(); err != nil {
			return err
		}
		pools[p.Index] = true
	}

	for _, inv := range gs.Investors {
		if !pools[inv.PoolIndex] {
			return fmt.Errorf("investor %s references unknown pool %d", inv.Investor, inv.PoolIndex)
		}
	}
	return nil
}

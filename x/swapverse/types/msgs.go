package types

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// MsgInitializeGlobalState creates the registry
type MsgInitializeGlobalState struct {
	Owner       string                 `json:"owner"`
	TokenDenoms [NumTokenDenoms]string `json:"token_denoms"`
}

// MsgMintTestTokens mints recognized test tokens to an investor
type MsgMintTestTokens struct {
	Investor string   `json:"investor"`
	Denom    string   `json:"denom"`
	Amount   math.Int `json:"amount"`
}

// MsgCreateSwapPool creates a pool
type MsgCreateSwapPool struct {
	Creator string     `json:"creator"`
	Config  PoolConfig `json:"config"`
}

// MsgCreateSwapPoolResponse returns the new pool index
type MsgCreateSwapPoolResponse struct {
	PoolIndex uint64 `json:"pool_index"`
}

// MsgInvest deposits into one side of a pool
type MsgInvest struct {
	Investor  string   `json:"investor"`
	PoolIndex uint64   `json:"pool_index"`
	Side      Side     `json:"side"`
	Amount    math.Int `json:"amount"`
}

// MsgInvestResponse returns the minted shares
type MsgInvestResponse struct {
	Shares math.Int `json:"shares"`
}

// MsgSwap swaps through a pool
type MsgSwap struct {
	User         string    `json:"user"`
	PoolIndex    uint64    `json:"pool_index"`
	AmountIn     math.Int  `json:"amount_in"`
	MinAmountOut math.Int  `json:"min_amount_out"`
	Direction    Direction `json:"direction"`
}

// MsgSwapResponse returns the executed quote
type MsgSwapResponse struct {
	Quote SwapQuote `json:"quote"`
}

// MsgClaimProfit claims accrued treasury profit
type MsgClaimProfit struct {
	Investor  string `json:"investor"`
	PoolIndex uint64 `json:"pool_index"`
	Side      Side   `json:"side"`
}

// MsgClaimProfitResponse returns the claimed amount
type MsgClaimProfitResponse struct {
	Amount math.Int `json:"amount"`
}

// MsgWithdraw redeems all shares of one side
type MsgWithdraw struct {
	Investor  string `json:"investor"`
	PoolIndex uint64 `json:"pool_index"`
	Side      Side   `json:"side"`
}

// MsgWithdrawResponse returns the redeemed principal and profit
type MsgWithdrawResponse struct {
	Redeemed math.Int `json:"redeemed"`
	Profit   math.Int `json:"profit"`
}

// MsgClosePool opens a pool for withdrawal before its deadline
type MsgClosePool struct {
	Authority string `json:"authority"`
	PoolIndex uint64 `json:"pool_index"`
}

// ValidateBasic performs stateless validation
func (m MsgInitializeGlobalState) ValidateBasic() error {
	if err := validateAddress(m.Owner, "owner"); err != nil {
		return err
	}
	return ValidateTokenDenoms(m.TokenDenoms)
}

// ValidateBasic performs stateless validation
func (m MsgMintTestTokens) ValidateBasic() error {
	if err := validateAddress(m.Investor, "investor"); err != nil {
		return err
	}
	return validatePositive(m.Amount, "amount")
}

// ValidateBasic performs stateless validation
func (m MsgCreateSwapPool) ValidateBasic() error {
	if err := validateAddress(m.Creator, "creator"); err != nil {
		return err
	}
	return m.Config.Validate()
}

// ValidateBasic performs stateless validation
func (m MsgInvest) ValidateBasic() error {
	if err := validateAddress(m.Investor, "investor"); err != nil {
		return err
	}
	if err := m.Side.Validate(); err != nil {
		return err
	}
	return validatePositive(m.Amount, "amount")
}

// ValidateBasic performs stateless validation
func (m MsgSwap) ValidateBasic() error {
	if err := validateAddress(m.User, "user"); err != nil {
		return err
	}
	if err := validatePositive(m.AmountIn, "amount in"); err != nil {
		return err
	}
	if m.MinAmountOut.IsNil() || m.MinAmountOut.IsNegative() {
		return ErrInvalidAmount.Wrap("min amount out must be non-negative")
	}
	return nil
}

// ValidateBasic performs stateless validation
func (m MsgClaimProfit) ValidateBasic() error {
	if err := validateAddress(m.Investor, "investor"); err != nil {
		return err
	}
	return m.Side.Validate()
}

// ValidateBasic performs stateless validation
func (m MsgWithdraw) ValidateBasic() error {
	if err := validateAddress(m.Investor, "investor"); err != nil {
		return err
	}
	return m.Side.Validate()
}

// ValidateBasic performs stateless validation
func (m MsgClosePool) ValidateBasic() error {
	return validateAddress(m.Authority, "authority")
}

func validateAddress(addr, field string) error {
	if _, err := sdk.AccAddressFromBech32(addr); err != nil {
		return ErrInvalidAddress.Wrapf("%s: %s", field, err)
	}
	return nil
}

func validatePositive(amount math.Int, field string) error {
	if amount.IsNil() || !amount.IsPositive() {
		return ErrInvalidAmount.Wrapf("%s must be positive", field)
	}
	return nil
}

// MsgServer is the set of state-changing operations of the module
type MsgServer interface {
	InitializeGlobalState(ctx context.Context, msg *MsgInitializeGlobalState) error
	MintTestTokens(ctx context.Context, msg *MsgMintTestTokens) error
	CreateSwapPool(ctx context.Context, msg *MsgCreateSwapPool) (*MsgCreateSwapPoolResponse, error)
	Invest(ctx context.Context, msg *MsgInvest) (*MsgInvestResponse, error)
	Swap(ctx context.Context, msg *MsgSwap) (*MsgSwapResponse, error)
	ClaimProfit(ctx context.Context, msg *MsgClaimProfit) (*MsgClaimProfitResponse, error)
	Withdraw(ctx context.Context, msg *MsgWithdraw) (*MsgWithdrawResponse, error)
	ClosePool(ctx context.Context, msg *MsgClosePool) error
}

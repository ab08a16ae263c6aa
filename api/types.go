package api

import (
	"cosmossdk.io/math"

	swapkeeper "github.com/swapverse/swapverse/x/swapverse/keeper"
	swaptypes "github.com/swapverse/swapverse/x/swapverse/types"
)

// ErrorResponse represents an error response. Code and Codespace identify
// the registered error when there is one.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      uint32 `json:"code"`
	Codespace string `json:"codespace"`
}

// FaucetRequest mints test tokens to the caller
type FaucetRequest struct {
	Denom  string   `json:"denom" binding:"required"`
	Amount math.Int `json:"amount"`
}

// InvestRequest deposits into one side of a pool
type InvestRequest struct {
	Side   string   `json:"side" binding:"required"`
	Amount math.Int `json:"amount"`
}

// SwapRequest swaps against a pool
type SwapRequest struct {
	Direction    string   `json:"direction" binding:"required"`
	AmountIn     math.Int `json:"amount_in"`
	MinAmountOut math.Int `json:"min_amount_out"`
}

// SideRequest names the side a claim or withdrawal applies to
type SideRequest struct {
	Side string `json:"side" binding:"required"`
}

// InitializeRequest creates the registry owned by the caller. An empty
// TokenDenoms selects the default test tokens.
type InitializeRequest struct {
	TokenDenoms []string `json:"token_denoms"`
}

// PoolsResponse is a page of pools
type PoolsResponse struct {
	Pools  []swaptypes.SwapPool `json:"pools"`
	Total  uint64               `json:"total"`
	Offset int                  `json:"offset"`
	Limit  int                  `json:"limit"`
}

// BalanceResponse is a ledger balance
type BalanceResponse struct {
	Address string   `json:"address"`
	Denom   string   `json:"denom"`
	Amount  math.Int `json:"amount"`
}

// InvestorResponse is an investor's view of a pool
type InvestorResponse = swapkeeper.InvestorView

// InvestResponse reports the shares minted by an investment
type InvestResponse struct {
	PoolIndex uint64   `json:"pool_index"`
	Side      string   `json:"side"`
	Shares    math.Int `json:"shares"`
}

// ClaimResponse reports a profit claim. Status is "claimed" or "nothing_to_claim".
type ClaimResponse struct {
	Status string   `json:"status"`
	Amount math.Int `json:"amount"`
}

// WithdrawResponse reports a redemption
type WithdrawResponse struct {
	Redeemed math.Int `json:"redeemed"`
	Profit   math.Int `json:"profit"`
}

// CreatePoolResponse reports the index of a new pool
type CreatePoolResponse struct {
	PoolIndex uint64 `json:"pool_index"`
}

// StatusResponse is a bare acknowledgement
type StatusResponse struct {
	Status string `json:"status"`
}

package types

import (
	"cosmossdk.io/errors"
)

// Swapverse module sentinel errors
var (
	ErrAlreadyInitialized       = errors.Register(ModuleName, 2, "global state already initialized")
	ErrNotInitialized           = errors.Register(ModuleName, 3, "global state not initialized")
	ErrInvalidConfig            = errors.Register(ModuleName, 4, "invalid swap pool configuration")
	ErrInvestmentWindowClosed   = errors.Register(ModuleName, 5, "swap pool is not open for investment")
	ErrWithdrawalWindowClosed   = errors.Register(ModuleName, 6, "swap pool is not open for withdrawal")
	ErrSlippageExceeded         = errors.Register(ModuleName, 7, "output amount less than minimum required")
	ErrInsufficientBalance      = errors.Register(ModuleName, 8, "insufficient balance")
	ErrNothingToClaim           = errors.Register(ModuleName, 9, "nothing to claim")
	ErrUnrecognizedTokenType    = errors.Register(ModuleName, 10, "unrecognized token type")
	ErrUnauthorized             = errors.Register(ModuleName, 11, "unauthorized signer")
	ErrSameTokenDenoms          = errors.Register(ModuleName, 12, "pool tokens must be different")
	ErrPoolNotFound             = errors.Register(ModuleName, 13, "swap pool not found")
	ErrBelowMinimumInvestment   = errors.Register(ModuleName, 14, "amount below minimum investment")
	ErrZeroShares               = errors.Register(ModuleName, 15, "investment too small to mint shares")
	ErrSwapPoolNotActivated     = errors.Register(ModuleName, 16, "swap pool not activated")
	ErrPoolClosedForSwaps       = errors.Register(ModuleName, 17, "swap pool closed for swaps")
	ErrInsufficientLiquidity    = errors.Register(ModuleName, 18, "insufficient liquidity in pool")
	ErrNothingToWithdraw        = errors.Register(ModuleName, 19, "no shares to withdraw")
	ErrTokenAmountLimitExceeded = errors.Register(ModuleName, 20, "token amount limit exceeded")
	ErrInvalidSide              = errors.Register(ModuleName, 21, "invalid pool side")
	ErrInvalidAmount            = errors.Register(ModuleName, 22, "invalid amount")
	ErrOverflow                 = errors.Register(ModuleName, 23, "arithmetic overflow")
	ErrInvariantViolation       = errors.Register(ModuleName, 24, "invariant violation")
	ErrInvalidAddress           = errors.Register(ModuleName, 25, "invalid address")
)

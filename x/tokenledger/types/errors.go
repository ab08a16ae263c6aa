package types

import (
	"cosmossdk.io/errors"
)

// Token ledger sentinel errors
var (
	ErrInsufficientBalance = errors.Register(ModuleName, 2, "insufficient balance")
	ErrUnknownDenom        = errors.Register(ModuleName, 3, "unknown denom")
	ErrDenomExists         = errors.Register(ModuleName, 4, "denom already registered")
	ErrUnauthorized        = errors.Register(ModuleName, 5, "signer is not authorized for this account")
	ErrFrozenDenom         = errors.Register(ModuleName, 6, "denom is frozen and cannot be transferred")
	ErrInvalidAmount       = errors.Register(ModuleName, 7, "invalid amount")
	ErrInvalidDenom        = errors.Register(ModuleName, 8, "invalid denom")
	ErrInvalidAddress      = errors.Register(ModuleName, 9, "invalid address")
	ErrCorruptEntry        = errors.Register(ModuleName, 10, "corrupt store entry")
)

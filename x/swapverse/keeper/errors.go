package keeper

import (
	"errors"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"

	"github.com/swapverse/swapverse/x/swapverse/types"
	ledgertypes "github.com/swapverse/swapverse/x/tokenledger/types"
)

// wrapLedgerErr maps ledger balance failures onto the module's own error
func wrapLedgerErr(err error, msg string) error {
	if errors.Is(err, ledgertypes.ErrInsufficientBalance) {
		return types.ErrInsufficientBalance.Wrapf("%s: %s", msg, err)
	}
	return errorsmod.Wrap(err, msg)
}

func toFloat(amount math.Int) float64 {
	f, _ := amount.ToLegacyDec().Float64()
	return f
}

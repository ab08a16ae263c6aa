package keeper

import (
	"math/big"

	"cosmossdk.io/math"

	"github.com/swapverse/swapverse/x/swapverse/types"
)

// maxSafeBits bounds every intermediate result of pool arithmetic
const maxSafeBits = 256

// SafeAdd adds two math.Int values with overflow checking
func SafeAdd(a, b math.Int) (math.Int, error) {
	result := new(big.Int).Add(a.BigInt(), b.BigInt())
	if result.BitLen() > maxSafeBits {
		return math.Int{}, types.ErrOverflow.Wrap("addition result exceeds maximum value")
	}
	return math.NewIntFromBigInt(result), nil
}

// SafeSub subtracts two math.Int values with underflow checking
func SafeSub(a, b math.Int) (math.Int, error) {
	if a.LT(b) {
		return math.Int{}, types.ErrOverflow.Wrapf("underflow: cannot subtract %s from %s", b, a)
	}
	return a.Sub(b), nil
}

// SafeMulDiv performs (a * b) / c rounding down
func SafeMulDiv(a, b, c math.Int) (math.Int, error) {
	if c.IsZero() {
		return math.Int{}, types.ErrOverflow.Wrap("division by zero")
	}
	intermediate := new(big.Int).Mul(a.BigInt(), b.BigInt())
	if intermediate.BitLen() > 2*maxSafeBits {
		return math.Int{}, types.ErrOverflow.Wrap("multiplication result exceeds maximum value")
	}
	result := new(big.Int).Quo(intermediate, c.BigInt())
	if result.BitLen() > maxSafeBits {
		return math.Int{}, types.ErrOverflow.Wrap("division result exceeds maximum value")
	}
	return math.NewIntFromBigInt(result), nil
}

// SafeMulDivUp performs (a * b) / c rounding up
func SafeMulDivUp(a, b, c math.Int) (math.Int, error) {
	if c.IsZero() {
		return math.Int{}, types.ErrOverflow.Wrap("division by zero")
	}
	intermediate := new(big.Int).Mul(a.BigInt(), b.BigInt())
	if intermediate.BitLen() > 2*maxSafeBits {
		return math.Int{}, types.ErrOverflow.Wrap("multiplication result exceeds maximum value")
	}
	quo, rem := new(big.Int).QuoRem(intermediate, c.BigInt(), new(big.Int))
	if rem.Sign() != 0 {
		quo.Add(quo, big.NewInt(1))
	}
	if quo.BitLen() > maxSafeBits {
		return math.Int{}, types.ErrOverflow.Wrap("division result exceeds maximum value")
	}
	return math.NewIntFromBigInt(quo), nil
}

// bps returns amount * basisPoints / 10000 rounded down
func bps(amount math.Int, basisPoints uint32) (math.Int, error) {
	return SafeMulDiv(amount, math.NewIntFromUint64(uint64(basisPoints)), math.NewInt(types.BasisPoints))
}

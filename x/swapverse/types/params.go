package types

import (
	"fmt"
	"time"

	"cosmossdk.io/math"
)

// Default parameter values
var (
	DefaultMaxTestTokenMint = math.NewInt(10_000_000)
	DefaultDayDuration      = 24 * time.Hour
)

// Params defines the module parameters
type Params struct {
	// MaxTestTokenMint is the exclusive upper bound of a single faucet mint
	MaxTestTokenMint math.Int `json:"max_test_token_mint"`
	// DayDuration is the length of one lifecycle day
	DayDuration time.Duration `json:"day_duration"`
}

// DefaultParams returns default module parameters
func DefaultParams() Params {
	return Params{
		MaxTestTokenMint: DefaultMaxTestTokenMint,
		DayDuration:      DefaultDayDuration,
	}
}

// Validate validates the parameters
func (p Params) Validate() error {
	if p.MaxTestTokenMint.IsNil() || !p.MaxTestTokenMint.IsPositive() {
		return fmt.Errorf("max test token mint must be positive")
	}
	if p.DayDuration <= 0 {
		return fmt.Errorf("day duration must be positive: %s", p.DayDuration)
	}
	return nil
}

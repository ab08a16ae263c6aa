package types

import (
	"fmt"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	// NumTokenDenoms is the number of test token types the registry recognizes
	NumTokenDenoms = 5

	// BasisPoints is the denominator of every fee parameter
	BasisPoints = 10_000

	// MaxLifecycleDays bounds both the fill window and the swap life
	MaxLifecycleDays = 36_500

	maxDuration = time.Duration(1<<63 - 1)
)

// ProfitPrecision scales the profit-per-share accumulator
var ProfitPrecision = math.NewIntWithDecimal(1, 18)

// DefaultTokenDenoms are the five test tokens recognized after initialization
var DefaultTokenDenoms = [NumTokenDenoms]string{"usdc-dev", "usdt-dev", "uxd-dev", "pai-dev", "usdh-dev"}

// GlobalState is the registry singleton
type GlobalState struct {
	Owner            string                 `json:"owner"`
	SigningAuthority string                 `json:"signing_authority"`
	TokenDenoms      [NumTokenDenoms]string `json:"token_denoms"`
	NoOfSwapPools    uint64                 `json:"no_of_swap_pools"`
	InitializedAt    time.Time              `json:"initialized_at"`
}

// IsRecognized reports whether denom is one of the registry's test tokens
func (gs GlobalState) IsRecognized(denom string) bool {
	for _, d := range gs.TokenDenoms {
		if d == denom {
			return true
		}
	}
	return false
}

// ValidateTokenDenoms checks the denoms are valid and pairwise distinct
func ValidateTokenDenoms(denoms [NumTokenDenoms]string) error {
	seen := make(map[string]bool, NumTokenDenoms)
	for _, d := range denoms {
		if err := sdk.ValidateDenom(d); err != nil {
			return ErrInvalidConfig.Wrapf("token denom %q: %s", d, err)
		}
		if seen[d] {
			return ErrInvalidConfig.Wrapf("duplicate token denom %q", d)
		}
		seen[d] = true
	}
	return nil
}

// PoolSide is the per-token accounting of a swap pool
type PoolSide struct {
	Denom           string   `json:"denom"`
	ShareDenom      string   `json:"share_denom"`
	TreasuryAddress string   `json:"treasury_address"`
	InitialAmount   math.Int `json:"initial_amount"`

	Reserve          math.Int `json:"reserve"`
	TotalShares      math.Int `json:"total_shares"`
	Treasury         math.Int `json:"treasury"`
	CumulativeProfit math.Int `json:"cumulative_profit"`
	// ProfitPerShare is cumulative treasury profit per share, scaled by ProfitPrecision
	ProfitPerShare math.Int `json:"profit_per_share"`

	// WithdrawValuePerShare is fixed when the pool opens for withdrawal
	WithdrawValuePerShare math.LegacyDec `json:"withdraw_value_per_share"`
}

func newPoolSide(index uint64, denom string, initialAmount math.Int) PoolSide {
	return PoolSide{
		Denom:                 denom,
		ShareDenom:            ShareDenom(index, denom),
		TreasuryAddress:       TreasuryAddress(index, denom).String(),
		InitialAmount:         initialAmount,
		Reserve:               math.ZeroInt(),
		TotalShares:           math.ZeroInt(),
		Treasury:              math.ZeroInt(),
		CumulativeProfit:      math.ZeroInt(),
		ProfitPerShare:        math.ZeroInt(),
		WithdrawValuePerShare: math.LegacyZeroDec(),
	}
}

// SwapPool is one two-asset pool
type SwapPool struct {
	Index        uint64   `json:"index"`
	Creator      string   `json:"creator"`
	VaultAddress string   `json:"vault_address"`
	TokenA       PoolSide `json:"token_a"`
	TokenB       PoolSide `json:"token_b"`

	SwapFeeBps          uint32    `json:"swap_fee_bps"`
	TreasurySplitBps    uint32    `json:"treasury_split_bps"`
	MinInvestmentAmount math.Int  `json:"min_investment_amount"`
	MaxDaysToFill       uint32    `json:"max_days_to_fill"`
	SwapLifeInDays      uint32    `json:"swap_life_in_days"`
	CreatedAt           time.Time `json:"created_at"`

	ActiveForSwap      bool      `json:"active_for_swap"`
	ActivatedAt        time.Time `json:"activated_at"`
	OpenForInvestment  bool      `json:"open_for_investment"`
	OpenForWithdrawal  bool      `json:"open_for_withdrawal"`
	WithdrawalOpenedAt time.Time `json:"withdrawal_opened_at"`
}

// PoolConfig carries the creation parameters of a swap pool
type PoolConfig struct {
	TokenA              string   `json:"token_a"`
	TokenB              string   `json:"token_b"`
	InitialAmountA      math.Int `json:"initial_amount_a"`
	InitialAmountB      math.Int `json:"initial_amount_b"`
	SwapFeeBps          uint32   `json:"swap_fee_bps"`
	TreasurySplitBps    uint32   `json:"treasury_split_bps"`
	MinInvestmentAmount math.Int `json:"min_investment_amount"`
	MaxDaysToFill       uint32   `json:"max_days_to_fill"`
	SwapLifeInDays      uint32   `json:"swap_life_in_days"`
}

// Validate performs the stateless checks of a pool configuration
func (c PoolConfig) Validate() error {
	if c.TokenA == c.TokenB {
		return ErrSameTokenDenoms.Wrap(c.TokenA)
	}
	if c.SwapFeeBps > BasisPoints {
		return ErrInvalidConfig.Wrapf("swap fee %d bps exceeds %d", c.SwapFeeBps, BasisPoints)
	}
	if c.TreasurySplitBps > BasisPoints {
		return ErrInvalidConfig.Wrapf("treasury split %d bps exceeds %d", c.TreasurySplitBps, BasisPoints)
	}
	if c.MinInvestmentAmount.IsNil() || !c.MinInvestmentAmount.IsPositive() {
		return ErrInvalidConfig.Wrap("minimum investment must be positive")
	}
	if c.InitialAmountA.IsNil() || !c.InitialAmountA.IsPositive() ||
		c.InitialAmountB.IsNil() || !c.InitialAmountB.IsPositive() {
		return ErrInvalidConfig.Wrap("initial amounts must be positive")
	}
	if c.MaxDaysToFill == 0 {
		return ErrInvalidConfig.Wrap("fill window must be at least one day")
	}
	if c.SwapLifeInDays == 0 {
		return ErrInvalidConfig.Wrap("swap life must be at least one day")
	}
	if c.MaxDaysToFill > MaxLifecycleDays {
		return ErrInvalidConfig.Wrapf("fill window %d days exceeds %d", c.MaxDaysToFill, MaxLifecycleDays)
	}
	if c.SwapLifeInDays > MaxLifecycleDays {
		return ErrInvalidConfig.Wrapf("swap life %d days exceeds %d", c.SwapLifeInDays, MaxLifecycleDays)
	}
	return nil
}

// ValidateDayLength checks that both deadlines stay representable when a day
// lasts for the given duration
func (c PoolConfig) ValidateDayLength(day time.Duration) error {
	if day <= 0 {
		return ErrInvalidConfig.Wrapf("day duration %s must be positive", day)
	}
	limit := int64(maxDuration / day)
	if int64(c.MaxDaysToFill) > limit || int64(c.SwapLifeInDays) > limit {
		return ErrInvalidConfig.Wrapf("lifecycle of %d days overflows with %s days", max(c.MaxDaysToFill, c.SwapLifeInDays), day)
	}
	return nil
}

// NewSwapPool builds a freshly created pool: empty reserves, open for investment
func NewSwapPool(index uint64, creator string, cfg PoolConfig, createdAt time.Time) SwapPool {
	return SwapPool{
		Index:               index,
		Creator:             creator,
		VaultAddress:        SwapPoolVaultAddress(index).String(),
		TokenA:              newPoolSide(index, cfg.TokenA, cfg.InitialAmountA),
		TokenB:              newPoolSide(index, cfg.TokenB, cfg.InitialAmountB),
		SwapFeeBps:          cfg.SwapFeeBps,
		TreasurySplitBps:    cfg.TreasurySplitBps,
		MinInvestmentAmount: cfg.MinInvestmentAmount,
		MaxDaysToFill:       cfg.MaxDaysToFill,
		SwapLifeInDays:      cfg.SwapLifeInDays,
		CreatedAt:           createdAt,
		OpenForInvestment:   true,
	}
}

// Side returns the accounting of one side of the pool
func (p *SwapPool) Side(s Side) *PoolSide {
	if s == SideB {
		return &p.TokenB
	}
	return &p.TokenA
}

// Filled reports whether both reserves reached their initial amounts
func (p SwapPool) Filled() bool {
	return p.TokenA.Reserve.GTE(p.TokenA.InitialAmount) && p.TokenB.Reserve.GTE(p.TokenB.InitialAmount)
}

// FillDeadline is the instant after which an unactivated pool opens for withdrawal
func (p SwapPool) FillDeadline(day time.Duration) time.Time {
	return p.CreatedAt.Add(time.Duration(p.MaxDaysToFill) * day)
}

// EndOfLife is the instant after which the pool opens for withdrawal
func (p SwapPool) EndOfLife(day time.Duration) time.Time {
	return p.CreatedAt.Add(time.Duration(p.SwapLifeInDays) * day)
}

// Validate checks the structural invariants of a stored pool
func (p SwapPool) Validate() error {
	if p.OpenForInvestment && p.OpenForWithdrawal {
		return ErrInvariantViolation.Wrapf("pool %d open for investment and withdrawal", p.Index)
	}
	for _, s := range []Side{SideA, SideB} {
		side := p.Side(s)
		if side.Reserve.IsNegative() || side.TotalShares.IsNegative() || side.Treasury.IsNegative() {
			return ErrInvariantViolation.Wrapf("pool %d side %s has a negative balance", p.Index, s)
		}
	}
	return nil
}

// InvestorPosition is an investor's holding on one side of a pool
type InvestorPosition struct {
	Principal     math.Int `json:"principal"`
	Shares        math.Int `json:"shares"`
	ProfitClaimed math.Int `json:"profit_claimed"`
	Withdrawn     math.Int `json:"withdrawn"`
	// ProfitDebt and UnclaimedProfit are scaled by ProfitPrecision
	ProfitDebt      math.Int `json:"profit_debt"`
	UnclaimedProfit math.Int `json:"unclaimed_profit"`
}

// NewInvestorPosition returns an all-zero position
func NewInvestorPosition() InvestorPosition {
	return InvestorPosition{
		Principal:       math.ZeroInt(),
		Shares:          math.ZeroInt(),
		ProfitClaimed:   math.ZeroInt(),
		Withdrawn:       math.ZeroInt(),
		ProfitDebt:      math.ZeroInt(),
		UnclaimedProfit: math.ZeroInt(),
	}
}

// InvestorPoolInfo is an investor's record in one pool
type InvestorPoolInfo struct {
	PoolIndex uint64           `json:"pool_index"`
	Investor  string           `json:"investor"`
	TokenA    InvestorPosition `json:"token_a"`
	TokenB    InvestorPosition `json:"token_b"`
}

// NewInvestorPoolInfo returns an empty record for investor in pool index
func NewInvestorPoolInfo(index uint64, investor sdk.AccAddress) InvestorPoolInfo {
	return InvestorPoolInfo{
		PoolIndex: index,
		Investor:  investor.String(),
		TokenA:    NewInvestorPosition(),
		TokenB:    NewInvestorPosition(),
	}
}

// Side returns the investor's position on one side
func (i *InvestorPoolInfo) Side(s Side) *InvestorPosition {
	if s == SideB {
		return &i.TokenB
	}
	return &i.TokenA
}

// SwapQuote is the result of pricing a swap
type SwapQuote struct {
	AmountIn      math.Int `json:"amount_in"`
	Fee           math.Int `json:"fee"`
	TreasuryFee   math.Int `json:"treasury_fee"`
	AmountInNet   math.Int `json:"amount_in_after_fee"`
	AmountOut     math.Int `json:"amount_out"`
	DenomIn       string   `json:"denom_in"`
	DenomOut      string   `json:"denom_out"`
	NewReserveIn  math.Int `json:"new_reserve_in"`
	NewReserveOut math.Int `json:"new_reserve_out"`
}

func (q SwapQuote) String() string {
	return fmt.Sprintf("%s%s -> %s%s (fee %s, treasury %s)", q.AmountIn, q.DenomIn, q.AmountOut, q.DenomOut, q.Fee, q.TreasuryFee)
}

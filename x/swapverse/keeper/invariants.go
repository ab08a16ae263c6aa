package keeper

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/swapverse/swapverse/x/swapverse/types"
)

// Invariant checks one property of the stored state; broken is true on violation
type Invariant func(ctx sdk.Context) (msg string, broken bool)

// InvariantRoute names an invariant
type InvariantRoute struct {
	Route     string
	Invariant Invariant
}

// Invariants returns every swapverse invariant by route
func Invariants(k Keeper) []InvariantRoute {
	return []InvariantRoute{
		{"vault-balance", VaultBalanceInvariant(k)},
		{"treasury-balance", TreasuryBalanceInvariant(k)},
		{"share-supply", ShareSupplyInvariant(k)},
		{"lifecycle-exclusive", LifecycleExclusiveInvariant(k)},
		{"non-negative-reserves", NonNegativeReservesInvariant(k)},
		{"position-shares", PositionSharesInvariant(k)},
	}
}

// AllInvariants runs all invariants of the swapverse module
func AllInvariants(k Keeper) Invariant {
	return func(ctx sdk.Context) (string, bool) {
		for _, r := range Invariants(k) {
			if res, stop := r.Invariant(ctx); stop {
				return res, stop
			}
		}
		return formatInvariant("all", "every invariant holds", false), false
	}
}

// VaultBalanceInvariant checks that each vault holds exactly the pool reserves
func VaultBalanceInvariant(k Keeper) Invariant {
	return poolInvariant(k, "vault-balance", func(ctx sdk.Context, pool types.SwapPool) string {
		vault := sdk.MustAccAddressFromBech32(pool.VaultAddress)
		var msg string
		for _, s := range []types.Side{types.SideA, types.SideB} {
			side := pool.Side(s)
			if bal := k.ledger.BalanceOf(ctx, side.Denom, vault); !bal.Equal(side.Reserve) {
				msg += fmt.Sprintf("\tpool %d side %s: vault holds %s, reserve is %s\n", pool.Index, s, bal, side.Reserve)
			}
		}
		return msg
	})
}

// TreasuryBalanceInvariant checks that each treasury account matches its recorded balance
func TreasuryBalanceInvariant(k Keeper) Invariant {
	return poolInvariant(k, "treasury-balance", func(ctx sdk.Context, pool types.SwapPool) string {
		var msg string
		for _, s := range []types.Side{types.SideA, types.SideB} {
			side := pool.Side(s)
			treasury := sdk.MustAccAddressFromBech32(side.TreasuryAddress)
			if bal := k.ledger.BalanceOf(ctx, side.Denom, treasury); !bal.Equal(side.Treasury) {
				msg += fmt.Sprintf("\tpool %d side %s: treasury holds %s, recorded %s\n", pool.Index, s, bal, side.Treasury)
			}
		}
		return msg
	})
}

// ShareSupplyInvariant checks that the share token supply equals the recorded total shares
func ShareSupplyInvariant(k Keeper) Invariant {
	return poolInvariant(k, "share-supply", func(ctx sdk.Context, pool types.SwapPool) string {
		var msg string
		for _, s := range []types.Side{types.SideA, types.SideB} {
			side := pool.Side(s)
			if supply := k.ledger.Supply(ctx, side.ShareDenom); !supply.Equal(side.TotalShares) {
				msg += fmt.Sprintf("\tpool %d side %s: share supply %s, total shares %s\n", pool.Index, s, supply, side.TotalShares)
			}
		}
		return msg
	})
}

// LifecycleExclusiveInvariant checks that no pool is open for investment and withdrawal at once
func LifecycleExclusiveInvariant(k Keeper) Invariant {
	return poolInvariant(k, "lifecycle-exclusive", func(_ sdk.Context, pool types.SwapPool) string {
		if pool.OpenForInvestment && pool.OpenForWithdrawal {
			return fmt.Sprintf("\tpool %d open for investment and withdrawal\n", pool.Index)
		}
		if pool.ActiveForSwap && pool.OpenForWithdrawal {
			return fmt.Sprintf("\tpool %d active for swaps while open for withdrawal\n", pool.Index)
		}
		return ""
	})
}

// NonNegativeReservesInvariant checks that no balance of a pool is negative
func NonNegativeReservesInvariant(k Keeper) Invariant {
	return poolInvariant(k, "non-negative-reserves", func(_ sdk.Context, pool types.SwapPool) string {
		if err := pool.Validate(); err != nil {
			return "\t" + err.Error() + "\n"
		}
		return ""
	})
}

// PositionSharesInvariant checks that investor shares add up to the pool totals
func PositionSharesInvariant(k Keeper) Invariant {
	return poolInvariant(k, "position-shares", func(ctx sdk.Context, pool types.SwapPool) string {
		sumA, sumB := math.ZeroInt(), math.ZeroInt()
		err := k.IterateInvestors(ctx, pool.Index, func(info types.InvestorPoolInfo) bool {
			sumA = sumA.Add(info.TokenA.Shares)
			sumB = sumB.Add(info.TokenB.Shares)
			return false
		})
		if err != nil {
			return fmt.Sprintf("\tpool %d: %s\n", pool.Index, err)
		}
		if !sumA.Equal(pool.TokenA.TotalShares) || !sumB.Equal(pool.TokenB.TotalShares) {
			return fmt.Sprintf("\tpool %d: positions hold %s/%s shares, pool records %s/%s\n",
				pool.Index, sumA, sumB, pool.TokenA.TotalShares, pool.TokenB.TotalShares)
		}
		return ""
	})
}

func poolInvariant(k Keeper, route string, check func(ctx sdk.Context, pool types.SwapPool) string) Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg    string
			broken bool
		)
		err := k.IterateSwapPools(ctx, func(pool types.SwapPool) bool {
			if m := check(ctx, pool); m != "" {
				msg += m
				broken = true
			}
			return false
		})
		if err != nil {
			return formatInvariant(route, err.Error(), true), true
		}
		return formatInvariant(route, msg, broken), broken
	}
}

func formatInvariant(route, msg string, broken bool) string {
	return fmt.Sprintf("%s: %s invariant\n%s\nbroken: %v\n", types.ModuleName, route, msg, broken)
}

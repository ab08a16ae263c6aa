package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"

	"github.com/swapverse/swapverse/app"
	swaptypes "github.com/swapverse/swapverse/x/swapverse/types"
)

var demoStart = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// DemoCmd replays the reference pool scenario against an in-memory engine
func DemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Replay the reference pool scenario in memory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDemo(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

func demoAddress(name string) sdk.AccAddress {
	return swaptypes.DeriveAddress([]byte("demo"), []byte(name))
}

func demoPoolConfig() swaptypes.PoolConfig {
	return swaptypes.PoolConfig{
		TokenA:              swaptypes.DefaultTokenDenoms[0],
		TokenB:              swaptypes.DefaultTokenDenoms[1],
		InitialAmountA:      math.NewInt(100_000),
		InitialAmountB:      math.NewInt(100_000),
		SwapFeeBps:          10,
		TreasurySplitBps:    10,
		MinInvestmentAmount: math.NewInt(10_000),
		MaxDaysToFill:       30,
		SwapLifeInDays:      360,
	}
}

func runDemo(ctx context.Context, w io.Writer) error {
	clock := app.NewManualClock(demoStart)
	engine, err := app.New(log.NewNopLogger(), dbm.NewMemDB(), app.WithClock(clock))
	if err != nil {
		return err
	}
	defer engine.Close()
	if err := engine.InitGenesis(ctx, app.NewDefaultGenesisState()); err != nil {
		return err
	}

	var (
		owner     = demoAddress("owner")
		investor1 = demoAddress("investor1")
		investor2 = demoAddress("investor2")
		trader    = demoAddress("trader")
		cfg       = demoPoolConfig()
	)

	if err := engine.InitializeGlobalState(ctx, swaptypes.MsgInitializeGlobalState{
		Owner:       owner.String(),
		TokenDenoms: swaptypes.DefaultTokenDenoms,
	}); err != nil {
		return err
	}
	index, err := engine.CreateSwapPool(ctx, swaptypes.MsgCreateSwapPool{Creator: owner.String(), Config: cfg})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "created pool %d (%s/%s)\n", index, cfg.TokenA, cfg.TokenB)

	deposits := []struct {
		investor sdk.AccAddress
		side     swaptypes.Side
		amount   int64
	}{
		{investor1, swaptypes.SideA, 70_000},
		{investor2, swaptypes.SideA, 30_000},
		{investor1, swaptypes.SideB, 40_000},
		{investor2, swaptypes.SideB, 60_000},
	}
	for _, d := range deposits {
		denom := cfg.TokenA
		if d.side == swaptypes.SideB {
			denom = cfg.TokenB
		}
		if err := engine.MintTestTokens(ctx, swaptypes.MsgMintTestTokens{
			Investor: d.investor.String(), Denom: denom, Amount: math.NewInt(d.amount),
		}); err != nil {
			return err
		}
		shares, err := engine.Invest(ctx, swaptypes.MsgInvest{
			Investor: d.investor.String(), PoolIndex: index, Side: d.side, Amount: math.NewInt(d.amount),
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "invested %d %s for %s shares\n", d.amount, denom, shares)
	}

	pool, err := engine.Pool(ctx, index)
	if err != nil {
		return err
	}
	if !pool.ActiveForSwap {
		return errors.New("pool did not activate")
	}
	fmt.Fprintln(w, "pool active for swap")

	if err := engine.MintTestTokens(ctx, swaptypes.MsgMintTestTokens{
		Investor: trader.String(), Denom: cfg.TokenA, Amount: math.NewInt(20_000),
	}); err != nil {
		return err
	}
	for _, minOut := range []int64{8_000, 6_000} {
		quote, err := engine.Swap(ctx, swaptypes.MsgSwap{
			User:         trader.String(),
			PoolIndex:    index,
			AmountIn:     math.NewInt(10_000),
			MinAmountOut: math.NewInt(minOut),
			Direction:    swaptypes.AtoB,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "swapped %s %s for %s %s (fee %s)\n",
			quote.AmountIn, quote.DenomIn, quote.AmountOut, quote.DenomOut, quote.Fee)
	}

	_, err = engine.ClaimProfit(ctx, swaptypes.MsgClaimProfit{
		Investor: investor1.String(), PoolIndex: index, Side: swaptypes.SideA,
	})
	switch {
	case errors.Is(err, swaptypes.ErrNothingToClaim):
		fmt.Fprintln(w, "nothing to claim")
	case err != nil:
		return err
	}

	clock.Advance(time.Duration(cfg.SwapLifeInDays+1) * 24 * time.Hour)
	if err := engine.EndBlock(ctx); err != nil {
		return err
	}

	for _, inv := range []sdk.AccAddress{investor1, investor2} {
		for _, side := range []swaptypes.Side{swaptypes.SideA, swaptypes.SideB} {
			resp, err := engine.Withdraw(ctx, swaptypes.MsgWithdraw{
				Investor: inv.String(), PoolIndex: index, Side: side,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "withdrew %s on side %s with profit %s\n", resp.Redeemed, side, resp.Profit)
		}
	}

	if msg, broken := engine.CheckInvariants(ctx); broken {
		return fmt.Errorf("invariants broken: %s", msg)
	}
	fmt.Fprintln(w, "all invariants hold")
	return nil
}

package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/swapverse/swapverse/testutil/keeper"
	swaptypes "github.com/swapverse/swapverse/x/swapverse/types"
)

var (
	owner    = keepertest.TestAddress("owner")
	investor = keepertest.TestAddress("investor")
	trader   = keepertest.TestAddress("trader")
)

func newTestApp(t *testing.T) (*App, *ManualClock) {
	t.Helper()
	clock := NewManualClock(keepertest.GenesisTime)
	app, err := New(log.NewNopLogger(), dbm.NewMemDB(), WithClock(clock))
	require.NoError(t, err)
	require.NoError(t, app.InitGenesis(context.Background(), NewDefaultGenesisState()))
	t.Cleanup(func() { _ = app.Close() })
	return app, clock
}

func mint(t *testing.T, app *App, addr sdk.AccAddress, denom string, amount int64) {
	t.Helper()
	require.NoError(t, app.MintTestTokens(context.Background(), swaptypes.MsgMintTestTokens{
		Investor: addr.String(),
		Denom:    denom,
		Amount:   math.NewInt(amount),
	}))
}

func invest(t *testing.T, app *App, index uint64, addr sdk.AccAddress, side swaptypes.Side, amount int64) math.Int {
	t.Helper()
	pool, err := app.Pool(context.Background(), index)
	require.NoError(t, err)
	mint(t, app, addr, pool.Side(side).Denom, amount)
	shares, err := app.Invest(context.Background(), swaptypes.MsgInvest{
		Investor:  addr.String(),
		PoolIndex: index,
		Side:      side,
		Amount:    math.NewInt(amount),
	})
	require.NoError(t, err)
	return shares
}

// setupActivePool initializes the registry and returns an activated scenario pool
func setupActivePool(t *testing.T, app *App) uint64 {
	t.Helper()
	return setupActivePoolWith(t, app, keepertest.ScenarioConfig())
}

func setupActivePoolWith(t *testing.T, app *App, cfg swaptypes.PoolConfig) uint64 {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, app.InitializeGlobalState(ctx, swaptypes.MsgInitializeGlobalState{
		Owner:       owner.String(),
		TokenDenoms: swaptypes.DefaultTokenDenoms,
	}))
	index, err := app.CreateSwapPool(ctx, swaptypes.MsgCreateSwapPool{
		Creator: owner.String(),
		Config:  cfg,
	})
	require.NoError(t, err)

	invest(t, app, index, investor, swaptypes.SideA, 100_000)
	invest(t, app, index, investor, swaptypes.SideB, 100_000)

	pool, err := app.Pool(ctx, index)
	require.NoError(t, err)
	require.True(t, pool.ActiveForSwap)
	return index
}

func requireNoBrokenInvariants(t *testing.T, app *App) {
	t.Helper()
	msg, broken := app.CheckInvariants(context.Background())
	require.False(t, broken, msg)
}

func TestAppEndToEnd(t *testing.T) {
	app, _ := newTestApp(t)
	ctx := context.Background()
	cfg := keepertest.ScenarioConfig()
	cfg.TreasurySplitBps = 5_000
	index := setupActivePoolWith(t, app, cfg)

	gs, err := app.GlobalState(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(1), gs.NoOfSwapPools)

	quote, err := app.Quote(ctx, index, swaptypes.AtoB, math.NewInt(10_000))
	require.NoError(t, err)
	// 10 bps of 10000, half of it to the treasury
	require.Equal(t, math.NewInt(10), quote.Fee)
	require.Equal(t, math.NewInt(5), quote.TreasuryFee)

	mint(t, app, trader, swaptypes.DefaultTokenDenoms[0], 10_000)
	executed, err := app.Swap(ctx, swaptypes.MsgSwap{
		User:         trader.String(),
		PoolIndex:    index,
		AmountIn:     math.NewInt(10_000),
		MinAmountOut: quote.AmountOut,
		Direction:    swaptypes.AtoB,
	})
	require.NoError(t, err)
	require.Equal(t, quote, executed)
	require.Equal(t, quote.AmountOut, app.Balance(ctx, swaptypes.DefaultTokenDenoms[1], trader))
	require.True(t, app.Balance(ctx, swaptypes.DefaultTokenDenoms[0], trader).IsZero())

	view, err := app.Investor(ctx, index, investor)
	require.NoError(t, err)
	require.Equal(t, quote.TreasuryFee, view.PendingProfitA)
	require.Equal(t, math.NewInt(5), view.PendingProfitA)

	claimed, err := app.ClaimProfit(ctx, swaptypes.MsgClaimProfit{
		Investor:  investor.String(),
		PoolIndex: index,
		Side:      swaptypes.SideA,
	})
	require.NoError(t, err)
	require.Equal(t, view.PendingProfitA, claimed)

	pools, total, err := app.Pools(ctx, 0, 10)
	require.NoError(t, err)
	require.Equal(t, uint64(1), total)
	require.Len(t, pools, 1)

	requireNoBrokenInvariants(t, app)
}

func TestFailedOperationLeavesNoTrace(t *testing.T) {
	app, _ := newTestApp(t)
	ctx := context.Background()
	index := setupActivePool(t, app)

	before, err := app.Pool(ctx, index)
	require.NoError(t, err)

	mint(t, app, trader, swaptypes.DefaultTokenDenoms[0], 10_000)
	_, err = app.Swap(ctx, swaptypes.MsgSwap{
		User:         trader.String(),
		PoolIndex:    index,
		AmountIn:     math.NewInt(10_000),
		MinAmountOut: math.NewInt(10_000),
		Direction:    swaptypes.AtoB,
	})
	require.ErrorIs(t, err, swaptypes.ErrSlippageExceeded)

	after, err := app.Pool(ctx, index)
	require.NoError(t, err)
	require.Equal(t, before, after)
	require.Equal(t, math.NewInt(10_000), app.Balance(ctx, swaptypes.DefaultTokenDenoms[0], trader))
	require.True(t, app.Balance(ctx, swaptypes.DefaultTokenDenoms[1], trader).IsZero())
}

func TestClosePoolThroughApp(t *testing.T) {
	app, _ := newTestApp(t)
	ctx := context.Background()
	index := setupActivePool(t, app)

	err := app.ClosePool(ctx, swaptypes.MsgClosePool{Authority: trader.String(), PoolIndex: index})
	require.ErrorIs(t, err, swaptypes.ErrUnauthorized)

	require.NoError(t, app.ClosePool(ctx, swaptypes.MsgClosePool{Authority: owner.String(), PoolIndex: index}))

	resp, err := app.Withdraw(ctx, swaptypes.MsgWithdraw{
		Investor:  investor.String(),
		PoolIndex: index,
		Side:      swaptypes.SideA,
	})
	require.NoError(t, err)
	require.Equal(t, math.NewInt(100_000), resp.Redeemed)
	requireNoBrokenInvariants(t, app)
}

func TestConcurrentOperationsOnDisjointPools(t *testing.T) {
	app, _ := newTestApp(t)
	ctx := context.Background()
	first := setupActivePool(t, app)
	second, err := app.CreateSwapPool(ctx, swaptypes.MsgCreateSwapPool{
		Creator: owner.String(),
		Config:  keepertest.ScenarioConfig(),
	})
	require.NoError(t, err)

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers*2)

	for i := 0; i < workers; i++ {
		addr := keepertest.TestAddress("worker-" + string(rune('a'+i)))
		mint(t, app, addr, swaptypes.DefaultTokenDenoms[0], 40_000)
		mint(t, app, addr, swaptypes.DefaultTokenDenoms[1], 20_000)

		wg.Add(2)
		go func(addr sdk.AccAddress) {
			defer wg.Done()
			_, err := app.Invest(ctx, swaptypes.MsgInvest{
				Investor:  addr.String(),
				PoolIndex: second,
				Side:      swaptypes.SideA,
				Amount:    math.NewInt(20_000),
			})
			errs <- err
		}(addr)
		go func(addr sdk.AccAddress) {
			defer wg.Done()
			_, err := app.Swap(ctx, swaptypes.MsgSwap{
				User:         addr.String(),
				PoolIndex:    first,
				AmountIn:     math.NewInt(1_000),
				MinAmountOut: math.NewInt(1),
				Direction:    swaptypes.AtoB,
			})
			errs <- err
		}(addr)
	}

	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	pool, err := app.Pool(ctx, second)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(workers*20_000), pool.TokenA.Reserve)
	require.Equal(t, pool.TokenA.Reserve, pool.TokenA.TotalShares)

	requireNoBrokenInvariants(t, app)
}

func TestEndBlockSweepsExpiredPools(t *testing.T) {
	app, clock := newTestApp(t)
	ctx := context.Background()
	index := setupActivePool(t, app)
	require.True(t, app.LastEndBlock().IsZero())

	require.NoError(t, app.EndBlock(ctx))
	pool, err := app.Pool(ctx, index)
	require.NoError(t, err)
	require.True(t, pool.ActiveForSwap)
	require.True(t, keepertest.GenesisTime.Equal(app.LastEndBlock()))

	clock.Advance(361 * 24 * time.Hour)
	require.NoError(t, app.EndBlock(ctx))

	pool, err = app.Pool(ctx, index)
	require.NoError(t, err)
	require.False(t, pool.ActiveForSwap)
	require.False(t, pool.OpenForInvestment)
	require.True(t, pool.OpenForWithdrawal)
	require.True(t, clock.Now().Equal(app.LastEndBlock()))
}

func TestGenesisRoundTrip(t *testing.T) {
	app, _ := newTestApp(t)
	ctx := context.Background()
	index := setupActivePool(t, app)

	mint(t, app, trader, swaptypes.DefaultTokenDenoms[1], 5_000)
	_, err := app.Swap(ctx, swaptypes.MsgSwap{
		User:         trader.String(),
		PoolIndex:    index,
		AmountIn:     math.NewInt(5_000),
		MinAmountOut: math.NewInt(1),
		Direction:    swaptypes.BtoA,
	})
	require.NoError(t, err)

	exported, err := app.ExportGenesis(ctx)
	require.NoError(t, err)
	require.NoError(t, exported.Swapverse.Validate())

	restored, err := New(log.NewNopLogger(), dbm.NewMemDB(), WithClock(NewManualClock(keepertest.GenesisTime)))
	require.NoError(t, err)
	require.NoError(t, restored.InitGenesis(ctx, exported))

	reexported, err := restored.ExportGenesis(ctx)
	require.NoError(t, err)
	require.Equal(t, exported, reexported)

	requireNoBrokenInvariants(t, restored)
}

package app

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	swapkeeper "github.com/swapverse/swapverse/x/swapverse/keeper"
	swaptypes "github.com/swapverse/swapverse/x/swapverse/types"
)

// InitializeGlobalState creates the registry
func (app *App) InitializeGlobalState(ctx context.Context, msg swaptypes.MsgInitializeGlobalState) error {
	_, err := app.execute(ctx, "initialize_global_state", []string{laneRegistry}, func(sdkCtx sdk.Context) error {
		return app.msgServer.InitializeGlobalState(sdkCtx, &msg)
	})
	return err
}

// MintTestTokens runs the faucet
func (app *App) MintTestTokens(ctx context.Context, msg swaptypes.MsgMintTestTokens) error {
	lanes := []string{supplyLane(msg.Denom), accountLane(msg.Investor)}
	_, err := app.execute(ctx, "mint_test_tokens", lanes, func(sdkCtx sdk.Context) error {
		return app.msgServer.MintTestTokens(sdkCtx, &msg)
	})
	return err
}

// CreateSwapPool creates a pool and returns its index
func (app *App) CreateSwapPool(ctx context.Context, msg swaptypes.MsgCreateSwapPool) (uint64, error) {
	var resp *swaptypes.MsgCreateSwapPoolResponse
	_, err := app.execute(ctx, "create_swap_pool", []string{laneRegistry}, func(sdkCtx sdk.Context) (err error) {
		resp, err = app.msgServer.CreateSwapPool(sdkCtx, &msg)
		return err
	})
	if err != nil {
		return 0, err
	}
	return resp.PoolIndex, nil
}

// Invest deposits into a pool and returns the minted shares
func (app *App) Invest(ctx context.Context, msg swaptypes.MsgInvest) (math.Int, error) {
	var resp *swaptypes.MsgInvestResponse
	lanes := []string{poolLane(msg.PoolIndex), accountLane(msg.Investor)}
	_, err := app.execute(ctx, "invest", lanes, func(sdkCtx sdk.Context) (err error) {
		resp, err = app.msgServer.Invest(sdkCtx, &msg)
		return err
	})
	if err != nil {
		return math.ZeroInt(), err
	}
	return resp.Shares, nil
}

// Swap executes a swap and returns the executed quote
func (app *App) Swap(ctx context.Context, msg swaptypes.MsgSwap) (swaptypes.SwapQuote, error) {
	var resp *swaptypes.MsgSwapResponse
	lanes := []string{poolLane(msg.PoolIndex), accountLane(msg.User)}
	_, err := app.execute(ctx, "swap", lanes, func(sdkCtx sdk.Context) (err error) {
		resp, err = app.msgServer.Swap(sdkCtx, &msg)
		return err
	})
	if err != nil {
		return swaptypes.SwapQuote{}, err
	}
	return resp.Quote, nil
}

// ClaimProfit pays accrued profit and returns the amount
func (app *App) ClaimProfit(ctx context.Context, msg swaptypes.MsgClaimProfit) (math.Int, error) {
	var resp *swaptypes.MsgClaimProfitResponse
	lanes := []string{poolLane(msg.PoolIndex), accountLane(msg.Investor)}
	_, err := app.execute(ctx, "claim_profit", lanes, func(sdkCtx sdk.Context) (err error) {
		resp, err = app.msgServer.ClaimProfit(sdkCtx, &msg)
		return err
	})
	if err != nil {
		return math.ZeroInt(), err
	}
	return resp.Amount, nil
}

// Withdraw redeems one side of a position
func (app *App) Withdraw(ctx context.Context, msg swaptypes.MsgWithdraw) (swaptypes.MsgWithdrawResponse, error) {
	var resp *swaptypes.MsgWithdrawResponse
	lanes := []string{poolLane(msg.PoolIndex), accountLane(msg.Investor)}
	_, err := app.execute(ctx, "withdraw", lanes, func(sdkCtx sdk.Context) (err error) {
		resp, err = app.msgServer.Withdraw(sdkCtx, &msg)
		return err
	})
	if err != nil {
		return swaptypes.MsgWithdrawResponse{}, err
	}
	return *resp, nil
}

// ClosePool opens a pool for withdrawal early
func (app *App) ClosePool(ctx context.Context, msg swaptypes.MsgClosePool) error {
	_, err := app.execute(ctx, "close_pool", []string{poolLane(msg.PoolIndex)}, func(sdkCtx sdk.Context) error {
		return app.msgServer.ClosePool(sdkCtx, &msg)
	})
	return err
}

// GlobalState returns the registry
func (app *App) GlobalState(ctx context.Context) (gs swaptypes.GlobalState, err error) {
	err = app.query(ctx, func(sdkCtx sdk.Context) error {
		gs, err = app.SwapverseKeeper.GetGlobalState(sdkCtx)
		return err
	})
	return gs, err
}

// Pool returns one pool
func (app *App) Pool(ctx context.Context, index uint64) (pool swaptypes.SwapPool, err error) {
	err = app.query(ctx, func(sdkCtx sdk.Context) error {
		pool, err = app.SwapverseKeeper.GetSwapPool(sdkCtx, index)
		return err
	})
	return pool, err
}

// Pools returns a page of pools and the total count
func (app *App) Pools(ctx context.Context, offset, limit int) (pools []swaptypes.SwapPool, total uint64, err error) {
	err = app.query(ctx, func(sdkCtx sdk.Context) error {
		pools, total, err = app.SwapverseKeeper.QueryPools(sdkCtx, offset, limit)
		return err
	})
	return pools, total, err
}

// Investor returns an investor's view of a pool
func (app *App) Investor(ctx context.Context, index uint64, investor sdk.AccAddress) (view swapkeeper.InvestorView, err error) {
	err = app.query(ctx, func(sdkCtx sdk.Context) error {
		if _, err := app.SwapverseKeeper.GetSwapPool(sdkCtx, index); err != nil {
			return err
		}
		view, err = app.SwapverseKeeper.QueryInvestor(sdkCtx, index, investor)
		return err
	})
	return view, err
}

// Quote prices a swap without executing it
func (app *App) Quote(ctx context.Context, index uint64, direction swaptypes.Direction, amountIn math.Int) (quote swaptypes.SwapQuote, err error) {
	err = app.query(ctx, func(sdkCtx sdk.Context) error {
		quote, err = app.SwapverseKeeper.QuoteSwap(sdkCtx, index, direction, amountIn)
		return err
	})
	return quote, err
}

// Balance returns a ledger balance
func (app *App) Balance(ctx context.Context, denom string, owner sdk.AccAddress) (balance math.Int) {
	_ = app.query(ctx, func(sdkCtx sdk.Context) error {
		balance = app.LedgerKeeper.BalanceOf(sdkCtx, denom, owner)
		return nil
	})
	return balance
}

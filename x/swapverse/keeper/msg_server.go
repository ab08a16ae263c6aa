package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/swapverse/swapverse/x/swapverse/types"
)

type msgServer struct {
	Keeper
}

// NewMsgServerImpl returns an implementation of the swapverse MsgServer interface
func NewMsgServerImpl(keeper Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

var _ types.MsgServer = msgServer{}

// InitializeGlobalState handles registry creation
func (ms msgServer) InitializeGlobalState(goCtx context.Context, msg *types.MsgInitializeGlobalState) error {
	if err := msg.ValidateBasic(); err != nil {
		return fmt.Errorf("InitializeGlobalState: validate: %w", err)
	}
	owner := sdk.MustAccAddressFromBech32(msg.Owner)
	if err := ms.Keeper.InitializeGlobalState(goCtx, owner, msg.TokenDenoms); err != nil {
		return fmt.Errorf("InitializeGlobalState: %w", err)
	}
	return nil
}

// MintTestTokens handles faucet mints
func (ms msgServer) MintTestTokens(goCtx context.Context, msg *types.MsgMintTestTokens) error {
	if err := msg.ValidateBasic(); err != nil {
		return fmt.Errorf("MintTestTokens: validate: %w", err)
	}
	investor := sdk.MustAccAddressFromBech32(msg.Investor)
	if err := ms.Keeper.MintTestTokens(goCtx, investor, msg.Denom, msg.Amount); err != nil {
		return fmt.Errorf("MintTestTokens: %w", err)
	}
	return nil
}

// CreateSwapPool handles the creation of a new swap pool
func (ms msgServer) CreateSwapPool(goCtx context.Context, msg *types.MsgCreateSwapPool) (*types.MsgCreateSwapPoolResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("CreateSwapPool: validate: %w", err)
	}
	creator := sdk.MustAccAddressFromBech32(msg.Creator)
	index, err := ms.Keeper.CreateSwapPool(goCtx, creator, msg.Config)
	if err != nil {
		return nil, fmt.Errorf("CreateSwapPool: %w", err)
	}
	return &types.MsgCreateSwapPoolResponse{PoolIndex: index}, nil
}

// Invest handles deposits
func (ms msgServer) Invest(goCtx context.Context, msg *types.MsgInvest) (*types.MsgInvestResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("Invest: validate: %w", err)
	}
	investor := sdk.MustAccAddressFromBech32(msg.Investor)
	shares, err := ms.Keeper.Invest(goCtx, msg.PoolIndex, investor, msg.Side, msg.Amount)
	if err != nil {
		return nil, fmt.Errorf("Invest: %w", err)
	}
	return &types.MsgInvestResponse{Shares: shares}, nil
}

// Swap handles token swaps
func (ms msgServer) Swap(goCtx context.Context, msg *types.MsgSwap) (*types.MsgSwapResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("Swap: validate: %w", err)
	}
	user := sdk.MustAccAddressFromBech32(msg.User)
	quote, err := ms.Keeper.Swap(goCtx, msg.PoolIndex, user, msg.AmountIn, msg.MinAmountOut, msg.Direction)
	if err != nil {
		return nil, fmt.Errorf("Swap: %w", err)
	}
	return &types.MsgSwapResponse{Quote: quote}, nil
}

// ClaimProfit handles profit claims
func (ms msgServer) ClaimProfit(goCtx context.Context, msg *types.MsgClaimProfit) (*types.MsgClaimProfitResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("ClaimProfit: validate: %w", err)
	}
	investor := sdk.MustAccAddressFromBech32(msg.Investor)
	amount, err := ms.Keeper.ClaimProfit(goCtx, msg.PoolIndex, investor, msg.Side)
	if err != nil {
		return nil, fmt.Errorf("ClaimProfit: %w", err)
	}
	return &types.MsgClaimProfitResponse{Amount: amount}, nil
}

// Withdraw handles principal redemption
func (ms msgServer) Withdraw(goCtx context.Context, msg *types.MsgWithdraw) (*types.MsgWithdrawResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("Withdraw: validate: %w", err)
	}
	investor := sdk.MustAccAddressFromBech32(msg.Investor)
	redeemed, profit, err := ms.Keeper.Withdraw(goCtx, msg.PoolIndex, investor, msg.Side)
	if err != nil {
		return nil, fmt.Errorf("Withdraw: %w", err)
	}
	return &types.MsgWithdrawResponse{Redeemed: redeemed, Profit: profit}, nil
}

// ClosePool handles early closure by the registry owner
func (ms msgServer) ClosePool(goCtx context.Context, msg *types.MsgClosePool) error {
	if err := msg.ValidateBasic(); err != nil {
		return fmt.Errorf("ClosePool: validate: %w", err)
	}
	authority := sdk.MustAccAddressFromBech32(msg.Authority)
	if err := ms.Keeper.ClosePool(goCtx, authority, msg.PoolIndex); err != nil {
		return fmt.Errorf("ClosePool: %w", err)
	}
	return nil
}

package api

import (
	"errors"
	"net/http"

	"cosmossdk.io/math"
	"github.com/gin-gonic/gin"

	swaptypes "github.com/swapverse/swapverse/x/swapverse/types"
)

// handleFaucet mints test tokens to the caller
func (s *Server) handleFaucet(c *gin.Context) {
	var req FaucetRequest
	if !bindJSON(c, &req) {
		return
	}

	caller := claimsFrom(c).Address
	err := s.engine.MintTestTokens(c.Request.Context(), swaptypes.MsgMintTestTokens{
		Investor: caller,
		Denom:    req.Denom,
		Amount:   req.Amount,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, BalanceResponse{Address: caller, Denom: req.Denom, Amount: req.Amount})
}

// handleInvest deposits the caller's tokens into a pool
func (s *Server) handleInvest(c *gin.Context) {
	index, ok := poolIndexParam(c)
	if !ok {
		return
	}
	var req InvestRequest
	if !bindJSON(c, &req) {
		return
	}
	side, err := swaptypes.ParseSide(req.Side)
	if err != nil {
		writeError(c, err)
		return
	}

	shares, err := s.engine.Invest(c.Request.Context(), swaptypes.MsgInvest{
		Investor:  claimsFrom(c).Address,
		PoolIndex: index,
		Side:      side,
		Amount:    req.Amount,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, InvestResponse{PoolIndex: index, Side: side.String(), Shares: shares})
}

// handleSwap swaps the caller's tokens
func (s *Server) handleSwap(c *gin.Context) {
	index, ok := poolIndexParam(c)
	if !ok {
		return
	}
	var req SwapRequest
	if !bindJSON(c, &req) {
		return
	}
	direction, err := swaptypes.ParseDirection(req.Direction)
	if err != nil {
		writeError(c, err)
		return
	}
	if req.MinAmountOut.IsNil() {
		req.MinAmountOut = math.ZeroInt()
	}

	quote, err := s.engine.Swap(c.Request.Context(), swaptypes.MsgSwap{
		User:         claimsFrom(c).Address,
		PoolIndex:    index,
		AmountIn:     req.AmountIn,
		MinAmountOut: req.MinAmountOut,
		Direction:    direction,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

// handleClaimProfit pays the caller's accrued profit. An empty claim is not
// a failure.
func (s *Server) handleClaimProfit(c *gin.Context) {
	index, ok := poolIndexParam(c)
	if !ok {
		return
	}
	var req SideRequest
	if !bindJSON(c, &req) {
		return
	}
	side, err := swaptypes.ParseSide(req.Side)
	if err != nil {
		writeError(c, err)
		return
	}

	amount, err := s.engine.ClaimProfit(c.Request.Context(), swaptypes.MsgClaimProfit{
		Investor:  claimsFrom(c).Address,
		PoolIndex: index,
		Side:      side,
	})
	switch {
	case errors.Is(err, swaptypes.ErrNothingToClaim):
		c.JSON(http.StatusOK, ClaimResponse{Status: "nothing_to_claim", Amount: math.ZeroInt()})
	case err != nil:
		writeError(c, err)
	default:
		c.JSON(http.StatusOK, ClaimResponse{Status: "claimed", Amount: amount})
	}
}

// handleWithdraw redeems the caller's shares on one side
func (s *Server) handleWithdraw(c *gin.Context) {
	index, ok := poolIndexParam(c)
	if !ok {
		return
	}
	var req SideRequest
	if !bindJSON(c, &req) {
		return
	}
	side, err := swaptypes.ParseSide(req.Side)
	if err != nil {
		writeError(c, err)
		return
	}

	resp, err := s.engine.Withdraw(c.Request.Context(), swaptypes.MsgWithdraw{
		Investor:  claimsFrom(c).Address,
		PoolIndex: index,
		Side:      side,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, WithdrawResponse{Redeemed: resp.Redeemed, Profit: resp.Profit})
}

// handleInitialize creates the registry owned by the caller
func (s *Server) handleInitialize(c *gin.Context) {
	var req InitializeRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	denoms := swaptypes.DefaultTokenDenoms
	if len(req.TokenDenoms) > 0 {
		if len(req.TokenDenoms) != swaptypes.NumTokenDenoms {
			writeError(c, swaptypes.ErrInvalidConfig.Wrapf("expected %d token denoms, got %d",
				swaptypes.NumTokenDenoms, len(req.TokenDenoms)))
			return
		}
		copy(denoms[:], req.TokenDenoms)
	}

	err := s.engine.InitializeGlobalState(c.Request.Context(), swaptypes.MsgInitializeGlobalState{
		Owner:       claimsFrom(c).Address,
		TokenDenoms: denoms,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, StatusResponse{Status: "initialized"})
}

// handleCreatePool creates a pool from the posted configuration
func (s *Server) handleCreatePool(c *gin.Context) {
	var cfg swaptypes.PoolConfig
	if !bindJSON(c, &cfg) {
		return
	}

	index, err := s.engine.CreateSwapPool(c.Request.Context(), swaptypes.MsgCreateSwapPool{
		Creator: claimsFrom(c).Address,
		Config:  cfg,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, CreatePoolResponse{PoolIndex: index})
}

// handleClosePool opens a pool for withdrawal ahead of its end of life
func (s *Server) handleClosePool(c *gin.Context) {
	index, ok := poolIndexParam(c)
	if !ok {
		return
	}

	err := s.engine.ClosePool(c.Request.Context(), swaptypes.MsgClosePool{
		Authority: claimsFrom(c).Address,
		PoolIndex: index,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, StatusResponse{Status: "closed"})
}

func bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		badRequest(c, "invalid request: "+err.Error())
		return false
	}
	return true
}
